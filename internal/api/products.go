package api

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/amberleaf/amberspa/internal/domain"
	"github.com/amberleaf/amberspa/internal/webserver"
)

type productPayload struct {
	Slug          string   `json:"slug" validate:"required,min=1,max=200"`
	Title         string   `json:"title" validate:"required,min=1,max=200"`
	Description   string   `json:"description"`
	Price         *float64 `json:"price" validate:"required,gte=0"`
	Image         string   `json:"image"`
	Category      string   `json:"category" validate:"required,min=1,max=100"`
	Badge         string   `json:"badge" validate:"omitempty,max=50"`
	Featured      bool     `json:"featured"`
	StockQuantity *int     `json:"stockQuantity" validate:"required,gte=0"`
}

type productUpdatePayload struct {
	Slug          string   `json:"slug" validate:"omitempty,min=1,max=200"`
	Title         string   `json:"title" validate:"omitempty,min=1,max=200"`
	Description   *string  `json:"description"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0"`
	Image         *string  `json:"image"`
	Category      string   `json:"category" validate:"omitempty,min=1,max=100"`
	Badge         *string  `json:"badge"`
	Featured      *bool    `json:"featured"`
	StockQuantity *int     `json:"stockQuantity" validate:"omitempty,gte=0"`
}

type reviewPayload struct {
	Author  string `json:"author" validate:"required,min=1,max=100"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty,max=2000"`
}

func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/:slugOrId", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)

	webserver.ApiGET("/products/:id/reviews", listProductReviews)
	webserver.ApiPOST("/products/:id/reviews", createProductReview)
	webserver.ApiGET("/products/:id/rating", getProductRating)
}

func listProducts(c echo.Context) error {
	query := GetDB(c).Model(&domain.Product{})
	if category := strings.TrimSpace(c.QueryParam("category")); category != "" {
		query = query.Where("category = ?", category)
	}
	if featured := strings.TrimSpace(c.QueryParam("featured")); featured == "true" {
		query = query.Where("featured = ?", true)
	}

	var products []domain.Product
	if err := query.Order("id ASC").Find(&products).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", nil)
	}
	return ok(c, products)
}

func getProduct(c echo.Context) error {
	param := c.Param("slugOrId")
	var p domain.Product
	var err error
	if id, perr := strconv.ParseInt(param, 10, 64); perr == nil {
		err = GetDB(c).Where("id = ?", id).First(&p).Error
	} else {
		err = GetDB(c).Where("slug = ?", param).First(&p).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", nil)
	}
	return ok(c, p)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	var count int64
	GetDB(c).Model(&domain.Product{}).Where("slug = ?", payload.Slug).Count(&count)
	if count > 0 {
		return fail(c, http.StatusBadRequest, "SLUG_EXISTS", "Product slug already exists", nil)
	}

	now := time.Now()
	p := domain.Product{
		Slug:          strings.TrimSpace(payload.Slug),
		Title:         strings.TrimSpace(payload.Title),
		Description:   payload.Description,
		Price:         *payload.Price,
		Image:         payload.Image,
		Category:      strings.TrimSpace(payload.Category),
		Badge:         payload.Badge,
		Featured:      payload.Featured,
		StockQuantity: *payload.StockQuantity,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := GetDB(c).Create(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product", nil)
	}
	writeOprLog(c, "create_product", p.Slug)
	return created(c, p)
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", nil)
	}

	var payload productUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if payload.Slug != "" && payload.Slug != p.Slug {
		var count int64
		GetDB(c).Model(&domain.Product{}).Where("slug = ? AND id != ?", payload.Slug, id).Count(&count)
		if count > 0 {
			return fail(c, http.StatusBadRequest, "SLUG_EXISTS", "Product slug already exists", nil)
		}
		updates["slug"] = strings.TrimSpace(payload.Slug)
	}
	if payload.Title != "" {
		updates["title"] = strings.TrimSpace(payload.Title)
	}
	if payload.Description != nil {
		updates["description"] = *payload.Description
	}
	if payload.Price != nil {
		updates["price"] = *payload.Price
	}
	if payload.Image != nil {
		updates["image"] = *payload.Image
	}
	if payload.Category != "" {
		updates["category"] = strings.TrimSpace(payload.Category)
	}
	if payload.Badge != nil {
		updates["badge"] = *payload.Badge
	}
	if payload.Featured != nil {
		updates["featured"] = *payload.Featured
	}
	if payload.StockQuantity != nil {
		updates["stock_quantity"] = *payload.StockQuantity
	}
	updates["updated_at"] = time.Now()

	if err := GetDB(c).Model(&p).Updates(updates).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product", nil)
	}
	GetDB(c).Where("id = ?", id).First(&p)
	writeOprLog(c, "update_product", p.Slug)
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", nil)
	}
	if err := GetDB(c).Delete(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product", nil)
	}
	writeOprLog(c, "delete_product", p.Slug)
	return c.NoContent(http.StatusNoContent)
}

func listProductReviews(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var reviews []domain.ProductReview
	if err := GetDB(c).Where("product_id = ?", id).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query reviews", nil)
	}
	return ok(c, reviews)
}

func createProductReview(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var p domain.Product
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product", nil)
	}

	var payload reviewPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse review", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	review := domain.ProductReview{
		ProductID: id,
		Author:    strings.TrimSpace(payload.Author),
		Rating:    payload.Rating,
		Comment:   payload.Comment,
		CreatedAt: time.Now(),
	}
	if err := GetDB(c).Create(&review).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create review", nil)
	}
	return created(c, review)
}

// getProductRating returns the arithmetic mean of all review ratings,
// rounded to one decimal place, 0 when the product has no reviews.
func getProductRating(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	var reviews []domain.ProductReview
	if err := GetDB(c).Where("product_id = ?", id).Find(&reviews).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query reviews", nil)
	}

	rating := 0.0
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		rating = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	}
	return ok(c, map[string]interface{}{
		"rating": rating,
		"count":  len(reviews),
	})
}
