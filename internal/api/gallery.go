package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/amberleaf/amberspa/internal/domain"
	"github.com/amberleaf/amberspa/internal/webserver"
)

type galleryPayload struct {
	Title    string `json:"title" validate:"required,min=1,max=200"`
	Image    string `json:"image" validate:"required"`
	Category string `json:"category" validate:"required,min=1,max=100"`
}

type galleryUpdatePayload struct {
	Title    string `json:"title" validate:"omitempty,min=1,max=200"`
	Image    string `json:"image"`
	Category string `json:"category" validate:"omitempty,min=1,max=100"`
}

func registerGalleryRoutes() {
	webserver.ApiGET("/gallery", listGalleryItems)
	webserver.ApiGET("/gallery/:id", getGalleryItem)
	webserver.ApiPOST("/gallery", createGalleryItem)
	webserver.ApiPUT("/gallery/:id", updateGalleryItem)
	webserver.ApiDELETE("/gallery/:id", deleteGalleryItem)
}

func listGalleryItems(c echo.Context) error {
	query := GetDB(c).Model(&domain.GalleryItem{})
	if category := strings.TrimSpace(c.QueryParam("category")); category != "" {
		query = query.Where("category = ?", category)
	}

	var items []domain.GalleryItem
	if err := query.Order("id ASC").Find(&items).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query gallery", nil)
	}
	return ok(c, items)
}

func getGalleryItem(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid gallery item ID", nil)
	}
	var g domain.GalleryItem
	if err := GetDB(c).Where("id = ?", id).First(&g).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Gallery item not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query gallery item", nil)
	}
	return ok(c, g)
}

func createGalleryItem(c echo.Context) error {
	var payload galleryPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse gallery item", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	now := time.Now()
	g := domain.GalleryItem{
		Title:     strings.TrimSpace(payload.Title),
		Image:     payload.Image,
		Category:  strings.TrimSpace(payload.Category),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := GetDB(c).Create(&g).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create gallery item", nil)
	}
	return created(c, g)
}

func updateGalleryItem(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid gallery item ID", nil)
	}
	var g domain.GalleryItem
	if err := GetDB(c).Where("id = ?", id).First(&g).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Gallery item not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query gallery item", nil)
	}

	var payload galleryUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse gallery item", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if payload.Title != "" {
		updates["title"] = strings.TrimSpace(payload.Title)
	}
	if payload.Image != "" {
		updates["image"] = payload.Image
	}
	if payload.Category != "" {
		updates["category"] = strings.TrimSpace(payload.Category)
	}
	updates["updated_at"] = time.Now()

	if err := GetDB(c).Model(&g).Updates(updates).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update gallery item", nil)
	}
	GetDB(c).Where("id = ?", id).First(&g)
	return ok(c, g)
}

func deleteGalleryItem(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid gallery item ID", nil)
	}
	var g domain.GalleryItem
	if err := GetDB(c).Where("id = ?", id).First(&g).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Gallery item not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query gallery item", nil)
	}
	if err := GetDB(c).Delete(&g).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete gallery item", nil)
	}
	return c.NoContent(http.StatusNoContent)
}
