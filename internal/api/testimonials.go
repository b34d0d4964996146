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

type testimonialPayload struct {
	Name   string `json:"name" validate:"required,min=1,max=100"`
	Quote  string `json:"quote" validate:"required,min=1"`
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Image  string `json:"image"`
}

type testimonialUpdatePayload struct {
	Name   string  `json:"name" validate:"omitempty,min=1,max=100"`
	Quote  string  `json:"quote"`
	Rating *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Image  *string `json:"image"`
}

func registerTestimonialRoutes() {
	webserver.ApiGET("/testimonials", listTestimonials)
	webserver.ApiGET("/testimonials/:id", getTestimonial)
	webserver.ApiPOST("/testimonials", createTestimonial)
	webserver.ApiPUT("/testimonials/:id", updateTestimonial)
	webserver.ApiDELETE("/testimonials/:id", deleteTestimonial)
}

func listTestimonials(c echo.Context) error {
	var testimonials []domain.Testimonial
	if err := GetDB(c).Order("id ASC").Find(&testimonials).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query testimonials", nil)
	}
	return ok(c, testimonials)
}

func getTestimonial(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid testimonial ID", nil)
	}
	var t domain.Testimonial
	if err := GetDB(c).Where("id = ?", id).First(&t).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Testimonial not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query testimonial", nil)
	}
	return ok(c, t)
}

func createTestimonial(c echo.Context) error {
	var payload testimonialPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse testimonial", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	now := time.Now()
	t := domain.Testimonial{
		Name:      strings.TrimSpace(payload.Name),
		Quote:     payload.Quote,
		Rating:    payload.Rating,
		Image:     payload.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := GetDB(c).Create(&t).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create testimonial", nil)
	}
	return created(c, t)
}

func updateTestimonial(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid testimonial ID", nil)
	}
	var t domain.Testimonial
	if err := GetDB(c).Where("id = ?", id).First(&t).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Testimonial not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query testimonial", nil)
	}

	var payload testimonialUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse testimonial", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if payload.Name != "" {
		updates["name"] = strings.TrimSpace(payload.Name)
	}
	if payload.Quote != "" {
		updates["quote"] = payload.Quote
	}
	if payload.Rating != nil {
		updates["rating"] = *payload.Rating
	}
	if payload.Image != nil {
		updates["image"] = *payload.Image
	}
	updates["updated_at"] = time.Now()

	if err := GetDB(c).Model(&t).Updates(updates).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update testimonial", nil)
	}
	GetDB(c).Where("id = ?", id).First(&t)
	return ok(c, t)
}

func deleteTestimonial(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid testimonial ID", nil)
	}
	var t domain.Testimonial
	if err := GetDB(c).Where("id = ?", id).First(&t).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Testimonial not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query testimonial", nil)
	}
	if err := GetDB(c).Delete(&t).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete testimonial", nil)
	}
	return c.NoContent(http.StatusNoContent)
}
