package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/amberleaf/amberspa/internal/domain"
	"github.com/amberleaf/amberspa/internal/webserver"
)

type treatmentPayload struct {
	Slug        string   `json:"slug" validate:"required,min=1,max=200"`
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Duration    int      `json:"duration" validate:"required,gt=0"`
	Image       string   `json:"image"`
	Featured    bool     `json:"featured"`
}

type treatmentUpdatePayload struct {
	Slug        string   `json:"slug" validate:"omitempty,min=1,max=200"`
	Title       string   `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Duration    *int     `json:"duration" validate:"omitempty,gt=0"`
	Image       *string  `json:"image"`
	Featured    *bool    `json:"featured"`
}

func registerTreatmentRoutes() {
	webserver.ApiGET("/treatments", listTreatments)
	webserver.ApiGET("/treatments/:slugOrId", getTreatment)
	webserver.ApiPOST("/treatments", createTreatment)
	webserver.ApiPUT("/treatments/:id", updateTreatment)
	webserver.ApiDELETE("/treatments/:id", deleteTreatment)
}

func listTreatments(c echo.Context) error {
	query := GetDB(c).Model(&domain.Treatment{})
	if featured := strings.TrimSpace(c.QueryParam("featured")); featured == "true" {
		query = query.Where("featured = ?", true)
	}

	var treatments []domain.Treatment
	if err := query.Order("id ASC").Find(&treatments).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query treatments", nil)
	}
	return ok(c, treatments)
}

// getTreatment resolves :slugOrId as a numeric id first, falling back to
// a slug lookup.
func getTreatment(c echo.Context) error {
	param := c.Param("slugOrId")
	var t domain.Treatment
	var err error
	if id, perr := strconv.ParseInt(param, 10, 64); perr == nil {
		err = GetDB(c).Where("id = ?", id).First(&t).Error
	} else {
		err = GetDB(c).Where("slug = ?", param).First(&t).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Treatment not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query treatment", nil)
	}
	return ok(c, t)
}

func createTreatment(c echo.Context) error {
	var payload treatmentPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse treatment", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	var count int64
	GetDB(c).Model(&domain.Treatment{}).Where("slug = ?", payload.Slug).Count(&count)
	if count > 0 {
		return fail(c, http.StatusBadRequest, "SLUG_EXISTS", "Treatment slug already exists", nil)
	}

	now := time.Now()
	t := domain.Treatment{
		Slug:        strings.TrimSpace(payload.Slug),
		Title:       strings.TrimSpace(payload.Title),
		Description: payload.Description,
		Price:       *payload.Price,
		Duration:    payload.Duration,
		Image:       payload.Image,
		Featured:    payload.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := GetDB(c).Create(&t).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create treatment", nil)
	}
	writeOprLog(c, "create_treatment", t.Slug)
	return created(c, t)
}

func updateTreatment(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid treatment ID", nil)
	}
	var t domain.Treatment
	if err := GetDB(c).Where("id = ?", id).First(&t).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Treatment not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query treatment", nil)
	}

	var payload treatmentUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse treatment", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if payload.Slug != "" && payload.Slug != t.Slug {
		var count int64
		GetDB(c).Model(&domain.Treatment{}).Where("slug = ? AND id != ?", payload.Slug, id).Count(&count)
		if count > 0 {
			return fail(c, http.StatusBadRequest, "SLUG_EXISTS", "Treatment slug already exists", nil)
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
	if payload.Duration != nil {
		updates["duration"] = *payload.Duration
	}
	if payload.Image != nil {
		updates["image"] = *payload.Image
	}
	if payload.Featured != nil {
		updates["featured"] = *payload.Featured
	}
	updates["updated_at"] = time.Now()

	if err := GetDB(c).Model(&t).Updates(updates).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update treatment", nil)
	}
	GetDB(c).Where("id = ?", id).First(&t)
	writeOprLog(c, "update_treatment", t.Slug)
	return ok(c, t)
}

func deleteTreatment(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid treatment ID", nil)
	}
	var t domain.Treatment
	if err := GetDB(c).Where("id = ?", id).First(&t).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Treatment not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query treatment", nil)
	}
	if err := GetDB(c).Delete(&t).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete treatment", nil)
	}
	writeOprLog(c, "delete_treatment", t.Slug)
	return c.NoContent(http.StatusNoContent)
}
