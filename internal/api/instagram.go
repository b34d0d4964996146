package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/amberleaf/amberspa/internal/domain"
	"github.com/amberleaf/amberspa/internal/webserver"
)

type instagramPayload struct {
	Image   string `json:"image" validate:"required"`
	Caption string `json:"caption"`
	Link    string `json:"link" validate:"omitempty,url"`
}

type instagramUpdatePayload struct {
	Image   string `json:"image"`
	Caption string `json:"caption"`
	Link    string `json:"link" validate:"omitempty,url"`
}

func registerInstagramRoutes() {
	webserver.ApiGET("/instagram", listInstagramPosts)
	webserver.ApiGET("/instagram/:id", getInstagramPost)
	webserver.ApiPOST("/instagram", createInstagramPost)
	webserver.ApiPUT("/instagram/:id", updateInstagramPost)
	webserver.ApiDELETE("/instagram/:id", deleteInstagramPost)
}

func listInstagramPosts(c echo.Context) error {
	var posts []domain.InstagramPost
	if err := GetDB(c).Order("created_at DESC").Find(&posts).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query instagram posts", nil)
	}
	return ok(c, posts)
}

func getInstagramPost(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid instagram post ID", nil)
	}
	var p domain.InstagramPost
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Instagram post not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query instagram post", nil)
	}
	return ok(c, p)
}

func createInstagramPost(c echo.Context) error {
	var payload instagramPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse instagram post", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	now := time.Now()
	p := domain.InstagramPost{
		Image:     payload.Image,
		Caption:   payload.Caption,
		Link:      payload.Link,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := GetDB(c).Create(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create instagram post", nil)
	}
	return created(c, p)
}

func updateInstagramPost(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid instagram post ID", nil)
	}
	var p domain.InstagramPost
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Instagram post not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query instagram post", nil)
	}

	var payload instagramUpdatePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse instagram post", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if payload.Image != "" {
		updates["image"] = payload.Image
	}
	if payload.Caption != "" {
		updates["caption"] = payload.Caption
	}
	if payload.Link != "" {
		updates["link"] = payload.Link
	}
	updates["updated_at"] = time.Now()

	if err := GetDB(c).Model(&p).Updates(updates).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update instagram post", nil)
	}
	GetDB(c).Where("id = ?", id).First(&p)
	return ok(c, p)
}

func deleteInstagramPost(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid instagram post ID", nil)
	}
	var p domain.InstagramPost
	if err := GetDB(c).Where("id = ?", id).First(&p).Error; errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Instagram post not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query instagram post", nil)
	}
	if err := GetDB(c).Delete(&p).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete instagram post", nil)
	}
	return c.NoContent(http.StatusNoContent)
}
