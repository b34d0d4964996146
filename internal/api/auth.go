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
	"github.com/amberleaf/amberspa/pkg/common"
)

// Client sessions expire two hours after login; the token is an opaque
// value the browser stores, not enforced by any route.
const sessionDuration = 2 * time.Hour

type registerPayload struct {
	Username string `json:"username" validate:"required,min=3,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=200"`
	Realname string `json:"realname" validate:"omitempty,max=100"`
	Phone    string `json:"phone" validate:"omitempty,max=50"`
}

type loginPayload struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

func registerAuthRoutes() {
	webserver.ApiPOST("/register", registerUser)
	webserver.ApiPOST("/login", loginUser)
}

func registerUser(c echo.Context) error {
	var payload registerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse registration", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	db := GetDB(c)
	username := strings.TrimSpace(payload.Username)
	email := strings.TrimSpace(strings.ToLower(payload.Email))

	var count int64
	db.Model(&domain.SysUser{}).Where("username = ?", username).Count(&count)
	if count > 0 {
		return fail(c, http.StatusBadRequest, "USERNAME_EXISTS", "Username is already taken", nil)
	}
	db.Model(&domain.SysUser{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		return fail(c, http.StatusBadRequest, "EMAIL_EXISTS", "Email is already registered", nil)
	}

	user := domain.SysUser{
		ID:        common.UUIDint64(),
		Username:  username,
		Email:     email,
		Password:  common.Sha256HashWithSalt(payload.Password, common.GetSecretSalt()),
		Realname:  payload.Realname,
		Phone:     payload.Phone,
		Level:     "customer",
		Status:    common.ENABLED,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(&user).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create account", nil)
	}
	return created(c, user)
}

func loginUser(c echo.Context) error {
	var payload loginPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse login", err.Error())
	}
	if err := c.Validate(&payload); err != nil {
		return handleValidationError(c, err)
	}

	var user domain.SysUser
	err := GetDB(c).Where("username = ?", strings.TrimSpace(payload.Username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query account", nil)
	}

	if user.Password != common.Sha256HashWithSalt(payload.Password, common.GetSecretSalt()) {
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid username or password", nil)
	}
	if user.Status != common.ENABLED {
		return fail(c, http.StatusUnauthorized, "ACCOUNT_DISABLED", "Account is disabled", nil)
	}

	now := time.Now()
	GetDB(c).Model(&domain.SysUser{}).Where("id = ?", user.ID).
		Updates(map[string]interface{}{"last_login": now, "updated_at": now})

	return ok(c, map[string]interface{}{
		"user":      user,
		"token":     common.UUID(),
		"expiresAt": now.Add(sessionDuration),
	})
}
