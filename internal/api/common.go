package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/amberleaf/amberspa/internal/app"
	"github.com/amberleaf/amberspa/internal/domain"
	"github.com/amberleaf/amberspa/internal/webserver"
	"github.com/amberleaf/amberspa/pkg/common"
)

// RegisterRoutes wires every resource sub-API under /api.
func RegisterRoutes() {
	registerTreatmentRoutes()
	registerProductRoutes()
	registerBookingRoutes()
	registerOrderRoutes()
	registerTestimonialRoutes()
	registerGalleryRoutes()
	registerInstagramRoutes()
	registerSettingsRoutes()
	registerAuthRoutes()
	registerCartRoutes()
}

// GetAppContext returns the per-request application context.
func GetAppContext(c echo.Context) app.AppContext {
	return webserver.GetAppContext(c)
}

// GetDB returns the request-scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	return GetAppContext(c).DB()
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func created(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusCreated, data)
}

func fail(c echo.Context, status int, code, message string, detail interface{}) error {
	body := map[string]interface{}{
		"code":    code,
		"message": message,
	}
	if detail != nil {
		body["detail"] = detail
	}
	return c.JSON(status, body)
}

func paged(c echo.Context, data interface{}, total int64, page, pageSize int) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":     data,
		"total":    total,
		"page":     page,
		"pageSize": pageSize,
	})
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return strconv.ParseInt(c.Param(name), 10, 64)
}

func parsePagination(c echo.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.QueryParam("perPage"))
	if pageSize < 1 || pageSize > 500 {
		pageSize = 20
	}
	return page, pageSize
}

// handleValidationError converts validator failures into the structured
// field-level error list the client form layer renders inline.
func handleValidationError(c echo.Context, err error) error {
	verrs, isValidation := err.(validator.ValidationErrors)
	if !isValidation {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Request validation failed", err.Error())
	}
	fields := make([]map[string]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, map[string]string{
			"field":   fe.Field(),
			"message": "failed on '" + fe.Tag() + "' validation",
		})
	}
	return fail(c, http.StatusBadRequest, "VALIDATION_ERROR", "Request validation failed", fields)
}

// writeOprLog records an admin mutation for the audit trail. Failures
// are logged by the caller's request log, never surfaced.
func writeOprLog(c echo.Context, action, desc string) {
	GetDB(c).Create(&domain.SysOprLog{
		ID:        common.UUIDint64(),
		OprName:   "admin",
		OprIp:     c.RealIP(),
		OptAction: action,
		OptDesc:   desc,
		OptTime:   time.Now(),
	})
}
