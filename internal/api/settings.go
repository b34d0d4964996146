package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/amberleaf/amberspa/internal/webserver"
)

func registerSettingsRoutes() {
	webserver.ApiGET("/settings", getSettings)
	webserver.ApiPUT("/settings", updateSettings)
}

// getSettings returns the singleton settings document, seeding the
// defaults when no settings rows exist yet.
func getSettings(c echo.Context) error {
	settings, err := GetAppContext(c).ConfigMgr().Website()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load settings", nil)
	}
	return ok(c, settings)
}

// updateSettings merges the request body over the current document and
// persists the result. Omitted fields keep their current values.
func updateSettings(c echo.Context) error {
	cm := GetAppContext(c).ConfigMgr()
	settings, err := cm.Website()
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load settings", nil)
	}
	if err := c.Bind(&settings); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse settings", err.Error())
	}
	if err := cm.SaveWebsite(settings); err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to save settings", nil)
	}
	writeOprLog(c, "update_settings", "site settings updated")
	return ok(c, settings)
}
