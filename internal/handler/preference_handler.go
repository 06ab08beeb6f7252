package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Prethish-Kumar/Data-Governance-Console/internal/errors"
	"github.com/Prethish-Kumar/Data-Governance-Console/internal/service"
)

// PreferenceHandler serves the console's preference actions.
type PreferenceHandler struct {
	preferences service.PreferenceService
}

// NewPreferenceHandler creates a preference handler.
func NewPreferenceHandler(preferences service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{preferences: preferences}
}

// CreateDefaultPreferences godoc
// @Summary Create default preferences for a user
// @Description Writes the stock theme, language, and notification settings for users who have none yet.
// @Tags preferences
// @Produce json
// @Param id path string true "User ID"
// @Success 201 {object} model.Preferences
// @Failure 502 {object} errors.ErrorResponse
// @Router /users/{id}/preferences/default [put]
func (h *PreferenceHandler) CreateDefaultPreferences(c echo.Context) error {
	prefs, err := h.preferences.CreateDefaultPreferences(c.Request().Context(), c.Param("id"))
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, prefs)
}
