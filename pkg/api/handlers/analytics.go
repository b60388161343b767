package handlers

import (
	"net/http"

	"github.com/dustward/campbase/pkg/analytics"
	"github.com/dustward/campbase/pkg/api/errors"
	"github.com/dustward/campbase/pkg/models"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// AnalyticsHandler handles activity logging and engagement endpoints
type AnalyticsHandler struct {
	analytics *analytics.Service
	validator *validator.Validate
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{
		analytics: analyticsService,
		validator: validator.New(),
	}
}

// LogActivity records a client-side action for the caller.
func (h *AnalyticsHandler) LogActivity(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return errors.UnauthorizedError(c)
	}

	var req models.LogActivityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	if err := h.analytics.LogActivity(c.Request().Context(), userID, req); err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, models.OKResponse{OK: true})
}

// Engagement returns the per-user engagement rollup plus the latest
// activity feed (admin).
func (h *AnalyticsHandler) Engagement(c echo.Context) error {
	ctx := c.Request().Context()

	rows, err := h.analytics.Engagement(ctx)
	if err != nil {
		return errors.FromDomain(c, err)
	}
	recent, err := h.analytics.RecentActivity(ctx, 50)
	if err != nil {
		return errors.FromDomain(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"engagement":     rows,
		"recentActivity": recent,
	})
}
