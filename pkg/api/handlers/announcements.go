package handlers

import (
	"net/http"
	"strconv"

	"github.com/dustward/campbase/pkg/announcements"
	"github.com/dustward/campbase/pkg/api/errors"
	"github.com/dustward/campbase/pkg/models"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// AnnouncementHandler handles announcement endpoints
type AnnouncementHandler struct {
	announcements *announcements.Service
	validator     *validator.Validate
}

// NewAnnouncementHandler creates a new announcement handler
func NewAnnouncementHandler(announcementService *announcements.Service) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcements: announcementService,
		validator:     validator.New(),
	}
}

// List returns active announcements.
func (h *AnnouncementHandler) List(c echo.Context) error {
	active, err := h.announcements.ListActive(c.Request().Context())
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, active)
}

// Create posts an announcement authored by the caller.
func (h *AnnouncementHandler) Create(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return errors.UnauthorizedError(c)
	}

	var req models.CreateAnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	announcement, err := h.announcements.Create(c.Request().Context(), userID, req)
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusCreated, announcement)
}

// Delete takes an announcement down early (own posts, or any for
// admins).
func (h *AnnouncementHandler) Delete(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return errors.UnauthorizedError(c)
	}
	isAdmin, _ := c.Get("is_admin").(bool)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return errors.ValidationError(c, err)
	}

	if err := h.announcements.Delete(c.Request().Context(), uint(id), userID, isAdmin); err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, models.OKResponse{OK: true})
}
