package handlers

import (
	"net/http"
	"strconv"

	"github.com/dustward/campbase/pkg/api/errors"
	"github.com/dustward/campbase/pkg/invites"
	"github.com/dustward/campbase/pkg/models"
	"github.com/labstack/echo/v4"
)

// InviteHandler handles invite code endpoints
type InviteHandler struct {
	invites *invites.Service
}

// NewInviteHandler creates a new invite handler
func NewInviteHandler(inviteService *invites.Service) *InviteHandler {
	return &InviteHandler{invites: inviteService}
}

// List returns all codes (admin).
func (h *InviteHandler) List(c echo.Context) error {
	codes, err := h.invites.List(c.Request().Context())
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, codes)
}

// Generate mints fresh codes (admin). ?count=N, default 1.
func (h *InviteHandler) Generate(c echo.Context) error {
	count := 1
	if raw := c.QueryParam("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return errors.ValidationError(c, err)
		}
		count = parsed
	}

	codes, err := h.invites.Generate(c.Request().Context(), count)
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusCreated, codes)
}

// Delete revokes an unused code (admin).
func (h *InviteHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return errors.ValidationError(c, err)
	}

	if err := h.invites.Delete(c.Request().Context(), uint(id)); err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, models.OKResponse{OK: true})
}
