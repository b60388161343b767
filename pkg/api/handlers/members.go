package handlers

import (
	"net/http"
	"strconv"

	"github.com/dustward/campbase/pkg/api/errors"
	"github.com/dustward/campbase/pkg/members"
	"github.com/dustward/campbase/pkg/models"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// MemberHandler handles profile and roster endpoints
type MemberHandler struct {
	members   *members.Service
	validator *validator.Validate
}

// NewMemberHandler creates a new member handler
func NewMemberHandler(memberService *members.Service) *MemberHandler {
	return &MemberHandler{
		members:   memberService,
		validator: validator.New(),
	}
}

// MyProfile returns the caller's profile.
func (h *MemberHandler) MyProfile(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return errors.UnauthorizedError(c)
	}

	member, err := h.members.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, member)
}

// UpdateMyProfile updates the caller's profile.
func (h *MemberHandler) UpdateMyProfile(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return errors.UnauthorizedError(c)
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}

	member, err := h.members.UpdateProfile(c.Request().Context(), userID, req)
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, member)
}

// Roster returns the member-visible roster summary.
func (h *MemberHandler) Roster(c echo.Context) error {
	users, err := h.members.ListUsers(c.Request().Context())
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// ListMembers returns full profiles (admin).
func (h *MemberHandler) ListMembers(c echo.Context) error {
	all, err := h.members.ListMembers(c.Request().Context())
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, all)
}

// SetAdmin toggles a user's admin flag (admin).
func (h *MemberHandler) SetAdmin(c echo.Context) error {
	actorID, ok := c.Get("user_id").(uint)
	if !ok {
		return errors.UnauthorizedError(c)
	}

	var req models.SetAdminRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	user, err := h.members.SetAdmin(c.Request().Context(), actorID, req)
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// DeleteUser removes an account (admin).
func (h *MemberHandler) DeleteUser(c echo.Context) error {
	actorID, ok := c.Get("user_id").(uint)
	if !ok {
		return errors.UnauthorizedError(c)
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return errors.ValidationError(c, err)
	}

	if err := h.members.DeleteUser(c.Request().Context(), actorID, uint(id)); err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, models.OKResponse{OK: true})
}
