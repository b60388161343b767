package handlers

import (
	"net/http"
	"strconv"

	"github.com/dustward/campbase/pkg/api/errors"
	"github.com/dustward/campbase/pkg/models"
	"github.com/dustward/campbase/pkg/recruits"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// RecruitHandler handles the staff-facing recruit pipeline endpoints
type RecruitHandler struct {
	recruits  *recruits.Service
	validator *validator.Validate
}

// NewRecruitHandler creates a new recruit handler
func NewRecruitHandler(recruitService *recruits.Service) *RecruitHandler {
	return &RecruitHandler{
		recruits:  recruitService,
		validator: validator.New(),
	}
}

// List returns all recruits with intake answers attached.
func (h *RecruitHandler) List(c echo.Context) error {
	all, err := h.recruits.List(c.Request().Context())
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, all)
}

// Create opens a pipeline record directly.
func (h *RecruitHandler) Create(c echo.Context) error {
	var req models.CreateRecruitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	recruit, err := h.recruits.Create(c.Request().Context(), req)
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusCreated, recruit)
}

// Update applies the whitelisted field updates.
func (h *RecruitHandler) Update(c echo.Context) error {
	var req models.UpdateRecruitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	recruit, err := h.recruits.Update(c.Request().Context(), req)
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, recruit)
}

// Delete removes a recruit.
func (h *RecruitHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return errors.ValidationError(c, err)
	}

	if err := h.recruits.Delete(c.Request().Context(), uint(id)); err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, models.OKResponse{OK: true})
}
