package handlers

import (
	"net/http"
	"strconv"

	"github.com/dustward/campbase/pkg/api/errors"
	"github.com/dustward/campbase/pkg/meals"
	"github.com/dustward/campbase/pkg/members"
	"github.com/dustward/campbase/pkg/models"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// MealHandler handles meal plan endpoints
type MealHandler struct {
	meals     *meals.Service
	members   *members.Service
	validator *validator.Validate
}

// NewMealHandler creates a new meal handler
func NewMealHandler(mealService *meals.Service, memberService *members.Service) *MealHandler {
	return &MealHandler{
		meals:     mealService,
		members:   memberService,
		validator: validator.New(),
	}
}

// memberID resolves the caller's member profile id.
func (h *MealHandler) memberID(c echo.Context) (uint, bool, error) {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return 0, false, errors.UnauthorizedError(c)
	}
	isAdmin, _ := c.Get("is_admin").(bool)

	member, err := h.members.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return 0, false, errors.FromDomain(c, err)
	}
	return member.ID, isAdmin, nil
}

// List returns the meal plan.
func (h *MealHandler) List(c echo.Context) error {
	plan, err := h.meals.List(c.Request().Context())
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, plan)
}

// Create adds a meal offered by the caller.
func (h *MealHandler) Create(c echo.Context) error {
	memberID, _, errResp := h.memberID(c)
	if errResp != nil {
		return errResp
	}

	var req models.CreateMealRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	meal, err := h.meals.Create(c.Request().Context(), memberID, req)
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusCreated, meal)
}

// Delete removes a meal (own meals, or any for admins).
func (h *MealHandler) Delete(c echo.Context) error {
	memberID, isAdmin, errResp := h.memberID(c)
	if errResp != nil {
		return errResp
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return errors.ValidationError(c, err)
	}

	if err := h.meals.Delete(c.Request().Context(), uint(id), memberID, isAdmin); err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, models.OKResponse{OK: true})
}
