package handlers

import (
	"net/http"
	"strconv"

	"github.com/dustward/campbase/pkg/api/errors"
	"github.com/dustward/campbase/pkg/dues"
	"github.com/dustward/campbase/pkg/models"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// DuesHandler handles dues endpoints
type DuesHandler struct {
	dues      *dues.Service
	db        *gorm.DB
	validator *validator.Validate
}

// NewDuesHandler creates a new dues handler
func NewDuesHandler(duesService *dues.Service, db *gorm.DB) *DuesHandler {
	return &DuesHandler{
		dues:      duesService,
		db:        db,
		validator: validator.New(),
	}
}

// ListItems returns all dues items with payments and overrides.
func (h *DuesHandler) ListItems(c echo.Context) error {
	items, err := h.dues.ListItems(c.Request().Context())
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, items)
}

// CreateItem adds a dues line item.
func (h *DuesHandler) CreateItem(c echo.Context) error {
	var req models.CreateDuesItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	item, err := h.dues.CreateItem(c.Request().Context(), req)
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusCreated, item)
}

// UpdateItem partially updates a dues item.
func (h *DuesHandler) UpdateItem(c echo.Context) error {
	var req models.UpdateDuesItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	item, err := h.dues.UpdateItem(c.Request().Context(), req)
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, item)
}

// DeleteItem removes a dues item.
func (h *DuesHandler) DeleteItem(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return errors.ValidationError(c, err)
	}

	if err := h.dues.DeleteItem(c.Request().Context(), uint(id)); err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, models.OKResponse{OK: true})
}

// RecordPayment records a manual payment, stamped with the acting
// staff account's name.
func (h *DuesHandler) RecordPayment(c echo.Context) error {
	var req models.RecordPaymentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	recordedBy := ""
	if userID, ok := c.Get("user_id").(uint); ok {
		var user models.User
		if err := h.db.WithContext(c.Request().Context()).First(&user, userID).Error; err == nil {
			recordedBy = user.Name
		}
	}

	payment, err := h.dues.RecordPayment(c.Request().Context(), recordedBy, req)
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusCreated, payment)
}

// DeletePayment removes a mis-entered payment.
func (h *DuesHandler) DeletePayment(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return errors.ValidationError(c, err)
	}

	if err := h.dues.DeletePayment(c.Request().Context(), uint(id)); err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, models.OKResponse{OK: true})
}

// SetOverride sets a per-member custom amount.
func (h *DuesHandler) SetOverride(c echo.Context) error {
	var req models.OverrideRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	override, err := h.dues.SetOverride(c.Request().Context(), req)
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, override)
}

// RemoveOverride puts a member back on the standard amount.
func (h *DuesHandler) RemoveOverride(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("userId"), 10, 32)
	if err != nil {
		return errors.ValidationError(c, err)
	}
	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 32)
	if err != nil {
		return errors.ValidationError(c, err)
	}

	if err := h.dues.RemoveOverride(c.Request().Context(), uint(userID), uint(itemID)); err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, models.OKResponse{OK: true})
}

// MyBalances returns the authenticated member's standing per item.
func (h *DuesHandler) MyBalances(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return errors.UnauthorizedError(c)
	}

	balances, err := h.dues.BalancesFor(c.Request().Context(), userID)
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, balances)
}
