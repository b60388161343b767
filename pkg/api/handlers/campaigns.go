package handlers

import (
	"net/http"
	"strconv"

	"github.com/dustward/campbase/pkg/api/errors"
	"github.com/dustward/campbase/pkg/campaigns"
	"github.com/dustward/campbase/pkg/models"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CampaignHandler handles recruitment campaign endpoints
type CampaignHandler struct {
	campaigns *campaigns.Service
	validator *validator.Validate
}

// NewCampaignHandler creates a new campaign handler
func NewCampaignHandler(campaignService *campaigns.Service) *CampaignHandler {
	return &CampaignHandler{
		campaigns: campaignService,
		validator: validator.New(),
	}
}

// List returns every campaign with clicks and conversion funnel.
func (h *CampaignHandler) List(c echo.Context) error {
	funnels, err := h.campaigns.ComputeFunnels(c.Request().Context())
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, funnels)
}

// Create adds a campaign.
func (h *CampaignHandler) Create(c echo.Context) error {
	var req models.CreateCampaignRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	campaign, err := h.campaigns.Create(c.Request().Context(), req)
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusCreated, campaign)
}

// Update partially updates a campaign.
func (h *CampaignHandler) Update(c echo.Context) error {
	var req models.UpdateCampaignRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	campaign, err := h.campaigns.Update(c.Request().Context(), req)
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, campaign)
}

// Delete removes a campaign by id.
func (h *CampaignHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return errors.ValidationError(c, err)
	}

	if err := h.campaigns.Delete(c.Request().Context(), uint(id)); err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, models.OKResponse{OK: true})
}
