package handlers

import (
	"net/http"

	"github.com/dustward/campbase/pkg/api/errors"
	"github.com/dustward/campbase/pkg/campaigns"
	"github.com/dustward/campbase/pkg/domain"
	"github.com/dustward/campbase/pkg/metrics"
	"github.com/dustward/campbase/pkg/models"
	"github.com/dustward/campbase/pkg/ratelimit"
	"github.com/dustward/campbase/pkg/recruits"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// PublicHandler serves the two unauthenticated endpoints: the membership
// application form and campaign click tracking. Both are rate limited
// per IP and deliberately reveal nothing about internal state.
type PublicHandler struct {
	recruits     *recruits.Service
	campaigns    *campaigns.Service
	applyLimiter ratelimit.Store
	clickLimiter ratelimit.Store
	metrics      *metrics.Metrics
	validator    *validator.Validate
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(recruitService *recruits.Service, campaignService *campaigns.Service, applyLimiter, clickLimiter ratelimit.Store, m *metrics.Metrics) *PublicHandler {
	return &PublicHandler{
		recruits:     recruitService,
		campaigns:    campaignService,
		applyLimiter: applyLimiter,
		clickLimiter: clickLimiter,
		metrics:      m,
		validator:    validator.New(),
	}
}

func clientIP(c echo.Context) string {
	ip := c.RealIP()
	if ip == "" {
		ip = c.Request().RemoteAddr
	}
	return ip
}

// Apply accepts a membership application. Responses carry only
// {"ok":true} or a generic error; applicants never learn whether a
// referral code matched anything.
func (h *PublicHandler) Apply(c echo.Context) error {
	allowed, err := h.applyLimiter.Allow(c.Request().Context(), clientIP(c))
	if err != nil {
		// Limiter trouble is logged by the store; the form stays up.
		c.Logger().Warnf("apply limiter: %v", err)
	}
	if !allowed {
		if h.metrics != nil {
			h.metrics.RateLimitedTotal.WithLabelValues("apply").Inc()
		}
		return errors.RateLimitError(c)
	}

	var req models.ApplicationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	if _, err := h.recruits.SubmitApplication(c.Request().Context(), req); err != nil {
		if domain.IsValidation(err) {
			return errors.FromDomain(c, err)
		}
		return errors.InternalError(c, err)
	}

	if h.metrics != nil {
		h.metrics.ApplicationsTotal.Inc()
	}
	return c.JSON(http.StatusOK, models.OKResponse{OK: true})
}

// TrackClick records one click for a campaign reference. The body is
// always {"ok":bool}; the status code alone distinguishes a bad ref
// (400), unknown ref (404), rate limit (429) and server trouble (500).
func (h *PublicHandler) TrackClick(c echo.Context) error {
	allowed, err := h.clickLimiter.Allow(c.Request().Context(), clientIP(c))
	if err != nil {
		c.Logger().Warnf("click limiter: %v", err)
	}
	if !allowed {
		if h.metrics != nil {
			h.metrics.RateLimitedTotal.WithLabelValues("click").Inc()
		}
		return c.JSON(http.StatusTooManyRequests, models.OKResponse{OK: false})
	}

	var req models.TrackClickRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.OKResponse{OK: false})
	}

	if err := h.campaigns.RecordClick(c.Request().Context(), req.Ref); err != nil {
		switch {
		case domain.IsValidation(err):
			return c.JSON(http.StatusBadRequest, models.OKResponse{OK: false})
		case domain.IsNotFound(err):
			return c.JSON(http.StatusNotFound, models.OKResponse{OK: false})
		default:
			return c.JSON(http.StatusInternalServerError, models.OKResponse{OK: false})
		}
	}

	if h.metrics != nil {
		h.metrics.ClicksTotal.Inc()
	}
	return c.JSON(http.StatusOK, models.OKResponse{OK: true})
}
