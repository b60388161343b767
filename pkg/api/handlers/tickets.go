package handlers

import (
	"net/http"
	"strconv"

	"github.com/dustward/campbase/pkg/api/errors"
	"github.com/dustward/campbase/pkg/models"
	"github.com/dustward/campbase/pkg/tickets"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// TicketHandler handles ticket inventory endpoints
type TicketHandler struct {
	tickets   *tickets.Service
	validator *validator.Validate
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketService *tickets.Service) *TicketHandler {
	return &TicketHandler{
		tickets:   ticketService,
		validator: validator.New(),
	}
}

// List returns all tickets (admin).
func (h *TicketHandler) List(c echo.Context) error {
	all, err := h.tickets.List(c.Request().Context())
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, all)
}

// Availability returns open inventory counts by type (member view).
func (h *TicketHandler) Availability(c echo.Context) error {
	rows, err := h.tickets.Availability(c.Request().Context())
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// Coverage returns per-member ticket standing (admin).
func (h *TicketHandler) Coverage(c echo.Context) error {
	rows, err := h.tickets.Coverage(c.Request().Context())
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, rows)
}

// Create batch-creates tickets.
func (h *TicketHandler) Create(c echo.Context) error {
	var req models.CreateTicketRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	created, err := h.tickets.Create(c.Request().Context(), req)
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusCreated, created)
}

// Update partially updates a ticket.
func (h *TicketHandler) Update(c echo.Context) error {
	var req models.UpdateTicketRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	ticket, err := h.tickets.Update(c.Request().Context(), req)
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, ticket)
}

// Delete removes a ticket.
func (h *TicketHandler) Delete(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return errors.ValidationError(c, err)
	}

	if err := h.tickets.Delete(c.Request().Context(), uint(id)); err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, models.OKResponse{OK: true})
}

// Mine returns the tickets earmarked for or requested by the caller.
func (h *TicketHandler) Mine(c echo.Context) error {
	email, ok := c.Get("user_email").(string)
	if !ok || email == "" {
		return errors.UnauthorizedError(c)
	}

	tickets, err := h.tickets.Mine(c.Request().Context(), email)
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, tickets)
}

// Request lets the authenticated member claim an available ticket.
func (h *TicketHandler) Request(c echo.Context) error {
	email, ok := c.Get("user_email").(string)
	if !ok || email == "" {
		return errors.UnauthorizedError(c)
	}

	var req models.RequestTicketRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if err := h.validator.Struct(req); err != nil {
		return errors.ValidationError(c, err)
	}

	ticket, err := h.tickets.Request(c.Request().Context(), email, req)
	if err != nil {
		return errors.FromDomain(c, err)
	}
	return c.JSON(http.StatusOK, ticket)
}
