package errors

import (
	"log"
	"net/http"

	"github.com/dustward/campbase/pkg/domain"
	"github.com/dustward/campbase/pkg/models"
	"github.com/labstack/echo/v4"
)

// ValidationError returns a generic validation error without exposing internal details
func ValidationError(c echo.Context, err error) error {
	log.Printf("[VALIDATION ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)

	return c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:   "validation_error",
		Message: "Invalid request data. Please check your input and try again.",
	})
}

// InternalError returns a generic internal server error
func InternalError(c echo.Context, err error) error {
	log.Printf("[INTERNAL ERROR] Path: %s, Error: %v", c.Request().URL.Path, err)

	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred. Please try again later.",
	})
}

// UnauthorizedError returns a generic unauthorized error
func UnauthorizedError(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
		Error:   "unauthorized",
		Message: "You are not authorized to access this resource.",
	})
}

// ForbiddenError returns a generic forbidden error
func ForbiddenError(c echo.Context, message string) error {
	if message == "" {
		message = "You do not have permission to access this resource."
	}
	return c.JSON(http.StatusForbidden, models.ErrorResponse{
		Error:   "forbidden",
		Message: message,
	})
}

// NotFoundError returns a generic not found error
func NotFoundError(c echo.Context) error {
	return c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error:   "not_found",
		Message: "The requested resource was not found.",
	})
}

// ConflictError returns a conflict error
func ConflictError(c echo.Context, message string) error {
	return c.JSON(http.StatusConflict, models.ErrorResponse{
		Error:   "conflict",
		Message: message, // Message is safe to expose (e.g., "Case ref already exists")
	})
}

// RateLimitError returns a 429 for the public endpoint limiters
func RateLimitError(c echo.Context) error {
	return c.JSON(http.StatusTooManyRequests, models.ErrorResponse{
		Error:   "rate_limited",
		Message: "Too many requests. Please try again later.",
	})
}

// FromDomain maps a domain error to its HTTP response. Handlers use it
// so the status taxonomy stays in one place.
func FromDomain(c echo.Context, err error) error {
	domainErr, ok := err.(*domain.DomainError)
	if !ok {
		return InternalError(c, err)
	}

	switch domainErr.Code {
	case domain.ErrCodeNotFound:
		return NotFoundError(c)
	case domain.ErrCodeValidation:
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: domainErr.Message,
		})
	case domain.ErrCodeRateLimited:
		return RateLimitError(c)
	case domain.ErrCodeUnauthorized:
		return UnauthorizedError(c)
	case domain.ErrCodeForbidden:
		return ForbiddenError(c, domainErr.Message)
	case domain.ErrCodeConflict:
		return ConflictError(c, domainErr.Message)
	case domain.ErrCodeBadRequest:
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "bad_request",
			Message: domainErr.Message,
		})
	default:
		return InternalError(c, err)
	}
}
