package middleware

import (
	"net/http"

	"github.com/dustward/campbase/pkg/models"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// RequireAdmin ensures the authenticated user still has the admin flag.
// The flag is re-read from the database rather than trusted from the
// token, so a demotion takes effect before the token expires.
func RequireAdmin(db *gorm.DB) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Get user ID from context (set by JWT middleware)
			userID, ok := c.Get("user_id").(uint)
			if !ok {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
					Error:   "unauthorized",
					Message: "Authentication required",
				})
			}

			var user models.User
			if err := db.WithContext(c.Request().Context()).First(&user, userID).Error; err != nil {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
					Error:   "user_not_found",
					Message: "User not found",
				})
			}

			if !user.IsAdmin {
				return c.JSON(http.StatusForbidden, models.ErrorResponse{
					Error:   "forbidden",
					Message: "Admin access required",
				})
			}

			return next(c)
		}
	}
}
