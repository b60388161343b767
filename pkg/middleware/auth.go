package middleware

import (
	"net/http"
	"strings"

	"github.com/dustward/campbase/pkg/auth"
	"github.com/dustward/campbase/pkg/models"
	"github.com/labstack/echo/v4"
)

// JWTMiddleware validates the Bearer token and puts the claims into the
// echo context under user_id, user_email and is_admin.
func JWTMiddleware(secret string) echo.MiddlewareFunc {
	return jwtMiddleware(secret, nil)
}

// JWTMiddlewareWithBlacklist also rejects tokens revoked via logout.
func JWTMiddlewareWithBlacklist(secret string, blacklist *auth.TokenBlacklist) echo.MiddlewareFunc {
	return jwtMiddleware(secret, blacklist)
}

func jwtMiddleware(secret string, blacklist *auth.TokenBlacklist) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if header == "" {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
					Error:   "unauthorized",
					Message: "Authentication required",
				})
			}

			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
					Error:   "unauthorized",
					Message: "Invalid authorization header",
				})
			}

			claims, err := auth.ValidateJWTWithBlacklist(c.Request().Context(), tokenString, secret, blacklist)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
					Error:   "unauthorized",
					Message: "Invalid or expired token",
				})
			}

			c.Set("user_id", claims.UserID)
			c.Set("user_email", claims.Email)
			c.Set("is_admin", claims.IsAdmin)
			c.Set("token", tokenString)

			return next(c)
		}
	}
}
