package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dustward/campbase/config"
	apierrors "github.com/dustward/campbase/pkg/api/errors"
	"github.com/dustward/campbase/pkg/analytics"
	"github.com/dustward/campbase/pkg/auth"
	"github.com/dustward/campbase/pkg/invites"
	"github.com/dustward/campbase/pkg/models"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	db        *gorm.DB
	config    *config.Config
	blacklist *auth.TokenBlacklist
	invites   *invites.Service
	analytics *analytics.Service
	validator *validator.Validate
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, cfg *config.Config, blacklist *auth.TokenBlacklist, inviteService *invites.Service, analyticsService *analytics.Service) *AuthHandler {
	return &AuthHandler{
		db:        db,
		config:    cfg,
		blacklist: blacklist,
		invites:   inviteService,
		analytics: analyticsService,
		validator: validator.New(),
	}
}

func (h *AuthHandler) summary(u *models.User) models.UserSummary {
	return models.UserSummary{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		IsAdmin: u.IsAdmin,
	}
}

// Register creates an account from an invite code. The code is consumed
// in the same transaction that creates the user, so a crash cannot burn
// a code without an account to show for it.
func (h *AuthHandler) Register(c echo.Context) error {
	var req models.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if err := h.validator.Struct(req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	valid, err := h.invites.Valid(ctx, req.InviteCode)
	if err != nil {
		return apierrors.InternalError(c, err)
	}
	if !valid {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_invite",
			Message: "Invalid invite code",
		})
	}

	var exists int64
	if err := h.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", req.Email).Count(&exists).Error; err != nil {
		return apierrors.InternalError(c, err)
	}
	if exists > 0 {
		return apierrors.ConflictError(c, "An account with this email already exists")
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	user := models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hashed,
	}
	err = h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.Member{UserID: user.ID, Status: "active"}).Error; err != nil {
			return err
		}
		result := tx.Model(&models.InviteCode{}).
			Where("code = ? AND used_by_id IS NULL", req.InviteCode).
			Updates(map[string]interface{}{"used_by_id": user.ID, "used_at": time.Now()})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// Raced another registration for the same code.
			return errors.New("invite code already used")
		}
		return nil
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_invite",
			Message: "Invalid invite code",
		})
	}

	token, err := auth.GenerateJWT(user.ID, user.Email, user.IsAdmin, h.config.JWTSecret, h.config.JWTExpirationHours)
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	return c.JSON(http.StatusOK, models.LoginResponse{Token: token, User: h.summary(&user)})
}

// Login verifies credentials and issues a JWT.
func (h *AuthHandler) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Invalid request body",
		})
	}
	if err := h.validator.Struct(req); err != nil {
		return apierrors.ValidationError(c, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	var user models.User
	err := h.db.WithContext(ctx).Where("email = ?", req.Email).First(&user).Error
	// Same response for unknown email and wrong password.
	if err != nil || !auth.CheckPassword(req.Password, user.PasswordHash) {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{
			Error:   "invalid_credentials",
			Message: "Invalid email or password",
		})
	}

	token, err := auth.GenerateJWT(user.ID, user.Email, user.IsAdmin, h.config.JWTSecret, h.config.JWTExpirationHours)
	if err != nil {
		return apierrors.InternalError(c, err)
	}

	if err := h.analytics.RecordLogin(ctx, user.ID); err != nil {
		c.Logger().Warnf("record login: %v", err)
	}

	return c.JSON(http.StatusOK, models.LoginResponse{Token: token, User: h.summary(&user)})
}

// Logout revokes the presented token for its remaining lifetime.
func (h *AuthHandler) Logout(c echo.Context) error {
	tokenString, ok := c.Get("token").(string)
	if !ok || tokenString == "" {
		return apierrors.UnauthorizedError(c)
	}

	ttl := time.Duration(h.config.JWTExpirationHours) * time.Hour
	if err := h.blacklist.Add(c.Request().Context(), tokenString, ttl); err != nil {
		return apierrors.InternalError(c, err)
	}

	return c.JSON(http.StatusOK, models.OKResponse{OK: true})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return apierrors.UnauthorizedError(c)
	}

	var user models.User
	if err := h.db.WithContext(c.Request().Context()).
		Preload("Member").First(&user, userID).Error; err != nil {
		return apierrors.UnauthorizedError(c)
	}

	return c.JSON(http.StatusOK, user)
}
