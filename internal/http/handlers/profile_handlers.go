package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/coursefinder/domain"
	"github.com/you/coursefinder/internal/http/middleware"
	"go.uber.org/zap"
)

// ProfileHandlers serves the caller's own profile
type ProfileHandlers struct {
	authSvc domain.AuthService
	logger  *zap.Logger
}

// NewProfileHandlers creates new profile handlers
func NewProfileHandlers(authSvc domain.AuthService, logger *zap.Logger) *ProfileHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileHandlers{
		authSvc: authSvc,
		logger:  logger.With(zap.String("component", "profile_handlers")),
	}
}

// UpdateProfileRequest carries optional profile fields. Absent fields are
// left untouched.
type UpdateProfileRequest struct {
	FullName      *string `json:"fullName" binding:"omitempty,max=100"`
	Username      *string `json:"username" binding:"omitempty,min=3,max=32"`
	PreferredDark *bool   `json:"preferredDark"`
}

// ProfileResponse is the public view of an account
type ProfileResponse struct {
	ID            string `json:"id"`
	FullName      string `json:"fullName"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	PreferredDark *bool  `json:"preferredDark"`
}

func newProfileResponse(account *domain.Account) ProfileResponse {
	return ProfileResponse{
		ID:            account.ID,
		FullName:      account.FullName,
		Username:      account.Username,
		Email:         account.Email,
		PreferredDark: account.PreferredDark,
	}
}

// Get returns the caller's profile
func (h *ProfileHandlers) Get(c *gin.Context) {
	accountID := c.GetString(middleware.ContextAccountID)
	if accountID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account ID not found in context"})
		return
	}

	account, err := h.authSvc.GetProfile(c.Request.Context(), accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		h.logger.Error("failed to get profile", zap.String("account_id", accountID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get profile"})
		return
	}

	c.JSON(http.StatusOK, newProfileResponse(account))
}

// Update applies a partial profile update
func (h *ProfileHandlers) Update(c *gin.Context) {
	accountID := c.GetString(middleware.ContextAccountID)
	if accountID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account ID not found in context"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := h.authSvc.UpdateProfile(c.Request.Context(), accountID, domain.ProfileUpdate{
		FullName:      req.FullName,
		Username:      req.Username,
		PreferredDark: req.PreferredDark,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, domain.ErrConflict):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already used"})
		default:
			h.logger.Error("failed to update profile", zap.String("account_id", accountID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}
