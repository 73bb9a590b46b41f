// internal/interfaces/http/handlers/user_profile.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// UserProfileHandler handles profile endpoints
type UserProfileHandler struct {
	userService *user.Service
	logger      logrus.FieldLogger
}

// NewUserProfileHandler creates a new profile handler
func NewUserProfileHandler(userService *user.Service, logger logrus.FieldLogger) *UserProfileHandler {
	return &UserProfileHandler{
		userService: userService,
		logger:      logger,
	}
}

// GetProfile handles GET /profile
func (h *UserProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.userService.GetProfile(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile retrieved successfully",
		"data":    profile,
	})
}

// UpdateProfile handles PUT /profile
func (h *UserProfileHandler) UpdateProfile(c *gin.Context) {
	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	profile, err := h.userService.SaveProfile(c.Request.Context(), middleware.GetSessionID(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondChanged(c, "Profile saved successfully", profile)
}
