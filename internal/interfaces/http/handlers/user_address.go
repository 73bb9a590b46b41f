// internal/interfaces/http/handlers/user_address.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// UserAddressHandler handles address book endpoints
type UserAddressHandler struct {
	userService *user.Service
	logger      logrus.FieldLogger
}

// NewUserAddressHandler creates a new address handler
func NewUserAddressHandler(userService *user.Service, logger logrus.FieldLogger) *UserAddressHandler {
	return &UserAddressHandler{
		userService: userService,
		logger:      logger,
	}
}

// GetAddresses handles GET /addresses
func (h *UserAddressHandler) GetAddresses(c *gin.Context) {
	book, err := h.userService.ListAddresses(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Addresses retrieved successfully",
		"data":    book,
	})
}

// CreateAddress handles POST /addresses
func (h *UserAddressHandler) CreateAddress(c *gin.Context) {
	var req user.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	book, err := h.userService.AddAddress(c.Request.Context(), middleware.GetSessionID(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Address added successfully",
		"changed": true,
		"data":    book,
	})
}

// DeleteAddress handles DELETE /addresses/:index
func (h *UserAddressHandler) DeleteAddress(c *gin.Context) {
	index, ok := parseIndex(c, "index")
	if !ok {
		return
	}

	book, err := h.userService.RemoveAddress(c.Request.Context(), middleware.GetSessionID(c), index)
	if errors.Is(err, user.ErrNotFound) {
		respondUnchanged(c, "Address not found", book)
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondChanged(c, "Address removed successfully", book)
}
