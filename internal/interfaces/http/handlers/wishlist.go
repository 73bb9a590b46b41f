// internal/interfaces/http/handlers/wishlist.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/wishlist"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	wishlistService *wishlist.Service
	logger          logrus.FieldLogger
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(wishlistService *wishlist.Service, logger logrus.FieldLogger) *WishlistHandler {
	return &WishlistHandler{
		wishlistService: wishlistService,
		logger:          logger,
	}
}

// GetWishlist handles GET /wishlist
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	summary, err := h.wishlistService.GetWishlist(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wishlist retrieved successfully",
		"data":    summary,
	})
}

// Toggle handles POST /wishlist/toggle
func (h *WishlistHandler) Toggle(c *gin.Context) {
	var req wishlist.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	result, err := h.wishlistService.Toggle(c.Request.Context(), middleware.GetSessionID(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondChanged(c, toggleMessage(result), result)
}

// ToggleProduct handles POST /wishlist/products/:id/toggle
func (h *WishlistHandler) ToggleProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := h.wishlistService.ToggleProduct(c.Request.Context(), middleware.GetSessionID(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondChanged(c, toggleMessage(result), result)
}

func toggleMessage(result wishlist.ToggleResult) string {
	if result.InWishlist {
		return "Added to wishlist"
	}
	return "Removed from wishlist"
}

// RemoveFromWishlist handles DELETE /wishlist/items/:index
func (h *WishlistHandler) RemoveFromWishlist(c *gin.Context) {
	index, ok := parseIndex(c, "index")
	if !ok {
		return
	}

	summary, err := h.wishlistService.Remove(c.Request.Context(), middleware.GetSessionID(c), index)
	if errors.Is(err, wishlist.ErrNotFound) {
		respondUnchanged(c, "Item not found in wishlist", summary)
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondChanged(c, "Item removed from wishlist", summary)
}

// MoveToCart handles POST /wishlist/items/:index/move-to-cart
func (h *WishlistHandler) MoveToCart(c *gin.Context) {
	index, ok := parseIndex(c, "index")
	if !ok {
		return
	}

	result, err := h.wishlistService.MoveToCart(c.Request.Context(), middleware.GetSessionID(c), index)
	if errors.Is(err, wishlist.ErrNotFound) {
		respondUnchanged(c, "Item not found in wishlist", result)
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondChanged(c, "Item moved to cart", result)
}
