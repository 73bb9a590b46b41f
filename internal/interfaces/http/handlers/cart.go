// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/wishlist"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	cartService     *cart.Service
	wishlistService *wishlist.Service
	logger          logrus.FieldLogger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService *cart.Service, wishlistService *wishlist.Service, logger logrus.FieldLogger) *CartHandler {
	return &CartHandler{
		cartService:     cartService,
		wishlistService: wishlistService,
		logger:          logger,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	summary, err := h.cartService.GetCart(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    summary,
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req cart.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	summary, err := h.cartService.AddToCart(c.Request.Context(), middleware.GetSessionID(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondChanged(c, "Item added to cart successfully", summary)
}

// AddProduct handles POST /cart/products/:id
func (h *CartHandler) AddProduct(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	summary, err := h.cartService.AddProduct(c.Request.Context(), middleware.GetSessionID(c), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondChanged(c, "Item added to cart successfully", summary)
}

// RemoveFromCart handles DELETE /cart/items/:index
func (h *CartHandler) RemoveFromCart(c *gin.Context) {
	index, ok := parseIndex(c, "index")
	if !ok {
		return
	}

	summary, err := h.cartService.RemoveFromCart(c.Request.Context(), middleware.GetSessionID(c), index)
	if errors.Is(err, cart.ErrNotFound) {
		respondUnchanged(c, "Item not found in cart", summary)
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondChanged(c, "Item removed from cart successfully", summary)
}

// GetBadges handles GET /badges
func (h *CartHandler) GetBadges(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := middleware.GetSessionID(c)

	cartSummary, err := h.cartService.GetCart(ctx, sessionID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	wishlistSummary, err := h.wishlistService.GetWishlist(ctx, sessionID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Badges retrieved successfully",
		"data": gin.H{
			"cart_count":     cartSummary.Count,
			"wishlist_count": wishlistSummary.Count,
		},
	})
}
