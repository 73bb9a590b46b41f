package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/domain/wallet"
	"github.com/your-org/storefront/internal/domain/wishlist"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// Account page tabs
const (
	TabProfile   = "profile"
	TabAddresses = "addresses"
	TabOrders    = "orders"
	TabWallet    = "wallet"
	TabCart      = "cart"
	TabWishlist  = "wishlist"
	TabCheckout  = "checkout"
)

// AccountHandler serves the account page one tab at a time
type AccountHandler struct {
	tabs   map[string]func(ctx context.Context, sessionID string) (any, error)
	logger logrus.FieldLogger
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(
	userService *user.Service,
	orderService *order.Service,
	walletService *wallet.Service,
	cartService *cart.Service,
	wishlistService *wishlist.Service,
	logger logrus.FieldLogger,
) *AccountHandler {
	return &AccountHandler{
		logger: logger,
		tabs: map[string]func(ctx context.Context, sessionID string) (any, error){
			TabProfile: func(ctx context.Context, sid string) (any, error) {
				return userService.GetProfile(ctx, sid)
			},
			TabAddresses: func(ctx context.Context, sid string) (any, error) {
				return userService.ListAddresses(ctx, sid)
			},
			TabOrders: func(ctx context.Context, sid string) (any, error) {
				orders, err := orderService.ListOrders(ctx, sid)
				if err != nil {
					return nil, err
				}
				return gin.H{"orders": orders, "count": len(orders)}, nil
			},
			TabWallet: func(ctx context.Context, sid string) (any, error) {
				return walletService.GetWallet(ctx, sid)
			},
			TabCart: func(ctx context.Context, sid string) (any, error) {
				return cartService.GetCart(ctx, sid)
			},
			TabWishlist: func(ctx context.Context, sid string) (any, error) {
				return wishlistService.GetWishlist(ctx, sid)
			},
			TabCheckout: func(ctx context.Context, sid string) (any, error) {
				return orderService.Checkout(ctx, sid)
			},
		},
	}
}

// GetAccount handles GET /account?tab=<name>. The profile tab is the default.
func (h *AccountHandler) GetAccount(c *gin.Context) {
	tab := strings.ToLower(strings.TrimSpace(c.DefaultQuery("tab", TabProfile)))
	load, ok := h.tabs[tab]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown account tab",
		})
		return
	}

	data, err := load(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account retrieved successfully",
		"tab":     tab,
		"data":    data,
	})
}
