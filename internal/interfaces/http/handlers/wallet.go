// internal/interfaces/http/handlers/wallet.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/wallet"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// WalletHandler handles wallet endpoints
type WalletHandler struct {
	walletService *wallet.Service
	logger        logrus.FieldLogger
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletService *wallet.Service, logger logrus.FieldLogger) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
		logger:        logger,
	}
}

// GetWallet handles GET /wallet
func (h *WalletHandler) GetWallet(c *gin.Context) {
	view, err := h.walletService.GetWallet(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Wallet retrieved successfully",
		"data":    view,
	})
}

// AddFunds handles POST /wallet/funds
func (h *WalletHandler) AddFunds(c *gin.Context) {
	var req wallet.AddFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	view, err := h.walletService.AddFunds(c.Request.Context(), middleware.GetSessionID(c), req.Amount)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondChanged(c, "Funds added successfully", view)
}
