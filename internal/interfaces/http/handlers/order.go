// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	orderService *order.Service
	logger       logrus.FieldLogger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service, logger logrus.FieldLogger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// GetOrders handles GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context(), middleware.GetSessionID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data": gin.H{
			"orders": orders,
			"count":  len(orders),
		},
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	o, err := h.orderService.GetOrder(c.Request.Context(), middleware.GetSessionID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    o,
	})
}

// CancelOrder handles PUT /orders/:id/cancel
func (h *OrderHandler) CancelOrder(c *gin.Context) {
	var req order.CancelOrderRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		respondBindError(c, err)
		return
	}

	ctx := c.Request.Context()
	sessionID := middleware.GetSessionID(c)

	result, err := h.orderService.CancelOrder(ctx, sessionID, c.Param("id"), req)
	if errors.Is(err, order.ErrNotFound) {
		orders, listErr := h.orderService.ListOrders(ctx, sessionID)
		if listErr != nil {
			respondError(c, h.logger, listErr)
			return
		}
		respondUnchanged(c, "Order not found", gin.H{"orders": orders, "count": len(orders)})
		return
	}
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondChanged(c, "Order cancelled successfully", result)
}

// CompleteOrder handles PUT /orders/:id/complete
func (h *OrderHandler) CompleteOrder(c *gin.Context) {
	o, err := h.orderService.CompleteOrder(c.Request.Context(), middleware.GetSessionID(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondChanged(c, "Order completed successfully", o)
}
