// internal/interfaces/http/handlers/invoice.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// InvoiceHandler handles invoice-related endpoints
type InvoiceHandler struct {
	orderService *order.Service
	logger       logrus.FieldLogger
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(orderService *order.Service, logger logrus.FieldLogger) *InvoiceHandler {
	return &InvoiceHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// GenerateInvoice handles GET /orders/:id/invoice
func (h *InvoiceHandler) GenerateInvoice(c *gin.Context) {
	orderID := c.Param("id")

	pdf, err := h.orderService.Invoice(c.Request.Context(), middleware.GetSessionID(c), orderID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	// Set headers for PDF download
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", orderID))
	c.Header("Content-Length", strconv.Itoa(len(pdf)))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
