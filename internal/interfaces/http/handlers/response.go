// internal/interfaces/http/handlers/response.go
package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/domain/wallet"
	"github.com/your-org/storefront/internal/domain/wishlist"
	"github.com/your-org/storefront/internal/pkg/validation"
)

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, validation.ErrInvalid):
		return http.StatusUnprocessableEntity
	case errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrNoAddress),
		errors.Is(err, order.ErrNoPaymentMethod),
		errors.Is(err, order.ErrReasonRequired),
		errors.Is(err, wallet.ErrInsufficientFunds),
		errors.Is(err, wallet.ErrInvalidAmount),
		errors.Is(err, cart.ErrInvalidItem),
		errors.Is(err, wishlist.ErrInvalidItem):
		return http.StatusBadRequest
	case errors.Is(err, order.ErrNotCancellable),
		errors.Is(err, order.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, order.ErrNotFound),
		errors.Is(err, cart.ErrNotFound),
		errors.Is(err, cart.ErrProductNotFound),
		errors.Is(err, wishlist.ErrNotFound),
		errors.Is(err, user.ErrNotFound),
		errors.Is(err, order.ErrInvoiceDisabled):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// respondError writes err as {"error": ...}. Server errors are logged and
// their details hidden from the client.
func respondError(c *gin.Context, logger logrus.FieldLogger, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		logger.WithError(err).WithField("path", c.FullPath()).Error("Request failed")
		c.JSON(status, gin.H{
			"error": "Internal server error",
		})
		return
	}

	body := gin.H{"error": err.Error()}
	var verr *validation.Error
	if errors.As(err, &verr) {
		body["error"] = "Invalid request data"
		body["fields"] = verr.Fields
	}
	c.JSON(status, body)
}

// respondBindError reports malformed request bodies
func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":   "Invalid request data",
		"details": err.Error(),
	})
}

// bindOptionalJSON binds a JSON body but treats an empty body as the zero
// request, leaving validation to the service
func bindOptionalJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// respondUnchanged reports a silently ignored mutation along with the
// current state
func respondUnchanged(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"changed": false,
		"data":    data,
	})
}

// respondChanged reports a successful mutation
func respondChanged(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"changed": true,
		"data":    data,
	})
}

// parseIndex reads a list position from the named path parameter. Range
// checks are left to the services.
func parseIndex(c *gin.Context, name string) (int, bool) {
	index, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid index",
		})
		return 0, false
	}
	return index, true
}

// parseID reads a positive catalog ID from the named path parameter
func parseID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product ID",
		})
		return 0, false
	}
	return id, true
}
