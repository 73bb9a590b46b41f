// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/pkg/money"
)

// OrderStatus represents the order status
type OrderStatus string

const (
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusCompleted  OrderStatus = "Completed"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

// Payment methods
const (
	PaymentMethodWallet = "wallet"
	PaymentMethodCOD    = "cod"
	PaymentMethodCard   = "card"
	PaymentMethodUPI    = "upi"
)

// Order is a snapshot of a checkout. Items, total and shipping address are
// copies taken at creation and never follow later cart or address changes.
type Order struct {
	ID                   string       `json:"id"`
	Date                 time.Time    `json:"date"`
	Status               OrderStatus  `json:"status"`
	Items                []cart.Item  `json:"items"`
	Total                money.Amount `json:"total"`
	ShippingAddress      user.Address `json:"shippingAddress"`
	PaymentMethod        string       `json:"paymentMethod"`
	CancellationReason   string       `json:"cancellationReason,omitempty"`
	CancellationComments string       `json:"cancellationComments,omitempty"`
}

// Business methods for Order

// CanBeCancelled checks if order can be cancelled
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderStatusProcessing
}

// IsCompleted checks if order is completed
func (o *Order) IsCompleted() bool {
	return o.Status == OrderStatusCompleted
}

// ItemCount returns the number of lines in the order
func (o *Order) ItemCount() int {
	return len(o.Items)
}

var validTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusProcessing: {
		OrderStatusCompleted,
		OrderStatusCancelled,
	},
}

func isValidStatusTransition(from, to OrderStatus) bool {
	for _, status := range validTransitions[from] {
		if status == to {
			return true
		}
	}
	return false
}
