// internal/domain/order/repository.go
package order

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/infrastructure/storage"
)

// Repository reads and writes the order list of a session, oldest first
type Repository struct {
	store  storage.Store
	logger logrus.FieldLogger
}

// NewRepository creates an order repository
func NewRepository(store storage.Store, logger logrus.FieldLogger) *Repository {
	return &Repository{store: store, logger: logger}
}

// Load returns the persisted orders, empty when absent or unreadable
func (r *Repository) Load(ctx context.Context, sessionID string) ([]Order, error) {
	orders, err := storage.Load(ctx, r.store, r.logger, sessionID, storage.KeyUserOrders, []Order{})
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []Order{}
	}
	return orders, nil
}

// Stage adds the order list to a batch written together with other keys
func (r *Repository) Stage(b *storage.Batch, orders []Order) {
	if orders == nil {
		orders = []Order{}
	}
	b.Put(storage.KeyUserOrders, orders)
}

func indexOf(orders []Order, id string) int {
	for i := range orders {
		if orders[i].ID == id {
			return i
		}
	}
	return -1
}
