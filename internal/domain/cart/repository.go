// internal/domain/cart/repository.go
package cart

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/infrastructure/storage"
)

// Repository reads and writes the cart key of a session.
// It does not lock; callers hold the session lock.
type Repository struct {
	store  storage.Store
	logger logrus.FieldLogger
}

// NewRepository creates a cart repository
func NewRepository(store storage.Store, logger logrus.FieldLogger) *Repository {
	return &Repository{store: store, logger: logger}
}

// Load returns the persisted cart, empty when absent or unreadable
func (r *Repository) Load(ctx context.Context, sessionID string) ([]Item, error) {
	return storage.Load(ctx, r.store, r.logger, sessionID, storage.KeyCart, []Item{})
}

// Save overwrites the persisted cart
func (r *Repository) Save(ctx context.Context, sessionID string, items []Item) error {
	return storage.Save(ctx, r.store, sessionID, storage.KeyCart, nonNil(items))
}

// Stage adds the cart to a batch written together with other keys
func (r *Repository) Stage(b *storage.Batch, items []Item) {
	b.Put(storage.KeyCart, nonNil(items))
}

func nonNil(items []Item) []Item {
	if items == nil {
		return []Item{}
	}
	return items
}
