// internal/domain/wishlist/repository.go
package wishlist

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/infrastructure/storage"
)

// Repository reads and writes the wishlist key of a session
type Repository struct {
	store  storage.Store
	logger logrus.FieldLogger
}

// NewRepository creates a wishlist repository
func NewRepository(store storage.Store, logger logrus.FieldLogger) *Repository {
	return &Repository{store: store, logger: logger}
}

// Load returns the persisted wishlist, empty when absent or unreadable
func (r *Repository) Load(ctx context.Context, sessionID string) ([]Item, error) {
	return storage.Load(ctx, r.store, r.logger, sessionID, storage.KeyWishlist, []Item{})
}

// Save overwrites the persisted wishlist
func (r *Repository) Save(ctx context.Context, sessionID string, items []Item) error {
	return storage.Save(ctx, r.store, sessionID, storage.KeyWishlist, nonNil(items))
}

// Stage adds the wishlist to a batch written together with other keys
func (r *Repository) Stage(b *storage.Batch, items []Item) {
	b.Put(storage.KeyWishlist, nonNil(items))
}

func nonNil(items []Item) []Item {
	if items == nil {
		return []Item{}
	}
	return items
}
