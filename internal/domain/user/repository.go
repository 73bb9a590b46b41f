// internal/domain/user/repository.go
package user

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/infrastructure/storage"
)

// Repository reads and writes the profile and address keys of a session
type Repository struct {
	store  storage.Store
	logger logrus.FieldLogger
}

// NewRepository creates a user repository
func NewRepository(store storage.Store, logger logrus.FieldLogger) *Repository {
	return &Repository{store: store, logger: logger}
}

// LoadProfile returns the stored profile, nil when absent
func (r *Repository) LoadProfile(ctx context.Context, sessionID string) (*Profile, error) {
	return storage.Load[*Profile](ctx, r.store, r.logger, sessionID, storage.KeyUserProfile, nil)
}

// SaveProfile overwrites the stored profile
func (r *Repository) SaveProfile(ctx context.Context, sessionID string, p Profile) error {
	return storage.Save(ctx, r.store, sessionID, storage.KeyUserProfile, p)
}

// LoadAddresses returns the stored addresses, empty when absent
func (r *Repository) LoadAddresses(ctx context.Context, sessionID string) ([]Address, error) {
	addresses, err := storage.Load(ctx, r.store, r.logger, sessionID, storage.KeyUserAddresses, []Address{})
	if err != nil {
		return nil, err
	}
	if addresses == nil {
		addresses = []Address{}
	}
	return addresses, nil
}

// SaveAddresses overwrites the stored addresses
func (r *Repository) SaveAddresses(ctx context.Context, sessionID string, addresses []Address) error {
	if addresses == nil {
		addresses = []Address{}
	}
	return storage.Save(ctx, r.store, sessionID, storage.KeyUserAddresses, addresses)
}

// Has reports whether key holds a value for the session
func (r *Repository) Has(ctx context.Context, sessionID, key string) (bool, error) {
	_, ok, err := r.store.Get(ctx, sessionID, key)
	return ok, err
}
