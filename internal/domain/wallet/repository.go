// internal/domain/wallet/repository.go
package wallet

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/infrastructure/storage"
)

// Repository reads and writes the wallet key of a session
type Repository struct {
	store  storage.Store
	logger logrus.FieldLogger
}

// NewRepository creates a wallet repository
func NewRepository(store storage.Store, logger logrus.FieldLogger) *Repository {
	return &Repository{store: store, logger: logger}
}

// Load returns the persisted wallet. A missing wallet is created lazily as empty.
func (r *Repository) Load(ctx context.Context, sessionID string) (Wallet, error) {
	w, err := storage.Load(ctx, r.store, r.logger, sessionID, storage.KeyUserWallet, New())
	if err != nil {
		return Wallet{}, err
	}
	w.normalize()
	return w, nil
}

// Save overwrites the persisted wallet
func (r *Repository) Save(ctx context.Context, sessionID string, w Wallet) error {
	w.normalize()
	return storage.Save(ctx, r.store, sessionID, storage.KeyUserWallet, w)
}

// Stage adds the wallet to a batch written together with other keys
func (r *Repository) Stage(b *storage.Batch, w Wallet) {
	w.normalize()
	b.Put(storage.KeyUserWallet, w)
}
