// internal/domain/user/seeder.go
package user

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/wallet"
	"github.com/your-org/storefront/internal/infrastructure/storage"
)

// ErrNoMockUsers is returned when the users source is an empty list
var ErrNoMockUsers = errors.New("users source has no records")

// Seeder fills a session's profile, addresses and wallet from the first mock
// user, for each of those keys that is absent from the store. Keys a backend
// has expired count as absent and are seeded again.
type Seeder struct {
	source   *catalog.Source
	location string
	store    storage.Store
	locker   *storage.Locker
	logger   logrus.FieldLogger

	mu   sync.Mutex
	user *MockUser
}

// NewSeeder creates a seeder reading mock users from location
func NewSeeder(source *catalog.Source, location string, store storage.Store, locker *storage.Locker, logger logrus.FieldLogger) *Seeder {
	return &Seeder{
		source:   source,
		location: location,
		store:    store,
		locker:   locker,
		logger:   logger,
	}
}

// mockUser loads the users source once it succeeds; failures are retried on the next call
func (s *Seeder) mockUser(ctx context.Context) (*MockUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user != nil {
		return s.user, nil
	}

	var users []MockUser
	if err := s.source.FetchJSON(ctx, s.location, &users); err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("%w: %w", catalog.ErrLoad, ErrNoMockUsers)
	}
	s.user = &users[0]
	return s.user, nil
}

// Seed writes the absent keys for sessionID. A source failure is logged and
// nothing is written; reads then fall back to empty defaults.
func (s *Seeder) Seed(ctx context.Context, sessionID string) error {
	unlock := s.locker.Lock(sessionID)
	defer unlock()

	missing := make(map[string]bool, 3)
	for _, key := range []string{storage.KeyUserProfile, storage.KeyUserAddresses, storage.KeyUserWallet} {
		_, ok, err := s.store.Get(ctx, sessionID, key)
		if err != nil {
			return fmt.Errorf("failed to check %s: %w", key, err)
		}
		if !ok {
			missing[key] = true
		}
	}
	if len(missing) == 0 {
		return nil
	}

	mock, err := s.mockUser(ctx)
	if err != nil {
		s.logger.WithError(err).WithField("session_id", sessionID).Warn("Failed to load mock user data")
		return err
	}

	batch := storage.NewBatch()
	if missing[storage.KeyUserProfile] {
		batch.Put(storage.KeyUserProfile, mock.Profile())
	}
	if missing[storage.KeyUserAddresses] {
		addresses := mock.Addresses
		if addresses == nil {
			addresses = []Address{}
		}
		batch.Put(storage.KeyUserAddresses, addresses)
	}
	if missing[storage.KeyUserWallet] {
		w := wallet.New()
		if mock.Wallet != nil {
			w = *mock.Wallet
			if w.Transactions == nil {
				w.Transactions = []wallet.Transaction{}
			}
		}
		batch.Put(storage.KeyUserWallet, w)
	}
	if err := batch.Commit(ctx, s.store, sessionID); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"keys":       len(missing),
	}).Info("Seeded session from mock user")
	return nil
}
