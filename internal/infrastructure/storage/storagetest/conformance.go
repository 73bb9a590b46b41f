// Package storagetest holds behaviour checks shared by every storage.Store backend.
package storagetest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/infrastructure/storage"
)

// Run exercises the storage.Store contract against a fresh store per subtest.
func Run(t *testing.T, newStore func(t *testing.T) storage.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("absent key", func(t *testing.T) {
		s := newStore(t)
		v, ok, err := s.Get(ctx, "session-a", storage.KeyCart)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("set overwrites wholesale", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "session-a", storage.KeyCart, []byte(`[{"name":"A"}]`)))
		require.NoError(t, s.Set(ctx, "session-a", storage.KeyCart, []byte(`[]`)))

		v, ok, err := s.Get(ctx, "session-a", storage.KeyCart)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[]`, string(v))
	})

	t.Run("namespaces are isolated", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Set(ctx, "session-a", storage.KeyWishlist, []byte(`["a"]`)))

		_, ok, err := s.Get(ctx, "session-b", storage.KeyWishlist)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("set many writes every key", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.SetMany(ctx, "session-a", map[string][]byte{
			storage.KeyCart:       []byte(`[]`),
			storage.KeyUserOrders: []byte(`[{"id":"123456"}]`),
			storage.KeyUserWallet: []byte(`{"balance":0,"transactions":[]}`),
		}))

		for _, key := range []string{storage.KeyCart, storage.KeyUserOrders, storage.KeyUserWallet} {
			_, ok, err := s.Get(ctx, "session-a", key)
			require.NoError(t, err)
			assert.True(t, ok, key)
		}
	})

	t.Run("health", func(t *testing.T) {
		s := newStore(t)
		assert.NoError(t, s.Health(ctx))
	})
}
