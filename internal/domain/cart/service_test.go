package cart

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/events"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/pkg/money"
)

type fakeCatalog map[int]catalog.Product

func (f fakeCatalog) Find(id int) (catalog.Product, bool) {
	p, ok := f[id]
	return p, ok
}

type testEnv struct {
	store   *storage.Memory
	service *Service
	events  []events.Event
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	env := &testEnv{store: storage.NewMemory()}
	bus := events.NewBus()
	bus.Subscribe(events.All, func(e events.Event) { env.events = append(env.events, e) })

	products := fakeCatalog{
		7: {ID: 7, Name: "Aurum Classic", Price: money.New(24999), Image: "a.jpg"},
	}
	env.service = NewService(NewRepository(env.store, log), storage.NewLocker(), bus, products, log)
	return env
}

func (e *testEnv) persisted(t *testing.T, sid string) []Item {
	t.Helper()
	items, err := e.service.repo.Load(context.Background(), sid)
	require.NoError(t, err)
	return items
}

func TestAddToCart_PersistsAndPublishes(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	summary, err := env.service.AddToCart(ctx, "sid", AddToCartRequest{Name: "Trail Runner", Price: money.New(4999), Image: "b.jpg"})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Count)
	assert.Equal(t, "4999", summary.Total.String())

	require.Len(t, env.persisted(t, "sid"), 1)
	require.Len(t, env.events, 1)
	assert.Equal(t, events.CartChanged, env.events[0].Topic)
	assert.Equal(t, "sid", env.events[0].SessionID)
}

func TestAddToCart_RequiresName(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.service.AddToCart(context.Background(), "sid", AddToCartRequest{Name: "  "})
	assert.ErrorIs(t, err, ErrInvalidItem)
	assert.Empty(t, env.events)
}

func TestAddProduct_ResolvesFromCatalog(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	summary, err := env.service.AddProduct(ctx, "sid", 7)
	require.NoError(t, err)
	require.Len(t, summary.Items, 1)
	assert.Equal(t, "Aurum Classic", summary.Items[0].Name)
	require.NotNil(t, summary.Items[0].ProductID)
	assert.Equal(t, 7, *summary.Items[0].ProductID)

	_, err = env.service.AddProduct(ctx, "sid", 8)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestRemoveFromCart_OutOfRangeIsNoop(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	_, err := env.service.AddToCart(ctx, "sid", AddToCartRequest{Name: "A", Price: money.New(10)})
	require.NoError(t, err)
	env.events = nil

	for _, idx := range []int{-1, 1, 5} {
		summary, err := env.service.RemoveFromCart(ctx, "sid", idx)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Equal(t, 1, summary.Count)
	}
	assert.Empty(t, env.events)
	assert.Len(t, env.persisted(t, "sid"), 1)
}

func TestCart_PersistedLengthTracksEveryOperation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	rng := rand.New(rand.NewPCG(1, 2))

	expected := 0
	for i := 0; i < 200; i++ {
		var summary Summary
		var err error
		if rng.IntN(3) == 0 {
			summary, err = env.service.RemoveFromCart(ctx, "sid", rng.IntN(expected+2)-1)
			if err == nil {
				expected--
			} else {
				require.ErrorIs(t, err, ErrNotFound)
			}
		} else {
			summary, err = env.service.AddToCart(ctx, "sid", AddToCartRequest{Name: "item", Price: money.New(int64(rng.IntN(1000)))})
			require.NoError(t, err)
			expected++
		}

		assert.Equal(t, expected, summary.Count)
		assert.Len(t, env.persisted(t, "sid"), summary.Count)
	}
}

func TestRepository_CoercesStoredStringPrices(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	require.NoError(t, env.store.Set(ctx, "sid", storage.KeyCart,
		[]byte(`[{"name":"A","price":"1499","image":"a.jpg"},{"name":"B","price":"n/a","image":"b.jpg"}]`)))

	summary, err := env.service.GetCart(ctx, "sid")
	require.NoError(t, err)
	require.Len(t, summary.Items, 2)
	assert.Equal(t, "1499", summary.Items[0].Price.String())
	assert.True(t, summary.Items[1].Price.IsZero())
	assert.Equal(t, "1499", summary.Total.String())

	// round trip after the coercion keeps numbers
	require.NoError(t, env.service.repo.Save(ctx, "sid", summary.Items))
	raw, _, err := env.store.Get(ctx, "sid", storage.KeyCart)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"name":"A","price":1499,"image":"a.jpg"},{"name":"B","price":0,"image":"b.jpg"}]`, string(raw))
}

func TestGetCart_EmptySession(t *testing.T) {
	env := newTestEnv(t)
	summary, err := env.service.GetCart(context.Background(), "fresh")
	require.NoError(t, err)
	assert.NotNil(t, summary.Items)
	assert.Equal(t, 0, summary.Count)
	assert.True(t, summary.Total.IsZero())
}

func TestClone_IsIndependent(t *testing.T) {
	id := 3
	items := []Item{{Name: "A", ProductID: &id}}
	snapshot := Clone(items)
	*items[0].ProductID = 9
	items[0].Name = "changed"

	assert.Equal(t, "A", snapshot[0].Name)
	assert.Equal(t, 3, *snapshot[0].ProductID)
}
