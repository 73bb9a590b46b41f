package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/pkg/money"
)

const sampleCatalog = `[
  {"id": 1, "name": "Aurum Classic", "category": "premium", "price": 24999, "image": "a.jpg",
   "details": {"Material": "18K Gold", "Usage": "Formal"}, "isNew": false, "rating": 4.8, "discount": 10},
  {"id": 2, "name": "Trail Runner", "category": "sport", "price": "4999", "image": "b.jpg", "isNew": true},
  {"id": 3, "name": "Midnight Chrono", "category": "premium", "price": 18999, "image": "c.jpg",
   "details": {"WaterResistance": "100m"}, "discount": 0},
  {"id": 4, "name": "Pulse Smart", "category": "smart", "price": 12999, "image": "d.jpg", "isNew": true, "discount": 15}
]`

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func newTestCache(t *testing.T, location, mode string) *Cache {
	t.Helper()
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.PanicLevel)
	return NewCache(NewSource(time.Second), location, NewDeriver(mode, 42), log)
}

func TestCache_LoadFromFile(t *testing.T) {
	c := newTestCache(t, writeCatalog(t, sampleCatalog), ModeStable)
	require.NoError(t, c.Load(context.Background()))
	require.True(t, c.Ready())

	products := c.Products()
	require.Len(t, products, 4)

	for i, p := range products {
		assert.Equal(t, i, p.OriginalIndex)
		assert.GreaterOrEqual(t, p.Rating, 3.5)
		assert.LessOrEqual(t, p.Rating, 5.0)
		assert.True(t, p.Discount == 0 || (p.Discount >= 5 && p.Discount < 30) || p.Discount == 10 || p.Discount == 15)
	}

	// source values win over derived ones
	assert.Equal(t, 4.8, products[0].Rating)
	assert.Equal(t, 10, products[0].Discount)
	assert.Equal(t, 0, products[2].Discount)
	// string prices are coerced
	assert.True(t, products[1].Price.Equal(money.New(4999)))
}

func TestCache_LoadFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleCatalog))
	}))
	defer srv.Close()

	c := newTestCache(t, srv.URL+"/data/products.json", ModeStable)
	require.NoError(t, c.Load(context.Background()))
	assert.Len(t, c.Products(), 4)
}

func TestCache_LoadFailureLeavesCacheEmpty(t *testing.T) {
	tests := []struct {
		name     string
		location func(t *testing.T) string
	}{
		{name: "missing file", location: func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.json") }},
		{name: "malformed json", location: func(t *testing.T) string { return writeCatalog(t, `[{"id": 1,`) }},
		{name: "http error", location: func(t *testing.T) string {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			t.Cleanup(srv.Close)
			return srv.URL
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestCache(t, tt.location(t), ModeStable)
			err := c.Load(context.Background())
			require.ErrorIs(t, err, ErrLoad)
			assert.ErrorIs(t, c.LoadError(), ErrLoad)
			assert.False(t, c.Ready())
			assert.Empty(t, c.Products())
			assert.Empty(t, Project(c.Products(), FilterAll, SortPriceLow))
		})
	}
}

func TestCache_LoadToleratesOffTypeFields(t *testing.T) {
	const offType = `[
	  {"id": 1, "name": "Float Discount", "price": 10, "rating": 4.2, "discount": 10.0},
	  {"id": 2, "name": "String Rating", "price": 10, "rating": "4.5", "discount": "12"},
	  {"id": 3, "name": "Numeric Detail", "price": 10,
	   "details": {"WaterResistance": 100, "Usage": "Dive", "Luminous": true, "Extra": {"a": 1}, "Empty": null}},
	  {"id": 4, "name": "Garbage", "price": 10, "rating": "abc", "discount": "n/a", "details": "none"},
	  {"id": 5, "name": "Truncated", "price": 10, "discount": 12.9}
	]`
	c := newTestCache(t, writeCatalog(t, offType), ModeStable)
	require.NoError(t, c.Load(context.Background()))

	products := c.Products()
	require.Len(t, products, 5)

	assert.Equal(t, 10, products[0].Discount)
	assert.Equal(t, 4.2, products[0].Rating)

	assert.Equal(t, 4.5, products[1].Rating)
	assert.Equal(t, 12, products[1].Discount)

	assert.Equal(t, map[string]string{
		"WaterResistance": "100",
		"Usage":           "Dive",
		"Luminous":        "true",
	}, products[2].Details)
	assert.Equal(t, "100", products[2].DisplayDetails()["WaterResistance"])

	assert.Equal(t, 12, products[4].Discount)

	// unusable values are derived exactly as if they were absent
	absent := newTestCache(t, writeCatalog(t, `[{"id": 4, "name": "Garbage", "price": 10}]`), ModeStable)
	require.NoError(t, absent.Load(context.Background()))
	want := absent.Products()[0]
	assert.Equal(t, want.Rating, products[3].Rating)
	assert.Equal(t, want.Discount, products[3].Discount)
	assert.Empty(t, products[3].Details)
}

func TestSource_RejectsOversizedDocument(t *testing.T) {
	path := writeCatalog(t, sampleCatalog)

	src := NewSource(time.Second)
	src.maxBytes = 16

	var out []sourceProduct
	err := src.FetchJSON(context.Background(), path, &out)
	require.ErrorIs(t, err, ErrLoad)
	assert.ErrorIs(t, err, ErrSourceTooLarge)

	src.maxBytes = int64(len(sampleCatalog))
	require.NoError(t, src.FetchJSON(context.Background(), path, &out))
	assert.Len(t, out, 4)
}

func TestDeriver_StableModeIsReproducible(t *testing.T) {
	path := writeCatalog(t, sampleCatalog)

	first := newTestCache(t, path, ModeStable)
	second := newTestCache(t, path, ModeStable)
	require.NoError(t, first.Load(context.Background()))
	require.NoError(t, second.Load(context.Background()))

	assert.Equal(t, first.Products(), second.Products())
}

func TestDeriver_RangesOverManyProducts(t *testing.T) {
	src := make([]sourceProduct, 2000)
	for i := range src {
		src[i] = sourceProduct{ID: i + 1, Name: "p"}
	}

	discounted := 0
	for _, p := range NewDeriver(ModeRandom, 7).Apply(src) {
		assert.GreaterOrEqual(t, p.Rating, 3.5)
		assert.LessOrEqual(t, p.Rating, 5.0)
		assert.Equal(t, p.Rating, float64(int(p.Rating*10+0.5))/10)
		if p.Discount != 0 {
			discounted++
			assert.GreaterOrEqual(t, p.Discount, 5)
			assert.Less(t, p.Discount, 30)
		}
	}
	// roughly 30% discounted
	assert.InDelta(t, 600, discounted, 150)
}

func TestCache_FindAndCategories(t *testing.T) {
	c := newTestCache(t, writeCatalog(t, sampleCatalog), ModeStable)
	require.NoError(t, c.Load(context.Background()))

	p, ok := c.Find(3)
	require.True(t, ok)
	assert.Equal(t, "Midnight Chrono", p.Name)

	_, ok = c.Find(99)
	assert.False(t, ok)

	p, ok = c.FindByName("trail runner")
	require.True(t, ok)
	assert.Equal(t, 2, p.ID)

	assert.Equal(t, []string{"premium", "sport", "smart"}, c.Categories())
}

func TestCache_ProductsAreCopies(t *testing.T) {
	c := newTestCache(t, writeCatalog(t, sampleCatalog), ModeStable)
	require.NoError(t, c.Load(context.Background()))

	products := c.Products()
	products[0].Details["Material"] = "Plastic"
	products[0].Name = "changed"

	again, _ := c.Find(1)
	assert.Equal(t, "Aurum Classic", again.Name)
	assert.Equal(t, "18K Gold", again.Details["Material"])
}

func TestProduct_OriginalPriceAndDetails(t *testing.T) {
	p := Product{Price: money.New(900), Discount: 10}
	assert.Equal(t, "1000", p.OriginalPrice().String())

	p = Product{Price: money.New(999), Discount: 0}
	assert.Equal(t, "999", p.OriginalPrice().String())

	p = Product{Price: money.New(1000), Discount: 15}
	// 1000*100/85 = 1176.47
	assert.Equal(t, "1176", p.OriginalPrice().String())

	details := Product{Details: map[string]string{"Material": "Titanium", "Strap": "Leather"}}.DisplayDetails()
	assert.Equal(t, "Titanium", details["Material"])
	assert.Equal(t, "Water Resistant", details["WaterResistance"])
	assert.Equal(t, "Universal", details["Usage"])
	assert.Equal(t, "Standard Timekeeping", details["Features"])
	assert.Equal(t, "Leather", details["Strap"])
}
