package pdf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/pkg/money"
)

func newTestService() *Service {
	cfg := &config.Config{}
	cfg.Invoice.CompanyName = "Chrono & Co"
	cfg.Invoice.CompanyEmail = "help@example.com"
	cfg.Checkout.Currency = "₹"
	s := NewService(cfg)
	s.now = func() time.Time { return time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC) }
	return s
}

func TestGenerateHTML(t *testing.T) {
	s := newTestService()
	o := order.Order{
		ID:     "482913",
		Date:   time.Date(2026, 6, 30, 18, 0, 0, 0, time.UTC),
		Status: order.OrderStatusCancelled,
		Items: []cart.Item{
			{Name: "Aurum Classic", Price: money.New(24999)},
			{Name: "Trail <Runner>", Price: money.Coerce("4999.5")},
		},
		Total:                money.Coerce("29998.5"),
		ShippingAddress:      user.Address{Label: "Home", Text: "12 MG Road\nBengaluru"},
		PaymentMethod:        "wallet",
		CancellationReason:   "Changed my mind",
		CancellationComments: "",
	}

	html, err := s.GenerateHTML(o)
	require.NoError(t, err)

	assert.Contains(t, html, "INV-482913")
	assert.Contains(t, html, "July 1, 2026")
	assert.Contains(t, html, "June 30, 2026")
	assert.Contains(t, html, "Chrono &amp; Co")
	assert.Contains(t, html, "₹ 24,999")
	assert.Contains(t, html, "₹ 29,998.5")
	assert.Contains(t, html, "<p>Bengaluru</p>")
	assert.Contains(t, html, "Trail &lt;Runner&gt;")
	assert.Contains(t, html, "status-Cancelled")
	assert.Contains(t, html, "Reason: Changed my mind")
}

func TestGenerateHTML_OmitsCancellationForOpenOrders(t *testing.T) {
	s := newTestService()
	html, err := s.GenerateHTML(order.Order{ID: "100000", Status: order.OrderStatusProcessing, Total: money.Zero})
	require.NoError(t, err)
	assert.NotContains(t, html, "Reason:")
	assert.Contains(t, html, "₹ 0")
}
