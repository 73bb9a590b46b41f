package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/events"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/domain/wallet"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/pkg/money"
)

const sid = "3b8f2c1e-2a44-4d0c-9e0b-6c1f7f0d9a11"

type recordingObserver struct {
	placed    []string
	cancelled int
}

func (r *recordingObserver) IncOrderPlaced(method string) { r.placed = append(r.placed, method) }
func (r *recordingObserver) IncOrderCancelled()           { r.cancelled++ }

type fakeInvoices struct{ err error }

func (f fakeInvoices) RenderInvoice(_ context.Context, o Order) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF invoice " + o.ID), nil
}

type testEnv struct {
	svc      *Service
	carts    *cart.Repository
	users    *user.Repository
	wallets  *wallet.Repository
	orders   *Repository
	observer *recordingObserver
	topics   []events.Topic
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	store := storage.NewMemory()
	bus := events.NewBus()
	env := &testEnv{
		carts:    cart.NewRepository(store, log),
		users:    user.NewRepository(store, log),
		wallets:  wallet.NewRepository(store, log),
		orders:   NewRepository(store, log),
		observer: &recordingObserver{},
	}
	bus.Subscribe(events.All, func(e events.Event) { env.topics = append(env.topics, e.Topic) })

	env.svc = NewService(Deps{
		Orders:         env.orders,
		Carts:          env.carts,
		Users:          env.users,
		Wallets:        env.wallets,
		Store:          store,
		Locker:         storage.NewLocker(),
		Bus:            bus,
		Observer:       env.observer,
		Invoices:       fakeInvoices{},
		PaymentMethods: []string{"wallet", "cod", " Card ", "upi"},
		Logger:         log,
	})
	env.svc.now = func() time.Time { return time.Date(2026, 6, 1, 9, 30, 0, 0, time.UTC) }
	return env
}

func (e *testEnv) withCart(t *testing.T, prices ...int64) {
	t.Helper()
	items := make([]cart.Item, len(prices))
	for i, p := range prices {
		items[i] = cart.Item{Name: "Watch", Price: money.New(p), Image: "w.jpg"}
	}
	require.NoError(t, e.carts.Save(context.Background(), sid, items))
}

func (e *testEnv) withAddress(t *testing.T) {
	t.Helper()
	require.NoError(t, e.users.SaveAddresses(context.Background(), sid, []user.Address{
		{Label: "Home", Text: "12 MG Road"},
		{Label: "Work", Text: "4 Residency Rd"},
	}))
}

func (e *testEnv) withBalance(t *testing.T, balance int64) {
	t.Helper()
	w := wallet.New()
	w.Credit(wallet.TypeFundsAdded, money.New(balance), time.Now())
	require.NoError(t, e.wallets.Save(context.Background(), sid, w))
}

func (e *testEnv) balance(t *testing.T) money.Amount {
	t.Helper()
	w, err := e.wallets.Load(context.Background(), sid)
	require.NoError(t, err)
	return w.Balance
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.withAddress(t)

	_, err := env.svc.PlaceOrder(ctx, sid, PlaceOrderRequest{PaymentMethod: "cod"})
	assert.ErrorIs(t, err, ErrEmptyCart)

	orders, err := env.svc.ListOrders(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.Empty(t, env.topics)
}

func TestPlaceOrder_ValidationOrder(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.withCart(t, 100)

	_, err := env.svc.PlaceOrder(ctx, sid, PlaceOrderRequest{PaymentMethod: "cod"})
	assert.ErrorIs(t, err, ErrNoAddress)

	env.withAddress(t)
	for _, method := range []string{"", "  ", "bitcoin"} {
		_, err = env.svc.PlaceOrder(ctx, sid, PlaceOrderRequest{PaymentMethod: method})
		assert.ErrorIs(t, err, ErrNoPaymentMethod, method)
	}

	items, err := env.carts.Load(ctx, sid)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestPlaceOrder_InsufficientFundsLeavesBalance(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.withCart(t, 100, 50)
	env.withAddress(t)
	env.withBalance(t, 100)

	_, err := env.svc.PlaceOrder(ctx, sid, PlaceOrderRequest{PaymentMethod: "wallet"})
	require.ErrorIs(t, err, wallet.ErrInsufficientFunds)

	assert.Equal(t, "100", env.balance(t).String())
	orders, err := env.svc.ListOrders(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, orders)
	items, err := env.carts.Load(ctx, sid)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestPlaceOrder_WalletPayment(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.withCart(t, 300, 200)
	env.withAddress(t)
	env.withBalance(t, 1000)

	res, err := env.svc.PlaceOrder(ctx, sid, PlaceOrderRequest{PaymentMethod: "Wallet"})
	require.NoError(t, err)

	o := res.Order
	assert.Len(t, o.ID, 6)
	assert.Equal(t, OrderStatusProcessing, o.Status)
	assert.Equal(t, "500", o.Total.String())
	assert.Equal(t, "Home", o.ShippingAddress.Label)
	assert.Equal(t, PaymentMethodWallet, o.PaymentMethod)
	assert.Len(t, o.Items, 2)

	assert.Equal(t, "500", env.balance(t).String())
	w, err := env.wallets.Load(ctx, sid)
	require.NoError(t, err)
	last := w.Transactions[len(w.Transactions)-1]
	assert.Equal(t, wallet.TypePurchase, last.Type)
	assert.Equal(t, "-500", last.Amount.String())

	items, err := env.carts.Load(ctx, sid)
	require.NoError(t, err)
	assert.Empty(t, items)

	assert.Equal(t, []events.Topic{events.OrdersChanged, events.CartChanged, events.WalletChanged}, env.topics)
	assert.Equal(t, []string{"wallet"}, env.observer.placed)
}

func TestPlaceOrder_SnapshotIsIndependent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.withCart(t, 250)
	env.withAddress(t)

	res, err := env.svc.PlaceOrder(ctx, sid, PlaceOrderRequest{PaymentMethod: "card"})
	require.NoError(t, err)
	assert.Equal(t, "card", res.Order.PaymentMethod)

	require.NoError(t, env.users.SaveAddresses(ctx, sid, []user.Address{{Label: "New", Text: "Elsewhere"}}))
	env.withCart(t, 999)

	got, err := env.svc.GetOrder(ctx, sid, res.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, "Home", got.ShippingAddress.Label)
	assert.Equal(t, "250", got.Total.String())
	require.Len(t, got.Items, 1)
	assert.Equal(t, "250", got.Items[0].Price.String())

	// non-wallet payments do not touch the wallet
	assert.NotContains(t, env.topics, events.WalletChanged)
}

func TestPlaceOrder_RegeneratesCollidingIDs(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.withAddress(t)

	ids := []string{"123456", "123456", "654321"}
	env.svc.newID = func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}

	env.withCart(t, 10)
	first, err := env.svc.PlaceOrder(ctx, sid, PlaceOrderRequest{PaymentMethod: "cod"})
	require.NoError(t, err)
	env.withCart(t, 20)
	second, err := env.svc.PlaceOrder(ctx, sid, PlaceOrderRequest{PaymentMethod: "upi"})
	require.NoError(t, err)

	assert.Equal(t, "123456", first.Order.ID)
	assert.Equal(t, "654321", second.Order.ID)

	orders, err := env.svc.ListOrders(ctx, sid)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "654321", orders[0].ID, "newest first")
}

func TestDefaultIDGenerator_SixDigits(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 500; i++ {
		id := env.svc.newID()
		require.Len(t, id, 6)
		assert.GreaterOrEqual(t, id, "100000")
		assert.LessOrEqual(t, id, "999999")
	}
}

func TestCancelOrder_RefundsTotal(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.withCart(t, 500)
	env.withAddress(t)
	env.withBalance(t, 40)

	placed, err := env.svc.PlaceOrder(ctx, sid, PlaceOrderRequest{PaymentMethod: "cod"})
	require.NoError(t, err)
	before, err := env.wallets.Load(ctx, sid)
	require.NoError(t, err)
	env.topics = nil

	res, err := env.svc.CancelOrder(ctx, sid, placed.Order.ID, CancelOrderRequest{Reason: "Changed my mind", Comments: "too slow"})
	require.NoError(t, err)
	assert.Equal(t, OrderStatusCancelled, res.Order.Status)
	assert.Equal(t, "Changed my mind", res.Order.CancellationReason)
	assert.Equal(t, "too slow", res.Order.CancellationComments)

	after, err := env.wallets.Load(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "540", after.Balance.String())
	require.Len(t, after.Transactions, len(before.Transactions)+1)
	refund := after.Transactions[len(after.Transactions)-1]
	assert.Equal(t, "Refund for Order #"+placed.Order.ID, refund.Type)
	assert.Equal(t, "500", refund.Amount.String())

	assert.Equal(t, []events.Topic{events.OrdersChanged, events.WalletChanged}, env.topics)
	assert.Equal(t, 1, env.observer.cancelled)
}

func TestCancelOrder_Guards(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.withCart(t, 500)
	env.withAddress(t)
	placed, err := env.svc.PlaceOrder(ctx, sid, PlaceOrderRequest{PaymentMethod: "cod"})
	require.NoError(t, err)

	_, err = env.svc.CancelOrder(ctx, sid, "000000", CancelOrderRequest{Reason: "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = env.svc.CancelOrder(ctx, sid, placed.Order.ID, CancelOrderRequest{Reason: "  "})
	assert.ErrorIs(t, err, ErrReasonRequired)

	_, err = env.svc.CancelOrder(ctx, sid, placed.Order.ID, CancelOrderRequest{Reason: "Ordered by mistake"})
	require.NoError(t, err)

	// a second cancellation must not refund again
	_, err = env.svc.CancelOrder(ctx, sid, placed.Order.ID, CancelOrderRequest{Reason: "again"})
	assert.ErrorIs(t, err, ErrNotCancellable)
	assert.Equal(t, "500", env.balance(t).String())

	// the status guard wins over a missing reason
	_, err = env.svc.CancelOrder(ctx, sid, placed.Order.ID, CancelOrderRequest{})
	assert.ErrorIs(t, err, ErrNotCancellable)
	assert.NotErrorIs(t, err, ErrReasonRequired)
}

func TestCompleteOrder(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.withCart(t, 80)
	env.withAddress(t)
	placed, err := env.svc.PlaceOrder(ctx, sid, PlaceOrderRequest{PaymentMethod: "upi"})
	require.NoError(t, err)

	o, err := env.svc.CompleteOrder(ctx, sid, placed.Order.ID)
	require.NoError(t, err)
	assert.True(t, o.IsCompleted())

	_, err = env.svc.CompleteOrder(ctx, sid, placed.Order.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = env.svc.CancelOrder(ctx, sid, placed.Order.ID, CancelOrderRequest{Reason: "late"})
	assert.ErrorIs(t, err, ErrNotCancellable)

	_, err = env.svc.CompleteOrder(ctx, sid, "999999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCheckoutSummary(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	summary, err := env.svc.Checkout(ctx, sid)
	require.NoError(t, err)
	assert.Nil(t, summary.ShippingAddress)
	assert.Equal(t, 0, summary.Cart.Count)
	assert.Equal(t, []string{"wallet", "cod", "card", "upi"}, summary.PaymentMethods)

	env.withCart(t, 700)
	env.withAddress(t)
	env.withBalance(t, 600)
	summary, err = env.svc.Checkout(ctx, sid)
	require.NoError(t, err)
	require.NotNil(t, summary.ShippingAddress)
	assert.Equal(t, "Home", summary.ShippingAddress.Label)
	assert.Equal(t, "700", summary.Cart.Total.String())
	assert.False(t, summary.CanPayWithWallet)
}

func TestInvoice(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	env.withCart(t, 80)
	env.withAddress(t)
	placed, err := env.svc.PlaceOrder(ctx, sid, PlaceOrderRequest{PaymentMethod: "cod"})
	require.NoError(t, err)

	data, err := env.svc.Invoice(ctx, sid, placed.Order.ID)
	require.NoError(t, err)
	assert.Contains(t, string(data), placed.Order.ID)

	_, err = env.svc.Invoice(ctx, sid, "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	env.svc.invoices = fakeInvoices{err: errors.New("wkhtmltopdf missing")}
	_, err = env.svc.Invoice(ctx, sid, placed.Order.ID)
	assert.Error(t, err)

	env.svc.invoices = nil
	_, err = env.svc.Invoice(ctx, sid, placed.Order.ID)
	assert.ErrorIs(t, err, ErrInvoiceDisabled)
}
