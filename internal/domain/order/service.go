// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/cart"
	"github.com/your-org/storefront/internal/domain/events"
	"github.com/your-org/storefront/internal/domain/user"
	"github.com/your-org/storefront/internal/domain/wallet"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/pkg/money"
)

var (
	ErrEmptyCart         = errors.New("your cart is empty")
	ErrNoAddress         = errors.New("please add a shipping address first")
	ErrNoPaymentMethod   = errors.New("please select a payment method")
	ErrNotFound          = errors.New("order not found")
	ErrNotCancellable    = errors.New("order cannot be cancelled in its current status")
	ErrReasonRequired    = errors.New("a cancellation reason is required")
	ErrInvalidTransition = errors.New("invalid order status transition")
	ErrInvoiceDisabled   = errors.New("invoices are disabled")
)

const (
	minOrderID = 100000
	maxOrderID = 999999
)

// PlaceOrderRequest represents checkout confirmation
type PlaceOrderRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// CancelOrderRequest represents order cancellation request
type CancelOrderRequest struct {
	Reason   string `json:"reason"`
	Comments string `json:"comments"`
}

// Result is an order together with the wallet after the operation
type Result struct {
	Order  Order       `json:"order"`
	Wallet wallet.View `json:"wallet"`
}

// CheckoutSummary is what the checkout tab renders before confirmation
type CheckoutSummary struct {
	Cart             cart.Summary  `json:"cart"`
	ShippingAddress  *user.Address `json:"shipping_address"`
	WalletBalance    money.Amount  `json:"wallet_balance"`
	PaymentMethods   []string      `json:"payment_methods"`
	CanPayWithWallet bool          `json:"can_pay_with_wallet"`
}

// Observer is notified of placed and cancelled orders
type Observer interface {
	IncOrderPlaced(paymentMethod string)
	IncOrderCancelled()
}

// InvoiceRenderer turns an order into a printable document
type InvoiceRenderer interface {
	RenderInvoice(ctx context.Context, o Order) ([]byte, error)
}

// Service handles checkout and order business logic
type Service struct {
	orders   *Repository
	carts    *cart.Repository
	users    *user.Repository
	wallets  *wallet.Repository
	store    storage.Store
	locker   *storage.Locker
	bus      events.Publisher
	observer Observer
	invoices InvoiceRenderer
	methods  []string
	logger   logrus.FieldLogger
	now      func() time.Time
	newID    func() string
}

// Deps groups the collaborators of the order service
type Deps struct {
	Orders         *Repository
	Carts          *cart.Repository
	Users          *user.Repository
	Wallets        *wallet.Repository
	Store          storage.Store
	Locker         *storage.Locker
	Bus            events.Publisher
	Observer       Observer
	Invoices       InvoiceRenderer
	PaymentMethods []string
	Logger         logrus.FieldLogger
}

// NewService creates a new order service
func NewService(d Deps) *Service {
	methods := make([]string, 0, len(d.PaymentMethods))
	for _, m := range d.PaymentMethods {
		if m = strings.ToLower(strings.TrimSpace(m)); m != "" {
			methods = append(methods, m)
		}
	}

	return &Service{
		orders:   d.Orders,
		carts:    d.Carts,
		users:    d.Users,
		wallets:  d.Wallets,
		store:    d.Store,
		locker:   d.Locker,
		bus:      d.Bus,
		observer: d.Observer,
		invoices: d.Invoices,
		methods:  methods,
		logger:   d.Logger,
		now:      func() time.Time { return time.Now().UTC() },
		newID: func() string {
			return strconv.Itoa(minOrderID + rand.IntN(maxOrderID-minOrderID+1))
		},
	}
}

// PaymentMethods returns the accepted payment methods
func (s *Service) PaymentMethods() []string {
	out := make([]string, len(s.methods))
	copy(out, s.methods)
	return out
}

func (s *Service) acceptsMethod(method string) bool {
	for _, m := range s.methods {
		if m == method {
			return true
		}
	}
	return false
}

// Checkout returns the cart, default address and wallet balance for confirmation
func (s *Service) Checkout(ctx context.Context, sessionID string) (CheckoutSummary, error) {
	items, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return CheckoutSummary{}, err
	}
	addresses, err := s.users.LoadAddresses(ctx, sessionID)
	if err != nil {
		return CheckoutSummary{}, err
	}
	w, err := s.wallets.Load(ctx, sessionID)
	if err != nil {
		return CheckoutSummary{}, err
	}

	summary := CheckoutSummary{
		Cart:           cart.Summarize(items),
		WalletBalance:  w.Balance,
		PaymentMethods: s.PaymentMethods(),
	}
	if len(addresses) > 0 {
		def := addresses[0]
		summary.ShippingAddress = &def
	}
	summary.CanPayWithWallet = s.acceptsMethod(PaymentMethodWallet) && !w.Balance.LessThan(summary.Cart.Total)
	return summary, nil
}

// PlaceOrder converts the cart into an order. Validation failures leave
// every key untouched. On success the order list, the cleared cart and,
// for wallet payments, the debited wallet are written in one batch.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, req PlaceOrderRequest) (Result, error) {
	method := strings.ToLower(strings.TrimSpace(req.PaymentMethod))

	unlock := s.locker.Lock(sessionID)
	defer unlock()

	items, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		return Result{}, err
	}
	if len(items) == 0 {
		return Result{}, ErrEmptyCart
	}

	addresses, err := s.users.LoadAddresses(ctx, sessionID)
	if err != nil {
		return Result{}, err
	}
	if len(addresses) == 0 {
		return Result{}, ErrNoAddress
	}

	if method == "" || !s.acceptsMethod(method) {
		return Result{}, ErrNoPaymentMethod
	}

	w, err := s.wallets.Load(ctx, sessionID)
	if err != nil {
		return Result{}, err
	}
	orders, err := s.orders.Load(ctx, sessionID)
	if err != nil {
		return Result{}, err
	}

	now := s.now()
	total := cart.Total(items)

	debited := false
	if method == PaymentMethodWallet {
		if err := w.Debit(wallet.TypePurchase, total, now); err != nil {
			return Result{}, fmt.Errorf("%w: need %s, have %s", err, total.String(), w.Balance.String())
		}
		debited = true
	}

	o := Order{
		ID:              s.uniqueID(orders),
		Date:            now,
		Status:          OrderStatusProcessing,
		Items:           cart.Clone(items),
		Total:           total,
		ShippingAddress: addresses[0],
		PaymentMethod:   method,
	}
	orders = append(orders, o)

	batch := storage.NewBatch()
	s.orders.Stage(batch, orders)
	s.carts.Stage(batch, []cart.Item{})
	if debited {
		s.wallets.Stage(batch, w)
	}
	if err := batch.Commit(ctx, s.store, sessionID); err != nil {
		return Result{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id":     sessionID,
		"order_id":       o.ID,
		"payment_method": method,
		"total":          total.String(),
		"items":          len(o.Items),
	}).Info("Order placed")

	if s.observer != nil {
		s.observer.IncOrderPlaced(method)
	}

	view := wallet.NewView(w)
	s.publish(sessionID, events.OrdersChanged, o)
	s.publish(sessionID, events.CartChanged, cart.Summarize(nil))
	if debited {
		s.publish(sessionID, events.WalletChanged, view)
	}
	return Result{Order: o, Wallet: view}, nil
}

// uniqueID draws order IDs until one is unused in orders
func (s *Service) uniqueID(orders []Order) string {
	for {
		id := s.newID()
		if indexOf(orders, id) < 0 {
			return id
		}
	}
}

// CancelOrder cancels a Processing order and refunds its total to the wallet
func (s *Service) CancelOrder(ctx context.Context, sessionID, orderID string, req CancelOrderRequest) (Result, error) {
	reason := strings.TrimSpace(req.Reason)

	unlock := s.locker.Lock(sessionID)
	defer unlock()

	orders, err := s.orders.Load(ctx, sessionID)
	if err != nil {
		return Result{}, err
	}
	idx := indexOf(orders, orderID)
	if idx < 0 {
		return Result{}, ErrNotFound
	}
	o := &orders[idx]
	if !o.CanBeCancelled() {
		return Result{Order: *o}, fmt.Errorf("%w: %s", ErrNotCancellable, o.Status)
	}
	if reason == "" {
		return Result{}, ErrReasonRequired
	}

	w, err := s.wallets.Load(ctx, sessionID)
	if err != nil {
		return Result{}, err
	}

	o.Status = OrderStatusCancelled
	o.CancellationReason = reason
	o.CancellationComments = strings.TrimSpace(req.Comments)
	w.Credit(wallet.RefundType(o.ID), o.Total, s.now())

	batch := storage.NewBatch()
	s.orders.Stage(batch, orders)
	s.wallets.Stage(batch, w)
	if err := batch.Commit(ctx, s.store, sessionID); err != nil {
		return Result{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"order_id":   o.ID,
		"refund":     o.Total.String(),
		"reason":     reason,
	}).Info("Order cancelled")

	if s.observer != nil {
		s.observer.IncOrderCancelled()
	}

	view := wallet.NewView(w)
	s.publish(sessionID, events.OrdersChanged, *o)
	s.publish(sessionID, events.WalletChanged, view)
	return Result{Order: *o, Wallet: view}, nil
}

// CompleteOrder marks a Processing order as Completed
func (s *Service) CompleteOrder(ctx context.Context, sessionID, orderID string) (Order, error) {
	unlock := s.locker.Lock(sessionID)
	defer unlock()

	orders, err := s.orders.Load(ctx, sessionID)
	if err != nil {
		return Order{}, err
	}
	idx := indexOf(orders, orderID)
	if idx < 0 {
		return Order{}, ErrNotFound
	}

	o := &orders[idx]
	if !isValidStatusTransition(o.Status, OrderStatusCompleted) {
		return *o, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, o.Status, OrderStatusCompleted)
	}
	o.Status = OrderStatusCompleted

	batch := storage.NewBatch()
	s.orders.Stage(batch, orders)
	if err := batch.Commit(ctx, s.store, sessionID); err != nil {
		return Order{}, err
	}

	s.publish(sessionID, events.OrdersChanged, *o)
	return *o, nil
}

// ListOrders returns the session's orders, newest first
func (s *Service) ListOrders(ctx context.Context, sessionID string) ([]Order, error) {
	orders, err := s.orders.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	out := make([]Order, 0, len(orders))
	for i := len(orders) - 1; i >= 0; i-- {
		out = append(out, orders[i])
	}
	return out, nil
}

// GetOrder returns one order
func (s *Service) GetOrder(ctx context.Context, sessionID, orderID string) (Order, error) {
	orders, err := s.orders.Load(ctx, sessionID)
	if err != nil {
		return Order{}, err
	}
	idx := indexOf(orders, orderID)
	if idx < 0 {
		return Order{}, ErrNotFound
	}
	return orders[idx], nil
}

// Invoice renders a printable invoice for an order
func (s *Service) Invoice(ctx context.Context, sessionID, orderID string) ([]byte, error) {
	if s.invoices == nil {
		return nil, ErrInvoiceDisabled
	}
	o, err := s.GetOrder(ctx, sessionID, orderID)
	if err != nil {
		return nil, err
	}
	data, err := s.invoices.RenderInvoice(ctx, o)
	if err != nil {
		return nil, fmt.Errorf("failed to render invoice for order %s: %w", orderID, err)
	}
	return data, nil
}

func (s *Service) publish(sessionID string, topic events.Topic, payload any) {
	s.bus.Publish(events.Event{
		Topic:     topic,
		SessionID: sessionID,
		Payload:   payload,
	})
}
