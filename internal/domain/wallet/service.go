// internal/domain/wallet/service.go
package wallet

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/events"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/pkg/money"
)

// RecentLimit is how many transactions the account page lists
const RecentLimit = 5

// AddFundsRequest represents a top-up request
type AddFundsRequest struct {
	Amount money.Amount `json:"amount"`
}

// View is the wallet as rendered on the account page
type View struct {
	Balance    money.Amount  `json:"balance"`
	Recent     []Transaction `json:"recent_transactions"`
	Count      int           `json:"transaction_count"`
	Reconciled bool          `json:"reconciled"`
}

// NewView renders w
func NewView(w Wallet) View {
	return View{
		Balance:    w.Balance,
		Recent:     w.Recent(RecentLimit),
		Count:      len(w.Transactions),
		Reconciled: w.Reconciled(),
	}
}

// FundsObserver is notified of successful top-ups
type FundsObserver interface {
	IncFundsAdded()
}

// Service handles wallet business logic
type Service struct {
	repo     *Repository
	locker   *storage.Locker
	bus      events.Publisher
	observer FundsObserver
	logger   logrus.FieldLogger
	now      func() time.Time
}

// NewService creates a new wallet service
func NewService(repo *Repository, locker *storage.Locker, bus events.Publisher, observer FundsObserver, logger logrus.FieldLogger) *Service {
	return &Service{
		repo:     repo,
		locker:   locker,
		bus:      bus,
		observer: observer,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// GetWallet retrieves the session's wallet
func (s *Service) GetWallet(ctx context.Context, sessionID string) (View, error) {
	w, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return View{}, err
	}
	if !w.Reconciled() {
		s.logger.WithFields(logrus.Fields{
			"session_id": sessionID,
			"balance":    w.Balance.String(),
		}).Debug("Wallet balance differs from ledger sum")
	}
	return NewView(w), nil
}

// AddFunds credits a positive amount and records a Funds Added entry
func (s *Service) AddFunds(ctx context.Context, sessionID string, amount money.Amount) (View, error) {
	if !amount.IsPositive() {
		return View{}, ErrInvalidAmount
	}

	unlock := s.locker.Lock(sessionID)
	defer unlock()

	w, err := s.repo.Load(ctx, sessionID)
	if err != nil {
		return View{}, err
	}

	w.Credit(TypeFundsAdded, amount, s.now())
	if err := s.repo.Save(ctx, sessionID, w); err != nil {
		return View{}, err
	}

	s.logger.WithFields(logrus.Fields{
		"session_id": sessionID,
		"amount":     amount.String(),
		"balance":    w.Balance.String(),
	}).Info("Wallet funds added")

	if s.observer != nil {
		s.observer.IncFundsAdded()
	}

	view := NewView(w)
	s.bus.Publish(events.Event{
		Topic:     events.WalletChanged,
		SessionID: sessionID,
		Payload:   view,
	})
	return view, nil
}
