// internal/domain/wallet/entity.go
package wallet

import (
	"errors"
	"time"

	"github.com/your-org/storefront/internal/pkg/money"
)

// Transaction types written to the ledger
const (
	TypeFundsAdded = "Funds Added"
	TypePurchase   = "Purchase"
	refundPrefix   = "Refund for Order #"
)

var (
	// ErrInsufficientFunds is returned when a debit exceeds the balance
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
	// ErrInvalidAmount is returned for non-positive top-ups
	ErrInvalidAmount = errors.New("amount must be greater than zero")
)

// Transaction represents a signed ledger entry
type Transaction struct {
	Type   string       `json:"type"`
	Amount money.Amount `json:"amount"`
	Date   time.Time    `json:"date"`
}

// Wallet represents store credit with an append-only ledger
type Wallet struct {
	Balance      money.Amount  `json:"balance"`
	Transactions []Transaction `json:"transactions"`
}

// New returns an empty wallet
func New() Wallet {
	return Wallet{Balance: money.Zero, Transactions: []Transaction{}}
}

// RefundType returns the ledger type for an order refund
func RefundType(orderID string) string {
	return refundPrefix + orderID
}

// Credit adds amount to the balance and records it
func (w *Wallet) Credit(txType string, amount money.Amount, at time.Time) {
	w.Balance = w.Balance.Add(amount)
	w.Transactions = append(w.Transactions, Transaction{Type: txType, Amount: amount, Date: at})
}

// Debit subtracts amount and records a negative entry. It fails without
// changing the wallet when the balance is lower than amount.
func (w *Wallet) Debit(txType string, amount money.Amount, at time.Time) error {
	if w.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	w.Balance = w.Balance.Sub(amount)
	w.Transactions = append(w.Transactions, Transaction{Type: txType, Amount: amount.Neg(), Date: at})
	return nil
}

// Recent returns up to n transactions, newest first
func (w *Wallet) Recent(n int) []Transaction {
	if n <= 0 || n > len(w.Transactions) {
		n = len(w.Transactions)
	}
	out := make([]Transaction, 0, n)
	for i := len(w.Transactions) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, w.Transactions[i])
	}
	return out
}

// Reconciled reports whether the balance equals the sum of the ledger.
// Seeded wallets may start with a balance and no ledger, so this is informational.
func (w *Wallet) Reconciled() bool {
	sum := money.Zero
	for _, tx := range w.Transactions {
		sum = sum.Add(tx.Amount)
	}
	return sum.Equal(w.Balance)
}

func (w *Wallet) normalize() {
	if w.Transactions == nil {
		w.Transactions = []Transaction{}
	}
}
