package tokens

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"carbon-credits/marketplace-backend/internal/events"
)

var (
	// ErrInvalidAmount is returned when a credit or debit amount is not positive.
	ErrInvalidAmount = errors.New("amount must be a positive integer")
	// ErrInsufficientBalance is returned when a debit exceeds the current balance.
	ErrInsufficientBalance = errors.New("insufficient token balance")
)

// Balance is an immutable snapshot of the session's fungible token balance.
type Balance struct {
	Amount int64 `json:"amount"`
}

// Ledger tracks the CC token balance for the active wallet session.
// The balance never goes negative: every mutation is validated before
// it is applied.
type Ledger struct {
	mu        sync.Mutex
	balance   int64
	seed      int64
	logger    *zap.Logger
	publisher events.Publisher
}

// NewLedger creates a ledger seeded with the catalog default balance.
func NewLedger(seed int64, logger *zap.Logger, publisher events.Publisher) *Ledger {
	return &Ledger{
		balance:   seed,
		seed:      seed,
		logger:    logger,
		publisher: publisher,
	}
}

// Balance returns the current balance snapshot.
func (l *Ledger) Balance() Balance {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Balance{Amount: l.balance}
}

// Credit adds amount to the balance.
func (l *Ledger) Credit(amount int64) (Balance, error) {
	if amount <= 0 {
		return Balance{}, ErrInvalidAmount
	}

	l.mu.Lock()
	l.balance += amount
	snapshot := Balance{Amount: l.balance}
	l.mu.Unlock()

	l.logger.Info("tokens credited",
		zap.Int64("amount", amount),
		zap.Int64("balance", snapshot.Amount))
	l.publisher.Publish(events.New(events.EventTokensCredited, map[string]interface{}{
		"amount":  amount,
		"balance": snapshot.Amount,
	}))

	return snapshot, nil
}

// Debit removes amount from the balance. The balance is left untouched
// when it cannot cover the amount.
func (l *Ledger) Debit(amount int64) (Balance, error) {
	if amount <= 0 {
		return Balance{}, ErrInvalidAmount
	}

	l.mu.Lock()
	if amount > l.balance {
		l.mu.Unlock()
		return Balance{}, ErrInsufficientBalance
	}
	l.balance -= amount
	snapshot := Balance{Amount: l.balance}
	l.mu.Unlock()

	l.logger.Info("tokens debited",
		zap.Int64("amount", amount),
		zap.Int64("balance", snapshot.Amount))
	l.publisher.Publish(events.New(events.EventTokensDebited, map[string]interface{}{
		"amount":  amount,
		"balance": snapshot.Amount,
	}))

	return snapshot, nil
}

// Reset restores the seed balance. Called on session boundaries so no
// balance leaks between wallet sessions.
func (l *Ledger) Reset() {
	l.mu.Lock()
	l.balance = l.seed
	l.mu.Unlock()
}
