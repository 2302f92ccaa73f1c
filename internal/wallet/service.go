package wallet

import (
	"errors"
	"sync"

	"go.uber.org/zap"

	"carbon-credits/marketplace-backend/internal/events"
)

// MockAddress is the deterministic wallet identity assigned on connect.
// No real key derivation happens anywhere in this system.
const MockAddress = "0xAbC123DeF456GhI789JkL012MnOP345QrS678TuV9"

// ErrNotConnected is returned when a wallet-scoped operation is attempted
// without an active session.
var ErrNotConnected = errors.New("wallet not connected")

// Session is an immutable snapshot of the wallet session. Address is
// non-empty exactly when Connected is true.
type Session struct {
	Connected bool   `json:"connected"`
	Address   string `json:"address,omitempty"`
}

// Resettable is implemented by session-scoped stores (token ledger, credit
// inventory). The service resets them on every session boundary so nothing
// leaks from one session into the next.
type Resettable interface {
	Reset()
}

// Service owns the wallet session. All other components read the session
// through snapshots and never mutate it.
type Service struct {
	mu        sync.Mutex
	session   Session
	stores    []Resettable
	logger    *zap.Logger
	publisher events.Publisher
}

// NewService creates a disconnected wallet service managing the given
// session-scoped stores.
func NewService(logger *zap.Logger, publisher events.Publisher, stores ...Resettable) *Service {
	return &Service{
		stores:    stores,
		logger:    logger,
		publisher: publisher,
	}
}

// Connect assigns the session identity. Connecting while already connected
// replaces the identity; either way the session-scoped stores are reset to
// their catalog defaults.
func (s *Service) Connect() Session {
	s.mu.Lock()
	s.session = Session{Connected: true, Address: MockAddress}
	snapshot := s.session
	s.mu.Unlock()

	for _, store := range s.stores {
		store.Reset()
	}

	s.logger.Info("wallet connected", zap.String("address", snapshot.Address))
	s.publisher.Publish(events.New(events.EventSessionConnected, map[string]interface{}{
		"address": snapshot.Address,
	}))

	return snapshot
}

// Disconnect clears the session identity. Disconnecting twice is a no-op.
func (s *Service) Disconnect() Session {
	s.mu.Lock()
	wasConnected := s.session.Connected
	s.session = Session{}
	snapshot := s.session
	s.mu.Unlock()

	if !wasConnected {
		return snapshot
	}

	for _, store := range s.stores {
		store.Reset()
	}

	s.logger.Info("wallet disconnected")
	s.publisher.Publish(events.New(events.EventSessionDisconnected, nil))

	return snapshot
}

// Session returns the current session snapshot.
func (s *Service) Session() Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

// Require returns the active session, or ErrNotConnected when there is none.
func (s *Service) Require() (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.session.Connected {
		return Session{}, ErrNotConnected
	}
	return s.session, nil
}
