package marketplace

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"carbon-credits/marketplace-backend/internal/events"
	"carbon-credits/marketplace-backend/pkg/workflows"
)

var (
	// ErrNotFound is returned when a listing ID is not in the book.
	ErrNotFound = errors.New("listing not found")
	// ErrAlreadySold is returned when a listing has already been sold.
	ErrAlreadySold = errors.New("listing already sold")
	// ErrInvalidListing is returned when a new listing fails validation.
	ErrInvalidListing = errors.New("invalid listing")
)

// Book is the shared marketplace catalog. Listings are global, not
// session-scoped; only their sale status changes, and SOLD is terminal.
type Book struct {
	mu        sync.Mutex
	listings  map[string]*Listing
	order     []string
	lifecycle *workflows.StateMachine
	logger    *zap.Logger
	publisher events.Publisher
}

// NewBook creates a book holding the given seed listings.
func NewBook(seed []Listing, logger *zap.Logger, publisher events.Publisher) *Book {
	b := &Book{
		listings:  make(map[string]*Listing, len(seed)),
		order:     make([]string, 0, len(seed)),
		lifecycle: workflows.NewListingLifecycle(),
		logger:    logger,
		publisher: publisher,
	}
	for _, l := range seed {
		listing := l
		b.listings[listing.ID] = &listing
		b.order = append(b.order, listing.ID)
	}
	return b
}

// List adds a new available listing to the catalog.
func (b *Book) List(kind ListingKind, item string, price int64) (Listing, error) {
	if kind != KindNFT && kind != KindToken {
		return Listing{}, ErrInvalidListing
	}
	if item == "" || price <= 0 {
		return Listing{}, ErrInvalidListing
	}

	listing := Listing{
		ID:       uuid.New().String(),
		Kind:     kind,
		Item:     item,
		Price:    price,
		Status:   StatusAvailable,
		ListedAt: time.Now(),
	}

	b.mu.Lock()
	b.listings[listing.ID] = &listing
	b.order = append(b.order, listing.ID)
	b.mu.Unlock()

	b.logger.Info("listing created",
		zap.String("listing_id", listing.ID),
		zap.String("kind", string(listing.Kind)),
		zap.Int64("price", listing.Price))
	b.publisher.Publish(events.New(events.EventListingCreated, map[string]interface{}{
		"listing_id": listing.ID,
		"kind":       string(listing.Kind),
		"item":       listing.Item,
		"price":      listing.Price,
	}))

	return listing, nil
}

// Listings returns snapshots of every listing in insertion order.
func (b *Book) Listings() []Listing {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Listing, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, *b.listings[id])
	}
	return out
}

// Get returns a snapshot of a single listing.
func (b *Book) Get(id string) (Listing, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	l, ok := b.listings[id]
	if !ok {
		return Listing{}, ErrNotFound
	}
	return *l, nil
}

// MarkSold transitions a listing to SOLD. The check and the write happen
// under the book lock, so at most one caller ever succeeds per listing.
func (b *Book) MarkSold(id string) (Listing, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	l, ok := b.listings[id]
	if !ok {
		return Listing{}, ErrNotFound
	}
	if !b.lifecycle.CanTransition(string(l.Status), string(StatusSold)) {
		return Listing{}, ErrAlreadySold
	}
	now := time.Now()
	l.Status = StatusSold
	l.SoldAt = &now

	b.logger.Info("listing sold", zap.String("listing_id", id))
	return *l, nil
}
