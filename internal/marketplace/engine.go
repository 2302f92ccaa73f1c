package marketplace

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"carbon-credits/marketplace-backend/internal/events"
	"carbon-credits/marketplace-backend/internal/tokens"
)

// Engine executes purchase transitions against the book and the buyer's
// token ledger. The price debit and the sold transition form one atomic
// step: a failed debit leaves the listing available.
type Engine struct {
	mu        sync.Mutex
	book      *Book
	ledger    *tokens.Ledger
	logger    *zap.Logger
	publisher events.Publisher
}

// NewEngine creates a purchase engine over the shared book and the
// session's ledger.
func NewEngine(book *Book, ledger *tokens.Ledger, logger *zap.Logger, publisher events.Publisher) *Engine {
	return &Engine{
		book:      book,
		ledger:    ledger,
		logger:    logger,
		publisher: publisher,
	}
}

// Buy purchases the listing identified by listingID. At most one buy
// succeeds per listing; later attempts observe ErrAlreadySold. The engine
// lock serializes buys so the debit and the sold transition are never
// observed apart.
func (e *Engine) Buy(ctx context.Context, listingID string) (Listing, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	listing, err := e.book.Get(listingID)
	if err != nil {
		return Listing{}, err
	}
	if listing.Status == StatusSold {
		return Listing{}, ErrAlreadySold
	}

	if _, err := e.ledger.Debit(listing.Price); err != nil {
		return Listing{}, err
	}

	sold, err := e.book.MarkSold(listingID)
	if err != nil {
		// A competing seller-side transition won the listing; undo the debit.
		e.ledger.Credit(listing.Price)
		return Listing{}, err
	}

	e.logger.Info("listing purchased",
		zap.String("listing_id", sold.ID),
		zap.Int64("price", sold.Price))
	e.publisher.Publish(events.New(events.EventListingSold, map[string]interface{}{
		"listing_id": sold.ID,
		"item":       sold.Item,
		"price":      sold.Price,
	}))

	return sold, nil
}
