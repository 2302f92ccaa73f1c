package marketplace

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carbon-credits/marketplace-backend/internal/events"
	"carbon-credits/marketplace-backend/internal/tokens"
)

func newTestMarket(balance int64) (*Engine, *Book, *tokens.Ledger) {
	logger := zap.NewNop()
	publisher := events.NopPublisher{}
	book := NewBook(SeedListings(), logger, publisher)
	ledger := tokens.NewLedger(balance, logger, publisher)
	return NewEngine(book, ledger, logger, publisher), book, ledger
}

func TestBuyDebitsPriceAndMarksSold(t *testing.T) {
	engine, book, ledger := newTestMarket(1000)

	listing, err := engine.Buy(context.Background(), "L1")

	require.NoError(t, err)
	assert.Equal(t, StatusSold, listing.Status)
	assert.Equal(t, int64(900), ledger.Balance().Amount)

	fresh, err := book.Get("L1")
	require.NoError(t, err)
	assert.Equal(t, StatusSold, fresh.Status)
}

func TestBuyTwiceFails(t *testing.T) {
	engine, _, ledger := newTestMarket(1000)

	_, err := engine.Buy(context.Background(), "L1")
	require.NoError(t, err)

	_, err = engine.Buy(context.Background(), "L1")

	assert.ErrorIs(t, err, ErrAlreadySold)
	assert.Equal(t, int64(900), ledger.Balance().Amount)
}

func TestBuyUnknownListing(t *testing.T) {
	engine, _, ledger := newTestMarket(1000)

	_, err := engine.Buy(context.Background(), "missing")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int64(1000), ledger.Balance().Amount)
}

func TestBuyWithInsufficientBalanceLeavesListingAvailable(t *testing.T) {
	engine, book, ledger := newTestMarket(40)

	_, err := engine.Buy(context.Background(), "L2") // price 50

	assert.ErrorIs(t, err, tokens.ErrInsufficientBalance)
	assert.Equal(t, int64(40), ledger.Balance().Amount)

	listing, getErr := book.Get("L2")
	require.NoError(t, getErr)
	assert.Equal(t, StatusAvailable, listing.Status)
}

func TestConcurrentBuysSucceedAtMostOnce(t *testing.T) {
	engine, book, ledger := newTestMarket(10000)

	const attempts = 32
	results := make([]error, attempts)

	var wg sync.WaitGroup
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer wg.Done()
			_, results[i] = engine.Buy(context.Background(), "L3")
		}(i)
	}
	wg.Wait()

	successes := 0
	for _, err := range results {
		if err == nil {
			successes++
		} else {
			assert.ErrorIs(t, err, ErrAlreadySold)
		}
	}
	assert.Equal(t, 1, successes)

	// Exactly one purchase was charged.
	assert.Equal(t, int64(10000-150), ledger.Balance().Amount)

	listing, err := book.Get("L3")
	require.NoError(t, err)
	assert.Equal(t, StatusSold, listing.Status)
}
