package marketplace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carbon-credits/marketplace-backend/internal/events"
)

func newTestBook() *Book {
	return NewBook(SeedListings(), zap.NewNop(), events.NopPublisher{})
}

func TestListingsReturnsSeedCatalogInOrder(t *testing.T) {
	book := newTestBook()

	listings := book.Listings()

	require.Len(t, listings, 3)
	assert.Equal(t, "L1", listings[0].ID)
	assert.Equal(t, "L2", listings[1].ID)
	assert.Equal(t, "L3", listings[2].ID)
	for _, l := range listings {
		assert.Equal(t, StatusAvailable, l.Status)
	}
}

func TestListAddsAvailableListing(t *testing.T) {
	book := newTestBook()

	listing, err := book.List(KindNFT, "Peatland Protection NFT #006", 200)

	require.NoError(t, err)
	assert.NotEmpty(t, listing.ID)
	assert.Equal(t, StatusAvailable, listing.Status)
	assert.Len(t, book.Listings(), 4)
}

func TestListValidatesInput(t *testing.T) {
	book := newTestBook()

	_, err := book.List("BOND", "item", 100)
	assert.ErrorIs(t, err, ErrInvalidListing)

	_, err = book.List(KindToken, "", 100)
	assert.ErrorIs(t, err, ErrInvalidListing)

	_, err = book.List(KindToken, "100 CC Tokens", 0)
	assert.ErrorIs(t, err, ErrInvalidListing)
}

func TestMarkSoldIsTerminal(t *testing.T) {
	book := newTestBook()

	sold, err := book.MarkSold("L1")
	require.NoError(t, err)
	assert.Equal(t, StatusSold, sold.Status)
	require.NotNil(t, sold.SoldAt)

	_, err = book.MarkSold("L1")
	assert.ErrorIs(t, err, ErrAlreadySold)
}

func TestMarkSoldUnknownListing(t *testing.T) {
	book := newTestBook()

	_, err := book.MarkSold("missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetReturnsSnapshot(t *testing.T) {
	book := newTestBook()

	listing, err := book.Get("L2")
	require.NoError(t, err)
	listing.Status = StatusSold

	fresh, err := book.Get("L2")
	require.NoError(t, err)
	assert.Equal(t, StatusAvailable, fresh.Status)
}
