package conversion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carbon-credits/marketplace-backend/internal/credits"
	"carbon-credits/marketplace-backend/internal/events"
	"carbon-credits/marketplace-backend/internal/tokens"
)

func newTestEngine(rate Rate) (*Engine, *credits.Inventory, *tokens.Ledger) {
	logger := zap.NewNop()
	publisher := events.NopPublisher{}
	inventory := credits.NewInventory(credits.CatalogSeed(), logger, publisher)
	ledger := tokens.NewLedger(1000, logger, publisher)
	return NewEngine(inventory, ledger, rate, logger, publisher), inventory, ledger
}

func TestConvertBurnsCreditAndMintsTokens(t *testing.T) {
	engine, inventory, ledger := newTestEngine(nil)

	result, err := engine.Convert(context.Background(), "001", 500)

	require.NoError(t, err)
	assert.Equal(t, "001", result.CreditID)
	assert.Equal(t, int64(500), result.Minted)
	assert.Equal(t, int64(1500), result.Balance)
	assert.Equal(t, int64(1500), ledger.Balance().Amount)

	for _, c := range inventory.ListOwned() {
		assert.NotEqual(t, "001", c.ID)
	}
}

func TestConvertTwiceFailsAndLeavesBalanceUnchanged(t *testing.T) {
	engine, _, ledger := newTestEngine(nil)

	_, err := engine.Convert(context.Background(), "001", 500)
	require.NoError(t, err)

	_, err = engine.Convert(context.Background(), "001", 500)

	assert.ErrorIs(t, err, ErrAlreadyConverted)
	assert.Equal(t, int64(1500), ledger.Balance().Amount)
}

func TestConvertUnknownCredit(t *testing.T) {
	engine, _, ledger := newTestEngine(nil)

	_, err := engine.Convert(context.Background(), "999", 100)

	assert.ErrorIs(t, err, ErrUnknownNFT)
	assert.Equal(t, int64(1000), ledger.Balance().Amount)
}

func TestConvertRejectsNonPositiveAmount(t *testing.T) {
	engine, inventory, ledger := newTestEngine(nil)

	_, err := engine.Convert(context.Background(), "001", 0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = engine.Convert(context.Background(), "001", -10)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	// Nothing was touched.
	assert.Equal(t, int64(1000), ledger.Balance().Amount)
	assert.Len(t, inventory.ListOwned(), 3)
}

func TestConvertValueConservation(t *testing.T) {
	engine, inventory, ledger := newTestEngine(nil)

	conversions := map[string]int64{"001": 500, "002": 1200, "003": 750}
	var expected int64 = 1000
	for id, amount := range conversions {
		_, err := engine.Convert(context.Background(), id, amount)
		require.NoError(t, err)
		expected += amount
	}

	assert.Equal(t, expected, ledger.Balance().Amount)
	assert.Empty(t, inventory.ListOwned())
}

func TestConvertWithOffsetDerivedRate(t *testing.T) {
	tonnageRate := func(credit credits.CreditNFT, _ int64) int64 {
		return credit.OffsetTons
	}
	engine, _, ledger := newTestEngine(tonnageRate)

	result, err := engine.Convert(context.Background(), "002", 1)

	require.NoError(t, err)
	assert.Equal(t, int64(1200), result.Minted)
	assert.Equal(t, int64(2200), ledger.Balance().Amount)
}
