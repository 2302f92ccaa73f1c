package wallet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carbon-credits/marketplace-backend/internal/credits"
	"carbon-credits/marketplace-backend/internal/events"
	"carbon-credits/marketplace-backend/internal/tokens"
)

func newTestService() (*Service, *tokens.Ledger, *credits.Inventory) {
	logger := zap.NewNop()
	publisher := events.NopPublisher{}
	ledger := tokens.NewLedger(1000, logger, publisher)
	inventory := credits.NewInventory(credits.CatalogSeed(), logger, publisher)
	return NewService(logger, publisher, ledger, inventory), ledger, inventory
}

func TestConnectAssignsMockAddress(t *testing.T) {
	service, _, _ := newTestService()

	session := service.Connect()

	assert.True(t, session.Connected)
	assert.Equal(t, MockAddress, session.Address)
}

func TestSessionInvariantAddressIffConnected(t *testing.T) {
	service, _, _ := newTestService()

	session := service.Session()
	assert.False(t, session.Connected)
	assert.Empty(t, session.Address)

	session = service.Connect()
	assert.True(t, session.Connected)
	assert.NotEmpty(t, session.Address)

	session = service.Disconnect()
	assert.False(t, session.Connected)
	assert.Empty(t, session.Address)
}

func TestDisconnectWhenDisconnectedIsNoOp(t *testing.T) {
	service, _, _ := newTestService()

	session := service.Disconnect()

	assert.False(t, session.Connected)
	assert.Empty(t, session.Address)
}

func TestReconnectResetsSessionScopedStores(t *testing.T) {
	service, ledger, inventory := newTestService()
	service.Connect()

	ledger.Credit(500)
	require.NoError(t, inventory.MarkConverted("001"))

	service.Disconnect()
	service.Connect()

	assert.Equal(t, int64(1000), ledger.Balance().Amount)
	assert.Len(t, inventory.ListOwned(), 3)
}

func TestRequireFailsWhenDisconnected(t *testing.T) {
	service, _, _ := newTestService()

	_, err := service.Require()
	assert.ErrorIs(t, err, ErrNotConnected)

	service.Connect()
	session, err := service.Require()
	require.NoError(t, err)
	assert.Equal(t, MockAddress, session.Address)
}
