package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"carbon-credits/marketplace-backend/internal/events"
)

func newTestLedger(seed int64) *Ledger {
	return NewLedger(seed, zap.NewNop(), events.NopPublisher{})
}

func TestCreditIncreasesBalance(t *testing.T) {
	ledger := newTestLedger(1000)

	balance, err := ledger.Credit(500)

	assert.NoError(t, err)
	assert.Equal(t, int64(1500), balance.Amount)
	assert.Equal(t, int64(1500), ledger.Balance().Amount)
}

func TestCreditRejectsNonPositiveAmount(t *testing.T) {
	ledger := newTestLedger(1000)

	_, err := ledger.Credit(0)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = ledger.Credit(-5)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	assert.Equal(t, int64(1000), ledger.Balance().Amount)
}

func TestDebitDecreasesBalance(t *testing.T) {
	ledger := newTestLedger(1000)

	balance, err := ledger.Debit(400)

	assert.NoError(t, err)
	assert.Equal(t, int64(600), balance.Amount)
}

func TestDebitFailsWhenBalanceTooLow(t *testing.T) {
	ledger := newTestLedger(100)

	_, err := ledger.Debit(101)

	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, int64(100), ledger.Balance().Amount)
}

func TestDebitRejectsNonPositiveAmount(t *testing.T) {
	ledger := newTestLedger(100)

	_, err := ledger.Debit(0)

	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Equal(t, int64(100), ledger.Balance().Amount)
}

func TestBalanceNeverNegative(t *testing.T) {
	ledger := newTestLedger(50)

	ledger.Debit(30)
	ledger.Debit(30) // fails, only 20 left
	ledger.Debit(20)
	_, err := ledger.Debit(1)

	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.Equal(t, int64(0), ledger.Balance().Amount)
}

func TestResetRestoresSeedBalance(t *testing.T) {
	ledger := newTestLedger(1000)
	ledger.Credit(500)
	ledger.Debit(200)

	ledger.Reset()

	assert.Equal(t, int64(1000), ledger.Balance().Amount)
}
