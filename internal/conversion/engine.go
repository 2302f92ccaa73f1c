package conversion

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"carbon-credits/marketplace-backend/internal/credits"
	"carbon-credits/marketplace-backend/internal/events"
	"carbon-credits/marketplace-backend/internal/tokens"
)

var (
	// ErrInvalidAmount is returned when the requested token amount is not positive.
	ErrInvalidAmount = errors.New("conversion amount must be a positive integer")
	// ErrUnknownNFT is returned when the credit ID does not resolve to an owned credit.
	ErrUnknownNFT = errors.New("unknown credit NFT")
	// ErrAlreadyConverted is returned when the credit has already been burned.
	ErrAlreadyConverted = errors.New("credit already converted")
)

// Rate decides how many tokens a conversion mints. The mock keeps the
// caller-supplied amount; a production rate would derive it from the
// credit's offset tonnage instead.
type Rate func(credit credits.CreditNFT, requested int64) int64

// CallerAmount mints exactly the amount the caller requested.
func CallerAmount(_ credits.CreditNFT, requested int64) int64 {
	return requested
}

// Result describes a completed conversion.
type Result struct {
	CreditID string `json:"credit_id"`
	Minted   int64  `json:"minted"`
	Balance  int64  `json:"balance"`
}

// Engine executes the NFT-to-token conversion: burn the credit, mint the
// tokens, as one transition. A failed conversion changes nothing.
type Engine struct {
	mu        sync.Mutex
	inventory *credits.Inventory
	ledger    *tokens.Ledger
	rate      Rate
	logger    *zap.Logger
	publisher events.Publisher
}

// NewEngine creates a conversion engine over the session's inventory and ledger.
func NewEngine(inventory *credits.Inventory, ledger *tokens.Ledger, rate Rate, logger *zap.Logger, publisher events.Publisher) *Engine {
	if rate == nil {
		rate = CallerAmount
	}
	return &Engine{
		inventory: inventory,
		ledger:    ledger,
		rate:      rate,
		logger:    logger,
		publisher: publisher,
	}
}

// Convert burns the credit identified by creditID and credits the minted
// token amount to the ledger. Both effects apply or neither does: all
// validation happens before the burn, and the mint cannot fail once the
// amount has been validated.
func (e *Engine) Convert(ctx context.Context, creditID string, amount int64) (Result, error) {
	if amount <= 0 {
		return Result{}, ErrInvalidAmount
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	credit, err := e.inventory.Get(creditID)
	if err != nil {
		return Result{}, ErrUnknownNFT
	}
	if !credit.Owned {
		return Result{}, ErrAlreadyConverted
	}

	minted := e.rate(credit, amount)
	if minted <= 0 {
		return Result{}, ErrInvalidAmount
	}

	if err := e.inventory.MarkConverted(creditID); err != nil {
		switch {
		case errors.Is(err, credits.ErrAlreadyConverted):
			return Result{}, ErrAlreadyConverted
		case errors.Is(err, credits.ErrNotFound):
			return Result{}, ErrUnknownNFT
		default:
			return Result{}, err
		}
	}

	// minted was validated above, so the mint cannot fail after the burn.
	balance, err := e.ledger.Credit(minted)
	if err != nil {
		return Result{}, err
	}

	e.logger.Info("credit converted to tokens",
		zap.String("credit_id", creditID),
		zap.Int64("minted", minted),
		zap.Int64("balance", balance.Amount))
	e.publisher.Publish(events.New(events.EventCreditConverted, map[string]interface{}{
		"credit_id": creditID,
		"minted":    minted,
		"balance":   balance.Amount,
	}))

	return Result{CreditID: creditID, Minted: minted, Balance: balance.Amount}, nil
}
