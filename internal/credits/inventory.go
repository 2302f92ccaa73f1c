package credits

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"carbon-credits/marketplace-backend/internal/events"
	"carbon-credits/marketplace-backend/pkg/workflows"
)

var (
	// ErrNotFound is returned when a credit ID is not in the inventory.
	ErrNotFound = errors.New("credit not found")
	// ErrAlreadyConverted is returned when a credit has already been burned.
	ErrAlreadyConverted = errors.New("credit already converted")
)

// Inventory tracks the carbon credit NFTs owned by the active wallet
// session. Conversion flips a credit to not-owned permanently.
type Inventory struct {
	mu        sync.Mutex
	credits   map[string]*CreditNFT
	seed      []CreditNFT
	lifecycle *workflows.StateMachine
	logger    *zap.Logger
	publisher events.Publisher
}

// NewInventory creates an inventory holding the given seed catalog.
func NewInventory(seed []CreditNFT, logger *zap.Logger, publisher events.Publisher) *Inventory {
	inv := &Inventory{
		seed:      seed,
		lifecycle: workflows.NewCreditLifecycle(),
		logger:    logger,
		publisher: publisher,
	}
	inv.load(seed)
	return inv
}

func (inv *Inventory) load(seed []CreditNFT) {
	inv.credits = make(map[string]*CreditNFT, len(seed))
	for _, c := range seed {
		credit := c
		inv.credits[credit.ID] = &credit
	}
}

// ListOwned returns snapshots of the credits still owned by the session,
// ordered by ID ascending.
func (inv *Inventory) ListOwned() []CreditNFT {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	owned := make([]CreditNFT, 0, len(inv.credits))
	for _, c := range inv.credits {
		if c.Owned {
			owned = append(owned, *c)
		}
	}
	sort.Slice(owned, func(i, j int) bool { return owned[i].ID < owned[j].ID })
	return owned
}

// Get returns a snapshot of a single credit.
func (inv *Inventory) Get(id string) (CreditNFT, error) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	c, ok := inv.credits[id]
	if !ok {
		return CreditNFT{}, ErrNotFound
	}
	return *c, nil
}

// MarkConverted burns a credit. The transition is irreversible; a second
// call for the same ID fails with ErrAlreadyConverted.
func (inv *Inventory) MarkConverted(id string) error {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	c, ok := inv.credits[id]
	if !ok {
		return ErrNotFound
	}
	if !inv.lifecycle.CanTransition(string(c.Status()), string(StatusConverted)) {
		return ErrAlreadyConverted
	}
	c.Owned = false

	inv.logger.Info("credit converted",
		zap.String("credit_id", id),
		zap.String("project", c.Project))
	return nil
}

// Mint adds a new owned credit for the given project, assigning the next
// zero-padded catalog ID.
func (inv *Inventory) Mint(project string, offsetTons int64) (CreditNFT, error) {
	if project == "" {
		return CreditNFT{}, errors.New("project is required")
	}
	if offsetTons <= 0 {
		return CreditNFT{}, errors.New("offset_tons must be positive")
	}

	inv.mu.Lock()
	next := 0
	for id := range inv.credits {
		if n, err := strconv.Atoi(id); err == nil && n > next {
			next = n
		}
	}
	credit := CreditNFT{
		ID:         fmt.Sprintf("%03d", next+1),
		Project:    project,
		OffsetTons: offsetTons,
		Owned:      true,
	}
	inv.credits[credit.ID] = &credit
	inv.mu.Unlock()

	inv.logger.Info("credit minted",
		zap.String("credit_id", credit.ID),
		zap.String("project", credit.Project),
		zap.Int64("offset_tons", credit.OffsetTons))
	inv.publisher.Publish(events.New(events.EventCreditMinted, map[string]interface{}{
		"credit_id":   credit.ID,
		"project":     credit.Project,
		"offset_tons": credit.OffsetTons,
	}))

	return credit, nil
}

// Reset restores the seed catalog. Called on session boundaries so a new
// session always starts from the catalog defaults.
func (inv *Inventory) Reset() {
	inv.mu.Lock()
	inv.load(inv.seed)
	inv.mu.Unlock()
}
