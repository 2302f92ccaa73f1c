package stats

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"carbon-credits/marketplace-backend/internal/credits"
	"carbon-credits/marketplace-backend/internal/marketplace"
)

// Worker periodically logs a market snapshot: how many listings remain
// available and how much offset tonnage the session still holds.
type Worker struct {
	book      *marketplace.Book
	inventory *credits.Inventory
	logger    *zap.Logger
	cron      *cron.Cron
}

// NewWorker creates a stats worker over the shared book and the session inventory.
func NewWorker(book *marketplace.Book, inventory *credits.Inventory, logger *zap.Logger) *Worker {
	return &Worker{
		book:      book,
		inventory: inventory,
		logger:    logger,
		cron:      cron.New(),
	}
}

// Start schedules the snapshot job at the given interval.
func (w *Worker) Start(interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}
	spec := fmt.Sprintf("@every %s", interval)
	if _, err := w.cron.AddFunc(spec, w.logSnapshot); err != nil {
		return fmt.Errorf("failed to schedule stats job: %w", err)
	}
	w.cron.Start()
	w.logger.Info("stats worker started", zap.Duration("interval", interval))
	return nil
}

// Stop halts the schedule and waits for a running job to finish.
func (w *Worker) Stop() {
	ctx := w.cron.Stop()
	<-ctx.Done()
	w.logger.Info("stats worker stopped")
}

func (w *Worker) logSnapshot() {
	available, sold := 0, 0
	for _, l := range w.book.Listings() {
		if l.Status == marketplace.StatusAvailable {
			available++
		} else {
			sold++
		}
	}

	var tons int64
	owned := w.inventory.ListOwned()
	for _, c := range owned {
		tons += c.OffsetTons
	}

	w.logger.Info("market snapshot",
		zap.Int("listings_available", available),
		zap.Int("listings_sold", sold),
		zap.Int("credits_owned", len(owned)),
		zap.Int64("offset_tons_owned", tons))
}
