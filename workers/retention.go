package workers

import (
	"context"
	"log"
	"time"

	"propscout/storage"
)

// RetentionWorker prunes old run-history rows on a fixed cadence.
type RetentionWorker struct {
	store  *storage.SQLiteStore
	maxAge time.Duration
}

func NewRetentionWorker(store *storage.SQLiteStore, maxAge time.Duration) *RetentionWorker {
	return &RetentionWorker{store: store, maxAge: maxAge}
}

func (w *RetentionWorker) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.prune()

	for {
		select {
		case <-ticker.C:
			w.prune()
		case <-ctx.Done():
			return
		}
	}
}

func (w *RetentionWorker) prune() {
	cutoff := time.Now().UTC().Add(-w.maxAge)
	removed, err := w.store.PruneRuns(cutoff)
	if err != nil {
		log.Printf("Retention: prune error: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Retention: pruned %d runs older than %s", removed, cutoff.Format(time.RFC3339))
	}
}
