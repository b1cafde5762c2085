package db

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// PrunerStore is the slice of the repository the pruner needs.
type PrunerStore interface {
	ListIDs(ctx context.Context, collection string) ([]string, error)
	DailyViewKeys(ctx context.Context, collection, id string) ([]string, error)
	Unset(ctx context.Context, collection, id string, fields []string) error
}

// StartDailyViewsPruner trims per-day view buckets older than the
// retention window so dailyViews maps do not grow without bound. It
// runs on a ticker until ctx is done; pruning is housekeeping, so every
// failure is logged and skipped.
func StartDailyViewsPruner(
	ctx context.Context,
	store PrunerStore,
	collection string,
	interval time.Duration,
	retention time.Duration,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cutoff := time.Now().UTC().Add(-retention).Format("2006-01-02")
				ids, err := store.ListIDs(ctx, collection)
				if err != nil {
					log.Error("failed to list profiles for pruning", zap.Error(err))
					continue
				}
				for _, id := range ids {
					keys, err := store.DailyViewKeys(ctx, collection, id)
					if err != nil {
						log.Error("failed to read daily views", zap.String("id", id), zap.Error(err))
						continue
					}
					var stale []string
					for _, day := range keys {
						if day < cutoff {
							stale = append(stale, "dailyViews."+day)
						}
					}
					if len(stale) == 0 {
						continue
					}
					if err := store.Unset(ctx, collection, id, stale); err != nil {
						log.Error("failed to prune daily views", zap.String("id", id), zap.Error(err))
						continue
					}
					log.Info("pruned daily views", zap.String("id", id), zap.Int("removed", len(stale)))
				}
			}
		}
	}()
}
