package services

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/evetrade/internal/application/common"
	"github.com/andrescamacho/evetrade/internal/domain/market"
	"github.com/andrescamacho/evetrade/internal/domain/universe"
)

// SnapshotRefresher owns the refresh timer the engine deliberately does not
// have: it periodically pulls fresh order books from the order source and
// replaces the stored snapshot. The engine itself only ever checks snapshot
// age; scheduling lives here, in the caller's hands.
type SnapshotRefresher struct {
	hubRepo  universe.HubRepository
	itemRepo market.ItemRepository
	source   market.OrderSource
	store    market.SnapshotStore
	interval time.Duration
	ttl      time.Duration
	metrics  RefreshMetrics
}

// RefreshMetrics records refresh outcomes for observability
type RefreshMetrics interface {
	RecordRefresh(success bool)
}

// NewSnapshotRefresher creates a refresher that refreshes every interval and
// stamps each snapshot with the given TTL
func NewSnapshotRefresher(
	hubRepo universe.HubRepository,
	itemRepo market.ItemRepository,
	source market.OrderSource,
	store market.SnapshotStore,
	interval time.Duration,
	ttl time.Duration,
) *SnapshotRefresher {
	return &SnapshotRefresher{
		hubRepo:  hubRepo,
		itemRepo: itemRepo,
		source:   source,
		store:    store,
		interval: interval,
		ttl:      ttl,
	}
}

// WithMetrics attaches a refresh metrics recorder
func (r *SnapshotRefresher) WithMetrics(metrics RefreshMetrics) *SnapshotRefresher {
	r.metrics = metrics
	return r
}

// RefreshNow fetches order books for all known hubs and replaces the stored
// snapshot
func (r *SnapshotRefresher) RefreshNow(ctx context.Context) (err error) {
	logger := common.LoggerFromContext(ctx)
	defer func() {
		if r.metrics != nil {
			r.metrics.RecordRefresh(err == nil)
		}
	}()

	hubs, err := r.hubRepo.ListHubs(ctx)
	if err != nil {
		return fmt.Errorf("failed to load trade hubs: %w", err)
	}
	items, err := r.itemRepo.ListItems(ctx)
	if err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}

	started := time.Now()
	snapshot, err := r.source.FetchSnapshot(ctx, hubs, items, r.ttl)
	if err != nil {
		return fmt.Errorf("failed to fetch market orders: %w", err)
	}

	if err := r.store.Put(ctx, snapshot); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}

	logger.Log("info", "market snapshot refreshed", map[string]interface{}{
		"hubs":     len(hubs),
		"items":    len(items),
		"duration": time.Since(started).String(),
	})
	return nil
}

// Run refreshes immediately and then on every interval tick until the context
// is cancelled. Refresh errors are logged and the loop keeps going; a
// transient upstream failure should not kill the service.
func (r *SnapshotRefresher) Run(ctx context.Context) error {
	logger := common.LoggerFromContext(ctx)

	if err := r.RefreshNow(ctx); err != nil {
		logger.Log("error", "initial snapshot refresh failed", map[string]interface{}{"error": err.Error()})
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := r.RefreshNow(ctx); err != nil {
				logger.Log("error", "snapshot refresh failed", map[string]interface{}{"error": err.Error()})
			}
		}
	}
}
