package market

import (
	"context"
	"errors"
	"time"

	"github.com/andrescamacho/evetrade/internal/domain/universe"
)

// ErrSnapshotNotFound indicates no snapshot is available in the store
// (never captured, or the store's own expiry removed it)
var ErrSnapshotNotFound = errors.New("no market snapshot available")

// ItemRepository defines access to the static tradable item set
type ItemRepository interface {
	ListItems(ctx context.Context) ([]*Item, error)
	SaveItems(ctx context.Context, items []*Item) error
}

// SnapshotStore defines persistence for the current market snapshot
type SnapshotStore interface {
	// Get returns the stored snapshot or ErrSnapshotNotFound
	Get(ctx context.Context) (*Snapshot, error)

	// Put stores the snapshot, replacing any previous one
	Put(ctx context.Context, snapshot *Snapshot) error
}

// OrderSource fetches live order books for a hub set and materializes them
// as a snapshot with the given TTL
type OrderSource interface {
	FetchSnapshot(ctx context.Context, hubs []*universe.Hub, items []*Item, ttl time.Duration) (*Snapshot, error)
}
