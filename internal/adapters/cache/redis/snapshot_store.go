package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/andrescamacho/evetrade/internal/domain/market"
)

const snapshotKey = "market:snapshot"

// snapshotEnvelope is the stored JSON form of a snapshot
type snapshotEnvelope struct {
	CapturedAt time.Time                 `json:"captured_at"`
	TTLSeconds int64                     `json:"ttl_seconds"`
	Books      map[int64]map[int64]books `json:"books"`
}

type books struct {
	Asks []quote `json:"asks"`
	Bids []quote `json:"bids"`
}

type quote struct {
	Price    float64 `json:"price"`
	Quantity int64   `json:"quantity"`
}

// SnapshotStore implements market.SnapshotStore on a single Redis key.
// The key expires together with the snapshot TTL, so a scan after expiry
// sees a missing snapshot rather than a stale one.
type SnapshotStore struct {
	rdb *redis.Client
}

// NewSnapshotStore creates a snapshot store backed by the given client
func NewSnapshotStore(c *Client) *SnapshotStore {
	return &SnapshotStore{rdb: c.Underlying()}
}

// Get returns the stored snapshot or market.ErrSnapshotNotFound
func (s *SnapshotStore) Get(ctx context.Context) (*market.Snapshot, error) {
	payload, err := s.rdb.Get(ctx, snapshotKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, market.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("redis: get snapshot: %w", err)
	}

	var envelope snapshotEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return nil, fmt.Errorf("redis: decode snapshot: %w", err)
	}

	domainBooks := make(map[int64]market.HubBooks, len(envelope.Books))
	for hubID, hubBooks := range envelope.Books {
		hb := make(market.HubBooks, len(hubBooks))
		for typeID, book := range hubBooks {
			hb[typeID] = market.OrderBook{
				Asks: toDomainQuotes(book.Asks),
				Bids: toDomainQuotes(book.Bids),
			}
		}
		domainBooks[hubID] = hb
	}

	snapshot, err := market.NewSnapshot(domainBooks, envelope.CapturedAt, time.Duration(envelope.TTLSeconds)*time.Second)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid stored snapshot: %w", err)
	}
	return snapshot, nil
}

// Put stores the snapshot, replacing any previous one. The Redis key
// expires with the snapshot TTL.
func (s *SnapshotStore) Put(ctx context.Context, snapshot *market.Snapshot) error {
	envelope := snapshotEnvelope{
		CapturedAt: snapshot.CapturedAt(),
		TTLSeconds: int64(snapshot.TTL() / time.Second),
		Books:      make(map[int64]map[int64]books),
	}

	for hubID, hubBooks := range snapshot.Books() {
		stored := make(map[int64]books, len(hubBooks))
		for typeID, book := range hubBooks {
			stored[typeID] = books{
				Asks: toStoredQuotes(book.Asks),
				Bids: toStoredQuotes(book.Bids),
			}
		}
		envelope.Books[hubID] = stored
	}

	payload, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("redis: encode snapshot: %w", err)
	}

	if err := s.rdb.Set(ctx, snapshotKey, payload, snapshot.TTL()).Err(); err != nil {
		return fmt.Errorf("redis: set snapshot: %w", err)
	}
	return nil
}

func toDomainQuotes(stored []quote) []market.Quote {
	quotes := make([]market.Quote, 0, len(stored))
	for _, q := range stored {
		quotes = append(quotes, market.Quote{Price: q.Price, Quantity: q.Quantity})
	}
	return quotes
}

func toStoredQuotes(domain []market.Quote) []quote {
	quotes := make([]quote, 0, len(domain))
	for _, q := range domain {
		quotes = append(quotes, quote{Price: q.Price, Quantity: q.Quantity})
	}
	return quotes
}
