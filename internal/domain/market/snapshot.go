package market

import (
	"errors"
	"sort"
	"time"

	"github.com/andrescamacho/evetrade/internal/domain/shared"
)

// Quote is one price tier of an order book side: the unit price and the
// quantity still available at that price.
type Quote struct {
	Price    float64
	Quantity int64
}

// OrderBook holds both sides of the book for one (hub, item).
// Asks are sell orders (a buyer pays the ask); bids are buy orders (a seller
// receives the bid).
type OrderBook struct {
	Asks []Quote
	Bids []Quote
}

// HubBooks maps item type id to its order book at one hub
type HubBooks map[int64]OrderBook

// Snapshot is an immutable capture of per-hub order books at one instant,
// keyed by hub system id. It carries a single capture timestamp and an
// explicit TTL; expiry is an age check by the consumer, not an eviction.
type Snapshot struct {
	books      map[int64]HubBooks
	capturedAt time.Time
	ttl        time.Duration
}

// NewSnapshot creates a Snapshot with validation. Order books are defensively
// copied and normalized: asks sorted ascending by price, bids descending, so
// the best quote is always the first tier.
func NewSnapshot(books map[int64]HubBooks, capturedAt time.Time, ttl time.Duration) (*Snapshot, error) {
	if capturedAt.IsZero() {
		return nil, errors.New("capture timestamp cannot be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("snapshot ttl must be positive")
	}

	copied := make(map[int64]HubBooks, len(books))
	for hubID, hubBooks := range books {
		hubCopy := make(HubBooks, len(hubBooks))
		for itemID, book := range hubBooks {
			asks := append([]Quote(nil), book.Asks...)
			bids := append([]Quote(nil), book.Bids...)
			sort.Slice(asks, func(i, j int) bool { return asks[i].Price < asks[j].Price })
			sort.Slice(bids, func(i, j int) bool { return bids[i].Price > bids[j].Price })
			hubCopy[itemID] = OrderBook{Asks: asks, Bids: bids}
		}
		copied[hubID] = hubCopy
	}

	return &Snapshot{books: copied, capturedAt: capturedAt, ttl: ttl}, nil
}

// BestAsk returns the lowest sell-order quote for an item at a hub: the price
// a buyer pays and the depth available there. The second return is false when
// no ask exists.
func (s *Snapshot) BestAsk(hubSystemID, itemTypeID int64) (Quote, bool) {
	book, ok := s.books[hubSystemID][itemTypeID]
	if !ok || len(book.Asks) == 0 {
		return Quote{}, false
	}
	return book.Asks[0], true
}

// BestBid returns the highest buy-order quote for an item at a hub: the price
// a seller receives and the depth available there. The second return is false
// when no bid exists.
func (s *Snapshot) BestBid(hubSystemID, itemTypeID int64) (Quote, bool) {
	book, ok := s.books[hubSystemID][itemTypeID]
	if !ok || len(book.Bids) == 0 {
		return Quote{}, false
	}
	return book.Bids[0], true
}

// CapturedAt returns the snapshot capture timestamp
func (s *Snapshot) CapturedAt() time.Time {
	return s.capturedAt
}

// TTL returns the snapshot's expiry horizon
func (s *Snapshot) TTL() time.Duration {
	return s.ttl
}

// Age returns the elapsed time since capture
func (s *Snapshot) Age(clock shared.Clock) time.Duration {
	return clock.Now().Sub(s.capturedAt)
}

// IsStale reports whether the snapshot age exceeds its TTL
func (s *Snapshot) IsStale(clock shared.Clock) bool {
	return s.Age(clock) > s.ttl
}

// HubSystemIDs returns the hubs with at least one order book in the snapshot
func (s *Snapshot) HubSystemIDs() []int64 {
	ids := make([]int64, 0, len(s.books))
	for id := range s.books {
		ids = append(ids, id)
	}
	return ids
}

// Books exports a defensive copy of the raw order books, used by stores that
// serialize the snapshot
func (s *Snapshot) Books() map[int64]HubBooks {
	copied := make(map[int64]HubBooks, len(s.books))
	for hubID, hubBooks := range s.books {
		hubCopy := make(HubBooks, len(hubBooks))
		for itemID, book := range hubBooks {
			hubCopy[itemID] = OrderBook{
				Asks: append([]Quote(nil), book.Asks...),
				Bids: append([]Quote(nil), book.Bids...),
			}
		}
		copied[hubID] = hubCopy
	}
	return copied
}
