package trading

import (
	"context"
	"math"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/evetrade/internal/domain/market"
	"github.com/andrescamacho/evetrade/internal/domain/shared"
	"github.com/andrescamacho/evetrade/internal/domain/universe"
	"github.com/andrescamacho/evetrade/pkg/utils"
)

// SkipCounters records per-pair and per-item skips absorbed during a run.
// Skips are diagnostics, never fatal: the run completes with whatever valid
// opportunities exist.
type SkipCounters struct {
	SameRegionPairs  int64 // Both hubs read the same regional order book
	UnreachablePairs int64 // No stargate route between the hubs
	MissingQuotes    int64 // No ask at the buy hub or no bid at the sell hub
	NoSpread         int64 // Best bid does not exceed best ask
	ZeroQuantity     int64 // Budget, cargo or depth cap the quantity at zero
	BelowThreshold   int64 // Profit under the configured minimum
}

// Total returns the sum of all skip counters
func (s SkipCounters) Total() int64 {
	return s.SameRegionPairs + s.UnreachablePairs + s.MissingQuotes +
		s.NoSpread + s.ZeroQuantity + s.BelowThreshold
}

func (s *SkipCounters) merge(other SkipCounters) {
	s.SameRegionPairs += other.SameRegionPairs
	s.UnreachablePairs += other.UnreachablePairs
	s.MissingQuotes += other.MissingQuotes
	s.NoSpread += other.NoSpread
	s.ZeroQuantity += other.ZeroQuantity
	s.BelowThreshold += other.BelowThreshold
}

// Result is the outcome of one engine run: an unordered multiset of
// opportunities plus skip diagnostics. Cancelled marks a partial result cut
// short by the caller's context.
type Result struct {
	Opportunities []*Opportunity
	Skipped       SkipCounters
	Cancelled     bool
}

// Engine enumerates (hub-pair, item) combinations over an immutable snapshot
// and distance matrix and produces profitable opportunities.
//
// The engine keeps no state across runs; every invocation is a deterministic
// transform of (topology, snapshot, config). Enumeration is partitioned
// across a bounded worker pool; workers only read shared inputs and append to
// worker-local buffers, so no locking is needed beyond the final join.
type Engine struct {
	clock   shared.Clock
	workers int
}

// NewEngine creates an engine. If workers is non-positive it defaults to the
// number of available cores.
func NewEngine(clock shared.Clock, workers int) *Engine {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Engine{clock: clock, workers: workers}
}

type hubPair struct {
	buy  *universe.Hub
	sell *universe.Hub
}

// Run executes one scan.
//
// Fatal failures happen only up front: InvalidConfigError for a malformed
// config and StaleSnapshotError when the snapshot age exceeds its TTL.
// Everything after that is a per-pair or per-item skip. The context may
// cancel an in-flight run; the engine then returns what it has with
// Result.Cancelled set instead of an error.
func (e *Engine) Run(
	ctx context.Context,
	matrix *universe.DistanceMatrix,
	snapshot *market.Snapshot,
	knownHubs map[int64]*universe.Hub,
	items []*market.Item,
	cfg TradeConfig,
) (*Result, error) {
	if err := cfg.Validate(knownHubs); err != nil {
		return nil, err
	}

	if snapshot.IsStale(e.clock) {
		return nil, &StaleSnapshotError{Age: snapshot.Age(e.clock), TTL: snapshot.TTL()}
	}

	// Hub-level security filter: endpoints only, route systems are not
	// inspected.
	filtered := make([]*universe.Hub, 0, len(cfg.HubSystemIDs))
	for _, systemID := range cfg.HubSystemIDs {
		hub := knownHubs[systemID]
		if hub.Security >= cfg.SecurityLimit {
			filtered = append(filtered, hub)
		}
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].SystemID < filtered[j].SystemID })

	var pairs []hubPair
	for _, buy := range filtered {
		for _, sell := range filtered {
			if buy.SystemID == sell.SystemID {
				continue
			}
			pairs = append(pairs, hubPair{buy: buy, sell: sell})
		}
	}

	workers := utils.Min(e.workers, len(pairs))
	if workers < 1 {
		workers = 1
	}

	results := make([][]*Opportunity, workers)
	counters := make([]SkipCounters, workers)
	var cancelledMu sync.Mutex
	cancelled := false

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		worker := w
		g.Go(func() error {
			local := &counters[worker]
			for i := worker; i < len(pairs); i += workers {
				select {
				case <-ctx.Done():
					cancelledMu.Lock()
					cancelled = true
					cancelledMu.Unlock()
					return nil
				default:
				}
				e.evaluatePair(snapshot, matrix, pairs[i], items, cfg, &results[worker], local)
			}
			return nil
		})
	}
	// Workers never fail; Wait is the join barrier.
	_ = g.Wait()

	result := &Result{}
	for w := 0; w < workers; w++ {
		result.Opportunities = append(result.Opportunities, results[w]...)
		result.Skipped.merge(counters[w])
	}
	result.Cancelled = cancelled
	return result, nil
}

// evaluatePair applies the affordability, capacity, depth and profit caps for
// every item on one ordered hub pair, appending viable opportunities to out.
func (e *Engine) evaluatePair(
	snapshot *market.Snapshot,
	matrix *universe.DistanceMatrix,
	pair hubPair,
	items []*market.Item,
	cfg TradeConfig,
	out *[]*Opportunity,
	skipped *SkipCounters,
) {
	// Hubs in one region share an order book, so the spread is always zero.
	if pair.buy.RegionID == pair.sell.RegionID {
		skipped.SameRegionPairs++
		return
	}

	jumps, err := matrix.Jumps(pair.buy.SystemID, pair.sell.SystemID)
	if err != nil {
		skipped.UnreachablePairs++
		return
	}

	for _, item := range items {
		ask, haveAsk := snapshot.BestAsk(pair.buy.SystemID, item.TypeID)
		bid, haveBid := snapshot.BestBid(pair.sell.SystemID, item.TypeID)
		if !haveAsk || !haveBid {
			skipped.MissingQuotes++
			continue
		}
		if bid.Price <= ask.Price {
			skipped.NoSpread++
			continue
		}

		affordable := int64(math.Floor(cfg.WalletBudget / ask.Price))
		cargoLimited := int64(math.Floor(cfg.CargoCapacity / item.Volume))
		depthLimited := utils.Min64(ask.Quantity, bid.Quantity)

		quantity := utils.Min64(utils.Min64(affordable, cargoLimited), depthLimited)
		if quantity <= 0 {
			skipped.ZeroQuantity++
			continue
		}

		cost := float64(quantity) * ask.Price
		revenue := float64(quantity) * bid.Price
		profit := revenue - cost
		if profit < cfg.MinProfit {
			skipped.BelowThreshold++
			continue
		}

		opp, err := NewOpportunity(item, pair.buy, pair.sell, quantity, ask.Price, bid.Price, jumps)
		if err != nil {
			// Construction only fails on inputs the caps above already
			// excluded; treat it as a quote problem and move on.
			skipped.MissingQuotes++
			continue
		}
		*out = append(*out, opp)
	}
}
