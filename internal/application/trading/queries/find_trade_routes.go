package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/andrescamacho/evetrade/internal/application/common"
	"github.com/andrescamacho/evetrade/internal/application/trading/types"
	"github.com/andrescamacho/evetrade/internal/domain/market"
	"github.com/andrescamacho/evetrade/internal/domain/shared"
	"github.com/andrescamacho/evetrade/internal/domain/trading"
	"github.com/andrescamacho/evetrade/internal/domain/universe"
)

// Defaults mirror the constraints a casual hauler runs with
const (
	DefaultWallet    = 50_000_000.0 // ISK
	DefaultCargo     = 230.0        // m³
	DefaultMinProfit = 1_000_000.0  // ISK
	DefaultLimit     = 10
)

// ScanDefaults are the fallback values applied to unset query fields.
// Deployments override them from configuration; zero fields keep the
// built-in constants.
type ScanDefaults struct {
	Wallet        float64
	Cargo         float64
	MinProfit     float64
	Limit         int
	SecurityLimit float64
}

// FindTradeRoutesQuery requests one ranked scan over the current snapshot
type FindTradeRoutesQuery struct {
	Wallet        float64 // Maximum ISK to spend (default 50M)
	Cargo         float64 // Available cargo volume in m³ (default 230)
	MinProfit     float64 // Minimum total profit in ISK (default 1M)
	SecurityLimit float64 // Exclude hubs below this security status (default 0)
	Limit         int     // Maximum opportunities to return (default 10)
	HubSystemIDs  []int64 // Hub selection; empty means all known hubs
}

// FindTradeRoutesResponse contains the ranked scan results
type FindTradeRoutesResponse struct {
	RunID           string
	Opportunities   []*types.OpportunityDTO
	Skipped         types.SkipCountersDTO
	Cancelled       bool
	SnapshotAt      time.Time
	SnapshotAge     time.Duration
	TopologyVersion string
}

// ScanMetrics records scan outcomes for observability; implementations live
// in the metrics adapter
type ScanMetrics interface {
	RecordScan(duration time.Duration, found int, skipped trading.SkipCounters)
}

// FindTradeRoutesHandler handles trade route queries. It wires the static
// repositories, the snapshot store and the matrix cache around the stateless
// engine.
type FindTradeRoutesHandler struct {
	hubRepo       universe.HubRepository
	topologyRepo  universe.TopologyRepository
	itemRepo      market.ItemRepository
	snapshotStore market.SnapshotStore
	matrixCache   *universe.MatrixCache
	engine        *trading.Engine
	clock         shared.Clock
	runRepo       trading.ScanRunRepository        // optional
	oppLog        trading.OpportunityLogRepository // optional
	metrics       ScanMetrics                      // optional
	defaults      ScanDefaults
}

// NewFindTradeRoutesHandler creates a new handler. runRepo and metrics may be
// nil; run records and metrics are then skipped.
func NewFindTradeRoutesHandler(
	hubRepo universe.HubRepository,
	topologyRepo universe.TopologyRepository,
	itemRepo market.ItemRepository,
	snapshotStore market.SnapshotStore,
	matrixCache *universe.MatrixCache,
	engine *trading.Engine,
	clock shared.Clock,
	runRepo trading.ScanRunRepository,
	metrics ScanMetrics,
) *FindTradeRoutesHandler {
	return &FindTradeRoutesHandler{
		hubRepo:       hubRepo,
		topologyRepo:  topologyRepo,
		itemRepo:      itemRepo,
		snapshotStore: snapshotStore,
		matrixCache:   matrixCache,
		engine:        engine,
		clock:         clock,
		runRepo:       runRepo,
		metrics:       metrics,
		defaults: ScanDefaults{
			Wallet:    DefaultWallet,
			Cargo:     DefaultCargo,
			MinProfit: DefaultMinProfit,
			Limit:     DefaultLimit,
		},
	}
}

// WithDefaults overrides the built-in scan defaults; zero fields keep the
// previous value
func (h *FindTradeRoutesHandler) WithDefaults(defaults ScanDefaults) *FindTradeRoutesHandler {
	if defaults.Wallet > 0 {
		h.defaults.Wallet = defaults.Wallet
	}
	if defaults.Cargo > 0 {
		h.defaults.Cargo = defaults.Cargo
	}
	if defaults.MinProfit > 0 {
		h.defaults.MinProfit = defaults.MinProfit
	}
	if defaults.Limit > 0 {
		h.defaults.Limit = defaults.Limit
	}
	if defaults.SecurityLimit > 0 {
		h.defaults.SecurityLimit = defaults.SecurityLimit
	}
	return h
}

// WithOpportunityLog enables per-run opportunity logging
func (h *FindTradeRoutesHandler) WithOpportunityLog(oppLog trading.OpportunityLogRepository) *FindTradeRoutesHandler {
	h.oppLog = oppLog
	return h
}

// Handle executes the query
func (h *FindTradeRoutesHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*FindTradeRoutesQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	// Apply defaults
	wallet := query.Wallet
	if wallet <= 0 {
		wallet = h.defaults.Wallet
	}
	cargo := query.Cargo
	if cargo <= 0 {
		cargo = h.defaults.Cargo
	}
	minProfit := query.MinProfit
	if minProfit < 0 {
		minProfit = h.defaults.MinProfit
	}
	limit := query.Limit
	if limit <= 0 {
		limit = h.defaults.Limit
	}
	securityLimit := query.SecurityLimit
	if securityLimit == 0 {
		securityLimit = h.defaults.SecurityLimit
	}

	hubs, err := h.hubRepo.ListHubs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load trade hubs: %w", err)
	}
	knownHubs := make(map[int64]*universe.Hub, len(hubs))
	for _, hub := range hubs {
		knownHubs[hub.SystemID] = hub
	}

	selected := query.HubSystemIDs
	if len(selected) == 0 {
		selected = make([]int64, 0, len(hubs))
		for _, hub := range hubs {
			selected = append(selected, hub.SystemID)
		}
	}

	cfg := trading.TradeConfig{
		WalletBudget:  wallet,
		CargoCapacity: cargo,
		MinProfit:     minProfit,
		SecurityLimit: securityLimit,
		HubSystemIDs:  selected,
	}
	// Reject a bad config before the matrix build: the cache is keyed by the
	// hub selection, and an unchecked selection would cache a matrix for a
	// request that can never run.
	if err := cfg.Validate(knownHubs); err != nil {
		return nil, err
	}

	items, err := h.itemRepo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}

	topology, err := h.topologyRepo.LoadTopology(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load topology: %w", err)
	}
	matrix := h.matrixCache.GetOrBuild(topology, selected)

	snapshot, err := h.snapshotStore.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load market snapshot: %w", err)
	}

	startedAt := h.clock.Now()
	result, err := h.engine.Run(ctx, matrix, snapshot, knownHubs, items, cfg)
	if err != nil {
		return nil, err
	}
	elapsed := h.clock.Now().Sub(startedAt)

	ranked := trading.RankOpportunities(result.Opportunities, limit)

	runID := uuid.NewString()
	if h.runRepo != nil {
		run := &trading.ScanRun{
			ID:               runID,
			StartedAt:        startedAt,
			SnapshotAt:       snapshot.CapturedAt(),
			TopologyVersion:  topology.Version(),
			ConfigHash:       cfg.Hash(),
			OpportunityCount: len(ranked),
			SkippedTotal:     result.Skipped.Total(),
			Cancelled:        result.Cancelled,
			Duration:         elapsed,
		}
		if err := h.runRepo.RecordRun(ctx, run); err != nil {
			// Run records are diagnostics; a failed insert must not fail the scan.
			common.LoggerFromContext(ctx).Log("warn", "failed to record scan run",
				map[string]interface{}{"run_id": runID, "error": err.Error()})
		}
	}

	if h.oppLog != nil {
		if err := h.oppLog.LogOpportunities(ctx, runID, startedAt, ranked); err != nil {
			common.LoggerFromContext(ctx).Log("warn", "failed to log opportunities",
				map[string]interface{}{"run_id": runID, "error": err.Error()})
		}
	}

	if h.metrics != nil {
		h.metrics.RecordScan(elapsed, len(ranked), result.Skipped)
	}

	dtos := make([]*types.OpportunityDTO, len(ranked))
	for i, opp := range ranked {
		dtos[i] = types.FromOpportunity(opp)
	}

	return &FindTradeRoutesResponse{
		RunID:           runID,
		Opportunities:   dtos,
		Skipped:         types.FromSkipCounters(result.Skipped),
		Cancelled:       result.Cancelled,
		SnapshotAt:      snapshot.CapturedAt(),
		SnapshotAge:     snapshot.Age(h.clock),
		TopologyVersion: topology.Version(),
	}, nil
}
