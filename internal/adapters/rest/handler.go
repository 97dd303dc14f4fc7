package rest

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/andrescamacho/evetrade/internal/application/common"
	"github.com/andrescamacho/evetrade/internal/application/trading/queries"
	"github.com/andrescamacho/evetrade/internal/domain/market"
	"github.com/andrescamacho/evetrade/internal/domain/trading"
)

// Refresher triggers an immediate snapshot refresh
type Refresher interface {
	RefreshNow(ctx context.Context) error
}

// Handler exposes the trade route API over HTTP
type Handler struct {
	mediator  common.Mediator
	refresher Refresher
	runRepo   trading.ScanRunRepository
	oppLog    trading.OpportunityLogRepository
}

// NewHandler creates the API handler. refresher, runRepo and oppLog may be
// nil; the corresponding endpoints then report the feature as unavailable.
func NewHandler(mediator common.Mediator, refresher Refresher, runRepo trading.ScanRunRepository, oppLog trading.OpportunityLogRepository) *Handler {
	return &Handler{mediator: mediator, refresher: refresher, runRepo: runRepo, oppLog: oppLog}
}

// RegisterRoutes binds the handler methods to the Gin engine
func (h *Handler) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.GET("/opportunities", h.GetOpportunities)
		api.POST("/refresh", h.Refresh)
		api.GET("/runs", h.GetRuns)
		api.GET("/runs/:id/opportunities", h.GetRunOpportunities)
	}
}

// GetOpportunities runs a scan over the current snapshot and returns the
// ranked trade routes. Query parameters: wallet, cargo, min_profit, security,
// limit, hubs (comma-separated system ids). All optional.
func (h *Handler) GetOpportunities(c *gin.Context) {
	query := &queries.FindTradeRoutesQuery{MinProfit: -1}

	if err := parseFloatParam(c, "wallet", &query.Wallet); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := parseFloatParam(c, "cargo", &query.Cargo); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	// min_profit keeps the negative unset sentinel when absent; an explicit
	// negative threshold is a caller error, not a request for the default.
	if raw := c.Query("min_profit"); raw != "" {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil || value < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_profit: " + raw})
			return
		}
		query.MinProfit = value
	}
	if err := parseFloatParam(c, "security", &query.SecurityLimit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit: " + raw})
			return
		}
		query.Limit = limit
	}
	if raw := c.Query("hubs"); raw != "" {
		hubs, err := parseHubList(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		query.HubSystemIDs = hubs
	}

	response, err := h.mediator.Send(c.Request.Context(), query)
	if err != nil {
		status := statusForScanError(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	result := response.(*queries.FindTradeRoutesResponse)
	c.Header("X-Run-ID", result.RunID)
	c.Header("X-Snapshot-Age", result.SnapshotAge.String())
	c.JSON(http.StatusOK, result.Opportunities)
}

// Refresh pulls a fresh snapshot from the order source immediately
func (h *Handler) Refresh(c *gin.Context) {
	if h.refresher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "refresh not available"})
		return
	}

	started := time.Now()
	if err := h.refresher.RefreshNow(c.Request.Context()); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "refreshed",
		"duration": time.Since(started).String(),
	})
}

// GetRuns returns the most recent scan runs, newest first
func (h *Handler) GetRuns(c *gin.Context) {
	if h.runRepo == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "run history not available"})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit: " + raw})
			return
		}
		limit = parsed
	}

	runs, err := h.runRepo.LatestRuns(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type runView struct {
		ID               string `json:"id"`
		StartedAt        string `json:"started_at"`
		SnapshotAt       string `json:"snapshot_at"`
		TopologyVersion  string `json:"topology_version"`
		ConfigHash       string `json:"config_hash"`
		OpportunityCount int    `json:"opportunity_count"`
		SkippedTotal     int64  `json:"skipped_total"`
		Cancelled        bool   `json:"cancelled"`
		Duration         string `json:"duration"`
	}

	views := make([]runView, 0, len(runs))
	for _, run := range runs {
		views = append(views, runView{
			ID:               run.ID,
			StartedAt:        run.StartedAt.Format(time.RFC3339),
			SnapshotAt:       run.SnapshotAt.Format(time.RFC3339),
			TopologyVersion:  run.TopologyVersion,
			ConfigHash:       run.ConfigHash,
			OpportunityCount: run.OpportunityCount,
			SkippedTotal:     run.SkippedTotal,
			Cancelled:        run.Cancelled,
			Duration:         run.Duration.String(),
		})
	}
	c.JSON(http.StatusOK, views)
}

// GetRunOpportunities returns the logged opportunities of one run, best
// profit first. Entries use the same field names as the live scan result.
func (h *Handler) GetRunOpportunities(c *gin.Context) {
	if h.oppLog == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "opportunity log not available"})
		return
	}

	runID := c.Param("id")
	entries, err := h.oppLog.RunEntries(c.Request.Context(), runID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	type entryView struct {
		Item          string  `json:"item"`
		BuyRegion     string  `json:"buy_region"`
		SellRegion    string  `json:"sell_region"`
		Amount        int64   `json:"amount"`
		TotalCost     float64 `json:"total_cost"`
		Profit        float64 `json:"profit"`
		Jumps         int     `json:"jumps"`
		ProfitPerJump float64 `json:"profit_per_jump"`
		RecordedAt    string  `json:"recorded_at"`
	}

	views := make([]entryView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, entryView{
			Item:          entry.ItemName,
			BuyRegion:     entry.BuyHubName,
			SellRegion:    entry.SellHubName,
			Amount:        entry.Quantity,
			TotalCost:     entry.TotalCost,
			Profit:        entry.Profit,
			Jumps:         entry.Jumps,
			ProfitPerJump: entry.ProfitPerJump,
			RecordedAt:    entry.RecordedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, views)
}

// statusForScanError maps scan failures to HTTP statuses: bad parameters are
// the caller's fault, missing or stale market data is an upstream condition.
func statusForScanError(err error) int {
	var invalidConfig *trading.InvalidConfigError
	if errors.As(err, &invalidConfig) {
		return http.StatusBadRequest
	}

	var stale *trading.StaleSnapshotError
	if errors.As(err, &stale) || errors.Is(err, market.ErrSnapshotNotFound) {
		return http.StatusServiceUnavailable
	}

	return http.StatusInternalServerError
}

func parseFloatParam(c *gin.Context, name string, target *float64) error {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return errors.New("invalid " + name + ": " + raw)
	}
	*target = value
	return nil
}

func parseHubList(raw string) ([]int64, error) {
	parts := strings.Split(raw, ",")
	hubs := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, errors.New("invalid hub id: " + part)
		}
		hubs = append(hubs, id)
	}
	return hubs, nil
}
