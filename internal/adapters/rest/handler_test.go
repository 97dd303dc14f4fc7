package rest_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/evetrade/internal/adapters/rest"
	"github.com/andrescamacho/evetrade/internal/application/common"
	"github.com/andrescamacho/evetrade/internal/application/trading/queries"
	"github.com/andrescamacho/evetrade/internal/application/trading/types"
	"github.com/andrescamacho/evetrade/internal/domain/market"
	"github.com/andrescamacho/evetrade/internal/domain/trading"
)

type stubScanHandler struct {
	lastQuery *queries.FindTradeRoutesQuery
	response  *queries.FindTradeRoutesResponse
	err       error
}

func (s *stubScanHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	s.lastQuery = request.(*queries.FindTradeRoutesQuery)
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

type stubRefresher struct {
	called bool
	err    error
}

func (s *stubRefresher) RefreshNow(ctx context.Context) error {
	s.called = true
	return s.err
}

func newTestRouter(t *testing.T, scan *stubScanHandler, refresher rest.Refresher) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mediator := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*queries.FindTradeRoutesQuery](mediator, scan))

	router := gin.New()
	rest.NewHandler(mediator, refresher, nil, nil).RegisterRoutes(router)
	return router
}

func TestGetOpportunities_ReturnsContractArray(t *testing.T) {
	// Arrange
	scan := &stubScanHandler{
		response: &queries.FindTradeRoutesResponse{
			RunID: "run-1",
			Opportunities: []*types.OpportunityDTO{{
				Item:          "Tritanium",
				BuyRegion:     "Jita",
				SellRegion:    "Dodixie",
				Volume:        60,
				Amount:        6000,
				TotalCost:     600000,
				Profit:        1440000,
				Jumps:         10,
				ProfitPerJump: 144000,
			}},
			SnapshotAt:  time.Now(),
			SnapshotAge: 5 * time.Minute,
		},
	}
	router := newTestRouter(t, scan, nil)

	// Act
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/opportunities?wallet=50000000&cargo=230&min_profit=1000000&limit=5&hubs=30000142,30002659", nil)
	router.ServeHTTP(w, req)

	// Assert - parameters forwarded, contract fields present
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "run-1", w.Header().Get("X-Run-ID"))

	require.NotNil(t, scan.lastQuery)
	assert.Equal(t, 50000000.0, scan.lastQuery.Wallet)
	assert.Equal(t, 230.0, scan.lastQuery.Cargo)
	assert.Equal(t, 1000000.0, scan.lastQuery.MinProfit)
	assert.Equal(t, 5, scan.lastQuery.Limit)
	assert.Equal(t, []int64{30000142, 30002659}, scan.lastQuery.HubSystemIDs)

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, "Tritanium", body[0]["item"])
	assert.Equal(t, "Jita", body[0]["buy_region"])
	assert.Equal(t, "Dodixie", body[0]["sell_region"])
	assert.Equal(t, float64(6000), body[0]["amount"])
	assert.Equal(t, float64(1440000), body[0]["profit"])
	assert.Equal(t, float64(10), body[0]["jumps"])
	assert.Equal(t, float64(144000), body[0]["profit_per_jump"])
}

func TestGetOpportunities_ExplicitZeroMinProfitForwarded(t *testing.T) {
	scan := &stubScanHandler{response: &queries.FindTradeRoutesResponse{}}
	router := newTestRouter(t, scan, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/opportunities?min_profit=0", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0.0, scan.lastQuery.MinProfit)
}

func TestGetOpportunities_OmittedMinProfitUsesDefaultSentinel(t *testing.T) {
	scan := &stubScanHandler{response: &queries.FindTradeRoutesResponse{}}
	router := newTestRouter(t, scan, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/opportunities", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Negative(t, scan.lastQuery.MinProfit)
}

func TestGetOpportunities_NegativeMinProfitReturns400(t *testing.T) {
	scan := &stubScanHandler{response: &queries.FindTradeRoutesResponse{}}
	router := newTestRouter(t, scan, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/opportunities?min_profit=-5", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, scan.lastQuery)
}

func TestGetOpportunities_BadParameterReturns400(t *testing.T) {
	scan := &stubScanHandler{response: &queries.FindTradeRoutesResponse{}}
	router := newTestRouter(t, scan, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/opportunities?wallet=lots", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, scan.lastQuery)
}

func TestGetOpportunities_ErrorStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid config", trading.NewInvalidConfigError("wallet budget must be positive"), http.StatusBadRequest},
		{"stale snapshot", &trading.StaleSnapshotError{Age: 2 * time.Hour, TTL: time.Hour}, http.StatusServiceUnavailable},
		{"missing snapshot", market.ErrSnapshotNotFound, http.StatusServiceUnavailable},
		{"other failure", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, &stubScanHandler{err: tt.err}, nil)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/opportunities", nil))

			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRefresh_TriggersRefresher(t *testing.T) {
	refresher := &stubRefresher{}
	router := newTestRouter(t, &stubScanHandler{}, refresher)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, refresher.called)
}

func TestRefresh_UpstreamFailureReturns502(t *testing.T) {
	refresher := &stubRefresher{err: errors.New("esi down")}
	router := newTestRouter(t, &stubScanHandler{}, refresher)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil))

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestRefresh_UnavailableWithoutRefresher(t *testing.T) {
	router := newTestRouter(t, &stubScanHandler{}, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
