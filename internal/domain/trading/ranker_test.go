package trading_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/evetrade/internal/domain/market"
	"github.com/andrescamacho/evetrade/internal/domain/trading"
	"github.com/andrescamacho/evetrade/internal/domain/universe"
)

func mustOpportunity(t *testing.T, itemID int64, itemName string, buy, sell *universe.Hub, quantity int64, ask, bid float64, jumps int) *trading.Opportunity {
	t.Helper()
	item, err := market.NewItem(itemID, itemName, 0.01)
	require.NoError(t, err)
	opp, err := trading.NewOpportunity(item, buy, sell, quantity, ask, bid, jumps)
	require.NoError(t, err)
	return opp
}

func TestRankOpportunities_OrdersByProfitThenProfitPerJump(t *testing.T) {
	// Arrange
	hubs := testHubs()
	jita := hubs[jitaID]
	dodixie := hubs[dodixieID]
	amarr := hubs[amarrID]

	// profit 1000, 1 jump
	small := mustOpportunity(t, 34, "Tritanium", jita, dodixie, 100, 10, 20, 1)
	// profit 2000, 4 jumps (ppj 500)
	bigSlow := mustOpportunity(t, 35, "Pyerite", jita, amarr, 100, 10, 30, 4)
	// profit 2000, 2 jumps (ppj 1000)
	bigFast := mustOpportunity(t, 36, "Mexallon", dodixie, amarr, 100, 10, 30, 2)

	// Act
	ranked := trading.RankOpportunities([]*trading.Opportunity{small, bigSlow, bigFast}, 0)

	// Assert - profit first, profit-per-jump breaks the tie
	require.Len(t, ranked, 3)
	assert.Equal(t, "Mexallon", ranked[0].Item().Name)
	assert.Equal(t, "Pyerite", ranked[1].Item().Name)
	assert.Equal(t, "Tritanium", ranked[2].Item().Name)
}

func TestRankOpportunities_TertiaryKeyMakesOrderTotal(t *testing.T) {
	// Arrange - identical profit and profit-per-jump, distinct items/hubs
	hubs := testHubs()
	jita := hubs[jitaID]
	dodixie := hubs[dodixieID]
	amarr := hubs[amarrID]

	a := mustOpportunity(t, 36, "Mexallon", jita, dodixie, 100, 10, 20, 2)
	b := mustOpportunity(t, 34, "Tritanium", dodixie, amarr, 100, 10, 20, 2)
	c := mustOpportunity(t, 34, "Tritanium", jita, dodixie, 100, 10, 20, 2)

	// Act - input order must not matter
	ranked := trading.RankOpportunities([]*trading.Opportunity{a, b, c}, 0)

	// Assert - item id ascending, then buy hub, then sell hub
	require.Len(t, ranked, 3)
	assert.Same(t, c, ranked[0]) // Tritanium from Jita
	assert.Same(t, b, ranked[1]) // Tritanium from Dodixie
	assert.Same(t, a, ranked[2]) // Mexallon
}

func TestRankOpportunities_Truncates(t *testing.T) {
	hubs := testHubs()
	opps := []*trading.Opportunity{
		mustOpportunity(t, 34, "Tritanium", hubs[jitaID], hubs[dodixieID], 100, 10, 20, 1),
		mustOpportunity(t, 35, "Pyerite", hubs[jitaID], hubs[dodixieID], 100, 10, 30, 1),
		mustOpportunity(t, 36, "Mexallon", hubs[jitaID], hubs[dodixieID], 100, 10, 40, 1),
	}

	ranked := trading.RankOpportunities(opps, 2)

	require.Len(t, ranked, 2)
	assert.Equal(t, "Mexallon", ranked[0].Item().Name)
	assert.Equal(t, "Pyerite", ranked[1].Item().Name)
}

func TestRankOpportunities_DoesNotMutateInput(t *testing.T) {
	hubs := testHubs()
	first := mustOpportunity(t, 34, "Tritanium", hubs[jitaID], hubs[dodixieID], 100, 10, 20, 1)
	second := mustOpportunity(t, 35, "Pyerite", hubs[jitaID], hubs[dodixieID], 100, 10, 30, 1)
	input := []*trading.Opportunity{first, second}

	_ = trading.RankOpportunities(input, 1)

	assert.Same(t, first, input[0])
	assert.Same(t, second, input[1])
}
