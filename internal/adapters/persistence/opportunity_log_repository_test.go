package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/evetrade/internal/adapters/persistence"
	"github.com/andrescamacho/evetrade/internal/domain/market"
	"github.com/andrescamacho/evetrade/internal/domain/trading"
	"github.com/andrescamacho/evetrade/internal/domain/universe"
	"github.com/andrescamacho/evetrade/test/helpers"
)

func TestOpportunityLogRepository_LogAndLoad(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormOpportunityLogRepository(db)

	jita, err := universe.NewHub(30000142, "Jita", 10000002, "The Forge", 60003760, 0.9)
	require.NoError(t, err)
	dodixie, err := universe.NewHub(30002659, "Dodixie", 10000032, "Sinq Laison", 60011866, 0.9)
	require.NoError(t, err)
	trit, err := market.NewItem(34, "Tritanium", 0.01)
	require.NoError(t, err)
	plex, err := market.NewItem(44992, "PLEX", 0.01)
	require.NoError(t, err)

	small, err := trading.NewOpportunity(trit, jita, dodixie, 1_000, 4.5, 6.0, 12)
	require.NoError(t, err)
	big, err := trading.NewOpportunity(plex, dodixie, jita, 10, 4_000_000, 4_500_000, 12)
	require.NoError(t, err)

	recordedAt := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)

	// Act
	err = repo.LogOpportunities(context.Background(), "run-7", recordedAt, []*trading.Opportunity{small, big})
	require.NoError(t, err)

	entries, err := repo.RunEntries(context.Background(), "run-7")

	// Assert - best profit first, fields round-tripped
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "PLEX", entries[0].ItemName)
	assert.Equal(t, "Dodixie", entries[0].BuyHubName)
	assert.Equal(t, "Jita", entries[0].SellHubName)
	assert.Equal(t, int64(10), entries[0].Quantity)
	assert.InDelta(t, 5_000_000, entries[0].Profit, 0.01)
	assert.Equal(t, 12, entries[0].Jumps)
	assert.Equal(t, "Tritanium", entries[1].ItemName)
	assert.InDelta(t, 1_500, entries[1].Profit, 0.01)
	assert.True(t, entries[0].RecordedAt.Equal(recordedAt))
}

func TestOpportunityLogRepository_EmptyRunAndUnknownRun(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormOpportunityLogRepository(db)

	// Logging nothing is a no-op
	require.NoError(t, repo.LogOpportunities(context.Background(), "run-1", time.Now(), nil))

	entries, err := repo.RunEntries(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
