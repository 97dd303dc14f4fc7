package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/evetrade/internal/adapters/persistence"
	"github.com/andrescamacho/evetrade/internal/domain/trading"
	"github.com/andrescamacho/evetrade/test/helpers"
)

func TestScanRunRepository_RecordAndList(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormScanRunRepository(db)

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	older := &trading.ScanRun{
		ID:               "run-1",
		StartedAt:        base,
		SnapshotAt:       base.Add(-10 * time.Minute),
		TopologyVersion:  "sde-2026-08",
		ConfigHash:       "b9d2f1",
		OpportunityCount: 3,
		SkippedTotal:     12,
		Duration:         420 * time.Millisecond,
	}
	newer := &trading.ScanRun{
		ID:              "run-2",
		StartedAt:       base.Add(time.Hour),
		SnapshotAt:      base.Add(50 * time.Minute),
		TopologyVersion: "sde-2026-08",
		ConfigHash:      "b9d2f1",
		Cancelled:       true,
		Duration:        100 * time.Millisecond,
	}

	// Act
	require.NoError(t, repo.RecordRun(context.Background(), older))
	require.NoError(t, repo.RecordRun(context.Background(), newer))

	runs, err := repo.LatestRuns(context.Background(), 10)

	// Assert - newest first, fields round-tripped
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "run-2", runs[0].ID)
	assert.True(t, runs[0].Cancelled)
	assert.Equal(t, "run-1", runs[1].ID)
	assert.Equal(t, 3, runs[1].OpportunityCount)
	assert.Equal(t, int64(12), runs[1].SkippedTotal)
	assert.Equal(t, 420*time.Millisecond, runs[1].Duration)
}

func TestScanRunRepository_LatestRunsHonorsLimit(t *testing.T) {
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormScanRunRepository(db)

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		run := &trading.ScanRun{
			ID:              string(rune('a' + i)),
			StartedAt:       base.Add(time.Duration(i) * time.Minute),
			SnapshotAt:      base,
			TopologyVersion: "v1",
			ConfigHash:      "h",
		}
		require.NoError(t, repo.RecordRun(context.Background(), run))
	}

	runs, err := repo.LatestRuns(context.Background(), 2)

	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "e", runs[0].ID)
	assert.Equal(t, "d", runs[1].ID)
}
