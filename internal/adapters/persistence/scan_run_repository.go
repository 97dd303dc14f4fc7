package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/evetrade/internal/domain/trading"
)

// GormScanRunRepository implements trading.ScanRunRepository using GORM
type GormScanRunRepository struct {
	db *gorm.DB
}

// NewGormScanRunRepository creates a new GORM-based scan run repository
func NewGormScanRunRepository(db *gorm.DB) trading.ScanRunRepository {
	return &GormScanRunRepository{db: db}
}

// RecordRun persists a completed run
func (r *GormScanRunRepository) RecordRun(ctx context.Context, run *trading.ScanRun) error {
	model := ScanRunModel{
		ID:               run.ID,
		StartedAt:        run.StartedAt,
		SnapshotAt:       run.SnapshotAt,
		TopologyVersion:  run.TopologyVersion,
		ConfigHash:       run.ConfigHash,
		OpportunityCount: run.OpportunityCount,
		SkippedTotal:     run.SkippedTotal,
		Cancelled:        run.Cancelled,
		Duration:         run.Duration,
	}

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to record scan run: %w", err)
	}
	return nil
}

// LatestRuns returns the most recent runs, newest first
func (r *GormScanRunRepository) LatestRuns(ctx context.Context, limit int) ([]*trading.ScanRun, error) {
	var models []ScanRunModel
	q := r.db.WithContext(ctx).Order("started_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list scan runs: %w", err)
	}

	runs := make([]*trading.ScanRun, 0, len(models))
	for _, m := range models {
		runs = append(runs, &trading.ScanRun{
			ID:               m.ID,
			StartedAt:        m.StartedAt,
			SnapshotAt:       m.SnapshotAt,
			TopologyVersion:  m.TopologyVersion,
			ConfigHash:       m.ConfigHash,
			OpportunityCount: m.OpportunityCount,
			SkippedTotal:     m.SkippedTotal,
			Cancelled:        m.Cancelled,
			Duration:         m.Duration,
		})
	}
	return runs, nil
}
