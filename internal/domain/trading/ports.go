package trading

import (
	"context"
	"time"
)

// ScanRunRepository defines persistence for scan run records
type ScanRunRepository interface {
	// RecordRun persists a completed run
	RecordRun(ctx context.Context, run *ScanRun) error

	// LatestRuns returns the most recent runs, newest first
	LatestRuns(ctx context.Context, limit int) ([]*ScanRun, error)
}

// OpportunityLogRepository defines persistence for the per-run opportunity
// log used for price research across runs
type OpportunityLogRepository interface {
	// LogOpportunities appends the opportunities reported by a run
	LogOpportunities(ctx context.Context, runID string, recordedAt time.Time, opportunities []*Opportunity) error

	// RunEntries returns the logged opportunities for a run, best profit first
	RunEntries(ctx context.Context, runID string) ([]*LoggedOpportunity, error)
}
