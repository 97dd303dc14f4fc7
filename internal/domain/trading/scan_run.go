package trading

import "time"

// ScanRun records one engine invocation for auditing. A run is keyed by the
// inputs that fully determine its output: topology version, snapshot
// timestamp and config hash.
type ScanRun struct {
	ID               string
	StartedAt        time.Time
	SnapshotAt       time.Time
	TopologyVersion  string
	ConfigHash       string
	OpportunityCount int
	SkippedTotal     int64
	Cancelled        bool
	Duration         time.Duration
}

// LoggedOpportunity is one row of the opportunity log: a flattened
// opportunity stamped with the run that reported it.
type LoggedOpportunity struct {
	RunID         string
	RecordedAt    time.Time
	ItemTypeID    int64
	ItemName      string
	BuyHubSystem  int64
	BuyHubName    string
	SellHubSystem int64
	SellHubName   string
	Quantity      int64
	AskPrice      float64
	BidPrice      float64
	TotalCost     float64
	Profit        float64
	Jumps         int
	ProfitPerJump float64
}
