package persistence

import (
	"time"
)

// HubModel represents the hubs table. One row per trade hub station,
// imported from the universe static data.
type HubModel struct {
	SystemID   int64   `gorm:"column:system_id;primaryKey"`
	Name       string  `gorm:"column:name;not null"`
	RegionID   int64   `gorm:"column:region_id;not null;index"`
	RegionName string  `gorm:"column:region_name;not null"`
	StationID  int64   `gorm:"column:station_id;not null"`
	Security   float64 `gorm:"column:security;not null"`
}

func (HubModel) TableName() string {
	return "hubs"
}

// StargateModel represents the stargates table. One row per undirected
// stargate edge; the pair is stored once with from_system < to_system.
type StargateModel struct {
	ID         int    `gorm:"column:id;primaryKey;autoIncrement"`
	FromSystem int64  `gorm:"column:from_system;not null;uniqueIndex:idx_gate_pair"`
	ToSystem   int64  `gorm:"column:to_system;not null;uniqueIndex:idx_gate_pair"`
	Version    string `gorm:"column:version;not null;index"`
}

func (StargateModel) TableName() string {
	return "stargates"
}

// ItemModel represents the items table of tradable goods
type ItemModel struct {
	TypeID int64   `gorm:"column:type_id;primaryKey"`
	Name   string  `gorm:"column:name;not null"`
	Volume float64 `gorm:"column:volume;not null"`
}

func (ItemModel) TableName() string {
	return "items"
}

// ScanRunModel represents the scan_runs table
type ScanRunModel struct {
	ID               string        `gorm:"column:id;primaryKey"`
	StartedAt        time.Time     `gorm:"column:started_at;not null;index"`
	SnapshotAt       time.Time     `gorm:"column:snapshot_at;not null"`
	TopologyVersion  string        `gorm:"column:topology_version;not null"`
	ConfigHash       string        `gorm:"column:config_hash;not null"`
	OpportunityCount int           `gorm:"column:opportunity_count;not null"`
	SkippedTotal     int64         `gorm:"column:skipped_total;not null"`
	Cancelled        bool          `gorm:"column:cancelled;not null"`
	Duration         time.Duration `gorm:"column:duration_ns;not null"`
}

func (ScanRunModel) TableName() string {
	return "scan_runs"
}

// OpportunityLogModel represents the opportunity_log table. One row per
// opportunity reported by a scan run, kept for later price research.
type OpportunityLogModel struct {
	ID            int       `gorm:"column:id;primaryKey;autoIncrement"`
	RunID         string    `gorm:"column:run_id;not null;index"`
	RecordedAt    time.Time `gorm:"column:recorded_at;not null"`
	ItemTypeID    int64     `gorm:"column:item_type_id;not null"`
	ItemName      string    `gorm:"column:item_name;not null"`
	BuyHubSystem  int64     `gorm:"column:buy_hub_system;not null"`
	BuyHubName    string    `gorm:"column:buy_hub_name;not null"`
	SellHubSystem int64     `gorm:"column:sell_hub_system;not null"`
	SellHubName   string    `gorm:"column:sell_hub_name;not null"`
	Quantity      int64     `gorm:"column:quantity;not null"`
	AskPrice      float64   `gorm:"column:ask_price;not null"`
	BidPrice      float64   `gorm:"column:bid_price;not null"`
	TotalCost     float64   `gorm:"column:total_cost;not null"`
	Profit        float64   `gorm:"column:profit;not null"`
	Jumps         int       `gorm:"column:jumps;not null"`
	ProfitPerJump float64   `gorm:"column:profit_per_jump;not null"`
}

func (OpportunityLogModel) TableName() string {
	return "opportunity_log"
}
