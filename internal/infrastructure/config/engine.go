package config

import "time"

// EngineConfig holds scan defaults and snapshot refresh settings
type EngineConfig struct {
	// Default wallet budget in ISK when the caller passes none
	DefaultWallet float64 `mapstructure:"default_wallet" validate:"gt=0"`

	// Default cargo capacity in m³
	DefaultCargo float64 `mapstructure:"default_cargo" validate:"gt=0"`

	// Default minimum profit in ISK
	DefaultMinProfit float64 `mapstructure:"default_min_profit" validate:"gte=0"`

	// Default number of results returned
	DefaultLimit int `mapstructure:"default_limit" validate:"min=1"`

	// Hubs below this security status are excluded
	SecurityLimit float64 `mapstructure:"security_limit" validate:"gte=0,lte=1"`

	// Worker pool size for pair enumeration; 0 means one per core
	Workers int `mapstructure:"workers" validate:"min=0"`

	// Snapshot TTL; a snapshot older than this aborts the scan
	SnapshotTTL time.Duration `mapstructure:"snapshot_ttl"`

	// How often the refresher pulls fresh order books
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}
