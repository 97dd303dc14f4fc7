package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "evetrade.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "evetrade"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "evetrade"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Redis defaults
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}

	// ESI defaults
	if cfg.ESI.BaseURL == "" {
		cfg.ESI.BaseURL = "https://esi.evetech.net/latest"
	}
	if cfg.ESI.UserAgent == "" {
		cfg.ESI.UserAgent = "evetrade/1.0 (+https://github.com/andrescamacho/evetrade)"
	}
	if cfg.ESI.Timeout == 0 {
		cfg.ESI.Timeout = 30 * time.Second
	}
	if cfg.ESI.RateLimit.Requests == 0 {
		cfg.ESI.RateLimit.Requests = 20
	}
	if cfg.ESI.RateLimit.Burst == 0 {
		cfg.ESI.RateLimit.Burst = 40
	}
	if cfg.ESI.Breaker.MaxFailures == 0 {
		cfg.ESI.Breaker.MaxFailures = 5
	}
	if cfg.ESI.Breaker.Timeout == 0 {
		cfg.ESI.Breaker.Timeout = time.Minute
	}

	// Engine defaults mirror the constraints of a casual hauler
	if cfg.Engine.DefaultWallet == 0 {
		cfg.Engine.DefaultWallet = 50_000_000
	}
	if cfg.Engine.DefaultCargo == 0 {
		cfg.Engine.DefaultCargo = 230
	}
	if cfg.Engine.DefaultMinProfit == 0 {
		cfg.Engine.DefaultMinProfit = 1_000_000
	}
	if cfg.Engine.DefaultLimit == 0 {
		cfg.Engine.DefaultLimit = 10
	}
	if cfg.Engine.SnapshotTTL == 0 {
		cfg.Engine.SnapshotTTL = time.Hour
	}
	if cfg.Engine.RefreshInterval == 0 {
		cfg.Engine.RefreshInterval = 15 * time.Minute
	}

	// HTTP defaults
	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = "0.0.0.0:8001"
	}
	if cfg.HTTP.RequestTimeout == 0 {
		cfg.HTTP.RequestTimeout = 30 * time.Second
	}
	if cfg.HTTP.ShutdownTimeout == 0 {
		cfg.HTTP.ShutdownTimeout = 10 * time.Second
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}
