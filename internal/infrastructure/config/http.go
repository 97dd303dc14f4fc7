package config

import "time"

// HTTPConfig holds the REST API server configuration
type HTTPConfig struct {
	// Listen address, e.g. "0.0.0.0:8001"
	Address string `mapstructure:"address" validate:"required"`

	// Per-request handler timeout
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}
