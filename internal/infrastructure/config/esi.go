package config

import "time"

// ESIConfig holds EVE ESI API client configuration
type ESIConfig struct {
	// Base URL for the ESI API
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// User-Agent sent on every request, as ESI etiquette requires
	UserAgent string `mapstructure:"user_agent" validate:"required"`

	// Request timeout
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	// Rate limiting settings
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Circuit breaker settings
	Breaker BreakerConfig `mapstructure:"breaker"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Maximum requests per second
	Requests int `mapstructure:"requests" validate:"min=1"`

	// Burst size for token bucket
	Burst int `mapstructure:"burst" validate:"min=1"`
}

// BreakerConfig holds circuit breaker configuration
type BreakerConfig struct {
	// Consecutive failures before the circuit opens
	MaxFailures int `mapstructure:"max_failures" validate:"min=1"`

	// How long the circuit stays open before probing again
	Timeout time.Duration `mapstructure:"timeout"`
}
