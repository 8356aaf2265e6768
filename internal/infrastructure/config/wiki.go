package config

import "time"

// WikiConfig holds the image wiki client configuration
type WikiConfig struct {
	// MediaWiki api.php endpoint
	BaseURL string `mapstructure:"base_url" validate:"required,url"`

	// Request timeout
	Timeout time.Duration `mapstructure:"timeout" validate:"required"`

	// Rate limiting settings
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}
