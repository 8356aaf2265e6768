package config

import (
	"path/filepath"
	"time"
)

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// API defaults
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://stt.disruptorbeam.com"
	}
	if cfg.API.Timeout == 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	if cfg.API.StageTimeout == 0 {
		cfg.API.StageTimeout = 60 * time.Second
	}
	if cfg.API.RateLimit.Requests == 0 {
		cfg.API.RateLimit.Requests = 5
	}
	if cfg.API.RateLimit.Burst == 0 {
		cfg.API.RateLimit.Burst = 10
	}
	if cfg.API.Retry.MaxAttempts == 0 {
		cfg.API.Retry.MaxAttempts = 3
	}
	if cfg.API.Retry.BackoffBase == 0 {
		cfg.API.Retry.BackoffBase = 1 * time.Second
	}
	if cfg.API.CircuitBreaker.MaxFailures == 0 {
		cfg.API.CircuitBreaker.MaxFailures = 5
	}
	if cfg.API.CircuitBreaker.Timeout == 0 {
		cfg.API.CircuitBreaker.Timeout = 60 * time.Second
	}

	// Wiki defaults
	if cfg.Wiki.BaseURL == "" {
		cfg.Wiki.BaseURL = "https://stt.wiki/w/api.php"
	}
	if cfg.Wiki.Timeout == 0 {
		cfg.Wiki.Timeout = 15 * time.Second
	}
	if cfg.Wiki.RateLimit.Requests == 0 {
		cfg.Wiki.RateLimit.Requests = 10
	}
	if cfg.Wiki.RateLimit.Burst == 0 {
		cfg.Wiki.RateLimit.Burst = 20
	}

	// Session defaults
	if cfg.Session.DataDir == "" {
		cfg.Session.DataDir = DefaultDataDir()
	}
	if cfg.Session.PIDFile == "" {
		cfg.Session.PIDFile = filepath.Join(cfg.Session.DataDir, "storage", "session.pid")
	}

	// Cache defaults
	if cfg.Cache.Driver == "" {
		cfg.Cache.Driver = "bolt"
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = filepath.Join(cfg.Session.DataDir, "storage", "cache.db")
	}
	if cfg.Cache.Concurrency == 0 {
		cfg.Cache.Concurrency = 8
	}
	if cfg.Cache.PlaceholderIcon == "" {
		cfg.Cache.PlaceholderIcon = "https://stt.wiki/w/images/d/d6/Question_mark.png"
	}
	if cfg.Cache.Database.Type == "" && (cfg.Cache.Driver == "sqlite" || cfg.Cache.Driver == "postgres") {
		cfg.Cache.Database.Type = cfg.Cache.Driver
	}
	if cfg.Cache.Database.Type == "sqlite" && cfg.Cache.Database.Path == "" {
		cfg.Cache.Database.Path = filepath.Join(cfg.Session.DataDir, "storage", "cache.sqlite")
	}
	if cfg.Cache.Database.Host == "" {
		cfg.Cache.Database.Host = "localhost"
	}
	if cfg.Cache.Database.Port == 0 {
		cfg.Cache.Database.Port = 5432
	}
	if cfg.Cache.Database.User == "" {
		cfg.Cache.Database.User = "sttcompanion"
	}
	if cfg.Cache.Database.Name == "" {
		cfg.Cache.Database.Name = "sttcompanion"
	}
	if cfg.Cache.Database.SSLMode == "" {
		cfg.Cache.Database.SSLMode = "disable"
	}
	if cfg.Cache.Database.Pool.MaxOpen == 0 {
		cfg.Cache.Database.Pool.MaxOpen = 10
	}
	if cfg.Cache.Database.Pool.MaxIdle == 0 {
		cfg.Cache.Database.Pool.MaxIdle = 2
	}
	if cfg.Cache.Database.Pool.MaxLifetime == 0 {
		cfg.Cache.Database.Pool.MaxLifetime = 5 * time.Minute
	}
	if cfg.Cache.Redis.KeyPrefix == "" {
		cfg.Cache.Redis.KeyPrefix = "sttc:image:"
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9464
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
}
