package config

// CacheConfig holds image cache configuration
type CacheConfig struct {
	// Backing store: bolt, sqlite, postgres or redis
	Driver string `mapstructure:"driver" validate:"required,oneof=bolt sqlite postgres redis"`

	// Bolt file path; defaults to <data_dir>/storage/cache.db
	Path string `mapstructure:"path"`

	// Maximum concurrent icon resolutions during backfill
	Concurrency int `mapstructure:"concurrency" validate:"min=1,max=64"`

	// Icon URL shown for equipment until its image resolves
	PlaceholderIcon string `mapstructure:"placeholder_icon"`

	// SQL store settings (sqlite, postgres drivers)
	Database DatabaseConfig `mapstructure:"database"`

	// Redis store settings (redis driver)
	Redis RedisConfig `mapstructure:"redis"`
}

// RedisConfig holds the shared redis store configuration
type RedisConfig struct {
	URL       string `mapstructure:"url"`
	KeyPrefix string `mapstructure:"key_prefix"`
}
