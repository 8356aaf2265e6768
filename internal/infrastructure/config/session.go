package config

// SessionConfig holds per-install session settings
type SessionConfig struct {
	// Root of the user data directory (storage, lock file)
	DataDir string `mapstructure:"data_dir" validate:"required"`

	// Lock file guarding the cache directory against concurrent sessions
	PIDFile string `mapstructure:"pid_file"`
}
