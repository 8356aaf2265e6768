package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaults_FillsEverySection(t *testing.T) {
	// Arrange
	cfg := &Config{Session: SessionConfig{DataDir: "/data"}}

	// Act
	SetDefaults(cfg)

	// Assert
	assert.Equal(t, "bolt", cfg.Cache.Driver)
	assert.Equal(t, filepath.Join("/data", "storage", "cache.db"), cfg.Cache.Path)
	assert.Equal(t, filepath.Join("/data", "storage", "session.pid"), cfg.Session.PIDFile)
	assert.Equal(t, 60*time.Second, cfg.API.StageTimeout)
	assert.Equal(t, "https://stt.wiki/w/api.php", cfg.Wiki.BaseURL)
	assert.Equal(t, "sttc:image:", cfg.Cache.Redis.KeyPrefix)
	assert.Empty(t, cfg.Cache.Database.Type, "bolt driver needs no SQL database")
	assert.NoError(t, ValidateConfig(cfg))
}

func TestSetDefaults_SQLDriverSelectsDatabaseType(t *testing.T) {
	cfg := &Config{
		Cache:   CacheConfig{Driver: "sqlite"},
		Session: SessionConfig{DataDir: "/data"},
	}

	SetDefaults(cfg)

	assert.Equal(t, "sqlite", cfg.Cache.Database.Type)
	assert.Equal(t, filepath.Join("/data", "storage", "cache.sqlite"), cfg.Cache.Database.Path)
	assert.NoError(t, ValidateConfig(cfg))
}

func TestValidateConfig_RejectsUnknownDriver(t *testing.T) {
	cfg := &Config{Cache: CacheConfig{Driver: "memcached"}}
	SetDefaults(cfg)

	err := ValidateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Driver")
}

func TestValidateConfig_RedisRequiresURL(t *testing.T) {
	cfg := &Config{Cache: CacheConfig{Driver: "redis"}}
	SetDefaults(cfg)

	err := ValidateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache.redis.url")
}

func TestValidateConfig_FileOutputRequiresPath(t *testing.T) {
	cfg := &Config{Logging: LoggingConfig{Output: "file"}}
	SetDefaults(cfg)

	err := ValidateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "FilePath")
}

func TestLoadConfig_ReadsFileAndEnvironment(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := "cache:\n  driver: bolt\n  concurrency: 4\nsession:\n  data_dir: " + dir + "\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))
	t.Setenv("STTC_LOGGING_LEVEL", "debug")
	t.Setenv("STTC_API_ACCESS_TOKEN", "token-123")

	// Act
	cfg, err := LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Cache.Concurrency)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "token-123", cfg.API.AccessToken)
	assert.Equal(t, filepath.Join(dir, "storage", "cache.db"), cfg.Cache.Path)
}

func TestUserConfigHandler_SaveAndLoad(t *testing.T) {
	// Arrange
	handler, err := NewUserConfigHandler(t.TempDir())
	require.NoError(t, err)

	// Act
	require.NoError(t, handler.SetLogin(true, "abc"))
	token, err := handler.CachedToken()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	info, err := os.Stat(handler.GetConfigPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestUserConfigHandler_NoAutoLoginDropsToken(t *testing.T) {
	handler, err := NewUserConfigHandler(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, handler.SetLogin(false, "abc"))

	cfg, err := handler.Load()
	require.NoError(t, err)
	assert.False(t, cfg.AutoLogin)
	assert.Empty(t, cfg.AccessToken)
}

func TestUserConfigHandler_MissingFileIsEmpty(t *testing.T) {
	handler, err := NewUserConfigHandler(t.TempDir())
	require.NoError(t, err)

	cfg, err := handler.Load()

	require.NoError(t, err)
	assert.Equal(t, &UserConfig{}, cfg)
}
