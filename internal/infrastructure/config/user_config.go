package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// UserConfig is the per-user preferences file written by `sttc login`.
// It holds the access token, so it is written owner-readable only.
type UserConfig struct {
	// Log in with the cached access token without prompting
	AutoLogin bool `json:"autoLogin"`

	// Cached access token, kept only when AutoLogin is set
	AccessToken string `json:"accessToken,omitempty"`
}

// UserConfigHandler manages loading and saving user configuration
type UserConfigHandler struct {
	configPath string
}

// NewUserConfigHandler creates a handler for <dataDir>/config.json
func NewUserConfigHandler(dataDir string) (*UserConfigHandler, error) {
	if dataDir == "" {
		dataDir = DefaultDataDir()
	}

	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	return &UserConfigHandler{
		configPath: filepath.Join(dataDir, "config.json"),
	}, nil
}

// Load reads the user config from disk
func (h *UserConfigHandler) Load() (*UserConfig, error) {
	// If file doesn't exist, return empty config
	if _, err := os.Stat(h.configPath); os.IsNotExist(err) {
		return &UserConfig{}, nil
	}

	data, err := os.ReadFile(h.configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read user config: %w", err)
	}

	var config UserConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse user config: %w", err)
	}

	return &config, nil
}

// Save writes the user config to disk
func (h *UserConfigHandler) Save(config *UserConfig) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal user config: %w", err)
	}

	if err := os.WriteFile(h.configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write user config: %w", err)
	}

	return nil
}

// SetLogin records the login preference. The token is dropped when autoLogin is off.
func (h *UserConfigHandler) SetLogin(autoLogin bool, accessToken string) error {
	config, err := h.Load()
	if err != nil {
		return err
	}

	config.AutoLogin = autoLogin
	config.AccessToken = ""
	if autoLogin {
		config.AccessToken = accessToken
	}
	return h.Save(config)
}

// Logout clears the cached token and disables auto login
func (h *UserConfigHandler) Logout() error {
	return h.Save(&UserConfig{})
}

// CachedToken returns the token to log in with, or "" when auto login is off
func (h *UserConfigHandler) CachedToken() (string, error) {
	config, err := h.Load()
	if err != nil {
		return "", err
	}
	if !config.AutoLogin {
		return "", nil
	}
	return config.AccessToken, nil
}

// GetConfigPath returns the path to the user config file
func (h *UserConfigHandler) GetConfigPath() string {
	return h.configPath
}
