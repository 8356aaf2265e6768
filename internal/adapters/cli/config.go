package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage sttc configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (STTC_* prefix)
2. Config file (config.yaml)
3. Default values

The login preference is stored in config.json under the data directory.

Examples:
  sttc config show`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.LoadConfigOrDefault(configPath)
			}

			handler, err := config.NewUserConfigHandler(cfg.Session.DataDir)
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			userCfg, err := handler.Load()
			if err != nil {
				fmt.Printf("Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Println("sttc Configuration")
			fmt.Println("==================")

			fmt.Println("Login:")
			fmt.Printf("  Config file:      %s\n", handler.GetConfigPath())
			fmt.Printf("  Auto login:       %t\n", userCfg.AutoLogin)
			fmt.Printf("  Token cached:     %t\n", userCfg.AccessToken != "")

			fmt.Println("\nGame API:")
			fmt.Printf("  Base URL:         %s\n", cfg.API.BaseURL)
			fmt.Printf("  Timeout:          %s\n", cfg.API.Timeout)
			fmt.Printf("  Stage Timeout:    %s\n", cfg.API.StageTimeout)
			fmt.Printf("  Rate Limit:       %d req/s (burst: %d)\n",
				cfg.API.RateLimit.Requests, cfg.API.RateLimit.Burst)
			fmt.Printf("  Max Retries:      %d\n", cfg.API.Retry.MaxAttempts)

			fmt.Println("\nWiki:")
			fmt.Printf("  Endpoint:         %s\n", cfg.Wiki.BaseURL)
			fmt.Printf("  Timeout:          %s\n", cfg.Wiki.Timeout)

			fmt.Println("\nImage Cache:")
			fmt.Printf("  Driver:           %s\n", cfg.Cache.Driver)
			switch cfg.Cache.Driver {
			case "bolt":
				fmt.Printf("  Path:             %s\n", cfg.Cache.Path)
			case "redis":
				fmt.Printf("  URL:              %s\n", maskPassword(cfg.Cache.Redis.URL))
				fmt.Printf("  Key Prefix:       %s\n", cfg.Cache.Redis.KeyPrefix)
			default:
				if cfg.Cache.Database.URL != "" {
					fmt.Printf("  URL:              %s\n", maskPassword(cfg.Cache.Database.URL))
				} else {
					fmt.Printf("  Path:             %s\n", cfg.Cache.Database.Path)
				}
			}
			fmt.Printf("  Concurrency:      %d\n", cfg.Cache.Concurrency)

			fmt.Println("\nSession:")
			fmt.Printf("  Data Dir:         %s\n", cfg.Session.DataDir)
			fmt.Printf("  Lock File:        %s\n", cfg.Session.PIDFile)

			fmt.Println("\nMetrics:")
			fmt.Printf("  Enabled:          %t\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Printf("  Endpoint:         http://%s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
			}

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:            %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:           %s\n", cfg.Logging.Format)
			fmt.Printf("  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}
}

// maskPassword hides the password in a connection URL
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "****")
	}
	return u.String()
}
