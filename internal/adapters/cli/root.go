package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/loading"
	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/domain/shared"
)

var (
	// Global flags
	configPath  string
	accessToken string
	verbose     bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sttc",
		Short: "Star Trek Timelines companion - load and inspect your roster",
		Long: `sttc loads your player data from the game server, joins it with the
static crew, ship and item templates, and resolves wiki images for it.

Examples:
  sttc login --token <access-token> --auto-login
  sttc load
  sttc load --wait-icons --crew --ships --equipment
  sttc image resolve Spock_Head.png
  sttc cache stats
  sttc config show`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: config.yaml in ., ./configs or the user config dir)")
	rootCmd.PersistentFlags().StringVar(&accessToken, "token", "",
		"Access token for this invocation (overrides config and cached login)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	rootCmd.AddCommand(NewLoginCommand())
	rootCmd.AddCommand(NewLogoutCommand())
	rootCmd.AddCommand(NewLoadCommand())
	rootCmd.AddCommand(NewImageCommand())
	rootCmd.AddCommand(NewCacheCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command; a failed load exits with the user-facing failure label
func Execute(ctx context.Context) {
	rootCmd := NewRootCommand()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, shared.ErrDataLoadFailed) {
			fmt.Fprintln(os.Stderr, loading.StateFailed.Label())
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
