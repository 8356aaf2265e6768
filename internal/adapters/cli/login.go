package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jouhtis/StarTrekTimelinesSpreadsheet/internal/infrastructure/config"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var autoLogin bool

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store the game access token",
		Long: `Record the access token used to call the game server.

With --auto-login the token is cached in the user config file (mode 0600) and
used by later commands. Without it, only the preference is recorded and the
token must be passed with --token on each command.

Examples:
  sttc login --token <access-token> --auto-login`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if accessToken == "" {
				return fmt.Errorf("--token is required")
			}

			handler, err := userConfigHandler()
			if err != nil {
				return err
			}
			if err := handler.SetLogin(autoLogin, accessToken); err != nil {
				return fmt.Errorf("failed to save login: %w", err)
			}

			if autoLogin {
				fmt.Printf("Logged in. Token cached in %s\n", handler.GetConfigPath())
			} else {
				fmt.Println("Login preference saved; token not cached (use --auto-login to cache it)")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&autoLogin, "auto-login", false, "Cache the token for later commands")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the cached access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := userConfigHandler()
			if err != nil {
				return err
			}
			if err := handler.Logout(); err != nil {
				return fmt.Errorf("failed to clear login: %w", err)
			}
			fmt.Println("Logged out")
			return nil
		},
	}
}

func userConfigHandler() (*config.UserConfigHandler, error) {
	cfg := config.LoadConfigOrDefault(configPath)
	handler, err := config.NewUserConfigHandler(cfg.Session.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create user config handler: %w", err)
	}
	return handler, nil
}
