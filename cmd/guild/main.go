package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"guild/cmd/guild/ui"
	"guild/internal/api"
	"guild/internal/config"
	"guild/internal/logging"
	"guild/internal/session"
)

var (
	// Global flags
	verbose    bool
	configPath string
	apiURL     string

	cfg    config.Config
	logger *zap.Logger
	store  *session.Store
)

// rootCmd is the base command. Run without arguments it launches the
// interactive dashboard for the stored session.
var rootCmd = &cobra.Command{
	Use:   "guild",
	Short: "The Guild - talent and mission coordination from your terminal",
	Long: `The Guild is a terminal client for the guild coordination service.

Commanders propose missions, review pitches, and draft or invite members
into roles. Members browse open roles, pitch for them, and respond to
invitations. Mission leads move their missions across the status board.

Run without arguments to open the interactive dashboard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path := configPath
		if path == "" {
			var err error
			path, err = config.File()
			if err != nil {
				return fmt.Errorf("resolve config path: %w", err)
			}
		}
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if apiURL != "" {
			cfg.APIURL = apiURL
		}

		dir, err := config.Dir()
		if err != nil {
			return fmt.Errorf("resolve config dir: %w", err)
		}

		// The dashboard owns stdout, so logs always go to a file.
		logger, err = logging.New(dir, verbose)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		client := api.New(cfg.APIURL, cfg.RequestTimeout(), logger)
		store = session.New(client, dir, logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := store.Initialize(ctx); err != nil {
			return fmt.Errorf("restore session: %w", err)
		}
		if !store.Authenticated() {
			fmt.Println("Not logged in. Run 'guild login' first.")
			return nil
		}
		styles := ui.NewStyles(ui.DetectTheme(cfg.Theme))
		return runDashboard(store, styles, cfg.NotificationPoll(), logger)
	},
}

// requireSession restores the stored session or fails. Subcommands that
// need an authenticated caller use it as a prologue.
func requireSession(cmd *cobra.Command) error {
	if err := store.Initialize(cmd.Context()); err != nil {
		return fmt.Errorf("restore session: %w", err)
	}
	if !store.Authenticated() {
		return fmt.Errorf("not logged in; run 'guild login' first")
	}
	return nil
}

// tokenAbsPath reports the session token location, for logout messaging.
func tokenAbsPath() string {
	dir, err := config.Dir()
	if err != nil {
		return session.TokenFileName
	}
	return filepath.Join(dir, session.TokenFileName)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Override the API base URL")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(missionsCmd)
	rootCmd.AddCommand(invitesCmd)
	rootCmd.AddCommand(notificationsCmd)
	rootCmd.AddCommand(skillsCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
