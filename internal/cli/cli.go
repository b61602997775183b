package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nycfree/calendar-sync/internal/config"
	"github.com/nycfree/calendar-sync/internal/logger"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig      string
	flagVerbose     bool
	flagMetricsAddr string
)

// NewRootCmd creates the root command with its subcommands.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nycfree-sync",
		Short: "Mirror NYC for Free event listings into a Google Calendar",
		Long: `Fetches upcoming event listings from the NYC for Free site, scrapes each
event's detail page for a full description, and mirrors the results into a
Google Calendar. The calendar is rebuilt from scratch on every sync.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a YAML config file")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&flagMetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090)")

	cmd.AddCommand(newSyncCmd())
	cmd.AddCommand(newFetchCmd())

	return cmd
}

// loadConfig loads configuration and applies the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagVerbose {
		cfg.Verbose = true
	}
	if flagMetricsAddr != "" {
		cfg.MetricsAddr = flagMetricsAddr
	}
	if cfg.Verbose {
		logger.SetDefault(logger.New(logger.LevelDebug, os.Stdout))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
