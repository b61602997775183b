package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nycfree/calendar-sync/internal/gcal"
	sync "github.com/nycfree/calendar-sync/internal/sync"
)

func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Rebuild the Google Calendar from current listings",
		Long: `Deletes every event on the target calendar, then fetches the configured
month window of listings, scrapes each detail page, and inserts one calendar
event per listing.`,
		RunE: runSync,
	}
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateCalendar(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	p.serveMetrics(cfg.MetricsAddr)

	ctx := cmd.Context()
	cal, err := gcal.NewClient(ctx, []byte(cfg.ServiceAccountJSON), cfg.CalendarID, cfg.InsertDelay)
	if err != nil {
		return fmt.Errorf("creating calendar client: %w", err)
	}

	syncer := sync.New(p.source, p.scraper, cal, p.builder, cfg.MonthsAhead)
	stats, err := syncer.Run(ctx)
	if err != nil {
		return err
	}

	return WriteStats(cmd.OutOrStdout(), stats)
}
