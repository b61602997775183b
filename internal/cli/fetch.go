package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nycfree/calendar-sync/internal/calendar"
	"github.com/nycfree/calendar-sync/internal/event"
	sync "github.com/nycfree/calendar-sync/internal/sync"
)

var (
	flagFormat string
	flagICSDir string
)

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch and build event drafts without touching the calendar",
		Long: `Runs the read-only half of the pipeline: fetches listings, scrapes detail
pages, and prints the calendar events that a sync would insert. Requires no
Google credentials.`,
		RunE: runFetch,
	}

	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.Flags().StringVar(&flagICSDir, "ics-dir", "", "Also write one .ics file per draft into this directory")

	return cmd
}

func runFetch(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := newPipeline(cfg)
	if err != nil {
		return err
	}
	p.serveMetrics(cfg.MetricsAddr)

	syncer := sync.New(p.source, p.scraper, nil, p.builder, cfg.MonthsAhead)
	drafts, stats := syncer.CollectDrafts()

	if flagICSDir != "" {
		if err := writeICSFiles(flagICSDir, drafts); err != nil {
			return err
		}
	}

	return WriteDrafts(cmd.OutOrStdout(), drafts, stats, format)
}

// writeICSFiles renders each draft into dir as NNN-<slug>.ics.
func writeICSFiles(dir string, drafts []*event.Draft) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating ICS directory: %w", err)
	}
	for i, draft := range drafts {
		ics, err := calendar.GenerateICS(draft)
		if err != nil {
			return fmt.Errorf("rendering %q: %w", draft.Summary, err)
		}
		name := fmt.Sprintf("%03d-%s.ics", i+1, slugify(draft.Summary))
		if err := os.WriteFile(filepath.Join(dir, name), []byte(ics), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	return nil
}

// slugify reduces a summary to a short, filesystem-safe token.
func slugify(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if len(slug) > 40 {
		slug = slug[:40]
	}
	if slug == "" {
		slug = "event"
	}
	return slug
}
