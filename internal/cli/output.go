package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/nycfree/calendar-sync/internal/event"
	sync "github.com/nycfree/calendar-sync/internal/sync"
)

// OutputFormat specifies the output format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// draftReport is the JSON shape of a fetch run.
type draftReport struct {
	Stats  sync.Stats     `json:"stats"`
	Drafts []*event.Draft `json:"drafts"`
}

// WriteDrafts writes the drafts a fetch run produced in the given format.
func WriteDrafts(w io.Writer, drafts []*event.Draft, stats sync.Stats, format OutputFormat) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(draftReport{Stats: stats, Drafts: drafts})
	case FormatText:
		return writeDraftsText(w, drafts, stats)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeDraftsText(w io.Writer, drafts []*event.Draft, stats sync.Stats) error {
	if len(drafts) == 0 {
		fmt.Fprintln(w, "No events found.")
		return nil
	}

	for _, draft := range drafts {
		fmt.Fprintf(w, "%s  %s\n", draftWindow(draft), draft.Summary)
		if draft.Location != "" {
			fmt.Fprintf(w, "    at %s\n", draft.Location)
		}
	}
	fmt.Fprintf(w, "\nTotal: %d events (%d fetched, %d skipped)\n",
		len(drafts), stats.Fetched, stats.Skipped)
	return nil
}

// draftWindow renders a draft's start for the text listing.
func draftWindow(draft *event.Draft) string {
	if draft.Start.IsAllDay() {
		return draft.Start.Date + " (all day)"
	}
	return draft.Start.DateTime
}

// WriteStats prints the outcome of a sync run.
func WriteStats(w io.Writer, stats sync.Stats) error {
	_, err := fmt.Fprintf(w, "Sync complete: %d deleted, %d fetched, %d inserted, %d skipped\n",
		stats.Deleted, stats.Fetched, stats.Inserted, stats.Skipped)
	return err
}
