package event

import (
	"fmt"
	"strings"
	"time"

	"github.com/nycfree/calendar-sync/internal/listings"
)

// DefaultTitle is used when a listing item carries no title.
const DefaultTitle = "NYC for FREE event"

// Builder converts listing items into calendar event drafts. The site origin
// is used to reconstruct the source URL; all timestamps are interpreted in the
// target calendar's time zone.
type Builder struct {
	baseURL string
	loc     *time.Location
	tzName  string
}

// NewBuilder creates a Builder for the given site origin and IANA zone name.
func NewBuilder(baseURL, timezone string) (*Builder, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("loading time zone %q: %w", timezone, err)
	}
	return &Builder{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		loc:     loc,
		tzName:  timezone,
	}, nil
}

// Build merges one listing item and an optional scraped description into a
// calendar draft. Items without a usable start timestamp fail with a
// ValidationError; nothing is defaulted in their place.
func (b *Builder) Build(item listings.Item, scraped string) (*Draft, error) {
	if !item.HasStart {
		return nil, &ValidationError{ItemID: item.ID, Reason: "missing start timestamp"}
	}

	start := time.UnixMilli(item.StartMS).In(b.loc)
	end := start.Add(time.Hour)
	if item.HasEnd {
		end = time.UnixMilli(item.EndMS).In(b.loc)
	}

	title := item.Title
	if title == "" {
		title = DefaultTitle
	}

	draft := &Draft{
		Summary:     title,
		Location:    strings.Join(item.Location.Parts(), ", "),
		Description: b.composeDescription(item, scraped),
	}
	draft.Start, draft.End = b.window(start, end)
	return draft, nil
}

// window emits the start/end pair, classifying the span as all-day or timed.
// Both sides always use the same representation kind.
func (b *Builder) window(start, end time.Time) (DateTime, DateTime) {
	if !isAllDay(start, end) {
		return DateTime{DateTime: start.Format(time.RFC3339), TimeZone: b.tzName},
			DateTime{DateTime: end.Format(time.RFC3339), TimeZone: b.tzName}
	}

	endDate := end
	if end.Hour() == 0 && end.Minute() == 0 {
		// A midnight end is exclusive of that day.
		endDate = end.AddDate(0, 0, -1)
	}
	// The calendar convention wants all-day end dates exclusive, so the
	// represented end date is pushed out by one day.
	return DateTime{Date: start.Format("2006-01-02")},
		DateTime{Date: endDate.AddDate(0, 0, 1).Format("2006-01-02")}
}

// isAllDay classifies a window as all-day when it starts at local midnight and
// ends on a midnight/23:00 boundary, or when its duration sits in the 23h-25h
// band. The band absorbs daylight-saving drift around a nominal 24h span; the
// two checks are OR'd deliberately.
func isAllDay(start, end time.Time) bool {
	if start.Hour() == 0 && start.Minute() == 0 &&
		(end.Hour() == 0 || end.Hour() == 23) && end.Minute() == 0 {
		return true
	}
	duration := end.Sub(start)
	return duration >= 23*time.Hour && duration <= 25*time.Hour
}

// composeDescription assembles the draft description from fixed sections,
// omitting empty ones and separating the rest with blank lines.
func (b *Builder) composeDescription(item listings.Item, scraped string) string {
	sections := make([]string, 0, 5)

	if item.FullURL != "" {
		sourceURL := b.baseURL + "/" + strings.TrimPrefix(item.FullURL, "/")
		sections = append(sections, "Full Information: "+sourceURL)
	}

	line1 := strings.TrimSpace(item.Location.AddressLine1)
	line2 := strings.TrimSpace(item.Location.AddressLine2)
	if line1 != "" || line2 != "" {
		var sb strings.Builder
		sb.WriteString("Location:")
		if line1 != "" {
			sb.WriteString("\n" + line1)
		}
		if line2 != "" {
			sb.WriteString("\n" + line2)
		}
		sections = append(sections, sb.String())
	}

	about := strings.TrimSpace(scraped)
	if about == "" {
		about = item.Excerpt
	}
	if about != "" {
		sections = append(sections, "About:\n"+about)
	}

	if len(item.Tags) > 0 {
		sections = append(sections, "Tags: "+strings.Join(item.Tags, ", "))
	}

	if name := item.Author.Name(); name != "" {
		sections = append(sections, "Listed by: "+name)
	}

	return strings.Join(sections, "\n\n")
}
