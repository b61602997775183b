// Package sync sequences the full pipeline: clear the calendar, fetch listing
// windows, scrape detail pages, build drafts, and insert them.
//
// Execution is deliberately sequential with one HTTP request in flight at a
// time; throttling lives in the collaborators (detail-fetch delay, insert
// delay). Item-level failures are logged and skipped so one bad item never
// aborts the batch.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/nycfree/calendar-sync/internal/event"
	"github.com/nycfree/calendar-sync/internal/listings"
	"github.com/nycfree/calendar-sync/internal/logger"
)

// progressInterval is how many processed items pass between progress logs.
const progressInterval = 10

// ListingsSource provides deduplicated listing items for a month window.
type ListingsSource interface {
	FetchWindow(start time.Time, monthsAhead int) []listings.Item
}

// DetailScraper provides scraped descriptions for detail-page paths.
type DetailScraper interface {
	Description(urlPath string) string
}

// Calendar is the write interface over the target calendar.
type Calendar interface {
	DeleteAll(ctx context.Context) (int, error)
	Insert(ctx context.Context, draft *event.Draft) error
}

// Stats summarizes one pipeline run.
type Stats struct {
	Deleted  int `json:"deleted"`
	Fetched  int `json:"fetched"`
	Built    int `json:"built"`
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// Syncer wires the pipeline collaborators together.
type Syncer struct {
	source      ListingsSource
	scraper     DetailScraper
	calendar    Calendar // nil when only CollectDrafts is used
	builder     *event.Builder
	monthsAhead int
	now         func() time.Time
}

// New creates a Syncer. calendar may be nil for draft-only (dry run) use.
func New(source ListingsSource, scraper DetailScraper, calendar Calendar, builder *event.Builder, monthsAhead int) *Syncer {
	return &Syncer{
		source:      source,
		scraper:     scraper,
		calendar:    calendar,
		builder:     builder,
		monthsAhead: monthsAhead,
		now:         time.Now,
	}
}

// Run executes the full sync: delete-all, fetch, then per-item
// scrape+build+insert. Only the initial calendar clearing is fatal; item
// failures are counted and skipped.
func (s *Syncer) Run(ctx context.Context) (Stats, error) {
	var stats Stats

	if s.calendar == nil {
		return stats, fmt.Errorf("no calendar configured")
	}

	deleted, err := s.calendar.DeleteAll(ctx)
	if err != nil {
		return stats, fmt.Errorf("clearing calendar: %w", err)
	}
	stats.Deleted = deleted

	items := s.source.FetchWindow(s.now(), s.monthsAhead)
	stats.Fetched = len(items)
	logger.Info("Processing listing items", logger.Fields{"items": len(items)})

	for i, item := range items {
		draft, err := s.buildOne(item)
		if err != nil {
			logger.Warn("Skipping item", logger.Fields{"id": item.ID, "title": item.Title}, err)
			stats.Skipped++
			continue
		}
		stats.Built++

		if err := s.calendar.Insert(ctx, draft); err != nil {
			logger.Warn("Failed to insert event", logger.Fields{"summary": draft.Summary}, err)
			stats.Skipped++
			continue
		}
		stats.Inserted++

		if (i+1)%progressInterval == 0 {
			logger.Info("Progress", logger.Fields{"processed": i + 1, "total": len(items)})
		}
	}

	logger.Info("Sync completed", logger.Fields{
		"deleted":  stats.Deleted,
		"fetched":  stats.Fetched,
		"inserted": stats.Inserted,
		"skipped":  stats.Skipped,
	})
	return stats, nil
}

// CollectDrafts runs the read-only half of the pipeline: fetch, scrape, and
// build, without touching the calendar. Invalid items are skipped.
func (s *Syncer) CollectDrafts() ([]*event.Draft, Stats) {
	var stats Stats

	items := s.source.FetchWindow(s.now(), s.monthsAhead)
	stats.Fetched = len(items)

	drafts := make([]*event.Draft, 0, len(items))
	for _, item := range items {
		draft, err := s.buildOne(item)
		if err != nil {
			logger.Warn("Skipping item", logger.Fields{"id": item.ID, "title": item.Title}, err)
			stats.Skipped++
			continue
		}
		stats.Built++
		drafts = append(drafts, draft)
	}
	return drafts, stats
}

// buildOne attaches the scraped description (when the item has a detail page)
// and builds the draft.
func (s *Syncer) buildOne(item listings.Item) (*event.Draft, error) {
	scraped := ""
	if item.FullURL != "" {
		scraped = s.scraper.Description(item.FullURL)
	}
	return s.builder.Build(item, scraped)
}
