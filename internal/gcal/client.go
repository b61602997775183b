// Package gcal wraps the Google Calendar API for the sync pipeline.
//
// The client authenticates with a service account, exposes the three
// operations the pipeline needs (paginated list, delete-by-id via DeleteAll,
// insert), and converts event drafts into the Calendar API's event shape.
package gcal

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/nycfree/calendar-sync/internal/event"
	"github.com/nycfree/calendar-sync/internal/logger"
)

// listPageSize bounds one Events.List page during deletion sweeps.
const listPageSize = 250

// Client performs calendar operations against one target calendar.
type Client struct {
	service     *calendar.Service
	calendarID  string
	insertDelay time.Duration
}

// NewClient creates a calendar client from service-account credentials JSON.
// insertDelay is applied after every insert to respect the API's rate limits.
func NewClient(ctx context.Context, credentialsJSON []byte, calendarID string, insertDelay time.Duration) (*Client, error) {
	if calendarID == "" {
		return nil, fmt.Errorf("calendar ID cannot be empty")
	}

	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, calendar.CalendarScope)
	if err != nil {
		return nil, fmt.Errorf("loading Google credentials: %w", err)
	}

	service, err := calendar.NewService(ctx, option.WithCredentials(creds))
	if err != nil {
		return nil, fmt.Errorf("creating Calendar API service: %w", err)
	}

	return &Client{
		service:     service,
		calendarID:  calendarID,
		insertDelay: insertDelay,
	}, nil
}

// DeleteAll removes every event from the calendar, paging through the full
// list. Returns the number of events deleted.
func (c *Client) DeleteAll(ctx context.Context) (int, error) {
	deleted := 0
	pageToken := ""

	for {
		call := c.service.Events.List(c.calendarID).
			SingleEvents(true).
			MaxResults(listPageSize)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		result, err := call.Context(ctx).Do()
		if err != nil {
			return deleted, fmt.Errorf("listing events: %w", err)
		}

		for _, item := range result.Items {
			if err := c.service.Events.Delete(c.calendarID, item.Id).Context(ctx).Do(); err != nil {
				return deleted, fmt.Errorf("deleting event %s: %w", item.Id, err)
			}
			deleted++
		}

		pageToken = result.NextPageToken
		if pageToken == "" {
			break
		}
	}

	logger.Info("Deleted existing calendar events", logger.Fields{"deleted": deleted})
	return deleted, nil
}

// Insert adds one draft to the calendar. The configured insert delay applies
// on every outcome so bursts of inserts stay under the API's rate tolerance.
func (c *Client) Insert(ctx context.Context, draft *event.Draft) error {
	_, err := c.service.Events.Insert(c.calendarID, ToCalendarEvent(draft)).Context(ctx).Do()
	if c.insertDelay > 0 {
		time.Sleep(c.insertDelay)
	}
	if err != nil {
		return fmt.Errorf("inserting event %q: %w", draft.Summary, err)
	}
	return nil
}

// ToCalendarEvent converts a draft into the Calendar API event shape.
func ToCalendarEvent(draft *event.Draft) *calendar.Event {
	return &calendar.Event{
		Summary:     draft.Summary,
		Location:    draft.Location,
		Description: draft.Description,
		Start:       toEventDateTime(draft.Start),
		End:         toEventDateTime(draft.End),
	}
}

func toEventDateTime(dt event.DateTime) *calendar.EventDateTime {
	if dt.IsAllDay() {
		return &calendar.EventDateTime{Date: dt.Date}
	}
	return &calendar.EventDateTime{
		DateTime: dt.DateTime,
		TimeZone: dt.TimeZone,
	}
}
