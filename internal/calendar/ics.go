// Package calendar renders event drafts as iCalendar files for dry runs,
// letting a draft be inspected in any calendar app before a real sync.
package calendar

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"

	"github.com/nycfree/calendar-sync/internal/event"
)

// GenerateICS renders a draft as an iCalendar (.ics) document.
func GenerateICS(draft *event.Draft) (string, error) {
	var ics strings.Builder

	ics.WriteString("BEGIN:VCALENDAR\r\n")
	ics.WriteString("VERSION:2.0\r\n")
	ics.WriteString("PRODID:-//NYC for Free//calendar-sync//EN\r\n")
	ics.WriteString("CALSCALE:GREGORIAN\r\n")
	ics.WriteString("METHOD:PUBLISH\r\n")
	ics.WriteString("BEGIN:VEVENT\r\n")

	ics.WriteString(fmt.Sprintf("UID:%s@nycforfree.co\r\n", draftUID(draft)))
	ics.WriteString(fmt.Sprintf("DTSTAMP:%s\r\n", time.Now().UTC().Format("20060102T150405Z")))

	start, end, err := formatWindow(draft)
	if err != nil {
		return "", err
	}
	ics.WriteString(start)
	ics.WriteString(end)

	ics.WriteString(fmt.Sprintf("SUMMARY:%s\r\n", escapeICS(draft.Summary)))
	if draft.Description != "" {
		ics.WriteString(fmt.Sprintf("DESCRIPTION:%s\r\n", escapeICS(draft.Description)))
	}
	if draft.Location != "" {
		ics.WriteString(fmt.Sprintf("LOCATION:%s\r\n", escapeICS(draft.Location)))
	}

	ics.WriteString("STATUS:CONFIRMED\r\n")
	ics.WriteString("SEQUENCE:0\r\n")
	ics.WriteString("TRANSP:OPAQUE\r\n")

	ics.WriteString("END:VEVENT\r\n")
	ics.WriteString("END:VCALENDAR\r\n")

	return ics.String(), nil
}

// formatWindow emits DTSTART/DTEND lines matching the draft's representation
// kind: whole dates for all-day drafts, UTC timestamps for timed ones.
func formatWindow(draft *event.Draft) (string, string, error) {
	if draft.Start.IsAllDay() {
		start, err := time.Parse("2006-01-02", draft.Start.Date)
		if err != nil {
			return "", "", fmt.Errorf("parsing start date: %w", err)
		}
		end, err := time.Parse("2006-01-02", draft.End.Date)
		if err != nil {
			return "", "", fmt.Errorf("parsing end date: %w", err)
		}
		return fmt.Sprintf("DTSTART;VALUE=DATE:%s\r\n", start.Format("20060102")),
			fmt.Sprintf("DTEND;VALUE=DATE:%s\r\n", end.Format("20060102")), nil
	}

	start, err := time.Parse(time.RFC3339, draft.Start.DateTime)
	if err != nil {
		return "", "", fmt.Errorf("parsing start time: %w", err)
	}
	end, err := time.Parse(time.RFC3339, draft.End.DateTime)
	if err != nil {
		return "", "", fmt.Errorf("parsing end time: %w", err)
	}
	return fmt.Sprintf("DTSTART:%s\r\n", start.UTC().Format("20060102T150405Z")),
		fmt.Sprintf("DTEND:%s\r\n", end.UTC().Format("20060102T150405Z")), nil
}

// draftUID derives a deterministic identifier from the draft's stable fields.
func draftUID(draft *event.Draft) string {
	h := sha1.New()
	h.Write([]byte(draft.Summary + "|" + draft.Start.Date + draft.Start.DateTime))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// escapeICS escapes special characters according to RFC 5545.
func escapeICS(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
