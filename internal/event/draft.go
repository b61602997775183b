package event

// DateTime is one side of an event window. Exactly one of Date or DateTime is
// set: Date carries a calendar-local whole date for all-day events, DateTime an
// RFC 3339 timestamp with its zone name for timed events.
type DateTime struct {
	Date     string `json:"date,omitempty"`
	DateTime string `json:"dateTime,omitempty"`
	TimeZone string `json:"timeZone,omitempty"`
}

// IsAllDay reports whether this side uses the date-only representation.
func (dt DateTime) IsAllDay() bool {
	return dt.Date != ""
}

// Draft is a calendar entry ready for insertion. Start and End always use the
// same representation kind: both date-only or both date-time.
type Draft struct {
	Summary     string   `json:"summary"`
	Location    string   `json:"location,omitempty"`
	Start       DateTime `json:"start"`
	End         DateTime `json:"end"`
	Description string   `json:"description,omitempty"`
}
