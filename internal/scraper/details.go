package scraper

// EventDetails holds the fields recovered from an event detail page.
// Absence is represented by an empty string, never by a nil pointer.
type EventDetails struct {
	Description    string `json:"description"`
	ExternalURL    string `json:"external_url"`
	ExternalLabel  string `json:"external_label"`
	PosterImageURL string `json:"poster_image_url"`
}

// IsZero reports whether no field was recovered.
func (d EventDetails) IsZero() bool {
	return d == EventDetails{}
}
