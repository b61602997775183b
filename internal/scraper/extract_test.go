package scraper

import (
	"os"
	"strings"
	"testing"
)

const testBaseURL = "https://www.nycforfree.co"

func TestExtractDetailsFromFixture(t *testing.T) {
	data, err := os.ReadFile("../../testdata/fixtures/event_detail.html")
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}

	details := ExtractDetails(string(data), testBaseURL)

	for _, want := range []string{
		"Free Summer Concert",
		"Join us for a free outdoor concert at the Naumburg Bandshell in Central Park.",
		"Doors open at 6pm. No tickets required.",
		"- A blanket or low chair",
		"- Water",
	} {
		if !strings.Contains(details.Description, want) {
			t.Errorf("description missing %q, got:\n%s", want, details.Description)
		}
	}

	// Blocks are separated by a blank line, never more.
	if strings.Contains(details.Description, "\n\n\n") {
		t.Errorf("description contains a run of blank lines:\n%s", details.Description)
	}

	if details.ExternalURL != "https://www.naumburgconcerts.org/rsvp" {
		t.Errorf("external URL = %q, expected RSVP button link", details.ExternalURL)
	}
	if details.ExternalLabel != "RSVP Here" {
		t.Errorf("external label = %q, expected 'RSVP Here'", details.ExternalLabel)
	}
	if details.PosterImageURL != "https://images.squarespace-cdn.com/content/concert-poster.jpg" {
		t.Errorf("poster image = %q, expected og:image content", details.PosterImageURL)
	}
}

func TestExtractDetailsNoMarkersYieldsEmpty(t *testing.T) {
	html := `<html><head><title>x</title></head><body><p>unrelated page</p></body></html>`

	details := ExtractDetails(html, testBaseURL)

	if !details.IsZero() {
		t.Errorf("expected zero details for page without markers, got %+v", details)
	}
}

func TestExtractDetailsMetaFallback(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name: "og:description preferred",
			html: `<html><head>
				<meta property="og:description" content=" from og ">
				<meta name="description" content="from plain">
				</head><body></body></html>`,
			expected: "from og",
		},
		{
			name: "plain description when og absent",
			html: `<html><head>
				<meta name="description" content="from plain">
				</head><body></body></html>`,
			expected: "from plain",
		},
		{
			name: "empty post body falls through to meta",
			html: `<html><head><meta name="description" content="meta text"></head>
				<body><div data-layout-label="Post Body">
				<div class="sqs-block html-block"><div class="sqs-block-content"></div></div>
				</div></body></html>`,
			expected: "meta text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := ExtractDetails(tt.html, testBaseURL)
			if details.Description != tt.expected {
				t.Errorf("description = %q, expected %q", details.Description, tt.expected)
			}
		})
	}
}

func TestExtractExternalLinkFiltering(t *testing.T) {
	page := func(href, label string) string {
		return `<html><body><div data-layout-label="Post Body">
			<div class="sqs-block-button"><a href="` + href + `">` + label + `</a></div>
			</div></body></html>`
	}

	tests := []struct {
		name          string
		html          string
		expectedURL   string
		expectedLabel string
	}{
		{
			name:          "external link accepted",
			html:          page("https://partner.example.com/tickets", "Get Tickets"),
			expectedURL:   "https://partner.example.com/tickets",
			expectedLabel: "Get Tickets",
		},
		{
			name:        "mailto rejected",
			html:        page("mailto:hello@example.com", "Email us"),
			expectedURL: "",
		},
		{
			name:        "tel rejected",
			html:        page("tel:+12125551234", "Call"),
			expectedURL: "",
		},
		{
			name:        "same-origin absolute link suppressed",
			html:        page(testBaseURL+"/events/other", "More events"),
			expectedURL: "",
		},
		{
			name:        "relative link resolves to same origin and is suppressed",
			html:        page("/events/other", "More events"),
			expectedURL: "",
		},
		{
			name:          "empty label defaults",
			html:          page("https://partner.example.com/rsvp", ""),
			expectedURL:   "https://partner.example.com/rsvp",
			expectedLabel: DefaultLinkLabel,
		},
		{
			name: "inline body links ignored",
			html: `<html><body><div data-layout-label="Post Body">
				<div class="sqs-block html-block"><div class="sqs-block-content">
				<p>see <a href="https://elsewhere.example.com">this</a></p>
				</div></div></div></body></html>`,
			expectedURL: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := ExtractDetails(tt.html, testBaseURL)
			if details.ExternalURL != tt.expectedURL {
				t.Errorf("external URL = %q, expected %q", details.ExternalURL, tt.expectedURL)
			}
			if tt.expectedLabel != "" && details.ExternalLabel != tt.expectedLabel {
				t.Errorf("external label = %q, expected %q", details.ExternalLabel, tt.expectedLabel)
			}
		})
	}
}

func TestExtractPosterImageBannerFallback(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		expected string
	}{
		{
			name: "data-src preferred over src",
			html: `<html><body><div class="banner-thumbnail-wrapper">
				<img data-src="https://cdn.example.com/lazy.jpg" src="/placeholder.gif">
				</div></body></html>`,
			expected: "https://cdn.example.com/lazy.jpg",
		},
		{
			name: "src when no data-src",
			html: `<html><body><div class="banner-thumbnail-wrapper">
				<img src="/images/banner.jpg">
				</div></body></html>`,
			expected: testBaseURL + "/images/banner.jpg",
		},
		{
			name:     "no image yields empty",
			html:     `<html><body><p>nothing</p></body></html>`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details := ExtractDetails(tt.html, testBaseURL)
			if details.PosterImageURL != tt.expected {
				t.Errorf("poster image = %q, expected %q", details.PosterImageURL, tt.expected)
			}
		})
	}
}
