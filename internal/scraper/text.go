package scraper

import (
	"regexp"
	"strings"
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// CleanText normalizes line endings to "\n", collapses runs of three or more
// consecutive newlines down to two, and trims surrounding whitespace. Paragraph
// breaks survive; excessive vertical whitespace does not.
func CleanText(value string) string {
	if value == "" {
		return ""
	}
	value = strings.ReplaceAll(value, "\r\n", "\n")
	value = strings.ReplaceAll(value, "\r", "\n")
	value = blankRuns.ReplaceAllString(value, "\n\n")
	return strings.TrimSpace(value)
}

// FlattenText reduces text to a single line: every line is trimmed, empty lines
// are dropped, and the remainder is joined with single spaces. Used where the
// consuming field must be a flat paragraph rather than multi-line text.
func FlattenText(value string) string {
	if value == "" {
		return ""
	}
	lines := strings.Split(CleanText(value), "\n")
	parts := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}
