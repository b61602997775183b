package listings

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Location is the address sub-object attached to a listing item.
type Location struct {
	AddressTitle   string
	AddressLine1   string
	AddressLine2   string
	AddressCountry string
}

// Parts returns the non-empty address components in display order.
func (l Location) Parts() []string {
	parts := make([]string, 0, 4)
	for _, p := range []string{l.AddressTitle, l.AddressLine1, l.AddressLine2, l.AddressCountry} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// Author is the listing author sub-object.
type Author struct {
	DisplayName string
	FirstName   string
	LastName    string
}

// Name returns the author's display name, falling back to a joined
// first+last name when no display name is present.
func (a Author) Name() string {
	if name := strings.TrimSpace(a.DisplayName); name != "" {
		return name
	}
	return strings.TrimSpace(strings.TrimSpace(a.FirstName) + " " + strings.TrimSpace(a.LastName))
}

// Item is one upstream listing with its optional fields made explicit.
// StartMS/EndMS are milliseconds since epoch; the Has* flags distinguish a
// missing timestamp from a zero one.
type Item struct {
	ID       string
	Title    string
	FullURL  string
	Excerpt  string
	StartMS  int64
	HasStart bool
	EndMS    int64
	HasEnd   bool
	Location Location
	Tags     []string
	Author   Author

	raw map[string]interface{}
}

// ParseItem adapts one loosely-typed API object into an Item. Timestamps are
// probed under structuredContent first, then at the top level, and accepted as
// either JSON numbers or numeric strings.
func ParseItem(raw map[string]interface{}) Item {
	item := Item{
		ID:      stringField(raw, "id"),
		Title:   strings.TrimSpace(stringField(raw, "title")),
		FullURL: stringField(raw, "fullUrl"),
		Excerpt: strings.TrimSpace(stringField(raw, "excerpt")),
		raw:     raw,
	}

	structured := mapField(raw, "structuredContent")
	if ms, ok := msField(structured, "startDate"); ok {
		item.StartMS, item.HasStart = ms, true
	} else if ms, ok := msField(raw, "startDate"); ok {
		item.StartMS, item.HasStart = ms, true
	}
	if ms, ok := msField(structured, "endDate"); ok {
		item.EndMS, item.HasEnd = ms, true
	} else if ms, ok := msField(raw, "endDate"); ok {
		item.EndMS, item.HasEnd = ms, true
	}

	if loc := mapField(raw, "location"); loc != nil {
		item.Location = Location{
			AddressTitle:   stringField(loc, "addressTitle"),
			AddressLine1:   stringField(loc, "addressLine1"),
			AddressLine2:   stringField(loc, "addressLine2"),
			AddressCountry: stringField(loc, "addressCountry"),
		}
	}

	if tags, ok := raw["tags"].([]interface{}); ok {
		for _, t := range tags {
			if s, ok := t.(string); ok && strings.TrimSpace(s) != "" {
				item.Tags = append(item.Tags, strings.TrimSpace(s))
			}
		}
	}

	if author := mapField(raw, "author"); author != nil {
		item.Author = Author{
			DisplayName: stringField(author, "displayName"),
			FirstName:   stringField(author, "firstName"),
			LastName:    stringField(author, "lastName"),
		}
	}

	return item
}

// DedupKey returns the item's identifier when present, otherwise a canonical
// serialization of the raw object. encoding/json writes map keys in sorted
// order, so structurally identical items produce identical keys.
func (i Item) DedupKey() string {
	if i.ID != "" {
		return i.ID
	}
	data, err := json.Marshal(i.raw)
	if err != nil {
		// Unmarshalable raw maps cannot occur for objects decoded from JSON;
		// fall back to the title so the item is still kept.
		return "title:" + i.Title
	}
	return string(data)
}

func stringField(m map[string]interface{}, key string) string {
	if m == nil {
		return ""
	}
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

func mapField(m map[string]interface{}, key string) map[string]interface{} {
	if m == nil {
		return nil
	}
	if sub, ok := m[key].(map[string]interface{}); ok {
		return sub
	}
	return nil
}

// msField reads a millisecond timestamp that may arrive as a JSON number or a
// numeric string. Zero and negative values are treated as absent.
func msField(m map[string]interface{}, key string) (int64, bool) {
	if m == nil {
		return 0, false
	}
	switch v := m[key].(type) {
	case float64:
		if v > 0 {
			return int64(v), true
		}
	case string:
		if ms, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil && ms > 0 {
			return ms, true
		}
	}
	return 0, false
}
