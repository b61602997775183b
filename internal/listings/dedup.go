package listings

// Dedup merges items fetched across multiple month windows into a unique list,
// preserving first-seen order. Windows overlap when an event's date range spans
// a month boundary, so the same item can arrive more than once. Items keep
// their identifier as the key; items without one fall back to a structural key,
// so two identical id-less items collapse while any field difference keeps both.
func Dedup(items []Item) []Item {
	seen := make(map[string]bool, len(items))
	unique := make([]Item, 0, len(items))
	for _, item := range items {
		key := item.DedupKey()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, item)
	}
	return unique
}
