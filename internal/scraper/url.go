package scraper

import "strings"

// ResolveURL resolves a possibly-relative reference against a base origin
// (scheme+host, no trailing slash). Empty input yields an empty string and
// already-absolute references pass through unchanged. Relative references are
// joined against the site root, so "/events/x" and "events/x" resolve alike.
func ResolveURL(ref, base string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(ref, "/")
}
