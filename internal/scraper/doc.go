// Package scraper fetches and parses NYC for Free event detail pages.
//
// The scraper resolves a relative detail-page path against the site origin, fetches
// the page over HTTP, and extracts a description, an external "official link" button,
// and a poster image from the Squarespace markup. Results are memoized in a bounded
// LRU cache keyed by absolute URL so a page is fetched at most once per run, and a
// fixed delay is applied after every fetch to stay within the site's rate tolerance.
//
// Extraction degrades gracefully: pages missing the expected markup yield empty
// fields, and fetch failures are logged and cached as empty results rather than
// surfaced to the caller.
package scraper
