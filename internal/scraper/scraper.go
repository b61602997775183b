package scraper

import (
	"fmt"
	"io"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/nycfree/calendar-sync/internal/logger"
)

const (
	// UserAgent identifies the client as a regular browser; the site serves
	// stripped-down markup to obvious bots.
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 14_0) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/118.0.0.0 Safari/537.36"

	DefaultTimeout   = 20 * time.Second
	DefaultCacheSize = 512
)

// Options configures a Scraper. Zero values fall back to package defaults.
type Options struct {
	Timeout      time.Duration
	RequestDelay time.Duration
	CacheSize    int
	Client       *http.Client // overrides Timeout when set; used by tests
	Metrics      *Metrics     // optional
}

// Scraper fetches event detail pages and extracts structured details from them.
// Results, including empty results from failed fetches, are memoized in a
// bounded LRU cache keyed by absolute URL so no page is fetched twice in a run.
type Scraper struct {
	baseURL string
	client  *http.Client
	cache   *lru.Cache[string, EventDetails]
	delay   time.Duration
	metrics *Metrics
}

// New creates a Scraper for the given site origin (scheme+host, no trailing slash).
func New(baseURL string, opts Options) (*Scraper, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.RequestDelay < 0 {
		opts.RequestDelay = 0
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}

	cache, err := lru.New[string, EventDetails](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating detail cache: %w", err)
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	return &Scraper{
		baseURL: baseURL,
		client:  client,
		cache:   cache,
		delay:   opts.RequestDelay,
		metrics: opts.Metrics,
	}, nil
}

// Details resolves urlPath, fetches the page, and extracts event details.
// An empty path returns the zero EventDetails without any network call.
// Fetch failures are logged and degrade to the zero EventDetails; they never
// abort the caller's batch.
func (s *Scraper) Details(urlPath string) EventDetails {
	fullURL := ResolveURL(urlPath, s.baseURL)
	if fullURL == "" {
		return EventDetails{}
	}

	if details, ok := s.cache.Get(fullURL); ok {
		s.metrics.IncCacheHit()
		return details
	}
	s.metrics.IncCacheMiss()

	details := s.fetch(fullURL)
	s.cache.Add(fullURL, details)
	return details
}

// Description is a convenience helper returning only the description text.
func (s *Scraper) Description(urlPath string) string {
	return s.Details(urlPath).Description
}

// CacheLen returns the number of cached detail results.
func (s *Scraper) CacheLen() int {
	return s.cache.Len()
}

// fetch performs one HTTP GET and extracts details from the response body.
// The inter-request delay applies on every outcome, success or failure.
func (s *Scraper) fetch(fullURL string) EventDetails {
	defer func() {
		if s.delay > 0 {
			time.Sleep(s.delay)
		}
	}()

	req, err := http.NewRequest(http.MethodGet, fullURL, nil)
	if err != nil {
		logger.Warn("Failed to build detail request", logger.Fields{"url": fullURL}, err)
		s.metrics.IncFetch("error")
		return EventDetails{}
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		logger.Warn("Failed to fetch description", logger.Fields{"url": fullURL}, err)
		s.metrics.IncFetch("error")
		return EventDetails{}
	}
	defer resp.Body.Close()
	s.metrics.ObserveFetchDuration(time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Warn("Unexpected status fetching description", logger.Fields{
			"url":    fullURL,
			"status": resp.StatusCode,
		}, nil)
		s.metrics.IncFetch("http_error")
		return EventDetails{}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("Failed to read detail response", logger.Fields{"url": fullURL}, err)
		s.metrics.IncFetch("error")
		return EventDetails{}
	}

	s.metrics.IncFetch("ok")
	return ExtractDetails(string(body), s.baseURL)
}
