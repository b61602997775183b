package listings

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/nycfree/calendar-sync/internal/logger"
)

const (
	// APIPath is the month-listings endpoint relative to the site origin.
	APIPath = "/api/open/GetItemsByMonth"

	DefaultTimeout = 20 * time.Second
)

// candidateListKeys are the wrapper-object keys the list has been observed
// under; the API has renamed it across site revisions.
var candidateListKeys = []string{"items", "upcoming", "past", "events"}

// Client fetches listing items from the NYC for Free public API.
type Client struct {
	baseURL      string
	collectionID string
	crumb        string
	client       *http.Client
}

// ClientOptions configures a Client. Zero values fall back to package defaults.
type ClientOptions struct {
	Crumb   string
	Timeout time.Duration
	Client  *http.Client // overrides Timeout when set; used by tests
}

// NewClient creates a listings client for the given site origin and collection.
func NewClient(baseURL, collectionID string, opts ClientOptions) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("base URL cannot be empty")
	}
	if collectionID == "" {
		return nil, fmt.Errorf("collection ID cannot be empty")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	httpClient := opts.Client
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		baseURL:      baseURL,
		collectionID: collectionID,
		crumb:        opts.Crumb,
		client:       httpClient,
	}, nil
}

// ItemsByMonth fetches the listing items for one calendar month.
func (c *Client) ItemsByMonth(year int, month time.Month) ([]Item, error) {
	params := url.Values{}
	params.Set("month", fmt.Sprintf("%02d-%d", int(month), year))
	params.Set("collectionId", c.collectionID)
	if c.crumb != "" {
		params.Set("crumb", c.crumb)
	}

	endpoint := c.baseURL + APIPath + "?" + params.Encode()
	resp, err := c.client.Get(endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetching month listings: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading month listings: %w", err)
	}

	rawItems, err := decodeItems(body)
	if err != nil {
		return nil, fmt.Errorf("decoding month listings: %w", err)
	}

	items := make([]Item, 0, len(rawItems))
	for _, raw := range rawItems {
		items = append(items, ParseItem(raw))
	}
	return items, nil
}

// FetchWindow fetches and deduplicates items from the month containing start
// through monthsAhead additional months. A failed month window is logged and
// contributes zero items; it never fails the whole window.
func (c *Client) FetchWindow(start time.Time, monthsAhead int) []Item {
	all := make([]Item, 0)

	year, month := start.Year(), int(start.Month())
	for i := 0; i <= monthsAhead; i++ {
		y, m := year, month+i
		for m > 12 {
			m -= 12
			y++
		}

		items, err := c.ItemsByMonth(y, time.Month(m))
		if err != nil {
			logger.Warn("Failed to fetch month window", logger.Fields{
				"month": fmt.Sprintf("%02d-%d", m, y),
			}, err)
			continue
		}
		logger.Info("Fetched month window", logger.Fields{
			"month": fmt.Sprintf("%02d-%d", m, y),
			"items": len(items),
		})
		all = append(all, items...)
	}

	return Dedup(all)
}

// decodeItems accepts either a raw JSON array of items or a wrapper object
// whose list lives under one of several candidate keys.
func decodeItems(body []byte) ([]map[string]interface{}, error) {
	var direct []map[string]interface{}
	if err := json.Unmarshal(body, &direct); err == nil {
		return direct, nil
	}

	var wrapper map[string]interface{}
	if err := json.Unmarshal(body, &wrapper); err != nil {
		return nil, fmt.Errorf("response is neither a list nor an object: %w", err)
	}

	for _, key := range candidateListKeys {
		list, ok := wrapper[key].([]interface{})
		if !ok {
			continue
		}
		items := make([]map[string]interface{}, 0, len(list))
		for _, entry := range list {
			if m, ok := entry.(map[string]interface{}); ok {
				items = append(items, m)
			}
		}
		return items, nil
	}

	return nil, fmt.Errorf("no item list found under keys %v", candidateListKeys)
}
