package listings

import (
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
)

const testBaseURL = "https://www.nycforfree.co"

func newTestClient(t *testing.T, transport *httpmock.MockTransport, crumb string) *Client {
	t.Helper()
	c, err := NewClient(testBaseURL, "col-1", ClientOptions{
		Crumb:  crumb,
		Client: &http.Client{Transport: transport},
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c
}

func TestItemsByMonthRawListBody(t *testing.T) {
	transport := httpmock.NewMockTransport()
	var gotQuery url.Values
	transport.RegisterResponder("GET", testBaseURL+APIPath,
		func(req *http.Request) (*http.Response, error) {
			gotQuery = req.URL.Query()
			return httpmock.NewStringResponse(200,
				`[{"id":"a","title":"One","startDate":1700000000000},
				  {"id":"b","title":"Two","startDate":1700003600000}]`), nil
		})

	c := newTestClient(t, transport, "crumb-xyz")
	items, err := c.ItemsByMonth(2026, time.March)
	if err != nil {
		t.Fatalf("ItemsByMonth failed: %v", err)
	}

	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != "a" || !items[0].HasStart {
		t.Errorf("first item not adapted: %+v", items[0])
	}

	if got := gotQuery.Get("month"); got != "03-2026" {
		t.Errorf("month param = %q, expected 03-2026", got)
	}
	if got := gotQuery.Get("collectionId"); got != "col-1" {
		t.Errorf("collectionId param = %q", got)
	}
	if got := gotQuery.Get("crumb"); got != "crumb-xyz" {
		t.Errorf("crumb param = %q", got)
	}
}

func TestItemsByMonthWrappedBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"items key", `{"items":[{"id":"a"}]}`, 1},
		{"upcoming key", `{"upcoming":[{"id":"a"},{"id":"b"}]}`, 2},
		{"events key", `{"events":[{"id":"a"}]}`, 1},
		{"empty list", `{"items":[]}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := httpmock.NewMockTransport()
			transport.RegisterResponder("GET", testBaseURL+APIPath,
				httpmock.NewStringResponder(200, tt.body))

			c := newTestClient(t, transport, "")
			items, err := c.ItemsByMonth(2026, time.January)
			if err != nil {
				t.Fatalf("ItemsByMonth failed: %v", err)
			}
			if len(items) != tt.want {
				t.Errorf("expected %d items, got %d", tt.want, len(items))
			}
		})
	}
}

func TestItemsByMonthShapeFailure(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"object without list", `{"status":"ok"}`},
		{"scalar body", `42`},
		{"invalid json", `{nope`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			transport := httpmock.NewMockTransport()
			transport.RegisterResponder("GET", testBaseURL+APIPath,
				httpmock.NewStringResponder(200, tt.body))

			c := newTestClient(t, transport, "")
			if _, err := c.ItemsByMonth(2026, time.January); err == nil {
				t.Error("expected shape error")
			}
		})
	}
}

func TestItemsByMonthHTTPError(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("GET", testBaseURL+APIPath,
		httpmock.NewStringResponder(500, "boom"))

	c := newTestClient(t, transport, "")
	if _, err := c.ItemsByMonth(2026, time.January); err == nil {
		t.Error("expected error for non-200 status")
	}
}

func TestFetchWindowYearRolloverAndTolerance(t *testing.T) {
	transport := httpmock.NewMockTransport()
	months := make([]string, 0)
	transport.RegisterResponder("GET", testBaseURL+APIPath,
		func(req *http.Request) (*http.Response, error) {
			month := req.URL.Query().Get("month")
			months = append(months, month)
			if month == "12-2026" {
				// One bad window must not sink the rest.
				return httpmock.NewStringResponse(500, "boom"), nil
			}
			return httpmock.NewStringResponse(200,
				`[{"id":"`+month+`","startDate":1700000000000}]`), nil
		})

	c := newTestClient(t, transport, "")
	start := time.Date(2026, time.November, 15, 0, 0, 0, 0, time.UTC)
	items := c.FetchWindow(start, 3)

	expectedMonths := []string{"11-2026", "12-2026", "01-2027", "02-2027"}
	if len(months) != len(expectedMonths) {
		t.Fatalf("fetched months %v, expected %v", months, expectedMonths)
	}
	for i := range expectedMonths {
		if months[i] != expectedMonths[i] {
			t.Fatalf("fetched months %v, expected %v", months, expectedMonths)
		}
	}

	// Three good windows, one item each; the failed December window yields zero.
	if len(items) != 3 {
		t.Errorf("expected 3 items, got %d", len(items))
	}
}

func TestFetchWindowDeduplicatesAcrossWindows(t *testing.T) {
	transport := httpmock.NewMockTransport()
	transport.RegisterResponder("GET", testBaseURL+APIPath,
		httpmock.NewStringResponder(200,
			`[{"id":"spanning","title":"Spans the boundary","startDate":1700000000000}]`))

	c := newTestClient(t, transport, "")
	start := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	items := c.FetchWindow(start, 2)

	if len(items) != 1 {
		t.Errorf("expected item appearing in all 3 windows to collapse to 1, got %d", len(items))
	}
}

func TestNewClientValidatesArguments(t *testing.T) {
	if _, err := NewClient("", "col", ClientOptions{}); err == nil {
		t.Error("expected error for empty base URL")
	}
	if _, err := NewClient(testBaseURL, "", ClientOptions{}); err == nil {
		t.Error("expected error for empty collection ID")
	}
}
