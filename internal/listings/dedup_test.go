package listings

import "testing"

func TestDedupByID(t *testing.T) {
	first := ParseItem(mustDecode(t, `{"id":"abc123","title":"First Seen","startDate":1}`))
	second := ParseItem(mustDecode(t, `{"id":"abc123","title":"Different Title","startDate":2}`))

	unique := Dedup([]Item{first, second})

	if len(unique) != 1 {
		t.Fatalf("expected 1 unique item, got %d", len(unique))
	}
	if unique[0].Title != "First Seen" {
		t.Errorf("expected first-seen instance retained, got %q", unique[0].Title)
	}
}

func TestDedupStructuralFallback(t *testing.T) {
	a := ParseItem(mustDecode(t, `{"title":"Same","startDate":1700000000000}`))
	b := ParseItem(mustDecode(t, `{"title":"Same","startDate":1700000000000}`))

	unique := Dedup([]Item{a, b})
	if len(unique) != 1 {
		t.Fatalf("expected structurally identical id-less items to collapse, got %d", len(unique))
	}
}

func TestDedupStructuralDifferenceKeepsBoth(t *testing.T) {
	a := ParseItem(mustDecode(t, `{"title":"Same","startDate":1700000000000}`))
	b := ParseItem(mustDecode(t, `{"title":"Same","startDate":1700090000000}`))

	unique := Dedup([]Item{a, b})
	if len(unique) != 2 {
		t.Fatalf("expected items differing in any field to both survive, got %d", len(unique))
	}
}

func TestDedupPreservesOrder(t *testing.T) {
	items := []Item{
		ParseItem(mustDecode(t, `{"id":"c","title":"C"}`)),
		ParseItem(mustDecode(t, `{"id":"a","title":"A"}`)),
		ParseItem(mustDecode(t, `{"id":"c","title":"C again"}`)),
		ParseItem(mustDecode(t, `{"id":"b","title":"B"}`)),
	}

	unique := Dedup(items)

	ids := make([]string, len(unique))
	for i, item := range unique {
		ids[i] = item.ID
	}
	expected := []string{"c", "a", "b"}
	for i := range expected {
		if ids[i] != expected[i] {
			t.Fatalf("order = %v, expected %v", ids, expected)
		}
	}
}

func TestDedupEmpty(t *testing.T) {
	if got := Dedup(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}
