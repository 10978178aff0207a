package api

import (
	"testing"

	"github.com/sonic/sonic-task-hub/internal/model"
)

func TestItemFiltersValuesOmitsUnsetFields(t *testing.T) {
	f := ItemFilters{Page: 0}
	v := f.Values()

	if got := v.Get("page"); got != "0" {
		t.Errorf("page = %q, want \"0\"", got)
	}
	for _, key := range []string{"type", "status", "priority", "categoryId", "search", "size", "sortBy", "sortDirection"} {
		if _, ok := v[key]; ok {
			t.Errorf("unset field %q included in query", key)
		}
	}
}

func TestItemFiltersValuesIncludesSetFieldsOnce(t *testing.T) {
	typ := model.ItemTypeHabit
	status := model.StatusPending
	pri := model.PriorityHigh
	catID := int64(7)

	f := ItemFilters{
		Type:          &typ,
		Status:        &status,
		Priority:      &pri,
		CategoryID:    &catID,
		Search:        "water",
		Page:          2,
		Size:          20,
		SortBy:        "dueDate",
		SortDirection: "asc",
	}
	v := f.Values()

	want := map[string]string{
		"type":          "HABIT",
		"status":        "PENDING",
		"priority":      "HIGH",
		"categoryId":    "7",
		"search":        "water",
		"page":          "2",
		"size":          "20",
		"sortBy":        "dueDate",
		"sortDirection": "asc",
	}
	for key, wantVal := range want {
		vals, ok := v[key]
		if !ok {
			t.Errorf("missing key %q", key)
			continue
		}
		if len(vals) != 1 {
			t.Errorf("key %q included %d times", key, len(vals))
		}
		if vals[0] != wantVal {
			t.Errorf("key %q = %q, want %q", key, vals[0], wantVal)
		}
	}
	if len(v) != len(want) {
		t.Errorf("query has %d keys, want %d: %v", len(v), len(want), v)
	}
}

func TestItemFiltersValuesDeterministicEncoding(t *testing.T) {
	typ := model.ItemTypeTask
	f := ItemFilters{Type: &typ, Search: "a b", Page: 1, Size: 5}

	first := f.Values().Encode()
	for i := 0; i < 10; i++ {
		if got := f.Values().Encode(); got != first {
			t.Fatalf("encoding not stable: %q vs %q", got, first)
		}
	}
}

func TestEventFiltersValuesOmitsEmpty(t *testing.T) {
	f := EventFilters{Page: 0, Size: 10}
	v := f.Values()

	if _, ok := v["search"]; ok {
		t.Error("empty search included")
	}
	if _, ok := v["upcoming"]; ok {
		t.Error("false upcoming included")
	}
	if got := v.Get("size"); got != "10" {
		t.Errorf("size = %q", got)
	}
}
