package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/sonic/sonic-task-hub/internal/api"
	"github.com/sonic/sonic-task-hub/internal/model"
	"github.com/sonic/sonic-task-hub/tests/testutil"
)

const testUserID int64 = 7

func cachedItem(id int64, title string) model.Item {
	return model.Item{
		ID:         id,
		ItemNumber: id,
		Title:      title,
		Type:       model.ItemTypeTask,
		Priority:   model.PriorityMedium,
		Complexity: model.ComplexityMedium,
		Status:     model.StatusPending,
		CreatedAt:  time.Date(2025, 1, int(id), 10, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2025, 2, int(id), 10, 0, 0, 0, time.UTC),
	}
}

func TestUpsertAndGetCachedItem(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	desc := "write the report"
	item := cachedItem(1, "Report")
	item.Description = &desc

	if err := s.UpsertItems(ctx, testUserID, []model.Item{item}); err != nil {
		t.Fatalf("UpsertItems: %v", err)
	}

	got, err := s.CachedItem(ctx, testUserID, 1)
	if err != nil {
		t.Fatalf("CachedItem: %v", err)
	}
	if got == nil {
		t.Fatal("cached item not found")
	}
	if got.Title != "Report" {
		t.Errorf("title = %q", got.Title)
	}
	if got.Description == nil || *got.Description != desc {
		t.Errorf("description not preserved: %v", got.Description)
	}

	// Another user must not see the row.
	other, err := s.CachedItem(ctx, testUserID+1, 1)
	if err != nil {
		t.Fatalf("CachedItem other user: %v", err)
	}
	if other != nil {
		t.Error("item leaked across users")
	}
}

func TestUpsertReplacesExistingRow(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	item := cachedItem(1, "Before")
	if err := s.UpsertItems(ctx, testUserID, []model.Item{item}); err != nil {
		t.Fatalf("UpsertItems: %v", err)
	}

	item.Title = "After"
	item.Status = model.StatusCompleted
	if err := s.UpsertItems(ctx, testUserID, []model.Item{item}); err != nil {
		t.Fatalf("UpsertItems again: %v", err)
	}

	got, err := s.CachedItem(ctx, testUserID, 1)
	if err != nil {
		t.Fatalf("CachedItem: %v", err)
	}
	if got.Title != "After" || got.Status != model.StatusCompleted {
		t.Errorf("row not replaced: %+v", got)
	}

	items, err := s.CachedItems(ctx, testUserID, api.ItemFilters{})
	if err != nil {
		t.Fatalf("CachedItems: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("row count = %d, want 1", len(items))
	}
}

func TestCachedItemsFilters(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	a := cachedItem(1, "Water the plants")
	a.Type = model.ItemTypeHabit
	b := cachedItem(2, "File taxes")
	b.Status = model.StatusCompleted
	c := cachedItem(3, "Call the dentist")
	c.Priority = model.PriorityHigh

	if err := s.UpsertItems(ctx, testUserID, []model.Item{a, b, c}); err != nil {
		t.Fatalf("UpsertItems: %v", err)
	}

	habit := model.ItemTypeHabit
	items, err := s.CachedItems(ctx, testUserID, api.ItemFilters{Type: &habit})
	if err != nil {
		t.Fatalf("CachedItems by type: %v", err)
	}
	if len(items) != 1 || items[0].ID != 1 {
		t.Errorf("type filter returned %v", items)
	}

	completed := model.StatusCompleted
	items, err = s.CachedItems(ctx, testUserID, api.ItemFilters{Status: &completed})
	if err != nil {
		t.Fatalf("CachedItems by status: %v", err)
	}
	if len(items) != 1 || items[0].ID != 2 {
		t.Errorf("status filter returned %v", items)
	}

	high := model.PriorityHigh
	items, err = s.CachedItems(ctx, testUserID, api.ItemFilters{Priority: &high})
	if err != nil {
		t.Fatalf("CachedItems by priority: %v", err)
	}
	if len(items) != 1 || items[0].ID != 3 {
		t.Errorf("priority filter returned %v", items)
	}

	items, err = s.CachedItems(ctx, testUserID, api.ItemFilters{Search: "the"})
	if err != nil {
		t.Fatalf("CachedItems by search: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("search filter returned %d items, want 2", len(items))
	}
}

func TestCachedItemsSortAndPaging(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	var batch []model.Item
	for i := int64(1); i <= 5; i++ {
		batch = append(batch, cachedItem(i, "item"))
	}
	if err := s.UpsertItems(ctx, testUserID, batch); err != nil {
		t.Fatalf("UpsertItems: %v", err)
	}

	items, err := s.CachedItems(ctx, testUserID, api.ItemFilters{
		SortBy:        "itemNumber",
		SortDirection: "asc",
		Page:          1,
		Size:          2,
	})
	if err != nil {
		t.Fatalf("CachedItems paged: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("page size = %d, want 2", len(items))
	}
	if items[0].ID != 3 || items[1].ID != 4 {
		t.Errorf("page 1 = [%d %d], want [3 4]", items[0].ID, items[1].ID)
	}

	// Unknown sort keys fall back to the default ordering rather than
	// reaching the query.
	items, err = s.CachedItems(ctx, testUserID, api.ItemFilters{
		SortBy: "payload; DROP TABLE cached_items",
	})
	if err != nil {
		t.Fatalf("CachedItems with bad sort key: %v", err)
	}
	if len(items) != 5 {
		t.Errorf("bad sort key returned %d items", len(items))
	}
}

func TestDeleteItemsAndLastFetched(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	before, err := s.LastFetched(ctx, testUserID)
	if err != nil {
		t.Fatalf("LastFetched empty: %v", err)
	}
	if !before.IsZero() {
		t.Errorf("empty cache fetch time = %v, want zero", before)
	}

	batch := []model.Item{cachedItem(1, "a"), cachedItem(2, "b"), cachedItem(3, "c")}
	if err := s.UpsertItems(ctx, testUserID, batch); err != nil {
		t.Fatalf("UpsertItems: %v", err)
	}

	fetched, err := s.LastFetched(ctx, testUserID)
	if err != nil {
		t.Fatalf("LastFetched: %v", err)
	}
	if fetched.IsZero() {
		t.Error("fetch time still zero after upsert")
	}

	if err := s.DeleteItems(ctx, testUserID, []int64{1, 3}); err != nil {
		t.Fatalf("DeleteItems: %v", err)
	}

	items, err := s.CachedItems(ctx, testUserID, api.ItemFilters{})
	if err != nil {
		t.Fatalf("CachedItems: %v", err)
	}
	if len(items) != 1 || items[0].ID != 2 {
		t.Errorf("remaining items = %v", items)
	}
}
