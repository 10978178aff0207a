package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/sonic/sonic-task-hub/internal/api"
	"github.com/sonic/sonic-task-hub/internal/model"
)

func sampleItems() []model.Item {
	parent := int64(1)
	items := make([]model.Item, 0, 10)
	for i := 1; i <= 10; i++ {
		item := model.Item{
			ID:        int64(i),
			Title:     "item",
			Status:    model.StatusPending,
			CreatedAt: time.Date(2025, 1, i, 10, 0, 0, 0, time.UTC),
		}
		items = append(items, item)
	}
	items[0].Status = model.StatusCompleted
	items[1].Status = model.StatusCompleted
	items[2].Status = model.StatusCompleted
	items[3].Status = model.StatusSnoozed
	items[4].Status = model.StatusSnoozed
	items[5].ParentItemID = &parent
	return items
}

func TestDeriveDropsCompletedAndSnoozed(t *testing.T) {
	items := sampleItems()
	got := Derive(items, Toggles{
		IncludeCompleted: false,
		IncludeSnoozed:   false,
		IncludeSubtasks:  true,
	}, DateRange{})

	if len(got) != 5 {
		t.Fatalf("derived %d items, want 5", len(got))
	}

	// Relative order must be preserved.
	var lastID int64
	for _, item := range got {
		if item.ID <= lastID {
			t.Errorf("order not preserved: %d after %d", item.ID, lastID)
		}
		lastID = item.ID
		if item.Status == model.StatusCompleted || item.Status == model.StatusSnoozed {
			t.Errorf("item %d with status %s survived", item.ID, item.Status)
		}
	}
}

func TestDeriveDropsSubtasks(t *testing.T) {
	items := sampleItems()
	got := Derive(items, Toggles{
		IncludeCompleted: true,
		IncludeSnoozed:   true,
		IncludeSubtasks:  false,
	}, DateRange{})

	if len(got) != 9 {
		t.Fatalf("derived %d items, want 9", len(got))
	}
	for _, item := range got {
		if item.IsSubtask() {
			t.Errorf("subtask %d survived", item.ID)
		}
	}
}

func TestDeriveCustomRangeInclusive(t *testing.T) {
	items := sampleItems()
	start := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 7, 10, 0, 0, 0, time.UTC)

	got := Derive(items, Toggles{
		IncludeCompleted: true,
		IncludeSnoozed:   true,
		IncludeSubtasks:  true,
	}, DateRange{Custom: true, Start: &start, End: &end})

	if len(got) != 5 {
		t.Fatalf("derived %d items, want 5 (days 3..7)", len(got))
	}
	// End bound is inclusive: the item created exactly at end must survive.
	if got[len(got)-1].ID != 7 {
		t.Errorf("last item = %d, want 7", got[len(got)-1].ID)
	}
}

func TestDeriveCustomRangeSkippedWhenBoundMissing(t *testing.T) {
	items := sampleItems()
	start := time.Date(2025, 1, 3, 0, 0, 0, 0, time.UTC)

	got := Derive(items, Toggles{
		IncludeCompleted: true,
		IncludeSnoozed:   true,
		IncludeSubtasks:  true,
	}, DateRange{Custom: true, Start: &start})

	if len(got) != len(items) {
		t.Errorf("derived %d items, want all %d when end bound missing", len(got), len(items))
	}
}

func TestWriteCSVQuotesAndRoundTrips(t *testing.T) {
	desc := `line with, comma`
	items := []model.Item{{
		ID:          1,
		Title:       `He said "hi"`,
		Description: &desc,
		Type:        model.ItemTypeTask,
		Priority:    model.PriorityHigh,
		Complexity:  model.ComplexityEasy,
		Status:      model.StatusPending,
		CreatedAt:   time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
	}}

	var buf bytes.Buffer
	if err := WriteCSV(&buf, items); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, `"He said ""hi"""`) {
		t.Errorf("embedded quotes not doubled:\n%s", out)
	}

	// A conforming CSV parser must recover the original strings.
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("parsing emitted csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("parsed %d records, want 2", len(records))
	}
	row := records[1]
	if row[2] != `He said "hi"` {
		t.Errorf("title round trip = %q", row[2])
	}
	if row[3] != desc {
		t.Errorf("description round trip = %q", row[3])
	}
}

func TestWriteJSONWrapsDocument(t *testing.T) {
	items := sampleItems()[:3]
	status := model.StatusPending
	filters := api.ItemFilters{Status: &status, Page: 0, Size: 10000}
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, items, filters, now); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var doc struct {
		ExportDate string          `json:"exportDate"`
		TotalItems int             `json:"totalItems"`
		Filters    json.RawMessage `json:"filters"`
		Items      []model.Item    `json:"items"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("parsing export json: %v", err)
	}

	if doc.ExportDate != "2025-03-10T12:00:00Z" {
		t.Errorf("exportDate = %q", doc.ExportDate)
	}
	if doc.TotalItems != 3 || len(doc.Items) != 3 {
		t.Errorf("totalItems = %d, items = %d", doc.TotalItems, len(doc.Items))
	}
	if !strings.Contains(string(doc.Filters), `"status":"PENDING"`) {
		t.Errorf("filters should echo the server-side query: %s", doc.Filters)
	}
}
