// Package export derives an export set from an over-fetched item
// collection and serializes it to CSV or JSON.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sonic/sonic-task-hub/internal/api"
	"github.com/sonic/sonic-task-hub/internal/model"
)

// Format selects the serialization produced by Write.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Toggles are the independently skippable client-side filters applied on
// top of the server-side query.
type Toggles struct {
	IncludeCompleted bool
	IncludeSnoozed   bool
	IncludeSubtasks  bool
}

// DateRange restricts the export by creation date. Only the custom mode
// filters client-side, and only when both bounds are present; the preset
// modes are resolved by the server-side query.
type DateRange struct {
	Custom bool
	Start  *time.Time
	End    *time.Time
}

// Derive applies the toggles and date range to the fetched collection.
// Each filter is a pure intersection, so relative order of the surviving
// items is preserved.
func Derive(items []model.Item, toggles Toggles, dateRange DateRange) []model.Item {
	result := make([]model.Item, 0, len(items))
	for _, item := range items {
		if !toggles.IncludeCompleted && item.Status == model.StatusCompleted {
			continue
		}
		if !toggles.IncludeSnoozed && item.Status == model.StatusSnoozed {
			continue
		}
		if !toggles.IncludeSubtasks && item.IsSubtask() {
			continue
		}
		if dateRange.Custom && dateRange.Start != nil && dateRange.End != nil {
			if item.CreatedAt.Before(*dateRange.Start) || item.CreatedAt.After(*dateRange.End) {
				continue
			}
		}
		result = append(result, item)
	}
	return result
}

// csvHeaders are the exported columns, matching the backend's item fields.
var csvHeaders = []string{
	"ID", "Number", "Title", "Description", "Type", "Priority", "Complexity",
	"Status", "Due Date", "Completed At", "Category", "Parent Item",
	"Subtask Count", "Estimated Duration", "Actual Duration",
	"Created At", "Updated At",
}

// WriteCSV serializes the items as CSV. Every string field is quoted, with
// embedded quotes doubled, so titles containing commas or quotes survive a
// round trip through any conforming parser.
func WriteCSV(w io.Writer, items []model.Item) error {
	if _, err := fmt.Fprintln(w, strings.Join(csvHeaders, ",")); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, item := range items {
		fields := []string{
			fmt.Sprintf("%d", item.ID),
			fmt.Sprintf("%d", item.ItemNumber),
			quote(item.Title),
			quote(deref(item.Description)),
			quote(string(item.Type)),
			quote(string(item.Priority)),
			quote(string(item.Complexity)),
			quote(string(item.Status)),
			quote(formatDate(item.DueDate)),
			quote(formatDate(item.CompletedAt)),
			quote(deref(item.CategoryName)),
			quote(deref(item.ParentItemTitle)),
			fmt.Sprintf("%d", item.SubtaskCount),
			formatOptionalInt(item.EstimatedDuration),
			formatOptionalInt(item.ActualDuration),
			quote(item.CreatedAt.Format("2006-01-02")),
			quote(item.UpdatedAt.Format("2006-01-02")),
		}
		if _, err := fmt.Fprintln(w, strings.Join(fields, ",")); err != nil {
			return fmt.Errorf("writing csv row for item %d: %w", item.ID, err)
		}
	}

	return nil
}

// jsonDocument is the JSON export wrapper. Filters echo the server-side
// query the collection was fetched with, not the client-side toggles.
type jsonDocument struct {
	ExportDate string          `json:"exportDate"`
	TotalItems int             `json:"totalItems"`
	Filters    api.ItemFilters `json:"filters"`
	Items      []model.Item    `json:"items"`
}

// WriteJSON serializes the derived items with export metadata.
func WriteJSON(w io.Writer, items []model.Item, filters api.ItemFilters, now time.Time) error {
	doc := jsonDocument{
		ExportDate: now.UTC().Format(time.RFC3339),
		TotalItems: len(items),
		Filters:    filters,
		Items:      items,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding json export: %w", err)
	}
	return nil
}

// Filename returns the default export file name for the format.
func Filename(format Format) string {
	return "sonic-task-hub-export." + string(format)
}

// quote wraps s in double quotes, doubling any embedded quote characters.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatOptionalInt(n *int) string {
	if n == nil {
		return ""
	}
	return fmt.Sprintf("%d", *n)
}
