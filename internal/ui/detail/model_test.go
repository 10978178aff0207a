package detail_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sonic/sonic-task-hub/internal/keys"
	"github.com/sonic/sonic-task-hub/internal/model"
	"github.com/sonic/sonic-task-hub/internal/ui/detail"
)

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func fltPtr(f float64) *float64 { return &f }

func habitItem() *model.Item {
	return &model.Item{
		ID:         12,
		ItemNumber: 12,
		Title:      "morning run",
		Type:       model.ItemTypeHabit,
		Status:     model.StatusPending,
		Priority:   model.PriorityMedium,
		Complexity: model.ComplexityEasy,
	}
}

func loadedView(t *testing.T, msg detail.LoadedMsg) string {
	t.Helper()
	m := detail.New(keys.DefaultKeyMap(), 80, 60)
	m, _ = m.Update(msg)
	return m.View()
}

func TestHabitDetailRendersProgressHistory(t *testing.T) {
	history := make([]model.Progress, 7)
	for i := range history {
		history[i] = model.Progress{
			ID:          int64(i + 1),
			ItemID:      12,
			SessionDate: fmt.Sprintf("2026-08-%02d", 20-i),
			Duration:    intPtr(30),
		}
	}
	history[0].ProgressValue = fltPtr(2.5)
	history[0].ProgressUnit = strPtr("km")
	history[1].Notes = strPtr("felt great")

	view := loadedView(t, detail.LoadedMsg{
		Item:    habitItem(),
		History: history,
	})

	if !strings.Contains(view, "Recent Sessions") {
		t.Fatalf("history section missing, got:\n%s", view)
	}
	for i := 0; i < 5; i++ {
		if !strings.Contains(view, history[i].SessionDate) {
			t.Errorf("session %s should be listed, got:\n%s",
				history[i].SessionDate, view)
		}
	}
	if strings.Contains(view, history[5].SessionDate) {
		t.Errorf("only the five newest sessions should be listed, got:\n%s", view)
	}
	if !strings.Contains(view, "...") {
		t.Errorf("truncated history should end with an ellipsis, got:\n%s", view)
	}
	if !strings.Contains(view, "30 min") {
		t.Errorf("session duration missing, got:\n%s", view)
	}
	if !strings.Contains(view, "2.5 km") {
		t.Errorf("session value and unit missing, got:\n%s", view)
	}
	if !strings.Contains(view, "felt great") {
		t.Errorf("session notes missing, got:\n%s", view)
	}
}

func TestHabitDetailWithoutHistory(t *testing.T) {
	view := loadedView(t, detail.LoadedMsg{Item: habitItem()})

	if strings.Contains(view, "Recent Sessions") {
		t.Errorf("no history section expected without sessions, got:\n%s", view)
	}
	if !strings.Contains(view, "p to log progress") {
		t.Errorf("progress hint should always show for habits, got:\n%s", view)
	}
}

func TestTaskDetailHasNoHabitSection(t *testing.T) {
	item := habitItem()
	item.Type = model.ItemTypeTask

	view := loadedView(t, detail.LoadedMsg{
		Item: item,
		History: []model.Progress{
			{ID: 1, ItemID: 12, SessionDate: "2026-08-20"},
		},
	})

	if strings.Contains(view, "Recent Sessions") || strings.Contains(view, "Habit") {
		t.Errorf("habit section should not render for tasks, got:\n%s", view)
	}
}
