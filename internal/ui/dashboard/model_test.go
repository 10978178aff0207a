package dashboard_test

import (
	"strings"
	"testing"
	"time"

	"github.com/sonic/sonic-task-hub/internal/api"
	"github.com/sonic/sonic-task-hub/internal/keys"
	"github.com/sonic/sonic-task-hub/internal/model"
	"github.com/sonic/sonic-task-hub/internal/ui/dashboard"
)

func loadedModel(t *testing.T, msg dashboard.LoadedMsg) dashboard.Model {
	t.Helper()
	m := dashboard.New(nil, 1, keys.DefaultKeyMap(), 80, 24)
	m, _ = m.Update(msg)
	return m
}

// The total comes from the server-reported element count, while the
// status badges are counted over the small recent page only. The two can
// disagree on busy accounts; the view says so instead of hiding it.
func TestStatusCountsCoverRecentPageOnly(t *testing.T) {
	recent := []model.Item{
		{ID: 1, Status: model.StatusPending},
		{ID: 2, Status: model.StatusPending},
		{ID: 3, Status: model.StatusCompleted},
		{ID: 4, Status: model.StatusSnoozed},
		{ID: 5, Status: model.StatusInProgress},
	}

	m := loadedModel(t, dashboard.LoadedMsg{
		Page: &api.ItemPage{
			Content:       recent,
			TotalElements: 120,
			TotalPages:    24,
		},
	})

	view := m.View()
	if !strings.Contains(view, "120 items total") {
		t.Errorf("view should report the server-side total, got:\n%s", view)
	}
	if !strings.Contains(view, "Pending 2") {
		t.Errorf("pending badge should count the recent page only, got:\n%s", view)
	}
	if !strings.Contains(view, "status counts cover the 5 most recent items") {
		t.Errorf("view should state the counter sample size, got:\n%s", view)
	}
}

func TestOverdueAndUpcomingSections(t *testing.T) {
	due := time.Now().Add(-48 * time.Hour)
	m := loadedModel(t, dashboard.LoadedMsg{
		Page: &api.ItemPage{},
		Overdue: []model.Item{
			{ID: 9, ItemNumber: 9, Title: "renew passport", Status: model.StatusPending, DueDate: &due},
		},
		Events: []model.Event{
			{ID: 3, Title: "dentist", EventDateTime: time.Now().Add(24 * time.Hour)},
		},
	})

	view := m.View()
	if !strings.Contains(view, "Overdue (1)") || !strings.Contains(view, "renew passport") {
		t.Errorf("overdue section missing, got:\n%s", view)
	}
	if !strings.Contains(view, "Upcoming Events (1)") || !strings.Contains(view, "dentist") {
		t.Errorf("upcoming events section missing, got:\n%s", view)
	}
}

func TestOverdueRowWithoutDueDateRenders(t *testing.T) {
	m := loadedModel(t, dashboard.LoadedMsg{
		Page: &api.ItemPage{},
		Overdue: []model.Item{
			{ID: 4, ItemNumber: 4, Title: "file expenses", Status: model.StatusPending},
		},
	})

	view := m.View()
	if !strings.Contains(view, "file expenses") {
		t.Errorf("overdue row without a due date should still render, got:\n%s", view)
	}
	if strings.Contains(view, "due ") {
		t.Errorf("no due label expected without a due date, got:\n%s", view)
	}
}

func TestLoadErrorShowsMessage(t *testing.T) {
	m := loadedModel(t, dashboard.LoadedMsg{
		Err: &api.APIError{Message: "connection refused"},
	})

	view := m.View()
	if !strings.Contains(view, "Could not load dashboard.") {
		t.Errorf("error state not rendered, got:\n%s", view)
	}
}
