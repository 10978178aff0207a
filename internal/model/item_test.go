package model_test

import (
	"testing"
	"time"

	"github.com/sonic/sonic-task-hub/internal/model"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestItemIsOverdue(t *testing.T) {
	past := timePtr(time.Now().Add(-24 * time.Hour))
	future := timePtr(time.Now().Add(24 * time.Hour))

	cases := []struct {
		name string
		item model.Item
		want bool
	}{
		{"no due date", model.Item{Status: model.StatusPending}, false},
		{"future due date", model.Item{Status: model.StatusPending, DueDate: future}, false},
		{"past due pending", model.Item{Status: model.StatusPending, DueDate: past}, true},
		{"past due in progress", model.Item{Status: model.StatusInProgress, DueDate: past}, true},
		{"past due completed", model.Item{Status: model.StatusCompleted, DueDate: past}, false},
		{"past due snoozed", model.Item{Status: model.StatusSnoozed, DueDate: past}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.item.IsOverdue(); got != tc.want {
				t.Errorf("IsOverdue() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestItemIsSubtask(t *testing.T) {
	parent := int64(7)
	if (model.Item{}).IsSubtask() {
		t.Error("item without parent reported as subtask")
	}
	if !(model.Item{ParentItemID: &parent}).IsSubtask() {
		t.Error("item with parent not reported as subtask")
	}
}

func TestPriorityWeightOrdering(t *testing.T) {
	if model.PriorityLow.Weight() >= model.PriorityMedium.Weight() {
		t.Error("low priority should weigh less than medium")
	}
	if model.PriorityMedium.Weight() >= model.PriorityHigh.Weight() {
		t.Error("medium priority should weigh less than high")
	}
}

func TestRecurringPatternNeedsInterval(t *testing.T) {
	withInterval := map[model.RecurringPattern]bool{
		model.RecurDaily:       false,
		model.RecurWeekly:      false,
		model.RecurMonthly:     false,
		model.RecurYearly:      false,
		model.RecurEveryNDays:  true,
		model.RecurEveryNWeeks: true,
	}

	for pattern, want := range withInterval {
		if got := pattern.NeedsInterval(); got != want {
			t.Errorf("%s: NeedsInterval() = %v, want %v", pattern, got, want)
		}
	}
}

func TestEventIsUpcoming(t *testing.T) {
	if (model.Event{EventDateTime: time.Now().Add(-time.Hour)}).IsUpcoming() {
		t.Error("past event reported as upcoming")
	}
	if !(model.Event{EventDateTime: time.Now().Add(time.Hour)}).IsUpcoming() {
		t.Error("future event not reported as upcoming")
	}
}
