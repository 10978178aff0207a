package model

import "time"

// ItemType identifies the kind of trackable item.
type ItemType string

const (
	ItemTypeTask     ItemType = "TASK"
	ItemTypeHabit    ItemType = "HABIT"
	ItemTypeReminder ItemType = "REMINDER"
)

// ItemTypes lists every item type in display order.
var ItemTypes = []ItemType{ItemTypeTask, ItemTypeHabit, ItemTypeReminder}

// Label returns the human-readable name for the item type.
func (t ItemType) Label() string {
	switch t {
	case ItemTypeTask:
		return "Task"
	case ItemTypeHabit:
		return "Habit"
	case ItemTypeReminder:
		return "Reminder"
	default:
		return string(t)
	}
}

// ItemStatus is the lifecycle state of an item.
type ItemStatus string

const (
	StatusPending    ItemStatus = "PENDING"
	StatusInProgress ItemStatus = "IN_PROGRESS"
	StatusCompleted  ItemStatus = "COMPLETED"
	StatusSnoozed    ItemStatus = "SNOOZED"
)

// ItemStatuses lists every item status in display order.
var ItemStatuses = []ItemStatus{
	StatusPending, StatusInProgress, StatusCompleted, StatusSnoozed,
}

// Label returns the human-readable name for the status.
func (s ItemStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In Progress"
	case StatusCompleted:
		return "Completed"
	case StatusSnoozed:
		return "Snoozed"
	default:
		return string(s)
	}
}

// Priority ranks an item's importance.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

// Priorities lists every priority in ascending weight order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Label returns the human-readable name for the priority.
func (p Priority) Label() string {
	switch p {
	case PriorityLow:
		return "Low"
	case PriorityMedium:
		return "Medium"
	case PriorityHigh:
		return "High"
	default:
		return string(p)
	}
}

// Weight returns the numeric weight used for ordering (higher = more urgent).
func (p Priority) Weight() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	default:
		return 0
	}
}

// Complexity estimates how demanding an item is.
type Complexity string

const (
	ComplexityEasy   Complexity = "EASY"
	ComplexityMedium Complexity = "MEDIUM"
	ComplexityHard   Complexity = "HARD"
)

// Complexities lists every complexity in display order.
var Complexities = []Complexity{ComplexityEasy, ComplexityMedium, ComplexityHard}

// Label returns the human-readable name for the complexity.
func (c Complexity) Label() string {
	switch c {
	case ComplexityEasy:
		return "Easy"
	case ComplexityMedium:
		return "Medium"
	case ComplexityHard:
		return "Hard"
	default:
		return string(c)
	}
}

// Item is the unified trackable entity: tasks, habits, and reminders share
// one resource with kind-specific fields. The backend owns all invariants;
// the client treats every fetched item as a disposable projection.
type Item struct {
	ID          int64      `json:"id" db:"id"`
	ItemNumber  int64      `json:"itemNumber" db:"item_number"`
	Title       string     `json:"title" db:"title"`
	Description *string    `json:"description,omitempty" db:"description"`
	Type        ItemType   `json:"type" db:"type"`
	Priority    Priority   `json:"priority" db:"priority"`
	Complexity  Complexity `json:"complexity" db:"complexity"`
	Status      ItemStatus `json:"status" db:"status"`

	DueDate      *time.Time `json:"dueDate,omitempty" db:"due_date"`
	CompletedAt  *time.Time `json:"completedAt,omitempty" db:"completed_at"`
	SnoozedUntil *time.Time `json:"snoozedUntil,omitempty" db:"snoozed_until"`

	EstimatedDuration *int `json:"estimatedDuration,omitempty" db:"estimated_duration"`
	ActualDuration    *int `json:"actualDuration,omitempty" db:"actual_duration"`

	UserID          int64   `json:"userId" db:"user_id"`
	UserDisplayName *string `json:"userDisplayName,omitempty" db:"-"`

	CategoryID    *int64  `json:"categoryId,omitempty" db:"category_id"`
	CategoryName  *string `json:"categoryName,omitempty" db:"category_name"`
	CategoryColor *string `json:"categoryColor,omitempty" db:"category_color"`

	ParentItemID    *int64  `json:"parentItemId,omitempty" db:"parent_item_id"`
	ParentItemTitle *string `json:"parentItemTitle,omitempty" db:"parent_item_title"`

	// Subtasks is populated only on detail responses.
	Subtasks              []Item `json:"subtasks,omitempty" db:"-"`
	SubtaskCount          int    `json:"subtaskCount" db:"subtask_count"`
	CompletedSubtaskCount int    `json:"completedSubtaskCount" db:"completed_subtask_count"`

	SortOrder int `json:"sortOrder" db:"sort_order"`

	// Habit-specific fields, nil for tasks and reminders.
	HabitStage         *string `json:"habitStage,omitempty" db:"habit_stage"`
	HabitTargetDays    *int    `json:"habitTargetDays,omitempty" db:"habit_target_days"`
	HabitCompletedDays *int    `json:"habitCompletedDays,omitempty" db:"habit_completed_days"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// IsSubtask reports whether the item has a parent.
func (i Item) IsSubtask() bool {
	return i.ParentItemID != nil
}

// IsOverdue reports whether the item has a due date in the past and is
// still actionable.
func (i Item) IsOverdue() bool {
	if i.DueDate == nil {
		return false
	}
	if i.Status == StatusCompleted || i.Status == StatusSnoozed {
		return false
	}
	return i.DueDate.Before(time.Now())
}
