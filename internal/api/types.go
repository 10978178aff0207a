package api

import (
	"encoding/json"

	"github.com/sonic/sonic-task-hub/internal/model"
)

// Envelope is the backend's uniform response wrapper.
type Envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data,omitempty"`
	ErrorCode string          `json:"errorCode,omitempty"`
	Timestamp string          `json:"timestamp"`
}

// ItemPage is one page of items as returned by list endpoints.
type ItemPage struct {
	Content       []model.Item `json:"content"`
	TotalElements int64        `json:"totalElements"`
	TotalPages    int          `json:"totalPages"`
	Number        int          `json:"number"`
	Size          int          `json:"size"`
	First         bool         `json:"first"`
	Last          bool         `json:"last"`
}

// EventPage is one page of events as returned by list endpoints.
type EventPage struct {
	Content       []model.Event `json:"content"`
	TotalElements int64         `json:"totalElements"`
	TotalPages    int           `json:"totalPages"`
	Number        int           `json:"number"`
	Size          int           `json:"size"`
	First         bool          `json:"first"`
	Last          bool          `json:"last"`
}

// ItemRequest is the create/update payload for items. Optional fields are
// pointers so that unset values serialize as explicit nulls, matching the
// empty-string-to-null shaping the forms perform before submission.
type ItemRequest struct {
	Title             string           `json:"title"`
	Description       *string          `json:"description"`
	Type              model.ItemType   `json:"type"`
	Priority          model.Priority   `json:"priority"`
	Complexity        model.Complexity `json:"complexity"`
	DueDate           *string          `json:"dueDate"`
	CategoryID        *int64           `json:"categoryId"`
	ParentItemID      *int64           `json:"parentItemId"`
	EstimatedDuration *int             `json:"estimatedDuration"`
	HabitStage        *string          `json:"habitStage"`
	HabitTargetDays   *int             `json:"habitTargetDays"`
}

// EventRequest is the create/update payload for events. Recurrence fields
// must be nil unless IsRecurring is true.
type EventRequest struct {
	Title             string                  `json:"title"`
	Description       *string                 `json:"description"`
	EventDateTime     string                  `json:"eventDateTime"`
	Location          *string                 `json:"location"`
	ReminderMinutes   *int                    `json:"reminderMinutes"`
	CategoryID        *int64                  `json:"categoryId"`
	IsRecurring       bool                    `json:"isRecurring"`
	RecurringPattern  *model.RecurringPattern `json:"recurringPattern"`
	RecurringInterval *int                    `json:"recurringInterval"`
	RecurringEndDate  *string                 `json:"recurringEndDate"`
}

// ProgressRequest is the payload for logging or updating a progress record.
// Session dates are plain YYYY-MM-DD strings.
type ProgressRequest struct {
	SessionDate   string   `json:"sessionDate"`
	Duration      *int     `json:"duration"`
	Notes         *string  `json:"notes"`
	ProgressValue *float64 `json:"progressValue"`
	ProgressUnit  *string  `json:"progressUnit"`
}

// CategoryRequest is the create/update payload for custom categories.
type CategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Color       string  `json:"color"`
}

// RegisterRequest is the payload for creating an account.
type RegisterRequest struct {
	Username    string  `json:"username"`
	Password    string  `json:"password"`
	Email       *string `json:"email"`
	DisplayName *string `json:"displayName"`
}
