package model

import "time"

// RecurringPattern describes how a recurring event repeats.
type RecurringPattern string

const (
	RecurDaily       RecurringPattern = "DAILY"
	RecurWeekly      RecurringPattern = "WEEKLY"
	RecurMonthly     RecurringPattern = "MONTHLY"
	RecurYearly      RecurringPattern = "YEARLY"
	RecurEveryNDays  RecurringPattern = "EVERY_N_DAYS"
	RecurEveryNWeeks RecurringPattern = "EVERY_N_WEEKS"
)

// RecurringPatterns lists every pattern in display order.
var RecurringPatterns = []RecurringPattern{
	RecurDaily, RecurWeekly, RecurMonthly, RecurYearly,
	RecurEveryNDays, RecurEveryNWeeks,
}

// Label returns the human-readable name for the pattern.
func (p RecurringPattern) Label() string {
	switch p {
	case RecurDaily:
		return "Daily"
	case RecurWeekly:
		return "Weekly"
	case RecurMonthly:
		return "Monthly"
	case RecurYearly:
		return "Yearly"
	case RecurEveryNDays:
		return "Every N Days"
	case RecurEveryNWeeks:
		return "Every N Weeks"
	default:
		return string(p)
	}
}

// NeedsInterval reports whether the pattern takes a repeat interval.
func (p RecurringPattern) NeedsInterval() bool {
	return p == RecurEveryNDays || p == RecurEveryNWeeks
}

// Event is a scheduled calendar entry with optional reminder and recurrence.
type Event struct {
	ID          int64   `json:"id"`
	EventNumber int64   `json:"eventNumber"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`

	EventDateTime   time.Time `json:"eventDateTime"`
	Location        *string   `json:"location,omitempty"`
	ReminderMinutes *int      `json:"reminderMinutes,omitempty"`

	IsRecurring       bool              `json:"isRecurring"`
	RecurringPattern  *RecurringPattern `json:"recurringPattern,omitempty"`
	RecurringInterval *int              `json:"recurringInterval,omitempty"`
	RecurringEndDate  *time.Time        `json:"recurringEndDate,omitempty"`

	// MasterEventID links a generated instance back to its recurring master.
	MasterEventID *int64 `json:"masterEventId,omitempty"`

	SortOrder int `json:"sortOrder"`

	UserID        int64   `json:"userId"`
	CategoryID    *int64  `json:"categoryId,omitempty"`
	CategoryName  *string `json:"categoryName,omitempty"`
	CategoryColor *string `json:"categoryColor,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsUpcoming reports whether the event is scheduled after now.
func (e Event) IsUpcoming() bool {
	return e.EventDateTime.After(time.Now())
}
