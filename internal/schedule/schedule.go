// Package schedule holds the date math shared by the snooze and event
// views: preset snooze offsets and human-readable reminder/recurrence
// descriptions.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/sonic/sonic-task-hub/internal/model"
)

// ErrInvalidInput is returned when a custom snooze target is not strictly
// in the future.
var ErrInvalidInput = errors.New("snooze time must be in the future")

// SnoozeToken identifies one of the fixed snooze presets.
type SnoozeToken string

const (
	Snooze1Day   SnoozeToken = "1d"
	Snooze3Days  SnoozeToken = "3d"
	Snooze1Week  SnoozeToken = "1w"
	Snooze2Weeks SnoozeToken = "2w"
	Snooze1Month SnoozeToken = "1m"
)

// SnoozeTokens lists every preset in display order.
var SnoozeTokens = []SnoozeToken{
	Snooze1Day, Snooze3Days, Snooze1Week, Snooze2Weeks, Snooze1Month,
}

// Label returns the human-readable name for the preset.
func (t SnoozeToken) Label() string {
	switch t {
	case Snooze1Day:
		return "1 day"
	case Snooze3Days:
		return "3 days"
	case Snooze1Week:
		return "1 week"
	case Snooze2Weeks:
		return "2 weeks"
	case Snooze1Month:
		return "1 month"
	default:
		return string(t)
	}
}

// PresetDuration returns the fixed offset for a snooze token. All presets
// are exact 24-hour multiples; "1 month" is literally 30 days. Unknown
// tokens fall back to one day, matching the original picker default.
func PresetDuration(token SnoozeToken) time.Duration {
	switch token {
	case Snooze1Day:
		return 24 * time.Hour
	case Snooze3Days:
		return 3 * 24 * time.Hour
	case Snooze1Week:
		return 7 * 24 * time.Hour
	case Snooze2Weeks:
		return 14 * 24 * time.Hour
	case Snooze1Month:
		return 30 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// SnoozeUntil computes the wake timestamp for a preset token relative to
// now, formatted as RFC3339 UTC for the backend.
func SnoozeUntil(now time.Time, token SnoozeToken) string {
	return now.Add(PresetDuration(token)).UTC().Format(time.RFC3339)
}

// SnoozeUntilCustom validates and formats a user-chosen wake timestamp.
// The target must be strictly later than now.
func SnoozeUntilCustom(now, target time.Time) (string, error) {
	if !target.After(now) {
		return "", ErrInvalidInput
	}
	return target.UTC().Format(time.RFC3339), nil
}

// DescribeReminder renders a reminder offset as display text.
func DescribeReminder(minutes int) string {
	if minutes <= 0 {
		return "No reminder"
	}
	if minutes < 60 {
		return fmt.Sprintf("%d minutes before", minutes)
	}
	hours := minutes / 60
	if hours < 24 {
		return fmt.Sprintf("%d hour%s before", hours, plural(hours))
	}
	days := hours / 24
	return fmt.Sprintf("%d day%s before", days, plural(days))
}

// DescribeRecurrence renders a recurrence pattern as display text. The
// interval is appended only for every-N patterns and only when above 1.
func DescribeRecurrence(pattern model.RecurringPattern, interval int) string {
	label := pattern.Label()
	if pattern.NeedsInterval() && interval > 1 {
		return fmt.Sprintf("%s (every %d)", label, interval)
	}
	return label
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
