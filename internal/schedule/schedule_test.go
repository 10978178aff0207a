package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/sonic/sonic-task-hub/internal/model"
)

func TestPresetDurations(t *testing.T) {
	cases := []struct {
		token SnoozeToken
		want  time.Duration
	}{
		{Snooze1Day, 24 * time.Hour},
		{Snooze3Days, 72 * time.Hour},
		{Snooze1Week, 7 * 24 * time.Hour},
		{Snooze2Weeks, 14 * 24 * time.Hour},
		{Snooze1Month, 30 * 24 * time.Hour},
	}

	for _, tc := range cases {
		if got := PresetDuration(tc.token); got != tc.want {
			t.Errorf("PresetDuration(%q) = %v, want %v", tc.token, got, tc.want)
		}
	}
}

func TestPresetDurationUnknownTokenDefaultsToOneDay(t *testing.T) {
	if got := PresetDuration("bogus"); got != 24*time.Hour {
		t.Errorf("PresetDuration(bogus) = %v, want 24h", got)
	}
}

func TestSnoozeUntilOffsets(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	for _, token := range SnoozeTokens {
		got := SnoozeUntil(now, token)
		parsed, err := time.Parse(time.RFC3339, got)
		if err != nil {
			t.Fatalf("SnoozeUntil(%q) returned unparseable %q: %v", token, got, err)
		}
		if diff := parsed.Sub(now); diff != PresetDuration(token) {
			t.Errorf("SnoozeUntil(%q) offset = %v, want %v", token, diff, PresetDuration(token))
		}
	}
}

func TestSnoozeUntilCustomRejectsPast(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	for _, target := range []time.Time{
		now,
		now.Add(-time.Second),
		now.Add(-48 * time.Hour),
	} {
		if _, err := SnoozeUntilCustom(now, target); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("SnoozeUntilCustom(%v) error = %v, want ErrInvalidInput", target, err)
		}
	}

	got, err := SnoozeUntilCustom(now, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("SnoozeUntilCustom future target: %v", err)
	}
	if got != "2025-03-10T12:01:00Z" {
		t.Errorf("SnoozeUntilCustom = %q", got)
	}
}

func TestDescribeReminder(t *testing.T) {
	cases := []struct {
		minutes int
		want    string
	}{
		{0, "No reminder"},
		{15, "15 minutes before"},
		{30, "30 minutes before"},
		{59, "59 minutes before"},
		{60, "1 hour before"},
		{90, "1 hour before"},
		{120, "2 hours before"},
		{1439, "23 hours before"},
		{1440, "1 day before"},
		{2880, "2 days before"},
	}

	for _, tc := range cases {
		if got := DescribeReminder(tc.minutes); got != tc.want {
			t.Errorf("DescribeReminder(%d) = %q, want %q", tc.minutes, got, tc.want)
		}
	}
}

func TestDescribeRecurrence(t *testing.T) {
	cases := []struct {
		pattern  model.RecurringPattern
		interval int
		want     string
	}{
		{model.RecurDaily, 0, "Daily"},
		{model.RecurWeekly, 3, "Weekly"},
		{model.RecurMonthly, 1, "Monthly"},
		{model.RecurYearly, 2, "Yearly"},
		{model.RecurEveryNDays, 1, "Every N Days"},
		{model.RecurEveryNDays, 3, "Every N Days (every 3)"},
		{model.RecurEveryNWeeks, 2, "Every N Weeks (every 2)"},
	}

	for _, tc := range cases {
		got := DescribeRecurrence(tc.pattern, tc.interval)
		if got != tc.want {
			t.Errorf("DescribeRecurrence(%q, %d) = %q, want %q",
				tc.pattern, tc.interval, got, tc.want)
		}
	}
}
