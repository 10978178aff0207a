package model

import "time"

// Progress is a single logged work session against an item. Session dates
// are plain calendar dates; the backend stores them without a time zone.
type Progress struct {
	ID        int64   `json:"id"`
	ItemID    int64   `json:"itemId"`
	ItemTitle *string `json:"itemTitle,omitempty"`

	SessionDate   string  `json:"sessionDate"`
	Duration      *int    `json:"duration,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	ProgressValue *float64 `json:"progressValue,omitempty"`
	ProgressUnit  *string `json:"progressUnit,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProgressStats summarizes the progress history of an item.
type ProgressStats struct {
	TotalSessions int     `json:"totalSessions"`
	TotalDuration int     `json:"totalDuration"`
	TotalProgress float64 `json:"totalProgress"`
	FirstSession  *string `json:"firstSession,omitempty"`
	LastSession   *string `json:"lastSession,omitempty"`
}
