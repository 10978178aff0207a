package model

import "time"

// Category groups items and events. Default categories are system-provided
// and shared; custom ones are owned by a single user.
type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Color       string  `json:"color"`
	IsDefault   bool    `json:"isDefault"`
	UserID      *int64  `json:"userId,omitempty"`
	IsActive    bool    `json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
