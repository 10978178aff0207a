package api

import (
	"net/url"
	"strconv"

	"github.com/sonic/sonic-task-hub/internal/model"
)

// ItemFilters is the ephemeral filter state of an item list view. It is
// recreated on navigation and never persisted.
type ItemFilters struct {
	Type       *model.ItemType   `json:"type,omitempty"`
	Status     *model.ItemStatus `json:"status,omitempty"`
	Priority   *model.Priority   `json:"priority,omitempty"`
	CategoryID *int64            `json:"categoryId,omitempty"`
	Search     string            `json:"search,omitempty"`

	Page          int    `json:"page"`
	Size          int    `json:"size,omitempty"`
	SortBy        string `json:"sortBy,omitempty"`
	SortDirection string `json:"sortDirection,omitempty"` // "asc" or "desc"
}

// Values builds the query parameters for a list request. Only set,
// non-empty fields are included; numbers use their canonical decimal form.
// url.Values encoding sorts keys, so the resulting query string depends
// only on the filter contents.
func (f ItemFilters) Values() url.Values {
	v := url.Values{}

	if f.Type != nil && *f.Type != "" {
		v.Set("type", string(*f.Type))
	}
	if f.Status != nil && *f.Status != "" {
		v.Set("status", string(*f.Status))
	}
	if f.Priority != nil && *f.Priority != "" {
		v.Set("priority", string(*f.Priority))
	}
	if f.CategoryID != nil {
		v.Set("categoryId", strconv.FormatInt(*f.CategoryID, 10))
	}
	if f.Search != "" {
		v.Set("search", f.Search)
	}

	v.Set("page", strconv.Itoa(f.Page))
	if f.Size > 0 {
		v.Set("size", strconv.Itoa(f.Size))
	}
	if f.SortBy != "" {
		v.Set("sortBy", f.SortBy)
	}
	if f.SortDirection != "" {
		v.Set("sortDirection", f.SortDirection)
	}

	return v
}

// EventFilters is the ephemeral filter state of the event list view.
type EventFilters struct {
	Search     string
	CategoryID *int64
	Upcoming   bool

	Page          int
	Size          int
	SortBy        string
	SortDirection string
}

// Values builds the query parameters for an event list request, under the
// same inclusion rules as ItemFilters.Values.
func (f EventFilters) Values() url.Values {
	v := url.Values{}

	if f.Search != "" {
		v.Set("search", f.Search)
	}
	if f.CategoryID != nil {
		v.Set("categoryId", strconv.FormatInt(*f.CategoryID, 10))
	}
	if f.Upcoming {
		v.Set("upcoming", "true")
	}

	v.Set("page", strconv.Itoa(f.Page))
	if f.Size > 0 {
		v.Set("size", strconv.Itoa(f.Size))
	}
	if f.SortBy != "" {
		v.Set("sortBy", f.SortBy)
	}
	if f.SortDirection != "" {
		v.Set("sortDirection", f.SortDirection)
	}

	return v
}
