package api

import (
	"context"
	"fmt"

	"github.com/sonic/sonic-task-hub/internal/model"
)

// CreateEvent creates a new event for the user. Recurring masters cause
// the backend to generate instances; the client never expands recurrence
// itself.
func (c *Client) CreateEvent(
	ctx context.Context,
	userID int64,
	req EventRequest,
) (*model.Event, error) {
	var event model.Event
	path := fmt.Sprintf("/events/user/%d", userID)
	if err := c.Post(ctx, path, req, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// UpdateEvent updates an existing event.
func (c *Client) UpdateEvent(
	ctx context.Context,
	userID, eventID int64,
	req EventRequest,
) (*model.Event, error) {
	var event model.Event
	path := fmt.Sprintf("/events/user/%d/event/%d", userID, eventID)
	if err := c.Put(ctx, path, req, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// GetEvents retrieves a filtered, paginated page of the user's events.
func (c *Client) GetEvents(
	ctx context.Context,
	userID int64,
	filters EventFilters,
) (*EventPage, error) {
	var page EventPage
	path := fmt.Sprintf("/events/user/%d", userID)
	if err := c.Get(ctx, path, filters.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetEvent retrieves a single event by ID.
func (c *Client) GetEvent(
	ctx context.Context,
	userID, eventID int64,
) (*model.Event, error) {
	var event model.Event
	path := fmt.Sprintf("/events/user/%d/event/%d", userID, eventID)
	if err := c.Get(ctx, path, nil, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// GetUpcomingEvents retrieves the next events scheduled after now.
func (c *Client) GetUpcomingEvents(
	ctx context.Context,
	userID int64,
	limit int,
) ([]model.Event, error) {
	page, err := c.GetEvents(ctx, userID, EventFilters{
		Upcoming:      true,
		Size:          limit,
		SortBy:        "eventDateTime",
		SortDirection: "asc",
	})
	if err != nil {
		return nil, err
	}
	return page.Content, nil
}

// DeleteEvent removes an event.
func (c *Client) DeleteEvent(ctx context.Context, userID, eventID int64) error {
	path := fmt.Sprintf("/events/user/%d/event/%d", userID, eventID)
	return c.Delete(ctx, path, nil, nil)
}
