package api

import (
	"context"
	"fmt"

	"github.com/sonic/sonic-task-hub/internal/model"
)

// CreateItem creates a new item for the user.
func (c *Client) CreateItem(
	ctx context.Context,
	userID int64,
	req ItemRequest,
) (*model.Item, error) {
	var item model.Item
	path := fmt.Sprintf("/items/user/%d", userID)
	if err := c.Post(ctx, path, req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem updates an existing item.
func (c *Client) UpdateItem(
	ctx context.Context,
	userID, itemID int64,
	req ItemRequest,
) (*model.Item, error) {
	var item model.Item
	path := fmt.Sprintf("/items/user/%d/item/%d", userID, itemID)
	if err := c.Put(ctx, path, req, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItems retrieves a filtered, paginated page of the user's items.
func (c *Client) GetItems(
	ctx context.Context,
	userID int64,
	filters ItemFilters,
) (*ItemPage, error) {
	var page ItemPage
	path := fmt.Sprintf("/items/user/%d", userID)
	if err := c.Get(ctx, path, filters.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetItem retrieves a single item by ID.
func (c *Client) GetItem(
	ctx context.Context,
	userID, itemID int64,
) (*model.Item, error) {
	var item model.Item
	path := fmt.Sprintf("/items/user/%d/item/%d", userID, itemID)
	if err := c.Get(ctx, path, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItemByNumber retrieves a single item by its per-user display number.
func (c *Client) GetItemByNumber(
	ctx context.Context,
	userID, itemNumber int64,
) (*model.Item, error) {
	var item model.Item
	path := fmt.Sprintf("/items/user/%d/number/%d", userID, itemNumber)
	if err := c.Get(ctx, path, nil, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// CompleteItem marks an item completed, optionally recording the actual
// duration spent.
func (c *Client) CompleteItem(
	ctx context.Context,
	userID, itemID int64,
	actualDuration *int,
) (*model.Item, error) {
	var item model.Item
	path := fmt.Sprintf("/items/user/%d/item/%d/complete", userID, itemID)
	body := map[string]interface{}{"actualDuration": actualDuration}
	if err := c.Put(ctx, path, body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// SnoozeItem hides an item until the given RFC3339 wake timestamp.
func (c *Client) SnoozeItem(
	ctx context.Context,
	userID, itemID int64,
	snoozeUntil string,
) (*model.Item, error) {
	var item model.Item
	path := fmt.Sprintf("/items/user/%d/item/%d/snooze", userID, itemID)
	body := map[string]string{"snoozeUntil": snoozeUntil}
	if err := c.Put(ctx, path, body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItemStatus moves an item to a new lifecycle status.
func (c *Client) UpdateItemStatus(
	ctx context.Context,
	userID, itemID int64,
	status model.ItemStatus,
) (*model.Item, error) {
	var item model.Item
	path := fmt.Sprintf("/items/user/%d/item/%d/status", userID, itemID)
	body := map[string]model.ItemStatus{"status": status}
	if err := c.Put(ctx, path, body, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

// DeleteItem removes an item.
func (c *Client) DeleteItem(ctx context.Context, userID, itemID int64) error {
	path := fmt.Sprintf("/items/user/%d/item/%d", userID, itemID)
	return c.Delete(ctx, path, nil, nil)
}

// GetSubtasks retrieves the sub-items of a parent item.
func (c *Client) GetSubtasks(
	ctx context.Context,
	userID, parentItemID int64,
) ([]model.Item, error) {
	var subtasks []model.Item
	path := fmt.Sprintf("/items/user/%d/item/%d/subtasks", userID, parentItemID)
	if err := c.Get(ctx, path, nil, &subtasks); err != nil {
		return nil, err
	}
	return subtasks, nil
}

// GetTopLevelItems retrieves the user's items that have no parent.
func (c *Client) GetTopLevelItems(
	ctx context.Context,
	userID int64,
) ([]model.Item, error) {
	var items []model.Item
	path := fmt.Sprintf("/items/user/%d/top-level", userID)
	if err := c.Get(ctx, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// GetOverdueItems retrieves all items past their due date.
func (c *Client) GetOverdueItems(
	ctx context.Context,
	userID int64,
) ([]model.Item, error) {
	var items []model.Item
	path := fmt.Sprintf("/items/user/%d/overdue", userID)
	if err := c.Get(ctx, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// UnsnoozeReady wakes every snoozed item whose snooze time has passed and
// returns the woken items.
func (c *Client) UnsnoozeReady(
	ctx context.Context,
	userID int64,
) ([]model.Item, error) {
	var items []model.Item
	path := fmt.Sprintf("/items/user/%d/unsnooze", userID)
	if err := c.Put(ctx, path, struct{}{}, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// BulkCompleteItems completes every item in itemIDs.
func (c *Client) BulkCompleteItems(
	ctx context.Context,
	userID int64,
	itemIDs []int64,
) error {
	path := fmt.Sprintf("/items/user/%d/bulk/complete", userID)
	body := map[string][]int64{"itemIds": itemIDs}
	return c.Put(ctx, path, body, nil)
}

// BulkSnoozeItems snoozes every item in itemIDs until the given timestamp.
func (c *Client) BulkSnoozeItems(
	ctx context.Context,
	userID int64,
	itemIDs []int64,
	snoozeUntil string,
) error {
	path := fmt.Sprintf("/items/user/%d/bulk/snooze", userID)
	body := map[string]interface{}{
		"itemIds":     itemIDs,
		"snoozeUntil": snoozeUntil,
	}
	return c.Put(ctx, path, body, nil)
}

// BulkDeleteItems removes every item in itemIDs.
func (c *Client) BulkDeleteItems(
	ctx context.Context,
	userID int64,
	itemIDs []int64,
) error {
	path := fmt.Sprintf("/items/user/%d/bulk", userID)
	body := map[string][]int64{"itemIds": itemIDs}
	return c.Delete(ctx, path, body, nil)
}
