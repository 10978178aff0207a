package api

import (
	"context"
	"fmt"

	"github.com/sonic/sonic-task-hub/internal/model"
)

// GetCategories retrieves every category available to the user: the
// system defaults plus the user's custom ones.
func (c *Client) GetCategories(
	ctx context.Context,
	userID int64,
) ([]model.Category, error) {
	var categories []model.Category
	path := fmt.Sprintf("/categories/user/%d", userID)
	if err := c.Get(ctx, path, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCustomCategories retrieves only the user's own custom categories.
func (c *Client) GetCustomCategories(
	ctx context.Context,
	userID int64,
) ([]model.Category, error) {
	var categories []model.Category
	path := fmt.Sprintf("/categories/user/%d/custom", userID)
	if err := c.Get(ctx, path, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a custom category owned by the user.
func (c *Client) CreateCategory(
	ctx context.Context,
	userID int64,
	req CategoryRequest,
) (*model.Category, error) {
	var category model.Category
	path := fmt.Sprintf("/categories/user/%d", userID)
	if err := c.Post(ctx, path, req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// UpdateCategory updates a custom category.
func (c *Client) UpdateCategory(
	ctx context.Context,
	userID, categoryID int64,
	req CategoryRequest,
) (*model.Category, error) {
	var category model.Category
	path := fmt.Sprintf("/categories/user/%d/category/%d", userID, categoryID)
	if err := c.Put(ctx, path, req, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// DeleteCategory removes a custom category.
func (c *Client) DeleteCategory(ctx context.Context, userID, categoryID int64) error {
	path := fmt.Sprintf("/categories/user/%d/category/%d", userID, categoryID)
	return c.Delete(ctx, path, nil, nil)
}
