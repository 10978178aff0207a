package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sonic/sonic-task-hub/internal/model"
)

// LogProgress records a work session against an item.
func (c *Client) LogProgress(
	ctx context.Context,
	userID, itemID int64,
	req ProgressRequest,
) (*model.Progress, error) {
	var progress model.Progress
	path := fmt.Sprintf("/progress/user/%d/item/%d", userID, itemID)
	if err := c.Post(ctx, path, req, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// UpdateProgress modifies an existing progress record.
func (c *Client) UpdateProgress(
	ctx context.Context,
	userID, progressID int64,
	req ProgressRequest,
) (*model.Progress, error) {
	var progress model.Progress
	path := fmt.Sprintf("/progress/user/%d/progress/%d", userID, progressID)
	if err := c.Put(ctx, path, req, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// DeleteProgress removes a progress record.
func (c *Client) DeleteProgress(ctx context.Context, userID, progressID int64) error {
	path := fmt.Sprintf("/progress/user/%d/progress/%d", userID, progressID)
	return c.Delete(ctx, path, nil, nil)
}

// GetProgress retrieves a single progress record by ID.
func (c *Client) GetProgress(
	ctx context.Context,
	userID, progressID int64,
) (*model.Progress, error) {
	var progress model.Progress
	path := fmt.Sprintf("/progress/user/%d/progress/%d", userID, progressID)
	if err := c.Get(ctx, path, nil, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

// GetProgressForItem retrieves an item's full progress history.
func (c *Client) GetProgressForItem(
	ctx context.Context,
	userID, itemID int64,
) ([]model.Progress, error) {
	var history []model.Progress
	path := fmt.Sprintf("/progress/user/%d/item/%d", userID, itemID)
	if err := c.Get(ctx, path, nil, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// GetProgressInRange retrieves progress records between two session dates,
// inclusive, given as YYYY-MM-DD strings.
func (c *Client) GetProgressInRange(
	ctx context.Context,
	userID, itemID int64,
	startDate, endDate string,
) ([]model.Progress, error) {
	var history []model.Progress
	path := fmt.Sprintf("/progress/user/%d/item/%d/range", userID, itemID)
	query := url.Values{
		"startDate": {startDate},
		"endDate":   {endDate},
	}
	if err := c.Get(ctx, path, query, &history); err != nil {
		return nil, err
	}
	return history, nil
}

// HasProgressForDate reports whether a session was already logged on the
// given date.
func (c *Client) HasProgressForDate(
	ctx context.Context,
	userID, itemID int64,
	date string,
) (bool, error) {
	var logged bool
	path := fmt.Sprintf("/progress/user/%d/item/%d/check", userID, itemID)
	query := url.Values{"date": {date}}
	if err := c.Get(ctx, path, query, &logged); err != nil {
		return false, err
	}
	return logged, nil
}

// GetProgressStatistics retrieves the aggregate statistics for an item.
func (c *Client) GetProgressStatistics(
	ctx context.Context,
	userID, itemID int64,
) (*model.ProgressStats, error) {
	var stats model.ProgressStats
	path := fmt.Sprintf("/progress/user/%d/item/%d/statistics", userID, itemID)
	if err := c.Get(ctx, path, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetTotalDuration returns the summed session minutes for an item.
func (c *Client) GetTotalDuration(
	ctx context.Context,
	userID, itemID int64,
) (int, error) {
	var total int
	path := fmt.Sprintf("/progress/user/%d/item/%d/total-duration", userID, itemID)
	if err := c.Get(ctx, path, nil, &total); err != nil {
		return 0, err
	}
	return total, nil
}

// GetTotalProgress returns the summed progress value for an item.
func (c *Client) GetTotalProgress(
	ctx context.Context,
	userID, itemID int64,
) (float64, error) {
	var total float64
	path := fmt.Sprintf("/progress/user/%d/item/%d/total-progress", userID, itemID)
	if err := c.Get(ctx, path, nil, &total); err != nil {
		return 0, err
	}
	return total, nil
}
