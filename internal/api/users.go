package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sonic/sonic-task-hub/internal/model"
)

// Register creates a new account.
func (c *Client) Register(
	ctx context.Context,
	req RegisterRequest,
) (*model.User, error) {
	var user model.User
	if err := c.Post(ctx, "/users/register", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Login authenticates and returns the user record for the session.
func (c *Client) Login(
	ctx context.Context,
	username, password string,
) (*model.User, error) {
	var user model.User
	body := map[string]string{
		"username": username,
		"password": password,
	}
	if err := c.Post(ctx, "/users/login", body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// GetProfile retrieves a user's profile.
func (c *Client) GetProfile(ctx context.Context, userID int64) (*model.User, error) {
	var user model.User
	path := fmt.Sprintf("/users/%d", userID)
	if err := c.Get(ctx, path, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile updates the user's email and display name.
func (c *Client) UpdateProfile(
	ctx context.Context,
	userID int64,
	email, displayName *string,
) (*model.User, error) {
	var user model.User
	path := fmt.Sprintf("/users/%d/profile", userID)
	body := map[string]*string{
		"email":       email,
		"displayName": displayName,
	}
	if err := c.Put(ctx, path, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword replaces the user's password.
func (c *Client) ChangePassword(
	ctx context.Context,
	userID int64,
	currentPassword, newPassword string,
) error {
	path := fmt.Sprintf("/users/%d/password", userID)
	body := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	return c.Put(ctx, path, body, nil)
}

// CheckUsername reports whether a username is already taken.
func (c *Client) CheckUsername(ctx context.Context, username string) (bool, error) {
	var taken bool
	query := url.Values{"username": {username}}
	if err := c.Get(ctx, "/users/check-username", query, &taken); err != nil {
		return false, err
	}
	return taken, nil
}
