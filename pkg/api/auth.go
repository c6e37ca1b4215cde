package api

import (
	"context"
	"net/http"
)

// Register creates an account and returns it with a token.
func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	in := map[string]string{"username": username, "email": email, "password": password}
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/register", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges a username and password for a token.
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	in := map[string]string{"username": username, "password": password}
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProfile returns the authenticated user's account.
func (c *Client) GetProfile(ctx context.Context) (*User, error) {
	var out struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/auth/profile", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}
