package api

import (
	"context"
	"net/http"
	"net/url"
)

// SearchUsers finds users whose name contains query.
func (c *Client) SearchUsers(ctx context.Context, query string) (*SearchResult, error) {
	var out SearchResult
	if err := c.do(ctx, http.MethodGet, "/users/search", url.Values{"query": {query}}, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetUserProfile returns another user's public profile.
func (c *Client) GetUserProfile(ctx context.Context, username string) (*UserProfile, error) {
	var out struct {
		User UserProfile `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/users/"+idPath(username), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// GetUserPosts returns a page of username's posts.
func (c *Client) GetUserPosts(ctx context.Context, username string, page Page) (*PostPage, error) {
	var out PostPage
	if err := c.do(ctx, http.MethodGet, "/users/"+idPath(username)+"/posts", page.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetAllUsers returns a page of all users, newest first.
func (c *Client) GetAllUsers(ctx context.Context, page Page) (*UserPage, error) {
	var out UserPage
	if err := c.do(ctx, http.MethodGet, "/users/list", page.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
