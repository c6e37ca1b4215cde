package api

import (
	"context"
	"net/http"
)

// FollowUser follows username.
func (c *Client) FollowUser(ctx context.Context, username string) (*Message, error) {
	var out Message
	if err := c.do(ctx, http.MethodPost, "/follows/"+idPath(username), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UnfollowUser stops following username.
func (c *Client) UnfollowUser(ctx context.Context, username string) (*Message, error) {
	var out Message
	if err := c.do(ctx, http.MethodDelete, "/follows/"+idPath(username), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetFollowing lists the users the caller follows.
func (c *Client) GetFollowing(ctx context.Context) (*FollowList, error) {
	var out struct {
		Following []FollowEntry `json:"following"`
		Count     int           `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/follows/list/following", nil, nil, &out); err != nil {
		return nil, err
	}
	return &FollowList{Entries: out.Following, Count: out.Count}, nil
}

// GetFollowers lists the users following the caller.
func (c *Client) GetFollowers(ctx context.Context) (*FollowList, error) {
	var out struct {
		Followers []FollowEntry `json:"followers"`
		Count     int           `json:"count"`
	}
	if err := c.do(ctx, http.MethodGet, "/follows/list/followers", nil, nil, &out); err != nil {
		return nil, err
	}
	return &FollowList{Entries: out.Followers, Count: out.Count}, nil
}

// GetFollowingFeed returns a page of posts by followed users.
func (c *Client) GetFollowingFeed(ctx context.Context, page Page) (*PostPage, error) {
	var out PostPage
	if err := c.do(ctx, http.MethodGet, "/follows/feed", page.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CheckFollowing reports whether the caller follows username.
func (c *Client) CheckFollowing(ctx context.Context, username string) (*FollowStatus, error) {
	var out FollowStatus
	if err := c.do(ctx, http.MethodGet, "/follows/check/"+idPath(username), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
