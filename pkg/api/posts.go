package api

import (
	"context"
	"net/http"
)

// CreatePost publishes a post.
func (c *Client) CreatePost(ctx context.Context, content string) (*Post, error) {
	var out struct {
		Post Post `json:"post"`
	}
	if err := c.do(ctx, http.MethodPost, "/posts", nil, map[string]string{"content": content}, &out); err != nil {
		return nil, err
	}
	return &out.Post, nil
}

// GetFeed returns a page of all posts, newest first.
func (c *Client) GetFeed(ctx context.Context, page Page) (*PostPage, error) {
	var out PostPage
	if err := c.do(ctx, http.MethodGet, "/posts", page.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetPost returns one post.
func (c *Client) GetPost(ctx context.Context, id string) (*Post, error) {
	var out struct {
		Post Post `json:"post"`
	}
	if err := c.do(ctx, http.MethodGet, "/posts/"+idPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Post, nil
}

// DeletePost deletes one of the caller's posts.
func (c *Client) DeletePost(ctx context.Context, id string) (*Message, error) {
	var out Message
	if err := c.do(ctx, http.MethodDelete, "/posts/"+idPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
