package api

import (
	"context"
	"net/http"
)

// CreateComment comments on a post.
func (c *Client) CreateComment(ctx context.Context, postID, content string) (*Comment, error) {
	var out struct {
		Comment Comment `json:"comment"`
	}
	if err := c.do(ctx, http.MethodPost, "/comments/post/"+idPath(postID), nil, map[string]string{"content": content}, &out); err != nil {
		return nil, err
	}
	return &out.Comment, nil
}

// GetPostComments returns a page of a post's comments, oldest first.
func (c *Client) GetPostComments(ctx context.Context, postID string, page Page) (*CommentPage, error) {
	var out CommentPage
	if err := c.do(ctx, http.MethodGet, "/comments/post/"+idPath(postID), page.values(), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetComment returns one comment.
func (c *Client) GetComment(ctx context.Context, id string) (*Comment, error) {
	var out struct {
		Comment Comment `json:"comment"`
	}
	if err := c.do(ctx, http.MethodGet, "/comments/"+idPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out.Comment, nil
}

// DeleteComment deletes one of the caller's comments.
func (c *Client) DeleteComment(ctx context.Context, id string) (*Message, error) {
	var out Message
	if err := c.do(ctx, http.MethodDelete, "/comments/"+idPath(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
