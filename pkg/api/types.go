package api

import "time"

// User is the account returned by register, login and profile.
type User struct {
	ID            int64          `json:"id"`
	Username      string         `json:"username"`
	Email         string         `json:"email,omitempty"`
	PublicProfile map[string]any `json:"publicProfile,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt,omitzero"`
}

// AuthResult is the payload of register and login.
type AuthResult struct {
	Message string `json:"message,omitempty"`
	User    User   `json:"user"`
	Token   string `json:"token"`
}

// Author identifies who wrote a post or comment.
type Author struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
}

// Post is a post as listed in feeds.
type Post struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userId,omitempty"`
	Content      string    `json:"content"`
	CreatedAt    time.Time `json:"createdAt"`
	Author       *Author   `json:"author,omitempty"`
	CommentCount int       `json:"commentCount"`
}

// AuthorName returns the author's username, or "" when absent.
func (p Post) AuthorName() string {
	if p.Author == nil {
		return ""
	}
	return p.Author.Username
}

// Comment is a comment on a post.
type Comment struct {
	ID        int64     `json:"id"`
	PostID    int64     `json:"postId"`
	UserID    int64     `json:"userId,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Author    *Author   `json:"author,omitempty"`
}

// AuthorName returns the author's username, or "" when absent.
func (c Comment) AuthorName() string {
	if c.Author == nil {
		return ""
	}
	return c.Author.Username
}

// Pagination is the envelope returned by every list action.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	Total   int  `json:"total"`
	HasMore bool `json:"hasMore"`
}

// NewPagination builds the envelope for a page of a list of total items.
func NewPagination(limit, offset, total int) Pagination {
	return Pagination{
		Limit:   limit,
		Offset:  offset,
		Total:   total,
		HasMore: offset+limit < total,
	}
}

// Stats are a user's counters. Following is absent from the users list.
type Stats struct {
	Followers int  `json:"followers"`
	Following *int `json:"following,omitempty"`
	Posts     int  `json:"posts"`
}

// UserSummary is a user as returned by search and the users list.
type UserSummary struct {
	UserID        int64          `json:"userId"`
	Username      string         `json:"username"`
	PublicProfile map[string]any `json:"publicProfile,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	Stats         Stats          `json:"stats"`
}

// UserProfile is another user's public profile. IsFollowing is only set
// when the request was authenticated.
type UserProfile struct {
	UserSummary
	IsFollowing *bool `json:"isFollowing,omitempty"`
}

// FollowEntry is one row of the following or followers list.
type FollowEntry struct {
	UserID        int64          `json:"userId"`
	Username      string         `json:"username"`
	PublicProfile map[string]any `json:"publicProfile,omitempty"`
	FollowedAt    time.Time      `json:"followedAt"`
}

// FollowStatus is the result of a follow check.
type FollowStatus struct {
	IsFollowing bool   `json:"isFollowing"`
	Username    string `json:"username"`
}

// PostPage is one page of posts.
type PostPage struct {
	Posts      []Post     `json:"posts"`
	Pagination Pagination `json:"pagination"`
}

// UserPage is one page of the users list.
type UserPage struct {
	Users      []UserSummary `json:"users"`
	Pagination Pagination    `json:"pagination"`
}

// CommentPage is one page of a post's comments.
type CommentPage struct {
	Comments   []Comment  `json:"comments"`
	Pagination Pagination `json:"pagination"`
}

// SearchResult is the payload of a user search.
type SearchResult struct {
	Users []UserSummary `json:"users"`
	Count int           `json:"count"`
}

// FollowList is the payload of the following and followers lists.
type FollowList struct {
	Entries []FollowEntry
	Count   int
}

// Message is the payload of actions that only report a message.
type Message struct {
	Message string `json:"message"`
}

// Page selects a window of a list.
type Page struct {
	Limit  int
	Offset int
}
