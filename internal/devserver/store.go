package devserver

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
)

// Store errors mapped to HTTP statuses by the handlers.
var (
	errDuplicateUser = errors.New("username or email already exists")
	errNotFound      = errors.New("not found")
)

type user struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type post struct {
	ID        int64
	UserID    int64
	Content   string
	CreatedAt time.Time
}

type comment struct {
	ID        int64
	PostID    int64
	UserID    int64
	Content   string
	CreatedAt time.Time
}

type follow struct {
	FollowerID  int64
	FollowingID int64
	CreatedAt   time.Time
}

// store keeps every table in memory. Ids start at 1 and never repeat.
type store struct {
	mu sync.RWMutex

	users    map[int64]*user
	posts    map[int64]*post
	comments map[int64]*comment
	follows  []follow

	nextUser    int64
	nextPost    int64
	nextComment int64
}

func newStore() *store {
	return &store{
		users:    make(map[int64]*user),
		posts:    make(map[int64]*post),
		comments: make(map[int64]*comment),
	}
}

func (s *store) createUser(username, email string, hash []byte, now time.Time) (*user, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return nil, errDuplicateUser
		}
	}

	s.nextUser++
	u := &user{
		ID:           s.nextUser,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *store) userByID(id int64) (*user, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok
}

func (s *store) userByName(username string) (*user, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userByNameLocked(username)
}

func (s *store) userByNameLocked(username string) (*user, bool) {
	for _, u := range s.users {
		if u.Username == username {
			return u, true
		}
	}
	return nil, false
}

func (s *store) createPost(userID int64, content string, now time.Time) *post {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextPost++
	p := &post{ID: s.nextPost, UserID: userID, Content: content, CreatedAt: now}
	s.posts[p.ID] = p
	return p
}

func (s *store) post(id int64) (*post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	return p, ok
}

// deletePost removes a post and its comments.
func (s *store) deletePost(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.posts, id)
	for cid, c := range s.comments {
		if c.PostID == id {
			delete(s.comments, cid)
		}
	}
}

// newestFirst orders posts by creation time, then id, descending.
func newestFirst(posts []*post) {
	sort.Slice(posts, func(i, j int) bool {
		if posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
}

// postsWhere returns the matching posts newest first.
func (s *store) postsWhere(keep func(*post) bool) []*post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*post
	for _, p := range s.posts {
		if keep(p) {
			out = append(out, p)
		}
	}
	newestFirst(out)
	return out
}

func (s *store) commentCount(postID int64) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, c := range s.comments {
		if c.PostID == postID {
			n++
		}
	}
	return n
}

func (s *store) createComment(postID, userID int64, content string, now time.Time) (*comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[postID]; !ok {
		return nil, errNotFound
	}
	s.nextComment++
	c := &comment{ID: s.nextComment, PostID: postID, UserID: userID, Content: content, CreatedAt: now}
	s.comments[c.ID] = c
	return c, nil
}

func (s *store) comment(id int64) (*comment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.comments[id]
	return c, ok
}

func (s *store) deleteComment(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.comments, id)
}

// postComments returns a post's comments oldest first.
func (s *store) postComments(postID int64) []*comment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*comment
	for _, c := range s.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// addFollow records that follower follows following. It reports false when
// the edge already exists.
func (s *store) addFollow(followerID, followingID int64, now time.Time) (follow, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			return f, false
		}
	}
	f := follow{FollowerID: followerID, FollowingID: followingID, CreatedAt: now}
	s.follows = append(s.follows, f)
	return f, true
}

// removeFollow deletes an edge. It reports false when there was none.
func (s *store) removeFollow(followerID, followingID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, f := range s.follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			s.follows = append(s.follows[:i], s.follows[i+1:]...)
			return true
		}
	}
	return false
}

func (s *store) isFollowing(followerID, followingID int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.follows {
		if f.FollowerID == followerID && f.FollowingID == followingID {
			return true
		}
	}
	return false
}

// followEdges returns the edges selected by keep, most recent first.
func (s *store) followEdges(keep func(follow) bool) []follow {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []follow
	for _, f := range s.follows {
		if keep(f) {
			out = append(out, f)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

type userStats struct {
	Followers int
	Following int
	Posts     int
}

func (s *store) stats(userID int64) userStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st userStats
	for _, f := range s.follows {
		if f.FollowingID == userID {
			st.Followers++
		}
		if f.FollowerID == userID {
			st.Following++
		}
	}
	for _, p := range s.posts {
		if p.UserID == userID {
			st.Posts++
		}
	}
	return st
}

// searchUsers returns users whose name contains query, case-insensitively,
// ordered by username.
func (s *store) searchUsers(query string, limit int) []*user {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query = strings.ToLower(query)
	var out []*user
	for _, u := range s.users {
		if strings.Contains(strings.ToLower(u.Username), query) {
			out = append(out, u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// allUsers returns every user, newest first.
func (s *store) allUsers() []*user {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*user, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// window returns the [offset, offset+limit) slice of items.
func window[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
