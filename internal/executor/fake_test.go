package executor

import (
	"context"
	"sync"
	"time"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/api"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/session"
)

var testTime = time.Date(2024, 3, 9, 14, 30, 0, 0, time.UTC)

// fakeBackend records calls and returns canned results. Setting err makes
// every call fail with it.
type fakeBackend struct {
	mu    sync.Mutex
	calls map[string]int
	pages map[string]api.Page
	args  map[string][]string

	err error

	auth      *api.AuthResult
	profile   *api.User
	post      *api.Post
	posts     *api.PostPage
	message   *api.Message
	following *api.FollowList
	followers *api.FollowList
	status    *api.FollowStatus
	search    *api.SearchResult
	user      *api.UserProfile
	users     *api.UserPage
	comment   *api.Comment
	comments  *api.CommentPage

	panicOn string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		calls: make(map[string]int),
		pages: make(map[string]api.Page),
		args:  make(map[string][]string),
	}
}

func (f *fakeBackend) record(name string, args ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	f.args[name] = args
	if f.panicOn == name {
		panic("boom")
	}
	return f.err
}

func (f *fakeBackend) recordPage(name string, page api.Page, args ...string) error {
	f.mu.Lock()
	f.pages[name] = page
	f.mu.Unlock()
	return f.record(name, args...)
}

func (f *fakeBackend) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeBackend) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func orDefault[T any](v *T) *T {
	if v == nil {
		return new(T)
	}
	return v
}

func (f *fakeBackend) Register(_ context.Context, username, email, password string) (*api.AuthResult, error) {
	if err := f.record("Register", username, email, password); err != nil {
		return nil, err
	}
	return orDefault(f.auth), nil
}

func (f *fakeBackend) Login(_ context.Context, username, password string) (*api.AuthResult, error) {
	if err := f.record("Login", username, password); err != nil {
		return nil, err
	}
	return orDefault(f.auth), nil
}

func (f *fakeBackend) GetProfile(context.Context) (*api.User, error) {
	if err := f.record("GetProfile"); err != nil {
		return nil, err
	}
	return orDefault(f.profile), nil
}

func (f *fakeBackend) CreatePost(_ context.Context, content string) (*api.Post, error) {
	if err := f.record("CreatePost", content); err != nil {
		return nil, err
	}
	return orDefault(f.post), nil
}

func (f *fakeBackend) GetFeed(_ context.Context, page api.Page) (*api.PostPage, error) {
	if err := f.recordPage("GetFeed", page); err != nil {
		return nil, err
	}
	return orDefault(f.posts), nil
}

func (f *fakeBackend) GetPost(_ context.Context, id string) (*api.Post, error) {
	if err := f.record("GetPost", id); err != nil {
		return nil, err
	}
	return orDefault(f.post), nil
}

func (f *fakeBackend) DeletePost(_ context.Context, id string) (*api.Message, error) {
	if err := f.record("DeletePost", id); err != nil {
		return nil, err
	}
	return orDefault(f.message), nil
}

func (f *fakeBackend) FollowUser(_ context.Context, username string) (*api.Message, error) {
	if err := f.record("FollowUser", username); err != nil {
		return nil, err
	}
	return orDefault(f.message), nil
}

func (f *fakeBackend) UnfollowUser(_ context.Context, username string) (*api.Message, error) {
	if err := f.record("UnfollowUser", username); err != nil {
		return nil, err
	}
	return orDefault(f.message), nil
}

func (f *fakeBackend) GetFollowing(context.Context) (*api.FollowList, error) {
	if err := f.record("GetFollowing"); err != nil {
		return nil, err
	}
	return orDefault(f.following), nil
}

func (f *fakeBackend) GetFollowers(context.Context) (*api.FollowList, error) {
	if err := f.record("GetFollowers"); err != nil {
		return nil, err
	}
	return orDefault(f.followers), nil
}

func (f *fakeBackend) GetFollowingFeed(_ context.Context, page api.Page) (*api.PostPage, error) {
	if err := f.recordPage("GetFollowingFeed", page); err != nil {
		return nil, err
	}
	return orDefault(f.posts), nil
}

func (f *fakeBackend) CheckFollowing(_ context.Context, username string) (*api.FollowStatus, error) {
	if err := f.record("CheckFollowing", username); err != nil {
		return nil, err
	}
	return orDefault(f.status), nil
}

func (f *fakeBackend) SearchUsers(_ context.Context, query string) (*api.SearchResult, error) {
	if err := f.record("SearchUsers", query); err != nil {
		return nil, err
	}
	return orDefault(f.search), nil
}

func (f *fakeBackend) GetUserProfile(_ context.Context, username string) (*api.UserProfile, error) {
	if err := f.record("GetUserProfile", username); err != nil {
		return nil, err
	}
	return orDefault(f.user), nil
}

func (f *fakeBackend) GetUserPosts(_ context.Context, username string, page api.Page) (*api.PostPage, error) {
	if err := f.recordPage("GetUserPosts", page, username); err != nil {
		return nil, err
	}
	return orDefault(f.posts), nil
}

func (f *fakeBackend) GetAllUsers(_ context.Context, page api.Page) (*api.UserPage, error) {
	if err := f.recordPage("GetAllUsers", page); err != nil {
		return nil, err
	}
	return orDefault(f.users), nil
}

func (f *fakeBackend) CreateComment(_ context.Context, postID, content string) (*api.Comment, error) {
	if err := f.record("CreateComment", postID, content); err != nil {
		return nil, err
	}
	return orDefault(f.comment), nil
}

func (f *fakeBackend) GetPostComments(_ context.Context, postID string, page api.Page) (*api.CommentPage, error) {
	if err := f.recordPage("GetPostComments", page, postID); err != nil {
		return nil, err
	}
	return orDefault(f.comments), nil
}

func (f *fakeBackend) GetComment(_ context.Context, id string) (*api.Comment, error) {
	if err := f.record("GetComment", id); err != nil {
		return nil, err
	}
	return orDefault(f.comment), nil
}

func (f *fakeBackend) DeleteComment(_ context.Context, id string) (*api.Message, error) {
	if err := f.record("DeleteComment", id); err != nil {
		return nil, err
	}
	return orDefault(f.message), nil
}

// recordingStore is a session.Store that counts writes.
type recordingStore struct {
	mu      sync.Mutex
	id      *session.Identity
	saved   int
	cleared int
}

func (s *recordingStore) SaveIdentity(_ context.Context, id session.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = &id
	s.saved++
	return nil
}

func (s *recordingStore) LoadIdentity(context.Context) (session.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.id == nil {
		return session.Identity{}, session.ErrNoIdentity
	}
	return *s.id, nil
}

func (s *recordingStore) ClearIdentity(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.id = nil
	s.cleared++
	return nil
}
