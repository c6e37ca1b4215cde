// Package session holds the state of one interactive terminal session: who
// is logged in and which lines have been entered.
//
// A Session moves between two states. It starts Anonymous (or Authenticated
// when a persisted identity is restored), becomes Authenticated after a
// successful login or register, and returns to Anonymous on logout or when
// the backend rejects the stored credentials.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Identity is the authenticated user and the token sent to the backend.
type Identity struct {
	UserID   int64  `json:"user_id" yaml:"user_id"`
	Username string `json:"username" yaml:"username"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
	Token    string `json:"-" yaml:"-"`
}

// ErrNoIdentity is returned by a Store that has nothing saved.
var ErrNoIdentity = errors.New("no saved identity")

// Store persists the identity between runs.
type Store interface {
	SaveIdentity(ctx context.Context, id Identity) error
	LoadIdentity(ctx context.Context) (Identity, error)
	ClearIdentity(ctx context.Context) error
}

// Session is the identity plus command history of one terminal.
type Session struct {
	mu       sync.RWMutex
	identity *Identity
	history  *History
	store    Store
}

// Option configures a Session.
type Option func(*Session)

// WithStore persists identity changes through store.
func WithStore(store Store) Option {
	return func(s *Session) {
		s.store = store
	}
}

// WithHistory uses h instead of a fresh in-memory history.
func WithHistory(h *History) Option {
	return func(s *Session) {
		s.history = h
	}
}

// New creates an anonymous session.
func New(opts ...Option) *Session {
	s := &Session{}
	for _, opt := range opts {
		opt(s)
	}
	if s.history == nil {
		s.history = NewHistory()
	}
	return s
}

// Current returns the identity, if any.
func (s *Session) Current() (Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return Identity{}, false
	}
	return *s.identity, true
}

// Authenticated reports whether an identity is set.
func (s *Session) Authenticated() bool {
	_, ok := s.Current()
	return ok
}

// Token returns the bearer token, or "" when anonymous.
func (s *Session) Token() string {
	id, ok := s.Current()
	if !ok {
		return ""
	}
	return id.Token
}

// Username returns the logged-in username, or "" when anonymous.
func (s *Session) Username() string {
	id, _ := s.Current()
	return id.Username
}

// Set makes id the current identity. The identity is set even if persisting
// it fails; the error is returned for logging.
func (s *Session) Set(ctx context.Context, id Identity) error {
	s.mu.Lock()
	s.identity = &id
	store := s.store
	s.mu.Unlock()

	if store == nil {
		return nil
	}
	if err := store.SaveIdentity(ctx, id); err != nil {
		return fmt.Errorf("failed to save identity: %w", err)
	}
	return nil
}

// Clear drops the current identity and its persisted copy.
func (s *Session) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.identity = nil
	store := s.store
	s.mu.Unlock()

	if store == nil {
		return nil
	}
	if err := store.ClearIdentity(ctx); err != nil {
		return fmt.Errorf("failed to clear identity: %w", err)
	}
	return nil
}

// Restore loads a persisted identity. It reports false when nothing usable
// was saved.
func (s *Session) Restore(ctx context.Context) (Identity, bool, error) {
	if s.store == nil {
		return Identity{}, false, nil
	}

	id, err := s.store.LoadIdentity(ctx)
	if errors.Is(err, ErrNoIdentity) {
		return Identity{}, false, nil
	}
	if err != nil {
		return Identity{}, false, fmt.Errorf("failed to restore identity: %w", err)
	}
	if id.Token == "" || id.Username == "" {
		return Identity{}, false, nil
	}

	s.mu.Lock()
	s.identity = &id
	s.mu.Unlock()
	return id, true, nil
}

// History returns the command history.
func (s *Session) History() *History {
	return s.history
}

// Prompt returns the shell prompt for the current identity.
func (s *Session) Prompt() string {
	name := s.Username()
	if name == "" {
		name = "guest"
	}
	return name + "@social-terminal:~$"
}
