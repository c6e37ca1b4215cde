package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/auth/storage"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/auth/types"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/session"
)

// Store persists session identities in a credential storage. It implements
// session.Store.
type Store struct {
	storage storage.CredentialStorage
	logger  *slog.Logger
	now     func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger logs storage events to logger.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a Store backed by cs.
func NewStore(cs storage.CredentialStorage, opts ...StoreOption) *Store {
	s := &Store{
		storage: cs,
		logger:  slog.New(slog.DiscardHandler),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ session.Store = (*Store)(nil)

// SaveIdentity writes id with the expiry read from its token.
func (s *Store) SaveIdentity(ctx context.Context, id session.Identity) error {
	creds := &types.Credentials{
		UserID:    id.UserID,
		Username:  id.Username,
		Email:     id.Email,
		Token:     id.Token,
		ExpiresAt: ExpiresAt(id.Token),
		SavedAt:   s.now(),
	}
	if err := s.storage.SaveCredentials(ctx, creds); err != nil {
		return fmt.Errorf("save credentials: %w", err)
	}
	s.logger.Debug("credentials saved", "username", id.Username, "expires_at", creds.ExpiresAt)
	return nil
}

// LoadIdentity returns the saved identity. Expired credentials are deleted
// and reported as session.ErrNoIdentity.
func (s *Store) LoadIdentity(ctx context.Context) (session.Identity, error) {
	creds, err := s.storage.LoadCredentials(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return session.Identity{}, session.ErrNoIdentity
	}
	if err != nil {
		return session.Identity{}, fmt.Errorf("load credentials: %w", err)
	}

	now := s.now()
	if !creds.IsValid(now) || IsExpired(creds.Token, now) {
		s.logger.Info("discarding expired credentials", "username", creds.Username)
		if err := s.storage.DeleteCredentials(ctx); err != nil {
			s.logger.Warn("failed to delete expired credentials", "error", err)
		}
		return session.Identity{}, session.ErrNoIdentity
	}

	return session.Identity{
		UserID:   creds.UserID,
		Username: creds.Username,
		Email:    creds.Email,
		Token:    creds.Token,
	}, nil
}

// ClearIdentity deletes the saved identity.
func (s *Store) ClearIdentity(ctx context.Context) error {
	if err := s.storage.DeleteCredentials(ctx); err != nil {
		return fmt.Errorf("delete credentials: %w", err)
	}
	s.logger.Debug("credentials cleared")
	return nil
}
