package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/auth/types"
)

// MemoryStorage keeps credentials for the life of the process.
type MemoryStorage struct {
	mu    sync.RWMutex
	creds *types.Credentials
}

// NewMemoryStorage creates a new in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// SaveCredentials stores a copy of creds.
func (m *MemoryStorage) SaveCredentials(ctx context.Context, creds *types.Credentials) error {
	if creds == nil {
		return fmt.Errorf("credentials are nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c := *creds
	m.creds = &c
	return nil
}

// LoadCredentials returns a copy of the stored credentials.
func (m *MemoryStorage) LoadCredentials(ctx context.Context) (*types.Credentials, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.creds == nil {
		return nil, ErrNotFound
	}

	c := *m.creds
	return &c, nil
}

// DeleteCredentials forgets the stored credentials.
func (m *MemoryStorage) DeleteCredentials(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.creds = nil
	return nil
}
