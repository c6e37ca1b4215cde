// Package storage persists login credentials between runs.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/auth/types"
)

// ErrNotFound is returned when no credentials are stored.
var ErrNotFound = errors.New("credentials not found")

// CredentialStorage stores one set of credentials.
type CredentialStorage interface {
	// SaveCredentials stores creds, replacing what was there.
	SaveCredentials(ctx context.Context, creds *types.Credentials) error
	// LoadCredentials returns the stored credentials or ErrNotFound.
	LoadCredentials(ctx context.Context) (*types.Credentials, error)
	// DeleteCredentials removes stored credentials. Deleting nothing is not an error.
	DeleteCredentials(ctx context.Context) error
}

// Factory creates credential storage instances based on configuration.
type Factory struct{}

// NewFactory creates a new storage factory.
func NewFactory() *Factory {
	return &Factory{}
}

// Create creates a storage instance based on the configuration.
func (f *Factory) Create(config *types.StorageConfig, cliName string) (CredentialStorage, error) {
	if config == nil {
		return nil, fmt.Errorf("storage config is required")
	}

	switch config.Type {
	case types.StorageTypeFile:
		return NewFileStorage(config, cliName)
	case types.StorageTypeKeyring:
		return NewKeyringStorage(withKeyringDefaults(config, cliName))
	case types.StorageTypeMemory:
		return NewMemoryStorage(), nil
	case types.StorageTypeAuto, "":
		keyring, err := NewKeyringStorage(withKeyringDefaults(config, cliName))
		if err != nil {
			return nil, err
		}
		file, err := NewFileStorage(config, cliName)
		if err != nil {
			return nil, err
		}
		return NewMultiStorage(keyring, file), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", config.Type)
	}
}

func withKeyringDefaults(config *types.StorageConfig, cliName string) *types.StorageConfig {
	c := *config
	if c.KeyringService == "" {
		c.KeyringService = cliName
	}
	return &c
}

// MultiStorage tries each storage in order. Saves succeed if any storage
// accepts the credentials; loads return the first hit.
type MultiStorage struct {
	storages []CredentialStorage
}

// NewMultiStorage creates a new multi-tier storage.
func NewMultiStorage(storages ...CredentialStorage) *MultiStorage {
	return &MultiStorage{
		storages: storages,
	}
}

// SaveCredentials saves to the first storage that accepts them. Later
// storages are cleared so a stale copy cannot shadow the new one.
func (m *MultiStorage) SaveCredentials(ctx context.Context, creds *types.Credentials) error {
	var errs []error
	for i, s := range m.storages {
		if err := s.SaveCredentials(ctx, creds); err != nil {
			errs = append(errs, err)
			continue
		}
		for _, rest := range m.storages[i+1:] {
			_ = rest.DeleteCredentials(ctx)
		}
		return nil
	}
	if len(errs) == 0 {
		return fmt.Errorf("no credential storage configured")
	}
	return errors.Join(errs...)
}

// LoadCredentials loads from the first storage holding credentials.
func (m *MultiStorage) LoadCredentials(ctx context.Context) (*types.Credentials, error) {
	for _, s := range m.storages {
		creds, err := s.LoadCredentials(ctx)
		if err == nil && creds != nil {
			return creds, nil
		}
	}
	return nil, ErrNotFound
}

// DeleteCredentials deletes from every storage.
func (m *MultiStorage) DeleteCredentials(ctx context.Context) error {
	var errs []error
	for _, s := range m.storages {
		if err := s.DeleteCredentials(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
