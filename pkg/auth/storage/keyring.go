package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/auth/types"
	"github.com/zalando/go-keyring"
)

// KeyringStorage keeps credentials in the OS keyring.
type KeyringStorage struct {
	service string
	user    string
}

// NewKeyringStorage creates a new keyring-based storage.
func NewKeyringStorage(config *types.StorageConfig) (*KeyringStorage, error) {
	service := config.KeyringService
	if service == "" {
		return nil, fmt.Errorf("keyring_service is required for keyring storage")
	}

	user := config.KeyringUser
	if user == "" {
		user = "default"
	}

	return &KeyringStorage{
		service: service,
		user:    user,
	}, nil
}

// SaveCredentials stores the credentials as one JSON secret.
func (k *KeyringStorage) SaveCredentials(ctx context.Context, creds *types.Credentials) error {
	if creds == nil {
		return fmt.Errorf("credentials are nil")
	}

	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	if err := keyring.Set(k.service, k.user, string(data)); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}

	return nil
}

// LoadCredentials reads the credentials from the keyring.
func (k *KeyringStorage) LoadCredentials(ctx context.Context) (*types.Credentials, error) {
	data, err := keyring.Get(k.service, k.user)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve credentials from keyring: %w", err)
	}

	var creds types.Credentials
	if err := json.Unmarshal([]byte(data), &creds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credentials: %w", err)
	}

	return &creds, nil
}

// DeleteCredentials removes the credentials from the keyring.
func (k *KeyringStorage) DeleteCredentials(ctx context.Context) error {
	if err := keyring.Delete(k.service, k.user); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// GetService returns the keyring service name.
func (k *KeyringStorage) GetService() string {
	return k.service
}

// GetUser returns the keyring user name.
func (k *KeyringStorage) GetUser() string {
	return k.user
}
