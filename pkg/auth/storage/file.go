package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/auth/types"
)

// FileStorage keeps credentials in a JSON file readable only by the owner.
type FileStorage struct {
	path string
}

// NewFileStorage creates a new file-based storage.
func NewFileStorage(config *types.StorageConfig, cliName string) (*FileStorage, error) {
	path := config.Path
	if path == "" {
		path = filepath.Join(xdg.ConfigHome, cliName, "auth.json")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create auth directory: %w", err)
	}

	return &FileStorage{
		path: path,
	}, nil
}

// SaveCredentials writes the credentials file atomically.
func (f *FileStorage) SaveCredentials(ctx context.Context, creds *types.Credentials) error {
	if creds == nil {
		return fmt.Errorf("credentials are nil")
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal credentials: %w", err)
	}

	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}
	if err := os.Rename(tmpPath, f.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to save credentials file: %w", err)
	}

	return nil
}

// LoadCredentials reads the credentials file.
func (f *FileStorage) LoadCredentials(ctx context.Context) (*types.Credentials, error) {
	data, err := os.ReadFile(f.path)
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}

	var creds types.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credentials: %w", err)
	}

	return &creds, nil
}

// DeleteCredentials removes the credentials file.
func (f *FileStorage) DeleteCredentials(ctx context.Context) error {
	if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete credentials file: %w", err)
	}
	return nil
}

// GetPath returns the path to the credentials file.
func (f *FileStorage) GetPath() string {
	return f.path
}
