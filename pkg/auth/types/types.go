// Package types defines the credential types shared by the auth packages.
package types

import (
	"time"
)

// expirySkew treats tokens that are about to expire as already expired.
const expirySkew = 30 * time.Second

// Credentials is a persisted login: the user it belongs to and the bearer
// token issued by the backend.
type Credentials struct {
	// UserID is the backend's numeric user id.
	UserID int64 `json:"user_id"`
	// Username is the login name.
	Username string `json:"username"`
	// Email is the address given at registration, when known.
	Email string `json:"email,omitempty"`
	// Token is the bearer token.
	Token string `json:"token"`
	// ExpiresAt is when the token expires, taken from its exp claim.
	ExpiresAt time.Time `json:"expires_at,omitempty"`
	// SavedAt is when the credentials were written.
	SavedAt time.Time `json:"saved_at,omitempty"`
}

// IsExpired reports whether the token has expired at now. Credentials
// without an expiry never expire.
func (c *Credentials) IsExpired(now time.Time) bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return now.Add(expirySkew).After(c.ExpiresAt)
}

// IsValid returns true if the credentials carry a token that has not expired.
func (c *Credentials) IsValid(now time.Time) bool {
	return c.Token != "" && c.Username != "" && !c.IsExpired(now)
}

// StorageConfig represents credential storage configuration.
type StorageConfig struct {
	// Type is the storage backend type.
	Type StorageType `yaml:"type" json:"type" mapstructure:"type"`
	// Path is the file path for file-based storage.
	Path string `yaml:"path,omitempty" json:"path,omitempty" mapstructure:"path"`
	// KeyringService is the service name for keyring storage.
	KeyringService string `yaml:"keyring_service,omitempty" json:"keyring_service,omitempty" mapstructure:"keyring_service"`
	// KeyringUser is the user name for keyring storage.
	KeyringUser string `yaml:"keyring_user,omitempty" json:"keyring_user,omitempty" mapstructure:"keyring_user"`
}

// StorageType represents the type of credential storage.
type StorageType string

const (
	// StorageTypeFile uses file-based storage.
	StorageTypeFile StorageType = "file"
	// StorageTypeKeyring uses OS keyring storage.
	StorageTypeKeyring StorageType = "keyring"
	// StorageTypeMemory keeps credentials for the life of the process.
	StorageTypeMemory StorageType = "memory"
	// StorageTypeAuto prefers the keyring and falls back to a file.
	StorageTypeAuto StorageType = "auto"
)

// Valid reports whether t is a known storage type.
func (t StorageType) Valid() bool {
	switch t {
	case StorageTypeFile, StorageTypeKeyring, StorageTypeMemory, StorageTypeAuto:
		return true
	}
	return false
}
