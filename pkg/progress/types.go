// Package progress shows activity while a backend call is in flight.
package progress

import (
	"io"
	"os"
)

// Type defines the type of progress indicator.
type Type string

const (
	// TypeSpinner shows a spinner for single operations.
	TypeSpinner Type = "spinner"
	// TypeNone disables progress indicators.
	TypeNone Type = "none"
)

// Progress is the interface for all progress indicators.
type Progress interface {
	// Start starts the progress indicator with a message.
	Start(message string) error

	// Update replaces the progress message.
	Update(message string) error

	// Success marks the progress as successful.
	Success(message string) error

	// Failure marks the progress as failed.
	Failure(message string) error

	// Stop stops the progress indicator.
	Stop() error

	// IsActive returns true if the progress indicator is active.
	IsActive() bool
}

// Config contains configuration for progress indicators.
type Config struct {
	// Type is the type of progress indicator to use.
	Type Type

	// Enabled determines if progress indicators are shown.
	Enabled bool

	// Writer receives the indicator. Defaults to stderr so piped stdout
	// stays clean.
	Writer io.Writer
}

// DefaultConfig returns an enabled spinner on stderr.
func DefaultConfig() *Config {
	return &Config{
		Type:    TypeSpinner,
		Enabled: true,
		Writer:  os.Stderr,
	}
}

// DisabledConfig returns a config that shows nothing.
func DisabledConfig() *Config {
	return &Config{
		Type:    TypeNone,
		Enabled: false,
	}
}
