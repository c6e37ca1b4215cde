package progress

import (
	"fmt"
	"sync"
)

// Manager hands out one progress indicator at a time.
type Manager struct {
	config          *Config
	currentProgress Progress
	mu              sync.Mutex
}

// NewManager creates a new progress manager.
func NewManager(config *Config) *Manager {
	if config == nil {
		config = DefaultConfig()
	}

	return &Manager{
		config: config,
	}
}

// StartProgress starts a progress indicator based on configuration.
func (m *Manager) StartProgress(message string) (Progress, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.currentProgress != nil && m.currentProgress.IsActive() {
		return nil, fmt.Errorf("progress already active")
	}

	progress := New(m.config)
	if err := progress.Start(message); err != nil {
		return nil, fmt.Errorf("failed to start progress: %w", err)
	}

	m.currentProgress = progress
	return progress, nil
}

// Stop stops the current indicator, if any.
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.currentProgress == nil {
		return nil
	}
	err := m.currentProgress.Stop()
	m.currentProgress = nil
	return err
}

// Enabled reports whether indicators are shown.
func (m *Manager) Enabled() bool {
	return m.config.Enabled && m.config.Type != TypeNone
}
