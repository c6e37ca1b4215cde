// Package state persists small pieces of client state between runs: the
// selected theme, the last user seen and the command history.
//
// All files live under the XDG state directory and are written atomically
// through a temporary file and rename.
//
//   - Linux: ~/.local/state/bloodline/state.yaml
//   - macOS: ~/Library/Application Support/bloodline/state.yaml
//   - Windows: %LOCALAPPDATA%\bloodline\state\state.yaml
package state

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Manager loads and saves the state file.
type Manager struct {
	statePath string
	state     *State
	mu        sync.RWMutex
}

// State is the content of state.yaml.
type State struct {
	// Theme is the last selected color theme.
	Theme string `yaml:"theme,omitempty" json:"theme,omitempty"`

	// LastUsername is the most recent user to log in on this machine.
	LastUsername string `yaml:"last_username,omitempty" json:"last_username,omitempty"`

	// Session data
	Session *Session `yaml:"session,omitempty" json:"session,omitempty"`

	LastModified time.Time `yaml:"last_modified,omitempty" json:"last_modified,omitempty"`
}

// Session records the last command of the previous run.
type Session struct {
	LastCommand     string    `yaml:"last_command,omitempty" json:"last_command,omitempty"`
	LastCommandTime time.Time `yaml:"last_command_time,omitempty" json:"last_command_time,omitempty"`
}

// NewManager creates a state manager for cliName under the XDG state home.
func NewManager(cliName string) (*Manager, error) {
	return NewManagerAt(getStatePath(cliName))
}

// NewManagerAt creates a state manager backed by path.
func NewManagerAt(path string) (*Manager, error) {
	m := &Manager{
		statePath: path,
		state:     newDefaultState(),
	}

	if err := m.Load(); err != nil {
		// A missing file is created on first save.
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load state: %w", err)
		}
	}

	return m, nil
}

func newDefaultState() *State {
	return &State{
		Session:      &Session{},
		LastModified: time.Now(),
	}
}

// Load loads state from disk.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	data, err := os.ReadFile(m.statePath)
	if err != nil {
		return err
	}

	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("failed to parse state file: %w", err)
	}
	if state.Session == nil {
		state.Session = &Session{}
	}

	m.state = &state
	return nil
}

// Save saves state to disk.
func (m *Manager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(m.statePath), 0700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	m.state.LastModified = time.Now()

	data, err := yaml.Marshal(m.state)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	return writeAtomic(m.statePath, data)
}

// Theme returns the saved theme name, or "" when none was chosen.
func (m *Manager) Theme() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.Theme
}

// SetTheme records the theme and saves the file.
func (m *Manager) SetTheme(name string) error {
	m.mu.Lock()
	m.state.Theme = name
	m.mu.Unlock()
	return m.Save()
}

// LastUsername returns the most recent user to log in.
func (m *Manager) LastUsername() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state.LastUsername
}

// SetLastUsername records the most recent user and saves the file.
func (m *Manager) SetLastUsername(name string) error {
	m.mu.Lock()
	m.state.LastUsername = name
	m.mu.Unlock()
	return m.Save()
}

// SetSessionCommand sets the last command in the session.
func (m *Manager) SetSessionCommand(command string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Session.LastCommand = command
	m.state.Session.LastCommandTime = time.Now()
}

// GetSession returns the current session.
func (m *Manager) GetSession() *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s := *m.state.Session
	return &s
}

// GetStatePath returns the path to the state file.
func (m *Manager) GetStatePath() string {
	return m.statePath
}

// Reset resets the state to defaults.
func (m *Manager) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = newDefaultState()
	return nil
}

// GetState returns a copy of the current state.
func (m *Manager) GetState() *State {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stateCopy := *m.state
	return &stateCopy
}

// getStatePath returns the path to the state file.
func getStatePath(cliName string) string {
	return filepath.Join(xdg.StateHome, cliName, "state.yaml")
}

// writeAtomic writes data next to path and renames it into place.
func writeAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to save %s: %w", filepath.Base(path), err)
	}

	return nil
}
