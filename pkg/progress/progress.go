package progress

import (
	"fmt"
	"sync"

	"github.com/pterm/pterm"
)

// Spinner implements a spinner progress indicator.
type Spinner struct {
	spinner *pterm.SpinnerPrinter
	config  *Config
	active  bool
	mu      sync.Mutex
}

// NewSpinner creates a new spinner progress indicator.
func NewSpinner(config *Config) *Spinner {
	if config == nil {
		config = DefaultConfig()
	}

	return &Spinner{
		config: config,
	}
}

// Start starts the spinner with a message.
func (s *Spinner) Start(message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.config.Enabled {
		return nil
	}

	if s.active {
		return fmt.Errorf("spinner already active")
	}

	printer := pterm.DefaultSpinner.WithRemoveWhenDone(true)
	if s.config.Writer != nil {
		printer = printer.WithWriter(s.config.Writer)
	}

	var err error
	s.spinner, err = printer.Start(message)
	if err != nil {
		return fmt.Errorf("failed to start spinner: %w", err)
	}

	s.active = true
	return nil
}

// Update updates the spinner message.
func (s *Spinner) Update(message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active || s.spinner == nil {
		return nil
	}

	s.spinner.UpdateText(message)
	return nil
}

// Success marks the spinner as successful.
func (s *Spinner) Success(message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active || s.spinner == nil {
		return nil
	}

	s.spinner.Success(message)
	s.active = false
	return nil
}

// Failure marks the spinner as failed.
func (s *Spinner) Failure(message string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active || s.spinner == nil {
		return nil
	}

	s.spinner.Fail(message)
	s.active = false
	return nil
}

// Stop stops the spinner.
func (s *Spinner) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active || s.spinner == nil {
		return nil
	}

	err := s.spinner.Stop()
	s.active = false
	return err
}

// IsActive returns true if the spinner is active.
func (s *Spinner) IsActive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// Noop is a progress indicator that shows nothing.
type Noop struct {
	mu     sync.Mutex
	active bool
}

// NewNoop creates a silent progress indicator.
func NewNoop() *Noop {
	return &Noop{}
}

// Start marks the indicator active.
func (n *Noop) Start(string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.active = true
	return nil
}

// Update does nothing.
func (n *Noop) Update(string) error { return nil }

// Success marks the indicator inactive.
func (n *Noop) Success(string) error { return n.Stop() }

// Failure marks the indicator inactive.
func (n *Noop) Failure(string) error { return n.Stop() }

// Stop marks the indicator inactive.
func (n *Noop) Stop() error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.active = false
	return nil
}

// IsActive returns true between Start and Stop.
func (n *Noop) IsActive() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.active
}

// New creates the indicator selected by config.
func New(config *Config) Progress {
	if config == nil {
		config = DefaultConfig()
	}
	if !config.Enabled || config.Type == TypeNone {
		return NewNoop()
	}
	return NewSpinner(config)
}
