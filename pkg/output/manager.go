package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// DefaultFormat is used when no format is selected.
const DefaultFormat = "text"

// Manager manages output formatting and provides high-level formatting methods.
type Manager struct {
	formatters    map[string]Formatter
	defaultFormat string
	config        *FormatConfig
}

// NewManager creates a new output manager with the text, json and yaml
// formatters.
func NewManager() *Manager {
	m := &Manager{
		formatters:    make(map[string]Formatter),
		defaultFormat: DefaultFormat,
		config:        NewFormatConfig(),
	}

	m.RegisterFormatter(NewTextFormatter())
	m.RegisterFormatter(NewJSONFormatter())
	m.RegisterFormatter(NewYAMLFormatter())

	return m
}

// RegisterFormatter registers a new formatter.
func (m *Manager) RegisterFormatter(formatter Formatter) {
	m.formatters[formatter.Name()] = formatter
}

// GetFormatter returns a formatter by name.
func (m *Manager) GetFormatter(name string) (Formatter, error) {
	formatter, ok := m.formatters[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("formatter '%s' not found", name)
	}
	return formatter, nil
}

// Formats returns the registered format names, sorted.
func (m *Manager) Formats() []string {
	names := make([]string, 0, len(m.formatters))
	for name := range m.formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetDefaultFormat sets the default output format.
func (m *Manager) SetDefaultFormat(format string) {
	m.defaultFormat = format
}

// SetConfig sets the format configuration.
func (m *Manager) SetConfig(config *FormatConfig) {
	m.config = config
}

// GetConfig returns the current format configuration.
func (m *Manager) GetConfig() *FormatConfig {
	return m.config
}

// Format writes lines using the named format, or the default when format
// is empty.
func (m *Manager) Format(w io.Writer, lines []Line, format string) error {
	if format == "" {
		format = m.defaultFormat
	}

	formatter, err := m.GetFormatter(format)
	if err != nil {
		return err
	}

	return formatter.Format(w, lines, m.config)
}
