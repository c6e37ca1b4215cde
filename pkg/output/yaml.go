package output

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats output as YAML.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Name returns the formatter name.
func (f *YAMLFormatter) Name() string {
	return "yaml"
}

// Format writes the lines as one YAML document.
func (f *YAMLFormatter) Format(w io.Writer, lines []Line, _ *FormatConfig) error {
	encoder := yaml.NewEncoder(w)
	defer func() { _ = encoder.Close() }()

	encoder.SetIndent(2)

	if err := encoder.Encode(newDocument(lines)); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return nil
}
