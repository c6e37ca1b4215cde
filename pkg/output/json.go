package output

import (
	"encoding/json"
	"fmt"
	"io"
)

// JSONFormatter formats output as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Name returns the formatter name.
func (f *JSONFormatter) Name() string {
	return "json"
}

// Format writes the lines as one JSON document.
func (f *JSONFormatter) Format(w io.Writer, lines []Line, config *FormatConfig) error {
	if config == nil {
		config = NewFormatConfig()
	}

	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	if config.Pretty {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(newDocument(lines)); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
