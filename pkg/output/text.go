package output

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// TextFormatter writes one line per Line, coloured by category with pterm.
type TextFormatter struct {
	styles map[Category]Styler
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{
		styles: map[Category]Styler{
			CategoryCommand:  pterm.NewStyle(pterm.FgLightWhite, pterm.Bold),
			CategoryResponse: pterm.NewStyle(pterm.FgDefault),
			CategoryError:    pterm.NewStyle(pterm.FgLightRed),
			CategorySuccess:  pterm.NewStyle(pterm.FgLightGreen),
			CategoryInfo:     pterm.NewStyle(pterm.FgLightCyan),
		},
	}
}

// Name returns the formatter name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format writes the lines as text.
func (f *TextFormatter) Format(w io.Writer, lines []Line, config *FormatConfig) error {
	if config == nil {
		config = NewFormatConfig()
	}

	for _, line := range lines {
		content := line.Content
		if config.Colors && content != "" {
			content = f.style(line.Category, config).Sprint(content)
		}
		if _, err := fmt.Fprintln(w, content); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func (f *TextFormatter) style(cat Category, config *FormatConfig) Styler {
	if s, ok := config.Styles[cat]; ok {
		return s
	}
	if s, ok := f.styles[cat]; ok {
		return s
	}
	return f.styles[CategoryResponse]
}
