package output

import (
	"io"
)

// Formatter writes a batch of lines in one output format.
type Formatter interface {
	// Format writes lines to w.
	Format(w io.Writer, lines []Line, config *FormatConfig) error

	// Name returns the name of the formatter (e.g., "json", "yaml", "text").
	Name() string
}

// FormatConfig contains configuration options for formatting output.
type FormatConfig struct {
	// Colors enables colored output
	Colors bool

	// Pretty enables indentation (for JSON)
	Pretty bool

	// Styles overrides the text formatter's per-category styles.
	Styles map[Category]Styler
}

// Styler colours one line of text.
type Styler interface {
	Sprint(a ...any) string
}

// NewFormatConfig creates a new FormatConfig with sensible defaults.
func NewFormatConfig() *FormatConfig {
	return &FormatConfig{
		Colors: true,
		Pretty: true,
	}
}

// WithColors sets the colors option.
func (c *FormatConfig) WithColors(colors bool) *FormatConfig {
	c.Colors = colors
	return c
}

// WithPretty sets the pretty-printing option.
func (c *FormatConfig) WithPretty(pretty bool) *FormatConfig {
	c.Pretty = pretty
	return c
}

// WithStyle sets the style of one category.
func (c *FormatConfig) WithStyle(cat Category, style Styler) *FormatConfig {
	if c.Styles == nil {
		c.Styles = make(map[Category]Styler)
	}
	c.Styles[cat] = style
	return c
}

// document is the structured shape written by the json and yaml formatters.
type document struct {
	Lines  []Line `json:"lines" yaml:"lines"`
	Errors int    `json:"errors" yaml:"errors"`
}

func newDocument(lines []Line) document {
	doc := document{Lines: lines}
	if doc.Lines == nil {
		doc.Lines = []Line{}
	}
	for _, l := range lines {
		if l.Category == CategoryError {
			doc.Errors++
		}
	}
	return doc
}
