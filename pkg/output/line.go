// Package output holds the rendered lines of a terminal session and the
// formatters that write them out.
package output

import (
	"fmt"
	"sync"
)

// Category classifies a line for display.
type Category int

const (
	// CategoryResponse is ordinary command output.
	CategoryResponse Category = iota
	// CategoryCommand echoes the submitted line.
	CategoryCommand
	// CategoryError reports a failure.
	CategoryError
	// CategorySuccess confirms a completed action.
	CategorySuccess
	// CategoryInfo is a hint or progress note.
	CategoryInfo
)

var categoryNames = map[Category]string{
	CategoryResponse: "response",
	CategoryCommand:  "command",
	CategoryError:    "error",
	CategorySuccess:  "success",
	CategoryInfo:     "info",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

// MarshalText encodes the category by name.
func (c Category) MarshalText() ([]byte, error) {
	name, ok := categoryNames[c]
	if !ok {
		return nil, fmt.Errorf("unknown category %d", int(c))
	}
	return []byte(name), nil
}

// UnmarshalText decodes a category name.
func (c *Category) UnmarshalText(text []byte) error {
	for cat, name := range categoryNames {
		if name == string(text) {
			*c = cat
			return nil
		}
	}
	return fmt.Errorf("unknown category %q", string(text))
}

// Line is one rendered line of output.
type Line struct {
	Content  string   `json:"content" yaml:"content"`
	Category Category `json:"category" yaml:"category"`
}

// Response returns a response line.
func Response(format string, args ...any) Line {
	return newLine(CategoryResponse, format, args...)
}

// Command returns a command echo line.
func Command(content string) Line {
	return Line{Content: content, Category: CategoryCommand}
}

// Error returns an error line.
func Error(format string, args ...any) Line {
	return newLine(CategoryError, format, args...)
}

// Success returns a success line.
func Success(format string, args ...any) Line {
	return newLine(CategorySuccess, format, args...)
}

// Info returns an info line.
func Info(format string, args ...any) Line {
	return newLine(CategoryInfo, format, args...)
}

func newLine(cat Category, format string, args ...any) Line {
	content := format
	if len(args) > 0 {
		content = fmt.Sprintf(format, args...)
	}
	return Line{Content: content, Category: cat}
}

// HasErrors reports whether any line is an error.
func HasErrors(lines []Line) bool {
	for _, l := range lines {
		if l.Category == CategoryError {
			return true
		}
	}
	return false
}

// Log is the append-only sequence of lines shown by a display. Clear is
// the only operation that removes lines.
type Log struct {
	mu    sync.RWMutex
	lines []Line
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{}
}

// Append adds lines at the end.
func (l *Log) Append(lines ...Line) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, lines...)
}

// Lines returns a copy of every line.
func (l *Log) Lines() []Line {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Line, len(l.lines))
	copy(out, l.lines)
	return out
}

// Len returns the number of lines.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.lines)
}

// Clear removes every line.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = nil
}
