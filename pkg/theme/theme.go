// Package theme defines the colour schemes of the terminal.
package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/output"
)

// Names of the built-in themes, in cycling order.
const (
	Terminal = "terminal"
	HTB      = "htb"
	GitHub   = "github"
)

// Default is the theme used when none is configured.
const Default = Terminal

// Theme is a named palette.
type Theme struct {
	Name        string
	DisplayName string
	Description string

	Background lipgloss.Color
	Foreground lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
	Info       lipgloss.Color
}

var themes = []Theme{
	{
		Name:        Terminal,
		DisplayName: "Classic Terminal",
		Description: "Classic green terminal",
		Background:  lipgloss.Color("#000000"),
		Foreground:  lipgloss.Color("#00ff00"),
		Accent:      lipgloss.Color("#00ff00"),
		Muted:       lipgloss.Color("#008f00"),
		Error:       lipgloss.Color("#ff3333"),
		Success:     lipgloss.Color("#33ff66"),
		Info:        lipgloss.Color("#00ccff"),
	},
	{
		Name:        HTB,
		DisplayName: "Hack The Box",
		Description: "Hack The Box style",
		Background:  lipgloss.Color("#141d2b"),
		Foreground:  lipgloss.Color("#a4b1cd"),
		Accent:      lipgloss.Color("#9fef00"),
		Muted:       lipgloss.Color("#5a6a85"),
		Error:       lipgloss.Color("#ff3e3e"),
		Success:     lipgloss.Color("#9fef00"),
		Info:        lipgloss.Color("#2ee7b6"),
	},
	{
		Name:        GitHub,
		DisplayName: "GitHub Dark",
		Description: "GitHub Dark theme",
		Background:  lipgloss.Color("#0d1117"),
		Foreground:  lipgloss.Color("#c9d1d9"),
		Accent:      lipgloss.Color("#58a6ff"),
		Muted:       lipgloss.Color("#8b949e"),
		Error:       lipgloss.Color("#f85149"),
		Success:     lipgloss.Color("#3fb950"),
		Info:        lipgloss.Color("#79c0ff"),
	},
}

// All returns the built-in themes in cycling order.
func All() []Theme {
	out := make([]Theme, len(themes))
	copy(out, themes)
	return out
}

// Lookup returns the theme called name.
func Lookup(name string) (Theme, bool) {
	for _, t := range themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

// Get returns the theme called name, or the default theme.
func Get(name string) Theme {
	if t, ok := Lookup(name); ok {
		return t
	}
	t, _ := Lookup(Default)
	return t
}

// Next returns the theme after name, wrapping around. Unknown names start
// the cycle from the first theme.
func Next(name string) Theme {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}

// Style returns the style of lines in cat.
func (t Theme) Style(cat output.Category) lipgloss.Style {
	s := lipgloss.NewStyle()
	switch cat {
	case output.CategoryCommand:
		return s.Foreground(t.Accent).Bold(true)
	case output.CategoryError:
		return s.Foreground(t.Error)
	case output.CategorySuccess:
		return s.Foreground(t.Success)
	case output.CategoryInfo:
		return s.Foreground(t.Info)
	default:
		return s.Foreground(t.Foreground)
	}
}

// Header returns the style of the title bar.
func (t Theme) Header() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(t.Muted)
}

// Status returns the style of the authentication status line.
func (t Theme) Status() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Muted)
}

// Prompt returns the style of the input prompt.
func (t Theme) Prompt() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
}

// FormatConfig returns an output format config that colours lines with
// this theme.
func (t Theme) FormatConfig(colors bool) *output.FormatConfig {
	cfg := output.NewFormatConfig().WithColors(colors)
	for _, cat := range []output.Category{
		output.CategoryResponse,
		output.CategoryCommand,
		output.CategoryError,
		output.CategorySuccess,
		output.CategoryInfo,
	} {
		cfg.WithStyle(cat, styler{t.Style(cat)})
	}
	return cfg
}

// styler adapts a lipgloss style to output.Styler.
type styler struct {
	style lipgloss.Style
}

func (s styler) Sprint(a ...any) string {
	return s.style.Render(fmt.Sprint(a...))
}
