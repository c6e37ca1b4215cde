// Package tui is the full-screen terminal: a title bar, a scrolling view of
// the output log and an input line that submits to the executor.
package tui

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/commands"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/output"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/session"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/theme"
)

// Title is shown in the header bar.
const Title = "CYBER BLOODLINE v1.0"

// Header, status and input rows around the viewport.
const chromeHeight = 4

// Runner executes command lines. *executor.Executor implements it.
type Runner interface {
	Execute(ctx context.Context, raw string) []output.Line
	Session() *session.Session
	Log() *output.Log
	Registry() *commands.Registry
	Theme() string
}

// executedMsg reports that a submitted line finished.
type executedMsg struct {
	raw      string
	lines    int
	duration time.Duration
}

// Model is the Bubble Tea model of the terminal.
type Model struct {
	ctx    context.Context
	runner Runner
	logger *slog.Logger
	keys   KeyMap

	input    textinput.Model
	viewport viewport.Model
	spinner  spinner.Model

	busy   bool
	width  int
	height int
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Model) {
		m.logger = logger
	}
}

// WithKeyMap replaces the default key bindings.
func WithKeyMap(keys KeyMap) Option {
	return func(m *Model) {
		m.keys = keys
	}
}

// New creates the terminal model. Commands run with ctx.
func New(ctx context.Context, runner Runner, opts ...Option) Model {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 2000
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:      ctx,
		runner:   runner,
		keys:     DefaultKeyMap,
		input:    ti,
		viewport: viewport.New(80, 20),
		spinner:  sp,
	}
	for _, opt := range opts {
		opt(&m)
	}
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	m.refresh()
	return m
}

// Busy reports whether a submitted line is still running.
func (m Model) Busy() bool {
	return m.busy
}

// Input returns the text on the input line.
func (m Model) Input() string {
	return m.input.Value()
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses, window resizes and finished commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-chromeHeight)
		m.input.Width = max(1, msg.Width-lipgloss.Width(m.prompt())-1)
		m.refresh()
		return m, nil

	case executedMsg:
		m.busy = false
		m.logger.Debug("line finished", "lines", msg.lines, "duration", msg.duration)
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Submit):
		if m.busy {
			return m, nil
		}
		raw := m.input.Value()
		m.input.Reset()
		if strings.TrimSpace(raw) == "" {
			return m, nil
		}
		m.busy = true
		return m, tea.Batch(m.spinner.Tick, m.execute(raw))

	case key.Matches(msg, m.keys.Previous):
		if entry, ok := m.runner.Session().History().RecallPrevious(); ok {
			m.setInput(entry)
		}
		return m, nil

	case key.Matches(msg, m.keys.Next):
		if entry, ok := m.runner.Session().History().RecallNext(); ok {
			m.setInput(entry)
		}
		return m, nil

	case key.Matches(msg, m.keys.Complete):
		m.setInput(Complete(m.input.Value(), m.runner.Registry().Names()))
		return m, nil

	case key.Matches(msg, m.keys.PageUp):
		m.viewport.LineUp(max(1, m.viewport.Height-1))
		return m, nil

	case key.Matches(msg, m.keys.PageDown):
		m.viewport.LineDown(max(1, m.viewport.Height-1))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) setInput(value string) {
	m.input.SetValue(value)
	m.input.CursorEnd()
}

// execute runs raw off the update loop.
func (m Model) execute(raw string) tea.Cmd {
	ctx, runner := m.ctx, m.runner
	return func() tea.Msg {
		start := time.Now()
		lines := runner.Execute(ctx, raw)
		return executedMsg{raw: raw, lines: len(lines), duration: time.Since(start)}
	}
}

// refresh redraws the log into the viewport and scrolls to the end.
func (m *Model) refresh() {
	m.viewport.SetContent(m.renderLog())
	m.viewport.GotoBottom()
}

func (m Model) theme() theme.Theme {
	return theme.Get(m.runner.Theme())
}

func (m Model) renderLog() string {
	t := m.theme()
	lines := m.runner.Log().Lines()
	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		style := t.Style(line.Category)
		if m.viewport.Width > 0 {
			style = style.MaxWidth(m.viewport.Width)
		}
		rendered = append(rendered, style.Render(line.Content))
	}
	return strings.Join(rendered, "\n")
}

func (m Model) prompt() string {
	return m.runner.Session().Prompt()
}

// View renders the whole screen.
func (m Model) View() string {
	t := m.theme()

	status := "Not authenticated"
	if name := m.runner.Session().Username(); name != "" {
		status = "Logged in as: " + name
	}

	var in string
	if m.busy {
		in = m.spinner.View() + " " + t.Status().Render("running…")
	} else {
		in = t.Prompt().Render(m.prompt()) + " " + m.input.View()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		t.Header().Render(Title),
		t.Status().Render(status),
		m.viewport.View(),
		in,
	)
}

// Complete extends a command name being typed. A unique match is completed
// with a trailing space; several matches are extended to their common
// prefix. Input that already has arguments is left alone.
func Complete(input string, names []string) string {
	prefix := strings.TrimLeft(input, " ")
	if prefix == "" || strings.ContainsAny(prefix, " \t") {
		return input
	}

	var matches []string
	for _, name := range names {
		if strings.HasPrefix(name, prefix) {
			matches = append(matches, name)
		}
	}

	switch len(matches) {
	case 0:
		return input
	case 1:
		return matches[0] + " "
	}

	common := matches[0]
	for _, name := range matches[1:] {
		for !strings.HasPrefix(name, common) {
			common = common[:len(common)-1]
		}
	}
	return common
}
