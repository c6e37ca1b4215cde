package tui

import (
	"context"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/commands"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/output"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/parser"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/session"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/theme"
)

// fakeRunner echoes lines into its log. "clear" empties the log and
// "theme" cycles the theme.
type fakeRunner struct {
	mu      sync.Mutex
	sess    *session.Session
	log     *output.Log
	theme   string
	entered []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{
		sess:  session.New(),
		log:   output.NewLog(),
		theme: theme.Terminal,
	}
}

func (f *fakeRunner) Execute(ctx context.Context, raw string) []output.Line {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.entered = append(f.entered, raw)
	_ = f.sess.History().Record(raw)

	switch parser.Tokenize(raw).Name {
	case commands.Clear:
		f.log.Clear()
		return nil
	case commands.Theme:
		f.theme = theme.Next(f.theme).Name
	}
	lines := []output.Line{output.Command(f.sess.Prompt() + " " + raw), output.Response("ok: %s", raw)}
	f.log.Append(lines...)
	return lines
}

func (f *fakeRunner) Session() *session.Session    { return f.sess }
func (f *fakeRunner) Log() *output.Log             { return f.log }
func (f *fakeRunner) Registry() *commands.Registry { return commands.Default() }

func (f *fakeRunner) Theme() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.theme
}

func (f *fakeRunner) Entered() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.entered...)
}

func press(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
	return next.(Model)
}

// submit presses Enter and runs the resulting command until the line
// finishes.
func submit(t *testing.T, m Model) Model {
	t.Helper()
	next, cmd := m.Update(press(tea.KeyEnter))
	m = next.(Model)
	require.NotNil(t, cmd)
	require.True(t, m.Busy())

	msg := findExecuted(t, cmd)
	next, _ = m.Update(msg)
	return next.(Model)
}

func findExecuted(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	switch msg := cmd().(type) {
	case executedMsg:
		return msg
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			if done, ok := c().(executedMsg); ok {
				return done
			}
		}
	}
	t.Fatal("no executed message produced")
	return nil
}

func newModel(t *testing.T, r *fakeRunner) Model {
	t.Helper()
	m := New(context.Background(), r)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(Model)
}

func TestView_Header(t *testing.T) {
	r := newFakeRunner()
	m := newModel(t, r)

	view := m.View()
	assert.Contains(t, view, Title)
	assert.Contains(t, view, "Not authenticated")
	assert.Contains(t, view, "guest@social-terminal:~$")

	require.NoError(t, r.sess.Set(context.Background(), session.Identity{UserID: 1, Username: "alice", Token: "tok"}))
	view = m.View()
	assert.Contains(t, view, "Logged in as: alice")
	assert.Contains(t, view, "alice@social-terminal:~$")
}

func TestSubmit_RunsLine(t *testing.T) {
	r := newFakeRunner()
	m := newModel(t, r)

	m = typeText(t, m, "whoami")
	assert.Equal(t, "whoami", m.Input())

	m = submit(t, m)
	assert.False(t, m.Busy())
	assert.Empty(t, m.Input())
	assert.Equal(t, []string{"whoami"}, r.Entered())
	assert.Contains(t, m.View(), "ok: whoami")
}

func TestSubmit_BlankIgnored(t *testing.T) {
	r := newFakeRunner()
	m := newModel(t, r)

	m = typeText(t, m, "   ")
	next, cmd := m.Update(press(tea.KeyEnter))
	m = next.(Model)

	assert.Nil(t, cmd)
	assert.False(t, m.Busy())
	assert.Empty(t, r.Entered())
}

func TestSubmit_IgnoredWhileBusy(t *testing.T) {
	r := newFakeRunner()
	m := newModel(t, r)

	m = typeText(t, m, "feed")
	next, cmd := m.Update(press(tea.KeyEnter))
	m = next.(Model)
	require.NotNil(t, cmd)
	require.True(t, m.Busy())

	m = typeText(t, m, "users")
	next, second := m.Update(press(tea.KeyEnter))
	m = next.(Model)
	assert.Nil(t, second)
	assert.Equal(t, "users", m.Input())

	next, _ = m.Update(findExecuted(t, cmd))
	m = next.(Model)
	assert.False(t, m.Busy())
	assert.Equal(t, []string{"feed"}, r.Entered())
}

func TestHistoryRecall(t *testing.T) {
	r := newFakeRunner()
	m := newModel(t, r)

	m = submit(t, typeText(t, m, "feed"))
	m = submit(t, typeText(t, m, "users"))

	next, _ := m.Update(press(tea.KeyUp))
	m = next.(Model)
	assert.Equal(t, "users", m.Input())

	next, _ = m.Update(press(tea.KeyUp))
	m = next.(Model)
	assert.Equal(t, "feed", m.Input())

	next, _ = m.Update(press(tea.KeyUp))
	m = next.(Model)
	assert.Equal(t, "feed", m.Input(), "recall stops at the oldest entry")

	next, _ = m.Update(press(tea.KeyDown))
	m = next.(Model)
	assert.Equal(t, "users", m.Input())

	next, _ = m.Update(press(tea.KeyDown))
	m = next.(Model)
	assert.Empty(t, m.Input())
}

func TestTabCompletion(t *testing.T) {
	m := newModel(t, newFakeRunner())

	m = typeText(t, m, "who")
	next, _ := m.Update(press(tea.KeyTab))
	m = next.(Model)
	assert.Equal(t, "whoami ", m.Input())
}

func TestClearEmptiesViewport(t *testing.T) {
	r := newFakeRunner()
	m := newModel(t, r)

	m = submit(t, typeText(t, m, "whoami"))
	require.Contains(t, m.View(), "ok: whoami")

	m = submit(t, typeText(t, m, "clear"))
	assert.NotContains(t, m.View(), "ok: whoami")
}

func TestThemeAppliesImmediately(t *testing.T) {
	r := newFakeRunner()
	m := newModel(t, r)

	m = submit(t, typeText(t, m, "theme"))
	assert.Equal(t, theme.HTB, m.theme().Name)
}

func TestQuit(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		m := newModel(t, newFakeRunner())
		_, cmd := m.Update(press(k))
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestComplete(t *testing.T) {
	names := commands.Default().Names()

	tests := []struct {
		input string
		want  string
	}{
		{"wh", "whoami "},
		{"fo", "follow"},
		{"view-", "view-"},
		{"view-p", "view-post "},
		{"xyz", "xyz"},
		{"post hello", "post hello"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Complete(tt.input, names))
		})
	}
}

func TestRenderLog_UsesTheme(t *testing.T) {
	r := newFakeRunner()
	r.log.Append(output.Error("✗ nope"))
	m := newModel(t, r)

	assert.True(t, strings.Contains(m.renderLog(), "✗ nope"))
}
