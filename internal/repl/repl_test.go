package repl

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/output"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/session"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/theme"
)

type fakeRunner struct {
	sess    *session.Session
	entered []string
}

func (f *fakeRunner) Execute(_ context.Context, raw string) []output.Line {
	f.entered = append(f.entered, raw)
	if raw == "boom" {
		return []output.Line{output.Command("$ boom"), output.Error("Command not found: boom")}
	}
	return []output.Line{output.Command("$ " + raw), output.Response("ran %s", raw)}
}

func (f *fakeRunner) Session() *session.Session { return f.sess }
func (f *fakeRunner) Theme() string             { return theme.GitHub }

func run(t *testing.T, input string, opts ...Option) (*fakeRunner, string) {
	t.Helper()
	runner := &fakeRunner{sess: session.New()}
	out := &bytes.Buffer{}
	opts = append([]Option{WithInput(strings.NewReader(input)), WithOutput(out), WithColors(false)}, opts...)

	require.NoError(t, New(runner, opts...).Run(context.Background()))
	return runner, out.String()
}

func TestRun_ExecutesUntilEOF(t *testing.T) {
	runner, out := run(t, "feed\n\n  \nboom\nusers")

	assert.Equal(t, []string{"feed", "boom", "users"}, runner.entered)
	assert.Contains(t, out, "guest@social-terminal:~$ ")
	assert.Contains(t, out, "ran feed\n")
	assert.Contains(t, out, "Command not found: boom\n")
	assert.Contains(t, out, "ran users\n")
	assert.NotContains(t, out, "$ feed", "echo lines are hidden by default")
}

func TestRun_ExitAndQuit(t *testing.T) {
	for _, word := range []string{"exit", "quit", "  exit  "} {
		runner, out := run(t, "feed\n"+word+"\nusers\n")

		assert.Equal(t, []string{"feed"}, runner.entered)
		assert.Contains(t, out, "Session ended")
	}
}

func TestRun_Echo(t *testing.T) {
	_, out := run(t, "feed\n", WithEcho(true))
	assert.Contains(t, out, "$ feed\n")
}

func TestRun_StopsOnCancelledContext(t *testing.T) {
	runner := &fakeRunner{sess: session.New()}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(runner, WithInput(strings.NewReader("feed\n")), WithOutput(&bytes.Buffer{})).Run(ctx)
	require.NoError(t, err)
	assert.Empty(t, runner.entered)
}

func TestRun_PromptFollowsSession(t *testing.T) {
	runner := &fakeRunner{sess: session.New()}
	require.NoError(t, runner.sess.Set(context.Background(), session.Identity{UserID: 1, Username: "neo", Token: "t"}))
	out := &bytes.Buffer{}

	require.NoError(t, New(runner, WithInput(strings.NewReader("")), WithOutput(out), WithColors(false)).Run(context.Background()))
	assert.True(t, strings.HasPrefix(out.String(), "neo@social-terminal:~$ "))
}

func TestPrint_Colors(t *testing.T) {
	runner := &fakeRunner{sess: session.New()}
	out := &bytes.Buffer{}
	p := New(runner, WithOutput(out), WithColors(true))

	require.NoError(t, p.Print([]output.Line{output.Success("✓ done")}))
	assert.Contains(t, out.String(), "✓ done")
}
