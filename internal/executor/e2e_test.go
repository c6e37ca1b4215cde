package executor_test

import (
	"context"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/n0m3l4c000nt35/cyber-bloodline/internal/devserver"
	"github.com/n0m3l4c000nt35/cyber-bloodline/internal/executor"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/api"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/output"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/session"
)

// terminal is one client session talking to a shared dev server.
type terminal struct {
	t    *testing.T
	sess *session.Session
	exec *executor.Executor
}

func newTerminal(t *testing.T, ts *httptest.Server) *terminal {
	t.Helper()
	sess := session.New()
	client, err := api.NewClient(api.Config{
		BaseURL: ts.URL + "/api",
		Tokens:  sess.Token,
	})
	require.NoError(t, err)

	exec, err := executor.New(client, sess, executor.WithLocation(time.UTC))
	require.NoError(t, err)
	return &terminal{t: t, sess: sess, exec: exec}
}

func (term *terminal) run(line string) []output.Line {
	term.t.Helper()
	return term.exec.Execute(context.Background(), line)
}

func hasLine(lines []output.Line, content string) bool {
	for _, l := range lines {
		if l.Content == content {
			return true
		}
	}
	return false
}

func TestEndToEnd(t *testing.T) {
	srv, err := devserver.New(context.Background(), devserver.Config{BcryptCost: bcrypt.MinCost})
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	alice := newTerminal(t, ts)
	bob := newTerminal(t, ts)

	out := alice.run("register --username alice --email alice@example.com --password password1")
	assert.True(t, hasLine(out, "✓ Welcome, alice!"))
	assert.True(t, alice.sess.Authenticated())
	assert.Equal(t, "alice@social-terminal:~$", alice.sess.Prompt())

	out = bob.run("register --username bob --email bob@example.com --password short")
	assert.True(t, hasLine(out, "✗ Password must be at least 8 characters long"))
	assert.False(t, bob.sess.Authenticated())

	bob.run("register --username bob --email bob@example.com --password password1")
	require.True(t, bob.sess.Authenticated())

	out = bob.run(`post "hello from bob"`)
	assert.True(t, hasLine(out, "✓ Post created successfully!"))

	out = alice.run("follow @bob")
	assert.True(t, hasLine(out, "✓ You are now following bob"))

	out = alice.run("is-following bob")
	assert.True(t, hasLine(out, "✓ You are following @bob"))

	out = alice.run("my-feed")
	assert.True(t, hasLine(out, "    hello from bob"), "feed: %v", out)

	out = alice.run(`comment 1 "nice post"`)
	assert.Empty(t, errorLinesOf(out))

	out = bob.run("delete-comment 1")
	assert.True(t, hasLine(out, "✗ You can only delete your own comments"))

	out = alice.run("delete-post 1")
	assert.True(t, hasLine(out, "✗ You can only delete your own posts"))
	assert.True(t, alice.sess.Authenticated(), "a forbidden action is not an auth failure")

	out = alice.run("logout")
	assert.True(t, hasLine(out, "Goodbye, alice!"))
	assert.Equal(t, "guest@social-terminal:~$", alice.sess.Prompt())

	out = alice.run("login --username alice --password wrongpass1")
	assert.True(t, hasLine(out, "✗ Invalid username or password"))

	out = alice.run("login --username alice --password password1")
	assert.True(t, hasLine(out, "✓ Welcome back, alice!"))
}

func TestEndToEnd_ExpiredTokenLogsOut(t *testing.T) {
	var offset atomic.Int64
	clock := func() time.Time { return time.Now().Add(time.Duration(offset.Load())) }

	srv, err := devserver.New(context.Background(), devserver.Config{
		BcryptCost: bcrypt.MinCost,
		TokenTTL:   time.Minute,
		Clock:      clock,
	})
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	term := newTerminal(t, ts)
	term.run("register --username carol --email carol@example.com --password password1")
	require.True(t, term.sess.Authenticated())

	offset.Store(int64(time.Hour))

	out := term.run("profile")
	assert.True(t, hasLine(out, "✗ Invalid or expired token"))
	assert.False(t, term.sess.Authenticated())
}

func errorLinesOf(lines []output.Line) []output.Line {
	var errs []output.Line
	for _, l := range lines {
		if l.Category == output.CategoryError {
			errs = append(errs, l)
		}
	}
	return errs
}
