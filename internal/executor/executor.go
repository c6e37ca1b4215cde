// Package executor dispatches terminal command lines.
//
// The executor owns the flow of one submitted line from text to output:
//
//  1. Tokenize the line; blank input produces nothing
//  2. Echo it as a command line and record it in the session history
//  3. Resolve the command in the registry
//  4. Refuse auth-required commands for anonymous sessions
//  5. Check positional arguments and required flags
//  6. Run the bound handler, which validates, calls the backend and renders
//
// Every failure ends up as a single error line. Execute never returns an
// error and never panics: a panicking handler is recovered into a generic
// error line, and backend errors that reject the stored token drop the
// session back to anonymous.
//
// # Example Usage
//
//	exec, _ := executor.New(client, sess,
//	    executor.WithLog(output.NewLog()),
//	    executor.WithThemeStore(stateManager),
//	)
//	for _, line := range exec.Execute(ctx, `post "hello world"`) {
//	    fmt.Println(line.Content)
//	}
//
// Execute holds a lock for the whole command, so lines submitted from
// several goroutines run one after another in the order the lock is taken.
package executor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/api"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/commands"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/output"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/parser"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/progress"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/secrets"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/session"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/theme"
)

// Generic messages shown when the cause is not known.
const (
	UnexpectedErrorMessage = "An error occurred while executing the command"
	HelpHint               = `Type "help" for available commands`
)

// Backend is the API the handlers call. *api.Client implements it.
type Backend interface {
	Register(ctx context.Context, username, email, password string) (*api.AuthResult, error)
	Login(ctx context.Context, username, password string) (*api.AuthResult, error)
	GetProfile(ctx context.Context) (*api.User, error)

	CreatePost(ctx context.Context, content string) (*api.Post, error)
	GetFeed(ctx context.Context, page api.Page) (*api.PostPage, error)
	GetPost(ctx context.Context, id string) (*api.Post, error)
	DeletePost(ctx context.Context, id string) (*api.Message, error)

	FollowUser(ctx context.Context, username string) (*api.Message, error)
	UnfollowUser(ctx context.Context, username string) (*api.Message, error)
	GetFollowing(ctx context.Context) (*api.FollowList, error)
	GetFollowers(ctx context.Context) (*api.FollowList, error)
	GetFollowingFeed(ctx context.Context, page api.Page) (*api.PostPage, error)
	CheckFollowing(ctx context.Context, username string) (*api.FollowStatus, error)

	SearchUsers(ctx context.Context, query string) (*api.SearchResult, error)
	GetUserProfile(ctx context.Context, username string) (*api.UserProfile, error)
	GetUserPosts(ctx context.Context, username string, page api.Page) (*api.PostPage, error)
	GetAllUsers(ctx context.Context, page api.Page) (*api.UserPage, error)

	CreateComment(ctx context.Context, postID, content string) (*api.Comment, error)
	GetPostComments(ctx context.Context, postID string, page api.Page) (*api.CommentPage, error)
	GetComment(ctx context.Context, id string) (*api.Comment, error)
	DeleteComment(ctx context.Context, id string) (*api.Message, error)
}

// ThemeStore remembers the selected theme. *state.Manager implements it.
type ThemeStore interface {
	Theme() string
	SetTheme(name string) error
}

// Executor runs command lines against a backend on behalf of one session.
type Executor struct {
	mu sync.Mutex

	backend  Backend
	session  *session.Session
	log      *output.Log
	registry *commands.Registry
	themes   ThemeStore
	progress *progress.Manager
	logger   *slog.Logger
	location *time.Location

	handlers map[string]handler
}

// Option configures an Executor.
type Option func(*Executor)

// WithLog appends output to log instead of a private one.
func WithLog(log *output.Log) Option {
	return func(e *Executor) {
		e.log = log
	}
}

// WithRegistry resolves commands in r instead of the built-in table.
func WithRegistry(r *commands.Registry) Option {
	return func(e *Executor) {
		e.registry = r
	}
}

// WithThemeStore persists theme changes in store.
func WithThemeStore(store ThemeStore) Option {
	return func(e *Executor) {
		e.themes = store
	}
}

// WithProgress shows an indicator while a backend call is in flight.
func WithProgress(m *progress.Manager) Option {
	return func(e *Executor) {
		e.progress = m
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithLocation renders timestamps in loc. The default is time.Local.
func WithLocation(loc *time.Location) Option {
	return func(e *Executor) {
		e.location = loc
	}
}

// New creates an executor. Every command in the registry must have a
// handler.
func New(backend Backend, sess *session.Session, opts ...Option) (*Executor, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend is required")
	}
	if sess == nil {
		return nil, fmt.Errorf("session is required")
	}

	e := &Executor{
		backend:  backend,
		session:  sess,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = output.NewLog()
	}
	if e.registry == nil {
		e.registry = commands.Default()
	}
	if e.themes == nil {
		e.themes = &memoryThemes{name: theme.Default}
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	e.handlers = e.bindHandlers()
	if missing := unboundCommands(e.registry, e.handlers); len(missing) > 0 {
		return nil, fmt.Errorf("no handler for commands: %s", strings.Join(missing, ", "))
	}

	return e, nil
}

func unboundCommands(r *commands.Registry, handlers map[string]handler) []string {
	var missing []string
	for _, name := range r.Names() {
		if _, ok := handlers[name]; !ok {
			missing = append(missing, name)
		}
	}
	sort.Strings(missing)
	return missing
}

// Session returns the session the executor acts for.
func (e *Executor) Session() *session.Session {
	return e.session
}

// Log returns the output log.
func (e *Executor) Log() *output.Log {
	return e.log
}

// Registry returns the command table.
func (e *Executor) Registry() *commands.Registry {
	return e.registry
}

// Theme returns the active theme name.
func (e *Executor) Theme() string {
	return theme.Get(e.themes.Theme()).Name
}

// Welcome appends and returns the greeting shown when a terminal opens.
func (e *Executor) Welcome() []output.Line {
	b := &batch{}
	if name := e.session.Username(); name != "" {
		b.success("Welcome back, %s!", name)
	} else {
		b.info(bannerRule)
		b.info("    CYBER BLOODLINE")
		b.info(bannerRule)
		b.blank()
		b.info(`Type "help" to see available commands`)
		b.info(`Type "register" to create an account`)
		b.info(`Type "login" to access your account`)
		b.blank()
	}
	e.log.Append(b.lines...)
	return b.lines
}

// Execute runs one raw line and returns the lines it produced. The same
// lines are appended to the output log.
func (e *Executor) Execute(ctx context.Context, raw string) []output.Line {
	e.mu.Lock()
	defer e.mu.Unlock()

	cmd := parser.Tokenize(raw)
	if cmd.Empty {
		return nil
	}

	b := &batch{}
	b.add(output.Command(e.session.Prompt() + " " + secrets.MaskCommandLine(strings.TrimSpace(raw))))

	if err := e.session.History().Record(raw); err != nil {
		e.logger.Warn("failed to record history", "error", err)
	}

	start := time.Now()
	cleared := e.dispatch(ctx, cmd, b)

	e.logger.Debug("command executed",
		"command", cmd.Name,
		"lines", len(b.lines),
		"error", output.HasErrors(b.lines),
		"duration", time.Since(start),
	)

	if cleared {
		e.log.Clear()
		return nil
	}
	e.log.Append(b.lines...)
	return b.lines
}

// dispatch runs cmd into b. It reports whether the command cleared the log.
func (e *Executor) dispatch(ctx context.Context, cmd parser.ParsedCommand, b *batch) (cleared bool) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("command panicked", "command", cmd.Name, "panic", r)
			b.error(UnexpectedErrorMessage)
			cleared = false
		}
	}()

	spec, ok := e.registry.Lookup(cmd.Name)
	if !ok {
		b.error("Command not found: %s", cmd.Name)
		b.info(HelpHint)
		return false
	}

	if spec.Auth == commands.AuthRequired && !e.session.Authenticated() {
		b.error("%s", spec.AuthMessage)
		return false
	}

	if !hasRequiredInput(spec, cmd) {
		b.error("%s", spec.Usage)
		return false
	}

	h := e.handlers[spec.Name]
	inv := &invocation{cmd: cmd, spec: spec, out: b}
	err := h.run(ctx, inv)
	if err == nil {
		return inv.cleared
	}

	if msg, ok := isValidation(err); ok {
		b.error("%s", msg)
		return false
	}

	e.logger.Debug("command failed", "command", spec.Name, "error", err)

	if api.IsAuthFailure(err) && e.session.Authenticated() {
		if clearErr := e.session.Clear(ctx); clearErr != nil {
			e.logger.Warn("failed to clear rejected identity", "error", clearErr)
		}
	}

	msg := api.ErrorMessage(err)
	if msg == "" {
		msg = h.fallback
	}
	b.error("✗ %s", msg)
	return false
}

func hasRequiredInput(spec commands.Spec, cmd parser.ParsedCommand) bool {
	if len(cmd.Args) < spec.MinArgs {
		return false
	}
	for _, name := range spec.RequiredFlags() {
		if v, ok := cmd.Flags.String(name); !ok || v == "" {
			return false
		}
	}
	return true
}

// handler is the behavior bound to a command name.
type handler struct {
	run func(ctx context.Context, inv *invocation) error
	// fallback is shown when a backend error carries no message.
	fallback string
}

// invocation is one running command.
type invocation struct {
	cmd     parser.ParsedCommand
	spec    commands.Spec
	out     *batch
	cleared bool
}

// validationError is a failure detected before any backend call. Its text
// is shown as is.
type validationError string

func (v validationError) Error() string {
	return string(v)
}

func invalid(format string, args ...any) error {
	return validationError(fmt.Sprintf(format, args...))
}

func isValidation(err error) (string, bool) {
	v, ok := err.(validationError)
	return string(v), ok
}

// usage returns the command's usage line as a validation error.
func (inv *invocation) usage() error {
	return validationError(inv.spec.Usage)
}

// call shows a progress line and runs fn, with an indicator when one is
// configured.
func call[T any](ctx context.Context, e *Executor, inv *invocation, message string, fn func(context.Context) (T, error)) (T, error) {
	inv.out.info("%s", message)

	var indicator progress.Progress
	if e.progress != nil && e.progress.Enabled() {
		p, err := e.progress.StartProgress(message)
		if err != nil {
			e.logger.Debug("progress unavailable", "error", err)
		} else {
			indicator = p
		}
	}

	result, err := fn(ctx)

	if indicator != nil {
		_ = e.progress.Stop()
	}
	return result, err
}

// batch collects the lines of one command.
type batch struct {
	lines []output.Line
}

func (b *batch) add(lines ...output.Line) {
	b.lines = append(b.lines, lines...)
}

func (b *batch) blank() {
	b.add(output.Response(""))
}

func (b *batch) response(format string, args ...any) {
	b.add(output.Response(format, args...))
}

func (b *batch) info(format string, args ...any) {
	b.add(output.Info(format, args...))
}

func (b *batch) success(format string, args ...any) {
	b.add(output.Success(format, args...))
}

func (b *batch) error(format string, args ...any) {
	b.add(output.Error(format, args...))
}

type memoryThemes struct {
	mu   sync.Mutex
	name string
}

func (m *memoryThemes) Theme() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.name
}

func (m *memoryThemes) SetTheme(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.name = name
	return nil
}
