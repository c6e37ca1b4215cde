// Package repl is the plain line-by-line terminal used when the full-screen
// interface is unavailable or not wanted.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/commands"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/output"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/parser"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/session"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/theme"
)

// clearScreen moves the cursor home and erases the display.
const clearScreen = "\033[H\033[2J"

// Runner executes command lines. *executor.Executor implements it.
type Runner interface {
	Execute(ctx context.Context, raw string) []output.Line
	Session() *session.Session
	Theme() string
}

// REPL reads lines from an input and writes rendered output.
type REPL struct {
	runner Runner
	in     io.Reader
	out    io.Writer
	logger *slog.Logger

	formats *output.Manager
	prompt  *color.Color
	faint   *color.Color
	colors  bool
	echo    bool
}

// Option configures a REPL.
type Option func(*REPL)

// WithInput reads lines from r instead of stdin.
func WithInput(r io.Reader) Option {
	return func(p *REPL) {
		p.in = r
	}
}

// WithOutput writes to w instead of stdout.
func WithOutput(w io.Writer) Option {
	return func(p *REPL) {
		p.out = w
	}
}

// WithColors turns colour output on or off.
func WithColors(enabled bool) Option {
	return func(p *REPL) {
		p.colors = enabled
	}
}

// WithEcho prints the echoed command line of each batch. Useful when the
// input is not typed by a person.
func WithEcho(enabled bool) Option {
	return func(p *REPL) {
		p.echo = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *REPL) {
		p.logger = logger
	}
}

// New creates a REPL over runner.
func New(runner Runner, opts ...Option) *REPL {
	p := &REPL{
		runner:  runner,
		in:      os.Stdin,
		out:     os.Stdout,
		formats: output.NewManager(),
		prompt:  color.New(color.FgGreen, color.Bold),
		faint:   color.New(color.Faint),
		colors:  true,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if p.colors {
		p.prompt.EnableColor()
		p.faint.EnableColor()
	} else {
		p.prompt.DisableColor()
		p.faint.DisableColor()
	}
	return p
}

// Print renders lines with the active theme.
func (p *REPL) Print(lines []output.Line) error {
	if !p.echo {
		lines = withoutEcho(lines)
	}
	if len(lines) == 0 {
		return nil
	}
	p.formats.SetConfig(theme.Get(p.runner.Theme()).FormatConfig(p.colors))
	return p.formats.Format(p.out, lines, "text")
}

// Run reads and executes lines until exit, quit, end of input or ctx is
// done.
func (p *REPL) Run(ctx context.Context) error {
	reader := bufio.NewReader(p.in)

	for {
		if err := ctx.Err(); err != nil {
			return nil
		}

		_, _ = fmt.Fprintf(p.out, "%s ", p.prompt.Sprint(p.runner.Session().Prompt()))

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("read input: %w", err)
		}
		eof := err != nil

		raw := strings.TrimRight(line, "\r\n")
		switch strings.TrimSpace(raw) {
		case "exit", "quit":
			_, _ = fmt.Fprintln(p.out, p.faint.Sprint("Session ended"))
			return nil
		}

		if strings.TrimSpace(raw) != "" {
			if err := p.run(ctx, raw); err != nil {
				return err
			}
		}

		if eof {
			_, _ = fmt.Fprintln(p.out)
			return nil
		}
	}
}

func (p *REPL) run(ctx context.Context, raw string) error {
	lines := p.runner.Execute(ctx, raw)

	if parser.Tokenize(raw).Name == commands.Clear && p.colors {
		_, _ = io.WriteString(p.out, clearScreen)
	}

	if err := p.Print(lines); err != nil {
		p.logger.Error("failed to render output", "error", err)
		return fmt.Errorf("render output: %w", err)
	}
	return nil
}

func withoutEcho(lines []output.Line) []output.Line {
	out := make([]output.Line, 0, len(lines))
	for _, l := range lines {
		if l.Category != output.CategoryCommand {
			out = append(out, l)
		}
	}
	return out
}
