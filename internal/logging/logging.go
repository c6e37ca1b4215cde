// Package logging builds the slog loggers used by the client and the dev
// server.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// FileName is the debug log written under the state directory.
const FileName = "bloodline.log"

// Options selects where log records go.
type Options struct {
	// Debug enables logging even when File is empty and lowers the level
	// to debug.
	Debug bool
	// Level is the minimum level when Debug is false.
	Level slog.Level
	// File is the log path. Empty means StateDir/FileName.
	File string
	// StateDir is the directory of the default log file.
	StateDir string
}

// Open returns the client logger and a function that closes its file. With
// neither Debug nor File set, records are discarded: the terminal belongs
// to the display surface.
func Open(opts Options) (*slog.Logger, func() error, error) {
	noop := func() error { return nil }
	if !opts.Debug && opts.File == "" {
		return slog.New(slog.DiscardHandler), noop, nil
	}

	path := opts.File
	if path == "" {
		if opts.StateDir == "" {
			return nil, noop, fmt.Errorf("no log file or state directory configured")
		}
		path = filepath.Join(opts.StateDir, FileName)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, noop, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return nil, noop, fmt.Errorf("failed to open log file: %w", err)
	}

	level := opts.Level
	if opts.Debug {
		level = slog.LevelDebug
	}
	return New(file, level), file.Close, nil
}

// New returns a text logger writing to w at level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
