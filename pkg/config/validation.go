package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strings"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Known values of the enumerated settings.
var (
	StorageTypes  = []string{"file", "keyring", "memory", "auto"}
	Themes        = []string{"terminal", "htb", "github"}
	UIModes       = []string{"auto", "tui", "plain"}
	OutputFormats = []string{"text", "json", "yaml"}
	LogLevels     = []string{"debug", "info", "warn", "error"}
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	var msgs []string
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// Unwrap lets errors.Is match ErrInvalid.
func (e ValidationErrors) Unwrap() error {
	return ErrInvalid
}

// Validate checks cfg and returns ValidationErrors listing every problem.
func Validate(cfg *Config) error {
	var errs ValidationErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}
	oneOf := func(field, value string, allowed []string) {
		if !slices.Contains(allowed, value) {
			add(field, "must be one of %s, got %q", strings.Join(allowed, ", "), value)
		}
	}

	if u, err := url.Parse(cfg.API.BaseURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		add("api.base_url", "must be an absolute http(s) URL, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout <= 0 {
		add("api.timeout", "must be positive")
	}

	oneOf("auth.storage", cfg.Auth.Storage, StorageTypes)
	oneOf("ui.theme", cfg.UI.Theme, Themes)
	oneOf("ui.mode", cfg.UI.Mode, UIModes)
	oneOf("output.format", cfg.Output.Format, OutputFormats)
	oneOf("log.level", strings.ToLower(cfg.Log.Level), LogLevels)

	if cfg.History.Size < 0 {
		add("history.size", "must be 0 or greater")
	}
	if cfg.DevServer.TokenTTL <= 0 {
		add("devserver.token_ttl", "must be positive")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SlogLevel converts log.level to a slog level.
func (c LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
