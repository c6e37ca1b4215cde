package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/n0m3l4c000nt35/cyber-bloodline/internal/executor"
	"github.com/n0m3l4c000nt35/cyber-bloodline/internal/logging"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/api"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/auth"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/auth/storage"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/auth/types"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/config"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/output"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/progress"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/secrets"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/session"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/state"
)

// app holds what every subcommand shares once flags are parsed.
type app struct {
	loader   *config.Loader
	cfg      *config.Config
	logger   *slog.Logger
	closeLog func() error

	history *state.History
	state   *state.Manager
	creds   *auth.Store
}

// load reads the configuration and opens logging, history, state and
// credential storage.
func (a *app) load(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()

	configPath, _ := flags.GetString("config")
	var opts []config.LoaderOption
	if configPath != "" {
		opts = append(opts, config.WithConfigFile(configPath))
	}
	a.loader = config.NewLoader(cliName, opts...)

	for key, name := range map[string]string{
		"api.base_url": "api-url",
		"ui.theme":     "theme",
		"ui.mode":      "mode",
	} {
		if err := a.loader.BindFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}

	cfg, err := a.loader.Load()
	if err != nil {
		return err
	}
	if noSpinner, _ := flags.GetBool("no-spinner"); noSpinner {
		cfg.UI.Spinner = false
	}
	a.cfg = cfg

	debug, _ := flags.GetBool("debug")
	a.logger, a.closeLog, err = logging.Open(logging.Options{
		Debug:    debug,
		Level:    cfg.Log.SlogLevel(),
		File:     cfg.Log.File,
		StateDir: a.loader.StateDir(),
	})
	if err != nil {
		return err
	}
	a.logger.Debug("configuration loaded", "config", a.loader.UserConfigPath(), "api", cfg.API.BaseURL)

	a.history, err = state.NewHistoryAt(filepath.Join(a.loader.StateDir(), "history.json"), cfg.History.Size)
	if err != nil {
		return err
	}
	a.state, err = state.NewManagerAt(filepath.Join(a.loader.StateDir(), "state.yaml"))
	if err != nil {
		return err
	}
	if flags.Changed("theme") {
		if err := a.state.SetTheme(cfg.UI.Theme); err != nil {
			a.logger.Warn("failed to save theme", "error", err)
		}
	}

	cs, err := storage.NewFactory().Create(&types.StorageConfig{
		Type:           types.StorageType(cfg.Auth.Storage),
		Path:           cfg.Auth.Path,
		KeyringService: cfg.Auth.KeyringService,
	}, cliName)
	if err != nil {
		return fmt.Errorf("failed to open credential storage: %w", err)
	}
	a.creds = auth.NewStore(cs, auth.WithLogger(a.logger))

	return nil
}

func (a *app) close() {
	if a.closeLog != nil {
		_ = a.closeLog()
	}
}

// terminalOptions selects how a terminal session renders.
type terminalOptions struct {
	progress bool
}

// terminal builds an executor for one run: a session restored from the
// credential store, a history seeded from disk and an API client.
func (a *app) terminal(ctx context.Context, opts terminalOptions) (*executor.Executor, error) {
	hist := session.NewHistory()
	if a.cfg.History.Persist {
		hist = session.NewHistory(
			session.WithRecorder(a.history),
			session.WithEntries(a.history.Commands(a.cfg.History.Size)),
		)
	}

	sess := session.New(session.WithStore(a.creds), session.WithHistory(hist))
	if id, ok, err := sess.Restore(ctx); err != nil {
		a.logger.Warn("failed to restore login", "error", err)
	} else if ok {
		a.logger.Debug("login restored", "username", id.Username)
	}

	client, err := api.NewClient(api.Config{
		BaseURL:    a.cfg.API.BaseURL,
		Timeout:    a.cfg.API.Timeout,
		UserAgent:  a.cfg.API.UserAgent + "/" + version,
		HTTPClient: a.httpClient(),
		Tokens:     sess.Token,
		Logger:     a.logger,
	})
	if err != nil {
		return nil, err
	}

	indicator := progress.DisabledConfig()
	if opts.progress && a.cfg.UI.Spinner && isTerminal(os.Stderr) {
		indicator = progress.DefaultConfig()
	}

	return executor.New(client, sess,
		executor.WithLog(output.NewLog()),
		executor.WithThemeStore(themeStore{Manager: a.state, fallback: a.cfg.UI.Theme}),
		executor.WithProgress(progress.NewManager(indicator)),
		executor.WithLogger(a.logger),
	)
}

// httpClient logs every exchange, with secrets masked, when debug logging
// is on.
func (a *app) httpClient() *http.Client {
	if !a.logger.Enabled(context.Background(), slog.LevelDebug) {
		return &http.Client{Timeout: a.cfg.API.Timeout}
	}
	detector := secrets.NewDetector(secrets.StrategyByName("partial"))
	return &http.Client{
		Timeout:   a.cfg.API.Timeout,
		Transport: secrets.NewLoggingTransport(detector, a.logger, http.DefaultTransport),
	}
}

// remember records the user and last line of a finished run.
func (a *app) remember(sess *session.Session, lastLine string) {
	if lastLine != "" {
		a.state.SetSessionCommand(secrets.MaskCommandLine(lastLine))
	}
	name := sess.Username()
	if name == "" {
		name = a.state.LastUsername()
	}
	if err := a.state.SetLastUsername(name); err != nil {
		a.logger.Warn("failed to save state", "error", err)
	}
}

// themeStore falls back to the configured theme until one is chosen in
// the terminal.
type themeStore struct {
	*state.Manager
	fallback string
}

func (t themeStore) Theme() string {
	if name := t.Manager.Theme(); name != "" {
		return name
	}
	return t.fallback
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
