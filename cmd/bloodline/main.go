// Package main implements bloodline, a terminal client for the Cyber
// Bloodline social network.
package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/n0m3l4c000nt35/cyber-bloodline/internal/repl"
	"github.com/n0m3l4c000nt35/cyber-bloodline/internal/tui"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/cli/builtin"
)

const cliName = "bloodline"

var (
	// Version is set at build time
	version = "1.0.0"
	// Commit is set at build time
	commit = ""
	// BuildDate is set at build time, RFC 3339
	buildDate = ""
)

// exitError ends the process with code and no message.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	err := newRootCmd().Execute()
	var exit *exitError
	switch {
	case err == nil:
	case errors.As(err, &exit):
		os.Exit(exit.code)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	versionOpts := &builtin.VersionOptions{Version: version, Commit: commit}
	if t, err := time.Parse(time.RFC3339, buildDate); err == nil {
		versionOpts.BuildTime = t
	}
	configOpts := &builtin.ConfigOptions{}
	historyOpts := &builtin.HistoryOptions{}
	authOpts := &builtin.AuthOptions{}

	cmd := &cobra.Command{
		Use:   cliName,
		Short: "Terminal client for the Cyber Bloodline social network",
		Long: `bloodline is a command-line terminal for the Cyber Bloodline social
network: register, post, follow people and comment from your shell.

Run without arguments for an interactive terminal. Inside it, type
"help" to list the available commands.`,
		Version:       builtin.VersionShort(version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd); err != nil {
				return err
			}
			versionOpts.APIBaseURL = a.cfg.API.BaseURL
			configOpts.Loader = a.loader
			historyOpts.History = a.history
			authOpts.Store = a.creds
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd, a)
		},
	}

	flags := cmd.PersistentFlags()
	flags.String("config", "", "Config file (default $XDG_CONFIG_HOME/bloodline/config.yaml)")
	flags.BoolP("debug", "d", false, "Write a debug log to the state directory")
	flags.String("api-url", "", "API base URL")
	flags.String("theme", "", "Color theme (terminal|htb|github)")
	flags.String("mode", "", "Interface (auto|tui|plain)")
	flags.Bool("no-spinner", false, "Disable progress spinners")
	_ = cmd.RegisterFlagCompletionFunc("theme", builtin.FixedCompletion("terminal", "htb", "github"))
	_ = cmd.RegisterFlagCompletionFunc("mode", builtin.FixedCompletion("auto", "tui", "plain"))

	cmd.AddCommand(newExecCmd(a))
	cmd.AddCommand(newServeDevCmd(a))
	cmd.AddCommand(builtin.NewVersionCommand(versionOpts))
	cmd.AddCommand(builtin.NewCompletionCommand(&builtin.CompletionOptions{CLIName: cliName}, cmd))
	cmd.AddCommand(builtin.NewConfigCommand(configOpts))
	cmd.AddCommand(builtin.NewHistoryCommand(historyOpts))
	cmd.AddCommand(builtin.NewAuthCommand(authOpts))

	return cmd
}

// runInteractive opens the full-screen terminal, or the line REPL when the
// terminal cannot host it.
func runInteractive(cmd *cobra.Command, a *app) error {
	ctx := cmd.Context()

	useTUI := false
	switch a.cfg.UI.Mode {
	case "tui":
		useTUI = true
	case "auto":
		useTUI = isTerminal(os.Stdin) && isTerminal(os.Stdout)
	}

	exec, err := a.terminal(ctx, terminalOptions{progress: !useTUI})
	if err != nil {
		return err
	}
	welcome := exec.Welcome()
	a.logger.Debug("terminal started", "tui", useTUI, "theme", exec.Theme())

	if useTUI {
		err = tui.Run(ctx, exec, tui.WithLogger(a.logger))
	} else {
		p := repl.New(exec,
			repl.WithInput(cmd.InOrStdin()),
			repl.WithOutput(cmd.OutOrStdout()),
			repl.WithColors(a.cfg.UI.Color && isTerminal(os.Stdout)),
			repl.WithEcho(!isTerminal(os.Stdin)),
			repl.WithLogger(a.logger),
		)
		if err := p.Print(welcome); err != nil {
			return err
		}
		err = p.Run(ctx)
	}

	var last string
	if entries := exec.Session().History().Entries(); len(entries) > 0 {
		last = entries[len(entries)-1]
	}
	a.remember(exec.Session(), last)
	return err
}
