package builtin

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"
)

// Shells lists the shells completion scripts can be generated for.
var Shells = []string{"bash", "zsh", "fish", "powershell"}

// CompletionOptions configures the completion command behavior.
type CompletionOptions struct {
	CLIName string
	Output  io.Writer
}

// NewCompletionCommand creates a new completion command.
func NewCompletionCommand(opts *CompletionOptions, rootCmd *cobra.Command) *cobra.Command {
	name := opts.CLIName
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: fmt.Sprintf(`Generate shell completion scripts for %[1]s.

Bash:
  $ %[1]s completion bash > ~/.local/share/bash-completion/completions/%[1]s

Zsh:
  $ %[1]s completion zsh > ~/.zsh/completion/_%[1]s

Fish:
  $ %[1]s completion fish > ~/.config/fish/completions/%[1]s.fish

PowerShell:
  $ %[1]s completion powershell > %[1]s.ps1`, name),
		ValidArgs:             Shells,
		Args:                  cobra.ExactArgs(1),
		DisableFlagsInUseLine: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := opts.Output
			if w == nil {
				w = cmd.OutOrStdout()
			}
			return runCompletion(rootCmd, args[0], w)
		},
	}

	return cmd
}

// runCompletion generates the completion script for the specified shell.
func runCompletion(rootCmd *cobra.Command, shell string, w io.Writer) error {
	if !slices.Contains(Shells, shell) {
		return fmt.Errorf("unsupported shell: %s", shell)
	}

	switch shell {
	case "bash":
		return rootCmd.GenBashCompletionV2(w, true)
	case "zsh":
		return rootCmd.GenZshCompletion(w)
	case "fish":
		return rootCmd.GenFishCompletion(w, true)
	default:
		return rootCmd.GenPowerShellCompletionWithDesc(w)
	}
}

// FixedCompletion returns a completion function with fixed values.
func FixedCompletion(values ...string) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}
