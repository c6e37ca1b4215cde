package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/cli/builtin"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/output"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/theme"
)

func newExecCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "exec <command line>",
		Short: "Run one terminal command and exit",
		Long: `Run a single terminal command line, print its output and exit.

The exit status is 1 when the command reports an error.

Examples:
  bloodline exec feed --limit 5
  bloodline exec 'post "hello world"'
  bloodline exec -o json whoami`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("output") {
				format = a.cfg.Output.Format
			}

			exec, err := a.terminal(cmd.Context(), terminalOptions{progress: format == "text"})
			if err != nil {
				return err
			}

			line := strings.Join(args, " ")
			lines := exec.Execute(cmd.Context(), line)
			a.remember(exec.Session(), line)

			formats := output.NewManager()
			colors := format == "text" && a.cfg.UI.Color && isTerminal(os.Stdout)
			formats.SetConfig(theme.Get(exec.Theme()).FormatConfig(colors))
			if err := formats.Format(cmd.OutOrStdout(), lines, format); err != nil {
				return err
			}

			if output.HasErrors(lines) {
				return &exitError{code: 1}
			}
			return nil
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVarP(&format, "output", "o", "text", "Output format (text|json|yaml)")
	_ = cmd.RegisterFlagCompletionFunc("output", builtin.FixedCompletion("text", "json", "yaml"))

	return cmd
}
