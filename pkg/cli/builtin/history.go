package builtin

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/state"
)

const maxCommandWidth = 48

// HistoryOptions configures the history command behavior.
type HistoryOptions struct {
	History *state.History
	Output  io.Writer
}

func (o *HistoryOptions) writer(cmd *cobra.Command) io.Writer {
	if o.Output != nil {
		return o.Output
	}
	return cmd.OutOrStdout()
}

// NewHistoryCommand creates a new history command.
func NewHistoryCommand(opts *HistoryOptions) *cobra.Command {
	var limit int
	var search string
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show terminal command history",
		Long: `Display lines entered in the terminal across sessions.

Passwords are masked before lines are written to disk.

Examples:
  history                    # Show recent history
  history --limit 50         # Show last 50 lines
  history --search follow    # Search for lines containing "follow"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(opts, opts.writer(cmd), limit, search, outputFormat)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show")
	cmd.Flags().StringVar(&search, "search", "", "Search pattern")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format (table|json|yaml)")
	_ = cmd.RegisterFlagCompletionFunc("output", FixedCompletion("table", "json", "yaml"))

	cmd.AddCommand(newHistoryClearCommand(opts))
	cmd.AddCommand(newHistoryStatsCommand(opts))

	return cmd
}

// newHistoryClearCommand creates the history clear subcommand.
func newHistoryClearCommand(opts *HistoryOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear command history",
		Long:  "Remove all command history entries.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.History.Clear()
			if err := opts.History.Save(); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(opts.writer(cmd), "✓ History cleared")
			return nil
		},
	}
}

// newHistoryStatsCommand creates the history stats subcommand.
func newHistoryStatsCommand(opts *HistoryOptions) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show history statistics",
		Long:  "Display how many lines were entered and the most used commands.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return formatStatsText(opts.History, opts.writer(cmd), top)
		},
	}

	cmd.Flags().IntVar(&top, "top", 5, "Number of most used commands to show")

	return cmd
}

// runHistory displays command history.
func runHistory(opts *HistoryOptions, w io.Writer, limit int, search, outputFormat string) error {
	var entries []*state.HistoryEntry
	if search != "" {
		entries = opts.History.Search(search)
	} else {
		entries = opts.History.GetRecent(limit)
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "No history entries found")
		return nil
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	switch outputFormat {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(entries); err != nil {
			return fmt.Errorf("failed to encode history: %w", err)
		}
		return encoder.Close()
	case "table", "":
		return formatHistoryTable(entries, w)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

// formatHistoryTable formats history as a table.
func formatHistoryTable(entries []*state.HistoryEntry, w io.Writer) error {
	data := pterm.TableData{{"ID", "COMMAND", "TIMESTAMP"}}
	for _, entry := range entries {
		command := entry.Command
		if len(command) > maxCommandWidth {
			command = command[:maxCommandWidth-3] + "..."
		}
		data = append(data, []string{
			strconv.Itoa(entry.ID),
			command,
			entry.Timestamp.Local().Format("2006-01-02 15:04:05"),
		})
	}

	rendered, err := pterm.DefaultTable.
		WithHasHeader(true).
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan, pterm.Bold)).
		WithData(data).
		Srender()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}
	_, err = fmt.Fprintln(w, rendered)
	return err
}

// formatStatsText formats stats as human-readable text.
func formatStatsText(h *state.History, w io.Writer, top int) error {
	stats := h.GetStats()

	_, _ = fmt.Fprintln(w, "History Statistics:")
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "  Total lines: %d\n", stats.TotalCommands)
	if !stats.FirstCommand.IsZero() {
		_, _ = fmt.Fprintf(w, "  First: %s\n", stats.FirstCommand.Format(time.RFC3339))
	}
	if !stats.LastCommand.IsZero() {
		_, _ = fmt.Fprintf(w, "  Last: %s\n", stats.LastCommand.Format(time.RFC3339))
	}

	used := h.GetMostUsedCommands(top)
	if len(used) == 0 {
		return nil
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Most used:")
	for _, f := range used {
		_, _ = fmt.Fprintf(w, "  %-15s %d\n", f.Command, f.Count)
	}
	return nil
}
