package builtin

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/state"
)

func newTestHistory(t *testing.T, lines ...string) *state.History {
	t.Helper()
	history, err := state.NewHistoryAt(filepath.Join(t.TempDir(), "history.json"), 100)
	if err != nil {
		t.Fatalf("failed to create history: %v", err)
	}
	for _, line := range lines {
		if err := history.Record(line); err != nil {
			t.Fatalf("failed to record: %v", err)
		}
	}
	return history
}

func TestNewHistoryCommand(t *testing.T) {
	cmd := NewHistoryCommand(&HistoryOptions{History: newTestHistory(t)})

	if cmd.Use != "history" {
		t.Errorf("expected Use 'history', got %q", cmd.Use)
	}
	if len(cmd.Commands()) != 2 {
		t.Errorf("expected clear and stats subcommands, got %d", len(cmd.Commands()))
	}
}

func TestRunHistory_Table(t *testing.T) {
	history := newTestHistory(t, "feed", "login --username bob --password secret1", "whoami")
	output := &bytes.Buffer{}

	if err := runHistory(&HistoryOptions{History: history}, output, 20, "", "table"); err != nil {
		t.Fatalf("runHistory failed: %v", err)
	}

	got := output.String()
	for _, want := range []string{"COMMAND", "feed", "--password ********", "whoami"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %q in output:\n%s", want, got)
		}
	}
	if strings.Contains(got, "secret1") {
		t.Error("password leaked into history")
	}
}

func TestRunHistory_LimitAndSearch(t *testing.T) {
	history := newTestHistory(t, "feed", "follow alice", "follow bob", "whoami")

	output := &bytes.Buffer{}
	if err := runHistory(&HistoryOptions{History: history}, output, 2, "", "json"); err != nil {
		t.Fatalf("runHistory failed: %v", err)
	}
	var entries []state.HistoryEntry
	if err := json.Unmarshal(output.Bytes(), &entries); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(entries) != 2 || entries[0].Command != "follow bob" || entries[1].Command != "whoami" {
		t.Errorf("unexpected entries: %+v", entries)
	}

	output.Reset()
	if err := runHistory(&HistoryOptions{History: history}, output, 20, "FOLLOW", "yaml"); err != nil {
		t.Fatalf("runHistory failed: %v", err)
	}
	if strings.Count(output.String(), "command: follow") != 2 {
		t.Errorf("expected two matches:\n%s", output.String())
	}
}

func TestRunHistory_Empty(t *testing.T) {
	output := &bytes.Buffer{}
	if err := runHistory(&HistoryOptions{History: newTestHistory(t)}, output, 20, "", "table"); err != nil {
		t.Fatalf("runHistory failed: %v", err)
	}
	if !strings.Contains(output.String(), "No history entries found") {
		t.Errorf("unexpected output: %q", output.String())
	}
}

func TestHistoryClear(t *testing.T) {
	history := newTestHistory(t, "feed", "whoami")
	output := &bytes.Buffer{}

	cmd := NewHistoryCommand(&HistoryOptions{History: history, Output: output})
	cmd.SetArgs([]string{"clear"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	if history.Count() != 0 {
		t.Errorf("expected empty history, got %d entries", history.Count())
	}
	if !strings.Contains(output.String(), "History cleared") {
		t.Errorf("unexpected output: %q", output.String())
	}
}

func TestHistoryStats(t *testing.T) {
	history := newTestHistory(t, "feed", "feed --limit 5", "whoami")
	output := &bytes.Buffer{}

	if err := formatStatsText(history, output, 5); err != nil {
		t.Fatalf("stats failed: %v", err)
	}

	got := output.String()
	if !strings.Contains(got, "Total lines: 3") {
		t.Errorf("expected total in output:\n%s", got)
	}
	if !strings.Contains(got, "feed            2") {
		t.Errorf("expected feed counted twice:\n%s", got)
	}
}
