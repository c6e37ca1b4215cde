package state

import (
	"path/filepath"
	"testing"
	"time"
)

func newTestHistory(t *testing.T, max int) *History {
	t.Helper()
	h, err := NewHistoryAt(filepath.Join(t.TempDir(), "bloodline", "history.json"), max)
	if err != nil {
		t.Fatalf("NewHistoryAt() error = %v", err)
	}
	return h
}

func TestNewHistoryAt_Defaults(t *testing.T) {
	h := newTestHistory(t, 0)
	if h.maxEntries != DefaultMaxHistoryEntries {
		t.Errorf("maxEntries = %d, want %d", h.maxEntries, DefaultMaxHistoryEntries)
	}
	if h.Count() != 0 {
		t.Errorf("Count() = %d, want 0", h.Count())
	}
}

func TestHistory_RecordMasksPasswords(t *testing.T) {
	h := newTestHistory(t, 10)

	if err := h.Record("login --username bob --password abc12345"); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	all := h.GetAll()
	if len(all) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(all))
	}
	if all[0].Command != "login --username bob --password ********" {
		t.Errorf("Command = %q", all[0].Command)
	}
	if all[0].ID != 1 {
		t.Errorf("ID = %d, want 1", all[0].ID)
	}
	if all[0].Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestHistory_PersistsAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	h, err := NewHistoryAt(path, 10)
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{"feed", "users", "whoami"} {
		if err := h.Record(line); err != nil {
			t.Fatal(err)
		}
	}

	reloaded, err := NewHistoryAt(path, 10)
	if err != nil {
		t.Fatal(err)
	}
	got := reloaded.Commands(2)
	if len(got) != 2 || got[0] != "users" || got[1] != "whoami" {
		t.Errorf("Commands(2) = %v", got)
	}
}

func TestHistory_TrimsToMax(t *testing.T) {
	h := newTestHistory(t, 3)
	for _, line := range []string{"a", "b", "c", "d", "e"} {
		h.Add(&HistoryEntry{Command: line, Success: true})
	}

	all := h.GetAll()
	if len(all) != 3 {
		t.Fatalf("len = %d, want 3", len(all))
	}
	if all[0].Command != "c" || all[0].ID != 1 || all[2].ID != 3 {
		t.Errorf("unexpected entries after trim: %+v", all)
	}
}

func TestHistory_SearchAndRecent(t *testing.T) {
	h := newTestHistory(t, 10)
	for _, line := range []string{"feed --limit 5", "FOLLOW alice", "follow bob", "users"} {
		h.Add(&HistoryEntry{Command: line, Success: true})
	}

	if got := h.Search("follow"); len(got) != 2 {
		t.Errorf("Search(follow) = %d entries, want 2", len(got))
	}
	if got := h.GetRecent(0); len(got) != 4 {
		t.Errorf("GetRecent(0) = %d entries, want 4", len(got))
	}
	if got := h.GetRecent(1); got[0].Command != "users" {
		t.Errorf("GetRecent(1) = %q", got[0].Command)
	}

	h.Clear()
	if h.Count() != 0 {
		t.Error("Clear() left entries")
	}
}

func TestHistory_Stats(t *testing.T) {
	h := newTestHistory(t, 10)
	if err := h.RecordCommand("feed", true, 20*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if err := h.RecordCommand("feed --limit 0", false, time.Millisecond); err != nil {
		t.Fatal(err)
	}
	if err := h.RecordCommand("users", true, 0); err != nil {
		t.Fatal(err)
	}

	stats := h.GetStats()
	if stats.TotalCommands != 3 || stats.SuccessfulCommands != 2 || stats.FailedCommands != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.FirstCommand.After(stats.LastCommand) {
		t.Error("first command after last command")
	}

	top := h.GetMostUsedCommands(1)
	if len(top) != 1 || top[0].Command != "feed" || top[0].Count != 2 {
		t.Errorf("GetMostUsedCommands(1) = %+v", top)
	}
}
