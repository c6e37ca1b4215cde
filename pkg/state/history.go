package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/n0m3l4c000nt35/cyber-bloodline/pkg/secrets"
)

// History stores submitted terminal lines on disk.
type History struct {
	historyPath string
	entries     []*HistoryEntry
	maxEntries  int
	mu          sync.RWMutex
}

// HistoryEntry is a single recorded line.
type HistoryEntry struct {
	ID         int       `json:"id" yaml:"id"`
	Command    string    `json:"command" yaml:"command"`
	Timestamp  time.Time `json:"timestamp" yaml:"timestamp"`
	Success    bool      `json:"success" yaml:"success"`
	DurationMS int64     `json:"duration_ms,omitempty" yaml:"duration_ms,omitempty"`
	User       string    `json:"user,omitempty" yaml:"user,omitempty"`
}

// HistoryData is the on-disk layout of history.json.
type HistoryData struct {
	History    []*HistoryEntry `json:"history"`
	MaxEntries int             `json:"max_entries"`
	Version    string          `json:"version,omitempty"`
}

const (
	// DefaultMaxHistoryEntries is the default maximum number of history entries.
	DefaultMaxHistoryEntries = 1000

	// HistoryVersion is the current history file format version.
	HistoryVersion = "1.0"
)

// NewHistory opens the history of cliName under the XDG state home.
func NewHistory(cliName string, maxEntries int) (*History, error) {
	return NewHistoryAt(filepath.Join(xdg.StateHome, cliName, "history.json"), maxEntries)
}

// NewHistoryAt opens the history file at path.
func NewHistoryAt(path string, maxEntries int) (*History, error) {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxHistoryEntries
	}

	h := &History{
		historyPath: path,
		entries:     make([]*HistoryEntry, 0),
		maxEntries:  maxEntries,
	}

	if err := h.Load(); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load history: %w", err)
		}
	}

	return h, nil
}

// Load loads history from disk.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := os.ReadFile(h.historyPath)
	if err != nil {
		return err
	}

	var historyData HistoryData
	if err := json.Unmarshal(data, &historyData); err != nil {
		return fmt.Errorf("failed to parse history file: %w", err)
	}

	h.entries = historyData.History
	if h.entries == nil {
		h.entries = make([]*HistoryEntry, 0)
	}
	h.trim()
	return nil
}

// Save saves history to disk.
func (h *History) Save() error {
	h.mu.RLock()
	historyData := HistoryData{
		History:    h.entries,
		MaxEntries: h.maxEntries,
		Version:    HistoryVersion,
	}
	data, err := json.MarshalIndent(historyData, "", "  ")
	h.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(h.historyPath), 0700); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	return writeAtomic(h.historyPath, data)
}

// Add appends an entry, assigning its ID and timestamp.
func (h *History) Add(entry *HistoryEntry) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	h.entries = append(h.entries, entry)
	h.trim()
}

// trim drops the oldest entries beyond maxEntries and renumbers the rest.
func (h *History) trim() {
	if len(h.entries) > h.maxEntries {
		h.entries = h.entries[len(h.entries)-h.maxEntries:]
	}
	for i, e := range h.entries {
		e.ID = i + 1
	}
}

// Record masks secret flags in raw, appends it and saves the file. It lets
// a History back the in-memory recall history of a session.
func (h *History) Record(raw string) error {
	h.Add(&HistoryEntry{
		Command: secrets.MaskCommandLine(raw),
		Success: true,
		User:    currentUser(),
	})
	return h.Save()
}

// RecordCommand records a finished command with its outcome.
func (h *History) RecordCommand(command string, success bool, duration time.Duration) error {
	h.Add(&HistoryEntry{
		Command:    secrets.MaskCommandLine(command),
		Success:    success,
		DurationMS: duration.Milliseconds(),
		User:       currentUser(),
	})
	return h.Save()
}

// GetAll returns copies of all entries, oldest first.
func (h *History) GetAll() []*HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	entries := make([]*HistoryEntry, len(h.entries))
	for i, entry := range h.entries {
		entryCopy := *entry
		entries[i] = &entryCopy
	}
	return entries
}

// GetRecent returns the most recent n entries, oldest first. n <= 0 means all.
func (h *History) GetRecent(n int) []*HistoryEntry {
	all := h.GetAll()
	if n <= 0 || n > len(all) {
		return all
	}
	return all[len(all)-n:]
}

// Commands returns the most recent n command lines, oldest first.
func (h *History) Commands(n int) []string {
	recent := h.GetRecent(n)
	out := make([]string, len(recent))
	for i, e := range recent {
		out[i] = e.Command
	}
	return out
}

// Search returns entries whose command contains pattern, case-insensitively.
func (h *History) Search(pattern string) []*HistoryEntry {
	pattern = strings.ToLower(pattern)
	matches := make([]*HistoryEntry, 0)
	for _, entry := range h.GetAll() {
		if strings.Contains(strings.ToLower(entry.Command), pattern) {
			matches = append(matches, entry)
		}
	}
	return matches
}

// Clear removes all entries. Call Save to persist.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = make([]*HistoryEntry, 0)
}

// Count returns the number of history entries.
func (h *History) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

// GetPath returns the path to the history file.
func (h *History) GetPath() string {
	return h.historyPath
}

// HistoryStats summarizes the history.
type HistoryStats struct {
	TotalCommands      int       `json:"total_commands" yaml:"total_commands"`
	SuccessfulCommands int       `json:"successful_commands" yaml:"successful_commands"`
	FailedCommands     int       `json:"failed_commands" yaml:"failed_commands"`
	FirstCommand       time.Time `json:"first_command" yaml:"first_command"`
	LastCommand        time.Time `json:"last_command" yaml:"last_command"`
}

// GetStats returns statistics about the history.
func (h *History) GetStats() HistoryStats {
	h.mu.RLock()
	defer h.mu.RUnlock()

	stats := HistoryStats{TotalCommands: len(h.entries)}
	for _, entry := range h.entries {
		if entry.Success {
			stats.SuccessfulCommands++
		} else {
			stats.FailedCommands++
		}
		if stats.FirstCommand.IsZero() || entry.Timestamp.Before(stats.FirstCommand) {
			stats.FirstCommand = entry.Timestamp
		}
		if entry.Timestamp.After(stats.LastCommand) {
			stats.LastCommand = entry.Timestamp
		}
	}
	return stats
}

// CommandFrequency represents command usage frequency.
type CommandFrequency struct {
	Command string `json:"command" yaml:"command"`
	Count   int    `json:"count" yaml:"count"`
}

// GetMostUsedCommands counts command names (the first word of each line),
// most used first. Ties are ordered by name.
func (h *History) GetMostUsedCommands(limit int) []CommandFrequency {
	freq := make(map[string]int)
	for _, entry := range h.GetAll() {
		if parts := strings.Fields(entry.Command); len(parts) > 0 {
			freq[strings.ToLower(parts[0])]++
		}
	}

	out := make([]CommandFrequency, 0, len(freq))
	for cmd, count := range freq {
		out = append(out, CommandFrequency{Command: cmd, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Command < out[j].Command
	})

	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

func currentUser() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return os.Getenv("USERNAME")
}
