package session

import "sync"

// atEnd is the cursor value meaning "past the newest entry".
const atEnd = -1

// Recorder receives every recorded line, typically to persist it.
type Recorder interface {
	Record(raw string) error
}

// History is the ordered list of submitted lines with a recall cursor, in
// the manner of an interactive shell. Recall only moves the cursor; Record
// appends and resets it.
type History struct {
	mu       sync.Mutex
	entries  []string
	cursor   int
	recorder Recorder
}

// HistoryOption configures a History.
type HistoryOption func(*History)

// WithRecorder forwards recorded lines to r.
func WithRecorder(r Recorder) HistoryOption {
	return func(h *History) {
		h.recorder = r
	}
}

// WithEntries seeds the history, oldest first.
func WithEntries(entries []string) HistoryOption {
	return func(h *History) {
		h.entries = append(h.entries, entries...)
	}
}

// NewHistory creates an empty history with the cursor at the end.
func NewHistory(opts ...HistoryOption) *History {
	h := &History{cursor: atEnd}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Record appends raw and resets the cursor. A recorder error is returned but
// the entry is kept.
func (h *History) Record(raw string) error {
	h.mu.Lock()
	h.entries = append(h.entries, raw)
	h.cursor = atEnd
	rec := h.recorder
	h.mu.Unlock()

	if rec == nil {
		return nil
	}
	return rec.Record(raw)
}

// RecallPrevious moves the cursor one entry back and returns that entry. It
// stops at the oldest entry and reports false only when history is empty.
func (h *History) RecallPrevious() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor == atEnd {
		h.cursor = len(h.entries) - 1
	} else {
		h.cursor = max(0, h.cursor-1)
	}
	return h.entries[h.cursor], true
}

// RecallNext moves the cursor one entry forward. Moving past the newest
// entry returns "" and parks the cursor at the end. At the end it reports
// false.
func (h *History) RecallNext() (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.cursor == atEnd {
		return "", false
	}
	if h.cursor+1 >= len(h.entries) {
		h.cursor = atEnd
		return "", true
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Cursor returns the cursor index, or -1 when at the end.
func (h *History) Cursor() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cursor
}
