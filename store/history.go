package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	ai "github.com/spetersoncode/aidispatch"
)

// DefaultHistoryLimit is the number of entries History keeps.
const DefaultHistoryLimit = 100

const historyKey = "entries"

// HistoryEntry records one completed request.
type HistoryEntry struct {
	ID       string       `json:"id"`
	Prompt   string       `json:"prompt"`
	Model    string       `json:"model,omitempty"`
	Provider ai.Provider  `json:"provider,omitempty"`
	Format   ai.Format    `json:"format,omitempty"`
	Files    []string     `json:"files,omitempty"`
	Response *ai.Response `json:"response"`
}

// Time returns when the response was produced.
func (e HistoryEntry) Time() time.Time {
	if e.Response == nil {
		return time.Time{}
	}
	return e.Response.Time()
}

// History keeps the most recent requests, newest first. It owns its
// adapter: Clear empties the whole backing document.
type History struct {
	mu      sync.Mutex
	adapter Adapter
	limit   int
}

// NewHistory returns a history over adapter holding up to
// DefaultHistoryLimit entries.
func NewHistory(adapter Adapter) *History {
	return &History{adapter: adapter, limit: DefaultHistoryLimit}
}

// Add records req and resp as the newest entry, evicting the oldest
// entries beyond the limit.
func (h *History) Add(ctx context.Context, req ai.Request, resp *ai.Response) (HistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries, err := h.load(ctx)
	if err != nil {
		return HistoryEntry{}, err
	}

	entry := HistoryEntry{
		ID:       uuid.NewString(),
		Prompt:   req.Prompt,
		Model:    req.Model,
		Provider: req.Provider,
		Format:   req.Format,
		Files:    req.InputFiles,
		Response: resp,
	}

	entries = append([]HistoryEntry{entry}, entries...)
	if len(entries) > h.limit {
		entries = entries[:h.limit]
	}
	if err := setJSON(ctx, h.adapter, historyKey, entries); err != nil {
		return HistoryEntry{}, err
	}
	return entry, nil
}

// List returns all entries, newest first.
func (h *History) List(ctx context.Context) ([]HistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.load(ctx)
}

// Get returns the entry with id.
func (h *History) Get(ctx context.Context, id string) (HistoryEntry, bool, error) {
	entries, err := h.List(ctx)
	if err != nil {
		return HistoryEntry{}, false, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, true, nil
		}
	}
	return HistoryEntry{}, false, nil
}

// Delete removes the entry with id and reports whether it existed.
func (h *History) Delete(ctx context.Context, id string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries, err := h.load(ctx)
	if err != nil {
		return false, err
	}
	for i, e := range entries {
		if e.ID == id {
			entries = append(entries[:i], entries[i+1:]...)
			return true, setJSON(ctx, h.adapter, historyKey, entries)
		}
	}
	return false, nil
}

// Clear removes every entry.
func (h *History) Clear(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.adapter.Clear(ctx)
}

func (h *History) load(ctx context.Context) ([]HistoryEntry, error) {
	entries, _, err := getJSON[[]HistoryEntry](ctx, h.adapter, historyKey)
	return entries, err
}
