package stores

import (
	"strings"
	"sync"
	"time"
)

const (
	// MaxHistory bounds the search history
	MaxHistory  = 20
	historyBlob = "search-storage"
)

// HistoryItem is one remembered search; Timestamp is epoch millis
type HistoryItem struct {
	Query     string `json:"query"`
	Timestamp int64  `json:"timestamp"`
}

type historyDoc struct {
	SearchHistory []HistoryItem `json:"searchHistory"`
}

// History is the most-recent-first search history
type History struct {
	mu      sync.Mutex
	items   []HistoryItem
	current string

	blob Blob
	now  func() time.Time
}

// NewHistory restores history from b
func NewHistory(b Blob) *History {
	h := &History{blob: b, now: time.Now}
	var doc historyDoc
	restore(b, historyBlob, &doc)
	h.items = doc.SearchHistory
	if len(h.items) > MaxHistory {
		h.items = h.items[:MaxHistory]
	}
	return h
}

// Add puts query at the front; blanks are ignored and a repeat moves to the front
func (h *History) Add(query string) {
	q := strings.TrimSpace(query)
	if q == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	next := make([]HistoryItem, 0, MaxHistory)
	next = append(next, HistoryItem{Query: q, Timestamp: h.now().UnixMilli()})
	for _, it := range h.items {
		if it.Query == q {
			continue
		}
		if len(next) == MaxHistory {
			break
		}
		next = append(next, it)
	}
	h.items = next
	h.saveLocked()
}

// Remove drops the exact query
func (h *History) Remove(query string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	next := h.items[:0:0]
	for _, it := range h.items {
		if it.Query != query {
			next = append(next, it)
		}
	}
	h.items = next
	h.saveLocked()
}

// Clear empties the history
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.items = nil
	h.saveLocked()
}

// Items returns a copy, most recent first
func (h *History) Items() []HistoryItem {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]HistoryItem(nil), h.items...)
}

// SetCurrentQuery records the in-progress query; it is never persisted
func (h *History) SetCurrentQuery(q string) {
	h.mu.Lock()
	h.current = q
	h.mu.Unlock()
}

// CurrentQuery returns the in-progress query
func (h *History) CurrentQuery() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

// Reset clears memory without touching the blob
func (h *History) Reset() {
	h.mu.Lock()
	h.items, h.current = nil, ""
	h.mu.Unlock()
}

func (h *History) saveLocked() {
	items := h.items
	if items == nil {
		items = []HistoryItem{}
	}
	persist(h.blob, historyBlob, historyDoc{SearchHistory: items})
}
