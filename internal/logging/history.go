package logging

import "sync"

// History keeps the most recent entries in a fixed-size ring.
type History struct {
	mu      sync.Mutex
	entries []Entry
	start   int
	count   int
}

func NewHistory(size int) *History {
	if size <= 0 {
		size = 1
	}
	return &History{entries: make([]Entry, size)}
}

func (h *History) Add(entry Entry) {
	if h == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.count < len(h.entries) {
		h.entries[(h.start+h.count)%len(h.entries)] = entry
		h.count++
		return
	}
	h.entries[h.start] = entry
	h.start = (h.start + 1) % len(h.entries)
}

// List returns the retained entries, oldest first.
func (h *History) List() []Entry {
	if h == nil {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.count == 0 {
		return nil
	}
	out := make([]Entry, h.count)
	for i := 0; i < h.count; i++ {
		out[i] = h.entries[(h.start+i)%len(h.entries)]
	}
	return out
}
