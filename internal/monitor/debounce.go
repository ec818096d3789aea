package monitor

import (
	"strconv"
	"time"

	"watchrun/internal/event"

	"github.com/fsnotify/fsnotify"
)

// handleRaw coalesces a raw notification into the pending window. The first
// event of a window arms the flush timer; later events merge into it.
func (m *Monitor) handleRaw(raw fsnotify.Event) {
	kind := m.classify(raw)

	m.mutex.Lock()
	if m.closed || m.pending == nil {
		m.mutex.Unlock()
		return
	}
	m.pending[raw.Name] = mergeKinds(m.pending[raw.Name], kind)
	if m.flushTimer == nil {
		m.flushTimer = m.newFlushTimer()
	}
	m.mutex.Unlock()
}

// mergeKinds keeps a create that is immediately written to as a create, so a
// new file does not masquerade as a pure content change.
func mergeKinds(previous, next event.Kind) event.Kind {
	if previous.IsCreate() && next == event.KindContentChange {
		return previous
	}
	return next
}

// flush groups the window's coalesced paths by kind into one batch.
func (m *Monitor) flush() {
	m.mutex.Lock()
	if m.closed || len(m.pending) == 0 {
		m.flushTimer = nil
		m.mutex.Unlock()
		return
	}
	pending := m.pending
	m.pending = make(map[string]event.Kind)
	m.flushTimer = nil
	m.mutex.Unlock()

	byKind := make(map[event.Kind][]string)
	for path, kind := range pending {
		byKind[kind] = append(byKind[kind], path)
	}
	events := make([]event.Event, 0, len(byKind))
	for kind, paths := range byKind {
		events = append(events, event.Event{Kind: kind, Paths: paths})
	}

	m.logDebug("flushing debounced events", map[string]string{
		"count": strconv.Itoa(len(events)),
	})
	m.send(event.Batch{Events: events})
}

func (m *Monitor) newFlushTimer() *time.Timer {
	return time.AfterFunc(m.debounce, m.flush)
}
