// Package event defines the filesystem change taxonomy and the batch unit
// carried from the notification layer to the dispatch loop.
package event

// Event is a single debounced filesystem change. Paths are absolute. An
// event is transient: produced by the monitor, consumed by one routing pass,
// then discarded.
type Event struct {
	Kind  Kind
	Paths []string
}

// Batch is one debounce-window emission: either a list of coalesced events
// or a list of notification-layer errors, never both.
type Batch struct {
	Events []Event
	Errors []error
}
