// Package monitor turns raw fsnotify notifications into debounced event
// batches. It owns the OS-level watches, including recursive registration,
// and is the producer side of the bounded batch channel consumed by the
// orchestrator.
package monitor

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"watchrun/internal/event"
	"watchrun/internal/logging"

	"github.com/fsnotify/fsnotify"
)

const (
	defaultDebounce = 500 * time.Millisecond
	defaultCapacity = 100
)

// Options controls monitor behavior.
type Options struct {
	Debounce time.Duration
	Capacity int
	Logger   *logging.Logger
}

// Monitor is the fsnotify-backed notification source.
type Monitor struct {
	watcher  *fsnotify.Watcher
	batches  chan event.Batch
	done     chan struct{}
	wg       sync.WaitGroup
	logger   *logging.Logger
	debounce time.Duration

	mutex          sync.Mutex
	closed         bool
	pending        map[string]event.Kind
	flushTimer     *time.Timer
	watchedDirs    map[string]struct{}
	recursiveRoots []string
}

// New creates a monitor. The batch channel capacity is the single explicit
// bound between the notification callbacks and the dispatch loop; a full
// channel suspends the producer.
func New(options Options) (*Monitor, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	debounce := options.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	capacity := options.Capacity
	if capacity <= 0 {
		capacity = defaultCapacity
	}

	monitor := &Monitor{
		watcher:     watcher,
		batches:     make(chan event.Batch, capacity),
		done:        make(chan struct{}),
		logger:      options.Logger,
		debounce:    debounce,
		pending:     make(map[string]event.Kind),
		watchedDirs: make(map[string]struct{}),
	}

	monitor.wg.Add(1)
	go monitor.run()
	return monitor, nil
}

// Batches returns the channel of debounced event batches. It is closed when
// the monitor shuts down.
func (m *Monitor) Batches() <-chan event.Batch {
	return m.batches
}

// Add registers an OS watch for root. Recursive registration walks and
// watches every subdirectory; new subdirectories are picked up as they are
// created. A failure here means this root cannot be observed, but other
// watches proceed.
func (m *Monitor) Add(root string, recursive bool) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	if err := m.watcher.Add(root); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}

	m.mutex.Lock()
	if info.IsDir() {
		m.watchedDirs[root] = struct{}{}
	}
	if recursive && info.IsDir() {
		m.recursiveRoots = append(m.recursiveRoots, root)
	}
	m.mutex.Unlock()

	if recursive && info.IsDir() {
		if err := m.addSubdirectories(root); err != nil {
			return fmt.Errorf("watch %s: %w", root, err)
		}
	}
	return nil
}

// Close stops raw event intake, flushes nothing further, and closes the
// batch channel once the run loop has exited.
func (m *Monitor) Close() error {
	m.mutex.Lock()
	if m.closed {
		m.mutex.Unlock()
		return nil
	}
	m.closed = true
	if m.flushTimer != nil {
		m.flushTimer.Stop()
		m.flushTimer = nil
	}
	m.pending = nil
	m.mutex.Unlock()

	close(m.done)
	err := m.watcher.Close()
	m.wg.Wait()
	close(m.batches)
	if err != nil && !errors.Is(err, fsnotify.ErrClosed) {
		return err
	}
	return nil
}

func (m *Monitor) run() {
	defer m.wg.Done()
	for {
		select {
		case raw, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			m.handleRaw(raw)
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			m.send(event.Batch{Errors: []error{err}})
		case <-m.done:
			return
		}
	}
}

// send delivers a batch, suspending while the channel is full. Delivery is
// abandoned on shutdown.
func (m *Monitor) send(batch event.Batch) {
	select {
	case m.batches <- batch:
	case <-m.done:
	}
}

func (m *Monitor) logDebug(message string, fields map[string]string) {
	if m.logger != nil {
		m.logger.Debug(message, fields)
	}
}

func (m *Monitor) logWarn(message string, fields map[string]string) {
	if m.logger != nil {
		m.logger.Warn(message, fields)
	}
}
