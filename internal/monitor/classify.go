package monitor

import (
	"os"

	"watchrun/internal/event"

	"github.com/fsnotify/fsnotify"
)

// classify maps a raw fsnotify operation onto the event taxonomy. Creates
// are stat-ed to tell files from folders; removed paths can no longer be
// stat-ed, so folder removals are recognized by the watch bookkeeping.
func (m *Monitor) classify(raw fsnotify.Event) event.Kind {
	switch {
	case raw.Has(fsnotify.Create):
		info, err := os.Stat(raw.Name)
		if err != nil {
			return event.KindCreateOther
		}
		if info.IsDir() {
			m.handleNewDirectory(raw.Name)
			return event.KindCreateFolder
		}
		return event.KindCreateFile
	case raw.Has(fsnotify.Write):
		return event.KindContentChange
	case raw.Has(fsnotify.Remove):
		if m.forgetDirectory(raw.Name) {
			return event.KindRemoveFolder
		}
		return event.KindRemoveFile
	case raw.Has(fsnotify.Rename):
		m.forgetDirectory(raw.Name)
		return event.KindRenameFrom
	case raw.Has(fsnotify.Chmod):
		return event.KindAccess
	}
	return event.KindUnclassified
}

// forgetDirectory drops bookkeeping for a path that was watched as a
// directory and reports whether it was one.
func (m *Monitor) forgetDirectory(path string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, ok := m.watchedDirs[path]; ok {
		delete(m.watchedDirs, path)
		return true
	}
	return false
}
