package monitor

import (
	"io/fs"
	"path/filepath"
)

// addSubdirectories walks root and registers a watch for every directory
// below it. Walk errors on individual entries are skipped so one unreadable
// directory does not abort the rest of the tree.
func (m *Monitor) addSubdirectories(root string) error {
	var dirs []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !entry.IsDir() || path == root {
			return nil
		}
		dirs = append(dirs, path)
		return nil
	})
	if err != nil {
		return err
	}

	for _, dir := range dirs {
		if err := m.watchDirectory(dir); err != nil {
			return err
		}
	}
	return nil
}

// handleNewDirectory extends recursive coverage when a directory appears
// under a recursive root, so trees stay watched as they grow.
func (m *Monitor) handleNewDirectory(path string) {
	m.mutex.Lock()
	roots := m.recursiveRoots
	m.mutex.Unlock()

	for _, root := range roots {
		if isUnder(root, path) {
			if err := m.watchDirectory(path); err != nil {
				m.logWarn("watch add failed for new directory", map[string]string{
					"path":  path,
					"error": err.Error(),
				})
			}
			return
		}
	}
}

func (m *Monitor) watchDirectory(dir string) error {
	m.mutex.Lock()
	if m.closed {
		m.mutex.Unlock()
		return nil
	}
	if _, ok := m.watchedDirs[dir]; ok {
		m.mutex.Unlock()
		return nil
	}
	m.watchedDirs[dir] = struct{}{}
	m.mutex.Unlock()

	if err := m.watcher.Add(dir); err != nil {
		m.forgetDirectory(dir)
		return err
	}
	m.logDebug("watch added", map[string]string{"path": dir})
	return nil
}

func isUnder(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != ".." && !filepath.IsAbs(rel) && rel != "." && !hasDotDotPrefix(rel)
}

func hasDotDotPrefix(rel string) bool {
	return len(rel) >= 3 && rel[:3] == ".."+string(filepath.Separator)
}
