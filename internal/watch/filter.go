package watch

import (
	"path/filepath"
	"strings"

	"watchrun/internal/config"
	"watchrun/internal/event"
)

// Filter is a pure predicate over events. A nil EventKinds or Extensions set
// means that check is skipped entirely.
type Filter struct {
	EventKinds     map[string]struct{}
	Extensions     map[string]struct{}
	IgnorePatterns []string
}

func FilterFromConfig(cfg config.Filter) Filter {
	return Filter{
		EventKinds:     toSet(cfg.EventKinds),
		Extensions:     toSet(cfg.Extensions),
		IgnorePatterns: cfg.IgnorePatterns,
	}
}

func toSet(values []string) map[string]struct{} {
	if values == nil {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}

// Keep reports whether the event passes all configured checks: kind, then
// ignore patterns, then extensions. An ignore match rejects the event
// outright before the extension check runs.
func (f Filter) Keep(ev event.Event) bool {
	if f.EventKinds != nil && !f.kindAllowed(ev.Kind) {
		return false
	}

	for _, path := range ev.Paths {
		for _, pattern := range f.IgnorePatterns {
			if strings.Contains(path, pattern) {
				return false
			}
		}
	}

	if f.Extensions != nil {
		for _, path := range ev.Paths {
			ext := pathExtension(path)
			if ext == "" {
				return false
			}
			if _, ok := f.Extensions[ext]; !ok {
				return false
			}
		}
	}

	return true
}

func (f Filter) kindAllowed(kind event.Kind) bool {
	for name := range f.EventKinds {
		if kind.MatchesName(name) {
			return true
		}
	}
	return false
}

// pathExtension returns the dot-prefixed extension, or "" when the path has
// none. A leading dot alone (dotfiles) does not count as an extension.
func pathExtension(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext == "" || ext == base {
		return ""
	}
	return ext
}
