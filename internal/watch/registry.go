// Package watch holds the immutable set of configured watches and the pure
// routing, filtering and action-matching logic applied to each event.
package watch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"watchrun/internal/config"
	"watchrun/internal/event"
)

// Action pairs an event selector with a command template. Order within a
// watch is significant: the first selector that matches wins.
type Action struct {
	Event   string
	Command string
}

// Spec is one configured watch. Path is the expanded configuration path;
// Root resolves it on demand so a root created after startup is picked up.
type Spec struct {
	Path      string
	Recursive bool
	Filter    Filter
	Actions   []Action
}

// FromConfig expands and validates a configured watch block.
func FromConfig(cfg config.Watch) (Spec, error) {
	expanded, err := config.ExpandPath(cfg.Path)
	if err != nil {
		return Spec{}, err
	}
	actions := make([]Action, 0, len(cfg.Actions))
	for _, action := range cfg.Actions {
		actions = append(actions, Action{Event: action.Event, Command: action.Command})
	}
	return Spec{
		Path:      expanded,
		Recursive: cfg.Recursive,
		Filter:    FilterFromConfig(cfg.Filter),
		Actions:   actions,
	}, nil
}

// Root resolves the watch root to an absolute path.
func (s Spec) Root() (string, error) {
	root, err := config.ResolveRoot(s.Path)
	if err != nil {
		return "", fmt.Errorf("resolve watch root %q: %w", s.Path, err)
	}
	return root, nil
}

// Builder accumulates watch registrations during setup. Build yields the
// immutable registry; the builder must not be reused afterward.
type Builder struct {
	specs []Spec
}

func (b *Builder) Add(spec Spec) {
	b.specs = append(b.specs, spec)
}

func (b *Builder) Build() *Registry {
	specs := make([]Spec, len(b.specs))
	copy(specs, b.specs)
	return &Registry{specs: specs}
}

// Registry is the read-only watch list shared by all concurrent consumers.
type Registry struct {
	specs []Spec
}

// Specs returns the configured watches in configuration order.
func (r *Registry) Specs() []Spec {
	if r == nil {
		return nil
	}
	return r.specs
}

// Len reports the number of configured watches.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.specs)
}

// Route returns the watches an event concerns, in configuration order. A
// watch is relevant when at least one event path is the watch root itself or
// a descendant of it. Watches whose root cannot currently be resolved are
// excluded for this event.
func (r *Registry) Route(ev event.Event) []Spec {
	if r == nil {
		return nil
	}
	var relevant []Spec
	for _, spec := range r.specs {
		root, err := spec.Root()
		if err != nil {
			continue
		}
		for _, path := range ev.Paths {
			if isWithinPath(root, path) {
				relevant = append(relevant, spec)
				break
			}
		}
	}
	return relevant
}

// isWithinPath reports containment on the filesystem hierarchy, not by
// string prefix.
func isWithinPath(parent, child string) bool {
	rel, err := filepath.Rel(filepath.Clean(parent), filepath.Clean(child))
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return false
	}
	return true
}
