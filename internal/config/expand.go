package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath applies home and environment expansion to a configured path.
func ExpandPath(path string) (string, error) {
	expanded := os.ExpandEnv(path)
	if expanded == "~" || strings.HasPrefix(expanded, "~"+string(os.PathSeparator)) || strings.HasPrefix(expanded, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand path %q: %w", path, err)
		}
		expanded = filepath.Join(home, strings.TrimPrefix(expanded[1:], "/"))
	}
	if strings.TrimSpace(expanded) == "" {
		return "", fmt.Errorf("expand path %q: empty after expansion", path)
	}
	return expanded, nil
}

// ResolveRoot turns a configured path into the absolute root used for
// routing. Symlinks are resolved when the target exists; a missing target
// falls back to the expanded absolute path so the watch can still be
// registered and picked up once the path is created.
func ResolveRoot(path string) (string, error) {
	expanded, err := ExpandPath(path)
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs, nil
	}
	return resolved, nil
}
