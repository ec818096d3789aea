// Package version carries build identification injected at link time.
package version

import "strings"

// Set with -ldflags "-X watchrun/internal/version.Version=...".
var (
	Version   = "dev"
	Built     = ""
	GitCommit = ""
)

// String renders the build identification for the -version flag.
func String() string {
	parts := []string{Version}
	if GitCommit != "" {
		parts = append(parts, "commit "+GitCommit)
	}
	if Built != "" {
		parts = append(parts, "built "+Built)
	}
	return strings.Join(parts, ", ")
}
