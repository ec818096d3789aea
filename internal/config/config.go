// Package config loads the TOML configuration that declares which paths to
// watch and which commands their events trigger.
package config

const (
	DefaultLogLevel   = "info"
	DefaultDebounceMS = 500

	// EnvLogLevel overrides the config file's log-level when set.
	EnvLogLevel = "WATCHRUN_LOG_LEVEL"
)

type Config struct {
	LogLevel   string  `toml:"log-level" json:"log-level,omitempty" jsonschema:"description=Minimum log level: debug, info, warning or error"`
	DebounceMS int64   `toml:"debounce-ms" json:"debounce-ms,omitempty" jsonschema:"description=Event coalescing window in milliseconds"`
	Listen     string  `toml:"listen" json:"listen,omitempty" jsonschema:"description=Optional host:port for the websocket log stream; empty disables it"`
	Watches    []Watch `toml:"watch" json:"watch,omitempty"`
}

type Watch struct {
	Path      string   `toml:"path" json:"path" jsonschema:"description=Path to watch; supports ~ and $VAR expansion"`
	Recursive bool     `toml:"recursive" json:"recursive,omitempty"`
	Filter    Filter   `toml:"filter" json:"filter,omitempty"`
	Actions   []Action `toml:"actions" json:"actions,omitempty"`
}

type Action struct {
	Event   string `toml:"event" json:"event" jsonschema:"description=Event selector: any, a category name or a primary kind label"`
	Command string `toml:"command" json:"command" jsonschema:"description=Shell command template; every {} is replaced with the affected path"`
}

// Filter narrows which events a watch reacts to. A nil slice means the
// corresponding check is skipped; an explicitly empty list rejects everything
// that check covers.
type Filter struct {
	EventKinds     []string `toml:"event-kinds" json:"event-kinds,omitempty"`
	Extensions     []string `toml:"extensions" json:"extensions,omitempty" jsonschema:"description=Dot-prefixed extensions, e.g. \".log\""`
	IgnorePatterns []string `toml:"ignore-patterns" json:"ignore-patterns,omitempty" jsonschema:"description=Substrings; any match rejects the event"`
}

func (c *Config) applyDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	if c.DebounceMS <= 0 {
		c.DebounceMS = DefaultDebounceMS
	}
}
