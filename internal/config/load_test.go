package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
log-level = "debug"
debounce-ms = 250

[[watch]]
path = "/tmp/watched"
recursive = true

[watch.filter]
event-kinds = ["create", "modify"]
extensions = [".log"]
ignore-patterns = ["~", ".swp"]

[[watch.actions]]
event = "create_file"
command = "echo created {}"

[[watch.actions]]
event = "any"
command = "echo changed {}"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("log-level = %q", cfg.LogLevel)
	}
	if cfg.DebounceMS != 250 {
		t.Fatalf("debounce-ms = %d", cfg.DebounceMS)
	}
	if len(cfg.Watches) != 1 {
		t.Fatalf("expected 1 watch, got %d", len(cfg.Watches))
	}
	watch := cfg.Watches[0]
	if watch.Path != "/tmp/watched" || !watch.Recursive {
		t.Fatalf("watch = %+v", watch)
	}
	if len(watch.Filter.EventKinds) != 2 || len(watch.Filter.Extensions) != 1 || len(watch.Filter.IgnorePatterns) != 2 {
		t.Fatalf("filter = %+v", watch.Filter)
	}
	if len(watch.Actions) != 2 || watch.Actions[0].Event != "create_file" {
		t.Fatalf("actions = %+v", watch.Actions)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
[[watch]]
path = "/tmp/x"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Fatalf("default log-level = %q", cfg.LogLevel)
	}
	if cfg.DebounceMS != DefaultDebounceMS {
		t.Fatalf("default debounce-ms = %d", cfg.DebounceMS)
	}
	if cfg.Watches[0].Recursive {
		t.Fatal("recursive must default to false")
	}
	if cfg.Watches[0].Filter.EventKinds != nil {
		t.Fatal("absent filter fields must decode as nil")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil {
		t.Fatal("expected an error for a missing config file")
	}
	if !strings.Contains(err.Error(), "read config file") {
		t.Fatalf("error must name the failure: %v", err)
	}
}

func TestLoadParseErrorCarriesPosition(t *testing.T) {
	path := writeConfig(t, "log-level = [broken\n")
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("error must name the file: %v", err)
	}
}

func TestEffectiveLogLevelEnvOverride(t *testing.T) {
	cfg := Config{LogLevel: "info"}
	t.Setenv(EnvLogLevel, "debug")
	if got := cfg.EffectiveLogLevel(); got != "debug" {
		t.Fatalf("environment must win, got %q", got)
	}

	t.Setenv(EnvLogLevel, "")
	if got := cfg.EffectiveLogLevel(); got != "info" {
		t.Fatalf("file value must apply without the env var, got %q", got)
	}
}

func TestExpandPathEnvironment(t *testing.T) {
	t.Setenv("WATCHRUN_CONFIG_TEST", "/data")
	got, err := ExpandPath("$WATCHRUN_CONFIG_TEST/logs")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != "/data/logs" {
		t.Fatalf("expanded = %q", got)
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	got, err := ExpandPath("~/logs")
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if got != filepath.Join(home, "logs") {
		t.Fatalf("expanded = %q", got)
	}
}

func TestResolveRootFallsBackWhenMissing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "ghost")
	got, err := ResolveRoot(missing)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != missing {
		t.Fatalf("missing target must fall back to the expanded absolute path, got %q", got)
	}
}

func TestResolveRootFollowsSymlinks(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real")
	if err := os.Mkdir(target, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	link := filepath.Join(dir, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got, err := ResolveRoot(link)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	resolved, err := filepath.EvalSymlinks(target)
	if err != nil {
		t.Fatalf("eval target: %v", err)
	}
	if got != resolved {
		t.Fatalf("resolved = %q, want %q", got, resolved)
	}
}

func TestSchemaJSON(t *testing.T) {
	payload, err := SchemaJSON()
	if err != nil {
		t.Fatalf("schema: %v", err)
	}
	for _, key := range []string{"log-level", "debounce-ms", "watch"} {
		if !strings.Contains(string(payload), key) {
			t.Fatalf("schema missing %q", key)
		}
	}
}
