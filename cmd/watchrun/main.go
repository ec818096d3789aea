// Command watchrun monitors filesystem events and triggers configured shell
// commands when events match per-watch filters.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"watchrun/internal/api"
	"watchrun/internal/config"
	"watchrun/internal/logging"
	"watchrun/internal/monitor"
	"watchrun/internal/orchestrator"
	"watchrun/internal/version"
	"watchrun/internal/watch"
)

const defaultConfigPath = "config.toml"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := flag.NewFlagSet("watchrun", flag.ContinueOnError)
	flags.SetOutput(os.Stderr)

	var configPath string
	flags.StringVar(&configPath, "config", defaultConfigPath, "Path to the configuration file")
	flags.StringVar(&configPath, "c", defaultConfigPath, "Path to the configuration file (shorthand)")
	printSchema := flags.Bool("schema", false, "Print the configuration JSON schema and exit")
	printVersion := flags.Bool("version", false, "Print version and exit")
	flags.BoolVar(printVersion, "v", false, "Print version and exit")

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if *printVersion {
		fmt.Println("watchrun " + version.String())
		return 0
	}
	if *printSchema {
		payload, err := config.SchemaJSON()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error building config schema: %v\n", err)
			return 1
		}
		fmt.Println(string(payload))
		return 0
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return 1
	}

	level, ok := logging.ParseLevel(cfg.EffectiveLogLevel())
	if !ok {
		level = logging.LevelInfo
	}
	logger := logging.NewLogger(level)
	logger.Info("logging initialized", map[string]string{
		"level": string(level),
	})

	registry := buildRegistry(cfg, logger)
	if registry.Len() == 0 {
		logger.Warn("no valid watch paths configured, exiting", nil)
		return 0
	}

	mon, err := monitor.New(monitor.Options{
		Debounce: time.Duration(cfg.DebounceMS) * time.Millisecond,
		Logger:   logger,
	})
	if err != nil {
		logger.Error("failed to start filesystem monitor", map[string]string{
			"error": err.Error(),
		})
		return 1
	}

	watching := registerWatches(registry, mon, logger)
	if watching == 0 {
		logger.Warn("no watch paths could be registered, exiting", nil)
		_ = mon.Close()
		return 0
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)
	stopSignalWatch := watchShutdownSignals(logger, cancel, signalCh)
	defer stopSignalWatch()

	var server *api.Server
	if cfg.Listen != "" {
		server = api.NewServer(cfg.Listen, logger)
		server.Start()
	}

	logger.Info("file system monitor started", map[string]string{
		"watches": strconv.Itoa(watching),
	})

	dispatcher := orchestrator.New(registry, logger, orchestrator.Options{})
	runErr := dispatcher.Run(ctx, mon.Batches())
	if runErr != nil {
		logger.Warn("dispatch loop ended abnormally", map[string]string{
			"error": runErr.Error(),
		})
	}

	coordinator := newShutdownCoordinator(logger)
	coordinator.Add("monitor", func(context.Context) error {
		return mon.Close()
	})
	if server != nil {
		coordinator.Add("log stream", server.Shutdown)
	}
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = coordinator.Run(shutdownCtx)

	logger.Info("watcher stopped, exiting", nil)
	return 0
}

// buildRegistry expands every configured watch block into the immutable
// registry. A watch that fails setup is logged and skipped; the rest still
// start.
func buildRegistry(cfg config.Config, logger *logging.Logger) *watch.Registry {
	if len(cfg.Watches) == 0 {
		logger.Warn("configuration loaded, but no [[watch]] sections defined", nil)
	}

	builder := watch.Builder{}
	for _, watchCfg := range cfg.Watches {
		spec, err := watch.FromConfig(watchCfg)
		if err != nil {
			logger.Error("failed to set up watch, skipping this entry", map[string]string{
				"path":  watchCfg.Path,
				"error": err.Error(),
			})
			continue
		}
		builder.Add(spec)
	}
	return builder.Build()
}

// registerWatches adds OS-level watches for every registry entry and returns
// how many succeeded. A root that does not exist yet stays in the registry
// for routing but cannot be observed until created.
func registerWatches(registry *watch.Registry, mon *monitor.Monitor, logger *logging.Logger) int {
	watching := 0
	for _, spec := range registry.Specs() {
		root, err := spec.Root()
		if err == nil {
			err = mon.Add(root, spec.Recursive)
		}
		if err != nil {
			logger.Error("failed to register watch path", map[string]string{
				"path":  spec.Path,
				"error": err.Error(),
			})
			continue
		}
		watching++
		logger.Info("started watching", map[string]string{
			"path":      root,
			"recursive": strconv.FormatBool(spec.Recursive),
		})
	}
	return watching
}
