// Package orchestrator consumes debounced event batches and fans each event
// through routing, filtering and action matching, dispatching matched
// commands as independent concurrent units with isolated failure handling.
package orchestrator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"watchrun/internal/action"
	"watchrun/internal/event"
	"watchrun/internal/logging"
	"watchrun/internal/watch"

	"golang.org/x/time/rate"
)

// ErrSourceClosed reports that the batch source closed without a shutdown
// request, which is an anomaly of the notification layer.
var ErrSourceClosed = errors.New("event source closed unexpectedly")

const (
	defaultErrorLogInterval = time.Second
	defaultErrorLogBurst    = 10
)

// Executor runs one rendered action; injectable for tests.
type Executor func(ctx context.Context, template, path string) (action.Outcome, error)

// Options tunes orchestrator behavior.
type Options struct {
	Executor Executor
	// ErrorLogInterval throttles error-level logging of repeated
	// notification-layer failures; throttled entries still appear at debug.
	ErrorLogInterval time.Duration
}

type Orchestrator struct {
	registry *watch.Registry
	logger   *logging.Logger
	execute  Executor
	limiter  *rate.Limiter
	wg       sync.WaitGroup
}

func New(registry *watch.Registry, logger *logging.Logger, options Options) *Orchestrator {
	execute := options.Executor
	if execute == nil {
		execute = action.Execute
	}
	interval := options.ErrorLogInterval
	if interval <= 0 {
		interval = defaultErrorLogInterval
	}
	return &Orchestrator{
		registry: registry,
		logger:   logger,
		execute:  execute,
		limiter:  rate.NewLimiter(rate.Every(interval), defaultErrorLogBurst),
	}
}

// Run consumes batches until ctx is canceled or the source closes. Each
// event is processed as an independent goroutine; one event never blocks
// another, nor a later batch's arrival. On shutdown, already-dispatched
// actions run to completion before Run returns; canceling ctx only stops
// intake of new batches.
func (o *Orchestrator) Run(ctx context.Context, batches <-chan event.Batch) error {
	// Actions outlive cancellation so in-flight subprocesses are not killed
	// mid-run.
	actionCtx := context.WithoutCancel(ctx)

	for {
		select {
		case <-ctx.Done():
			o.logger.Info("shutdown requested, waiting for in-flight actions", nil)
			o.wg.Wait()
			return nil
		case batch, ok := <-batches:
			if !ok {
				o.logger.Warn("event source closed unexpectedly", nil)
				o.wg.Wait()
				return ErrSourceClosed
			}
			o.handleBatch(actionCtx, batch)
		}
	}
}

func (o *Orchestrator) handleBatch(ctx context.Context, batch event.Batch) {
	for _, err := range batch.Errors {
		fields := map[string]string{"error": err.Error()}
		if o.limiter.Allow() {
			o.logger.Error("notification layer error", fields)
		} else {
			o.logger.Debug("notification layer error (throttled)", fields)
		}
	}

	for _, ev := range batch.Events {
		o.wg.Add(1)
		go func(ev event.Event) {
			defer o.wg.Done()
			o.processEvent(ctx, ev)
		}(ev)
	}
}

// processEvent runs one event through the pipeline: route to the watches it
// concerns, filter, pick the first matching action, and dispatch it for
// every path in the event.
func (o *Orchestrator) processEvent(ctx context.Context, ev event.Event) {
	for _, spec := range o.registry.Route(ev) {
		if !spec.Filter.Keep(ev) {
			o.logger.Debug("event filtered out", map[string]string{
				"watch": spec.Path,
				"kind":  ev.Kind.String(),
			})
			continue
		}

		matched, skipped, ok := spec.MatchAction(ev)
		for _, empty := range skipped {
			o.logger.Warn("action has empty command, skipping", map[string]string{
				"event": empty.Event,
				"watch": spec.Path,
			})
		}
		if !ok {
			continue
		}

		for _, path := range ev.Paths {
			o.wg.Add(1)
			go func(path string) {
				defer o.wg.Done()
				o.runAction(ctx, matched, path)
			}(path)
		}
	}
}

// runAction executes one action for one path. Failures are logged here and
// never propagate to sibling actions, events, or the process.
func (o *Orchestrator) runAction(ctx context.Context, act watch.Action, path string) {
	outcome, err := o.execute(ctx, act.Command, path)
	if err != nil {
		fields := map[string]string{
			"command": act.Command,
			"path":    path,
			"error":   err.Error(),
		}
		if stderr := strings.TrimSpace(outcome.Stderr); stderr != "" {
			fields["stderr"] = stderr
		}
		o.logger.Error("action execution failed", fields)
		return
	}

	fields := map[string]string{
		"command": act.Command,
		"path":    path,
	}
	if stdout := strings.TrimSpace(outcome.Stdout); stdout != "" {
		fields["stdout"] = stdout
	}
	o.logger.Debug("action executed", fields)
}
