// Package app implements the application layer for bale.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"go.trai.ch/bale/internal/adapters/watcher"
	"go.trai.ch/bale/internal/core/domain"
	"go.trai.ch/bale/internal/core/ports"
	"go.trai.ch/bale/internal/engine/runner"
	"go.trai.ch/bale/internal/ui/report"
	"golang.org/x/sync/errgroup"
)

// App represents the main application logic.
type App struct {
	loader ports.ConfigLoader
	engine ports.Engine
	logger ports.Logger
	tracer ports.Tracer
	out    io.Writer
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, engine ports.Engine, log ports.Logger, tracer ports.Tracer) *App {
	return &App{
		loader: loader,
		engine: engine,
		logger: log,
		tracer: tracer,
		out:    os.Stdout,
	}
}

// WithOutput redirects the build report. Used for testing.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// BuildOptions configuration for the Build method.
type BuildOptions struct {
	// Overrides are caller-supplied settings that win over both the target
	// declaration and the shared defaults.
	Overrides domain.Overrides
}

// Build builds one named target, or every registered target when name is
// empty. The aggregate path attempts every target and reports every
// outcome; it fails the invocation when at least one target failed, after
// the full report has been written.
func (a *App) Build(ctx context.Context, name string, opts BuildOptions) error {
	registry, err := a.loader.Load(".")
	if err != nil {
		return err
	}

	run := runner.New(a.engine, a.logger, a.tracer)

	if name == "" {
		results := run.BuildAll(ctx, registry)
		report.Render(a.out, results)
		if failed := domain.FailureCount(results); failed > 0 {
			// Every target was attempted and reported; the non-zero exit is
			// all that is left to signal.
			return domain.Tag(domain.ErrBuildFailed, "failed_targets", strconv.Itoa(failed))
		}
		return nil
	}

	target, err := registry.Lookup(name)
	if err != nil {
		return err
	}
	cfg, err := domain.Merge(registry.Defaults(), target, opts.Overrides)
	if err != nil {
		return err
	}

	result := run.BuildOne(ctx, cfg)
	report.Render(a.out, []domain.BuildResult{result})
	if result.Failed() {
		return errors.Join(domain.ErrBuildFailed, result.Err)
	}
	return nil
}

// Watch opens a live rebuild session for one target and blocks until the
// process is interrupted. There is no all-targets watch mode: multiple
// concurrent sessions against one output stream would interleave beyond
// use.
func (a *App) Watch(ctx context.Context, name string) error {
	if name == "" {
		return domain.ErrWatchTargetRequired
	}

	registry, err := a.loader.Load(".")
	if err != nil {
		return err
	}
	target, err := registry.Lookup(name)
	if err != nil {
		return err
	}
	cfg, err := domain.Merge(registry.Defaults(), target, domain.Overrides{})
	if err != nil {
		return err
	}

	session, err := runner.New(a.engine, a.logger, a.tracer).Watch(ctx, cfg)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return session.Wait(ctx)
	})

	// Best effort: warn when the balefile changes under the session. The
	// session itself keeps the configuration it was started with, and a
	// broken watcher never takes the session down.
	if cw, err := a.watchConfig(); err != nil {
		a.logger.Warn("balefile change detection unavailable: " + err.Error())
	} else {
		g.Go(func() error {
			<-ctx.Done()
			return cw.Close()
		})
	}

	return g.Wait()
}

// watchConfig discovers the balefile backing the current session and opens
// a change watcher on it.
func (a *App) watchConfig() (*watcher.ConfigWatcher, error) {
	configPath, err := a.loader.DiscoverConfigPath(".")
	if err != nil {
		return nil, err
	}
	return watcher.NewConfigWatcher(configPath, a.logger)
}

// List writes the registered target names to w in registration order.
func (a *App) List(w io.Writer) error {
	registry, err := a.loader.Load(".")
	if err != nil {
		return err
	}
	for _, name := range registry.Names() {
		fmt.Fprintln(w, name)
	}
	return nil
}
