// Package runner drives the bundling engine: single builds, aggregate
// builds across the registry, and live watch sessions.
package runner

import (
	"context"

	"go.trai.ch/bale/internal/core/domain"
	"go.trai.ch/bale/internal/core/ports"
)

// Runner executes builds against the configured engine.
type Runner struct {
	engine ports.Engine
	logger ports.Logger
	tracer ports.Tracer
}

// New creates a new Runner.
func New(engine ports.Engine, logger ports.Logger, tracer ports.Tracer) *Runner {
	return &Runner{
		engine: engine,
		logger: logger,
		tracer: tracer,
	}
}

// BuildOne invokes the engine once for the given effective configuration.
// The engine's diagnostic is carried on the result untouched.
func (r *Runner) BuildOne(ctx context.Context, cfg domain.EffectiveConfig) domain.BuildResult {
	r.logger.Info("building " + cfg.Name)

	ctx, end := r.tracer.StartSpan(ctx, "build "+cfg.Name)
	artifact, err := r.engine.Build(ctx, cfg)
	end(err)

	if err != nil {
		return domain.BuildResult{Target: cfg.Name, Err: err}
	}
	return domain.BuildResult{Target: cfg.Name, Artifact: &artifact}
}

// BuildAll builds every registered target sequentially, in registration
// order, merging each against the shared defaults with no overrides.
//
// One result is returned per registered target no matter how many builds
// fail: a broken target never prevents its siblings from being attempted,
// and never masks their outcomes. Builds run one at a time on purpose; the
// target count is small and deterministic, attributable reporting is worth
// more than throughput here.
func (r *Runner) BuildAll(ctx context.Context, registry *domain.Registry) []domain.BuildResult {
	results := make([]domain.BuildResult, 0, registry.Len())

	for _, name := range registry.Names() {
		target, err := registry.Lookup(name)
		if err != nil {
			results = append(results, domain.BuildResult{Target: name, Err: err})
			continue
		}

		cfg, err := domain.Merge(registry.Defaults(), target, domain.Overrides{})
		if err != nil {
			results = append(results, domain.BuildResult{Target: name, Err: err})
			continue
		}

		results = append(results, r.BuildOne(ctx, cfg))
	}

	return results
}
