// Package esbuild adapts the esbuild bundling engine to the Engine port.
package esbuild

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/evanw/esbuild/pkg/api"
	"go.trai.ch/bale/internal/core/domain"
	"go.trai.ch/bale/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Engine = (*Engine)(nil)

// Engine drives esbuild in-process through its Go API.
type Engine struct {
	logger ports.Logger
}

// NewEngine creates a new esbuild engine adapter.
func NewEngine(logger ports.Logger) *Engine {
	return &Engine{logger: logger}
}

// Build runs one bundle pass and reports the written artifact.
func (e *Engine) Build(_ context.Context, cfg domain.EffectiveConfig) (domain.Artifact, error) {
	opts, err := buildOptions(cfg)
	if err != nil {
		return domain.Artifact{}, err
	}

	res := api.Build(opts)
	if len(res.Errors) > 0 {
		return domain.Artifact{}, buildError(res.Errors)
	}
	e.logWarnings(res.Warnings)

	return e.describe(cfg.Outfile), nil
}

// Watch opens a persistent session using esbuild's own change detection.
// The initial build and every rebuild are reported through onBuild; esbuild
// keeps watching after a failed rebuild, so the session outlives failures.
func (e *Engine) Watch(
	_ context.Context,
	cfg domain.EffectiveConfig,
	onBuild func(domain.BuildResult),
) (ports.WatchSession, error) {
	opts, err := buildOptions(cfg)
	if err != nil {
		return nil, err
	}

	opts.Watch = &api.WatchMode{
		OnRebuild: func(res api.BuildResult) {
			onBuild(e.result(cfg, res))
		},
	}

	res := api.Build(opts)
	if res.Stop == nil {
		if len(res.Errors) > 0 {
			return nil, zerr.Wrap(buildError(res.Errors), domain.ErrWatchStartFailed.Error())
		}
		return nil, domain.ErrWatchStartFailed
	}

	onBuild(e.result(cfg, res))

	return &session{stop: res.Stop}, nil
}

// result converts an engine build result for one target.
func (e *Engine) result(cfg domain.EffectiveConfig, res api.BuildResult) domain.BuildResult {
	if len(res.Errors) > 0 {
		return domain.BuildResult{Target: cfg.Name, Err: buildError(res.Errors)}
	}
	e.logWarnings(res.Warnings)
	artifact := e.describe(cfg.Outfile)
	return domain.BuildResult{Target: cfg.Name, Artifact: &artifact}
}

// describe stats and digests the written artifact. The digest is best
// effort: a build whose output cannot be read back is still a success.
func (e *Engine) describe(path string) domain.Artifact {
	artifact := domain.Artifact{Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		return artifact
	}
	artifact.Size = int64(len(data))
	artifact.Digest = fmt.Sprintf("%016x", xxhash.Sum64(data))
	return artifact
}

func (e *Engine) logWarnings(warnings []api.Message) {
	for _, msg := range api.FormatMessages(warnings, api.FormatMessagesOptions{
		Kind: api.WarningMessage,
	}) {
		e.logger.Warn(strings.TrimRight(msg, "\n"))
	}
}

// buildError collapses engine diagnostics into one error. The message text
// is esbuild's own formatting, surfaced verbatim.
func buildError(errs []api.Message) error {
	formatted := api.FormatMessages(errs, api.FormatMessagesOptions{
		Kind: api.ErrorMessage,
	})
	return zerr.New(strings.TrimSpace(strings.Join(formatted, "")))
}

type session struct {
	stop func()
}

// Terminate stops esbuild's file watchers for this session.
func (s *session) Terminate() error {
	s.stop()
	return nil
}
