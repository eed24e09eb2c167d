// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/bale/internal/core/domain"
)

// Engine is the external bundling engine. It is the only collaborator this
// core drives: one capability for a single build, one for a long-lived watch
// session. Any concrete engine can sit behind it.
//
//go:generate mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mocks
type Engine interface {
	// Build invokes the engine exactly once with the effective configuration
	// and returns the artifact it reports. Engine diagnostics are surfaced
	// in the returned error verbatim, never rewritten.
	Build(ctx context.Context, cfg domain.EffectiveConfig) (domain.Artifact, error)

	// Watch opens a live session for one configuration. The engine performs
	// its own change detection and reports the initial build and every
	// rebuild through onBuild. The session stays open across failed
	// rebuilds; it ends only when terminated.
	Watch(ctx context.Context, cfg domain.EffectiveConfig, onBuild func(domain.BuildResult)) (WatchSession, error)
}

// WatchSession is a live engine watch handle.
type WatchSession interface {
	// Terminate stops change detection and releases the session's resources.
	Terminate() error
}
