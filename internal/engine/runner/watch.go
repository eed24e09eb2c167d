package runner

import (
	"context"
	"sync"

	"go.trai.ch/bale/internal/core/domain"
	"go.trai.ch/bale/internal/core/ports"
	"go.trai.ch/zerr"
)

// SessionState is the lifecycle state of a watch session.
type SessionState string

const (
	// SessionActive indicates the session is accepting change events and
	// rebuilding.
	SessionActive SessionState = "Active"
	// SessionTerminated indicates the session has been stopped and all
	// resources released.
	SessionTerminated SessionState = "Terminated"
)

// WatchSession is one live rebuild session bound to a single merged
// configuration. It has exactly two states: Active and Terminated. A failed
// rebuild is reported and the session stays Active; only Terminate moves it
// to Terminated.
type WatchSession struct {
	target string
	logger ports.Logger

	mu      sync.Mutex
	state   SessionState
	session ports.WatchSession
}

// Watch opens a live session for the given configuration. Build outcomes,
// including the initial build, are logged as they arrive.
func (r *Runner) Watch(ctx context.Context, cfg domain.EffectiveConfig) (*WatchSession, error) {
	ws := &WatchSession{
		target: cfg.Name,
		logger: r.logger,
		state:  SessionActive,
	}

	session, err := r.engine.Watch(ctx, cfg, ws.report)
	if err != nil {
		return nil, err
	}
	ws.session = session

	r.logger.Info("watching " + cfg.Name + ", interrupt to stop")
	return ws, nil
}

// State returns the session's current state.
func (ws *WatchSession) State() SessionState {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.state
}

// Wait blocks until ctx is cancelled, then terminates the session. There is
// no other way out: no timeout is applied, and a hang in the engine hangs
// the invocation.
func (ws *WatchSession) Wait(ctx context.Context) error {
	<-ctx.Done()
	return ws.Terminate()
}

// Terminate stops the session and releases the engine's watchers.
// Terminating twice is a no-op.
func (ws *WatchSession) Terminate() error {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	if ws.state == SessionTerminated {
		return nil
	}
	ws.state = SessionTerminated
	ws.logger.Info("stopped watching " + ws.target)
	return ws.session.Terminate()
}

// report handles one build outcome from the engine. A failure is logged
// with the target name and the engine diagnostic; the session keeps
// watching regardless.
func (ws *WatchSession) report(res domain.BuildResult) {
	if res.Err != nil {
		ws.logger.Error(zerr.Wrap(res.Err, "rebuild failed: "+res.Target))
		return
	}
	ws.logger.Info("rebuilt " + res.Target + " → " + res.Artifact.Path)
}
