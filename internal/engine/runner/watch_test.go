package runner_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bale/internal/core/domain"
	"go.trai.ch/bale/internal/core/ports"
	"go.trai.ch/bale/internal/core/ports/mocks"
	"go.trai.ch/bale/internal/engine/runner"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

// startWatch opens a session against the mock engine and captures the
// callback the runner registered, so tests can inject build outcomes.
func startWatch(t *testing.T, f *fixture) (*runner.WatchSession, func(domain.BuildResult), *mocks.MockWatchSession) {
	t.Helper()

	ctrl := gomock.NewController(t)
	engineSession := mocks.NewMockWatchSession(ctrl)

	var onBuild func(domain.BuildResult)
	f.engine.EXPECT().Watch(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ domain.EffectiveConfig, cb func(domain.BuildResult)) (ports.WatchSession, error) {
			onBuild = cb
			return engineSession, nil
		})

	ws, err := f.runner.Watch(context.Background(), testConfig("app"))
	require.NoError(t, err)
	require.NotNil(t, onBuild)

	return ws, onBuild, engineSession
}

func TestWatch_StartsActive(t *testing.T) {
	f := newFixture(t)

	ws, _, _ := startWatch(t, f)
	assert.Equal(t, runner.SessionActive, ws.State())
}

func TestWatch_StartFailure(t *testing.T) {
	f := newFixture(t)

	startErr := zerr.New("entry point not found")
	f.engine.EXPECT().Watch(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, startErr)

	_, err := f.runner.Watch(context.Background(), testConfig("app"))
	assert.ErrorIs(t, err, startErr)
}

func TestWatch_FailedRebuildKeepsSessionActive(t *testing.T) {
	f := newFixture(t)
	ws, onBuild, _ := startWatch(t, f)

	onBuild(domain.BuildResult{Target: "app", Artifact: &domain.Artifact{Path: "dist/app.js"}})
	onBuild(domain.BuildResult{Target: "app", Err: zerr.New("src/app.ts: unexpected token")})
	assert.Equal(t, runner.SessionActive, ws.State())

	onBuild(domain.BuildResult{Target: "app", Artifact: &domain.Artifact{Path: "dist/app.js"}})
	assert.Equal(t, runner.SessionActive, ws.State())
}

func TestWatchSession_Terminate(t *testing.T) {
	f := newFixture(t)
	ws, _, engineSession := startWatch(t, f)

	engineSession.EXPECT().Terminate().Return(nil)

	require.NoError(t, ws.Terminate())
	assert.Equal(t, runner.SessionTerminated, ws.State())

	// A second call must not reach the engine again.
	require.NoError(t, ws.Terminate())
}

func TestWatchSession_WaitTerminatesOnCancel(t *testing.T) {
	f := newFixture(t)
	ws, _, engineSession := startWatch(t, f)

	engineSession.EXPECT().Terminate().Return(nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- ws.Wait(ctx) }()

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, runner.SessionTerminated, ws.State())
}
