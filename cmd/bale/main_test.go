package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/bale/internal/app"
	"go.trai.ch/bale/internal/core/domain"
	"go.trai.ch/bale/internal/core/ports"
	"go.trai.ch/bale/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockEngine := mocks.NewMockEngine(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockTracer := mocks.NewMockTracer(ctrl)

	application := app.New(mockLoader, mockEngine, mockLogger, mockTracer)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:    application,
			Logger: mockLogger,
		}, func() {}, nil
	}

	stderr := new(bytes.Buffer)

	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_BuildFailureIsNotLoggedTwice verifies that a failed build exits 1
// without re-logging: the per-target report already carried the outcome.
func TestRun_BuildFailureIsNotLoggedTwice(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockEngine := mocks.NewMockEngine(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockTracer := mocks.NewMockTracer(ctrl)

	// No Error expectation on the logger: a second log line is a regression.
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	mockTracer.EXPECT().StartSpan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.EndSpan) {
			return ctx, func(error) {}
		}).AnyTimes()

	registry, err := domain.NewRegistry(domain.NewDefaults(domain.ModeDevelopment), []domain.Target{{
		Name:        "app",
		EntryPoints: []string{"src/app.ts"},
		Outfile:     "dist/app.js",
	}})
	assert.NoError(t, err)
	mockLoader.EXPECT().Load(".").Return(registry, nil)
	mockEngine.EXPECT().Build(gomock.Any(), gomock.Any()).
		Return(domain.Artifact{}, errors.New("src/app.ts: unexpected token"))

	application := app.New(mockLoader, mockEngine, mockLogger, mockTracer).WithOutput(new(bytes.Buffer))

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:    application,
			Logger: mockLogger,
		}, func() {}, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"build"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
}

// TestRun_ExecutionError verifies that run returns 1 when the command execution fails.
func TestRun_ExecutionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockLoader := mocks.NewMockConfigLoader(ctrl)
	mockEngine := mocks.NewMockEngine(ctrl)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockTracer := mocks.NewMockTracer(ctrl)
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	application := app.New(mockLoader, mockEngine, mockLogger, mockTracer)

	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{
			App:    application,
			Logger: mockLogger,
		}, func() {}, nil
	}

	// Loading the balefile fails, so the build command fails.
	mockLoader.EXPECT().Load(".").Return(nil, errors.New("load failed"))

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"build", "app"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
}
