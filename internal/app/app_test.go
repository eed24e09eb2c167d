package app_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/bale/internal/app"
	"go.trai.ch/bale/internal/core/domain"
	"go.trai.ch/bale/internal/core/ports"
	"go.trai.ch/bale/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	loader *mocks.MockConfigLoader
	engine *mocks.MockEngine
	logger *mocks.MockLogger
	tracer *mocks.MockTracer
	out    *bytes.Buffer
	warns  chan string
	app    *app.App
}

func newFixture(t *testing.T) *fixture {
	ctrl := gomock.NewController(t)

	f := &fixture{
		loader: mocks.NewMockConfigLoader(ctrl),
		engine: mocks.NewMockEngine(ctrl),
		logger: mocks.NewMockLogger(ctrl),
		tracer: mocks.NewMockTracer(ctrl),
		out:    &bytes.Buffer{},
		warns:  make(chan string, 8),
	}
	f.app = app.New(f.loader, f.engine, f.logger, f.tracer).WithOutput(f.out)

	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		select {
		case f.warns <- msg:
		default:
		}
	}).AnyTimes()
	f.logger.EXPECT().Error(gomock.Any()).AnyTimes()
	f.tracer.EXPECT().StartSpan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (context.Context, ports.EndSpan) {
			return ctx, func(error) {}
		}).AnyTimes()

	return f
}

func (f *fixture) expectRegistry(t *testing.T, names ...string) *domain.Registry {
	t.Helper()

	targets := make([]domain.Target, 0, len(names))
	for _, name := range names {
		targets = append(targets, domain.Target{
			Name:        name,
			EntryPoints: []string{"src/" + name + ".ts"},
			Outfile:     "dist/" + name + ".js",
		})
	}

	registry, err := domain.NewRegistry(domain.NewDefaults(domain.ModeDevelopment), targets)
	require.NoError(t, err)
	f.loader.EXPECT().Load(".").Return(registry, nil)
	return registry
}

func TestBuild_SingleTarget(t *testing.T) {
	f := newFixture(t)
	f.expectRegistry(t, "app", "worker")

	f.engine.EXPECT().Build(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cfg domain.EffectiveConfig) (domain.Artifact, error) {
			assert.Equal(t, "worker", cfg.Name)
			return domain.Artifact{Path: cfg.Outfile, Size: 1024}, nil
		})

	err := f.app.Build(context.Background(), "worker", app.BuildOptions{})
	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "worker")
	assert.Contains(t, f.out.String(), "1 built")
}

func TestBuild_SingleTargetOverrides(t *testing.T) {
	f := newFixture(t)
	f.expectRegistry(t, "app")

	minify := true
	f.engine.EXPECT().Build(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cfg domain.EffectiveConfig) (domain.Artifact, error) {
			assert.True(t, cfg.Minify, "invocation overrides must reach the engine")
			assert.Equal(t, domain.FormatIIFE, cfg.Format)
			return domain.Artifact{Path: cfg.Outfile}, nil
		})

	err := f.app.Build(context.Background(), "app", app.BuildOptions{
		Overrides: domain.Overrides{Minify: &minify, Format: domain.FormatIIFE},
	})
	require.NoError(t, err)
}

func TestBuild_SingleTargetFailure(t *testing.T) {
	f := newFixture(t)
	f.expectRegistry(t, "app")

	buildErr := zerr.New("src/app.ts: unexpected token")
	f.engine.EXPECT().Build(gomock.Any(), gomock.Any()).Return(domain.Artifact{}, buildErr)

	err := f.app.Build(context.Background(), "app", app.BuildOptions{})
	assert.ErrorIs(t, err, domain.ErrBuildFailed)
	assert.ErrorIs(t, err, buildErr)
}

func TestBuild_UnknownTarget(t *testing.T) {
	f := newFixture(t)
	f.expectRegistry(t, "app")

	err := f.app.Build(context.Background(), "missing", app.BuildOptions{})
	assert.ErrorIs(t, err, domain.ErrTargetNotFound)
}

func TestBuild_AllTargets(t *testing.T) {
	f := newFixture(t)
	f.expectRegistry(t, "app", "worker")

	f.engine.EXPECT().Build(gomock.Any(), gomock.Any()).Times(2).
		DoAndReturn(func(_ context.Context, cfg domain.EffectiveConfig) (domain.Artifact, error) {
			return domain.Artifact{Path: cfg.Outfile}, nil
		})

	err := f.app.Build(context.Background(), "", app.BuildOptions{})
	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "2 built")
}

func TestBuild_AllTargetsPartialFailure(t *testing.T) {
	f := newFixture(t)
	f.expectRegistry(t, "app", "worker", "admin")

	f.engine.EXPECT().Build(gomock.Any(), gomock.Any()).Times(3).
		DoAndReturn(func(_ context.Context, cfg domain.EffectiveConfig) (domain.Artifact, error) {
			if cfg.Name == "worker" {
				return domain.Artifact{}, zerr.New("src/worker.ts: cannot resolve import")
			}
			return domain.Artifact{Path: cfg.Outfile}, nil
		})

	err := f.app.Build(context.Background(), "", app.BuildOptions{})
	assert.ErrorIs(t, err, domain.ErrBuildFailed)

	out := f.out.String()
	assert.Contains(t, out, "app", "successful siblings are still reported")
	assert.Contains(t, out, "cannot resolve import", "the engine diagnostic is reported verbatim")
	assert.Contains(t, out, "2 built, 1 failed")
}

func TestBuild_LoadFailure(t *testing.T) {
	f := newFixture(t)

	loadErr := zerr.New("could not find balefile")
	f.loader.EXPECT().Load(".").Return(nil, loadErr)

	err := f.app.Build(context.Background(), "", app.BuildOptions{})
	assert.ErrorIs(t, err, loadErr)
}

func TestWatch_RequiresTarget(t *testing.T) {
	f := newFixture(t)

	err := f.app.Watch(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrWatchTargetRequired)
}

func TestWatch_UnknownTarget(t *testing.T) {
	f := newFixture(t)
	f.expectRegistry(t, "app")

	err := f.app.Watch(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrTargetNotFound)
}

func TestWatch_RunsUntilCancelled(t *testing.T) {
	f := newFixture(t)
	f.expectRegistry(t, "app")
	f.loader.EXPECT().DiscoverConfigPath(".").Return("", domain.ErrConfigNotFound).AnyTimes()

	ctrl := gomock.NewController(t)
	session := mocks.NewMockWatchSession(ctrl)
	session.EXPECT().Terminate().Return(nil)

	f.engine.EXPECT().Watch(gomock.Any(), gomock.Any(), gomock.Any()).Return(session, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.app.Watch(ctx, "app") }()

	cancel()
	require.NoError(t, <-done)
}

func TestWatch_WarnsWhenConfigWatchUnavailable(t *testing.T) {
	f := newFixture(t)
	f.expectRegistry(t, "app")
	f.loader.EXPECT().DiscoverConfigPath(".").Return("", domain.ErrConfigNotFound)

	ctrl := gomock.NewController(t)
	session := mocks.NewMockWatchSession(ctrl)
	session.EXPECT().Terminate().Return(nil)
	f.engine.EXPECT().Watch(gomock.Any(), gomock.Any(), gomock.Any()).Return(session, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.app.Watch(ctx, "app") }()

	select {
	case msg := <-f.warns:
		assert.Contains(t, msg, "balefile change detection unavailable")
	case <-time.After(3 * time.Second):
		t.Fatal("expected a warning when the balefile cannot be watched")
	}

	cancel()
	require.NoError(t, <-done)
}

func TestList(t *testing.T) {
	f := newFixture(t)
	f.expectRegistry(t, "worker", "app", "admin")

	var buf bytes.Buffer
	require.NoError(t, f.app.List(&buf))
	assert.Equal(t, "worker\napp\nadmin\n", buf.String())
}
