package injector

import (
	"context"
	"fmt"

	"github.com/google/wire"
	"golang.org/x/sync/errgroup"

	"github.com/zeusync/torophy/internal/config"
	"github.com/zeusync/torophy/internal/core/observability/log"
	"github.com/zeusync/torophy/internal/core/simulation"
	"github.com/zeusync/torophy/internal/core/systems/forces"
	"github.com/zeusync/torophy/internal/core/systems/physics"
	"github.com/zeusync/torophy/internal/scene"
	"github.com/zeusync/torophy/internal/server"
	"github.com/zeusync/torophy/pkg/vector"
)

var ProviderSet = wire.NewSet(
	ProvideLogger,
	wire.Bind(new(log.Log), new(*log.Logger)),
	ProvideSpace,
	ProvideServerConfig,
	ProvideHub,
	ProvideRunner,
	ProvideServer,
	wire.Struct(new(App), "*"),
)

// App is the fully wired process.
type App struct {
	Config *config.Config
	Logger *log.Logger
	Space  *physics.Space
	Hub    *server.Hub
	Runner *simulation.Runner
	// Server is nil when serving is disabled.
	Server *server.Server
}

// Run drives the runner and, if enabled, the server until ctx is cancelled
// or either fails.
func (a *App) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.Runner.Run(gctx) })
	if a.Server != nil {
		g.Go(func() error { return a.Server.Run(gctx) })
	}
	return g.Wait()
}

// ProvideLogger builds the process logger; the cleanup flushes it.
func ProvideLogger(cfg *config.Config) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, nil, err
	}
	logger := log.NewWithOptions(level, log.Options{
		Encoding:    cfg.Log.Encoding,
		Development: cfg.Log.Development,
	})
	return logger, func() { _ = logger.Sync() }, nil
}

// ProvideSpace creates the space and populates it from the scene section.
func ProvideSpace(cfg *config.Config, logger log.Log) (*physics.Space, error) {
	space, err := physics.NewSpace(cfg.Space.Width, cfg.Space.Height,
		physics.WithName(cfg.Space.Name),
		physics.WithCellSize(cfg.Space.CellSize),
		physics.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	if _, err = scene.Build(space, cfg.Scene, logger); err != nil {
		return nil, fmt.Errorf("build scene: %w", err)
	}
	return space, nil
}

func ProvideServerConfig(cfg *config.Config) server.Config {
	sc := server.DefaultServerConfig()
	sc.ListenAddr = cfg.Server.ListenAddr
	sc.WriteTimeout = cfg.Server.WriteTimeout
	sc.SendBuffer = cfg.Server.SendBuffer
	return sc
}

func ProvideHub(sc server.Config, logger log.Log) *server.Hub {
	return server.NewHub(sc, logger)
}

// ProvideRunner wires the runner with the configured force systems. Snapshots
// are only published when something serves them.
func ProvideRunner(cfg *config.Config, space *physics.Space, hub *server.Hub, logger log.Log) (*simulation.Runner, error) {
	var publisher simulation.Publisher
	if cfg.Server.Enabled {
		publisher = hub
	}

	runner, err := simulation.NewRunner(space, simulation.Config{
		TickRate:     cfg.Runner.TickRate,
		PublishEvery: cfg.Runner.PublishEvery,
	}, publisher, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Runner.Gravity != vector.Zero() {
		if err = runner.Register(forces.NewGravity(space, cfg.Runner.Gravity)); err != nil {
			return nil, err
		}
	}
	if cfg.Runner.Force != vector.Zero() {
		if err = runner.Register(forces.NewConstant(space, cfg.Runner.Force)); err != nil {
			return nil, err
		}
	}
	return runner, nil
}

func ProvideServer(cfg *config.Config, sc server.Config, hub *server.Hub, logger log.Log) (*server.Server, error) {
	if !cfg.Server.Enabled {
		return nil, nil
	}
	return server.NewServer(sc, hub, logger)
}
