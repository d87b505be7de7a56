package simulation

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/zeusync/torophy/internal/core/observability/log"
	"github.com/zeusync/torophy/internal/core/systems"
	"github.com/zeusync/torophy/internal/core/systems/physics"
)

var (
	ErrInvalidTickRate = errors.New("tick rate must be positive")
	ErrRunnerRunning   = errors.New("runner is already running")
	ErrDuplicateSystem = errors.New("system already registered")
)

// Publisher receives a copy of the space after a tick. Implementations must
// not block the runner for long.
type Publisher interface {
	Publish(snapshot physics.Snapshot)
}

// Config holds runner configuration
type Config struct {
	// TickRate is both the wall-clock interval and the simulated dt of a tick.
	TickRate time.Duration
	// PublishEvery publishes a snapshot every N ticks; 0 disables publishing.
	PublishEvery int
}

func DefaultConfig() Config {
	return Config{
		TickRate:     16600 * time.Microsecond,
		PublishEvery: 1,
	}
}

// Runner drives a space at a fixed step. Every tick runs the registered
// systems in phase order; the space itself is registered as the update phase.
type Runner struct {
	space     *physics.Space
	systems   []systems.System
	metrics   map[string]*systems.Metrics
	publisher Publisher
	config    Config
	logger    log.Log

	ticks   uint64
	running bool
}

func NewRunner(space *physics.Space, config Config, publisher Publisher, logger log.Log) (*Runner, error) {
	if config.TickRate <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTickRate, config.TickRate)
	}
	if logger == nil {
		logger = log.NewNop()
	}

	r := &Runner{
		space:     space,
		metrics:   make(map[string]*systems.Metrics),
		publisher: publisher,
		config:    config,
		logger:    logger.With(log.String("component", "runner")),
	}
	if err := r.Register(space.AsSystem()); err != nil {
		return nil, err
	}
	return r, nil
}

// Register adds a system. Systems in the same phase keep registration order.
func (r *Runner) Register(system systems.System) error {
	if _, exists := r.metrics[system.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSystem, system.Name())
	}
	r.systems = append(r.systems, system)
	slices.SortStableFunc(r.systems, func(a, b systems.System) int {
		return int(a.Phase()) - int(b.Phase())
	})
	r.metrics[system.Name()] = &systems.Metrics{}

	r.logger.Info("System registered",
		log.String("system", system.Name()),
		log.String("phase", system.Phase().String()))
	return nil
}

// Systems returns the execution order.
func (r *Runner) Systems() []string {
	names := make([]string, len(r.systems))
	for i, s := range r.systems {
		names[i] = s.Name()
	}
	return names
}

func (r *Runner) Ticks() uint64 { return r.ticks }

// SystemMetrics returns a copy of the metrics for the named system.
func (r *Runner) SystemMetrics(name string) (systems.Metrics, bool) {
	m, ok := r.metrics[name]
	if !ok {
		return systems.Metrics{}, false
	}
	return *m, true
}

// Tick runs every system once. System errors are logged and joined; the
// remaining systems still run so the space never skips a step.
func (r *Runner) Tick() error {
	var errs []error
	for _, system := range r.systems {
		start := time.Now()
		err := system.Update(r.config.TickRate)
		r.metrics[system.Name()].Record(time.Since(start), err)
		if err != nil {
			r.logger.Error("System update failed",
				log.String("system", system.Name()),
				log.Error(err))
			errs = append(errs, fmt.Errorf("%s: %w", system.Name(), err))
		}
	}
	r.ticks++

	if r.publisher != nil && r.config.PublishEvery > 0 && r.ticks%uint64(r.config.PublishEvery) == 0 {
		r.publisher.Publish(r.space.Snapshot())
	}
	return errors.Join(errs...)
}

// StepN runs n ticks back to back without waiting on the clock.
func (r *Runner) StepN(n int) error {
	var errs []error
	for range n {
		if err := r.Tick(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Run ticks at the configured rate until ctx is cancelled. A tick that
// overruns its slot delays the next one; missed slots are not replayed.
func (r *Runner) Run(ctx context.Context) error {
	if r.running {
		return ErrRunnerRunning
	}
	r.running = true
	defer func() { r.running = false }()

	ticker := time.NewTicker(r.config.TickRate)
	defer ticker.Stop()

	r.logger.Info("Runner started",
		log.Duration("tick_rate", r.config.TickRate),
		log.Int("systems", len(r.systems)),
		log.Int("bodies", r.space.Len()))

	for {
		select {
		case <-ctx.Done():
			m := r.space.Metrics()
			r.logger.Info("Runner stopped",
				log.Uint64("ticks", r.ticks),
				log.Duration("avg_step", m.AverageStepDuration),
				log.Duration("max_step", m.MaxStepDuration),
				log.Uint64("checksum", r.space.Checksum()))
			return nil
		case <-ticker.C:
			if err := r.Tick(); err != nil {
				r.logger.Warn("Tick completed with errors", log.Error(err))
			}
		}
	}
}
