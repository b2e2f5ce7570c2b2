package experiment

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/san-kum/bounce/internal/config"
	"github.com/san-kum/bounce/internal/metrics"
	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
)

// Experiment turns a validated Config into a World and a Simulator.
type Experiment struct {
	cfg      *config.Config
	registry *Registry
	seed     int64
	metrics  []sim.Metric
}

// New prepares an experiment. A zero seed in cfg is replaced by the current
// time, so runs are not reproducible unless a seed is given.
func New(cfg *config.Config) *Experiment {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Experiment{
		cfg:      cfg,
		registry: NewRegistry(),
		seed:     seed,
	}
}

func (e *Experiment) Seed() int64 { return e.seed }

func (e *Experiment) Config() *config.Config { return e.cfg }

// Metrics returns the metrics attached by the last Simulator call.
func (e *Experiment) Metrics() []sim.Metric { return e.metrics }

// EnergyHistory returns the per-frame energy totals of the last run, if any.
func (e *Experiment) EnergyHistory() []float64 {
	for _, m := range e.metrics {
		if en, ok := m.(*metrics.Energy); ok {
			return en.History()
		}
	}
	return nil
}

// Build validates the config and constructs the body list. Body i gets its
// own random source seeded with seed+i.
func (e *Experiment) Build() (*physics.World, error) {
	if err := e.cfg.Validate(); err != nil {
		return nil, err
	}
	params, err := e.cfg.Params()
	if err != nil {
		return nil, err
	}
	stepper, err := e.registry.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return nil, err
	}

	balls := make([]*physics.Ball, 0, len(e.cfg.Bodies))
	for i, bc := range e.cfg.Bodies {
		rng := rand.New(rand.NewSource(e.seed + int64(i)))
		b, err := physics.NewBall(bc.Radius, vec(bc.X, bc.Y), rng)
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		b.SetVelocity(vec(bc.VX, bc.VY))
		c, err := bc.RGBA()
		if err != nil {
			return nil, fmt.Errorf("body %d: %w", i, err)
		}
		b.SetColor(c)
		balls = append(balls, b)
	}

	return physics.NewWorld(e.cfg.Bounds(), params, stepper, balls...)
}

// Simulator builds a world and wires it to window and clock with the default
// metrics and the configured frame limit. Extra options are applied last.
func (e *Experiment) Simulator(window sim.Window, clock sim.Clock, opts ...sim.Option) (*sim.Simulator, error) {
	world, err := e.Build()
	if err != nil {
		return nil, err
	}

	e.metrics = e.registry.DefaultMetrics()
	base := []sim.Option{sim.WithFrameLimit(e.cfg.Window.FPS)}
	for _, m := range e.metrics {
		base = append(base, sim.WithMetric(m))
	}

	return sim.New(world, window, clock, append(base, opts...)...), nil
}

// RunHeadless steps the scenario for the given number of frames at a fixed dt
// against an in-memory window. A nil win gets one sized from the config; pass
// your own to inspect the last drawn frame.
func (e *Experiment) RunHeadless(ctx context.Context, win *sim.HeadlessWindow, frames int, dt float64, opts ...sim.Option) (*sim.Result, error) {
	if frames <= 0 {
		return nil, fmt.Errorf("frames must be positive, got %d", frames)
	}
	if dt < 0 {
		return nil, fmt.Errorf("dt must be non-negative, got %f", dt)
	}

	if win == nil {
		win = sim.NewHeadlessWindow(e.cfg.Window.Width, e.cfg.Window.Height, 0)
	}
	clock := sim.FixedClock{Step: sim.SecondsToDuration(dt)}

	s, err := e.Simulator(win, clock, append(opts, sim.WithMaxFrames(frames))...)
	if err != nil {
		return nil, err
	}
	return s.Run(ctx)
}
