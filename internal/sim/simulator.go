package sim

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/physics"
)

// Simulator drives a World frame by frame against a Window and a Clock.
// It is single threaded: Run must not be called concurrently with Frame.
type Simulator struct {
	world      *physics.World
	window     Window
	clock      Clock
	frameLimit int
	maxFrames  int
	logger     *log.Logger
	metrics    []Metric
	observers  []Observer

	state    State
	reason   string
	frame    int
	t        float64
	wallHits int
	pairHits int
}

type Option func(*Simulator)

// WithFrameLimit sets the cap handed to the window (0 leaves it uncapped).
func WithFrameLimit(fps int) Option {
	return func(s *Simulator) { s.frameLimit = fps }
}

// WithMaxFrames closes the loop after n frames. Zero runs until the window closes.
func WithMaxFrames(n int) Option {
	return func(s *Simulator) { s.maxFrames = n }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithMetric(m Metric) Option {
	return func(s *Simulator) { s.metrics = append(s.metrics, m) }
}

func WithObserver(o Observer) Option {
	return func(s *Simulator) { s.observers = append(s.observers, o) }
}

// New returns a Simulator in the Running state. window and clock may be nil
// when the caller only uses Frame (the terminal view does this); Run needs a
// window and fails with ErrNoWindow without one.
func New(world *physics.World, window Window, clock Clock, opts ...Option) *Simulator {
	s := &Simulator{
		world:      world,
		window:     window,
		clock:      clock,
		frameLimit: dynamo.DefaultFrameRate,
		logger:     log.New(io.Discard),
		state:      Running,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clock == nil {
		s.clock = NewWallClock()
	}
	return s
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) State() State { return s.state }

func (s *Simulator) World() *physics.World { return s.world }

// Frames returns how many frames have been stepped.
func (s *Simulator) Frames() int { return s.frame }

// Time returns the summed dt of all stepped frames, in seconds.
func (s *Simulator) Time() float64 { return s.t }

// Close moves the loop to Closed. Closing twice keeps the first reason.
func (s *Simulator) Close(reason string) {
	if s.state == Closed {
		return
	}
	s.state = Closed
	s.reason = reason
	s.logger.Debug("state transition", "from", Running, "to", Closed, "reason", reason, "frame", s.frame)
}

// Run loops until the window reports a close event, the frame limit is hit or
// ctx is canceled. Only cancellation yields an error.
func (s *Simulator) Run(ctx context.Context) (*Result, error) {
	if s.window == nil {
		return nil, ErrNoWindow
	}
	s.window.SetFrameLimit(s.frameLimit)
	s.logger.Debug("simulation started", "bodies", s.world.Len(), "fps", s.frameLimit, "collision", s.world.Params().Collision)

	for s.state == Running {
		select {
		case <-ctx.Done():
			s.Close("context canceled")
			return s.Result(), ctx.Err()
		default:
		}

		dt := s.clock.Restart().Seconds()

		for _, e := range s.window.PollEvents() {
			if e.Kind == EventClosed {
				s.Close("window closed")
			}
		}
		if s.state == Closed {
			break
		}

		s.world.SetBounds(dynamo.NewBounds(s.window.Size()))
		s.Frame(dt, s.window)

		if s.maxFrames > 0 && s.frame >= s.maxFrames {
			s.Close("frame limit reached")
		}
	}

	s.logger.Info("simulation finished", "reason", s.reason, "frames", s.frame, "sim_time", s.t)
	return s.Result(), nil
}

// Frame steps the world by dt, feeds metrics and observers, and draws every
// body onto r. It does not look at the loop state.
func (s *Simulator) Frame(dt float64, r Renderer) physics.StepReport {
	rep := s.world.Step(dt)

	s.frame++
	s.t += dt
	s.wallHits += rep.WallHits
	s.pairHits += rep.PairHits

	for _, m := range s.metrics {
		m.Observe(s.world, s.t)
	}
	for _, o := range s.observers {
		o.OnFrame(s.frame, s.t, s.world, rep)
	}

	r.Clear()
	for _, b := range s.world.Balls() {
		r.DrawCircle(b.Center(), b.Radius(), b.Color())
	}
	r.Present()

	return rep
}

// Result snapshots the counters and metric values collected so far.
func (s *Simulator) Result() *Result {
	res := &Result{
		Frames:   s.frame,
		SimTime:  s.t,
		WallHits: s.wallHits,
		PairHits: s.pairHits,
		Metrics:  make(map[string]float64, len(s.metrics)),
		Reason:   s.reason,
	}
	for _, m := range s.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res
}
