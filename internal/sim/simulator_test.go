package sim_test

import (
	"context"
	"math/rand"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/integrators"
	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
)

type countingObserver struct {
	frames []int
	walls  int
}

func (c *countingObserver) OnFrame(frame int, t float64, w *physics.World, rep physics.StepReport) {
	c.frames = append(c.frames, frame)
	c.walls += rep.WallHits
}

type frameMetric struct{ n float64 }

func (m *frameMetric) Name() string                        { return "frames" }
func (m *frameMetric) Observe(w *physics.World, t float64) { m.n++ }
func (m *frameMetric) Value() float64                      { return m.n }
func (m *frameMetric) Reset()                              { m.n = 0 }

func referenceWorld(positions ...dynamo.Vec2) *physics.World {
	balls := make([]*physics.Ball, 0, len(positions))
	for i, p := range positions {
		b, err := physics.NewBall(10, p, rand.New(rand.NewSource(int64(i))))
		Expect(err).NotTo(HaveOccurred())
		b.SetVelocity(dynamo.Vec2{X: 0, Y: 5})
		balls = append(balls, b)
	}
	w, err := physics.NewWorld(dynamo.Bounds{W: 800, H: 600}, dynamo.DefaultParams(), integrators.NewSemiImplicitEuler(), balls...)
	Expect(err).NotTo(HaveOccurred())
	return w
}

var _ = Describe("Simulator", func() {
	var (
		world  *physics.World
		window *sim.HeadlessWindow
		clock  sim.FixedClock
	)

	BeforeEach(func() {
		world = referenceWorld(
			dynamo.Vec2{X: 400, Y: 300},
			dynamo.Vec2{X: 400, Y: 500},
			dynamo.Vec2{X: 30, Y: 100},
			dynamo.Vec2{X: 100, Y: 0},
		)
		window = sim.NewHeadlessWindow(800, 600, 0)
		clock = sim.FixedClock{Step: 10 * time.Millisecond}
	})

	It("starts in the running state", func() {
		s := sim.New(world, window, clock)
		Expect(s.State()).To(Equal(sim.Running))
		Expect(s.Frames()).To(BeZero())
	})

	It("refuses to run without a window but still steps frames", func() {
		s := sim.New(world, nil, clock)

		res, err := s.Run(context.Background())
		Expect(err).To(MatchError(sim.ErrNoWindow))
		Expect(res).To(BeNil())
		Expect(s.State()).To(Equal(sim.Running))

		s.Frame(0.01, window)
		Expect(s.Frames()).To(Equal(1))
		Expect(window.Presented).To(Equal(1))
	})

	It("closes when the window reports a close event", func() {
		window.CloseAfter = 3
		s := sim.New(world, window, clock)

		res, err := s.Run(context.Background())

		Expect(err).NotTo(HaveOccurred())
		Expect(s.State()).To(Equal(sim.Closed))
		Expect(res.Frames).To(Equal(3))
		Expect(res.Reason).To(Equal("window closed"))
		Expect(window.Presented).To(Equal(3))
		Expect(window.Clears).To(Equal(3))
	})

	It("sets the default 120 Hz frame limit on the window", func() {
		window.CloseAfter = 1
		_, err := sim.New(world, window, clock).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(window.FrameLimit).To(Equal(120))
	})

	It("steps no frame when close is already pending", func() {
		window.Push(sim.Event{Kind: sim.EventClosed})
		s := sim.New(world, window, clock)

		res, err := s.Run(context.Background())

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Frames).To(BeZero())
		Expect(window.Presented).To(BeZero())
	})

	It("ignores events other than close", func() {
		window.Push(sim.Event{Kind: sim.EventNone})
		s := sim.New(world, window, clock, sim.WithMaxFrames(2))

		res, err := s.Run(context.Background())

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Frames).To(Equal(2))
	})

	It("stops after the configured number of frames", func() {
		s := sim.New(world, window, clock, sim.WithMaxFrames(10))

		res, err := s.Run(context.Background())

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Frames).To(Equal(10))
		Expect(res.Reason).To(Equal("frame limit reached"))
		Expect(res.SimTime).To(BeNumerically("~", 0.1, 1e-9))
	})

	It("returns the context error when canceled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		s := sim.New(world, window, clock)

		_, err := s.Run(ctx)

		Expect(err).To(MatchError(context.Canceled))
		Expect(s.State()).To(Equal(sim.Closed))
	})

	It("draws every body once per frame at its centre", func() {
		window.CloseAfter = 1
		_, err := sim.New(world, window, clock).Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		Expect(window.Last).To(HaveLen(world.Len()))
		for i, b := range world.Balls() {
			Expect(window.Last[i].Center).To(Equal(b.Center()))
			Expect(window.Last[i].Radius).To(Equal(10.0))
			Expect(window.Last[i].Color).To(Equal(physics.DefaultColor))
		}
	})

	It("integrates the measured dt", func() {
		world = referenceWorld(dynamo.Vec2{X: 400, Y: 300})
		s := sim.New(world, window, clock, sim.WithMaxFrames(1))

		_, err := s.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		b := world.Balls()[0]
		Expect(b.Velocity().Y).To(BeNumerically("~", 5.098, 1e-9))
		Expect(b.Position().X).To(BeNumerically("~", 400, 1e-9))
		Expect(b.Position().Y).To(BeNumerically("~", 302.549, 1e-9))
	})

	It("reads the window size every frame", func() {
		world = referenceWorld(dynamo.Vec2{X: 300, Y: 300})
		window.Width, window.Height = 200, 200
		s := sim.New(world, window, clock, sim.WithMaxFrames(1))

		_, err := s.Run(context.Background())
		Expect(err).NotTo(HaveOccurred())

		Expect(world.Bounds()).To(Equal(dynamo.Bounds{W: 200, H: 200}))
		Expect(world.Contained()).To(BeTrue())
	})

	It("feeds metrics and observers on every frame", func() {
		obs := &countingObserver{}
		m := &frameMetric{}
		s := sim.New(world, window, clock, sim.WithMaxFrames(5), sim.WithObserver(obs), sim.WithMetric(m))

		res, err := s.Run(context.Background())

		Expect(err).NotTo(HaveOccurred())
		Expect(obs.frames).To(Equal([]int{1, 2, 3, 4, 5}))
		Expect(res.Metrics).To(HaveKeyWithValue("frames", 5.0))
		Expect(res.WallHits).To(Equal(obs.walls))
	})

	It("keeps the first close reason", func() {
		s := sim.New(world, window, clock)
		s.Close("first")
		s.Close("second")
		Expect(s.Result().Reason).To(Equal("first"))
	})
})

var _ = Describe("Clocks", func() {
	It("reports the fixed step every time", func() {
		c := sim.FixedClock{Step: 8 * time.Millisecond}
		Expect(c.Restart()).To(Equal(8 * time.Millisecond))
		Expect(c.Restart()).To(Equal(8 * time.Millisecond))
	})

	It("measures non-negative wall time between restarts", func() {
		c := sim.NewWallClock()
		time.Sleep(time.Millisecond)
		Expect(c.Restart()).To(BeNumerically(">=", time.Millisecond))
		Expect(c.Restart()).To(BeNumerically(">=", 0))
	})

	It("converts seconds to durations", func() {
		Expect(sim.SecondsToDuration(0.5)).To(Equal(500 * time.Millisecond))
	})
})
