package sim

import (
	"errors"
	"image/color"
	"time"

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/physics"
)

// ErrNoWindow is returned by Run on a Simulator built without a Window.
var ErrNoWindow = errors.New("sim: run needs a window")

// State is the loop state. Closed is terminal.
type State int

const (
	Running State = iota
	Closed
)

func (s State) String() string {
	if s == Closed {
		return "closed"
	}
	return "running"
}

// EventKind enumerates window events. Only EventClosed is acted on.
type EventKind int

const (
	EventNone EventKind = iota
	EventClosed
)

type Event struct {
	Kind EventKind
}

// Renderer composes one frame of filled circles.
type Renderer interface {
	Clear()
	DrawCircle(center dynamo.Vec2, radius float64, c color.RGBA)
	Present()
}

// Window is the windowing collaborator the loop drives. Present may block to
// honour the frame limit.
type Window interface {
	Renderer
	Size() (w, h int)
	PollEvents() []Event
	SetFrameLimit(fps int)
}

// Clock measures elapsed time. Restart returns the time since the previous
// Restart (or since creation) and starts a new interval.
type Clock interface {
	Restart() time.Duration
}

// Metric accumulates a scalar over the frames of a run.
type Metric interface {
	Name() string
	Observe(w *physics.World, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every frame's physics step.
type Observer interface {
	OnFrame(frame int, t float64, w *physics.World, rep physics.StepReport)
}

// Result summarises a finished run.
type Result struct {
	Frames   int
	SimTime  float64
	WallHits int
	PairHits int
	Metrics  map[string]float64
	Reason   string
}
