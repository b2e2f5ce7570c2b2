package dynamo

import (
	"fmt"
	"math"
)

// Vec2 is a 2D point or vector in window space (y grows downward).
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Neg() Vec2 { return Vec2{-v.X, -v.Y} }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the straight-line distance between two points.
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// Rotate turns v by deg degrees (positive is clockwise on screen, since y
// points down). Magnitude is preserved.
func (v Vec2) Rotate(deg float64) Vec2 {
	sin, cos := math.Sincos(Radians(deg))
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}

func (v Vec2) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", v.X, v.Y)
}

// Bounds is the window extent in pixels. Bodies only ever read it.
type Bounds struct {
	W, H float64
}

func NewBounds(w, h int) Bounds {
	return Bounds{W: float64(w), H: float64(h)}
}

func (b Bounds) Valid() bool { return b.W > 0 && b.H > 0 }

// CollisionMode selects how overlapping pairs found in one frame are resolved.
type CollisionMode int

const (
	// CollisionSnapshot detects every overlapping pair first and reflects each
	// involved body once from its pre-pass velocity.
	CollisionSnapshot CollisionMode = iota
	// CollisionSequential reflects pair by pair in index order, mutating in
	// place, so later pairs see velocities already flipped by earlier ones.
	CollisionSequential
)

func (m CollisionMode) String() string {
	switch m {
	case CollisionSnapshot:
		return "snapshot"
	case CollisionSequential:
		return "sequential"
	default:
		return "unknown"
	}
}

// ParseCollisionMode maps a config/flag name to a CollisionMode.
func ParseCollisionMode(s string) (CollisionMode, error) {
	switch s {
	case "", "snapshot":
		return CollisionSnapshot, nil
	case "sequential":
		return CollisionSequential, nil
	default:
		return 0, &ConfigError{Field: "collision", Value: s, Wrapped: ErrInvalidParams}
	}
}

const (
	DefaultGravityY     = 9.8
	DefaultMoveSpeed    = 50.0
	DefaultJitterDegree = 5.0
	DefaultFrameRate    = 120
)

// Params holds the simulation constants. It is passed by value into every
// update call instead of living in package state.
type Params struct {
	Gravity       Vec2
	MoveSpeed     float64
	JitterDegrees float64
	Collision     CollisionMode
}

func DefaultParams() Params {
	return Params{
		Gravity:       Vec2{X: 0, Y: DefaultGravityY},
		MoveSpeed:     DefaultMoveSpeed,
		JitterDegrees: DefaultJitterDegree,
		Collision:     CollisionSnapshot,
	}
}

func (p Params) Validate() error {
	if !p.Gravity.IsValid() {
		return &ConfigError{Field: "gravity", Value: p.Gravity.String(), Wrapped: ErrInvalidParams}
	}
	if p.MoveSpeed <= 0 || math.IsInf(p.MoveSpeed, 0) || math.IsNaN(p.MoveSpeed) {
		return &ConfigError{Field: "move_speed", Value: fmt.Sprint(p.MoveSpeed), Wrapped: ErrInvalidParams}
	}
	if p.JitterDegrees < 0 || p.JitterDegrees > 180 || math.IsNaN(p.JitterDegrees) {
		return &ConfigError{Field: "jitter_degrees", Value: fmt.Sprint(p.JitterDegrees), Wrapped: ErrInvalidParams}
	}
	if p.Collision != CollisionSnapshot && p.Collision != CollisionSequential {
		return &ConfigError{Field: "collision", Value: p.Collision.String(), Wrapped: ErrInvalidParams}
	}
	return nil
}

// RandSource yields uniform values in [0,1). *math/rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// Stepper advances one body by dt under constant acceleration acc. scale
// multiplies the position delta only (the move speed), not the velocity.
type Stepper interface {
	Step(pos, vel, acc Vec2, dt, scale float64) (Vec2, Vec2)
}
