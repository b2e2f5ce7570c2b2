package physics

import (
	"fmt"
	"image/color"
	"math"

	"github.com/san-kum/bounce/internal/dynamo"
)

// DefaultColor is the fill used when a body is created without one.
var DefaultColor = color.RGBA{R: 0, G: 0, B: 255, A: 255}

// Wall identifies which window edges a body touched in one resolution pass.
type Wall uint8

const (
	WallLeft Wall = 1 << iota
	WallRight
	WallTop
	WallBottom
)

const WallNone Wall = 0

func (w Wall) Has(o Wall) bool { return w&o != 0 }

// Count returns how many edges were hit (a corner counts as two).
func (w Wall) Count() int {
	n := 0
	for _, e := range []Wall{WallLeft, WallRight, WallTop, WallBottom} {
		if w.Has(e) {
			n++
		}
	}
	return n
}

// Ball is one circular body. Position is the top-left corner of its bounding
// box in window space; radius never changes after construction.
type Ball struct {
	position dynamo.Vec2
	velocity dynamo.Vec2
	radius   float64
	color    color.RGBA
	rng      dynamo.RandSource
}

// NewBall creates a body with the given radius and top-left position, the
// default color and zero velocity. rng is owned by the ball and only used to
// jitter reflections.
func NewBall(radius float64, position dynamo.Vec2, rng dynamo.RandSource) (*Ball, error) {
	if radius <= 0 || math.IsInf(radius, 0) || math.IsNaN(radius) {
		return nil, &dynamo.ConfigError{Field: "radius", Value: fmt.Sprint(radius), Wrapped: dynamo.ErrInvalidRadius}
	}
	if rng == nil {
		return nil, &dynamo.ConfigError{Field: "rng", Value: "nil", Wrapped: dynamo.ErrInvalidParams}
	}
	return &Ball{
		position: position,
		radius:   radius,
		color:    DefaultColor,
		rng:      rng,
	}, nil
}

func (b *Ball) SetVelocity(v dynamo.Vec2) { b.velocity = v }

func (b *Ball) Velocity() dynamo.Vec2 { return b.velocity }

func (b *Ball) Position() dynamo.Vec2 { return b.position }

// SetPosition moves the body without any bounds check. Meant for setup and
// tests; the frame loop only moves bodies through Integrate.
func (b *Ball) SetPosition(p dynamo.Vec2) { b.position = p }

func (b *Ball) Radius() float64 { return b.radius }

func (b *Ball) Color() color.RGBA { return b.color }

func (b *Ball) SetColor(c color.RGBA) { b.color = c }

// Center is the geometric centre. Only renderers use it; collision checks
// work on Position.
func (b *Ball) Center() dynamo.Vec2 {
	return b.position.Add(dynamo.Vec2{X: b.radius, Y: b.radius})
}

// Integrate applies gravity to the velocity and moves the body. dt is not
// clamped: a stall produces one large step.
func (b *Ball) Integrate(dt float64, p dynamo.Params, s dynamo.Stepper) {
	b.position, b.velocity = s.Step(b.position, b.velocity, p.Gravity, dt, p.MoveSpeed)
}

// jitter draws the next deflection angle from the ball's own source.
func (b *Ball) jitter(p dynamo.Params) float64 {
	return dynamo.JitterAngle(b.rng.Float64(), p.JitterDegrees)
}

// ResolveWallCollision keeps the bounding box inside bounds. Each axis is
// handled on its own: the velocity component is negated, the edge is clamped
// onto the boundary and the velocity is turned by a fresh jitter angle. A
// corner hit therefore rotates twice.
func (b *Ball) ResolveWallCollision(bounds dynamo.Bounds, p dynamo.Params) Wall {
	hit := WallNone
	d := 2 * b.radius

	if b.position.X < 0 {
		b.velocity.X = -b.velocity.X
		b.position.X = 0
		b.velocity = b.velocity.Rotate(b.jitter(p))
		hit |= WallLeft
	} else if b.position.X+d > bounds.W {
		b.velocity.X = -b.velocity.X
		b.position.X = bounds.W - d
		b.velocity = b.velocity.Rotate(b.jitter(p))
		hit |= WallRight
	}

	if b.position.Y < 0 {
		b.velocity.Y = -b.velocity.Y
		b.position.Y = 0
		b.velocity = b.velocity.Rotate(b.jitter(p))
		hit |= WallTop
	} else if b.position.Y+d > bounds.H {
		b.velocity.Y = -b.velocity.Y
		b.position.Y = bounds.H - d
		b.velocity = b.velocity.Rotate(b.jitter(p))
		hit |= WallBottom
	}

	return hit
}

// Reflect replaces the velocity with -v turned by a fresh jitter angle.
func (b *Ball) Reflect(v dynamo.Vec2, p dynamo.Params) {
	b.velocity = v.Neg().Rotate(b.jitter(p))
}

// Inside reports whether the bounding box lies within bounds.
func (b *Ball) Inside(bounds dynamo.Bounds) bool {
	d := 2 * b.radius
	return b.position.X >= 0 && b.position.Y >= 0 &&
		b.position.X+d <= bounds.W && b.position.Y+d <= bounds.H
}

// Distance measures between the two position fields, i.e. top-left corners,
// not centres. For equal radii the two agree; for unequal radii the contact
// threshold is shifted, and that is the behaviour the loop relies on.
func Distance(a, b *Ball) float64 {
	return a.position.Dist(b.position)
}

// Overlaps reports whether a and b are closer than the sum of their radii.
func Overlaps(a, b *Ball) bool {
	return Distance(a, b) < a.radius+b.radius
}
