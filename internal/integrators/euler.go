package integrators

import "github.com/san-kum/bounce/internal/dynamo"

// SemiImplicitEuler updates velocity first and moves with the new velocity:
//
//	v' = v + a*dt
//	p' = p + v'*dt*scale
//
// This is the default stepper and the one the frame loop was tuned for.
type SemiImplicitEuler struct{}

func NewSemiImplicitEuler() *SemiImplicitEuler {
	return &SemiImplicitEuler{}
}

func (e *SemiImplicitEuler) Step(pos, vel, acc dynamo.Vec2, dt, scale float64) (dynamo.Vec2, dynamo.Vec2) {
	vel = vel.Add(acc.Scale(dt))
	pos = pos.Add(vel.Scale(dt * scale))
	return pos, vel
}

// Euler is the explicit variant: position moves with the velocity from the
// start of the step.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(pos, vel, acc dynamo.Vec2, dt, scale float64) (dynamo.Vec2, dynamo.Vec2) {
	newPos := pos.Add(vel.Scale(dt * scale))
	return newPos, vel.Add(acc.Scale(dt))
}
