package integrators

import "github.com/san-kum/bounce/internal/dynamo"

// Verlet is velocity Verlet specialised to constant acceleration, where the
// start and end accelerations are equal and the step is exact.
type Verlet struct{}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(pos, vel, acc dynamo.Vec2, dt, scale float64) (dynamo.Vec2, dynamo.Vec2) {
	dt2 := dt * dt
	newPos := pos.Add(vel.Scale(dt * scale)).Add(acc.Scale(0.5 * dt2 * scale))
	return newPos, vel.Add(acc.Scale(dt))
}
