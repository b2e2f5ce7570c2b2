// Package dynamo provides the shared primitives of the ball simulation.
//
// The package defines the value types every other package passes around:
//
//   - [Vec2]: 2D point or vector in window space
//   - [Bounds]: read-only window extent handed to collision checks
//   - [Params]: simulation constants (gravity, move speed, jitter, collision mode)
//   - [RandSource]: uniform [0,1) source injected per body
//
// # Example
//
//	p := dynamo.DefaultParams()
//	v := dynamo.Vec2{X: 0, Y: 5}
//	v = v.Add(p.Gravity.Scale(dt))
//
// # Thread Safety
//
// All types are plain values. The simulation is single threaded, so nothing
// here carries a lock.
package dynamo
