// Package physics implements the bodies of the ball simulation and the
// per-frame update over them.
//
//   - [Ball]: circular body with position (top-left of its box), radius,
//     velocity, color and a private random source
//   - [World]: fixed ordered list of balls stepped once per frame
//
// The model is simple: constant acceleration, reflection on the
// window edges with the edge clamped onto the boundary, and a "bounce away"
// response between overlapping bodies that negates velocity and adds a small
// random turn. There is no mass, restitution or penetration resolution.
//
// # Collision modes
//
// When several bodies overlap in the same frame, [dynamo.CollisionSnapshot]
// reflects each involved body once from the velocity it had before the pass,
// while [dynamo.CollisionSequential] resolves pairs one after another in
// index order and lets later pairs see earlier flips:
//
//	w, _ := physics.NewWorld(bounds, params, integrators.NewSemiImplicitEuler(), balls...)
//	rep := w.Step(dt)
package physics
