package physics

import (
	"github.com/san-kum/bounce/internal/dynamo"
)

// StepReport summarises the collisions resolved in one World.Step.
type StepReport struct {
	WallHits int
	PairHits int
	// Pairs lists the overlapping index pairs (i<j) in detection order.
	Pairs [][2]int
}

// World owns the fixed, ordered body list. Bodies are never added or removed
// after construction; list order decides iteration order only.
type World struct {
	balls   []*Ball
	bounds  dynamo.Bounds
	params  dynamo.Params
	stepper dynamo.Stepper

	// scratch for snapshot resolution, sized once
	pre []dynamo.Vec2
	hit []bool
}

func NewWorld(bounds dynamo.Bounds, params dynamo.Params, stepper dynamo.Stepper, balls ...*Ball) (*World, error) {
	if !bounds.Valid() {
		return nil, &dynamo.ConfigError{Field: "bounds", Value: dynamo.Vec2{X: bounds.W, Y: bounds.H}.String(), Wrapped: dynamo.ErrInvalidBounds}
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if stepper == nil {
		return nil, &dynamo.ConfigError{Field: "integrator", Value: "nil", Wrapped: dynamo.ErrUnknownIntegrator}
	}
	list := make([]*Ball, len(balls))
	copy(list, balls)
	return &World{
		balls:   list,
		bounds:  bounds,
		params:  params,
		stepper: stepper,
		pre:     make([]dynamo.Vec2, len(list)),
		hit:     make([]bool, len(list)),
	}, nil
}

// Balls returns the body list. Callers must not reorder or resize it.
func (w *World) Balls() []*Ball { return w.balls }

func (w *World) Len() int { return len(w.balls) }

func (w *World) Bounds() dynamo.Bounds { return w.bounds }

func (w *World) Params() dynamo.Params { return w.params }

// SetBounds updates the extent used by the next Step. The loop calls it each
// frame with the current window size.
func (w *World) SetBounds(b dynamo.Bounds) {
	if b.Valid() {
		w.bounds = b
	}
}

// Step advances every body by dt: integrate and wall-resolve each body in
// list order, then resolve pairwise contacts over index pairs i<j.
func (w *World) Step(dt float64) StepReport {
	var rep StepReport

	for _, b := range w.balls {
		b.Integrate(dt, w.params, w.stepper)
		rep.WallHits += b.ResolveWallCollision(w.bounds, w.params).Count()
	}

	switch w.params.Collision {
	case dynamo.CollisionSequential:
		w.resolveSequential(&rep)
	default:
		w.resolveSnapshot(&rep)
	}

	return rep
}

// resolveSnapshot detects all overlapping pairs on the post-move positions
// and reflects every involved body exactly once from its pre-pass velocity.
func (w *World) resolveSnapshot(rep *StepReport) {
	for i, b := range w.balls {
		w.pre[i] = b.velocity
		w.hit[i] = false
	}

	for i := 0; i < len(w.balls); i++ {
		for j := i + 1; j < len(w.balls); j++ {
			if Overlaps(w.balls[i], w.balls[j]) {
				w.hit[i], w.hit[j] = true, true
				rep.PairHits++
				rep.Pairs = append(rep.Pairs, [2]int{i, j})
			}
		}
	}

	for i, b := range w.balls {
		if w.hit[i] {
			b.Reflect(w.pre[i], w.params)
		}
	}
}

// resolveSequential reflects pair by pair in place. A body in two contacts
// is flipped twice, and the result depends on list order.
func (w *World) resolveSequential(rep *StepReport) {
	for i := 0; i < len(w.balls); i++ {
		for j := i + 1; j < len(w.balls); j++ {
			a, b := w.balls[i], w.balls[j]
			if !Overlaps(a, b) {
				continue
			}
			va, vb := a.velocity, b.velocity
			a.Reflect(va, w.params)
			b.Reflect(vb, w.params)
			rep.PairHits++
			rep.Pairs = append(rep.Pairs, [2]int{i, j})
		}
	}
}

// Contained reports whether every body lies inside the current bounds.
func (w *World) Contained() bool {
	for _, b := range w.balls {
		if !b.Inside(w.bounds) {
			return false
		}
	}
	return true
}
