package metrics

import (
	"math"

	"github.com/san-kum/bounce/internal/physics"
)

const historyCapacity = 600

// BodyEnergy is the specific mechanical energy of one ball: kinetic energy of
// its on-screen velocity plus potential energy measured from the far wall
// along gravity. Screen velocity is v*moveSpeed, and screen acceleration is
// g*moveSpeed, so the sum is constant between collisions.
func BodyEnergy(b *physics.Ball, w *physics.World) float64 {
	p := w.Params()
	s := p.MoveSpeed
	v := b.Velocity().Scale(s)
	ke := 0.5 * (v.X*v.X + v.Y*v.Y)

	d := 2 * b.Radius()
	bounds := w.Bounds()
	pos := b.Position()
	pe := s * (p.Gravity.X*(bounds.W-d-pos.X) + p.Gravity.Y*(bounds.H-d-pos.Y))

	return ke + pe
}

// TotalEnergy sums BodyEnergy over the world.
func TotalEnergy(w *physics.World) float64 {
	total := 0.0
	for _, b := range w.Balls() {
		total += BodyEnergy(b, w)
	}
	return total
}

// Energy reports the mean total energy over the observed frames and keeps a
// bounded history for plotting.
type Energy struct {
	name        string
	samples     int
	totalEnergy float64
	history     []float64
}

func NewEnergy() *Energy {
	return &Energy{
		name:    "energy",
		history: make([]float64, 0, historyCapacity),
	}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(w *physics.World, t float64) {
	energy := TotalEnergy(w)
	e.totalEnergy += energy
	e.samples++

	e.history = append(e.history, energy)
	if len(e.history) > historyCapacity {
		e.history = e.history[1:]
	}
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

// History returns the most recent per-frame totals, oldest first.
func (e *Energy) History() []float64 { return e.history }

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
	e.history = e.history[:0]
}

// EnergyDrift tracks the largest relative deviation from the first observed
// total. Clamping at the walls and jittered reflections both inject or remove
// energy, so this is a health indicator rather than a conservation check.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{
		name: "energy_drift",
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(w *physics.World, t float64) {
	energy := TotalEnergy(w)

	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
