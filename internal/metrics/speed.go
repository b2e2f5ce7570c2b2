package metrics

import "github.com/san-kum/bounce/internal/physics"

// Speed is the mean on-screen body speed, |v| times the move speed, over all
// observed frames.
type Speed struct {
	name    string
	sum     float64
	samples int
}

func NewSpeed() *Speed {
	return &Speed{
		name: "mean_speed",
	}
}

func (s *Speed) Name() string {
	return s.name
}

func (s *Speed) Observe(w *physics.World, t float64) {
	scale := w.Params().MoveSpeed
	for _, b := range w.Balls() {
		s.sum += b.Velocity().Len() * scale
		s.samples++
	}
}

func (s *Speed) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return s.sum / float64(s.samples)
}

func (s *Speed) Reset() {
	s.sum = 0
	s.samples = 0
}
