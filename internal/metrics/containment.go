package metrics

import "github.com/san-kum/bounce/internal/physics"

// Containment is the fraction of frames in which every body ended inside the
// window. Anything below 1.0 means the wall clamp failed.
type Containment struct {
	name       string
	violations int
	samples    int
}

func NewContainment() *Containment {
	return &Containment{
		name: "containment",
	}
}

func (c *Containment) Name() string {
	return c.name
}

func (c *Containment) Observe(w *physics.World, t float64) {
	c.samples++
	if !w.Contained() {
		c.violations++
	}
}

func (c *Containment) Value() float64 {
	if c.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(c.violations)/float64(c.samples)
}

func (c *Containment) Reset() {
	c.violations = 0
	c.samples = 0
}
