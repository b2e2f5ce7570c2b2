package experiment

import (
	"sort"

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/integrators"
	"github.com/san-kum/bounce/internal/metrics"
	"github.com/san-kum/bounce/internal/sim"
)

type Registry struct {
	integrators map[string]func() dynamo.Stepper
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Stepper),
	}

	r.integrators["semi_implicit"] = func() dynamo.Stepper { return integrators.NewSemiImplicitEuler() }
	r.integrators["euler"] = func() dynamo.Stepper { return integrators.NewEuler() }
	r.integrators["verlet"] = func() dynamo.Stepper { return integrators.NewVerlet() }

	return r
}

// GetIntegrator resolves a stepper by name; the empty name is the default.
func (r *Registry) GetIntegrator(name string) (dynamo.Stepper, error) {
	if name == "" {
		name = "semi_implicit"
	}
	fn, ok := r.integrators[name]
	if !ok {
		return nil, &dynamo.ConfigError{Field: "integrator", Value: name, Wrapped: dynamo.ErrUnknownIntegrator}
	}
	return fn(), nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns a fresh set of the metrics every run reports.
func (r *Registry) DefaultMetrics() []sim.Metric {
	return []sim.Metric{
		metrics.NewEnergy(),
		metrics.NewEnergyDrift(),
		metrics.NewContainment(),
		metrics.NewSpeed(),
	}
}
