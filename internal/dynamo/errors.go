package dynamo

import "errors"

// Domain errors for building a simulation. The running simulation itself
// never fails.
var (
	// ErrInvalidRadius indicates a body radius that is zero, negative or not finite.
	ErrInvalidRadius = errors.New("dynamo: radius must be positive")

	// ErrInvalidBounds indicates a window extent that is not strictly positive.
	ErrInvalidBounds = errors.New("dynamo: window bounds must be positive")

	// ErrInvalidParams indicates a simulation parameter outside its valid range.
	ErrInvalidParams = errors.New("dynamo: parameter out of valid bounds")

	// ErrBodyOutOfBounds indicates a body whose bounding box does not fit the window.
	ErrBodyOutOfBounds = errors.New("dynamo: body does not fit inside the window")

	// ErrUnknownIntegrator indicates an integrator name with no registered stepper.
	ErrUnknownIntegrator = errors.New("dynamo: unknown integrator")

	// ErrUnknownPreset indicates a preset name that is not defined.
	ErrUnknownPreset = errors.New("dynamo: unknown preset")
)

// ConfigError wraps a domain error with the offending field and value.
type ConfigError struct {
	Field   string
	Value   string
	Wrapped error
}

func (e *ConfigError) Error() string {
	return e.Wrapped.Error() + ": " + e.Field + "=" + e.Value
}

func (e *ConfigError) Unwrap() error {
	return e.Wrapped
}
