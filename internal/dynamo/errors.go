package dynamo

import "errors"

// Domain errors for engine operations.
var (
	// ErrInvalidState indicates a particle with a NaN or Inf component.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrParameterBounds indicates a parameter value is outside valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrEmptySurface indicates a surface with a zero or negative dimension.
	ErrEmptySurface = errors.New("dynamo: surface has no drawable area")

	// ErrAlreadyRunning indicates Start was called on a running driver.
	ErrAlreadyRunning = errors.New("dynamo: driver already running")
)

// ParticleError wraps an error with the offending particle.
type ParticleError struct {
	Index   int
	Wrapped error
}

func (e *ParticleError) Error() string {
	return e.Wrapped.Error()
}

func (e *ParticleError) Unwrap() error {
	return e.Wrapped
}
