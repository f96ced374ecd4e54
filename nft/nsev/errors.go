package nsev

import "errors"

var (
	// ErrInvalidInput wraps every argument-validation failure.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNewtonDivergence reports that every bound-state guess diverged
	// during Newton refinement, so no discrete spectrum could be produced.
	ErrNewtonDivergence = errors.New("newton refinement diverged for all guesses")
)
