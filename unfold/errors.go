// SPDX-License-Identifier: MIT

package unfold

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration indicates invalid options or an invalid problem
	// (shape mismatch, negative or non-finite input, zero response column,
	// non-positive initial guess). It is detected before any computation.
	ErrConfiguration = errors.New("unfold: invalid configuration")

	// ErrNonConvergence indicates that the iteration cap was reached before
	// either stopping criterion held. Concrete errors are *NonConvergenceError.
	ErrNonConvergence = errors.New("unfold: iteration cap reached without convergence")

	// ErrSingularMatrix indicates a response the direct solvers cannot invert:
	// ill-conditioned beyond Options.CondThreshold, or a failed factorization.
	ErrSingularMatrix = errors.New("unfold: singular or ill-conditioned response")
)

// NonConvergenceError reports an iterative run stopped by the iteration cap.
// It matches ErrNonConvergence under errors.Is.
type NonConvergenceError struct {
	Algorithm  string  // "mlem" or "gravel"
	Iterations int     // completed iterations (== Options.MaxIterations)
	LastDelta  float64 // last |ΔJₖ − ΔJₖ₋₁|
	Fit        float64 // last J
}

// Error implements error.
func (e *NonConvergenceError) Error() string {
	return fmt.Sprintf("unfold: %s: no convergence after %d iterations (last ddJ=%g, J=%g)",
		e.Algorithm, e.Iterations, e.LastDelta, e.Fit)
}

// Is reports whether target is ErrNonConvergence.
func (e *NonConvergenceError) Is(target error) bool { return target == ErrNonConvergence }

// configWrap tags a validator failure with ErrConfiguration, keeping the
// underlying sentinel reachable through errors.Is.
func configWrap(what string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrConfiguration, what, err)
}

// configErrorf wraps ErrConfiguration with a formatted reason.
func configErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
