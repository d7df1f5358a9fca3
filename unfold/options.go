// SPDX-License-Identifier: MIT

package unfold

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Defaults (single source of truth).
const (
	DefaultTolerance        = 1e-6
	DefaultMaxIterations    = 10000
	DefaultAcceptanceWindow = 0.1
	DefaultEpsilon          = 1e-10

	// DefaultPinvRcond drops singular values ≤ rcond·σmax, the cut-off used by
	// numpy.linalg.pinv.
	DefaultPinvRcond = 1e-15
)

// DefaultCondThreshold is the largest condition number SolveExact accepts.
const DefaultCondThreshold = mat.ConditionTolerance

// Guess selects the initial spectrum of the iterative solvers.
type Guess int

const (
	// GuessUniform starts from all ones.
	GuessUniform Guess = iota
	// GuessRandom draws each entry uniformly from (0, 1].
	GuessRandom
)

// String implements fmt.Stringer.
func (g Guess) String() string {
	switch g {
	case GuessUniform:
		return "uniform"
	case GuessRandom:
		return "random"
	default:
		return fmt.Sprintf("Guess(%d)", int(g))
	}
}

// ParseGuess maps "uniform" / "random" to a Guess.
func ParseGuess(s string) (Guess, error) {
	switch s {
	case "uniform", "":
		return GuessUniform, nil
	case "random":
		return GuessRandom, nil
	default:
		return 0, configErrorf("unknown initial guess %q", s)
	}
}

// StopReason records why a solve ended.
type StopReason int

const (
	// StopNone marks an unfinished run (cap reached or cancelled).
	StopNone StopReason = iota
	// StopAccepted: |J − 1| fell inside the acceptance window.
	StopAccepted
	// StopPlateau: |ΔJₖ − ΔJₖ₋₁| reached the tolerance.
	StopPlateau
	// StopDirect: produced by a direct solver.
	StopDirect
)

// String implements fmt.Stringer.
func (s StopReason) String() string {
	switch s {
	case StopNone:
		return "none"
	case StopAccepted:
		return "accepted"
	case StopPlateau:
		return "plateau"
	case StopDirect:
		return "direct"
	default:
		return fmt.Sprintf("StopReason(%d)", int(s))
	}
}

// Options configures every back-end. Fields irrelevant to a back-end are
// ignored by it (e.g. SolveExact only reads CondThreshold).
type Options struct {
	// Tolerance is the plateau threshold on |ΔJₖ − ΔJₖ₋₁|. Must be > 0.
	Tolerance float64

	// MaxIterations caps the iterative loop. Must be > 0.
	MaxIterations int

	// AcceptanceWindow accepts the iterate when |J − 1| < window.
	// Zero disables early acceptance.
	AcceptanceWindow float64

	// Epsilon regularises the forward projection q = R·x + ε. Must be > 0.
	Epsilon float64

	// CondThreshold bounds the LU condition number accepted by SolveExact.
	CondThreshold float64

	// PinvRcond is the relative singular-value cut-off of SolvePinv.
	PinvRcond float64

	// Guess selects the initial spectrum built by the Solver wrappers.
	Guess Guess
}

// DefaultOptions returns the defaults used throughout the module.
func DefaultOptions() Options {
	return Options{
		Tolerance:        DefaultTolerance,
		MaxIterations:    DefaultMaxIterations,
		AcceptanceWindow: DefaultAcceptanceWindow,
		Epsilon:          DefaultEpsilon,
		CondThreshold:    DefaultCondThreshold,
		PinvRcond:        DefaultPinvRcond,
		Guess:            GuessUniform,
	}
}
