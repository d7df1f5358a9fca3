// SPDX-License-Identifier: MIT

// Validation shared by the iterative and direct back-ends.
//
// Design principles:
//   - Deterministic and side-effect free.
//   - No logging, no panics on user input; every failure wraps ErrConfiguration.
//   - O(n·m) worst case for an n × m response.

package unfold

import (
	"math"

	"github.com/katalvlaran/unfold/matrix"
)

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// validateOptions checks the option set without referencing the problem.
// Complexity: O(1).
func validateOptions(opts Options) error {
	switch {
	case !isFinite(opts.Tolerance) || opts.Tolerance <= 0:
		return configErrorf("tolerance %g must be finite and > 0", opts.Tolerance)
	case opts.MaxIterations <= 0:
		return configErrorf("max iterations %d must be > 0", opts.MaxIterations)
	case !isFinite(opts.AcceptanceWindow) || opts.AcceptanceWindow < 0:
		return configErrorf("acceptance window %g must be finite and ≥ 0", opts.AcceptanceWindow)
	case !isFinite(opts.Epsilon) || opts.Epsilon <= 0:
		return configErrorf("epsilon %g must be finite and > 0", opts.Epsilon)
	case math.IsNaN(opts.CondThreshold) || opts.CondThreshold <= 1:
		return configErrorf("condition threshold %g must be > 1", opts.CondThreshold)
	case !isFinite(opts.PinvRcond) || opts.PinvRcond < 0:
		return configErrorf("pinv rcond %g must be finite and ≥ 0", opts.PinvRcond)
	case opts.Guess != GuessUniform && opts.Guess != GuessRandom:
		return configErrorf("unknown initial guess %v", opts.Guess)
	}

	return nil
}

// validateIterative checks an MLEM/GRAVEL problem.
//
// Stage 1: options.
// Stage 2: R non-nil, non-negative (hence finite), no all-zero column.
// Stage 3: len(N) == rows, N finite and ≥ 0.
// Stage 4: len(x0) == cols, x0 finite and > 0.
//
// Complexity: O(n·m).
func validateIterative(r *matrix.Dense, n, x0 []float64, opts Options) error {
	if err := validateOptions(opts); err != nil {
		return err
	}
	if err := validateIterativeProblem(r, n); err != nil {
		return err
	}
	if len(x0) != r.Cols() {
		return configErrorf("initial guess length %d != response columns %d", len(x0), r.Cols())
	}
	for j, v := range x0 {
		if !isFinite(v) || v <= 0 {
			return configErrorf("initial guess[%d]=%g must be finite and > 0", j, v)
		}
	}

	return nil
}

func validateIterativeProblem(r *matrix.Dense, n []float64) error {
	if err := matrix.ValidateResponse(r); err != nil {
		return configWrap("response", err)
	}
	if len(n) != r.Rows() {
		return configErrorf("counts length %d != response rows %d", len(n), r.Rows())
	}
	if err := matrix.ValidateVecNonNegative(n); err != nil {
		return configWrap("counts", err)
	}

	return nil
}

// validateDirect checks a direct problem: R non-nil and finite, len(N) ==
// rows, N finite. Signs are unrestricted.
// Complexity: O(n·m).
func validateDirect(r *matrix.Dense, n []float64, opts Options) error {
	if err := validateOptions(opts); err != nil {
		return err
	}
	if err := matrix.ValidateNotNil(r); err != nil {
		return configWrap("response", err)
	}
	if err := matrix.ValidateFinite(r); err != nil {
		return configWrap("response", err)
	}
	if len(n) != r.Rows() {
		return configErrorf("counts length %d != response rows %d", len(n), r.Rows())
	}
	if err := matrix.ValidateVecFinite(n); err != nil {
		return configWrap("counts", err)
	}

	return nil
}
