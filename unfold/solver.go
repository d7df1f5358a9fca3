// SPDX-License-Identifier: MIT

package unfold

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/katalvlaran/unfold/matrix"
)

// Method names an unfolding back-end.
type Method string

const (
	MethodMLEM   Method = "mlem"
	MethodGravel Method = "gravel"
	MethodLU     Method = "lu"
	MethodSVD    Method = "svd"
)

// Methods lists every supported back-end in a stable order.
func Methods() []Method { return []Method{MethodMLEM, MethodGravel, MethodLU, MethodSVD} }

// ParseMethod maps a case-insensitive name to a Method.
// "pinv" is accepted as an alias of "svd", "exact" of "lu".
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mlem":
		return MethodMLEM, nil
	case "gravel":
		return MethodGravel, nil
	case "lu", "exact":
		return MethodLU, nil
	case "svd", "pinv":
		return MethodSVD, nil
	default:
		return "", configErrorf("unknown method %q", s)
	}
}

// Solver is a single deterministic solve, as consumed by the Monte Carlo
// driver. Implementations are stateless and safe for concurrent use; each
// call must receive its own rng.
type Solver interface {
	Solve(ctx context.Context, r *matrix.Dense, n []float64, rng *rand.Rand) (Result, error)
}

// Validator is implemented by solvers that can reject a problem up front.
// The Monte Carlo driver checks the nominal problem with it before drawing.
type Validator interface {
	Validate(r *matrix.Dense, n []float64) error
}

// NewSolver returns the back-end for method configured with opts.
// Options are validated here so a Monte Carlo run fails before its first draw.
func NewSolver(method Method, opts Options) (Solver, error) {
	if err := validateOptions(opts); err != nil {
		return nil, fmt.Errorf("unfold: NewSolver: %w", err)
	}
	switch method {
	case MethodMLEM:
		return iterativeSolver{alg: MLEM{}, opts: opts}, nil
	case MethodGravel:
		return iterativeSolver{alg: Gravel{}, opts: opts}, nil
	case MethodLU:
		return directSolver{solve: SolveExact, square: true, opts: opts}, nil
	case MethodSVD:
		return directSolver{solve: SolvePinv, opts: opts}, nil
	default:
		return nil, fmt.Errorf("unfold: NewSolver: %w", configErrorf("unknown method %q", method))
	}
}

// iterativeSolver builds x0 from opts.Guess and runs alg.
type iterativeSolver struct {
	alg  Algorithm
	opts Options
}

func (s iterativeSolver) Solve(ctx context.Context, r *matrix.Dense, n []float64, rng *rand.Rand) (Result, error) {
	if r == nil {
		return Result{}, fmt.Errorf("unfold: %s: %w", s.alg.Name(), configWrap("response", matrix.ErrNilMatrix))
	}
	x0, err := InitialGuess(r.Cols(), s.opts.Guess, rng)
	if err != nil {
		return Result{}, fmt.Errorf("unfold: %s: %w", s.alg.Name(), err)
	}

	return s.alg.Unfold(ctx, r, n, x0, s.opts)
}

// Validate implements Validator.
func (s iterativeSolver) Validate(r *matrix.Dense, n []float64) error {
	if err := validateIterativeProblem(r, n); err != nil {
		return fmt.Errorf("unfold: %s: %w", s.alg.Name(), err)
	}

	return nil
}

// directSolver adapts SolveExact / SolvePinv; rng is ignored.
type directSolver struct {
	solve  func(*matrix.Dense, []float64, Options) ([]float64, error)
	square bool // LU
	opts   Options
}

// Validate implements Validator. Conditioning is left to Solve.
func (s directSolver) Validate(r *matrix.Dense, n []float64) error {
	if err := validateDirect(r, n, s.opts); err != nil {
		return fmt.Errorf("unfold: %w", err)
	}
	if s.square {
		if err := matrix.ValidateSquare(r); err != nil {
			return fmt.Errorf("unfold: %w", configWrap("response", err))
		}
	}

	return nil
}

func (s directSolver) Solve(ctx context.Context, r *matrix.Dense, n []float64, _ *rand.Rand) (Result, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return Result{}, fmt.Errorf("unfold: %w", err)
		}
	}
	x, err := s.solve(r, n, s.opts)
	if err != nil {
		return Result{}, err
	}

	return Result{X: x, Stop: StopDirect}, nil
}
