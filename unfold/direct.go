// SPDX-License-Identifier: MIT

package unfold

import (
	"errors"
	"fmt"
	"math"

	"github.com/katalvlaran/unfold/matrix"
	"gonum.org/v1/gonum/mat"
)

// SolveExact solves R·x = N for a square R through an LU factorisation with
// partial pivoting.
//
// Stage 1: validate (square, finite, len(N) == rows).
// Stage 2: factorise; cond(R) > opts.CondThreshold ⇒ ErrSingularMatrix.
// Stage 3: back-substitute.
//
// The solution is not constrained to x ≥ 0.
// Complexity: O(n³) time, O(n²) memory.
func SolveExact(r *matrix.Dense, n []float64, opts Options) ([]float64, error) {
	if err := validateDirect(r, n, opts); err != nil {
		return nil, fmt.Errorf("unfold: lu: %w", err)
	}
	if err := matrix.ValidateSquare(r); err != nil {
		return nil, fmt.Errorf("unfold: lu: %w", configWrap("response", err))
	}

	a, err := matrix.ToMat(r)
	if err != nil {
		return nil, fmt.Errorf("unfold: lu: %w", err)
	}
	var lu mat.LU
	lu.Factorize(a)
	cond := lu.Cond()
	if math.IsNaN(cond) || cond > opts.CondThreshold {
		return nil, fmt.Errorf("unfold: lu: %w: condition number %g exceeds %g",
			ErrSingularMatrix, cond, opts.CondThreshold)
	}

	var x mat.VecDense
	if err = lu.SolveVecTo(&x, false, mat.NewVecDense(len(n), cloneVec(n))); err != nil {
		// mat reports ill-conditioning against its own tolerance; the
		// configured threshold has already been applied above.
		var c mat.Condition
		if !errors.As(err, &c) || float64(c) > opts.CondThreshold {
			return nil, fmt.Errorf("unfold: lu: %w: %v", ErrSingularMatrix, err)
		}
	}

	return vecData(&x), nil
}

// SolvePinv returns the minimum-norm least-squares solution x = R⁺·N using a
// thin SVD, R = U·Σ·Vᵀ ⇒ R⁺ = V·Σ⁺·Uᵀ. Singular values ≤ opts.PinvRcond·σmax
// are treated as zero. Any shape is accepted.
//
// The solution is not constrained to x ≥ 0.
// Complexity: O(n·m·min(n,m)) time, O(n·m) memory.
func SolvePinv(r *matrix.Dense, n []float64, opts Options) ([]float64, error) {
	if err := validateDirect(r, n, opts); err != nil {
		return nil, fmt.Errorf("unfold: svd: %w", err)
	}

	a, err := matrix.ToMat(r)
	if err != nil {
		return nil, fmt.Errorf("unfold: svd: %w", err)
	}
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, fmt.Errorf("unfold: svd: %w: factorisation failed", ErrSingularMatrix)
	}

	sigma := svd.Values(nil)
	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	// y = Σ⁺·Uᵀ·N
	var y mat.VecDense
	y.MulVec(u.T(), mat.NewVecDense(len(n), cloneVec(n)))
	cutoff := opts.PinvRcond * sigma[0]
	for k, s := range sigma {
		if s <= cutoff || s == 0 {
			y.SetVec(k, 0)
			continue
		}
		y.SetVec(k, y.AtVec(k)/s)
	}

	var x mat.VecDense
	x.MulVec(&v, &y)

	return vecData(&x), nil
}

func cloneVec(x []float64) []float64 {
	out := make([]float64, len(x))
	copy(out, x)

	return out
}

func vecData(v *mat.VecDense) []float64 {
	out := make([]float64, v.Len())
	for i := range out {
		out[i] = v.AtVec(i)
	}

	return out
}
