// SPDX-License-Identifier: MIT

package unfold

import (
	"context"
	"math"

	"github.com/cwbudde/algo-vecmath"
	"github.com/katalvlaran/unfold/matrix"
)

// Gravel is the GRAVEL (SAND-II family) unfolding with Poisson weights:
//
//	W[i,j] = (N[i] + ε)·R[i,j]·x[j] / q[i]
//	x[j]  ← x[j] · exp( Σᵢ W[i,j]·ln v[i] / Σᵢ W[i,j] )
//
// The ε floor keeps every weight positive, so a bin observed only by
// zero-count channels is driven toward 0 like under MLEM. The zero value is
// ready to use.
type Gravel struct{}

// Name implements Algorithm.
func (Gravel) Name() string { return string(MethodGravel) }

// Unfold implements Algorithm.
func (Gravel) Unfold(ctx context.Context, r *matrix.Dense, n, x0 []float64, opts Options) (Result, error) {
	return iterate(ctx, string(MethodGravel), r, n, x0, opts, gravelStep)
}

// gravelStep evaluates the weighted log-mean through two back-projections.
// x[j] factors out of numerator and denominator, so with a[i] = (N[i]+ε)/q[i],
// which is v[i]:
//
//	exponent[j] = (Rᵀ·(v∘ln v))[j] / (Rᵀ·v)[j]
//
// v > 0 and R has no zero column, so the denominator is positive.
//
// Complexity: O(n·m).
func gravelStep(ws *workspace, x []float64) error {
	a := ws.rowTmp
	copy(a, ws.v)
	if err := matrix.MatTVecTo(ws.colB, ws.r, a); err != nil { // Σᵢ W[i,j] / x[j]
		return err
	}

	for i, vi := range ws.v {
		ws.v[i] = math.Log(vi)
	}
	vecmath.MulBlockInPlace(a, ws.v) // a∘ln v
	if err := matrix.MatTVecTo(ws.colA, ws.r, a); err != nil {
		return err
	}

	for j, den := range ws.colB {
		x[j] *= math.Exp(ws.colA[j] / den)
	}

	return nil
}
