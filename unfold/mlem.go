// SPDX-License-Identifier: MIT

package unfold

import (
	"context"

	"github.com/cwbudde/algo-vecmath"
	"github.com/katalvlaran/unfold/matrix"
)

// MLEM is the maximum-likelihood expectation-maximisation unfolding:
//
//	x[j] ← x[j] · (Σᵢ R[i,j]·v[i]) / Σᵢ R[i,j],   v = (N + ε) / (R·x + ε)
//
// The zero value is ready to use.
type MLEM struct{}

// Name implements Algorithm.
func (MLEM) Name() string { return string(MethodMLEM) }

// Unfold implements Algorithm.
func (MLEM) Unfold(ctx context.Context, r *matrix.Dense, n, x0 []float64, opts Options) (Result, error) {
	return iterate(ctx, string(MethodMLEM), r, n, x0, opts, mlemStep)
}

// mlemStep: back-project v, normalise by the column sensitivity, scale x.
// Complexity: O(n·m).
func mlemStep(ws *workspace, x []float64) error {
	if err := matrix.MatTVecTo(ws.colA, ws.r, ws.v); err != nil {
		return err
	}
	vecmath.MulBlockInPlace(ws.colA, ws.invColSum)
	vecmath.MulBlockInPlace(x, ws.colA)

	return nil
}
