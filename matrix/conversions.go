// SPDX-License-Identifier: MIT

// Package matrix: converters between Dense and gonum/mat.
// Direct solvers factorize with gonum (LU, SVD); these helpers copy at the
// boundary so gonum never aliases a caller's response matrix.
package matrix

import "gonum.org/v1/gonum/mat"

// ToMat returns a gonum copy of m.
// Time Complexity: O(r*c).
func ToMat(m *Dense) (*mat.Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf("ToMat", err)
	}
	data := make([]float64, len(m.data))
	copy(data, m.data)

	return mat.NewDense(m.r, m.c, data), nil
}
