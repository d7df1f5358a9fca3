// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Reduce a draws×bins ensemble to per-column mean and spread.
//
// Determinism & Performance:
//   - Columns are gathered into one reusable scratch slice; the reduction
//     itself is gonum/stat, so every column sees the same summation order.

package matrix

import "gonum.org/v1/gonum/stat"

const opColumnMeanStd = "ColumnMeanStd"

// ColumnMeanStd computes the per-column mean and population standard
// deviation (divisor r, the numpy std convention) of X.
// Implementation:
//   - Stage 1: Validate X (non-nil).
//   - Stage 2: For each column, copy it into scratch and reduce with
//     stat.PopMeanStdDev.
//
// Returns:
//   - means, stds: both of length Cols().
//
// Errors:
//   - ErrNilMatrix.
//
// Complexity:
//   - Time O(r*c), Space O(r+c).
func ColumnMeanStd(X *Dense) (means, stds []float64, err error) {
	// Stage 1 (Validate): ensure X is present.
	if err = ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opColumnMeanStd, err)
	}

	// Stage 2 (Execute): one column at a time through a shared scratch buffer.
	r, c := X.r, X.c
	means = make([]float64, c)
	stds = make([]float64, c)
	col := make([]float64, r)

	var i, j int
	for j = 0; j < c; j++ {
		for i = 0; i < r; i++ {
			col[i] = X.data[i*c+j]
		}
		means[j], stds[j] = stat.PopMeanStdDev(col, nil)
	}

	return means, stds, nil
}
