// SPDX-License-Identifier: MIT
// Package matrix provides the handful of products the unfolding solvers need.
//
// Kernels operate on the flat row-major buffer of *Dense and delegate the
// inner dot/axpy loops to gonum/floats. The *To variants write into a
// caller-owned destination so iterative solvers allocate nothing per step.

package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Operation name constants for unified error wrapping.
const (
	opMatVec     = "MatVec"
	opMatTVec    = "MatTVec"
	opColumnSums = "ColumnSums"
)

// matrixErrorf wraps err with an operation tag; use only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// MatVec computes y = m·x and returns a fresh slice of length Rows().
//
// Contract: m non-nil; len(x) == m.Cols().
// Complexity: Time O(r*c), Space O(r).
func MatVec(m *Dense, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, m.r)
	if err := MatVecTo(y, m, x); err != nil {
		return nil, err
	}

	return y, nil
}

// MatVecTo computes dst = m·x without allocating.
//
// Contract: len(dst) == m.Rows(); len(x) == m.Cols().
// Determinism: fixed row order; each entry is one floats.Dot over a row view.
func MatVecTo(dst []float64, m *Dense, x []float64) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.c); err != nil {
		return matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(dst, m.r); err != nil {
		return matrixErrorf(opMatVec, err)
	}
	for i := 0; i < m.r; i++ {
		dst[i] = floats.Dot(m.Row(i), x)
	}

	return nil
}

// MatTVecTo computes dst = mᵀ·v without allocating: dst[j] = Σᵢ m[i,j]·v[i].
//
// Contract: len(dst) == m.Cols(); len(v) == m.Rows().
// Complexity: Time O(r*c), Space O(1).
func MatTVecTo(dst []float64, m *Dense, v []float64) error {
	if err := ValidateNotNil(m); err != nil {
		return matrixErrorf(opMatTVec, err)
	}
	if err := ValidateVecLen(v, m.r); err != nil {
		return matrixErrorf(opMatTVec, err)
	}
	if err := ValidateVecLen(dst, m.c); err != nil {
		return matrixErrorf(opMatTVec, err)
	}
	for j := range dst {
		dst[j] = 0
	}
	for i := 0; i < m.r; i++ {
		if v[i] != 0 { // skip zero rows of the combination
			floats.AddScaled(dst, v[i], m.Row(i))
		}
	}

	return nil
}

// ColumnSums returns s[j] = Σᵢ m[i,j].
// Complexity: Time O(r*c), Space O(c).
func ColumnSums(m *Dense) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opColumnSums, err)
	}
	s := make([]float64, m.c)
	for i := 0; i < m.r; i++ {
		floats.Add(s, m.Row(i))
	}

	return s, nil
}
