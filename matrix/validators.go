// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//  - Provide a single, canonical source of truth for the input checks every
//    unfolding entry point performs before computing anything.
//  - Return sentinel errors tagged with the validator name so call sites can
//    wrap uniformly and callers can match with errors.Is.
//
// Determinism & Performance:
//  - All checks are pure, deterministic and allocate nothing.
//  - Element checks report the first offending coordinate in row-major order.

package matrix

import "fmt"

// validatorErrorf wraps an underlying error with the given validator tag.
func validatorErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// ValidateNotNil ensures the matrix reference is non-nil.
// Complexity: O(1).
func ValidateNotNil(m *Dense) error {
	if m == nil {
		return validatorErrorf("ValidateNotNil", ErrNilMatrix)
	}

	return nil
}

// ValidateSameShape ensures a and b are non-nil and have equal dimensions.
// Complexity: O(1).
func ValidateSameShape(a, b *Dense) error {
	if a == nil || b == nil {
		return validatorErrorf("ValidateSameShape", ErrNilMatrix)
	}
	if a.r != b.r {
		return validatorErrorf(fmt.Sprintf("ValidateSameShape: rows %d vs %d", a.r, b.r), ErrDimensionMismatch)
	}
	if a.c != b.c {
		return validatorErrorf(fmt.Sprintf("ValidateSameShape: cols %d vs %d", a.c, b.c), ErrDimensionMismatch)
	}

	return nil
}

// ValidateSquare checks that m is non-nil and square (Rows == Cols).
// Complexity: O(1).
func ValidateSquare(m *Dense) error {
	if m == nil {
		return validatorErrorf("ValidateSquare", ErrNilMatrix)
	}
	if m.r != m.c {
		return validatorErrorf(fmt.Sprintf("ValidateSquare: %dx%d", m.r, m.c), ErrNonSquare)
	}

	return nil
}

// ValidateVecLen ensures the vector length matches the required size n.
// A nil vector is treated as length 0.
// Complexity: O(1).
func ValidateVecLen(x []float64, n int) error {
	if len(x) != n {
		return validatorErrorf(fmt.Sprintf("ValidateVecLen: got %d, want %d", len(x), n), ErrDimensionMismatch)
	}

	return nil
}

// ValidateFinite rejects NaN/±Inf entries.
// Complexity: O(r*c).
func ValidateFinite(m *Dense) error {
	if m == nil {
		return validatorErrorf("ValidateFinite", ErrNilMatrix)
	}
	for idx, v := range m.data {
		if isNonFinite(v) {
			return validatorErrorf("ValidateFinite", denseErrorf(ctxAt, idx/m.c, idx%m.c, ErrNaNInf))
		}
	}

	return nil
}

// ValidateNonNegative rejects negative entries (and NaN/±Inf).
// Complexity: O(r*c).
func ValidateNonNegative(m *Dense) error {
	if err := ValidateFinite(m); err != nil {
		return err
	}
	for idx, v := range m.data {
		if v < 0 {
			return validatorErrorf("ValidateNonNegative", denseErrorf(ctxAt, idx/m.c, idx%m.c, ErrNegative))
		}
	}

	return nil
}

// ValidateNoZeroColumn rejects matrices with a column whose entries are all
// exactly zero. Assumes m is non-nil.
// Complexity: O(r*c) worst case; exits per column on the first non-zero.
func ValidateNoZeroColumn(m *Dense) error {
	var i, j int
	for j = 0; j < m.c; j++ {
		for i = 0; i < m.r; i++ {
			if m.data[i*m.c+j] != 0 {
				break
			}
		}
		if i == m.r {
			return validatorErrorf(fmt.Sprintf("ValidateNoZeroColumn: column %d", j), ErrZeroColumn)
		}
	}

	return nil
}

// ValidateVecFinite rejects NaN/±Inf vector entries.
// Complexity: O(n).
func ValidateVecFinite(x []float64) error {
	for i, v := range x {
		if isNonFinite(v) {
			return validatorErrorf(fmt.Sprintf("ValidateVecFinite: index %d", i), ErrNaNInf)
		}
	}

	return nil
}

// ValidateVecNonNegative rejects negative (or non-finite) vector entries.
// Complexity: O(n).
func ValidateVecNonNegative(x []float64) error {
	if err := ValidateVecFinite(x); err != nil {
		return err
	}
	for i, v := range x {
		if v < 0 {
			return validatorErrorf(fmt.Sprintf("ValidateVecNonNegative: index %d", i), ErrNegative)
		}
	}

	return nil
}

// ValidateResponse is the composite check for an unfolding response matrix:
// NotNil → NonNegative (implies finite) → NoZeroColumn.
func ValidateResponse(m *Dense) error {
	if err := ValidateNotNil(m); err != nil {
		return validatorErrorf("ValidateResponse", err)
	}
	if err := ValidateNonNegative(m); err != nil {
		return validatorErrorf("ValidateResponse", err)
	}
	if err := ValidateNoZeroColumn(m); err != nil {
		return validatorErrorf("ValidateResponse", err)
	}

	return nil
}
