// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the matrix validators.
package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/katalvlaran/unfold/matrix"
	"github.com/stretchr/testify/require"
)

// TestValidateSameShape covers nil inputs, matching and mismatched dimensions.
func TestValidateSameShape(t *testing.T) {
	t.Parallel()

	zeros := func(r, c int) *matrix.Dense {
		m, err := matrix.NewDense(r, c)
		require.NoError(t, err)
		return m
	}

	tests := []struct {
		name    string
		a, b    *matrix.Dense
		wantErr error
	}{
		{"both nil", nil, nil, matrix.ErrNilMatrix},
		{"second nil", zeros(2, 2), nil, matrix.ErrNilMatrix},
		{"equal 2x3", zeros(2, 3), zeros(2, 3), nil},
		{"row mismatch", zeros(2, 3), zeros(3, 3), matrix.ErrDimensionMismatch},
		{"col mismatch", zeros(2, 3), zeros(2, 4), matrix.ErrDimensionMismatch},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateSameShape(tc.a, tc.b)
			if tc.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.Truef(t, errors.Is(err, tc.wantErr),
					"expected errors.Is(%v, %v)", err, tc.wantErr)
			}
		})
	}
}

func TestValidateSquare(t *testing.T) {
	t.Parallel()

	require.ErrorIs(t, matrix.ValidateSquare(nil), matrix.ErrNilMatrix)
	require.NoError(t, matrix.ValidateSquare(MustRows(t, [][]float64{{1, 0}, {0, 1}})))
	require.ErrorIs(t, matrix.ValidateSquare(MustRows(t, [][]float64{{1, 0, 0}, {0, 1, 0}})), matrix.ErrNonSquare)
}

// TestValidateResponse walks the composite response checks in order.
func TestValidateResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		m    *matrix.Dense
		want error
	}{
		{"nil", nil, matrix.ErrNilMatrix},
		{"ok", MustRows(t, [][]float64{{1, 0}, {0.5, 2}}), nil},
		{"negative", MustRows(t, [][]float64{{1, -0.1}, {0.5, 2}}), matrix.ErrNegative},
		{"zero column", MustRows(t, [][]float64{{1, 0}, {0.5, 0}}), matrix.ErrZeroColumn},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := matrix.ValidateResponse(tc.m)
			if tc.want == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestValidateVectors(t *testing.T) {
	t.Parallel()

	require.NoError(t, matrix.ValidateVecLen([]float64{1, 2}, 2))
	require.ErrorIs(t, matrix.ValidateVecLen(nil, 2), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, matrix.ValidateVecFinite([]float64{1, math.NaN()}), matrix.ErrNaNInf)
	require.ErrorIs(t, matrix.ValidateVecNonNegative([]float64{1, -1}), matrix.ErrNegative)
	require.ErrorIs(t, matrix.ValidateVecNonNegative([]float64{math.Inf(1)}), matrix.ErrNaNInf)
	require.NoError(t, matrix.ValidateVecNonNegative([]float64{0, 3}))
}
