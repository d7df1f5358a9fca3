// SPDX-License-Identifier: MIT
// Package matrix_test contains unit tests for the Dense implementation.
package matrix_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/unfold/matrix"
	"github.com/stretchr/testify/require"
)

// TestNewDenseInvalidDimensions ensures that NewDense rejects non-positive dimensions.
func TestNewDenseInvalidDimensions(t *testing.T) {
	t.Parallel()

	_, err := matrix.NewDense(0, 5)                      // attempt to create with zero rows
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions) // expect ErrInvalidDimensions

	_, err = matrix.NewDense(5, 0)                       // attempt to create with zero columns
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions) // expect ErrInvalidDimensions
}

func TestNewFromRows(t *testing.T) {
	t.Parallel()

	m := MustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 3, m.Cols())
	require.Equal(t, 6.0, MustAt(t, m, 1, 2))

	_, err := matrix.NewFromRows([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, matrix.ErrRagged)

	_, err = matrix.NewFromRows(nil)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)

	_, err = matrix.NewFromRows([][]float64{{1, math.Inf(-1)}})
	require.ErrorIs(t, err, matrix.ErrNaNInf)
}

// TestRowIsView checks that Row aliases storage while Col and Clone copy.
func TestRowIsView(t *testing.T) {
	t.Parallel()

	m := MustRows(t, [][]float64{{1, 2}, {3, 4}})
	row := m.Row(1)
	row[0] = 30
	require.Equal(t, 30.0, MustAt(t, m, 1, 0))

	col, err := m.Col(1)
	require.NoError(t, err)
	require.Equal(t, []float64{2, 4}, col)
	col[0] = 99
	require.Equal(t, 2.0, MustAt(t, m, 0, 1))

	cp := m.Clone()
	cp.Row(0)[0] = -1
	require.Equal(t, 1.0, MustAt(t, m, 0, 0))

	_, err = m.Col(2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
}

func TestSetRow(t *testing.T) {
	t.Parallel()

	m, err := matrix.NewDense(2, 2)
	require.NoError(t, err)
	require.NoError(t, m.SetRow(1, []float64{5, 6}))
	require.Equal(t, []float64{5, 6}, m.Row(1))
	require.ErrorIs(t, m.SetRow(0, []float64{1}), matrix.ErrDimensionMismatch)
	require.ErrorIs(t, m.SetRow(2, []float64{1, 2}), matrix.ErrOutOfRange)
	require.ErrorIs(t, m.SetRow(0, []float64{1, math.NaN()}), matrix.ErrNaNInf)
}

func TestIdentity(t *testing.T) {
	t.Parallel()

	id, err := matrix.NewIdentity(3)
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			want := 0.0
			if i == j {
				want = 1
			}
			require.Equal(t, want, MustAt(t, id, i, j))
		}
	}

	_, err = matrix.NewIdentity(0)
	require.ErrorIs(t, err, matrix.ErrInvalidDimensions)
}

func TestString(t *testing.T) {
	t.Parallel()

	m := MustRows(t, [][]float64{{1, 2.5}, {3, 4}})
	require.Equal(t, "[1, 2.5]\n[3, 4]\n", m.String())
}
