// SPDX-License-Identifier: MIT

package rebin

import (
	"fmt"
	"math"

	"github.com/katalvlaran/unfold/matrix"
)

// Binned is one detector configuration rebinned onto coarse bins.
type Binned struct {
	Values []float64 // weighted mean response per bin
	Errors []float64 // propagated 1σ per bin
}

// weightFunc returns the weight of fine point i that landed in bin b.
type weightFunc func(i, b int) float64

// Column rebins one detector response r(E) with 1σ rErr onto edges using
// the plain dE weighting.
//
// Stage 1 (validate): grid, edges, lengths of r and rErr, r finite, rErr
// finite and ≥ 0.
// Stage 2 (accumulate): Σ r·w, Σ (w·σ)², Σ w per bin.
// Stage 3 (reduce): divide by Σ w; an empty bin is ErrDegenerateBin.
//
// Complexity: O(k·log(bins)) time, O(bins) memory.
func Column(E, r, rErr, edges []float64) (Binned, error) {
	dE, err := prepare(E, r, rErr, edges)
	if err != nil {
		return Binned{}, fmt.Errorf("rebin.Column: %w", err)
	}
	col, err := accumulate(E, r, rErr, edges, func(i, _ int) float64 { return dE[i] })
	if err != nil {
		return Binned{}, fmt.Errorf("rebin.Column: %w", err)
	}

	return col, nil
}

// Thermal is Column with the lowest bin weighted by the Maxwell–Boltzmann
// flux density at the configured temperature. Requires E ≥ 0.
func Thermal(E, r, rErr, edges []float64, opts ...Option) (Binned, error) {
	o := gatherOptions(opts...)
	col, err := thermal(E, r, rErr, edges, o)
	if err != nil {
		return Binned{}, fmt.Errorf("rebin.Thermal: %w", err)
	}

	return col, nil
}

func thermal(E, r, rErr, edges []float64, o options) (Binned, error) {
	dE, err := prepare(E, r, rErr, edges)
	if err != nil {
		return Binned{}, err
	}
	if E[0] < 0 {
		return Binned{}, fmt.Errorf("%w: negative energy %g under thermal weighting", ErrGrid, E[0])
	}
	kT := o.kT()

	return accumulate(E, r, rErr, edges, func(i, b int) float64 {
		if b == 0 {
			return dE[i] * MaxwellBoltzmann(E[i], kT)
		}

		return dE[i]
	})
}

// Matrix rebins a fine response table of k energy points × c detector
// configurations (with matching 1σ table) into a c × bins response matrix,
// rows = configurations, columns = coarse energy bins. WithThermal applies
// the Maxwell–Boltzmann weighting to bin 0 of every configuration.
//
// Complexity: O(c·k·log(bins)) time, O(c·bins) memory.
func Matrix(E []float64, fine, fineErr *matrix.Dense, edges []float64, opts ...Option) (*matrix.Dense, *matrix.Dense, error) {
	o := gatherOptions(opts...)
	if fine == nil || fineErr == nil {
		return nil, nil, fmt.Errorf("rebin.Matrix: %w", matrix.ErrNilMatrix)
	}
	if err := matrix.ValidateSameShape(fine, fineErr); err != nil {
		return nil, nil, fmt.Errorf("rebin.Matrix: %w: %v", ErrDimensionMismatch, err)
	}
	if fine.Rows() != len(E) {
		return nil, nil, fmt.Errorf("rebin.Matrix: %w: %d rows for %d energies",
			ErrDimensionMismatch, fine.Rows(), len(E))
	}
	if err := validateEdges(edges); err != nil {
		return nil, nil, fmt.Errorf("rebin.Matrix: %w", err)
	}

	c, bins := fine.Cols(), len(edges)-1
	coarse, err := matrix.NewDense(c, bins)
	if err != nil {
		return nil, nil, fmt.Errorf("rebin.Matrix: %w", err)
	}
	coarseErr, err := matrix.NewDense(c, bins)
	if err != nil {
		return nil, nil, fmt.Errorf("rebin.Matrix: %w", err)
	}

	var col Binned
	for j := 0; j < c; j++ {
		r, err := fine.Col(j)
		if err != nil {
			return nil, nil, fmt.Errorf("rebin.Matrix: %w", err)
		}
		rErr, err := fineErr.Col(j)
		if err != nil {
			return nil, nil, fmt.Errorf("rebin.Matrix: %w", err)
		}
		if o.thermal {
			col, err = thermal(E, r, rErr, edges, o)
		} else {
			col, err = Column(E, r, rErr, edges)
		}
		if err != nil {
			return nil, nil, fmt.Errorf("rebin.Matrix: configuration %d: %w", j, err)
		}
		if err = coarse.SetRow(j, col.Values); err != nil {
			return nil, nil, fmt.Errorf("rebin.Matrix: %w", err)
		}
		if err = coarseErr.SetRow(j, col.Errors); err != nil {
			return nil, nil, fmt.Errorf("rebin.Matrix: %w", err)
		}
	}

	return coarse, coarseErr, nil
}

// prepare validates the inputs of a single-column rebin and returns dE.
func prepare(E, r, rErr, edges []float64) ([]float64, error) {
	dE, err := HalfWidths(E)
	if err != nil {
		return nil, err
	}
	if len(r) != len(E) || len(rErr) != len(E) {
		return nil, fmt.Errorf("%w: %d energies, %d responses, %d errors",
			ErrDimensionMismatch, len(E), len(r), len(rErr))
	}
	if err = validateEdges(edges); err != nil {
		return nil, err
	}
	if err = matrix.ValidateVecFinite(r); err != nil {
		return nil, fmt.Errorf("%w: response: %w", ErrValue, err)
	}
	if err = matrix.ValidateVecNonNegative(rErr); err != nil {
		return nil, fmt.Errorf("%w: uncertainty: %w", ErrValue, err)
	}

	return dE, nil
}

func accumulate(E, r, rErr, edges []float64, weight weightFunc) (Binned, error) {
	bins := len(edges) - 1
	num := make([]float64, bins)
	varSum := make([]float64, bins)
	den := make([]float64, bins)

	for i, e := range E {
		b := binOf(e, edges)
		if b < 0 {
			continue
		}
		w := weight(i, b)
		num[b] += r[i] * w
		ws := w * rErr[i]
		varSum[b] += ws * ws
		den[b] += w
	}

	col := Binned{Values: make([]float64, bins), Errors: make([]float64, bins)}
	for b := 0; b < bins; b++ {
		if den[b] == 0 || math.IsNaN(den[b]) {
			return Binned{}, fmt.Errorf("%w: bin %d [%g, %g]", ErrDegenerateBin, b, edges[b], edges[b+1])
		}
		col.Values[b] = num[b] / den[b]
		col.Errors[b] = math.Sqrt(varSum[b]) / den[b]
	}

	return col, nil
}

// binOf returns the bin of e under histogram semantics, or -1 when e lies
// outside [edges[0], edges[last]]. The last bin is closed on the right.
func binOf(e float64, edges []float64) int {
	last := len(edges) - 1
	if e < edges[0] || e > edges[last] {
		return -1
	}
	if e == edges[last] {
		return last - 1
	}
	// smallest index with edges[idx] > e, minus one
	lo, hi := 0, last
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if edges[mid] > e {
			hi = mid
		} else {
			lo = mid + 1
		}
	}

	return lo - 1
}
