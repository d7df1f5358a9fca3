// SPDX-License-Identifier: MIT

package rebin

import (
	"fmt"
	"math"
)

// HalfWidths returns the trapezoidal half-span of every fine grid point:
//
//	dE[0]   = (E[1]   − E[0])   / 2
//	dE[k−1] = (E[k−1] − E[k−2]) / 2
//	dE[i]   = (E[i+1] − E[i−1]) / 2
//
// E must hold at least two finite, strictly increasing energies.
func HalfWidths(E []float64) ([]float64, error) {
	if err := validateGrid(E); err != nil {
		return nil, err
	}
	k := len(E)
	dE := make([]float64, k)
	dE[0] = (E[1] - E[0]) / 2
	dE[k-1] = (E[k-1] - E[k-2]) / 2
	for i := 1; i < k-1; i++ {
		dE[i] = (E[i+1] - E[i-1]) / 2
	}

	return dE, nil
}

// MaxwellBoltzmann returns the unnormalised flux density sqrt(E)·exp(−E/kT).
// E and kT share one energy unit.
func MaxwellBoltzmann(E, kT float64) float64 {
	return math.Sqrt(E) * math.Exp(-E/kT)
}

func validateGrid(E []float64) error {
	if len(E) < 2 {
		return fmt.Errorf("%w: %d points, need at least 2", ErrGrid, len(E))
	}
	for i, e := range E {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return fmt.Errorf("%w: E[%d] is not finite", ErrGrid, i)
		}
		if i > 0 && e <= E[i-1] {
			return fmt.Errorf("%w: E[%d]=%g does not exceed E[%d]=%g", ErrGrid, i, e, i-1, E[i-1])
		}
	}

	return nil
}

func validateEdges(edges []float64) error {
	if len(edges) < 2 {
		return fmt.Errorf("%w: got %d edges", ErrEdges, len(edges))
	}
	for i, e := range edges {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return fmt.Errorf("%w: edge %d is not finite", ErrEdges, i)
		}
		if i > 0 && e <= edges[i-1] {
			return fmt.Errorf("%w: edge %d=%g does not exceed edge %d=%g", ErrEdges, i, e, i-1, edges[i-1])
		}
	}

	return nil
}
