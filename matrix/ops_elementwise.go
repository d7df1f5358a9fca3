// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - In-place clamps used by the Monte Carlo sampler for its negative-sample
//     policy.

package matrix

// ClipBelow raises every entry of m below lo to lo, in place, and reports how
// many entries were changed.
// Time: O(r*c). Space: O(1).
func ClipBelow(m *Dense, lo float64) int {
	clipped := 0
	for idx, v := range m.data {
		if v < lo {
			m.data[idx] = lo
			clipped++
		}
	}

	return clipped
}

// ClipVecBelow is ClipBelow for a plain vector.
func ClipVecBelow(x []float64, lo float64) int {
	clipped := 0
	for i, v := range x {
		if v < lo {
			x[i] = lo
			clipped++
		}
	}

	return clipped
}
