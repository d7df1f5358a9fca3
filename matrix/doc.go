// SPDX-License-Identifier: MIT

// Package matrix provides the dense numeric core shared by the unfolding
// packages: a row-major Dense container for response matrices and Monte Carlo
// ensembles, validators that enforce the numeric policy of the engine
// (finite, non-negative, no unobservable columns), a handful of tight kernels
// (R·x, Rᵀ·v, column sums), column statistics and a bridge to gonum/mat.
//
// What & Why:
//
//	Solvers read R row by row in their hot loops; Dense keeps rows contiguous
//	so Row(i) can hand out a no-copy view. Checked paths (constructors, Col,
//	SetRow, validators) return sentinel errors from errors.go, matched with
//	errors.Is.
//
// Complexity:
//
//	Row is O(1). Kernels are O(r*c) with fixed i→j traversal, so results are
//	bitwise reproducible across runs.
package matrix
