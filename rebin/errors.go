// SPDX-License-Identifier: MIT

package rebin

import "errors"

var (
	// ErrEdges indicates fewer than two bin edges, or edges that are not
	// finite and strictly increasing.
	ErrEdges = errors.New("rebin: bin edges must be finite and strictly increasing")

	// ErrGrid indicates a fine energy grid with fewer than two points, a
	// non-increasing or non-finite energy, or (thermal weighting only) a
	// negative energy.
	ErrGrid = errors.New("rebin: invalid fine energy grid")

	// ErrDimensionMismatch indicates response/uncertainty arrays whose length
	// or shape differs from the energy grid.
	ErrDimensionMismatch = errors.New("rebin: dimension mismatch")

	// ErrValue indicates a non-finite response, or a non-finite or negative
	// uncertainty.
	ErrValue = errors.New("rebin: invalid response value")

	// ErrDegenerateBin indicates a coarse bin whose weight sum is zero: no
	// fine point falls inside it, or every weight underflowed.
	ErrDegenerateBin = errors.New("rebin: coarse bin has zero weight")
)
