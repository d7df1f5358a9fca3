// SPDX-License-Identifier: MIT

// Package rebin aggregates a high-resolution detector response onto coarse
// energy bins while preserving the energy integral of the response.
//
// Each fine sample E[i] stands for a Riemann cell of half-width dE[i]
// (trapezoidal half-span). A coarse bin value is the weighted mean
//
//	R_b = Σ R·w / Σ w,   σ_b = sqrt(Σ (w·σ)²) / Σ w,   w = dE
//
// over the fine points that fall in the bin. The thermal variant weights the
// lowest bin by a Maxwell–Boltzmann flux density at temperature T,
// w = dE·sqrt(E)·exp(−E/kT), so the thermal efficiency is flux-weighted
// rather than point-weighted.
//
// Bin membership follows histogram semantics: [e_b, e_{b+1}) with the last
// bin closed on the right; points outside the edge range are ignored.
// A bin that collects no weight is reported as ErrDegenerateBin, never NaN.
//
// Complexity: O(k + bins) per detector configuration for k fine points.
package rebin
