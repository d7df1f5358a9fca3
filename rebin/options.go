// SPDX-License-Identifier: MIT

// Functional configuration for rebinning.
// Constructors validate eagerly and panic on nonsensical values.

package rebin

import "math"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultTemperature is room temperature in kelvin.
	DefaultTemperature = 293.15

	// BoltzmannMeV is the Boltzmann constant in MeV/K. Energies on the fine
	// grid must be in MeV when this default is used.
	BoltzmannMeV = 8.617333262e-11

	// BoltzmannEV is the Boltzmann constant in eV/K.
	BoltzmannEV = 8.617333262e-5
)

const (
	panicTemperatureInvalid = "rebin: WithTemperature: T must be finite and > 0"
	panicBoltzmannInvalid   = "rebin: WithBoltzmann: k must be finite and > 0"
)

// Option mutates internal options.
type Option func(*options)

type options struct {
	temperature float64 // kelvin
	boltzmann   float64 // energy units per kelvin, matching E
	thermal     bool    // Matrix: Maxwell–Boltzmann weighting of bin 0
}

func defaultOptions() options {
	return options{temperature: DefaultTemperature, boltzmann: BoltzmannMeV}
}

// gatherOptions applies opts over the defaults.
func gatherOptions(opts ...Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// kT returns the thermal energy in the units of the fine grid.
func (o options) kT() float64 { return o.boltzmann * o.temperature }

// WithTemperature sets the Maxwell–Boltzmann temperature in kelvin.
// Panics when T is not finite or not positive.
func WithTemperature(T float64) Option {
	if math.IsNaN(T) || math.IsInf(T, 0) || T <= 0 {
		panic(panicTemperatureInvalid)
	}

	return func(o *options) { o.temperature = T }
}

// WithBoltzmann sets the Boltzmann constant in the energy unit of the grid,
// e.g. BoltzmannEV for grids in eV. Panics when k is not finite or not positive.
func WithBoltzmann(k float64) Option {
	if math.IsNaN(k) || math.IsInf(k, 0) || k <= 0 {
		panic(panicBoltzmannInvalid)
	}

	return func(o *options) { o.boltzmann = k }
}

// WithThermal makes Matrix weight the lowest coarse bin by the
// Maxwell–Boltzmann density. Column and Thermal ignore it.
func WithThermal() Option {
	return func(o *options) { o.thermal = true }
}
