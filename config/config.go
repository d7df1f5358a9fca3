// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/katalvlaran/unfold/internal/logging"
	"github.com/katalvlaran/unfold/montecarlo"
	"github.com/katalvlaran/unfold/rebin"
	"github.com/katalvlaran/unfold/unfold"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every parse and validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// RunConfig is the YAML document of one unfolding run.
type RunConfig struct {
	Algorithm        string        `yaml:"algorithm"`
	InitialGuess     string        `yaml:"initial_guess"`
	Tolerance        float64       `yaml:"tolerance"`
	MaxIterations    int           `yaml:"max_iterations"`
	AcceptanceWindow float64       `yaml:"acceptance_window"`
	Epsilon          float64       `yaml:"epsilon"`
	CondThreshold    float64       `yaml:"cond_threshold"`
	PinvRcond        float64       `yaml:"pinv_rcond"`
	Iterations       int           `yaml:"iterations"` // Monte Carlo draws
	Seed             uint64        `yaml:"seed"`
	Workers          int           `yaml:"workers"`
	NegativePolicy   string        `yaml:"negative_policy"`
	MaxRedraws       int           `yaml:"max_redraws"`
	MaxFailureRate   float64       `yaml:"max_failure_rate"`
	DrawTimeout      time.Duration `yaml:"draw_timeout"`
	LogLevel         string        `yaml:"log_level"`
	Rebin            RebinConfig   `yaml:"rebin"`
}

// RebinConfig holds the coarse binning of the response.
type RebinConfig struct {
	Edges       []float64 `yaml:"edges"`
	Thermal     bool      `yaml:"thermal"`
	Temperature float64   `yaml:"temperature"` // kelvin
	Boltzmann   float64   `yaml:"boltzmann"`   // energy units per kelvin
}

// Default returns the configuration used for absent keys.
func Default() RunConfig {
	so := unfold.DefaultOptions()
	mo := montecarlo.DefaultOptions()

	return RunConfig{
		Algorithm:        string(unfold.MethodMLEM),
		InitialGuess:     so.Guess.String(),
		Tolerance:        so.Tolerance,
		MaxIterations:    so.MaxIterations,
		AcceptanceWindow: so.AcceptanceWindow,
		Epsilon:          so.Epsilon,
		CondThreshold:    so.CondThreshold,
		PinvRcond:        so.PinvRcond,
		Iterations:       mo.Draws,
		NegativePolicy:   mo.NegativePolicy.String(),
		MaxRedraws:       mo.MaxRedraws,
		MaxFailureRate:   mo.MaxFailureRate,
		LogLevel:         "info",
		Rebin: RebinConfig{
			Temperature: rebin.DefaultTemperature,
			Boltzmann:   rebin.BoltzmannMeV,
		},
	}
}

// Parse decodes a YAML document over Default and validates it.
func Parse(data []byte) (RunConfig, error) {
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return RunConfig{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return RunConfig{}, err
	}

	return cfg, nil
}

// Load reads and parses the YAML file at path.
func Load(path string) (RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunConfig{}, fmt.Errorf("config: load %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return RunConfig{}, fmt.Errorf("config: load %s: %w", path, err)
	}

	return cfg, nil
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate checks every field. Solver option ranges are checked by the
// unfold package itself through NewSolver.
func (c RunConfig) Validate() error {
	if _, err := c.Solver(); err != nil {
		return err
	}
	if _, err := c.MonteCarloOptions(nil, nil); err != nil {
		return err
	}
	if c.Workers < 0 {
		return invalid("workers %d must be ≥ 0", c.Workers)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return c.Rebin.validate()
}

func (r RebinConfig) validate() error {
	if len(r.Edges) == 1 {
		return invalid("rebin: need at least 2 edges, got 1")
	}
	for i, e := range r.Edges {
		if math.IsNaN(e) || math.IsInf(e, 0) {
			return invalid("rebin: edge %d is not finite", i)
		}
		if i > 0 && e <= r.Edges[i-1] {
			return invalid("rebin: edges must be strictly increasing at %d", i)
		}
	}
	if !(r.Temperature > 0) || math.IsInf(r.Temperature, 0) {
		return invalid("rebin: temperature %g must be finite and > 0", r.Temperature)
	}
	if !(r.Boltzmann > 0) || math.IsInf(r.Boltzmann, 0) {
		return invalid("rebin: boltzmann %g must be finite and > 0", r.Boltzmann)
	}

	return nil
}

// SolverOptions converts the solver fields.
func (c RunConfig) SolverOptions() (unfold.Options, error) {
	g, err := unfold.ParseGuess(c.InitialGuess)
	if err != nil {
		return unfold.Options{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return unfold.Options{
		Tolerance:        c.Tolerance,
		MaxIterations:    c.MaxIterations,
		AcceptanceWindow: c.AcceptanceWindow,
		Epsilon:          c.Epsilon,
		CondThreshold:    c.CondThreshold,
		PinvRcond:        c.PinvRcond,
		Guess:            g,
	}, nil
}

// Solver builds the configured back-end.
func (c RunConfig) Solver() (unfold.Solver, error) {
	m, err := unfold.ParseMethod(c.Algorithm)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	opts, err := c.SolverOptions()
	if err != nil {
		return nil, err
	}
	s, err := unfold.NewSolver(m, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return s, nil
}

// MonteCarloOptions converts the Monte Carlo fields, attaching logger and
// metrics (both may be nil).
func (c RunConfig) MonteCarloOptions(logger *slog.Logger, metrics *montecarlo.Metrics) (montecarlo.Options, error) {
	p, err := montecarlo.ParseNegativePolicy(c.NegativePolicy)
	if err != nil {
		return montecarlo.Options{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch {
	case c.Iterations <= 0:
		return montecarlo.Options{}, invalid("iterations %d must be > 0", c.Iterations)
	case math.IsNaN(c.MaxFailureRate) || c.MaxFailureRate < 0 || c.MaxFailureRate > 1:
		return montecarlo.Options{}, invalid("max_failure_rate %g must be in [0, 1]", c.MaxFailureRate)
	case c.DrawTimeout < 0:
		return montecarlo.Options{}, invalid("draw_timeout %v must be ≥ 0", c.DrawTimeout)
	case p == montecarlo.Redraw && c.MaxRedraws <= 0:
		return montecarlo.Options{}, invalid("max_redraws %d must be > 0 under redraw", c.MaxRedraws)
	}

	return montecarlo.Options{
		Draws:          c.Iterations,
		Seed:           c.Seed,
		Workers:        c.Workers,
		NegativePolicy: p,
		MaxRedraws:     c.MaxRedraws,
		MaxFailureRate: c.MaxFailureRate,
		DrawTimeout:    c.DrawTimeout,
		Logger:         logger,
		Metrics:        metrics,
	}, nil
}

// RebinOptions converts the rebin fields. Call Validate first: the rebin
// option constructors panic on out-of-range values.
func (c RunConfig) RebinOptions() []rebin.Option {
	opts := []rebin.Option{
		rebin.WithTemperature(c.Rebin.Temperature),
		rebin.WithBoltzmann(c.Rebin.Boltzmann),
	}
	if c.Rebin.Thermal {
		opts = append(opts, rebin.WithThermal())
	}

	return opts
}

// Logger builds the stderr logger at LogLevel.
func (c RunConfig) Logger() (*slog.Logger, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return logging.New(level), nil
}
