// SPDX-License-Identifier: MIT

package montecarlo

import (
	"fmt"
	"math/rand/v2"

	"github.com/katalvlaran/unfold/matrix"
	"gonum.org/v1/gonum/stat/distuv"
)

// sampler draws the perturbed inputs of one draw. Not safe for concurrent use.
type sampler struct {
	src        rand.Source
	policy     NegativePolicy
	maxRedraws int

	clippedCounts   int
	clippedResponse int
	redrawn         int
}

func newSampler(src rand.Source, opts Options) *sampler {
	return &sampler{src: src, policy: opts.NegativePolicy, maxRedraws: opts.MaxRedraws}
}

// cell samples Normal(mu, sigma). Under Redraw a negative sample is redrawn
// up to maxRedraws times; under ClipToZero it is returned as is and clipped
// by the caller.
func (s *sampler) cell(mu, sigma float64) (float64, error) {
	dist := distuv.Normal{Mu: mu, Sigma: sigma, Src: s.src}
	v := dist.Rand()
	if v >= 0 || s.policy == ClipToZero {
		return v, nil
	}
	for k := 0; k < s.maxRedraws; k++ {
		s.redrawn++
		if v = dist.Rand(); v >= 0 {
			return v, nil
		}
	}

	return 0, ErrNegativeInput
}

// counts fills dst with N' ~ Normal(n, nErr).
// Complexity: O(n).
func (s *sampler) counts(dst, n, nErr []float64) error {
	for i := range n {
		v, err := s.cell(n[i], nErr[i])
		if err != nil {
			return fmt.Errorf("%w: counts[%d]", err, i)
		}
		dst[i] = v
	}
	s.clippedCounts += matrix.ClipVecBelow(dst, 0)

	return nil
}

// response fills dst (same shape as r) with R' ~ Normal(r, rErr), row-major.
// Complexity: O(n·m).
func (s *sampler) response(dst, r, rErr *matrix.Dense) error {
	for i := 0; i < r.Rows(); i++ {
		out, mu, sigma := dst.Row(i), r.Row(i), rErr.Row(i)
		for j := range out {
			v, err := s.cell(mu[j], sigma[j])
			if err != nil {
				return fmt.Errorf("%w: response[%d,%d]", err, i, j)
			}
			out[j] = v
		}
	}
	s.clippedResponse += matrix.ClipBelow(dst, 0)

	return nil
}
