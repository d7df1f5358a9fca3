// SPDX-License-Identifier: MIT

package unfold

import "math/rand/v2"

// defaultGuessSeed seeds the generator used when InitialGuess gets a nil rng.
const defaultGuessSeed uint64 = 1

// InitialGuess builds a strictly positive starting spectrum of length m.
//
// GuessUniform returns all ones. GuessRandom draws each entry from (0, 1]
// using rng; a nil rng falls back to a fixed-seed stream so the result stays
// reproducible.
//
// Complexity: O(m).
func InitialGuess(m int, g Guess, rng *rand.Rand) ([]float64, error) {
	if m <= 0 {
		return nil, configErrorf("initial guess length %d must be > 0", m)
	}
	x := make([]float64, m)
	switch g {
	case GuessUniform:
		for j := range x {
			x[j] = 1
		}
	case GuessRandom:
		if rng == nil {
			rng = rand.New(rand.NewPCG(defaultGuessSeed, 0))
		}
		for j := range x {
			x[j] = 1 - rng.Float64() // [0,1) → (0,1]
		}
	default:
		return nil, configErrorf("unknown initial guess %v", g)
	}

	return x, nil
}
