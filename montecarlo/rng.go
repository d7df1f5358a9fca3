// SPDX-License-Identifier: MIT

// Deterministic random streams for Monte Carlo draws.
//
// Every draw owns an independent PCG stream derived from the run seed and the
// draw index, so results never depend on scheduling. A *rand.Rand is not safe
// for concurrent use and is never shared between draws.

package montecarlo

import "math/rand/v2"

// defaultSeed is used when callers pass Seed == 0. Arbitrary but stable.
const defaultSeed uint64 = 1

// golden is the SplitMix64 increment (2⁶⁴/φ).
const golden = 0x9e3779b97f4a7c15

// deriveSeed mixes a parent seed and a stream identifier with the SplitMix64
// finaliser; neighbouring streams get uncorrelated seeds.
// Complexity: O(1).
func deriveSeed(parent, stream uint64) uint64 {
	x := parent ^ (stream + golden)
	x += golden
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return x
}

// drawSource returns the PCG source of draw d under seed (0 ⇒ defaultSeed).
// Complexity: O(1).
func drawSource(seed uint64, d int) *rand.PCG {
	if seed == 0 {
		seed = defaultSeed
	}
	s1 := deriveSeed(seed, uint64(d))

	return rand.NewPCG(s1, deriveSeed(s1, ^uint64(d)))
}
