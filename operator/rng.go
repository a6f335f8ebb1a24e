// SPDX-License-Identifier: MIT

// Package operator - RNG utilities shared by the randomized kernels.
//
// Concurrency:
//   - The returned distributions wrap a *rand.PCG that is NOT goroutine-safe.
//     Each call site builds its own stream.
package operator

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// streamSalt separates the second PCG word from the seed; the constant is the
// SplitMix64 golden-ratio increment.
const streamSalt uint64 = 0x9e3779b97f4a7c15

// normalFromSeed returns a standard normal distribution drawing from a
// deterministic PCG stream. seed==0 ⇒ DefaultSeed.
func normalFromSeed(seed int64, sigma float64) distuv.Normal {
	if seed == 0 {
		seed = DefaultSeed
	}

	return distuv.Normal{
		Mu:    0,
		Sigma: sigma,
		Src:   rand.NewPCG(uint64(seed), uint64(seed)^streamSalt),
	}
}

// fillRealNormal writes real standard normal draws into dst.
func fillRealNormal(dst []complex128, dist distuv.Normal) {
	for i := range dst {
		dst[i] = complex(dist.Rand(), 0)
	}
}

// fillComplexNormal writes circular complex normal draws (unit variance) into dst.
func fillComplexNormal(dst []complex128, dist distuv.Normal) {
	var s = math.Sqrt2 / 2
	for i := range dst {
		dst[i] = complex(s*dist.Rand(), s*dist.Rand())
	}
}
