package gibbs

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mathext"
)

// goldenRatio64 is the fractional part of the golden ratio scaled to
// 64 bits (0x9E3779B97F4A7C15), used as a per-index seed multiplier.
// Routed through a uint64 var first so the uint64->int64
// bit-reinterpretation happens at runtime rather than as an
// overflowing constant conversion.
var goldenRatio64Bits uint64 = 0x9E3779B97F4A7C15
var goldenRatio64 = int64(goldenRatio64Bits)

// digamma and lgamma back the hyperparameter optimizer and the
// log-likelihood diagnostics. The stdlib has no digamma, so that one
// comes from gonum; lgamma is math.Lgamma directly.
func digamma(x float64) float64 {
	return mathext.Digamma(x)
}

func lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}

// logf is the float32 natural log idf weighting needs; computed via
// float64 math.Log since the stdlib has no float32 overload.
func logf(x float32) float32 {
	return float32(math.Log(float64(x)))
}

// prefixSum replaces v in place with its inclusive running sum, so
// v[k] becomes a CDF value directly: sum(v[0..k]).
func prefixSum(v []float64) {
	for i := 1; i < len(v); i++ {
		v[i] += v[i-1]
	}
}

// sampleFromCumulative draws u uniformly in [0, cdf[len(cdf)-1]) and
// returns the smallest k with cdf[k] >= u.
func sampleFromCumulative(cdf []float64, rng *rand.Rand) int {
	total := cdf[len(cdf)-1]
	u := rng.Float64() * total
	for k, c := range cdf {
		if c >= u {
			return k
		}
	}
	return len(cdf) - 1
}

// newWorkerRand derives a worker-local PRNG deterministically from a
// master seed and a worker index, so a run is reproducible for a fixed
// seed regardless of how goroutines get scheduled.
func newWorkerRand(masterSeed int64, workerIndex int) *rand.Rand {
	return rand.New(rand.NewSource(masterSeed + 1 + int64(workerIndex)*goldenRatio64))
}

// forRandom visits the integers [0, n) exactly once each, in a
// pseudo-random order derived from seed, calling f on each. It stops
// and returns the first error f reports.
func forRandom(n int, seed int64, f func(i int) error) error {
	order := rand.New(rand.NewSource(seed)).Perm(n)
	for _, i := range order {
		if err := f(i); err != nil {
			return err
		}
	}
	return nil
}
