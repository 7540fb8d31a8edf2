package gibbs

// optimizeAlphas refits the asymmetric document-topic prior by Minka's
// fixed-point method: ten iterations of a plain digamma-ratio update,
// with no separate shape/scale decomposition. Each topic's alpha
// converges toward the share of document mass it actually holds.
func (e *engine[W]) optimizeAlphas() {
	const iterations = 10

	for iter := 0; iter < iterations; iter++ {
		var alphaSum float32
		for _, a := range e.alphasVec {
			alphaSum += a
		}

		denom := calcDigammaSum(func(d *document[W]) float64 {
			return float64(d.sumWordWeight())
		}, e.docs, float64(alphaSum))

		for k := 0; k < e.k; k++ {
			ak := float64(e.alphasVec[k])
			nom := calcDigammaSum(func(d *document[W]) float64 {
				return float64(d.numByTopic[k])
			}, e.docs, ak)

			next := nom / denom * ak
			if next < 1e-5 {
				next = 1e-5
			}
			e.alphasVec[k] = float32(next)
		}
	}
}

// calcDigammaSum computes sum_d [digamma(count(d) + offset) - digamma(offset)],
// the building block both the numerator and denominator of Minka's
// update reduce to.
func calcDigammaSum[W Weight](count func(*document[W]) float64, docs []*document[W], offset float64) float64 {
	var sum float64
	base := digamma(offset)
	for _, d := range docs {
		sum += digamma(count(d)+offset) - base
	}
	return sum
}
