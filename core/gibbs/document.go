package gibbs

import "math"

// document holds one training or held-out document's token sequence,
// its current topic assignments, and its local topic-count vector. W
// is int32 for unweighted counting, float32 when term weighting is in
// play.
//
// Words may contain vocabulary ids >= V (out-of-vocab). Such positions
// are skipped by every operation that touches zs or numByTopic; their
// zs entry is left at its zero value and must not be read. initWeights
// sets their wordWeights entry to 0.
type document[W Weight] struct {
	words       []int32
	zs          []int32
	wordWeights []float32 // nil for W = int32 (TermWeightOne)
	numByTopic  []W
}

func newDocument[W Weight](words []int32, k int, weighted bool) *document[W] {
	d := &document[W]{
		words:      append([]int32(nil), words...),
		zs:         make([]int32, len(words)),
		numByTopic: make([]W, k),
	}
	if weighted {
		d.wordWeights = make([]float32, len(words))
		for i := range d.wordWeights {
			d.wordWeights[i] = 1
		}
	}
	return d
}

func (d *document[W]) weightAt(i int) W {
	if d.wordWeights == nil {
		return W(1)
	}
	return W(d.wordWeights[i])
}

// sumWordWeight is the full length of words for TermWeightOne,
// out-of-vocab tokens included — unlike numByTopic, which only ever
// counts in-vocab tokens. For the weighted schemes it's the sum of
// wordWeights; initWeights zeroes every out-of-vocab position's
// weight there, so that sum is in-vocab-only and does line up with
// numByTopic. It feeds both the hyperparameter optimizer and the
// topic-readout denominator.
func (d *document[W]) sumWordWeight() float32 {
	if d.wordWeights == nil {
		return float32(len(d.words))
	}
	var sum float32
	for _, w := range d.wordWeights {
		sum += w
	}
	return sum
}

// initWeights computes per-token weights for the idf/pmi schemes.
// vocabWeights holds the model's background per-word statistic; v is
// the effective vocabulary size. Out-of-vocab positions are zeroed
// rather than left at their newDocument default of 1, so
// sumWordWeight stays in-vocab-only for these schemes, like
// numByTopic.
func (d *document[W]) initWeights(tw TermWeight, vocabWeights []float32, v int) {
	if tw == TermWeightOne {
		return
	}
	switch tw {
	case TermWeightIDF:
		for i, w := range d.words {
			if int(w) >= v {
				d.wordWeights[i] = 0
				continue
			}
			d.wordWeights[i] = vocabWeights[w]
		}
	case TermWeightPMI:
		tf := make([]uint32, v)
		for _, w := range d.words {
			if int(w) < v {
				tf[w]++
			}
		}
		n := float32(len(d.words))
		for i, w := range d.words {
			if int(w) >= v {
				d.wordWeights[i] = 0
				continue
			}
			p := float32(tf[w]) / (vocabWeights[w] * n)
			weight := float32(math.Log(float64(p)))
			if weight < 0 {
				weight = 0
			}
			d.wordWeights[i] = weight
		}
	}
}
