package gibbs

import (
	"math"
	"testing"
)

func TestDocumentSumWordWeightUnweighted(t *testing.T) {
	d := newDocument[int32]([]int32{0, 1, 2}, 2, false)
	if got := d.sumWordWeight(); got != 3 {
		t.Errorf("expected sumWordWeight = 3, got %v", got)
	}
}

func TestDocumentSumWordWeightWeighted(t *testing.T) {
	d := newDocument[float32]([]int32{0, 1}, 2, true)
	d.wordWeights[0] = 0.5
	d.wordWeights[1] = 1.5
	if got := d.sumWordWeight(); got != 2 {
		t.Errorf("expected sumWordWeight = 2, got %v", got)
	}
}

func TestDocumentWeightAtUnweightedIsOne(t *testing.T) {
	d := newDocument[int32]([]int32{5}, 2, false)
	if got := d.weightAt(0); got != 1 {
		t.Errorf("expected weightAt = 1 for an unweighted document, got %v", got)
	}
}

func TestComputeVocabWeightsIDF(t *testing.T) {
	docs := [][]int32{{0, 1}, {0}, {2}}
	weights := computeVocabWeights(TermWeightIDF, docs, 3)

	want := []float32{
		float32(math.Log(3.0 / 2.0)),
		float32(math.Log(3.0 / 1.0)),
		float32(math.Log(3.0 / 1.0)),
	}
	for i := range want {
		if diff := weights[i] - want[i]; diff > 1e-4 || diff < -1e-4 {
			t.Errorf("vocabWeights[%d]: expected %v, got %v", i, want[i], weights[i])
		}
	}
}

func TestInitWeightsIDFCopiesVocabWeight(t *testing.T) {
	vocabWeights := []float32{0.4, 1.1}
	d := newDocument[float32]([]int32{0, 1, 0}, 1, true)
	d.initWeights(TermWeightIDF, vocabWeights, 2)

	want := []float32{0.4, 1.1, 0.4}
	for i, w := range want {
		if d.wordWeights[i] != w {
			t.Errorf("wordWeights[%d]: expected %v, got %v", i, w, d.wordWeights[i])
		}
	}
}

func TestInitWeightsPMIClampsNegative(t *testing.T) {
	// Corpus: doc A = [0,0,1] (n=3), doc B = [0,1,1,1] (n=4).
	// cf[0] = 3, cf[1] = 4, total = 7.
	docs := [][]int32{{0, 0, 1}, {0, 1, 1, 1}}
	vocabWeights := computeVocabWeights(TermWeightPMI, docs, 2)

	d := newDocument[float32](docs[0], 1, true)
	d.initWeights(TermWeightPMI, vocabWeights, 2)

	// word 0: tf=2, p = 2/(vocabWeights[0]*3) = 14/9 > 1, weight = ln(14/9) > 0.
	wantW0 := float32(math.Log(14.0 / 9.0))
	for _, i := range []int{0, 1} {
		if diff := d.wordWeights[i] - wantW0; diff > 1e-3 || diff < -1e-3 {
			t.Errorf("wordWeights[%d]: expected ~%v, got %v", i, wantW0, d.wordWeights[i])
		}
	}
	// word 1: tf=1, p = 1/(vocabWeights[1]*3) < 1, ln(p) < 0, clamped to 0.
	if d.wordWeights[2] != 0 {
		t.Errorf("expected a negative PMI score to clamp to 0, got %v", d.wordWeights[2])
	}
}

func TestInitWeightsZeroesOutOfVocab(t *testing.T) {
	vocabWeights := []float32{0.4}
	d := newDocument[float32]([]int32{0, 99}, 1, true)
	d.initWeights(TermWeightIDF, vocabWeights, 1)
	if d.wordWeights[1] != 0 {
		t.Errorf("expected an out-of-vocab position's weight to be zeroed, got %v", d.wordWeights[1])
	}
	if d.sumWordWeight() != vocabWeights[0] {
		t.Errorf("expected sumWordWeight to stay in-vocab-only: expected %v, got %v", vocabWeights[0], d.sumWordWeight())
	}
}
