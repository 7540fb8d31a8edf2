package gibbs

import (
	"math"
	"testing"
)

func TestLogLikelihoodIsFiniteForEmptyModel(t *testing.T) {
	e := newEngine[int32](TermWeightOne, 2, 3, 0.1, 0.1, false, 1)
	ll := e.logLikelihood()
	if math.IsNaN(ll) || math.IsInf(ll, 0) {
		t.Errorf("expected a finite log-likelihood for an empty corpus, got %v", ll)
	}
}

func TestLogLikelihoodDecomposesIntoDocsAndTopicWord(t *testing.T) {
	e := newEngine[int32](TermWeightOne, 2, 3, 0.1, 0.1, false, 1)
	d := newDocument[int32]([]int32{0, 1, 0}, 2, false)
	d.numByTopic[0] = 2
	d.numByTopic[1] = 1
	e.docs = append(e.docs, d)
	e.global.numByTopic[0] = 2
	e.global.numByTopic[1] = 1
	e.global.numByTopicWord[0][0] = 2
	e.global.numByTopicWord[1][1] = 1

	total := e.logLikelihood()
	want := e.llDocs() + e.llTopicWord()
	if total != want {
		t.Errorf("expected logLikelihood() == llDocs() + llTopicWord(), got %v vs %v", total, want)
	}
}
