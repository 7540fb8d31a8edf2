package gibbs

// logLikelihood computes the joint log-likelihood of the current topic
// assignments under the collapsed model: a document part (how well
// each document's topic histogram matches its Dirichlet prior) plus a
// topic-word part (how well each topic's word histogram matches its
// Dirichlet prior). Both are standard Dirichlet-multinomial marginal
// likelihoods, expanded via lgamma.
func (e *engine[W]) logLikelihood() float64 {
	return e.llDocs() + e.llTopicWord()
}

func (e *engine[W]) llDocs() float64 {
	var alphaSum float64
	for _, a := range e.alphasVec {
		alphaSum += float64(a)
	}

	var ll float64
	for _, d := range e.docs {
		ll += lgamma(alphaSum) - lgamma(float64(d.sumWordWeight())+alphaSum)
		for k := 0; k < e.k; k++ {
			ak := float64(e.alphasVec[k])
			ll += lgamma(float64(d.numByTopic[k])+ak) - lgamma(ak)
		}
	}
	return ll
}

func (e *engine[W]) llTopicWord() float64 {
	eta := float64(e.eta)
	ve := float64(e.v) * eta

	var ll float64
	for k := 0; k < e.k; k++ {
		ll += lgamma(ve) - lgamma(float64(e.global.numByTopic[k])+ve)
		row := e.global.numByTopicWord[k]
		for v := 0; v < e.v; v++ {
			ll += lgamma(float64(row[v])+eta) - lgamma(eta)
		}
	}
	return ll
}
