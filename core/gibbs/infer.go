package gibbs

import "math/rand"

// infer estimates topic distributions for held-out documents against a
// frozen model. The model's own state is never mutated: every working
// copy is a clone seeded from e.global.
//
// In joint mode every held-out document shares one temporary state,
// sharded and merged across maxIter rounds exactly like training. In
// independent mode each document gets its own private temporary state
// and is resampled maxIter times with no sharding or merge, one pool
// task per document.
//
// In joint mode the held-out corpus shares a single score: one
// topic-word delta plus LL_docs summed over every held-out document,
// so the returned slice has length 1. In independent mode each
// document gets its own private score, so the returned slice has
// length len(wordLists).
func (e *engine[W]) infer(wordLists [][]int32, maxIter int, joint bool, workers int) ([]float64, error) {
	docs := make([]*document[W], len(wordLists))
	for i, words := range wordLists {
		d := newDocument[W](words, e.k, e.weighted)
		d.initWeights(e.tw, e.vocabWeights, e.v)
		docs[i] = d
	}

	if joint {
		tmp, err := e.inferJoint(docs, maxIter, workers)
		if err != nil {
			return nil, err
		}
		var llDocs float64
		for _, d := range docs {
			llDocs += e.llDocsOne(d)
		}
		score := e.llTopicWordOf(tmp) - e.llTopicWordOf(e.global) + llDocs
		return []float64{score}, nil
	}

	tmps, err := e.inferIndependent(docs, maxIter, workers)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(docs))
	for i, d := range docs {
		out[i] = e.llDelta(d, tmps[i])
	}
	return out, nil
}

// inferJoint runs one shared temporary state through maxIter rounds of
// the same shard/sample/merge cycle train uses, restricted to the
// held-out corpus.
func (e *engine[W]) inferJoint(docs []*document[W], maxIter, workers int) (*state[W], error) {
	tmp := e.seedTmpState(docs)
	numDocs := len(docs)
	if numDocs == 0 {
		return tmp, nil
	}
	stride := shardStride(workers, numDocs)
	shards := buildShards(numDocs, stride)
	p := newPool(workers)

	for round := 0; round < maxIter; round++ {
		pre := tmp.clone()
		locals := make([]*state[W], stride)
		for i := range locals {
			locals[i] = tmp.clone()
		}
		roundSeed := e.masterSeed + 7 + int64(round)*0x2545F4914F6CDD1D

		tasks := make([]func() error, stride)
		for s := 0; s < stride; s++ {
			s := s
			shard := shards[s]
			tasks[s] = func() error {
				if len(shard) == 0 {
					return nil
				}
				rng := rand.New(rand.NewSource(roundSeed + int64(s)*goldenRatio64))
				cdf := make([]float64, e.k)
				return forRandom(len(shard), roundSeed+int64(s), func(i int) error {
					docID := shard[i]
					d := docs[docID]
					for pos := range d.words {
						if err := sampleOneToken(e, locals[s], d, pos, rng, cdf); err != nil {
							return &TrainingError{Round: round, DocID: docID, TokenPos: pos, Reason: err.Error(), Err: err}
						}
					}
					return nil
				})
			}
		}
		if err := p.run(tasks); err != nil {
			return nil, err
		}
		mergeRoundDeltas(tmp, pre, locals)
		if e.weighted {
			tmp.clamp()
		}
	}
	return tmp, nil
}

// inferIndependent runs one private temporary state per document, with
// no cross-document sharing, dispatched across a bounded pool.
func (e *engine[W]) inferIndependent(docs []*document[W], maxIter, workers int) ([]*state[W], error) {
	tmps := make([]*state[W], len(docs))
	p := newPool(workers)
	tasks := make([]func() error, len(docs))
	for i := range docs {
		i := i
		tasks[i] = func() error {
			d := docs[i]
			tmp := e.seedTmpState([]*document[W]{d})
			rng := rand.New(rand.NewSource(e.masterSeed + 13 + int64(i)*goldenRatio64))
			cdf := make([]float64, e.k)
			for iter := 0; iter < maxIter; iter++ {
				for pos := range d.words {
					if err := sampleOneToken(e, tmp, d, pos, rng, cdf); err != nil {
						return &TrainingError{Round: iter, DocID: i, TokenPos: pos, Reason: err.Error(), Err: err}
					}
				}
			}
			tmps[i] = tmp
			return nil
		}
	}
	if err := p.run(tasks); err != nil {
		return nil, err
	}
	return tmps, nil
}

// seedTmpState clones the frozen global state and assigns an initial
// random topic to every in-vocab token of docs, folding each token's
// weight into both the document and the temporary state — the
// infer-time analogue of engine.prepare.
func (e *engine[W]) seedTmpState(docs []*document[W]) *state[W] {
	tmp := e.global.clone()
	rng := rand.New(rand.NewSource(e.masterSeed + 5))
	for _, d := range docs {
		for i, w := range d.words {
			if int(w) >= e.v {
				continue
			}
			topic := int32(rng.Intn(e.k))
			d.zs[i] = topic
			applyWord(d, tmp, i, topic, 1)
		}
	}
	return tmp
}

// llDelta is (LL_topic_word(tmp) - LL_topic_word(frozen)) + LL_docs(d).
func (e *engine[W]) llDelta(d *document[W], tmp *state[W]) float64 {
	return e.llTopicWordOf(tmp) - e.llTopicWordOf(e.global) + e.llDocsOne(d)
}

func (e *engine[W]) llTopicWordOf(st *state[W]) float64 {
	eta := float64(e.eta)
	ve := float64(e.v) * eta

	var ll float64
	for k := 0; k < e.k; k++ {
		ll += lgamma(ve) - lgamma(float64(st.numByTopic[k])+ve)
		row := st.numByTopicWord[k]
		for v := 0; v < e.v; v++ {
			ll += lgamma(float64(row[v])+eta) - lgamma(eta)
		}
	}
	return ll
}

func (e *engine[W]) llDocsOne(d *document[W]) float64 {
	var alphaSum float64
	for _, a := range e.alphasVec {
		alphaSum += float64(a)
	}
	ll := lgamma(alphaSum) - lgamma(float64(d.sumWordWeight())+alphaSum)
	for k := 0; k < e.k; k++ {
		ak := float64(e.alphasVec[k])
		ll += lgamma(float64(d.numByTopic[k])+ak) - lgamma(ak)
	}
	return ll
}
