package gibbs

import (
	"fmt"
	"math"
	"math/rand"
)

// weightEngine lets Model hold either instantiation of engine without
// branching on term weight itself: engine[int32] implements it for
// TermWeightOne, engine[float32] for TermWeightIDF and TermWeightPMI.
type weightEngine interface {
	addDocument(words []int32) int
	prepare(vocabWeights []float32) error
	train(rounds, workers int, masterSeed int64, optimInterval, burnIn int) error
	infer(docs [][]int32, maxIter int, joint bool, workers int) ([]float64, error)
	countByTopic() []int
	topicsByDoc(docID int) ([]float32, error)
	wordsByTopic(topic int) ([]float32, error)
	logLikelihood() float64
	numDocs() int
	roundsCompleted() int
	alphas() []float32
}

// engine holds one trained (or training) model: K, V and eta are
// fixed at construction; alphasVec is the operative asymmetric
// document-topic prior, one value per topic, which starts at alpha
// and is refit by optimizeAlphas.
type engine[W Weight] struct {
	k, v     int
	eta      float32
	weighted bool // true for idf/pmi: float32 counts, clamp-after-merge
	tw       TermWeight

	docs   []*document[W]
	global *state[W]

	alphasVec    []float32
	vocabWeights []float32

	masterSeed int64
	rounds     int
}

func newEngine[W Weight](tw TermWeight, k, v int, alpha, eta float32, weighted bool, seed int64) *engine[W] {
	e := &engine[W]{
		k: k, v: v, eta: eta,
		weighted:   weighted,
		tw:         tw,
		global:     newState[W](k, v),
		masterSeed: seed,
	}
	e.alphasVec = make([]float32, k)
	for i := range e.alphasVec {
		e.alphasVec[i] = alpha
	}
	return e
}

func (e *engine[W]) alphas() []float32 { return e.alphasVec }

func (e *engine[W]) addDocument(words []int32) int {
	d := newDocument[W](words, e.k, e.weighted)
	e.docs = append(e.docs, d)
	return len(e.docs) - 1
}

func (e *engine[W]) numDocs() int         { return len(e.docs) }
func (e *engine[W]) roundsCompleted() int { return e.rounds }

// prepare draws an initial uniform topic for every in-vocab token of
// every queued document, folding its weight into both the document's
// and the global sufficient statistics.
func (e *engine[W]) prepare(vocabWeights []float32) error {
	e.vocabWeights = vocabWeights
	rng := rand.New(rand.NewSource(e.masterSeed))
	for _, d := range e.docs {
		d.initWeights(e.tw, vocabWeights, e.v)
		for i, w := range d.words {
			if int(w) >= e.v {
				continue
			}
			topic := int32(rng.Intn(e.k))
			d.zs[i] = topic
			applyWord(d, e.global, i, topic, 1)
		}
	}
	return nil
}

// applyWord is the single increment/decrement primitive shared by both
// directions of sampleOneToken and by the initial assignment in
// prepare. sign must be +1 or -1; st is whichever sufficient-statistics
// replica (a shard's local state, the model's global state during
// prepare, or an inference temporary) the caller is updating.
func applyWord[W Weight](d *document[W], st *state[W], pos int, topic int32, sign int) {
	w := d.words[pos]
	weight := d.weightAt(pos)
	if sign < 0 {
		weight = -weight
	}
	d.numByTopic[topic] += weight
	st.numByTopic[topic] += weight
	st.numByTopicWord[topic][w] += weight
}

// sampleOneToken resamples the token at pos: decrement its current
// topic out of d/st, build the proposal CDF over the remaining counts,
// draw a new topic, and increment it back in. st is the
// sufficient-statistics replica the proposal is read from and the
// result written to — a worker's local replica during training, or a
// temporary state during inference.
//
// It reports an error, carrying no document/token context of its own,
// if the decrement pushed an unweighted count negative or the proposal
// mass it computed isn't finite and positive; the caller attaches the
// document id and token position.
func sampleOneToken[W Weight](e *engine[W], st *state[W], d *document[W], pos int, rng *rand.Rand, cdf []float64) error {
	v := d.words[pos]
	if int(v) >= e.v {
		return nil
	}
	applyWord(d, st, pos, d.zs[pos], -1)
	if !e.weighted {
		if err := checkCountsNonNegative(d, st, d.zs[pos], v); err != nil {
			return err
		}
	}

	ve := float64(e.v) * float64(e.eta)
	for k := 0; k < e.k; k++ {
		docPart := float64(d.numByTopic[k]) + float64(e.alphasVec[k])
		wordPart := (float64(st.numByTopicWord[k][v]) + float64(e.eta)) /
			(float64(st.numByTopic[k]) + ve)
		cdf[k] = docPart * wordPart
	}
	prefixSum(cdf)
	total := cdf[e.k-1]
	if math.IsNaN(total) || math.IsInf(total, 0) || total <= 0 {
		return fmt.Errorf("proposal mass for word %d is not finite and positive: %v", v, total)
	}
	newZ := int32(sampleFromCumulative(cdf, rng))

	d.zs[pos] = newZ
	applyWord(d, st, pos, newZ, 1)
	return nil
}

// checkCountsNonNegative reports an error if decrementing topic out of
// d or st pushed an unweighted count below zero. Weighted models skip
// this: their float counts may dip below zero on a decrement during a
// round, and the clamp that follows each merge zeroes any negative
// global entry.
func checkCountsNonNegative[W Weight](d *document[W], st *state[W], topic int32, v int32) error {
	var zero W
	if d.numByTopic[topic] < zero {
		return fmt.Errorf("document topic count for topic %d went negative", topic)
	}
	if st.numByTopic[topic] < zero || st.numByTopicWord[topic][v] < zero {
		return fmt.Errorf("topic %d count went negative", topic)
	}
	return nil
}

func (e *engine[W]) countByTopic() []int {
	counts := make([]int, e.k)
	for _, d := range e.docs {
		for i, w := range d.words {
			if int(w) >= e.v {
				continue
			}
			counts[d.zs[i]]++
		}
	}
	return counts
}

func (e *engine[W]) topicsByDoc(docID int) ([]float32, error) {
	if docID < 0 || docID >= len(e.docs) {
		return nil, fmt.Errorf("gibbs: doc id %d out of range [0, %d)", docID, len(e.docs))
	}
	d := e.docs[docID]
	var sum float32
	for _, a := range e.alphasVec {
		sum += a
	}
	sum += d.sumWordWeight()
	theta := make([]float32, e.k)
	for k := 0; k < e.k; k++ {
		theta[k] = (float32(d.numByTopic[k]) + e.alphasVec[k]) / sum
	}
	return theta, nil
}

func (e *engine[W]) wordsByTopic(topic int) ([]float32, error) {
	if topic < 0 || topic >= e.k {
		return nil, fmt.Errorf("gibbs: topic %d out of range [0, %d)", topic, e.k)
	}
	denom := float32(e.global.numByTopic[topic]) + float32(e.v)*e.eta
	phi := make([]float32, e.v)
	row := e.global.numByTopicWord[topic]
	for v := 0; v < e.v; v++ {
		phi[v] = (float32(row[v]) + e.eta) / denom
	}
	return phi, nil
}
