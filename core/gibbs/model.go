// Package gibbs implements a collapsed Gibbs sampler for Latent
// Dirichlet Allocation, trained by sharding a corpus across a bounded
// worker pool and merging each round's local sufficient-statistics
// replicas back into a shared global state.
package gibbs

import "runtime"

// Model is the public entry point: build one with NewModel, load
// documents with AddDocument, call Prepare once the vocabulary is
// frozen, then Train for as many rounds as needed. Model owns no
// tokenization or vocabulary-construction logic — callers are expected
// to have already mapped tokens to dense vocabulary ids in [0, V),
// with any out-of-vocabulary id left at or above V.
type Model struct {
	termWeight TermWeight
	k          int
	alpha      float32
	eta        float32
	seed       int64

	optimInterval int
	burnIn        int

	vocabSize int
	prepared  bool

	pendingWords [][]int32
	engine       weightEngine
}

// NewModel validates its parameters and returns a Model ready to
// accept documents. alpha is the initial (symmetric) value every
// per-topic entry of the document-topic prior starts from; Train may
// adjust it per topic once OptimInterval and BurnIn are configured.
func NewModel(tw TermWeight, k int, alpha, eta float32, seed int64) (*Model, error) {
	if !tw.valid() {
		return nil, &ConfigError{Field: "term_weight", Value: int(tw)}
	}
	if k <= 0 {
		return nil, &ConfigError{Field: "k", Value: k}
	}
	if alpha <= 0 {
		return nil, &ConfigError{Field: "alpha", Value: alpha}
	}
	if eta <= 0 {
		return nil, &ConfigError{Field: "eta", Value: eta}
	}
	return &Model{
		termWeight: tw,
		k:          k,
		alpha:      alpha,
		eta:        eta,
		seed:       seed,
	}, nil
}

// AddDocument queues a document for training, returning its assigned
// id. Words must already be vocabulary ids; ids at or above the V
// passed to Prepare are treated as out-of-vocabulary and skipped by
// every later operation. AddDocument may only be called before
// Prepare.
func (m *Model) AddDocument(words []int32) (int, error) {
	if m.prepared {
		return -1, &UsageError{Op: "AddDocument", Reason: "model is already prepared"}
	}
	id := len(m.pendingWords)
	m.pendingWords = append(m.pendingWords, append([]int32(nil), words...))
	return id, nil
}

// Prepare freezes the vocabulary size, computes per-token weights for
// idf/pmi term weighting, draws each queued document's initial topic
// assignment, and zeros the global sufficient statistics accordingly.
// minWordCount and removeTopN are accepted for interface symmetry with
// the external vocabulary-construction collaborator that decides which
// ids survive into [0, V); Prepare itself performs no trimming — by
// the time it runs, the ids in every queued document are assumed
// final.
func (m *Model) Prepare(vocabSize, minWordCount, removeTopN int) error {
	if m.prepared {
		return &UsageError{Op: "Prepare", Reason: "model is already prepared"}
	}
	if vocabSize <= 0 {
		return &ConfigError{Field: "vocab_size", Value: vocabSize}
	}
	_, _ = minWordCount, removeTopN

	m.vocabSize = vocabSize
	weighted := m.termWeight != TermWeightOne
	vocabWeights := computeVocabWeights(m.termWeight, m.pendingWords, vocabSize)

	var eng weightEngine
	if weighted {
		eng = newEngine[float32](m.termWeight, m.k, vocabSize, m.alpha, m.eta, true, m.seed)
	} else {
		eng = newEngine[int32](m.termWeight, m.k, vocabSize, m.alpha, m.eta, false, m.seed)
	}
	for _, words := range m.pendingWords {
		eng.addDocument(words)
	}
	m.pendingWords = nil

	if err := eng.prepare(vocabWeights); err != nil {
		return err
	}
	m.engine = eng
	m.prepared = true
	return nil
}

// Train runs rounds additional rounds of sharded Gibbs sampling across
// workers goroutines. It may be called repeatedly; each call resumes
// from the current global state.
func (m *Model) Train(rounds, workers int) error {
	if !m.prepared {
		return &UsageError{Op: "Train", Reason: "model is not prepared"}
	}
	if rounds < 0 {
		return &ConfigError{Field: "rounds", Value: rounds}
	}
	return m.engine.train(rounds, resolveWorkers(workers), m.seed, m.optimInterval, m.burnIn)
}

// Infer estimates the topic-model log-likelihood delta of held-out
// documents against the frozen trained model: one score for the whole
// set when joint is true, one score per document otherwise. At least
// one training round must have completed first.
func (m *Model) Infer(documents [][]int32, maxIter int, joint bool, workers int) ([]float64, error) {
	if !m.prepared || m.engine.roundsCompleted() == 0 {
		return nil, &UsageError{Op: "Infer", Reason: "model has not completed any training round"}
	}
	if maxIter <= 0 {
		return nil, &ConfigError{Field: "max_iter", Value: maxIter}
	}
	return m.engine.infer(documents, maxIter, joint, resolveWorkers(workers))
}

// resolveWorkers maps workers == 0 to the host's hardware parallelism.
// A negative count is clamped to 1 worker.
func resolveWorkers(workers int) int {
	switch {
	case workers == 0:
		return runtime.NumCPU()
	case workers < 0:
		return 1
	default:
		return workers
	}
}

// SetOptimInterval configures how many rounds elapse between
// hyperparameter refits. Zero disables refitting.
func (m *Model) SetOptimInterval(interval int) { m.optimInterval = interval }

// SetBurnIn configures how many rounds must elapse before the first
// hyperparameter refit is attempted.
func (m *Model) SetBurnIn(rounds int) { m.burnIn = rounds }

func (m *Model) K() int                 { return m.k }
func (m *Model) Alpha() float32         { return m.alpha }
func (m *Model) Eta() float32           { return m.eta }
func (m *Model) TermWeight() TermWeight { return m.termWeight }
func (m *Model) OptimInterval() int     { return m.optimInterval }
func (m *Model) BurnIn() int            { return m.burnIn }
func (m *Model) VocabSize() int { return m.vocabSize }
func (m *Model) NumDocs() int {
	if m.engine == nil {
		return len(m.pendingWords)
	}
	return m.engine.numDocs()
}

// Alphas returns the current per-topic document-topic prior. Before
// any hyperparameter refit it is uniformly the value NewModel was
// given.
func (m *Model) Alphas() []float32 {
	if m.engine == nil {
		a := make([]float32, m.k)
		for i := range a {
			a[i] = m.alpha
		}
		return a
	}
	return append([]float32(nil), m.engine.alphas()...)
}

// CountByTopic returns, for each topic, the number of in-vocab tokens
// currently assigned to it across the whole training corpus.
func (m *Model) CountByTopic() ([]int, error) {
	if !m.prepared {
		return nil, &UsageError{Op: "CountByTopic", Reason: "model is not prepared"}
	}
	return m.engine.countByTopic(), nil
}

// TopicsByDoc returns theta_d, the estimated topic distribution of
// training document docID.
func (m *Model) TopicsByDoc(docID int) ([]float32, error) {
	if !m.prepared {
		return nil, &UsageError{Op: "TopicsByDoc", Reason: "model is not prepared"}
	}
	return m.engine.topicsByDoc(docID)
}

// WordsByTopic returns phi_k, the estimated word distribution of
// topic k.
func (m *Model) WordsByTopic(topic int) ([]float32, error) {
	if !m.prepared {
		return nil, &UsageError{Op: "WordsByTopic", Reason: "model is not prepared"}
	}
	return m.engine.wordsByTopic(topic)
}

// LogLikelihood returns the current joint log-likelihood of the
// training corpus under the model.
func (m *Model) LogLikelihood() (float64, error) {
	if !m.prepared {
		return 0, &UsageError{Op: "LogLikelihood", Reason: "model is not prepared"}
	}
	return m.engine.logLikelihood(), nil
}

// computeVocabWeights derives the background statistics idf/pmi term
// weighting needs from the queued documents. For TermWeightOne it
// returns nil: initWeights never reads it in that mode.
func computeVocabWeights(tw TermWeight, docs [][]int32, vocabSize int) []float32 {
	if tw == TermWeightOne {
		return nil
	}
	weights := make([]float32, vocabSize)

	switch tw {
	case TermWeightIDF:
		df := make([]int, vocabSize)
		for _, words := range docs {
			seen := make(map[int32]bool, len(words))
			for _, w := range words {
				if int(w) < vocabSize && !seen[w] {
					seen[w] = true
					df[w]++
				}
			}
		}
		numDocs := float32(len(docs))
		for v := 0; v < vocabSize; v++ {
			if df[v] > 0 {
				weights[v] = logf(numDocs / float32(df[v]))
			}
		}
	case TermWeightPMI:
		cf := make([]int64, vocabSize)
		var total int64
		for _, words := range docs {
			for _, w := range words {
				if int(w) < vocabSize {
					cf[w]++
					total++
				}
			}
		}
		for v := 0; v < vocabSize; v++ {
			if total > 0 {
				weights[v] = float32(cf[v]) / float32(total)
			}
		}
	}
	return weights
}
