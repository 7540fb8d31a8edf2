package gibbs

// state is the sufficient-statistics pair every global or local
// replica carries: numByTopic[K] and numByTopicWord[K][V]. Storage is
// dense row-major (one []W per topic) rather than a sparse
// histogram-of-active-topics representation, since the proposal
// distribution touches every topic for every token and a dense layout
// keeps that loop a straight array scan.
type state[W Weight] struct {
	numByTopic     []W
	numByTopicWord [][]W // numByTopicWord[k][v]
	k, v           int
}

func newState[W Weight](k, v int) *state[W] {
	s := &state[W]{numByTopic: make([]W, k), k: k, v: v}
	s.numByTopicWord = make([][]W, k)
	for t := range s.numByTopicWord {
		s.numByTopicWord[t] = make([]W, v)
	}
	return s
}

func (s *state[W]) clone() *state[W] {
	n := newState[W](s.k, s.v)
	copy(n.numByTopic, s.numByTopic)
	for t := range s.numByTopicWord {
		copy(n.numByTopicWord[t], s.numByTopicWord[t])
	}
	return n
}

func (s *state[W]) copyFrom(o *state[W]) {
	copy(s.numByTopic, o.numByTopic)
	for t := range s.numByTopicWord {
		copy(s.numByTopicWord[t], o.numByTopicWord[t])
	}
}

// mergeRoundDeltas folds a round's local replicas back into the global
// state:
//
//	G' = L_0 + sum_{i>=1} (L_i - G)
//
// g is overwritten in place with L_0's contents before the deltas of
// the remaining locals are folded in. pre is the global state as it
// stood before the round started, i.e. what every local was cloned
// from.
func mergeRoundDeltas[W Weight](g *state[W], pre *state[W], locals []*state[W]) {
	g.copyFrom(locals[0])
	for i := 1; i < len(locals); i++ {
		li := locals[i]
		for t := 0; t < g.k; t++ {
			g.numByTopic[t] += li.numByTopic[t] - pre.numByTopic[t]
			row, lrow, prow := g.numByTopicWord[t], li.numByTopicWord[t], pre.numByTopicWord[t]
			for vv := 0; vv < g.v; vv++ {
				row[vv] += lrow[vv] - prow[vv]
			}
		}
	}
}

func (s *state[W]) clamp() {
	clampNonNegative(s.numByTopic)
	clampMatrixNonNegative(s.numByTopicWord)
}
