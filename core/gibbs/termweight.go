package gibbs

import "fmt"

// TermWeight selects the per-token weighting scheme applied to count
// updates.
type TermWeight int

const (
	// TermWeightOne gives every in-vocab token unit weight. Counts are
	// int32 and never go negative, so no post-merge clamp is needed.
	TermWeightOne TermWeight = iota
	// TermWeightIDF weights a token by the inverse document frequency
	// of its vocabulary id, computed once in Model.Prepare.
	TermWeightIDF
	// TermWeightPMI weights a token by its positive pointwise mutual
	// information against a background unigram model.
	TermWeightPMI
)

func (t TermWeight) String() string {
	switch t {
	case TermWeightOne:
		return "one"
	case TermWeightIDF:
		return "idf"
	case TermWeightPMI:
		return "pmi"
	default:
		return fmt.Sprintf("TermWeight(%d)", int(t))
	}
}

func (t TermWeight) valid() bool {
	return t == TermWeightOne || t == TermWeightIDF || t == TermWeightPMI
}
