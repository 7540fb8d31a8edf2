package gibbs

import "testing"

func TestStateCloneIsIndependent(t *testing.T) {
	s := newState[int32](2, 2)
	s.numByTopic[0] = 5
	s.numByTopicWord[0][1] = 3

	c := s.clone()
	c.numByTopic[0] = 100
	c.numByTopicWord[0][1] = 100

	if s.numByTopic[0] != 5 || s.numByTopicWord[0][1] != 3 {
		t.Errorf("mutating a clone must not affect the original")
	}
}

func TestMergeRoundDeltas(t *testing.T) {
	// pre is the global state as of the start of the round.
	pre := newState[int32](1, 1)
	pre.numByTopic[0] = 10
	pre.numByTopicWord[0][0] = 10

	// local 0 (the "anchor" replica L0) applied net +2.
	l0 := pre.clone()
	l0.numByTopic[0] = 12
	l0.numByTopicWord[0][0] = 12

	// local 1 applied net -1.
	l1 := pre.clone()
	l1.numByTopic[0] = 9
	l1.numByTopicWord[0][0] = 9

	g := newState[int32](1, 1)
	mergeRoundDeltas(g, pre, []*state[int32]{l0, l1})

	// g' = L0 + (L1 - pre) = 12 + (9 - 10) = 11.
	if g.numByTopic[0] != 11 {
		t.Errorf("expected merged numByTopic[0] = 11, got %d", g.numByTopic[0])
	}
	if g.numByTopicWord[0][0] != 11 {
		t.Errorf("expected merged numByTopicWord[0][0] = 11, got %d", g.numByTopicWord[0][0])
	}
}

func TestStateClampNonNegative(t *testing.T) {
	s := newState[float32](1, 2)
	s.numByTopic[0] = -1.5
	s.numByTopicWord[0][0] = -0.5
	s.numByTopicWord[0][1] = 2.5

	s.clamp()

	if s.numByTopic[0] != 0 {
		t.Errorf("expected clamp to zero a negative numByTopic, got %v", s.numByTopic[0])
	}
	if s.numByTopicWord[0][0] != 0 {
		t.Errorf("expected clamp to zero a negative numByTopicWord entry, got %v", s.numByTopicWord[0][0])
	}
	if s.numByTopicWord[0][1] != 2.5 {
		t.Errorf("expected clamp to leave a non-negative entry untouched, got %v", s.numByTopicWord[0][1])
	}
}
