package gibbs

import (
	"math/rand"
)

// shardStride is the number of local-state replicas a round splits
// into, one per shard: 8 times the worker count, capped at the
// document count so a corpus smaller than 8*W never allocates idle
// shards. Documents are partitioned by id mod stride rather than
// evenly, so shard sizes can differ by at most one document.
func shardStride(workers, numDocs int) int {
	c := 8 * workers
	if c > numDocs {
		c = numDocs
	}
	if c < 1 {
		c = 1
	}
	return c
}

// buildShards partitions [0, numDocs) by id mod stride.
func buildShards(numDocs, stride int) [][]int {
	shards := make([][]int, stride)
	for id := 0; id < numDocs; id++ {
		s := id % stride
		shards[s] = append(shards[s], id)
	}
	return shards
}

// train runs rounds of sharded Gibbs sampling: each round shards the
// corpus across a bounded worker pool, resamples every in-vocab token
// of every document exactly once per shard, merges the shards' local
// replicas back into the global state, and — once burnIn rounds have
// elapsed, and every optimInterval rounds after that — refits the
// asymmetric document-topic prior.
//
// One local replica is allocated per shard rather than per worker, so
// a shard's sufficient statistics stay isolated from every other
// shard's regardless of which goroutine the pool happens to run it on.
func (e *engine[W]) train(rounds, workers int, masterSeed int64, optimInterval, burnIn int) error {
	numDocs := len(e.docs)
	if numDocs == 0 {
		return nil
	}
	stride := shardStride(workers, numDocs)
	shards := buildShards(numDocs, stride)
	p := newPool(workers)

	for round := 0; round < rounds; round++ {
		pre := e.global.clone()
		locals := make([]*state[W], stride)
		for i := range locals {
			locals[i] = e.global.clone()
		}

		roundSeed := masterSeed + 1 + int64(e.rounds)*0x2545F4914F6CDD1D
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
					d := e.docs[docID]
					for pos := range d.words {
						if err := sampleOneToken(e, locals[s], d, pos, rng, cdf); err != nil {
							return &TrainingError{Round: e.rounds, DocID: docID, TokenPos: pos, Reason: err.Error(), Err: err}
						}
					}
					return nil
				})
			}
		}
		if err := p.run(tasks); err != nil {
			return err
		}

		mergeRoundDeltas(e.global, pre, locals)
		if e.weighted {
			e.global.clamp()
		}

		e.rounds++
		if optimInterval > 0 && e.rounds > burnIn && e.rounds%optimInterval == 0 {
			e.optimizeAlphas()
		}
	}
	return nil
}
