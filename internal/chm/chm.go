// Package chm implements the CHM construction of a minimal perfect hash
// function (Czech, Havas, Majewski 1992).
//
// Each key is an edge between its two vertex hashes in a graph over
// m = ceil(c*n) vertices. If the graph is acyclic, a breadth-first walk of
// each component assigns every vertex an integer label such that
// (label[h1] + label[h2]) mod n is a distinct rank in [0, n) for every
// key. Cyclic or degenerate graphs are retried under a fresh seed; the
// retry loop is bounded and fails loudly when exhausted.
//
// Each attempt is a pure function of (keys, seed, c): no state is shared
// across attempts, and the result for a given seed is reproducible.
package chm

import (
	"fmt"
	"math"

	perrors "github.com/tamirms/perfectdict/errors"
	"github.com/tamirms/perfectdict/internal/hashkit"
)

// MaxVertices bounds the vertex space so union-find parents fit in int32.
// Persisted tables declaring a larger vertex count are corrupt by
// definition: no build could have produced them.
const MaxVertices = math.MaxInt32

// PairFunc returns the two vertex hashes of key i under seed, each in
// [0, m). The solver never sees key bytes; hashing stays behind this
// capability so any family satisfying the independence contract works.
type PairFunc func(i int, seed uint64, m uint32) (uint32, uint32)

// Config holds the construction tuning parameters.
type Config struct {
	// LoadFactor is c, the ratio of vertices to keys. Larger values lower
	// the per-attempt failure probability at the cost of label table
	// size. Must be > 1; below 2 the graph is almost surely cyclic for
	// large key sets.
	LoadFactor float64

	// MaxAttempts bounds the seed-retry loop.
	MaxAttempts int

	// Workers labels independent components concurrently when > 1.
	Workers int
}

// Result is the construction output: everything lookup needs, plus the
// rank of each input key so the caller can place values and fingerprints.
type Result struct {
	Seed        uint64
	NumVertices uint32

	// Labels is the vertex label table g over [0, m). Vertices touched by
	// no edge keep label 0.
	Labels []uint32

	// Ranks holds, for each input key index, the slot it was assigned.
	// Ranks is a permutation of [0, n).
	Ranks []uint32
}

// NumVertices returns m = ceil(c*n), clamped to a minimum of 2 so a
// self-loop-free edge exists even for a single key.
func NumVertices(n int, c float64) (uint32, error) {
	m := math.Ceil(c * float64(n))
	if m < 2 {
		m = 2
	}
	if m > MaxVertices {
		return 0, perrors.ErrTooManyKeys
	}
	return uint32(m), nil
}

// Build runs the bounded seed-retry loop: hash all keys, accept the first
// acyclic graph, and solve the label assignment.
//
// Attempt i uses hashkit.AttemptSeed(baseSeed, i), so rebuilding with the
// same base seed and key sequence yields an identical Result.
func Build(n int, baseSeed uint64, pair PairFunc, cfg Config) (Result, error) {
	m, err := NumVertices(n, cfg.LoadFactor)
	if err != nil {
		return Result{}, err
	}

	for attempt := 0; attempt < cfg.MaxAttempts; attempt++ {
		seed := hashkit.AttemptSeed(baseSeed, attempt)
		g, ok := buildGraph(n, m, seed, pair)
		if !ok {
			continue
		}
		labels, ranks, err := g.label(uint32(n), g.components(), cfg.Workers)
		if err != nil {
			return Result{}, err
		}
		return Result{
			Seed:        seed,
			NumVertices: m,
			Labels:      labels,
			Ranks:       ranks,
		}, nil
	}

	return Result{}, fmt.Errorf("%w (attempts=%d, c=%g)",
		perrors.ErrConstructionExhausted, cfg.MaxAttempts, cfg.LoadFactor)
}

// Slot evaluates the MPHF for a key hashed to vertices (u, v). Total over
// all inputs: for keys outside the construction set the result is an
// arbitrary value in [0, n), not a membership signal.
func Slot(labels []uint32, n uint32, u, v uint32) uint32 {
	return uint32((uint64(labels[u]) + uint64(labels[v])) % uint64(n))
}
