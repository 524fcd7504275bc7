package perfectdict

import (
	"bytes"
	"fmt"
	"iter"
	"slices"

	perrors "github.com/tamirms/perfectdict/errors"
	"github.com/tamirms/perfectdict/internal/chm"
	"github.com/tamirms/perfectdict/internal/hashkit"
)

// maxKeys caps the key count so the vertex space stays well inside the
// int32 union-find range at any sane load factor.
const maxKeys = 1 << 30

// Pair is one build input: an opaque key and its value. Keys are used
// only during construction and are not retained.
type Pair[V any] struct {
	Key   []byte
	Value V
}

// Dict is a fixed-size key-value container backed by a minimal perfect
// hash function. It is created by Build or Open and holds exactly the
// keys supplied at build time, forever.
//
// Thread Safety:
//   - Get, Contains, Values, and Len are safe for unlimited concurrent use
//   - Set writes a single value slot; concurrent Set calls on the same key
//     need external coordination, while Set and Get on different keys
//     never interfere
//   - The label and fingerprint tables are immutable after construction
type Dict[V any] struct {
	family      hashkit.Family
	seed        uint64
	numKeys     uint32
	numVertices uint32
	labels      []uint32

	fingerprintBits int
	fingerprints    []uint32 // nil when fingerprintBits == 0

	values []V
}

// Build compiles the pair sequence into a Dict. All keys must be
// distinct; a repeated key fails with ErrDuplicateKey before any hashing
// work. Construction retries seeds until the intermediate graph is
// acyclic, and fails with ErrConstructionExhausted when the attempt
// budget runs out (a larger load factor makes that less likely).
func Build[V any](pairs []Pair[V], opts ...BuildOption) (*Dict[V], error) {
	cfg := defaultBuildConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	n := len(pairs)
	if n == 0 {
		return nil, perrors.ErrEmptyDict
	}
	if n > maxKeys {
		return nil, perrors.ErrTooManyKeys
	}
	if cfg.loadFactor <= 1 {
		return nil, perrors.ErrInvalidLoadFactor
	}
	if cfg.fingerprintBits < 0 || cfg.fingerprintBits > maxFingerprintBits {
		return nil, perrors.ErrFingerprintTooWide
	}

	seen := make(map[string]struct{}, n)
	for _, p := range pairs {
		if _, dup := seen[string(p.Key)]; dup {
			return nil, fmt.Errorf("%w: %q", perrors.ErrDuplicateKey, p.Key)
		}
		seen[string(p.Key)] = struct{}{}
	}

	res, err := chm.Build(n, cfg.seed,
		func(i int, seed uint64, m uint32) (uint32, uint32) {
			return cfg.family.Pair(pairs[i].Key, seed, m)
		},
		chm.Config{
			LoadFactor:  cfg.loadFactor,
			MaxAttempts: cfg.maxAttempts,
			Workers:     cfg.workers,
		})
	if err != nil {
		return nil, err
	}

	d := &Dict[V]{
		family:          cfg.family,
		seed:            res.Seed,
		numKeys:         uint32(n),
		numVertices:     res.NumVertices,
		labels:          res.Labels,
		fingerprintBits: cfg.fingerprintBits,
		values:          make([]V, n),
	}
	if cfg.fingerprintBits > 0 {
		d.fingerprints = make([]uint32, n)
	}
	for i, rank := range res.Ranks {
		d.values[rank] = pairs[i].Value
		if d.fingerprints != nil {
			d.fingerprints[rank] = d.fingerprint(pairs[i].Key)
		}
	}
	return d, nil
}

// FromMap builds a Dict from a map. Pairs are sorted by key before
// construction, so the result is independent of map iteration order;
// it is byte-identical to Build over the key-sorted pair sequence.
//
// (Rank assignment follows traversal order of the construction graph,
// which follows pair order, so Build itself is order-sensitive; the sort
// is what makes FromMap reproducible.)
func FromMap[V any](m map[string]V, opts ...BuildOption) (*Dict[V], error) {
	pairs := make([]Pair[V], 0, len(m))
	for k, v := range m {
		pairs = append(pairs, Pair[V]{Key: []byte(k), Value: v})
	}
	slices.SortFunc(pairs, func(a, b Pair[V]) int {
		return bytes.Compare(a.Key, b.Key)
	})
	return Build(pairs, opts...)
}

// slot evaluates the MPHF for key. Total over all byte sequences: absent
// keys still map to some slot in [0, n).
func (d *Dict[V]) slot(key []byte) uint32 {
	u, v := d.family.Pair(key, d.seed, d.numVertices)
	return chm.Slot(d.labels, d.numKeys, u, v)
}

// fingerprint computes the stored digest for key, masked to the
// configured width.
func (d *Dict[V]) fingerprint(key []byte) uint32 {
	return uint32(d.family.Digest(key, d.seed) & fingerprintMask(d.fingerprintBits))
}

// Get returns the value stored for key.
//
// With fingerprinting enabled, a key outside the build set is detected
// and reported as ErrMissingKey, except with probability about 1/(n*2^b)
// where the absent key's digest happens to collide. Without
// fingerprinting, absent keys silently return the value resident in their
// computed slot.
func (d *Dict[V]) Get(key []byte) (V, error) {
	slot := d.slot(key)
	if d.fingerprints != nil && d.fingerprints[slot] != d.fingerprint(key) {
		var zero V
		return zero, perrors.ErrMissingKey
	}
	return d.values[slot], nil
}

// Set overwrites the value in key's slot. It always succeeds
// structurally: setting a key that was never part of the build set
// silently overwrites whichever original key owns that slot, and the slot's
// fingerprint is not rewritten. This is a documented sharp edge of the
// container, not a validation gap.
func (d *Dict[V]) Set(key []byte, value V) {
	d.values[d.slot(key)] = value
}

// SetExisting overwrites the value in key's slot only after the slot's
// fingerprint verifies, returning ErrMissingKey (and leaving the value
// untouched) when it does not. With fingerprinting disabled there is
// nothing to verify and SetExisting behaves exactly like Set, sharp edge
// included.
func (d *Dict[V]) SetExisting(key []byte, value V) error {
	slot := d.slot(key)
	if d.fingerprints != nil && d.fingerprints[slot] != d.fingerprint(key) {
		return perrors.ErrMissingKey
	}
	d.values[slot] = value
	return nil
}

// Contains reports whether key's fingerprint matches its slot. Only
// meaningful with fingerprinting enabled; with width 0 every key is
// reported present.
func (d *Dict[V]) Contains(key []byte) bool {
	if d.fingerprints == nil {
		return true
	}
	return d.fingerprints[d.slot(key)] == d.fingerprint(key)
}

// Values returns a lazy, restartable iterator over the values in slot
// order. It yields exactly Len() values and no key information; keys are
// not stored.
func (d *Dict[V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range d.values {
			if !yield(v) {
				return
			}
		}
	}
}

// Len returns the number of keys the Dict was built with. It is fixed
// for the Dict's lifetime.
func (d *Dict[V]) Len() int {
	return int(d.numKeys)
}

// Seed returns the seed of the successful construction attempt.
func (d *Dict[V]) Seed() uint64 {
	return d.seed
}

// FingerprintBits returns the configured fingerprint width, 0 if disabled.
func (d *Dict[V]) FingerprintBits() int {
	return d.fingerprintBits
}

// Stats holds dict size statistics.
type Stats struct {
	NumKeys         uint64
	NumVertices     uint64
	FingerprintBits int
	// LabelBitsPerKey is the label table overhead: 32*m/n bits.
	LabelBitsPerKey float64
}

// Stats returns size statistics for the built structure.
func (d *Dict[V]) Stats() Stats {
	return Stats{
		NumKeys:         uint64(d.numKeys),
		NumVertices:     uint64(d.numVertices),
		FingerprintBits: d.fingerprintBits,
		LabelBitsPerKey: float64(32*d.numVertices) / float64(d.numKeys),
	}
}
