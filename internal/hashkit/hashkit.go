// Package hashkit provides the seeded hash families used by the MPHF
// construction and by fingerprint verification.
//
// A Family produces, for a given key and seed, two hash values that behave
// as independent uniform draws over the vertex range, plus a third digest
// stream used for fingerprints. The construction never hard-codes a single
// mixing function: any Family implementation satisfying the independence
// contract works with the solver.
package hashkit

import (
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"

	perrors "github.com/tamirms/perfectdict/errors"
	intbits "github.com/tamirms/perfectdict/internal/bits"
)

// FamilyID identifies a hash family in persisted tables.
type FamilyID uint16

const (
	// FamilyXXH3 derives the pair from the two halves of a seeded
	// xxHash3-128 digest. This is the default family.
	FamilyXXH3 FamilyID = 0

	// FamilyMurmur3 derives the pair from a seeded MurmurHash3-128 digest.
	FamilyMurmur3 FamilyID = 1
)

// digestSalt decorrelates the fingerprint stream from the pair stream.
// A key's fingerprint must not be predictable from its (h1, h2) pair, or
// an absent key landing on a member's slot would also match its digest.
const digestSalt = 0x2545f4914f6cdd1d

// Family is the capability required of a seeded hash family.
//
// Pair must return two values in [0, m) that, for a fixed seed, behave as
// independent uniform draws. Distinct seeds must select statistically
// unrelated members of the family, not trivial permutations of one
// another, or the construction's seed-retry loop cannot make progress.
//
// Digest must be derived from a stream independent of (or differently
// seeded than) the pair stream.
//
// Implementations must be stateless; all methods are safe for unlimited
// concurrent callers.
type Family interface {
	// ID identifies the family in persisted tables.
	ID() FamilyID

	// Pair returns the two vertex hashes of key under seed, each in [0, m).
	Pair(key []byte, seed uint64, m uint32) (uint32, uint32)

	// Digest returns the fingerprint digest of key under seed.
	Digest(key []byte, seed uint64) uint64
}

// ByID returns the built-in family with the given ID.
func ByID(id FamilyID) (Family, error) {
	switch id {
	case FamilyXXH3:
		return XXH3{}, nil
	case FamilyMurmur3:
		return Murmur3{}, nil
	}
	return nil, perrors.ErrUnknownFamily
}

// AttemptSeed derives the seed for the i-th construction attempt from the
// base seed. Consecutive attempts go through splitmix64 so each retry
// selects an unrelated family member.
func AttemptSeed(base uint64, attempt int) uint64 {
	return intbits.SplitMix64(base + uint64(attempt))
}

// XXH3 is the default hash family, built on seeded xxHash3-128.
//
// The 128-bit digest is split into its two halves, each mapped to [0, m)
// with fastrange. The halves of xxHash3-128 are computed from distinct
// accumulator lanes and act as independent draws for this purpose.
type XXH3 struct{}

// ID implements Family.
func (XXH3) ID() FamilyID { return FamilyXXH3 }

// Pair implements Family.
func (XXH3) Pair(key []byte, seed uint64, m uint32) (uint32, uint32) {
	h := xxh3.Hash128Seed(key, seed)
	return intbits.FastRange32(h.Lo, m), intbits.FastRange32(h.Hi, m)
}

// Digest implements Family.
func (XXH3) Digest(key []byte, seed uint64) uint64 {
	return xxh3.HashSeed(key, intbits.SplitMix64(seed^digestSalt))
}

// Murmur3 is an alternate hash family built on seeded MurmurHash3-128.
//
// Murmur3 takes a 32-bit seed, so the 64-bit seed is folded. The family
// still satisfies the reseeding contract: splitmix output bits are
// uniform, so folded seeds remain unrelated across attempts.
type Murmur3 struct{}

// ID implements Family.
func (Murmur3) ID() FamilyID { return FamilyMurmur3 }

// Pair implements Family.
func (Murmur3) Pair(key []byte, seed uint64, m uint32) (uint32, uint32) {
	h1, h2 := murmur3.Sum128WithSeed(key, fold32(seed))
	return intbits.FastRange32(h1, m), intbits.FastRange32(h2, m)
}

// Digest implements Family.
func (Murmur3) Digest(key []byte, seed uint64) uint64 {
	d, _ := murmur3.Sum128WithSeed(key, fold32(intbits.SplitMix64(seed^digestSalt)))
	return d
}

func fold32(seed uint64) uint32 {
	return uint32(seed) ^ uint32(seed>>32)
}
