// Package perfectdict implements a fixed-size, dictionary-like container
// over a key set that is known up front and never stored.
//
// The key set is compiled at build time into a minimal perfect hash
// function: each of the n keys maps to a distinct slot in [0, n) with no
// collisions and no wasted slots. Lookup computes two seeded hashes,
// combines two entries of a small label table, and indexes a value array.
// For large collections of string-ish keys this is dramatically smaller
// than a hash map, because no keys, buckets, or collision chains exist.
//
// # Basic Usage
//
// Building a dict:
//
//	pairs := []perfectdict.Pair[uint64]{
//	    {Key: []byte("alice"), Value: 1},
//	    {Key: []byte("bob"), Value: 2},
//	    {Key: []byte("carol"), Value: 3},
//	}
//	dict, err := perfectdict.Build(pairs, perfectdict.WithFingerprint(16))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	v, err := dict.Get([]byte("bob"))
//
// Persisting and reopening:
//
//	if err := dict.Save("table.pdct", perfectdict.Uint64Codec{}); err != nil {
//	    log.Fatal(err)
//	}
//	dict, err = perfectdict.Open("table.pdct", perfectdict.Uint64Codec{})
//
// # Sharp Edges
//
// The container cannot be resized and keys cannot be removed. The hash
// function is total: a key that was never part of the build still maps to
// some slot. Without fingerprinting, Get on an absent key silently returns
// whatever value occupies that slot, and Set on an absent key silently
// overwrites another key's value. Fingerprinting (WithFingerprint) turns
// absent-key lookups into ErrMissingKey with false-positive rate about
// 1/(n*2^b) for width b.
//
// Iteration yields values only, in slot order; the keys are gone.
//
// # Package Structure
//
//   - Public API: dict.go (Build, Get, Set, Contains, Values, Len),
//     options.go (BuildOption, With* functions)
//   - Serialization: header.go, codec.go, writer.go (Save), open.go (Open)
//   - Construction: internal/chm (graph build, cycle detection, labeling)
//   - Hashing: internal/hashkit (seeded families, fingerprint digests)
//   - Platform: fallocate_*.go, prefault_*.go, fadvise_*.go
package perfectdict
