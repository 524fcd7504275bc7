// Package bits provides low-level bit manipulation primitives.
package bits

import "math/bits"

// FastRange32 maps a 64-bit hash uniformly to [0, n) returning uint32.
// Uses the "fastrange" technique: multiply and take high bits.
// This is the standard way to map hashes to ranges without modulo bias.
func FastRange32(hash uint64, n uint32) uint32 {
	if n == 0 {
		return 0
	}
	hi, _ := bits.Mul64(hash, uint64(n))
	return uint32(hi)
}

// SplitMix64 advances a 64-bit state through one step of the splitmix64
// generator and returns the mixed output. Used to derive attempt seeds:
// consecutive inputs produce statistically unrelated outputs, which keeps
// successive construction retries from reusing a near-identical hash pair.
func SplitMix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}
