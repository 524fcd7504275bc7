// Bench is a benchmarking tool for measuring perfectdict build time,
// query throughput, and memory usage.
//
// Usage:
//
//	go run ./cmd/bench -keys 1000000 -fp 16 -c 2.09
//
// Flags:
//
//	-keys     Number of keys to build with (default: 1,000,000)
//	-fp       Fingerprint width in bits, 0 to disable (default: 16)
//	-c        Load factor (default: 2.09)
//	-workers  Workers for component labeling (default: 1)
//	-queries  Number of lookup operations to time (default: 10,000,000)
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	mrand "math/rand/v2"
	"os"
	"runtime"
	"syscall"
	"time"

	"github.com/spaolacci/murmur3"

	"github.com/tamirms/perfectdict"
)

// getMaxRSS returns the maximum resident set size in bytes.
// Uses getrusage(RUSAGE_SELF) which tracks peak RSS since process start.
func getMaxRSS() uint64 {
	var rusage syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &rusage); err != nil {
		return 0
	}
	// On macOS, MaxRss is in bytes. On Linux, it's in kilobytes.
	maxRSS := uint64(rusage.Maxrss)
	if runtime.GOOS == "linux" {
		maxRSS *= 1024
	}
	return maxRSS
}

// makeKeys generates n distinct 16-byte keys by running a counter through
// murmur3-128. The counter guarantees distinctness of the input stream;
// the hash makes the key bytes look like real-world opaque identifiers.
func makeKeys(n int) [][]byte {
	keys := make([][]byte, n)
	var counter [8]byte
	for i := range keys {
		binary.LittleEndian.PutUint64(counter[:], uint64(i))
		h1, h2 := murmur3.Sum128WithSeed(counter[:], 0)
		key := make([]byte, 16)
		binary.LittleEndian.PutUint64(key[0:8], h1)
		binary.LittleEndian.PutUint64(key[8:16], h2)
		keys[i] = key
	}
	return keys
}

func main() {
	keysFlag := flag.Int("keys", 1_000_000, "number of keys")
	fpFlag := flag.Int("fp", 16, "fingerprint width in bits (0 to disable)")
	cFlag := flag.Float64("c", 2.09, "load factor")
	workersFlag := flag.Int("workers", 1, "workers for component labeling")
	queriesFlag := flag.Int("queries", 10_000_000, "number of lookups to time")
	flag.Parse()

	n := *keysFlag
	fmt.Printf("generating %d keys\n", n)
	keys := makeKeys(n)
	pairs := make([]perfectdict.Pair[uint64], n)
	for i, key := range keys {
		pairs[i] = perfectdict.Pair[uint64]{Key: key, Value: uint64(i)}
	}

	start := time.Now()
	dict, err := perfectdict.Build(pairs,
		perfectdict.WithFingerprint(*fpFlag),
		perfectdict.WithLoadFactor(*cFlag),
		perfectdict.WithWorkers(*workersFlag),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "build failed: %v\n", err)
		os.Exit(1)
	}
	buildTime := time.Since(start)

	stats := dict.Stats()
	fmt.Printf("build: %v (%.0f keys/sec)\n", buildTime, float64(n)/buildTime.Seconds())
	fmt.Printf("vertices: %d, label bits/key: %.2f, fingerprint bits: %d\n",
		stats.NumVertices, stats.LabelBitsPerKey, stats.FingerprintBits)

	rng := mrand.New(mrand.NewPCG(0, uint64(n)))
	start = time.Now()
	var sink uint64
	for i := 0; i < *queriesFlag; i++ {
		v, err := dict.Get(keys[rng.IntN(n)])
		if err != nil {
			fmt.Fprintf(os.Stderr, "lookup failed: %v\n", err)
			os.Exit(1)
		}
		sink += v
	}
	queryTime := time.Since(start)
	fmt.Printf("queries: %v (%.0f lookups/sec, sink=%d)\n",
		queryTime, float64(*queriesFlag)/queryTime.Seconds(), sink)
	fmt.Printf("peak RSS: %.1f MiB\n", float64(getMaxRSS())/(1<<20))
}
