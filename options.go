package perfectdict

import "github.com/tamirms/perfectdict/internal/hashkit"

const (
	// maxFingerprintBits caps fingerprint width at one uint32 per slot.
	maxFingerprintBits = 32

	// defaultLoadFactor is the vertex-to-key ratio c. Below 2 the
	// construction graph is almost surely cyclic for large key sets; at
	// 2.09 roughly a fifth of attempts succeed, so the default budget of
	// 64 attempts virtually never exhausts. Observed behavior, not a
	// closed-form guarantee.
	defaultLoadFactor = 2.09

	// defaultMaxAttempts bounds the seed-retry loop.
	defaultMaxAttempts = 64

	// defaultSeed is an arbitrary default; override via WithSeed.
	defaultSeed = 0xa0761d6478bd642f
)

// BuildOption is a functional option for configuring builds.
type BuildOption func(*buildConfig)

type buildConfig struct {
	loadFactor      float64
	fingerprintBits int
	seed            uint64
	maxAttempts     int
	workers         int
	family          hashkit.Family
}

func defaultBuildConfig() *buildConfig {
	return &buildConfig{
		loadFactor:  defaultLoadFactor,
		seed:        defaultSeed,
		maxAttempts: defaultMaxAttempts,
		family:      hashkit.XXH3{},
	}
}

// WithLoadFactor sets c, the ratio of intermediate vertices to keys.
// Larger values make construction more likely to succeed per attempt and
// grow the label table proportionally. Must be greater than 1.
func WithLoadFactor(c float64) BuildOption {
	return func(cfg *buildConfig) {
		cfg.loadFactor = c
	}
}

// WithFingerprint enables per-slot key fingerprints of the given width in
// bits (1..32). Width 0 disables fingerprinting, in which case lookups on
// absent keys silently return a resident value.
func WithFingerprint(bits int) BuildOption {
	return func(cfg *buildConfig) {
		cfg.fingerprintBits = bits
	}
}

// WithSeed sets the base seed for the construction's retry schedule.
// Rebuilding from the identical pair sequence and seed yields identical
// label, value, and fingerprint tables.
func WithSeed(seed uint64) BuildOption {
	return func(cfg *buildConfig) {
		cfg.seed = seed
	}
}

// WithMaxAttempts bounds the seed-retry loop. When no seed within the
// budget produces an acyclic graph, Build fails with
// ErrConstructionExhausted rather than degrading output.
func WithMaxAttempts(n int) BuildOption {
	return func(cfg *buildConfig) {
		cfg.maxAttempts = n
	}
}

// WithWorkers labels independent graph components with n goroutines
// during construction. The result is identical to the single-threaded
// build; only wall-clock time changes.
func WithWorkers(n int) BuildOption {
	return func(cfg *buildConfig) {
		cfg.workers = n
	}
}

// WithFamily selects the seeded hash family. The default is xxHash3-128.
// Dicts built with a family outside this package's built-ins cannot be
// persisted with Save.
func WithFamily(f hashkit.Family) BuildOption {
	return func(cfg *buildConfig) {
		cfg.family = f
	}
}
