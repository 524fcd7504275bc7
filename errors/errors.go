// Package errors defines all exported error sentinels for the perfectdict
// library.
//
// This is the single source of truth for error values. Both the top-level
// perfectdict package and internal algorithm packages import from here,
// ensuring errors.Is checks work across package boundaries.
package errors

import "errors"

// Build errors
var (
	ErrEmptyDict             = errors.New("perfectdict: cannot build dict with zero keys")
	ErrTooManyKeys           = errors.New("perfectdict: key count exceeds maximum (2^30)")
	ErrDuplicateKey          = errors.New("perfectdict: duplicate key detected")
	ErrInvalidLoadFactor     = errors.New("perfectdict: load factor must be greater than 1")
	ErrFingerprintTooWide    = errors.New("perfectdict: fingerprint width exceeds maximum (32 bits)")
	ErrConstructionExhausted = errors.New("perfectdict: no seed produced an acyclic graph within the attempt budget - retry with a larger load factor")
)

// Lookup errors
var (
	ErrMissingKey = errors.New("perfectdict: key not found")
)

// Persistence errors
var (
	ErrInvalidMagic   = errors.New("perfectdict: invalid magic number")
	ErrInvalidVersion = errors.New("perfectdict: unsupported version")
	ErrChecksumFailed = errors.New("perfectdict: file checksum verification failed")
	ErrTruncatedFile  = errors.New("perfectdict: table file is truncated")
	ErrCorruptedTable = errors.New("perfectdict: table data is corrupted")
	ErrCodecMismatch  = errors.New("perfectdict: value codec does not match persisted table")
	ErrUnknownFamily  = errors.New("perfectdict: unknown hash family")
)
