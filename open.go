package perfectdict

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/edsrzf/mmap-go"

	perrors "github.com/tamirms/perfectdict/errors"
	"github.com/tamirms/perfectdict/internal/hashkit"
)

// minFileSize is the smallest possible valid table: header + label table
// for two vertices + footer. Files below this are rejected before parsing.
const minFileSize = headerSize + 2*4 + footerSize

// Open reads a table file written by Save and reconstructs the Dict.
// The codec must match the one used at save time (ErrCodecMismatch
// otherwise). The file is memory-mapped for the duration of the load and
// released before returning; the Dict is fully heap-resident and needs
// no Close.
func Open[V any](path string, codec Codec[V]) (*Dict[V], error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table file: %w", err)
	}
	defer file.Close()
	return OpenFile(file, codec)
}

// OpenFile reconstructs a Dict by memory-mapping f. The caller is
// responsible for closing f; per POSIX mmap(2), f may be closed as soon
// as OpenFile returns.
func OpenFile[V any](f *os.File, codec Codec[V]) (*Dict[V], error) {
	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat table file: %w", err)
	}
	if stat.Size() < minFileSize {
		return nil, perrors.ErrTruncatedFile
	}

	// The checksum pass reads the whole mapping front to back.
	fadviseSequential(int(f.Fd()), 0, stat.Size())

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap table file: %w", err)
	}
	d, err := decodeDict([]byte(mm), codec)
	return d, errors.Join(err, mm.Unmap())
}

// OpenBytes reconstructs a Dict from an in-memory blob produced by
// Encode (or a table file read into memory). The blob is not retained.
func OpenBytes[V any](data []byte, codec Codec[V]) (*Dict[V], error) {
	if len(data) < minFileSize {
		return nil, perrors.ErrTruncatedFile
	}
	return decodeDict(data, codec)
}

// decodeDict parses and verifies all sections of a serialized table.
func decodeDict[V any](data []byte, codec Codec[V]) (*Dict[V], error) {
	h, err := decodeHeader(data[:headerSize])
	if err != nil {
		return nil, err
	}

	f, err := decodeFooter(data[len(data)-footerSize:])
	if err != nil {
		return nil, err
	}

	// Compare against the fixed sections first so an absurd ValuesLen
	// cannot wrap the sum: the header bounds were validated above, so the
	// fixed size cannot overflow, and ValuesLen is then checked by
	// subtraction.
	fixed := tableSize(h.NumVertices, h.NumKeys, int(h.FingerprintBits), 0)
	if uint64(len(data)) < fixed || uint64(len(data))-fixed != f.ValuesLen {
		return nil, perrors.ErrTruncatedFile
	}
	if xxhash.Sum64(data[:len(data)-footerSize]) != f.Checksum {
		return nil, perrors.ErrChecksumFailed
	}

	family, err := hashkit.ByID(h.FamilyID)
	if err != nil {
		return nil, err
	}
	if codec.ID() != h.CodecID {
		return nil, fmt.Errorf("%w: file has codec %d, got %d",
			perrors.ErrCodecMismatch, h.CodecID, codec.ID())
	}

	d := &Dict[V]{
		family:          family,
		seed:            h.Seed,
		numKeys:         uint32(h.NumKeys),
		numVertices:     uint32(h.NumVertices),
		fingerprintBits: int(h.FingerprintBits),
	}
	off := headerSize

	d.labels = make([]uint32, h.NumVertices)
	for i := range d.labels {
		d.labels[i] = binary.LittleEndian.Uint32(data[off : off+4])
		off += 4
	}

	fpBytes := fingerprintBytes(d.fingerprintBits)
	if fpBytes > 0 {
		d.fingerprints = make([]uint32, h.NumKeys)
		mask := uint32(fingerprintMask(d.fingerprintBits))
		for i := range d.fingerprints {
			fp := unpackFingerprintFromBytes(data[off:off+fpBytes], fpBytes)
			if fp&^mask != 0 {
				return nil, fmt.Errorf("%w: fingerprint wider than declared %d bits",
					perrors.ErrCorruptedTable, d.fingerprintBits)
			}
			d.fingerprints[i] = fp
			off += fpBytes
		}
	}

	blob := data[off : off+int(f.ValuesLen)]
	d.values = make([]V, h.NumKeys)
	for i := range d.values {
		v, consumed, err := codec.Decode(blob)
		if err != nil {
			return nil, err
		}
		d.values[i] = v
		blob = blob[consumed:]
	}
	if len(blob) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes in value region",
			perrors.ErrCorruptedTable, len(blob))
	}
	return d, nil
}
