package perfectdict

import (
	"encoding/binary"

	perrors "github.com/tamirms/perfectdict/errors"
	"github.com/tamirms/perfectdict/internal/chm"
	"github.com/tamirms/perfectdict/internal/hashkit"
)

const (
	// magic number for perfectdict table files, "PDCT" little-endian.
	magic = uint32(0x50444354)

	// footerMagic marks the end of a table file, "TCDP" little-endian.
	footerMagic = uint32(0x54434450)

	// version is the current format version.
	version = uint16(0x0001)

	// headerSize is the exact size of the serialized header.
	headerSize = 64

	// footerSize is the exact size of the serialized footer.
	footerSize = 32
)

// header is the 64-byte table file header.
//
// Layout:
//
//	Offset  Size  Field            Type
//	0       4     Magic            0x50444354 ("PDCT")
//	4       2     Version          0x0001
//	6       8     NumKeys          uint64_le (n)
//	14      8     NumVertices      uint64_le (m)
//	22      8     Seed             uint64_le (winning attempt seed)
//	30      1     FingerprintBits  uint8 (0 = disabled)
//	31      2     FamilyID         uint16_le
//	33      2     CodecID          uint16_le
//	35      29    Reserved         [29]byte (zero)
//
// The durable state after the header is exactly the construction triple:
// label table (m x 4 bytes), fingerprint array (n x fpBytes, omitted when
// width is 0), and the codec-encoded value array.
type header struct {
	Magic           uint32
	Version         uint16
	NumKeys         uint64
	NumVertices     uint64
	Seed            uint64
	FingerprintBits uint8
	FamilyID        hashkit.FamilyID
	CodecID         CodecID
}

// encodeTo serializes the header into buf, which must hold headerSize bytes.
func (h *header) encodeTo(buf []byte) {
	binary.LittleEndian.PutUint32(buf[0:4], h.Magic)
	binary.LittleEndian.PutUint16(buf[4:6], h.Version)
	binary.LittleEndian.PutUint64(buf[6:14], h.NumKeys)
	binary.LittleEndian.PutUint64(buf[14:22], h.NumVertices)
	binary.LittleEndian.PutUint64(buf[22:30], h.Seed)
	buf[30] = h.FingerprintBits
	binary.LittleEndian.PutUint16(buf[31:33], uint16(h.FamilyID))
	binary.LittleEndian.PutUint16(buf[33:35], uint16(h.CodecID))
	clear(buf[35:headerSize])
}

// decodeHeader parses and validates a 64-byte header.
func decodeHeader(buf []byte) (*header, error) {
	if len(buf) < headerSize {
		return nil, perrors.ErrTruncatedFile
	}

	h := &header{
		Magic:           binary.LittleEndian.Uint32(buf[0:4]),
		Version:         binary.LittleEndian.Uint16(buf[4:6]),
		NumKeys:         binary.LittleEndian.Uint64(buf[6:14]),
		NumVertices:     binary.LittleEndian.Uint64(buf[14:22]),
		Seed:            binary.LittleEndian.Uint64(buf[22:30]),
		FingerprintBits: buf[30],
		FamilyID:        hashkit.FamilyID(binary.LittleEndian.Uint16(buf[31:33])),
		CodecID:         CodecID(binary.LittleEndian.Uint16(buf[33:35])),
	}

	if h.Magic != magic {
		return nil, perrors.ErrInvalidMagic
	}
	if h.Version != version {
		return nil, perrors.ErrInvalidVersion
	}
	if h.NumKeys == 0 || h.NumKeys > maxKeys {
		return nil, perrors.ErrCorruptedTable
	}
	if h.NumVertices < 2 || h.NumVertices < h.NumKeys || h.NumVertices > chm.MaxVertices {
		return nil, perrors.ErrCorruptedTable
	}
	if int(h.FingerprintBits) > maxFingerprintBits {
		return nil, perrors.ErrCorruptedTable
	}
	return h, nil
}

// footer is the 32-byte table file trailer.
//
// Layout:
//
//	Offset  Size  Field        Type
//	0       8     Checksum     uint64_le (xxhash64 of everything before footer)
//	8       8     ValuesLen    uint64_le (encoded value region size)
//	16      12    Reserved     [12]byte (zero)
//	28      4     FooterMagic  0x54434450 ("TCDP")
type footer struct {
	Checksum  uint64
	ValuesLen uint64
}

// encodeTo serializes the footer into buf, which must hold footerSize bytes.
func (f *footer) encodeTo(buf []byte) {
	binary.LittleEndian.PutUint64(buf[0:8], f.Checksum)
	binary.LittleEndian.PutUint64(buf[8:16], f.ValuesLen)
	clear(buf[16:28])
	binary.LittleEndian.PutUint32(buf[28:32], footerMagic)
}

// decodeFooter parses and validates a 32-byte footer.
func decodeFooter(buf []byte) (*footer, error) {
	if len(buf) < footerSize {
		return nil, perrors.ErrTruncatedFile
	}
	if binary.LittleEndian.Uint32(buf[28:32]) != footerMagic {
		return nil, perrors.ErrCorruptedTable
	}
	return &footer{
		Checksum:  binary.LittleEndian.Uint64(buf[0:8]),
		ValuesLen: binary.LittleEndian.Uint64(buf[8:16]),
	}, nil
}

// tableSize returns the total file size for a table with the given
// geometry and encoded value region length. The arithmetic is done in
// uint64: with numVertices and numKeys bounded by decodeHeader the fixed
// sections cannot overflow, and callers validating untrusted input must
// bound valuesLen against the actual data length before adding it.
func tableSize(numVertices uint64, numKeys uint64, fpBits int, valuesLen uint64) uint64 {
	size := uint64(headerSize + footerSize)
	size += numVertices * 4
	size += numKeys * uint64(fingerprintBytes(fpBits))
	size += valuesLen
	return size
}
