package perfectdict

import (
	"encoding/binary"
	"fmt"
	"math"

	perrors "github.com/tamirms/perfectdict/errors"
)

// CodecID identifies a value codec in persisted tables. IDs below 0x8000
// are reserved for this package's built-in codecs; user codecs must use
// IDs at or above 0x8000.
type CodecID uint16

const (
	codecIDUint64 CodecID = 1
	codecIDString CodecID = 2
	codecIDBytes  CodecID = 3
)

// Codec encodes and decodes values of type V for persistence. The value
// array is stored as a flat concatenation of encoded values in slot
// order; a codec must be able to find its own boundaries on decode.
type Codec[V any] interface {
	// ID identifies this codec in the table header. Open fails with
	// ErrCodecMismatch when the header ID differs from the codec's.
	ID() CodecID

	// Append encodes v onto dst and returns the extended slice.
	Append(dst []byte, v V) []byte

	// Decode reads one value from the front of src, returning the value
	// and the number of bytes consumed.
	Decode(src []byte) (V, int, error)
}

// Uint64Codec stores each value as 8 little-endian bytes.
type Uint64Codec struct{}

// ID implements Codec.
func (Uint64Codec) ID() CodecID { return codecIDUint64 }

// Append implements Codec.
func (Uint64Codec) Append(dst []byte, v uint64) []byte {
	return binary.LittleEndian.AppendUint64(dst, v)
}

// Decode implements Codec.
func (Uint64Codec) Decode(src []byte) (uint64, int, error) {
	if len(src) < 8 {
		return 0, 0, fmt.Errorf("%w: short uint64 value", perrors.ErrCorruptedTable)
	}
	return binary.LittleEndian.Uint64(src), 8, nil
}

// StringCodec stores each value as a uvarint length followed by the
// string bytes.
type StringCodec struct{}

// ID implements Codec.
func (StringCodec) ID() CodecID { return codecIDString }

// Append implements Codec.
func (StringCodec) Append(dst []byte, v string) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(v)))
	return append(dst, v...)
}

// Decode implements Codec.
func (StringCodec) Decode(src []byte) (string, int, error) {
	length, consumed, err := decodeBlobHeader(src)
	if err != nil {
		return "", 0, err
	}
	return string(src[consumed : consumed+length]), consumed + length, nil
}

// BytesCodec stores each value as a uvarint length followed by the raw
// bytes. Decoded slices are copies; mutating them does not affect the
// source buffer.
type BytesCodec struct{}

// ID implements Codec.
func (BytesCodec) ID() CodecID { return codecIDBytes }

// Append implements Codec.
func (BytesCodec) Append(dst []byte, v []byte) []byte {
	dst = binary.AppendUvarint(dst, uint64(len(v)))
	return append(dst, v...)
}

// Decode implements Codec.
func (BytesCodec) Decode(src []byte) ([]byte, int, error) {
	length, consumed, err := decodeBlobHeader(src)
	if err != nil {
		return nil, 0, err
	}
	out := make([]byte, length)
	copy(out, src[consumed:consumed+length])
	return out, consumed + length, nil
}

// decodeBlobHeader reads a uvarint length prefix and validates it against
// the remaining buffer.
func decodeBlobHeader(src []byte) (int, int, error) {
	length, consumed := binary.Uvarint(src)
	if consumed <= 0 || length > math.MaxInt32 {
		return 0, 0, fmt.Errorf("%w: invalid value length prefix", perrors.ErrCorruptedTable)
	}
	if uint64(len(src)-consumed) < length {
		return 0, 0, fmt.Errorf("%w: value extends past value region", perrors.ErrCorruptedTable)
	}
	return int(length), consumed, nil
}
