package perfectdict

import "encoding/binary"

// fingerprintMask returns the mask keeping the low `bits` bits of a
// digest. bits must be in [0, 32].
func fingerprintMask(bits int) uint64 {
	return (uint64(1) << bits) - 1
}

// fingerprintBytes returns the persisted width of one fingerprint:
// the bit width rounded up to whole bytes.
func fingerprintBytes(bits int) int {
	return (bits + 7) / 8
}

// packFingerprintToBytes writes a fingerprint to dst at the given byte
// width. Optimized for the common widths (1, 2, 4 bytes).
// Precondition: len(dst) >= size.
func packFingerprintToBytes(dst []byte, fp uint32, size int) {
	switch size {
	case 1:
		dst[0] = byte(fp)
	case 2:
		binary.LittleEndian.PutUint16(dst, uint16(fp))
	case 4:
		binary.LittleEndian.PutUint32(dst, fp)
	default:
		for i := 0; i < size && i < 4; i++ {
			dst[i] = byte(fp >> (i * 8))
		}
	}
}

// unpackFingerprintFromBytes reads a fingerprint of the given byte width.
// Precondition: len(src) >= size.
func unpackFingerprintFromBytes(src []byte, size int) uint32 {
	switch size {
	case 0:
		return 0
	case 1:
		return uint32(src[0])
	case 2:
		return uint32(binary.LittleEndian.Uint16(src))
	case 4:
		return binary.LittleEndian.Uint32(src)
	default:
		// Generic fallback for size 3
		var v uint32
		for i := 0; i < size && i < 4; i++ {
			v |= uint32(src[i]) << (i * 8)
		}
		return v
	}
}
