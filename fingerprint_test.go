package perfectdict

import "testing"

func TestFingerprintMask(t *testing.T) {
	cases := []struct {
		bits int
		want uint64
	}{
		{0, 0},
		{1, 0x1},
		{8, 0xFF},
		{12, 0xFFF},
		{16, 0xFFFF},
		{32, 0xFFFFFFFF},
	}
	for _, tc := range cases {
		if got := fingerprintMask(tc.bits); got != tc.want {
			t.Errorf("fingerprintMask(%d) = %#x, want %#x", tc.bits, got, tc.want)
		}
	}
}

func TestFingerprintBytes(t *testing.T) {
	cases := []struct {
		bits, want int
	}{
		{0, 0},
		{1, 1},
		{8, 1},
		{9, 2},
		{16, 2},
		{17, 3},
		{24, 3},
		{25, 4},
		{32, 4},
	}
	for _, tc := range cases {
		if got := fingerprintBytes(tc.bits); got != tc.want {
			t.Errorf("fingerprintBytes(%d) = %d, want %d", tc.bits, got, tc.want)
		}
	}
}

func TestFingerprintPackUnpack(t *testing.T) {
	values := []uint32{0, 1, 0x7F, 0xFF, 0xABCD, 0xFFFF, 0xABCDEF, 0xDEADBEEF}
	for size := 1; size <= 4; size++ {
		mask := uint32(fingerprintMask(size * 8))
		for _, v := range values {
			v &= mask
			var buf [4]byte
			packFingerprintToBytes(buf[:], v, size)
			if got := unpackFingerprintFromBytes(buf[:], size); got != v {
				t.Errorf("size %d: pack/unpack %#x = %#x", size, v, got)
			}
		}
	}
}

func TestFingerprintUnpackZeroWidth(t *testing.T) {
	if got := unpackFingerprintFromBytes(nil, 0); got != 0 {
		t.Errorf("zero-width unpack = %d, want 0", got)
	}
}
