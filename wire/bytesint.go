package wire

import "github.com/nimo-project/nimo/endian"

var bigEndian = endian.GetBigEndianEngine()

// minBytesForInt64 returns the smallest N in 1..8 such that v fits in an
// N-byte big-endian two's complement integer.
func minBytesForInt64(v int64) int {
	for n := 1; n < 8; n++ {
		bits := uint(n) * 8
		lo := -(int64(1) << (bits - 1))
		hi := int64(1)<<(bits-1) - 1
		if v >= lo && v <= hi {
			return n
		}
	}

	return 8
}

// appendBigEndianSigned appends the n-byte big-endian two's complement
// representation of v. The full 8-byte case is the common one (default-size
// Integers), so it goes through endian.EndianEngine's AppendUint64 rather
// than the byte-at-a-time loop used for the variable-width shrink cases.
func appendBigEndianSigned(dst []byte, v int64, n int) []byte {
	uv := uint64(v)
	if n == 8 {
		return bigEndian.AppendUint64(dst, uv)
	}
	for i := n - 1; i >= 0; i-- {
		dst = append(dst, byte(uv>>(uint(i)*8)))
	}

	return dst
}

// decodeBigEndianSigned interprets b as a big-endian two's complement
// integer and sign-extends it to int64.
func decodeBigEndianSigned(b []byte) int64 {
	if len(b) == 0 {
		return 0
	}

	var uv uint64
	if len(b) == 8 {
		uv = bigEndian.Uint64(b)
	} else {
		for _, by := range b {
			uv = uv<<8 | uint64(by)
		}
	}

	bits := uint(len(b)) * 8
	signBit := uint64(1) << (bits - 1)
	if uv&signBit != 0 && bits < 64 {
		uv |= ^uint64(0) << bits
	}

	return int64(uv)
}

// minBytesForUint64 returns the smallest N in 1..8 such that v fits in an
// N-byte big-endian unsigned integer.
func minBytesForUint64(v uint64) int {
	n := 1
	for v>>(uint(n)*8) != 0 && n < 8 {
		n++
	}

	return n
}

// appendBigEndianUnsigned appends the n-byte big-endian representation of v.
func appendBigEndianUnsigned(dst []byte, v uint64, n int) []byte {
	if n == 8 {
		return bigEndian.AppendUint64(dst, v)
	}
	for i := n - 1; i >= 0; i-- {
		dst = append(dst, byte(v>>(uint(i)*8)))
	}

	return dst
}

// decodeBigEndianUnsigned interprets b as a big-endian unsigned integer.
func decodeBigEndianUnsigned(b []byte) uint64 {
	if len(b) == 8 {
		return bigEndian.Uint64(b)
	}

	var v uint64
	for _, by := range b {
		v = v<<8 | uint64(by)
	}

	return v
}
