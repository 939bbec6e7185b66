package wire

import (
	"github.com/nimo-project/nimo/message"
	"github.com/nimo-project/nimo/value"
)

// encodeInt appends the Integer-family encoding of v: a one-byte short form
// for -16..15, otherwise a lead byte plus the minimal big-endian signed
// byte run that represents v exactly.
func encodeInt(v int64) []byte {
	if v >= -16 && v <= 15 {
		return []byte{byte(int8(v)) & intShortMask}
	}

	n := minBytesForInt64(v)
	lead := byte(familyInteger) | intLongFlag | byte(n-1)
	out := make([]byte, 0, 1+n)
	out = append(out, lead)

	return appendBigEndianSigned(out, v, n)
}

// readIntBody reads everything after the lead byte for an Integer-family
// value and returns the decoded int64, or ok=false on underflow.
func readIntBody(m *message.Message, lead byte) (v int64, ok bool) {
	if lead&intLongFlag == 0 {
		raw := lead & intShortMask
		if raw&0x10 != 0 {
			return int64(raw) - 32, true
		}

		return int64(raw), true
	}

	n := int(lead&intLenMask) + 1
	buf := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		b, readOK := m.ReadByte()
		if !readOK {
			return 0, false
		}
		buf = append(buf, b)
	}

	return decodeBigEndianSigned(buf), true
}

// decodeIntegerValue decodes a complete Integer-family Value, consuming the
// lead byte and any trailing bytes. Returns nil on underflow.
func decodeIntegerValue(m *message.Message) value.Value {
	lead, ok := m.ReadByte()
	if !ok {
		return nil
	}

	v, ok := readIntBody(m, lead)
	if !ok {
		return nil
	}

	return value.NewInteger(v)
}
