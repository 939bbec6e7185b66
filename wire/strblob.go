package wire

import (
	"github.com/nimo-project/nimo/message"
	"github.com/nimo-project/nimo/value"
)

func encodeLength(lead byte, n int) []byte {
	if n <= 0x0F {
		return []byte{lead | byte(n)}
	}

	nb := minBytesForUint64(uint64(n))
	out := []byte{lead | strLongFlag | byte(nb-1)}

	return appendBigEndianUnsigned(out, uint64(n), nb)
}

// encodeStringOrBlob appends the String-or-Blob-family encoding. isBlob
// selects the Blob sub-family; payload is written verbatim (no terminator).
func encodeStringOrBlob(payload []byte, isBlob bool) []byte {
	lead := byte(familyStringOrBlob)
	if isBlob {
		lead |= strBlobFlag
	}

	out := encodeLength(lead, len(payload))

	return append(out, payload...)
}

func readLength(m *message.Message, lead byte) (n int, ok bool) {
	if lead&strLongFlag == 0 {
		return int(lead & strShortMask), true
	}

	nb := int(lead&strLenMask) + 1
	buf := make([]byte, 0, nb)
	for i := 0; i < nb; i++ {
		b, readOK := m.ReadByte()
		if !readOK {
			return 0, false
		}
		buf = append(buf, b)
	}

	return int(decodeBigEndianUnsigned(buf)), true
}

// decodeStringOrBlob decodes a complete String-or-Blob-family Value.
func decodeStringOrBlob(m *message.Message) value.Value {
	lead, ok := m.ReadByte()
	if !ok {
		return nil
	}

	n, ok := readLength(m, lead)
	if !ok {
		return nil
	}

	buf := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		b, readOK := m.ReadByte()
		if !readOK {
			return nil
		}
		buf = append(buf, b)
	}

	if lead&strBlobFlag != 0 {
		return value.NewBlob(buf)
	}

	return value.NewString(string(buf))
}
