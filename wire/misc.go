package wire

import (
	"github.com/nimo-project/nimo/message"
	"github.com/nimo-project/nimo/value"
)

func encodeLogical(v bool) []byte {
	lead := byte(familyOther) | subFamilyMisc | miscLogical
	if v {
		lead |= miscLogicalTruthBit
	}

	return []byte{lead}
}

func encodeAddress(v uint32) []byte {
	lead := byte(familyOther) | subFamilyMisc | miscAddress
	out := []byte{lead}

	return appendBigEndianUnsigned(out, uint64(v), 4)
}

func encodeDateTime(dt *value.DateTime) []byte {
	lead := byte(familyOther) | subFamilyMisc | miscDateTime
	if dt.IsDate() {
		lead |= miscDateTimeIsDate
	}
	out := []byte{lead}

	return appendBigEndianUnsigned(out, uint64(dt.Packed()), 4)
}

// decodeMisc decodes a Logical, Address, or DateTime Value. lead has
// already been consumed by the caller's dispatch so this reads only the
// trailing bytes, if any.
func decodeMisc(m *message.Message, lead byte, offset int) value.Value {
	switch lead & miscMask {
	case miscLogical:
		return value.NewLogical(lead&miscLogicalTruthBit != 0)
	case miscAddress:
		b, ok := readN(m, 4)
		if !ok {
			return nil
		}

		return value.NewAddress(uint32(decodeBigEndianUnsigned(b)))
	case miscDateTime:
		b, ok := readN(m, 4)
		if !ok {
			return nil
		}
		packed := uint32(decodeBigEndianUnsigned(b))
		isDate := lead&miscDateTimeIsDate != 0

		return value.NewDateTimeFromPacked(packed, isDate)
	default:
		return value.NewFlaw("reserved Misc subtype", offset)
	}
}

func readN(m *message.Message, n int) ([]byte, bool) {
	buf := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		b, ok := m.ReadByte()
		if !ok {
			return nil, false
		}
		buf = append(buf, b)
	}

	return buf, true
}
