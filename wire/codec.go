package wire

import (
	"fmt"

	"github.com/nimo-project/nimo/errs"
	"github.com/nimo-project/nimo/format"
	"github.com/nimo-project/nimo/message"
	"github.com/nimo-project/nimo/value"
)

// EncodeValue returns the wire encoding of a single Value, not including
// any message envelope. Encoding a Flaw is a programming error: Flaws are
// decode-only artifacts and never legitimately appear in a tree a caller
// asks to serialize.
func EncodeValue(v value.Value) []byte {
	switch t := v.(type) {
	case *value.Logical:
		return encodeLogical(t.Bool())
	case *value.Integer:
		return encodeInt(t.Int64())
	case *value.Double:
		return encodeDoubleRun([]float64{t.Float64()})
	case *value.String:
		return encodeStringOrBlob([]byte(t.String()), false)
	case *value.Blob:
		return encodeStringOrBlob(t.Bytes(), true)
	case *value.Address:
		return encodeAddress(t.Uint32())
	case *value.DateTime:
		return encodeDateTime(t)
	case *value.Array:
		return encodeArray(t)
	case *value.Set:
		return encodeSet(t)
	case *value.Map:
		return encodeMap(t)
	default:
		panicOnEncodeFlaw(v)
		panic(fmt.Errorf("%w: EncodeValue given unrecognized Value type %T", errs.ErrMessageWrongMode, v))
	}
}

// DecodeValue reads one complete Value from m, dispatching on the family
// bits of the next lead byte without consuming it ahead of the per-family
// decoder. Returns nil on underflow (not enough bytes yet available) or a
// *value.Flaw on a structural defect; callers distinguish the two with
// value.AsFlaw.
func DecodeValue(m *message.Message) value.Value {
	offset := m.Position()

	lead, ok := m.PeekByte()
	if !ok {
		return nil
	}

	switch Family(lead & familyMask) {
	case familyInteger:
		return decodeIntegerValue(m)
	case familyDouble:
		return decodeDoubleValue(m)
	case familyStringOrBlob:
		return decodeStringOrBlob(m)
	case familyOther:
		return decodeOther(m, lead, offset)
	default:
		_, _ = m.ReadByte()

		return value.NewFlaw("unreachable family", offset)
	}
}

func decodeOther(m *message.Message, lead byte, offset int) value.Value {
	switch lead & subFamilyMask {
	case subFamilyMisc:
		_, _ = m.ReadByte()

		return decodeMisc(m, lead, offset)
	case subFamilyContStart:
		_, _ = m.ReadByte()

		return decodeContainerStart(m, lead)
	case subFamilyContEnd:
		_, _ = m.ReadByte()

		return value.NewFlaw("unexpected container end tag", offset)
	case subFamilyEnvelope:
		return value.NewFlaw("unexpected message envelope tag", offset)
	default:
		_, _ = m.ReadByte()

		return value.NewFlaw("reserved Other subtype", offset)
	}
}

// envelopeStartTag and envelopeEndTag build the message envelope lead bytes
// described in lead.go: family Other, sub-family Envelope, bit3
// start(0)/end(1), bits1..0 the Value's ExpectedType tag. The empty bit is
// always 0 since a Message holds exactly one Value.
func envelopeStartTag(t format.ExpectedType) byte {
	return byte(familyOther) | subFamilyEnvelope | byte(t)&envelopeTypeMask
}

func envelopeEndTag(t format.ExpectedType) byte {
	return byte(familyOther) | subFamilyEnvelope | envelopeEndBit | byte(t)&envelopeTypeMask
}

// Write encodes v into m as a complete message: an envelope start tag, v's
// wire encoding, and an envelope end tag. m must be open for writing and
// must not already hold a written Value.
func Write(m *message.Message, v value.Value) error {
	if _, isFlaw := value.AsFlaw(v); isFlaw {
		return fmt.Errorf("%w: cannot write a Flaw as a message body", errs.ErrMessageWrongMode)
	}

	tag := v.TypeTag()
	m.AppendByte(envelopeStartTag(tag))
	m.AppendBytes(EncodeValue(v))
	m.AppendByte(envelopeEndTag(tag))
	m.MarkValueWritten()

	return nil
}

// Read extracts the single Value enclosed by m's message envelope. m must
// be open for reading. A malformed envelope (missing tags, type mismatch
// between start/end) decodes to a *value.Flaw rather than an error, so
// callers use value.AsFlaw the same way they would for any other
// structural defect.
func Read(m *message.Message) (value.Value, error) {
	offset := m.Position()

	startLead, ok := m.ReadByte()
	if !ok {
		return nil, fmt.Errorf("%w: message envelope start tag", errs.ErrMessageClosed)
	}
	if startLead&familyMask != byte(familyOther) || startLead&subFamilyMask != subFamilyEnvelope || startLead&envelopeEndBit != 0 {
		return value.NewFlaw("missing or malformed message envelope start tag", offset), nil
	}
	expected := format.ExpectedType(startLead & envelopeTypeMask)

	body := DecodeValue(m)
	if body == nil {
		return nil, fmt.Errorf("%w: message body truncated", errs.ErrMessageClosed)
	}
	if fl, isFlaw := value.AsFlaw(body); isFlaw {
		return fl, nil
	}

	endOffset := m.Position()
	endLead, ok := m.ReadByte()
	if !ok {
		return nil, fmt.Errorf("%w: message envelope end tag", errs.ErrMessageClosed)
	}
	if endLead != envelopeEndTag(expected) || body.TypeTag() != expected {
		return value.NewFlaw("mismatched message envelope end tag", endOffset), nil
	}

	return body, nil
}
