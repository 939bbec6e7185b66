package wire

import (
	"fmt"

	"github.com/nimo-project/nimo/errs"
	"github.com/nimo-project/nimo/message"
	"github.com/nimo-project/nimo/value"
)

func startTag(variant byte, nonEmpty bool) byte {
	b := byte(familyOther) | subFamilyContStart | variant
	if nonEmpty {
		b |= contNonEmpty
	}

	return b
}

func endTag(variant byte, nonEmpty bool) byte {
	b := byte(familyOther) | subFamilyContEnd | variant
	if nonEmpty {
		b |= contNonEmpty
	}

	return b
}

// encodeCount appends the biased integer encoding of a non-empty
// container's element count, using the bias defined in lead.go.
func encodeCount(n int) []byte {
	return encodeInt(int64(n) - countBias)
}

func readBiasedCount(m *message.Message) (count int, ok bool) {
	lead, readOK := m.ReadByte()
	if !readOK {
		return 0, false
	}
	v, readOK := readIntBody(m, lead)
	if !readOK {
		return 0, false
	}

	return int(v) + countBias, true
}

func encodeArray(arr *value.Array) []byte {
	elems := arr.Elements()
	if len(elems) == 0 {
		return []byte{startTag(contArray, false), endTag(contArray, false)}
	}

	out := []byte{startTag(contArray, true)}
	out = append(out, encodeCount(len(elems))...)

	for i := 0; i < len(elems); {
		if d, ok := elems[i].(*value.Double); ok {
			run := []float64{d.Float64()}
			j := i + 1
			for j < len(elems) {
				dj, ok2 := elems[j].(*value.Double)
				if !ok2 {
					break
				}
				run = append(run, dj.Float64())
				j++
			}
			out = append(out, encodeDoubleRun(run)...)
			i = j

			continue
		}

		out = append(out, EncodeValue(elems[i])...)
		i++
	}

	out = append(out, endTag(contArray, true))

	return out
}

func encodeSet(s *value.Set) []byte {
	elems := s.Elements()
	if len(elems) == 0 {
		return []byte{startTag(contSet, false), endTag(contSet, false)}
	}

	out := []byte{startTag(contSet, true)}
	out = append(out, encodeCount(len(elems))...)
	for _, e := range elems {
		out = append(out, EncodeValue(e)...)
	}
	out = append(out, endTag(contSet, true))

	return out
}

func encodeMap(mp *value.Map) []byte {
	keys, vals := mp.Entries()
	if len(keys) == 0 {
		return []byte{startTag(contMap, false), endTag(contMap, false)}
	}

	out := []byte{startTag(contMap, true)}
	out = append(out, encodeCount(len(keys))...)
	for i := range keys {
		out = append(out, EncodeValue(keys[i])...)
		out = append(out, EncodeValue(vals[i])...)
	}
	out = append(out, endTag(contMap, true))

	return out
}

// decodeContainerBody decodes everything after a non-empty container-start
// tag for Array/Set/Map, validates the matching end tag, and returns the
// finished container (or a Flaw, or nil on underflow).
func decodeContainerBody(m *message.Message, variant byte) value.Value {
	count, ok := readBiasedCount(m)
	if !ok {
		return nil
	}
	if count < 1 {
		return value.NewFlaw("non-positive container count", m.Position())
	}

	var result value.Value

	switch variant {
	case contArray:
		arr := value.NewArray()
		for arr.Len() < count {
			lead, peekOK := m.PeekByte()
			if !peekOK {
				return nil
			}

			if Family(lead&familyMask) == familyDouble {
				_, flaw, underflow := decodeDoubleRunIntoArray(m, arr)
				if underflow {
					return nil
				}
				if flaw != nil {
					return flaw
				}

				continue
			}

			v := DecodeValue(m)
			if v == nil {
				return nil
			}
			if fl, isFlaw := value.AsFlaw(v); isFlaw {
				return fl
			}
			arr.Append(v)
		}
		result = arr

	case contSet:
		s := value.NewSet()
		for i := 0; i < count; i++ {
			v := DecodeValue(m)
			if v == nil {
				return nil
			}
			if fl, isFlaw := value.AsFlaw(v); isFlaw {
				return fl
			}
			s.Insert(v) // key-kind mismatch or duplicate is silently dropped, not a decode error
		}
		result = s

	case contMap:
		mp := value.NewMap()
		for i := 0; i < count; i++ {
			k := DecodeValue(m)
			if k == nil {
				return nil
			}
			if fl, isFlaw := value.AsFlaw(k); isFlaw {
				return fl
			}

			v := DecodeValue(m)
			if v == nil {
				return nil
			}
			if fl, isFlaw := value.AsFlaw(v); isFlaw {
				return fl
			}

			mp.Insert(k, v) // key-kind mismatch silently dropped, not a Flaw
		}
		result = mp

	default:
		return value.NewFlaw("reserved container variant", m.Position())
	}

	endLead, ok := m.ReadByte()
	if !ok {
		return nil
	}
	if endLead != endTag(variant, true) {
		return value.NewFlaw("mismatched container end tag", m.Position()-1)
	}

	return result
}

// decodeEmptyContainer reads and validates the matching empty end tag for
// an empty container-start already consumed by the caller.
func decodeEmptyContainer(m *message.Message, variant byte) value.Value {
	endLead, ok := m.ReadByte()
	if !ok {
		return nil
	}
	if endLead != endTag(variant, false) {
		return value.NewFlaw("mismatched container end tag", m.Position()-1)
	}

	switch variant {
	case contArray:
		return value.NewArray()
	case contSet:
		return value.NewSet()
	case contMap:
		return value.NewMap()
	default:
		return value.NewFlaw("reserved container variant", m.Position())
	}
}

func decodeContainerStart(m *message.Message, lead byte) value.Value {
	variant := lead & contMask
	nonEmpty := lead&contNonEmpty != 0

	if !nonEmpty {
		return decodeEmptyContainer(m, variant)
	}

	return decodeContainerBody(m, variant)
}

// panicOnEncodeFlaw guards EncodeValue against being asked to serialize a
// Flaw: Flaws are decode-only artifacts and writing one is a programming
// error, not a wire-representable condition.
func panicOnEncodeFlaw(v value.Value) {
	if _, ok := value.AsFlaw(v); ok {
		panic(fmt.Errorf("%w: cannot encode a Flaw value", errs.ErrMessageWrongMode))
	}
}
