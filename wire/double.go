package wire

import (
	"encoding/binary"
	"math"

	"github.com/nimo-project/nimo/message"
	"github.com/nimo-project/nimo/value"
)

// encodeDoubleRun appends the Double-family encoding of a run of K
// IEEE-754 doubles: a count-carrying lead byte followed by K big-endian
// 8-byte doubles.
func encodeDoubleRun(vals []float64) []byte {
	k := len(vals)
	var out []byte

	if k <= dblMaxShortRun {
		out = append(out, byte(familyDouble)|byte(k-1))
	} else {
		n := minBytesForUint64(uint64(k))
		out = append(out, byte(familyDouble)|dblLongFlag|byte(n-1))
		out = appendBigEndianUnsigned(out, uint64(k), n)
	}

	for _, d := range vals {
		var b [8]byte
		binary.BigEndian.PutUint64(b[:], math.Float64bits(d))
		out = append(out, b[:]...)
	}

	return out
}

// readDoubleRunCount reads the lead byte and any trailing count bytes,
// returning K.
func readDoubleRunCount(m *message.Message, lead byte) (k int, ok bool) {
	if lead&dblLongFlag == 0 {
		return int(lead&dblShortMask) + 1, true
	}

	n := int(lead&dblLenMask) + 1
	buf := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		b, readOK := m.ReadByte()
		if !readOK {
			return 0, false
		}
		buf = append(buf, b)
	}

	return int(decodeBigEndianUnsigned(buf)), true
}

func readDoubles(m *message.Message, k int) (vals []float64, ok bool) {
	vals = make([]float64, 0, k)
	for i := 0; i < k; i++ {
		var b [8]byte
		for j := range b {
			by, readOK := m.ReadByte()
			if !readOK {
				return nil, false
			}
			b[j] = by
		}
		vals = append(vals, math.Float64frombits(binary.BigEndian.Uint64(b[:])))
	}

	return vals, true
}

// decodeDoubleValue decodes a standalone (non-Array-context) Double-family
// Value. A run with K != 1 outside an Array is a structural defect: the
// format only produces multi-double runs as an Array-packing optimization.
func decodeDoubleValue(m *message.Message) value.Value {
	offset := m.Position()

	lead, ok := m.ReadByte()
	if !ok {
		return nil
	}

	k, ok := readDoubleRunCount(m, lead)
	if !ok {
		return nil
	}

	vals, ok := readDoubles(m, k)
	if !ok {
		return nil
	}

	if k != 1 {
		return value.NewFlaw("double run with count != 1 outside array context", offset)
	}

	return value.NewDouble(vals[0])
}

// decodeDoubleRunIntoArray decodes a Double-family run and appends every
// decoded Double directly to arr, per the extractor contract's exception
// for double runs.
func decodeDoubleRunIntoArray(m *message.Message, arr *value.Array) (appended int, flaw *value.Flaw, underflow bool) {
	lead, ok := m.ReadByte()
	if !ok {
		return 0, nil, true
	}

	k, ok := readDoubleRunCount(m, lead)
	if !ok {
		return 0, nil, true
	}

	vals, ok := readDoubles(m, k)
	if !ok {
		return 0, nil, true
	}

	for _, d := range vals {
		arr.Append(value.NewDouble(d))
	}

	return k, nil, false
}
