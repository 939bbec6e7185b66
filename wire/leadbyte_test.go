package wire

import (
	"testing"

	"github.com/nimo-project/nimo/message"
	"github.com/nimo-project/nimo/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readerFor(t *testing.T, data []byte) *message.Message {
	t.Helper()
	m := message.New()
	m.OpenForReadingBytes(data)

	return m
}

func decodeBytes(t *testing.T, data []byte) value.Value {
	t.Helper()

	return DecodeValue(readerFor(t, data))
}

func TestEncodeValue_ByteExactScalars(t *testing.T) {
	cases := []struct {
		name string
		v    value.Value
		want []byte
	}{
		{"logical true", value.NewLogical(true), []byte{0xC1}},
		{"logical false", value.NewLogical(false), []byte{0xC0}},
		{"integer 0", value.NewInteger(0), []byte{0x00}},
		{"integer 15 is the largest short form", value.NewInteger(15), []byte{0x0F}},
		{"integer -16 is the smallest short form", value.NewInteger(-16), []byte{0x10}},
		{"integer 16 needs the long form", value.NewInteger(16), []byte{0x20, 0x10}},
		{"integer -17 needs the long form", value.NewInteger(-17), []byte{0x20, 0xEF}},
		{"integer 42", value.NewInteger(42), []byte{0x20, 0x2A}},
		{"integer 127 still fits one trailing byte", value.NewInteger(127), []byte{0x20, 0x7F}},
		{"integer 128 needs two trailing bytes", value.NewInteger(128), []byte{0x21, 0x00, 0x80}},
		{"integer -129 needs two trailing bytes", value.NewInteger(-129), []byte{0x21, 0xFF, 0x7F}},
		{"string ab", value.NewString("ab"), []byte{0x82, 'a', 'b'}},
		{"empty string", value.NewString(""), []byte{0x80}},
		{"blob", value.NewBlob([]byte{0xDE, 0xAD}), []byte{0xA2, 0xDE, 0xAD}},
		{"address", value.NewAddress(0xC0A80001), []byte{0xC4, 0xC0, 0xA8, 0x00, 0x01}},
		{"double 1.0", value.NewDouble(1.0), []byte{0x40, 0x3F, 0xF0, 0, 0, 0, 0, 0, 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, EncodeValue(tc.v))

			got := decodeBytes(t, tc.want)
			require.NotNil(t, got)
			assert.True(t, tc.v.DeeplyEqual(got), "decode of %x", tc.want)
		})
	}
}

// For each trailing-byte width N, the most negative N-byte value must
// encode with exactly N bytes, while one less would overflow N-1 bytes:
// the writer always picks the minimal sign-preserving width.
func TestEncodeValue_LongIntegerMinimalWidth(t *testing.T) {
	for n := 1; n <= 8; n++ {
		min := int64(-1) << (uint(n)*8 - 1)
		max := -min - 1

		for _, v := range []int64{min, max} {
			got := EncodeValue(value.NewInteger(v))
			if v >= -16 && v <= 15 {
				continue
			}
			require.Len(t, got, 1+n, "value %d", v)
			assert.Equal(t, byte(0x20|(n-1)), got[0], "value %d", v)

			back := decodeBytes(t, got)
			require.NotNil(t, back)
			assert.True(t, value.NewInteger(v).DeeplyEqual(back))
		}
	}
}

func TestEncodeValue_LongStringLength(t *testing.T) {
	payload := make([]byte, 16)
	for i := range payload {
		payload[i] = byte('a' + i)
	}

	got := EncodeValue(value.NewString(string(payload)))
	want := append([]byte{0x90, 0x10}, payload...)
	assert.Equal(t, want, got)
}

func TestEncodeValue_EmptyContainers(t *testing.T) {
	assert.Equal(t, []byte{0xD0, 0xE0}, EncodeValue(value.NewArray()))
	assert.Equal(t, []byte{0xD4, 0xE4}, EncodeValue(value.NewMap()))
	assert.Equal(t, []byte{0xD8, 0xE8}, EncodeValue(value.NewSet()))
}

func TestEncodeValue_HeterogeneousArray(t *testing.T) {
	arr := value.NewArray()
	arr.Append(value.NewLogical(true))
	arr.Append(value.NewInteger(42))
	arr.Append(value.NewString("ab"))

	// Count 3 biased down by 17 is -14, i.e. short-integer byte 0x12.
	want := []byte{0xD1, 0x12, 0xC1, 0x20, 0x2A, 0x82, 'a', 'b', 0xE1}
	got := EncodeValue(arr)
	require.Equal(t, want, got)

	back := decodeBytes(t, got)
	require.NotNil(t, back)
	assert.True(t, arr.DeeplyEqual(back))
}

func TestEncodeValue_DateTimeDiscriminator(t *testing.T) {
	d := value.NewDate(2024, 2, 29)
	tm := value.NewTime(12, 34, 56, 789)

	db := EncodeValue(d)
	tb := EncodeValue(tm)

	require.Len(t, db, 5)
	require.Len(t, tb, 5)
	assert.Equal(t, byte(0xCA), db[0], "date lead byte carries the isDate bit")
	assert.Equal(t, byte(0xC8), tb[0], "time lead byte clears the isDate bit")

	gotDate := decodeBytes(t, db)
	gotTime := decodeBytes(t, tb)
	assert.True(t, d.DeeplyEqual(gotDate))
	assert.True(t, tm.DeeplyEqual(gotTime))
}

func TestWrite_EnvelopeBytes(t *testing.T) {
	cases := []struct {
		name string
		v    value.Value
		want []byte
	}{
		{"integer body", value.NewInteger(42), []byte{0xF0, 0x20, 0x2A, 0xF8}},
		{"double body", value.NewDouble(1.0), []byte{0xF1, 0x40, 0x3F, 0xF0, 0, 0, 0, 0, 0, 0, 0xF9}},
		{"string body", value.NewString("ab"), []byte{0xF2, 0x82, 'a', 'b', 0xFA}},
		{"other body", value.NewLogical(true), []byte{0xF3, 0xC1, 0xFB}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := message.New()
			m.Open()
			require.NoError(t, Write(m, tc.v))
			m.Close()
			require.Equal(t, tc.want, m.Bytes())

			r := readerFor(t, tc.want)
			got, err := Read(r)
			require.NoError(t, err)
			_, isFlaw := value.AsFlaw(got)
			require.False(t, isFlaw)
			assert.True(t, tc.v.DeeplyEqual(got))
		})
	}
}

func TestRead_EnvelopeTypeMismatchIsFlaw(t *testing.T) {
	// Start tag claims an Integer body but the payload is a Logical, so the
	// end tag the reader derives from the start tag cannot match.
	r := readerFor(t, []byte{0xF0, 0xC1, 0xFB})
	got, err := Read(r)
	require.NoError(t, err)
	_, isFlaw := value.AsFlaw(got)
	assert.True(t, isFlaw)
}

func TestRead_MissingStartTagIsFlaw(t *testing.T) {
	r := readerFor(t, []byte{0xC1})
	got, err := Read(r)
	require.NoError(t, err)
	fl, isFlaw := value.AsFlaw(got)
	require.True(t, isFlaw)
	assert.Equal(t, 0, fl.Offset())
}

func TestRead_TruncatedBodyIsError(t *testing.T) {
	r := readerFor(t, []byte{0xF0, 0x20})
	_, err := Read(r)
	assert.Error(t, err)
}

func TestDecodeValue_UnderflowReturnsNil(t *testing.T) {
	cases := [][]byte{
		{},
		{0x20},             // long integer lead with no trailing byte
		{0x21, 0x00},       // two-byte integer with only one byte
		{0x40},             // double lead with no payload
		{0x82, 'a'},        // string shorter than its declared length
		{0xC4, 0x00, 0x00}, // address missing a byte
		{0xD1},             // non-empty array start with no count
		{0xD1, 0x10},       // count says one element, none present
	}

	for _, data := range cases {
		assert.Nil(t, decodeBytes(t, data), "decode of % x must underflow", data)
	}
}

func TestDecodeValue_StructuralFlaws(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"bare container end tag", []byte{0xE1}},
		{"reserved misc subtype", []byte{0xCC}},
		{"reserved container variant", []byte{0xDD, 0x10}},
		{"double run outside array context", []byte{
			0x41,
			0x3F, 0xF0, 0, 0, 0, 0, 0, 0,
			0x40, 0x00, 0, 0, 0, 0, 0, 0,
		}},
		{"envelope tag in value position", []byte{0xF0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := decodeBytes(t, tc.data)
			require.NotNil(t, got)
			fl, isFlaw := value.AsFlaw(got)
			require.True(t, isFlaw, "decode of % x must be a Flaw, got %T", tc.data, got)
			assert.LessOrEqual(t, fl.Offset(), len(tc.data))
		})
	}
}
