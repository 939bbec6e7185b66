package value_test

import (
	"testing"

	"github.com/nimo-project/nimo"
	"github.com/nimo-project/nimo/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allVariants builds one representative tree per variant plus a deeply
// nested composite, covering every encoder and extractor in one sweep.
func allVariants() []value.Value {
	inner := value.NewMap()
	inner.Insert(value.NewString("pi"), value.NewDouble(3.14159))
	inner.Insert(value.NewString("e"), value.NewDouble(2.71828))

	addrs := value.NewSet()
	addrs.Insert(value.NewAddress(0x7F000001))
	addrs.Insert(value.NewAddress(0xC0A80001))

	nested := value.NewArray()
	nested.Append(value.NewLogical(false))
	nested.Append(value.NewInteger(-300))
	nested.Append(inner)
	nested.Append(addrs)
	nested.Append(value.NewArray())

	doubles := value.NewArray()
	for i := 0; i < 5; i++ {
		// Offset by a fraction so the textual form can never be mistaken
		// for an Integer when scanned back.
		doubles.Append(value.NewDouble(float64(i) + 0.25))
	}

	return []value.Value{
		value.NewLogical(true),
		value.NewLogical(false),
		value.NewInteger(0),
		value.NewInteger(15),
		value.NewInteger(-16),
		value.NewInteger(42),
		value.NewInteger(-987654321),
		value.NewInteger(1<<62 + 12345),
		value.NewDouble(0.5),
		value.NewDouble(-1.5e300),
		value.NewString(""),
		value.NewString("hello, world"),
		value.NewString("with \"quotes\" and\ttabs"),
		value.NewBlob(nil),
		value.NewBlob([]byte{0x00, 0x7F, 0x80, 0xFF}),
		value.NewAddress(0),
		value.NewAddress(0xFFFFFFFF),
		value.NewDate(1, 1, 1),
		value.NewDate(2024, 12, 31),
		value.NewTime(0, 0, 0, 0),
		value.NewTime(23, 59, 59, 999),
		nested,
		doubles,
	}
}

func TestBinaryRoundTrip_AllVariants(t *testing.T) {
	for _, want := range allVariants() {
		data, err := nimo.EncodeMessage(want)
		require.NoError(t, err)

		got, err := nimo.DecodeMessage(data)
		require.NoError(t, err)
		_, isFlaw := value.AsFlaw(got)
		require.False(t, isFlaw, "decode of %s produced a Flaw", nimo.EncodeText(want, true))
		assert.True(t, want.DeeplyEqual(got), "binary round trip mismatch for %s", nimo.EncodeText(want, true))
	}
}

func TestTextualRoundTrip_AllVariants(t *testing.T) {
	for _, want := range allVariants() {
		text := nimo.EncodeText(want, false)

		got, ok := nimo.DecodeText(text)
		require.True(t, ok, "DecodeText failed on %q", text)
		assert.True(t, want.DeeplyEqual(got), "textual round trip mismatch for %q", text)
	}
}

func TestTextualRoundTrip_Squished(t *testing.T) {
	arr := value.NewArray()
	arr.Append(value.NewInteger(1))
	arr.Append(value.NewString("x"))

	text := nimo.EncodeText(arr, true)
	got, ok := nimo.DecodeText(text)
	require.True(t, ok, "DecodeText failed on %q", text)
	assert.True(t, arr.DeeplyEqual(got))
}

func TestDecodeMessage_NeverReadsPastInput(t *testing.T) {
	// Truncations of a valid message must decode to an error or a Flaw,
	// never diverge or fabricate a Value.
	full, err := nimo.EncodeMessage(allVariants()[len(allVariants())-2])
	require.NoError(t, err)

	for n := 0; n < len(full); n++ {
		got, decodeErr := nimo.DecodeMessage(full[:n])
		if decodeErr != nil {
			continue
		}
		fl, isFlaw := value.AsFlaw(got)
		require.True(t, isFlaw, "truncation to %d bytes produced a non-Flaw Value", n)
		assert.LessOrEqual(t, fl.Offset(), n)
	}
}
