package textcodec

import (
	"testing"

	"github.com/nimo-project/nimo/strbuf"
	"github.com/nimo-project/nimo/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, v value.Value) value.Value {
	t.Helper()
	text := Print(v, false)
	buf := strbuf.New()
	buf.AddString(text)
	got, ok := ConvertToValue(buf)
	require.True(t, ok, "ConvertToValue failed on %q", text)

	return got
}

func TestRoundTrip_Scalars(t *testing.T) {
	cases := []value.Value{
		value.NewLogical(true),
		value.NewLogical(false),
		value.NewInteger(42),
		value.NewInteger(-16),
		value.NewInteger(0),
		value.NewDouble(3.5),
		value.NewDouble(-0.125),
		value.NewString("hello world"),
		value.NewAddress(0xC0A80001),
		value.NewDate(2024, 2, 29),
		value.NewTime(23, 59, 59, 999),
	}

	for _, want := range cases {
		got := roundTrip(t, want)
		assert.True(t, want.DeeplyEqual(got), "round trip mismatch for %s", Print(want, false))
	}
}

func TestRoundTrip_StringEscapes(t *testing.T) {
	cases := []string{
		"",
		"plain",
		"has \"double\" quotes",
		"has 'single' quotes",
		"tab\there",
		"newline\nhere",
		"bell\x07and\x1bescape",
		"del\x7fchar",
		"high\x80bit",
		"\"'",
		"'\"",
		"both \" and ' quotes",
	}

	for _, s := range cases {
		want := value.NewString(s)
		got := roundTrip(t, want)
		assert.True(t, want.DeeplyEqual(got), "round trip mismatch for %q, printed as %s", s, Print(want, false))
	}
}

func TestRoundTrip_Blob(t *testing.T) {
	want := value.NewBlob([]byte{0x00, 0x01, 0xFF, 0xAB})
	got := roundTrip(t, want)
	assert.True(t, want.DeeplyEqual(got))
}

func TestRoundTrip_Array(t *testing.T) {
	arr := value.NewArray()
	arr.Append(value.NewLogical(true))
	arr.Append(value.NewInteger(42))
	arr.Append(value.NewString("ab"))

	got := roundTrip(t, arr)
	assert.True(t, arr.DeeplyEqual(got))
}

func TestRoundTrip_EmptyArray(t *testing.T) {
	arr := value.NewArray()
	assert.Equal(t, "( )", Print(arr, false))

	got := roundTrip(t, arr)
	assert.True(t, arr.DeeplyEqual(got))
}

func TestRoundTrip_Set(t *testing.T) {
	s := value.NewSet()
	s.Insert(value.NewInteger(1))
	s.Insert(value.NewInteger(2))
	s.Insert(value.NewInteger(2)) // duplicate, dropped

	got := roundTrip(t, s)
	gotSet, ok := value.AsSet(got)
	require.True(t, ok)
	assert.Equal(t, 2, gotSet.Len())
}

func TestRoundTrip_Map(t *testing.T) {
	m := value.NewMap()
	m.Insert(value.NewInteger(1), value.NewString("a"))
	m.Insert(value.NewInteger(2), value.NewString("b"))

	got := roundTrip(t, m)
	assert.True(t, m.DeeplyEqual(got))
}

func TestConvertToValue_EmptyBuffer(t *testing.T) {
	buf := strbuf.New()
	_, ok := ConvertToValue(buf)
	assert.False(t, ok, "converting an empty buffer must return null")
}

func TestConvertToValue_MultipleTopLevelValuesWrapInArray(t *testing.T) {
	buf := strbuf.New()
	buf.AddString("1 2 3")

	got, ok := ConvertToValue(buf)
	require.True(t, ok)
	arr, ok := value.AsArray(got)
	require.True(t, ok)
	assert.Equal(t, 3, arr.Len())
}

func TestRead_UnrecognizedLeadingByteReturnsNull(t *testing.T) {
	buf := strbuf.New()
	buf.AddString("#not-a-value")
	pos := 0
	_, ok := Read(buf, &pos)
	assert.False(t, ok)
}

func TestPrintJSON_MapKeysAreQuotedStrings(t *testing.T) {
	m := value.NewMap()
	m.Insert(value.NewInteger(1), value.NewLogical(true))

	got := PrintJSON(m, false)
	assert.Equal(t, `{"1":true}`, got)
}
