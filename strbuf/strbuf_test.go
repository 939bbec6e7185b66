package strbuf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringBuffer_AddLongAndDouble(t *testing.T) {
	b := New()
	b.AddLong(42)
	assert.Equal(t, "42", b.String())

	b.Reset()
	b.AddDouble(3.5)
	assert.Equal(t, "3.5", b.String())
}

func TestStringBuffer_AddBool(t *testing.T) {
	b := New()
	b.AddBool(true)
	assert.Equal(t, "true", b.String())

	b.Reset()
	b.AddBool(false)
	assert.Equal(t, "false", b.String())
}

func TestStringBuffer_AddBlob(t *testing.T) {
	b := New()
	b.AddBlob([]byte{0xAB, 0x01})
	assert.Equal(t, "%2%AB01%", b.String())
}

func TestStringBuffer_AddQuotedString_NoEscapesNeeded(t *testing.T) {
	b := New()
	b.AddQuotedString("ab")
	assert.Equal(t, `"ab"`, b.String())
}

func TestStringBuffer_AddQuotedString_PicksDelimiterWithFewerEscapes(t *testing.T) {
	b := New()
	b.AddQuotedString(`it's`)
	assert.Equal(t, `"it's"`, b.String())

	b.Reset()
	b.AddQuotedString(`say "hi"`)
	got := b.String()
	require.True(t, len(got) > 0)
	assert.Equal(t, byte('\''), got[0], "more double quotes than single should select single-quote delimiter")
}

func TestStringBuffer_AddQuotedString_EscapesControlBytes(t *testing.T) {
	b := New()
	b.AddQuotedString("a\nb")
	assert.Equal(t, `"a\nb"`, b.String())
}

func TestStringBuffer_AddQuotedString_EscapesBackslash(t *testing.T) {
	b := New()
	b.AddQuotedString(`a\b`)
	assert.Equal(t, `"a\\b"`, b.String())
}

func TestStringBuffer_SkipOverWhiteSpace(t *testing.T) {
	b := New()
	b.AddString("   xyz")

	pos := 0
	c, atEnd := b.SkipOverWhiteSpace(&pos)
	require.False(t, atEnd)
	assert.Equal(t, byte('x'), c)
	assert.Equal(t, 3, pos)
}

func TestStringBuffer_SkipOverWhiteSpace_AtEnd(t *testing.T) {
	b := New()
	b.AddString("   ")

	pos := 0
	_, atEnd := b.SkipOverWhiteSpace(&pos)
	assert.True(t, atEnd)
}
