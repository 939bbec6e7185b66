package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkArray_AppendAndSize(t *testing.T) {
	a := New()
	assert.Equal(t, 0, a.Size())

	a.AppendBytes([]byte("hello"))
	assert.Equal(t, 5, a.Size())

	a.AppendBytes([]byte(" world"))
	assert.Equal(t, 11, a.Size())
	assert.Equal(t, []byte("hello world"), a.GetBytes())
}

func TestChunkArray_SpansMultipleChunks(t *testing.T) {
	a := NewSize(4)

	data := []byte("0123456789")
	a.AppendBytes(data)

	require.Equal(t, len(data), a.Size())
	assert.Equal(t, data, a.GetBytes())
	assert.True(t, len(a.chunks) > 1, "data longer than chunk size must span multiple chunks")
}

func TestChunkArray_GetByte(t *testing.T) {
	a := NewSize(4)
	a.AppendBytes([]byte("abcdefgh"))

	for i, want := range []byte("abcdefgh") {
		got, atEnd := a.GetByte(i)
		require.False(t, atEnd)
		assert.Equal(t, want, got)
	}

	_, atEnd := a.GetByte(8)
	assert.True(t, atEnd, "index at total size must report atEnd")

	_, atEnd = a.GetByte(-1)
	assert.True(t, atEnd, "negative index must report atEnd")
}

func TestChunkArray_Reset(t *testing.T) {
	a := New()
	a.AppendBytes([]byte("data"))
	require.Equal(t, 4, a.Size())

	a.Reset()
	assert.Equal(t, 0, a.Size())
	assert.Nil(t, a.GetBytes())
}

func TestChunkArray_GetRange(t *testing.T) {
	a := NewSize(4)
	a.AppendBytes([]byte("0123456789"))

	assert.Equal(t, []byte("345"), a.GetRange(3, 6))
	assert.Equal(t, []byte{}, a.GetRange(0, 0))
}

func TestChunkArray_GetRangePanicsOnInvalidIndices(t *testing.T) {
	a := New()
	a.AppendBytes([]byte("abc"))

	assert.Panics(t, func() { a.GetRange(2, 1) })
	assert.Panics(t, func() { a.GetRange(0, 10) })
}

func TestChunkArray_EmptyAppendByte(t *testing.T) {
	a := New()
	a.AppendByte('x')
	assert.Equal(t, 1, a.Size())
	b, atEnd := a.GetByte(0)
	require.False(t, atEnd)
	assert.Equal(t, byte('x'), b)
}
