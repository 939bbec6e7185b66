package message

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessage_WriteThenClose(t *testing.T) {
	m := New()
	assert.Equal(t, Unknown, m.State())

	m.Open()
	assert.Equal(t, OpenForWriting, m.State())

	m.AppendBytes([]byte{0x01, 0x02})
	m.MarkValueWritten()
	m.Close()

	assert.Equal(t, Closed, m.State())
	assert.Equal(t, []byte{0x01, 0x02}, m.Bytes())
}

func TestMessage_ReadRoundTrip(t *testing.T) {
	m := New()
	m.OpenForReadingBytes([]byte{0xAA, 0xBB, 0xCC})
	require.Equal(t, OpenForReading, m.State())

	b, ok := m.ReadByte()
	require.True(t, ok)
	assert.Equal(t, byte(0xAA), b)
	assert.Equal(t, 1, m.Position())

	peek, ok := m.PeekByte()
	require.True(t, ok)
	assert.Equal(t, byte(0xBB), peek)
	assert.Equal(t, 1, m.Position(), "peek must not advance the cursor")

	m.ReadByte()
	m.ReadByte()
	_, ok = m.ReadByte()
	assert.False(t, ok)
	assert.True(t, m.AtEnd())

	m.Close()
}

func TestMessage_DoubleOpenPanics(t *testing.T) {
	m := New()
	m.Open()
	assert.Panics(t, func() { m.Open() })
}

func TestMessage_WriteAfterCloseOrReadModePanics(t *testing.T) {
	m := New()
	m.Open()
	m.Close()
	assert.Panics(t, func() { m.AppendByte(0x01) })

	r := New()
	r.OpenForReadingBytes([]byte{0x01})
	assert.Panics(t, func() { r.AppendByte(0x02) })
}

func TestMessage_SecondValueWritePanics(t *testing.T) {
	m := New()
	m.Open()
	m.MarkValueWritten()
	assert.Panics(t, func() { m.MarkValueWritten() })
}
