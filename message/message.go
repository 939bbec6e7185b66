// Package message implements the binary accumulator (component C): a
// ChunkArray-backed buffer with the state machine
//
//	Unknown -> OpenForReading | OpenForWriting -> Closed
//
// Message itself only tracks state and provides byte-level read/write
// primitives over its ChunkArray; the wire package dispatches Value
// encoding and extraction on top of those primitives, so Message has no
// dependency on the value package at all.
package message

import (
	"fmt"

	"github.com/nimo-project/nimo/chunk"
	"github.com/nimo-project/nimo/errs"
)

// State is one of Message's state-machine states.
type State int

const (
	Unknown State = iota
	OpenForReading
	OpenForWriting
	Closed
)

// Message is the binary accumulator described above. The zero value is not
// usable; construct one with New().
type Message struct {
	data     *chunk.ChunkArray
	state    State
	pos      int
	wroteOne bool
}

// New returns a Message in the Unknown state.
func New() *Message {
	return &Message{data: chunk.New(), state: Unknown}
}

// State returns the Message's current state.
func (m *Message) State() State { return m.state }

// Open transitions Unknown -> OpenForWriting. Calling Open twice, or on a
// Closed Message, is a programming error and panics.
func (m *Message) Open() {
	if m.state != Unknown {
		panic(fmt.Errorf("%w: Open", errs.ErrMessageAlreadyOpen))
	}
	m.state = OpenForWriting
}

// OpenForReadingBytes transitions Unknown -> OpenForReading, loading data as
// the Message's entire backing store.
func (m *Message) OpenForReadingBytes(data []byte) {
	if m.state != Unknown {
		panic(fmt.Errorf("%w: OpenForReadingBytes", errs.ErrMessageAlreadyOpen))
	}
	m.data.AppendBytes(data)
	m.state = OpenForReading
	m.pos = 0
}

// Close transitions OpenForReading or OpenForWriting to Closed. Calling
// Close on an already-closed or never-opened Message panics.
func (m *Message) Close() {
	if m.state != OpenForReading && m.state != OpenForWriting {
		panic(fmt.Errorf("%w: Close", errs.ErrMessageNotOpen))
	}
	m.state = Closed
}

func (m *Message) requireWriting() {
	switch m.state {
	case OpenForWriting:
		return
	case Closed:
		panic(fmt.Errorf("%w: write", errs.ErrMessageClosed))
	case OpenForReading:
		panic(fmt.Errorf("%w: write on a Message opened for reading", errs.ErrMessageWrongMode))
	default:
		panic(fmt.Errorf("%w: write", errs.ErrMessageNotOpen))
	}
}

func (m *Message) requireReading() {
	switch m.state {
	case OpenForReading:
		return
	case Closed:
		panic(fmt.Errorf("%w: read", errs.ErrMessageClosed))
	case OpenForWriting:
		panic(fmt.Errorf("%w: read on a Message opened for writing", errs.ErrMessageWrongMode))
	default:
		panic(fmt.Errorf("%w: read", errs.ErrMessageNotOpen))
	}
}

// AppendByte appends a single byte. Requires OpenForWriting.
func (m *Message) AppendByte(b byte) {
	m.requireWriting()
	m.data.AppendByte(b)
}

// AppendBytes appends data. Requires OpenForWriting.
func (m *Message) AppendBytes(data []byte) {
	m.requireWriting()
	m.data.AppendBytes(data)
}

// MarkValueWritten records that the Message's single top-level Value has
// been written. A Message holds exactly one Value; a second call panics,
// since callers wanting multiple values must wrap them in an Array instead.
func (m *Message) MarkValueWritten() {
	if m.wroteOne {
		panic(fmt.Errorf("%w", errs.ErrMessageAlreadyWritten))
	}
	m.wroteOne = true
}

// ReadByte consumes and returns the next byte. ok is false at end of
// buffer, in which case the Message's read position is left unchanged so a
// caller can distinguish "underflow" from "got a byte". Requires
// OpenForReading.
func (m *Message) ReadByte() (b byte, ok bool) {
	m.requireReading()
	v, atEnd := m.data.GetByte(m.pos)
	if atEnd {
		return 0, false
	}
	m.pos++

	return v, true
}

// PeekByte returns the next byte without consuming it.
func (m *Message) PeekByte() (b byte, ok bool) {
	m.requireReading()
	v, atEnd := m.data.GetByte(m.pos)
	if atEnd {
		return 0, false
	}

	return v, true
}

// Position returns the current read cursor, i.e. the byte offset of the
// next unread byte. Used to stamp Flaw offsets.
func (m *Message) Position() int {
	return m.pos
}

// AtEnd reports whether the read cursor has reached the end of the buffer.
func (m *Message) AtEnd() bool {
	return m.pos >= m.data.Size()
}

// Bytes returns a materialized copy of the Message's entire backing store:
// for a Message opened for writing, everything written so far; for one
// opened for reading, the original input.
func (m *Message) Bytes() []byte {
	return m.data.GetBytes()
}

// Size returns the number of bytes in the Message's backing store.
func (m *Message) Size() int {
	return m.data.Size()
}
