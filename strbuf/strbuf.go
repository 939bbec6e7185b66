// Package strbuf implements the textual accumulator used by the printing
// and scanning codec (see textcodec). It layers canonical scalar formatting
// and string escaping on top of chunk.ChunkArray.
package strbuf

import (
	"strconv"

	"github.com/nimo-project/nimo/chunk"
)

const (
	doubleQuote = '"'
	singleQuote = '\''
	escapeChar  = '\\'
	blobMarker  = '%'
)

// canonicalControl gives the escape spelling (without the leading backslash)
// for bytes 0x00-0x1F. Entries with a bare letter are the classic C escapes;
// the rest use the "C-<letter>" control notation.
var canonicalControl = [0x20]string{
	"C-@", "C-A", "C-B", "C-C", "C-D", "C-E", "C-F", "a",
	"b", "t", "n", "v", "f", "r", "C-N", "C-O",
	"C-P", "C-Q", "C-R", "C-S", "C-T", "C-U", "C-V", "C-W",
	"C-X", "C-Y", "C-Z", "e", "C-`", "C-]", "C-^", "C-_",
}

// StringBuffer is a textual accumulator over ChunkArray, adding the
// canonical printable conversions and escape logic used by the textual
// codec's writer side.
type StringBuffer struct {
	data *chunk.ChunkArray
}

// New returns an empty StringBuffer.
func New() *StringBuffer {
	return &StringBuffer{data: chunk.New()}
}

// Reset discards all accumulated text.
func (b *StringBuffer) Reset() {
	b.data.Reset()
}

// Len returns the number of accumulated bytes.
func (b *StringBuffer) Len() int {
	return b.data.Size()
}

// Bytes returns a materialized copy of the accumulated text.
func (b *StringBuffer) Bytes() []byte {
	return b.data.GetBytes()
}

// String returns the accumulated text.
func (b *StringBuffer) String() string {
	return string(b.Bytes())
}

// GetByte performs the random read used by scanners: skipOverWhiteSpace and
// the textual reader both walk the buffer this way rather than materializing
// it up front.
func (b *StringBuffer) GetByte(index int) (value byte, atEnd bool) {
	return b.data.GetByte(index)
}

// Slice returns a materialized copy of [start, end) of the accumulated
// text, used by the textual reader to recover a scalar's raw source bytes
// once it knows where the scalar begins and ends.
func (b *StringBuffer) Slice(start, end int) []byte {
	return b.data.GetRange(start, end)
}

// AppendChar appends a single raw byte, unescaped.
func (b *StringBuffer) AppendChar(c byte) *StringBuffer {
	b.data.AppendByte(c)
	return b
}

// AddString appends raw text with no quoting or escaping.
func (b *StringBuffer) AddString(s string) *StringBuffer {
	b.data.AppendBytes([]byte(s))
	return b
}

// AddLong appends the base-10 representation of an integer.
func (b *StringBuffer) AddLong(v int64) *StringBuffer {
	return b.AddString(strconv.FormatInt(v, 10))
}

// AddDouble appends the platform-default floating point representation: the
// shortest decimal string that round-trips to the same float64.
func (b *StringBuffer) AddDouble(v float64) *StringBuffer {
	return b.AddString(strconv.FormatFloat(v, 'g', -1, 64))
}

// AddBool appends "true" or "false".
func (b *StringBuffer) AddBool(v bool) *StringBuffer {
	if v {
		return b.AddString("true")
	}

	return b.AddString("false")
}

// AddBlob appends a self-delimiting hex blob: %<decimal-length>%<hex>%.
func (b *StringBuffer) AddBlob(data []byte) *StringBuffer {
	const hexDigits = "0123456789ABCDEF"

	b.AppendChar(blobMarker)
	b.AddLong(int64(len(data)))
	b.AppendChar(blobMarker)
	for _, by := range data {
		b.AppendChar(hexDigits[by>>4])
		b.AppendChar(hexDigits[by&0x0F])
	}
	b.AppendChar(blobMarker)

	return b
}

// AddQuotedString appends s wrapped in the delimiter ('"' or '\'') that
// requires fewer escapes, with every byte outside the plain-printable ASCII
// range (and the chosen delimiter itself) escaped per the control/meta
// notation below.
func (b *StringBuffer) AddQuotedString(s string) *StringBuffer {
	hasSpecials := false
	numSingle, numDouble := 0, 0

	for i := 0; i < len(s); i++ {
		by := s[i]
		switch {
		case by < 0x20 || by&0x80 != 0:
			hasSpecials = true
		case by == singleQuote:
			numSingle++
		case by == doubleQuote:
			numDouble++
		case by == escapeChar:
			hasSpecials = true
		}
	}

	delimiter := byte(doubleQuote)
	if !hasSpecials && numSingle == 0 && numDouble == 0 {
		b.AppendChar(delimiter)
		b.AddString(s)
		b.AppendChar(delimiter)

		return b
	}

	if numDouble > numSingle {
		delimiter = singleQuote
	}

	b.AppendChar(delimiter)
	for i := 0; i < len(s); i++ {
		b.emitEscaped(s[i], delimiter)
	}
	b.AppendChar(delimiter)

	return b
}

func (b *StringBuffer) emitEscaped(by byte, delimiter byte) {
	if by < 0x20 {
		b.AppendChar(escapeChar)
		b.AddString(canonicalControl[by])

		return
	}

	if by&0x80 != 0 {
		low := by &^ 0x80
		b.AppendChar(escapeChar)
		switch {
		case low == ' ':
			// Meta-blank is very special.
			b.AddString("240")
		case low == 0x7F:
			// As is meta-DEL.
			b.AddString("377")
		case low == delimiter:
			// Make sure a meta-quote doesn't break the delimiter scan.
			if low == singleQuote {
				b.AddString("247")
			} else {
				b.AddString("242")
			}
		case low < 0x20:
			b.AddString("M-")
			b.AppendChar(escapeChar)
			b.AddString(canonicalControl[low])
		default:
			b.AddString("M-")
			b.data.AppendByte(low)
		}

		return
	}

	if by == delimiter || by == escapeChar {
		b.AppendChar(escapeChar)
	}
	b.data.AppendByte(by)
}

// SkipOverWhiteSpace advances pos past any whitespace, returning the first
// non-whitespace byte and whether the scan hit the end of the buffer.
func (b *StringBuffer) SkipOverWhiteSpace(pos *int) (by byte, atEnd bool) {
	for {
		c, end := b.GetByte(*pos)
		if end {
			return 0, true
		}
		if c != ' ' && c != '\t' && c != '\n' && c != '\r' && c != '\v' && c != '\f' {
			return c, false
		}
		*pos++
	}
}
