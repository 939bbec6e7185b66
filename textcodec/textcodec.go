// Package textcodec implements the textual codec: printing a value.Value
// into a strbuf.StringBuffer and scanning one back out. Printing is a thin
// wrapper over the PrintTo/PrintJSONTo methods every value.Value already
// implements; scanning dispatches on the first non-whitespace byte to one
// of the per-variant readers in this package.
package textcodec

import (
	"github.com/nimo-project/nimo/strbuf"
	"github.com/nimo-project/nimo/value"
)

// Print renders v's canonical text form and returns it as a string.
func Print(v value.Value, squished bool) string {
	buf := strbuf.New()
	v.PrintTo(buf, squished)

	return buf.String()
}

// PrintJSON renders v's JSON form and returns it as a string.
func PrintJSON(v value.Value, squished bool) string {
	buf := strbuf.New()
	v.PrintJSONTo(buf, false, squished)

	return buf.String()
}

// Read scans a single Value starting at *pos, advancing *pos past it. ok is
// false when no variant's reader recognized the leading byte or a nested
// scan failed partway through (buffer underflow, an unrecognized string
// escape, a malformed scalar): this is always a null result, never a Flaw.
func Read(buf *strbuf.StringBuffer, pos *int) (value.Value, bool) {
	c, atEnd := buf.SkipOverWhiteSpace(pos)
	if atEnd {
		return nil, false
	}

	switch {
	case c == '(':
		return readArray(buf, pos)
	case c == '{':
		return readMap(buf, pos)
	case c == '[':
		return readSet(buf, pos)
	case c == '"' || c == '\'':
		return readString(buf, pos)
	case c == '%':
		return readBlob(buf, pos)
	case c == '$':
		return readDateTime(buf, pos)
	case c == '@':
		return readAddress(buf, pos)
	case c == 't' || c == 'T' || c == 'f' || c == 'F':
		return readLogical(buf, pos)
	case c == '-' || c == '+' || isDigit(c):
		return readNumber(buf, pos)
	default:
		return nil, false
	}
}

// ConvertToValue reads every top-level Value out of buf. An empty buffer
// returns (nil, false). A single top-level Value is returned directly;
// more than one is wrapped in an Array.
func ConvertToValue(buf *strbuf.StringBuffer) (value.Value, bool) {
	pos := 0

	var vals []value.Value
	for {
		v, ok := Read(buf, &pos)
		if !ok {
			break
		}
		vals = append(vals, v)
	}

	if _, atEnd := buf.SkipOverWhiteSpace(&pos); !atEnd {
		// Trailing unparsable content after at least one good value is
		// still a failed conversion: the caller asked for the whole
		// buffer to be consumed.
		return nil, false
	}

	switch len(vals) {
	case 0:
		return nil, false
	case 1:
		return vals[0], true
	default:
		arr := value.NewArray()
		for _, v := range vals {
			arr.Append(v)
		}

		return arr, true
	}
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// isTerminator reports whether c may legally follow a scalar: whitespace,
// or any container end/separator character. End-of-buffer is checked
// separately by callers since it carries no byte to inspect.
func isTerminator(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	case ')', '(', '{', '}', '[', ']', ',', '>':
		return true
	default:
		return false
	}
}

// checkTerminator verifies that the byte at *pos (if any) is a legal
// terminator, without consuming it. Scalars call this after scanning their
// own content.
func checkTerminator(buf *strbuf.StringBuffer, pos int) bool {
	c, atEnd := buf.GetByte(pos)
	if atEnd {
		return true
	}

	return isTerminator(c)
}
