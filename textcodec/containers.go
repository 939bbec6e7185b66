package textcodec

import (
	"github.com/nimo-project/nimo/strbuf"
	"github.com/nimo-project/nimo/value"
)

// readArray scans "( elem0 elem1 ... )", already past the opening paren
// check performed by Read's dispatch (the '(' itself is consumed here).
func readArray(buf *strbuf.StringBuffer, pos *int) (value.Value, bool) {
	start := *pos
	*pos++ // consume '('

	arr := value.NewArray()
	for {
		c, atEnd := buf.SkipOverWhiteSpace(pos)
		if atEnd {
			*pos = start

			return nil, false
		}
		if c == ')' {
			*pos++

			return arr, true
		}

		elem, ok := Read(buf, pos)
		if !ok {
			*pos = start

			return nil, false
		}
		arr.Append(elem)
	}
}

// readSet scans "[ elem0 elem1 ... ]".
func readSet(buf *strbuf.StringBuffer, pos *int) (value.Value, bool) {
	start := *pos
	*pos++ // consume '['

	s := value.NewSet()
	for {
		c, atEnd := buf.SkipOverWhiteSpace(pos)
		if atEnd {
			*pos = start

			return nil, false
		}
		if c == ']' {
			*pos++

			return s, true
		}

		elem, ok := Read(buf, pos)
		if !ok {
			*pos = start

			return nil, false
		}
		s.Insert(elem) // key-kind mismatch or duplicate silently dropped
	}
}

// readMap scans "{ k0 > v0 , k1 > v1 , ... }". A comma between entries is
// accepted but not required once whitespace has separated the entries.
func readMap(buf *strbuf.StringBuffer, pos *int) (value.Value, bool) {
	start := *pos
	*pos++ // consume '{'

	m := value.NewMap()
	for {
		c, atEnd := buf.SkipOverWhiteSpace(pos)
		if atEnd {
			*pos = start

			return nil, false
		}
		if c == '}' {
			*pos++

			return m, true
		}

		key, ok := Read(buf, pos)
		if !ok {
			*pos = start

			return nil, false
		}

		c, atEnd = buf.SkipOverWhiteSpace(pos)
		if atEnd || c != '>' {
			*pos = start

			return nil, false
		}
		*pos++

		val, ok := Read(buf, pos)
		if !ok {
			*pos = start

			return nil, false
		}
		m.Insert(key, val) // key-kind mismatch or duplicate silently dropped

		if c, atEnd := buf.SkipOverWhiteSpace(pos); !atEnd && c == ',' {
			*pos++
		}
	}
}
