package textcodec

import (
	"github.com/nimo-project/nimo/strbuf"
	"github.com/nimo-project/nimo/value"
)

// escapeState walks the backslash-escape grammar used to scan a quoted
// string back into bytes, one state per named escape form. Each state
// consumes exactly one byte and either resolves to a decoded byte,
// transitions to another state, or aborts the whole string scan on an
// unrecognized sequence.
type escapeState int

const (
	stateNone escapeState = iota
	stateSawEscape
	stateSawEscapeOctal1
	stateSawEscapeOctal2
	stateSawEscapeBigC
	stateSawEscapeBigCminus
	stateSawEscapeBigM
	stateSawEscapeBigMminus
	stateSawEscapeBigMminusEscape
	stateSawEscapeBigMminusEscapeBigC
	stateSawEscapeBigMminusEscapeBigCminus
)

// namedEscapes maps the single-character escape spellings (the ones with a
// bare letter in strbuf's canonicalControl table) back to their byte value.
var namedEscapes = map[byte]byte{
	'a': 0x07, 'b': 0x08, 't': 0x09, 'n': 0x0A,
	'v': 0x0B, 'f': 0x0C, 'r': 0x0D, 'e': 0x1B,
}

// controlValue implements the "\C-X" notation: the control code for X is
// its uppercase form's low 5 bits, the standard Emacs-style convention the
// canonicalControl table's "C-<letter>" spellings follow ('C-@' = 0x00,
// 'C-A' = 0x01, ... 'C-_' = 0x1F).
func controlValue(x byte) byte {
	if x >= 'a' && x <= 'z' {
		x -= 'a' - 'A'
	}

	return x & 0x1F
}

// readString scans a quoted string, auto-detecting its delimiter from the
// first byte, and runs the escape state machine over its payload. An
// unrecognized escape sequence aborts the entire scan and returns (nil,
// false) rather than a Flaw: this is a "no match" outcome, not a structural
// defect.
func readString(buf *strbuf.StringBuffer, pos *int) (value.Value, bool) {
	start := *pos
	delim, atEnd := buf.GetByte(*pos)
	if atEnd || (delim != '"' && delim != '\'') {
		return nil, false
	}
	p := *pos + 1

	var out []byte
	state := stateNone
	var metaPending bool // true once \M- has committed to setting the high bit
	var octalVal byte
	var octalDigits int

	for {
		c, end := buf.GetByte(p)
		if end {
			*pos = start

			return nil, false
		}
		p++

		switch state {
		case stateNone:
			switch {
			case c == delim:
				*pos = p
				if !checkTerminator(buf, *pos) {
					*pos = start

					return nil, false
				}

				return value.NewString(string(out)), true
			case c == '\\':
				state = stateSawEscape
			default:
				out = append(out, c)
			}

		case stateSawEscape:
			switch {
			case c == '\\':
				out = append(out, '\\')
				state = stateNone
			case c == '"' || c == '\'':
				out = append(out, c)
				state = stateNone
			case c >= '0' && c <= '7':
				octalVal = c - '0'
				octalDigits = 1
				state = stateSawEscapeOctal1
			case c == 'C':
				state = stateSawEscapeBigC
			case c == 'M':
				state = stateSawEscapeBigM
			default:
				if v, ok := namedEscapes[c]; ok {
					out = append(out, v)
					state = stateNone
				} else {
					*pos = start

					return nil, false
				}
			}

		case stateSawEscapeOctal1, stateSawEscapeOctal2:
			if c >= '0' && c <= '7' {
				octalVal = octalVal*8 + (c - '0')
				octalDigits++
				if state == stateSawEscapeOctal1 {
					state = stateSawEscapeOctal2

					continue
				}
				// Third digit: resolve. A bare (no "\M-") three-digit octal
				// escape always already carries the full byte value, e.g.
				// "\377" is meta-DEL (0xFF), "\242"/"\247" are meta-quotes.
				out = appendResolved(out, octalVal, metaPending)
				metaPending = false
				state = stateNone

				continue
			}
			// Fewer than 3 octal digits: resolve with what we have.
			out = appendResolved(out, octalVal, metaPending)
			metaPending = false
			state = stateNone
			p--

		case stateSawEscapeBigC:
			if c != '-' {
				*pos = start

				return nil, false
			}
			state = stateSawEscapeBigCminus

		case stateSawEscapeBigCminus:
			out = appendResolved(out, controlValue(c), metaPending)
			metaPending = false
			state = stateNone

		case stateSawEscapeBigM:
			if c != '-' {
				*pos = start

				return nil, false
			}
			state = stateSawEscapeBigMminus

		case stateSawEscapeBigMminus:
			switch {
			case c == '\\':
				metaPending = true
				state = stateSawEscapeBigMminusEscape
			case c >= '0' && c <= '7':
				// The delimiter-collision spelling ("\M-242" for a literal
				// double quote) writes its octal digits directly after
				// "\M-" with no intervening backslash.
				metaPending = true
				octalVal = c - '0'
				octalDigits = 1
				state = stateSawEscapeOctal1
			default:
				out = append(out, c|0x80)
				state = stateNone
			}

		case stateSawEscapeBigMminusEscape:
			switch {
			case c == 'C':
				state = stateSawEscapeBigMminusEscapeBigC
			case c >= '0' && c <= '7':
				// "\M-\377" (meta DEL) and friends spell their inner value
				// with a backslash before the octal digits, unlike the
				// bare-digit delimiter-collision spelling above.
				octalVal = c - '0'
				octalDigits = 1
				state = stateSawEscapeOctal1
			default:
				if v, ok := namedEscapes[c]; ok {
					out = appendResolved(out, v, metaPending)
					metaPending = false
					state = stateNone
				} else {
					*pos = start

					return nil, false
				}
			}

		case stateSawEscapeBigMminusEscapeBigC:
			if c != '-' {
				*pos = start

				return nil, false
			}
			state = stateSawEscapeBigMminusEscapeBigCminus

		case stateSawEscapeBigMminusEscapeBigCminus:
			out = append(out, controlValue(c)|0x80)
			metaPending = false
			state = stateNone

		default:
			*pos = start

			return nil, false
		}
	}
}

// appendResolved appends v, setting the high bit first if a preceding
// "\M-" committed to meta notation.
func appendResolved(out []byte, v byte, meta bool) []byte {
	if meta {
		return append(out, v|0x80)
	}

	return append(out, v)
}
