package textcodec

import (
	"strconv"

	"github.com/nimo-project/nimo/strbuf"
	"github.com/nimo-project/nimo/value"
)

// readNumber scans a run of digits, an optional leading sign, an optional
// '.' fraction and an optional exponent, then parses it as an Integer or a
// Double depending on whether it contained a decimal point or exponent.
func readNumber(buf *strbuf.StringBuffer, pos *int) (value.Value, bool) {
	start := *pos
	isFloat := false

	c, atEnd := buf.GetByte(*pos)
	if !atEnd && (c == '-' || c == '+') {
		*pos++
	}

	sawDigit := false
	for {
		c, atEnd := buf.GetByte(*pos)
		if atEnd {
			break
		}
		switch {
		case isDigit(c):
			sawDigit = true
			*pos++
		case c == '.' && !isFloat:
			isFloat = true
			*pos++
		case (c == 'e' || c == 'E') && sawDigit:
			isFloat = true
			*pos++
			if nc, atEndExp := buf.GetByte(*pos); !atEndExp && (nc == '-' || nc == '+') {
				*pos++
			}
		default:
			goto done
		}
	}

done:
	if !sawDigit {
		*pos = start

		return nil, false
	}
	if !checkTerminator(buf, *pos) {
		*pos = start

		return nil, false
	}

	text := string(buf.Slice(start, *pos))

	if isFloat {
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			*pos = start

			return nil, false
		}

		return value.NewDouble(f), true
	}

	i, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		*pos = start

		return nil, false
	}

	return value.NewInteger(i), true
}

// readLogical scans "true" or "false", case-insensitive only in the lead
// character.
func readLogical(buf *strbuf.StringBuffer, pos *int) (value.Value, bool) {
	lead, _ := buf.GetByte(*pos)
	var rest string
	var result bool
	switch lead {
	case 't', 'T':
		rest = "rue"
		result = true
	case 'f', 'F':
		rest = "alse"
		result = false
	default:
		return nil, false
	}

	p := *pos + 1
	for i := 0; i < len(rest); i++ {
		c, atEnd := buf.GetByte(p)
		if atEnd || c != rest[i] {
			return nil, false
		}
		p++
	}

	if !checkTerminator(buf, p) {
		return nil, false
	}

	*pos = p

	return value.NewLogical(result), true
}

// readDigits scans exactly n decimal digits and returns their value.
func readDigits(buf *strbuf.StringBuffer, pos *int, n int) (int, bool) {
	v := 0
	for i := 0; i < n; i++ {
		c, atEnd := buf.GetByte(*pos)
		if atEnd || !isDigit(c) {
			return 0, false
		}
		v = v*10 + int(c-'0')
		*pos++
	}

	return v, true
}

// readVarDigits scans one or more decimal digits up to a stopping byte
// (exclusive) and returns their value. Used for the DateTime year field,
// whose width is not fixed (nominal range 1..10000).
func readVarDigits(buf *strbuf.StringBuffer, pos *int) (int, bool) {
	start := *pos
	v := 0
	for {
		c, atEnd := buf.GetByte(*pos)
		if atEnd || !isDigit(c) {
			break
		}
		v = v*10 + int(c-'0')
		*pos++
	}

	return v, *pos > start
}

func expect(buf *strbuf.StringBuffer, pos *int, want byte) bool {
	c, atEnd := buf.GetByte(*pos)
	if atEnd || c != want {
		return false
	}
	*pos++

	return true
}

// readDateTime scans "$D<yyyy>-<mm>-<dd>" or "$T<hh>:<mm>:<ss>.<mmm>".
func readDateTime(buf *strbuf.StringBuffer, pos *int) (value.Value, bool) {
	start := *pos
	if !expect(buf, pos, '$') {
		return nil, false
	}

	kind, atEnd := buf.GetByte(*pos)
	if atEnd {
		*pos = start

		return nil, false
	}
	*pos++

	switch kind {
	case 'D':
		year, ok := readVarDigits(buf, pos)
		if !ok || !expect(buf, pos, '-') {
			*pos = start

			return nil, false
		}
		month, ok := readDigits(buf, pos, 2)
		if !ok || !expect(buf, pos, '-') {
			*pos = start

			return nil, false
		}
		day, ok := readDigits(buf, pos, 2)
		if !ok || !checkTerminator(buf, *pos) {
			*pos = start

			return nil, false
		}

		return value.NewDate(year, month, day), true

	case 'T':
		hour, ok := readDigits(buf, pos, 2)
		if !ok || !expect(buf, pos, ':') {
			*pos = start

			return nil, false
		}
		minute, ok := readDigits(buf, pos, 2)
		if !ok || !expect(buf, pos, ':') {
			*pos = start

			return nil, false
		}
		second, ok := readDigits(buf, pos, 2)
		if !ok || !expect(buf, pos, '.') {
			*pos = start

			return nil, false
		}
		millis, ok := readDigits(buf, pos, 3)
		if !ok || !checkTerminator(buf, *pos) {
			*pos = start

			return nil, false
		}

		return value.NewTime(hour, minute, second, millis), true

	default:
		*pos = start

		return nil, false
	}
}

// readAddress scans "@<octet>.<octet>.<octet>.<octet>".
func readAddress(buf *strbuf.StringBuffer, pos *int) (value.Value, bool) {
	start := *pos
	if !expect(buf, pos, '@') {
		return nil, false
	}

	var octets [4]int
	for i := 0; i < 4; i++ {
		if i > 0 && !expect(buf, pos, '.') {
			*pos = start

			return nil, false
		}

		n, ok := readOctet(buf, pos)
		if !ok {
			*pos = start

			return nil, false
		}
		octets[i] = n
	}

	if !checkTerminator(buf, *pos) {
		*pos = start

		return nil, false
	}

	packed := uint32(octets[0])<<24 | uint32(octets[1])<<16 | uint32(octets[2])<<8 | uint32(octets[3])

	return value.NewAddress(packed), true
}

func readOctet(buf *strbuf.StringBuffer, pos *int) (int, bool) {
	start := *pos
	v := 0
	digits := 0
	for digits < 3 {
		c, atEnd := buf.GetByte(*pos)
		if atEnd || !isDigit(c) {
			break
		}
		v = v*10 + int(c-'0')
		*pos++
		digits++
	}
	if digits == 0 || v > 255 {
		*pos = start

		return 0, false
	}

	return v, true
}
