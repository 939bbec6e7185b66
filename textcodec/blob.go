package textcodec

import (
	"github.com/nimo-project/nimo/strbuf"
	"github.com/nimo-project/nimo/value"
)

func hexDigit(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	default:
		return 0, false
	}
}

// readBlob scans "%<decimal-length>%<hex-digits>%".
func readBlob(buf *strbuf.StringBuffer, pos *int) (value.Value, bool) {
	start := *pos
	if !expect(buf, pos, '%') {
		return nil, false
	}

	n, ok := readVarDigits(buf, pos)
	if !ok || !expect(buf, pos, '%') {
		*pos = start

		return nil, false
	}

	data := make([]byte, 0, n)
	for i := 0; i < n; i++ {
		hi, atEnd := buf.GetByte(*pos)
		if atEnd {
			*pos = start

			return nil, false
		}
		hiVal, hiOK := hexDigit(hi)

		lo, atEnd2 := buf.GetByte(*pos + 1)
		if atEnd2 {
			*pos = start

			return nil, false
		}
		loVal, loOK := hexDigit(lo)

		if !hiOK || !loOK {
			*pos = start

			return nil, false
		}
		*pos += 2
		data = append(data, byte(hiVal<<4|loVal))
	}

	if !expect(buf, pos, '%') {
		*pos = start

		return nil, false
	}
	if !checkTerminator(buf, *pos) {
		*pos = start

		return nil, false
	}

	return value.NewBlob(data), true
}
