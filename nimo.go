// Package nimo provides convenient top-level wrappers around the typed-value
// codec: most callers only need EncodeMessage/DecodeMessage and
// EncodeText/DecodeText, never touching chunk, message, strbuf or wire
// directly.
//
// # Basic usage
//
// Building a value tree and sending it as a Message:
//
//	arr := value.NewArray()
//	arr.Append(value.NewInteger(1))
//	arr.Append(value.NewString("hello"))
//
//	data, err := nimo.EncodeMessage(arr)
//	// ... send data over a net.Conn ...
//
//	got, err := nimo.DecodeMessage(data)
//
// The textual form is equivalent and useful for config files, logs, and the
// registry's human-readable tooling:
//
//	text := nimo.EncodeText(arr, false)
//	got, ok := nimo.DecodeText(text)
package nimo

import (
	"fmt"

	"github.com/nimo-project/nimo/message"
	"github.com/nimo-project/nimo/strbuf"
	"github.com/nimo-project/nimo/textcodec"
	"github.com/nimo-project/nimo/value"
	"github.com/nimo-project/nimo/wire"
)

// EncodeMessage writes v as a complete binary Message (envelope + payload)
// and returns the resulting bytes.
func EncodeMessage(v value.Value) ([]byte, error) {
	m := message.New()
	m.Open()
	if err := wire.Write(m, v); err != nil {
		return nil, fmt.Errorf("nimo: encode message: %w", err)
	}
	m.Close()

	return m.Bytes(), nil
}

// DecodeMessage reads a single Value out of a complete binary Message. A
// malformed envelope or payload decodes to a *value.Flaw rather than
// returning an error; callers branch on value.AsFlaw the same way they
// would for any other structural defect. Input that ends before the start
// tag, the body or the end tag is complete returns an error instead.
func DecodeMessage(data []byte) (value.Value, error) {
	m := message.New()
	m.OpenForReadingBytes(data)
	defer m.Close()

	v, err := wire.Read(m)
	if err != nil {
		return nil, fmt.Errorf("nimo: decode message: %w", err)
	}

	return v, nil
}

// EncodeText renders v's canonical textual form. squished omits optional
// whitespace.
func EncodeText(v value.Value, squished bool) string {
	return textcodec.Print(v, squished)
}

// EncodeTextAsJSON renders v's JSON form.
func EncodeTextAsJSON(v value.Value, squished bool) string {
	return textcodec.PrintJSON(v, squished)
}

// DecodeText scans text for its top-level Value(s), wrapping multiple
// top-level values in an Array per strbuf.StringBuffer's documented
// convertToValue behavior. ok is false for an empty or unparsable buffer.
func DecodeText(text string) (value.Value, bool) {
	buf := strbuf.New()
	buf.AddString(text)

	return textcodec.ConvertToValue(buf)
}
