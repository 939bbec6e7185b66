package value

import (
	"fmt"

	"github.com/nimo-project/nimo/format"
	"github.com/nimo-project/nimo/strbuf"
)

// Flaw is a first-class Value carrying a structural-defect description and
// the byte offset where the defect was detected. It participates in the
// same interface as every other variant so container extractors can check
// for it without a separate error channel: see AsFlaw.
type Flaw struct {
	message string
	offset  int
}

// NewFlaw constructs a Flaw.
func NewFlaw(message string, offset int) *Flaw {
	return &Flaw{message: message, offset: offset}
}

// Message returns the defect description.
func (f *Flaw) Message() string { return f.message }

// Offset returns the byte offset where the defect was detected.
func (f *Flaw) Offset() int { return f.offset }

func (f *Flaw) Error() string {
	return fmt.Sprintf("%s (at offset %d)", f.message, f.offset)
}

func (f *Flaw) EnumKind() format.EnumKind    { return format.KindNotEnumerable }
func (f *Flaw) TypeTag() format.ExpectedType { return format.ExpectedOther }

func (f *Flaw) DeeplyEqual(other Value) bool {
	o, ok := other.(*Flaw)
	return ok && o.message == f.message && o.offset == f.offset
}

func (f *Flaw) PrintTo(buf *strbuf.StringBuffer, squished bool) {
	buf.AddString(f.Error())
}

func (f *Flaw) PrintJSONTo(buf *strbuf.StringBuffer, asKey bool, squished bool) {
	buf.AddQuotedString(f.Error())
}

// AsFlaw downcasts v to *Flaw. Container extractors call this to
// short-circuit on a structural defect encountered while decoding a child.
func AsFlaw(v Value) (*Flaw, bool) { fl, ok := v.(*Flaw); return fl, ok }
