package value

import (
	"github.com/nimo-project/nimo/format"
	"github.com/nimo-project/nimo/strbuf"
)

// Logical is a boolean Value.
type Logical struct{ v bool }

// NewLogical constructs a Logical Value.
func NewLogical(v bool) *Logical { return &Logical{v: v} }

// Bool returns the underlying boolean.
func (l *Logical) Bool() bool { return l.v }

func (l *Logical) EnumKind() format.EnumKind    { return format.KindLogical }
func (l *Logical) TypeTag() format.ExpectedType { return format.ExpectedOther }

func (l *Logical) DeeplyEqual(other Value) bool {
	o, ok := other.(*Logical)
	return ok && o.v == l.v
}

func (l *Logical) PrintTo(buf *strbuf.StringBuffer, squished bool) { buf.AddBool(l.v) }

func (l *Logical) PrintJSONTo(buf *strbuf.StringBuffer, asKey bool, squished bool) {
	if asKey {
		buf.AddQuotedString(boolString(l.v))
		return
	}
	buf.AddBool(l.v)
}

func boolString(v bool) string {
	if v {
		return "true"
	}

	return "false"
}

// Integer is a signed 64-bit Value.
type Integer struct{ v int64 }

// NewInteger constructs an Integer Value.
func NewInteger(v int64) *Integer { return &Integer{v: v} }

// Int64 returns the underlying value.
func (i *Integer) Int64() int64 { return i.v }

func (i *Integer) EnumKind() format.EnumKind    { return format.KindInteger }
func (i *Integer) TypeTag() format.ExpectedType { return format.ExpectedInteger }

func (i *Integer) DeeplyEqual(other Value) bool {
	o, ok := other.(*Integer)
	return ok && o.v == i.v
}

func (i *Integer) PrintTo(buf *strbuf.StringBuffer, squished bool) { buf.AddLong(i.v) }

func (i *Integer) PrintJSONTo(buf *strbuf.StringBuffer, asKey bool, squished bool) {
	if asKey {
		buf.AppendChar('"')
		buf.AddLong(i.v)
		buf.AppendChar('"')
		return
	}
	buf.AddLong(i.v)
}

// Double is an IEEE-754 64-bit Value.
type Double struct{ v float64 }

// NewDouble constructs a Double Value.
func NewDouble(v float64) *Double { return &Double{v: v} }

// Float64 returns the underlying value.
func (d *Double) Float64() float64 { return d.v }

func (d *Double) EnumKind() format.EnumKind    { return format.KindNotEnumerable }
func (d *Double) TypeTag() format.ExpectedType { return format.ExpectedDouble }

func (d *Double) DeeplyEqual(other Value) bool {
	o, ok := other.(*Double)
	return ok && o.v == d.v
}

func (d *Double) PrintTo(buf *strbuf.StringBuffer, squished bool) { buf.AddDouble(d.v) }

func (d *Double) PrintJSONTo(buf *strbuf.StringBuffer, asKey bool, squished bool) {
	if asKey {
		buf.AppendChar('"')
		buf.AddDouble(d.v)
		buf.AppendChar('"')
		return
	}
	buf.AddDouble(d.v)
}

// String is a byte-sequence Value with no length restriction.
type String struct{ v string }

// NewString constructs a String Value.
func NewString(v string) *String { return &String{v: v} }

// String returns the underlying text.
func (s *String) String() string { return s.v }

func (s *String) EnumKind() format.EnumKind    { return format.KindString }
func (s *String) TypeTag() format.ExpectedType { return format.ExpectedStringOrBlob }

func (s *String) DeeplyEqual(other Value) bool {
	o, ok := other.(*String)
	return ok && o.v == s.v
}

func (s *String) PrintTo(buf *strbuf.StringBuffer, squished bool) { buf.AddQuotedString(s.v) }

func (s *String) PrintJSONTo(buf *strbuf.StringBuffer, asKey bool, squished bool) {
	buf.AddQuotedString(s.v)
}

// Blob is an opaque byte sequence Value.
type Blob struct{ v []byte }

// NewBlob constructs a Blob Value. data is copied.
func NewBlob(data []byte) *Blob {
	cp := make([]byte, len(data))
	copy(cp, data)

	return &Blob{v: cp}
}

// Bytes returns the underlying bytes.
func (b *Blob) Bytes() []byte { return b.v }

func (b *Blob) EnumKind() format.EnumKind    { return format.KindNotEnumerable }
func (b *Blob) TypeTag() format.ExpectedType { return format.ExpectedStringOrBlob }

func (b *Blob) DeeplyEqual(other Value) bool {
	o, ok := other.(*Blob)
	return ok && compareBytes(o.v, b.v) == 0
}

func (b *Blob) PrintTo(buf *strbuf.StringBuffer, squished bool) { buf.AddBlob(b.v) }

func (b *Blob) PrintJSONTo(buf *strbuf.StringBuffer, asKey bool, squished bool) {
	buf.AddBlob(b.v)
}

// Address is an unsigned 32-bit IPv4 address Value.
type Address struct{ v uint32 }

// NewAddress constructs an Address Value from a packed network-order uint32.
func NewAddress(v uint32) *Address { return &Address{v: v} }

// Uint32 returns the packed address.
func (a *Address) Uint32() uint32 { return a.v }

func (a *Address) EnumKind() format.EnumKind    { return format.KindAddress }
func (a *Address) TypeTag() format.ExpectedType { return format.ExpectedOther }

func (a *Address) DeeplyEqual(other Value) bool {
	o, ok := other.(*Address)
	return ok && o.v == a.v
}

func (a *Address) PrintTo(buf *strbuf.StringBuffer, squished bool) {
	buf.AppendChar('@')
	buf.AddLong(int64((a.v >> 24) & 0xFF))
	buf.AppendChar('.')
	buf.AddLong(int64((a.v >> 16) & 0xFF))
	buf.AppendChar('.')
	buf.AddLong(int64((a.v >> 8) & 0xFF))
	buf.AppendChar('.')
	buf.AddLong(int64(a.v & 0xFF))
}

func (a *Address) PrintJSONTo(buf *strbuf.StringBuffer, asKey bool, squished bool) {
	buf.AppendChar('"')
	a.PrintTo(buf, true)
	buf.AppendChar('"')
}

// AsLogical downcasts v to *Logical.
func AsLogical(v Value) (*Logical, bool) { l, ok := v.(*Logical); return l, ok }

// AsInteger downcasts v to *Integer.
func AsInteger(v Value) (*Integer, bool) { i, ok := v.(*Integer); return i, ok }

// AsDouble downcasts v to *Double.
func AsDouble(v Value) (*Double, bool) { d, ok := v.(*Double); return d, ok }

// AsString downcasts v to *String.
func AsString(v Value) (*String, bool) { s, ok := v.(*String); return s, ok }

// AsBlob downcasts v to *Blob.
func AsBlob(v Value) (*Blob, bool) { b, ok := v.(*Blob); return b, ok }

// AsAddress downcasts v to *Address.
func AsAddress(v Value) (*Address, bool) { a, ok := v.(*Address); return a, ok }
