package value

import (
	"math/rand"

	"github.com/nimo-project/nimo/format"
	"github.com/nimo-project/nimo/strbuf"
)

// Array is an ordered sequence of Values with no key-kind constraint.
type Array struct {
	elems []Value
}

// NewArray constructs an empty Array.
func NewArray() *Array { return &Array{} }

// Append adds v as the new last element.
func (a *Array) Append(v Value) { a.elems = append(a.elems, v) }

// Len returns the number of elements.
func (a *Array) Len() int { return len(a.elems) }

// At returns the element at index i.
func (a *Array) At(i int) Value { return a.elems[i] }

// Elements returns the backing slice. Callers must not mutate it.
func (a *Array) Elements() []Value { return a.elems }

// Random returns a uniformly chosen element, taking an explicit RNG rather
// than a process-global singleton (per the concurrency model's guidance on
// exposing shared RNG state as an explicit parameter).
func (a *Array) Random(r *rand.Rand) (Value, bool) {
	if len(a.elems) == 0 {
		return nil, false
	}

	return a.elems[r.Intn(len(a.elems))], true
}

func (a *Array) EnumKind() format.EnumKind    { return format.KindNotEnumerable }
func (a *Array) TypeTag() format.ExpectedType { return format.ExpectedOther }

func (a *Array) DeeplyEqual(other Value) bool {
	o, ok := other.(*Array)
	if !ok || len(o.elems) != len(a.elems) {
		return false
	}
	for i := range a.elems {
		if !a.elems[i].DeeplyEqual(o.elems[i]) {
			return false
		}
	}

	return true
}

func (a *Array) PrintTo(buf *strbuf.StringBuffer, squished bool) {
	buf.AppendChar('(')
	for i, e := range a.elems {
		if i > 0 || !squished {
			buf.AppendChar(' ')
		}
		e.PrintTo(buf, squished)
	}
	if !squished || len(a.elems) > 0 {
		buf.AppendChar(' ')
	}
	buf.AppendChar(')')
}

func (a *Array) PrintJSONTo(buf *strbuf.StringBuffer, asKey bool, squished bool) {
	buf.AppendChar('[')
	for i, e := range a.elems {
		if i > 0 {
			buf.AppendChar(',')
		}
		e.PrintJSONTo(buf, false, squished)
	}
	buf.AppendChar(']')
}

// AsArray downcasts v to *Array.
func AsArray(v Value) (*Array, bool) { a, ok := v.(*Array); return a, ok }

// Set is an ordered set of Values, all sharing one enum kind fixed at first
// insertion.
type Set struct {
	elems   []Value
	keyKind format.EnumKind
}

// NewSet constructs an empty Set.
func NewSet() *Set { return &Set{keyKind: format.KindUnknown} }

// KeyKind returns the enum kind fixed at first insertion, or KindUnknown if
// the Set is still empty.
func (s *Set) KeyKind() format.EnumKind { return s.keyKind }

// Len returns the number of elements.
func (s *Set) Len() int { return len(s.elems) }

// Elements returns the backing slice in insertion order. Callers must not
// mutate it.
func (s *Set) Elements() []Value { return s.elems }

func (s *Set) contains(v Value) bool {
	for _, e := range s.elems {
		if e.DeeplyEqual(v) {
			return true
		}
	}

	return false
}

// Insert adds v if the Set is empty or v's enum kind matches the Set's
// fixed key kind, and no deeply-equal element is already present. A
// kind mismatch or a duplicate leaves the Set unchanged and returns false;
// no partial mutation ever occurs.
func (s *Set) Insert(v Value) bool {
	if s.keyKind != format.KindUnknown && v.EnumKind() != s.keyKind {
		return false
	}
	if s.contains(v) {
		return false
	}

	if s.keyKind == format.KindUnknown {
		s.keyKind = v.EnumKind()
	}
	s.elems = append(s.elems, v)

	return true
}

// Random returns a uniformly chosen element.
func (s *Set) Random(r *rand.Rand) (Value, bool) {
	if len(s.elems) == 0 {
		return nil, false
	}

	return s.elems[r.Intn(len(s.elems))], true
}

func (s *Set) EnumKind() format.EnumKind    { return format.KindNotEnumerable }
func (s *Set) TypeTag() format.ExpectedType { return format.ExpectedOther }

func (s *Set) DeeplyEqual(other Value) bool {
	o, ok := other.(*Set)
	if !ok || len(o.elems) != len(s.elems) {
		return false
	}
	for i := range s.elems {
		if !s.elems[i].DeeplyEqual(o.elems[i]) {
			return false
		}
	}

	return true
}

func (s *Set) PrintTo(buf *strbuf.StringBuffer, squished bool) {
	buf.AppendChar('[')
	for i, e := range s.elems {
		if i > 0 || !squished {
			buf.AppendChar(' ')
		}
		e.PrintTo(buf, squished)
	}
	if !squished || len(s.elems) > 0 {
		buf.AppendChar(' ')
	}
	buf.AppendChar(']')
}

func (s *Set) PrintJSONTo(buf *strbuf.StringBuffer, asKey bool, squished bool) {
	buf.AppendChar('[')
	for i, e := range s.elems {
		if i > 0 {
			buf.AppendChar(',')
		}
		e.PrintJSONTo(buf, false, squished)
	}
	buf.AppendChar(']')
}

// AsSet downcasts v to *Set.
func AsSet(v Value) (*Set, bool) { s, ok := v.(*Set); return s, ok }

// mapEntry is one ordered key/value pair in a Map.
type mapEntry struct {
	key, val Value
}

// Map is an ordered mapping from Value to Value whose keys share one enum
// kind fixed at first insertion.
type Map struct {
	entries []mapEntry
	keyKind format.EnumKind
}

// NewMap constructs an empty Map.
func NewMap() *Map { return &Map{keyKind: format.KindUnknown} }

// KeyKind returns the enum kind fixed at first insertion, or KindUnknown if
// the Map is still empty.
func (m *Map) KeyKind() format.EnumKind { return m.keyKind }

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.entries) }

// Entries returns the key/value pairs in insertion order.
func (m *Map) Entries() (keys, vals []Value) {
	keys = make([]Value, len(m.entries))
	vals = make([]Value, len(m.entries))
	for i, e := range m.entries {
		keys[i] = e.key
		vals[i] = e.val
	}

	return keys, vals
}

func (m *Map) indexOf(key Value) int {
	for i, e := range m.entries {
		if e.key.DeeplyEqual(key) {
			return i
		}
	}

	return -1
}

// Get looks up the value for key.
func (m *Map) Get(key Value) (Value, bool) {
	if i := m.indexOf(key); i >= 0 {
		return m.entries[i].val, true
	}

	return nil, false
}

// Insert adds a key/value pair if key's enum kind matches the Map's fixed
// key kind (or the Map is still empty). A second insertion of an
// already-present key retains the first entry's value, per the
// documented "first write wins" behavior, and returns false. A kind
// mismatch likewise leaves the Map unchanged and returns false.
func (m *Map) Insert(key, val Value) bool {
	if m.keyKind != format.KindUnknown && key.EnumKind() != m.keyKind {
		return false
	}
	if m.indexOf(key) >= 0 {
		return false
	}

	if m.keyKind == format.KindUnknown {
		m.keyKind = key.EnumKind()
	}
	m.entries = append(m.entries, mapEntry{key: key, val: val})

	return true
}

// Random returns a uniformly chosen (key, value) pair.
func (m *Map) Random(r *rand.Rand) (key, val Value, ok bool) {
	if len(m.entries) == 0 {
		return nil, nil, false
	}
	e := m.entries[r.Intn(len(m.entries))]

	return e.key, e.val, true
}

func (m *Map) EnumKind() format.EnumKind    { return format.KindNotEnumerable }
func (m *Map) TypeTag() format.ExpectedType { return format.ExpectedOther }

func (m *Map) DeeplyEqual(other Value) bool {
	o, ok := other.(*Map)
	if !ok || len(o.entries) != len(m.entries) {
		return false
	}
	for i := range m.entries {
		if !m.entries[i].key.DeeplyEqual(o.entries[i].key) || !m.entries[i].val.DeeplyEqual(o.entries[i].val) {
			return false
		}
	}

	return true
}

func (m *Map) PrintTo(buf *strbuf.StringBuffer, squished bool) {
	buf.AppendChar('{')
	for i, e := range m.entries {
		if i > 0 || !squished {
			buf.AppendChar(' ')
		}
		e.key.PrintTo(buf, squished)
		buf.AppendChar(' ')
		buf.AppendChar('>')
		buf.AppendChar(' ')
		e.val.PrintTo(buf, squished)
		if i < len(m.entries)-1 {
			buf.AppendChar(' ')
			buf.AppendChar(',')
		}
	}
	if !squished || len(m.entries) > 0 {
		buf.AppendChar(' ')
	}
	buf.AppendChar('}')
}

func (m *Map) PrintJSONTo(buf *strbuf.StringBuffer, asKey bool, squished bool) {
	buf.AppendChar('{')
	for i, e := range m.entries {
		if i > 0 {
			buf.AppendChar(',')
		}
		e.key.PrintJSONTo(buf, true, squished)
		buf.AppendChar(':')
		e.val.PrintJSONTo(buf, false, squished)
	}
	buf.AppendChar('}')
}

// AsMap downcasts v to *Map.
func AsMap(v Value) (*Map, bool) { m, ok := v.(*Map); return m, ok }
