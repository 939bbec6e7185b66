// Package value implements the typed-value sum type at the center of the
// codec: Logical, Integer, Double, String, Blob, Address, DateTime, Array,
// Map, Set and Flaw, plus the structural equality, three-valued ordering,
// and textual printing shared across all of them.
//
// Each variant is a concrete type implementing Value; there is no class
// hierarchy to walk, just a type switch or a type assertion where dispatch
// is needed.
package value

import (
	"github.com/nimo-project/nimo/format"
	"github.com/nimo-project/nimo/strbuf"
)

// Value is the sum type every variant implements. Downcasts use the AsXxx
// free functions rather than a method, matching the "pattern matching on
// the tag" idiom: a type assertion in Go plays the role a virtual
// asArray()/asMap()/... family would play in a class hierarchy.
type Value interface {
	// EnumKind returns the variant's fixed enumeration kind, used to
	// enforce key-type homogeneity in Map and Set.
	EnumKind() format.EnumKind

	// TypeTag returns the two-bit expected-type code used in the Message
	// envelope and the wire lead byte's family field.
	TypeTag() format.ExpectedType

	// DeeplyEqual reports structural equality: same variant, and for
	// containers, same size and element-wise deeply-equal children in
	// iteration order.
	DeeplyEqual(other Value) bool

	// PrintTo renders the canonical text form into buf. squished omits
	// optional whitespace.
	PrintTo(buf *strbuf.StringBuffer, squished bool)

	// PrintJSONTo renders the JSON form into buf. asKey is set when the
	// Value is being printed as a Map key (which must render as a quoted
	// string irrespective of its own kind).
	PrintJSONTo(buf *strbuf.StringBuffer, asKey bool, squished bool)
}

// Ordering is the three-valued result of a comparison predicate.
type Ordering int

const (
	OrdFalse Ordering = iota
	OrdTrue
	OrdIncomparable
)

func (o Ordering) String() string {
	switch o {
	case OrdTrue:
		return "true"
	case OrdFalse:
		return "false"
	default:
		return "incomparable"
	}
}

// Bool reports whether the ordering is definite, returning its truth value
// and whether it was comparable at all.
func (o Ordering) Bool() (result bool, comparable bool) {
	if o == OrdIncomparable {
		return false, false
	}

	return o == OrdTrue, true
}

// scalarCompare compares two non-container Values that are numerically or
// lexicographically ordered against each other. It returns ok=false for any
// pairing that has no natural order (e.g. a String against an Integer).
func scalarCompare(a, b Value) (cmp int, ok bool) {
	switch av := a.(type) {
	case *Integer:
		switch bv := b.(type) {
		case *Integer:
			return compareInt64(av.v, bv.v), true
		case *Double:
			return compareFloat64(float64(av.v), bv.v), true
		}
	case *Double:
		switch bv := b.(type) {
		case *Integer:
			return compareFloat64(av.v, float64(bv.v)), true
		case *Double:
			return compareFloat64(av.v, bv.v), true
		}
	case *String:
		if bv, ok := b.(*String); ok {
			return compareBytes([]byte(av.v), []byte(bv.v)), true
		}
	case *Blob:
		if bv, ok := b.(*Blob); ok {
			return compareBytes(av.v, bv.v), true
		}
	case *Address:
		if bv, ok := b.(*Address); ok {
			return compareUint32(av.v, bv.v), true
		}
	case *Logical:
		if bv, ok := b.(*Logical); ok {
			return compareBool(av.v, bv.v), true
		}
	case *DateTime:
		if bv, ok := b.(*DateTime); ok && av.isDate == bv.isDate {
			return compareUint32(av.packed, bv.packed), true
		}
	}

	return 0, false
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareUint32(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a && b:
		return -1
	default:
		return 1
	}
}

func compareBytes(a, b []byte) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}

			return 1
		}
	}

	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// predicate evaluates a comparison's truth for a single (cmp, ok) result.
type predicate func(cmp int) bool

// evalPredicate dispatches one ordering predicate over the variant pairing
// rules: a container lifts the predicate over its elements (its keys, for a
// Map) with AND, a scalar against a container flips the comparison around
// so the container side does the lifting, and scalar pairs with no natural
// order are incomparable.
func evalPredicate(a, b Value, pred predicate) Ordering {
	switch av := a.(type) {
	case *Array:
		// An empty Array compares false, not incomparable.
		if len(av.elems) == 0 {
			return OrdFalse
		}

		return liftOver(av.elems, b, pred)
	case *Set:
		return liftKeyed(av.keyKind, av.elems, b, pred)
	case *Map:
		keys := make([]Value, len(av.entries))
		for i, e := range av.entries {
			keys[i] = e.key
		}

		return liftKeyed(av.keyKind, keys, b, pred)
	}

	switch b.(type) {
	case *Array, *Set, *Map:
		// a < b for a container b reduces to b > a lifted over b's
		// elements, and likewise for the other three predicates.
		return evalPredicate(b, a, func(c int) bool { return pred(-c) })
	}

	cmp, ok := scalarCompare(a, b)
	if !ok {
		return OrdIncomparable
	}
	if pred(cmp) {
		return OrdTrue
	}

	return OrdFalse
}

// liftKeyed lifts a predicate over a Map's keys or a Set's elements. The
// comparison is only defined against a value of the container's fixed key
// kind: an empty container (key kind still Unknown) is incomparable, as is
// any other kind on the far side, another Map or Set included, since
// containers are NotEnumerable.
func liftKeyed(keyKind format.EnumKind, elems []Value, other Value, pred predicate) Ordering {
	if keyKind == format.KindUnknown || other.EnumKind() != keyKind {
		return OrdIncomparable
	}

	return liftOver(elems, other, pred)
}

// liftOver ANDs the predicate across every element, short-circuiting on the
// first incomparable or false result.
func liftOver(elems []Value, b Value, pred predicate) Ordering {
	for _, elem := range elems {
		if result := evalPredicate(elem, b, pred); result != OrdTrue {
			return result
		}
	}

	return OrdTrue
}

// LessThan evaluates a < b, lifting over container elements per
// evalPredicate's pairing rules.
func LessThan(a, b Value) Ordering { return evalPredicate(a, b, func(c int) bool { return c < 0 }) }

// LessOrEqual evaluates a <= b.
func LessOrEqual(a, b Value) Ordering { return evalPredicate(a, b, func(c int) bool { return c <= 0 }) }

// GreaterThan evaluates a > b.
func GreaterThan(a, b Value) Ordering { return evalPredicate(a, b, func(c int) bool { return c > 0 }) }

// GreaterOrEqual evaluates a >= b.
func GreaterOrEqual(a, b Value) Ordering {
	return evalPredicate(a, b, func(c int) bool { return c >= 0 })
}
