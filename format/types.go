// Package format defines the small enumerations shared across the codec
// packages: the kind tag attached to every Value, the compact type tag used
// by the binary wire format, and the compression identifiers used by the
// registry transport layer.
package format

type (
	// EnumKind identifies the logical kind of a Value for ordering and
	// container key-kind enforcement purposes. It is coarser than
	// ExpectedType: Integer and Double share no EnumKind distinction from
	// each other's container semantics the way ExpectedType does, but
	// Address/DateTime/Logical each get their own kind since they compare
	// and order differently from plain Integers and Strings.
	EnumKind uint8

	// ExpectedType is the 2-bit family tag packed into every wire lead byte
	// (bits 7..6). It groups Values into the four wire-format families.
	ExpectedType uint8

	// CompressionType identifies the compression algorithm used for a
	// registry transport payload. Unrelated to the Value/wire codec, which
	// never compresses.
	CompressionType uint8
)

const (
	KindUnknown EnumKind = iota
	KindAddress
	KindLogical
	KindInteger
	KindString
	KindDate
	KindTime
	// KindNotEnumerable covers every variant whose instances cannot serve
	// as homogeneous container keys on their own terms: Double, Blob,
	// Array, Map, Set and Flaw all report this kind.
	KindNotEnumerable
)

func (k EnumKind) String() string {
	switch k {
	case KindAddress:
		return "Address"
	case KindLogical:
		return "Logical"
	case KindInteger:
		return "Integer"
	case KindString:
		return "String"
	case KindDate:
		return "Date"
	case KindTime:
		return "Time"
	case KindNotEnumerable:
		return "NotEnumerable"
	default:
		return "Unknown"
	}
}

const (
	// ExpectedInteger is family 00: Integer, in its short (inline) and long
	// (explicit byte count) forms.
	ExpectedInteger ExpectedType = 0x0
	// ExpectedDouble is family 01: Double.
	ExpectedDouble ExpectedType = 0x1
	// ExpectedStringOrBlob is family 10: String and Blob variants carrying
	// an explicit byte length.
	ExpectedStringOrBlob ExpectedType = 0x2
	// ExpectedOther is family 11: Logical, Address, DateTime, containers
	// (Array, Map, Set), Flaw, and message envelope markers.
	ExpectedOther ExpectedType = 0x3
)

func (e ExpectedType) String() string {
	switch e {
	case ExpectedInteger:
		return "Integer"
	case ExpectedDouble:
		return "Double"
	case ExpectedStringOrBlob:
		return "StringOrBlob"
	case ExpectedOther:
		return "Other"
	default:
		return "Unknown"
	}
}

const (
	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
