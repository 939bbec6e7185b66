// Package wire implements the self-delimiting binary codec (component F):
// encoding a value.Value tree into a message.Message and extracting it back.
// Every encoded Value begins with a lead byte whose top two bits select one
// of four families; the remaining six bits are family-specific, see the
// per-family constants below.
package wire

// Family is the two-bit top field of every lead byte.
type Family byte

const (
	familyInteger      Family = 0x00
	familyDouble       Family = 0x40
	familyStringOrBlob Family = 0x80
	familyOther        Family = 0xC0

	familyMask = 0xC0
)

// Integer family (0x00): bit 5 selects short (0) vs long (1) form.
const (
	intLongFlag  = 0x20
	intShortMask = 0x1F // bits 4..0, two's complement 5-bit value
	intLenMask   = 0x07 // bits 2..0 of the long form hold N-1
)

// Double family (0x40): bit 5 selects short-count (0) vs long-count (1).
const (
	dblLongFlag    = 0x20
	dblShortMask   = 0x1F // bits 4..0 hold K-1, K in 1..32
	dblLenMask     = 0x07 // bits 2..0 of the long form hold N-1
	dblMaxShortRun = 32
)

// String-or-Blob family (0x80): bit 5 selects String (0) vs Blob (1); bit 4
// selects short (0) vs long (1) length encoding.
const (
	strBlobFlag  = 0x20
	strLongFlag  = 0x10
	strShortMask = 0x0F // bits 3..0, length 0..15
	strLenMask   = 0x07 // bits 2..0 of the long form hold N-1
)

// Other family (0xC0): bits 5..4 select the sub-family.
const (
	subFamilyMisc       = 0x00
	subFamilyContStart  = 0x10
	subFamilyContEnd    = 0x20
	subFamilyEnvelope   = 0x30
	subFamilyMask       = 0x30
)

// Misc sub-family (bits 3..2 select variant).
const (
	miscLogical  = 0x00
	miscAddress  = 0x04
	miscDateTime = 0x08
	miscMask     = 0x0C

	miscLogicalTruthBit = 0x01
	miscDateTimeIsDate  = 0x02
)

// Container start/end sub-families (bits 3..2 select variant, bit 0 selects
// empty/non-empty).
const (
	contArray    = 0x00
	contMap      = 0x04
	contSet      = 0x08
	contMask     = 0x0C
	contNonEmpty = 0x01
)

// Message envelope sub-family: bit 3 selects start/end, bit 2 selects
// empty/non-empty (always non-empty in practice, a Message holds exactly
// one Value), bits 1..0 carry the expected-type tag.
const (
	envelopeEndBit   = 0x08
	envelopeEmptyBit = 0x04
	envelopeTypeMask = 0x03
)

// countBias is the constant subtracted from a container's element count (or
// added back when decoding) so that the smallest legal non-empty count
// — 1 — becomes the minimum short integer, -16: biased = count - 1 - 16.
const countBias = 17
