package value

import (
	"fmt"

	"github.com/nimo-project/nimo/format"
	"github.com/nimo-project/nimo/strbuf"
)

// DateTime holds a packed 32-bit value plus a date/time discriminator. Date
// and Time share one Go type since they differ only in packing/printing,
// not in wire layout (both are 4 trailing big-endian bytes under the Other
// family, Misc subtype).
type DateTime struct {
	packed uint32
	isDate bool
}

// NewDate constructs a DateTime holding a packed date.
func NewDate(year, month, day int) *DateTime {
	return &DateTime{packed: PackDate(year, month, day), isDate: true}
}

// NewTime constructs a DateTime holding a packed time.
func NewTime(hour, minute, second, millisecond int) *DateTime {
	return &DateTime{packed: PackTime(hour, minute, second, millisecond), isDate: false}
}

// NewDateTimeFromPacked wraps an already-packed value, as read off the wire.
func NewDateTimeFromPacked(packed uint32, isDate bool) *DateTime {
	return &DateTime{packed: packed, isDate: isDate}
}

// Packed returns the packed 32-bit value.
func (d *DateTime) Packed() uint32 { return d.packed }

// IsDate reports whether this DateTime is a Date (vs a Time).
func (d *DateTime) IsDate() bool { return d.isDate }

func (d *DateTime) EnumKind() format.EnumKind {
	if d.isDate {
		return format.KindDate
	}

	return format.KindTime
}

func (d *DateTime) TypeTag() format.ExpectedType { return format.ExpectedOther }

func (d *DateTime) DeeplyEqual(other Value) bool {
	o, ok := other.(*DateTime)
	return ok && o.isDate == d.isDate && o.packed == d.packed
}

func (d *DateTime) PrintTo(buf *strbuf.StringBuffer, squished bool) {
	if d.isDate {
		year, month, day := UnpackDate(d.packed)
		buf.AddString(fmt.Sprintf("$D%04d-%02d-%02d", year, month, day))

		return
	}

	hour, minute, second, millisecond := UnpackTime(d.packed)
	buf.AddString(fmt.Sprintf("$T%02d:%02d:%02d.%03d", hour, minute, second, millisecond))
}

func (d *DateTime) PrintJSONTo(buf *strbuf.StringBuffer, asKey bool, squished bool) {
	buf.AppendChar('"')
	d.PrintTo(buf, true)
	buf.AppendChar('"')
}

// AsDateTime downcasts v to *DateTime.
func AsDateTime(v Value) (*DateTime, bool) { d, ok := v.(*DateTime); return d, ok }

// PackDate packs a calendar date into the wire's 32-bit representation.
// The packing is deliberately inexact: it preserves round-trip fidelity for
// the nominal range (years 1..10000, months 1..12, days 1..31) but does not
// reject calendar-impossible combinations such as February 31st — validation
// of calendar correctness is left to callers, exactly as in the source
// format this mirrors.
func PackDate(year, month, day int) uint32 {
	return uint32((year-1)*12+(month-1))*31 + uint32(day-1)
}

// UnpackDate is PackDate's inverse.
func UnpackDate(packed uint32) (year, month, day int) {
	day = int(packed%31) + 1
	rem := packed / 31
	month = int(rem%12) + 1
	year = int(rem/12) + 1

	return year, month, day
}

// PackTime packs a time-of-day into the wire's 32-bit representation.
func PackTime(hour, minute, second, millisecond int) uint32 {
	return uint32(((hour*60+minute)*60+second)*1000 + millisecond)
}

// UnpackTime is PackTime's inverse.
//
// The source this is modeled on divides by 1000*160 to recover the minute
// field, which does not invert PackTime's (hour*60+minute)*60 construction
// and is almost certainly a typo for 1000*60. Rather than carry the bug
// forward, UnpackTime uses the divisor consistent with PackTime and is
// covered by a round-trip test across the nominal range.
func UnpackTime(packed uint32) (hour, minute, second, millisecond int) {
	millisecond = int(packed % 1000)
	rem := packed / 1000
	second = int(rem % 60)
	rem /= 60
	minute = int(rem % 60)
	hour = int(rem / 60)

	return hour, minute, second, millisecond
}
