package bdate

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/username/bizdelta/pkg/reldelta"
)

// Opt is a normalized business field. The zero value is unset, which is
// distinct from a field set to zero.
type Opt struct {
	v  int
	ok bool
}

// Some returns a field set to v.
func Some(v int) Opt {
	return Opt{v: v, ok: true}
}

func (o Opt) Get() (int, bool) { return o.v, o.ok }
func (o Opt) IsSet() bool      { return o.ok }

// Value returns the field, or 0 when unset.
func (o Opt) Value() int { return o.v }

// NonZero reports whether the field is set to a nonzero value.
func (o Opt) NonZero() bool { return o.ok && o.v != 0 }

func (o Opt) String() string {
	if !o.ok {
		return "unset"
	}
	return strconv.Itoa(o.v)
}

func (o Opt) neg() Opt {
	if !o.ok {
		return o
	}
	return Some(-o.v)
}

func (o Opt) scale(f float64) Opt {
	if !o.ok {
		return o
	}
	return Some(reldelta.Trunc(o.v, f))
}

// Magnitude is a caller supplied business amount, possibly fractional. The
// zero value means the amount was omitted.
type Magnitude struct {
	v  float64
	ok bool
}

// Amount returns a supplied magnitude.
func Amount(v float64) Magnitude {
	return Magnitude{v: v, ok: true}
}

func (m Magnitude) IsSet() bool     { return m.ok }
func (m Magnitude) Value() float64 { return m.v }

func (m Magnitude) fractional() bool {
	return m.ok && m.v != math.Trunc(m.v)
}

// maxMagnitude bounds amounts so their whole part fits in an int.
const maxMagnitude = 1 << 63

func (m Magnitude) valid() bool {
	return !m.ok || (!math.IsNaN(m.v) && math.Abs(m.v) < maxMagnitude)
}

// Magnitudes are the inputs of FromMagnitudes.
type Magnitudes struct {
	BDays    Magnitude
	BHours   Magnitude
	BMinutes Magnitude
	BSeconds Magnitude
	Linear   reldelta.Delta
}

// carry splits from into whole units and pushes the fractional remainder,
// multiplied by factor, into the next smaller unit. Fractions are measured
// from the floor, so -1.5 becomes -2 whole units plus 0.5 carried. A whole
// part of zero leaves the field unset.
func carry(from, into Magnitude, factor float64, truncate bool) (Opt, Magnitude) {
	if !from.ok {
		return Opt{}, into
	}
	if !from.fractional() {
		return Some(int(from.v)), into
	}
	whole := math.Floor(from.v)
	extra := (from.v - whole) * factor
	if truncate {
		extra = math.Trunc(extra)
	}
	into = Amount(into.v + extra)
	if whole == 0 {
		return Opt{}, into
	}
	return Some(int(whole)), into
}

// CarryDays converts fractional business days into business hours using the
// length of one business day.
func CarryDays(days, hours Magnitude, span time.Duration) (Opt, Magnitude) {
	return carry(days, hours, span.Hours(), false)
}

// CarryHours converts fractional business hours into business minutes.
func CarryHours(hours, minutes Magnitude) (Opt, Magnitude) {
	return carry(hours, minutes, 60, false)
}

// CarryMinutes converts fractional business minutes into whole business
// seconds.
func CarryMinutes(minutes, seconds Magnitude) (Opt, Magnitude) {
	return carry(minutes, seconds, 60, true)
}

// WholeSeconds truncates business seconds toward zero.
func WholeSeconds(seconds Magnitude) Opt {
	if !seconds.ok {
		return Opt{}
	}
	return Some(int(seconds.v))
}

func checkMagnitude(name string, v Magnitude) error {
	if !v.valid() {
		return fmt.Errorf("%w: %s=%v", ErrInvalidMagnitude, name, v.v)
	}
	return nil
}

// normalize runs the carry chain days to hours to minutes to seconds. Every
// amount, including one grown by a carry, is checked before it becomes an
// int.
func normalize(m Magnitudes, span time.Duration) (days, hours, minutes, seconds Opt, err error) {
	for _, f := range []struct {
		name string
		v    Magnitude
	}{{"bdays", m.BDays}, {"bhours", m.BHours}, {"bminutes", m.BMinutes}, {"bseconds", m.BSeconds}} {
		if err = checkMagnitude(f.name, f.v); err != nil {
			return Opt{}, Opt{}, Opt{}, Opt{}, err
		}
	}
	bh, bm, bs := m.BHours, m.BMinutes, m.BSeconds
	days, bh = CarryDays(m.BDays, bh, span)
	if err = checkMagnitude("bhours", bh); err != nil {
		return Opt{}, Opt{}, Opt{}, Opt{}, err
	}
	hours, bm = CarryHours(bh, bm)
	if err = checkMagnitude("bminutes", bm); err != nil {
		return Opt{}, Opt{}, Opt{}, Opt{}, err
	}
	minutes, bs = CarryMinutes(bm, bs)
	if err = checkMagnitude("bseconds", bs); err != nil {
		return Opt{}, Opt{}, Opt{}, Opt{}, err
	}
	seconds = WholeSeconds(bs)
	return days, hours, minutes, seconds, nil
}
