// Package bdate does calendar arithmetic in business time: whole business
// days, and business hours, minutes and seconds counted only inside a
// window of working hours on working days.
package bdate

import (
	"math"
	"strings"

	"github.com/username/bizdelta/pkg/reldelta"
)

// Delta is a calendar delta plus business-time fields. Business fields are
// applied before the calendar part, smallest unit first.
type Delta struct {
	Linear   reldelta.Delta
	BDays    Opt
	BHours   Opt
	BMinutes Opt
	BSeconds Opt

	window *Window
}

// FromMagnitudes normalizes possibly fractional business amounts into a
// Delta. A nil window selects StandardWindow.
func FromMagnitudes(m Magnitudes, w *Window) (Delta, error) {
	if w == nil {
		w = standard
	}
	if err := m.Linear.Validate(); err != nil {
		return Delta{}, err
	}
	days, hours, minutes, seconds, err := normalize(m, w.Length())
	if err != nil {
		return Delta{}, err
	}
	return Delta{
		Linear:   m.Linear.Normalize(),
		BDays:    days,
		BHours:   hours,
		BMinutes: minutes,
		BSeconds: seconds,
		window:   w,
	}, nil
}

// BDays is shorthand for a delta of n business days in w.
func BDays(n int, w *Window) Delta {
	return Delta{BDays: Some(n), window: w}
}

// Window returns the window the delta is evaluated in.
func (d Delta) Window() *Window {
	if d.window == nil {
		return standard
	}
	return d.window
}

// WithWindow returns d evaluated in w.
func (d Delta) WithWindow(w *Window) Delta {
	d.window = w
	return d
}

// BusinessOnly drops the calendar part.
func (d Delta) BusinessOnly() Delta {
	d.Linear = reldelta.Delta{}
	return d
}

// LinearOnly drops the business fields.
func (d Delta) LinearOnly() Delta {
	return Delta{Linear: d.Linear, window: d.window}
}

// Add sums both deltas. A business field set on only one side keeps that
// side's value. The result keeps d's window.
func (d Delta) Add(o Delta) Delta {
	ret := Delta{Linear: d.Linear.Add(o.Linear), window: d.window}
	dst, a, b := ret.fieldPtrs(), d.values(), o.values()
	for i := range dst {
		switch {
		case a[i].ok && b[i].ok:
			*dst[i] = Some(a[i].v + b[i].v)
		case a[i].ok:
			*dst[i] = a[i]
		default:
			*dst[i] = b[i]
		}
	}
	return ret
}

// Sub returns d - o. A business field unset in d stays unset.
func (d Delta) Sub(o Delta) Delta {
	ret := Delta{Linear: d.Linear.Sub(o.Linear), window: d.window}
	dst, a, b := ret.fieldPtrs(), d.values(), o.values()
	for i := range dst {
		if !a[i].ok {
			continue
		}
		*dst[i] = a[i]
		if b[i].ok {
			*dst[i] = Some(a[i].v - b[i].v)
		}
	}
	return ret
}

// Neg negates every offset and business field.
func (d Delta) Neg() Delta {
	return Delta{
		Linear:   d.Linear.Neg(),
		BDays:    d.BDays.neg(),
		BHours:   d.BHours.neg(),
		BMinutes: d.BMinutes.neg(),
		BSeconds: d.BSeconds.neg(),
		window:   d.window,
	}
}

// Scale multiplies every offset and business field by f, truncating toward
// zero. NaN and infinite factors return d unchanged.
func (d Delta) Scale(f float64) Delta {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return d
	}
	return Delta{
		Linear:   d.Linear.Scale(f),
		BDays:    d.BDays.scale(f),
		BHours:   d.BHours.scale(f),
		BMinutes: d.BMinutes.scale(f),
		BSeconds: d.BSeconds.scale(f),
		window:   d.window,
	}
}

// Div scales d by the reciprocal of divisor.
func (d Delta) Div(divisor float64) (Delta, error) {
	if divisor == 0 {
		return Delta{}, ErrDivisionByZero
	}
	return d.Scale(1 / divisor), nil
}

// Equal compares the calendar parts and every business field set on both
// sides. A field set on one side only does not make the deltas differ.
func (d Delta) Equal(o Delta) bool {
	a, b := d.values(), o.values()
	for i := range a {
		if a[i].ok && b[i].ok && a[i].v != b[i].v {
			return false
		}
	}
	return d.Linear.Equal(o.Linear)
}

// NonZero reports whether the calendar part is nonzero or bdays is set and
// nonzero. Sub-day business fields alone do not count.
func (d Delta) NonZero() bool {
	return !d.Linear.IsZero() || d.BDays.NonZero()
}

// hasSubDay reports whether applying d to a date needs a time of day.
func (d Delta) hasSubDay() bool {
	return d.BHours.NonZero() || d.BMinutes.NonZero() || d.BSeconds.NonZero() || d.Linear.HasTime()
}

func (d Delta) String() string {
	l := d.Linear
	var terms []string
	for _, t := range []string{
		reldelta.OffsetTerm("years", l.Years),
		reldelta.OffsetTerm("months", l.Months),
		reldelta.OffsetTerm("days", l.Days),
		reldelta.OffsetTerm("leapdays", l.LeapDays),
		reldelta.OffsetTerm("bdays", d.BDays.v),
		reldelta.OffsetTerm("hours", l.Hours),
		reldelta.OffsetTerm("minutes", l.Minutes),
		reldelta.OffsetTerm("seconds", l.Seconds),
		reldelta.OffsetTerm("microseconds", l.Microseconds),
		reldelta.OffsetTerm("bhours", d.BHours.v),
		reldelta.OffsetTerm("bminutes", d.BMinutes.v),
		reldelta.OffsetTerm("bseconds", d.BSeconds.v),
	} {
		if t != "" {
			terms = append(terms, t)
		}
	}
	terms = append(terms, l.AbsoluteTerms()...)
	return "bdelta(" + strings.Join(terms, ", ") + ")"
}

func (d *Delta) fieldPtrs() [4]*Opt {
	return [4]*Opt{&d.BDays, &d.BHours, &d.BMinutes, &d.BSeconds}
}

func (d Delta) values() [4]Opt {
	return [4]Opt{d.BDays, d.BHours, d.BMinutes, d.BSeconds}
}
