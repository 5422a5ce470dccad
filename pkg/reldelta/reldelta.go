// Package reldelta implements calendar-relative deltas: offsets in years,
// months, days and clock units plus absolute "set-to" overrides, applied with
// wall-clock arithmetic.
package reldelta

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

var (
	// ErrDivisionByZero is returned when a delta is divided by zero.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrInvalidField is returned by Validate for out-of-range absolute fields.
	ErrInvalidField = errors.New("invalid delta field")
)

// Weekday moves a date to the Nth occurrence of Day. N of 0 behaves like +1:
// the same date if it already falls on Day, otherwise the next one.
// Negative N counts backwards.
type Weekday struct {
	Day time.Weekday
	N   int
}

var weekdayNames = [7]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

// On returns a Weekday selecting the next occurrence of day (today included).
func On(day time.Weekday) *Weekday {
	return &Weekday{Day: day}
}

// Nth returns a Weekday selecting the nth occurrence of day.
func Nth(day time.Weekday, n int) *Weekday {
	return &Weekday{Day: day, N: n}
}

func (w Weekday) String() string {
	name := "??"
	if w.Day >= time.Sunday && w.Day <= time.Saturday {
		name = weekdayNames[w.Day]
	}
	if w.N == 0 {
		return name
	}
	return fmt.Sprintf("%s(%+d)", name, w.N)
}

// Delta is a relative calendar delta. Offset fields are added to a date;
// non-nil absolute fields replace the corresponding component before the
// offsets are applied.
type Delta struct {
	Years        int
	Months       int
	Days         int
	LeapDays     int
	Hours        int
	Minutes      int
	Seconds      int
	Microseconds int

	Year        *int
	Month       *int
	Day         *int
	Weekday     *Weekday
	Hour        *int
	Minute      *int
	Second      *int
	Microsecond *int
}

// Int returns a pointer to v, for use in absolute fields.
func Int(v int) *int {
	return &v
}

// Normalize carries overflowing units upward: microseconds into seconds,
// seconds into minutes, minutes into hours, hours into days and months into
// years. Days are never carried into months.
func (d Delta) Normalize() Delta {
	d.Microseconds, d.Seconds = carry(d.Microseconds, d.Seconds, 1000000)
	d.Seconds, d.Minutes = carry(d.Seconds, d.Minutes, 60)
	d.Minutes, d.Hours = carry(d.Minutes, d.Hours, 60)
	d.Hours, d.Days = carry(d.Hours, d.Days, 24)
	d.Months, d.Years = carry(d.Months, d.Years, 12)
	return d
}

// carry moves whole multiples of base from v into next when |v| >= base,
// keeping the sign of v on the remainder.
func carry(v, next, base int) (int, int) {
	if abs(v) < base {
		return v, next
	}
	s := sign(v)
	div, mod := (v*s)/base, (v*s)%base
	return mod * s, next + div*s
}

// withMonths sets the month offset and spreads it over years.
func (d Delta) withMonths(months int) Delta {
	d.Months = months
	d.Years = 0
	d.Months, d.Years = carry(d.Months, d.Years, 12)
	return d
}

// Between returns the delta a - b, such that b plus the result equals a.
// Months are matched first; the remainder is expressed in days and clock
// units.
func Between(a, b time.Time) Delta {
	a, b = wall(a), wall(b)

	months := (a.Year()-b.Year())*12 + int(a.Month()) - int(b.Month())
	d := Delta{}.withMonths(months)
	dtm := d.AddTo(b)
	if a.Before(b) {
		for a.After(dtm) {
			months++
			d = d.withMonths(months)
			dtm = d.AddTo(b)
		}
	} else {
		for a.Before(dtm) {
			months--
			d = d.withMonths(months)
			dtm = d.AddTo(b)
		}
	}

	diff := a.Sub(dtm)
	secs := diff / time.Second
	rem := diff % time.Second
	if rem < 0 {
		secs--
		rem += time.Second
	}
	d.Seconds = int(secs)
	d.Microseconds = int(rem / time.Microsecond)
	return d.Normalize()
}

// AddTo applies the delta to t. Absolute fields are set first, then the
// year and month offsets (clamping the day to the month length), then leap
// days, day and clock offsets, and finally the weekday jump.
func (d Delta) AddTo(t time.Time) time.Time {
	year := t.Year()
	if d.Year != nil {
		year = *d.Year
	}
	year += d.Years

	month := int(t.Month())
	if d.Month != nil {
		month = *d.Month
	}
	if d.Months != 0 {
		total := month - 1 + d.Months
		year += floorDiv(total, 12)
		month = total - floorDiv(total, 12)*12 + 1
	}

	day := t.Day()
	if d.Day != nil {
		day = *d.Day
	}
	if dim := daysIn(year, time.Month(month)); day > dim {
		day = dim
	}

	hour, minute, second := t.Clock()
	nsec := t.Nanosecond()
	if d.Hour != nil {
		hour = *d.Hour
	}
	if d.Minute != nil {
		minute = *d.Minute
	}
	if d.Second != nil {
		second = *d.Second
	}
	if d.Microsecond != nil {
		nsec = *d.Microsecond * 1000
	}

	days := d.Days
	if d.LeapDays != 0 && month > 2 && isLeap(year) {
		days += d.LeapDays
	}

	ret := time.Date(year, time.Month(month), day+days,
		hour+d.Hours, minute+d.Minutes, second+d.Seconds,
		nsec+d.Microseconds*1000, t.Location())

	if d.Weekday != nil {
		nth := d.Weekday.N
		if nth == 0 {
			nth = 1
		}
		jump := (abs(nth) - 1) * 7
		cur, want := int(ret.Weekday()), int(d.Weekday.Day)
		if nth > 0 {
			jump += mod7(want - cur)
		} else {
			jump += mod7(cur - want)
			jump = -jump
		}
		ret = ret.AddDate(0, 0, jump)
	}
	return ret
}

// Add returns d + o. Offsets are summed; for absolute fields o wins when set.
func (d Delta) Add(o Delta) Delta {
	return Delta{
		Years:        d.Years + o.Years,
		Months:       d.Months + o.Months,
		Days:         d.Days + o.Days,
		LeapDays:     firstNonZero(o.LeapDays, d.LeapDays),
		Hours:        d.Hours + o.Hours,
		Minutes:      d.Minutes + o.Minutes,
		Seconds:      d.Seconds + o.Seconds,
		Microseconds: d.Microseconds + o.Microseconds,
		Year:         pick(o.Year, d.Year),
		Month:        pick(o.Month, d.Month),
		Day:          pick(o.Day, d.Day),
		Weekday:      pickWeekday(o.Weekday, d.Weekday),
		Hour:         pick(o.Hour, d.Hour),
		Minute:       pick(o.Minute, d.Minute),
		Second:       pick(o.Second, d.Second),
		Microsecond:  pick(o.Microsecond, d.Microsecond),
	}.Normalize()
}

// Sub returns d - o. Offsets are subtracted; for absolute fields d wins when
// set.
func (d Delta) Sub(o Delta) Delta {
	return Delta{
		Years:        d.Years - o.Years,
		Months:       d.Months - o.Months,
		Days:         d.Days - o.Days,
		LeapDays:     firstNonZero(d.LeapDays, o.LeapDays),
		Hours:        d.Hours - o.Hours,
		Minutes:      d.Minutes - o.Minutes,
		Seconds:      d.Seconds - o.Seconds,
		Microseconds: d.Microseconds - o.Microseconds,
		Year:         pick(d.Year, o.Year),
		Month:        pick(d.Month, o.Month),
		Day:          pick(d.Day, o.Day),
		Weekday:      pickWeekday(d.Weekday, o.Weekday),
		Hour:         pick(d.Hour, o.Hour),
		Minute:       pick(d.Minute, o.Minute),
		Second:       pick(d.Second, o.Second),
		Microsecond:  pick(d.Microsecond, o.Microsecond),
	}.Normalize()
}

// Neg negates every offset. Leap days and absolute fields are kept.
func (d Delta) Neg() Delta {
	d.Years = -d.Years
	d.Months = -d.Months
	d.Days = -d.Days
	d.Hours = -d.Hours
	d.Minutes = -d.Minutes
	d.Seconds = -d.Seconds
	d.Microseconds = -d.Microseconds
	return d
}

// Scale multiplies every offset by f, truncating toward zero. Leap days and
// absolute fields are kept.
func (d Delta) Scale(f float64) Delta {
	d.Years = Trunc(d.Years, f)
	d.Months = Trunc(d.Months, f)
	d.Days = Trunc(d.Days, f)
	d.Hours = Trunc(d.Hours, f)
	d.Minutes = Trunc(d.Minutes, f)
	d.Seconds = Trunc(d.Seconds, f)
	d.Microseconds = Trunc(d.Microseconds, f)
	return d.Normalize()
}

// Div scales the delta by the reciprocal of divisor.
func (d Delta) Div(divisor float64) (Delta, error) {
	if divisor == 0 {
		return Delta{}, ErrDivisionByZero
	}
	return d.Scale(1 / divisor), nil
}

// Trunc returns v*f truncated toward zero, saturating at the int range.
func Trunc(v int, f float64) int {
	p := math.Trunc(float64(v) * f)
	switch {
	case p >= math.MaxInt:
		return math.MaxInt
	case p <= math.MinInt:
		return math.MinInt
	}
	return int(p)
}

// Equal reports whether both deltas have the same fields. Weekdays with N of
// 0 and 1 are treated as the same.
func (d Delta) Equal(o Delta) bool {
	if d.Weekday != nil || o.Weekday != nil {
		if d.Weekday == nil || o.Weekday == nil {
			return false
		}
		if d.Weekday.Day != o.Weekday.Day {
			return false
		}
		n1, n2 := d.Weekday.N, o.Weekday.N
		if n1 != n2 && !((n1 == 0 || n1 == 1) && (n2 == 0 || n2 == 1)) {
			return false
		}
	}
	return d.Years == o.Years &&
		d.Months == o.Months &&
		d.Days == o.Days &&
		d.LeapDays == o.LeapDays &&
		d.Hours == o.Hours &&
		d.Minutes == o.Minutes &&
		d.Seconds == o.Seconds &&
		d.Microseconds == o.Microseconds &&
		intEqual(d.Year, o.Year) &&
		intEqual(d.Month, o.Month) &&
		intEqual(d.Day, o.Day) &&
		intEqual(d.Hour, o.Hour) &&
		intEqual(d.Minute, o.Minute) &&
		intEqual(d.Second, o.Second) &&
		intEqual(d.Microsecond, o.Microsecond)
}

// IsZero reports whether applying the delta would leave any date unchanged.
func (d Delta) IsZero() bool {
	return d.Years == 0 && d.Months == 0 && d.Days == 0 && d.LeapDays == 0 &&
		d.Hours == 0 && d.Minutes == 0 && d.Seconds == 0 && d.Microseconds == 0 &&
		d.Year == nil && d.Month == nil && d.Day == nil && d.Weekday == nil &&
		d.Hour == nil && d.Minute == nil && d.Second == nil && d.Microsecond == nil
}

// HasTime reports whether the delta touches the time of day.
func (d Delta) HasTime() bool {
	return d.Hours != 0 || d.Minutes != 0 || d.Seconds != 0 || d.Microseconds != 0 ||
		d.Hour != nil || d.Minute != nil || d.Second != nil || d.Microsecond != nil
}

// Validate checks the ranges of the absolute fields.
func (d Delta) Validate() error {
	checks := []struct {
		name     string
		v        *int
		min, max int
	}{
		{"month", d.Month, 1, 12},
		{"day", d.Day, 1, 31},
		{"hour", d.Hour, 0, 23},
		{"minute", d.Minute, 0, 59},
		{"second", d.Second, 0, 59},
		{"microsecond", d.Microsecond, 0, 999999},
	}
	for _, c := range checks {
		if c.v != nil && (*c.v < c.min || *c.v > c.max) {
			return fmt.Errorf("%w: %s must be in %d..%d, got %d", ErrInvalidField, c.name, c.min, c.max, *c.v)
		}
	}
	if d.Weekday != nil && (d.Weekday.Day < time.Sunday || d.Weekday.Day > time.Saturday) {
		return fmt.Errorf("%w: weekday %d out of range", ErrInvalidField, d.Weekday.Day)
	}
	return nil
}

// OffsetTerm formats a nonzero offset as "name=+v". It returns "" for zero.
func OffsetTerm(name string, v int) string {
	if v == 0 {
		return ""
	}
	return fmt.Sprintf("%s=%+d", name, v)
}

// AbsoluteTerms formats the set absolute fields in canonical order.
func (d Delta) AbsoluteTerms() []string {
	var terms []string
	add := func(name string, v *int) {
		if v != nil {
			terms = append(terms, fmt.Sprintf("%s=%d", name, *v))
		}
	}
	add("year", d.Year)
	add("month", d.Month)
	add("day", d.Day)
	if d.Weekday != nil {
		terms = append(terms, "weekday="+d.Weekday.String())
	}
	add("hour", d.Hour)
	add("minute", d.Minute)
	add("second", d.Second)
	add("microsecond", d.Microsecond)
	return terms
}

func (d Delta) String() string {
	var terms []string
	for _, t := range []string{
		OffsetTerm("years", d.Years),
		OffsetTerm("months", d.Months),
		OffsetTerm("days", d.Days),
		OffsetTerm("leapdays", d.LeapDays),
		OffsetTerm("hours", d.Hours),
		OffsetTerm("minutes", d.Minutes),
		OffsetTerm("seconds", d.Seconds),
		OffsetTerm("microseconds", d.Microseconds),
	} {
		if t != "" {
			terms = append(terms, t)
		}
	}
	terms = append(terms, d.AbsoluteTerms()...)
	return "reldelta(" + strings.Join(terms, ", ") + ")"
}

func wall(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func pick(first, second *int) *int {
	if first != nil {
		return first
	}
	return second
}

func pickWeekday(first, second *Weekday) *Weekday {
	if first != nil {
		return first
	}
	return second
}

func firstNonZero(a, b int) int {
	if a != 0 {
		return a
	}
	return b
}

func intEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func mod7(v int) int {
	return ((v % 7) + 7) % 7
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}
