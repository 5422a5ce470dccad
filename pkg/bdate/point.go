package bdate

import (
	"fmt"
	"time"
)

// Kind tells which components of a Point are meaningful.
type Kind int

const (
	DateTime Kind = iota
	DateOnly
	TimeOnly
)

func (k Kind) String() string {
	switch k {
	case DateTime:
		return "datetime"
	case DateOnly:
		return "date"
	case TimeOnly:
		return "time"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Point is a date, a time of day, or a full datetime. Dates are stored at
// midnight; times of day are stored on January 1st of year 0.
type Point struct {
	kind Kind
	t    time.Time
}

// NewDate returns a date-only point in UTC.
func NewDate(year int, month time.Month, day int) Point {
	return Point{kind: DateOnly, t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// NewDateTime returns a datetime point in UTC.
func NewDateTime(year int, month time.Month, day, hour, min, sec int) Point {
	return Point{kind: DateTime, t: time.Date(year, month, day, hour, min, sec, 0, time.UTC)}
}

// NewTime returns a time-of-day point.
func NewTime(hour, min, sec int) Point {
	return Point{kind: TimeOnly, t: time.Date(0, time.January, 1, hour, min, sec, 0, time.UTC)}
}

// FromTime wraps t as a datetime point.
func FromTime(t time.Time) Point {
	return Point{kind: DateTime, t: t}
}

// DateOf returns the date of t as a date-only point.
func DateOf(t time.Time) Point {
	y, m, d := t.Date()
	return Point{kind: DateOnly, t: time.Date(y, m, d, 0, 0, 0, 0, t.Location())}
}

// TimeOf returns the time of day of t as a time-only point.
func TimeOf(t time.Time) Point {
	h, m, s := t.Clock()
	return Point{kind: TimeOnly, t: time.Date(0, time.January, 1, h, m, s, t.Nanosecond(), t.Location())}
}

func (p Point) Kind() Kind {
	return p.kind
}

// Time returns the underlying time value.
func (p Point) Time() time.Time {
	return p.t
}

func (p Point) IsZero() bool {
	return p.t.IsZero() && p.kind == DateTime
}

// Equal reports whether both points have the same kind and instant.
func (p Point) Equal(o Point) bool {
	return p.kind == o.kind && p.t.Equal(o.t)
}

func (p Point) String() string {
	switch p.kind {
	case DateOnly:
		return p.t.Format("2006-01-02")
	case TimeOnly:
		return p.t.Format("15:04:05.999999")
	default:
		return p.t.Format("2006-01-02 15:04:05.999999")
	}
}

// promote returns the datetime the engine works on: dates at midnight,
// times of day on the window clock's current date.
func (p Point) promote(w *Window) time.Time {
	if p.kind != TimeOnly {
		return p.t
	}
	return combine(w.today(), p.t)
}

// withKind converts a working datetime back into a point of the given kind.
func withKind(t time.Time, kind Kind) Point {
	switch kind {
	case DateOnly:
		return DateOf(t)
	case TimeOnly:
		return TimeOf(t)
	default:
		return FromTime(t)
	}
}

func combine(day, clock time.Time) time.Time {
	y, m, d := day.Date()
	h, mi, s := clock.Clock()
	return time.Date(y, m, d, h, mi, s, clock.Nanosecond(), day.Location())
}
