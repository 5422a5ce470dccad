package dateutil

import (
	"time"

	"github.com/username/bizdelta/pkg/bdate"
)

// DayStart returns midnight of p's date. Dates and times are returned
// unchanged.
func DayStart(p bdate.Point) bdate.Point {
	return periodStart(p, p.Time())
}

// DayEnd returns the last microsecond of p's date.
func DayEnd(p bdate.Point) bdate.Point {
	return periodEnd(p, p.Time())
}

// MonthStart returns the first day of p's month.
func MonthStart(p bdate.Point) bdate.Point {
	t := p.Time()
	return periodStart(p, time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()))
}

// MonthEnd returns the last day of p's month; datetimes get its last
// microsecond.
func MonthEnd(p bdate.Point) bdate.Point {
	t := p.Time()
	return periodEnd(p, time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()))
}

// YearStart returns January 1st of p's year.
func YearStart(p bdate.Point) bdate.Point {
	t := p.Time()
	return periodStart(p, time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location()))
}

// YearEnd returns December 31st of p's year.
func YearEnd(p bdate.Point) bdate.Point {
	t := p.Time()
	return periodEnd(p, time.Date(t.Year(), time.December, 31, 0, 0, 0, 0, t.Location()))
}

// Week returns the ISO 8601 week number of p.
func Week(p bdate.Point) int {
	_, week := p.Time().ISOWeek()
	return week
}

// StartOfDay returns the start of the day (00:00:00) for the given date
func StartOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
}

// EndOfDay returns 23:59:59.999999 for the given date. Deltas carry
// microseconds at most, so the last nanoseconds are left out.
func EndOfDay(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 23, 59, 59, 999999000, date.Location())
}

func periodStart(p bdate.Point, day time.Time) bdate.Point {
	switch p.Kind() {
	case bdate.DateTime:
		return bdate.FromTime(StartOfDay(day))
	case bdate.DateOnly:
		return bdate.DateOf(day)
	}
	return p
}

func periodEnd(p bdate.Point, day time.Time) bdate.Point {
	switch p.Kind() {
	case bdate.DateTime:
		return bdate.FromTime(EndOfDay(day))
	case bdate.DateOnly:
		return bdate.DateOf(day)
	}
	return p
}
