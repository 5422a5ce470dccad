package bdate

import "time"

type unit int

const (
	unitSecond unit = iota
	unitMinute
	unitHour
	unitDay
)

// of returns the clock component of t matching u.
func (u unit) of(t time.Time) int {
	switch u {
	case unitHour:
		return t.Hour()
	case unitMinute:
		return t.Minute()
	case unitSecond:
		return t.Second()
	default:
		return t.Day()
	}
}

// shift moves t by n units of wall-clock time.
func shift(t time.Time, u unit, n int) time.Time {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	switch u {
	case unitDay:
		d += n
	case unitHour:
		h += n
	case unitMinute:
		mi += n
	case unitSecond:
		s += n
	}
	return time.Date(y, mo, d, h, mi, s, t.Nanosecond(), t.Location())
}

// settle moves t in direction dir until it is a valid landing spot for u.
// Non-business days are skipped a whole day at a time, out-of-hours times
// one unit at a time.
func (w *Window) settle(t time.Time, u unit, dir int, st *stepper) (time.Time, error) {
	for !w.inside(t, u) {
		if !w.IsBusinessDay(t) {
			t = shift(t, unitDay, dir)
		} else {
			t = shift(t, u, dir)
		}
		if err := st.tick(); err != nil {
			return t, err
		}
	}
	return t, nil
}

// step moves t by n business units. The start is first settled forward.
func (w *Window) step(t time.Time, u unit, n int, st *stepper) (time.Time, error) {
	t, err := w.settle(t, u, 1, st)
	if err != nil {
		return t, err
	}
	dir := 1
	if n < 0 {
		dir = -1
	}
	for i := n; i != 0; i -= dir {
		t = shift(t, u, dir)
		if err := st.tick(); err != nil {
			return t, err
		}
		if t, err = w.settle(t, u, dir, st); err != nil {
			return t, err
		}
	}
	return t, nil
}
