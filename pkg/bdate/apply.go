package bdate

import "time"

// Apply adds d to p. Business fields are applied smallest unit first, each
// starting from the next valid spot at or after the current time, then the
// calendar part is added. Dates are promoted to datetimes when d moves the
// clock; times of day are evaluated on the window clock's current date and
// come back as times of day.
func Apply(p Point, d Delta) (Point, error) {
	w := d.Window()
	return applyAt(p.promote(w), p.Kind(), d, w)
}

// Subtract returns p - d. When d has bdays set to zero the point is first
// moved back to the nearest business day at or before it.
func Subtract(p Point, d Delta) (Point, error) {
	w := d.Window()
	t := p.promote(w)
	if n, ok := d.BDays.Get(); ok && n == 0 {
		st := w.stepper("Subtract")
		var err error
		if t, err = w.settle(t, unitDay, -1, st); err != nil {
			return Point{}, err
		}
	}
	return applyAt(t, p.Kind(), d.Neg(), w)
}

// AddTo is Apply(p, d).
func (d Delta) AddTo(p Point) (Point, error) {
	return Apply(p, d)
}

// SubFrom is Subtract(p, d).
func (d Delta) SubFrom(p Point) (Point, error) {
	return Subtract(p, d)
}

func applyAt(t time.Time, kind Kind, d Delta, w *Window) (Point, error) {
	st := w.stepper("Apply")
	for _, f := range []struct {
		o Opt
		u unit
	}{
		{d.BSeconds, unitSecond},
		{d.BMinutes, unitMinute},
		{d.BHours, unitHour},
		{d.BDays, unitDay},
	} {
		n, ok := f.o.Get()
		if !ok {
			continue
		}
		var err error
		if t, err = w.step(t, f.u, n, st); err != nil {
			return Point{}, err
		}
	}
	t = d.Linear.AddTo(t)

	if kind == DateOnly && d.hasSubDay() {
		return FromTime(t), nil
	}
	return withKind(t, kind), nil
}
