package bdate

import (
	"github.com/username/bizdelta/pkg/reldelta"
)

// FromPoints returns the delta from p2 to p1: the calendar difference plus
// the business days, hours, minutes and seconds between them. The result is
// negative when p2 is after p1. Dates count from midnight; times of day are
// placed on the window clock's current date. A nil window selects
// StandardWindow.
//
// Business hours, minutes and seconds are counted while aligning the clock
// of the earlier point to the later one, so a span that crosses a closed
// period may report more sub-day units than elapsed inside the window.
func FromPoints(p1, p2 Point, w *Window) (Delta, error) {
	if w == nil {
		w = standard
	}
	t1, t2 := p1.promote(w), p2.promote(w)
	d := Delta{Linear: reldelta.Between(t1, t2), window: w}

	later, cur := t1, t2
	if t2.After(t1) {
		later, cur = t2, t1
	}
	st := w.stepper("FromPoints")
	var err error
	if cur, err = w.settle(cur, unitDay, 1, st); err != nil {
		return Delta{}, err
	}

	var counts [3]int
	for i, u := range []unit{unitHour, unitMinute, unitSecond} {
		for u.of(cur) != u.of(later) {
			cur = shift(cur, u, 1)
			if err := st.tick(); err != nil {
				return Delta{}, err
			}
			if cur, err = w.settle(cur, unitDay, 1, st); err != nil {
				return Delta{}, err
			}
			if w.IsWithinBusinessHours(cur) {
				counts[i]++
			}
		}
	}

	days := 0
	for later.After(cur) {
		cur = shift(cur, unitDay, 1)
		if err := st.tick(); err != nil {
			return Delta{}, err
		}
		if w.IsBusinessDay(cur) {
			days++
		}
	}

	sign := 1
	if t2.After(t1) {
		sign = -1
	}
	d.BDays = Some(sign * days)
	d.BHours = Some(sign * counts[0])
	d.BMinutes = Some(sign * counts[1])
	d.BSeconds = Some(sign * counts[2])
	return d, nil
}
