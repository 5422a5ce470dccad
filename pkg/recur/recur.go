// Package recur generates business-day recurrences.
package recur

import (
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/username/bizdelta/pkg/bdate"
)

// ErrUnbounded is returned when a rule has neither a count nor an end.
var ErrUnbounded = errors.New("recurrence needs a count or an until bound")

// Schedule yields the next firing strictly after from. A zero time means
// there are no more firings.
type Schedule interface {
	Next(from time.Time) time.Time
}

type rule struct {
	count int
	until *time.Time
}

// Option bounds a recurrence.
type Option func(*rule)

// Count stops after n occurrences.
func Count(n int) Option {
	return func(r *rule) {
		r.count = n
	}
}

// Until stops after the last occurrence at or before p.
func Until(p bdate.Point) Option {
	return func(r *rule) {
		t := p.Time()
		r.until = &t
	}
}

func newRule(opts []Option) (rule, error) {
	var r rule
	for _, opt := range opts {
		opt(&r)
	}
	if r.count <= 0 && r.until == nil {
		return r, ErrUnbounded
	}
	return r, nil
}

func (r rule) done(n int, t time.Time) bool {
	if r.count > 0 && n >= r.count {
		return true
	}
	return r.until != nil && t.After(*r.until)
}

// limiter bounds the candidates examined by the window's step limit.
type limiter struct {
	limit int
	n     int
}

func (l *limiter) tick() error {
	l.n++
	if l.n > l.limit {
		return fmt.Errorf("%w: recurrence examined more than %d candidates", bdate.ErrIterationLimitExceeded, l.limit)
	}
	return nil
}

// BDaily returns every business day from start, inclusive, keeping start's
// time of day and kind.
func BDaily(start bdate.Point, w *bdate.Window, opts ...Option) ([]bdate.Point, error) {
	if start.Kind() == bdate.TimeOnly {
		return nil, fmt.Errorf("bdaily: start %v has no date", start)
	}
	if w == nil {
		w = bdate.StandardWindow()
	}
	r, err := newRule(opts)
	if err != nil {
		return nil, err
	}

	lim := &limiter{limit: w.StepLimit()}
	var out []bdate.Point
	for t := start.Time(); !r.done(len(out), t); t = t.AddDate(0, 0, 1) {
		if err := lim.tick(); err != nil {
			return out, err
		}
		if !w.IsBusinessDay(t) {
			continue
		}
		if start.Kind() == bdate.DateOnly {
			out = append(out, bdate.DateOf(t))
		} else {
			out = append(out, bdate.FromTime(t))
		}
	}
	return out, nil
}

type cronSchedule struct {
	schedule cron.Schedule
}

// Cron parses a five-field cron expression.
func Cron(expr string) (Schedule, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", expr, err)
	}
	return &cronSchedule{schedule: schedule}, nil
}

func (s *cronSchedule) Next(from time.Time) time.Time {
	return s.schedule.Next(from)
}

type businessSchedule struct {
	inner Schedule
	w     *bdate.Window
}

// OnBusinessDays filters s down to firings on business days of w. Next gives
// up and returns the zero time after the window's step limit.
func OnBusinessDays(s Schedule, w *bdate.Window) Schedule {
	if w == nil {
		w = bdate.StandardWindow()
	}
	return &businessSchedule{inner: s, w: w}
}

func (s *businessSchedule) Next(from time.Time) time.Time {
	lim := &limiter{limit: s.w.StepLimit()}
	for {
		from = s.inner.Next(from)
		if from.IsZero() || lim.tick() != nil {
			return time.Time{}
		}
		if s.w.IsBusinessDay(from) {
			return from
		}
	}
}

// CronBusinessDays returns the next n firings of expr after the given time
// that fall on business days of w.
func CronBusinessDays(expr string, after time.Time, w *bdate.Window, n int) ([]time.Time, error) {
	if n <= 0 {
		return nil, ErrUnbounded
	}
	s, err := Cron(expr)
	if err != nil {
		return nil, err
	}
	if w == nil {
		w = bdate.StandardWindow()
	}

	lim := &limiter{limit: w.StepLimit()}
	out := make([]time.Time, 0, n)
	for t := after; len(out) < n; {
		t = s.Next(t)
		if t.IsZero() {
			break
		}
		if err := lim.tick(); err != nil {
			return out, err
		}
		if w.IsBusinessDay(t) {
			out = append(out, t)
		}
	}
	return out, nil
}
