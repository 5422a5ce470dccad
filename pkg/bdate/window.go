package bdate

import (
	"fmt"
	"time"
)

// DefaultStepLimit bounds every stepping loop unless a window overrides it.
const DefaultStepLimit = 10_000_000

// TimeOfDay is an offset from midnight.
type TimeOfDay time.Duration

// At returns the time of day hour:minute:second.
func At(hour, minute, second int) TimeOfDay {
	return TimeOfDay(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute + time.Duration(second)*time.Second)
}

// ParseTimeOfDay parses "15:04" or "15:04:05".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return timeOfDay(t), nil
		}
	}
	return 0, fmt.Errorf("%w: bad time of day %q", ErrInvalidWindowConfig, s)
}

// Valid reports whether t lies within a single day.
func (t TimeOfDay) Valid() bool {
	return t >= 0 && time.Duration(t) < 24*time.Hour
}

func (t TimeOfDay) String() string {
	d := time.Duration(t)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	if s == 0 {
		return fmt.Sprintf("%02d:%02d", h, m)
	}
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// On returns t on the calendar date of day.
func (t TimeOfDay) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, day.Location()).Add(time.Duration(t))
}

func timeOfDay(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return At(h, m, s) + TimeOfDay(t.Nanosecond())
}

// Holidays reports whether a calendar date is a holiday. Only the date part
// of the argument is significant.
type Holidays interface {
	Contains(date time.Time) bool
}

// HolidayFunc adapts a plain function to Holidays.
type HolidayFunc func(date time.Time) bool

func (f HolidayFunc) Contains(date time.Time) bool {
	return f(date)
}

type civil struct {
	year  int
	month time.Month
	day   int
}

func civilOf(t time.Time) civil {
	y, m, d := t.Date()
	return civil{y, m, d}
}

// HolidaySet is an explicit list of holiday dates with optional names.
type HolidaySet struct {
	days map[civil]string
}

// NewHolidaySet returns a set holding the given dates.
func NewHolidaySet(dates ...time.Time) *HolidaySet {
	s := &HolidaySet{days: make(map[civil]string, len(dates))}
	for _, d := range dates {
		s.Add(d, "")
	}
	return s
}

// Add records date as a holiday.
func (s *HolidaySet) Add(date time.Time, name string) {
	if s.days == nil {
		s.days = make(map[civil]string)
	}
	s.days[civilOf(date)] = name
}

func (s *HolidaySet) Contains(date time.Time) bool {
	if s == nil {
		return false
	}
	_, ok := s.days[civilOf(date)]
	return ok
}

// Name returns the name recorded for date.
func (s *HolidaySet) Name(date time.Time) (string, bool) {
	if s == nil {
		return "", false
	}
	name, ok := s.days[civilOf(date)]
	return name, ok
}

func (s *HolidaySet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.days)
}

// Window is an immutable business calendar: which weekdays are worked, which
// dates are holidays, and the daily business hours [start, end).
type Window struct {
	workdays  [7]bool
	holidays  Holidays
	start     TimeOfDay
	end       TimeOfDay
	clock     func() time.Time
	stepLimit int
}

// WindowOption configures optional Window behaviour.
type WindowOption func(*Window)

// WithHolidays sets the holiday source. A nil source means no holidays.
func WithHolidays(h Holidays) WindowOption {
	return func(w *Window) {
		w.holidays = h
	}
}

// WithClock sets the clock used to place time-only points on a date.
func WithClock(now func() time.Time) WindowOption {
	return func(w *Window) {
		w.clock = now
	}
}

// WithStepLimit overrides DefaultStepLimit.
func WithStepLimit(n int) WindowOption {
	return func(w *Window) {
		w.stepLimit = n
	}
}

// NewWindow validates and builds a business window.
func NewWindow(workdays []time.Weekday, start, end TimeOfDay, opts ...WindowOption) (*Window, error) {
	if len(workdays) == 0 {
		return nil, fmt.Errorf("%w: no workdays", ErrInvalidWindowConfig)
	}
	w := &Window{start: start, end: end, clock: time.Now, stepLimit: DefaultStepLimit}
	for _, d := range workdays {
		if d < time.Sunday || d > time.Saturday {
			return nil, fmt.Errorf("%w: weekday %d out of range", ErrInvalidWindowConfig, int(d))
		}
		w.workdays[d] = true
	}
	if !start.Valid() || !end.Valid() {
		return nil, fmt.Errorf("%w: business hours %v-%v outside the day", ErrInvalidWindowConfig, start, end)
	}
	if start >= end {
		return nil, fmt.Errorf("%w: business start %v is not before end %v", ErrInvalidWindowConfig, start, end)
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.clock == nil {
		w.clock = time.Now
	}
	if w.stepLimit <= 0 {
		return nil, fmt.Errorf("%w: step limit must be positive, got %d", ErrInvalidWindowConfig, w.stepLimit)
	}
	return w, nil
}

// Weekdays returns Monday through Friday.
func Weekdays() []time.Weekday {
	return []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
}

var standard = func() *Window {
	w, err := NewWindow(Weekdays(), At(9, 0, 0), At(17, 0, 0))
	if err != nil {
		panic(err)
	}
	return w
}()

// StandardWindow returns the Monday to Friday, 09:00 to 17:00 window with no
// holidays. Deltas built without a window use it.
func StandardWindow() *Window {
	return standard
}

// Workdays returns the worked weekdays in order starting from Sunday.
func (w *Window) Workdays() []time.Weekday {
	var days []time.Weekday
	for d, ok := range w.workdays {
		if ok {
			days = append(days, time.Weekday(d))
		}
	}
	return days
}

func (w *Window) Start() TimeOfDay { return w.start }
func (w *Window) End() TimeOfDay   { return w.end }

// Length returns the span of one business day.
func (w *Window) Length() time.Duration {
	return time.Duration(w.end - w.start)
}

func (w *Window) Holidays() Holidays { return w.holidays }
func (w *Window) StepLimit() int     { return w.stepLimit }

// IsBusinessDay reports whether the date of t is a worked weekday and not a
// holiday.
func (w *Window) IsBusinessDay(t time.Time) bool {
	if !w.workdays[t.Weekday()] {
		return false
	}
	return w.holidays == nil || !w.holidays.Contains(t)
}

// IsWithinBusinessHours reports whether the time of day of t lies in
// [start, end).
func (w *Window) IsWithinBusinessHours(t time.Time) bool {
	tod := timeOfDay(t)
	return tod >= w.start && tod < w.end
}

func (w *Window) String() string {
	names := make([]string, 0, 7)
	for _, d := range w.Workdays() {
		names = append(names, d.String()[:3])
	}
	return fmt.Sprintf("Window(%v %v-%v)", names, w.start, w.end)
}

func (w *Window) today() time.Time {
	return w.clock()
}

func (w *Window) stepper(op string) *stepper {
	return &stepper{op: op, limit: w.stepLimit}
}

// inside reports whether t is a valid landing spot when stepping by u.
func (w *Window) inside(t time.Time, u unit) bool {
	if !w.IsBusinessDay(t) {
		return false
	}
	return u == unitDay || w.IsWithinBusinessHours(t)
}

// IsBusinessDay reports whether p falls on a business day of w. Time-only
// points are placed on the window clock's current date.
func IsBusinessDay(p Point, w *Window) bool {
	if w == nil {
		w = standard
	}
	return w.IsBusinessDay(p.promote(w))
}
