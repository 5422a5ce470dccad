// Package business wraps the bdate engine with process-wide defaults so
// callers can work with strings and plain values.
package business

import (
	"fmt"
	"sync"
	"time"

	"github.com/username/bizdelta/pkg/bdate"
	"github.com/username/bizdelta/pkg/dateutil"
)

// Settings holds default workdays, holidays and business hours. Every call
// reads the settings once at its start.
type Settings struct {
	mu        sync.RWMutex
	workdays  []time.Weekday
	holidays  bdate.Holidays
	start     bdate.TimeOfDay
	end       bdate.TimeOfDay
	clock     func() time.Time
	stepLimit int
	parseOpts []dateutil.Option
}

// NewSettings returns Monday to Friday, 09:00 to 17:00, no holidays.
func NewSettings() *Settings {
	return &Settings{
		workdays:  bdate.Weekdays(),
		start:     bdate.At(9, 0, 0),
		end:       bdate.At(17, 0, 0),
		clock:     time.Now,
		stepLimit: bdate.DefaultStepLimit,
	}
}

var defaultSettings = NewSettings()

// Default returns the process-wide settings.
func Default() *Settings {
	return defaultSettings
}

func (s *Settings) Workdays() []time.Weekday {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]time.Weekday(nil), s.workdays...)
}

func (s *Settings) SetWorkdays(days ...time.Weekday) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workdays = append([]time.Weekday(nil), days...)
}

func (s *Settings) Holidays() bdate.Holidays {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.holidays
}

func (s *Settings) SetHolidays(h bdate.Holidays) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holidays = h
}

// BusinessHours returns the default business start and end.
func (s *Settings) BusinessHours() (start, end bdate.TimeOfDay) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.start, s.end
}

func (s *Settings) SetBusinessHours(start, end bdate.TimeOfDay) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.start, s.end = start, end
}

// SetClock replaces time.Now for Today, Now and time-of-day inputs. A nil
// clock restores time.Now.
func (s *Settings) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = now
}

// Clock returns the current time as the settings see it.
func (s *Settings) Clock() time.Time {
	s.mu.RLock()
	clock := s.clock
	s.mu.RUnlock()
	return clock()
}

func (s *Settings) SetStepLimit(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stepLimit = n
}

// SetParseOptions sets the options string inputs are parsed with.
func (s *Settings) SetParseOptions(opts ...dateutil.Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parseOpts = append([]dateutil.Option(nil), opts...)
}

// ParseOptions returns the parse options in effect, clock included.
func (s *Settings) ParseOptions() []dateutil.Option {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]dateutil.Option{dateutil.WithNow(s.clock)}, s.parseOpts...)
}

// Parse reads v the way Add, Sub and Diff read their inputs.
func (s *Settings) Parse(v any) (bdate.Point, error) {
	return dateutil.Parse(v, s.ParseOptions()...)
}

// ParseDateTime is Parse with date inputs promoted to midnight datetimes.
func (s *Settings) ParseDateTime(v any) (bdate.Point, error) {
	return dateutil.ParseDateTime(v, s.ParseOptions()...)
}

type overrides struct {
	workdays    []time.Weekday
	workdaysSet bool
	holidays    bdate.Holidays
	start       *bdate.TimeOfDay
	end         *bdate.TimeOfDay
}

// Override replaces one default for a single call.
type Override func(*overrides)

// WithWorkdays replaces the workdays. An empty list is passed on as is and
// fails window validation.
func WithWorkdays(days ...time.Weekday) Override {
	return func(o *overrides) {
		o.workdays, o.workdaysSet = days, true
	}
}

func WithHolidays(h bdate.Holidays) Override {
	return func(o *overrides) {
		o.holidays = h
	}
}

func WithBusinessHours(start, end bdate.TimeOfDay) Override {
	return func(o *overrides) {
		o.start, o.end = &start, &end
	}
}

func WithStart(start bdate.TimeOfDay) Override {
	return func(o *overrides) {
		o.start = &start
	}
}

func WithEnd(end bdate.TimeOfDay) Override {
	return func(o *overrides) {
		o.end = &end
	}
}

// snapshot is what one call sees of the settings.
type snapshot struct {
	window    *bdate.Window
	clock     func() time.Time
	parseOpts []dateutil.Option
}

func (s *Settings) snapshot(ov []Override) (snapshot, error) {
	s.mu.RLock()
	workdays, holidays := s.workdays, s.holidays
	start, end := s.start, s.end
	clock, limit := s.clock, s.stepLimit
	parseOpts := append([]dateutil.Option{dateutil.WithNow(s.clock)}, s.parseOpts...)
	s.mu.RUnlock()

	var o overrides
	for _, fn := range ov {
		fn(&o)
	}
	if o.workdaysSet {
		workdays = o.workdays
	}
	if o.holidays != nil {
		holidays = o.holidays
	}
	if o.start != nil {
		start = *o.start
	}
	if o.end != nil {
		end = *o.end
	}

	w, err := bdate.NewWindow(workdays, start, end,
		bdate.WithHolidays(holidays),
		bdate.WithClock(clock),
		bdate.WithStepLimit(limit),
	)
	if err != nil {
		return snapshot{}, err
	}
	return snapshot{window: w, clock: clock, parseOpts: parseOpts}, nil
}

// Window builds the window the settings describe, with overrides applied.
func (s *Settings) Window(ov ...Override) (*bdate.Window, error) {
	snap, err := s.snapshot(ov)
	if err != nil {
		return nil, err
	}
	return snap.window, nil
}

// Diff returns the business delta from b to a.
func (s *Settings) Diff(a, b any, ov ...Override) (bdate.Delta, error) {
	snap, err := s.snapshot(ov)
	if err != nil {
		return bdate.Delta{}, err
	}
	p1, err := dateutil.Parse(a, snap.parseOpts...)
	if err != nil {
		return bdate.Delta{}, err
	}
	p2, err := dateutil.Parse(b, snap.parseOpts...)
	if err != nil {
		return bdate.Delta{}, err
	}
	return bdate.FromPoints(p1, p2, snap.window)
}

// Add parses p and adds m to it.
func (s *Settings) Add(p any, m bdate.Magnitudes, ov ...Override) (bdate.Point, error) {
	return s.shift(p, m, false, ov)
}

// Sub parses p and subtracts m from it.
func (s *Settings) Sub(p any, m bdate.Magnitudes, ov ...Override) (bdate.Point, error) {
	return s.shift(p, m, true, ov)
}

func (s *Settings) shift(p any, m bdate.Magnitudes, sub bool, ov []Override) (bdate.Point, error) {
	snap, err := s.snapshot(ov)
	if err != nil {
		return bdate.Point{}, err
	}
	pt, err := dateutil.Parse(p, snap.parseOpts...)
	if err != nil {
		return bdate.Point{}, err
	}
	return snap.apply(pt, m, sub)
}

func (snap snapshot) apply(p bdate.Point, m bdate.Magnitudes, sub bool) (bdate.Point, error) {
	d, err := bdate.FromMagnitudes(m, snap.window)
	if err != nil {
		return bdate.Point{}, err
	}
	if sub {
		return bdate.Subtract(p, d)
	}
	return bdate.Apply(p, d)
}

// IsBusinessDay parses p and reports whether it falls on a business day.
func (s *Settings) IsBusinessDay(p any, ov ...Override) (bool, error) {
	snap, err := s.snapshot(ov)
	if err != nil {
		return false, err
	}
	pt, err := dateutil.Parse(p, snap.parseOpts...)
	if err != nil {
		return false, err
	}
	return bdate.IsBusinessDay(pt, snap.window), nil
}

// Today returns the current date moved by m.
func (s *Settings) Today(m bdate.Magnitudes, ov ...Override) (bdate.Point, error) {
	snap, err := s.snapshot(ov)
	if err != nil {
		return bdate.Point{}, err
	}
	return snap.apply(bdate.DateOf(snap.clock()), m, false)
}

// Now returns the current datetime moved by m.
func (s *Settings) Now(m bdate.Magnitudes, ov ...Override) (bdate.Point, error) {
	snap, err := s.snapshot(ov)
	if err != nil {
		return bdate.Point{}, err
	}
	return snap.apply(bdate.FromTime(snap.clock()), m, false)
}

func (s *Settings) String() string {
	start, end := s.BusinessHours()
	return fmt.Sprintf("business.Settings(workdays=%v, hours=%v-%v)", s.Workdays(), start, end)
}
