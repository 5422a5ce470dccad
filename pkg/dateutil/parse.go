package dateutil

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/username/bizdelta/pkg/bdate"
)

var (
	// ErrUnparseableInput is returned for text no known layout matches.
	ErrUnparseableInput = errors.New("unparseable date input")

	// ErrUnsupportedInputType is returned for values Parse cannot convert.
	ErrUnsupportedInputType = errors.New("unsupported date input type")
)

type layout struct {
	format string
	kind   bdate.Kind
}

// Slash and dotted numeric dates are listed separately so DayFirst can swap
// the month-first forms out.
var (
	monthFirst = []layout{
		{"1/2/2006", bdate.DateOnly},
		{"1/2/2006 15:04", bdate.DateTime},
		{"1/2/2006 15:04:05", bdate.DateTime},
	}
	dayFirst = []layout{
		{"2/1/2006", bdate.DateOnly},
		{"2/1/2006 15:04", bdate.DateTime},
		{"2/1/2006 15:04:05", bdate.DateTime},
	}
	common = []layout{
		{"2006-01-02", bdate.DateOnly},
		{"2006-01-02 15:04", bdate.DateTime},
		{"2006-01-02 15:04:05", bdate.DateTime},
		{"2006-01-02 15:04:05.999999999", bdate.DateTime},
		{"2006-01-02T15:04", bdate.DateTime},
		{"2006-01-02T15:04:05", bdate.DateTime},
		{"2006-01-02T15:04:05.999999999", bdate.DateTime},
		{time.RFC3339Nano, bdate.DateTime},
		{"2006-01-02T15:04:05-0700", bdate.DateTime},
		{"2006-01-02 15:04:05 -0700", bdate.DateTime},
		{"20060102", bdate.DateOnly},
		{"02.01.2006", bdate.DateOnly},
		{"02.01.2006 15:04", bdate.DateTime},
		{"Jan 2, 2006", bdate.DateOnly},
		{"January 2, 2006", bdate.DateOnly},
		{"2 Jan 2006", bdate.DateOnly},
		{"2 January 2006", bdate.DateOnly},
		{"Mon, 02 Jan 2006 15:04:05 MST", bdate.DateTime},
		{"15:04", bdate.TimeOnly},
		{"15:04:05", bdate.TimeOnly},
		{"15:04:05.999999999", bdate.TimeOnly},
		{"3:04PM", bdate.TimeOnly},
		{"3:04 PM", bdate.TimeOnly},
		{"3:04:05 PM", bdate.TimeOnly},
		{"3PM", bdate.TimeOnly},
		{"3 PM", bdate.TimeOnly},
	}
)

type options struct {
	dayFirst bool
	loc      *time.Location
	now      func() time.Time
}

// Option configures parsing.
type Option func(*options)

// DayFirst reads ambiguous numeric dates such as 1/2/2014 as day/month/year.
func DayFirst() Option {
	return func(o *options) {
		o.dayFirst = true
	}
}

// InLocation sets the zone for inputs that carry none, and for epochs.
// The default is UTC.
func InLocation(loc *time.Location) Option {
	return func(o *options) {
		o.loc = loc
	}
}

// WithNow sets the clock ParseDateTime uses to place a bare time of day.
func WithNow(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func newOptions(opts []Option) options {
	o := options{loc: time.UTC, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.loc == nil {
		o.loc = time.UTC
	}
	return o
}

// Parse converts v into a point. Accepted inputs are strings, byte slices,
// readers, integer and float Unix epochs, time.Time and bdate.Point. The
// kind of a parsed string follows the layout it matched.
func Parse(v any, opts ...Option) (bdate.Point, error) {
	o := newOptions(opts)
	switch x := v.(type) {
	case bdate.Point:
		return x, nil
	case time.Time:
		return bdate.FromTime(x), nil
	case string:
		return parseString(x, o)
	case []byte:
		return parseString(string(x), o)
	case io.Reader:
		b, err := io.ReadAll(x)
		if err != nil {
			return bdate.Point{}, fmt.Errorf("read date input: %w", err)
		}
		return parseString(string(b), o)
	case int:
		return epoch(float64(x), o), nil
	case int64:
		return epoch(float64(x), o), nil
	case float64:
		return epoch(x, o), nil
	default:
		return bdate.Point{}, fmt.Errorf("%w: %T", ErrUnsupportedInputType, v)
	}
}

// ParseDate parses v and keeps only its date. Times of day are rejected.
func ParseDate(v any, opts ...Option) (bdate.Point, error) {
	p, err := Parse(v, opts...)
	if err != nil {
		return bdate.Point{}, err
	}
	if p.Kind() == bdate.TimeOnly {
		return bdate.Point{}, fmt.Errorf("%w: time of day %v has no date", ErrUnsupportedInputType, p)
	}
	return bdate.DateOf(p.Time()), nil
}

// ParseDateTime parses v as a datetime. Dates become midnight and times of
// day are placed on the current date.
func ParseDateTime(v any, opts ...Option) (bdate.Point, error) {
	p, err := Parse(v, opts...)
	if err != nil {
		return bdate.Point{}, err
	}
	switch p.Kind() {
	case bdate.TimeOnly:
		o := newOptions(opts)
		now := o.now().In(o.loc)
		h, m, s := p.Time().Clock()
		return bdate.FromTime(time.Date(now.Year(), now.Month(), now.Day(), h, m, s, p.Time().Nanosecond(), o.loc)), nil
	case bdate.DateOnly:
		return bdate.FromTime(p.Time()), nil
	}
	return p, nil
}

// ParseTime parses v and keeps only its time of day.
func ParseTime(v any, opts ...Option) (bdate.Point, error) {
	p, err := Parse(v, opts...)
	if err != nil {
		return bdate.Point{}, err
	}
	return bdate.TimeOf(p.Time()), nil
}

func parseString(s string, o options) (bdate.Point, error) {
	s = strings.TrimSpace(s)
	layouts := monthFirst
	if o.dayFirst {
		layouts = dayFirst
	}
	for _, group := range [][]layout{common, layouts} {
		for _, l := range group {
			t, err := time.ParseInLocation(l.format, s, o.loc)
			if err != nil {
				continue
			}
			switch l.kind {
			case bdate.DateOnly:
				return bdate.DateOf(t), nil
			case bdate.TimeOnly:
				return bdate.TimeOf(t), nil
			}
			return bdate.FromTime(t), nil
		}
	}
	return bdate.Point{}, fmt.Errorf("%w: %q", ErrUnparseableInput, s)
}

func epoch(sec float64, o options) bdate.Point {
	whole := int64(sec)
	nsec := int64((sec - float64(whole)) * 1e9)
	return bdate.FromTime(time.Unix(whole, nsec).In(o.loc))
}
