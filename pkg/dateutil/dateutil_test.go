package dateutil

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/username/bizdelta/pkg/bdate"
)

func TestStartOfDay(t *testing.T) {
	input := time.Date(2025, 1, 15, 14, 30, 45, 123456789, time.UTC)
	expected := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)

	result := StartOfDay(input)

	if !result.Equal(expected) {
		t.Errorf("StartOfDay(%v) = %v, want %v", input, result, expected)
	}
}

func TestEndOfDay(t *testing.T) {
	input := time.Date(2025, 1, 15, 14, 30, 45, 0, time.UTC)
	expected := time.Date(2025, 1, 15, 23, 59, 59, 999999000, time.UTC)

	result := EndOfDay(input)

	if !result.Equal(expected) {
		t.Errorf("EndOfDay(%v) = %v, want %v", input, result, expected)
	}
}

func TestPeriodAccessors(t *testing.T) {
	dt := bdate.NewDateTime(2016, 12, 30, 5, 0, 0)
	d := bdate.NewDate(2015, 2, 13)
	end := func(y int, m time.Month, day int) bdate.Point {
		return bdate.FromTime(time.Date(y, m, day, 23, 59, 59, 999999000, time.UTC))
	}

	tests := []struct {
		name string
		got  bdate.Point
		want bdate.Point
	}{
		{"datetime day start", DayStart(dt), bdate.NewDateTime(2016, 12, 30, 0, 0, 0)},
		{"datetime day end", DayEnd(dt), end(2016, 12, 30)},
		{"datetime month start", MonthStart(dt), bdate.NewDateTime(2016, 12, 1, 0, 0, 0)},
		{"datetime month end", MonthEnd(dt), end(2016, 12, 31)},
		{"datetime year start", YearStart(dt), bdate.NewDateTime(2016, 1, 1, 0, 0, 0)},
		{"datetime year end", YearEnd(dt), end(2016, 12, 31)},
		{"march month end", MonthEnd(bdate.NewDateTime(2015, 3, 15, 23, 45, 0)), end(2015, 3, 31)},
		{"date month start", MonthStart(d), bdate.NewDate(2015, 2, 1)},
		{"date month end", MonthEnd(d), bdate.NewDate(2015, 2, 28)},
		{"date year start", YearStart(d), bdate.NewDate(2015, 1, 1)},
		{"date year end", YearEnd(d), bdate.NewDate(2015, 12, 31)},
		{"date day start", DayStart(d), d},
		{"time day end", DayEnd(bdate.NewTime(3, 40, 0)), bdate.NewTime(3, 40, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.got.Equal(tt.want) {
				t.Errorf("got %v (%v), want %v (%v)", tt.got, tt.got.Kind(), tt.want, tt.want.Kind())
			}
		})
	}
}

func TestWeek(t *testing.T) {
	tests := []struct {
		name  string
		input bdate.Point
		want  int
	}{
		{"Mid January 2025", bdate.NewDate(2025, 1, 15), 3},
		{"Start of year", bdate.NewDate(2025, 1, 1), 1},
		{"Belongs to previous ISO year", bdate.NewDate(2016, 1, 1), 53},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Week(tt.input); got != tt.want {
				t.Errorf("Week(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input any
		opts  []Option
		want  bdate.Point
	}{
		{"iso date", "2015-03-25", nil, bdate.NewDate(2015, 3, 25)},
		{"iso datetime", "2015-03-25 12:34", nil, bdate.NewDateTime(2015, 3, 25, 12, 34, 0)},
		{"single digit hour", "2014-11-15 1:23", nil, bdate.NewDateTime(2014, 11, 15, 1, 23, 0)},
		{"rfc3339", "2015-01-02T16:45:00Z", nil, bdate.NewDateTime(2015, 1, 2, 16, 45, 0)},
		{"dotted", "15.01.2025", nil, bdate.NewDate(2025, 1, 15)},
		{"month first", "1/2/2014", nil, bdate.NewDate(2014, 1, 2)},
		{"day first", "1/2/2014", []Option{DayFirst()}, bdate.NewDate(2014, 2, 1)},
		{"long form", "January 2, 2014", nil, bdate.NewDate(2014, 1, 2)},
		{"bytes", []byte("1/2/2014"), nil, bdate.NewDate(2014, 1, 2)},
		{"reader", strings.NewReader(" 2014-01-01\n"), nil, bdate.NewDate(2014, 1, 1)},
		{"buffer", bytes.NewBufferString("2014-01-01"), nil, bdate.NewDate(2014, 1, 1)},
		{"time", "12:45:54", nil, bdate.NewTime(12, 45, 54)},
		{"short time", "3:40", nil, bdate.NewTime(3, 40, 0)},
		{"afternoon", "2:30 PM", nil, bdate.NewTime(14, 30, 0)},
		{"epoch", 1388577600, nil, bdate.NewDateTime(2014, 1, 1, 12, 0, 0)},
		{"float epoch", 1388577600.5, nil, bdate.FromTime(time.Date(2014, 1, 1, 12, 0, 0, 500000000, time.UTC))},
		{"time value", time.Date(2014, 1, 1, 8, 0, 0, 0, time.UTC), nil, bdate.NewDateTime(2014, 1, 1, 8, 0, 0)},
		{"point", bdate.NewDate(2014, 1, 1), nil, bdate.NewDate(2014, 1, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input, tt.opts...)
			if err != nil {
				t.Fatalf("Parse(%v) error = %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("Parse(%v) = %v (%v), want %v (%v)", tt.input, got, got.Kind(), tt.want, tt.want.Kind())
			}
		})
	}
}

func TestParseInLocation(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	got, err := Parse("2014-01-01 10:00", InLocation(loc))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := time.Date(2014, 1, 1, 7, 0, 0, 0, time.UTC)
	if !got.Time().Equal(want) {
		t.Errorf("Parse() = %v, want %v", got.Time(), want)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse("abc"); !errors.Is(err, ErrUnparseableInput) {
		t.Errorf("Parse(abc) error = %v, want ErrUnparseableInput", err)
	}
	if _, err := Parse([]string{"a", "b", "c"}); !errors.Is(err, ErrUnsupportedInputType) {
		t.Errorf("Parse(slice) error = %v, want ErrUnsupportedInputType", err)
	}
	if _, err := ParseDate(bdate.NewTime(3, 40, 0)); !errors.Is(err, ErrUnsupportedInputType) {
		t.Errorf("ParseDate(time) error = %v, want ErrUnsupportedInputType", err)
	}
}

func TestParseCoercions(t *testing.T) {
	now := func() time.Time { return time.Date(2015, 6, 1, 18, 0, 0, 0, time.UTC) }

	d, err := ParseDate(1388577600)
	if err != nil || !d.Equal(bdate.NewDate(2014, 1, 1)) {
		t.Errorf("ParseDate(epoch) = %v, %v, want 2014-01-01", d, err)
	}

	dt, err := ParseDateTime("3:40", WithNow(now))
	if err != nil || !dt.Equal(bdate.NewDateTime(2015, 6, 1, 3, 40, 0)) {
		t.Errorf("ParseDateTime(3:40) = %v, %v, want 2015-06-01 03:40", dt, err)
	}

	dt, err = ParseDateTime("2015-03-25")
	if err != nil || !dt.Equal(bdate.NewDateTime(2015, 3, 25, 0, 0, 0)) {
		t.Errorf("ParseDateTime(date) = %v, %v, want midnight", dt, err)
	}

	tm, err := ParseTime("2015-03-25 12:34")
	if err != nil || !tm.Equal(bdate.NewTime(12, 34, 0)) {
		t.Errorf("ParseTime(datetime) = %v, %v, want 12:34", tm, err)
	}
}
