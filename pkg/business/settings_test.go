package business

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/bizdelta/pkg/bdate"
	"github.com/username/bizdelta/pkg/dateutil"
	"github.com/username/bizdelta/pkg/reldelta"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func usHolidays() *bdate.HolidaySet {
	return bdate.NewHolidaySet(
		time.Date(2015, 7, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2016, 12, 26, 0, 0, 0, 0, time.UTC),
		time.Date(2017, 1, 2, 0, 0, 0, 0, time.UTC),
	)
}

func TestSettingsDefaults(t *testing.T) {
	s := NewSettings()
	assert.Equal(t, bdate.Weekdays(), s.Workdays())
	start, end := s.BusinessHours()
	assert.Equal(t, bdate.At(9, 0, 0), start)
	assert.Equal(t, bdate.At(17, 0, 0), end)
	assert.Nil(t, s.Holidays())
}

func TestSettingsGetSet(t *testing.T) {
	s := NewSettings()
	s.SetWorkdays(time.Monday, time.Tuesday, time.Wednesday)
	s.SetBusinessHours(bdate.At(7, 30, 0), bdate.At(16, 0, 0))
	s.SetHolidays(usHolidays())

	w, err := s.Window()
	require.NoError(t, err)
	assert.Equal(t, []time.Weekday{time.Monday, time.Tuesday, time.Wednesday}, w.Workdays())
	assert.Equal(t, bdate.At(7, 30, 0), w.Start())
	assert.Equal(t, bdate.At(16, 0, 0), w.End())

	days := s.Workdays()
	days[0] = time.Sunday
	assert.Equal(t, time.Monday, s.Workdays()[0], "Workdays must return a copy")
}

func TestSettingsOverrides(t *testing.T) {
	s := NewSettings()

	w, err := s.Window(WithStart(bdate.At(10, 30, 0)), WithWorkdays(time.Saturday))
	require.NoError(t, err)
	assert.Equal(t, bdate.At(10, 30, 0), w.Start())
	assert.Equal(t, bdate.At(17, 0, 0), w.End())
	assert.Equal(t, []time.Weekday{time.Saturday}, w.Workdays())

	_, err = s.Window(WithEnd(bdate.At(8, 0, 0)))
	assert.ErrorIs(t, err, bdate.ErrInvalidWindowConfig)

	// overrides do not leak into the defaults
	start, _ := s.BusinessHours()
	assert.Equal(t, bdate.At(9, 0, 0), start)
}

func TestSettingsEmptyWorkdaysOverride(t *testing.T) {
	s := NewSettings()

	_, err := s.Window(WithWorkdays())
	assert.ErrorIs(t, err, bdate.ErrInvalidWindowConfig)

	_, err = s.Add("2014-01-03", Days(1), WithWorkdays())
	assert.ErrorIs(t, err, bdate.ErrInvalidWindowConfig)

	_, err = s.Window(WithWorkdays([]time.Weekday{}...))
	assert.ErrorIs(t, err, bdate.ErrInvalidWindowConfig)
}

func TestSettingsDiff(t *testing.T) {
	s := NewSettings()

	d, err := s.Diff("2014-01-07", "2014-01-03")
	require.NoError(t, err)
	assert.Equal(t, bdate.Some(2), d.BDays)
	assert.Equal(t, 4, d.Linear.Days)

	s.SetHolidays(usHolidays())
	d, err = s.Diff("2017-01-03", "2016-12-23")
	require.NoError(t, err)
	assert.Equal(t, bdate.Some(5), d.BDays)

	_, err = s.Diff("abc", "2014-01-03")
	assert.ErrorIs(t, err, dateutil.ErrUnparseableInput)
}

func TestSettingsAddSub(t *testing.T) {
	s := NewSettings()
	s.SetHolidays(usHolidays())

	tests := []struct {
		name string
		fn   func() (bdate.Point, error)
		want bdate.Point
	}{
		{
			"add over new year",
			func() (bdate.Point, error) { return s.Add("2016-12-30", Days(1)) },
			bdate.NewDate(2017, 1, 3),
		},
		{
			"add from saturday",
			func() (bdate.Point, error) { return s.Add("2014-11-15 1:23", Days(1)) },
			bdate.NewDateTime(2014, 11, 18, 1, 23, 0),
		},
		{
			"sub negative",
			func() (bdate.Point, error) { return s.Sub("2014-11-15 1:23", Days(-1)) },
			bdate.NewDateTime(2014, 11, 18, 1, 23, 0),
		},
		{
			"calendar offsets",
			func() (bdate.Point, error) {
				return s.Add(bdate.NewDate(2016, 1, 1), bdate.Magnitudes{Linear: reldelta.Delta{Hours: 2, Minutes: 4}})
			},
			bdate.NewDateTime(2016, 1, 1, 2, 4, 0),
		},
		{
			"override hours",
			func() (bdate.Point, error) {
				return s.Add("2015-01-02 16:45", bdate.Magnitudes{BMinutes: bdate.Amount(30)}, WithStart(bdate.At(7, 30, 0)))
			},
			bdate.NewDateTime(2015, 1, 5, 7, 45, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn()
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestSettingsTodayNow(t *testing.T) {
	s := NewSettings()
	s.SetClock(fixedClock(time.Date(2014, 1, 3, 15, 0, 0, 0, time.UTC)))

	today, err := s.Today(Days(1))
	require.NoError(t, err)
	assert.True(t, today.Equal(bdate.NewDate(2014, 1, 6)), "Today(+1) = %v", today)

	now, err := s.Now(bdate.Magnitudes{BHours: bdate.Amount(3)})
	require.NoError(t, err)
	assert.True(t, now.Equal(bdate.NewDateTime(2014, 1, 6, 10, 0, 0)), "Now(+3h) = %v", now)

	back, err := s.Today(Days(-45))
	require.NoError(t, err)
	sub, err := s.Sub(bdate.NewDate(2014, 1, 3), Days(45))
	require.NoError(t, err)
	assert.True(t, back.Equal(sub))
}

func TestSettingsNilClock(t *testing.T) {
	s := NewSettings()
	s.SetClock(nil)

	before := time.Now()
	_, err := s.Today(Days(1))
	require.NoError(t, err)
	_, err = s.Now(bdate.Magnitudes{BHours: bdate.Amount(1)})
	require.NoError(t, err)
	_, err = s.Parse("10:00")
	require.NoError(t, err)
	assert.False(t, s.Clock().Before(before))
}

func TestSettingsParse(t *testing.T) {
	s := NewSettings()
	s.SetClock(fixedClock(time.Date(2014, 1, 3, 15, 0, 0, 0, time.UTC)))
	s.SetParseOptions(dateutil.DayFirst())

	assert.Equal(t, time.Date(2014, 1, 3, 15, 0, 0, 0, time.UTC), s.Clock())

	p, err := s.Parse("2/1/2014")
	require.NoError(t, err)
	assert.True(t, p.Equal(bdate.NewDate(2014, 1, 2)), "Parse() = %v", p)

	p, err = s.ParseDateTime("10:30")
	require.NoError(t, err)
	assert.True(t, p.Equal(bdate.NewDateTime(2014, 1, 3, 10, 30, 0)), "ParseDateTime() = %v", p)

	// the clock travels with the returned options
	p, err = dateutil.ParseDateTime("08:00", s.ParseOptions()...)
	require.NoError(t, err)
	assert.True(t, p.Equal(bdate.NewDateTime(2014, 1, 3, 8, 0, 0)), "ParseDateTime() = %v", p)

	_, err = s.Parse("abc")
	assert.ErrorIs(t, err, dateutil.ErrUnparseableInput)
}

func TestSettingsIsBusinessDay(t *testing.T) {
	s := NewSettings()
	s.SetHolidays(usHolidays())
	s.SetClock(fixedClock(time.Date(2014, 1, 4, 12, 0, 0, 0, time.UTC)))

	tests := []struct {
		input any
		want  bool
	}{
		{"2015-07-02", true},
		{"2015-07-03", false},
		{"2015-07-04", false},
		{"10:00", false},
		{time.Date(2015, 7, 6, 0, 0, 0, 0, time.UTC), true},
	}

	for _, tt := range tests {
		got, err := s.IsBusinessDay(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "IsBusinessDay(%v)", tt.input)
	}

	_, err := s.IsBusinessDay([]int{1})
	assert.True(t, errors.Is(err, dateutil.ErrUnsupportedInputType))
}

func TestSettingsParseOptions(t *testing.T) {
	s := NewSettings()
	s.SetParseOptions(dateutil.DayFirst())

	d, err := s.Diff("1/3/2014", "1/1/2014")
	require.NoError(t, err)
	assert.Equal(t, 2, d.Linear.Months)
}

func TestDefaultFunctions(t *testing.T) {
	got, err := Add("2014-01-03", Days(2))
	require.NoError(t, err)
	assert.True(t, got.Equal(bdate.NewDate(2014, 1, 7)))

	got, err = Sub("2014-01-07", Days(2))
	require.NoError(t, err)
	assert.True(t, got.Equal(bdate.NewDate(2014, 1, 3)))

	ok, err := IsBusinessDay("2014-01-04")
	require.NoError(t, err)
	assert.False(t, ok)

	d, err := Diff("2014-01-31", "2014-01-01")
	require.NoError(t, err)
	assert.Equal(t, bdate.Some(22), d.BDays)
}
