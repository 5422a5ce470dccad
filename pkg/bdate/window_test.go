package bdate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// usHolidays covers the US federal holidays the tests cross.
func usHolidays() *HolidaySet {
	s := NewHolidaySet()
	s.Add(day(2014, 1, 1), "New Year's Day")
	s.Add(day(2014, 1, 20), "Martin Luther King Jr. Day")
	s.Add(day(2015, 1, 1), "New Year's Day")
	s.Add(day(2015, 1, 19), "Martin Luther King Jr. Day")
	s.Add(day(2016, 12, 26), "Christmas Day (Observed)")
	s.Add(day(2017, 1, 2), "New Year's Day (Observed)")
	s.Add(day(2017, 1, 16), "Martin Luther King Jr. Day")
	return s
}

func TestNewWindowValidation(t *testing.T) {
	tests := []struct {
		name     string
		workdays []time.Weekday
		start    TimeOfDay
		end      TimeOfDay
		opts     []WindowOption
	}{
		{"no workdays", nil, At(9, 0, 0), At(17, 0, 0), nil},
		{"weekday out of range", []time.Weekday{time.Monday, 7}, At(9, 0, 0), At(17, 0, 0), nil},
		{"negative weekday", []time.Weekday{-1}, At(9, 0, 0), At(17, 0, 0), nil},
		{"start after end", Weekdays(), At(17, 0, 0), At(9, 0, 0), nil},
		{"empty hours", Weekdays(), At(9, 0, 0), At(9, 0, 0), nil},
		{"end past midnight", Weekdays(), At(9, 0, 0), At(24, 0, 0), nil},
		{"zero step limit", Weekdays(), At(9, 0, 0), At(17, 0, 0), []WindowOption{WithStepLimit(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewWindow(tt.workdays, tt.start, tt.end, tt.opts...)
			assert.ErrorIs(t, err, ErrInvalidWindowConfig)
		})
	}
}

func TestStandardWindow(t *testing.T) {
	w := StandardWindow()
	assert.Equal(t, Weekdays(), w.Workdays())
	assert.Equal(t, At(9, 0, 0), w.Start())
	assert.Equal(t, At(17, 0, 0), w.End())
	assert.Equal(t, 8*time.Hour, w.Length())
	assert.Equal(t, DefaultStepLimit, w.StepLimit())
	assert.Equal(t, "Window([Mon Tue Wed Thu Fri] 09:00-17:00)", w.String())
}

func TestIsBusinessDay(t *testing.T) {
	w, err := NewWindow(Weekdays(), At(9, 0, 0), At(17, 0, 0), WithHolidays(usHolidays()))
	require.NoError(t, err)

	tests := []struct {
		name  string
		point Point
		want  bool
	}{
		{"friday", NewDate(2014, 1, 3), true},
		{"saturday", NewDate(2014, 1, 4), false},
		{"sunday", NewDate(2014, 1, 5), false},
		{"holiday", NewDate(2017, 1, 2), false},
		{"datetime after hours still counts", NewDateTime(2014, 1, 3, 23, 0, 0), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBusinessDay(tt.point, w))
		})
	}
}

func TestIsBusinessDayTimeUsesClock(t *testing.T) {
	saturday := func() time.Time { return day(2014, 1, 4) }
	w, err := NewWindow(Weekdays(), At(9, 0, 0), At(17, 0, 0), WithClock(saturday))
	require.NoError(t, err)
	assert.False(t, IsBusinessDay(NewTime(10, 0, 0), w))
}

func TestIsWithinBusinessHours(t *testing.T) {
	w := StandardWindow()
	assert.False(t, w.IsWithinBusinessHours(time.Date(2014, 1, 3, 8, 59, 59, 0, time.UTC)))
	assert.True(t, w.IsWithinBusinessHours(time.Date(2014, 1, 3, 9, 0, 0, 0, time.UTC)))
	assert.True(t, w.IsWithinBusinessHours(time.Date(2014, 1, 3, 16, 59, 59, 0, time.UTC)))
	assert.False(t, w.IsWithinBusinessHours(time.Date(2014, 1, 3, 17, 0, 0, 0, time.UTC)))
}

func TestParseTimeOfDay(t *testing.T) {
	got, err := ParseTimeOfDay("07:30")
	require.NoError(t, err)
	assert.Equal(t, At(7, 30, 0), got)
	assert.Equal(t, "07:30", got.String())

	got, err = ParseTimeOfDay("16:45:10")
	require.NoError(t, err)
	assert.Equal(t, At(16, 45, 10), got)
	assert.Equal(t, "16:45:10", got.String())

	_, err = ParseTimeOfDay("25:00")
	assert.ErrorIs(t, err, ErrInvalidWindowConfig)
}

func TestHolidaySet(t *testing.T) {
	s := usHolidays()
	name, ok := s.Name(time.Date(2017, 1, 2, 15, 0, 0, 0, time.UTC))
	assert.True(t, ok)
	assert.Equal(t, "New Year's Day (Observed)", name)
	assert.False(t, s.Contains(day(2017, 1, 3)))
	assert.Equal(t, 7, s.Len())

	var empty *HolidaySet
	assert.False(t, empty.Contains(day(2017, 1, 2)))
	assert.Zero(t, empty.Len())
}

func TestHolidayFunc(t *testing.T) {
	firstOfMonth := HolidayFunc(func(d time.Time) bool { return d.Day() == 1 })
	w, err := NewWindow(Weekdays(), At(9, 0, 0), At(17, 0, 0), WithHolidays(firstOfMonth))
	require.NoError(t, err)

	assert.False(t, w.IsBusinessDay(day(2014, 7, 1)))
	assert.True(t, w.IsBusinessDay(day(2014, 7, 2)))
	assert.False(t, IsBusinessDay(NewDate(2014, 10, 1), w))
}
