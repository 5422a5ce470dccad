package calendar

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rickar/cal"
)

var countries = map[string]func(*cal.Calendar){
	"us":  cal.AddUsHolidays,
	"de":  cal.AddGermanHolidays,
	"dk":  cal.AddDanishHolidays,
	"ecb": cal.AddEcbHolidays,
}

// Countries lists the supported country codes.
func Countries() []string {
	codes := make([]string, 0, len(countries))
	for code := range countries {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// CountryCalendar implements Calendar from rule-based national holidays,
// including days observed in place of holidays that fall on a weekend.
type CountryCalendar struct {
	code string
	cal  *cal.Calendar
}

// NewCountryCalendar returns the holidays of the given country code.
func NewCountryCalendar(code string) (*CountryCalendar, error) {
	code = strings.ToLower(code)
	add, ok := countries[code]
	if !ok {
		return nil, fmt.Errorf("unsupported holiday country %q (supported: %s)", code, strings.Join(Countries(), ", "))
	}
	c := cal.NewCalendar()
	c.Observed = cal.ObservedNearest
	add(c)
	return &CountryCalendar{code: code, cal: c}, nil
}

// GetDayInfo returns detailed info for a specific day
func (cc *CountryCalendar) GetDayInfo(date time.Time) (*DayInfo, error) {
	info := regularDay(date)
	switch {
	case cc.cal.IsHoliday(date):
		info.Type = DayTypeHoliday
		info.Note = strings.ToUpper(cc.code) + " holiday"
	case !cal.IsWeekend(date) && !cc.cal.IsWorkday(date):
		info.Type = DayTypeHoliday
		info.Note = strings.ToUpper(cc.code) + " holiday (observed)"
	}
	return info, nil
}

// GetMonthInfo returns calendar info for the entire month
func (cc *CountryCalendar) GetMonthInfo(year int, month time.Month) (*MonthInfo, error) {
	return monthOf(year, month, cc.GetDayInfo)
}
