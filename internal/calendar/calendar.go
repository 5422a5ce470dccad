package calendar

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/username/bizdelta/pkg/bdate"
)

// DayType represents the type of day
type DayType int

const (
	DayTypeWorkday DayType = iota + 1
	DayTypeWeekend
	DayTypeHoliday
	DayTypeShortened
)

func (t DayType) String() string {
	switch t {
	case DayTypeWorkday:
		return "workday"
	case DayTypeWeekend:
		return "weekend"
	case DayTypeHoliday:
		return "holiday"
	case DayTypeShortened:
		return "shortened"
	default:
		return fmt.Sprintf("DayType(%d)", int(t))
	}
}

// ParseDayType is the inverse of DayType.String.
func ParseDayType(s string) (DayType, error) {
	for _, t := range []DayType{DayTypeWorkday, DayTypeWeekend, DayTypeHoliday, DayTypeShortened} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown day type %q", s)
}

// DayInfo represents information about a specific day
type DayInfo struct {
	Date time.Time
	Type DayType
	Note string
}

// IsHoliday reports whether the day is a public holiday. Ordinary weekends
// are left to the business window.
func (d *DayInfo) IsHoliday() bool {
	return d.Type == DayTypeHoliday
}

// MonthInfo represents calendar information for a month
type MonthInfo struct {
	Year     int
	Month    time.Month
	Holidays int
	Days     []DayInfo
}

// Day returns the entry for day of month, or nil.
func (m *MonthInfo) Day(day int) *DayInfo {
	for i := range m.Days {
		if m.Days[i].Date.Day() == day {
			return &m.Days[i]
		}
	}
	return nil
}

// Calendar is a source of holiday data.
type Calendar interface {
	// GetDayInfo returns detailed info for a specific day
	GetDayInfo(date time.Time) (*DayInfo, error)

	// GetMonthInfo returns calendar info for the entire month
	GetMonthInfo(year int, month time.Month) (*MonthInfo, error)
}

// regularDay is the answer for dates a source has no entry for.
func regularDay(date time.Time) *DayInfo {
	y, m, d := date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return &DayInfo{Date: day, Type: DayTypeWeekend}
	}
	return &DayInfo{Date: day, Type: DayTypeWorkday}
}

// monthOf builds month info by asking for every day of the month.
func monthOf(year int, month time.Month, day func(time.Time) (*DayInfo, error)) (*MonthInfo, error) {
	daysInMonth := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	info := &MonthInfo{Year: year, Month: month, Days: make([]DayInfo, 0, daysInMonth)}
	for d := 1; d <= daysInMonth; d++ {
		di, err := day(time.Date(year, month, d, 0, 0, 0, 0, time.UTC))
		if err != nil {
			return nil, err
		}
		if di.IsHoliday() {
			info.Holidays++
		}
		info.Days = append(info.Days, *di)
	}
	return info, nil
}

// AsHolidays exposes a calendar to the business engine. Lookup errors are
// logged and the date is treated as an ordinary day.
func AsHolidays(cal Calendar, logger *zap.Logger) bdate.Holidays {
	return bdate.HolidayFunc(func(date time.Time) bool {
		info, err := cal.GetDayInfo(date)
		if err != nil {
			logger.Warn("Holiday lookup failed, treating as regular day",
				zap.String("date", date.Format("2006-01-02")),
				zap.Error(err))
			return false
		}
		return info.IsHoliday()
	})
}
