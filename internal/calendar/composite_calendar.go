package calendar

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// CompositeCalendar implements Calendar as the union of several sources.
// A day is a holiday if any source says so; the first such source supplies
// the note. Failing sources are logged and skipped.
type CompositeCalendar struct {
	sources []Calendar
	logger  *zap.Logger
}

// NewCompositeCalendar creates a new CompositeCalendar
func NewCompositeCalendar(logger *zap.Logger, sources ...Calendar) *CompositeCalendar {
	return &CompositeCalendar{
		sources: sources,
		logger:  logger,
	}
}

// GetDayInfo returns detailed info for a specific day
func (cc *CompositeCalendar) GetDayInfo(date time.Time) (*DayInfo, error) {
	var errs []error
	var answer *DayInfo
	for i, src := range cc.sources {
		info, err := src.GetDayInfo(date)
		if err != nil {
			cc.logger.Warn("Calendar source failed, skipping",
				zap.Int("source", i),
				zap.String("date", date.Format("2006-01-02")),
				zap.Error(err))
			errs = append(errs, err)
			continue
		}
		if info.IsHoliday() {
			return info, nil
		}
		if answer == nil {
			answer = info
		}
	}
	if answer == nil {
		if len(errs) == 0 {
			return regularDay(date), nil
		}
		return nil, fmt.Errorf("all calendar sources failed: %w", errors.Join(errs...))
	}
	return answer, nil
}

// GetMonthInfo returns calendar info for the entire month
func (cc *CompositeCalendar) GetMonthInfo(year int, month time.Month) (*MonthInfo, error) {
	return monthOf(year, month, cc.GetDayInfo)
}

// Load loads every file-backed source.
func (cc *CompositeCalendar) Load() error {
	for _, src := range cc.sources {
		if fc, ok := src.(*FileCalendar); ok {
			if err := fc.Load(); err != nil {
				return fmt.Errorf("failed to load calendar file: %w", err)
			}
		}
	}
	return nil
}
