package config

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/username/bizdelta/internal/calendar"
	"github.com/username/bizdelta/pkg/bdate"
	"github.com/username/bizdelta/pkg/business"
	"github.com/username/bizdelta/pkg/dateutil"
)

// Calendar builds the holiday sources the config names. It returns nil when
// no source is configured.
func (c *Config) Calendar(logger *zap.Logger) (calendar.Calendar, error) {
	var sources []calendar.Calendar

	if c.Holidays.File != "" {
		fc := calendar.NewFileCalendar(c.Holidays.File, logger)
		if err := fc.Load(); err != nil {
			return nil, err
		}
		sources = append(sources, fc)
	}
	if c.Holidays.Country != "" {
		cc, err := calendar.NewCountryCalendar(c.Holidays.Country)
		if err != nil {
			return nil, err
		}
		sources = append(sources, cc)
	}
	if c.Holidays.IsDayOff {
		sources = append(sources, calendar.NewIsDayOffCalendar(c.Holidays.IsDayOffURL, c.Holidays.GetCacheTTL(), logger))
	}

	switch len(sources) {
	case 0:
		return nil, nil
	case 1:
		return sources[0], nil
	default:
		return calendar.NewCompositeCalendar(logger, sources...), nil
	}
}

// Settings builds business settings from the config.
func (c *Config) Settings(logger *zap.Logger) (*business.Settings, error) {
	workdays, err := c.Window.GetWorkdays()
	if err != nil {
		return nil, err
	}
	start, err := bdate.ParseTimeOfDay(c.Window.BusinessStart)
	if err != nil {
		return nil, fmt.Errorf("window.business_start: %w", err)
	}
	end, err := bdate.ParseTimeOfDay(c.Window.BusinessEnd)
	if err != nil {
		return nil, fmt.Errorf("window.business_end: %w", err)
	}
	loc, err := c.Parser.GetLocation()
	if err != nil {
		return nil, err
	}

	s := business.NewSettings()
	s.SetWorkdays(workdays...)
	s.SetBusinessHours(start, end)
	s.SetStepLimit(c.Window.MaxSteps)

	parseOpts := []dateutil.Option{dateutil.InLocation(loc)}
	if c.Parser.DayFirst {
		parseOpts = append(parseOpts, dateutil.DayFirst())
	}
	s.SetParseOptions(parseOpts...)

	cal, err := c.Calendar(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to set up holidays: %w", err)
	}
	if cal != nil {
		s.SetHolidays(calendar.AsHolidays(cal, logger))
	}

	logger.Debug("Business settings initialized",
		zap.Stringer("settings", s),
		zap.Bool("holidays", cal != nil))
	return s, nil
}
