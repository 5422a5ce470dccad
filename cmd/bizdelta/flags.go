package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/username/bizdelta/pkg/bdate"
	"github.com/username/bizdelta/pkg/reldelta"
)

// deltaFlags are the business and linear amounts accepted by add and sub.
type deltaFlags struct {
	bdays, bhours, bminutes, bseconds float64

	years, months, days, hours, minutes, seconds int
	weekday                                      string
}

func (f *deltaFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&f.bdays, "bdays", 0, "Business days (may be fractional)")
	fs.Float64Var(&f.bhours, "bhours", 0, "Business hours (may be fractional)")
	fs.Float64Var(&f.bminutes, "bminutes", 0, "Business minutes (may be fractional)")
	fs.Float64Var(&f.bseconds, "bseconds", 0, "Business seconds")
	fs.IntVar(&f.years, "years", 0, "Calendar years")
	fs.IntVar(&f.months, "months", 0, "Calendar months")
	fs.IntVar(&f.days, "days", 0, "Calendar days")
	fs.IntVar(&f.hours, "hours", 0, "Clock hours")
	fs.IntVar(&f.minutes, "minutes", 0, "Clock minutes")
	fs.IntVar(&f.seconds, "seconds", 0, "Clock seconds")
	fs.StringVar(&f.weekday, "weekday", "", "Move to the next weekday, e.g. MO, FR(+2), SU(-1)")
}

// magnitudes converts the flags that were set on cmd. Unset business flags
// stay unset.
func (f *deltaFlags) magnitudes(cmd *cobra.Command) (bdate.Magnitudes, error) {
	var m bdate.Magnitudes
	changed := cmd.Flags().Changed
	if changed("bdays") {
		m.BDays = bdate.Amount(f.bdays)
	}
	if changed("bhours") {
		m.BHours = bdate.Amount(f.bhours)
	}
	if changed("bminutes") {
		m.BMinutes = bdate.Amount(f.bminutes)
	}
	if changed("bseconds") {
		m.BSeconds = bdate.Amount(f.bseconds)
	}
	m.Linear = reldelta.Delta{
		Years:   f.years,
		Months:  f.months,
		Days:    f.days,
		Hours:   f.hours,
		Minutes: f.minutes,
		Seconds: f.seconds,
	}
	if f.weekday != "" {
		wd, err := parseWeekday(f.weekday)
		if err != nil {
			return m, err
		}
		m.Linear.Weekday = wd
	}
	return m, nil
}

var weekdayCodes = map[string]time.Weekday{
	"MO": time.Monday,
	"TU": time.Tuesday,
	"WE": time.Wednesday,
	"TH": time.Thursday,
	"FR": time.Friday,
	"SA": time.Saturday,
	"SU": time.Sunday,
}

// parseWeekday reads "MO" or "MO(+2)" / "MO(-1)".
func parseWeekday(s string) (*reldelta.Weekday, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	code, nth := s, 0
	if i := strings.IndexByte(s, '('); i >= 0 {
		if !strings.HasSuffix(s, ")") {
			return nil, fmt.Errorf("invalid weekday %q", s)
		}
		if _, err := fmt.Sscanf(s[i+1:len(s)-1], "%d", &nth); err != nil || nth == 0 {
			return nil, fmt.Errorf("invalid weekday occurrence in %q", s)
		}
		code = s[:i]
	}
	wd, ok := weekdayCodes[code]
	if !ok {
		return nil, fmt.Errorf("unknown weekday %q", code)
	}
	if nth == 0 {
		return reldelta.On(wd), nil
	}
	return reldelta.Nth(wd, nth), nil
}
