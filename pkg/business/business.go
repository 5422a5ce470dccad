package business

import (
	"github.com/username/bizdelta/pkg/bdate"
)

// Diff is Default().Diff.
func Diff(a, b any, ov ...Override) (bdate.Delta, error) {
	return defaultSettings.Diff(a, b, ov...)
}

// Add is Default().Add.
func Add(p any, m bdate.Magnitudes, ov ...Override) (bdate.Point, error) {
	return defaultSettings.Add(p, m, ov...)
}

// Sub is Default().Sub.
func Sub(p any, m bdate.Magnitudes, ov ...Override) (bdate.Point, error) {
	return defaultSettings.Sub(p, m, ov...)
}

// IsBusinessDay is Default().IsBusinessDay.
func IsBusinessDay(p any, ov ...Override) (bool, error) {
	return defaultSettings.IsBusinessDay(p, ov...)
}

// Today is Default().Today.
func Today(m bdate.Magnitudes, ov ...Override) (bdate.Point, error) {
	return defaultSettings.Today(m, ov...)
}

// Now is Default().Now.
func Now(m bdate.Magnitudes, ov ...Override) (bdate.Point, error) {
	return defaultSettings.Now(m, ov...)
}

// Days is shorthand for whole business days.
func Days(n float64) bdate.Magnitudes {
	return bdate.Magnitudes{BDays: bdate.Amount(n)}
}
