package bdate

import (
	"errors"
	"fmt"

	"github.com/username/bizdelta/pkg/reldelta"
)

var (
	// ErrInvalidWindowConfig is returned when a Window cannot be built from
	// the given workdays and business hours.
	ErrInvalidWindowConfig = errors.New("invalid business window config")

	// ErrIterationLimitExceeded is returned when a stepping loop runs past
	// the window's step limit.
	ErrIterationLimitExceeded = errors.New("iteration limit exceeded")

	// ErrInvalidMagnitude is returned for NaN, infinite or out of range
	// business amounts.
	ErrInvalidMagnitude = errors.New("invalid business magnitude")

	// ErrDivisionByZero is returned when a delta is divided by zero.
	ErrDivisionByZero = reldelta.ErrDivisionByZero
)

// stepper counts loop iterations against a limit.
type stepper struct {
	op    string
	limit int
	n     int
}

func (s *stepper) tick() error {
	s.n++
	if s.n > s.limit {
		return fmt.Errorf("%w: %s took more than %d steps", ErrIterationLimitExceeded, s.op, s.limit)
	}
	return nil
}
