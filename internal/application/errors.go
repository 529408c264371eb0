package application

import (
	"errors"
	"fmt"
)

// Error kinds. Specific errors wrap one of them so callers can match with errors.Is.
var (
	ErrUsage       = errors.New("usage error")
	ErrForbidden   = errors.New("forbidden")
	ErrNotFound    = errors.New("not found")
	ErrUnreachable = errors.New("unreachable")
)

var (
	ErrUnknownVehicle = fmt.Errorf("%w: unknown vehicle category", ErrUsage)
	ErrInvalidAmount  = fmt.Errorf("%w: amount must be positive", ErrUsage)
	ErrWarExists      = fmt.Errorf("%w: war already exists", ErrUsage)
	ErrWarNotFound    = fmt.Errorf("%w: war not found", ErrUsage)
	ErrNoActiveWar    = fmt.Errorf("%w: no active war", ErrUsage)
	ErrEmptyWarName   = fmt.Errorf("%w: war number is empty", ErrUsage)
)
