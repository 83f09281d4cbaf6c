package maze

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is the category of every load-time error: malformed
	// grids, missing markers, bad geometry or unknown tile colors.
	ErrConfiguration = errors.New("configuration error")

	// ErrOutOfBounds is returned for tile lookups outside the grid.
	ErrOutOfBounds = errors.New("out of bounds")
)

// ConfigurationError describes a malformed or incomplete maze or setting.
// It is fatal at load time and never recovered from.
type ConfigurationError struct {
	Op     string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

func configErr(op, format string, args ...any) error {
	return &ConfigurationError{Op: op, Reason: fmt.Sprintf(format, args...)}
}

// OutOfBoundsError reports a coordinate outside a W x H grid.
type OutOfBoundsError struct {
	Coord Coord
	W, H  int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("coordinate %s outside %dx%d grid", e.Coord, e.W, e.H)
}

func (e *OutOfBoundsError) Unwrap() error {
	return ErrOutOfBounds
}
