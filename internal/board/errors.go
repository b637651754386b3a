package board

import (
	"errors"
	"fmt"
)

// Construction errors. A board that fails any of these checks is never built.
var (
	ErrEmptyName           = errors.New("board: empty name")
	ErrDuplicateName       = errors.New("board: duplicate name")
	ErrOverlap             = errors.New("board: gadget footprints overlap")
	ErrNegativeCoefficient = errors.New("board: gravity and friction must be finite and non-negative")
	ErrBadOrientation      = errors.New("board: orientation must be 0, 90, 180 or 270")
	ErrOutOfBounds         = errors.New("board: entity outside the playing area")
	ErrBadSize             = errors.New("board: absorber width and height must be positive")
	ErrUnknownName         = errors.New("board: unknown name")
	ErrTriggerSet          = errors.New("board: trigger already wired")
)

// ConfigError ties a construction error to the entity that caused it.
type ConfigError struct {
	Entity string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %v", e.Entity, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErr(entity string, err error) error {
	return &ConfigError{Entity: entity, Err: err}
}
