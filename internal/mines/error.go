package mines

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidConfiguration = errors.New("invalid board configuration")
	ErrOutOfBounds          = errors.New("cell out of bounds")
	ErrPlacement            = errors.New("unable to place mines")
	ErrGameOver             = errors.New("game is over")
)

type ConfigError struct {
	Width, Height, MineCount int
	Reason                   string
}

// [ConfigError] implements [error]
func (e ConfigError) Error() string {
	return fmt.Sprintf(
		"invalid board %dx%d with %d mines: %s",
		e.Width, e.Height, e.MineCount, e.Reason,
	)
}

func (e ConfigError) Unwrap() error {
	return ErrInvalidConfiguration
}

type BoundsError struct {
	X, Y          int
	Width, Height int
}

// [BoundsError] implements [error]
func (e BoundsError) Error() string {
	return fmt.Sprintf(
		"cell %d:%d is outside of %dx%d board", e.X, e.Y, e.Width, e.Height,
	)
}

func (e BoundsError) Unwrap() error {
	return ErrOutOfBounds
}
