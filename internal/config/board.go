package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Board struct {
	Width     int `yaml:"width" validate:"gt=0"`
	Height    int `yaml:"height" validate:"gt=0"`
	MineCount int `yaml:"mines" validate:"gt=0"`
}

// DefaultBoard is 40 columns by 20 rows with 99 mines.
var DefaultBoard = Board{Width: 40, Height: 20, MineCount: 99}

func (b Board) Validate() error {
	if err := validate.Struct(b); err != nil {
		return fmt.Errorf("invalid board config: %w", err)
	}
	if b.MineCount >= b.Width*b.Height {
		return fmt.Errorf(
			"invalid board config: %d mines do not fit a %dx%d grid",
			b.MineCount, b.Width, b.Height,
		)
	}
	return nil
}

func intEnv(key string, fallback int) (int, error) {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unable to convert %s to int: %w", key, err)
	}
	return n, nil
}

// NewBoard reads the default board of new games from BOARD_WIDTH,
// BOARD_HEIGHT and BOARD_MINES.
func NewBoard() (*Board, error) {
	var (
		b   = DefaultBoard
		err error
	)
	if b.Width, err = intEnv("BOARD_WIDTH", b.Width); err != nil {
		return nil, err
	}
	if b.Height, err = intEnv("BOARD_HEIGHT", b.Height); err != nil {
		return nil, err
	}
	if b.MineCount, err = intEnv("BOARD_MINES", b.MineCount); err != nil {
		return nil, err
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &b, nil
}

// InputWindow is the chord gesture window, INPUT_WINDOW.
func InputWindow() (time.Duration, error) {
	return durationEnv("INPUT_WINDOW", 300*time.Millisecond)
}
