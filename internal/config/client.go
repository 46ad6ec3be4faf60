package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Client configures the terminal game.
type Client struct {
	Board       Board         `yaml:"board"`
	Seed        *uint64       `yaml:"seed"`
	InputWindow time.Duration `yaml:"input_window" validate:"gte=0"`
	SweepDelay  time.Duration `yaml:"sweep_delay" validate:"gte=0"`
	Log         Log           `yaml:"log"`
}

// Log describes the rotated log file of the terminal game. An empty File
// disables file logging.
type Log struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level" validate:"omitempty,oneof=trace debug info warn warning error"`
	MaxSize    int    `yaml:"max_size" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" validate:"gte=0"`
	MaxAge     int    `yaml:"max_age" validate:"gte=0"`
}

func DefaultClient() Client {
	return Client{
		Board:       DefaultBoard,
		InputWindow: 300 * time.Millisecond,
		SweepDelay:  30 * time.Millisecond,
		Log: Log{
			Level:      "info",
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		},
	}
}

// LoadClient reads a YAML file over the defaults. A missing file is not an
// error unless required is set.
func LoadClient(path string, required bool) (*Client, error) {
	c := DefaultClient()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist) && !required:
		case err != nil:
			return nil, fmt.Errorf("unable to read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &c); err != nil {
				return nil, fmt.Errorf("unable to parse %s: %w", path, err)
			}
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c Client) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return c.Board.Validate()
}
