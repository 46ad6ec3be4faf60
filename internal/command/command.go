package command

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/input"
)

type Verb string

const (
	Noop       Verb = "g"
	Open       Verb = "o"
	Flag       Verb = "f"
	Chord      Verb = "c"
	Forfeit    Verb = "r" // =)
	Click      Verb = "l"
	RightClick Verb = "s"
)

var (
	ErrBadCommand = errors.New("unknown command")
	ErrBadArgs    = errors.New("invalid command arguments")
)

type Command struct {
	Verb Verb
	X, Y int
}

func (c Command) String() string {
	if c.Verb.takesPoint() {
		return fmt.Sprintf("%s %d %d", c.Verb, c.X, c.Y)
	}
	return string(c.Verb)
}

func (v Verb) takesPoint() bool {
	switch v {
	case Open, Flag, Chord, Click, RightClick:
		return true
	default:
		return false
	}
}

// Parse reads one command line such as "o 3 4".
func Parse(line string) (Command, error) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return Command{}, ErrBadCommand
	}
	cmd := Command{Verb: Verb(strings.ToLower(tokens[0]))}
	args := tokens[1:]
	switch {
	case cmd.Verb == Noop || cmd.Verb == Forfeit:
		if len(args) != 0 {
			return Command{}, fmt.Errorf("%w: %q takes no arguments", ErrBadArgs, cmd.Verb)
		}
		return cmd, nil
	case cmd.Verb.takesPoint():
		x, y, err := parseXY(args)
		if err != nil {
			return Command{}, err
		}
		cmd.X, cmd.Y = x, y
		return cmd, nil
	default:
		return Command{}, fmt.Errorf("%w: %q", ErrBadCommand, tokens[0])
	}
}

// ParseAll splits a message into lines and parses each non-empty one.
func ParseAll(message string) ([]Command, error) {
	var cmds []Command
	for _, line := range strings.Split(message, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cmd, err := Parse(line)
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, cmd)
	}
	return cmds, nil
}

func parseXY(args []string) (x int, y int, err error) {
	if len(args) != 2 {
		err = fmt.Errorf("%w: expected x and y", ErrBadArgs)
		return
	}
	if x, err = strconv.Atoi(args[0]); err != nil {
		err = fmt.Errorf("%w: first argument must be an int", ErrBadArgs)
		return
	}
	if y, err = strconv.Atoi(args[1]); err != nil {
		err = fmt.Errorf("%w: second argument must be an int", ErrBadArgs)
		return
	}
	return
}

// Apply runs the command against the controller's board.
func (c Command) Apply(ctrl *input.Controller) error {
	b := ctrl.Board()
	var err error
	switch c.Verb {
	case Noop:
	case Open:
		_, err = b.Reveal(c.X, c.Y)
	case Flag:
		_, err = b.ToggleFlag(c.X, c.Y)
	case Chord:
		_, err = b.ChordReveal(c.X, c.Y)
	case Forfeit:
		b.Forfeit()
	case Click:
		_, err = ctrl.Click(c.X, c.Y)
	case RightClick:
		_, err = ctrl.RightClick(c.X, c.Y)
	default:
		err = ErrBadCommand
	}
	return err
}

// ApplyAll runs commands in order and stops once the game is over.
func ApplyAll(ctrl *input.Controller, cmds []Command) error {
	for _, cmd := range cmds {
		if err := cmd.Apply(ctrl); err != nil {
			return fmt.Errorf("%s: %w", cmd, err)
		}
		if ctrl.Board().GameOver() {
			break
		}
	}
	return nil
}
