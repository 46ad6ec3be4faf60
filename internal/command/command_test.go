package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/input"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		line string
		want Command
		err  error
	}{
		{"o 3 4", Command{Verb: Open, X: 3, Y: 4}, nil},
		{"  F 0 12 ", Command{Verb: Flag, X: 0, Y: 12}, nil},
		{"c 1 1", Command{Verb: Chord, X: 1, Y: 1}, nil},
		{"l 2 2", Command{Verb: Click, X: 2, Y: 2}, nil},
		{"s 2 2", Command{Verb: RightClick, X: 2, Y: 2}, nil},
		{"g", Command{Verb: Noop}, nil},
		{"r", Command{Verb: Forfeit}, nil},
		{"", Command{}, ErrBadCommand},
		{"x 1 1", Command{}, ErrBadCommand},
		{"o 1", Command{}, ErrBadArgs},
		{"o a 1", Command{}, ErrBadArgs},
		{"o 1 b", Command{}, ErrBadArgs},
		{"r now", Command{}, ErrBadArgs},
	}
	for _, test := range testCases {
		cmd, err := Parse(test.line)
		if test.err != nil {
			assert.ErrorIs(t, err, test.err, "line %q", test.line)
			continue
		}
		require.NoError(t, err, "line %q", test.line)
		assert.Equal(t, test.want, cmd)
	}
}

func TestParseAll(t *testing.T) {
	cmds, err := ParseAll("o 0 0\n\nf 1 1\n c 0 0 \n")
	require.NoError(t, err)
	assert.Equal(t, []Command{
		{Verb: Open}, {Verb: Flag, X: 1, Y: 1}, {Verb: Chord},
	}, cmds)

	_, err = ParseAll("o 0 0\nboom")
	assert.ErrorIs(t, err, ErrBadCommand)
}

func TestApplyAllStopsAtGameOver(t *testing.T) {
	b, err := mines.FromLayout(3, 1, []mines.Point{{X: 1, Y: 0}})
	require.NoError(t, err)
	ctrl := input.NewController(b, nil)

	cmds, err := ParseAll("o 1 0\no 0 0")
	require.NoError(t, err)
	require.NoError(t, ApplyAll(ctrl, cmds))

	assert.Equal(t, mines.Lost, b.State())
	revealed, err := b.IsRevealed(0, 0)
	require.NoError(t, err)
	assert.False(t, revealed)
}

func TestApplyReportsBoardErrors(t *testing.T) {
	b, err := mines.FromLayout(3, 1, []mines.Point{{X: 1, Y: 0}})
	require.NoError(t, err)
	ctrl := input.NewController(b, nil)

	err = Command{Verb: Open, X: 5, Y: 0}.Apply(ctrl)
	assert.ErrorIs(t, err, mines.ErrOutOfBounds)

	require.NoError(t, Command{Verb: Forfeit}.Apply(ctrl))
	err = ApplyAll(ctrl, []Command{{Verb: Flag, X: 0, Y: 0}})
	assert.ErrorIs(t, err, mines.ErrGameOver)
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "o 3 4", Command{Verb: Open, X: 3, Y: 4}.String())
	assert.Equal(t, "r", Command{Verb: Forfeit}.String())
}
