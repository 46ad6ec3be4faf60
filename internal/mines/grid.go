package mines

import (
	"strconv"
	"strings"
)

type CellState int8

const (
	Unknown        CellState = -2
	FlaggedCell    CellState = -1
	RevealedMine   CellState = 64
	ExplodedMine   CellState = 65
	FalselyFlagged CellState = 66
	/*
	 * Each item of a [Grid] is one of the following values:
	 *
	 *	- 0 to 8 mean the square is open and has a surrounding mine
	 *	  count.
	 *
	 *	- -1 means the square is flagged.
	 *
	 *	- -2 means the square is unknown.
	 *
	 *	- 64 means the square has had a mine revealed when the game
	 *	  was lost.
	 *
	 *	- 65 means the square had a mine revealed and this was the
	 *	  one the player hit.
	 *
	 *	- 66 means the square has a flag on it but no mine under it,
	 *	  shown once the game is lost.
	 */
)

func (s CellState) Open() bool {
	return 0 <= s && s <= 8
}

func (s CellState) String() string {
	switch {
	case s == Unknown:
		return "."
	case s == FlaggedCell:
		return "F"
	case s == 0:
		return " "
	case s.Open():
		return strconv.Itoa(int(s))
	case s == ExplodedMine:
		return "X"
	case s == FalselyFlagged:
		return "x"
	default:
		return "*"
	}
}

// Grid is the player-visible projection of a [Board], stored row by row.
type Grid []CellState

func (g Grid) At(width, x, y int) CellState {
	return g[y*width+x]
}

func (g Grid) String(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			if x > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(g[y*width+x].String())
		}
		b.WriteByte('\n')
	}
	return b.String()
}
