package mines

import (
	"fmt"
	"hash/maphash"
	"iter"
	"log/slog"
	"math/rand/v2"
)

var Log *slog.Logger = slog.Default()

type Point struct {
	X, Y int
}

// Cell is a copy of one grid position. Mutating it does not affect the board.
type Cell struct {
	HasMine       bool
	Revealed      bool
	Flagged       bool
	AdjacentMines int
}

// Board owns the whole state of one game. It is not safe for concurrent use.
type Board struct {
	width, height int
	mineCount     int
	cells         []Cell
	minesPlaced   bool
	state         State
	exploded      int // index of the mine that ended the game, -1 if none
	revealed      int
	flagged       int
	rnd           *rand.Rand
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func validate(width, height, mineCount int) error {
	switch {
	case width <= 0 || height <= 0:
		return ConfigError{width, height, mineCount, "dimensions must be positive"}
	case mineCount <= 0:
		return ConfigError{width, height, mineCount, "at least one mine is required"}
	case mineCount >= width*height:
		return ConfigError{width, height, mineCount, "too many mines for the grid"}
	}
	return nil
}

// New creates a board with no mines on it. Mines are placed on the first
// reveal, never under the revealed cell. A nil r gets a randomly seeded source.
func New(width, height, mineCount int, r *rand.Rand) (*Board, error) {
	if err := validate(width, height, mineCount); err != nil {
		return nil, err
	}
	if r == nil {
		r = newRand()
	}
	b := &Board{
		width:     width,
		height:    height,
		mineCount: mineCount,
		cells:     make([]Cell, width*height),
		state:     Fresh,
		exploded:  -1,
		rnd:       r,
	}
	return b, nil
}

// FromLayout creates a board with mines already placed at the given points.
func FromLayout(width, height int, mines []Point) (*Board, error) {
	if err := validate(width, height, len(mines)); err != nil {
		return nil, err
	}
	b, err := New(width, height, len(mines), nil)
	if err != nil {
		return nil, err
	}
	for _, p := range mines {
		if !b.InBounds(p.X, p.Y) {
			return nil, ConfigError{
				width, height, len(mines),
				fmt.Sprintf("mine %d:%d is out of bounds", p.X, p.Y),
			}
		}
		i := b.index(p.X, p.Y)
		if b.cells[i].HasMine {
			return nil, ConfigError{
				width, height, len(mines),
				fmt.Sprintf("duplicate mine at %d:%d", p.X, p.Y),
			}
		}
		b.plant(i)
	}
	b.minesPlaced = true
	b.state = Active
	return b, nil
}

func (b *Board) Width() int        { return b.width }
func (b *Board) Height() int       { return b.height }
func (b *Board) MineCount() int    { return b.mineCount }
func (b *Board) MinesPlaced() bool { return b.minesPlaced }
func (b *Board) State() State      { return b.state }
func (b *Board) GameOver() bool    { return b.state.Terminal() }
func (b *Board) PlayerWon() bool   { return b.state == Won }
func (b *Board) FlagCount() int    { return b.flagged }
func (b *Board) RevealedCount() int {
	return b.revealed
}

func (b *Board) InBounds(x, y int) bool {
	return 0 <= x && x < b.width && 0 <= y && y < b.height
}

func (b *Board) check(x, y int) error {
	if !b.InBounds(x, y) {
		return BoundsError{x, y, b.width, b.height}
	}
	return nil
}

func (b *Board) index(x, y int) int {
	return y*b.width + x
}

func (b *Board) point(i int) Point {
	return Point{i % b.width, i / b.width}
}

func (b *Board) Cell(x, y int) (Cell, error) {
	if err := b.check(x, y); err != nil {
		return Cell{}, err
	}
	return b.cells[b.index(x, y)], nil
}

func (b *Board) IsRevealed(x, y int) (bool, error) {
	c, err := b.Cell(x, y)
	return c.Revealed, err
}

func (b *Board) IsFlagged(x, y int) (bool, error) {
	c, err := b.Cell(x, y)
	return c.Flagged, err
}

func (b *Board) HasMine(x, y int) (bool, error) {
	c, err := b.Cell(x, y)
	return c.HasMine, err
}

func (b *Board) AdjacentMineCount(x, y int) (int, error) {
	c, err := b.Cell(x, y)
	return c.AdjacentMines, err
}

// Exploded reports the mine whose reveal lost the game.
func (b *Board) Exploded() (Point, bool) {
	if b.exploded < 0 {
		return Point{}, false
	}
	return b.point(b.exploded), true
}

// Cells yields every cell row by row.
func (b *Board) Cells() iter.Seq2[Point, Cell] {
	return func(yield func(Point, Cell) bool) {
		for i, c := range b.cells {
			if !yield(b.point(i), c) {
				return
			}
		}
	}
}

// Mines yields mine positions column by column, the order a loss sweep
// uncovers them in.
func (b *Board) Mines() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for x := range b.width {
			for y := range b.height {
				if b.cells[b.index(x, y)].HasMine && !yield(Point{x, y}) {
					return
				}
			}
		}
	}
}

// View projects the board onto what a player is allowed to see.
func (b *Board) View() Grid {
	g := make(Grid, len(b.cells))
	for i, c := range b.cells {
		switch {
		case c.Revealed && c.HasMine && i == b.exploded:
			g[i] = ExplodedMine
		case c.Revealed && c.HasMine:
			g[i] = RevealedMine
		case c.Revealed:
			g[i] = CellState(c.AdjacentMines)
		case c.Flagged && b.state == Lost && !c.HasMine:
			g[i] = FalselyFlagged
		case c.Flagged, b.state == Won:
			g[i] = FlaggedCell
		default:
			g[i] = Unknown
		}
	}
	return g
}

// [Board] implements [fmt.Stringer]
func (b *Board) String() string {
	return b.View().String(b.width)
}
