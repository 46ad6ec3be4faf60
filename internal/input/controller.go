package input

import (
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

// Result describes what a click did to the board.
type Result struct {
	Outcome mines.Outcome
	Chorded bool // a chord gesture fired
	Changed bool // the chord opened at least one cell
}

// Controller feeds raw clicks to a board, firing chord reveals when the
// resolver recognises the gesture.
type Controller struct {
	board    *mines.Board
	resolver *Resolver
}

func NewController(b *mines.Board, r *Resolver) *Controller {
	if r == nil {
		r = NewResolver(DefaultWindow, nil)
	}
	return &Controller{board: b, resolver: r}
}

func (c *Controller) Board() *mines.Board {
	return c.board
}

// Click is a primary button release over x,y.
func (c *Controller) Click(x, y int) (Result, error) {
	outcome, err := c.board.Reveal(x, y)
	if err != nil {
		return Result{}, err
	}
	return c.resolve(Primary, x, y, outcome)
}

// RightClick is a secondary button release over x,y.
func (c *Controller) RightClick(x, y int) (Result, error) {
	outcome, err := c.board.ToggleFlag(x, y)
	if err != nil {
		return Result{}, err
	}
	return c.resolve(Secondary, x, y, outcome)
}

func (c *Controller) resolve(b Button, x, y int, outcome mines.Outcome) (Result, error) {
	res := Result{Outcome: outcome}
	if outcome != mines.AlreadyRevealed {
		c.resolver.Reset()
		return res, nil
	}
	if revealed, _ := c.board.IsRevealed(x, y); !revealed {
		return res, nil
	}
	if !c.resolver.Press(b, mines.Point{X: x, Y: y}) {
		return res, nil
	}
	changed, err := c.board.ChordReveal(x, y)
	if err != nil {
		return res, err
	}
	res.Chorded = true
	res.Changed = changed
	return res, nil
}
