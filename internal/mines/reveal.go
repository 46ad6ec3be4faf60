package mines

import "log/slog"

// open reveals a single cell without touching its neighbours.
func (b *Board) open(i int) Outcome {
	c := &b.cells[i]
	if c.Flagged || c.Revealed {
		return AlreadyRevealed
	}
	c.Revealed = true
	b.revealed++
	switch {
	case c.HasMine:
		return Mine
	case c.AdjacentMines > 0:
		return Numbered
	default:
		return Clear
	}
}

type frame struct {
	x, y int
	next int // index into offsets
}

/*
 * revealAround opens every unrevealed neighbour of x,y and keeps going
 * through each neighbour that turns out to be clear. It walks the region
 * depth first with an explicit stack of frames, so cells are opened in the
 * same order a recursive walk would open them. The walk stops at the first
 * mine, whose index is returned (or -1).
 */
func (b *Board) revealAround(x, y int) (changed bool, mine int) {
	stack := []frame{{x: x, y: y}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(offsets) {
			stack = stack[:len(stack)-1]
			continue
		}
		d := offsets[top.next]
		top.next++

		nx, ny := top.x+d.X, top.y+d.Y
		if !b.InBounds(nx, ny) {
			continue
		}
		i := b.index(nx, ny)
		if b.cells[i].Revealed {
			continue
		}
		switch b.open(i) {
		case Mine:
			return true, i
		case Numbered:
			changed = true
		case Clear:
			changed = true
			stack = append(stack, frame{x: nx, y: ny})
		}
	}
	return changed, -1
}

// Reveal opens x,y. The first reveal on a board places the mines. A clear
// cell also opens its whole zero-count region and that region's border.
func (b *Board) Reveal(x, y int) (Outcome, error) {
	if err := b.check(x, y); err != nil {
		return 0, err
	}
	if b.state.Terminal() {
		return 0, ErrGameOver
	}
	if err := b.PlaceMines(x, y); err != nil {
		return 0, err
	}

	i := b.index(x, y)
	outcome := b.open(i)
	switch outcome {
	case Mine:
		b.lose(i)
	case Clear:
		if _, mine := b.revealAround(x, y); mine >= 0 {
			b.lose(mine)
		}
	}
	b.settle()
	return outcome, nil
}

// RevealAdjacent opens the unrevealed, unflagged neighbours of x,y with the
// same flood fill [Board.Reveal] uses. It reports whether any cell was opened.
func (b *Board) RevealAdjacent(x, y int) (bool, error) {
	if err := b.check(x, y); err != nil {
		return false, err
	}
	if b.state.Terminal() {
		return false, ErrGameOver
	}
	if err := b.PlaceMines(x, y); err != nil {
		return false, err
	}
	changed := b.revealAdjacent(x, y)
	b.settle()
	return changed, nil
}

func (b *Board) revealAdjacent(x, y int) bool {
	changed, mine := b.revealAround(x, y)
	if mine >= 0 {
		b.lose(mine)
	}
	return changed
}

// ChordReveal opens the neighbours of a revealed cell once as many of them
// are flagged as the cell has adjacent mines. A wrong flag loses the game.
func (b *Board) ChordReveal(x, y int) (bool, error) {
	if err := b.check(x, y); err != nil {
		return false, err
	}
	if b.state.Terminal() {
		return false, ErrGameOver
	}
	c := b.cells[b.index(x, y)]
	if !c.Revealed || c.HasMine {
		return false, nil
	}
	flags := b.countAround(x, y, func(n Cell) bool { return n.Flagged })
	if flags != c.AdjacentMines {
		return false, nil
	}
	changed := b.revealAdjacent(x, y)
	b.settle()
	return changed, nil
}

func (b *Board) ToggleFlag(x, y int) (Outcome, error) {
	if err := b.check(x, y); err != nil {
		return 0, err
	}
	if b.state.Terminal() {
		return 0, ErrGameOver
	}
	c := &b.cells[b.index(x, y)]
	if c.Revealed {
		return AlreadyRevealed, nil
	}
	c.Flagged = !c.Flagged
	if c.Flagged {
		b.flagged++
		return Flagged, nil
	}
	b.flagged--
	return Unflagged, nil
}

// HasWon reports whether every cell without a mine has been revealed.
func (b *Board) HasWon() bool {
	for _, c := range b.cells {
		if !c.HasMine && !c.Revealed {
			return false
		}
	}
	return true
}

// Forfeit ends an unfinished game as lost.
func (b *Board) Forfeit() {
	if b.state.Terminal() {
		return
	}
	b.lose(-1)
}

// lose ends the game and uncovers every mine. exploded is the index of the
// mine that was hit, or -1.
func (b *Board) lose(exploded int) {
	b.state = Lost
	b.exploded = exploded
	for i := range b.cells {
		c := &b.cells[i]
		if !c.HasMine || c.Revealed {
			continue
		}
		if c.Flagged {
			c.Flagged = false
			b.flagged--
		}
		c.Revealed = true
		b.revealed++
	}
	Log.Debug("game lost", slog.Int("exploded", exploded))
}

// settle moves an active board to [Won] once nothing safe is left covered.
func (b *Board) settle() {
	if b.state != Active || !b.HasWon() {
		return
	}
	b.state = Won
	Log.Debug("game won", slog.Int("revealed", b.revealed))
}
