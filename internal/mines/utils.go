package mines

// offsets lists the 8 neighbours column by column, skipping the center.
var offsets = [8]Point{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// around calls fn with the index of every in-bounds neighbour of x,y.
func (b *Board) around(x, y int, fn func(i int)) {
	for _, d := range offsets {
		nx, ny := x+d.X, y+d.Y
		if b.InBounds(nx, ny) {
			fn(b.index(nx, ny))
		}
	}
}

func (b *Board) countAround(x, y int, pred func(c Cell) bool) int {
	n := 0
	b.around(x, y, func(i int) {
		if pred(b.cells[i]) {
			n++
		}
	})
	return n
}
