package mines

import (
	"fmt"
	"log/slog"
)

// PlaceMines scatters the board's mines uniformly over every cell except
// excludeX,excludeY. It only has an effect the first time it is called.
func (b *Board) PlaceMines(excludeX, excludeY int) error {
	if err := b.check(excludeX, excludeY); err != nil {
		return err
	}
	if b.minesPlaced {
		return nil
	}

	/*
	 * Write down the list of possible mine locations.
	 */
	exclude := b.index(excludeX, excludeY)
	candidates := make([]int, 0, len(b.cells)-1)
	for i := range b.cells {
		if i != exclude {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) < b.mineCount {
		return fmt.Errorf(
			"%w: %d free cells for %d mines", ErrPlacement, len(candidates), b.mineCount,
		)
	}

	/*
	 * Now pick n off the list at random.
	 */
	k := len(candidates)
	for range b.mineCount {
		i := b.rnd.IntN(k)
		b.plant(candidates[i])
		k--
		candidates[i] = candidates[k]
	}

	b.minesPlaced = true
	b.state = Active

	Log.Debug("mines placed",
		slog.Int("width", b.width),
		slog.Int("height", b.height),
		slog.Int("mines", b.mineCount),
		slog.Any("exclude", Point{excludeX, excludeY}),
	)
	return nil
}

func (b *Board) plant(i int) {
	b.cells[i].HasMine = true
	p := b.point(i)
	b.around(p.X, p.Y, func(j int) {
		b.cells[j].AdjacentMines++
	})
}
