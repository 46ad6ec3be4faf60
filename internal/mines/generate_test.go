package mines

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	os.Exit(m.Run())
}

func countMines(b *Board) int {
	n := 0
	for _, c := range b.cells {
		if c.HasMine {
			n++
		}
	}
	return n
}

func TestPlacementInvariants(t *testing.T) {
	if testing.Short() {
		t.Skip()
	}

	t.Parallel()

	tests := []struct {
		name                     string
		width, height, mineCount int
	}{
		{name: "2x1(1)", width: 2, height: 1, mineCount: 1},
		{name: "3x3(8)", width: 3, height: 3, mineCount: 8},
		{name: "9x9(10)", width: 9, height: 9, mineCount: 10},
		{name: "9x9(80)", width: 9, height: 9, mineCount: 80},
		{name: "16x16(40)", width: 16, height: 16, mineCount: 40},
		{name: "40x20(99)", width: 40, height: 20, mineCount: 99},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			r := rand.New(rand.NewPCG(1, 2))
			for sx := range test.width {
				for sy := range test.height {
					b, err := New(test.width, test.height, test.mineCount, r)
					if err != nil {
						t.Fatalf("could not create board %s: %v", test.name, err)
					}
					if err := b.PlaceMines(sx, sy); err != nil {
						t.Fatalf("could not place mines %s @ %d:%d: %v", test.name, sx, sy, err)
					}
					if b.cells[b.index(sx, sy)].HasMine {
						t.Errorf("mine placed under first reveal %s @ %d:%d", test.name, sx, sy)
					}
					if have := countMines(b); have != test.mineCount {
						t.Errorf("wrong mine count %s @ %d:%d: have %d, want %d",
							test.name, sx, sy, have, test.mineCount)
					}
					checkAdjacency(t, b)
				}
			}
		})
	}
}

func checkAdjacency(t *testing.T, b *Board) {
	t.Helper()
	for y := range b.height {
		for x := range b.width {
			c := b.cells[b.index(x, y)]
			if c.HasMine {
				continue
			}
			want := 0
			for dx := -1; dx <= 1; dx++ {
				for dy := -1; dy <= 1; dy++ {
					xx, yy := x+dx, y+dy
					if (dx != 0 || dy != 0) &&
						0 <= xx && xx < b.width &&
						0 <= yy && yy < b.height &&
						b.cells[yy*b.width+xx].HasMine {
						want++
					}
				}
			}
			if c.AdjacentMines != want {
				t.Errorf("adjacent count @ %d:%d: have %d, want %d",
					x, y, c.AdjacentMines, want)
			}
		}
	}
}

func TestPlaceMinesIsIdempotent(t *testing.T) {
	b, err := New(16, 16, 40, rand.New(rand.NewPCG(3, 4)))
	if err != nil {
		t.Fatal(err)
	}
	if err := b.PlaceMines(5, 5); err != nil {
		t.Fatal(err)
	}
	before := append([]Cell(nil), b.cells...)

	for _, p := range []Point{{5, 5}, {0, 0}, {15, 15}} {
		if err := b.PlaceMines(p.X, p.Y); err != nil {
			t.Fatal(err)
		}
	}
	for i := range before {
		if before[i] != b.cells[i] {
			t.Fatalf("cell %v changed on repeated placement: %+v -> %+v",
				b.point(i), before[i], b.cells[i])
		}
	}
	if have := countMines(b); have != 40 {
		t.Errorf("wrong mine count after repeated placement: %d", have)
	}
}

func TestPlacementIsDeterministicPerSeed(t *testing.T) {
	place := func() []Cell {
		b, err := New(30, 16, 99, rand.New(rand.NewPCG(7, 7)))
		if err != nil {
			t.Fatal(err)
		}
		if err := b.PlaceMines(10, 10); err != nil {
			t.Fatal(err)
		}
		return b.cells
	}
	a, b := place(), place()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("placement differs at %d with the same seed", i)
		}
	}
}
