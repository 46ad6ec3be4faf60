package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

// numberColors holds the colour of each adjacency number, 1 to 8.
var numberColors = [...]string{
	"#1DABCA", "#6D8A25", "#C44073", "#2E62C0", "#AA2020", "#1E6D32", "#651E6D", "#FF8000",
}

type renderer struct {
	numbers  [len(numberColors)]lipgloss.Style
	unknown  lipgloss.Style
	flag     lipgloss.Style
	mine     lipgloss.Style
	exploded lipgloss.Style
	wrong    lipgloss.Style
	axis     lipgloss.Style
}

func newRenderer(out io.Writer, color bool) *renderer {
	r := lipgloss.NewRenderer(out)
	base := r.NewStyle()
	if !color {
		plain := &renderer{unknown: base, flag: base, mine: base, exploded: base, wrong: base, axis: base}
		for i := range plain.numbers {
			plain.numbers[i] = base
		}
		return plain
	}
	rend := &renderer{
		unknown:  base.Foreground(lipgloss.Color("#808080")),
		flag:     base.Foreground(lipgloss.Color("#0000FF")).Bold(true),
		mine:     base.Foreground(lipgloss.Color("#FF0000")),
		exploded: base.Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#FF0000")).Bold(true),
		wrong:    base.Foreground(lipgloss.Color("#0000FF")).Strikethrough(true),
		axis:     base.Faint(true),
	}
	for i, c := range numberColors {
		rend.numbers[i] = base.Foreground(lipgloss.Color(c)).Bold(true)
	}
	return rend
}

func (r *renderer) cell(s mines.CellState) string {
	glyph := s.String()
	switch {
	case s == mines.Unknown:
		return r.unknown.Render(glyph)
	case s == mines.FlaggedCell:
		return r.flag.Render(glyph)
	case s == 0:
		return glyph
	case s.Open():
		return r.numbers[s-1].Render(glyph)
	case s == mines.ExplodedMine:
		return r.exploded.Render(glyph)
	case s == mines.FalselyFlagged:
		return r.wrong.Render(glyph)
	default:
		return r.mine.Render(glyph)
	}
}

// grid draws g with column numbers on top and row numbers on the left.
func (r *renderer) grid(g mines.Grid, width int) string {
	height := len(g) / width
	pad := len(fmt.Sprint(max(width, height) - 1))

	var b strings.Builder
	header := make([]string, width)
	for x := range width {
		header[x] = fmt.Sprintf("%*d", pad, x)
	}
	b.WriteString(strings.Repeat(" ", pad+1))
	b.WriteString(r.axis.Render(strings.Join(header, " ")))
	b.WriteByte('\n')

	row := make([]string, width)
	for y := range height {
		for x := range width {
			row[x] = strings.Repeat(" ", pad-1) + r.cell(g.At(width, x, y))
		}
		b.WriteString(r.axis.Render(fmt.Sprintf("%*d", pad, y)))
		b.WriteByte(' ')
		b.WriteString(strings.Join(row, " "))
		b.WriteByte('\n')
	}
	return b.String()
}

func lines(s string) int {
	return strings.Count(s, "\n")
}
