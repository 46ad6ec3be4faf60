package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/command"
	"github.com/vancomm/minesweeper-engine/internal/input"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

const helpText = `commands:
  o X Y   open a cell
  f X Y   toggle a flag
  c X Y   chord: open the neighbours of a satisfied number
  l X Y   left click (a double click on a number chords)
  s X Y   right click
  g       redraw
  r       give up
  q       quit
`

type game struct {
	ctrl    *input.Controller
	out     io.Writer
	render  *renderer
	log     *logrus.Logger
	delay   time.Duration
	animate bool
	now     func() time.Time
	sleep   func(context.Context, time.Duration) error
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (g *game) board() *mines.Board {
	return g.ctrl.Board()
}

func (g *game) draw(grid mines.Grid) string {
	frame := g.render.grid(grid, g.board().Width())
	fmt.Fprint(g.out, frame)
	return frame
}

func (g *game) status() {
	b := g.board()
	fmt.Fprintf(g.out, "mines: %d  flags: %d  state: %s\n", b.MineCount(), b.FlagCount(), b.State())
}

// run reads commands from in until the game ends, in is exhausted or the
// player quits.
func (g *game) run(ctx context.Context, in io.Reader) error {
	start := g.now()
	g.draw(g.board().View())
	g.status()

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(g.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(g.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "q", "quit":
			g.log.Info("player quit")
			return nil
		case "h", "help", "?":
			fmt.Fprint(g.out, helpText)
			continue
		}

		cmd, err := command.Parse(line)
		if err != nil {
			fmt.Fprintf(g.out, "%s (type help)\n", err)
			continue
		}

		before := g.board().View()
		err = cmd.Apply(g.ctrl)
		g.log.WithFields(logrus.Fields{
			"cmd":   cmd.String(),
			"state": g.board().State().String(),
		}).Debug("move")
		if err != nil {
			fmt.Fprintln(g.out, err)
			if !errors.Is(err, mines.ErrGameOver) {
				continue
			}
		}

		if g.board().State() == mines.Lost {
			if err := g.sweep(ctx, before); err != nil {
				return err
			}
			g.status()
			fmt.Fprintln(g.out, "Boom! Game over.")
			g.log.WithField("elapsed", g.now().Sub(start)).Info("game lost")
			return nil
		}

		g.draw(g.board().View())
		g.status()
		if g.board().PlayerWon() {
			elapsed := g.now().Sub(start).Round(time.Second)
			fmt.Fprintf(g.out, "You won in %s!\n", elapsed)
			g.log.WithField("elapsed", elapsed).Info("game won")
			return nil
		}
	}
}

// sweep uncovers the mines of a lost board one by one in sweep order,
// redrawing the board in place between steps.
func (g *game) sweep(ctx context.Context, before mines.Grid) error {
	final := g.board().View()
	if !g.animate || g.delay <= 0 {
		g.draw(final)
		return nil
	}

	width := g.board().Width()
	frame := append(mines.Grid(nil), before...)
	if p, ok := g.board().Exploded(); ok {
		frame[p.Y*width+p.X] = final.At(width, p.X, p.Y)
	}
	height := lines(g.draw(frame))
	for p := range g.board().Mines() {
		i := p.Y*width + p.X
		if frame[i] == final[i] {
			continue
		}
		if err := g.sleep(ctx, g.delay); err != nil {
			return err
		}
		frame[i] = final[i]
		fmt.Fprintf(g.out, "\x1b[%dA", height)
		g.draw(frame)
	}
	fmt.Fprintf(g.out, "\x1b[%dA", height)
	g.draw(final)
	return nil
}
