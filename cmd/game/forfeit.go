package main

import (
	"net/http"

	"github.com/vancomm/minesweeper-engine/internal/command"
	"github.com/vancomm/minesweeper-engine/internal/input"
	"github.com/vancomm/minesweeper-engine/internal/metrics"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

func (app *application) handleForfeit(w http.ResponseWriter, r *http.Request) {
	sess, ok := app.loadSession(w, r)
	if !ok {
		return
	}
	if !app.owns(r, sess) {
		app.unauthorized(w)
		return
	}

	snap, err := sess.Do(func(ctrl *input.Controller) error {
		if ctrl.Board().GameOver() {
			return mines.ErrGameOver
		}
		ctrl.Board().Forfeit()
		return nil
	})
	metrics.Move(string(command.Forfeit), err)
	if err != nil {
		app.moveFailed(w, err)
		return
	}

	app.replyWithJSON(w, NewGameSessionDTO(snap))
}
