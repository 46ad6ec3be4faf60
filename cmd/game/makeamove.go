package main

import (
	"net/http"

	"github.com/vancomm/minesweeper-engine/internal/input"
	"github.com/vancomm/minesweeper-engine/internal/metrics"
)

func (app *application) handleMove(w http.ResponseWriter, r *http.Request) {
	dto, err := decode[MoveDTO](r.URL.Query())
	if err != nil {
		app.badRequest(w, err)
		return
	}

	sess, ok := app.loadSession(w, r)
	if !ok {
		return
	}
	if !app.owns(r, sess) {
		app.unauthorized(w)
		return
	}

	cmd := dto.Command()
	snap, err := sess.Do(func(ctrl *input.Controller) error {
		return cmd.Apply(ctrl)
	})
	metrics.Move(string(cmd.Verb), err)
	if err != nil {
		app.moveFailed(w, err)
		return
	}

	app.replyWithJSON(w, NewGameSessionDTO(snap))
}
