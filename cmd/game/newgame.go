package main

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/vancomm/minesweeper-engine/internal/input"
	"github.com/vancomm/minesweeper-engine/internal/metrics"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

func (app *application) defaultParams() session.Params {
	return session.Params{
		Width:     app.board.Width,
		Height:    app.board.Height,
		MineCount: app.board.MineCount,
	}
}

// handleNewGame creates a session. Given x and y it also opens that cell.
func (app *application) handleNewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := decode[NewGameDTO](r.URL.Query())
	if err != nil {
		app.badRequest(w, err)
		return
	}

	playerId := app.playerId(r)
	sess, err := app.store.Create(dto.Params(app.defaultParams()), playerId)
	if errors.Is(err, mines.ErrInvalidConfiguration) {
		app.badRequest(w, err)
		return
	}
	if err != nil {
		app.internalError(w, "unable to create a game", slog.Any("error", err))
		return
	}
	metrics.GameStarted()

	app.logger.Debug("created session",
		slog.String("id", sess.ID.String()),
		slog.Bool("player", playerId != nil),
	)

	snap := sess.Snapshot()
	if dto.X != nil {
		snap, err = sess.Do(func(ctrl *input.Controller) error {
			_, err := ctrl.Board().Reveal(*dto.X, *dto.Y)
			return err
		})
		metrics.Move("o", err)
		if err != nil {
			app.store.Delete(sess.ID)
			app.moveFailed(w, err)
			return
		}
	}

	app.replyWithJSON(w, NewGameSessionDTO(snap))
}
