package main

import (
	"log/slog"
	"net/http"

	"github.com/vancomm/minesweeper-engine/internal/repository"
)

func (app *application) handleFetchHighscores(w http.ResponseWriter, r *http.Request) {
	if app.repo == nil {
		app.unavailable(w, ErrRecordsDisabled)
		return
	}

	dto, err := decode[HighscoreDTO](r.URL.Query())
	if err != nil {
		app.badRequest(w, err)
		return
	}

	filter := repository.HighscoreFilter{Limit: dto.Limit}
	if dto.Width > 0 {
		filter.Board = &repository.BoardParams{
			Width:     dto.Width,
			Height:    dto.Height,
			MineCount: dto.MineCount,
		}
	}
	if dto.Username != "" {
		filter.Username = &dto.Username
	}

	highscores, err := app.repo.GetHighscores(r.Context(), filter)
	if err != nil {
		app.internalError(w,
			"failed to fetch highscores", slog.Any("error", err), slog.Any("filter", filter),
		)
		return
	}
	if highscores == nil {
		highscores = []repository.Highscore{}
	}

	app.replyWithJSON(w, highscores)
}
