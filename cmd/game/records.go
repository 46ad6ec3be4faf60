package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/vancomm/minesweeper-engine/internal/metrics"
	"github.com/vancomm/minesweeper-engine/internal/repository"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

const recordTimeout = 5 * time.Second

// gameFinished runs once per session when its board reaches Won or Lost.
func (app *application) gameFinished(snap session.Snapshot) {
	metrics.GameFinished(snap.Won(), snap.Duration())
	if app.repo == nil || snap.EndedAt == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	_, err := app.repo.CreateRecord(ctx, repository.CreateRecordParams{
		SessionId: snap.ID,
		PlayerId:  snap.PlayerID,
		Width:     snap.Params.Width,
		Height:    snap.Params.Height,
		MineCount: snap.Params.MineCount,
		Won:       snap.Won(),
		StartedAt: snap.StartedAt,
		EndedAt:   *snap.EndedAt,
	})
	metrics.RecordStored(err)
	if err != nil {
		app.logger.Error("unable to store game record",
			slog.String("id", snap.ID.String()),
			slog.Any("error", err),
		)
	}
}

// janitor prunes stale sessions until ctx is done.
func (app *application) janitor(ctx context.Context, ttl time.Duration) error {
	interval := max(min(ttl/4, time.Minute), time.Second)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := app.store.Prune(ttl); n > 0 {
				app.logger.Info("pruned sessions", slog.Int("count", n))
			}
			metrics.LiveSessions(app.store.Len())
		}
	}
}
