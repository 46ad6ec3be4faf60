package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Record is a finished game.
type Record struct {
	RecordId  int64
	SessionId uuid.UUID
	PlayerId  *int64
	Width     int
	Height    int
	MineCount int
	Won       bool
	StartedAt time.Time
	EndedAt   time.Time
	CreatedAt time.Time
}

type CreateRecordParams struct {
	SessionId uuid.UUID
	PlayerId  *int64
	Width     int
	Height    int
	MineCount int
	Won       bool
	StartedAt time.Time
	EndedAt   time.Time
}

func (p CreateRecordParams) Args() pgx.NamedArgs {
	args := pgx.NamedArgs{
		"session_id": p.SessionId,
		"player_id":  nil,
		"width":      p.Width,
		"height":     p.Height,
		"mine_count": p.MineCount,
		"won":        p.Won,
		"started_at": p.StartedAt,
		"ended_at":   p.EndedAt,
	}
	if p.PlayerId != nil {
		args["player_id"] = *p.PlayerId
	}
	return args
}

// CreateRecord stores a finished game. Storing the same session twice
// returns the first record.
func (q *Queries) CreateRecord(ctx context.Context, params CreateRecordParams) (*Record, error) {
	rows, _ := q.db.Query(
		ctx,
		`WITH inserted AS (
			INSERT INTO game_record (
				session_id, player_id, width, height, mine_count, won, started_at, ended_at
			)
			VALUES (
				@session_id, @player_id, @width, @height, @mine_count, @won, @started_at, @ended_at
			)
			ON CONFLICT (session_id) DO NOTHING
			RETURNING *
		)
		SELECT * FROM inserted
		UNION ALL
		SELECT * FROM game_record WHERE session_id = @session_id
		LIMIT 1`,
		params.Args(),
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Record])
}

func (q *Queries) FetchRecord(ctx context.Context, sessionId uuid.UUID) (*Record, error) {
	rows, _ := q.db.Query(
		ctx, "SELECT * FROM game_record WHERE session_id = $1", sessionId,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Record])
}
