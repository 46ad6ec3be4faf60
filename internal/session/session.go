package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper-engine/internal/input"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type Params struct {
	Width     int
	Height    int
	MineCount int
}

// Session is one game on one board. All board access goes through
// [Session.Do], which serialises callers.
type Session struct {
	ID        uuid.UUID
	PlayerID  *int64
	StartedAt time.Time

	mu       sync.Mutex
	board    *mines.Board
	resolver *input.Resolver
	endedAt  *time.Time
	store    *Store
}

// Snapshot is a copy of a session's visible state.
type Snapshot struct {
	ID        uuid.UUID
	PlayerID  *int64
	Params    Params
	Grid      mines.Grid
	State     mines.State
	Flags     int
	StartedAt time.Time
	EndedAt   *time.Time
}

func (s Snapshot) Dead() bool {
	return s.State == mines.Lost
}

func (s Snapshot) Won() bool {
	return s.State == mines.Won
}

// Duration is the playing time of a finished session, zero otherwise.
func (s Snapshot) Duration() time.Duration {
	if s.EndedAt == nil {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}

func (s *Session) snapshot() Snapshot {
	snap := Snapshot{
		ID:       s.ID,
		PlayerID: s.PlayerID,
		Params: Params{
			Width:     s.board.Width(),
			Height:    s.board.Height(),
			MineCount: s.board.MineCount(),
		},
		Grid:      s.board.View(),
		State:     s.board.State(),
		Flags:     s.board.FlagCount(),
		StartedAt: s.StartedAt,
	}
	if s.endedAt != nil {
		e := *s.endedAt
		snap.EndedAt = &e
	}
	return snap
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Session) Ended() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endedAt != nil
}

// Do runs fn with exclusive access to the board and returns the resulting
// snapshot. The first call that ends the game stamps the end time and
// notifies the store's finish hook.
func (s *Session) Do(fn func(ctrl *input.Controller) error) (Snapshot, error) {
	s.mu.Lock()
	wasOver := s.board.GameOver()
	err := fn(input.NewController(s.board, s.resolver))
	finished := !wasOver && s.board.GameOver()
	if finished {
		now := s.store.now().UTC()
		s.endedAt = &now
	}
	snap := s.snapshot()
	s.mu.Unlock()

	if finished {
		s.store.finish(snap)
	}
	return snap, err
}
