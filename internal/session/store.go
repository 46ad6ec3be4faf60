package session

import (
	"errors"
	"fmt"
	"hash/maphash"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/vancomm/minesweeper-engine/internal/input"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var ErrNotFound = errors.New("session not found")

type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session

	rndMu sync.Mutex
	rnd   *rand.Rand

	logger   *slog.Logger
	now      func() time.Time
	window   time.Duration
	onFinish []func(Snapshot)
}

type Option func(*Store)

func WithRand(r *rand.Rand) Option {
	return func(s *Store) { s.rnd = r }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithInputWindow sets the chord gesture window of every new session.
func WithInputWindow(d time.Duration) Option {
	return func(s *Store) { s.window = d }
}

// OnFinish registers a hook called once per session when its game ends.
func OnFinish(fn func(Snapshot)) Option {
	return func(s *Store) { s.onFinish = append(s.onFinish, fn) }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		sessions: make(map[uuid.UUID]*Session),
		logger:   slog.Default(),
		now:      time.Now,
		window:   input.DefaultWindow,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rnd == nil {
		s.rnd = rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
		))
	}
	return s
}

// boardRand derives an independent source for one board; *rand.Rand is
// not safe for concurrent use.
func (s *Store) boardRand() *rand.Rand {
	s.rndMu.Lock()
	defer s.rndMu.Unlock()
	return rand.New(rand.NewPCG(s.rnd.Uint64(), s.rnd.Uint64()))
}

func (s *Store) Create(p Params, playerID *int64) (*Session, error) {
	board, err := mines.New(p.Width, p.Height, p.MineCount, s.boardRand())
	if err != nil {
		return nil, err
	}
	sess := &Session{
		ID:        uuid.New(),
		PlayerID:  playerID,
		StartedAt: s.now().UTC(),
		board:     board,
		resolver:  input.NewResolver(s.window, s.now),
		store:     s,
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	s.logger.Debug("session created",
		slog.String("id", sess.ID.String()),
		slog.Int("width", p.Width),
		slog.Int("height", p.Height),
		slog.Int("mines", p.MineCount),
	)
	return sess, nil
}

func (s *Store) Get(id uuid.UUID) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return sess, nil
}

func (s *Store) Delete(id uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Prune drops sessions that ended, or started without ending, more than
// maxAge ago. It returns how many were dropped.
func (s *Store) Prune(maxAge time.Duration) int {
	cutoff := s.now().UTC().Add(-maxAge)

	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, sess := range s.sessions {
		snap := sess.Snapshot()
		last := snap.StartedAt
		if snap.EndedAt != nil {
			last = *snap.EndedAt
		}
		if last.Before(cutoff) {
			delete(s.sessions, id)
			n++
		}
	}
	if n > 0 {
		s.logger.Debug("pruned sessions", slog.Int("count", n))
	}
	return n
}

func (s *Store) finish(snap Snapshot) {
	s.logger.Debug("session finished",
		slog.String("id", snap.ID.String()),
		slog.String("state", snap.State.String()),
		slog.Duration("duration", snap.Duration()),
	)
	for _, fn := range s.onFinish {
		fn(snap)
	}
}
