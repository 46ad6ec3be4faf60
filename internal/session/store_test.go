package session

import (
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/input"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newStore(t *testing.T, opts ...Option) (*Store, *clock) {
	t.Helper()
	c := &clock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)}
	opts = append([]Option{
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithClock(c.now),
	}, opts...)
	return NewStore(opts...), c
}

func TestCreateAndGet(t *testing.T) {
	s, _ := newStore(t)

	sess, err := s.Create(Params{Width: 9, Height: 9, MineCount: 10}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())

	got, err := s.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	snap := got.Snapshot()
	assert.Equal(t, mines.Fresh, snap.State)
	assert.Len(t, snap.Grid, 81)
	assert.Nil(t, snap.EndedAt)

	_, err = s.Get(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)

	s.Delete(sess.ID)
	assert.Equal(t, 0, s.Len())
}

func TestCreateRejectsInvalidParams(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.Create(Params{Width: 3, Height: 3, MineCount: 9}, nil)
	assert.ErrorIs(t, err, mines.ErrInvalidConfiguration)
	assert.Equal(t, 0, s.Len())
}

func TestFinishHookRunsOnce(t *testing.T) {
	var finished []Snapshot
	s, c := newStore(t, OnFinish(func(snap Snapshot) {
		finished = append(finished, snap)
	}))

	playerID := int64(42)
	sess, err := s.Create(Params{Width: 5, Height: 5, MineCount: 3}, &playerID)
	require.NoError(t, err)

	c.advance(90 * time.Second)
	snap, err := sess.Do(func(ctrl *input.Controller) error {
		ctrl.Board().Forfeit()
		return nil
	})
	require.NoError(t, err)
	assert.True(t, snap.Dead())
	require.NotNil(t, snap.EndedAt)
	assert.Equal(t, 90*time.Second, snap.Duration())

	_, err = sess.Do(func(ctrl *input.Controller) error {
		_, err := ctrl.Board().Reveal(0, 0)
		return err
	})
	assert.ErrorIs(t, err, mines.ErrGameOver)

	require.Len(t, finished, 1)
	assert.Equal(t, sess.ID, finished[0].ID)
	assert.Equal(t, &playerID, finished[0].PlayerID)
	assert.True(t, sess.Ended())
}

func TestConcurrentMoves(t *testing.T) {
	s, _ := newStore(t)
	sess, err := s.Create(Params{Width: 30, Height: 16, MineCount: 99}, nil)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for x := range 30 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range 16 {
				_, _ = sess.Do(func(ctrl *input.Controller) error {
					_, err := ctrl.Board().ToggleFlag(x, y)
					return err
				})
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 30*16, sess.Snapshot().Flags)
}

func TestPrune(t *testing.T) {
	s, c := newStore(t)

	old, err := s.Create(Params{Width: 3, Height: 3, MineCount: 1}, nil)
	require.NoError(t, err)
	c.advance(time.Hour)
	fresh, err := s.Create(Params{Width: 3, Height: 3, MineCount: 1}, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, s.Prune(30*time.Minute))
	_, err = s.Get(old.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(fresh.ID)
	assert.NoError(t, err)
}
