package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(gamesFinished.WithLabelValues("won"))
	GameFinished(true, 42*time.Second)
	assert.Equal(t, before+1, testutil.ToFloat64(gamesFinished.WithLabelValues("won")))

	before = testutil.ToFloat64(moves.WithLabelValues("o", "error"))
	Move("o", errors.New("boom"))
	assert.Equal(t, before+1, testutil.ToFloat64(moves.WithLabelValues("o", "error")))

	LiveSessions(3)
	assert.Equal(t, 3.0, testutil.ToFloat64(liveSessions))
}
