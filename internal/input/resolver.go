package input

import (
	"time"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

const DefaultWindow = 300 * time.Millisecond

type Button uint8

const (
	Primary Button = iota + 1
	Secondary
)

func (b Button) String() string {
	switch b {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	default:
		return "unknown"
	}
}

/*
 * Resolver turns presses on already revealed cells into chord gestures.
 * A chord is either both buttons pressed on the same cell, or the primary
 * button pressed twice on it, within the window. Presses older than the
 * window, or on a different cell, are forgotten.
 */
type Resolver struct {
	window time.Duration
	now    func() time.Time

	primary, secondary, double bool
	at                         time.Time
	cell                       mines.Point
}

// NewResolver returns a resolver with the given window. A nil now uses
// [time.Now].
func NewResolver(window time.Duration, now func() time.Time) *Resolver {
	if window <= 0 {
		window = DefaultWindow
	}
	if now == nil {
		now = time.Now
	}
	return &Resolver{window: window, now: now}
}

// Press records a press on a revealed cell and reports whether it completes
// a chord gesture.
func (r *Resolver) Press(b Button, p mines.Point) bool {
	now := r.now()
	if !r.at.IsZero() && (now.Sub(r.at) > r.window || p != r.cell) {
		r.Reset()
	}

	switch b {
	case Primary:
		if r.primary {
			r.double = true
		}
		r.primary = true
	case Secondary:
		r.secondary = true
	}
	r.at = now
	r.cell = p

	if r.primary && r.secondary || r.double {
		r.Reset()
		return true
	}
	return false
}

func (r *Resolver) Reset() {
	r.primary, r.secondary, r.double = false, false, false
	r.at = time.Time{}
}
