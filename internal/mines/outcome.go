package mines

import "fmt"

// Outcome is the result of a single reveal or flag request.
type Outcome uint8

const (
	AlreadyRevealed Outcome = iota + 1
	Mine
	Clear
	Numbered
	Flagged
	Unflagged
)

func (o Outcome) String() string {
	switch o {
	case AlreadyRevealed:
		return "already revealed"
	case Mine:
		return "mine"
	case Clear:
		return "clear"
	case Numbered:
		return "numbered"
	case Flagged:
		return "flagged"
	case Unflagged:
		return "unflagged"
	default:
		return "unknown"
	}
}

// State is the lifecycle stage of a [Board]:
//
//	Fresh (no mines) -> Active (mines placed) -> Won | Lost
type State uint8

const (
	Fresh State = iota
	Active
	Won
	Lost
)

func (s State) Terminal() bool {
	return s == Won || s == Lost
}

func (s State) String() string {
	switch s {
	case Fresh:
		return "fresh"
	case Active:
		return "active"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// [State] implements [encoding.TextMarshaler]
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for _, candidate := range []State{Fresh, Active, Won, Lost} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown state %q", text)
}
