package session

import (
	"errors"
	"fmt"
)

// State is the phase the session is in. Exactly one is active at a time.
type State int

const (
	Play State = iota
	Pause
	GameOver
)

func (s State) String() string {
	switch s {
	case Play:
		return "play"
	case Pause:
		return "pause"
	case GameOver:
		return "game_over"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// ParseState is the inverse of String.
func ParseState(name string) (State, error) {
	for _, s := range []State{Play, Pause, GameOver} {
		if s.String() == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown state %q", name)
}

var ErrInvalidTransition = errors.New("invalid state transition")

var transitions = map[State][]State{
	Play:     {Pause, GameOver},
	Pause:    {Play},
	GameOver: {Play},
}

func canTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
