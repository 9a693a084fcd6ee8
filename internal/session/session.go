// Package session sequences player input and gravity for one game. A host
// calls Step at a fixed cadence and Draw whenever it wants a picture.
package session

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/hersh/tetrigo/internal/game"
)

const (
	// A hard drop pushes the gravity counter this far ahead and locks input
	// until the next gravity step commits the piece.
	hardDropTickBonus = 60

	// Held left or right repeats once the counter reaches repeatThreshold;
	// the counter then restarts from repeatReset.
	repeatThreshold = 25
	repeatReset     = 17
)

// Session is one player's game context: the running game, its input buffer
// and the counters that pace it. It is driven from a single goroutine.
type Session struct {
	newGame func() *game.Game
	game    *game.Game
	keys    *Keyboard
	state   State
	logger  *slog.Logger

	gameTicks int
	moveTicks int
	moveLock  bool
}

// New starts a session in the Play state. newGame is called for the first
// game and again on every restart after a game over.
func New(newGame func() *game.Game, keys *Keyboard, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if keys == nil {
		keys = NewKeyboard()
	}
	return &Session{
		newGame: newGame,
		game:    newGame(),
		keys:    keys,
		state:   Play,
		logger:  logger,
	}
}

func (s *Session) State() State        { return s.state }
func (s *Session) Game() *game.Game    { return s.game }
func (s *Session) Keyboard() *Keyboard { return s.keys }

// InputLocked reports whether buffered input is held back until the hard
// dropped piece locks.
func (s *Session) InputLocked() bool { return s.moveLock }

// Step runs one tick: buffered input first, then held-key repeat and
// gravity when playing.
func (s *Session) Step() {
	switch s.state {
	case Play:
		s.stepPlay()
	case Pause:
		s.stepPause()
	case GameOver:
		s.stepGameOver()
	}
}

func (s *Session) stepPlay() {
	for !s.moveLock && s.keys.HasKeys() {
		key, _ := s.keys.Next()
		switch key {
		case KeyRotateCW:
			s.game.RotateClockwise()
		case KeyRotateCCW:
			s.game.RotateCounterClockwise()
		case KeyLeft:
			s.game.MoveLeft()
		case KeyRight:
			s.game.MoveRight()
		case KeySoftDrop:
			s.game.SoftDrop()
		case KeyHardDrop:
			s.game.HardDrop()
			s.gameTicks += hardDropTickBonus
			s.moveLock = true
		case KeyConfirm:
			s.mustTransition(Pause)
			return
		}
	}

	s.repeatHeld()

	s.gameTicks++
	if s.gameTicks >= s.game.Progress().ActionDelay() {
		s.gameTicks = 0
		s.moveLock = false
		if s.game.AdvanceTick() {
			p := s.game.Progress()
			s.logger.Info("game over",
				slog.Int("points", p.Points),
				slog.Int("level", p.Level),
				slog.Int("lines", p.Lines))
			s.mustTransition(GameOver)
		}
	}
}

func (s *Session) repeatHeld() {
	left, right := s.keys.Held(KeyLeft), s.keys.Held(KeyRight)
	if left || right {
		s.moveTicks++
	} else {
		s.moveTicks = 0
	}
	if s.moveTicks < repeatThreshold {
		return
	}
	s.moveTicks = repeatReset
	if left {
		s.game.MoveLeft()
	}
	if right {
		s.game.MoveRight()
	}
}

func (s *Session) stepPause() {
	for !s.moveLock && s.keys.HasKeys() {
		if key, _ := s.keys.Next(); key == KeyConfirm {
			s.mustTransition(Play)
			return
		}
	}
}

func (s *Session) stepGameOver() {
	for !s.moveLock && s.keys.HasKeys() {
		if key, _ := s.keys.Next(); key == KeyConfirm {
			s.reset()
			s.mustTransition(Play)
			return
		}
	}
}

func (s *Session) reset() {
	s.game = s.newGame()
	s.gameTicks = 0
	s.moveTicks = 0
	s.moveLock = false
}

// transition moves the session to the given state if the state machine
// allows it.
func (s *Session) transition(to State) error {
	if !canTransition(s.state, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, s.state, to)
	}
	s.logger.Debug("state change", slog.String("from", s.state.String()), slog.String("to", to.String()))
	s.state = to
	return nil
}

// mustTransition is used for the transitions Step itself decides on, which
// are valid by construction.
func (s *Session) mustTransition(to State) {
	if err := s.transition(to); err != nil {
		panic(err)
	}
}

// Draw builds a frame of the current state and passes it to every renderer.
func (s *Session) Draw(renderers ...Renderer) {
	f := s.Frame()
	for _, r := range renderers {
		if r != nil {
			r.Render(f)
		}
	}
}

// Frame returns a snapshot of the session that is safe to keep.
func (s *Session) Frame() Frame {
	return newFrame(s.state, s.game)
}
