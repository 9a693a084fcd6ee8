package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hersh/tetrigo/internal/game"
	"github.com/hersh/tetrigo/internal/session"
)

func newTestModel(spectator session.Renderer) (Model, *session.Session) {
	s := session.New(func() *game.Game { return game.NewGame(42) }, nil, nil)
	return NewModel(s, spectator, nil), s
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	require.True(t, ok)
	return nm, cmd
}

func TestKeysReachSessionOnNextTick(t *testing.T) {
	m, s := newTestModel(nil)
	x := s.Game().Piece().X

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.True(t, s.Keyboard().HasKeys())
	assert.False(t, s.Keyboard().Held(session.KeyLeft))
	assert.Equal(t, x, s.Game().Piece().X)

	_, cmd := update(t, m, TickMsg(time.Now()))
	assert.NotNil(t, cmd)
	assert.False(t, s.Keyboard().HasKeys())
	assert.LessOrEqual(t, s.Game().Piece().X, x)
}

func TestUnboundKeyIsDropped(t *testing.T) {
	m, s := newTestModel(nil)
	_, cmd := update(t, m, runes("w"))
	assert.Nil(t, cmd)
	assert.False(t, s.Keyboard().HasKeys())
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(nil)
	_, cmd := update(t, m, runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestTickFeedsSpectator(t *testing.T) {
	var frames int
	m, _ := newTestModel(session.RendererFunc(func(session.Frame) { frames++ }))
	for range 3 {
		m, _ = update(t, m, TickMsg(time.Now()))
	}
	assert.Equal(t, 3, frames)
}

func TestViewFollowsState(t *testing.T) {
	m, s := newTestModel(nil)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	assert.Contains(t, m.View(), "NEXT")
	assert.Contains(t, m.View(), "Level: 1")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, TickMsg(time.Now()))
	require.Equal(t, session.Pause, s.State())
	assert.Contains(t, m.View(), "PAUSED")
}
