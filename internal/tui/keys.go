package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hersh/tetrigo/internal/session"
)

// KeyMap binds terminal keys to session keys. Keys with no binding are
// dropped before they reach the session.
type KeyMap struct {
	RotateCW  key.Binding
	RotateCCW key.Binding
	Left      key.Binding
	Right     key.Binding
	SoftDrop  key.Binding
	HardDrop  key.Binding
	Confirm   key.Binding
	Quit      key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		RotateCW: key.NewBinding(
			key.WithKeys("up", "x"),
			key.WithHelp("↑/x", "rotate"),
		),
		RotateCCW: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "rotate back"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		SoftDrop: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "soft drop"),
		),
		HardDrop: key.NewBinding(
			key.WithKeys(" ", "c"),
			key.WithHelp("space", "hard drop"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter", "p"),
			key.WithHelp("enter/p", "pause"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Lookup maps a key message to a session key.
func (km KeyMap) Lookup(msg tea.KeyMsg) (session.Key, bool) {
	switch {
	case key.Matches(msg, km.RotateCW):
		return session.KeyRotateCW, true
	case key.Matches(msg, km.RotateCCW):
		return session.KeyRotateCCW, true
	case key.Matches(msg, km.Left):
		return session.KeyLeft, true
	case key.Matches(msg, km.Right):
		return session.KeyRight, true
	case key.Matches(msg, km.SoftDrop):
		return session.KeySoftDrop, true
	case key.Matches(msg, km.HardDrop):
		return session.KeyHardDrop, true
	case key.Matches(msg, km.Confirm):
		return session.KeyConfirm, true
	}
	return 0, false
}

// Help lists the bindings shown under the board.
func (km KeyMap) Help() []key.Binding {
	return []key.Binding{km.Left, km.Right, km.SoftDrop, km.HardDrop, km.RotateCW, km.RotateCCW, km.Confirm, km.Quit}
}
