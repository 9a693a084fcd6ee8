package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/hersh/tetrigo/internal/session"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLookup(t *testing.T) {
	km := DefaultKeyMap()
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want session.Key
	}{
		{"up", tea.KeyMsg{Type: tea.KeyUp}, session.KeyRotateCW},
		{"x", runes("x"), session.KeyRotateCW},
		{"z", runes("z"), session.KeyRotateCCW},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, session.KeyLeft},
		{"h", runes("h"), session.KeyLeft},
		{"right", tea.KeyMsg{Type: tea.KeyRight}, session.KeyRight},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, session.KeySoftDrop},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, session.KeyHardDrop},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, session.KeyConfirm},
		{"p", runes("p"), session.KeyConfirm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := km.Lookup(tt.msg)
			assert.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookupIgnoresUnboundKeys(t *testing.T) {
	km := DefaultKeyMap()
	for _, msg := range []tea.KeyMsg{runes("w"), runes("q"), {Type: tea.KeyTab}} {
		_, ok := km.Lookup(msg)
		assert.False(t, ok, msg.String())
	}
}
