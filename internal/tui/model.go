// Package tui is the terminal front end: a bubbletea model that drives a
// session at a fixed tick and draws it with lipgloss.
package tui

import (
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hersh/tetrigo/internal/session"
)

// TickInterval is the scheduler period; every tick runs one session step.
const TickInterval = 16 * time.Millisecond

type TickMsg time.Time

// Model plays one session. Terminals report key presses only, so every
// mapped key is pressed and released at once; held-key repeat comes from
// the terminal's own autorepeat.
type Model struct {
	session   *session.Session
	keys      KeyMap
	spectator session.Renderer
	logger    *slog.Logger

	width  int
	height int
}

// NewModel creates the play model. spectator, when not nil, receives a frame
// after every step.
func NewModel(s *session.Session, spectator session.Renderer, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return Model{
		session:   s,
		keys:      DefaultKeyMap(),
		spectator: spectator,
		logger:    logger,
	}
}

func (m Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(TickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case TickMsg:
		m.session.Step()
		if m.spectator != nil {
			m.session.Draw(m.spectator)
		}
		return m, tickCmd()
	}
	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		p := m.session.Game().Progress()
		m.logger.Info("quit", slog.String("state", m.session.State().String()), slog.Int("points", p.Points))
		return m, tea.Quit
	}

	k, ok := m.keys.Lookup(msg)
	if !ok {
		return m, nil
	}
	kb := m.session.Keyboard()
	kb.Press(k)
	kb.Release(k)
	return m, nil
}

func (m Model) View() string {
	var content string
	m.session.Draw(session.RendererFunc(func(f session.Frame) {
		content = RenderFrame(f) + "\n" + RenderControls(m.keys.Help())
	}))
	return m.center(content)
}

func (m Model) center(content string) string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
