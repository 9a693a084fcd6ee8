package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hersh/tetrigo/internal/netclient"
	"github.com/hersh/tetrigo/internal/session"
)

// WatchModel shows frames received from a spectator stream. It sends
// nothing back.
type WatchModel struct {
	client *netclient.Client
	quit   key.Binding

	viewerID     string
	frame        *session.Frame
	err          error
	disconnected bool

	width  int
	height int
}

func NewWatchModel(client *netclient.Client) WatchModel {
	return WatchModel{
		client: client,
		quit:   DefaultKeyMap().Quit,
	}
}

func (m WatchModel) Init() tea.Cmd {
	return nil
}

func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.quit) {
			if m.client != nil {
				m.client.Close()
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case netclient.ConnectedMsg:
		m.viewerID = msg.ViewerID
	case netclient.FrameMsg:
		f := msg.Frame
		m.frame = &f
	case netclient.DisconnectedMsg:
		m.disconnected = true
		m.err = msg.Err
	}
	return m, nil
}

func (m WatchModel) View() string {
	var content string
	switch {
	case m.disconnected:
		content = "Stream ended.\nPress Q to exit."
		if m.err != nil {
			content = "Disconnected: " + m.err.Error() + "\nPress Q to exit."
		}
	case m.frame == nil:
		content = "Waiting for the game..."
	default:
		content = RenderFrame(*m.frame) + "\n" + infoStyle.Render("Watching as "+m.viewerID)
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
