package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/hersh/tetrigo/internal/game"
	"github.com/hersh/tetrigo/internal/session"
)

var (
	// colors is indexed by game.Shape.
	colors = []string{
		"0",
		"51",  // I
		"21",  // J
		"208", // L
		"226", // O
		"46",  // S
		"201", // T
		"196", // Z
	}

	ghostColor = "244"

	boardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("15"))

	infoStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("15"))

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("51"))

	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226")).
			Align(lipgloss.Center)

	gameOverStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")).
			Align(lipgloss.Center)
)

func cell(char string, s game.Shape) string {
	color := "0"
	if int(s) < len(colors) {
		color = colors[s]
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Render(char)
}

// RenderBoard draws the playfield with the falling piece and its landing
// shadow.
func RenderBoard(f session.Frame) string {
	piece := make(map[game.Point]bool, len(f.Piece))
	ghost := make(map[game.Point]bool, len(f.Piece))
	for _, p := range f.Piece {
		piece[p] = true
		ghost[game.Point{X: p.X, Y: p.Y + f.GhostDrop}] = true
	}

	var sb strings.Builder
	for y, row := range f.Board {
		for x, s := range row {
			pt := game.Point{X: x, Y: y}
			switch {
			case piece[pt]:
				sb.WriteString(cell("██", f.PieceType))
			case s != game.Empty:
				sb.WriteString(cell("██", s))
			case ghost[pt] && f.GhostDrop > 0:
				sb.WriteString(lipgloss.NewStyle().
					Foreground(lipgloss.Color(ghostColor)).
					Render("[]"))
			default:
				sb.WriteString("  ")
			}
		}
		if y < len(f.Board)-1 {
			sb.WriteString("\n")
		}
	}

	return boardStyle.Render(sb.String())
}

// RenderPreview draws the next-piece board without its empty border rows.
func RenderPreview(f session.Frame) string {
	var lines []string
	for _, row := range f.Preview {
		var sb strings.Builder
		filled := false
		for _, s := range row {
			if s == game.Empty {
				sb.WriteString("  ")
				continue
			}
			filled = true
			sb.WriteString(cell("██", s))
		}
		if filled {
			lines = append(lines, sb.String())
		}
	}
	if len(lines) == 0 {
		return "Empty"
	}
	return strings.Join(lines, "\n")
}

func RenderInfo(f session.Frame) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("TETRIGO") + "\n\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Score: %d", f.Points)) + "\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Level: %d", f.Level)) + "\n")
	sb.WriteString(infoStyle.Render(fmt.Sprintf("Lines: %d", f.Lines)) + "\n\n")

	sb.WriteString(titleStyle.Render("NEXT") + "\n")
	sb.WriteString(RenderPreview(f))

	return sb.String()
}

func RenderPaused() string {
	return pausedStyle.Render("\n\n\n     PAUSED     \n\n  Press ENTER to resume  \n\n\n")
}

func RenderGameOver(score int) string {
	return gameOverStyle.Render(fmt.Sprintf("\n\n\n     GAME OVER     \n     Score: %d     \n\n  Press ENTER to play again  \n\n\n", score))
}

func RenderControls(bindings []key.Binding) string {
	var sb strings.Builder
	sb.WriteString("Controls:\n")
	for _, b := range bindings {
		h := b.Help()
		sb.WriteString(fmt.Sprintf("  %-8s %s\n", h.Key, h.Desc))
	}
	return infoStyle.Render(sb.String())
}

// RenderFrame lays out a whole frame: score and preview on the left, the
// board in the centre. Pause and game over replace the board.
func RenderFrame(f session.Frame) string {
	var center string
	switch f.State {
	case session.Pause:
		center = RenderPaused()
	case session.GameOver:
		center = RenderGameOver(f.Points)
	default:
		center = RenderBoard(f)
	}

	leftPanel := lipgloss.NewStyle().
		Width(24).
		Render(RenderInfo(f))

	centerPanel := lipgloss.NewStyle().
		Padding(1, 2).
		Render(center)

	return lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, centerPanel)
}
