package session

import (
	"github.com/hersh/tetrigo/internal/game"
)

// Size of the next-piece preview board.
const (
	PreviewWidth  = 6
	PreviewHeight = 6
)

// Frame is everything a renderer needs to draw one picture of the session.
type Frame struct {
	State State

	// Board is a copy of the playfield, without the falling piece.
	Board [][]game.Shape

	Piece     []game.Point
	PieceType game.Shape

	// GhostDrop is how many rows a hard drop would move the piece.
	GhostDrop int

	// Preview is a small board with the next piece drawn at the generator
	// anchor.
	Preview   [][]game.Shape
	NextPiece game.Shape

	Level  int
	Points int
	Lines  int
}

// Renderer draws frames. It is called once per redraw.
type Renderer interface {
	Render(Frame)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Frame)

func (f RendererFunc) Render(fr Frame) { f(fr) }

func newFrame(state State, g *game.Game) Frame {
	p := g.Piece()
	progress := g.Progress()

	preview := game.NewMatrix(PreviewWidth, PreviewHeight)
	preview.MergePiece(g.NextPiece())

	return Frame{
		State:     state,
		Board:     g.Matrix().Rows(),
		Piece:     p.Cells(),
		PieceType: p.Type,
		GhostDrop: g.GhostY() - p.Y,
		Preview:   preview.Rows(),
		NextPiece: g.NextPiece().Type,
		Level:     progress.Level,
		Points:    progress.Points,
		Lines:     progress.Lines,
	}
}
