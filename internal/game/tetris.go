package game

import (
	"time"
)

// Rows the current piece is placed on when it enters the board. The very
// first piece starts one row lower than the pieces promoted from the preview.
const (
	firstSpawnY = 1
	spawnY      = 0
)

// Game owns the board, the falling piece, the preview piece and the score.
// It is not safe for concurrent use; a single scheduler drives it.
type Game struct {
	matrix   *Matrix
	piece    *Piece
	next     *Piece
	progress *Progress
	source   PieceSource
	over     bool
}

// NewGame starts a game on a standard board fed by a seeded generator.
func NewGame(seed int64) *Game {
	return New(NewGenerator(seed))
}

// NewSeededGame starts a game seeded from the wall clock.
func NewSeededGame() *Game {
	return NewGame(time.Now().UnixNano())
}

// New starts a game on a standard board fed by src.
func New(src PieceSource) *Game {
	return NewWithMatrix(NewMatrix(BoardWidth, BoardHeight), src)
}

// NewWithMatrix starts a game on m. It is used to set up positions in tests.
func NewWithMatrix(m *Matrix, src PieceSource) *Game {
	g := &Game{
		matrix:   m,
		progress: NewProgress(),
		source:   src,
	}
	g.piece = src.Next()
	g.place(g.piece, firstSpawnY)
	g.next = src.Next()
	return g
}

func (g *Game) place(p *Piece, y int) {
	p.X = g.matrix.Width()/2 - 1
	p.Y = y
}

func (g *Game) Matrix() *Matrix     { return g.matrix }
func (g *Game) Piece() *Piece       { return g.piece }
func (g *Game) NextPiece() *Piece   { return g.next }
func (g *Game) Progress() *Progress { return g.progress }

// Over reports whether the game has ended. An ended game ignores all actions.
func (g *Game) Over() bool { return g.over }

// RotateClockwise rotates the piece, pushing it back inside the side walls
// if needed. The rotation is undone when the result overlaps the stack.
func (g *Game) RotateClockwise() {
	g.rotate((*Piece).RotateCW, (*Piece).RotateCCW)
}

func (g *Game) RotateCounterClockwise() {
	g.rotate((*Piece).RotateCCW, (*Piece).RotateCW)
}

func (g *Game) rotate(turn, undo func(*Piece)) {
	if g.over {
		return
	}
	turn(g.piece)
	offset := g.matrix.CheckHorizontalBounds(g.piece)
	g.piece.X -= offset
	if g.matrix.CheckCollision(g.piece) {
		g.piece.X += offset
		undo(g.piece)
	}
}

func (g *Game) MoveLeft() {
	if !g.over && g.matrix.CanMove(g.piece, -1) {
		g.piece.X--
	}
}

func (g *Game) MoveRight() {
	if !g.over && g.matrix.CanMove(g.piece, 1) {
		g.piece.X++
	}
}

// SoftDrop moves the piece one row down if it can fall. The soft drop is
// scored either way.
func (g *Game) SoftDrop() {
	if g.over {
		return
	}
	if g.matrix.CanFall(g.piece) {
		g.piece.Y++
	}
	g.progress.OnSoftDrop()
}

// HardDrop moves the piece down as far as it can fall and returns the
// distance. The piece locks on the next AdvanceTick.
func (g *Game) HardDrop() int {
	if g.over {
		return 0
	}
	distance := 0
	for g.matrix.CanFall(g.piece) {
		g.piece.Y++
		distance++
	}
	g.progress.OnHardDrop(distance)
	return distance
}

// GhostY returns the row the piece would land on after a hard drop.
func (g *Game) GhostY() int {
	ghost := g.piece.Clone()
	for g.matrix.CanFall(ghost) {
		ghost.Y++
	}
	return ghost.Y
}

// AdvanceTick applies gravity. A piece that can fall moves one row down;
// otherwise it is merged, full lines are cleared and the preview piece takes
// its place. It reports true once the newly spawned piece has no room, and
// keeps reporting true without touching the board afterwards.
func (g *Game) AdvanceTick() (gameOver bool) {
	if g.over {
		return true
	}
	if g.matrix.CanFall(g.piece) {
		g.piece.Y++
		g.progress.OnPieceFall()
		return false
	}

	g.matrix.MergePiece(g.piece)
	cleared := g.matrix.ClearLines()
	g.progress.OnPieceStop(len(cleared))

	g.piece = g.next
	g.place(g.piece, spawnY)
	g.next = g.source.Next()

	if g.matrix.CheckCollision(g.piece) {
		g.over = true
	}
	return g.over
}
