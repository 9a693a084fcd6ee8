package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sequence hands out unrotated pieces in a fixed order, cycling forever.
type sequence struct {
	shapes []Shape
	n      int
}

func newSequence(shapes ...Shape) *sequence {
	return &sequence{shapes: shapes}
}

func (s *sequence) Next() *Piece {
	p := NewPiece(s.shapes[s.n%len(s.shapes)], GeneratorX, GeneratorY)
	s.n++
	return p
}

func TestNewGameSpawn(t *testing.T) {
	g := New(newSequence(T, I))

	require.NotNil(t, g.Piece())
	assert.Equal(t, T, g.Piece().Type)
	assert.Equal(t, 4, g.Piece().X)
	assert.Equal(t, 1, g.Piece().Y)

	require.NotNil(t, g.NextPiece())
	assert.Equal(t, I, g.NextPiece().Type)
	assert.Equal(t, GeneratorX, g.NextPiece().X)
	assert.Equal(t, GeneratorY, g.NextPiece().Y)

	assert.Equal(t, BoardWidth, g.Matrix().Width())
	assert.Equal(t, BoardHeight, g.Matrix().Height())
	assert.False(t, g.Over())
}

func TestNewGameFromSeed(t *testing.T) {
	a := NewGame(99)
	b := NewGame(99)
	assert.Equal(t, a.Piece(), b.Piece())
	assert.Equal(t, a.NextPiece(), b.NextPiece())
}

func TestMoveActions(t *testing.T) {
	tests := []struct {
		name   string
		action func(g *Game)
		filled []Point
		wantX  int
		wantY  int
	}{
		{name: "left unblocked", action: (*Game).MoveLeft, wantX: 3, wantY: 1},
		{name: "left blocked", action: (*Game).MoveLeft, filled: []Point{{2, 1}}, wantX: 4, wantY: 1},
		{name: "right unblocked", action: (*Game).MoveRight, wantX: 5, wantY: 1},
		{name: "right blocked", action: (*Game).MoveRight, filled: []Point{{6, 1}}, wantX: 4, wantY: 1},
		{name: "soft drop unblocked", action: (*Game).SoftDrop, wantX: 4, wantY: 2},
		{name: "soft drop blocked", action: (*Game).SoftDrop, filled: []Point{{4, 3}}, wantX: 4, wantY: 1},
		{name: "hard drop", action: func(g *Game) { g.HardDrop() }, wantX: 4, wantY: 18},
		{name: "hard drop onto stack", action: func(g *Game) { g.HardDrop() }, filled: []Point{{5, 10}}, wantX: 4, wantY: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := NewMatrix(BoardWidth, BoardHeight)
			fill(m, Z, tt.filled...)
			g := NewWithMatrix(m, newSequence(T))

			tt.action(g)
			assert.Equal(t, tt.wantX, g.Piece().X)
			assert.Equal(t, tt.wantY, g.Piece().Y)
		})
	}
}

func TestMoveStopsAtWalls(t *testing.T) {
	g := New(newSequence(T))
	for range 10 {
		g.MoveLeft()
	}
	assert.Equal(t, 1, g.Piece().X)

	for range 20 {
		g.MoveRight()
	}
	assert.Equal(t, 8, g.Piece().X)
}

func TestSoftDropAlwaysScores(t *testing.T) {
	g := New(newSequence(T))
	g.HardDrop()
	before := g.Progress().Points
	y := g.Piece().Y

	g.SoftDrop()
	assert.Equal(t, y, g.Piece().Y)
	assert.Equal(t, before+1, g.Progress().Points)
}

func TestHardDrop(t *testing.T) {
	g := New(newSequence(T))

	distance := g.HardDrop()
	assert.Equal(t, 17, distance)
	assert.Equal(t, 34, g.Progress().Points)
	assert.False(t, g.Matrix().CanFall(g.Piece()))

	// already resting: no movement, no points
	assert.Equal(t, 0, g.HardDrop())
	assert.Equal(t, 18, g.Piece().Y)
	assert.Equal(t, 34, g.Progress().Points)
}

func TestGhostY(t *testing.T) {
	g := New(newSequence(T))
	assert.Equal(t, 18, g.GhostY())
	assert.Equal(t, 1, g.Piece().Y)
}

func TestRotate(t *testing.T) {
	t.Run("clockwise in open space", func(t *testing.T) {
		g := New(newSequence(T))
		g.RotateClockwise()
		assert.Equal(t, [4][2]int{{0, -1}, {0, 0}, {0, 1}, {-1, 0}}, offsetsOf(g.Piece()))
		assert.Equal(t, 4, g.Piece().X)
	})

	t.Run("round trip", func(t *testing.T) {
		g := New(newSequence(L))
		want := offsetsOf(g.Piece())
		g.RotateClockwise()
		g.RotateCounterClockwise()
		assert.Equal(t, want, offsetsOf(g.Piece()))
	})

	t.Run("pushed back from the left wall", func(t *testing.T) {
		g := New(newSequence(I))
		for range 4 {
			g.MoveLeft()
		}
		require.Equal(t, 0, g.Piece().X)

		g.RotateClockwise()
		assert.Equal(t, 2, g.Piece().X)
		for _, c := range g.Piece().Cells() {
			assert.Equal(t, 1, c.Y)
			assert.GreaterOrEqual(t, c.X, 0)
		}
	})

	t.Run("pushed back from the right wall", func(t *testing.T) {
		g := New(newSequence(I))
		for range 5 {
			g.MoveRight()
		}
		require.Equal(t, 9, g.Piece().X)

		g.RotateClockwise()
		assert.Equal(t, 8, g.Piece().X)
	})

	t.Run("undone on collision", func(t *testing.T) {
		m := NewMatrix(BoardWidth, BoardHeight)
		fill(m, Z, Point{3, 1})
		g := NewWithMatrix(m, newSequence(I))
		want := offsetsOf(g.Piece())

		g.RotateClockwise()
		assert.Equal(t, want, offsetsOf(g.Piece()))
		assert.Equal(t, 4, g.Piece().X)
	})

	t.Run("wall push undone on collision", func(t *testing.T) {
		m := NewMatrix(BoardWidth, BoardHeight)
		fill(m, Z, Point{3, 1})
		g := NewWithMatrix(m, newSequence(I))
		g.Piece().X = 0
		want := offsetsOf(g.Piece())

		g.RotateClockwise()
		assert.Equal(t, want, offsetsOf(g.Piece()))
		assert.Equal(t, 0, g.Piece().X)
	})

	t.Run("O does not rotate", func(t *testing.T) {
		g := New(newSequence(O))
		want := offsetsOf(g.Piece())
		g.RotateClockwise()
		g.RotateCounterClockwise()
		g.RotateCounterClockwise()
		assert.Equal(t, want, offsetsOf(g.Piece()))
	})
}

func TestAdvanceTickFalls(t *testing.T) {
	g := New(newSequence(T))
	assert.False(t, g.AdvanceTick())
	assert.Equal(t, 2, g.Piece().Y)
	assert.Equal(t, 0, g.Progress().Points)
}

func TestAdvanceTickLocks(t *testing.T) {
	g := New(newSequence(T, S, Z))
	g.HardDrop()

	assert.False(t, g.AdvanceTick())
	for _, c := range []Point{{3, 18}, {4, 18}, {5, 18}, {4, 19}} {
		assert.Equal(t, T, g.Matrix().At(c.X, c.Y), "cell %v", c)
	}

	assert.Equal(t, S, g.Piece().Type)
	assert.Equal(t, 4, g.Piece().X)
	assert.Equal(t, 0, g.Piece().Y)
	assert.Equal(t, Z, g.NextPiece().Type)
}

func TestAdvanceTickClearsLines(t *testing.T) {
	m := NewMatrix(BoardWidth, BoardHeight)
	for y := 16; y < 20; y++ {
		for x := 0; x < BoardWidth; x++ {
			if x != 4 {
				fill(m, Z, Point{x, y})
			}
		}
	}
	g := NewWithMatrix(m, newSequence(I))

	assert.Equal(t, 16, g.HardDrop())
	assert.False(t, g.AdvanceTick())

	for _, row := range g.Matrix().Rows() {
		for _, c := range row {
			assert.Equal(t, Empty, c)
		}
	}
	p := g.Progress()
	assert.Equal(t, 4, p.Lines)
	assert.Equal(t, 1, p.BackToBack)
	assert.Equal(t, 32+800, p.Points)
}

func TestGameOver(t *testing.T) {
	m := NewMatrix(BoardWidth, BoardHeight)
	fill(m, Z, Point{4, 3})
	g := NewWithMatrix(m, newSequence(O))

	// O at (4,1) rests on (4,3); the next O spawns at (4,0) into it
	assert.True(t, g.AdvanceTick())
	assert.True(t, g.Over())

	rows := g.Matrix().Rows()
	piece := g.Piece().Clone()
	next := g.NextPiece().Clone()
	points := g.Progress().Points

	assert.True(t, g.AdvanceTick())
	g.MoveLeft()
	g.MoveRight()
	g.RotateClockwise()
	g.RotateCounterClockwise()
	g.SoftDrop()
	assert.Equal(t, 0, g.HardDrop())

	assert.Equal(t, rows, g.Matrix().Rows())
	assert.Equal(t, piece, g.Piece())
	assert.Equal(t, next, g.NextPiece())
	assert.Equal(t, points, g.Progress().Points)
}
