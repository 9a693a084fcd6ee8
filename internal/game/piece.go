package game

// Shape is the content of a board cell. Every piece type doubles as the tag
// written into the board when the piece locks.
type Shape uint8

const (
	Empty Shape = iota
	I
	J
	L
	O
	S
	T
	Z
)

// Shapes lists the seven piece types in generator order.
var Shapes = [7]Shape{I, J, L, O, S, T, Z}

var shapeNames = [...]string{"N", "I", "J", "L", "O", "S", "T", "Z"}

func (s Shape) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "?"
}

// ParseShape is the inverse of String.
func ParseShape(name string) (Shape, bool) {
	for i, n := range shapeNames {
		if n == name {
			return Shape(i), true
		}
	}
	return Empty, false
}

// Point is an absolute board coordinate. Row 0 is the top.
type Point struct {
	X, Y int
}

// Brick is one unit cell of a piece, relative to the piece pivot.
type Brick struct {
	Type Shape
	RelX int
	RelY int
}

func (b *Brick) rotateCW() {
	b.RelX, b.RelY = -b.RelY, b.RelX
}

func (b *Brick) rotateCCW() {
	b.RelX, b.RelY = b.RelY, -b.RelX
}

// pieceOffsets holds the initial brick offsets of every shape.
var pieceOffsets = map[Shape][4][2]int{
	I: {{0, -1}, {0, 0}, {0, 1}, {0, 2}},
	J: {{0, -1}, {0, 0}, {0, 1}, {1, -1}},
	L: {{0, -1}, {0, 0}, {0, 1}, {1, 1}},
	O: {{0, 0}, {1, 0}, {0, 1}, {1, 1}},
	S: {{0, 0}, {1, 0}, {-1, 1}, {0, 1}},
	T: {{-1, 0}, {0, 0}, {1, 0}, {0, 1}},
	Z: {{-1, 0}, {0, 0}, {0, 1}, {1, 1}},
}

// Piece is a tetromino anchored at (X, Y) on the board.
type Piece struct {
	X, Y   int
	Type   Shape
	Bricks [4]Brick

	// rigid pieces ignore rotation. Only O is rigid: its pivot sits between
	// cells, so the square is kept fixed instead of using half offsets.
	rigid bool
}

// NewPiece builds a piece of the given shape anchored at (x, y). It panics
// on Empty or an unknown shape.
func NewPiece(s Shape, x, y int) *Piece {
	offsets, ok := pieceOffsets[s]
	if !ok {
		panic("game: no piece for shape " + s.String())
	}
	p := &Piece{X: x, Y: y, Type: s, rigid: s == O}
	for i, o := range offsets {
		p.Bricks[i] = Brick{Type: s, RelX: o[0], RelY: o[1]}
	}
	return p
}

// RotateCW turns every brick 90 degrees clockwise around the pivot.
func (p *Piece) RotateCW() {
	if p.rigid {
		return
	}
	for i := range p.Bricks {
		p.Bricks[i].rotateCW()
	}
}

// RotateCCW undoes RotateCW.
func (p *Piece) RotateCCW() {
	if p.rigid {
		return
	}
	for i := range p.Bricks {
		p.Bricks[i].rotateCCW()
	}
}

// Cells returns the absolute position of each brick.
func (p *Piece) Cells() []Point {
	cells := make([]Point, len(p.Bricks))
	for i, b := range p.Bricks {
		cells[i] = Point{X: p.X + b.RelX, Y: p.Y + b.RelY}
	}
	return cells
}

// Clone returns a deep copy of the piece.
func (p *Piece) Clone() *Piece {
	c := *p
	return &c
}
