package game

const (
	BoardWidth  = 10
	BoardHeight = 20
)

// Matrix is the playfield. Cells are addressed as cells[y][x]; row 0 is the
// top. Its dimensions never change after construction.
type Matrix struct {
	width  int
	height int
	cells  [][]Shape
}

// NewMatrix returns an empty width x height board. Non-positive sizes panic.
func NewMatrix(width, height int) *Matrix {
	if width <= 0 || height <= 0 {
		panic("game: matrix dimensions must be positive")
	}
	m := &Matrix{
		width:  width,
		height: height,
		cells:  make([][]Shape, height),
	}
	for y := range m.cells {
		m.cells[y] = m.emptyRow()
	}
	return m
}

// MatrixFromRows builds a board from a copy of rows. All rows must share the
// width of the first one.
func MatrixFromRows(rows [][]Shape) *Matrix {
	if len(rows) == 0 {
		panic("game: matrix needs at least one row")
	}
	m := NewMatrix(len(rows[0]), len(rows))
	for y, row := range rows {
		if len(row) != m.width {
			panic("game: ragged matrix rows")
		}
		copy(m.cells[y], row)
	}
	return m
}

// MatrixFromFlat reconstructs a board from the row-major form produced by
// Flat. Missing trailing cells stay empty.
func MatrixFromFlat(flat []Shape, width, height int) *Matrix {
	m := NewMatrix(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			idx := y*width + x
			if idx < len(flat) {
				m.cells[y][x] = flat[idx]
			}
		}
	}
	return m
}

func (m *Matrix) emptyRow() []Shape {
	return make([]Shape, m.width)
}

func (m *Matrix) Width() int  { return m.width }
func (m *Matrix) Height() int { return m.height }

// At returns the cell at (x, y). Coordinates outside the board read as Empty.
func (m *Matrix) At(x, y int) Shape {
	if !m.inside(x, y) {
		return Empty
	}
	return m.cells[y][x]
}

func (m *Matrix) inside(x, y int) bool {
	return x >= 0 && x < m.width && y >= 0 && y < m.height
}

// Rows returns a deep copy of the board.
func (m *Matrix) Rows() [][]Shape {
	rows := make([][]Shape, m.height)
	for y := range m.cells {
		rows[y] = make([]Shape, m.width)
		copy(rows[y], m.cells[y])
	}
	return rows
}

// Flat returns the board in row-major order.
func (m *Matrix) Flat() []Shape {
	flat := make([]Shape, 0, m.width*m.height)
	for _, row := range m.cells {
		flat = append(flat, row...)
	}
	return flat
}

// CanMove reports whether the piece fits when shifted horizontally by
// offset. Bricks above the top row are allowed and skip the occupancy check.
func (m *Matrix) CanMove(p *Piece, offset int) bool {
	for _, b := range p.Bricks {
		x := p.X + b.RelX + offset
		y := p.Y + b.RelY
		if x < 0 || x >= m.width || y >= m.height {
			return false
		}
		if y >= 0 && m.cells[y][x] != Empty {
			return false
		}
	}
	return true
}

// CheckCollision reports whether the piece overlaps filled cells or the
// side and bottom walls in its current position.
func (m *Matrix) CheckCollision(p *Piece) bool {
	return !m.CanMove(p, 0)
}

// CanFall reports whether the piece can descend one row.
func (m *Matrix) CanFall(p *Piece) bool {
	for _, b := range p.Bricks {
		x := p.X + b.RelX
		y := p.Y + b.RelY + 1
		if y >= m.height {
			return false
		}
		if y < 0 {
			continue
		}
		if x < 0 || x >= m.width || m.cells[y][x] != Empty {
			return false
		}
	}
	return true
}

// CheckHorizontalBounds returns how far the piece sticks out of the board:
// negative when it overflows on the left, positive on the right, zero when it
// fits. Overflow is assumed to happen on one side only; subtracting the
// result from the piece X brings it back inside.
func (m *Matrix) CheckHorizontalBounds(p *Piece) int {
	offset := 0
	for _, b := range p.Bricks {
		x := p.X + b.RelX
		if x < 0 && x < offset {
			offset = x
		} else if x >= m.width && x-m.width+1 > offset {
			offset = x - m.width + 1
		}
	}
	return offset
}

// MergePiece writes the piece into the board. Bricks outside the board are
// dropped.
func (m *Matrix) MergePiece(p *Piece) {
	for _, b := range p.Bricks {
		x := p.X + b.RelX
		y := p.Y + b.RelY
		if m.inside(x, y) {
			m.cells[y][x] = b.Type
		}
	}
}

// ClearLines removes every full row, shifts the remaining rows down and adds
// the same number of empty rows on top. It returns the indexes of the
// cleared rows in top-to-bottom order.
func (m *Matrix) ClearLines() []int {
	var cleared []int
	kept := make([][]Shape, 0, m.height)
	for y, row := range m.cells {
		if m.full(row) {
			cleared = append(cleared, y)
			continue
		}
		kept = append(kept, row)
	}
	if len(cleared) == 0 {
		return nil
	}

	cells := make([][]Shape, 0, m.height)
	for range cleared {
		cells = append(cells, m.emptyRow())
	}
	m.cells = append(cells, kept...)
	return cleared
}

func (m *Matrix) full(row []Shape) bool {
	for _, c := range row {
		if c == Empty {
			return false
		}
	}
	return true
}
