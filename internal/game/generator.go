package game

import (
	"math/rand"
)

// Spawn anchor used by the generator. The preview board draws the next piece
// at this anchor; the game moves it to its own spawn point before play.
const (
	GeneratorX = 2
	GeneratorY = 2
)

// PieceSource hands out the pieces a game plays with.
type PieceSource interface {
	Next() *Piece
}

// Generator picks every shape with equal probability and applies a random
// number of counter-clockwise pre-rotations. Two generators created with the
// same seed produce identical sequences.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a seeded generator.
func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Next returns a fresh random piece at the generator anchor.
func (g *Generator) Next() *Piece {
	p := NewPiece(Shapes[g.rng.Intn(len(Shapes))], GeneratorX, GeneratorY)
	if n := preRotations(p.Type); n > 0 {
		for range g.rng.Intn(n) {
			p.RotateCCW()
		}
	}
	return p
}

// preRotations is the size of the rotation-count range for a shape. J, L and
// T only ever start in three of their four orientations.
func preRotations(s Shape) int {
	switch s {
	case I, S, Z:
		return 2
	case J, L, T:
		return 3
	default:
		return 0
	}
}
