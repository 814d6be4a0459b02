package engine

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"
)

// Factory produces new pieces. The shape is picked uniformly at random;
// the color is the palette entry at the same index as the shape.
type Factory struct {
	shapes []Shape
	colors int
	spawnX int
	rng    *rand.Rand
}

// NewFactory validates the shape list against the palette and returns a
// factory. A palette longer than the shape list is accepted; the extra
// entries can never be picked, which is reported once through logger.
func NewFactory(shapes []Shape, palette []string, spawnX int, rng *rand.Rand, logger *log.Logger) (*Factory, error) {
	if len(shapes) == 0 {
		return nil, ErrNoShapes
	}
	if len(palette) < len(shapes) {
		return nil, fmt.Errorf("%w: %d colors for %d shapes", ErrPaletteTooShort, len(palette), len(shapes))
	}
	for i, s := range shapes {
		if s.Rows() == 0 || s.Cols() == 0 {
			return nil, fmt.Errorf("engine: shape %d: %w", i, ErrInvalidShape)
		}
	}
	if len(palette) > len(shapes) && logger != nil {
		logger.Warn("palette entries beyond shape count are unreachable",
			"shapes", len(shapes), "palette", len(palette))
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(0))
	}

	owned := make([]Shape, len(shapes))
	for i, s := range shapes {
		owned[i] = s.Clone()
	}
	return &Factory{
		shapes: owned,
		colors: len(palette),
		spawnX: spawnX,
		rng:    rng,
	}, nil
}

// CreatePiece returns a new piece at the spawn position (spawnX, 0).
func (f *Factory) CreatePiece() Piece {
	i := f.rng.Intn(len(f.shapes))
	return Piece{
		Shape: f.shapes[i].Clone(),
		Color: Color(i + 1),
		X:     f.spawnX,
		Y:     0,
	}
}
