package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Shape is a boolean occupancy matrix indexed [row][col].
// Rows of a valid shape all have the same length.
type Shape [][]bool

// ErrInvalidShape is returned by ParseShape for empty or ragged input.
var ErrInvalidShape = errors.New("engine: invalid shape")

// ParseShape builds a shape from rows of text where 'X' or '#' marks an
// occupied cell and any other rune an empty one.
func ParseShape(rows []string) (Shape, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no rows", ErrInvalidShape)
	}
	width := len([]rune(rows[0]))
	if width == 0 {
		return nil, fmt.Errorf("%w: empty row", ErrInvalidShape)
	}

	s := make(Shape, len(rows))
	occupied := 0
	for r, row := range rows {
		runes := []rune(row)
		if len(runes) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidShape, r, len(runes), width)
		}
		s[r] = make([]bool, width)
		for c, ch := range runes {
			if ch == 'X' || ch == 'x' || ch == '#' {
				s[r][c] = true
				occupied++
			}
		}
	}
	if occupied == 0 {
		return nil, fmt.Errorf("%w: no occupied cells", ErrInvalidShape)
	}
	return s, nil
}

// MustParseShape is like ParseShape but panics on error.
func MustParseShape(rows ...string) Shape {
	s, err := ParseShape(rows)
	if err != nil {
		panic(err)
	}
	return s
}

// Rows returns the number of rows in the shape.
func (s Shape) Rows() int { return len(s) }

// Cols returns the number of columns in the shape.
func (s Shape) Cols() int {
	if len(s) == 0 {
		return 0
	}
	return len(s[0])
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	c := make(Shape, len(s))
	for r, row := range s {
		c[r] = append([]bool(nil), row...)
	}
	return c
}

// Rotate returns the shape transposed with its row order reversed.
// For an R x C input the result is C x R with
// result[k][j] = s[j][C-1-k].
func (s Shape) Rotate() Shape {
	rows, cols := s.Rows(), s.Cols()
	out := make(Shape, cols)
	for k := range cols {
		out[k] = make([]bool, rows)
		for j := range rows {
			out[k][j] = s[j][cols-1-k]
		}
	}
	return out
}

// Equal reports whether two shapes have identical dimensions and occupancy.
func (s Shape) Equal(o Shape) bool {
	if len(s) != len(o) {
		return false
	}
	for r := range s {
		if len(s[r]) != len(o[r]) {
			return false
		}
		for c := range s[r] {
			if s[r][c] != o[r][c] {
				return false
			}
		}
	}
	return true
}

// String renders the shape using 'X' and '.'.
func (s Shape) String() string {
	lines := make([]string, len(s))
	for r, row := range s {
		var b strings.Builder
		for _, on := range row {
			if on {
				b.WriteByte('X')
			} else {
				b.WriteByte('.')
			}
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

// Point is a grid coordinate.
type Point struct {
	X, Y int
}

// Piece is a shape with a color anchored at column X, row Y.
// The anchor is the shape's top-left cell.
type Piece struct {
	Shape Shape
	Color Color
	X     int
	Y     int
}

// Translated returns a copy moved by (dx, dy). The shape is shared.
func (p Piece) Translated(dx, dy int) Piece {
	p.X += dx
	p.Y += dy
	return p
}

// Rotated returns a copy with the shape rotated. The anchor is unchanged.
func (p Piece) Rotated() Piece {
	p.Shape = p.Shape.Rotate()
	return p
}

// Clone returns a copy that shares no storage with p.
func (p Piece) Clone() Piece {
	p.Shape = p.Shape.Clone()
	return p
}

// Cells returns the absolute grid coordinates of every occupied cell.
func (p Piece) Cells() []Point {
	var pts []Point
	for r, row := range p.Shape {
		for c, on := range row {
			if on {
				pts = append(pts, Point{X: p.X + c, Y: p.Y + r})
			}
		}
	}
	return pts
}
