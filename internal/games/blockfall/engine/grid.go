// Package engine implements the falling-block game state: the grid, the
// active piece, collision checks, line clearing, scoring and the lock
// sequence. It has no knowledge of terminals, timers or audio; the
// platform drives it through Move, Rotate, SoftDrop and HardDrop and
// observes it through State and the On* hooks.
package engine

// Color identifies the color of a filled cell.
// Empty is the zero value; non-zero values are 1-based palette indices.
type Color uint8

// Empty marks an unoccupied cell.
const Empty Color = 0

// Grid is a fixed-size matrix of cells addressed as (x, y) with y growing
// downward. Its dimensions never change after creation.
type Grid struct {
	rows    int
	columns int
	cells   [][]Color // cells[y][x]
}

// NewGrid creates an empty grid. Non-positive dimensions yield an empty
// 0x0 grid; callers validate dimensions before construction.
func NewGrid(rows, columns int) *Grid {
	if rows < 0 {
		rows = 0
	}
	if columns < 0 {
		columns = 0
	}
	g := &Grid{rows: rows, columns: columns, cells: make([][]Color, rows)}
	for y := range g.cells {
		g.cells[y] = make([]Color, columns)
	}
	return g
}

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// Columns returns the number of columns.
func (g *Grid) Columns() int { return g.columns }

// InBounds reports whether (x, y) addresses a grid cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.columns && y >= 0 && y < g.rows
}

// At returns the color at (x, y), or Empty when out of bounds.
func (g *Grid) At(x, y int) Color {
	if !g.InBounds(x, y) {
		return Empty
	}
	return g.cells[y][x]
}

// Set writes a color at (x, y). Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, c Color) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y][x] = c
}

// IsEmpty reports whether (x, y) is an in-bounds empty cell.
func (g *Grid) IsEmpty(x, y int) bool {
	return g.InBounds(x, y) && g.cells[y][x] == Empty
}

// RowFull reports whether every cell of row y is filled.
func (g *Grid) RowFull(y int) bool {
	if y < 0 || y >= g.rows {
		return false
	}
	for _, c := range g.cells[y] {
		if c == Empty {
			return false
		}
	}
	return true
}

// RemoveRow deletes row y, shifts every row above it down by one and
// inserts an empty row at the top.
func (g *Grid) RemoveRow(y int) {
	if y < 0 || y >= g.rows {
		return
	}
	removed := g.cells[y]
	copy(g.cells[1:y+1], g.cells[:y])
	clear(removed)
	g.cells[0] = removed
}

// Clear empties every cell.
func (g *Grid) Clear() {
	for _, row := range g.cells {
		clear(row)
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{rows: g.rows, columns: g.columns, cells: make([][]Color, g.rows)}
	for y, row := range g.cells {
		c.cells[y] = append([]Color(nil), row...)
	}
	return c
}

// Filled returns the number of non-empty cells.
func (g *Grid) Filled() int {
	n := 0
	for _, row := range g.cells {
		for _, c := range row {
			if c != Empty {
				n++
			}
		}
	}
	return n
}

// String renders the grid with '.' for empty cells and '#' for filled ones.
func (g *Grid) String() string {
	b := make([]byte, 0, g.rows*(g.columns+1))
	for y, row := range g.cells {
		if y > 0 {
			b = append(b, '\n')
		}
		for _, c := range row {
			if c == Empty {
				b = append(b, '.')
			} else {
				b = append(b, '#')
			}
		}
	}
	return string(b)
}
