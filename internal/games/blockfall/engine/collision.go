package engine

// IsValidPlacement reports whether p fits on g. A cell to the left or
// right of the grid or below its last row is invalid. Cells above the
// top (y < 0) are always valid; cells inside the grid must be empty.
func IsValidPlacement(g *Grid, p Piece) bool {
	for r, row := range p.Shape {
		for c, on := range row {
			if !on {
				continue
			}
			x := p.X + c
			y := p.Y + r
			if x < 0 || x >= g.Columns() || y >= g.Rows() {
				return false
			}
			if y < 0 {
				continue
			}
			if g.At(x, y) != Empty {
				return false
			}
		}
	}
	return true
}
