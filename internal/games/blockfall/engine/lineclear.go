package engine

// clearLines removes every full row in one bottom-up pass and returns how
// many were removed. After a removal the same index is examined again,
// since the row that slid into it may be full as well.
func clearLines(g *Grid) int {
	if g.Columns() == 0 {
		return 0
	}
	lines := 0
	for y := g.Rows() - 1; y >= 0; {
		if g.RowFull(y) {
			g.RemoveRow(y)
			lines++
			continue
		}
		y--
	}
	return lines
}
