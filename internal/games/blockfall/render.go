package blockfall

import (
	"fmt"

	"github.com/vovakirdan/tui-blockfall/internal/core"
	"github.com/vovakirdan/tui-blockfall/internal/games/blockfall/engine"
)

const sidePanelWidth = 20

const (
	runeFilled = '█'
	runeShadow = '░'
	runeEmpty  = '·'
)

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.eng == nil {
		return
	}

	g.renderHUD(dst)

	if g.tooSmall {
		bw, bh := g.boardSize()
		g.renderOverlay(dst, "Window too small",
			fmt.Sprintf("Need %dx%d", bw+sidePanelWidth, bh+hudHeight))
		return
	}

	st := g.eng.State()
	g.renderBoard(dst, st)
	g.renderSidePanel(dst, st)

	switch {
	case st.GameOver:
		g.renderOverlay(dst, "GAME OVER", fmt.Sprintf("Score %d  R to restart", st.Score))
	case g.paused:
		g.renderOverlay(dst, "PAUSED", "P to resume")
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	hud := fmt.Sprintf(" %s  Score: %d  Best: %d  Lines: %d", g.Title(), g.scoreLabel, g.best, g.Lines())
	dst.DrawText(0, 0, hud)

	for x := range dst.Width() {
		dst.SetColored(x, 1, '─', core.ColorGray)
	}
}

// renderBoard draws the frame, the locked cells, the shadow and the piece.
func (g *Game) renderBoard(dst *core.Screen, st engine.State) {
	bw, bh := g.boardSize()
	dst.DrawBoxColored(core.NewRect(g.boardX, g.boardY, bw, bh), core.ColorGray)

	for y := range st.Grid.Rows() {
		for x := range st.Grid.Columns() {
			if c := st.Grid.At(x, y); c != engine.Empty {
				g.drawCell(dst, x, y, runeFilled, g.colorOf(c))
			} else {
				g.drawCell(dst, x, y, runeEmpty, core.ColorGray)
			}
		}
	}

	if !st.GameOver {
		shadow := st.Piece
		shadow.Y = g.eng.ShadowRow()
		for _, p := range shadow.Cells() {
			if p.Y >= 0 && st.Grid.IsEmpty(p.X, p.Y) {
				g.drawCell(dst, p.X, p.Y, runeShadow, core.ColorGray)
			}
		}
	}

	for _, p := range st.Piece.Cells() {
		if p.Y >= 0 {
			g.drawCell(dst, p.X, p.Y, runeFilled, g.colorOf(st.Piece.Color))
		}
	}
}

// drawCell paints one grid cell, cell_width screen columns wide.
// Empty cells show a single dot followed by blanks.
func (g *Game) drawCell(dst *core.Screen, x, y int, r rune, c core.Color) {
	w := g.cfg.Board.CellWidth
	sx := g.boardX + 1 + x*w
	sy := g.boardY + 1 + y
	for i := range w {
		if r == runeEmpty && i > 0 {
			dst.Set(sx+i, sy, ' ')
			continue
		}
		dst.SetColored(sx+i, sy, r, c)
	}
}

// colorOf maps an engine color (1-based palette index) to a terminal color.
func (g *Game) colorOf(c engine.Color) core.Color {
	i := int(c) - 1
	if i < 0 || i >= len(g.colors) {
		return core.ColorWhite
	}
	return g.colors[i]
}

// renderSidePanel draws score, best, lines and the key help.
func (g *Game) renderSidePanel(dst *core.Screen, st engine.State) {
	bw, _ := g.boardSize()
	x := g.boardX + bw + 2
	y := g.boardY

	rows := []struct {
		label string
		value int
	}{
		{"SCORE", g.scoreLabel},
		{"BEST", g.best},
		{"LINES", g.Lines()},
	}
	for _, r := range rows {
		dst.DrawTextColored(x, y, r.label, core.ColorGray)
		dst.DrawText(x, y+1, fmt.Sprintf("%d", r.value))
		y += 3
	}

	dst.DrawTextColored(x, y, "mode: "+string(g.mode), core.ColorGray)
	y += 2

	for _, c := range Controls() {
		if y >= g.boardY+g.cfg.Board.Rows+2 {
			break
		}
		line := fmt.Sprintf("%-6s %s", c.Action, c.Keys)
		if n := sidePanelWidth - 2; len([]rune(line)) > n {
			line = string([]rune(line)[:n])
		}
		dst.DrawTextColored(x, y, line, core.ColorGray)
		y++
	}
}

// renderOverlay draws a centered box with two lines of text.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	width := max(len([]rune(line1)), len([]rune(line2))) + 4
	box := dst.Bounds().Centered(width, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
