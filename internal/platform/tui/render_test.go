package tui

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blockfall/internal/core"
)

func TestScreenRendererPlainOutput(t *testing.T) {
	// A renderer on a non-terminal writer has no colors, so styled runs
	// must collapse to the screen's plain text.
	sr := NewScreenRenderer(lipgloss.NewRenderer(&bytes.Buffer{}))

	s := core.NewScreen(12, 3)
	s.DrawText(0, 0, "Score: 10")
	s.DrawTextColored(2, 1, "##", core.ColorCyan)
	s.DrawTextColored(4, 1, "##", core.ColorOrange)
	s.SetColored(11, 2, '.', core.Color(200)) // unknown color

	if got, want := sr.Render(s), s.String(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderScreenLineCount(t *testing.T) {
	s := core.NewScreen(5, 4)
	out := RenderScreen(s)

	lines := bytes.Count([]byte(out), []byte("\n")) + 1
	if lines != 4 {
		t.Errorf("RenderScreen produced %d lines, want 4", lines)
	}
}
