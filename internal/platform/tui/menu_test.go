package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	_ "github.com/vovakirdan/tui-blockfall/internal/games/blockfall"
)

func updateMenu(t *testing.T, m MenuModel, msgs ...tea.Msg) MenuModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		if m, ok = next.(MenuModel); !ok {
			t.Fatalf("Update returned %T, want MenuModel", next)
		}
	}
	return m
}

func TestMenuItems(t *testing.T) {
	m := NewMenuModel(nil, testRuntime())

	var titles []string
	for _, item := range m.items {
		titles = append(titles, item.Title)
	}
	want := []string{"Play", "Play (Game Over screen)", "High Scores", "Quit"}
	if strings.Join(titles, "|") != strings.Join(want, "|") {
		t.Errorf("items = %q, want %q", titles, want)
	}
}

func TestMenuSelectGame(t *testing.T) {
	m := NewMenuModel(nil, testRuntime())
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})

	sel := m.Selected()
	if sel == nil {
		t.Fatal("nothing selected")
	}
	if sel.GameID != "blockfall_halt" {
		t.Errorf("selected %q, want blockfall_halt", sel.GameID)
	}
}

func TestMenuCursorStaysInRange(t *testing.T) {
	m := NewMenuModel(nil, testRuntime())
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor = %d after up at top", m.cursor)
	}

	for range 10 {
		m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(m.items)-1 {
		t.Errorf("cursor = %d, want %d", m.cursor, len(m.items)-1)
	}
}

func TestMenuHighScores(t *testing.T) {
	m := NewMenuModel(nil, testRuntime())
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.WantsScoreboard() {
		t.Error("tab should open the scoreboard")
	}

	m = NewMenuModel(nil, testRuntime())
	m = updateMenu(t, m,
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	if !m.WantsScoreboard() || m.Selected() != nil {
		t.Error("High Scores entry should open the scoreboard")
	}
}

func TestMenuQuitEntry(t *testing.T) {
	m := NewMenuModel(nil, testRuntime())
	for range 3 {
		m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	m = updateMenu(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.IsQuitting() {
		t.Error("Quit entry should quit")
	}
}

func TestMenuResizeUpdatesConfig(t *testing.T) {
	m := NewMenuModel(nil, testRuntime())
	m = updateMenu(t, m, tea.WindowSizeMsg{Width: 120, Height: 50})

	cfg := m.Config()
	if cfg.ScreenW != 120 || cfg.ScreenH != 50 {
		t.Errorf("config size = %dx%d, want 120x50", cfg.ScreenW, cfg.ScreenH)
	}
}

func TestMenuViewShowsBest(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore("blockfall", "ann", 300, 3); err != nil {
		t.Fatalf("SaveScore: %v", err)
	}

	view := NewMenuModel(store, testRuntime()).View()
	for _, want := range []string{"B L O C K F A L L", "> Play", "Best: 300"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestCenterStyled(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"ab", 6, "  ab"},
		{"abcdef", 4, "abcdef"},
		{"█", 3, " █"},
	}
	for _, tt := range tests {
		if got := centerStyled(tt.text, tt.width); got != tt.want {
			t.Errorf("centerStyled(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}
