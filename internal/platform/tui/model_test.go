package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-blockfall/internal/core"
	"github.com/vovakirdan/tui-blockfall/internal/storage"
)

// stubGame records what the model feeds it and lets tests fire hooks.
type stubGame struct {
	resets  int
	inputs  []core.InputFrame
	state   core.GameState
	best    int
	w, h    int
	overFns []func(score, lines int)
	lockFns []func(lines int)
}

func (g *stubGame) ID() string { return "stub" }
func (g *stubGame) Title() string { return "Stub" }
func (g *stubGame) Reset(cfg core.RuntimeConfig) { g.resets++ }
func (g *stubGame) State() core.GameState { return g.state }
func (g *stubGame) SetBest(score int) { g.best = score }
func (g *stubGame) Resize(w, h int) { g.w, g.h = w, h }

func (g *stubGame) Step(in core.InputFrame) core.StepResult {
	g.inputs = append(g.inputs, in.Clone())
	return core.StepResult{State: g.state}
}

func (g *stubGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "stub board")
}

func (g *stubGame) OnGameOver(fn func(score, lines int)) {
	g.overFns = append(g.overFns, fn)
}

func (g *stubGame) OnLock(fn func(lines int)) {
	g.lockFns = append(g.lockFns, fn)
}

func (g *stubGame) fireGameOver(score, lines int) {
	for _, fn := range g.overFns {
		fn(score, lines)
	}
}

func (g *stubGame) fireLock(lines int) {
	for _, fn := range g.lockFns {
		fn(lines)
	}
}

type recordingCue struct {
	lines []int
}

func (c *recordingCue) PlayLock(lines int) {
	c.lines = append(c.lines, lines)
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// send feeds msgs through the model and returns the updated model and
// the last command.
func send(t *testing.T, m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		var ok bool
		m, ok = next.(Model)
		if !ok {
			t.Fatalf("Update returned %T, want Model", next)
		}
	}
	return m, cmd
}

func TestModelInitResetsGame(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, testRuntime())

	if cmd := m.Init(); cmd == nil {
		t.Error("Init should start the tick loop")
	}
	if g.resets != 1 {
		t.Errorf("resets = %d, want 1", g.resets)
	}
}

func TestModelCollectsKeysPerTick(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, testRuntime())

	m, _ = send(t, m,
		tea.KeyMsg{Type: tea.KeyLeft},
		tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}},
		TickMsg{},
		TickMsg{},
	)

	if len(g.inputs) != 2 {
		t.Fatalf("steps = %d, want 2", len(g.inputs))
	}
	first := g.inputs[0]
	if !first.Has(core.ActionLeft) || !first.Has(core.ActionHardDrop) {
		t.Errorf("first frame = %v, want left and hard drop", first.Actions)
	}
	if !g.inputs[1].Empty() {
		t.Errorf("second frame = %v, want empty", g.inputs[1].Actions)
	}
}

func TestModelQuit(t *testing.T) {
	m := NewModel(&stubGame{}, nil, testRuntime())

	m, cmd := send(t, m, runeKey('q'))
	if !m.IsQuitting() {
		t.Error("q should quit")
	}
	if cmd == nil {
		t.Error("quit should return a command")
	}
	if m.View() != "" {
		t.Error("quitting model should render nothing")
	}
}

func TestModelBackToMenu(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, testRuntime(), WithBackToMenu())

	m, _ = send(t, m, TickMsg{}, runeKey('b'))
	if m.BackToMenu() {
		t.Fatal("b should be ignored while playing")
	}

	g.state.Paused = true
	m, cmd := send(t, m, TickMsg{}, runeKey('b'))
	if !m.BackToMenu() {
		t.Fatal("b should leave a paused game")
	}
	if cmd == nil {
		t.Error("standalone model should quit its program on back")
	}

	// No further steps once the player left
	steps := len(g.inputs)
	send(t, m, TickMsg{})
	if len(g.inputs) != steps {
		t.Error("model kept stepping after back to menu")
	}
}

func TestModelBackDisabledByDefault(t *testing.T) {
	g := &stubGame{state: core.GameState{GameOver: true}}
	m := NewModel(g, nil, testRuntime())

	m, _ = send(t, m, TickMsg{}, runeKey('b'))
	if m.BackToMenu() {
		t.Error("back should need WithBackToMenu")
	}
}

func TestModelEmbeddedBackKeepsProgram(t *testing.T) {
	g := &stubGame{state: core.GameState{GameOver: true}}
	m := NewModel(g, nil, testRuntime(), WithBackToMenu(), withEmbedded())

	m, cmd := send(t, m, TickMsg{}, runeKey('b'))
	if !m.BackToMenu() {
		t.Fatal("b should leave a finished game")
	}
	if cmd != nil {
		t.Error("embedded model should leave quitting to its parent")
	}
}

func TestModelSavesScoreOnGameOver(t *testing.T) {
	store := openStore(t)
	g := &stubGame{}
	NewModel(g, store, testRuntime(), WithPlayer("ann"))

	g.fireGameOver(0, 0) // not recorded
	g.fireGameOver(420, 4)

	scores, err := store.TopScores("stub", 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d scores, want 1", len(scores))
	}
	if scores[0].Player != "ann" || scores[0].Score != 420 || scores[0].Lines != 4 {
		t.Errorf("saved %+v", scores[0])
	}
}

func TestModelLoadsBestScore(t *testing.T) {
	store := openStore(t)
	if _, err := store.SaveScore("stub", "bob", 900, 9); err != nil {
		t.Fatalf("SaveScore: %v", err)
	}

	g := &stubGame{}
	NewModel(g, store, testRuntime())

	if g.best != 900 {
		t.Errorf("best = %d, want 900", g.best)
	}
}

func TestModelWithoutStore(t *testing.T) {
	g := &stubGame{}
	NewModel(g, nil, testRuntime())

	g.fireGameOver(100, 1) // must not panic
	if g.best != 0 {
		t.Errorf("best = %d, want 0", g.best)
	}
}

func TestModelPlaysLockCue(t *testing.T) {
	g := &stubGame{}
	cue := &recordingCue{}
	NewModel(g, nil, testRuntime(), WithLockCue(cue))

	g.fireLock(0)
	g.fireLock(2)

	if len(cue.lines) != 2 || cue.lines[0] != 0 || cue.lines[1] != 2 {
		t.Errorf("cue lines = %v, want [0 2]", cue.lines)
	}
}

func TestModelResizeKeepsGame(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, testRuntime())
	m.Init()

	send(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	if g.w != 100 || g.h != 40 {
		t.Errorf("Resize got %dx%d, want 100x40", g.w, g.h)
	}
	if g.resets != 1 {
		t.Errorf("resets = %d, want 1 (resize must not restart)", g.resets)
	}
}

func TestModelScreenshot(t *testing.T) {
	dir := t.TempDir()
	m := NewModel(&stubGame{}, nil, testRuntime(), WithScreenshotDir(dir))

	send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("screenshots = %d, want 1", len(entries))
	}
	if !strings.HasPrefix(entries[0].Name(), "stub_") {
		t.Errorf("screenshot name = %q", entries[0].Name())
	}
	data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.HasPrefix(string(data), "stub board") {
		t.Errorf("screenshot starts with %q", strings.SplitN(string(data), "\n", 2)[0])
	}
}

func TestModelView(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, core.RuntimeConfig{ScreenW: 20, ScreenH: 2, TickRate: 60})

	if !strings.Contains(m.View(), "stub board") {
		t.Errorf("View() = %q", m.View())
	}
}

func TestModelIgnoresOtherGenerations(t *testing.T) {
	g := &stubGame{}
	m := NewModel(g, nil, testRuntime(), withGeneration(2))

	m, cmd := send(t, m, TickMsg{Gen: 1})
	if cmd != nil || len(g.inputs) != 0 {
		t.Error("tick of another generation should be ignored")
	}

	_, cmd = send(t, m, TickMsg{Gen: 2})
	if cmd == nil || len(g.inputs) != 1 {
		t.Error("own tick should step the game and schedule the next one")
	}
}
