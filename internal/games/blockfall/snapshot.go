package blockfall

// GameStateType represents the current game state.
type GameStateType string

const (
	StatePlaying     GameStateType = "playing"
	StatePaused      GameStateType = "paused"
	StateGameOver    GameStateType = "game_over"
	StatePausedSmall GameStateType = "paused_small_window"
)

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Tick      uint64
	Mode      Mode
	Score     int
	Lines     int
	Locks     int
	Filled    int    // locked cells on the board
	Board     string // '.' and '#' rows
	PieceX    int
	PieceY    int
	ShadowRow int
	Gravity   int // drop credit carried to the next tick
	State     GameStateType
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.tooSmall:
		state = StatePausedSmall
	case g.eng.GameOver():
		state = StateGameOver
	case g.paused:
		state = StatePaused
	}

	st := g.eng.State()
	return Snapshot{
		Tick:      g.tick,
		Mode:      g.mode,
		Score:     st.Score,
		Lines:     st.Lines,
		Locks:     g.locks,
		Filled:    st.Grid.Filled(),
		Board:     st.Grid.String(),
		PieceX:    st.Piece.X,
		PieceY:    st.Piece.Y,
		ShadowRow: g.eng.ShadowRow(),
		Gravity:   g.gravity,
		State:     state,
	}
}
