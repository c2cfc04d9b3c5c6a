package tetris

import "github.com/vovakirdan/tui-tetris/internal/games/tetris/state"

// Phase names the state machine variant the game is in.
type Phase string

const (
	PhaseFalling  Phase = "falling"
	PhaseDelay    Phase = "clear_delay"
	PhaseGameOver Phase = "game_over"
	PhasePaused   Phase = "paused"
)

// Snapshot captures the game for determinism tests and replays.
type Snapshot struct {
	Tick    uint64
	Phase   Phase
	Lines   int
	Pieces  int
	Falling string // prototype name, orientation and position
	Held    string
	Next    []string
	Cells   int // occupied cells on the board
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	st := g.eng.State()
	sim := st.Sim()

	phase := PhaseFalling
	switch st.(type) {
	case *state.DelayState:
		phase = PhaseDelay
	case *state.GameOverState:
		phase = PhaseGameOver
	}
	if g.paused && phase != PhaseGameOver {
		phase = PhasePaused
	}

	snap := Snapshot{
		Tick:    g.tick,
		Phase:   phase,
		Lines:   g.stats.Lines,
		Pieces:  g.stats.Pieces,
		Falling: sim.Falling().String(),
		Cells:   sim.Board().Len(),
	}
	if held := sim.Held(); held != nil {
		snap.Held = held.Name()
	}
	for _, p := range sim.Preview(g.cfg.Rules.Preview) {
		snap.Next = append(snap.Next, p.Name())
	}
	return snap
}
