package state

import "github.com/vovakirdan/tui-tetris/internal/games/tetris/core"

// State is one node of the game state machine. The set of implementations
// is closed: *FallingState, *DelayState and *GameOverState.
type State interface {
	// Sim returns the simulation to render for this state.
	Sim() core.Sim
	Props() Props
	// Transitions returns the records accumulated since the last clear.
	Transitions() []Transition
	// ClearTransitions returns the same state with an empty log.
	ClearTransitions() State
	Tick(dt float64) State
	HandleAction(a Action) State

	sealed()
}

// NewGame spawns the first piece and returns the initial state. A first
// piece that does not fit ends the game immediately.
func NewGame(board core.Board, gen core.PieceGenerator, props Props) State {
	sim := core.NewSim(board, gen)
	if !sim.IsFallingValid() {
		return &GameOverState{sim: sim, props: props}
	}
	return newFalling(sim, props, nil)
}

// IsGameOver reports whether s is terminal.
func IsGameOver(s State) bool {
	_, ok := s.(*GameOverState)
	return ok
}

// GameOverState is terminal; every operation returns it unchanged.
type GameOverState struct {
	sim   core.Sim
	props Props
	log   []Transition
}

func (*GameOverState) sealed() {}

// Sim implements State.
func (s *GameOverState) Sim() core.Sim { return s.sim }

// Props implements State.
func (s *GameOverState) Props() Props { return s.props }

// Transitions implements State.
func (s *GameOverState) Transitions() []Transition { return s.log }

// ClearTransitions implements State.
func (s *GameOverState) ClearTransitions() State {
	if len(s.log) == 0 {
		return s
	}
	return &GameOverState{sim: s.sim, props: s.props}
}

// Tick implements State.
func (s *GameOverState) Tick(float64) State { return s }

// HandleAction implements State.
func (s *GameOverState) HandleAction(Action) State { return s }
