package state

import "github.com/vovakirdan/tui-tetris/internal/games/tetris/core"

// DelayState pauses play after a line clear. It shows the board as it was
// just before the lock and resumes with the post-lock state on expiry.
// Input is ignored while it lasts.
type DelayState struct {
	before    *FallingState
	after     *FallingState
	cleared   []int
	total     float64
	remaining float64
	log       []Transition
}

// newDelay takes ownership of after's pending records so that they are
// reported once, by the delay, and not again when after resumes.
func newDelay(before, after *FallingState, cleared []int) *DelayState {
	return &DelayState{
		before:    before.ClearTransitions().(*FallingState),
		after:     after.ClearTransitions().(*FallingState),
		cleared:   cleared,
		total:     before.props.ClearDelay,
		remaining: before.props.ClearDelay,
		log:       after.Transitions(),
	}
}

func (*DelayState) sealed() {}

// Sim implements State. It is the simulation before the lock.
func (s *DelayState) Sim() core.Sim { return s.before.sim }

// Props implements State.
func (s *DelayState) Props() Props { return s.before.props }

// Transitions implements State.
func (s *DelayState) Transitions() []Transition { return s.log }

// Before returns the falling state that locked.
func (s *DelayState) Before() State { return s.before }

// After returns the state play resumes with.
func (s *DelayState) After() State { return s.after }

// Sims returns the simulations before and after the lock.
func (s *DelayState) Sims() (before, after core.Sim) { return s.before.sim, s.after.sim }

// ClearedRows returns the rows being cleared, ascending.
func (s *DelayState) ClearedRows() []int { return s.cleared }

// TotalDelay returns the full delay in seconds.
func (s *DelayState) TotalDelay() float64 { return s.total }

// RemainingDelay returns the seconds left.
func (s *DelayState) RemainingDelay() float64 { return s.remaining }

// Progress returns the elapsed fraction of the delay in [0, 1].
func (s *DelayState) Progress() float64 {
	if s.total <= 0 {
		return 1
	}
	return min(max(1-s.remaining/s.total, 0), 1)
}

// ClearTransitions implements State.
func (s *DelayState) ClearTransitions() State {
	if len(s.log) == 0 {
		return s
	}
	next := *s
	next.log = nil
	return &next
}

// Tick implements State.
func (s *DelayState) Tick(dt float64) State {
	if dt < 0 {
		return s
	}
	remaining := s.remaining - dt
	if remaining <= 0 {
		resumed := *s.after
		resumed.log = appendLog(s.log, s.after.log...)
		return &resumed
	}
	next := *s
	next.remaining = remaining
	return &next
}

// HandleAction implements State.
func (s *DelayState) HandleAction(Action) State { return s }
