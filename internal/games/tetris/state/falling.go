package state

import "github.com/vovakirdan/tui-tetris/internal/games/tetris/core"

// FallingState is active play: a piece falls under gravity and responds to input.
type FallingState struct {
	sim           core.Sim
	props         Props
	gravityAcc    float64
	lockCountdown float64
	canHold       bool
	log           []Transition
}

func newFalling(sim core.Sim, props Props, log []Transition) *FallingState {
	return &FallingState{
		sim:           sim,
		props:         props,
		lockCountdown: props.LockDelay,
		canHold:       true,
		log:           log,
	}
}

func (*FallingState) sealed() {}

// Sim implements State.
func (s *FallingState) Sim() core.Sim { return s.sim }

// Props implements State.
func (s *FallingState) Props() Props { return s.props }

// Transitions implements State.
func (s *FallingState) Transitions() []Transition { return s.log }

// GravityAccumulator returns the fractional rows of pending gravity.
func (s *FallingState) GravityAccumulator() float64 { return s.gravityAcc }

// LockCountdown returns the seconds left before a resting piece locks.
func (s *FallingState) LockCountdown() float64 { return s.lockCountdown }

// CanHold reports whether hold is available for the current piece.
func (s *FallingState) CanHold() bool { return s.canHold }

// ClearTransitions implements State.
func (s *FallingState) ClearTransitions() State {
	if len(s.log) == 0 {
		return s
	}
	next := *s
	next.log = nil
	return &next
}

// HandleAction implements State.
func (s *FallingState) HandleAction(a Action) State {
	switch a {
	case ActionMoveLeft:
		return s.move(core.DirLeft, KindMoveLeft)
	case ActionMoveRight:
		return s.move(core.DirRight, KindMoveRight)
	case ActionSoftDrop:
		return s.move(core.DirDown, KindSoftDrop)
	case ActionRotateCw:
		return s.rotate(core.Clockwise, KindRotateCw)
	case ActionRotateCcw:
		return s.rotate(core.CounterClockwise, KindRotateCcw)
	case ActionHardDrop:
		dropped := *s
		dropped.sim = s.sim.HardDrop()
		return dropped.lock(KindHardDropLock)
	case ActionHold:
		return s.hold()
	default:
		return s
	}
}

// Tick implements State. A resting piece counts down its lock delay;
// otherwise gravity accumulates and drops the piece one row per whole cell.
func (s *FallingState) Tick(dt float64) State {
	if dt < 0 {
		return s
	}

	if s.sim.IsFallingOnGround() {
		next := *s
		next.lockCountdown -= dt
		if next.lockCountdown <= 0 {
			return next.lock(KindTimeLock)
		}
		return &next
	}

	next := *s
	next.gravityAcc += dt * s.props.GravityRate
	for next.gravityAcc >= 1 && !next.sim.IsFallingOnGround() {
		moved := next.sim.Move(core.DirDown)
		if moved.Falling() == next.sim.Falling() {
			break
		}
		next.sim = moved
		next.gravityAcc--
	}
	if next.sim.Falling() != s.sim.Falling() {
		next.log = appendLog(s.log, newTransition(s, &next, KindGravityFall))
	}
	return &next
}

func (s *FallingState) move(delta core.Coord, kind Kind) State {
	sim := s.sim.Move(delta)
	if sim.Falling() == s.sim.Falling() {
		return s
	}
	return s.commit(sim, kind)
}

func (s *FallingState) rotate(dir core.RotationDir, kind Kind) State {
	sim := s.sim.Rotate(dir)
	if sim.Falling() == s.sim.Falling() {
		return s
	}
	return s.commit(sim, kind)
}

func (s *FallingState) commit(sim core.Sim, kind Kind) State {
	next := *s
	next.sim = sim
	next.log = appendLog(s.log, newTransition(s, &next, kind))
	return &next
}

func (s *FallingState) hold() State {
	if !s.canHold {
		return s
	}
	next := *s
	next.sim = s.sim.SwapHold()
	next.gravityAcc = 0
	next.lockCountdown = s.props.LockDelay
	next.canHold = false
	next.log = appendLog(s.log, newTransition(s, &next, KindHold))
	if !next.sim.IsFallingValid() {
		return next.gameOver()
	}
	return &next
}

// lock runs the lock sequence: lock and spawn, then game over, clear delay
// or the next falling piece.
func (s *FallingState) lock(kind Kind) State {
	sim, res := s.sim.LockAndSpawnNext()
	post := newFalling(sim, s.props, nil)

	rec := newTransition(s, post, kind)
	rec.Lock = &LockDetail{
		PrevBoard:   s.sim.Board(),
		NewBoard:    res.Board,
		LockedPiece: s.sim.Falling(),
		ClearedRows: res.ClearedRows,
	}
	post.log = appendLog(s.log, rec)

	if !sim.IsFallingValid() {
		return post.gameOver()
	}
	if len(res.ClearedRows) > 0 && s.props.ClearDelay > 0 {
		return newDelay(s, post, res.ClearedRows)
	}
	return post
}

func (s *FallingState) gameOver() State {
	over := &GameOverState{sim: s.sim, props: s.props}
	over.log = appendLog(s.log, newTransition(s, over, KindGameOver))
	return over
}
