package state

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

func newTestGame(t *testing.T, board core.Board, props Props, pool ...*core.PiecePrototype) State {
	t.Helper()
	gen, err := core.NewOrderedGenerator(pool)
	if err != nil {
		t.Fatalf("NewOrderedGenerator failed: %v", err)
	}
	return NewGame(board, gen, props)
}

func standardBoard(cells ...core.Cell) core.Board {
	return core.NewBoard(20, 10, core.RC(18, 4), cells...)
}

func row(r int, cols ...int) []core.Cell {
	out := make([]core.Cell, len(cols))
	for i, c := range cols {
		out[i] = core.Cell{Pos: core.RC(r, c), Block: core.Block{Color: core.ColorRed}}
	}
	return out
}

func kinds(s State) []Kind {
	var out []Kind
	for _, tr := range s.Transitions() {
		out = append(out, tr.Kind)
	}
	return out
}

func equalKinds(a, b []Kind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func mustFalling(t *testing.T, s State) *FallingState {
	t.Helper()
	f, ok := s.(*FallingState)
	if !ok {
		t.Fatalf("state = %T, expected *FallingState", s)
	}
	return f
}

func TestGravityAccumulation(t *testing.T) {
	props := Props{GravityRate: 1.0, LockDelay: 3.0}
	s := newTestGame(t, standardBoard(), props, core.SRST)

	s = s.Tick(0.6)
	f := mustFalling(t, s)
	if f.Sim().Falling().Pos.Row != 18 {
		t.Errorf("row after 0.6s = %d, expected 18", f.Sim().Falling().Pos.Row)
	}
	if len(s.Transitions()) != 0 {
		t.Errorf("transitions = %v, expected none", kinds(s))
	}

	s = s.Tick(0.6)
	f = mustFalling(t, s)
	if f.Sim().Falling().Pos.Row != 17 {
		t.Errorf("row after 1.2s = %d, expected 17", f.Sim().Falling().Pos.Row)
	}
	if math.Abs(f.GravityAccumulator()-0.2) > 1e-9 {
		t.Errorf("GravityAccumulator() = %v, expected 0.2", f.GravityAccumulator())
	}
	if !equalKinds(kinds(s), []Kind{KindGravityFall}) {
		t.Errorf("transitions = %v, expected [GRAVITY_FALL]", kinds(s))
	}
}

func TestGravityFastRate(t *testing.T) {
	props := Props{GravityRate: 2.0, LockDelay: 3.0}
	s := newTestGame(t, standardBoard(), props, core.SRST).Tick(0.6)
	f := mustFalling(t, s)
	if f.Sim().Falling().Pos.Row != 17 {
		t.Errorf("row = %d, expected 17", f.Sim().Falling().Pos.Row)
	}
	if math.Abs(f.GravityAccumulator()-0.2) > 1e-9 {
		t.Errorf("GravityAccumulator() = %v, expected 0.2", f.GravityAccumulator())
	}
}

func TestGravityStopsAtGround(t *testing.T) {
	props := Props{GravityRate: 1.0, LockDelay: 0.5}
	s := newTestGame(t, standardBoard(), props, core.SRST, core.SRSI)

	s = s.Tick(100)
	f := mustFalling(t, s)
	if f.Sim().Falling().Pos.Row != 0 {
		t.Fatalf("row = %d, expected 0", f.Sim().Falling().Pos.Row)
	}
	if !equalKinds(kinds(s), []Kind{KindGravityFall}) {
		t.Errorf("transitions = %v, expected a single GRAVITY_FALL", kinds(s))
	}

	// Resting pieces leave the accumulator alone; only the lock delay runs.
	acc := f.GravityAccumulator()
	s = s.ClearTransitions().Tick(0.3)
	f = mustFalling(t, s)
	if f.GravityAccumulator() != acc {
		t.Errorf("GravityAccumulator() on ground = %v, expected unchanged %v", f.GravityAccumulator(), acc)
	}
	if math.Abs(f.LockCountdown()-0.2) > 1e-9 {
		t.Errorf("LockCountdown() = %v, expected 0.2", f.LockCountdown())
	}
	if len(s.Transitions()) != 0 {
		t.Errorf("transitions = %v, expected none", kinds(s))
	}

	s = s.Tick(0.3)
	f = mustFalling(t, s)
	if !equalKinds(kinds(s), []Kind{KindTimeLock}) {
		t.Fatalf("transitions = %v, expected [TIME_LOCK]", kinds(s))
	}
	if f.Sim().Falling().Proto != core.SRSI {
		t.Errorf("spawned %v, expected I", f.Sim().Falling())
	}
	if f.LockCountdown() != 0.5 {
		t.Errorf("LockCountdown() = %v, expected reset to 0.5", f.LockCountdown())
	}
}

func TestHardDropLocks(t *testing.T) {
	props := Props{GravityRate: 1.0, LockDelay: 3.0}
	s := newTestGame(t, standardBoard(), props, core.SRST, core.SRSI)

	s = s.HandleAction(ActionHardDrop)
	f := mustFalling(t, s)

	if f.Sim().Falling() != core.NewPiece(core.SRSI, core.RC(18, 4)) {
		t.Errorf("falling = %v, expected I at spawn", f.Sim().Falling())
	}
	for _, pos := range []core.Coord{core.RC(1, 4), core.RC(0, 3), core.RC(0, 4), core.RC(0, 5)} {
		if f.Sim().Board().IsCellEmpty(pos) {
			t.Errorf("expected locked block at %v", pos)
		}
	}

	trs := s.Transitions()
	if len(trs) != 1 || trs[0].Kind != KindHardDropLock {
		t.Fatalf("transitions = %v, expected [HARD_DROP_LOCK]", kinds(s))
	}
	lock := trs[0].Lock
	if lock == nil {
		t.Fatal("lock detail missing")
	}
	if lock.LockedPiece.Pos != core.RC(0, 4) {
		t.Errorf("LockedPiece.Pos = %v, expected (0,4)", lock.LockedPiece.Pos)
	}
	if !lock.PrevBoard.IsEmpty() || lock.NewBoard.Len() != 4 {
		t.Errorf("boards = %d -> %d cells, expected 0 -> 4", lock.PrevBoard.Len(), lock.NewBoard.Len())
	}
	if len(lock.ClearedRows) != 0 {
		t.Errorf("ClearedRows = %v, expected none", lock.ClearedRows)
	}
}

func TestMovesRecordOnlyWhenPieceChanges(t *testing.T) {
	s := newTestGame(t, standardBoard(), DefaultProps(), core.SRST)

	s = s.HandleAction(ActionMoveLeft)
	s = s.HandleAction(ActionRotateCw)
	s = s.HandleAction(ActionSoftDrop)
	if !equalKinds(kinds(s), []Kind{KindMoveLeft, KindRotateCw, KindSoftDrop}) {
		t.Errorf("transitions = %v", kinds(s))
	}
	for i, tr := range s.Transitions() {
		if len(tr.Before.Transitions()) != 0 || len(tr.After.Transitions()) != 0 {
			t.Errorf("record %d carries nested logs", i)
		}
	}
	if s.Transitions()[0].After.Sim().Falling().Pos != core.RC(18, 3) {
		t.Errorf("MOVE_LEFT after = %v, expected (18,3)", s.Transitions()[0].After.Sim().Falling().Pos)
	}

	s = s.ClearTransitions()
	for range 10 {
		s = s.HandleAction(ActionMoveRight)
	}
	blocked := s.ClearTransitions()
	if blocked.HandleAction(ActionMoveRight) != blocked {
		t.Error("blocked move should return the same state")
	}
}

func TestHoldScenario(t *testing.T) {
	s := newTestGame(t, standardBoard(), DefaultProps(), core.SRST, core.SRSI, core.SRSO)

	s = s.HandleAction(ActionHold)
	f := mustFalling(t, s)
	if f.Sim().Held() != core.SRST || f.Sim().Falling().Proto != core.SRSI {
		t.Fatalf("after hold: held %v falling %v, expected T and I", f.Sim().Held(), f.Sim().Falling())
	}
	if f.CanHold() {
		t.Error("CanHold() should be false after holding")
	}
	if !equalKinds(kinds(s), []Kind{KindHold}) {
		t.Errorf("transitions = %v, expected [HOLD]", kinds(s))
	}

	s = s.ClearTransitions()
	if s.HandleAction(ActionHold) != s {
		t.Error("second hold should be a no-op")
	}

	s = s.HandleAction(ActionHardDrop).ClearTransitions()
	f = mustFalling(t, s)
	if !f.CanHold() {
		t.Error("CanHold() should reset after a lock")
	}
	if f.Sim().Falling().Proto != core.SRSO {
		t.Fatalf("falling = %v, expected O", f.Sim().Falling())
	}

	s = s.HandleAction(ActionHold)
	f = mustFalling(t, s)
	if f.Sim().Falling().Proto != core.SRST || f.Sim().Held() != core.SRSO {
		t.Errorf("third hold: held %v falling %v, expected O and T", f.Sim().Held(), f.Sim().Falling())
	}
}

func TestHoldResetsCounters(t *testing.T) {
	props := Props{GravityRate: 1.0, LockDelay: 2.0}
	s := newTestGame(t, standardBoard(), props, core.SRST, core.SRSI)
	s = s.Tick(0.5).HandleAction(ActionHold)
	f := mustFalling(t, s)
	if f.GravityAccumulator() != 0 || f.LockCountdown() != 2.0 {
		t.Errorf("counters = %v/%v, expected 0/2", f.GravityAccumulator(), f.LockCountdown())
	}
}

func TestGameOver(t *testing.T) {
	board := core.NewBoard(3, 4, core.RC(1, 1))
	s := newTestGame(t, board, DefaultProps(), core.SRSO)

	s = s.HandleAction(ActionHardDrop)
	if !IsGameOver(s) {
		t.Fatalf("state = %T, expected game over", s)
	}
	if !equalKinds(kinds(s), []Kind{KindHardDropLock, KindGameOver}) {
		t.Errorf("transitions = %v, expected [HARD_DROP_LOCK GAME_OVER]", kinds(s))
	}

	over := s.ClearTransitions()
	if over.Tick(1) != over {
		t.Error("Tick on game over should return the same state")
	}
	for _, a := range []Action{ActionMoveLeft, ActionHardDrop, ActionHold, ActionRotateCw} {
		if over.HandleAction(a) != over {
			t.Errorf("HandleAction(%v) on game over should return the same state", a)
		}
	}
}

func TestNewGameBlockedSpawn(t *testing.T) {
	s := newTestGame(t, standardBoard(row(18, 4)...), DefaultProps(), core.SRST)
	if !IsGameOver(s) {
		t.Errorf("state = %T, expected game over", s)
	}
}

func TestClearDelayExactlyOnce(t *testing.T) {
	props := Props{GravityRate: 1.0, LockDelay: 3.0, ClearDelay: 0.5}
	s := newTestGame(t, standardBoard(row(0, 0, 1, 2, 7, 8, 9)...), props, core.SRSI, core.SRST)

	s = s.HandleAction(ActionHardDrop)
	d, ok := s.(*DelayState)
	if !ok {
		t.Fatalf("state = %T, expected *DelayState", s)
	}
	if !equalKinds(kinds(s), []Kind{KindHardDropLock}) {
		t.Fatalf("transitions = %v, expected [HARD_DROP_LOCK]", kinds(s))
	}
	if got := d.ClearedRows(); len(got) != 1 || got[0] != 0 {
		t.Errorf("ClearedRows() = %v, expected [0]", got)
	}
	if d.Sim().Board().Len() != 6 {
		t.Errorf("delay board has %d cells, expected the pre-lock 6", d.Sim().Board().Len())
	}
	if s.HandleAction(ActionMoveLeft) != s {
		t.Error("input during delay should be ignored")
	}

	s = s.ClearTransitions().Tick(0.3)
	if _, ok := s.(*DelayState); !ok {
		t.Fatalf("state = %T, expected *DelayState", s)
	}
	if len(s.Transitions()) != 0 {
		t.Errorf("transitions = %v, expected none", kinds(s))
	}

	s = s.Tick(0.3)
	f := mustFalling(t, s)
	if len(s.Transitions()) != 0 {
		t.Errorf("lock reported again after delay: %v", kinds(s))
	}
	if !f.Sim().Board().IsEmpty() {
		t.Errorf("board has %d cells, expected the cleared row gone", f.Sim().Board().Len())
	}
	if f.Sim().Falling().Proto != core.SRST {
		t.Errorf("falling = %v, expected T", f.Sim().Falling())
	}
}

func TestClearDelayCarriesUndrainedRecords(t *testing.T) {
	props := Props{GravityRate: 1.0, LockDelay: 3.0, ClearDelay: 0.5}
	s := newTestGame(t, standardBoard(row(0, 0, 1, 2, 7, 8, 9)...), props, core.SRSI, core.SRST)

	s = s.HandleAction(ActionHardDrop).Tick(1)
	mustFalling(t, s)
	if !equalKinds(kinds(s), []Kind{KindHardDropLock}) {
		t.Errorf("transitions = %v, expected the lock exactly once", kinds(s))
	}
}

func TestZeroClearDelaySkipsDelay(t *testing.T) {
	props := Props{GravityRate: 1.0, LockDelay: 3.0}
	s := newTestGame(t, standardBoard(row(0, 0, 1, 2, 7, 8, 9)...), props, core.SRSI, core.SRST)
	s = s.HandleAction(ActionHardDrop)
	f := mustFalling(t, s)
	if !f.Sim().Board().IsEmpty() {
		t.Error("expected the row to clear immediately")
	}
}

func TestNegativeTickIsNoop(t *testing.T) {
	s := newTestGame(t, standardBoard(), DefaultProps(), core.SRST)
	if s.Tick(-1) != s {
		t.Error("negative dt should return the same state")
	}
}

func TestKindClassification(t *testing.T) {
	tests := []struct {
		kind                        Kind
		lock, rotation, pieceChange bool
	}{
		{KindMoveLeft, false, false, true},
		{KindRotateCw, false, true, true},
		{KindRotateCcw, false, true, true},
		{KindGravityFall, false, false, true},
		{KindHold, false, false, true},
		{KindTimeLock, true, false, false},
		{KindHardDropLock, true, false, false},
		{KindGameOver, false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if tt.kind.IsLock() != tt.lock {
				t.Errorf("IsLock() = %v, expected %v", tt.kind.IsLock(), tt.lock)
			}
			if tt.kind.IsRotation() != tt.rotation {
				t.Errorf("IsRotation() = %v, expected %v", tt.kind.IsRotation(), tt.rotation)
			}
			if tt.kind.IsPieceChange() != tt.pieceChange {
				t.Errorf("IsPieceChange() = %v, expected %v", tt.kind.IsPieceChange(), tt.pieceChange)
			}
		})
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in       string
		expected Action
		ok       bool
	}{
		{"left", ActionMoveLeft, true},
		{"HARD_DROP", ActionHardDrop, true},
		{" cw ", ActionRotateCw, true},
		{"h", ActionHold, true},
		{"jump", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseAction(tt.in)
		if got != tt.expected || ok != tt.ok {
			t.Errorf("ParseAction(%q) = %v, %v, expected %v, %v", tt.in, got, ok, tt.expected, tt.ok)
		}
	}
}
