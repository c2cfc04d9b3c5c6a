package tetris

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	platformcore "github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// useConfig points the package at a YAML file layered over the defaults.
func useConfig(t *testing.T, yaml string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	SetConfigPath(path)
	t.Cleanup(func() {
		SetConfigPath("")
		SetDifficultyPreset("")
	})
}

func newGame(t *testing.T, v Variant, yaml string) *Game {
	t.Helper()
	useConfig(t, yaml)
	g := New(v)
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 12345})
	return g
}

func frameOf(actions ...platformcore.Action) platformcore.InputFrame {
	f := platformcore.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestVariantsRegistered(t *testing.T) {
	for _, id := range []string{"tetris", "tetris_nes"} {
		if !registry.Exists(id) {
			t.Errorf("game %q not registered", id)
		}
	}
}

func TestDeterminism(t *testing.T) {
	g1 := newGame(t, VariantStandard, "rules: {generator: bag}\n")
	g2 := newGame(t, VariantStandard, "rules: {generator: bag}\n")

	script := map[int]platformcore.Action{
		10:  platformcore.ActionMoveLeft,
		20:  platformcore.ActionRotateCW,
		30:  platformcore.ActionHardDrop,
		45:  platformcore.ActionHold,
		60:  platformcore.ActionMoveRight,
		61:  platformcore.ActionMoveRight,
		70:  platformcore.ActionHardDrop,
		120: platformcore.ActionRotateCCW,
		130: platformcore.ActionHardDrop,
	}
	for i := range 400 {
		f := platformcore.NewInputFrame()
		if a, ok := script[i]; ok {
			f.Set(a)
		}
		g1.Step(f)
		g2.Step(f)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Tick != s2.Tick || s1.Phase != s2.Phase || s1.Falling != s2.Falling ||
		s1.Held != s2.Held || s1.Cells != s2.Cells || s1.Pieces != s2.Pieces {
		t.Errorf("snapshots differ:\n%+v\n%+v", s1, s2)
	}
	if !slices.Equal(s1.Next, s2.Next) {
		t.Errorf("previews differ: %v vs %v", s1.Next, s2.Next)
	}
	if s1.Pieces < 3 {
		t.Errorf("Pieces = %d, expected at least the 3 hard drops", s1.Pieces)
	}
}

func TestOrderedPreview(t *testing.T) {
	g := newGame(t, VariantStandard, "rules: {generator: ordered, preview: 3}\n")

	snap := g.Snapshot()
	if !strings.HasPrefix(snap.Falling, "I/0@") {
		t.Errorf("Falling = %q, expected the I piece first", snap.Falling)
	}
	if want := []string{"J", "L", "O"}; !slices.Equal(snap.Next, want) {
		t.Errorf("Next = %v, expected %v", snap.Next, want)
	}
}

func TestHardDropLocks(t *testing.T) {
	g := newGame(t, VariantStandard, "rules: {generator: ordered}\n")

	res := g.Step(frameOf(platformcore.ActionHardDrop))
	if res.State.Stats.Pieces != 1 {
		t.Errorf("Pieces = %d, expected 1", res.State.Stats.Pieces)
	}
	if g.Snapshot().Cells != 4 {
		t.Errorf("Cells = %d, expected 4", g.Snapshot().Cells)
	}
	if !strings.HasPrefix(g.Snapshot().Falling, "J/") {
		t.Errorf("Falling = %q, expected J after I", g.Snapshot().Falling)
	}
}

func TestActionsAppliedInArrivalOrder(t *testing.T) {
	g := newGame(t, VariantStandard, "rules: {generator: ordered}\n")
	col := g.Engine().State().Sim().Falling().Pos.Col

	// Repeated presses within one tick all count.
	g.Step(frameOf(platformcore.ActionMoveLeft, platformcore.ActionMoveLeft))
	if got := g.Engine().State().Sim().Falling().Pos.Col; got != col-2 {
		t.Errorf("column = %d, expected %d", got, col-2)
	}

	// Rotate then hard drop locks the rotated I: four rows, one column.
	g.Step(frameOf(platformcore.ActionRotateCW, platformcore.ActionHardDrop))
	rows := map[int]bool{}
	cols := map[int]bool{}
	for _, c := range g.Engine().State().Sim().Board().Cells() {
		rows[c.Pos.Row] = true
		cols[c.Pos.Col] = true
	}
	if len(rows) != 4 || len(cols) != 1 {
		t.Errorf("locked I spans %d rows and %d columns, expected 4 and 1", len(rows), len(cols))
	}
	if f := g.Snapshot().Falling; !strings.HasPrefix(f, "J/0@") {
		t.Errorf("Falling = %q, expected an unrotated J", f)
	}
}

func TestPauseMidFrame(t *testing.T) {
	g := newGame(t, VariantStandard, "rules: {generator: ordered}\n")
	col := g.Engine().State().Sim().Falling().Pos.Col

	g.Step(frameOf(platformcore.ActionMoveLeft, platformcore.ActionPause, platformcore.ActionMoveLeft))
	if got := g.Engine().State().Sim().Falling().Pos.Col; got != col-1 {
		t.Errorf("column = %d, expected only the move before the pause", got)
	}
	if !g.State().Paused {
		t.Error("expected paused")
	}
}

func TestPauseStopsTime(t *testing.T) {
	g := newGame(t, VariantStandard, "rules: {generator: ordered}\n")

	g.Step(frameOf(platformcore.ActionPause))
	before := g.Snapshot()
	if before.Phase != PhasePaused {
		t.Fatalf("Phase = %v, expected paused", before.Phase)
	}

	for range 300 {
		g.Step(frameOf(platformcore.ActionHardDrop))
	}
	after := g.Snapshot()
	if after.Falling != before.Falling || after.Pieces != 0 {
		t.Errorf("paused game changed: %+v", after)
	}
	if g.State().Stats.Elapsed != 0 {
		t.Errorf("Elapsed = %v, expected 0 while paused", g.State().Stats.Elapsed)
	}

	g.Step(frameOf(platformcore.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestGravityAdvancesWithTicks(t *testing.T) {
	g := newGame(t, VariantStandard, "rules: {generator: ordered}\ntiming: {gravity_rate: 1.0}\n")
	row := g.Engine().State().Sim().Falling().Pos.Row

	// One second at 60 ticks per second moves the piece one row.
	for range 61 {
		g.Step(platformcore.NewInputFrame())
	}
	if got := g.Engine().State().Sim().Falling().Pos.Row; got != row-1 {
		t.Errorf("row = %d, expected %d", got, row-1)
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := newGame(t, VariantStandard, "rules: {generator: ordered}\n")

	for i := 0; i < 2000 && !g.State().GameOver; i++ {
		g.Step(frameOf(platformcore.ActionHardDrop))
	}
	if !g.State().GameOver {
		t.Fatal("stacking hard drops should end the game")
	}
	if g.Snapshot().Phase != PhaseGameOver {
		t.Errorf("Phase = %v, expected game_over", g.Snapshot().Phase)
	}

	// Pause is ignored after game over.
	g.Step(frameOf(platformcore.ActionPause))
	if g.State().Paused {
		t.Error("pause should be ignored after game over")
	}

	res := g.Step(frameOf(platformcore.ActionRestart))
	if res.State.GameOver {
		t.Error("restart should start a new game")
	}
	if res.State.Stats.Pieces != 0 || g.Snapshot().Cells != 0 {
		t.Errorf("restarted game not empty: %+v", g.Snapshot())
	}
}

func TestNESVariant(t *testing.T) {
	g := newGame(t, VariantNES, "rules: {rotation: srs, generator: bag}\n")

	if r := g.Config().Rules; r.Rotation != "nes" || r.Generator != "random" {
		t.Errorf("Rules = %+v, expected nes/random", r)
	}
	proto := g.Engine().State().Sim().Falling().Proto
	if !slices.Contains(core.AllNES(), proto) {
		t.Errorf("falling prototype %v is not an NES prototype", proto)
	}
}

func TestInvalidConfigFallsBack(t *testing.T) {
	g := newGame(t, VariantStandard, "board: {rows: -1}\n")

	if g.Config().Board.Rows != 40 {
		t.Errorf("Rows = %d, expected default 40", g.Config().Board.Rows)
	}
	if g.State().GameOver {
		t.Error("fallback game should be playable")
	}
}

func TestDifficultyPreset(t *testing.T) {
	useConfig(t, "timing: {gravity_rate: 1.0}\n")
	SetDifficultyPreset("hard")

	g := New(VariantStandard)
	g.Reset(platformcore.DefaultConfig())
	if lvl := g.Config().Difficulty.InitialLevel; lvl != 0.7 {
		t.Errorf("InitialLevel = %v, expected 0.7", lvl)
	}
	if g.Engine().State().Props().GravityRate <= 1.0 {
		t.Errorf("GravityRate = %v, expected hard preset to speed up gravity",
			g.Engine().State().Props().GravityRate)
	}

	SetDifficultyPreset("insane")
	g.Reset(platformcore.DefaultConfig())
	if lvl := g.Config().Difficulty.InitialLevel; lvl != 0 {
		t.Errorf("InitialLevel = %v, expected unknown preset to be ignored", lvl)
	}
}

func TestRender(t *testing.T) {
	g := newGame(t, VariantStandard, "rules: {generator: ordered}\n")

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"HOLD", "NEXT", "Lines: 0", "██", "░░"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	g.Step(frameOf(platformcore.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused game should show the pause overlay")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newGame(t, VariantStandard, "rules: {generator: ordered}\n")

	screen := platformcore.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Errorf("expected too-small overlay:\n%s", screen.String())
	}

	tick := g.Snapshot().Tick
	g.Step(frameOf(platformcore.ActionHardDrop))
	if g.State().Stats.Pieces != 0 {
		t.Error("too small window should suspend play")
	}
	if g.Snapshot().Tick != tick+1 {
		t.Errorf("Tick = %d, expected %d", g.Snapshot().Tick, tick+1)
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		secs int
		want string
	}{
		{0, "00:00"},
		{59, "00:59"},
		{61, "01:01"},
		{3600, "60:00"},
	}
	for _, tc := range tests {
		if got := formatElapsed(time.Duration(tc.secs) * time.Second); got != tc.want {
			t.Errorf("formatElapsed(%ds) = %q, expected %q", tc.secs, got, tc.want)
		}
	}
}
