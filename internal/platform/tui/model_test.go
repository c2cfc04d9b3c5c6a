package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// scriptedGame ends after a fixed number of steps and records its input.
type scriptedGame struct {
	steps    int
	endAfter int
	seen     []core.Action
	restarts int
}

func (g *scriptedGame) ID() string    { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.steps = 0
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.over() {
		g.restarts++
		g.Reset(core.RuntimeConfig{})
		return core.StepResult{State: g.State()}
	}
	g.seen = append(g.seen, in.Ordered()...)
	g.steps++
	return core.StepResult{State: g.State()}
}

func (g *scriptedGame) Render(dst *core.Screen) {
	dst.DrawText(0, 0, "scripted")
}

func (g *scriptedGame) over() bool { return g.steps >= g.endAfter }

func (g *scriptedGame) State() core.GameState {
	return core.GameState{
		Score:    g.steps,
		GameOver: g.over(),
		Stats: core.GameStats{
			Lines:   g.steps,
			Pieces:  g.steps * 2,
			Elapsed: time.Duration(g.steps) * time.Second,
		},
	}
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "results.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func tick(t *testing.T, m Model) Model {
	t.Helper()
	next, _ := m.Update(TickMsg(time.Now()))
	return next.(Model)
}

func TestModelSavesResultOnce(t *testing.T) {
	store := openStore(t)
	game := &scriptedGame{endAfter: 3}
	m := NewModel(game, store, core.DefaultConfig())

	for range 10 {
		m = tick(t, m)
	}
	if !m.GameState().GameOver {
		t.Fatal("expected game over")
	}

	results, err := store.TopResults("scripted", 10)
	if err != nil {
		t.Fatalf("TopResults() failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("saved %d results, expected 1", len(results))
	}
	if r := results[0]; r.Lines != 3 || r.Pieces != 6 || r.Duration != 3*time.Second {
		t.Errorf("saved %+v", r)
	}

	// A restarted game is saved again when it ends.
	next, _ := m.Update(runeKey('r'))
	m = next.(Model)
	for range 10 {
		m = tick(t, m)
	}
	if game.restarts != 1 {
		t.Errorf("restarts = %d, expected 1", game.restarts)
	}
	results, _ = store.TopResults("scripted", 10)
	if len(results) != 2 {
		t.Errorf("saved %d results, expected 2", len(results))
	}
}

func TestModelForwardsKeys(t *testing.T) {
	game := &scriptedGame{endAfter: 100}
	m := NewModel(game, nil, core.DefaultConfig())

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	next, _ = next.Update(runeKey('z'))
	m = tick(t, next.(Model))

	want := []core.Action{core.ActionMoveLeft, core.ActionRotateCCW}
	if len(game.seen) != len(want) {
		t.Fatalf("seen = %v, expected %v", game.seen, want)
	}
	for i := range want {
		if game.seen[i] != want[i] {
			t.Errorf("seen[%d] = %v, expected %v", i, game.seen[i], want[i])
		}
	}

	// The frame is cleared after each tick.
	m = tick(t, m)
	if len(game.seen) != len(want) {
		t.Errorf("input leaked into the next tick: %v", game.seen)
	}

	_, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Error("quit key should return tea.Quit")
	}
}

func TestModelKeepsKeyOrderWithinTick(t *testing.T) {
	game := &scriptedGame{endAfter: 100}
	m := NewModel(game, nil, core.DefaultConfig())

	var next tea.Model = m
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyLeft},
		{Type: tea.KeyLeft},
		{Type: tea.KeyUp},
		{Type: tea.KeySpace, Runes: []rune{' '}},
	} {
		next, _ = next.Update(msg)
	}
	tick(t, next.(Model))

	want := []core.Action{core.ActionMoveLeft, core.ActionMoveLeft, core.ActionRotateCW, core.ActionHardDrop}
	if len(game.seen) != len(want) {
		t.Fatalf("seen = %v, expected %v", game.seen, want)
	}
	for i := range want {
		if game.seen[i] != want[i] {
			t.Errorf("seen[%d] = %v, expected %v", i, game.seen[i], want[i])
		}
	}
}

func TestModelDrivesTetrisInKeyOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	if err := os.WriteFile(path, []byte("rules: {generator: ordered}\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	tetris.SetConfigPath(path)
	t.Cleanup(func() { tetris.SetConfigPath("") })

	game := tetris.New(tetris.VariantStandard)
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}
	game.Reset(cfg)
	m := NewModel(game, nil, cfg)
	col := game.Engine().State().Sim().Falling().Pos.Col

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = tick(t, next.(Model))
	if got := game.Engine().State().Sim().Falling().Pos.Col; got != col-2 {
		t.Errorf("column = %d after two lefts, expected %d", got, col-2)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	tick(t, next.(Model))

	rows := map[int]bool{}
	for _, c := range game.Engine().State().Sim().Board().Cells() {
		rows[c.Pos.Row] = true
	}
	if len(rows) != 4 {
		t.Errorf("locked I covers %d rows, expected a vertical I", len(rows))
	}
	if f := game.Engine().State().Sim().Falling(); f.Orientation != 0 {
		t.Errorf("next piece %v was rotated", f)
	}
}

func TestModelView(t *testing.T) {
	game := &scriptedGame{endAfter: 100}
	m := NewModel(game, nil, core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60})

	view := m.View()
	if !strings.Contains(view, "scripted") {
		t.Errorf("view missing game output:\n%s", view)
	}
	if !strings.Contains(view, "hard drop") {
		t.Errorf("view missing help line:\n%s", view)
	}
}
