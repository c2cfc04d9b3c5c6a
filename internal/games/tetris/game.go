// Package tetris adapts the rules engine to the arcade platform: it owns an
// Engine, steps it at a fixed tick and draws the matrix into a Screen.
package tetris

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-tetris/internal/config"
	platformcore "github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/state"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Variant fixes the rotation system and generator of a registered game.
// Empty fields fall back to the loaded configuration.
type Variant struct {
	ID        string
	Title     string
	Rotation  string
	Generator string
}

var (
	// VariantStandard is the modern ruleset: SRS kicks, 7-bag, hold.
	VariantStandard = Variant{ID: "tetris", Title: "Tetris"}

	// VariantNES uses the NES rotation (no kicks) and a uniform random generator.
	VariantNES = Variant{ID: "tetris_nes", Title: "Tetris (NES rules)", Rotation: "nes", Generator: "random"}

	variants = []Variant{VariantStandard, VariantNES}
)

// Package-level settings applied on the next Reset, set by the CLI.
var (
	configPath       string
	difficultyPreset string
	logger           = log.Default().WithPrefix("tetris")
)

// SetConfigPath sets the YAML config file to load instead of the search path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset (easy, normal, hard).
func SetDifficultyPreset(preset string) {
	difficultyPreset = preset
}

// SetLogger replaces the logger used by games and their engines.
func SetLogger(l *log.Logger) {
	if l == nil {
		return
	}
	logger = l
	core.SetLogger(l.WithPrefix("tetris/core"))
}

func init() {
	for _, v := range variants {
		registry.Register(v.ID, func() registry.Game { return New(v) })
	}
}

// Game implements registry.Game.
type Game struct {
	variant Variant
	cfg     config.TetrisConfig
	rc      platformcore.RuntimeConfig

	eng   *engine.Engine
	stats *engine.Stats
	dt    float64

	tick     uint64
	elapsed  time.Duration
	paused   bool
	tooSmall bool
}

// New creates an un-reset game of the given variant.
func New(v Variant) *Game {
	return &Game{variant: v, cfg: config.DefaultTetrisConfig()}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return g.variant.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.variant.Title
}

// Config returns the configuration the current game was built from.
func (g *Game) Config() config.TetrisConfig {
	return g.cfg
}

// Engine exposes the running engine, e.g. to subscribe to transitions.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}

// Reset builds a new board, generator and engine from the configuration.
func (g *Game) Reset(rc platformcore.RuntimeConfig) {
	if rc.TickRate <= 0 {
		rc.TickRate = platformcore.DefaultConfig().TickRate
	}
	if rc.Seed == 0 {
		rc.Seed = time.Now().UnixNano()
	}
	g.rc = rc
	g.cfg = g.loadConfig()

	g.tick = 0
	g.elapsed = 0
	g.paused = false
	g.tooSmall = false
	g.dt = 1.0 / float64(rc.TickRate)

	g.eng, g.stats = newEngine(g.cfg, uint64(rc.Seed))
	logger.Debug("game reset",
		"game", g.variant.ID,
		"seed", rc.Seed,
		"rotation", g.cfg.Rules.Rotation,
		"generator", g.cfg.Rules.Generator)
}

// loadConfig resolves the configuration for this variant. Any load or
// validation failure falls back to the built-in defaults.
func (g *Game) loadConfig() config.TetrisConfig {
	cfg, err := config.LoadTetris(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultTetrisConfig()
	}
	if difficultyPreset != "" {
		preset := config.DifficultyPreset(difficultyPreset)
		if config.IsKnownPreset(preset) {
			config.ApplyTetrisPreset(&cfg, preset)
		} else {
			logger.Warn("unknown difficulty preset", "preset", difficultyPreset)
		}
	}
	if g.variant.Rotation != "" {
		cfg.Rules.Rotation = g.variant.Rotation
	}
	if g.variant.Generator != "" {
		cfg.Rules.Generator = g.variant.Generator
	}
	if err := cfg.Validate(); err != nil {
		logger.Warn("invalid config, using defaults", "err", err)
		cfg = config.DefaultTetrisConfig()
	}
	return cfg
}

// newEngine builds the initial state from a validated configuration and
// attaches a stats subscriber.
func newEngine(cfg config.TetrisConfig, seed uint64) (*engine.Engine, *engine.Stats) {
	protos, ok := core.PrototypesFor(cfg.Rules.Rotation)
	if !ok {
		protos = core.AllSRS()
	}
	gen, err := core.NewPieceGenerator(cfg.Rules.Generator, protos, core.NewRandom(seed))
	if err != nil {
		// Validate accepted the name and the pool is never empty.
		panic(err)
	}

	board := core.NewBoard(cfg.Board.Rows, cfg.Board.Cols, core.RC(cfg.Board.SpawnRow, cfg.Board.SpawnCol))
	timing := cfg.EffectiveTiming()
	props := state.Props{
		GravityRate: timing.GravityRate,
		LockDelay:   timing.LockDelay,
		ClearDelay:  timing.ClearDelay,
	}

	eng := engine.New(state.NewGame(board, gen, props), engine.WithLogger(logger.WithPrefix("tetris/engine")))
	stats := engine.NewStats()
	eng.Subscribe(stats.Observe)
	return eng, stats
}

// actionMap maps platform actions to engine actions. Pause, restart and
// quit are handled by the adapter or the platform.
var actionMap = map[platformcore.Action]state.Action{
	platformcore.ActionMoveLeft:  state.ActionMoveLeft,
	platformcore.ActionMoveRight: state.ActionMoveRight,
	platformcore.ActionSoftDrop:  state.ActionSoftDrop,
	platformcore.ActionHardDrop:  state.ActionHardDrop,
	platformcore.ActionRotateCW:  state.ActionRotateCw,
	platformcore.ActionRotateCCW: state.ActionRotateCcw,
	platformcore.ActionHold:      state.ActionHold,
}

// Step applies the frame's actions in arrival order, then advances time by
// one tick. A pause takes effect for the actions after it.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if g.eng.IsGameOver() {
		if in.Has(platformcore.ActionRestart) {
			g.Reset(platformcore.RuntimeConfig{
				ScreenW:  g.rc.ScreenW,
				ScreenH:  g.rc.ScreenH,
				TickRate: g.rc.TickRate,
				Seed:     nextSeed(g.rc.Seed),
			})
		}
		return platformcore.StepResult{State: g.State()}
	}

	for _, a := range in.Ordered() {
		switch {
		case a == platformcore.ActionPause:
			if !g.eng.IsGameOver() {
				g.paused = !g.paused
			}
		case g.paused || g.tooSmall:
		default:
			if sa, ok := actionMap[a]; ok {
				g.eng.HandleAction(sa)
			}
		}
	}

	if g.paused || g.tooSmall || g.eng.IsGameOver() {
		return platformcore.StepResult{State: g.State()}
	}
	g.eng.Tick(g.dt)
	g.elapsed += g.rc.TickDuration()

	return platformcore.StepResult{State: g.State()}
}

// nextSeed derives the seed of a restarted game, so a seeded session
// replays identically across restarts.
func nextSeed(seed int64) int64 {
	return int64(core.NewRandom(uint64(seed)).Value() >> 1)
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.eng == nil {
		return platformcore.GameState{}
	}
	return platformcore.GameState{
		Score:    g.stats.Lines,
		Level:    g.stats.Level(),
		GameOver: g.eng.IsGameOver(),
		Paused:   g.paused,
		Stats: platformcore.GameStats{
			Lines:     g.stats.Lines,
			Pieces:    g.stats.Pieces,
			Spins:     g.stats.Spins,
			Holds:     g.stats.Holds,
			Tetrises:  g.stats.Tetrises,
			AllClears: g.stats.AllClears,
			Elapsed:   g.elapsed,
		},
	}
}

// VariantByID returns the built-in variant registered under id.
func VariantByID(id string) (Variant, bool) {
	for _, v := range variants {
		if v.ID == id {
			return v, true
		}
	}
	return Variant{}, false
}
