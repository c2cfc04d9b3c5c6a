package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play [variant]",
	Short: "Play a variant",
	Long: `Start playing the given variant (default: tetris).

Controls:
  Left/Right, h/l   - Move
  Down, j           - Soft drop
  Space             - Hard drop
  Up, x / z         - Rotate clockwise / counter-clockwise
  c                 - Hold
  p/Esc             - Pause
  r                 - Restart (after game over)
  q/Ctrl+C          - Quit
  Ctrl+S            - Save a text screenshot

Difficulty presets scale gravity and lock delay:
  easy, normal, hard

Examples:
  tetris play
  tetris play tetris_nes
  tetris play --difficulty hard
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, menuCmd} {
		cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
		cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	}
}

// runtimeConfig builds the runtime config from the global flags and the
// terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// applyGameFlags validates --difficulty and passes --config and
// --difficulty to the game package.
func applyGameFlags() error {
	if flagDifficulty != "" && !config.IsKnownPreset(config.DifficultyPreset(flagDifficulty)) {
		return fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
	}
	if flagConfig != "" {
		if _, err := config.LoadTetris(flagConfig); err != nil {
			return err
		}
	}
	tetris.SetConfigPath(flagConfig)
	tetris.SetDifficultyPreset(flagDifficulty)
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := tetris.VariantStandard.ID
	if len(args) == 1 {
		gameID = args[0]
	}
	if err := applyGameFlags(); err != nil {
		return err
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w (run 'tetris list' to see variants)", err)
	}

	store, err := openStore()
	if err != nil {
		logger.Warn("results will not be saved", "err", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	logs := redirectLogs()
	final, runErr := tui.Run(game, store, runtimeConfig())
	logs.Close()
	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}

	printSummary(cmd, game.Title(), final)
	return nil
}

func printSummary(cmd *cobra.Command, title string, st core.GameState) {
	s := st.Stats
	if s.Pieces == 0 {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: %d lines, %d pieces, %d tetrises, %d spins in %s\n",
		title, s.Lines, s.Pieces, s.Tetrises, s.Spins, s.Elapsed.Round(time.Second))
}
