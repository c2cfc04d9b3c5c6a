package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick variants and difficulty from a menu",
	Long: `Start in interactive menu mode.

Up/Down selects a variant, Left/Right the difficulty, Enter plays and
Tab opens the results browser. After a game you return to the menu.`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := applyGameFlags(); err != nil {
		return err
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
	defer logs.Close()

	cfg := runtimeConfig()
	preset := config.DifficultyPreset(flagDifficulty)
	for {
		res, err := tui.RunMenu(store, cfg, preset)
		if err != nil {
			return err
		}
		cfg = res.Config
		preset = res.Difficulty

		switch {
		case res.Quit:
			return nil

		case res.WantResults:
			goBack, err := tui.RunResults(store, "", cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		game, err := registry.Create(res.GameID)
		if err != nil {
			logger.Error("create game", "game", res.GameID, "err", err)
			continue
		}
		tetris.SetDifficultyPreset(string(preset))

		// Menu games are never replays.
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		if _, err := tui.Run(game, store, cfg); err != nil {
			return err
		}
	}
}
