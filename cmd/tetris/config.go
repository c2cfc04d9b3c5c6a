package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

var flagForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the game configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to the user config directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := config.WriteUserConfig(flagForce)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the configuration the game would use",
	Long: `Print the resolved configuration as YAML, after the search path
(--config, user config, ./configs/tetris.yaml, built-in defaults) and the
difficulty preset are applied.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.LoadTetris(flagConfig)
		if err != nil {
			return err
		}
		if flagDifficulty != "" {
			preset := config.DifficultyPreset(flagDifficulty)
			if !config.IsKnownPreset(preset) {
				return fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", flagDifficulty)
			}
			config.ApplyTetrisPreset(&cfg, preset)
		}

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return err
		}
		if err := enc.Close(); err != nil {
			return err
		}

		t := cfg.EffectiveTiming()
		fmt.Fprintf(cmd.OutOrStdout(), "# effective: gravity %.2f cells/s, lock delay %.2fs, clear delay %.2fs\n",
			t.GravityRate, t.LockDelay, t.ClearDelay)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing config file")
	configShowCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	configShowCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}
