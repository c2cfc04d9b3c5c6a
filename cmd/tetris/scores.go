package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [variant]",
	Short: "Show stored results",
	Long: `Display the best results of a variant, ranked by lines cleared.
Without a variant, opens the interactive results browser.

Examples:
  tetris scores
  tetris scores tetris
  tetris scores tetris_nes --limit 25
  tetris scores tetris --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of results to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all results of the variant")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 0 {
		if flagClear {
			return fmt.Errorf("--clear needs a variant")
		}
		w, h, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			w, h = 80, 24
		}
		_, err = tui.RunResults(store, "", w, h)
		return err
	}

	gameID := args[0]
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("%w (run 'tetris list' to see variants)", err)
	}

	if flagClear {
		if err := store.ClearResults(gameID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared results of %s.\n", game.Title())
		return nil
	}

	return printResults(cmd, store, gameID, game.Title())
}

func printResults(cmd *cobra.Command, store *storage.Store, gameID, title string) error {
	out := cmd.OutOrStdout()
	results, err := store.TopResults(gameID, flagLimit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Results - %s\n\n", title)
	if len(results) == 0 {
		fmt.Fprintln(out, "No games recorded yet.")
		fmt.Fprintf(out, "\nPlay 'tetris play %s' to record the first one!\n", gameID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-6s  %-6s  %-7s  %-5s  %-6s  %s\n",
		"Rank", "Lines", "Pieces", "Tetris", "Spins", "Time", "Date")
	fmt.Fprintf(out, "  %-4s  %-6s  %-6s  %-7s  %-5s  %-6s  %s\n",
		"----", "-----", "------", "------", "-----", "----", "----")
	for i, r := range results {
		fmt.Fprintf(out, "  %-4d  %-6d  %-6d  %-7d  %-5d  %-6s  %s\n",
			i+1, r.Lines, r.Pieces, r.Tetrises, r.Spins, r.Duration, r.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	sum, err := store.GameSummary(gameID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nBest: %d lines   Games: %d   Average: %.1f\n", sum.BestLines, sum.Games, sum.AvgLines)
	return nil
}
