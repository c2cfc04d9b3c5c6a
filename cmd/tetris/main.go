// tetris is a terminal Tetris with SRS and NES rule variants.
//
// Usage:
//
//	tetris list                - List available variants
//	tetris play [variant]      - Play a variant (default: tetris)
//	tetris menu                - Pick variants interactively
//	tetris scores [variant]    - Show stored results
//	tetris simulate            - Run a scripted game headless and print transitions
//	tetris config init|show    - Write or print the configuration
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible games
//	--db <path>          - Set results database path (default: XDG data dir)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

const logFileName = "tui-tetris/tetris.log"

var (
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

// logger is the CLI logger. It writes to stderr until a full-screen
// command redirects it to a file.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "tetris",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetris",
	Short: "Tetris in your terminal",
	Long: `A terminal Tetris with a modern ruleset (SRS kicks, 7-bag, hold)
and an NES ruleset (no kicks, uniform random pieces).

Examples:
  tetris list
  tetris play
  tetris play tetris_nes --difficulty hard
  tetris menu
  tetris scores tetris
  tetris simulate --seed 7 --actions l,l,cw,d`,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to results database (default: XDG data dir)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(configCmd)
}

// setupLogging applies --log-level and hands the logger to the packages.
func setupLogging(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)
	installLoggers()
	return nil
}

// installLoggers hands copies of logger to the packages. Derived loggers
// keep the output they were created with, so this runs after every
// output change.
func installLoggers() {
	log.SetDefault(logger)
	tetris.SetLogger(logger.WithPrefix("tetris"))
	tui.SetLogger(logger.WithPrefix("tui"))
}

// redirectLogs sends log output to a file under the XDG state directory,
// since full-screen commands own the terminal. The returned closer restores
// stderr.
func redirectLogs() io.Closer {
	path, err := xdg.StateFile(logFileName)
	if err != nil {
		logger.Warn("cannot resolve log file, logging disabled", "err", err)
		logger.SetOutput(io.Discard)
		installLoggers()
		return restoreLogs{}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		logger.Warn("cannot open log file, logging disabled", "path", path, "err", err)
		logger.SetOutput(io.Discard)
		installLoggers()
		return restoreLogs{}
	}
	logger.SetOutput(f)
	installLoggers()
	return restoreLogs{f: f}
}

type restoreLogs struct{ f *os.File }

func (r restoreLogs) Close() error {
	logger.SetOutput(os.Stderr)
	installLoggers()
	if r.f != nil {
		return r.f.Close()
	}
	return nil
}

// openStore opens the results database at --db or the XDG default.
func openStore() (*storage.Store, error) {
	path := flagDBPath
	if path == "" {
		var err error
		if path, err = storage.DefaultPath(); err != nil {
			return nil, err
		}
	}
	return storage.Open(path)
}
