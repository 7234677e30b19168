// Command frontoffice runs the player personality and contract
// negotiation engine.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	root := &cobra.Command{
		Use:   "frontoffice",
		Short: "Player personality and contract negotiation engine",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// A missing .env is fine; explicit env always wins.
			if err := godotenv.Load(); err == nil {
				slog.Debug(".env loaded")
			}
			setupLogging(flagLogLevel)
		},
	}

	root.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "rng seed (0 = fresh entropy)")
	root.PersistentFlags().StringVar(&flagDBPath, "db", "data/frontoffice.db", "sqlite database path")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level (debug|info|warn|error)")

	root.AddCommand(newSimCmd())
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newEvaluateCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: lvl,
	}))
	slog.SetDefault(logger)
}
