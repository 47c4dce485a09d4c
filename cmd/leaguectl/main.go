// Command leaguectl administers teams, players, competitions and fixtures.
//
// Usage:
//
//	leaguectl migrate
//	leaguectl hash-password 'secret password'
//	leaguectl team add "Red Lions"
//	leaguectl player add 1001 "Ann" --handicap 20 --team "Red Lions"
//	leaguectl comp create "Spring Cup" --kind cup --handicap
//	leaguectl comp enter 3 player 1001 1002 1003
//	leaguectl fixtures generate 3
//	leaguectl report 3 1001 1002
//	leaguectl h2h 1001 1002
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"

	"github.com/Dosada05/league-system/app"
	"github.com/Dosada05/league-system/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

func main() {
	_ = godotenv.Load(".env")

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "leaguectl",
		Short:        "League and cup administration",
		SilenceUsage: true,
	}

	root.AddCommand(migrateCmd())
	root.AddCommand(hashPasswordCmd())
	root.AddCommand(teamCmd())
	root.AddCommand(playerCmd())
	root.AddCommand(compCmd())
	root.AddCommand(fixturesCmd())
	root.AddCommand(reportCmd())
	root.AddCommand(h2hCmd())
	root.AddCommand(nextCmd())
	return root
}

// withApp loads configuration, opens the database and runs fn. Ctrl-C cancels ctx.
func withApp(fn func(ctx context.Context, cfg *config.Config, a *app.App) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.LogLevel < slog.LevelWarn {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	}

	a, err := app.New(ctx, cfg, logger, app.Options{})
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(ctx, cfg, a)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(name, s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, s)
	}
	return id, nil
}

func parseIDs(name string, args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := parseID(name, a)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
