package main

import (
	"context"
	"fmt"

	"github.com/Dosada05/league-system/app"
	"github.com/Dosada05/league-system/config"
	"github.com/Dosada05/league-system/handicap"
	"github.com/Dosada05/league-system/services"
	"github.com/spf13/cobra"
)

func reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report COMP_ID WINNER_ID LOSER_ID",
		Short: "Record a result",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs("ID", args)
			if err != nil {
				return err
			}
			return withApp(func(ctx context.Context, _ *config.Config, a *app.App) error {
				out, err := a.Results.ReportResult(ctx, services.ReportResultInput{
					CompetitionID: ids[0], WinnerID: ids[1], LoserID: ids[2],
				})
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				fmt.Fprintf(w, "recorded: %d beat %d in %s\n", ids[1], ids[2], out.Competition.Name)
				if out.ResolvedFixture != nil {
					fmt.Fprintf(w, "fixture %d completed\n", out.ResolvedFixture.ID)
				}
				for _, c := range []*handicap.Change{out.WinnerChange, out.LoserChange} {
					if c != nil && c.HandicapChanged() {
						fmt.Fprintf(w, "player %d handicap %d -> %d\n", c.PlayerID, c.Before.Handicap, c.After.Handicap)
					}
				}
				return nil
			})
		},
	}
}

func h2hCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "h2h PLAYER_A PLAYER_B",
		Short: "Head-to-head record across all competitions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs("PLAYER_ID", args)
			if err != nil {
				return err
			}
			return withApp(func(ctx context.Context, _ *config.Config, a *app.App) error {
				h, err := a.Queries.HeadToHead(ctx, ids[0], ids[1])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d-%d\n", h.WinsA, h.WinsB)
				return nil
			})
		},
	}
}

func nextCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "next COMP_ID PLAYER_ID",
		Short: "Show the player's next open fixture",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs("ID", args)
			if err != nil {
				return err
			}
			return withApp(func(ctx context.Context, _ *config.Config, a *app.App) error {
				f, err := a.Queries.NextFixture(ctx, ids[0], ids[1])
				if err != nil {
					return err
				}
				if f == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "none")
					return nil
				}
				return printJSON(cmd, f)
			})
		},
	}
}
