package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/Dosada05/league-system/app"
	"github.com/Dosada05/league-system/config"
	"github.com/Dosada05/league-system/db"
	"github.com/Dosada05/league-system/models"
	"github.com/Dosada05/league-system/services"
	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, _ *config.Config, a *app.App) error {
				if err := db.Migrate(ctx, a.DB); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
				return nil
			})
		},
	}
}

func hashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password PASSWORD",
		Short: "Print the bcrypt hash to put in ADMIN_PASSWORD_HASH",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := services.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func teamCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "team", Short: "Manage teams"}

	cmd.AddCommand(&cobra.Command{
		Use:  "add NAME",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, _ *config.Config, a *app.App) error {
				team, err := a.Teams.CreateTeam(ctx, args[0])
				if err != nil {
					return err
				}
				return printJSON(cmd, team)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete TEAM_ID",
		Short: "Delete a team; its players stay registered without a team",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("TEAM_ID", args[0])
			if err != nil {
				return err
			}
			return withApp(func(ctx context.Context, _ *config.Config, a *app.App) error {
				if err := a.Teams.DeleteTeam(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "team %d deleted\n", id)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:  "list",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, _ *config.Config, a *app.App) error {
				teams, err := a.Teams.ListTeams(ctx)
				if err != nil {
					return err
				}
				return printJSON(cmd, teams)
			})
		},
	})
	return cmd
}

func playerCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "player", Short: "Manage players"}

	var teamName string
	var startHandicap int
	add := &cobra.Command{
		Use:  "add PLAYER_ID NAME",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("PLAYER_ID", args[0])
			if err != nil {
				return err
			}
			return withApp(func(ctx context.Context, _ *config.Config, a *app.App) error {
				res, err := a.Players.RegisterPlayer(ctx, services.RegisterPlayerInput{
					ID: id, Name: args[1], TeamName: teamName, Handicap: startHandicap,
				})
				if err != nil {
					return err
				}
				if res.TeamNotFound {
					fmt.Fprintf(cmd.ErrOrStderr(), "team %q not found; player registered without a team\n", teamName)
				}
				return printJSON(cmd, res.Player)
			})
		},
	}
	add.Flags().StringVar(&teamName, "team", "", "Team name to join")
	add.Flags().IntVar(&startHandicap, "handicap", 0, "Starting handicap")
	cmd.AddCommand(add)

	cmd.AddCommand(&cobra.Command{
		Use:   "delete PLAYER_ID",
		Short: "Delete a player without match history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("PLAYER_ID", args[0])
			if err != nil {
				return err
			}
			return withApp(func(ctx context.Context, _ *config.Config, a *app.App) error {
				if err := a.Players.DeletePlayer(ctx, id); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "player %d deleted\n", id)
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:  "assign TEAM_NAME PLAYER_ID...",
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids, err := parseIDs("PLAYER_ID", args[1:])
			if err != nil {
				return err
			}
			return withApp(func(ctx context.Context, _ *config.Config, a *app.App) error {
				report, err := a.Players.AssignTeam(ctx, args[0], ids)
				if err != nil {
					return err
				}
				return printJSON(cmd, report)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "status PLAYER_ID",
		Short: "Show handicap and current streaks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("PLAYER_ID", args[0])
			if err != nil {
				return err
			}
			return withApp(func(ctx context.Context, _ *config.Config, a *app.App) error {
				status, err := a.Players.GetPlayerStatus(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(cmd, status)
			})
		},
	})
	return cmd
}

func compCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "comp", Short: "Manage competitions"}

	var kind string
	var handicap bool
	create := &cobra.Command{
		Use:  "create NAME",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, _ *config.Config, a *app.App) error {
				comp, err := a.Competitions.CreateCompetition(ctx, services.CreateCompetitionInput{
					Name: args[0], Kind: kind, AffectsHandicap: handicap,
				})
				if err != nil {
					return err
				}
				return printJSON(cmd, comp)
			})
		},
	}
	create.Flags().StringVar(&kind, "kind", string(models.KindLeague), "league or cup")
	create.Flags().BoolVar(&handicap, "handicap", false, "Results adjust player handicaps")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "channel COMP_ID ROLE [CHANNEL]",
		Short: "Set the fixtures or results channel; omit CHANNEL to clear it",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("COMP_ID", args[0])
			if err != nil {
				return err
			}
			channel := ""
			if len(args) == 3 {
				channel = args[2]
			}
			return withApp(func(ctx context.Context, _ *config.Config, a *app.App) error {
				comp, err := a.Competitions.SetChannel(ctx, id, args[1], channel)
				if err != nil {
					return err
				}
				return printJSON(cmd, comp)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "enter COMP_ID team|player ID...",
		Short: "Enter teams into a league or players into a cup",
		Args:  cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			compID, err := parseID("COMP_ID", args[0])
			if err != nil {
				return err
			}
			refs := make([]models.ParticipantRef, 0, len(args)-2)
			for _, raw := range args[2:] {
				id, err := parseID("ID", raw)
				if err != nil {
					return err
				}
				ref, err := models.NewParticipantRef(strings.TrimSpace(args[1]), id)
				if err != nil {
					return err
				}
				refs = append(refs, ref)
			}
			return withApp(func(ctx context.Context, _ *config.Config, a *app.App) error {
				report, err := a.Competitions.AddParticipants(ctx, compID, refs)
				if err != nil {
					return err
				}
				return printJSON(cmd, report)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:  "list",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(ctx context.Context, _ *config.Config, a *app.App) error {
				comps, err := a.Competitions.ListCompetitions(ctx)
				if err != nil {
					return err
				}
				w := cmd.OutOrStdout()
				for _, c := range comps {
					flag := ""
					if c.AffectsHandicap {
						flag = " (handicap)"
					}
					fmt.Fprintf(w, "%d\t%s\t%s%s\n", c.ID, c.Name, c.Kind, flag)
				}
				return nil
			})
		},
	})
	return cmd
}
