package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Dosada05/league-system/app"
	"github.com/Dosada05/league-system/config"
	"github.com/Dosada05/league-system/services"
	"github.com/spf13/cobra"
)

var errPromptTimeout = errors.New("no answer before the confirmation timeout")

func fixturesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "fixtures", Short: "Generate and inspect schedules"}

	var assumeYes bool
	generate := &cobra.Command{
		Use:   "generate COMP_ID",
		Short: "Generate the schedule, asking before replacing an existing one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("COMP_ID", args[0])
			if err != nil {
				return err
			}
			return withApp(func(ctx context.Context, cfg *config.Config, a *app.App) error {
				outcome, err := a.Fixtures.GenerateFixtures(ctx, id)
				if err != nil {
					return err
				}
				if outcome.Status == services.StatusConfirmationRequired {
					confirm := assumeYes
					if !confirm {
						question := fmt.Sprintf("%s already has %d fixtures. Replace them? [y/N] ",
							outcome.Competition.Name, outcome.Pending.ExistingFixtures)
						confirm, err = promptConfirm(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), question, cfg.ConfirmationTimeout)
						if errors.Is(err, errPromptTimeout) {
							fmt.Fprintln(cmd.OutOrStdout(), "\ntimed out; regeneration cancelled")
						} else if err != nil {
							return err
						}
					}
					outcome, err = a.Fixtures.ResolveConfirmation(ctx, outcome.Pending.Token, confirm)
					if errors.Is(err, services.ErrRegenerationCancelled) {
						fmt.Fprintln(cmd.OutOrStdout(), "existing fixtures kept")
						return nil
					}
					if err != nil {
						return err
					}
				}
				return printFixtures(cmd, outcome)
			})
		},
	}
	generate.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Replace existing fixtures without asking")
	cmd.AddCommand(generate)

	cmd.AddCommand(&cobra.Command{
		Use:  "list COMP_ID",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("COMP_ID", args[0])
			if err != nil {
				return err
			}
			return withApp(func(ctx context.Context, _ *config.Config, a *app.App) error {
				fixtures, err := a.Fixtures.ListFixtures(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(cmd, fixtures)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "complete FIXTURE_ID",
		Short: "Mark a fixture as played",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("FIXTURE_ID", args[0])
			if err != nil {
				return err
			}
			return withApp(func(ctx context.Context, _ *config.Config, a *app.App) error {
				fixture, err := a.Fixtures.CompleteFixture(ctx, id)
				if err != nil {
					return err
				}
				return printJSON(cmd, fixture)
			})
		},
	})
	return cmd
}

func printFixtures(cmd *cobra.Command, outcome *services.GenerationOutcome) error {
	w := cmd.OutOrStdout()
	label := outcome.Competition.Kind.SlotLabel()
	for _, f := range outcome.Fixtures {
		if f.IsBye() {
			fmt.Fprintf(w, "%s %d: %s (bye)\n", label, f.Slot, f.Participant1Name)
			continue
		}
		fmt.Fprintf(w, "%s %d: %s vs %s\n", label, f.Slot, f.Participant1Name, f.Participant2Name)
	}
	if outcome.ReplacedCount > 0 {
		fmt.Fprintf(w, "replaced %d earlier fixtures\n", outcome.ReplacedCount)
	}
	if outcome.ArchiveURL != "" {
		fmt.Fprintf(w, "archived at %s\n", outcome.ArchiveURL)
	}
	return nil
}

// promptConfirm asks question and waits for a y/n line. Anything other than y or yes
// is a refusal.
func promptConfirm(ctx context.Context, in io.Reader, out io.Writer, question string, timeout time.Duration) (bool, error) {
	fmt.Fprint(out, question)

	answers := make(chan string, 1)
	errs := make(chan error, 1)
	go func() {
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && line == "" {
			errs <- err
			return
		}
		answers <- line
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case line := <-answers:
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		}
		return false, nil
	case err := <-errs:
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		return false, err
	case <-timer.C:
		return false, errPromptTimeout
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
