package commands

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/robalyx/headline/internal/clock"
	"github.com/robalyx/headline/internal/database/types"
	"github.com/robalyx/headline/internal/database/types/enum"
	"github.com/robalyx/headline/internal/replay"
	"github.com/robalyx/headline/internal/setup"
	"github.com/urfave/cli/v3"
)

// ReplayCommand replays a scenario and prints each step's outcome and the resulting leaderboard.
func ReplayCommand(deps *CLIDependencies) *cli.Command {
	return &cli.Command{
		Name:   "replay",
		Usage:  "Replay a scenario file through the engine",
		Flags:  scenarioFlags(),
		Action: handleReplay(deps),
	}
}

func scenarioFlags() []cli.Flag {
	return []cli.Flag{
		configFlag(),
		&cli.StringFlag{
			Name:    "scenario",
			Aliases: []string{"s"},
			Usage:   "Scenario file to replay",
		},
		&cli.StringFlag{
			Name:    "period",
			Aliases: []string{"p"},
			Value:   enum.LeaderboardPeriodAllTime.String(),
			Usage:   "Leaderboard period (Daily, Weekly, BiWeekly, Monthly, AllTime)",
		},
		&cli.IntFlag{
			Name:    "limit",
			Aliases: []string{"l"},
			Value:   10,
			Usage:   "Leaderboard entries to show, 0 for all",
		},
	}
}

// handleReplay handles the 'replay' command.
func handleReplay(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		period, err := enum.LeaderboardPeriodString(c.String("period"))
		if err != nil {
			return err
		}

		app, _, err := runScenario(ctx, deps, c)
		if err != nil {
			return err
		}
		defer app.Cleanup(ctx)

		entries, err := app.DB.Service().Score().Leaderboard(ctx, period, int(c.Int("limit")))
		if err != nil {
			return fmt.Errorf("failed to get leaderboard: %w", err)
		}

		return printLeaderboard(deps.Output, app, period, entries)
	}
}

// runScenario loads the scenario named by the command's flags and replays it on a fresh engine.
// The caller owns the returned app.
func runScenario(
	ctx context.Context, deps *CLIDependencies, c *cli.Command,
) (*setup.App, *replay.Runner, error) {
	if err := deps.loadConfig(c); err != nil {
		return nil, nil, err
	}

	path := c.String("scenario")
	if path == "" {
		return nil, nil, ErrScenarioRequired
	}

	scenario, err := replay.Load(path)
	if err != nil {
		return nil, nil, err
	}

	start := scenario.Start
	if start.IsZero() {
		start = time.Now().UTC()
	}
	clk := clock.NewMock(start)

	app, err := setup.InitializeApp(ctx, deps.Config, clk)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize application: %w", err)
	}

	runner := replay.NewRunner(app.DB, clk, app.Logger)
	outcomes, err := runner.Run(ctx, scenario)
	if printErr := printOutcomes(deps.Output, outcomes); printErr != nil && err == nil {
		err = printErr
	}
	if err != nil {
		app.Cleanup(ctx)
		return nil, nil, fmt.Errorf("replay of %s failed: %w", path, err)
	}

	return app, runner, nil
}

func printOutcomes(w io.Writer, outcomes []*replay.Outcome) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "STEP\tTIME\tACTION\tRESULT")
	for _, o := range outcomes {
		result := o.Detail
		if o.Err != nil {
			result = "error: " + o.Err.Error()
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", o.Index, o.At.Format(time.RFC3339), o.Action, result)
	}
	return tw.Flush()
}

func printLeaderboard(
	w io.Writer, app *setup.App, period enum.LeaderboardPeriod, entries []*types.LeaderboardEntry,
) error {
	fmt.Fprintf(w, "\nLeaderboard (%s)\n", period)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tUSER\tSCORE")
	for _, entry := range entries {
		name := entry.UserID
		if user, err := app.DB.Service().User().Get(entry.UserID); err == nil {
			name = user.Email
		}
		fmt.Fprintf(tw, "%d\t%s\t%.1f\n", entry.Rank, name, entry.Score)
	}
	return tw.Flush()
}
