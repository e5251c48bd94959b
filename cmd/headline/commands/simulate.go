package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robalyx/headline/internal/clock"
	"github.com/robalyx/headline/internal/database/types/enum"
	"github.com/robalyx/headline/internal/redis"
	"github.com/robalyx/headline/internal/worker/core"
	"github.com/robalyx/headline/internal/worker/publish"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

var ErrAdminRequired = errors.New("--admin must name an administrator in the scenario")

// SimulateCommand replays a scenario, then lets the publish worker run over simulated time.
func SimulateCommand(deps *CLIDependencies) *cli.Command {
	return &cli.Command{
		Name:  "simulate",
		Usage: "Replay a scenario and run the publish worker over simulated time",
		Flags: append(scenarioFlags(),
			&cli.StringFlag{
				Name:  "admin",
				Value: "admin",
				Usage: "Scenario user key the publish worker acts as",
			},
			&cli.DurationFlag{
				Name:  "interval",
				Value: time.Hour,
				Usage: "Simulated time between publish passes",
			},
			&cli.IntFlag{
				Name:  "ticks",
				Value: 24,
				Usage: "Number of publish passes",
			},
		),
		Action: handleSimulate(deps),
	}
}

// handleSimulate handles the 'simulate' command.
func handleSimulate(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		period, err := enum.LeaderboardPeriodString(c.String("period"))
		if err != nil {
			return err
		}

		app, runner, err := runScenario(ctx, deps, c)
		if err != nil {
			return err
		}
		defer app.Cleanup(ctx)

		admin, ok := runner.User(c.String("admin"))
		if !ok || admin.Role != enum.UserRoleAdministrator {
			return ErrAdminRequired
		}

		clk, ok := app.Clock.(*clock.Mock)
		if !ok {
			return fmt.Errorf("simulation needs a mock clock, got %T", app.Clock)
		}

		var monitor *core.Monitor
		if app.RedisManager != nil {
			client, err := app.RedisManager.GetClient(redis.StatusDBIndex)
			if err != nil {
				return err
			}
			monitor = core.NewMonitor(client, clk, app.Logger)
		}

		worker := publish.New(app.DB, admin, monitor, app.Logger)
		interval := c.Duration("interval")

		fmt.Fprintln(deps.Output)
		for range c.Int("ticks") {
			now := clk.Advance(interval)
			published, err := worker.Tick(ctx)
			if err != nil {
				return fmt.Errorf("publish pass at %s failed: %w", now.Format(time.RFC3339), err)
			}
			if published > 0 {
				fmt.Fprintf(deps.Output, "%s  published %d\n", now.Format(time.RFC3339), published)
			}
		}

		status := worker.Status()
		app.Logger.Info("Simulation finished",
			zap.Int("runs", status.Runs),
			zap.Int("published", status.Published))

		entries, err := app.DB.Service().Score().Leaderboard(ctx, period, int(c.Int("limit")))
		if err != nil {
			return fmt.Errorf("failed to get leaderboard: %w", err)
		}
		return printLeaderboard(deps.Output, app, period, entries)
	}
}
