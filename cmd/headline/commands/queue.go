package commands

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/robalyx/headline/internal/clock"
	"github.com/robalyx/headline/internal/redis"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// ReviewQueueCommand lists the stories waiting on the moderator review queue.
func ReviewQueueCommand(deps *CLIDependencies) *cli.Command {
	return &cli.Command{
		Name:  "review-queue",
		Usage: "List spam-suspended stories awaiting moderator review",
		Flags: []cli.Flag{
			configFlag(),
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"l"},
				Value:   20,
				Usage:   "Entries to show, newest first",
			},
		},
		Action: handleReviewQueue(deps),
	}
}

// handleReviewQueue handles the 'review-queue' command.
func handleReviewQueue(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		if err := deps.loadConfig(c); err != nil {
			return err
		}

		logger, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}

		manager := redis.NewManager(&deps.Config.Redis, logger)
		defer manager.Close()

		client, err := manager.GetClient(redis.NotifyDBIndex)
		if err != nil {
			return err
		}

		notifier := redis.NewNotifier(client, clock.System{}, deps.Config.Notify.QueueCap, logger)
		events, err := notifier.ReviewQueue(ctx, c.Int("limit"))
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(deps.Output, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "FLAGGED\tSTORY\tAUTHOR\tTITLE")
		for _, e := range events {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.At.Format(time.RFC3339), e.StoryID, e.AuthorID, e.Title)
		}
		return tw.Flush()
	}
}
