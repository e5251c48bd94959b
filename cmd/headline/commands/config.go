package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// ConfigCommand prints the resolved configuration.
func ConfigCommand(deps *CLIDependencies) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Validate and show the resolved configuration",
		Flags: []cli.Flag{configFlag()},
		Action: func(_ context.Context, c *cli.Command) error {
			if err := deps.loadConfig(c); err != nil {
				return err
			}

			cfg := deps.Config
			path := deps.ConfigPath
			if path == "" {
				path = "(defaults)"
			}

			rules, weights := cfg.Rules(), cfg.Weights()
			fmt.Fprintf(deps.Output, "config:       %s (version %d)\n", path, cfg.Version)
			fmt.Fprintf(deps.Output, "promotion:    %d votes between %s and %s\n",
				rules.PromotionThreshold, rules.MinAge, rules.MaxAge)
			fmt.Fprintf(deps.Output, "spam:         %d flags\n", rules.SpamThreshold)
			fmt.Fprintf(deps.Output, "weights:      %+v\n", weights)
			fmt.Fprintf(deps.Output, "archive:      %t\n", cfg.PostgreSQL.Enabled)
			fmt.Fprintf(deps.Output, "notify:       log=%t redis=%t\n", cfg.Notify.Log, cfg.Notify.Redis)
			return nil
		},
	}
}
