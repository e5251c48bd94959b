package commands

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/robalyx/headline/internal/database/types/enum"
	"github.com/robalyx/headline/internal/export"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

var ErrInvalidHashType = errors.New("invalid hash type")

// ExportCommand replays a scenario and exports the resulting stories and leaderboard.
func ExportCommand(deps *CLIDependencies) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Replay a scenario and export stories and the leaderboard",
		Flags: append(scenarioFlags(),
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "exports",
				Usage:   "Base output directory for export files",
			},
			&cli.StringSliceFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Formats to write (sqlite, csv, chart); all when omitted",
			},
			&cli.StringFlag{
				Name:    "description",
				Aliases: []string{"d"},
				Usage:   "Export description",
			},
			&cli.StringFlag{
				Name:  "salt",
				Usage: "Salt for hashing user IDs; IDs are exported as-is when empty",
			},
			&cli.StringFlag{
				Name:    "hash-type",
				Aliases: []string{"t"},
				Value:   string(export.HashTypeSHA256),
				Usage:   "Hash algorithm to use (argon2id or sha256)",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Value: 1,
				Usage: "Number of concurrent hash operations",
			},
			&cli.UintFlag{
				Name:    "iterations",
				Aliases: []string{"i"},
				Usage:   "Number of hash iterations",
			},
			&cli.UintFlag{
				Name:    "memory",
				Aliases: []string{"m"},
				Usage:   "Memory to use for Argon2id in MB",
			},
		),
		Action: handleExport(deps),
	}
}

// handleExport handles the 'export' command.
func handleExport(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		config, err := exportConfig(c)
		if err != nil {
			return fmt.Errorf("failed to get export configuration: %w", err)
		}

		formats := make([]export.Format, 0, len(c.StringSlice("format")))
		for _, f := range c.StringSlice("format") {
			formats = append(formats, export.Format(f))
		}

		app, _, err := runScenario(ctx, deps, c)
		if err != nil {
			return err
		}
		defer app.Cleanup(ctx)

		// Create timestamped output directory
		outDir := filepath.Join(c.String("output"), time.Now().UTC().Format("2006-01-02_150405"))

		metadata, err := export.New(app.DB, app.Clock, outDir, config, app.Logger, formats...).ExportAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to export data: %w", err)
		}

		fmt.Fprintf(deps.Output, "\nExported %d stories and %d leaderboard entries to %s\n",
			metadata.Stories, metadata.Leaderboard, outDir)
		app.Logger.Info("Export written",
			zap.String("outDir", outDir),
			zap.Bool("pseudonymized", metadata.Pseudonymized))

		return nil
	}
}

// exportConfig builds the export configuration from CLI flags.
func exportConfig(c *cli.Command) (*export.Config, error) {
	period, err := enum.LeaderboardPeriodString(c.String("period"))
	if err != nil {
		return nil, err
	}

	hashType := export.HashType(c.String("hash-type"))
	if hashType != export.HashTypeSHA256 && hashType != export.HashTypeArgon2id {
		return nil, fmt.Errorf("%w: %s", ErrInvalidHashType, hashType)
	}

	return &export.Config{
		Description: c.String("description"),
		Period:      period,
		Limit:       int(c.Int("limit")),
		Salt:        c.String("salt"),
		HashType:    hashType,
		Iterations:  uint32(c.Uint("iterations")), //nolint:gosec // -
		Memory:      uint32(c.Uint("memory")),     //nolint:gosec // -
		Concurrency: int(c.Int("concurrency")),
	}, nil
}
