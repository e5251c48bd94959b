package commands

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/robalyx/headline/internal/setup/config"
	"github.com/urfave/cli/v3"
)

var ErrScenarioRequired = errors.New("--scenario is required")

// CLIDependencies holds the common dependencies needed by CLI commands.
type CLIDependencies struct {
	Config     *config.Config
	ConfigPath string
	Output     io.Writer
}

// Commands returns every headline subcommand.
func Commands(deps *CLIDependencies) []*cli.Command {
	return []*cli.Command{
		ReplayCommand(deps),
		SimulateCommand(deps),
		ExportCommand(deps),
		ReviewQueueCommand(deps),
		ConfigCommand(deps),
	}
}

// configFlag selects the config file for a command.
func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "config",
		Usage: "Path to the config file (searched for when empty)",
	}
}

// loadConfig resolves the configuration for a command.
// Without a --config flag the search paths are tried and the defaults used when no file exists.
func (d *CLIDependencies) loadConfig(c *cli.Command) error {
	if path := c.String("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return err
		}
		d.Config, d.ConfigPath = cfg, path
		return nil
	}

	cfg, path, err := config.LoadConfig()
	switch {
	case errors.Is(err, config.ErrConfigFileNotFound):
		log.Printf("No %s found, using defaults", config.FileName)
		defaults := config.Default()
		d.Config = &defaults
	case err != nil:
		return fmt.Errorf("failed to load config: %w", err)
	default:
		d.Config, d.ConfigPath = cfg, path
	}
	return nil
}
