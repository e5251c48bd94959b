package main

import (
	"context"
	"log"
	"os"

	"github.com/robalyx/headline/cmd/headline/commands"
	"github.com/robalyx/headline/internal/setup"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	deps := &commands.CLIDependencies{Output: os.Stdout}

	app := &cli.Command{
		Name:    "headline",
		Usage:   "Story moderation engine",
		Version: setup.Version,
		Commands: commands.Commands(deps),
	}

	return app.Run(context.Background(), os.Args)
}
