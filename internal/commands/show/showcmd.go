// Package show implements the "show" command.
package show

import (
	"context"
	"fmt"

	"github.com/indaco/regexcommit/internal/clix"
	"github.com/indaco/regexcommit/internal/plugins"
	"github.com/indaco/regexcommit/internal/printer"
	"github.com/urfave/cli/v3"
)

// Run returns the "show" command.
func Run(registry *plugins.Registry) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Print the current version",
		UsageText: "regexcommit show [--verbose]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Also print the file the version was read from",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runShowCmd(ctx, cmd, registry)
		},
	}
}

func runShowCmd(ctx context.Context, cmd *cli.Command, registry *plugins.Registry) error {
	_, src, err := clix.OpenSource(cmd, registry)
	if err != nil {
		return err
	}

	data, err := src.GetVersionData(ctx)
	if err != nil {
		return fmt.Errorf("failed to read version: %w", err)
	}

	printer.Println(data.Version)
	if cmd.Bool("verbose") {
		printer.PrintFaint(fmt.Sprintf("source: %s (%s)", src.Name(), data.Path))
	}
	return nil
}
