package cli

import (
	"context"
	"fmt"

	"github.com/indaco/regexcommit/internal/clix"
	"github.com/indaco/regexcommit/internal/commands/describe"
	"github.com/indaco/regexcommit/internal/commands/doctor"
	"github.com/indaco/regexcommit/internal/commands/set"
	"github.com/indaco/regexcommit/internal/commands/show"
	"github.com/indaco/regexcommit/internal/commands/versioncmd"
	"github.com/indaco/regexcommit/internal/logger"
	"github.com/indaco/regexcommit/internal/plugins"
	"github.com/indaco/regexcommit/internal/printer"
	"github.com/indaco/regexcommit/internal/tui"
	"github.com/indaco/regexcommit/internal/version"
	urfavecli "github.com/urfave/cli/v3"
)

// New builds the root command over the sources in registry.
func New(registry *plugins.Registry) *urfavecli.Command {
	return &urfavecli.Command{
		Name:                  "regexcommit",
		Version:               fmt.Sprintf("v%s", version.GetVersion()),
		Usage:                 "Set a version held in a file, then commit and tag it",
		EnableShellCompletion: true,
		Flags:                 clix.GlobalFlags(),
		Before:                before,
		Commands: []*urfavecli.Command{
			show.Run(registry),
			set.Run(registry),
			describe.Run(registry),
			doctor.Run(registry),
			versioncmd.Run(),
		},
	}
}

func before(ctx context.Context, cmd *urfavecli.Command) (context.Context, error) {
	printer.SetNoColor(cmd.Bool(clix.FlagNoColor))

	if name := cmd.String(clix.FlagLogLevel); name != "" {
		level, ok := logger.ParseLogLevel(name)
		if !ok {
			return ctx, fmt.Errorf("invalid --%s %q: expected debug, info, warn or error", clix.FlagLogLevel, name)
		}
		logger.SetLevel(level)
	} else if level, ok := logger.LevelFromEnv(); ok {
		logger.SetLevel(level)
	}

	if name := cmd.String(clix.FlagTheme); name != "" {
		if !tui.IsValidTheme(name) {
			return ctx, fmt.Errorf("invalid --%s %q: expected one of %v", clix.FlagTheme, name, tui.ValidThemes)
		}
		tui.SetTheme(name)
	}

	return logger.ToContext(ctx, logger.Logger()), nil
}
