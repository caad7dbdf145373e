// Package describe implements the "describe" command, which reports where
// HEAD stands relative to the latest v* tag.
package describe

import (
	"context"
	"fmt"

	"github.com/indaco/regexcommit/internal/clix"
	"github.com/indaco/regexcommit/internal/git"
	"github.com/indaco/regexcommit/internal/plugins"
	"github.com/indaco/regexcommit/internal/printer"
	"github.com/tidwall/sjson"
	"github.com/urfave/cli/v3"
)

// Run returns the "describe" command.
func Run(registry *plugins.Registry) *cli.Command {
	return &cli.Command{
		Name:      "describe",
		Usage:     "Describe HEAD relative to the latest v* tag",
		UsageText: "regexcommit describe [--json]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the result as JSON",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDescribeCmd(ctx, cmd, registry)
		},
	}
}

func runDescribeCmd(ctx context.Context, cmd *cli.Command, registry *plugins.Registry) error {
	_, src, err := clix.OpenSource(cmd, registry)
	if err != nil {
		return err
	}

	describer, ok := src.(clix.TagDescriber)
	if !ok {
		return fmt.Errorf("version source %q cannot describe tags", src.Name())
	}

	info, err := describer.LatestTagInfo(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		out, err := FormatJSON(info)
		if err != nil {
			return err
		}
		printer.Println(out)
		return nil
	}

	if info == nil {
		printer.PrintWarning("No v* tag reachable from HEAD")
		return nil
	}

	printer.Println(fmt.Sprintf("%s %s", printer.Bold("tag:"), info.CurrentVersion))
	printer.Println(fmt.Sprintf("%s %d", printer.Bold("distance:"), info.DistanceToLatestTag))
	printer.Println(fmt.Sprintf("%s %s", printer.Bold("commit:"), info.CommitSHA))
	state := printer.Success("clean")
	if info.Dirty {
		state = printer.Warning("dirty")
	}
	printer.Println(fmt.Sprintf("%s %s", printer.Bold("worktree:"), state))
	return nil
}

// FormatJSON renders info as a JSON object. A nil info yields
// {"found":false}.
func FormatJSON(info *git.DescribeInfo) (string, error) {
	out, err := sjson.Set("{}", "found", info != nil)
	if err != nil {
		return "", err
	}
	if info == nil {
		return out, nil
	}

	fields := []struct {
		path  string
		value any
	}{
		{"version", info.CurrentVersion},
		{"distance", info.DistanceToLatestTag},
		{"commit", info.CommitSHA},
		{"dirty", info.Dirty},
	}
	for _, f := range fields {
		out, err = sjson.Set(out, f.path, f.value)
		if err != nil {
			return "", fmt.Errorf("failed to encode %s: %w", f.path, err)
		}
	}
	return out, nil
}
