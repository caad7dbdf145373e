package set

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/indaco/regexcommit/internal/clix"
	"github.com/indaco/regexcommit/internal/logger"
	"github.com/indaco/regexcommit/internal/plugins"
	"github.com/indaco/regexcommit/internal/printer"
	"github.com/indaco/regexcommit/internal/semver"
	"github.com/indaco/regexcommit/internal/tui"
	"github.com/urfave/cli/v3"
)

// ErrNotHigher is returned when the new version does not sort above the
// current one and --force was not given.
var ErrNotHigher = errors.New("new version is not higher than the current version")

// Prompt seams, replaced in tests.
var (
	isInteractive = tui.IsInteractive
	confirm       = tui.Confirm
)

// Run returns the "set" command.
func Run(registry *plugins.Registry) *cli.Command {
	return &cli.Command{
		Name:      "set",
		Usage:     "Write a new version, then commit and tag it as configured",
		UsageText: "regexcommit set <version|label[,label...]> [--dry-run] [--force] [--yes]",
		Description: "The argument is either an explicit version or a comma separated list of\n" +
			"bump labels applied in order: major, minor, patch, release, alpha, beta, rc, dev.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Print the steps without changing anything",
			},
			&cli.BoolFlag{
				Name:  "force",
				Usage: "Allow a version that is not higher than the current one",
			},
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Do not ask for confirmation",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runSetCmd(ctx, cmd, registry)
		},
	}
}

func runSetCmd(ctx context.Context, cmd *cli.Command, registry *plugins.Registry) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("set requires exactly one argument: a version or bump labels")
	}
	arg := strings.TrimSpace(cmd.Args().First())

	_, src, err := clix.OpenSource(cmd, registry)
	if err != nil {
		return err
	}

	data, err := src.GetVersionData(ctx)
	if err != nil {
		return fmt.Errorf("failed to read current version: %w", err)
	}

	newVersion, err := ResolveVersion(data.Version, arg, cmd.Bool("force"))
	if err != nil {
		return err
	}
	ctx = logger.WithKV(ctx, "current_version", data.Version)

	var steps []string
	if planner, ok := src.(clix.Planner); ok {
		plan, err := planner.Plan(newVersion, data)
		if err != nil {
			return err
		}
		steps = plan.Steps()
	}

	if cmd.Bool("dry-run") {
		printer.PrintBold(fmt.Sprintf("Would set version %s -> %s:", data.Version, newVersion))
		for i, step := range steps {
			printer.Println(fmt.Sprintf("  %d. %s", i+1, step))
		}
		return nil
	}

	if !cmd.Bool("yes") && isInteractive() {
		ok, err := confirm(fmt.Sprintf("Set version %s -> %s?", data.Version, newVersion), strings.Join(steps, "\n"))
		if err != nil {
			return err
		}
		if !ok {
			printer.PrintWarning("Aborted")
			return nil
		}
	}

	err = tui.RunWithSpinner(ctx, "Updating version...", func(ctx context.Context) error {
		return src.SetVersion(ctx, newVersion, data)
	})
	if err != nil {
		return err
	}

	printer.PrintSuccess(fmt.Sprintf("Updated version from %s to %s", data.Version, newVersion))
	return nil
}

// ResolveVersion turns the set argument into the version to write. Bump
// labels need a semantic current version. When both versions are semantic
// the new one must be higher unless force is set; other version schemes are
// not compared.
func ResolveVersion(current, arg string, force bool) (string, error) {
	if arg == "" {
		return "", fmt.Errorf("version must not be empty")
	}

	if labels, ok := splitLabels(arg); ok {
		cur, err := semver.ParseVersion(current)
		if err != nil {
			return "", fmt.Errorf("cannot apply %q to current version %q: %w", arg, current, err)
		}
		next, err := semver.Bump(cur, labels...)
		if err != nil {
			return "", err
		}
		return checkHigher(cur, next, force)
	}

	next, err := semver.ParseVersion(arg)
	if err != nil {
		return arg, nil
	}
	cur, err := semver.ParseVersion(current)
	if err != nil {
		return arg, nil
	}
	if _, err := checkHigher(cur, next, force); err != nil {
		return "", err
	}
	return arg, nil
}

func checkHigher(cur, next semver.SemVersion, force bool) (string, error) {
	if !force && next.Compare(cur) <= 0 {
		return "", fmt.Errorf("%w: %s <= %s (use --force to override)", ErrNotHigher, next, cur)
	}
	return next.String(), nil
}

func splitLabels(arg string) ([]string, bool) {
	parts := strings.Split(arg, ",")
	for i, p := range parts {
		p = strings.TrimSpace(p)
		if !semver.IsBumpLabel(p) {
			return nil, false
		}
		parts[i] = p
	}
	return parts, true
}
