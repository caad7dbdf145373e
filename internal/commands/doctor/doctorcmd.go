// Package doctor implements the "doctor" command, which checks that a
// project is ready for "set" without changing anything.
package doctor

import (
	"context"
	"errors"
	"fmt"

	"github.com/indaco/regexcommit/internal/clix"
	"github.com/indaco/regexcommit/internal/config"
	"github.com/indaco/regexcommit/internal/git"
	"github.com/indaco/regexcommit/internal/plugins"
	"github.com/indaco/regexcommit/internal/printer"
	"github.com/urfave/cli/v3"
)

// openGit is replaced in tests.
var openGit = func(ctx context.Context, dir string) (*git.Git, error) {
	return git.Open(ctx, nil, dir)
}

// Check is the outcome of one diagnostic.
type Check struct {
	Name   string
	Detail string
	Err    error
}

// Run returns the "doctor" command.
func Run(registry *plugins.Registry) *cli.Command {
	return &cli.Command{
		Name:  "doctor",
		Usage: "Check configuration, version file and git repository",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runDoctorCmd(ctx, cmd, registry)
		},
	}
}

func runDoctorCmd(ctx context.Context, cmd *cli.Command, registry *plugins.Registry) error {
	cfg, err := clix.LoadConfig(cmd)
	if err != nil {
		report([]Check{{Name: "configuration", Err: err}})
		return err
	}

	checks := Diagnose(ctx, cfg, registry)
	report(checks)

	failed := 0
	for _, c := range checks {
		if c.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("doctor found %d problem(s)", failed)
	}
	return nil
}

// Diagnose runs every check for cfg. Checks that depend on a failed one are
// skipped.
func Diagnose(ctx context.Context, cfg *config.Config, registry *plugins.Registry) []Check {
	origin := cfg.File
	if origin == "" {
		origin = "environment"
	}
	checks := []Check{{Name: "configuration", Detail: origin}}

	src, err := registry.Open(cfg)
	if err != nil {
		return append(checks, Check{Name: "version source", Err: err})
	}
	checks = append(checks, Check{Name: "version source", Detail: src.Name()})

	data, err := src.GetVersionData(ctx)
	if err != nil {
		return append(checks, Check{Name: "version file", Err: err})
	}
	checks = append(checks, Check{Name: "version file", Detail: fmt.Sprintf("%s in %s", data.Version, data.Path)})

	if planner, ok := src.(clix.Planner); ok {
		if _, err := planner.Plan(data.Version, data); err != nil {
			checks = append(checks, Check{Name: "templates", Err: err})
		} else {
			checks = append(checks, Check{Name: "templates", Detail: "ok"})
		}
	}

	opts := cfg.Options
	if !opts.CheckDirty && !opts.Commit && !opts.Tag {
		return append(checks, Check{Name: "git", Detail: "not needed"})
	}

	g, err := openGit(ctx, cfg.Root)
	if err != nil {
		return append(checks, Check{Name: "git", Err: err})
	}
	checks = append(checks, Check{Name: "git", Detail: "usable in " + cfg.Root})

	if opts.CheckDirty {
		if err := g.AssertNonDirty(ctx); err != nil {
			checks = append(checks, Check{Name: "working tree", Err: err})
		} else {
			checks = append(checks, Check{Name: "working tree", Detail: "clean"})
		}
	}

	info, err := g.LatestTagInfo(ctx)
	switch {
	case err != nil:
		checks = append(checks, Check{Name: "latest tag", Err: err})
	case info == nil:
		checks = append(checks, Check{Name: "latest tag", Detail: "none"})
	default:
		detail := fmt.Sprintf("v%s, %d commit(s) ahead", info.CurrentVersion, info.DistanceToLatestTag)
		checks = append(checks, Check{Name: "latest tag", Detail: detail})
	}

	return checks
}

func report(checks []Check) {
	for _, c := range checks {
		if c.Err != nil {
			var dirty *git.DirtyError
			if errors.As(c.Err, &dirty) {
				printer.PrintWarning(fmt.Sprintf("✗ %s: %d uncommitted change(s)", c.Name, len(dirty.Lines)))
				for _, line := range dirty.Lines {
					printer.PrintFaint("    " + line)
				}
				continue
			}
			printer.PrintWarning(fmt.Sprintf("✗ %s: %v", c.Name, c.Err))
			continue
		}
		printer.Println(fmt.Sprintf("%s %s: %s", printer.Success("✓"), c.Name, c.Detail))
	}
}
