// Package clix holds the pieces shared by the CLI commands: global flags and
// resolving the configured version source.
package clix

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/indaco/regexcommit/internal/config"
	"github.com/indaco/regexcommit/internal/git"
	"github.com/indaco/regexcommit/internal/plugins"
	"github.com/indaco/regexcommit/internal/versionsource"
	"github.com/urfave/cli/v3"
)

// Global flag names.
const (
	FlagDir      = "dir"
	FlagConfig   = "config"
	FlagNoColor  = "no-color"
	FlagLogLevel = "log-level"
	FlagTheme    = "theme"
)

// GlobalFlags returns the flags accepted before any command.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    FlagDir,
			Aliases: []string{"C"},
			Usage:   "Project directory",
			Value:   ".",
		},
		&cli.StringFlag{
			Name:    FlagConfig,
			Aliases: []string{"c"},
			Usage:   "Configuration file (skips discovery)",
			Sources: cli.EnvVars(config.EnvConfig),
		},
		&cli.BoolFlag{
			Name:  FlagNoColor,
			Usage: "Disable colored output",
		},
		&cli.StringFlag{
			Name:  FlagLogLevel,
			Usage: "Log level: debug, info, warn or error",
		},
		&cli.StringFlag{
			Name:  FlagTheme,
			Usage: "Prompt theme",
		},
	}
}

// Planner is implemented by sources that can preview SetVersion.
type Planner interface {
	Plan(newVersion string, data plugins.VersionData) (versionsource.Plan, error)
}

// TagDescriber is implemented by sources that can describe HEAD.
type TagDescriber interface {
	LatestTagInfo(ctx context.Context) (*git.DescribeInfo, error)
}

// ProjectDir returns the absolute project directory selected by --dir.
func ProjectDir(cmd *cli.Command) (string, error) {
	dir := cmd.String(FlagDir)
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("invalid project directory %q: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("invalid project directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("invalid project directory %q: not a directory", abs)
	}
	return abs, nil
}

// LoadConfig loads the configuration for the selected project.
func LoadConfig(cmd *cli.Command) (*config.Config, error) {
	dir, err := ProjectDir(cmd)
	if err != nil {
		return nil, err
	}
	return config.LoadConfigFn(dir, cmd.String(FlagConfig))
}

// OpenSource loads the configuration and builds the source it selects.
func OpenSource(cmd *cli.Command, registry *plugins.Registry) (*config.Config, plugins.VersionSource, error) {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	src, err := registry.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, src, nil
}
