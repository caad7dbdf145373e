// Package versionsource implements the regex_commit version source: it
// rewrites the version in a file and then commits and tags the change with
// git, as configured.
package versionsource

import (
	"context"
	"fmt"

	"github.com/indaco/regexcommit/internal/config"
	"github.com/indaco/regexcommit/internal/core"
	"github.com/indaco/regexcommit/internal/git"
	"github.com/indaco/regexcommit/internal/logger"
	"github.com/indaco/regexcommit/internal/plugins"
	"github.com/indaco/regexcommit/internal/regexsource"
)

// PluginName is the name the source registers under.
const PluginName = config.SourceName

// Adapter is the subset of *git.Git the source drives.
type Adapter interface {
	AssertNonDirty(ctx context.Context) error
	AddPath(ctx context.Context, path string) error
	Commit(ctx context.Context, message string, extraArgs []string) error
	Tag(ctx context.Context, tag git.TagDescriptor) error
	LatestTagInfo(ctx context.Context) (*git.DescribeInfo, error)
}

// AdapterFactory opens the adapter. It is called on first use, so a source
// that never needs git never probes for it.
type AdapterFactory func(ctx context.Context) (Adapter, error)

var _ Adapter = (*git.Git)(nil)

// Source is the regex_commit version source.
type Source struct {
	opts        config.Options
	file        *regexsource.Source
	openAdapter AdapterFactory
	adapter     Adapter
}

var _ plugins.VersionSource = (*Source)(nil)

// New returns a Source over file. A nil factory opens git in the process
// working directory.
func New(opts config.Options, file *regexsource.Source, open AdapterFactory) *Source {
	if open == nil {
		open = GitAdapterFactory(nil, "")
	}
	return &Source{opts: opts, file: file, openAdapter: open}
}

// GitAdapterFactory returns a factory opening git in dir through runner.
func GitAdapterFactory(runner git.Runner, dir string) AdapterFactory {
	return func(ctx context.Context) (Adapter, error) {
		g, err := git.Open(ctx, runner, dir)
		if err != nil {
			return nil, err
		}
		return g, nil
	}
}

// NewFromConfig wires a Source for a loaded configuration: the version file
// is read through the OS filesystem and git runs in the project root.
func NewFromConfig(cfg *config.Config) (*Source, error) {
	file, err := regexsource.New(core.NewOSFileSystem(), cfg.VersionFile(), cfg.Options.Pattern)
	if err != nil {
		return nil, err
	}
	return New(cfg.Options, file, GitAdapterFactory(nil, cfg.Root)), nil
}

// RegisterVersionSource is the registration entry point handed to the host.
func RegisterVersionSource() plugins.Factory {
	return func(cfg *config.Config) (plugins.VersionSource, error) {
		return NewFromConfig(cfg)
	}
}

// Register adds the source to r under PluginName.
func Register(r *plugins.Registry) error {
	return r.Register(PluginName, RegisterVersionSource())
}

func (s *Source) Name() string { return PluginName }

// openGit returns the adapter, opening it on first call.
func (s *Source) openGit(ctx context.Context) (Adapter, error) {
	if s.adapter != nil {
		return s.adapter, nil
	}
	a, err := s.openAdapter(ctx)
	if err != nil {
		return nil, err
	}
	s.adapter = a
	return a, nil
}

// GetVersionData reads the version currently in the file.
func (s *Source) GetVersionData(ctx context.Context) (plugins.VersionData, error) {
	v, err := s.file.Read(ctx)
	if err != nil {
		return plugins.VersionData{}, err
	}
	return plugins.VersionData{Version: v, Path: s.file.Path()}, nil
}

// LatestTagInfo describes HEAD relative to the latest v* tag, or returns nil
// when there is none.
func (s *Source) LatestTagInfo(ctx context.Context) (*git.DescribeInfo, error) {
	g, err := s.openGit(ctx)
	if err != nil {
		return nil, err
	}
	return g.LatestTagInfo(ctx)
}

// SetVersion writes newVersion into the file, then commits and tags as
// configured. The first failure is returned and earlier steps stay applied.
func (s *Source) SetVersion(ctx context.Context, newVersion string, data plugins.VersionData) error {
	plan, err := s.Plan(newVersion, data)
	if err != nil {
		return err
	}

	ctx = logger.WithKV(ctx, "new_version", newVersion)

	if plan.CheckDirty {
		g, err := s.openGit(ctx)
		if err != nil {
			return err
		}
		if err := g.AssertNonDirty(ctx); err != nil {
			return err
		}
	}

	if err := s.file.Write(ctx, newVersion); err != nil {
		return err
	}
	logger.InfoKV(ctx, "version written", "path", s.file.Path())

	if plan.Commit {
		g, err := s.openGit(ctx)
		if err != nil {
			return err
		}
		if err := g.AddPath(ctx, plan.StagePath); err != nil {
			return err
		}
		if err := g.Commit(ctx, plan.CommitMessage, plan.CommitExtraArgs); err != nil {
			return err
		}
		logger.InfoKV(ctx, "committed", "message", plan.CommitMessage)
	}

	if plan.Tag != nil {
		g, err := s.openGit(ctx)
		if err != nil {
			return err
		}
		if err := g.Tag(ctx, *plan.Tag); err != nil {
			return fmt.Errorf("failed to create tag %s: %w", plan.Tag.Name, err)
		}
		logger.InfoKV(ctx, "tagged", "tag", plan.Tag.Name, "signed", plan.Tag.Sign)
	}

	return nil
}
