package versionsource

import (
	"fmt"
	"strings"

	"github.com/indaco/regexcommit/internal/git"
	"github.com/indaco/regexcommit/internal/plugins"
)

// Plan is everything SetVersion will do, with templates already expanded.
type Plan struct {
	Context         Context
	CheckDirty      bool
	File            string
	Commit          bool
	StagePath       string
	CommitMessage   string
	CommitExtraArgs []string
	Tag             *git.TagDescriptor
}

// Plan expands the configured templates for a change from data.Version to
// newVersion. Template errors surface here, before anything is touched.
func (s *Source) Plan(newVersion string, data plugins.VersionData) (Plan, error) {
	if strings.TrimSpace(newVersion) == "" {
		return Plan{}, fmt.Errorf("new version must not be empty")
	}

	vctx := Context{CurrentVersion: data.Version, NewVersion: newVersion}
	plan := Plan{
		Context:    vctx,
		CheckDirty: s.opts.CheckDirty,
		File:       s.file.Path(),
	}

	if s.opts.Commit {
		msg, err := vctx.Format(s.opts.CommitMessage)
		if err != nil {
			return Plan{}, fmt.Errorf("option `commit_message`: %w", err)
		}
		plan.Commit = true
		plan.StagePath = s.opts.Path
		plan.CommitMessage = msg
		plan.CommitExtraArgs = s.opts.CommitExtraArgs
	}

	if s.opts.Tag {
		name, err := vctx.Format(s.opts.TagName)
		if err != nil {
			return Plan{}, fmt.Errorf("option `tag_name`: %w", err)
		}
		message, err := vctx.Format(s.opts.TagMessage)
		if err != nil {
			return Plan{}, fmt.Errorf("option `tag_message`: %w", err)
		}
		plan.Tag = &git.TagDescriptor{Name: name, Message: message, Sign: s.opts.TagSign}
	}

	return plan, nil
}

// Steps describes the plan one line per action, in execution order.
func (p Plan) Steps() []string {
	var steps []string
	if p.CheckDirty {
		steps = append(steps, "check that the working tree is clean")
	}
	steps = append(steps, fmt.Sprintf("write %s to %s", p.Context.NewVersion, p.File))
	if p.Commit {
		steps = append(steps, fmt.Sprintf("stage %s", p.StagePath))
		commit := fmt.Sprintf("commit %q", p.CommitMessage)
		if len(p.CommitExtraArgs) > 0 {
			commit += " with " + strings.Join(p.CommitExtraArgs, " ")
		}
		steps = append(steps, commit)
	}
	if p.Tag != nil {
		kind := "lightweight tag"
		if p.Tag.Message != "" {
			kind = "annotated tag"
		}
		if p.Tag.Sign {
			kind = "signed " + kind
		}
		steps = append(steps, fmt.Sprintf("create %s %s", kind, p.Tag.Name))
	}
	return steps
}
