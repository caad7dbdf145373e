package git

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"github.com/indaco/regexcommit/internal/logger"
)

const gitBinary = "git"

var (
	usableArgs   = []string{"rev-parse", "--git-dir"}
	statusArgs   = []string{"status", "--porcelain"}
	refreshArgs  = []string{"update-index", "--refresh"}
	describeArgs = []string{"describe", "--dirty", "--tags", "--long", "--abbrev=40", "--match=v*"}
)

// TagDescriptor is everything needed to create one tag.
type TagDescriptor struct {
	Name    string
	Message string
	Sign    bool
}

// Git runs git commands in a single working directory.
type Git struct {
	runner  Runner
	dir     string
	tempDir string
}

// New returns a Git bound to dir. An empty dir means the process working
// directory; a nil runner means NewExecRunner.
func New(runner Runner, dir string) *Git {
	if runner == nil {
		runner = NewExecRunner()
	}
	return &Git{runner: runner, dir: dir}
}

// Open returns a Git for dir after checking that the client is usable there.
// It returns ErrUnavailable when it is not.
func Open(ctx context.Context, runner Runner, dir string) (*Git, error) {
	g := New(runner, dir)
	ok, err := g.IsUsable(ctx)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrUnavailable
	}
	return g, nil
}

// IsUsable reports whether git can be invoked inside a repository. Missing,
// non-executable or misplaced binaries report false; any other OS error is
// returned.
func (g *Git) IsUsable(ctx context.Context) (bool, error) {
	res, err := g.runner.Run(ctx, g.command(usableArgs...))
	if err != nil {
		if isUnusableErr(err) {
			return false, nil
		}
		return false, err
	}
	return res.ExitCode == 0, nil
}

func isUnusableErr(err error) bool {
	return errors.Is(err, exec.ErrNotFound) ||
		errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrPermission) ||
		errors.Is(err, syscall.ENOTDIR)
}

// AssertNonDirty fails with *DirtyError when tracked files have uncommitted
// changes. Untracked entries are ignored.
func (g *Git) AssertNonDirty(ctx context.Context) error {
	out, err := g.output(ctx, statusArgs...)
	if err != nil {
		return err
	}

	var lines []string
	sc := bufio.NewScanner(bytes.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "??") {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read git status output: %w", err)
	}

	if len(lines) > 0 {
		return &DirtyError{Lines: lines}
	}
	return nil
}

// Commit records staged changes with message. The message goes through a
// temporary file which is removed whatever the outcome.
func (g *Git) Commit(ctx context.Context, message string, extraArgs []string) error {
	f, err := os.CreateTemp(g.tempDir, "regexcommit-msg-*")
	if err != nil {
		return fmt.Errorf("failed to create commit message file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.WriteString(message); err != nil {
		f.Close()
		return fmt.Errorf("failed to write commit message file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write commit message file: %w", err)
	}

	args := append([]string{"commit", "-F", f.Name()}, extraArgs...)
	_, err = g.output(ctx, args...)
	if err != nil {
		logger.ErrorKV(ctx, "git commit failed", "error", err)
		return err
	}
	return nil
}

// LatestTagInfo describes HEAD relative to the nearest v* tag. It returns
// nil without error when describe fails, which is what happens in a
// repository without matching tags.
func (g *Git) LatestTagInfo(ctx context.Context) (*DescribeInfo, error) {
	// describe does not refresh the index itself
	if _, err := g.output(ctx, refreshArgs...); err != nil {
		logger.DebugKV(ctx, "git update-index --refresh failed", "error", err)
	}

	out, err := g.output(ctx, describeArgs...)
	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) && cmdErr.Err == nil {
			logger.DebugKV(ctx, "git describe failed", "error", err)
			return nil, nil
		}
		return nil, err
	}

	info, err := ParseDescribe(string(out))
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// AddPath stages changes to an already tracked path.
func (g *Git) AddPath(ctx context.Context, path string) error {
	_, err := g.output(ctx, "add", "--update", path)
	return err
}

// Tag creates a tag. It is annotated when the descriptor carries a message
// and lightweight otherwise.
func (g *Git) Tag(ctx context.Context, tag TagDescriptor) error {
	args := []string{"tag", tag.Name}
	if tag.Sign {
		args = append(args, "--sign")
	}
	if tag.Message != "" {
		args = append(args, "--message", tag.Message)
	}
	_, err := g.output(ctx, args...)
	return err
}

func (g *Git) command(args ...string) Command {
	return Command{Dir: g.dir, Name: gitBinary, Args: args}
}

// output runs git and returns stdout, turning start failures and nonzero
// exits into *CommandError.
func (g *Git) output(ctx context.Context, args ...string) ([]byte, error) {
	cmd := g.command(args...)
	logger.DebugKV(ctx, "running", "cmd", cmd.String())

	res, err := g.runner.Run(ctx, cmd)
	fullArgs := append([]string{gitBinary}, args...)
	if err != nil {
		return nil, &CommandError{Args: fullArgs, ExitCode: -1, Err: err}
	}
	if res.ExitCode != 0 {
		return nil, &CommandError{Args: fullArgs, ExitCode: res.ExitCode, Output: res.Output()}
	}
	return res.Stdout, nil
}
