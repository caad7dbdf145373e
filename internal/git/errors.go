package git

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnavailable is returned when the git client cannot be invoked in
	// the working directory.
	ErrUnavailable = errors.New("git is not available on this system")

	// ErrCommandFailed matches every *CommandError via errors.Is.
	ErrCommandFailed = errors.New("git command failed")
)

// DirtyError reports uncommitted changes to tracked files.
type DirtyError struct {
	Lines []string
}

func (e *DirtyError) Error() string {
	return "git working directory is not clean:\n" + strings.Join(e.Lines, "\n")
}

// CommandError describes a git invocation that exited nonzero or could not
// be started.
type CommandError struct {
	Args     []string
	ExitCode int
	Output   string
	Err      error
}

func (e *CommandError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to run %s: %v", strings.Join(e.Args, " "), e.Err)
	}
	return fmt.Sprintf("failed to run %s: return code %d, output: %s",
		strings.Join(e.Args, " "), e.ExitCode, e.Output)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrCommandFailed) match any CommandError.
func (e *CommandError) Is(target error) bool {
	return target == ErrCommandFailed
}

// DescribeParseError is returned when git describe output does not have the
// expected VERSION-DISTANCE-gSHA[-dirty] shape.
type DescribeParseError struct {
	Output string
	Reason string
}

func (e *DescribeParseError) Error() string {
	return fmt.Sprintf("unexpected git describe output %q: %s", e.Output, e.Reason)
}
