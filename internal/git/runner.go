package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// Command is a single external process invocation.
type Command struct {
	Dir  string
	Name string
	Args []string
}

// String returns the command line as it would be typed.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}

// Result is what a finished process left behind.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
}

// Output returns stdout and stderr combined and trimmed.
func (r Result) Output() string {
	out := strings.TrimSpace(string(r.Stdout))
	errOut := strings.TrimSpace(string(r.Stderr))
	switch {
	case out == "":
		return errOut
	case errOut == "":
		return out
	default:
		return out + "\n" + errOut
	}
}

// Runner executes commands. A nonzero exit is reported through
// Result.ExitCode with a nil error; the error is reserved for processes that
// could not be started at all.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct {
	execCommand func(ctx context.Context, name string, arg ...string) *exec.Cmd
}

// NewExecRunner returns a Runner backed by exec.CommandContext.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{execCommand: exec.CommandContext}
}

var _ Runner = (*ExecRunner)(nil)

func (r *ExecRunner) Run(ctx context.Context, c Command) (Result, error) {
	cmd := r.execCommand(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		res.ExitCode = exitErr.ExitCode()
		return res, nil
	}
	if err != nil {
		res.ExitCode = -1
		return res, err
	}
	return res, nil
}
