package git

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"reflect"
	"slices"
	"strings"
	"syscall"
	"testing"
)

func TestGit_IsUsable(t *testing.T) {
	tests := []struct {
		name    string
		res     Result
		err     error
		want    bool
		wantErr bool
	}{
		{name: "inside repository", res: Result{ExitCode: 0}, want: true},
		{name: "outside repository", res: Result{ExitCode: 128}, want: false},
		{name: "binary missing", err: &exec.Error{Name: "git", Err: exec.ErrNotFound}, want: false},
		{name: "working dir missing", err: &fs.PathError{Op: "chdir", Path: "/nope", Err: syscall.ENOENT}, want: false},
		{name: "not executable", err: &fs.PathError{Op: "fork/exec", Path: "git", Err: syscall.EACCES}, want: false},
		{name: "not a directory", err: &fs.PathError{Op: "chdir", Path: "/file", Err: syscall.ENOTDIR}, want: false},
		{name: "other os error", err: &fs.PathError{Op: "fork/exec", Path: "git", Err: syscall.ENOMEM}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &MockRunner{
				RunFn: func(_ context.Context, cmd Command) (Result, error) {
					return tt.res, tt.err
				},
			}
			g := New(runner, "/repo")

			for i := 0; i < 2; i++ {
				got, err := g.IsUsable(context.Background())
				if (err != nil) != tt.wantErr {
					t.Fatalf("IsUsable() error = %v, wantErr %v", err, tt.wantErr)
				}
				if got != tt.want {
					t.Errorf("IsUsable() = %v, want %v", got, tt.want)
				}
			}

			if got := runner.CallLines()[0]; got != "rev-parse --git-dir" {
				t.Errorf("probe = %q", got)
			}
			if runner.Calls[0].Dir != "/repo" {
				t.Errorf("probe dir = %q, want /repo", runner.Calls[0].Dir)
			}
		})
	}
}

func TestOpen(t *testing.T) {
	t.Run("usable", func(t *testing.T) {
		g, err := Open(context.Background(), NewMockRunner(), "")
		if err != nil || g == nil {
			t.Fatalf("Open() = %v, %v", g, err)
		}
	})

	t.Run("unavailable", func(t *testing.T) {
		runner := NewMockRunner().On("rev-parse --git-dir", Result{ExitCode: 128})
		_, err := Open(context.Background(), runner, "")
		if !errors.Is(err, ErrUnavailable) {
			t.Fatalf("expected ErrUnavailable, got %v", err)
		}
	})

	t.Run("os error propagates", func(t *testing.T) {
		boom := errors.New("boom")
		runner := &MockRunner{RunFn: func(context.Context, Command) (Result, error) { return Result{}, boom }}
		_, err := Open(context.Background(), runner, "")
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
	})
}

func TestGit_AssertNonDirty(t *testing.T) {
	tests := []struct {
		name      string
		status    string
		wantLines []string
	}{
		{name: "clean", status: ""},
		{name: "only untracked", status: "?? new.txt\n?? other/\n"},
		{
			name:      "modified tracked file",
			status:    " M src/pkg/__about__.py\n?? scratch.txt\n",
			wantLines: []string{"M src/pkg/__about__.py"},
		},
		{
			name:      "several changes",
			status:    "M  staged.py\n?? x\n D gone.py\nR  a -> b\n",
			wantLines: []string{"M  staged.py", "D gone.py", "R  a -> b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewMockRunner().On("status --porcelain", Result{Stdout: []byte(tt.status)})
			err := New(runner, "").AssertNonDirty(context.Background())

			if tt.wantLines == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var dirty *DirtyError
			if !errors.As(err, &dirty) {
				t.Fatalf("expected *DirtyError, got %v", err)
			}
			if !reflect.DeepEqual(dirty.Lines, tt.wantLines) {
				t.Errorf("Lines = %q, want %q", dirty.Lines, tt.wantLines)
			}
			wantMsg := "git working directory is not clean:\n" + strings.Join(tt.wantLines, "\n")
			if dirty.Error() != wantMsg {
				t.Errorf("Error() = %q, want %q", dirty.Error(), wantMsg)
			}
		})
	}
}

func TestGit_AssertNonDirty_StatusFails(t *testing.T) {
	runner := NewMockRunner().On("status --porcelain", Result{ExitCode: 128, Stderr: []byte("fatal: not a git repository")})
	err := New(runner, "").AssertNonDirty(context.Background())

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected *CommandError, got %v", err)
	}
	if cmdErr.ExitCode != 128 || !strings.Contains(cmdErr.Output, "not a git repository") {
		t.Errorf("unexpected CommandError: %+v", cmdErr)
	}
}

func TestGit_Commit(t *testing.T) {
	tests := []struct {
		name     string
		exitCode int
		startErr error
		wantErr  bool
	}{
		{name: "success", exitCode: 0},
		{name: "nonzero exit", exitCode: 1, wantErr: true},
		{name: "start failure", startErr: errors.New("exec format error"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var msgFile, msgContent string
			var gotArgs []string

			runner := &MockRunner{
				RunFn: func(_ context.Context, cmd Command) (Result, error) {
					gotArgs = cmd.Args
					msgFile = cmd.Args[2]
					data, err := os.ReadFile(msgFile)
					if err != nil {
						t.Errorf("message file not readable during commit: %v", err)
					}
					msgContent = string(data)
					return Result{ExitCode: tt.exitCode, Stdout: []byte("hook output")}, tt.startErr
				},
			}
			g := New(runner, "")
			g.tempDir = t.TempDir()

			err := g.Commit(context.Background(), "Bump version 1.0.0 → 1.1.0", []string{"--no-verify", "-S"})
			if (err != nil) != tt.wantErr {
				t.Fatalf("Commit() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, ErrCommandFailed) {
				t.Errorf("expected ErrCommandFailed, got %v", err)
			}

			want := []string{"commit", "-F", msgFile, "--no-verify", "-S"}
			if !slices.Equal(gotArgs, want) {
				t.Errorf("args = %q, want %q", gotArgs, want)
			}
			if msgContent != "Bump version 1.0.0 → 1.1.0" {
				t.Errorf("message = %q", msgContent)
			}
			if _, err := os.Stat(msgFile); !errors.Is(err, fs.ErrNotExist) {
				t.Errorf("message file %s still exists (stat err: %v)", msgFile, err)
			}
		})
	}
}

func TestGit_Commit_ErrorCarriesDetails(t *testing.T) {
	runner := &MockRunner{
		RunFn: func(_ context.Context, cmd Command) (Result, error) {
			return Result{ExitCode: 1, Stdout: []byte("nothing to commit")}, nil
		},
	}
	g := New(runner, "")
	g.tempDir = t.TempDir()

	err := g.Commit(context.Background(), "msg", nil)

	var cmdErr *CommandError
	if !errors.As(err, &cmdErr) {
		t.Fatalf("expected *CommandError, got %v", err)
	}
	if cmdErr.ExitCode != 1 || cmdErr.Output != "nothing to commit" {
		t.Errorf("unexpected CommandError: %+v", cmdErr)
	}
	if cmdErr.Args[0] != "git" || cmdErr.Args[1] != "commit" {
		t.Errorf("Args = %q", cmdErr.Args)
	}
	if !strings.Contains(err.Error(), "return code 1") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestGit_LatestTagInfo(t *testing.T) {
	sha := strings.Repeat("a", 40)
	describe := "describe --dirty --tags --long --abbrev=40 --match=v*"

	t.Run("parses describe output", func(t *testing.T) {
		runner := NewMockRunner().On(describe, Result{Stdout: []byte("v1.4.0-2-g" + sha + "-dirty\n")})
		info, err := New(runner, "").LatestTagInfo(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := &DescribeInfo{CurrentVersion: "1.4.0", DistanceToLatestTag: 2, CommitSHA: sha, Dirty: true}
		if !reflect.DeepEqual(info, want) {
			t.Errorf("info = %+v, want %+v", info, want)
		}
		if got := runner.CallLines(); !slices.Equal(got, []string{"update-index --refresh", describe}) {
			t.Errorf("calls = %q", got)
		}
	})

	t.Run("no tags is not an error", func(t *testing.T) {
		runner := NewMockRunner().On(describe, Result{ExitCode: 128, Stderr: []byte("fatal: No names found")})
		info, err := New(runner, "").LatestTagInfo(context.Background())
		if err != nil || info != nil {
			t.Fatalf("LatestTagInfo() = %v, %v; want nil, nil", info, err)
		}
	})

	t.Run("refresh failure tolerated", func(t *testing.T) {
		runner := NewMockRunner().
			On("update-index --refresh", Result{ExitCode: 1, Stdout: []byte("file: needs update")}).
			On(describe, Result{Stdout: []byte("v1.0.0-0-g" + sha)})
		info, err := New(runner, "").LatestTagInfo(context.Background())
		if err != nil || info == nil || info.CurrentVersion != "1.0.0" {
			t.Fatalf("LatestTagInfo() = %+v, %v", info, err)
		}
	})

	t.Run("start failure propagates", func(t *testing.T) {
		boom := errors.New("boom")
		runner := &MockRunner{RunFn: func(context.Context, Command) (Result, error) { return Result{}, boom }}
		_, err := New(runner, "").LatestTagInfo(context.Background())
		if !errors.Is(err, boom) {
			t.Fatalf("expected boom, got %v", err)
		}
	})

	t.Run("malformed output", func(t *testing.T) {
		runner := NewMockRunner().On(describe, Result{Stdout: []byte("garbage")})
		_, err := New(runner, "").LatestTagInfo(context.Background())
		var parseErr *DescribeParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected *DescribeParseError, got %v", err)
		}
	})
}

func TestGit_AddPath(t *testing.T) {
	runner := NewMockRunner()
	if err := New(runner, "").AddPath(context.Background(), "src/pkg/__about__.py"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := runner.CallLines(); !slices.Equal(got, []string{"add --update src/pkg/__about__.py"}) {
		t.Errorf("calls = %q", got)
	}
}

func TestGit_Tag(t *testing.T) {
	tests := []struct {
		name string
		tag  TagDescriptor
		want []string
	}{
		{
			name: "lightweight",
			tag:  TagDescriptor{Name: "v1.2.3"},
			want: []string{"tag", "v1.2.3"},
		},
		{
			name: "annotated",
			tag:  TagDescriptor{Name: "v1.2.3", Message: "Release 1.2.3"},
			want: []string{"tag", "v1.2.3", "--message", "Release 1.2.3"},
		},
		{
			name: "signed annotated",
			tag:  TagDescriptor{Name: "v1.2.3", Message: "Release 1.2.3", Sign: true},
			want: []string{"tag", "v1.2.3", "--sign", "--message", "Release 1.2.3"},
		},
		{
			name: "signed without message",
			tag:  TagDescriptor{Name: "v1.2.3", Sign: true},
			want: []string{"tag", "v1.2.3", "--sign"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewMockRunner()
			if err := New(runner, "").Tag(context.Background(), tt.tag); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(runner.Calls) != 1 || !slices.Equal(runner.Calls[0].Args, tt.want) {
				t.Errorf("calls = %v, want args %q", runner.Calls, tt.want)
			}
		})
	}
}

func TestGit_Tag_Fails(t *testing.T) {
	runner := &MockRunner{RunFn: func(context.Context, Command) (Result, error) {
		return Result{ExitCode: 128, Stderr: []byte("fatal: tag 'v1.0.0' already exists")}, nil
	}}
	err := New(runner, "").Tag(context.Background(), TagDescriptor{Name: "v1.0.0"})
	if !errors.Is(err, ErrCommandFailed) {
		t.Fatalf("expected ErrCommandFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("Error() = %q", err.Error())
	}
}
