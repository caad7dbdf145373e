// Package testutils holds helpers shared by command tests.
package testutils

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/indaco/regexcommit/internal/clix"
	"github.com/indaco/regexcommit/internal/config"
	"github.com/indaco/regexcommit/internal/core"
	"github.com/indaco/regexcommit/internal/git"
	"github.com/indaco/regexcommit/internal/plugins"
	"github.com/indaco/regexcommit/internal/printer"
	"github.com/indaco/regexcommit/internal/regexsource"
	"github.com/indaco/regexcommit/internal/versionsource"
	"github.com/urfave/cli/v3"
)

// WriteTempConfig writes a .regexcommit.yaml into dir and clears the
// environment overrides for the test.
func WriteTempConfig(t *testing.T, dir, content string) string {
	t.Helper()
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvPath, "")
	path := filepath.Join(dir, config.YAMLFile)
	if err := os.WriteFile(path, []byte(content), core.PermPublic); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

// WriteTempVersionFile writes a Python module holding version into dir.
func WriteTempVersionFile(t *testing.T, dir, name, version string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	content := "\"\"\"Package metadata.\"\"\"\n__version__ = \"" + version + "\"\n"
	if err := os.WriteFile(path, []byte(content), core.PermPublic); err != nil {
		t.Fatalf("failed to write version file: %v", err)
	}
	return path
}

// ReadTempVersionFile returns the content of the file at path.
func ReadTempVersionFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read version file: %v", err)
	}
	return string(data)
}

// NewRegistry returns a registry whose regex_commit source runs git
// through runner.
func NewRegistry(runner git.Runner) *plugins.Registry {
	r := plugins.NewRegistry()
	_ = r.Register(versionsource.PluginName, func(cfg *config.Config) (plugins.VersionSource, error) {
		file, err := regexsource.New(nil, cfg.VersionFile(), cfg.Options.Pattern)
		if err != nil {
			return nil, err
		}
		return versionsource.New(cfg.Options, file, versionsource.GitAdapterFactory(runner, cfg.Root)), nil
	})
	return r
}

// BuildCLIForTests returns a root command carrying the global flags.
func BuildCLIForTests(commands []*cli.Command) *cli.Command {
	return &cli.Command{
		Name:  "regexcommit",
		Flags: clix.GlobalFlags(),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			printer.SetNoColor(cmd.Bool(clix.FlagNoColor))
			return ctx, nil
		},
		Commands: commands,
	}
}

// RunCLITestAllowError runs args in dir and returns what was printed.
func RunCLITestAllowError(t *testing.T, app *cli.Command, args []string, dir string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	printer.SetOutput(&out, &errOut)
	t.Cleanup(func() { printer.SetOutput(nil, nil) })

	full := append([]string{args[0], "--dir", dir}, args[1:]...)
	err := app.Run(context.Background(), full)
	return out.String() + errOut.String(), err
}

// RunCLITest is RunCLITestAllowError failing the test on error.
func RunCLITest(t *testing.T, app *cli.Command, args []string, dir string) string {
	t.Helper()
	out, err := RunCLITestAllowError(t, app, args, dir)
	if err != nil {
		t.Fatalf("CLI run failed: %v\noutput: %s", err, out)
	}
	return out
}
