// Package regexsource reads and rewrites a version string located in a file
// by a regular expression with a named "version" group.
package regexsource

import (
	"context"
	"fmt"
	"regexp"

	"github.com/indaco/regexcommit/internal/core"
)

// DefaultPattern matches assignments like `__version__ = "1.2.3"` or
// `VERSION = 'v1.2.3'` at the start of a line.
const DefaultPattern = `(?im)^(?:__version__|VERSION)[ \t]*=[ \t]*['"]v?(?P<version>[^'"\r\n]+)['"]`

const groupName = "version"

// Source locates a version in one file.
type Source struct {
	fs      core.FileSystem
	path    string
	pattern *regexp.Regexp
	group   int
}

// New compiles pattern (DefaultPattern when empty) for the file at path.
func New(fs core.FileSystem, path, pattern string) (*Source, error) {
	if path == "" {
		return nil, fmt.Errorf("file path is required")
	}
	if pattern == "" {
		pattern = DefaultPattern
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
	}
	group := re.SubexpIndex(groupName)
	if group < 0 {
		return nil, fmt.Errorf("regex pattern %q must contain a named group %q", pattern, groupName)
	}

	if fs == nil {
		fs = core.NewOSFileSystem()
	}
	return &Source{fs: fs, path: path, pattern: re, group: group}, nil
}

// Path returns the file the source reads from.
func (s *Source) Path() string { return s.path }

// Pattern returns the compiled expression source text.
func (s *Source) Pattern() string { return s.pattern.String() }

// Read returns the version captured by the first match.
func (s *Source) Read(ctx context.Context) (string, error) {
	data, err := s.fs.ReadFile(ctx, s.path)
	if err != nil {
		return "", fmt.Errorf("failed to read file %q: %w", s.path, err)
	}

	loc, err := s.locate(data)
	if err != nil {
		return "", err
	}
	return string(data[loc[0]:loc[1]]), nil
}

// Write replaces the version captured by the first match and leaves every
// other byte of the file untouched.
func (s *Source) Write(ctx context.Context, version string) error {
	data, err := s.fs.ReadFile(ctx, s.path)
	if err != nil {
		return fmt.Errorf("failed to read file %q: %w", s.path, err)
	}

	loc, err := s.locate(data)
	if err != nil {
		return err
	}

	updated := make([]byte, 0, len(data)-(loc[1]-loc[0])+len(version))
	updated = append(updated, data[:loc[0]]...)
	updated = append(updated, version...)
	updated = append(updated, data[loc[1]:]...)

	if err := s.fs.WriteFile(ctx, s.path, updated, core.PermPublic); err != nil {
		return fmt.Errorf("failed to write file %q: %w", s.path, err)
	}
	return nil
}

// locate returns the byte span of the version group in the first match.
func (s *Source) locate(data []byte) ([2]int, error) {
	m := s.pattern.FindSubmatchIndex(data)
	if m == nil || m[2*s.group] < 0 {
		return [2]int{}, fmt.Errorf("unable to parse the version from the file: %s", s.path)
	}
	return [2]int{m[2*s.group], m[2*s.group+1]}, nil
}
