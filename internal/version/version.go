// Package version reports the build version of the binary.
package version

import (
	"runtime/debug"
	"strings"
)

// Set via -ldflags "-X github.com/indaco/regexcommit/internal/version.version=...".
var (
	version = ""
	commit  = ""
)

const devVersion = "dev"

var readBuildInfo = debug.ReadBuildInfo

// GetVersion returns the release version without a leading "v". It falls
// back to the module version recorded by `go install`, then to "dev".
func GetVersion() string {
	if version != "" {
		return strings.TrimPrefix(version, "v")
	}
	info, ok := readBuildInfo()
	if !ok || info.Main.Version == "" || info.Main.Version == "(devel)" {
		return devVersion
	}
	return strings.TrimPrefix(info.Main.Version, "v")
}

// GetCommit returns the VCS revision the binary was built from, with a
// "-dirty" suffix for modified trees, or "" when unknown.
func GetCommit() string {
	if commit != "" {
		return commit
	}
	info, ok := readBuildInfo()
	if !ok {
		return ""
	}

	var revision, suffix string
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			if s.Value == "true" {
				suffix = "-dirty"
			}
		}
	}
	if revision == "" {
		return ""
	}
	return revision + suffix
}
