package tui

import (
	"os"

	"golang.org/x/term"
)

// ciEnvs are set by common CI services.
var ciEnvs = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"CIRCLECI",
	"TRAVIS",
	"JENKINS_HOME",
	"BUILDKITE",
	"BITBUCKET_BUILD_NUMBER",
	"DRONE",
	"TF_BUILD",
}

// IsInteractive reports whether prompts and spinners may be shown: stdout is
// a terminal and no CI environment is detected.
func IsInteractive() bool {
	return IsTTY() && !IsCI()
}

// IsCI reports whether a CI environment variable is set.
func IsCI() bool {
	for _, env := range ciEnvs {
		if os.Getenv(env) != "" {
			return true
		}
	}
	return false
}

// IsTTY checks if stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) //nolint:gosec // G115: fd is a small value, no overflow risk
}
