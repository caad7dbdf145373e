// Package semver parses, compares and bumps MAJOR.MINOR.PATCH versions.
package semver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// SemVersion is a parsed MAJOR.MINOR.PATCH[-PRERELEASE][+BUILD] version.
type SemVersion struct {
	Major      int
	Minor      int
	Patch      int
	PreRelease string
	Build      string
}

// maxVersionLength bounds input handed to the regex.
const maxVersionLength = 128

var (
	versionRegex = regexp.MustCompile(
		`^v?(0|[1-9]\d*)\.(0|[1-9]\d*)\.(0|[1-9]\d*)` +
			`(?:-([0-9A-Za-z\-]+(?:\.[0-9A-Za-z\-]+)*))?` +
			`(?:\+([0-9A-Za-z\-]+(?:\.[0-9A-Za-z\-]+)*))?$`,
	)

	// ErrInvalidVersion is wrapped by every parse failure.
	ErrInvalidVersion = errors.New("invalid version format")
)

// Labels accepted by Bump.
const (
	LabelMajor   = "major"
	LabelMinor   = "minor"
	LabelPatch   = "patch"
	LabelRelease = "release"
)

// preReleaseLabels are the labels that add or advance a pre-release.
var preReleaseLabels = []string{"alpha", "beta", "rc", "dev"}

func (v SemVersion) String() string {
	var sb strings.Builder
	sb.Grow(20)
	sb.WriteString(strconv.Itoa(v.Major))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Minor))
	sb.WriteByte('.')
	sb.WriteString(strconv.Itoa(v.Patch))
	if v.PreRelease != "" {
		sb.WriteByte('-')
		sb.WriteString(v.PreRelease)
	}
	if v.Build != "" {
		sb.WriteByte('+')
		sb.WriteString(v.Build)
	}
	return sb.String()
}

// ParseVersion parses s, accepting an optional leading "v".
func ParseVersion(s string) (SemVersion, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) > maxVersionLength {
		return SemVersion{}, fmt.Errorf("%w: longer than %d characters", ErrInvalidVersion, maxVersionLength)
	}

	m := versionRegex.FindStringSubmatch(trimmed)
	if m == nil {
		return SemVersion{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	nums := [3]int{}
	for i := range nums {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return SemVersion{}, fmt.Errorf("%w: %q: %s", ErrInvalidVersion, s, err.Error())
		}
		nums[i] = n
	}

	return SemVersion{Major: nums[0], Minor: nums[1], Patch: nums[2], PreRelease: m[4], Build: m[5]}, nil
}

// IsBumpLabel reports whether s is a label understood by Bump.
func IsBumpLabel(s string) bool {
	switch s {
	case LabelMajor, LabelMinor, LabelPatch, LabelRelease:
		return true
	}
	return isPreReleaseLabel(s)
}

func isPreReleaseLabel(s string) bool {
	for _, l := range preReleaseLabels {
		if l == s {
			return true
		}
	}
	return false
}

// Bump applies labels left to right:
//   - major, minor, patch increment that field and clear lower fields,
//     pre-release and build metadata;
//   - release drops pre-release and build metadata;
//   - alpha, beta, rc, dev start or advance a numbered pre-release. On a
//     final version not already bumped in the same call, patch is
//     incremented first so the result still sorts higher.
func Bump(v SemVersion, labels ...string) (SemVersion, error) {
	if len(labels) == 0 {
		return SemVersion{}, fmt.Errorf("no bump label given")
	}

	bumped := false
	for _, label := range labels {
		switch label {
		case LabelMajor:
			v = SemVersion{Major: v.Major + 1}
			bumped = true
		case LabelMinor:
			v = SemVersion{Major: v.Major, Minor: v.Minor + 1}
			bumped = true
		case LabelPatch:
			v = SemVersion{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
			bumped = true
		case LabelRelease:
			v.PreRelease = ""
			v.Build = ""
		default:
			if !isPreReleaseLabel(label) {
				return SemVersion{}, fmt.Errorf("invalid bump label: %s", label)
			}
			if v.PreRelease == "" && !bumped {
				v.Patch++
			}
			v.PreRelease = IncrementPreRelease(v.PreRelease, label)
			v.Build = ""
			bumped = true
		}
	}
	return v, nil
}

// IncrementPreRelease advances the numeric suffix of current when it starts
// with base, keeping the separator style ("rc.1" -> "rc.2", "rc1" -> "rc2").
// Anything else restarts at base + ".1".
func IncrementPreRelease(current, base string) string {
	if current == base || !strings.HasPrefix(current, base) {
		return base + ".1"
	}

	suffix := current[len(base):]
	sep := ""
	if suffix[0] == '.' || suffix[0] == '-' {
		sep = suffix[:1]
		suffix = suffix[1:]
	}

	n, ok := parseNumericIdentifier(suffix)
	if !ok {
		return base + ".1"
	}
	return fmt.Sprintf("%s%s%d", base, sep, n+1)
}

// Compare returns -1, 0 or +1. Pre-releases sort below the matching final
// version and build metadata is ignored.
func (v SemVersion) Compare(other SemVersion) int {
	if c := compareInt(v.Major, other.Major); c != 0 {
		return c
	}
	if c := compareInt(v.Minor, other.Minor); c != 0 {
		return c
	}
	if c := compareInt(v.Patch, other.Patch); c != 0 {
		return c
	}

	switch {
	case v.PreRelease == other.PreRelease:
		return 0
	case v.PreRelease == "":
		return 1
	case other.PreRelease == "":
		return -1
	default:
		return comparePreRelease(v.PreRelease, other.PreRelease)
	}
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func comparePreRelease(a, b string) int {
	aIDs := strings.Split(a, ".")
	bIDs := strings.Split(b, ".")

	for i := 0; i < min(len(aIDs), len(bIDs)); i++ {
		if c := compareIdentifier(aIDs[i], bIDs[i]); c != 0 {
			return c
		}
	}
	return compareInt(len(aIDs), len(bIDs))
}

func compareIdentifier(a, b string) int {
	aNum, aIsNum := parseNumericIdentifier(a)
	bNum, bIsNum := parseNumericIdentifier(b)

	switch {
	case aIsNum && bIsNum:
		return compareInt(aNum, bNum)
	case aIsNum:
		return -1
	case bIsNum:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

// parseNumericIdentifier accepts digits only, without leading zeros unless
// the identifier is exactly "0".
func parseNumericIdentifier(s string) (int, bool) {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
