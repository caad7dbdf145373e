package git

import (
	"strconv"
	"strings"
)

// DescribeInfo is the parsed output of git describe --long --dirty.
type DescribeInfo struct {
	CurrentVersion      string
	DistanceToLatestTag int
	CommitSHA           string
	Dirty               bool
}

// ParseDescribe parses output such as "v1.2.3-4-g<sha>" or
// "v1.2.3-rc.1-0-g<sha>-dirty". Tokens are consumed from the right so that
// versions containing hyphens survive intact.
func ParseDescribe(out string) (DescribeInfo, error) {
	trimmed := strings.TrimSpace(out)
	parts := strings.Split(trimmed, "-")

	var info DescribeInfo
	if parts[len(parts)-1] == "dirty" {
		info.Dirty = true
		parts = parts[:len(parts)-1]
	}

	if len(parts) < 3 {
		return DescribeInfo{}, &DescribeParseError{Output: trimmed, Reason: "expected VERSION-DISTANCE-gSHA"}
	}

	info.CommitSHA = strings.TrimPrefix(parts[len(parts)-1], "g")

	distance, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil {
		return DescribeInfo{}, &DescribeParseError{Output: trimmed, Reason: "distance is not an integer"}
	}
	info.DistanceToLatestTag = distance

	info.CurrentVersion = strings.TrimPrefix(strings.Join(parts[:len(parts)-2], "-"), "v")
	return info, nil
}
