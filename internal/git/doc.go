// Package git wraps the git command-line client behind typed operations.
//
// Every operation shells out through a Runner, so callers and tests can
// swap the real process execution for a recording fake. Nonzero exits come
// back as *CommandError, an unclean working tree as *DirtyError, and a
// missing or unusable client as ErrUnavailable.
package git
