// Package set implements the "set" command, which writes a new version and
// runs the configured commit and tag steps.
package set
