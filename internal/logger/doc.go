// Package logger wraps zap with a process-wide sugared logger and context
// helpers. Log output goes to stderr so it never mixes with command output
// written to stdout.
package logger
