// Package versioncmd implements the "version" command.
package versioncmd

import (
	"context"
	"fmt"

	"github.com/indaco/regexcommit/internal/printer"
	"github.com/indaco/regexcommit/internal/version"
	"github.com/urfave/cli/v3"
)

// Run returns the "version" command.
func Run() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print the regexcommit build version",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			line := fmt.Sprintf("regexcommit v%s", version.GetVersion())
			if commit := version.GetCommit(); commit != "" {
				line += printer.Faint(fmt.Sprintf(" (%s)", commit))
			}
			printer.Println(line)
			return nil
		},
	}
}
