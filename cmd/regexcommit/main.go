package main

import (
	"context"
	"os"

	"github.com/indaco/regexcommit/internal/cli"
	"github.com/indaco/regexcommit/internal/plugins"
	"github.com/indaco/regexcommit/internal/printer"
	"github.com/indaco/regexcommit/internal/versionsource"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		printer.PrintError(err.Error())
		os.Exit(1)
	}
}

// runCLI wires the registry and runs the command line in args.
func runCLI(args []string) error {
	registry := plugins.NewRegistry()
	if err := versionsource.Register(registry); err != nil {
		return err
	}
	return cli.New(registry).Run(context.Background(), args)
}
