package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/lox/internal/lox"
	"go.followtheprocess.codes/lox/internal/syntax"
)

const checkLong = `
The path argument may be a directory or a file.

If it is the name of a .lox file, then this file alone is checked
for validity.

If it is a directory, this directory is scanned recursively for all
files with the '.lox' extension and any matching files will be validated.

Checking covers everything short of execution: lexical errors, syntax
errors and resolution errors such as unused locals or a 'break'
outside of a loop.
`

// check returns the check subcommand.
func check(ctx context.Context) func() (*cli.Command, error) {
	return func() (*cli.Command, error) {
		var options lox.CheckOptions

		return cli.New(
			"check",
			cli.Short("Check lox files for errors without running them"),
			cli.Long(checkLong),
			cli.OptionalArg("path", "Path to check, may be directory or file", "."),
			cli.Flag(&options.Debug, "debug", 'd', false, "Enable debug logging"),
			cli.Run(func(cmd *cli.Command, args []string) error {
				app := lox.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
				return app.Check(ctx, cmd.Arg("path"), syntax.PrettyConsoleHandler(cmd.Stderr()), options)
			}),
		)
	}
}
