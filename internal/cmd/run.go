package cmd

import (
	"context"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/lox/internal/lox"
	"go.followtheprocess.codes/lox/internal/syntax"
)

const runLong = `
The file is scanned, parsed and resolved before anything executes,
any error found during those passes is reported and the script
will not run.

Runtime errors stop execution at the point they occur.
`

// run returns the run subcommand.
func run(ctx context.Context) func() (*cli.Command, error) {
	return func() (*cli.Command, error) {
		var options lox.RunOptions

		return cli.New(
			"run",
			cli.Short("Run a lox script"),
			cli.Long(runLong),
			cli.RequiredArg("file", "Path to the .lox file"),
			cli.Flag(&options.Debug, "debug", 'd', false, "Enable debug logging"),
			cli.Run(func(cmd *cli.Command, args []string) error {
				app := lox.New(options.Debug, version, cmd.Stdin(), cmd.Stdout(), cmd.Stderr())
				return app.Run(ctx, cmd.Arg("file"), syntax.PrettyConsoleHandler(cmd.Stderr()), options)
			}),
		)
	}
}
