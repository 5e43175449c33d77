// Package cmd implements lox's CLI.
package cmd

import (
	"context"
	"os"

	"go.followtheprocess.codes/cli"
	"go.followtheprocess.codes/lox/internal/lox"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

// Build builds and returns the lox CLI.
func Build(ctx context.Context) (*cli.Command, error) {
	var debug bool

	return cli.New(
		"lox",
		cli.Short("A tree-walking interpreter for the Lox language"),
		cli.Version(version),
		cli.Commit(commit),
		cli.BuildDate(date),
		cli.Example("Start an interactive session", "lox"),
		cli.Example("Run a script", "lox run ./hello.lox"),
		cli.Example("Check a file for errors without running it", "lox check ./hello.lox"),
		cli.Example("Check every .lox file under a directory (recursively)", "lox check ./scripts"),
		cli.Allow(cli.NoArgs()),
		cli.Flag(&debug, "debug", 'd', false, "Enable debug logs"),
		cli.SubCommands(run(ctx), check(ctx)),
		cli.Run(func(cmd *cli.Command, args []string) error {
			app := lox.New(debug, version, os.Stdin, os.Stdout, os.Stderr)
			return app.REPL(ctx)
		}),
	)
}
