package lox

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"go.followtheprocess.codes/lox/internal/interpreter"
	"go.followtheprocess.codes/lox/internal/syntax"
	"go.followtheprocess.codes/lox/internal/syntax/ast"
	"go.followtheprocess.codes/lox/internal/syntax/parser"
	"go.followtheprocess.codes/lox/internal/syntax/resolver"
)

// RunOptions are the options passed to the run subcommand.
type RunOptions struct {
	// Debug enables debug logging.
	Debug bool
}

// Run implements the run subcommand, executing a single Lox script.
func (l Lox) Run(ctx context.Context, file string, handler syntax.ErrorHandler, options RunOptions) error {
	logger := l.logger.WithPrefix("run").With("file", file)
	logger.Debug("Running file")

	start := time.Now()

	src, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("could not read %s: %w", file, err)
	}

	statements, bindings, err := compile(file, src, handler, false)
	if err != nil {
		// The handler has already shown the detail
		return fmt.Errorf("%s contained errors", file)
	}

	logger.Debug("Compiled file", "took", time.Since(start))

	interp := interpreter.New(file, src, l.stdout)
	interp.Bind(bindings)

	return interp.Interpret(statements)
}

// compile runs the static half of the pipeline on a single compile unit:
// scanning, parsing and resolution.
//
// Errors are reported through handler as they occur, the returned error only
// signals that the unit is not clean enough to run. In interactive mode a
// trailing expression becomes an implicit print.
func compile(
	name string,
	src []byte,
	handler syntax.ErrorHandler,
	interactive bool,
) (statements []ast.Statement, bindings resolver.Bindings, err error) {
	// The scanner recovers from bad characters and the parser from bad
	// syntax without necessarily failing outright, so a collector is
	// teed in as the source of truth for "were there any errors at all"
	collector := &syntax.DiagnosticCollector{}
	collect := collector.Handler()

	tee := func(pos syntax.Position, msg string) {
		collect(pos, msg)

		if handler != nil {
			handler(pos, msg)
		}
	}

	p, err := parser.New(name, bytes.NewReader(src), tee)
	if err != nil {
		return nil, nil, fmt.Errorf("could not initialise the parser: %w", err)
	}

	if interactive {
		statements, err = p.ParseInteractive()
	} else {
		statements, err = p.Parse()
	}

	if err != nil {
		return nil, nil, err
	}

	// The scanner discards bad characters and carries on, so a unit can
	// parse cleanly while still holding lexical errors. It must not reach
	// the resolver
	if collector.HadErrors() {
		return nil, nil, parser.ErrParse
	}

	bindings, err = resolver.New(name, src, tee).Resolve(statements)
	if err != nil {
		return nil, nil, err
	}

	if collector.HadErrors() {
		return nil, nil, parser.ErrParse
	}

	return statements, bindings, nil
}
