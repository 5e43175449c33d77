package lox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"go.followtheprocess.codes/lox/internal/interpreter"
	"go.followtheprocess.codes/lox/internal/syntax"
	"go.followtheprocess.codes/msg"
)

const (
	// historyFile is the name of the REPL history file, kept in the
	// user's home directory.
	historyFile = ".lox_history"

	// prompt is the REPL input prompt.
	prompt = "lox> "

	// replName is the compile unit name used for diagnostics in the REPL.
	replName = "repl"
)

// REPL implements the interactive mode, a read-eval-print loop over a
// single long lived interpreter so that state accumulates across lines.
//
// Each line is scanned, parsed and resolved on its own, a trailing
// expression without a ';' prints its value.
func (l Lox) REPL(ctx context.Context) error {
	logger := l.logger.WithPrefix("repl")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)

	// Load history, best effort
	if f, err := os.Open(histPath); err == nil {
		if _, err := line.ReadHistory(f); err != nil {
			logger.Debug("Could not read REPL history", "err", err)
		}

		f.Close()
	}

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			if _, err := line.WriteHistory(f); err != nil {
				logger.Debug("Could not write REPL history", "err", err)
			}

			f.Close()
		}
	}()

	fmt.Fprintf(l.stdout, "Lox %s\nPress Ctrl-D to exit\n", l.version)

	interp := interpreter.New(replName, nil, l.stdout)
	handler := syntax.PrettyConsoleHandler(l.stderr)

	for {
		input, err := line.Prompt(prompt)

		switch {
		case errors.Is(err, liner.ErrPromptAborted):
			// Ctrl-C just abandons the current line
			continue
		case errors.Is(err, io.EOF):
			// Put the shell prompt back on its own line
			fmt.Fprintln(l.stdout)
			return nil
		case err != nil:
			return fmt.Errorf("could not read input: %w", err)
		}

		if strings.TrimSpace(input) == "" {
			continue
		}

		line.AppendHistory(input)

		src := []byte(input)

		statements, bindings, err := compile(replName, src, handler, true)
		if err != nil {
			// Already reported through the handler, back to the prompt
			continue
		}

		interp.SetSource(replName, src)
		interp.Bind(bindings)

		if err := interp.Interpret(statements); err != nil {
			msg.Ferror(l.stderr, "%s", err)
		}
	}
}
