// Package lox implements the functionality of the program, the CLI in package cmd is simply the
// entrypoint to exported functions and methods in this package.
package lox

import (
	"io"
	"time"

	"github.com/charmbracelet/log/v2"
)

// Lox represents the lox program.
type Lox struct {
	stdin   io.Reader   // Interactive input is read from here
	stdout  io.Writer   // Normal program output is written here
	stderr  io.Writer   // Diagnostics, logs and errors are written here
	logger  *log.Logger // The logger for the application
	version string      // Version of the program, shown in the REPL banner
}

// New returns a new [Lox].
func New(debug bool, version string, stdin io.Reader, stdout, stderr io.Writer) Lox {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	logger := log.NewWithOptions(stderr, log.Options{
		TimeFormat:      time.RFC3339Nano,
		Level:           level,
		Prefix:          "lox",
		ReportTimestamp: true,
	})

	logger.SetStyles(defaultLogStyles())

	return Lox{
		stdin:   stdin,
		stdout:  stdout,
		stderr:  stderr,
		logger:  logger,
		version: version,
	}
}
