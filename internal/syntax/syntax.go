// Package syntax handles turning raw Lox source text into meaningful
// data structures, it is the home of the tokeniser, parser and resolver
// as well as the diagnostic machinery they share.
package syntax

import (
	"cmp"
	"fmt"
	"io"
	"sync"

	"go.followtheprocess.codes/hue"
)

// Styles for rendering diagnostics on the terminal.
const (
	errorStyle    = hue.Red | hue.Bold
	positionStyle = hue.Bold
)

// ErrorHandler is the function the scanner, parser and resolver call in
// response to an error in the source code.
//
// Handlers are side-effecting reports only, they must not alter control
// flow for the caller; the parser recovers locally and continues.
type ErrorHandler func(pos Position, msg string)

// Position is an arbitrary source file position including file, line
// and column information. It can also express a range of source via StartCol
// and EndCol, this is useful for error reporting.
//
// Positions without filenames are considered invalid, in the case of stdin
// the string "stdin" may be used.
type Position struct {
	Name     string `json:"name"`     // Filename
	Offset   int    `json:"offset"`   // Byte offset of the position from the start of the file
	Line     int    `json:"line"`     // Line number (1 indexed)
	StartCol int    `json:"startCol"` // Start column (1 indexed)
	EndCol   int    `json:"endCol"`   // End column (1 indexed), EndCol == StartCol when pointing to a single character
}

// PositionOf calculates the [Position] describing the range [start, end) in src.
//
// It is used by the parser, the resolver and the interpreter to translate token
// offsets into positions for diagnostics, so that tokens themselves only need to
// carry byte offsets.
func PositionOf(name string, src []byte, start, end int) Position {
	line := 1              // Line counter
	lastNewLineOffset := 0 // The byte offset of the (end of the) last newline seen

	for index, byt := range src {
		if index >= start {
			break
		}

		if byt == '\n' {
			lastNewLineOffset = index + 1 // +1 to account for len("\n")
			line++
		}
	}

	// The column is the number of bytes between the end of the last newline
	// and the position, +1 because editor columns start at 1. Applying this
	// correction here means you can click a diagnostic in the terminal and be
	// taken to a precise location in an editor.
	startCol := 1 + start - lastNewLineOffset
	endCol := 1 + end - lastNewLineOffset

	return Position{
		Name:     name,
		Offset:   start,
		Line:     line,
		StartCol: startCol,
		EndCol:   endCol,
	}
}

// IsValid reports whether the [Position] describes a valid source position.
//
// The rules are:
//
//   - At least Name, Line and StartCol must be set (and non zero)
//   - EndCol cannot be 0, it's only allowed values are StartCol or any number greater than StartCol
func (p Position) IsValid() bool {
	if p.Name == "" || p.Line < 1 || p.StartCol < 1 || p.EndCol < 1 ||
		(p.EndCol >= 1 && p.EndCol < p.StartCol) {
		return false
	}

	return true
}

// String returns a string representation of a [Position].
//
// It is formatted such that most text editors/terminals will be able to support clicking on it
// and navigating to the position.
//
// Depending on which fields are set, the string returned will be different:
//
//   - "file:line:start-end": valid position pointing to a range of text on the line
//   - "file:line:start": valid position pointing to a single character on the line (EndCol == StartCol)
//
// At least Name, Line and StartCol must be present for a valid position, and Line and StartCol must be > 0.
// If not, an error string will be returned.
func (p Position) String() string {
	if !p.IsValid() {
		return fmt.Sprintf(
			"BadPosition: {Name: %q, Line: %d, StartCol: %d, EndCol: %d}",
			p.Name,
			p.Line,
			p.StartCol,
			p.EndCol,
		)
	}

	if p.StartCol == p.EndCol {
		// No range, just a single position
		return fmt.Sprintf("%s:%d:%d", p.Name, p.Line, p.StartCol)
	}

	return fmt.Sprintf("%s:%d:%d-%d", p.Name, p.Line, p.StartCol, p.EndCol)
}

// ComparePosition is like [cmp.Compare] for a [syntax.Position].
//
// If x and y are equal ComparePosition returns 0.
//
// If x and y refer to the same file, it returns [cmp.Compare] of
// the two offsets.
//
// If the positions refer to different files, they are compared alphabetically.
func ComparePosition(x, y Position) int {
	if x == y {
		return 0
	}

	if x.Name == y.Name {
		return cmp.Compare(x.Offset, y.Offset)
	}

	return cmp.Compare(x.Name, y.Name)
}

// Diagnostic is a syntax level diagnostic.
type Diagnostic struct {
	Msg      string   `json:"msg"`      // A descriptive message explaining the error
	Position Position `json:"position"` // The source position the diagnostic points to.
}

// String prints a [Diagnostic].
func (d Diagnostic) String() string {
	return d.Position.String() + ": " + d.Msg + "\n"
}

// PrettyConsoleHandler returns a [ErrorHandler] that renders styled
// diagnostics to w, one per line.
//
// The handler is safe for concurrent use, the scanner reports errors from
// its own goroutine.
func PrettyConsoleHandler(w io.Writer) ErrorHandler {
	var mu sync.Mutex

	return func(pos Position, msg string) {
		mu.Lock()
		defer mu.Unlock()

		fmt.Fprintf(w, "%s %s: %s\n", errorStyle.Text("error:"), positionStyle.Text(pos.String()), msg)
	}
}

// DiagnosticCollector is an [ErrorHandler] that gathers diagnostics so a
// caller can decide, after a pass has finished, whether the compile unit is
// clean enough to run.
type DiagnosticCollector struct {
	diagnostics []Diagnostic
	mu          sync.RWMutex
}

// Handler returns the [ErrorHandler] to install in the scanner, parser
// or resolver.
func (d *DiagnosticCollector) Handler() ErrorHandler {
	return func(pos Position, msg string) {
		d.mu.Lock()
		defer d.mu.Unlock()

		d.diagnostics = append(d.diagnostics, Diagnostic{Msg: msg, Position: pos})
	}
}

// HadErrors reports whether any diagnostic was collected.
func (d *DiagnosticCollector) HadErrors() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.diagnostics) > 0
}

// Diagnostics returns a copy of the collected diagnostics.
func (d *DiagnosticCollector) Diagnostics() []Diagnostic {
	d.mu.RLock()
	defer d.mu.RUnlock()

	diagCopy := make([]Diagnostic, 0, len(d.diagnostics))
	diagCopy = append(diagCopy, d.diagnostics...)

	return diagCopy
}
