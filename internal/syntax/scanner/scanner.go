// Package scanner implements a lexical scanner for Lox source code, reading the raw
// source text and emitting a stream of tokens to be consumed by the parser.
//
// The scanner is a concurrent, state-function based scanner similar to that described by Rob Pike
// in his talk [Lexical Scanning in Go], based on the implementation of text/template in the Go
// standard library.
//
// The scanner proceeds one utf-8 rune at a time until a particular token is recognised,
// the token is then "emitted" over a channel where it may be consumed by a client e.g. the parser.
//
// The 'run' method consumes "scanFns" which return states in a continual loop until nil is returned
// marking the fact that either "there is nothing more to scan" or "we've hit an unrecoverable error"
// at which point the scanner closes the tokens channel, which will be picked up by the parser as a
// signal that the input stream has ended.
//
// A similar approach is used in [BurntSushi/toml].
//
// [Lexical Scanning in Go]: https://go.dev/talks/2011/lex.slide#1
// [BurntSushi/toml]: https://github.com/BurntSushi/toml/blob/master/lex.go
package scanner

import (
	"fmt"
	"slices"
	"unicode"
	"unicode/utf8"

	"go.followtheprocess.codes/lox/internal/syntax"
	"go.followtheprocess.codes/lox/internal/syntax/token"
)

const (
	eof        = rune(-1) // eof signifies we have reached the end of the input.
	bufferSize = 32       // benchmarks suggest this is the optimum token channel buffer size
)

// scanFn represents the state of the scanner as a function that does the work
// associated with the current state, then returns the next state.
type scanFn func(*Scanner) scanFn

// Scanner is the Lox scanner.
type Scanner struct {
	tokens            chan token.Token    // Channel on which to emit scanned tokens
	handler           syntax.ErrorHandler // The installed error handler, called in response to scanning errors
	name              string              // Name of the file
	src               []byte              // Raw source text
	start             int                 // The start position of the current token
	pos               int                 // Current scanner position in src (bytes, 0 indexed)
	line              int                 // Current line number, 1 indexed
	currentLineOffset int                 // Offset at which the current line started
}

// New returns a new [Scanner] and kicks off the state machine in a goroutine.
func New(name string, src []byte, handler syntax.ErrorHandler) *Scanner {
	s := &Scanner{
		tokens:  make(chan token.Token, bufferSize),
		handler: handler,
		name:    name,
		src:     src,
		line:    1,
	}

	// run terminates when the scanning state machine is finished and all the
	// tokens are drained from s.tokens, so no other synchronisation needed here
	go s.run()

	return s
}

// Scan scans the input and returns the next token.
func (s *Scanner) Scan() token.Token {
	return <-s.tokens
}

// run starts the state machine for the scanner, each [scanFn] returns the next
// state until one returns nil, at which point the tokens channel is closed as
// a signal to the receiver that no more tokens will be sent.
func (s *Scanner) run() {
	for state := scanStart; state != nil; {
		state = state(s)
	}

	close(s.tokens)
}

// atEOF reports whether the scanner is at the end of the input.
func (s *Scanner) atEOF() bool {
	return s.pos >= len(s.src)
}

// next returns the next utf8 rune in the input, or [eof], and advances the scanner
// over that rune such that successive calls to [Scanner.next] iterate through
// src one rune at a time.
func (s *Scanner) next() rune {
	if s.atEOF() {
		return eof
	}

	char, width := utf8.DecodeRune(s.src[s.pos:])
	if char == utf8.RuneError && width == 1 {
		s.errorf("invalid utf8 character at position %d: %q", s.pos, s.src[s.pos])
		// Prevent cascading errors by "consuming" all remaining input
		s.pos = len(s.src)

		return utf8.RuneError
	}

	s.pos += width

	if char == '\n' {
		s.line++
		s.currentLineOffset = s.pos
	}

	return char
}

// peek returns the next utf8 rune in the input or [eof], but does not
// advance the scanner. Successive calls to peek return the same char
// over and over again.
func (s *Scanner) peek() rune {
	if s.atEOF() {
		return eof
	}

	char, _ := utf8.DecodeRune(s.src[s.pos:])

	return char
}

// rest returns the rest of the input from the current scanner position,
// or nil if the scanner is at EOF.
func (s *Scanner) rest() []byte {
	if s.atEOF() {
		return nil
	}

	return s.src[s.pos:]
}

// discard brings the start position up to current, effectively discarding
// any text the scanner has "collected" up to this point.
func (s *Scanner) discard() {
	s.start = s.pos
}

// skip ignores any characters for which the predicate returns true, stopping at the
// first one that returns false such that after it returns, [Scanner.next] returns the
// first 'false' char.
//
// The scanner start position is brought up to the current position before returning, effectively
// ignoring everything it's travelled over in the meantime.
func (s *Scanner) skip(predicate func(r rune) bool) {
	for !s.atEOF() && predicate(s.peek()) {
		s.next()
	}

	s.discard()
}

// take consumes the next rune if it's from the valid set, and returns
// whether it was accepted.
func (s *Scanner) take(valid rune) bool {
	if s.peek() == valid {
		s.next()
		return true
	}

	return false
}

// takeWhile consumes characters so long as the predicate returns true, stopping at the
// first one that returns false such that after it returns, [Scanner.next] returns the first 'false' rune.
func (s *Scanner) takeWhile(predicate func(r rune) bool) {
	for !s.atEOF() && predicate(s.peek()) {
		s.next()
	}
}

// takeUntil consumes characters until it hits any of the specified runes (or EOF).
//
// It stops before it consumes the first specified rune such that after it returns,
// the next call to [Scanner.next] returns the offending rune.
func (s *Scanner) takeUntil(runes ...rune) {
	// Implicitly also break on RuneError
	runes = append(runes, utf8.RuneError, eof)

	for {
		next := s.peek()
		if slices.Contains(runes, next) {
			return
		}

		// Otherwise, advance the scanner
		s.next()
	}
}

// text returns the chunk of source described by the current token, i.e.
// everything the scanner has absorbed since the last emit or discard.
func (s *Scanner) text() string {
	return string(s.src[s.start:s.pos])
}

// emit passes a token over the tokens channel, using the scanner's internal
// state to populate position information.
func (s *Scanner) emit(kind token.Kind) {
	s.tokens <- token.Token{
		Kind:  kind,
		Start: s.start,
		End:   s.pos,
	}

	// We've just emitted it, no need to keep it
	s.discard()
}

// error calculates the position information and calls the installed error
// handler with the information.
//
// Unlike in most compilers, a scanning error does not abort the scan, the
// offending characters are discarded and scanning picks up at the next clean
// state so that a single pass can report as many errors as possible.
func (s *Scanner) error(msg string) {
	// Column is the number of bytes between the last newline and the current
	// position, +1 because columns are 1 indexed
	startCol := 1 + s.start - s.currentLineOffset
	endCol := 1 + s.pos - s.currentLineOffset

	// If startCol and endCol only differ by 1, it's pointing at a single
	// character so we don't need a range, just point at the char
	if endCol-startCol <= 1 {
		endCol = startCol
	}

	position := syntax.Position{
		Name:     s.name,
		Offset:   s.pos,
		Line:     s.line,
		StartCol: startCol,
		EndCol:   endCol,
	}

	if s.handler != nil {
		s.handler(position, msg)
	}
}

// errorf calls error with a formatted message.
func (s *Scanner) errorf(format string, a ...any) {
	s.error(fmt.Sprintf(format, a...))
}

// scanStart is the top level state of the scanner, from which every token
// begins. Because Lox's lexical grammar is context free there is no state
// stack, every scanFn eventually returns to scanStart.
//
// Whitespace is ignored, '\n' bumps the line counter as a side effect
// of [Scanner.next].
func scanStart(s *Scanner) scanFn {
	s.skip(unicode.IsSpace)

	switch char := s.next(); char {
	case eof:
		s.emit(token.EOF)
		return nil
	case utf8.RuneError:
		// next() already reported the error, emit the Error token so the
		// parser knows the stream is poisoned
		s.emit(token.Error)
		return nil
	case '(':
		s.emit(token.LeftParen)
	case ')':
		s.emit(token.RightParen)
	case '{':
		s.emit(token.LeftBrace)
	case '}':
		s.emit(token.RightBrace)
	case ',':
		s.emit(token.Comma)
	case '.':
		s.emit(token.Dot)
	case '-':
		s.emit(token.Minus)
	case '+':
		s.emit(token.Plus)
	case ';':
		s.emit(token.Semicolon)
	case '*':
		s.emit(token.Star)
	case '!':
		// Maximal munch: '!=' beats '!'
		if s.take('=') {
			s.emit(token.BangEq)
		} else {
			s.emit(token.Bang)
		}
	case '=':
		if s.take('=') {
			s.emit(token.EqEq)
		} else {
			s.emit(token.Eq)
		}
	case '<':
		if s.take('=') {
			s.emit(token.LessEq)
		} else {
			s.emit(token.Less)
		}
	case '>':
		if s.take('=') {
			s.emit(token.GreaterEq)
		} else {
			s.emit(token.Greater)
		}
	case '/':
		return scanSlash
	case '"':
		return scanString
	default:
		if isDigit(char) {
			return scanNumber
		}

		if isAlpha(char) {
			return scanIdent
		}

		s.errorf("unexpected character: %q", char)
		s.discard()
	}

	return scanStart
}

// scanSlash scans a literal '/' either as a division operator or, when
// doubled up, a line comment which is discarded.
//
// It assumes the first '/' has already been consumed.
func scanSlash(s *Scanner) scanFn {
	if s.take('/') {
		s.takeUntil('\n')
		s.discard()

		return scanStart
	}

	s.emit(token.Slash)

	return scanStart
}

// scanString scans a (possibly multi-line) string literal.
//
// It assumes the opening '"' has already been consumed. The emitted token
// spans the quotes, embedded newlines bump the line counter.
func scanString(s *Scanner) scanFn {
	s.takeUntil('"')

	if s.atEOF() {
		s.error("unterminated string literal")
		s.discard()

		return scanStart
	}

	s.take('"')
	s.emit(token.String)

	return scanStart
}

// scanNumber scans a decimal number literal, Lox numbers are always floats.
//
// It assumes the first digit has already been consumed. A trailing '.' is only
// part of the number when followed by another digit, so '123.' scans as the
// number '123' followed by a Dot.
func scanNumber(s *Scanner) scanFn {
	s.takeWhile(isDigit)

	// Only consume the '.' if it's followed by another digit
	if rest := s.rest(); len(rest) >= 2 && rest[0] == '.' && isDigit(rune(rest[1])) {
		s.take('.')
		s.takeWhile(isDigit)
	}

	s.emit(token.Number)

	return scanStart
}

// scanIdent scans an identifier or keyword.
//
// The maximal identifier is scanned first and only then classified against
// the keyword table, so that e.g. 'orchid' is an Ident and not 'or' + 'chid'.
func scanIdent(s *Scanner) scanFn {
	s.takeWhile(isIdent)

	kind, _ := token.Keyword(s.text())
	s.emit(kind)

	return scanStart
}

// isDigit reports whether r is a valid ASCII digit.
func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isAlpha reports whether r may start an identifier.
func isAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

// isIdent reports whether r is a valid identifier character.
func isIdent(r rune) bool {
	return isAlpha(r) || isDigit(r)
}
