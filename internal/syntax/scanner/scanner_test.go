package scanner_test

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"

	"go.followtheprocess.codes/lox/internal/syntax"
	"go.followtheprocess.codes/lox/internal/syntax/scanner"
	"go.followtheprocess.codes/lox/internal/syntax/token"
	"go.followtheprocess.codes/test"
	"go.uber.org/goleak"
)

func TestBasics(t *testing.T) {
	tests := []struct {
		name string        // Name of the test case
		src  string        // Source text to scan
		want []token.Token // Expected token stream
	}{
		{
			name: "empty",
			src:  "",
			want: []token.Token{
				{Kind: token.EOF, Start: 0, End: 0},
			},
		},
		{
			name: "punctuation",
			src:  "(){},.-+;*",
			want: []token.Token{
				{Kind: token.LeftParen, Start: 0, End: 1},
				{Kind: token.RightParen, Start: 1, End: 2},
				{Kind: token.LeftBrace, Start: 2, End: 3},
				{Kind: token.RightBrace, Start: 3, End: 4},
				{Kind: token.Comma, Start: 4, End: 5},
				{Kind: token.Dot, Start: 5, End: 6},
				{Kind: token.Minus, Start: 6, End: 7},
				{Kind: token.Plus, Start: 7, End: 8},
				{Kind: token.Semicolon, Start: 8, End: 9},
				{Kind: token.Star, Start: 9, End: 10},
				{Kind: token.EOF, Start: 10, End: 10},
			},
		},
		{
			name: "operators maximal munch",
			src:  "! != = == < <= > >=",
			want: []token.Token{
				{Kind: token.Bang, Start: 0, End: 1},
				{Kind: token.BangEq, Start: 2, End: 4},
				{Kind: token.Eq, Start: 5, End: 6},
				{Kind: token.EqEq, Start: 7, End: 9},
				{Kind: token.Less, Start: 10, End: 11},
				{Kind: token.LessEq, Start: 12, End: 14},
				{Kind: token.Greater, Start: 15, End: 16},
				{Kind: token.GreaterEq, Start: 17, End: 19},
				{Kind: token.EOF, Start: 19, End: 19},
			},
		},
		{
			name: "slash and comment",
			src:  "a / b // comment\nc",
			want: []token.Token{
				{Kind: token.Ident, Start: 0, End: 1},
				{Kind: token.Slash, Start: 2, End: 3},
				{Kind: token.Ident, Start: 4, End: 5},
				{Kind: token.Ident, Start: 17, End: 18},
				{Kind: token.EOF, Start: 18, End: 18},
			},
		},
		{
			name: "comment to eof",
			src:  "// just a comment",
			want: []token.Token{
				{Kind: token.EOF, Start: 17, End: 17},
			},
		},
		{
			name: "string",
			src:  `"hello"`,
			want: []token.Token{
				{Kind: token.String, Start: 0, End: 7},
				{Kind: token.EOF, Start: 7, End: 7},
			},
		},
		{
			name: "multiline string",
			src:  "\"a\nb\"",
			want: []token.Token{
				{Kind: token.String, Start: 0, End: 5},
				{Kind: token.EOF, Start: 5, End: 5},
			},
		},
		{
			name: "numbers",
			src:  "123 123.456 123.",
			want: []token.Token{
				{Kind: token.Number, Start: 0, End: 3},
				{Kind: token.Number, Start: 4, End: 11},
				// A trailing '.' is not part of the number
				{Kind: token.Number, Start: 12, End: 15},
				{Kind: token.Dot, Start: 15, End: 16},
				{Kind: token.EOF, Start: 16, End: 16},
			},
		},
		{
			name: "keywords and idents",
			src:  "or orchid var variable",
			want: []token.Token{
				{Kind: token.Or, Start: 0, End: 2},
				{Kind: token.Ident, Start: 3, End: 9},
				{Kind: token.Var, Start: 10, End: 13},
				{Kind: token.Ident, Start: 14, End: 22},
				{Kind: token.EOF, Start: 22, End: 22},
			},
		},
		{
			name: "underscore ident",
			src:  "_private _1",
			want: []token.Token{
				{Kind: token.Ident, Start: 0, End: 8},
				{Kind: token.Ident, Start: 9, End: 11},
				{Kind: token.EOF, Start: 11, End: 11},
			},
		},
		{
			name: "declaration",
			src:  "var answer = 42;",
			want: []token.Token{
				{Kind: token.Var, Start: 0, End: 3},
				{Kind: token.Ident, Start: 4, End: 10},
				{Kind: token.Eq, Start: 11, End: 12},
				{Kind: token.Number, Start: 13, End: 15},
				{Kind: token.Semicolon, Start: 15, End: 16},
				{Kind: token.EOF, Start: 16, End: 16},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			src := []byte(tt.src)
			scanner := scanner.New(tt.name, src, testFailHandler(t))

			tokens := drain(scanner)

			test.EqualFunc(t, tokens, tt.want, slices.Equal, test.Context("token stream mismatch"))
		})
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name     string        // Name of the test case
		src      string        // Source text to scan
		want     []token.Token // Expected token stream, scanning continues past errors
		wantErrs []string      // Expected reported errors
	}{
		{
			name: "unexpected character",
			src:  "var @ x = 1;",
			want: []token.Token{
				{Kind: token.Var, Start: 0, End: 3},
				{Kind: token.Ident, Start: 6, End: 7},
				{Kind: token.Eq, Start: 8, End: 9},
				{Kind: token.Number, Start: 10, End: 11},
				{Kind: token.Semicolon, Start: 11, End: 12},
				{Kind: token.EOF, Start: 12, End: 12},
			},
			wantErrs: []string{
				"unexpected character: '@'",
			},
		},
		{
			name: "multiple unexpected characters",
			src:  "@ #",
			want: []token.Token{
				{Kind: token.EOF, Start: 3, End: 3},
			},
			wantErrs: []string{
				"unexpected character: '@'",
				"unexpected character: '#'",
			},
		},
		{
			name: "unterminated string",
			src:  `"abc`,
			want: []token.Token{
				{Kind: token.EOF, Start: 4, End: 4},
			},
			wantErrs: []string{
				"unterminated string literal",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			collector := &errorCollector{}

			src := []byte(tt.src)
			scanner := scanner.New(tt.name, src, collector.handler())

			tokens := drain(scanner)

			test.EqualFunc(t, tokens, tt.want, slices.Equal, test.Context("token stream mismatch"))

			errs := collector.String()
			for _, want := range tt.wantErrs {
				test.True(
					t,
					strings.Contains(errs, want),
					test.Context("reported errors %q missing %q", errs, want),
				)
			}
		})
	}
}

func FuzzScanner(f *testing.F) {
	seeds := []string{
		"",
		"var x = 1;",
		`print "hello" + "world";`,
		"fun add(a, b) { return a + b; }",
		"for (var i = 0; i < 10; i = i + 1) print i;",
		"class Bagel { eat() { print this; } }",
		"// comment\n!*+-/=<> <= == != \"str\" 123 123.456",
	}

	for _, seed := range seeds {
		f.Add(seed)
	}

	// Property: the scanner never panics or loops indefinitely, fuzz
	// by default will catch both of these
	f.Fuzz(func(t *testing.T, src string) {
		scanner := scanner.New("fuzz", []byte(src), nil)

		for {
			tok := scanner.Scan()

			// Property: positions are valid byte offsets into src
			test.True(t, tok.Start >= 0, test.Context("token start position (%d) was negative", tok.Start))
			test.True(t, tok.End >= tok.Start, test.Context("token %s had invalid start and end positions", tok))
			test.True(t, tok.End <= len(src), test.Context("token %s ends beyond the input", tok))

			if tok.Is(token.EOF, token.Error) {
				break
			}
		}
	})
}

func BenchmarkScanner(b *testing.B) {
	src := []byte(`
// A classic
fun fib(n) {
	if (n < 2) return n;
	return fib(n - 2) + fib(n - 1);
}

class Greeter {
	greet() {
		return "Hello, " + this.name + "!";
	}
}

var greeter = Greeter();
greeter.name = "World";

for (var i = 0; i < 10; i = i + 1) {
	print fib(i);
}

print greeter.greet();
`)

	for b.Loop() {
		s := scanner.New("bench", src, nil)

		for {
			tok := s.Scan()
			if tok.Is(token.EOF, token.Error) {
				break
			}
		}
	}
}

// drain collects the entire token stream including the terminal EOF or
// Error token.
func drain(s *scanner.Scanner) []token.Token {
	var tokens []token.Token

	for {
		tok := s.Scan()

		tokens = append(tokens, tok)
		if tok.Is(token.EOF, token.Error) {
			return tokens
		}
	}
}

// testFailHandler returns a [syntax.ErrorHandler] that handles syntax errors
// by failing the enclosing test.
func testFailHandler(tb testing.TB) syntax.ErrorHandler {
	tb.Helper()

	return func(pos syntax.Position, msg string) {
		tb.Errorf("%s: %s", pos, msg)
	}
}

// errorCollector is a helper struct that implements a [syntax.ErrorHandler] which
// simply collects the scanning errors internally to be inspected later.
type errorCollector struct {
	errs []string
	mu   sync.RWMutex
}

func (e *errorCollector) String() string {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var s strings.Builder

	for _, err := range e.errs {
		s.WriteString(err)
	}

	return s.String()
}

// handler returns the [syntax.ErrorHandler] to be plugged in to the scanner.
func (e *errorCollector) handler() syntax.ErrorHandler {
	return func(pos syntax.Position, msg string) {
		// The scanner calls the handler from its own goroutine
		e.mu.Lock()
		defer e.mu.Unlock()

		e.errs = append(e.errs, fmt.Sprintf("%s: %s\n", pos, msg))
	}
}
