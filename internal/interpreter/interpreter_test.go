package interpreter_test

import (
	"bytes"
	"strings"
	"testing"

	"go.followtheprocess.codes/lox/internal/interpreter"
	"go.followtheprocess.codes/lox/internal/syntax"
	"go.followtheprocess.codes/lox/internal/syntax/parser"
	"go.followtheprocess.codes/lox/internal/syntax/resolver"
	"go.followtheprocess.codes/test"
)

func TestInterpret(t *testing.T) {
	tests := []struct {
		name    string   // Name of the test case
		src     string   // Source text to run
		want    []string // Expected stdout, one entry per printed line
		wantErr string   // Substring of the expected runtime error, empty means success
	}{
		{
			name: "arithmetic",
			src:  "print 1 + 2 * 3 - 4 / 2;",
			want: []string{"5"},
		},
		{
			name: "integral numbers print without decimals",
			src:  "print 3.0;",
			want: []string{"3"},
		},
		{
			name: "fractional division",
			src:  "print 10 / 4;",
			want: []string{"2.5"},
		},
		{
			name: "string concatenation",
			src:  `print "Hello, " + "World!";`,
			want: []string{"Hello, World!"},
		},
		{
			name:    "plus with mixed operands",
			src:     `print 1 + "a";`,
			wantErr: `operands to "+" must be two numbers or two strings`,
		},
		{
			name:    "comparison with mixed operands",
			src:     `print 1 < "a";`,
			wantErr: `operands to "<" must be numbers`,
		},
		{
			name:    "negating a non number",
			src:     "print -true;",
			wantErr: `operand to "-" must be a number`,
		},
		{
			name: "comparisons",
			src:  "print 1 < 2;\nprint 2 <= 2;\nprint 3 > 4;\nprint 4 >= 4;",
			want: []string{"true", "true", "false", "true"},
		},
		{
			name: "equality",
			src: `print 1 == 1;
print nil == nil;
print 1 == "1";
print "a" != "b";`,
			want: []string{"true", "true", "false", "true"},
		},
		{
			name: "nan is equal to itself",
			src:  "print 0/0 == 0/0;\nprint 0/0 != 0/0;",
			want: []string{"true", "false"},
		},
		{
			name: "truthiness",
			src:  "print !nil;\nprint !false;\nprint !0;\nprint !\"\";",
			want: []string{"true", "true", "false", "false"},
		},
		{
			name: "logical operators yield the deciding operand",
			src: `print nil or "fallback";
print false and 1;
print 1 or 2;
print 1 and 2;`,
			want: []string{"fallback", "false", "1", "2"},
		},
		{
			name: "comma evaluates both and yields the right",
			src:  "var a = 1;\nprint (a = 2, a + 1);",
			want: []string{"3"},
		},
		{
			name: "assignment yields the value",
			src:  "var a = 1;\nprint a = 3;",
			want: []string{"3"},
		},
		{
			name:    "undefined variable",
			src:     "print missing;",
			wantErr: `undefined variable "missing"`,
		},
		{
			name:    "assignment to undefined variable",
			src:     "missing = 1;",
			wantErr: `undefined variable "missing"`,
		},
		{
			name: "uninitialised variable is nil",
			src:  "var a;\nprint a;",
			want: []string{"nil"},
		},
		{
			name: "block shadowing",
			src:  `var a = "global";` + "\n" + `{ var a = "local"; print a; }` + "\n" + "print a;",
			want: []string{"local", "global"},
		},
		{
			name: "if else",
			src:  "if (1 < 2) print \"yes\"; else print \"no\";\nif (1 > 2) print \"yes\"; else print \"no\";",
			want: []string{"yes", "no"},
		},
		{
			name: "while loop",
			src:  "var i = 0;\nwhile (i < 3) { print i; i = i + 1; }",
			want: []string{"0", "1", "2"},
		},
		{
			name: "for loop",
			src:  "for (var i = 0; i < 3; i = i + 1) print i;",
			want: []string{"0", "1", "2"},
		},
		{
			name: "for loop with empty clauses",
			src:  "for (;;) break;\nprint \"done\";",
			want: []string{"done"},
		},
		{
			name: "break unwinds nested blocks",
			src:  `while (true) { { break; } print "unreachable"; }` + "\n" + `print "done";`,
			want: []string{"done"},
		},
		{
			name: "break only exits the innermost loop",
			src: `for (var i = 0; i < 2; i = i + 1) {
	while (true) { break; }
	print i;
}`,
			want: []string{"0", "1"},
		},
		{
			name: "function call",
			src:  "fun add(a, b) { return a + b; }\nprint add(1, 2);",
			want: []string{"3"},
		},
		{
			name: "function without return yields nil",
			src:  "fun noop() {}\nprint noop();",
			want: []string{"nil"},
		},
		{
			name: "bare return yields nil",
			src:  "fun f() { return; }\nprint f();",
			want: []string{"nil"},
		},
		{
			name: "recursion",
			src:  "fun fib(n) { if (n < 2) return n; return fib(n - 2) + fib(n - 1); }\nprint fib(10);",
			want: []string{"55"},
		},
		{
			name: "closures keep state",
			src: `fun makeCounter() {
	var count = 0;
	fun increment() {
		count = count + 1;
		return count;
	}
	return increment;
}
var counter = makeCounter();
print counter();
print counter();`,
			want: []string{"1", "2"},
		},
		{
			name: "loop variable is shared by closures",
			src: `var captured;
for (var i = 0; i < 3; i = i + 1) {
	fun show() { print i; }
	captured = show;
}
captured();`,
			want: []string{"3"},
		},
		{
			name: "anonymous functions",
			src:  "var double = fun(x) { return x * 2; };\nprint double(21);",
			want: []string{"42"},
		},
		{
			name: "function values print by name",
			src:  "fun greet() {}\nvar anon = fun() {};\nprint greet;\nprint anon;",
			want: []string{"<fn greet>", "<fn>"},
		},
		{
			name:    "arity mismatch",
			src:     "fun f(a, b) { return a; }\nf(1);",
			wantErr: "expected 2 arguments but got 1",
		},
		{
			name:    "calling a non callable",
			src:     `"not a function"();`,
			wantErr: "can only call functions and classes",
		},
		{
			name: "class prints its name",
			src:  "class Bagel {}\nprint Bagel;",
			want: []string{"Bagel"},
		},
		{
			name: "instances print their class",
			src:  "class Bagel {}\nprint Bagel();",
			want: []string{"Bagel instance"},
		},
		{
			name:    "class calls take no arguments",
			src:     "class Bagel {}\nBagel(1);",
			wantErr: "expected 0 arguments but got 1",
		},
		{
			name: "fields",
			src:  "class Box {}\nvar box = Box();\nbox.value = 42;\nprint box.value;",
			want: []string{"42"},
		},
		{
			name: "field assignment yields the value",
			src:  "class Box {}\nvar box = Box();\nprint box.value = 1;",
			want: []string{"1"},
		},
		{
			name:    "undefined property",
			src:     "class Box {}\nvar box = Box();\nprint box.missing;",
			wantErr: `undefined property "missing"`,
		},
		{
			name:    "property read on non instance",
			src:     "var x = 1;\nprint x.field;",
			wantErr: "only instances have properties",
		},
		{
			name:    "property write on non instance",
			src:     "var x = 1;\nx.field = 2;",
			wantErr: "only instances have fields",
		},
		{
			name: "methods and this",
			src: `class Person {
	greet() {
		return "Hello, " + this.name;
	}
}
var person = Person();
person.name = "Alice";
print person.greet();`,
			want: []string{"Hello, Alice"},
		},
		{
			name: "extracted methods stay bound",
			src: `class Person {
	greet() {
		return "Hello, " + this.name;
	}
}
var person = Person();
person.name = "Alice";
var greet = person.greet;
print greet();`,
			want: []string{"Hello, Alice"},
		},
		{
			name: "separately bound methods share the instance",
			src: `class Counter {
	increment() {
		this.count = this.count + 1;
		return this.count;
	}
}
var counter = Counter();
counter.count = 0;
var first = counter.increment;
var second = counter.increment;
print first();
print second();`,
			want: []string{"1", "2"},
		},
		{
			name: "fields shadow methods",
			src: `class Thing {
	describe() { return "method"; }
}
var thing = Thing();
print thing.describe();
thing.describe = "field";
print thing.describe;`,
			want: []string{"method", "field"},
		},
		{
			name: "runtime error stops execution",
			src:  `print "before";` + "\n" + "print 1 + nil;\n" + `print "after";`,
			want: []string{"before"},
			// Nothing after the failing statement runs
			wantErr: `operands to "+" must be two numbers or two strings`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := interpret(t, tt.src)

			if tt.wantErr != "" {
				test.Err(t, err, test.Context("expected a runtime error"))
				test.True(
					t,
					strings.Contains(err.Error(), tt.wantErr),
					test.Context("error %q missing %q", err.Error(), tt.wantErr),
				)
			} else {
				test.Ok(t, err)
			}

			want := ""
			if len(tt.want) > 0 {
				want = strings.Join(tt.want, "\n") + "\n"
			}

			test.Diff(t, got, want)
		})
	}
}

func TestReplStateAccumulates(t *testing.T) {
	stdout := &bytes.Buffer{}
	interp := interpreter.New("repl", nil, stdout)

	lines := []string{
		"var x = 1;",
		"fun double(n) { return n * 2; }",
		"print double(x + 1);",
	}

	for _, line := range lines {
		src := []byte(line)

		p, err := parser.New("repl", bytes.NewReader(src), testFailHandler(t))
		test.Ok(t, err)

		statements, err := p.ParseInteractive()
		test.Ok(t, err)

		bindings, err := resolver.New("repl", src, testFailHandler(t)).Resolve(statements)
		test.Ok(t, err)

		interp.SetSource("repl", src)
		interp.Bind(bindings)

		test.Ok(t, interp.Interpret(statements))
	}

	test.Equal(t, stdout.String(), "4\n")
}

func TestRuntimeErrorInEarlierUnit(t *testing.T) {
	// A function declared on one line of a session can fail while a later,
	// shorter line is the current compile unit. The error must point into
	// the declaring unit's source, not index into the current one.
	stdout := &bytes.Buffer{}
	interp := interpreter.New("first", nil, stdout)

	units := []struct {
		name string
		src  string
	}{
		{name: "first", src: "fun f() { return 1 + nil; }"},
		{name: "second", src: "f();"},
	}

	var err error

	for _, unit := range units {
		src := []byte(unit.src)

		p, perr := parser.New(unit.name, bytes.NewReader(src), testFailHandler(t))
		test.Ok(t, perr)

		statements, perr := p.ParseInteractive()
		test.Ok(t, perr)

		bindings, perr := resolver.New(unit.name, src, testFailHandler(t)).Resolve(statements)
		test.Ok(t, perr)

		interp.SetSource(unit.name, src)
		interp.Bind(bindings)

		err = interp.Interpret(statements)
	}

	test.Err(t, err, test.Context("expected the call on the second line to fail"))

	runtimeErr, ok := err.(interpreter.RuntimeError)
	test.True(t, ok, test.Context("expected a RuntimeError, got %T", err))

	test.True(
		t,
		strings.Contains(runtimeErr.Msg, `operands to "+" must be two numbers or two strings`),
		test.Context("error %q reported the wrong operator text", runtimeErr.Msg),
	)

	test.Equal(t, runtimeErr.Position.Name, "first")
	test.Equal(t, runtimeErr.Position.Line, 1)
	test.Equal(t, runtimeErr.Position.StartCol, 20)
}

func TestRuntimeErrorPosition(t *testing.T) {
	src := "var a = 1;\nprint a + nil;"

	_, err := interpret(t, src)
	test.Err(t, err)

	runtimeErr, ok := err.(interpreter.RuntimeError)
	test.True(t, ok, test.Context("expected a RuntimeError, got %T", err))

	test.Equal(t, runtimeErr.Position.Line, 2)
	test.Equal(t, runtimeErr.Position.Name, t.Name())
}

// interpret runs the whole pipeline over src, returning everything printed
// to stdout and the first runtime error. Static errors fail the test.
func interpret(t *testing.T, src string) (string, error) {
	t.Helper()

	source := []byte(src)

	p, err := parser.New(t.Name(), bytes.NewReader(source), testFailHandler(t))
	test.Ok(t, err)

	statements, err := p.Parse()
	test.Ok(t, err)

	bindings, err := resolver.New(t.Name(), source, testFailHandler(t)).Resolve(statements)
	test.Ok(t, err)

	stdout := &bytes.Buffer{}

	interp := interpreter.New(t.Name(), source, stdout)
	interp.Bind(bindings)

	err = interp.Interpret(statements)

	return stdout.String(), err
}

// testFailHandler returns a [syntax.ErrorHandler] that handles errors by
// failing the enclosing test.
func testFailHandler(tb testing.TB) syntax.ErrorHandler {
	tb.Helper()

	return func(pos syntax.Position, msg string) {
		tb.Errorf("%s: %s", pos, msg)
	}
}
