// Package interpreter implements the Lox tree-walking interpreter.
//
// It executes a resolved syntax tree directly. Variable references that the
// resolver bound to a distance are read with exact environment hops, all
// other dynamism (truthiness, operator typing, property lookup, arity) is
// checked at the moment of evaluation and surfaces as a [RuntimeError].
package interpreter

import (
	"fmt"
	"io"
	"math"

	"go.followtheprocess.codes/lox/internal/syntax"
	"go.followtheprocess.codes/lox/internal/syntax/ast"
	"go.followtheprocess.codes/lox/internal/syntax/resolver"
	"go.followtheprocess.codes/lox/internal/syntax/token"
)

// RuntimeError is an error produced while evaluating a Lox program.
//
// Evaluation stops at the first runtime error, there is no recovery.
type RuntimeError struct {
	Msg      string          // A descriptive message explaining the error
	Position syntax.Position // The source position the error points to
}

// Error implements the error interface for a [RuntimeError].
func (r RuntimeError) Error() string {
	return r.Position.String() + ": " + r.Msg
}

// ctrlKind says how a statement completed.
type ctrlKind int

const (
	ctrlNormal ctrlKind = iota // Ran to completion
	ctrlBreak                  // A break statement fired, unwind to the nearest loop
	ctrlReturn                 // A return statement fired, unwind to the nearest call
)

// ctrl is a statement's completion signal, threaded up through block and
// loop execution rather than implemented with panics.
type ctrl struct {
	value Value // The return value, only set for ctrlReturn
	kind  ctrlKind
}

// Interpreter is the Lox interpreter.
//
// An Interpreter carries its global environment across calls to
// [Interpreter.Interpret], which is what lets a REPL accumulate state.
type Interpreter struct {
	stdout  io.Writer    // Destination for the print statement
	globals *environment // The global environment
	env     *environment // The environment currently in scope
	locals  resolver.Bindings
	name    string // Name of the file being interpreted
	src     []byte // Raw source text, for positioning runtime errors
}

// New returns a new [Interpreter] writing program output to stdout.
func New(name string, src []byte, stdout io.Writer) *Interpreter {
	globals := newEnvironment(nil)

	return &Interpreter{
		stdout:  stdout,
		globals: globals,
		env:     globals,
		locals:  make(resolver.Bindings),
		name:    name,
		src:     src,
	}
}

// Bind merges the resolver's computed bindings into the interpreter.
//
// Merging rather than replacing matters for the REPL, where each line is
// resolved separately but earlier definitions stay live.
func (i *Interpreter) Bind(bindings resolver.Bindings) {
	for expr, distance := range bindings {
		i.locals[expr] = distance
	}
}

// SetSource points the interpreter at a new compile unit for error
// reporting, used by the REPL as each line arrives.
func (i *Interpreter) SetSource(name string, src []byte) {
	i.name = name
	i.src = src
}

// Interpret executes a resolved program, returning the first runtime error
// if there is one.
func (i *Interpreter) Interpret(statements []ast.Statement) error {
	for _, statement := range statements {
		// The resolver guarantees break and return can't unwind out of
		// top level code, so the control signal here is always normal
		if _, err := i.execute(statement); err != nil {
			return err
		}
	}

	return nil
}

// text returns the chunk of source text described by the given token.
func (i *Interpreter) text(tok token.Token) string {
	return string(i.src[tok.Start:tok.End])
}

// errorf creates a [RuntimeError] pointing at the given token.
func (i *Interpreter) errorf(tok token.Token, format string, a ...any) error {
	return RuntimeError{
		Msg:      fmt.Sprintf(format, a...),
		Position: syntax.PositionOf(i.name, i.src, tok.Start, tok.End),
	}
}

// execute runs a single statement, returning how it completed.
func (i *Interpreter) execute(statement ast.Statement) (ctrl, error) {
	switch stmt := statement.(type) {
	case *ast.ExpressionStmt:
		if _, err := i.eval(stmt.Expr); err != nil {
			return ctrl{}, err
		}
	case *ast.PrintStmt:
		value, err := i.eval(stmt.Expr)
		if err != nil {
			return ctrl{}, err
		}

		fmt.Fprintln(i.stdout, Stringify(value))
	case *ast.VarStmt:
		var value Value

		if stmt.Initializer != nil {
			var err error

			value, err = i.eval(stmt.Initializer)
			if err != nil {
				return ctrl{}, err
			}
		}

		i.env.define(stmt.Name, value)
	case *ast.BlockStmt:
		return i.executeBlock(stmt.Statements, newEnvironment(i.env))
	case *ast.IfStmt:
		condition, err := i.eval(stmt.Condition)
		if err != nil {
			return ctrl{}, err
		}

		if truthy(condition) {
			return i.execute(stmt.Then)
		}

		if stmt.Else != nil {
			return i.execute(stmt.Else)
		}
	case *ast.WhileStmt:
		for {
			condition, err := i.eval(stmt.Condition)
			if err != nil {
				return ctrl{}, err
			}

			if !truthy(condition) {
				break
			}

			result, err := i.execute(stmt.Body)
			if err != nil {
				return ctrl{}, err
			}

			if result.kind == ctrlBreak {
				break
			}

			if result.kind == ctrlReturn {
				return result, nil
			}
		}
	case *ast.BreakStmt:
		return ctrl{kind: ctrlBreak}, nil
	case *ast.ReturnStmt:
		var value Value

		if stmt.Value != nil {
			var err error

			value, err = i.eval(stmt.Value)
			if err != nil {
				return ctrl{}, err
			}
		}

		return ctrl{kind: ctrlReturn, value: value}, nil
	case *ast.FunctionStmt:
		i.env.define(stmt.Name, &Function{
			declaration: stmt.Literal,
			closure:     i.env,
			name:        stmt.Name,
			unit:        i.name,
			src:         i.src,
		})
	case *ast.ClassStmt:
		// Define the name first so methods may refer to their own class
		i.env.define(stmt.Name, nil)

		methods := make(map[string]*Function, len(stmt.Methods))
		for _, method := range stmt.Methods {
			methods[method.Name] = &Function{
				declaration: method.Literal,
				closure:     i.env,
				name:        method.Name,
				unit:        i.name,
				src:         i.src,
			}
		}

		i.env.define(stmt.Name, &Class{methods: methods, name: stmt.Name})
	default:
		panic(fmt.Sprintf("unhandled statement node: %T", statement)) // Unreachable
	}

	return ctrl{}, nil
}

// executeBlock runs statements in the given environment, restoring the
// previous environment afterwards. The first non-normal completion or
// error stops the block and propagates.
func (i *Interpreter) executeBlock(statements []ast.Statement, env *environment) (ctrl, error) {
	previous := i.env
	i.env = env

	defer func() {
		i.env = previous
	}()

	for _, statement := range statements {
		result, err := i.execute(statement)
		if err != nil {
			return ctrl{}, err
		}

		if result.kind != ctrlNormal {
			return result, nil
		}
	}

	return ctrl{}, nil
}

// eval evaluates a single expression.
func (i *Interpreter) eval(expression ast.Expression) (Value, error) {
	switch expr := expression.(type) {
	case *ast.Literal:
		return expr.Value, nil
	case *ast.Grouping:
		return i.eval(expr.Expr)
	case *ast.Unary:
		return i.evalUnary(expr)
	case *ast.Binary:
		return i.evalBinary(expr)
	case *ast.Logical:
		return i.evalLogical(expr)
	case *ast.Variable:
		return i.lookupVariable(expr.Name, expr.Token, expr)
	case *ast.Assign:
		return i.evalAssign(expr)
	case *ast.Call:
		return i.evalCall(expr)
	case *ast.Get:
		return i.evalGet(expr)
	case *ast.Set:
		return i.evalSet(expr)
	case *ast.This:
		return i.lookupVariable("this", expr.Keyword, expr)
	case *ast.FunctionLiteral:
		return &Function{declaration: expr, closure: i.env, unit: i.name, src: i.src}, nil
	default:
		panic(fmt.Sprintf("unhandled expression node: %T", expression)) // Unreachable
	}
}

// lookupVariable reads a variable, using the resolver's distance when the
// reference was bound as a local and the global environment otherwise.
func (i *Interpreter) lookupVariable(name string, tok token.Token, expr ast.Expression) (Value, error) {
	if distance, ok := i.locals[expr]; ok {
		value, exists := i.env.getAt(distance, name)
		if !exists {
			return nil, i.errorf(tok, "undefined variable %q", name)
		}

		return value, nil
	}

	value, exists := i.globals.get(name)
	if !exists {
		return nil, i.errorf(tok, "undefined variable %q", name)
	}

	return value, nil
}

// evalUnary evaluates a prefix '!' or '-' expression.
func (i *Interpreter) evalUnary(expr *ast.Unary) (Value, error) {
	right, err := i.eval(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Kind {
	case token.Minus:
		number, ok := right.(float64)
		if !ok {
			return nil, i.errorf(expr.Op, "operand to %q must be a number, got %s", i.text(expr.Op), Stringify(right))
		}

		return -number, nil
	case token.Bang:
		return !truthy(right), nil
	default:
		panic("unhandled unary operator") // Unreachable, the parser only builds these two
	}
}

// evalBinary evaluates an infix binary expression, including the comma
// operator which evaluates both operands and yields the right one.
func (i *Interpreter) evalBinary(expr *ast.Binary) (Value, error) {
	left, err := i.eval(expr.Left)
	if err != nil {
		return nil, err
	}

	right, err := i.eval(expr.Right)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Kind {
	case token.Comma:
		return right, nil
	case token.EqEq:
		return valuesEqual(left, right), nil
	case token.BangEq:
		return !valuesEqual(left, right), nil
	case token.Plus:
		// '+' is overloaded: numeric addition or string concatenation
		if leftNum, ok := left.(float64); ok {
			if rightNum, ok := right.(float64); ok {
				return leftNum + rightNum, nil
			}
		}

		if leftStr, ok := left.(string); ok {
			if rightStr, ok := right.(string); ok {
				return leftStr + rightStr, nil
			}
		}

		return nil, i.errorf(
			expr.Op,
			"operands to %q must be two numbers or two strings, got %s and %s",
			i.text(expr.Op),
			Stringify(left),
			Stringify(right),
		)
	default:
		leftNum, leftOk := left.(float64)
		rightNum, rightOk := right.(float64)

		if !leftOk || !rightOk {
			return nil, i.errorf(
				expr.Op,
				"operands to %q must be numbers, got %s and %s",
				i.text(expr.Op),
				Stringify(left),
				Stringify(right),
			)
		}

		switch expr.Op.Kind {
		case token.Minus:
			return leftNum - rightNum, nil
		case token.Slash:
			return leftNum / rightNum, nil
		case token.Star:
			return leftNum * rightNum, nil
		case token.Greater:
			return leftNum > rightNum, nil
		case token.GreaterEq:
			return leftNum >= rightNum, nil
		case token.Less:
			return leftNum < rightNum, nil
		case token.LessEq:
			return leftNum <= rightNum, nil
		default:
			panic("unhandled binary operator") // Unreachable
		}
	}
}

// evalLogical evaluates a short-circuiting 'and'/'or' expression.
//
// The result is whichever operand decided it, not a coerced boolean, so
// 'nil or "fallback"' yields "fallback".
func (i *Interpreter) evalLogical(expr *ast.Logical) (Value, error) {
	left, err := i.eval(expr.Left)
	if err != nil {
		return nil, err
	}

	if expr.Op.Kind == token.Or {
		if truthy(left) {
			return left, nil
		}
	} else {
		if !truthy(left) {
			return left, nil
		}
	}

	return i.eval(expr.Right)
}

// evalAssign evaluates an assignment to a bare variable, yielding the
// assigned value.
func (i *Interpreter) evalAssign(expr *ast.Assign) (Value, error) {
	value, err := i.eval(expr.Value)
	if err != nil {
		return nil, err
	}

	if distance, ok := i.locals[expr]; ok {
		if !i.env.assignAt(distance, expr.Name, value) {
			return nil, i.errorf(expr.Token, "undefined variable %q", expr.Name)
		}

		return value, nil
	}

	if !i.globals.assign(expr.Name, value) {
		return nil, i.errorf(expr.Token, "undefined variable %q", expr.Name)
	}

	return value, nil
}

// evalCall evaluates a call expression: callee first, then each argument
// in order, then the invocation itself.
func (i *Interpreter) evalCall(expr *ast.Call) (Value, error) {
	callee, err := i.eval(expr.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, 0, len(expr.Args))

	for _, arg := range expr.Args {
		value, err := i.eval(arg)
		if err != nil {
			return nil, err
		}

		args = append(args, value)
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, i.errorf(expr.RParen, "can only call functions and classes, got %s", Stringify(callee))
	}

	if len(args) != callable.Arity() {
		return nil, i.errorf(expr.RParen, "expected %d arguments but got %d", callable.Arity(), len(args))
	}

	return callable.Call(i, args)
}

// evalGet evaluates a property read.
func (i *Interpreter) evalGet(expr *ast.Get) (Value, error) {
	object, err := i.eval(expr.Object)
	if err != nil {
		return nil, err
	}

	instance, ok := object.(*Instance)
	if !ok {
		return nil, i.errorf(expr.Token, "only instances have properties, got %s", Stringify(object))
	}

	value, exists := instance.get(expr.Name)
	if !exists {
		return nil, i.errorf(expr.Token, "undefined property %q", expr.Name)
	}

	return value, nil
}

// evalSet evaluates a property write, yielding the assigned value.
//
// The object evaluates before the value, matching left to right source
// order.
func (i *Interpreter) evalSet(expr *ast.Set) (Value, error) {
	object, err := i.eval(expr.Object)
	if err != nil {
		return nil, err
	}

	instance, ok := object.(*Instance)
	if !ok {
		return nil, i.errorf(expr.Token, "only instances have fields, got %s", Stringify(object))
	}

	value, err := i.eval(expr.Value)
	if err != nil {
		return nil, err
	}

	instance.set(expr.Name, value)

	return value, nil
}

// valuesEqual implements Lox equality.
//
// Numbers compare as values, not per IEEE 754, so NaN is equal to itself
// and '0/0 == 0/0' is true. Everything else uses Go equality, object types
// compare by identity.
func valuesEqual(left, right Value) bool {
	if leftNum, ok := left.(float64); ok {
		rightNum, ok := right.(float64)
		if !ok {
			return false
		}

		if math.IsNaN(leftNum) && math.IsNaN(rightNum) {
			return true
		}

		return leftNum == rightNum
	}

	return left == right
}

// truthy reports whether a value counts as true in a condition: false and
// nil are falsy, every other value including 0 and "" is truthy.
func truthy(value Value) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	default:
		return true
	}
}
