// Package resolver implements the Lox static resolver.
//
// The resolver walks the parsed syntax tree once, tracking lexical scopes,
// and computes for every local variable reference the number of environments
// between the reference and its declaration. The interpreter uses these
// distances for constant time variable access, and the same pass is where
// purely static errors live: reading a variable in its own initializer,
// redeclaration in the same scope, return at the top level, break outside
// a loop and unused locals.
package resolver

import (
	"errors"
	"fmt"

	"go.followtheprocess.codes/lox/internal/syntax"
	"go.followtheprocess.codes/lox/internal/syntax/ast"
	"go.followtheprocess.codes/lox/internal/syntax/token"
)

// ErrResolve is a generic resolution error, details on the error are passed
// to the resolver's [syntax.ErrorHandler] at the moment it occurs.
var ErrResolve = errors.New("resolve error")

// Bindings maps a variable reference to the number of environments between
// its use and the scope that declares it.
//
// References with no entry are globals, resolved dynamically at runtime.
// The map is keyed on node identity, which is why ast nodes are pointers.
type Bindings map[ast.Expression]int

// state tracks where a variable is in its lifecycle within a scope.
type state int

const (
	declared state = iota // Name is claimed but the initializer hasn't finished
	defined               // Initializer complete, the variable is usable
	used                  // The variable has been read at least once
)

// kind categorises what sort of binding a scope entry is, only plain 'var'
// declarations participate in the unused variable diagnostic.
type kind int

const (
	kindVar kind = iota
	kindParam
	kindFunction
	kindClass
	kindThis
)

// functionType tracks what kind of function body, if any, the resolver is
// currently inside.
type functionType int

const (
	functionNone   functionType = iota // Top level code
	functionNormal                     // A function or anonymous function
	functionMethod                     // A method on a class
)

// classType tracks whether the resolver is currently inside a class body.
type classType int

const (
	classNone classType = iota
	classClass
)

// variable is a single scope entry.
type variable struct {
	name  string      // The declared name
	token token.Token // The token it was declared at, for diagnostics
	state state       // Where it is in the declared -> defined -> used lifecycle
	kind  kind        // What sort of binding it is
}

// scope is a single lexical scope, names map to their entries.
type scope map[string]*variable

// Resolver is the Lox static resolver.
type Resolver struct {
	handler         syntax.ErrorHandler // The installed error handler, called in response to resolution errors
	bindings        Bindings            // The distance table under construction
	name            string              // Name of the file being resolved
	src             []byte              // Raw source text, for positioning diagnostics
	scopes          []scope             // Stack of lexical scopes, innermost last. Globals are not tracked
	currentFunction functionType        // What kind of function body we're in, if any
	currentClass    classType           // Whether we're inside a class body
	loopDepth       int                 // Number of enclosing loops in the current function
	hadErrors       bool                // Whether we encountered resolution errors
}

// New returns a new [Resolver].
func New(name string, src []byte, handler syntax.ErrorHandler) *Resolver {
	return &Resolver{
		handler:  handler,
		bindings: make(Bindings),
		name:     name,
		src:      src,
	}
}

// Resolve resolves a parsed program, returning the computed [Bindings] and
// any resolution errors.
//
// As with the parser, the returned error simply signifies whether or not
// there were errors, the installed handler has the detail. A program that
// produced any error must not be run.
func (r *Resolver) Resolve(statements []ast.Statement) (Bindings, error) {
	for _, statement := range statements {
		r.statement(statement)
	}

	if r.hadErrors {
		return r.bindings, ErrResolve
	}

	return r.bindings, nil
}

// error reports a resolution error at the given token through the
// installed handler.
func (r *Resolver) error(tok token.Token, msg string) {
	r.hadErrors = true

	if r.handler == nil {
		return
	}

	r.handler(syntax.PositionOf(r.name, r.src, tok.Start, tok.End), msg)
}

// errorf calls error with a formatted message.
func (r *Resolver) errorf(tok token.Token, format string, a ...any) {
	r.error(tok, fmt.Sprintf(format, a...))
}

// beginScope pushes a fresh lexical scope.
func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(scope))
}

// endScope pops the innermost scope, reporting any 'var' declarations that
// were never read. Assignments alone don't count as a use.
func (r *Resolver) endScope() {
	top := r.scopes[len(r.scopes)-1]
	r.scopes = r.scopes[:len(r.scopes)-1]

	for _, v := range top {
		if v.kind == kindVar && v.state != used {
			r.errorf(v.token, "local variable %q is declared but never used", v.name)
		}
	}
}

// declare claims a name in the innermost scope without yet making it
// usable, so that the initializer can't read the variable it's initialising.
//
// Does nothing at the top level, globals may be freely redeclared.
func (r *Resolver) declare(name string, tok token.Token, k kind) {
	if len(r.scopes) == 0 {
		return
	}

	top := r.scopes[len(r.scopes)-1]

	if _, exists := top[name]; exists {
		r.errorf(tok, "variable %q is already declared in this scope", name)
		return
	}

	top[name] = &variable{name: name, token: tok, state: declared, kind: k}
}

// define marks a declared name as fully initialised and usable.
func (r *Resolver) define(name string) {
	if len(r.scopes) == 0 {
		return
	}

	if v, exists := r.scopes[len(r.scopes)-1][name]; exists {
		v.state = defined
	}
}

// resolveLocal searches the scope stack innermost first for name, recording
// the distance from the current scope to the declaring one against expr.
//
// isRead distinguishes reads from writes, only reads mark the variable as
// used. If the name is in no scope it's assumed global and no binding is
// recorded.
func (r *Resolver) resolveLocal(expr ast.Expression, name string, isRead bool) {
	for depth := len(r.scopes) - 1; depth >= 0; depth-- {
		if v, exists := r.scopes[depth][name]; exists {
			r.bindings[expr] = len(r.scopes) - 1 - depth

			if isRead && v.state == defined {
				v.state = used
			}

			return
		}
	}
}

// statement resolves a single statement.
func (r *Resolver) statement(statement ast.Statement) {
	switch stmt := statement.(type) {
	case *ast.BlockStmt:
		r.beginScope()

		for _, inner := range stmt.Statements {
			r.statement(inner)
		}

		r.endScope()
	case *ast.VarStmt:
		r.declare(stmt.Name, stmt.Token, kindVar)

		if stmt.Initializer != nil {
			r.expression(stmt.Initializer)
		}

		r.define(stmt.Name)
	case *ast.FunctionStmt:
		// Declare and define eagerly so the function may recurse
		r.declare(stmt.Name, stmt.Token, kindFunction)
		r.define(stmt.Name)

		r.function(stmt.Literal, functionNormal)
	case *ast.ClassStmt:
		r.class(stmt)
	case *ast.ExpressionStmt:
		r.expression(stmt.Expr)
	case *ast.PrintStmt:
		r.expression(stmt.Expr)
	case *ast.IfStmt:
		r.expression(stmt.Condition)
		r.statement(stmt.Then)

		if stmt.Else != nil {
			r.statement(stmt.Else)
		}
	case *ast.WhileStmt:
		r.expression(stmt.Condition)

		r.loopDepth++
		r.statement(stmt.Body)
		r.loopDepth--
	case *ast.BreakStmt:
		if r.loopDepth == 0 {
			r.error(stmt.Keyword, "'break' outside of a loop")
		}
	case *ast.ReturnStmt:
		if r.currentFunction == functionNone {
			r.error(stmt.Keyword, "can't return from top-level code")
		}

		if stmt.Value != nil {
			r.expression(stmt.Value)
		}
	default:
		panic(fmt.Sprintf("unhandled statement node: %T", statement)) // Unreachable
	}
}

// expression resolves a single expression.
func (r *Resolver) expression(expression ast.Expression) {
	switch expr := expression.(type) {
	case *ast.Literal:
		// Nothing to resolve
	case *ast.Grouping:
		r.expression(expr.Expr)
	case *ast.Unary:
		r.expression(expr.Right)
	case *ast.Binary:
		r.expression(expr.Left)
		r.expression(expr.Right)
	case *ast.Logical:
		r.expression(expr.Left)
		r.expression(expr.Right)
	case *ast.Variable:
		// Reading a variable whose own initializer hasn't finished is the
		// classic 'var a = a;' error
		if len(r.scopes) > 0 {
			if v, exists := r.scopes[len(r.scopes)-1][expr.Name]; exists && v.state == declared {
				r.errorf(expr.Token, "can't read local variable %q in its own initializer", expr.Name)
			}
		}

		r.resolveLocal(expr, expr.Name, true)
	case *ast.Assign:
		r.expression(expr.Value)
		r.resolveLocal(expr, expr.Name, false)
	case *ast.Call:
		r.expression(expr.Callee)

		for _, arg := range expr.Args {
			r.expression(arg)
		}
	case *ast.Get:
		// Properties are looked up dynamically, only the object resolves
		r.expression(expr.Object)
	case *ast.Set:
		r.expression(expr.Value)
		r.expression(expr.Object)
	case *ast.This:
		if r.currentClass == classNone {
			r.error(expr.Keyword, "can't use 'this' outside of a class")
			return
		}

		r.resolveLocal(expr, "this", true)
	case *ast.FunctionLiteral:
		r.function(expr, functionNormal)
	default:
		panic(fmt.Sprintf("unhandled expression node: %T", expression)) // Unreachable
	}
}

// function resolves a function body of the given type.
//
// The loop depth resets for the duration, a break inside a function may not
// terminate a loop outside it.
func (r *Resolver) function(literal *ast.FunctionLiteral, fnType functionType) {
	enclosingFunction := r.currentFunction
	enclosingLoopDepth := r.loopDepth

	r.currentFunction = fnType
	r.loopDepth = 0

	r.beginScope()

	for _, param := range literal.Params {
		r.declare(param.Name, param.Token, kindParam)
		r.define(param.Name)
	}

	for _, statement := range literal.Body {
		r.statement(statement)
	}

	r.endScope()

	r.currentFunction = enclosingFunction
	r.loopDepth = enclosingLoopDepth
}

// class resolves a class declaration.
//
// Method bodies resolve inside a synthesised scope containing "this", which
// mirrors the environment the interpreter creates when binding a method to
// an instance, so the computed distances line up at runtime.
func (r *Resolver) class(stmt *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = classClass

	r.declare(stmt.Name, stmt.Token, kindClass)
	r.define(stmt.Name)

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = &variable{
		name:  "this",
		token: stmt.Token,
		state: used,
		kind:  kindThis,
	}

	for _, method := range stmt.Methods {
		r.function(method.Literal, functionMethod)
	}

	r.endScope()

	r.currentClass = enclosingClass
}
