package ast

import "go.followtheprocess.codes/lox/internal/syntax/token"

// Literal is a literal value expression: a number, string, boolean or nil.
type Literal struct {
	// Value is the materialised Go value: float64, string, bool or nil.
	Value any

	// Token is the literal token.
	Token token.Token
}

// Start returns the literal token.
func (l *Literal) Start() token.Token { return l.Token }

// End also returns the literal token.
func (l *Literal) End() token.Token { return l.Token }

func (l *Literal) expressionNode() {}

// Grouping is a parenthesised expression.
type Grouping struct {
	// Expr is the inner expression.
	Expr Expression

	// LParen and RParen are the enclosing parentheses.
	LParen token.Token
	RParen token.Token
}

// Start returns the opening '('.
func (g *Grouping) Start() token.Token { return g.LParen }

// End returns the closing ')'.
func (g *Grouping) End() token.Token { return g.RParen }

func (g *Grouping) expressionNode() {}

// Unary is a prefix expression, '!' or '-'.
type Unary struct {
	// Right is the operand.
	Right Expression

	// Op is the operator token.
	Op token.Token
}

// Start returns the operator token.
func (u *Unary) Start() token.Token { return u.Op }

// End returns the last token of the operand.
func (u *Unary) End() token.Token { return u.Right.End() }

func (u *Unary) expressionNode() {}

// Binary is an infix expression over two operands, including the comma
// operator which evaluates both and yields the right.
type Binary struct {
	// Left and Right are the operands.
	Left  Expression
	Right Expression

	// Op is the operator token.
	Op token.Token
}

// Start returns the first token of the left operand.
func (b *Binary) Start() token.Token { return b.Left.Start() }

// End returns the last token of the right operand.
func (b *Binary) End() token.Token { return b.Right.End() }

func (b *Binary) expressionNode() {}

// Logical is a short-circuiting 'and'/'or' expression.
//
// It is distinct from [Binary] because the right operand must not be
// evaluated when the left already determines the result.
type Logical struct {
	// Left and Right are the operands.
	Left  Expression
	Right Expression

	// Op is the 'and' or 'or' token.
	Op token.Token
}

// Start returns the first token of the left operand.
func (l *Logical) Start() token.Token { return l.Left.Start() }

// End returns the last token of the right operand.
func (l *Logical) End() token.Token { return l.Right.End() }

func (l *Logical) expressionNode() {}

// Variable is a named variable reference.
type Variable struct {
	// Name is the variable's name.
	Name string

	// Token is the [token.Ident] token.
	Token token.Token
}

// Start returns the ident token.
func (v *Variable) Start() token.Token { return v.Token }

// End also returns the ident token.
func (v *Variable) End() token.Token { return v.Token }

func (v *Variable) expressionNode() {}

// Assign is an assignment to a bare variable, 'x = value'.
//
// Assignments to properties are a [Set] expression instead.
type Assign struct {
	// Value is the expression being assigned.
	Value Expression

	// Name is the target variable's name.
	Name string

	// Token is the target's [token.Ident] token.
	Token token.Token
}

// Start returns the target ident token.
func (a *Assign) Start() token.Token { return a.Token }

// End returns the last token of the assigned value.
func (a *Assign) End() token.Token { return a.Value.End() }

func (a *Assign) expressionNode() {}

// Call is a function or class call expression.
type Call struct {
	// Callee is the expression being called.
	Callee Expression

	// Args are the call arguments, in order.
	Args []Expression

	// RParen is the closing ')', kept for error reporting against
	// the call as a whole.
	RParen token.Token
}

// Start returns the first token of the callee.
func (c *Call) Start() token.Token { return c.Callee.Start() }

// End returns the closing ')'.
func (c *Call) End() token.Token { return c.RParen }

func (c *Call) expressionNode() {}

// Get is a property read, 'object.name'.
type Get struct {
	// Object is the expression whose property is read.
	Object Expression

	// Name is the property name.
	Name string

	// Token is the property's [token.Ident] token.
	Token token.Token
}

// Start returns the first token of the object.
func (g *Get) Start() token.Token { return g.Object.Start() }

// End returns the property name token.
func (g *Get) End() token.Token { return g.Token }

func (g *Get) expressionNode() {}

// Set is a property write, 'object.name = value'.
type Set struct {
	// Object is the expression whose property is written.
	Object Expression

	// Value is the expression being assigned.
	Value Expression

	// Name is the property name.
	Name string

	// Token is the property's [token.Ident] token.
	Token token.Token
}

// Start returns the first token of the object.
func (s *Set) Start() token.Token { return s.Object.Start() }

// End returns the last token of the assigned value.
func (s *Set) End() token.Token { return s.Value.End() }

func (s *Set) expressionNode() {}

// This is the 'this' expression, valid only inside method bodies where it
// resolves like any other lexical variable.
type This struct {
	// Keyword is the 'this' token.
	Keyword token.Token
}

// Start returns the 'this' token.
func (t *This) Start() token.Token { return t.Keyword }

// End also returns the 'this' token.
func (t *This) End() token.Token { return t.Keyword }

func (t *This) expressionNode() {}

// Param is a single function parameter.
type Param struct {
	// Name is the parameter name.
	Name string

	// Token is the parameter's [token.Ident] token.
	Token token.Token
}

// FunctionLiteral is an anonymous function expression.
//
// Named function declarations and class methods wrap the same node in a
// [FunctionStmt], the parameter and body grammar is shared.
type FunctionLiteral struct {
	// Params are the declared parameters, in order.
	Params []Param

	// Body is the ordered function body.
	Body []Statement

	// Fun is the 'fun' keyword token. For methods, which omit the
	// keyword, it is the method name token.
	Fun token.Token

	// RBrace is the '}' closing the body.
	RBrace token.Token
}

// Start returns the 'fun' keyword.
func (f *FunctionLiteral) Start() token.Token { return f.Fun }

// End returns the '}' closing the body.
func (f *FunctionLiteral) End() token.Token { return f.RBrace }

func (f *FunctionLiteral) expressionNode() {}
