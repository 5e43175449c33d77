package ast

import "go.followtheprocess.codes/lox/internal/syntax/token"

// ExpressionStmt is an expression evaluated for its side effects,
// 'expression ;'.
type ExpressionStmt struct {
	// Expr is the inner expression.
	Expr Expression
}

// Start returns the first token of the inner expression.
func (e *ExpressionStmt) Start() token.Token { return e.Expr.Start() }

// End returns the last token of the inner expression.
func (e *ExpressionStmt) End() token.Token { return e.Expr.End() }

func (e *ExpressionStmt) statementNode() {}

// PrintStmt is a 'print expression ;' statement.
type PrintStmt struct {
	// Expr is the expression whose value is printed.
	Expr Expression

	// Keyword is the 'print' keyword token. For an implicit print
	// synthesised in interactive mode it is the expression's first token.
	Keyword token.Token

	// Implicit marks a print synthesised from a trailing REPL expression.
	Implicit bool
}

// Start returns the 'print' keyword.
func (p *PrintStmt) Start() token.Token { return p.Keyword }

// End returns the last token of the printed expression.
func (p *PrintStmt) End() token.Token { return p.Expr.End() }

func (p *PrintStmt) statementNode() {}

// VarStmt is a variable declaration, 'var name ( = initializer )? ;'.
type VarStmt struct {
	// Initializer is the optional initializer expression, nil when omitted.
	Initializer Expression

	// Name is the declared variable's name.
	Name string

	// Token is the declared variable's [token.Ident] token.
	Token token.Token

	// Keyword is the 'var' keyword token.
	Keyword token.Token
}

// Start returns the 'var' keyword.
func (v *VarStmt) Start() token.Token { return v.Keyword }

// End returns the last token of the initializer, or the name when there
// is no initializer.
func (v *VarStmt) End() token.Token {
	if v.Initializer != nil {
		return v.Initializer.End()
	}

	return v.Token
}

func (v *VarStmt) statementNode() {}

// BlockStmt is a braced block of statements introducing a new scope.
type BlockStmt struct {
	// Statements is the ordered list of statements in the block.
	Statements []Statement

	// LBrace and RBrace are the enclosing braces.
	LBrace token.Token
	RBrace token.Token
}

// Start returns the opening '{'.
func (b *BlockStmt) Start() token.Token { return b.LBrace }

// End returns the closing '}'.
func (b *BlockStmt) End() token.Token { return b.RBrace }

func (b *BlockStmt) statementNode() {}

// IfStmt is a conditional statement with an optional else branch.
type IfStmt struct {
	// Condition decides which branch executes, by truthiness.
	Condition Expression

	// Then executes when Condition is truthy.
	Then Statement

	// Else executes when Condition is falsy, nil when omitted.
	Else Statement

	// Keyword is the 'if' keyword token.
	Keyword token.Token
}

// Start returns the 'if' keyword.
func (i *IfStmt) Start() token.Token { return i.Keyword }

// End returns the last token of the else branch, or of the then branch
// when there is no else.
func (i *IfStmt) End() token.Token {
	if i.Else != nil {
		return i.Else.End()
	}

	return i.Then.End()
}

func (i *IfStmt) statementNode() {}

// WhileStmt is a while loop. 'for' loops desugar to this at parse time and
// never appear in the tree.
type WhileStmt struct {
	// Condition is re-checked before every iteration.
	Condition Expression

	// Body is the loop body.
	Body Statement

	// Keyword is the 'while' (or originating 'for') keyword token.
	Keyword token.Token
}

// Start returns the loop keyword.
func (w *WhileStmt) Start() token.Token { return w.Keyword }

// End returns the last token of the body.
func (w *WhileStmt) End() token.Token { return w.Body.End() }

func (w *WhileStmt) statementNode() {}

// BreakStmt terminates the nearest enclosing loop.
type BreakStmt struct {
	// Keyword is the 'break' keyword token.
	Keyword token.Token
}

// Start returns the 'break' keyword.
func (b *BreakStmt) Start() token.Token { return b.Keyword }

// End also returns the 'break' keyword.
func (b *BreakStmt) End() token.Token { return b.Keyword }

func (b *BreakStmt) statementNode() {}

// ReturnStmt returns from the nearest enclosing function or method.
type ReturnStmt struct {
	// Value is the optional return value expression, nil when omitted.
	Value Expression

	// Keyword is the 'return' keyword token.
	Keyword token.Token
}

// Start returns the 'return' keyword.
func (r *ReturnStmt) Start() token.Token { return r.Keyword }

// End returns the last token of the value, or the keyword when there
// is no value.
func (r *ReturnStmt) End() token.Token {
	if r.Value != nil {
		return r.Value.End()
	}

	return r.Keyword
}

func (r *ReturnStmt) statementNode() {}

// FunctionStmt is a named function declaration, or a method when it appears
// inside a [ClassStmt].
type FunctionStmt struct {
	// Literal is the shared function shape: parameters and body.
	Literal *FunctionLiteral

	// Name is the declared function's name.
	Name string

	// Token is the declared function's [token.Ident] token.
	Token token.Token
}

// Start returns the first token of the underlying function literal.
func (f *FunctionStmt) Start() token.Token { return f.Literal.Start() }

// End returns the last token of the underlying function literal.
func (f *FunctionStmt) End() token.Token { return f.Literal.End() }

func (f *FunctionStmt) statementNode() {}

// ClassStmt is a class declaration with its methods.
type ClassStmt struct {
	// Methods are the class's methods, in declaration order.
	Methods []*FunctionStmt

	// Name is the declared class's name.
	Name string

	// Token is the declared class's [token.Ident] token.
	Token token.Token

	// Keyword is the 'class' keyword token.
	Keyword token.Token

	// RBrace is the '}' closing the class body.
	RBrace token.Token
}

// Start returns the 'class' keyword.
func (c *ClassStmt) Start() token.Token { return c.Keyword }

// End returns the '}' closing the class body.
func (c *ClassStmt) End() token.Token { return c.RBrace }

func (c *ClassStmt) statementNode() {}
