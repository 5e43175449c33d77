// Package parser implements the Lox parser.
//
// The parser is a hand written recursive descent parser with precedence
// climbing for expressions. Syntax errors are reported to the installed
// [syntax.ErrorHandler] and the parser then resynchronises at the next
// statement boundary, so a single pass surfaces as many errors as possible.
package parser

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"go.followtheprocess.codes/lox/internal/syntax"
	"go.followtheprocess.codes/lox/internal/syntax/ast"
	"go.followtheprocess.codes/lox/internal/syntax/scanner"
	"go.followtheprocess.codes/lox/internal/syntax/token"
)

// maxArgs is the maximum number of arguments (and parameters) a call may have.
//
// Exceeding it is a reported diagnostic, not a hard stop.
const maxArgs = 255

// ErrParse is a generic parsing error, details on the error are passed
// to the parser's [syntax.ErrorHandler] at the moment it occurs.
var ErrParse = errors.New("parse error")

// Parser is the Lox parser.
type Parser struct {
	handler     syntax.ErrorHandler // The installed error handler, to be called in response to parse errors
	scanner     *scanner.Scanner    // Scanner to produce tokens
	name        string              // Name of the file being parsed
	src         []byte              // Raw source text
	prev        token.Token         // The most recently consumed token
	current     token.Token         // Current token under inspection
	next        token.Token         // Next token in the stream
	interactive bool                // Treat a trailing expression as an implicit print (REPL mode)
	hadErrors   bool                // Whether we encountered parse errors
}

// New initialises and returns a new [Parser] that reads from r.
//
// The handler is shared with the scanner so that lexical and syntax errors
// arrive at the same sink.
func New(name string, r io.Reader, handler syntax.ErrorHandler) (*Parser, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read from input: %w", err)
	}

	p := &Parser{
		handler: handler,
		scanner: scanner.New(name, src, handler),
		name:    name,
		src:     src,
	}

	// Read 2 tokens so current and next are set
	p.advance()
	p.advance()

	return p, nil
}

// Parse parses the input to completion, returning the statements and any
// parsing errors.
//
// The returned error simply signifies whether or not there were parse errors,
// the installed error handler passed to [New] has the full detail and should
// be preferred. A program that produced any error must not be run.
func (p *Parser) Parse() ([]ast.Statement, error) {
	var statements []ast.Statement

	for !p.current.Is(token.EOF) {
		if p.current.Is(token.Error) {
			// The scanner hit something unrecoverable and has already
			// reported it through the handler
			p.hadErrors = true
			p.advance()

			continue
		}

		statement, err := p.declaration()
		if err != nil {
			p.synchronise()
			continue
		}

		if statement != nil {
			statements = append(statements, statement)
		}
	}

	if p.hadErrors {
		return statements, ErrParse
	}

	return statements, nil
}

// ParseInteractive is [Parser.Parse] for the REPL: a single trailing
// expression statement without a terminating ';' is wrapped in an
// implicit print so that 'lox> 1 + 2' shows its result.
func (p *Parser) ParseInteractive() ([]ast.Statement, error) {
	p.interactive = true
	return p.Parse()
}

// advance advances the parser by a single token.
func (p *Parser) advance() {
	p.prev = p.current
	p.current = p.next
	p.next = p.scanner.Scan()
}

// match reports whether the current token is any of the given kinds,
// consuming it and returning it if so.
func (p *Parser) match(kinds ...token.Kind) (token.Token, bool) {
	if p.current.Is(kinds...) {
		tok := p.current
		p.advance()

		return tok, true
	}

	return token.Token{}, false
}

// check reports whether the current token is the given kind, without
// consuming anything.
func (p *Parser) check(kind token.Kind) bool {
	return p.current.Is(kind)
}

// expect asserts that the current token is the given kind, consuming and
// returning it if so. Otherwise a syntax error with the given message is
// reported and [ErrParse] returned.
func (p *Parser) expect(kind token.Kind, msg string) (token.Token, error) {
	if p.current.Is(kind) {
		tok := p.current
		p.advance()

		return tok, nil
	}

	p.error(p.current, msg)

	return token.Token{}, ErrParse
}

// text returns the chunk of source text described by the given token.
func (p *Parser) text(tok token.Token) string {
	return string(p.src[tok.Start:tok.End])
}

// error reports a parse error at the given token through the installed handler.
func (p *Parser) error(tok token.Token, msg string) {
	p.hadErrors = true

	if p.handler == nil {
		return
	}

	p.handler(syntax.PositionOf(p.name, p.src, tok.Start, tok.End), msg)
}

// errorf calls error with a formatted message.
func (p *Parser) errorf(tok token.Token, format string, a ...any) {
	p.error(tok, fmt.Sprintf(format, a...))
}

// synchronise is called during error recovery, after a parse error we are
// unsure of the local state as the syntax is invalid.
//
// synchronise discards tokens until it has just consumed a ';' or sees a
// token that begins a new declaration or statement, after which point the
// parser should be back in sync and can continue normally.
func (p *Parser) synchronise() {
	p.advance()

	for !p.current.Is(token.EOF) {
		if p.prev.Is(token.Semicolon) {
			return
		}

		if p.current.Is(
			token.Class,
			token.Fun,
			token.Var,
			token.For,
			token.If,
			token.While,
			token.Print,
			token.Return,
			token.Break,
		) {
			return
		}

		p.advance()
	}
}

// declaration parses a declaration: a var, function or class declaration,
// or any other statement.
func (p *Parser) declaration() (ast.Statement, error) {
	if keyword, ok := p.match(token.Var); ok {
		return p.varDeclaration(keyword)
	}

	// 'fun' followed by a name is a declaration, a bare 'fun' begins an
	// anonymous function expression and is left for primary to pick up
	if p.check(token.Fun) && p.next.Is(token.Ident) {
		p.advance()
		return p.funDeclaration(p.prev)
	}

	if keyword, ok := p.match(token.Class); ok {
		return p.classDeclaration(keyword)
	}

	return p.statement()
}

// varDeclaration parses a variable declaration, the 'var' keyword has
// already been consumed.
func (p *Parser) varDeclaration(keyword token.Token) (ast.Statement, error) {
	name, err := p.expect(token.Ident, "expected variable name")
	if err != nil {
		return nil, err
	}

	var initializer ast.Expression

	if _, ok := p.match(token.Eq); ok {
		initializer, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.Semicolon, "expected ';' after variable declaration"); err != nil {
		return nil, err
	}

	return &ast.VarStmt{
		Initializer: initializer,
		Name:        p.text(name),
		Token:       name,
		Keyword:     keyword,
	}, nil
}

// funDeclaration parses a named function declaration, the 'fun' keyword
// has already been consumed.
func (p *Parser) funDeclaration(keyword token.Token) (ast.Statement, error) {
	name, err := p.expect(token.Ident, "expected function name")
	if err != nil {
		return nil, err
	}

	literal, err := p.functionLiteral(keyword, "function")
	if err != nil {
		return nil, err
	}

	return &ast.FunctionStmt{
		Literal: literal,
		Name:    p.text(name),
		Token:   name,
	}, nil
}

// classDeclaration parses a class declaration, the 'class' keyword has
// already been consumed.
func (p *Parser) classDeclaration(keyword token.Token) (ast.Statement, error) {
	name, err := p.expect(token.Ident, "expected class name")
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LeftBrace, "expected '{' before class body"); err != nil {
		return nil, err
	}

	var methods []*ast.FunctionStmt

	for !p.check(token.RightBrace) && !p.check(token.EOF) {
		// Methods look just like function declarations minus the 'fun'
		methodName, err := p.expect(token.Ident, "expected method name")
		if err != nil {
			return nil, err
		}

		literal, err := p.functionLiteral(methodName, "method")
		if err != nil {
			return nil, err
		}

		methods = append(methods, &ast.FunctionStmt{
			Literal: literal,
			Name:    p.text(methodName),
			Token:   methodName,
		})
	}

	rbrace, err := p.expect(token.RightBrace, "expected '}' after class body")
	if err != nil {
		return nil, err
	}

	return &ast.ClassStmt{
		Methods: methods,
		Name:    p.text(name),
		Token:   name,
		Keyword: keyword,
		RBrace:  rbrace,
	}, nil
}

// functionLiteral parses the parameter list and body shared by named
// function declarations, methods and anonymous function expressions.
//
// kind is "function" or "method" and is used only in error messages.
func (p *Parser) functionLiteral(fun token.Token, kind string) (*ast.FunctionLiteral, error) {
	if _, err := p.expect(token.LeftParen, "expected '(' after "+kind+" name"); err != nil {
		return nil, err
	}

	var params []ast.Param

	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArgs {
				// Reported but deliberately not fatal, parsing continues
				p.errorf(p.current, "can't have more than %d parameters", maxArgs)
			}

			param, err := p.expect(token.Ident, "expected parameter name")
			if err != nil {
				return nil, err
			}

			params = append(params, ast.Param{Name: p.text(param), Token: param})

			if _, ok := p.match(token.Comma); !ok {
				break
			}
		}
	}

	if _, err := p.expect(token.RightParen, "expected ')' after parameters"); err != nil {
		return nil, err
	}

	if _, err := p.expect(token.LeftBrace, "expected '{' before "+kind+" body"); err != nil {
		return nil, err
	}

	body, rbrace, err := p.blockStatements()
	if err != nil {
		return nil, err
	}

	return &ast.FunctionLiteral{
		Params: params,
		Body:   body,
		Fun:    fun,
		RBrace: rbrace,
	}, nil
}

// statement parses a single statement.
func (p *Parser) statement() (ast.Statement, error) {
	if keyword, ok := p.match(token.For); ok {
		return p.forStatement(keyword)
	}

	if keyword, ok := p.match(token.If); ok {
		return p.ifStatement(keyword)
	}

	if keyword, ok := p.match(token.Print); ok {
		return p.printStatement(keyword)
	}

	if keyword, ok := p.match(token.While); ok {
		return p.whileStatement(keyword)
	}

	if keyword, ok := p.match(token.Return); ok {
		return p.returnStatement(keyword)
	}

	if keyword, ok := p.match(token.Break); ok {
		return p.breakStatement(keyword)
	}

	if lbrace, ok := p.match(token.LeftBrace); ok {
		statements, rbrace, err := p.blockStatements()
		if err != nil {
			return nil, err
		}

		return &ast.BlockStmt{Statements: statements, LBrace: lbrace, RBrace: rbrace}, nil
	}

	return p.expressionStatement()
}

// blockStatements parses statements up to the closing '}', which has
// already been opened. Returns the statements and the closing brace.
func (p *Parser) blockStatements() (statements []ast.Statement, rbrace token.Token, err error) {
	for !p.check(token.RightBrace) && !p.check(token.EOF) {
		statement, err := p.declaration()
		if err != nil {
			return nil, token.Token{}, err
		}

		statements = append(statements, statement)
	}

	rbrace, err = p.expect(token.RightBrace, "expected '}' after block")
	if err != nil {
		return nil, token.Token{}, err
	}

	return statements, rbrace, nil
}

// forStatement parses a 'for' loop, desugaring it into a while loop: the
// initializer (if any) goes in a wrapping block, the increment (if any) is
// appended to the loop body in another block, and a missing condition
// defaults to true. No for node exists in the tree.
//
// Note that because the initializer block is created once, the loop variable
// lives in a single environment shared by every iteration; closures created
// in the body all observe the same, final value.
func (p *Parser) forStatement(keyword token.Token) (ast.Statement, error) {
	if _, err := p.expect(token.LeftParen, "expected '(' after 'for'"); err != nil {
		return nil, err
	}

	var initializer ast.Statement

	var err error

	if _, ok := p.match(token.Semicolon); !ok {
		if varKeyword, ok := p.match(token.Var); ok {
			initializer, err = p.varDeclaration(varKeyword)
		} else {
			initializer, err = p.expressionStatement()
		}

		if err != nil {
			return nil, err
		}
	}

	var condition ast.Expression

	if !p.check(token.Semicolon) {
		condition, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.Semicolon, "expected ';' after loop condition"); err != nil {
		return nil, err
	}

	var increment ast.Expression

	if !p.check(token.RightParen) {
		increment, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	rparen, err := p.expect(token.RightParen, "expected ')' after for clauses")
	if err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	if increment != nil {
		body = &ast.BlockStmt{
			Statements: []ast.Statement{body, &ast.ExpressionStmt{Expr: increment}},
			LBrace:     keyword,
			RBrace:     body.End(),
		}
	}

	if condition == nil {
		condition = &ast.Literal{Value: true, Token: rparen}
	}

	body = &ast.WhileStmt{Condition: condition, Body: body, Keyword: keyword}

	if initializer != nil {
		body = &ast.BlockStmt{
			Statements: []ast.Statement{initializer, body},
			LBrace:     keyword,
			RBrace:     body.End(),
		}
	}

	return body, nil
}

// ifStatement parses an if statement, the 'if' keyword has already
// been consumed.
func (p *Parser) ifStatement(keyword token.Token) (ast.Statement, error) {
	if _, err := p.expect(token.LeftParen, "expected '(' after 'if'"); err != nil {
		return nil, err
	}

	condition, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RightParen, "expected ')' after if condition"); err != nil {
		return nil, err
	}

	then, err := p.statement()
	if err != nil {
		return nil, err
	}

	var otherwise ast.Statement

	if _, ok := p.match(token.Else); ok {
		otherwise, err = p.statement()
		if err != nil {
			return nil, err
		}
	}

	return &ast.IfStmt{Condition: condition, Then: then, Else: otherwise, Keyword: keyword}, nil
}

// printStatement parses a print statement, the 'print' keyword has already
// been consumed.
func (p *Parser) printStatement(keyword token.Token) (ast.Statement, error) {
	value, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.Semicolon, "expected ';' after value"); err != nil {
		return nil, err
	}

	return &ast.PrintStmt{Expr: value, Keyword: keyword}, nil
}

// whileStatement parses a while loop, the 'while' keyword has already
// been consumed.
func (p *Parser) whileStatement(keyword token.Token) (ast.Statement, error) {
	if _, err := p.expect(token.LeftParen, "expected '(' after 'while'"); err != nil {
		return nil, err
	}

	condition, err := p.expression()
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(token.RightParen, "expected ')' after condition"); err != nil {
		return nil, err
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}

	return &ast.WhileStmt{Condition: condition, Body: body, Keyword: keyword}, nil
}

// returnStatement parses a return statement, the 'return' keyword has
// already been consumed. Whether the return is legal where it appears is
// the resolver's concern, not ours.
func (p *Parser) returnStatement(keyword token.Token) (ast.Statement, error) {
	var value ast.Expression

	var err error

	if !p.check(token.Semicolon) {
		value, err = p.expression()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(token.Semicolon, "expected ';' after return value"); err != nil {
		return nil, err
	}

	return &ast.ReturnStmt{Value: value, Keyword: keyword}, nil
}

// breakStatement parses a break statement, the 'break' keyword has already
// been consumed. Like return, legality is checked by the resolver.
func (p *Parser) breakStatement(keyword token.Token) (ast.Statement, error) {
	if _, err := p.expect(token.Semicolon, "expected ';' after 'break'"); err != nil {
		return nil, err
	}

	return &ast.BreakStmt{Keyword: keyword}, nil
}

// expressionStatement parses a bare expression statement.
//
// In interactive mode, a trailing expression at the very end of the input
// needs no ';' and becomes an implicit print.
func (p *Parser) expressionStatement() (ast.Statement, error) {
	expr, err := p.expression()
	if err != nil {
		return nil, err
	}

	if p.interactive && p.check(token.EOF) {
		return &ast.PrintStmt{Expr: expr, Keyword: expr.Start(), Implicit: true}, nil
	}

	if _, err := p.expect(token.Semicolon, "expected ';' after expression"); err != nil {
		return nil, err
	}

	return &ast.ExpressionStmt{Expr: expr}, nil
}

// expression parses an expression, starting at the lowest precedence level:
// the comma operator.
func (p *Parser) expression() (ast.Expression, error) {
	return p.comma()
}

// comma parses a comma expression, 'a, b' evaluates both and yields b.
func (p *Parser) comma() (ast.Expression, error) {
	expr, err := p.assignment()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := p.match(token.Comma)
		if !ok {
			break
		}

		right, err := p.assignment()
		if err != nil {
			return nil, err
		}

		expr = &ast.Binary{Left: expr, Right: right, Op: op}
	}

	return expr, nil
}

// assignment parses an assignment, which is right associative.
//
// Only two target shapes are legal: a bare variable and a property access.
// Anything else on the left of '=' is reported and recovered, the right hand
// side stands in for the whole expression.
func (p *Parser) assignment() (ast.Expression, error) {
	expr, err := p.or()
	if err != nil {
		return nil, err
	}

	if eq, ok := p.match(token.Eq); ok {
		value, err := p.assignment()
		if err != nil {
			return nil, err
		}

		switch target := expr.(type) {
		case *ast.Variable:
			return &ast.Assign{Value: value, Name: target.Name, Token: target.Token}, nil
		case *ast.Get:
			return &ast.Set{
				Object: target.Object,
				Value:  value,
				Name:   target.Name,
				Token:  target.Token,
			}, nil
		default:
			// Report and carry on, the unit won't be run
			p.error(eq, "invalid assignment target")
		}
	}

	return expr, nil
}

// or parses a short-circuiting 'or' expression.
func (p *Parser) or() (ast.Expression, error) {
	expr, err := p.and()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := p.match(token.Or)
		if !ok {
			break
		}

		right, err := p.and()
		if err != nil {
			return nil, err
		}

		expr = &ast.Logical{Left: expr, Right: right, Op: op}
	}

	return expr, nil
}

// and parses a short-circuiting 'and' expression.
func (p *Parser) and() (ast.Expression, error) {
	expr, err := p.equality()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := p.match(token.And)
		if !ok {
			break
		}

		right, err := p.equality()
		if err != nil {
			return nil, err
		}

		expr = &ast.Logical{Left: expr, Right: right, Op: op}
	}

	return expr, nil
}

// equality parses '==' and '!=' expressions.
func (p *Parser) equality() (ast.Expression, error) {
	expr, err := p.comparison()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := p.match(token.BangEq, token.EqEq)
		if !ok {
			break
		}

		right, err := p.comparison()
		if err != nil {
			return nil, err
		}

		expr = &ast.Binary{Left: expr, Right: right, Op: op}
	}

	return expr, nil
}

// comparison parses '>', '>=', '<' and '<=' expressions.
func (p *Parser) comparison() (ast.Expression, error) {
	expr, err := p.term()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := p.match(token.Greater, token.GreaterEq, token.Less, token.LessEq)
		if !ok {
			break
		}

		right, err := p.term()
		if err != nil {
			return nil, err
		}

		expr = &ast.Binary{Left: expr, Right: right, Op: op}
	}

	return expr, nil
}

// term parses '+' and '-' expressions.
func (p *Parser) term() (ast.Expression, error) {
	expr, err := p.factor()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := p.match(token.Minus, token.Plus)
		if !ok {
			break
		}

		right, err := p.factor()
		if err != nil {
			return nil, err
		}

		expr = &ast.Binary{Left: expr, Right: right, Op: op}
	}

	return expr, nil
}

// factor parses '*' and '/' expressions.
func (p *Parser) factor() (ast.Expression, error) {
	expr, err := p.unary()
	if err != nil {
		return nil, err
	}

	for {
		op, ok := p.match(token.Slash, token.Star)
		if !ok {
			break
		}

		right, err := p.unary()
		if err != nil {
			return nil, err
		}

		expr = &ast.Binary{Left: expr, Right: right, Op: op}
	}

	return expr, nil
}

// unary parses prefix '!' and '-' expressions.
func (p *Parser) unary() (ast.Expression, error) {
	if op, ok := p.match(token.Bang, token.Minus); ok {
		right, err := p.unary()
		if err != nil {
			return nil, err
		}

		return &ast.Unary{Right: right, Op: op}, nil
	}

	return p.call()
}

// call parses call and property access expressions, which share a
// precedence level: 'a.b(c).d'.
func (p *Parser) call() (ast.Expression, error) {
	expr, err := p.primary()
	if err != nil {
		return nil, err
	}

	for {
		if _, ok := p.match(token.LeftParen); ok {
			expr, err = p.finishCall(expr)
			if err != nil {
				return nil, err
			}

			continue
		}

		if _, ok := p.match(token.Dot); ok {
			name, err := p.expect(token.Ident, "expected property name after '.'")
			if err != nil {
				return nil, err
			}

			expr = &ast.Get{Object: expr, Name: p.text(name), Token: name}

			continue
		}

		break
	}

	return expr, nil
}

// finishCall parses the argument list of a call, the '(' has already been
// consumed.
//
// Arguments parse at assignment level so the comma operator can't swallow
// the argument separators.
func (p *Parser) finishCall(callee ast.Expression) (ast.Expression, error) {
	var args []ast.Expression

	if !p.check(token.RightParen) {
		for {
			if len(args) >= maxArgs {
				// Reported but deliberately not fatal, parsing continues
				p.errorf(p.current, "can't have more than %d arguments", maxArgs)
			}

			arg, err := p.assignment()
			if err != nil {
				return nil, err
			}

			args = append(args, arg)

			if _, ok := p.match(token.Comma); !ok {
				break
			}
		}
	}

	rparen, err := p.expect(token.RightParen, "expected ')' after arguments")
	if err != nil {
		return nil, err
	}

	return &ast.Call{Callee: callee, Args: args, RParen: rparen}, nil
}

// primary parses a primary expression: literals, identifiers, groupings,
// 'this' and anonymous functions.
//
// It also detects binary operators appearing where an operand was expected
// ("missing left operand"), reports a dedicated diagnostic and recovers by
// parsing the remaining higher precedence production in its place.
func (p *Parser) primary() (ast.Expression, error) {
	if tok, ok := p.match(token.False); ok {
		return &ast.Literal{Value: false, Token: tok}, nil
	}

	if tok, ok := p.match(token.True); ok {
		return &ast.Literal{Value: true, Token: tok}, nil
	}

	if tok, ok := p.match(token.Nil); ok {
		return &ast.Literal{Value: nil, Token: tok}, nil
	}

	if tok, ok := p.match(token.Number); ok {
		value, err := strconv.ParseFloat(p.text(tok), 64)
		if err != nil {
			// The scanner only emits Number for valid decimal literals
			p.errorf(tok, "invalid number literal %q: %v", p.text(tok), err)
			return nil, ErrParse
		}

		return &ast.Literal{Value: value, Token: tok}, nil
	}

	if tok, ok := p.match(token.String); ok {
		// Trim the surrounding quotes
		return &ast.Literal{Value: string(p.src[tok.Start+1 : tok.End-1]), Token: tok}, nil
	}

	if tok, ok := p.match(token.Ident); ok {
		return &ast.Variable{Name: p.text(tok), Token: tok}, nil
	}

	if tok, ok := p.match(token.This); ok {
		return &ast.This{Keyword: tok}, nil
	}

	if tok, ok := p.match(token.Fun); ok {
		return p.functionLiteral(tok, "function")
	}

	if lparen, ok := p.match(token.LeftParen); ok {
		expr, err := p.expression()
		if err != nil {
			return nil, err
		}

		rparen, err := p.expect(token.RightParen, "expected ')' after expression")
		if err != nil {
			return nil, err
		}

		return &ast.Grouping{Expr: expr, LParen: lparen, RParen: rparen}, nil
	}

	// Error productions: a binary operator with nothing on its left
	if op, ok := p.match(token.BangEq, token.EqEq); ok {
		p.errorf(op, "missing left-hand operand for %q", p.text(op))
		return p.comparison()
	}

	if op, ok := p.match(token.Greater, token.GreaterEq, token.Less, token.LessEq); ok {
		p.errorf(op, "missing left-hand operand for %q", p.text(op))
		return p.term()
	}

	if op, ok := p.match(token.Plus); ok {
		p.errorf(op, "missing left-hand operand for %q", p.text(op))
		return p.factor()
	}

	if op, ok := p.match(token.Slash, token.Star); ok {
		p.errorf(op, "missing left-hand operand for %q", p.text(op))
		return p.unary()
	}

	p.error(p.current, "expected expression")

	return nil, ErrParse
}
