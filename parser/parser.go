package parser

import (
	"fmt"
	"slices"

	interp "github.com/havrydotdev/lx/interpreter"
	"github.com/havrydotdev/lx/token"
)

const maxArgs = 255

// Error is a syntax error at Token.
type Error struct {
	Token   token.Token
	Message string
}

// Where renders the error location the way diagnostics show it.
func (e *Error) Where() string {
	if e.Token.Kind == token.Eof {
		return " at end"
	}

	return fmt.Sprintf(" at '%s'", e.Token.Lexeme)
}

func (e *Error) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Token.Line, e.Where(), e.Message)
}

type Parser[E any, S any] struct {
	current int
	errors  []error
	tokens  []token.Token
	alg     interp.Alg[E, S]
}

func New[E any, S any](tokens []token.Token, alg interp.Alg[E, S]) *Parser[E, S] {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.Eof {
		line := 1
		if len(tokens) > 0 {
			line = tokens[len(tokens)-1].Line
		}

		tokens = append(slices.Clip(tokens), token.New(token.Eof, "", nil, line))
	}

	return &Parser[E, S]{tokens: tokens, alg: alg}
}

// Parse never stops at the first error: a declaration that fails is
// dropped and parsing resumes at the next statement boundary.
func (p *Parser[E, S]) Parse() ([]S, []error) {
	var stmts []S
	for !p.isAtEnd() {
		if stmt, ok := p.declaration(); ok {
			stmts = append(stmts, stmt)
		}
	}

	return stmts, p.errors
}

// ParseExpression parses a single expression followed by the end of input.
func (p *Parser[E, S]) ParseExpression() (E, []error) {
	expr, err := p.expression()
	if err == nil && !p.isAtEnd() {
		err = p.fail(p.peek(), "Expect end of expression.")
	}

	if err != nil {
		p.errors = append(p.errors, err)
	}

	return expr, p.errors
}

func (p *Parser[E, S]) declaration() (S, bool) {
	stmt, err := p.tryDeclaration()
	if err != nil {
		p.errors = append(p.errors, err)
		p.synchronize()

		var zero S
		return zero, false
	}

	return stmt, true
}

func (p *Parser[E, S]) tryDeclaration() (S, error) {
	switch {
	case p.match(token.Fun):
		return p.function("function")
	case p.match(token.Var):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser[E, S]) function(kind string) (S, error) {
	var zero S

	name, err := p.consume(token.Identifier, fmt.Sprintf("Expect %s name.", kind))
	if err != nil {
		return zero, err
	}

	if _, err := p.consume(token.LeftParen, fmt.Sprintf("Expect '(' after %s name.", kind)); err != nil {
		return zero, err
	}

	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArgs {
				p.report(p.peek(), fmt.Sprintf("Can't have more than %d parameters.", maxArgs))
			}

			param, err := p.consume(token.Identifier, "Expect parameter name.")
			if err != nil {
				return zero, err
			}

			params = append(params, param)

			if !p.match(token.Comma) {
				break
			}
		}
	}

	if _, err := p.consume(token.RightParen, "Expect ')' after parameters."); err != nil {
		return zero, err
	}

	if _, err := p.consume(token.LeftBrace, fmt.Sprintf("Expect '{' before %s body.", kind)); err != nil {
		return zero, err
	}

	body, err := p.block()
	if err != nil {
		return zero, err
	}

	return p.alg.Function(name, params, body), nil
}

func (p *Parser[E, S]) varDeclaration() (S, error) {
	var zero S

	name, err := p.consume(token.Identifier, "Expect variable name.")
	if err != nil {
		return zero, err
	}

	var init *E
	if p.match(token.Equal) {
		expr, err := p.expression()
		if err != nil {
			return zero, err
		}

		init = &expr
	}

	if _, err := p.consume(token.Semicolon, "Expect ';' after variable declaration."); err != nil {
		return zero, err
	}

	return p.alg.Var(name, init), nil
}

func (p *Parser[E, S]) statement() (S, error) {
	switch {
	case p.match(token.For):
		return p.forStatement()
	case p.match(token.If):
		return p.ifStatement()
	case p.match(token.Print):
		return p.printStatement()
	case p.match(token.Return):
		return p.returnStatement()
	case p.match(token.While):
		return p.whileStatement()
	case p.match(token.LeftBrace):
		stmts, err := p.block()
		if err != nil {
			var zero S
			return zero, err
		}

		return p.alg.Block(stmts), nil
	default:
		return p.expressionStatement()
	}
}

func (p *Parser[E, S]) printStatement() (S, error) {
	var zero S

	value, err := p.expression()
	if err != nil {
		return zero, err
	}

	if _, err := p.consume(token.Semicolon, "Expect ';' after value."); err != nil {
		return zero, err
	}

	return p.alg.Print(value), nil
}

func (p *Parser[E, S]) returnStatement() (S, error) {
	var zero S
	keyword := p.previous()

	var value *E
	if !p.check(token.Semicolon) {
		expr, err := p.expression()
		if err != nil {
			return zero, err
		}

		value = &expr
	}

	if _, err := p.consume(token.Semicolon, "Expect ';' after return value."); err != nil {
		return zero, err
	}

	return p.alg.Return(keyword, value), nil
}

// forStatement desugars into
//
//	{ init; while (cond) { body; incr; } }
//
// dropping the outer block when there is no initializer and the inner one
// when there is no increment.
func (p *Parser[E, S]) forStatement() (S, error) {
	var zero S

	if _, err := p.consume(token.LeftParen, "Expect '(' after 'for'."); err != nil {
		return zero, err
	}

	var init *S
	switch {
	case p.match(token.Semicolon):
	case p.match(token.Var):
		stmt, err := p.varDeclaration()
		if err != nil {
			return zero, err
		}

		init = &stmt
	default:
		stmt, err := p.expressionStatement()
		if err != nil {
			return zero, err
		}

		init = &stmt
	}

	cond := p.alg.Literal(true)
	if !p.check(token.Semicolon) {
		expr, err := p.expression()
		if err != nil {
			return zero, err
		}

		cond = expr
	}

	if _, err := p.consume(token.Semicolon, "Expect ';' after loop condition."); err != nil {
		return zero, err
	}

	var incr *E
	if !p.check(token.RightParen) {
		expr, err := p.expression()
		if err != nil {
			return zero, err
		}

		incr = &expr
	}

	if _, err := p.consume(token.RightParen, "Expect ')' after for clauses."); err != nil {
		return zero, err
	}

	body, err := p.statement()
	if err != nil {
		return zero, err
	}

	if incr != nil {
		body = p.alg.Block([]S{body, p.alg.ExprStatement(*incr)})
	}

	body = p.alg.While(cond, body)

	if init != nil {
		body = p.alg.Block([]S{*init, body})
	}

	return body, nil
}

func (p *Parser[E, S]) whileStatement() (S, error) {
	var zero S

	if _, err := p.consume(token.LeftParen, "Expect '(' after 'while'."); err != nil {
		return zero, err
	}

	cond, err := p.expression()
	if err != nil {
		return zero, err
	}

	if _, err := p.consume(token.RightParen, "Expect ')' after while condition."); err != nil {
		return zero, err
	}

	body, err := p.statement()
	if err != nil {
		return zero, err
	}

	return p.alg.While(cond, body), nil
}

func (p *Parser[E, S]) ifStatement() (S, error) {
	var zero S

	if _, err := p.consume(token.LeftParen, "Expect '(' after 'if'."); err != nil {
		return zero, err
	}

	cond, err := p.expression()
	if err != nil {
		return zero, err
	}

	if _, err := p.consume(token.RightParen, "Expect ')' after if condition."); err != nil {
		return zero, err
	}

	then, err := p.statement()
	if err != nil {
		return zero, err
	}

	var _else *S
	if p.match(token.Else) {
		stmt, err := p.statement()
		if err != nil {
			return zero, err
		}

		_else = &stmt
	}

	return p.alg.If(cond, then, _else), nil
}

// block parses declarations up to and including the closing brace.
// Declarations inside recover on their own.
func (p *Parser[E, S]) block() ([]S, error) {
	var stmts []S
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		if stmt, ok := p.declaration(); ok {
			stmts = append(stmts, stmt)
		}
	}

	if _, err := p.consume(token.RightBrace, "Expect '}' after block."); err != nil {
		return nil, err
	}

	return stmts, nil
}

func (p *Parser[E, S]) expressionStatement() (S, error) {
	var zero S

	expr, err := p.expression()
	if err != nil {
		return zero, err
	}

	if _, err := p.consume(token.Semicolon, "Expect ';' after expression."); err != nil {
		return zero, err
	}

	return p.alg.ExprStatement(expr), nil
}

func (p *Parser[E, S]) expression() (E, error) {
	return p.assignment()
}

// assignment can't inspect E, so a bare variable target is recognized by
// its tokens: the left side consumed exactly one identifier.
func (p *Parser[E, S]) assignment() (E, error) {
	start := p.current

	expr, err := p.ternary()
	if err != nil {
		return expr, err
	}

	bare := p.current-start == 1 && p.tokens[start].Kind == token.Identifier

	if p.match(token.Equal) {
		equals := p.previous()

		value, err := p.assignment()
		if err != nil {
			return value, err
		}

		if bare {
			return p.alg.Assign(p.tokens[start], value), nil
		}

		p.report(equals, "Invalid assignment target.")
	}

	return expr, nil
}

func (p *Parser[E, S]) ternary() (E, error) {
	cond, err := p.or()
	if err != nil {
		return cond, err
	}

	if !p.match(token.Question) {
		return cond, nil
	}

	question := p.previous()

	then, err := p.ternary()
	if err != nil {
		return then, err
	}

	if _, err := p.consume(token.Colon, "Expect ':' after then branch of ternary expression."); err != nil {
		return then, err
	}

	_else, err := p.ternary()
	if err != nil {
		return _else, err
	}

	return p.alg.Ternary(question, cond, then, _else), nil
}

func (p *Parser[E, S]) or() (E, error) {
	return p.leftAssoc(p.and, p.alg.Logical, token.Or)
}

func (p *Parser[E, S]) and() (E, error) {
	return p.leftAssoc(p.equality, p.alg.Logical, token.And)
}

func (p *Parser[E, S]) equality() (E, error) {
	return p.leftAssoc(p.comparison, p.alg.Binary, token.BangEqual, token.EqualEqual)
}

func (p *Parser[E, S]) comparison() (E, error) {
	return p.leftAssoc(p.term, p.alg.Binary, token.Greater, token.GreaterEqual, token.Less, token.LessEqual)
}

func (p *Parser[E, S]) term() (E, error) {
	return p.leftAssoc(p.factor, p.alg.Binary, token.Minus, token.Plus)
}

func (p *Parser[E, S]) factor() (E, error) {
	return p.leftAssoc(p.unary, p.alg.Binary, token.Slash, token.Star)
}

// leftAssoc parses operand (op operand)* folding to the left.
func (p *Parser[E, S]) leftAssoc(
	operand func() (E, error),
	build func(op token.Token, left, right E) E,
	kinds ...token.Kind,
) (E, error) {
	expr, err := operand()
	if err != nil {
		return expr, err
	}

	for p.match(kinds...) {
		op := p.previous()

		right, err := operand()
		if err != nil {
			return right, err
		}

		expr = build(op, expr, right)
	}

	return expr, nil
}

func (p *Parser[E, S]) unary() (E, error) {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()

		right, err := p.unary()
		if err != nil {
			return right, err
		}

		return p.alg.Unary(op, right), nil
	}

	return p.call()
}

func (p *Parser[E, S]) call() (E, error) {
	expr, err := p.primary()
	if err != nil {
		return expr, err
	}

	for p.match(token.LeftParen) {
		expr, err = p.finishCall(expr)
		if err != nil {
			return expr, err
		}
	}

	return expr, nil
}

func (p *Parser[E, S]) finishCall(callee E) (E, error) {
	var args []E

	if !p.check(token.RightParen) {
		for {
			if len(args) >= maxArgs {
				p.report(p.peek(), fmt.Sprintf("Can't have more than %d arguments.", maxArgs))
			}

			expr, err := p.expression()
			if err != nil {
				return expr, err
			}

			args = append(args, expr)

			if !p.match(token.Comma) {
				break
			}
		}
	}

	paren, err := p.consume(token.RightParen, "Expect ')' after arguments.")
	if err != nil {
		return callee, err
	}

	return p.alg.Call(callee, paren, args), nil
}

func (p *Parser[E, S]) primary() (E, error) {
	switch {
	case p.match(token.False):
		return p.alg.Literal(false), nil
	case p.match(token.True):
		return p.alg.Literal(true), nil
	case p.match(token.Nil):
		return p.alg.Literal(nil), nil
	case p.match(token.Number, token.String):
		return p.alg.Literal(p.previous().Literal), nil
	case p.match(token.Identifier):
		return p.alg.Variable(p.previous()), nil
	case p.match(token.LeftParen):
		expr, err := p.expression()
		if err != nil {
			return expr, err
		}

		if _, err := p.consume(token.RightParen, "Expect ')' after expression."); err != nil {
			return expr, err
		}

		return p.alg.Grouping(expr), nil
	}

	var zero E
	return zero, p.fail(p.peek(), "Expect expression.")
}

// synchronize method moves cursor
// to the next statement
func (p *Parser[E, S]) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Kind == token.Semicolon {
			return
		}

		switch p.peek().Kind {
		case token.Class, token.For, token.Fun, token.If, token.Print, token.Return, token.Var, token.While:
			return
		}

		p.advance()
	}
}

// report records an error without unwinding.
func (p *Parser[E, S]) report(tok token.Token, message string) {
	p.errors = append(p.errors, p.fail(tok, message))
}

func (p *Parser[E, S]) fail(tok token.Token, message string) error {
	return &Error{Token: tok, Message: message}
}

func (p *Parser[E, S]) consume(kind token.Kind, message string) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}

	return token.NilV, p.fail(p.peek(), message)
}

func (p *Parser[E, S]) match(kinds ...token.Kind) bool {
	if slices.ContainsFunc(kinds, p.check) {
		p.advance()
		return true
	}

	return false
}

func (p *Parser[E, S]) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return false
	}

	return p.peek().Kind == kind
}

func (p *Parser[E, S]) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}

	return p.previous()
}

func (p *Parser[E, S]) isAtEnd() bool {
	return p.peek().Kind == token.Eof
}

func (p *Parser[E, S]) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser[E, S]) previous() token.Token {
	return p.tokens[p.current-1]
}
