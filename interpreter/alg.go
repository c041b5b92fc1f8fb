package interp

import "github.com/havrydotdev/lx/token"

// Visitor pattern doesn't really work in golang
// so we have to use object algebras
// https://www.cs.utexas.edu/%7Ewcook/Drafts/2012/ecoop2012.pdf
//
// E is for expression, S is for statement.
// Optional children are passed as pointers, nil when absent.
type Alg[E any, S any] interface {
	Literal(value any) E
	Grouping(expr E) E
	Variable(name token.Token) E
	Unary(op token.Token, right E) E
	Assign(name token.Token, value E) E
	Binary(op token.Token, left, right E) E
	Logical(op token.Token, left, right E) E
	Ternary(question token.Token, cond, then, _else E) E
	Call(callee E, paren token.Token, args []E) E

	Print(expr E) S
	Block(stmts []S) S
	While(cond E, body S) S
	ExprStatement(expr E) S
	If(cond E, then S, _else *S) S
	Var(name token.Token, init *E) S
	Return(keyword token.Token, value *E) S
	Function(name token.Token, params []token.Token, body []S) S
}
