package ast

import (
	interp "github.com/havrydotdev/lx/interpreter"
	"github.com/havrydotdev/lx/token"
)

// Builder is the algebra that produces the syntax tree.
type Builder struct{}

var _ interp.Alg[Expr, Stmt] = Builder{}

func NewBuilder() interp.Alg[Expr, Stmt] {
	return Builder{}
}

func (Builder) Literal(value any) Expr {
	return &Literal{Value: value}
}

func (Builder) Grouping(expr Expr) Expr {
	return &Grouping{Inner: expr}
}

func (Builder) Variable(name token.Token) Expr {
	return &Variable{Name: name}
}

func (Builder) Unary(op token.Token, right Expr) Expr {
	return &Unary{Op: op, Operand: right}
}

func (Builder) Assign(name token.Token, value Expr) Expr {
	return &Assign{Name: name, Value: value}
}

func (Builder) Binary(op token.Token, left, right Expr) Expr {
	return &Binary{Left: left, Op: op, Right: right}
}

func (Builder) Logical(op token.Token, left, right Expr) Expr {
	return &Logical{Left: left, Op: op, Right: right}
}

func (Builder) Ternary(question token.Token, cond, then, _else Expr) Expr {
	return &Ternary{Cond: cond, Question: question, Then: then, Else: _else}
}

func (Builder) Call(callee Expr, paren token.Token, args []Expr) Expr {
	return &Call{Callee: callee, Paren: paren, Args: args}
}

func (Builder) Print(expr Expr) Stmt {
	return &Print{Expr: expr}
}

func (Builder) Block(stmts []Stmt) Stmt {
	return &Block{Stmts: stmts}
}

func (Builder) While(cond Expr, body Stmt) Stmt {
	return &While{Cond: cond, Body: body}
}

func (Builder) ExprStatement(expr Expr) Stmt {
	return &Expression{Expr: expr}
}

func (Builder) If(cond Expr, then Stmt, _else *Stmt) Stmt {
	stmt := &If{Cond: cond, Then: then}
	if _else != nil {
		stmt.Else = *_else
	}

	return stmt
}

func (Builder) Var(name token.Token, init *Expr) Stmt {
	stmt := &Var{Name: name}
	if init != nil {
		stmt.Init = *init
	}

	return stmt
}

func (Builder) Return(keyword token.Token, value *Expr) Stmt {
	stmt := &Return{Keyword: keyword}
	if value != nil {
		stmt.Value = *value
	}

	return stmt
}

func (Builder) Function(name token.Token, params []token.Token, body []Stmt) Stmt {
	return &Function{Name: name, Params: params, Body: body}
}
