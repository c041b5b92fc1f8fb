// Package ast holds the immutable syntax tree the parser produces and the
// evaluator walks. Expr and Stmt are closed: only the node types in this
// package implement them.
package ast

import "github.com/havrydotdev/lx/token"

type Expr interface {
	expr()
}

type Stmt interface {
	stmt()
}

// Literal holds nil, bool, float64 or string.
type Literal struct {
	Value any
}

type Grouping struct {
	Inner Expr
}

type Unary struct {
	Op      token.Token
	Operand Expr
}

type Binary struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

// Logical is "and"/"or". Right is only evaluated when Left doesn't decide
// the result.
type Logical struct {
	Left  Expr
	Op    token.Token
	Right Expr
}

type Ternary struct {
	Cond     Expr
	Question token.Token
	Then     Expr
	Else     Expr
}

type Variable struct {
	Name token.Token
}

type Assign struct {
	Name  token.Token
	Value Expr
}

// Call keeps the closing paren for error locations.
type Call struct {
	Callee Expr
	Paren  token.Token
	Args   []Expr
}

func (*Literal) expr()  {}
func (*Grouping) expr() {}
func (*Unary) expr()    {}
func (*Binary) expr()   {}
func (*Logical) expr()  {}
func (*Ternary) expr()  {}
func (*Variable) expr() {}
func (*Assign) expr()   {}
func (*Call) expr()     {}

type Expression struct {
	Expr Expr
}

type Print struct {
	Expr Expr
}

// Var binds Name to Init, or to nil when Init is nil.
type Var struct {
	Name token.Token
	Init Expr
}

type Block struct {
	Stmts []Stmt
}

type If struct {
	Cond Expr
	Then Stmt
	Else Stmt
}

type While struct {
	Cond Expr
	Body Stmt
}

// Function is the template a closure is created from each time the
// declaration is executed.
type Function struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

type Return struct {
	Keyword token.Token
	Value   Expr
}

func (*Expression) stmt() {}
func (*Print) stmt()      {}
func (*Var) stmt()        {}
func (*Block) stmt()      {}
func (*If) stmt()         {}
func (*While) stmt()      {}
func (*Function) stmt()   {}
func (*Return) stmt()     {}
