// Package printer renders programs for debugging. Both printers are
// algebras, so the parser drives them directly without building a tree.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	interp "github.com/havrydotdev/lx/interpreter"
	"github.com/havrydotdev/lx/token"
)

type Printer interface {
	Print() string
}

// implements Printer
type PrintFunc func() string

func (fn PrintFunc) Print() string {
	return fn()
}

// Parens prints everything in a parenthesized prefix form:
//
//	1 + 2 * 3  =>  (+ 1 (* 2 3))
type Parens struct{}

var _ interp.Alg[Printer, Printer] = Parens{}

func NewParens() interp.Alg[Printer, Printer] {
	return Parens{}
}

func (Parens) Literal(value any) Printer {
	return PrintFunc(func() string {
		return literal(value)
	})
}

func (Parens) Grouping(expr Printer) Printer {
	return PrintFunc(func() string {
		return parenthesize("group", expr)
	})
}

func (Parens) Variable(name token.Token) Printer {
	return PrintFunc(func() string {
		return name.Lexeme
	})
}

func (Parens) Unary(op token.Token, right Printer) Printer {
	return PrintFunc(func() string {
		return parenthesize(op.Lexeme, right)
	})
}

func (Parens) Assign(name token.Token, value Printer) Printer {
	return PrintFunc(func() string {
		return parenthesize("= "+name.Lexeme, value)
	})
}

func (Parens) Binary(op token.Token, left, right Printer) Printer {
	return PrintFunc(func() string {
		return parenthesize(op.Lexeme, left, right)
	})
}

func (Parens) Logical(op token.Token, left, right Printer) Printer {
	return PrintFunc(func() string {
		return parenthesize(op.Lexeme, left, right)
	})
}

func (Parens) Ternary(_ token.Token, cond, then, _else Printer) Printer {
	return PrintFunc(func() string {
		return parenthesize("?:", cond, then, _else)
	})
}

func (Parens) Call(callee Printer, _ token.Token, args []Printer) Printer {
	return PrintFunc(func() string {
		return parenthesize("call "+callee.Print(), args...)
	})
}

func (Parens) Print(expr Printer) Printer {
	return PrintFunc(func() string {
		return parenthesize("print", expr)
	})
}

func (Parens) Block(stmts []Printer) Printer {
	return PrintFunc(func() string {
		return parenthesize("block", stmts...)
	})
}

func (Parens) While(cond Printer, body Printer) Printer {
	return PrintFunc(func() string {
		return parenthesize("while", cond, body)
	})
}

func (Parens) ExprStatement(expr Printer) Printer {
	return PrintFunc(func() string {
		return parenthesize(";", expr)
	})
}

func (Parens) If(cond Printer, then Printer, _else *Printer) Printer {
	return PrintFunc(func() string {
		if _else == nil {
			return parenthesize("if", cond, then)
		}

		return parenthesize("if", cond, then, *_else)
	})
}

func (Parens) Var(name token.Token, init *Printer) Printer {
	return PrintFunc(func() string {
		if init == nil {
			return parenthesize("var " + name.Lexeme)
		}

		return parenthesize("var "+name.Lexeme, *init)
	})
}

func (Parens) Return(_ token.Token, value *Printer) Printer {
	return PrintFunc(func() string {
		if value == nil {
			return parenthesize("return")
		}

		return parenthesize("return", *value)
	})
}

func (Parens) Function(name token.Token, params []token.Token, body []Printer) Printer {
	return PrintFunc(func() string {
		names := make([]string, len(params))
		for i, param := range params {
			names[i] = param.Lexeme
		}

		header := fmt.Sprintf("fun %s(%s)", name.Lexeme, strings.Join(names, " "))
		return parenthesize(header, body...)
	})
}

func literal(value any) string {
	switch value := value.(type) {
	case nil:
		return "nil"
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case string:
		return strconv.Quote(value)
	default:
		return fmt.Sprintf("%v", value)
	}
}

func parenthesize(name string, exprs ...Printer) string {
	b := strings.Builder{}

	b.WriteByte('(')
	b.WriteString(name)
	for _, expr := range exprs {
		b.WriteByte(' ')
		b.WriteString(expr.Print())
	}

	b.WriteByte(')')

	return b.String()
}
