package printer

import (
	"fmt"
	"strings"

	interp "github.com/havrydotdev/lx/interpreter"
	"github.com/havrydotdev/lx/token"
)

// RPN prints expressions in postfix order, operands first:
//
//	(1 + 2) * 3  =>  1 2 + 3 *
//
// Statements keep the Parens form around postfix expressions.
type RPN struct {
	Parens
}

var _ interp.Alg[Printer, Printer] = RPN{}

func NewRPN() interp.Alg[Printer, Printer] {
	return RPN{}
}

func (RPN) Grouping(expr Printer) Printer {
	return expr
}

func (RPN) Unary(op token.Token, right Printer) Printer {
	return PrintFunc(func() string {
		// "-" alone would be ambiguous with binary minus
		if op.Kind == token.Minus {
			return right.Print() + " neg"
		}

		return right.Print() + " " + op.Lexeme
	})
}

func (RPN) Assign(name token.Token, value Printer) Printer {
	return PrintFunc(func() string {
		return value.Print() + " " + name.Lexeme + " ="
	})
}

func (RPN) Binary(op token.Token, left, right Printer) Printer {
	return postfix(op.Lexeme, left, right)
}

func (RPN) Logical(op token.Token, left, right Printer) Printer {
	return postfix(op.Lexeme, left, right)
}

func (RPN) Ternary(_ token.Token, cond, then, _else Printer) Printer {
	return postfix("?:", cond, then, _else)
}

func (RPN) Call(callee Printer, _ token.Token, args []Printer) Printer {
	operands := append([]Printer{callee}, args...)
	return postfix(fmt.Sprintf("call/%d", len(args)), operands...)
}

func postfix(op string, operands ...Printer) Printer {
	return PrintFunc(func() string {
		parts := make([]string, 0, len(operands)+1)
		for _, operand := range operands {
			parts = append(parts, operand.Print())
		}

		return strings.Join(append(parts, op), " ")
	})
}
