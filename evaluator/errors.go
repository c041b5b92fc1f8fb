package eval

import (
	"fmt"

	"github.com/havrydotdev/lx/token"
)

// RuntimeError aborts the current run. Token locates it.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s\n[line %d]", e.Message, e.Token.Line)
}

func newRuntimeError(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// Return unwinds from a return statement to the function call executing
// it. Only Function.Call stops it.
type Return struct {
	Keyword token.Token
	Value   any
}

func (r *Return) Error() string {
	return "return statement"
}
