package eval

import (
	"errors"
	"fmt"

	"github.com/havrydotdev/lx/ast"
	env "github.com/havrydotdev/lx/environment"
)

type Callable interface {
	Arity() int
	Call(i *Interpreter, args []any) (any, error)
}

// NativeFunction is a host-provided callable. An error it returns becomes
// a runtime error at the call site.
type NativeFunction struct {
	name  string
	arity int
	call  func(i *Interpreter, args []any) (any, error)
}

func NewNativeFunction(name string, arity int, call func(i *Interpreter, args []any) (any, error)) *NativeFunction {
	return &NativeFunction{name, arity, call}
}

func (f *NativeFunction) Arity() int {
	return f.arity
}

func (f *NativeFunction) Call(i *Interpreter, args []any) (any, error) {
	return f.call(i, args)
}

func (f *NativeFunction) String() string {
	return "<native fn>"
}

// Function is a closure: a declaration plus the scope it was declared in.
type Function struct {
	declaration *ast.Function
	closure     *env.Env
}

func (f *Function) Arity() int {
	return len(f.declaration.Params)
}

// Call runs the body in a fresh scope whose parent is the closure, not the
// caller's scope.
func (f *Function) Call(i *Interpreter, args []any) (any, error) {
	environment := env.NewChild(f.closure)
	for idx, param := range f.declaration.Params {
		environment.Define(param.Lexeme, args[idx])
	}

	err := i.executeBlock(f.declaration.Body, environment)

	var ret *Return
	if errors.As(err, &ret) {
		return ret.Value, nil
	}

	return nil, err
}

func (f *Function) String() string {
	return fmt.Sprintf("<fn %s>", f.declaration.Name.Lexeme)
}
