package eval

import (
	"errors"
	"fmt"
	"io"
	"os"

	"fortio.org/log"

	"github.com/havrydotdev/lx/ast"
	env "github.com/havrydotdev/lx/environment"
	"github.com/havrydotdev/lx/report"
	"github.com/havrydotdev/lx/token"
)

type Interpreter struct {
	globals     *env.Env
	environment *env.Env

	out      io.Writer
	reporter *report.Reporter

	maxDepth int
	depth    int
}

type Option func(*Interpreter)

// WithOutput sets where print writes. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(i *Interpreter) {
		i.out = w
	}
}

// WithReporter sets the runtime error sink. Defaults to stderr.
func WithReporter(r *report.Reporter) Option {
	return func(i *Interpreter) {
		i.reporter = r
	}
}

// WithMaxDepth limits nested calls, 0 means unbounded.
func WithMaxDepth(depth int) Option {
	return func(i *Interpreter) {
		i.maxDepth = depth
	}
}

func New(opts ...Option) *Interpreter {
	globals := newGlobals()

	i := &Interpreter{
		globals:     globals,
		environment: globals,
		out:         os.Stdout,
		reporter:    report.New(os.Stderr),
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

// Define adds a global binding, typically a NativeFunction.
func (i *Interpreter) Define(name string, value any) {
	i.globals.Define(name, value)
}

// Interpret executes stmts in order and stops at the first runtime error,
// which is reported and returned. State defined before the error stays.
func (i *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, stmt := range stmts {
		if err := i.execute(stmt); err != nil {
			rerr := toRuntimeError(err)
			i.reporter.ReportRuntime(rerr.Token, rerr.Message)

			return rerr
		}
	}

	return nil
}

// Evaluate evaluates a single expression in the current scope.
func (i *Interpreter) Evaluate(expr ast.Expr) (any, error) {
	val, err := i.evaluate(expr)
	if err != nil {
		return nil, toRuntimeError(err)
	}

	return val, nil
}

func toRuntimeError(err error) *RuntimeError {
	var rerr *RuntimeError
	if errors.As(err, &rerr) {
		return rerr
	}

	var ret *Return
	if errors.As(err, &ret) {
		return newRuntimeError(ret.Keyword, "Can't return from top-level code.")
	}

	return &RuntimeError{Message: err.Error()}
}

func (i *Interpreter) execute(stmt ast.Stmt) error {
	switch stmt := stmt.(type) {
	case *ast.Expression:
		_, err := i.evaluate(stmt.Expr)
		return err

	case *ast.Print:
		value, err := i.evaluate(stmt.Expr)
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(i.out, Stringify(value))
		return err

	case *ast.Var:
		var value any
		if stmt.Init != nil {
			var err error
			value, err = i.evaluate(stmt.Init)
			if err != nil {
				return err
			}
		}

		i.environment.Define(stmt.Name.Lexeme, value)
		return nil

	case *ast.Block:
		return i.executeBlock(stmt.Stmts, env.NewChild(i.environment))

	case *ast.If:
		cond, err := i.evaluate(stmt.Cond)
		if err != nil {
			return err
		}

		if isTruthy(cond) {
			return i.execute(stmt.Then)
		} else if stmt.Else != nil {
			return i.execute(stmt.Else)
		}

		return nil

	case *ast.While:
		for {
			cond, err := i.evaluate(stmt.Cond)
			if err != nil {
				return err
			}

			if !isTruthy(cond) {
				return nil
			}

			if err := i.execute(stmt.Body); err != nil {
				return err
			}
		}

	case *ast.Function:
		i.environment.Define(stmt.Name.Lexeme, &Function{declaration: stmt, closure: i.environment})
		return nil

	case *ast.Return:
		var value any
		if stmt.Value != nil {
			var err error
			value, err = i.evaluate(stmt.Value)
			if err != nil {
				return err
			}
		}

		return &Return{Keyword: stmt.Keyword, Value: value}
	}

	return fmt.Errorf("unknown statement %T", stmt)
}

// executeBlock runs stmts in environment and restores the previous scope
// however the block exits.
func (i *Interpreter) executeBlock(stmts []ast.Stmt, environment *env.Env) error {
	prev := i.environment
	i.environment = environment
	defer func() { i.environment = prev }()

	if log.LogVerbose() {
		log.LogVf("enter block of %d statements at depth %d", len(stmts), environment.Depth())
	}

	for _, stmt := range stmts {
		if err := i.execute(stmt); err != nil {
			return err
		}
	}

	return nil
}

func (i *Interpreter) evaluate(expr ast.Expr) (any, error) {
	switch expr := expr.(type) {
	case *ast.Literal:
		return expr.Value, nil

	case *ast.Grouping:
		return i.evaluate(expr.Inner)

	case *ast.Unary:
		return i.unary(expr)

	case *ast.Binary:
		return i.binary(expr)

	case *ast.Logical:
		left, err := i.evaluate(expr.Left)
		if err != nil {
			return nil, err
		}

		if expr.Op.Kind == token.Or {
			if isTruthy(left) {
				return left, nil
			}
		} else if !isTruthy(left) {
			return left, nil
		}

		return i.evaluate(expr.Right)

	case *ast.Ternary:
		cond, err := i.evaluate(expr.Cond)
		if err != nil {
			return nil, err
		}

		if isTruthy(cond) {
			return i.evaluate(expr.Then)
		}

		return i.evaluate(expr.Else)

	case *ast.Variable:
		val, ok := i.environment.Get(expr.Name.Lexeme)
		if !ok {
			return nil, newRuntimeError(expr.Name, "Undefined variable '%s'.", expr.Name.Lexeme)
		}

		return val, nil

	case *ast.Assign:
		val, err := i.evaluate(expr.Value)
		if err != nil {
			return nil, err
		}

		if !i.environment.Assign(expr.Name.Lexeme, val) {
			return nil, newRuntimeError(expr.Name, "Undefined variable '%s'.", expr.Name.Lexeme)
		}

		return val, nil

	case *ast.Call:
		return i.call(expr)
	}

	return nil, fmt.Errorf("unknown expression %T", expr)
}

func (i *Interpreter) unary(expr *ast.Unary) (any, error) {
	right, err := i.evaluate(expr.Operand)
	if err != nil {
		return nil, err
	}

	switch expr.Op.Kind {
	case token.Bang:
		return !isTruthy(right), nil
	case token.Minus:
		n, err := checkNum(expr.Op, right)
		if err != nil {
			return nil, err
		}

		return -n, nil
	}

	return nil, newRuntimeError(expr.Op, "Unexpected operator %s.", expr.Op.Lexeme)
}

func (i *Interpreter) binary(expr *ast.Binary) (any, error) {
	left, err := i.evaluate(expr.Left)
	if err != nil {
		return nil, err
	}

	right, err := i.evaluate(expr.Right)
	if err != nil {
		return nil, err
	}

	op := expr.Op
	switch op.Kind {
	case token.BangEqual:
		return !isEqual(left, right), nil
	case token.EqualEqual:
		return isEqual(left, right), nil

	case token.Plus:
		l, lok := left.(float64)
		r, rok := right.(float64)
		if lok && rok {
			return l + r, nil
		}

		_, lstr := left.(string)
		_, rstr := right.(string)
		if (lstr && right != nil) || (rstr && left != nil) {
			return Stringify(left) + Stringify(right), nil
		}

		return nil, newRuntimeError(op, "Invalid operands for + operation.")
	}

	l, r, err := checkNums(op, left, right)
	if err != nil {
		return nil, err
	}

	switch op.Kind {
	case token.Greater:
		return l > r, nil
	case token.GreaterEqual:
		return l >= r, nil
	case token.Less:
		return l < r, nil
	case token.LessEqual:
		return l <= r, nil
	case token.Minus:
		return l - r, nil
	case token.Star:
		return l * r, nil
	case token.Slash:
		if r == 0 {
			return nil, newRuntimeError(op, "Cannot divide by zero.")
		}

		return l / r, nil
	}

	return nil, newRuntimeError(op, "Unexpected operator %s.", op.Lexeme)
}

func (i *Interpreter) call(expr *ast.Call) (any, error) {
	callee, err := i.evaluate(expr.Callee)
	if err != nil {
		return nil, err
	}

	fun, ok := callee.(Callable)
	if !ok {
		return nil, newRuntimeError(expr.Paren, "Can only call functions and classes.")
	}

	args := make([]any, 0, len(expr.Args))
	for _, arg := range expr.Args {
		val, err := i.evaluate(arg)
		if err != nil {
			return nil, err
		}

		args = append(args, val)
	}

	if len(args) != fun.Arity() {
		return nil, newRuntimeError(expr.Paren, "Expected %d arguments but got %d.", fun.Arity(), len(args))
	}

	if i.maxDepth > 0 && i.depth >= i.maxDepth {
		return nil, newRuntimeError(expr.Paren, "Stack overflow.")
	}

	i.depth++
	defer func() { i.depth-- }()

	if log.LogVerbose() {
		log.LogVf("call %s with %d args at line %d", Stringify(fun), len(args), expr.Paren.Line)
	}

	val, err := fun.Call(i, args)
	if err != nil {
		var rerr *RuntimeError
		if !errors.As(err, &rerr) {
			return nil, newRuntimeError(expr.Paren, "%s", err.Error())
		}

		return nil, err
	}

	return val, nil
}
