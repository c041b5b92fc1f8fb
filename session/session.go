// Package session runs source text through scanning, parsing and
// evaluation against one long-lived interpreter.
package session

import (
	"errors"
	"fmt"
	"io"
	"os"

	"fortio.org/log"

	"github.com/havrydotdev/lx/ast"
	eval "github.com/havrydotdev/lx/evaluator"
	interp "github.com/havrydotdev/lx/interpreter"
	"github.com/havrydotdev/lx/parser"
	"github.com/havrydotdev/lx/printer"
	"github.com/havrydotdev/lx/report"
	"github.com/havrydotdev/lx/scanner"
	"github.com/havrydotdev/lx/token"
)

// ErrStatic is returned when scanning or parsing reported errors and
// nothing was executed.
var ErrStatic = errors.New("static error")

type Mode int

const (
	// Run executes the program.
	Run Mode = iota
	// PrintAST prints each statement in parenthesized form.
	PrintAST
	// PrintRPN prints each statement with postfix expressions.
	PrintRPN
)

func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "run":
		return Run, nil
	case "ast":
		return PrintAST, nil
	case "rpn":
		return PrintRPN, nil
	}

	return Run, fmt.Errorf("unknown mode %q, want run, ast or rpn", s)
}

type Options struct {
	Out          io.Writer
	Diag         io.Writer
	Mode         Mode
	MaxCallDepth int
}

type Session struct {
	interp   *eval.Interpreter
	reporter *report.Reporter
	out      io.Writer
	mode     Mode
}

func New(opts Options) *Session {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	if opts.Diag == nil {
		opts.Diag = os.Stderr
	}

	reporter := report.New(opts.Diag)

	return &Session{
		interp: eval.New(
			eval.WithOutput(opts.Out),
			eval.WithReporter(reporter),
			eval.WithMaxDepth(opts.MaxCallDepth),
		),
		reporter: reporter,
		out:      opts.Out,
		mode:     opts.Mode,
	}
}

func (s *Session) Reporter() *report.Reporter {
	return s.reporter
}

func (s *Session) Interpreter() *eval.Interpreter {
	return s.interp
}

// Run runs a whole program. Nothing executes if any static error was
// reported.
func (s *Session) Run(source string) error {
	tokens, ok := s.scan(source)

	switch s.mode {
	case PrintAST:
		return s.print(tokens, ok, printer.NewParens())
	case PrintRPN:
		return s.print(tokens, ok, printer.NewRPN())
	}

	stmts, errs := parser.New(tokens, ast.NewBuilder()).Parse()
	log.Debugf("parsed %d statements, %d errors", len(stmts), len(errs))
	s.reportParse(errs)

	if !ok || len(errs) != 0 {
		return ErrStatic
	}

	return s.interp.Interpret(stmts)
}

// RunLine runs one REPL entry. The static error flag is cleared first, and
// a lone expression statement has its value printed.
func (s *Session) RunLine(source string) error {
	s.reporter.Reset()

	if s.mode != Run {
		return s.Run(source)
	}

	tokens, ok := s.scan(source)

	stmts, errs := parser.New(tokens, ast.NewBuilder()).Parse()
	s.reportParse(errs)

	if !ok || len(errs) != 0 {
		return ErrStatic
	}

	if len(stmts) == 1 {
		if stmt, isExpr := stmts[0].(*ast.Expression); isExpr {
			return s.echo(stmt.Expr)
		}
	}

	return s.interp.Interpret(stmts)
}

func (s *Session) echo(expr ast.Expr) error {
	val, err := s.interp.Evaluate(expr)
	if err != nil {
		var rerr *eval.RuntimeError
		if errors.As(err, &rerr) {
			s.reporter.ReportRuntime(rerr.Token, rerr.Message)
		}

		return err
	}

	_, err = fmt.Fprintln(s.out, eval.Stringify(val))
	return err
}

func (s *Session) scan(source string) ([]token.Token, bool) {
	tokens, errs := scanner.New(source).Scan()
	log.Debugf("scanned %d tokens, %d errors", len(tokens), len(errs))

	for _, err := range errs {
		var serr *scanner.Error
		if errors.As(err, &serr) {
			s.reporter.Report(serr.Line, "", serr.Message)
		}
	}

	return tokens, len(errs) == 0
}

func (s *Session) reportParse(errs []error) {
	for _, err := range errs {
		var perr *parser.Error
		if errors.As(err, &perr) {
			s.reporter.Report(perr.Token.Line, perr.Where(), perr.Message)
		}
	}
}

func (s *Session) print(tokens []token.Token, ok bool, alg interp.Alg[printer.Printer, printer.Printer]) error {
	stmts, errs := parser.New(tokens, alg).Parse()
	s.reportParse(errs)

	if !ok || len(errs) != 0 {
		return ErrStatic
	}

	for _, stmt := range stmts {
		if _, err := fmt.Fprintln(s.out, stmt.Print()); err != nil {
			return err
		}
	}

	return nil
}
