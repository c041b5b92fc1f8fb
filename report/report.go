// Package report writes diagnostics and remembers which class of error a
// run produced.
package report

import (
	"fmt"
	"io"

	"github.com/havrydotdev/lx/token"
)

// Exit codes as defined in sysexits.h.
const (
	ExitOK       = 0
	ExitUsage    = 64
	ExitDataErr  = 65
	ExitSoftware = 70
	ExitIOErr    = 74
)

type Reporter struct {
	w io.Writer

	hadError        bool
	hadRuntimeError bool
}

func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Report writes a static (lexical or syntax) error.
func (r *Reporter) Report(line int, where, message string) {
	fmt.Fprintf(r.w, "[line %d] Error%s: %s\n", line, where, message)
	r.hadError = true
}

// ReportRuntime writes an evaluation error located at tok.
func (r *Reporter) ReportRuntime(tok token.Token, message string) {
	fmt.Fprintf(r.w, "%s\n[line %d]\n", message, tok.Line)
	r.hadRuntimeError = true
}

func (r *Reporter) HadError() bool {
	return r.hadError
}

func (r *Reporter) HadRuntimeError() bool {
	return r.hadRuntimeError
}

// Reset clears the static error flag. The REPL calls it between lines.
func (r *Reporter) Reset() {
	r.hadError = false
}

func (r *Reporter) ExitCode() int {
	switch {
	case r.hadError:
		return ExitDataErr
	case r.hadRuntimeError:
		return ExitSoftware
	default:
		return ExitOK
	}
}
