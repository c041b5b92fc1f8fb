package session

import (
	"bytes"
	"errors"
	"testing"

	eval "github.com/havrydotdev/lx/evaluator"
	"github.com/havrydotdev/lx/report"
)

func newSession(mode Mode) (*Session, *bytes.Buffer, *bytes.Buffer) {
	var out, diag bytes.Buffer
	return New(Options{Out: &out, Diag: &diag, Mode: mode}), &out, &diag
}

func TestRun(t *testing.T) {
	s, out, diag := newSession(Run)

	if err := s.Run(`var a = "lx"; print a + 1;`); err != nil {
		t.Fatal(err)
	}

	if out.String() != "lx1\n" || diag.Len() != 0 {
		t.Errorf("out %q, diag %q", out.String(), diag.String())
	}

	if s.Reporter().ExitCode() != report.ExitOK {
		t.Errorf("exit code %d", s.Reporter().ExitCode())
	}
}

func TestStaticErrorsSkipExecution(t *testing.T) {
	s, out, diag := newSession(Run)

	err := s.Run("print 1;\nprint ;\nvar @ = 2;")
	if !errors.Is(err, ErrStatic) {
		t.Fatalf("got %v, want ErrStatic", err)
	}

	if out.Len() != 0 {
		t.Errorf("program ran: %q", out.String())
	}

	want := "[line 3] Error: Unexpected character '@'.\n" +
		"[line 2] Error at ';': Expect expression.\n" +
		"[line 3] Error at '=': Expect variable name.\n"
	if diag.String() != want {
		t.Errorf("diag %q, want %q", diag.String(), want)
	}

	if s.Reporter().ExitCode() != report.ExitDataErr {
		t.Errorf("exit code %d", s.Reporter().ExitCode())
	}
}

func TestRuntimeError(t *testing.T) {
	s, out, diag := newSession(Run)

	err := s.Run("print 1;\nprint -nil;\nprint 2;")

	var rerr *eval.RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("got %v", err)
	}

	if out.String() != "1\n" {
		t.Errorf("out %q", out.String())
	}

	if diag.String() != "Operand must be a number.\n[line 2]\n" {
		t.Errorf("diag %q", diag.String())
	}

	if s.Reporter().ExitCode() != report.ExitSoftware {
		t.Errorf("exit code %d", s.Reporter().ExitCode())
	}
}

func TestRunLine(t *testing.T) {
	s, out, _ := newSession(Run)

	lines := []string{
		"var x = 2;",
		"x * 21;",
		"print ;",
		"x = x + 1;",
		"fun f() { return x; }",
		"f();",
		"f;",
	}

	for _, line := range lines {
		_ = s.RunLine(line)
	}

	if got, want := out.String(), "42\n3\n3\n<fn f>\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if s.Reporter().HadError() {
		t.Errorf("static flag not reset after a successful line")
	}
}

func TestRunLineKeepsStateAfterRuntimeError(t *testing.T) {
	s, out, diag := newSession(Run)

	_ = s.RunLine("var a = 1;")

	if err := s.RunLine("a / 0;"); err == nil {
		t.Fatal("expected a runtime error")
	}

	if diag.String() != "Cannot divide by zero.\n[line 1]\n" {
		t.Errorf("diag %q", diag.String())
	}

	if err := s.RunLine("print a;"); err != nil {
		t.Fatal(err)
	}

	if out.String() != "1\n" {
		t.Errorf("out %q", out.String())
	}
}

func TestPrintModes(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{PrintAST, "(var a (* (group (+ 1 2)) 3))\n(print a)\n"},
		{PrintRPN, "(var a 1 2 + 3 *)\n(print a)\n"},
	}

	for _, tt := range tests {
		s, out, _ := newSession(tt.mode)

		if err := s.Run("var a = (1 + 2) * 3; print a;"); err != nil {
			t.Fatal(err)
		}

		if out.String() != tt.want {
			t.Errorf("mode %d: got %q, want %q", tt.mode, out.String(), tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	for in, want := range map[string]Mode{"": Run, "run": Run, "ast": PrintAST, "rpn": PrintRPN} {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("%q: got %d, %v", in, got, err)
		}
	}

	if _, err := ParseMode("bytecode"); err == nil {
		t.Errorf("unknown mode accepted")
	}
}
