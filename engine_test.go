package main

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/havrydotdev/lx/report"
	"github.com/havrydotdev/lx/session"
)

//go:embed testdata/*.lox
var scripts embed.FS

const (
	expectOutput  = "// expect: "
	expectRuntime = "// expect runtime error: "
	expectStatic  = "// expect error: "
)

type expectation struct {
	out  string
	diag string
	code int
}

func parseExpectations(source string) expectation {
	var out, diag strings.Builder
	code := report.ExitOK

	for i, line := range strings.Split(source, "\n") {
		if idx := strings.Index(line, expectOutput); idx >= 0 {
			out.WriteString(line[idx+len(expectOutput):] + "\n")
		}

		if idx := strings.Index(line, expectRuntime); idx >= 0 {
			fmt.Fprintf(&diag, "%s\n[line %d]\n", line[idx+len(expectRuntime):], i+1)
			code = report.ExitSoftware
		}

		if idx := strings.Index(line, expectStatic); idx >= 0 {
			diag.WriteString(line[idx+len(expectStatic):] + "\n")
			code = report.ExitDataErr
		}
	}

	return expectation{out: out.String(), diag: diag.String(), code: code}
}

func TestScripts(t *testing.T) {
	paths, err := fs.Glob(scripts, "testdata/*.lox")
	if err != nil {
		t.Fatal(err)
	}

	if len(paths) == 0 {
		t.Fatal("no scripts found")
	}

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			source, err := scripts.ReadFile(path)
			if err != nil {
				t.Fatal(err)
			}

			want := parseExpectations(string(source))

			var out, diag bytes.Buffer
			s := session.New(session.Options{Out: &out, Diag: &diag})
			_ = s.Run(string(source))

			if out.String() != want.out {
				t.Errorf("stdout:\n%s\nwant:\n%s", out.String(), want.out)
			}

			if diag.String() != want.diag {
				t.Errorf("diagnostics:\n%s\nwant:\n%s", diag.String(), want.diag)
			}

			if code := s.Reporter().ExitCode(); code != want.code {
				t.Errorf("exit code %d, want %d", code, want.code)
			}
		})
	}
}

func TestRunExitCodes(t *testing.T) {
	dir := t.TempDir()

	cfg := filepath.Join(dir, "lx.yaml")
	if err := os.WriteFile(cfg, []byte("log_level: error\nhistory_file: \"\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	write := func(name, source string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(source), 0o600); err != nil {
			t.Fatal(err)
		}

		return path
	}

	tests := []struct {
		name string
		args []string
		want int
	}{
		{"ok", []string{"-config", cfg, write("ok.lox", "var a = 1;")}, report.ExitOK},
		{"syntax", []string{"-config", cfg, write("syntax.lox", "var;")}, report.ExitDataErr},
		{"runtime", []string{"-config", cfg, write("runtime.lox", "nil();")}, report.ExitSoftware},
		{"missing file", []string{"-config", cfg, filepath.Join(dir, "absent.lox")}, report.ExitIOErr},
		{"too many args", []string{"-config", cfg, "a.lox", "b.lox"}, report.ExitUsage},
		{"bad flag", []string{"-nope"}, report.ExitUsage},
		{"bad mode", []string{"-config", cfg, "-print", "tree", "a.lox"}, report.ExitUsage},
		{"bad config", []string{"-config", filepath.Join(dir, "absent.yaml"), "a.lox"}, report.ExitUsage},
		{"print ast", []string{"-config", cfg, "-print", "ast", write("print.lox", "print 1 + 2;")}, report.ExitOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := run(tt.args); got != tt.want {
				t.Errorf("got exit code %d, want %d", got, tt.want)
			}
		})
	}
}
