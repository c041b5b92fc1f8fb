package scanner

import (
	"testing"

	"github.com/havrydotdev/lx/token"
)

const (
	TestBasicInput = "123 * 123"
)

func TestBasic(t *testing.T) {
	tokens, errs := New(TestBasicInput).Scan()
	if len(errs) != 0 {
		t.Fatalf("Scanning failed: %v", errs)
	}

	want := []token.Kind{token.Number, token.Star, token.Number, token.Eof}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}

	for i, tok := range tokens {
		if tok.Kind != want[i] {
			t.Errorf("token %d: got %v, want %v", i, tok.Kind, want[i])
		}
	}

	if tokens[0].Literal != 123.0 {
		t.Errorf("literal: got %v, want 123", tokens[0].Literal)
	}
}

func TestKinds(t *testing.T) {
	tests := []struct {
		input string
		want  []token.Kind
	}{
		{"( ) { } , . - + ; * ? :", []token.Kind{
			token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
			token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
			token.Star, token.Question, token.Colon, token.Eof,
		}},
		{"! != = == < <= > >= /", []token.Kind{
			token.Bang, token.BangEqual, token.Equal, token.EqualEqual,
			token.Less, token.LessEqual, token.Greater, token.GreaterEqual,
			token.Slash, token.Eof,
		}},
		{"var print fun return foo_1", []token.Kind{
			token.Var, token.Print, token.Fun, token.Return, token.Identifier, token.Eof,
		}},
		{"1 // comment\n2", []token.Kind{token.Number, token.Number, token.Eof}},
		{"1 /* block\ncomment */ 2", []token.Kind{token.Number, token.Number, token.Eof}},
		{"", []token.Kind{token.Eof}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens, errs := New(tt.input).Scan()
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}

			if len(tokens) != len(tt.want) {
				t.Fatalf("got %d tokens, want %d", len(tokens), len(tt.want))
			}

			for i, tok := range tokens {
				if tok.Kind != tt.want[i] {
					t.Errorf("token %d: got %v, want %v", i, tok.Kind, tt.want[i])
				}
			}
		})
	}
}

func TestLiterals(t *testing.T) {
	tokens, errs := New(`"hello" 3.25 7.`).Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if tokens[0].Kind != token.String || tokens[0].Literal != "hello" {
		t.Errorf("string: got %v", tokens[0])
	}

	if tokens[1].Kind != token.Number || tokens[1].Literal != 3.25 {
		t.Errorf("number: got %v", tokens[1])
	}

	// trailing dot is not part of the number
	if tokens[2].Literal != 7.0 || tokens[3].Kind != token.Dot {
		t.Errorf("trailing dot: got %v %v", tokens[2], tokens[3])
	}
}

func TestLines(t *testing.T) {
	tokens, _ := New("a\n\"multi\nline\"\nb").Scan()
	wantLines := []int{1, 3, 4, 4}
	for i, tok := range tokens {
		if tok.Line != wantLines[i] {
			t.Errorf("token %s: got line %d, want %d", tok.Lexeme, tok.Line, wantLines[i])
		}
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		input   string
		message string
		line    int
	}{
		{"@", "Unexpected character '@'.", 1},
		{"\n\"open", "Unterminated string.", 2},
		{"/* never\nclosed", "Unclosed multi-line comment.", 1},
	}

	for _, tt := range tests {
		t.Run(tt.message, func(t *testing.T) {
			tokens, errs := New(tt.input).Scan()
			if len(errs) != 1 {
				t.Fatalf("got %d errors, want 1", len(errs))
			}

			err, ok := errs[0].(*Error)
			if !ok {
				t.Fatalf("got %T, want *Error", errs[0])
			}

			if err.Message != tt.message || err.Line != tt.line {
				t.Errorf("got %q at line %d, want %q at line %d", err.Message, err.Line, tt.message, tt.line)
			}

			if tokens[len(tokens)-1].Kind != token.Eof {
				t.Errorf("token stream not terminated by Eof")
			}
		})
	}
}

func TestContinuesAfterError(t *testing.T) {
	tokens, errs := New("1 @ # 2").Scan()
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2", len(errs))
	}

	if len(tokens) != 3 {
		t.Fatalf("got %d tokens, want 3", len(tokens))
	}
}
