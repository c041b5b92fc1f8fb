package scanner

import (
	"fmt"
	"strconv"

	"github.com/havrydotdev/lx/token"
)

// Error is a lexical error. Scanning continues past it.
type Error struct {
	Line    int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[line %d] Error: %s", e.Line, e.Message)
}

type Scanner struct {
	source string
	tokens []token.Token
	errors []error

	start   int
	current int
	line    int
}

func New(source string) *Scanner {
	return &Scanner{source: source, line: 1}
}

// Scan returns the token stream, always terminated by an Eof token,
// together with every lexical error found on the way.
func (s *Scanner) Scan() ([]token.Token, []error) {
	for !s.isAtEnd() {
		s.start = s.current
		s.scanToken()
	}

	s.tokens = append(s.tokens, token.New(token.Eof, "", nil, s.line))

	return s.tokens, s.errors
}

func (s *Scanner) scanToken() {
	c := s.advance()

	switch c {
	// one-character tokens
	case '(':
		s.addToken(token.LeftParen)
	case ')':
		s.addToken(token.RightParen)
	case '{':
		s.addToken(token.LeftBrace)
	case '}':
		s.addToken(token.RightBrace)
	case ',':
		s.addToken(token.Comma)
	case '.':
		s.addToken(token.Dot)
	case '-':
		s.addToken(token.Minus)
	case '+':
		s.addToken(token.Plus)
	case ';':
		s.addToken(token.Semicolon)
	case '*':
		s.addToken(token.Star)
	case '?':
		s.addToken(token.Question)
	case ':':
		s.addToken(token.Colon)

	// two or one character tokens
	case '!':
		s.addToken(s.either('=', token.BangEqual, token.Bang))
	case '=':
		s.addToken(s.either('=', token.EqualEqual, token.Equal))
	case '<':
		s.addToken(s.either('=', token.LessEqual, token.Less))
	case '>':
		s.addToken(s.either('=', token.GreaterEqual, token.Greater))

	case '/':
		switch {
		case s.match('/'):
			for s.peek() != '\n' && !s.isAtEnd() {
				s.advance()
			}
		case s.match('*'):
			s.blockComment()
		default:
			s.addToken(token.Slash)
		}

	case ' ', '\t', '\r':
	case '\n':
		s.line++

	case '"':
		s.string()

	default:
		switch {
		case isDigit(c):
			s.number()
		case isAlpha(c):
			s.identifier()
		default:
			s.error(fmt.Sprintf("Unexpected character '%c'.", c))
		}
	}
}

func (s *Scanner) either(next byte, matched, single token.Kind) token.Kind {
	if s.match(next) {
		return matched
	}

	return single
}

func (s *Scanner) blockComment() {
	startLine := s.line
	for !s.isAtEnd() {
		if s.peek() == '*' && s.peekNext() == '/' {
			s.advance()
			s.advance()
			return
		}

		if s.peek() == '\n' {
			s.line++
		}

		s.advance()
	}

	s.errors = append(s.errors, &Error{Line: startLine, Message: "Unclosed multi-line comment."})
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		c == '_'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}

func (s *Scanner) identifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}

	text := s.source[s.start:s.current]
	kind, ok := keywords[text]
	if !ok {
		kind = token.Identifier
	}

	s.addToken(kind)
}

func (s *Scanner) number() {
	for isDigit(s.peek()) {
		s.advance()
	}

	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()

		for isDigit(s.peek()) {
			s.advance()
		}
	}

	// the lexeme is digits with an optional fraction, so parsing can't fail
	num, _ := strconv.ParseFloat(s.source[s.start:s.current], 64)

	s.addLiteral(token.Number, num)
}

func (s *Scanner) string() {
	for s.peek() != '"' && !s.isAtEnd() {
		if s.peek() == '\n' {
			s.line++
		}

		s.advance()
	}

	if s.isAtEnd() {
		s.error("Unterminated string.")
		return
	}

	s.advance()
	s.addLiteral(token.String, s.source[s.start+1:s.current-1])
}

func (s *Scanner) error(message string) {
	s.errors = append(s.errors, &Error{Line: s.line, Message: message})
}

func (s *Scanner) addToken(kind token.Kind) {
	s.addLiteral(kind, nil)
}

func (s *Scanner) addLiteral(kind token.Kind, literal any) {
	lexeme := s.source[s.start:s.current]

	s.tokens = append(s.tokens, token.New(kind, lexeme, literal, s.line))
}

func (s *Scanner) match(expected byte) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}

	s.current++
	return true
}

func (s *Scanner) advance() byte {
	curr := s.current
	s.current++
	return s.source[curr]
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return '\000'
	}

	return s.source[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.source) {
		return '\000'
	}

	return s.source[s.current+1]
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}
