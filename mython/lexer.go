package mython

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// indentWidth is the number of spaces one block level adds.
const indentWidth = 2

// lexer turns source text into a flat token stream. Blocks are delimited
// by INDENT and DEDENT tokens computed from leading spaces; every logical
// line ends with NEWLINE and blank or comment-only lines produce nothing.
type lexer struct {
	input  string
	tokens []Token
	errors []error
	indent int
}

func newLexer(input string) *lexer {
	l := &lexer{input: input}
	l.run()
	return l
}

// Tokenize returns the token stream of source. Malformed input still yields
// the full stream, with ILLEGAL tokens in place, alongside the errors.
func Tokenize(source string) ([]Token, error) {
	l := newLexer(source)
	return l.tokens, errors.Join(l.errors...)
}

func (l *lexer) run() {
	lines := strings.Split(l.input, "\n")
	for i, line := range lines {
		l.scanLine(strings.TrimSuffix(line, "\r"), i+1)
	}

	last := len(lines)
	endCol := utf8.RuneCountInString(lines[last-1]) + 1
	for l.indent > 0 {
		l.indent -= indentWidth
		l.emit(tokenDedent, "", Position{Line: last, Column: endCol})
	}
	l.emit(tokenEOF, "", Position{Line: last, Column: endCol})
}

func (l *lexer) scanLine(line string, lineNo int) {
	width := 0
	for width < len(line) && line[width] == ' ' {
		width++
	}
	rest := line[width:]
	if strings.TrimSpace(rest) == "" || strings.HasPrefix(rest, "#") {
		return
	}
	if rest[0] == '\t' {
		l.addError(Position{Line: lineNo, Column: width + 1}, "tabs are not allowed in indentation")
		return
	}
	if width%indentWidth != 0 {
		l.addError(Position{Line: lineNo, Column: width + 1}, fmt.Sprintf("indentation of %d spaces is not a multiple of %d", width, indentWidth))
		width -= width % indentWidth
	}

	pos := Position{Line: lineNo, Column: width + 1}
	for l.indent < width {
		l.indent += indentWidth
		l.emit(tokenIndent, "", pos)
	}
	for l.indent > width {
		l.indent -= indentWidth
		l.emit(tokenDedent, "", pos)
	}

	s := &lineScanner{l: l, src: rest, line: lineNo, column: width + 1}
	s.scan()
	l.emit(tokenNewline, "", Position{Line: lineNo, Column: utf8.RuneCountInString(line) + 1})
}

func (l *lexer) emit(tt TokenType, literal string, pos Position) {
	l.tokens = append(l.tokens, Token{Type: tt, Literal: literal, Pos: pos})
}

func (l *lexer) addError(pos Position, msg string) {
	l.errors = append(l.errors, &ParseError{Pos: pos, Msg: msg, source: l.input})
}

// lineScanner tokenizes the text of one line after its indentation.
type lineScanner struct {
	l      *lexer
	src    string
	offset int
	line   int
	column int
}

func (s *lineScanner) peek() rune {
	if s.offset >= len(s.src) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.src[s.offset:])
	return r
}

func (s *lineScanner) next() rune {
	r, w := utf8.DecodeRuneInString(s.src[s.offset:])
	s.offset += w
	s.column++
	return r
}

func (s *lineScanner) pos() Position {
	return Position{Line: s.line, Column: s.column}
}

func (s *lineScanner) scan() {
	for s.offset < len(s.src) {
		ch := s.peek()
		pos := s.pos()
		switch {
		case ch == ' ' || ch == '\t':
			s.next()
		case ch == '#':
			return
		case ch == '"' || ch == '\'':
			s.readString(pos)
		case isIdentifierStart(ch):
			literal := s.readWhile(isIdentifierRune)
			s.l.emit(lookupIdent(literal), literal, pos)
		case unicode.IsDigit(ch):
			literal := s.readWhile(unicode.IsDigit)
			if _, err := strconv.ParseInt(literal, 10, 64); err != nil {
				s.illegal(pos, literal, "number "+literal+" is out of range")
				continue
			}
			s.l.emit(tokenNumber, literal, pos)
		default:
			s.readOperator(pos)
		}
	}
}

func (s *lineScanner) readOperator(pos Position) {
	ch := s.next()
	two := func(single, double TokenType) {
		if s.peek() == '=' {
			s.next()
			s.l.emit(double, string(double), pos)
			return
		}
		s.l.emit(single, string(single), pos)
	}
	switch ch {
	case '=':
		two(tokenAssign, tokenEQ)
	case '<':
		two(tokenLT, tokenLTE)
	case '>':
		two(tokenGT, tokenGTE)
	case '!':
		two(tokenBang, tokenNotEQ)
	case '+':
		s.l.emit(tokenPlus, "+", pos)
	case '-':
		s.l.emit(tokenMinus, "-", pos)
	case '*':
		s.l.emit(tokenAsterisk, "*", pos)
	case '/':
		s.l.emit(tokenSlash, "/", pos)
	case ',':
		s.l.emit(tokenComma, ",", pos)
	case ':':
		s.l.emit(tokenColon, ":", pos)
	case '.':
		s.l.emit(tokenDot, ".", pos)
	case '(':
		s.l.emit(tokenLParen, "(", pos)
	case ')':
		s.l.emit(tokenRParen, ")", pos)
	default:
		s.illegal(pos, string(ch), fmt.Sprintf("unexpected character %q", ch))
	}
}

func (s *lineScanner) readWhile(pred func(rune) bool) string {
	start := s.offset
	for s.offset < len(s.src) && pred(s.peek()) {
		s.next()
	}
	return s.src[start:s.offset]
}

func (s *lineScanner) readString(pos Position) {
	quote := s.next()
	var sb strings.Builder
	for {
		if s.offset >= len(s.src) {
			s.illegal(pos, sb.String(), "unterminated string")
			return
		}
		ch := s.next()
		switch {
		case ch == quote:
			s.l.emit(tokenString, sb.String(), pos)
			return
		case ch == '\\' && s.offset < len(s.src):
			esc := s.next()
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			default:
				// \\ \" \' and unknown escapes keep the escaped rune
				sb.WriteRune(esc)
			}
		default:
			sb.WriteRune(ch)
		}
	}
}

func (s *lineScanner) illegal(pos Position, literal, msg string) {
	s.l.emit(tokenIllegal, literal, pos)
	s.l.addError(pos, msg)
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
