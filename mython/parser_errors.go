package mython

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports malformed source. Compile joins every ParseError of
// a run with errors.Join.
type ParseError struct {
	Pos    Position
	Msg    string
	source string
}

func (e *ParseError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "parse error at %d:%d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
	if frame := formatCodeFrame(e.source, e.Pos); frame != "" {
		b.WriteString("\n")
		b.WriteString(frame)
	}
	return b.String()
}

func (p *parser) errorExpected(tok Token, expected string) {
	p.addParseError(tok.Pos, fmt.Sprintf("expected %s, got %s", expected, tokenLabel(tok)))
}

func (p *parser) errorUnexpected(tok Token) {
	p.addParseError(tok.Pos, fmt.Sprintf("unexpected %s", tokenLabel(tok)))
}

func (p *parser) addParseError(pos Position, msg string) {
	p.errors = append(p.errors, &ParseError{Pos: pos, Msg: msg, source: p.source})
}

func tokenLabel(tok Token) string {
	switch tok.Type {
	case tokenIllegal:
		return "invalid token"
	case tokenEOF:
		return "end of input"
	case tokenNewline:
		return "end of line"
	case tokenIndent:
		return "indent"
	case tokenDedent:
		return "dedent"
	case tokenIdent:
		return "identifier " + tok.Literal
	case tokenNumber:
		return "number"
	case tokenString:
		return "string"
	default:
		if len(tok.Type) <= 2 {
			return fmt.Sprintf("%q", string(tok.Type))
		}
		return "'" + tok.Literal + "'"
	}
}

// formatCodeFrame renders the source line at pos with a caret under the
// column, or "" when pos is outside source.
func formatCodeFrame(source string, pos Position) string {
	if source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	lineText := strings.TrimSuffix(lines[pos.Line-1], "\r")
	width := len([]rune(lineText))

	column := min(max(pos.Column, 1), width+1)

	lineLabel := strconv.Itoa(pos.Line)
	gutterPad := strings.Repeat(" ", len(lineLabel))
	caretPad := strings.Repeat(" ", column-1)

	return fmt.Sprintf(
		"  --> line %d, column %d\n %s | %s\n %s | %s^",
		pos.Line,
		column,
		lineLabel,
		lineText,
		gutterPad,
		caretPad,
	)
}
