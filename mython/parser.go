package mython

type (
	prefixParseFn func() Statement
	infixParseFn  func(Statement) Statement
)

// parser is a recursive-descent parser over the lexer's token stream.
// Class names are resolved while parsing, so a class must be declared
// before it is instantiated or used as a base.
type parser struct {
	tokens []Token
	index  int
	source string

	curToken  Token
	peekToken Token

	errors []error

	classes  map[string]*Class
	declared []*Class

	prefixFns map[TokenType]prefixParseFn
	infixFns  map[TokenType]infixParseFn
}

func newParser(source string, tokens []Token, known map[string]*Class) *parser {
	p := &parser{tokens: tokens, source: source, classes: make(map[string]*Class, len(known))}
	for name, class := range known {
		p.classes[name] = class
	}

	p.prefixFns = map[TokenType]prefixParseFn{
		tokenIdent:  p.parseIdentifierExpression,
		tokenNumber: p.parseNumberLiteral,
		tokenString: p.parseStringLiteral,
		tokenTrue:   p.parseBoolLiteral,
		tokenFalse:  p.parseBoolLiteral,
		tokenNone:   p.parseNoneLiteral,
		tokenLParen: p.parseGroupedExpression,
		tokenMinus:  p.parseNegation,
		tokenNot:    p.parseNotExpression,
	}

	p.infixFns = make(map[TokenType]infixParseFn)
	for _, tt := range []TokenType{tokenPlus, tokenMinus, tokenAsterisk, tokenSlash} {
		p.infixFns[tt] = p.parseArithmeticExpression
	}
	for _, tt := range []TokenType{tokenEQ, tokenNotEQ, tokenLT, tokenGT, tokenLTE, tokenGTE} {
		p.infixFns[tt] = p.parseComparisonExpression
	}
	p.infixFns[tokenAnd] = p.parseLogicalExpression
	p.infixFns[tokenOr] = p.parseLogicalExpression
	p.infixFns[tokenDot] = p.parseChainedCall

	p.nextToken()
	p.nextToken()
	return p
}

func (p *parser) nextToken() {
	p.curToken = p.peekToken
	if p.index < len(p.tokens) {
		p.peekToken = p.tokens[p.index]
		p.index++
		return
	}
	// the stream always ends with EOF; keep returning it
	p.peekToken = Token{Type: tokenEOF, Pos: p.curToken.Pos}
}

func (p *parser) curIs(tt TokenType) bool  { return p.curToken.Type == tt }
func (p *parser) peekIs(tt TokenType) bool { return p.peekToken.Type == tt }

func (p *parser) expectPeek(tt TokenType, expected string) bool {
	if p.peekIs(tt) {
		p.nextToken()
		return true
	}
	p.errorExpected(p.peekToken, expected)
	return false
}

// ParseProgram parses every top-level statement. The returned classes are
// the ones declared by this source, in declaration order.
func (p *parser) ParseProgram() (*CompoundStmt, []*Class, []error) {
	root := &CompoundStmt{position: p.curToken.Pos}
	for !p.curIs(tokenEOF) {
		if p.curIs(tokenDedent) {
			p.errorUnexpected(p.curToken)
			p.nextToken()
			continue
		}
		if stmt := p.parseStatement(); stmt != nil {
			root.Statements = append(root.Statements, stmt)
		} else {
			p.recoverLine()
		}
		p.nextToken()
	}
	return root, p.declared, p.errors
}

// synchronize skips the rest of a malformed line.
func (p *parser) synchronize() {
	for !p.curIs(tokenNewline) && !p.curIs(tokenEOF) {
		p.nextToken()
	}
}

// recoverLine skips a malformed line together with any block it opened.
func (p *parser) recoverLine() {
	if p.curIs(tokenDedent) {
		return
	}
	p.synchronize()
	if p.peekIs(tokenIndent) {
		p.nextToken()
		p.skipBlock()
	}
}

// skipBlock consumes an indented block that has no owner, leaving the
// parser on its closing DEDENT.
func (p *parser) skipBlock() {
	depth := 0
	for !p.curIs(tokenEOF) {
		switch p.curToken.Type {
		case tokenIndent:
			depth++
		case tokenDedent:
			depth--
			if depth == 0 {
				return
			}
		}
		p.nextToken()
	}
}
