package mython

// TokenType identifies the lexical category of a token.
type TokenType string

const (
	tokenIllegal TokenType = "ILLEGAL"
	tokenEOF     TokenType = "EOF"

	tokenNewline TokenType = "NEWLINE"
	tokenIndent  TokenType = "INDENT"
	tokenDedent  TokenType = "DEDENT"

	tokenIdent  TokenType = "IDENT"
	tokenNumber TokenType = "NUMBER"
	tokenString TokenType = "STRING"

	tokenAssign   TokenType = "="
	tokenPlus     TokenType = "+"
	tokenMinus    TokenType = "-"
	tokenAsterisk TokenType = "*"
	tokenSlash    TokenType = "/"
	tokenLT       TokenType = "<"
	tokenGT       TokenType = ">"
	tokenLTE      TokenType = "<="
	tokenGTE      TokenType = ">="
	tokenEQ       TokenType = "=="
	tokenNotEQ    TokenType = "!="
	tokenBang     TokenType = "!"

	tokenComma  TokenType = ","
	tokenColon  TokenType = ":"
	tokenDot    TokenType = "."
	tokenLParen TokenType = "("
	tokenRParen TokenType = ")"

	tokenClass  TokenType = "CLASS"
	tokenDef    TokenType = "DEF"
	tokenReturn TokenType = "RETURN"
	tokenIf     TokenType = "IF"
	tokenElse   TokenType = "ELSE"
	tokenPrint  TokenType = "PRINT"
	tokenAnd    TokenType = "AND"
	tokenOr     TokenType = "OR"
	tokenNot    TokenType = "NOT"
	tokenNone   TokenType = "NONE"
	tokenTrue   TokenType = "TRUE"
	tokenFalse  TokenType = "FALSE"
)

// Token captures lexical information for the parser.
type Token struct {
	Type    TokenType
	Literal string
	Pos     Position
}

// Position is a 1-based line and column in the source text.
type Position struct {
	Line   int
	Column int
}

var keywords = map[string]TokenType{
	"class":  tokenClass,
	"def":    tokenDef,
	"return": tokenReturn,
	"if":     tokenIf,
	"else":   tokenElse,
	"print":  tokenPrint,
	"and":    tokenAnd,
	"or":     tokenOr,
	"not":    tokenNot,
	"None":   tokenNone,
	"True":   tokenTrue,
	"False":  tokenFalse,
}

func lookupIdent(ident string) TokenType {
	if tt, ok := keywords[ident]; ok {
		return tt
	}
	return tokenIdent
}
