package mython

import (
	"fmt"
	"strconv"
)

const (
	lowestPrec = iota
	precOr
	precAnd
	precNot
	precComparison
	precSum
	precProduct
	precPrefix
	precCall
)

var precedences = map[TokenType]int{
	tokenOr:       precOr,
	tokenAnd:      precAnd,
	tokenEQ:       precComparison,
	tokenNotEQ:    precComparison,
	tokenLT:       precComparison,
	tokenLTE:      precComparison,
	tokenGT:       precComparison,
	tokenGTE:      precComparison,
	tokenPlus:     precSum,
	tokenMinus:    precSum,
	tokenAsterisk: precProduct,
	tokenSlash:    precProduct,
	tokenDot:      precCall,
}

var arithmeticOps = map[TokenType]ArithmeticOp{
	tokenPlus:     OpAdd,
	tokenMinus:    OpSub,
	tokenAsterisk: OpMul,
	tokenSlash:    OpDiv,
}

var comparisonOps = map[TokenType]CompareOp{
	tokenEQ:    CmpEqual,
	tokenNotEQ: CmpNotEqual,
	tokenLT:    CmpLess,
	tokenGT:    CmpGreater,
	tokenLTE:   CmpLessOrEqual,
	tokenGTE:   CmpGreaterOrEqual,
}

// stringifyName is the built-in str(x); a user class of the same name
// takes precedence.
const stringifyName = "str"

func (p *parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return lowestPrec
}

func (p *parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return lowestPrec
}

// parseExpression leaves curToken on the last token of the expression.
func (p *parser) parseExpression(precedence int) Statement {
	prefix := p.prefixFns[p.curToken.Type]
	if prefix == nil {
		p.errorExpected(p.curToken, "expression")
		return nil
	}
	left := prefix()
	if left == nil {
		return nil
	}

	for !p.peekIs(tokenNewline) && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peekToken.Type]
		if infix == nil {
			return left
		}
		p.nextToken()
		left = infix(left)
		if left == nil {
			return nil
		}
	}
	return left
}

func (p *parser) parseNumberLiteral() Statement {
	n, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.addParseError(p.curToken.Pos, fmt.Sprintf("invalid number %s", p.curToken.Literal))
		return nil
	}
	return &NumberLiteral{Value: n, position: p.curToken.Pos}
}

func (p *parser) parseStringLiteral() Statement {
	return &StringLiteral{Value: p.curToken.Literal, position: p.curToken.Pos}
}

func (p *parser) parseBoolLiteral() Statement {
	return &BoolLiteral{Value: p.curIs(tokenTrue), position: p.curToken.Pos}
}

func (p *parser) parseNoneLiteral() Statement {
	return &NoneLiteral{position: p.curToken.Pos}
}

func (p *parser) parseGroupedExpression() Statement {
	p.nextToken()
	expr := p.parseExpression(lowestPrec)
	if expr == nil || !p.expectPeek(tokenRParen, "')'") {
		return nil
	}
	return expr
}

// parseNegation lowers unary minus to 0 - x.
func (p *parser) parseNegation() Statement {
	pos := p.curToken.Pos
	p.nextToken()
	operand := p.parseExpression(precPrefix)
	if operand == nil {
		return nil
	}
	return &ArithmeticExpr{Op: OpSub, Left: &NumberLiteral{position: pos}, Right: operand, position: pos}
}

func (p *parser) parseNotExpression() Statement {
	pos := p.curToken.Pos
	p.nextToken()
	operand := p.parseExpression(precNot)
	if operand == nil {
		return nil
	}
	return &NotExpr{Arg: operand, position: pos}
}

func (p *parser) parseArithmeticExpression(left Statement) Statement {
	pos := p.curToken.Pos
	op := arithmeticOps[p.curToken.Type]
	prec := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(prec)
	if right == nil {
		return nil
	}
	return &ArithmeticExpr{Op: op, Left: left, Right: right, position: pos}
}

func (p *parser) parseComparisonExpression(left Statement) Statement {
	pos := p.curToken.Pos
	op := comparisonOps[p.curToken.Type]
	prec := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(prec)
	if right == nil {
		return nil
	}
	return &ComparisonExpr{Op: op, Left: left, Right: right, position: pos}
}

func (p *parser) parseLogicalExpression(left Statement) Statement {
	pos := p.curToken.Pos
	op := LogicalAnd
	if p.curIs(tokenOr) {
		op = LogicalOr
	}
	prec := p.curPrecedence()
	p.nextToken()
	right := p.parseExpression(prec)
	if right == nil {
		return nil
	}
	return &LogicalExpr{Op: op, Left: left, Right: right, position: pos}
}

// parseIdentifierExpression handles names, dotted field paths, method
// calls on a path, instance construction and str(x).
func (p *parser) parseIdentifierExpression() Statement {
	pos := p.curToken.Pos
	name := p.curToken.Literal

	if p.peekIs(tokenLParen) {
		class, isClass := p.classes[name]
		switch {
		case isClass:
			args, ok := p.parseCallArguments()
			if !ok {
				return nil
			}
			return &NewInstanceExpr{Class: class, Args: args, position: pos}
		case name == stringifyName:
			args, ok := p.parseCallArguments()
			if !ok {
				return nil
			}
			if len(args) != 1 {
				p.addParseError(pos, fmt.Sprintf("str expects 1 argument, got %d", len(args)))
				return nil
			}
			return &StringifyExpr{Arg: args[0], position: pos}
		default:
			p.addParseError(pos, fmt.Sprintf("unknown class %s", name))
			return nil
		}
	}

	path := []string{name}
	for p.peekIs(tokenDot) {
		p.nextToken()
		if !p.expectPeek(tokenIdent, "attribute name") {
			return nil
		}
		segment := p.curToken
		if p.peekIs(tokenLParen) {
			args, ok := p.parseCallArguments()
			if !ok {
				return nil
			}
			object := &VariableExpr{Path: path, position: pos}
			return &MethodCallExpr{Object: object, Method: segment.Literal, Args: args, position: segment.Pos}
		}
		path = append(path, segment.Literal)
	}
	return &VariableExpr{Path: path, position: pos}
}

// parseChainedCall handles a method call on the result of another
// expression, as in a.b().c(). Field reads need a variable path.
func (p *parser) parseChainedCall(left Statement) Statement {
	if !p.expectPeek(tokenIdent, "method name") {
		return nil
	}
	method := p.curToken
	if !p.peekIs(tokenLParen) {
		p.addParseError(method.Pos, fmt.Sprintf("attribute %s can only be read through a variable", method.Literal))
		return nil
	}
	args, ok := p.parseCallArguments()
	if !ok {
		return nil
	}
	return &MethodCallExpr{Object: left, Method: method.Literal, Args: args, position: method.Pos}
}

// parseCallArguments expects peekToken to be '(' and leaves curToken on
// the closing ')'.
func (p *parser) parseCallArguments() ([]Statement, bool) {
	p.nextToken()
	args := []Statement{}
	if p.peekIs(tokenRParen) {
		p.nextToken()
		return args, true
	}
	p.nextToken()
	for {
		arg := p.parseExpression(lowestPrec)
		if arg == nil {
			return nil, false
		}
		args = append(args, arg)
		if !p.peekIs(tokenComma) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	if !p.expectPeek(tokenRParen, "')' or ','") {
		return nil, false
	}
	return args, true
}
