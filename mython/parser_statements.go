package mython

import "fmt"

// parseStatement leaves curToken on the NEWLINE that ends a simple
// statement or on the DEDENT that closes a compound one. It returns nil
// after reporting an error.
func (p *parser) parseStatement() Statement {
	switch p.curToken.Type {
	case tokenClass:
		return p.parseClassStatement()
	case tokenIf:
		return p.parseIfStatement()
	case tokenReturn:
		return p.parseReturnStatement()
	case tokenPrint:
		return p.parsePrintStatement()
	case tokenDef:
		p.addParseError(p.curToken.Pos, "method definitions are only allowed inside a class")
		return nil
	case tokenIndent:
		p.addParseError(p.curToken.Pos, "unexpected indent")
		p.skipBlock()
		return nil
	default:
		return p.parseExpressionOrAssignStatement()
	}
}

func (p *parser) expectNewline() bool {
	return p.expectPeek(tokenNewline, "end of line")
}

func (p *parser) parseExpressionOrAssignStatement() Statement {
	expr := p.parseExpression(lowestPrec)
	if expr == nil {
		return nil
	}

	if !p.peekIs(tokenAssign) {
		if !p.expectNewline() {
			return nil
		}
		return expr
	}

	target, ok := expr.(*VariableExpr)
	if !ok {
		p.addParseError(p.peekToken.Pos, "cannot assign to this expression")
		return nil
	}
	p.nextToken()
	p.nextToken()
	value := p.parseExpression(lowestPrec)
	if value == nil || !p.expectNewline() {
		return nil
	}

	n := len(target.Path)
	if n == 1 {
		return &AssignStmt{Name: target.Path[0], Value: value, position: target.Pos()}
	}
	object := &VariableExpr{Path: target.Path[:n-1], position: target.Pos()}
	return &FieldAssignStmt{Object: object, Field: target.Path[n-1], Value: value, position: target.Pos()}
}

func (p *parser) parseReturnStatement() Statement {
	pos := p.curToken.Pos
	if p.peekIs(tokenNewline) {
		p.nextToken()
		return &ReturnStmt{position: pos}
	}
	p.nextToken()
	value := p.parseExpression(lowestPrec)
	if value == nil || !p.expectNewline() {
		return nil
	}
	return &ReturnStmt{Value: value, position: pos}
}

func (p *parser) parsePrintStatement() Statement {
	stmt := &PrintStmt{position: p.curToken.Pos}
	if p.peekIs(tokenNewline) {
		p.nextToken()
		return stmt
	}
	p.nextToken()
	for {
		arg := p.parseExpression(lowestPrec)
		if arg == nil {
			return nil
		}
		stmt.Args = append(stmt.Args, arg)
		if !p.peekIs(tokenComma) {
			break
		}
		p.nextToken()
		p.nextToken()
	}
	if !p.expectNewline() {
		return nil
	}
	return stmt
}

func (p *parser) parseIfStatement() Statement {
	pos := p.curToken.Pos
	p.nextToken()
	cond := p.parseExpression(lowestPrec)
	if cond == nil || !p.expectPeek(tokenColon, "':'") {
		return nil
	}
	then := p.parseSuite()
	if then == nil {
		return nil
	}
	stmt := &IfElseStmt{Condition: cond, Then: then, position: pos}
	if !p.peekIs(tokenElse) {
		return stmt
	}
	p.nextToken()
	if !p.expectPeek(tokenColon, "':'") {
		return nil
	}
	alt := p.parseSuite()
	if alt == nil {
		return nil
	}
	stmt.Else = alt
	return stmt
}

// parseSuite parses the indented block that follows a ':' and leaves the
// parser on its closing DEDENT.
func (p *parser) parseSuite() *CompoundStmt {
	if !p.expectNewline() || !p.expectPeek(tokenIndent, "an indented block") {
		return nil
	}
	block := &CompoundStmt{position: p.peekToken.Pos}
	p.nextToken()
	for !p.curIs(tokenDedent) && !p.curIs(tokenEOF) {
		if stmt := p.parseStatement(); stmt != nil {
			block.Statements = append(block.Statements, stmt)
		} else {
			p.recoverLine()
		}
		p.nextToken()
	}
	return block
}

func (p *parser) parseClassStatement() Statement {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenIdent, "class name") {
		return nil
	}
	name := p.curToken.Literal

	var parent *Class
	if p.peekIs(tokenLParen) {
		p.nextToken()
		if !p.expectPeek(tokenIdent, "base class name") {
			return nil
		}
		base, ok := p.classes[p.curToken.Literal]
		if !ok {
			p.addParseError(p.curToken.Pos, fmt.Sprintf("unknown base class %s", p.curToken.Literal))
			return nil
		}
		parent = base
		if !p.expectPeek(tokenRParen, "')'") {
			return nil
		}
	}
	if !p.expectPeek(tokenColon, "':'") || !p.expectNewline() || !p.expectPeek(tokenIndent, "an indented class body") {
		return nil
	}

	// registered before the body so methods can construct their own class
	class := NewClass(name, nil, parent)
	p.classes[name] = class

	p.nextToken()
	for !p.curIs(tokenDedent) && !p.curIs(tokenEOF) {
		switch p.curToken.Type {
		case tokenDef:
			method := p.parseMethod(class)
			switch {
			case method == nil:
				p.recoverLine()
			case class.ownsMethod(method.Name):
				p.addParseError(method.Body.Pos(), fmt.Sprintf("method %s is defined twice in class %s", method.Name, name))
			default:
				class.Methods = append(class.Methods, method)
			}
		case tokenIndent:
			p.addParseError(p.curToken.Pos, "unexpected indent")
			p.skipBlock()
		default:
			p.errorExpected(p.curToken, "method definition")
			p.recoverLine()
		}
		p.nextToken()
	}

	p.declared = append(p.declared, class)
	return &ClassDefStmt{Class: class, position: pos}
}

func (p *parser) parseMethod(class *Class) *Method {
	pos := p.curToken.Pos
	if !p.expectPeek(tokenIdent, "method name") {
		return nil
	}
	name := p.curToken.Literal
	if !p.expectPeek(tokenLParen, "'('") || !p.expectPeek(tokenIdent, "self") {
		return nil
	}
	if p.curToken.Literal != selfName {
		p.addParseError(p.curToken.Pos, fmt.Sprintf("first parameter of %s.%s must be self", class.Name, name))
		return nil
	}

	var params []string
	seen := map[string]bool{selfName: true}
	for p.peekIs(tokenComma) {
		p.nextToken()
		if !p.expectPeek(tokenIdent, "parameter name") {
			return nil
		}
		param := p.curToken.Literal
		if seen[param] {
			p.addParseError(p.curToken.Pos, fmt.Sprintf("duplicate parameter %s", param))
			return nil
		}
		seen[param] = true
		params = append(params, param)
	}
	if !p.expectPeek(tokenRParen, "')'") || !p.expectPeek(tokenColon, "':'") {
		return nil
	}

	body := p.parseSuite()
	if body == nil {
		return nil
	}
	return &Method{Name: name, Params: params, Body: &MethodBodyStmt{Body: body, position: pos}}
}
