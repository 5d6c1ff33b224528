package mython

import "strings"

// NewVariablePath builds a variable reference from one or more segments.
// A path like self.pos.x is passed as "self", "pos", "x".
func NewVariablePath(path ...string) (*VariableExpr, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}
	for _, seg := range path {
		if seg == "" {
			return nil, ErrEmptyPath
		}
	}
	return &VariableExpr{Path: append([]string(nil), path...)}, nil
}

// Var is NewVariablePath for a dotted string; it panics on an empty path
// and is meant for hand-built trees in hosts and tests.
func Var(dotted string) *VariableExpr {
	expr, err := NewVariablePath(strings.Split(dotted, ".")...)
	if err != nil {
		panic(err)
	}
	return expr
}

// MethodBody wraps statements into the body of a method.
func MethodBody(stmts ...Statement) *MethodBodyStmt {
	return &MethodBodyStmt{Body: &CompoundStmt{Statements: stmts}}
}
