package mython

import (
	"context"
	"io"
)

// Program is a compiled script: its top-level statements and the classes
// it declares.
type Program struct {
	engine  *Engine
	Root    *CompoundStmt
	Classes []*Class
	source  string
}

// Run executes the program on its engine.
func (p *Program) Run(ctx context.Context, env *Env, out io.Writer) error {
	return p.engine.Run(ctx, p.Root, env, out)
}

// Class returns the declared class called name, or nil. When a name is
// declared twice the later declaration wins.
func (p *Program) Class(name string) *Class {
	for i := len(p.Classes) - 1; i >= 0; i-- {
		if p.Classes[i].Name == name {
			return p.Classes[i]
		}
	}
	return nil
}

func (p *Program) Source() string {
	return p.source
}
