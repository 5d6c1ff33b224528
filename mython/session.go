package mython

import (
	"context"
	"io"
	"sort"
)

// Session evaluates source incrementally, keeping variables and declared
// classes between inputs. It backs the interactive REPL.
type Session struct {
	engine  *Engine
	env     *Env
	classes map[string]*Class
}

// Binding is one variable visible in a session.
type Binding struct {
	Name  string
	Value Value
}

func NewSession(engine *Engine) *Session {
	s := &Session{engine: engine}
	s.Reset()
	return s
}

// Eval compiles and runs source in the session and returns the value of
// the last statement. Classes become visible to later inputs only when
// source compiles.
func (s *Session) Eval(ctx context.Context, source string, out io.Writer) (Value, error) {
	program, err := s.engine.compile(source, s.classes)
	if err != nil {
		return NewNone(), err
	}
	for _, class := range program.Classes {
		s.classes[class.Name] = class
	}
	return s.engine.execute(ctx, program.Root.Statements, s.env, out)
}

// Vars lists the session variables in name order.
func (s *Session) Vars() []Binding {
	names := s.env.Names()
	vars := make([]Binding, 0, len(names))
	for _, name := range names {
		val, _ := s.env.Get(name)
		vars = append(vars, Binding{Name: name, Value: val})
	}
	return vars
}

// Classes lists the names of the classes known to the session.
func (s *Session) Classes() []string {
	names := make([]string, 0, len(s.classes))
	for name := range s.classes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Reset drops every variable and class.
func (s *Session) Reset() {
	s.env = NewEnv()
	s.classes = make(map[string]*Class)
}

func (s *Session) Engine() *Engine {
	return s.engine
}
