package mython

import "sort"

// Env maps names to values. It backs the program scope, every method call
// frame, and the field storage of each instance. Frames do not chain: a
// method sees only self, its parameters and its own locals.
type Env struct {
	values map[string]Value
}

func NewEnv() *Env {
	return &Env{values: make(map[string]Value)}
}

func (e *Env) Get(name string) (Value, bool) {
	val, ok := e.values[name]
	return val, ok
}

func (e *Env) Set(name string, val Value) {
	e.values[name] = val
}

func (e *Env) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

func (e *Env) Len() int { return len(e.values) }

// Names returns the bound names in lexical order.
func (e *Env) Names() []string {
	names := make([]string, 0, len(e.values))
	for name := range e.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
