package mython

// Method is one entry of a class's method table. Params fixes both the
// arity and the order in which call arguments are bound.
type Method struct {
	Name   string
	Params []string
	Body   Statement
}

// Class is built once and never mutated. Parent chains must be acyclic;
// the parser guarantees it because a parent has to be declared first.
type Class struct {
	Name    string
	Methods []*Method
	Parent  *Class
}

// Instance pairs a class with its own field environment. Fields always
// contain "self" bound to the instance.
type Instance struct {
	Class  *Class
	Fields *Env
}

const (
	selfName   = "self"
	initMethod = "__init__"
	strMethod  = "__str__"
	eqMethod   = "__eq__"
	ltMethod   = "__lt__"
	addMethod  = "__add__"
)

func NewClass(name string, methods []*Method, parent *Class) *Class {
	return &Class{Name: name, Methods: methods, Parent: parent}
}

// GetMethod returns the most-derived method called name, or nil.
func (c *Class) GetMethod(name string) *Method {
	for cur := c; cur != nil; cur = cur.Parent {
		for _, m := range cur.Methods {
			if m.Name == name {
				return m
			}
		}
	}
	return nil
}

func (c *Class) ownsMethod(name string) bool {
	for _, m := range c.Methods {
		if m.Name == name {
			return true
		}
	}
	return false
}

func newInstance(class *Class) *Instance {
	inst := &Instance{Class: class, Fields: NewEnv()}
	inst.Fields.Set(selfName, NewInstanceValue(inst))
	return inst
}

// NewInstance allocates an instance without running __init__.
func NewInstance(class *Class) Value {
	return NewInstanceValue(newInstance(class))
}

// HasMethod reports whether the class chain defines name with exactly
// arity parameters.
func (i *Instance) HasMethod(name string, arity int) bool {
	m := i.Class.GetMethod(name)
	return m != nil && len(m.Params) == arity
}

func (i *Instance) placeholder() string {
	return "<" + i.Class.Name + " object>"
}
