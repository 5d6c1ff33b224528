package mython

import "strings"

func (e *NumberLiteral) Execute(env *Env, exec *Execution) (Value, bool, error) {
	return NewNumber(e.Value), false, nil
}

func (e *StringLiteral) Execute(env *Env, exec *Execution) (Value, bool, error) {
	return NewString(e.Value), false, nil
}

func (e *BoolLiteral) Execute(env *Env, exec *Execution) (Value, bool, error) {
	return NewBool(e.Value), false, nil
}

func (e *NoneLiteral) Execute(env *Env, exec *Execution) (Value, bool, error) {
	return NewNone(), false, nil
}

func (s *AssignStmt) Execute(env *Env, exec *Execution) (Value, bool, error) {
	val, err := exec.evalValue(s.Value, env)
	if err != nil {
		return NewNone(), false, err
	}
	env.Set(s.Name, val)
	return val, false, nil
}

func (e *VariableExpr) Execute(env *Env, exec *Execution) (Value, bool, error) {
	if len(e.Path) == 0 {
		return NewNone(), false, exec.errorAt(e.Pos(), ErrEmptyPath, "empty variable path")
	}
	val, ok := env.Get(e.Path[0])
	if !ok {
		return NewNone(), false, exec.errorAt(e.Pos(), ErrUndefinedVariable, "undefined variable %s", e.Path[0])
	}
	for i, seg := range e.Path[1:] {
		inst := val.Instance()
		if inst == nil {
			return NewNone(), false, exec.errorAt(e.Pos(), ErrAttributeNotFound, "%s is %s, not an instance", strings.Join(e.Path[:i+1], "."), describeValue(val))
		}
		val, ok = inst.Fields.Get(seg)
		if !ok {
			return NewNone(), false, exec.errorAt(e.Pos(), ErrAttributeNotFound, "%s object has no attribute %s", inst.Class.Name, seg)
		}
	}
	return val, false, nil
}

func (s *FieldAssignStmt) Execute(env *Env, exec *Execution) (Value, bool, error) {
	obj, err := exec.evalValue(s.Object, env)
	if err != nil {
		return NewNone(), false, err
	}
	inst := obj.Instance()
	if inst == nil {
		return NewNone(), false, exec.errorAt(s.Pos(), ErrAttributeNotFound, "cannot set attribute %s on %s", s.Field, describeValue(obj))
	}
	val, err := exec.evalValue(s.Value, env)
	if err != nil {
		return NewNone(), false, err
	}
	inst.Fields.Set(s.Field, val)
	return val, false, nil
}

func (s *PrintStmt) Execute(env *Env, exec *Execution) (Value, bool, error) {
	last := NewNone()
	for i, arg := range s.Args {
		if i > 0 {
			if err := exec.writeString(" ", s.Pos()); err != nil {
				return NewNone(), false, err
			}
		}
		val, err := exec.evalValue(arg, env)
		if err != nil {
			return NewNone(), false, err
		}
		if err := exec.printValue(exec.out, val, arg.Pos()); err != nil {
			return NewNone(), false, err
		}
		last = val
	}
	if err := exec.writeString("\n", s.Pos()); err != nil {
		return NewNone(), false, err
	}
	return last, false, nil
}

func (e *MethodCallExpr) Execute(env *Env, exec *Execution) (Value, bool, error) {
	obj, err := exec.evalValue(e.Object, env)
	if err != nil {
		return NewNone(), false, err
	}
	inst := obj.Instance()
	if inst == nil {
		return NewNone(), false, exec.errorAt(e.Pos(), ErrTypeMismatch, "cannot call method %s on %s", e.Method, describeValue(obj))
	}
	args, err := exec.evalArgs(e.Args, env)
	if err != nil {
		return NewNone(), false, err
	}
	val, err := exec.CallMethod(inst, e.Method, args, e.Pos())
	return val, false, err
}

func (e *NewInstanceExpr) Execute(env *Env, exec *Execution) (Value, bool, error) {
	val, err := exec.construct(e.Class, e.Args, env, e.Pos())
	return val, false, err
}

func (e *StringifyExpr) Execute(env *Env, exec *Execution) (Value, bool, error) {
	val, err := exec.evalValue(e.Arg, env)
	if err != nil {
		return NewNone(), false, err
	}
	text, err := exec.stringify(val, e.Pos())
	if err != nil {
		return NewNone(), false, err
	}
	return NewString(text), false, nil
}

func (e *ArithmeticExpr) Execute(env *Env, exec *Execution) (Value, bool, error) {
	left, err := exec.evalValue(e.Left, env)
	if err != nil {
		return NewNone(), false, err
	}
	right, err := exec.evalValue(e.Right, env)
	if err != nil {
		return NewNone(), false, err
	}
	val, err := exec.arithmetic(e.Op, left, right, e.Pos())
	return val, false, err
}

func (e *ComparisonExpr) Execute(env *Env, exec *Execution) (Value, bool, error) {
	left, err := exec.evalValue(e.Left, env)
	if err != nil {
		return NewNone(), false, err
	}
	right, err := exec.evalValue(e.Right, env)
	if err != nil {
		return NewNone(), false, err
	}
	ok, err := exec.compare(e.Op, left, right, e.Pos())
	if err != nil {
		return NewNone(), false, err
	}
	return NewBool(ok), false, nil
}

func (e *LogicalExpr) Execute(env *Env, exec *Execution) (Value, bool, error) {
	left, err := exec.evalValue(e.Left, env)
	if err != nil {
		return NewNone(), false, err
	}
	leftTrue, err := exec.truth(left, e.Left.Pos())
	if err != nil {
		return NewNone(), false, err
	}
	switch {
	case e.Op == LogicalOr && leftTrue:
		return NewBool(true), false, nil
	case e.Op == LogicalAnd && !leftTrue:
		return NewBool(false), false, nil
	}
	right, err := exec.evalValue(e.Right, env)
	if err != nil {
		return NewNone(), false, err
	}
	rightTrue, err := exec.truth(right, e.Right.Pos())
	if err != nil {
		return NewNone(), false, err
	}
	return NewBool(rightTrue), false, nil
}

func (e *NotExpr) Execute(env *Env, exec *Execution) (Value, bool, error) {
	val, err := exec.evalValue(e.Arg, env)
	if err != nil {
		return NewNone(), false, err
	}
	ok, err := exec.truth(val, e.Pos())
	if err != nil {
		return NewNone(), false, err
	}
	return NewBool(!ok), false, nil
}

func (s *CompoundStmt) Execute(env *Env, exec *Execution) (Value, bool, error) {
	for _, stmt := range s.Statements {
		val, returned, err := exec.eval(stmt, env)
		if err != nil {
			return NewNone(), false, err
		}
		if returned {
			return val, true, nil
		}
	}
	return NewNone(), false, nil
}

func (s *ReturnStmt) Execute(env *Env, exec *Execution) (Value, bool, error) {
	if s.Value == nil {
		return NewNone(), true, nil
	}
	val, err := exec.evalValue(s.Value, env)
	if err != nil {
		return NewNone(), false, err
	}
	return val, true, nil
}

func (s *MethodBodyStmt) Execute(env *Env, exec *Execution) (Value, bool, error) {
	val, returned, err := exec.eval(s.Body, env)
	if err != nil {
		return NewNone(), false, err
	}
	if !returned {
		return NewNone(), false, nil
	}
	return val, false, nil
}

func (s *IfElseStmt) Execute(env *Env, exec *Execution) (Value, bool, error) {
	cond, err := exec.evalValue(s.Condition, env)
	if err != nil {
		return NewNone(), false, err
	}
	ok, err := exec.truth(cond, s.Condition.Pos())
	if err != nil {
		return NewNone(), false, err
	}
	if ok {
		return exec.eval(s.Then, env)
	}
	if s.Else != nil {
		return exec.eval(s.Else, env)
	}
	return NewNone(), false, nil
}

func (s *ClassDefStmt) Execute(env *Env, exec *Execution) (Value, bool, error) {
	val := NewClassValue(s.Class)
	env.Set(s.Class.Name, val)
	return val, false, nil
}
