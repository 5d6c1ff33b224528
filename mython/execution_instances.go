package mython

import (
	"fmt"
	"io"
	"log/slog"
)

// CallMethod invokes name on inst with already evaluated arguments. The
// method runs in a fresh Env holding only self and its parameters.
func (exec *Execution) CallMethod(inst *Instance, name string, args []Value, pos Position) (Value, error) {
	if !inst.HasMethod(name, len(args)) {
		return NewNone(), exec.errorAt(pos, ErrMethodNotFound, "%s has no method %s with %d argument(s)", inst.Class.Name, name, len(args))
	}
	method := inst.Class.GetMethod(name)

	if err := exec.pushFrame(inst.Class.Name+"."+name, pos); err != nil {
		return NewNone(), err
	}
	defer exec.popFrame()

	if exec.logger.Enabled(exec.ctx, slog.LevelDebug) {
		exec.logger.Debug("call method", "class", inst.Class.Name, "method", name, "args", len(args), "depth", exec.Depth())
	}

	frame := NewEnv()
	frame.Set(selfName, NewInstanceValue(inst))
	for i, param := range method.Params {
		frame.Set(param, args[i])
	}

	// a body that is not wrapped in MethodBodyStmt still ends the unwind here
	val, _, err := exec.eval(method.Body, frame)
	if err != nil {
		return NewNone(), err
	}
	return val, nil
}

// construct allocates an instance and runs a matching __init__. A missing
// or differently sized __init__ is not an error: construction proceeds
// with only self bound and the arguments are left unevaluated.
func (exec *Execution) construct(class *Class, argExprs []Statement, env *Env, pos Position) (Value, error) {
	inst := newInstance(class)
	if !inst.HasMethod(initMethod, len(argExprs)) {
		if init := class.GetMethod(initMethod); init != nil {
			exec.logger.Debug("skip __init__ with mismatched arity", "class", class.Name, "want", len(init.Params), "got", len(argExprs))
		}
		return NewInstanceValue(inst), nil
	}
	args, err := exec.evalArgs(argExprs, env)
	if err != nil {
		return NewNone(), err
	}
	if _, err := exec.CallMethod(inst, initMethod, args, pos); err != nil {
		return NewNone(), err
	}
	return NewInstanceValue(inst), nil
}

// printValue writes the language-level representation of v to w.
func (exec *Execution) printValue(w io.Writer, v Value, pos Position) error {
	if inst := v.Instance(); inst != nil && inst.HasMethod(strMethod, 0) {
		result, err := exec.CallMethod(inst, strMethod, nil, pos)
		if err != nil {
			return err
		}
		// the frame stays pushed while the result prints, so a __str__
		// returning another printable instance counts toward the limit
		if err := exec.pushFrame(inst.Class.Name+"."+strMethod, pos); err != nil {
			return err
		}
		defer exec.popFrame()
		return exec.printValue(w, result, pos)
	}
	_, err := io.WriteString(w, v.String())
	return err
}

// stringify converts v to its str() text.
func (exec *Execution) stringify(v Value, pos Position) (string, error) {
	switch v.Kind() {
	case KindNone, KindBool, KindNumber, KindString:
		return v.String(), nil
	case KindInstance:
		inst := v.Instance()
		if !inst.HasMethod(strMethod, 0) {
			return inst.placeholder(), nil
		}
		result, err := exec.CallMethod(inst, strMethod, nil, pos)
		if err != nil {
			return "", err
		}
		switch result.Kind() {
		case KindInstance, KindClass:
			return inst.placeholder(), nil
		}
		return exec.stringify(result, pos)
	default:
		return "", exec.errorAt(pos, ErrTypeMismatch, "cannot convert %s to str", describeValue(v))
	}
}

// Stringify is the host-facing form of str(v).
func (exec *Execution) Stringify(v Value) (string, error) {
	return exec.stringify(v, Position{})
}

func (exec *Execution) writeString(s string, pos Position) error {
	if _, err := io.WriteString(exec.out, s); err != nil {
		return fmt.Errorf("write output at %d:%d: %w", pos.Line, pos.Column, err)
	}
	return nil
}
