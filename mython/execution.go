package mython

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Execution is the per-run state threaded through every Execute call. It
// carries the output sink used by print, the method call stack, and the
// limits configured on the Engine.
type Execution struct {
	engine       *Engine
	ctx          context.Context
	out          io.Writer
	logger       *slog.Logger
	quota        int
	recursionCap int
	steps        int
	callStack    []callFrame
}

type callFrame struct {
	Function string
	Pos      Position
}

// Depth is the current method-call nesting depth.
func (exec *Execution) Depth() int { return len(exec.callStack) }

// Steps is the number of nodes evaluated so far.
func (exec *Execution) Steps() int { return exec.steps }

func (exec *Execution) step() error {
	exec.steps++
	if exec.quota > 0 && exec.steps > exec.quota {
		return fmt.Errorf("%w (%d)", ErrStepQuotaExceeded, exec.quota)
	}
	if exec.ctx != nil {
		select {
		case <-exec.ctx.Done():
			return exec.ctx.Err()
		default:
		}
	}
	return nil
}

// eval is the single entry point for evaluating a child node.
func (exec *Execution) eval(stmt Statement, env *Env) (Value, bool, error) {
	if err := exec.step(); err != nil {
		return NewNone(), false, exec.wrapError(err, stmt.Pos())
	}
	return stmt.Execute(env, exec)
}

// evalValue evaluates a node in expression position. A return flag raised
// inside an expression cannot happen with parser-built trees; it is
// dropped here.
func (exec *Execution) evalValue(stmt Statement, env *Env) (Value, error) {
	val, _, err := exec.eval(stmt, env)
	return val, err
}

func (exec *Execution) evalArgs(args []Statement, env *Env) ([]Value, error) {
	values := make([]Value, len(args))
	for i, arg := range args {
		val, err := exec.evalValue(arg, env)
		if err != nil {
			return nil, err
		}
		values[i] = val
	}
	return values, nil
}

func (exec *Execution) pushFrame(function string, pos Position) error {
	if exec.recursionCap > 0 && len(exec.callStack) >= exec.recursionCap {
		return exec.errorAt(pos, ErrStackOverflow, "recursion depth exceeded (limit %d)", exec.recursionCap)
	}
	exec.callStack = append(exec.callStack, callFrame{Function: function, Pos: pos})
	return nil
}

func (exec *Execution) popFrame() {
	if len(exec.callStack) == 0 {
		return
	}
	exec.callStack = exec.callStack[:len(exec.callStack)-1]
}
