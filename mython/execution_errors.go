package mython

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUndefinedVariable = errors.New("undefined variable")
	ErrAttributeNotFound = errors.New("attribute not found")
	ErrMethodNotFound    = errors.New("method not found")
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrStackOverflow     = errors.New("stack overflow")
	ErrStepQuotaExceeded = errors.New("step quota exceeded")
	ErrEmptyPath         = errors.New("empty variable path")
)

type StackFrame struct {
	Function string
	Pos      Position
}

// RuntimeError is the error returned by a failed evaluation. Kind is one
// of the Err sentinels above, so callers match it with errors.Is.
type RuntimeError struct {
	Kind    error
	Message string
	Frames  []StackFrame
}

const (
	runtimeErrorFrameHead = 8
	runtimeErrorFrameTail = 8
)

func (re *RuntimeError) Error() string {
	var b strings.Builder
	b.WriteString(re.Message)
	renderFrame := func(frame StackFrame) {
		if frame.Pos.Line > 0 {
			fmt.Fprintf(&b, "\n  at %s (%d:%d)", frame.Function, frame.Pos.Line, frame.Pos.Column)
		} else {
			fmt.Fprintf(&b, "\n  at %s", frame.Function)
		}
	}

	if len(re.Frames) <= runtimeErrorFrameHead+runtimeErrorFrameTail {
		for _, frame := range re.Frames {
			renderFrame(frame)
		}
		return b.String()
	}

	for _, frame := range re.Frames[:runtimeErrorFrameHead] {
		renderFrame(frame)
	}
	omitted := len(re.Frames) - (runtimeErrorFrameHead + runtimeErrorFrameTail)
	fmt.Fprintf(&b, "\n  ... %d frames omitted ...", omitted)
	for _, frame := range re.Frames[len(re.Frames)-runtimeErrorFrameTail:] {
		renderFrame(frame)
	}
	return b.String()
}

func (re *RuntimeError) Unwrap() error {
	return re.Kind
}

// KindName returns the short taxonomy name, e.g. "TypeMismatch".
func (re *RuntimeError) KindName() string {
	return errorKindName(re.Kind)
}

func errorKindName(err error) string {
	switch {
	case errors.Is(err, ErrUndefinedVariable):
		return "UndefinedVariable"
	case errors.Is(err, ErrAttributeNotFound):
		return "AttributeNotFound"
	case errors.Is(err, ErrMethodNotFound):
		return "MethodNotFound"
	case errors.Is(err, ErrTypeMismatch):
		return "TypeMismatch"
	case errors.Is(err, ErrDivisionByZero):
		return "DivisionByZero"
	case errors.Is(err, ErrStackOverflow):
		return "StackOverflow"
	case errors.Is(err, ErrStepQuotaExceeded):
		return "StepQuotaExceeded"
	case errors.Is(err, ErrEmptyPath):
		return "EmptyPath"
	default:
		return "RuntimeError"
	}
}

// ErrorKind classifies any error produced by this package; it returns ""
// for nil and "RuntimeError" for errors outside the taxonomy.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	return errorKindName(err)
}

func sentinelOf(err error) error {
	for _, sentinel := range []error{
		ErrUndefinedVariable,
		ErrAttributeNotFound,
		ErrMethodNotFound,
		ErrTypeMismatch,
		ErrDivisionByZero,
		ErrStackOverflow,
		ErrStepQuotaExceeded,
		ErrEmptyPath,
	} {
		if errors.Is(err, sentinel) {
			return sentinel
		}
	}
	return nil
}

func (exec *Execution) errorAt(pos Position, kind error, format string, args ...any) error {
	return exec.newRuntimeError(kind, fmt.Sprintf(format, args...), pos)
}

func (exec *Execution) newRuntimeError(kind error, message string, pos Position) error {
	frames := make([]StackFrame, 0, len(exec.callStack)+1)
	// each frame reports the function and the position executing in it
	for i := len(exec.callStack) - 1; i >= 0; i-- {
		frames = append(frames, StackFrame{Function: exec.callStack[i].Function, Pos: pos})
		pos = exec.callStack[i].Pos
	}
	frames = append(frames, StackFrame{Function: "<program>", Pos: pos})
	return &RuntimeError{Kind: kind, Message: message, Frames: frames}
}

// wrapError turns a plain error from a helper into a RuntimeError carrying
// the current stack. RuntimeErrors and context errors pass through.
func (exec *Execution) wrapError(err error, pos Position) error {
	if err == nil {
		return nil
	}
	var re *RuntimeError
	if errors.As(err, &re) {
		return err
	}
	kind := sentinelOf(err)
	if kind == nil {
		return err
	}
	return exec.newRuntimeError(kind, err.Error(), pos)
}
