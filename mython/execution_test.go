package mython

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func compileScript(t *testing.T, source string) *Program {
	t.Helper()
	engine := MustNewEngine(Config{})
	program, err := engine.Compile(source)
	if err != nil {
		t.Fatalf("compile error: %v", err)
	}
	return program
}

func runScript(t *testing.T, source string) string {
	t.Helper()
	var out strings.Builder
	if err := compileScript(t, source).Run(context.Background(), nil, &out); err != nil {
		t.Fatalf("run error: %v\noutput so far: %q", err, out.String())
	}
	return out.String()
}

func runScriptError(t *testing.T, source string, want error) error {
	t.Helper()
	err := compileScript(t, source).Run(context.Background(), nil, io.Discard)
	if err == nil {
		t.Fatalf("expected %v, got nil", want)
	}
	if !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
	return err
}

func newTestExecution(out io.Writer) *Execution {
	return MustNewEngine(Config{}).newExecution(context.Background(), out)
}

func num(n int64) *NumberLiteral { return &NumberLiteral{Value: n} }
func str(s string) *StringLiteral { return &StringLiteral{Value: s} }

// pointClass builds, without the parser:
//
//	class Point:
//	  def __init__(self, x, y):
//	    self.x = x
//	    self.y = y
//	  def __str__(self):
//	    return str(self.x) + ',' + str(self.y)
func pointClass() *Class {
	ctor := &Method{
		Name:   initMethod,
		Params: []string{"x", "y"},
		Body: MethodBody(
			&FieldAssignStmt{Object: Var("self"), Field: "x", Value: Var("x")},
			&FieldAssignStmt{Object: Var("self"), Field: "y", Value: Var("y")},
		),
	}
	toString := &Method{
		Name: strMethod,
		Body: MethodBody(&ReturnStmt{Value: &ArithmeticExpr{
			Op: OpAdd,
			Left: &ArithmeticExpr{
				Op:    OpAdd,
				Left:  &StringifyExpr{Arg: Var("self.x")},
				Right: str(","),
			},
			Right: &StringifyExpr{Arg: Var("self.y")},
		}}),
	}
	return NewClass("Point", []*Method{ctor, toString}, nil)
}

func TestHandBuiltPointPrintsThroughStr(t *testing.T) {
	point := pointClass()
	root := &CompoundStmt{Statements: []Statement{
		&ClassDefStmt{Class: point},
		&PrintStmt{Args: []Statement{&MethodCallExpr{
			Object: &NewInstanceExpr{Class: point, Args: []Statement{num(1), num(2)}},
			Method: strMethod,
		}}},
	}}

	var out strings.Builder
	env := NewEnv()
	if err := MustNewEngine(Config{}).Run(context.Background(), root, env, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := out.String(); got != "1,2\n" {
		t.Fatalf("output mismatch: got %q", got)
	}
	bound, ok := env.Get("Point")
	if !ok || bound.Class() != point {
		t.Fatalf("expected Point bound to its class, got %v", bound)
	}
}

func TestPrintMultipleArgumentsEmitsOneNewline(t *testing.T) {
	var out strings.Builder
	exec := newTestExecution(&out)
	val, returned, err := exec.eval(&PrintStmt{Args: []Statement{num(1), num(2)}}, NewEnv())
	if err != nil {
		t.Fatalf("print: %v", err)
	}
	if returned {
		t.Fatalf("print must not raise the return flag")
	}
	if got := out.String(); got != "1 2\n" {
		t.Fatalf("output mismatch: got %q", got)
	}
	if !val.Equal(NewNumber(2)) {
		t.Fatalf("expected last printed value, got %v", val)
	}
}

func TestPrintNoneAndEmpty(t *testing.T) {
	var out strings.Builder
	exec := newTestExecution(&out)
	env := NewEnv()
	for _, stmt := range []Statement{
		&PrintStmt{Args: []Statement{&NoneLiteral{}}},
		&PrintStmt{},
		&PrintStmt{Args: []Statement{&BoolLiteral{Value: true}, str("a b"), &NoneLiteral{}}},
	} {
		if _, _, err := exec.eval(stmt, env); err != nil {
			t.Fatalf("print: %v", err)
		}
	}
	if got, want := out.String(), "None\n\nTrue a b None\n"; got != want {
		t.Fatalf("output mismatch: got %q want %q", got, want)
	}
}

func TestFieldAssignWithoutInit(t *testing.T) {
	box := NewClass("Box", nil, nil)
	env := NewEnv()
	root := &CompoundStmt{Statements: []Statement{
		&AssignStmt{Name: "b", Value: &NewInstanceExpr{Class: box, Args: []Statement{num(9)}}},
		&FieldAssignStmt{Object: Var("b"), Field: "v", Value: num(5)},
		&AssignStmt{Name: "got", Value: Var("b.v")},
	}}
	if err := MustNewEngine(Config{}).Run(context.Background(), root, env, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	got, _ := env.Get("got")
	if !got.Equal(NewNumber(5)) {
		t.Fatalf("expected 5, got %v", got)
	}
}

func TestMethodNotFoundForNameAndArity(t *testing.T) {
	point := pointClass()
	for _, tc := range []struct {
		name   string
		method string
		args   []Statement
	}{
		{name: "missing name", method: "norm"},
		{name: "wrong arity", method: strMethod, args: []Statement{num(1)}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			root := &MethodCallExpr{
				Object: &NewInstanceExpr{Class: point, Args: []Statement{num(1), num(2)}},
				Method: tc.method,
				Args:   tc.args,
			}
			err := MustNewEngine(Config{}).Run(context.Background(), root, nil, nil)
			if !errors.Is(err, ErrMethodNotFound) {
				t.Fatalf("expected ErrMethodNotFound, got %v", err)
			}
			var re *RuntimeError
			if !errors.As(err, &re) || re.KindName() != "MethodNotFound" {
				t.Fatalf("expected MethodNotFound RuntimeError, got %#v", err)
			}
		})
	}
}

func TestReturnUnwindsToMethodBody(t *testing.T) {
	var out strings.Builder
	class := NewClass("Early", []*Method{{
		Name: "run",
		Body: MethodBody(
			&IfElseStmt{
				Condition: &BoolLiteral{Value: true},
				Then: &CompoundStmt{Statements: []Statement{
					&ReturnStmt{Value: num(1)},
					&PrintStmt{Args: []Statement{str("unreachable")}},
				}},
			},
			&PrintStmt{Args: []Statement{str("after if")}},
		),
	}}, nil)

	exec := newTestExecution(&out)
	inst := NewInstance(class).Instance()
	val, err := exec.CallMethod(inst, "run", nil, Position{})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if !val.Equal(NewNumber(1)) {
		t.Fatalf("expected 1, got %v", val)
	}
	if out.Len() != 0 {
		t.Fatalf("statements after return ran: %q", out.String())
	}
}

func TestMethodBodyWithoutReturnIsNone(t *testing.T) {
	body := MethodBody(&AssignStmt{Name: "x", Value: num(3)})
	val, returned, err := body.Execute(NewEnv(), newTestExecution(io.Discard))
	if err != nil || returned {
		t.Fatalf("unexpected result: returned=%v err=%v", returned, err)
	}
	if !val.IsNone() {
		t.Fatalf("expected None, got %v", val)
	}
}

func TestCompoundPropagatesReturnFlag(t *testing.T) {
	var out strings.Builder
	block := &CompoundStmt{Statements: []Statement{
		&ReturnStmt{Value: str("done")},
		&PrintStmt{Args: []Statement{str("skipped")}},
	}}
	val, returned, err := block.Execute(NewEnv(), newTestExecution(&out))
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !returned || val.String() != "done" {
		t.Fatalf("expected raised return of done, got %v returned=%v", val, returned)
	}
	if out.Len() != 0 {
		t.Fatalf("sibling statement ran: %q", out.String())
	}
}

func TestOrShortCircuitSkipsRightOperand(t *testing.T) {
	var out strings.Builder
	box := NewClass("Noisy", []*Method{{
		Name: "touch",
		Body: MethodBody(
			&PrintStmt{Args: []Statement{str("side effect")}},
			&ReturnStmt{Value: &BoolLiteral{Value: true}},
		),
	}}, nil)
	env := NewEnv()
	env.Set("n", NewInstance(box))
	sideEffect := &MethodCallExpr{Object: Var("n"), Method: "touch"}

	exec := newTestExecution(&out)
	for _, expr := range []Statement{
		&LogicalExpr{Op: LogicalOr, Left: &BoolLiteral{Value: true}, Right: sideEffect},
		&LogicalExpr{Op: LogicalAnd, Left: &BoolLiteral{Value: false}, Right: sideEffect},
	} {
		if _, _, err := exec.eval(expr, env); err != nil {
			t.Fatalf("eval: %v", err)
		}
	}
	if out.Len() != 0 {
		t.Fatalf("right operand was evaluated: %q", out.String())
	}

	val, err := exec.evalValue(&LogicalExpr{Op: LogicalOr, Left: num(0), Right: sideEffect}, env)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if !val.Equal(NewBool(true)) || out.String() != "side effect\n" {
		t.Fatalf("expected right operand to run once, got %v and %q", val, out.String())
	}
}

func TestVariableErrors(t *testing.T) {
	env := NewEnv()
	env.Set("n", NewNumber(1))
	env.Set("b", NewInstance(NewClass("Box", nil, nil)))
	exec := newTestExecution(io.Discard)

	cases := []struct {
		expr Statement
		want error
	}{
		{Var("missing"), ErrUndefinedVariable},
		{Var("missing.x"), ErrUndefinedVariable},
		{Var("n.x"), ErrAttributeNotFound},
		{Var("b.x"), ErrAttributeNotFound},
		{&VariableExpr{}, ErrEmptyPath},
		{&FieldAssignStmt{Object: Var("n"), Field: "x", Value: num(1)}, ErrAttributeNotFound},
		{&MethodCallExpr{Object: Var("n"), Method: "m"}, ErrTypeMismatch},
	}
	for _, tc := range cases {
		if _, _, err := exec.eval(tc.expr, env); !errors.Is(err, tc.want) {
			t.Fatalf("%T: expected %v, got %v", tc.expr, tc.want, err)
		}
	}
}

func TestNewVariablePathRejectsEmpty(t *testing.T) {
	if _, err := NewVariablePath(); !errors.Is(err, ErrEmptyPath) {
		t.Fatalf("expected ErrEmptyPath, got %v", err)
	}
	if _, err := NewVariablePath("a", ""); !errors.Is(err, ErrEmptyPath) {
		t.Fatalf("expected ErrEmptyPath for empty segment, got %v", err)
	}
	expr, err := NewVariablePath("self", "pos", "x")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Join(expr.Path, "."); got != "self.pos.x" {
		t.Fatalf("unexpected path %q", got)
	}
}

func TestInstancesAreShared(t *testing.T) {
	out := runScript(t, `
class Box:
  def set(self, v):
    self.v = v
a = Box()
b = a
b.set(3)
print a.v
`)
	if out != "3\n" {
		t.Fatalf("expected alias to observe mutation, got %q", out)
	}
}

func TestMethodFrameHidesCallerLocals(t *testing.T) {
	err := runScriptError(t, `
secret = 1
class Spy:
  def peek(self):
    return secret
Spy().peek()
`, ErrUndefinedVariable)
	if !strings.Contains(err.Error(), "at Spy.peek") {
		t.Fatalf("expected stack frame in error, got %v", err)
	}
}

func TestMismatchedInitIsSkipped(t *testing.T) {
	out := runScript(t, `
class P:
  def __init__(self, x):
    print 'init'
    self.x = x
p = P(1, undefined_name)
print str(p)
`)
	if out != "<P object>\n" {
		t.Fatalf("expected init to be skipped, got %q", out)
	}
	runScriptError(t, `
class P:
  def __init__(self, x):
    self.x = x
p = P()
print p.x
`, ErrAttributeNotFound)
}

func TestRuntimeErrorFramesAtTopLevel(t *testing.T) {
	err := runScriptError(t, "print 1 / 0\n", ErrDivisionByZero)
	var re *RuntimeError
	if !errors.As(err, &re) {
		t.Fatalf("expected RuntimeError, got %T", err)
	}
	if len(re.Frames) != 1 || re.Frames[0].Function != "<program>" {
		t.Fatalf("unexpected frames: %#v", re.Frames)
	}
	if ErrorKind(err) != "DivisionByZero" {
		t.Fatalf("unexpected kind %q", ErrorKind(err))
	}
}
