package mython

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"
)

const countdownSource = `
class R:
  def down(self, n):
    if n == 0:
      return 0
    return self.down(n - 1) + 1
print R().down(DEPTH)
`

func countdown(depth string) string {
	return strings.Replace(countdownSource, "DEPTH", depth, 1)
}

func TestRecursionLimitExceeded(t *testing.T) {
	engine := MustNewEngine(Config{RecursionLimit: 3})
	program, err := engine.Compile(countdown("5"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}

	err = program.Run(context.Background(), nil, io.Discard)
	if !errors.Is(err, ErrStackOverflow) {
		t.Fatalf("expected ErrStackOverflow, got %v", err)
	}
	var re *RuntimeError
	if !errors.As(err, &re) {
		t.Fatalf("expected RuntimeError, got %T", err)
	}
	if !strings.Contains(err.Error(), "recursion depth exceeded (limit 3)") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRecursionLimitAllowsWithinBound(t *testing.T) {
	engine := MustNewEngine(Config{RecursionLimit: 5})
	program, err := engine.Compile(countdown("4"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	var out strings.Builder
	if err := program.Run(context.Background(), nil, &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "4\n" {
		t.Fatalf("got %q", out.String())
	}
}

func TestDeepRecursionTraceIsTruncated(t *testing.T) {
	engine := MustNewEngine(Config{RecursionLimit: 40})
	program, err := engine.Compile(countdown("100"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	err = program.Run(context.Background(), nil, io.Discard)
	if !errors.Is(err, ErrStackOverflow) {
		t.Fatalf("expected ErrStackOverflow, got %v", err)
	}
	if !strings.Contains(err.Error(), "frames omitted") {
		t.Fatalf("expected truncated trace, got %v", err)
	}
}

func TestPrintOfSelfReturningStrOverflows(t *testing.T) {
	engine := MustNewEngine(Config{RecursionLimit: 10})
	program, err := engine.Compile("class A:\n  def __str__(self):\n    return self\nprint A()\n")
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	var out strings.Builder
	err = program.Run(context.Background(), nil, &out)
	if !errors.Is(err, ErrStackOverflow) {
		t.Fatalf("expected ErrStackOverflow, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestPrintUnwindsStrFrames(t *testing.T) {
	exec := newTestExecution(io.Discard)
	loop := NewClass("Loop", []*Method{{
		Name: strMethod,
		Body: MethodBody(&ReturnStmt{Value: Var("self")}),
	}}, nil)
	err := exec.printValue(io.Discard, NewInstance(loop), Position{})
	if !errors.Is(err, ErrStackOverflow) {
		t.Fatalf("expected ErrStackOverflow, got %v", err)
	}
	if exec.Depth() != 0 {
		t.Fatalf("expected call stack to unwind, depth %d", exec.Depth())
	}
	if exec.Steps() == 0 {
		t.Fatalf("expected __str__ bodies to be counted as steps")
	}
}

func TestStepQuotaExceeded(t *testing.T) {
	engine := MustNewEngine(Config{StepQuota: 50})
	program, err := engine.Compile(countdown("100"))
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	err = program.Run(context.Background(), nil, io.Discard)
	if !errors.Is(err, ErrStepQuotaExceeded) {
		t.Fatalf("expected ErrStepQuotaExceeded, got %v", err)
	}
	if ErrorKind(err) != "StepQuotaExceeded" {
		t.Fatalf("unexpected kind %q", ErrorKind(err))
	}
}

func TestCanceledContextStopsRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	program := compileScript(t, countdown("10"))
	err := program.Run(ctx, nil, io.Discard)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDeadlineStopsRun(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()
	err := compileScript(t, countdown("10")).Run(ctx, nil, io.Discard)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestNewEngineValidatesConfig(t *testing.T) {
	if _, err := NewEngine(Config{StepQuota: -1}); err == nil {
		t.Fatalf("expected negative step quota to fail")
	}
	if _, err := NewEngine(Config{RecursionLimit: -1}); err == nil {
		t.Fatalf("expected negative recursion limit to fail")
	}
	engine := MustNewEngine(Config{})
	if got := engine.Config().RecursionLimit; got != defaultRecursionLimit {
		t.Fatalf("expected default recursion limit, got %d", got)
	}
	if engine.Config().Logger == nil {
		t.Fatalf("expected a default logger")
	}
}
