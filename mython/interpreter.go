package mython

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
)

const defaultRecursionLimit = 1000

// Config controls interpreter execution bounds and logging.
type Config struct {
	// StepQuota caps the number of evaluated nodes per run; 0 is unlimited.
	StepQuota int `yaml:"step_quota"`
	// RecursionLimit caps method-call depth; 0 selects the default.
	RecursionLimit int `yaml:"recursion_limit"`

	Logger *slog.Logger `yaml:"-"`
}

// Engine compiles and executes Mython programs. It holds no per-run state
// and may be shared between goroutines.
type Engine struct {
	config Config
	logger *slog.Logger
}

// NewEngine constructs an Engine with defaults applied.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.StepQuota < 0 {
		return nil, fmt.Errorf("step quota must not be negative, got %d", cfg.StepQuota)
	}
	if cfg.RecursionLimit < 0 {
		return nil, fmt.Errorf("recursion limit must not be negative, got %d", cfg.RecursionLimit)
	}
	if cfg.RecursionLimit == 0 {
		cfg.RecursionLimit = defaultRecursionLimit
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{config: cfg, logger: cfg.Logger}, nil
}

// MustNewEngine panics when NewEngine fails.
func MustNewEngine(cfg Config) *Engine {
	engine, err := NewEngine(cfg)
	if err != nil {
		panic(err)
	}
	return engine
}

// Config returns the effective configuration, defaults included.
func (e *Engine) Config() Config {
	return e.config
}

// Compile parses source into a Program bound to this engine.
func (e *Engine) Compile(source string) (*Program, error) {
	return e.compile(source, nil)
}

func (e *Engine) compile(source string, known map[string]*Class) (*Program, error) {
	l := newLexer(source)
	if len(l.errors) > 0 {
		return nil, errors.Join(l.errors...)
	}
	p := newParser(source, l.tokens, known)
	root, classes, errs := p.ParseProgram()
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	e.logger.Info("compiled program", "statements", len(root.Statements), "classes", len(classes))
	return &Program{engine: e, Root: root, Classes: classes, source: source}, nil
}

// Run executes root against env, writing print output to out. A nil env
// runs in a fresh one and a nil out discards output. A return statement
// outside any method stops the run.
func (e *Engine) Run(ctx context.Context, root Statement, env *Env, out io.Writer) error {
	if root == nil {
		return nil
	}
	_, err := e.execute(ctx, []Statement{root}, env, out)
	return err
}

// Stringify renders v the way str(v) does, running __str__ if needed.
func (e *Engine) Stringify(ctx context.Context, v Value) (string, error) {
	exec := e.newExecution(ctx, io.Discard)
	return exec.Stringify(v)
}

func (e *Engine) newExecution(ctx context.Context, out io.Writer) *Execution {
	if ctx == nil {
		ctx = context.Background()
	}
	if out == nil {
		out = io.Discard
	}
	return &Execution{
		engine:       e,
		ctx:          ctx,
		out:          out,
		logger:       e.logger,
		quota:        e.config.StepQuota,
		recursionCap: e.config.RecursionLimit,
	}
}

// execute evaluates stmts in order and returns the value of the last one
// that ran.
func (e *Engine) execute(ctx context.Context, stmts []Statement, env *Env, out io.Writer) (Value, error) {
	if env == nil {
		env = NewEnv()
	}
	exec := e.newExecution(ctx, out)
	last := NewNone()
	for _, stmt := range stmts {
		val, returned, err := exec.eval(stmt, env)
		if err != nil {
			e.logger.Warn("run failed", "kind", ErrorKind(err), "steps", exec.Steps(), "error", err)
			return NewNone(), err
		}
		last = val
		if returned {
			break
		}
	}
	e.logger.Debug("run finished", "steps", exec.Steps())
	return last, nil
}
