package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/mythonlang/mython/mython"
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(err.Error()))
		os.Exit(1)
	}
}

func runCLI(args []string) error {
	if len(args) < 2 {
		return usageError()
	}
	switch args[1] {
	case "run":
		return runCommand(args[2:])
	case "check":
		return checkCommand(args[2:])
	case "analyze":
		return analyzeCommand(args[2:])
	case "tokens":
		return tokensCommand(args[2:])
	case "repl":
		return replCommand(args[2:])
	case "help", "-h", "--help":
		printUsage()
		return nil
	default:
		return usageError()
	}
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	configPath := fs.String("config", "", "YAML file with interpreter settings")
	logLevel := fs.String("log-level", "", "log level: trace, debug, info, warn, error, none")
	watch := fs.Bool("watch", false, "re-run the script whenever it changes")
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("mython run: script path required")
	}
	scriptPath := remaining[0]

	engine, err := newEngine(*configPath, *logLevel, os.Stderr)
	if err != nil {
		return err
	}

	if *watch {
		if scriptPath == stdinPath {
			return errors.New("mython run: -watch needs a script file")
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return watchScript(ctx, engine, scriptPath, os.Stdout, os.Stderr)
	}

	source, err := readScript(scriptPath)
	if err != nil {
		return err
	}
	return runSource(context.Background(), engine, source, os.Stdout)
}

func checkCommand(args []string) error {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("mython check: script path required")
	}
	source, err := readScript(remaining[0])
	if err != nil {
		return err
	}
	if _, err := mython.MustNewEngine(mython.Config{}).Compile(source); err != nil {
		return fmt.Errorf("compile failed: %w", err)
	}
	return nil
}

func tokensCommand(args []string) error {
	fs := flag.NewFlagSet("tokens", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}
	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("mython tokens: script path required")
	}
	source, err := readScript(remaining[0])
	if err != nil {
		return err
	}

	tokens, lexErr := mython.Tokenize(source)
	w := bufio.NewWriter(os.Stdout)
	for _, tok := range tokens {
		fmt.Fprintf(w, "%d:%d\t%s\t%q\n", tok.Pos.Line, tok.Pos.Column, tok.Type, tok.Literal)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if lexErr != nil {
		return fmt.Errorf("tokenize failed: %w", lexErr)
	}
	return nil
}

// stdinPath names standard input in place of a script file.
const stdinPath = "-"

func readScript(path string) (string, error) {
	if path == stdinPath {
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(input), nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve script path: %w", err)
	}
	input, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("read script: %w", err)
	}
	return string(input), nil
}

func runSource(ctx context.Context, engine *mython.Engine, source string, out io.Writer) error {
	program, err := engine.Compile(source)
	if err != nil {
		return fmt.Errorf("compile failed: %w", err)
	}
	w := bufio.NewWriter(out)
	runErr := program.Run(ctx, nil, w)
	if err := w.Flush(); err != nil && runErr == nil {
		return fmt.Errorf("write output: %w", err)
	}
	if runErr != nil {
		return fmt.Errorf("execution failed: %w", runErr)
	}
	return nil
}

func usageError() error {
	printUsage()
	return errors.New("invalid command")
}

func printUsage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [flags] [script]\n", prog)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  run [-config file] [-log-level level] [-watch] <script|->")
	fmt.Fprintln(os.Stderr, "    compile and execute a script, printing its output")
	fmt.Fprintln(os.Stderr, "  check <script|->")
	fmt.Fprintln(os.Stderr, "    compile a script without executing it")
	fmt.Fprintln(os.Stderr, "  analyze <script|->")
	fmt.Fprintln(os.Stderr, "    report unreachable code and suspicious method signatures")
	fmt.Fprintln(os.Stderr, "  tokens <script|->")
	fmt.Fprintln(os.Stderr, "    print the lexer token stream")
	fmt.Fprintln(os.Stderr, "  repl [-line] [-config file]")
	fmt.Fprintln(os.Stderr, "    start an interactive session")
}

type flagErrorSink struct{}

func (flagErrorSink) Write(p []byte) (int, error) {
	return len(p), nil
}
