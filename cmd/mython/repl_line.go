package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mythonlang/mython/mython"
	"github.com/peterh/liner"
)

const (
	linePrompt             = ">>> "
	lineContinuationPrompt = "... "
)

// lineREPL is the plain line-editor REPL used off-terminal or with -line.
type lineREPL struct {
	session *mython.Session
	out     io.Writer
	buffer  inputBuffer
}

func historyPath() string {
	return filepath.Join(os.TempDir(), ".mython_history")
}

func runLineREPL(session *mython.Session, out io.Writer) error {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetMultiLineMode(true)

	r := &lineREPL{session: session, out: out}
	line.SetCompleter(func(input string) []string {
		prefix, word := lastWord(input)
		matches := completions(r.session, word)
		for i, match := range matches {
			matches[i] = prefix + match
		}
		return matches
	})

	if f, err := os.Open(historyPath()); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyPath()); err == nil {
			_, _ = line.WriteHistory(f)
			f.Close()
		}
	}()

	fmt.Fprintln(out, "Mython REPL. Type :help for commands, Ctrl+D to quit.")

	for {
		prompt := linePrompt
		if r.buffer.pending() {
			prompt = lineContinuationPrompt
		}
		input, err := line.PromptWithSuggestion(prompt, r.buffer.indent(), -1)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				r.buffer.reset()
				fmt.Fprintln(out, "^C")
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(out)
				return nil
			}
			return fmt.Errorf("read input: %w", err)
		}

		entry, quit := r.feed(input)
		if entry != "" {
			line.AppendHistory(entry)
		}
		if quit {
			return nil
		}
	}
}

// feed handles one input line. It returns the completed entry, if any, for
// the history, and whether the user asked to quit.
func (r *lineREPL) feed(input string) (string, bool) {
	trimmed := strings.TrimSpace(input)
	if !r.buffer.pending() && strings.HasPrefix(trimmed, ":") {
		return trimmed, r.command(trimmed)
	}
	if !r.buffer.add(input) {
		return "", false
	}

	source := r.buffer.source()
	r.buffer.reset()
	output, isErr := evalInput(r.session, source)
	if isErr {
		fmt.Fprintln(r.out, errorStyle.Render(output))
	} else {
		fmt.Fprintln(r.out, output)
	}
	return strings.TrimSuffix(source, "\n"), false
}

func (r *lineREPL) command(input string) bool {
	cmd := strings.Fields(input)[0]
	switch cmd {
	case ":help", ":h":
		fmt.Fprintln(r.out, "Commands:")
		fmt.Fprintln(r.out, "  :vars         list variables")
		fmt.Fprintln(r.out, "  :load <file>  run a file in this session")
		fmt.Fprintln(r.out, "  :reset        drop every variable and class")
		fmt.Fprintln(r.out, "  :quit         exit")
		fmt.Fprintln(r.out, "A line ending in ':' opens a block; an empty line ends it.")
	case ":vars", ":v":
		vars := r.session.Vars()
		if len(vars) == 0 {
			fmt.Fprintln(r.out, "(no variables)")
		}
		for _, binding := range vars {
			fmt.Fprintf(r.out, "  %s = %s\n", binding.Name, binding.Value.String())
		}
	case ":reset", ":r":
		r.session.Reset()
		fmt.Fprintln(r.out, "Session reset")
	case ":load", ":l":
		output, isErr := loadFile(r.session, strings.TrimSpace(strings.TrimPrefix(input, cmd)))
		if isErr {
			fmt.Fprintln(r.out, errorStyle.Render(output))
		} else {
			fmt.Fprintln(r.out, output)
		}
	case ":quit", ":q":
		return true
	default:
		fmt.Fprintf(r.out, "Unknown command: %s (type :help for commands)\n", cmd)
	}
	return false
}
