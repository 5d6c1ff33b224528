package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mythonlang/mython/mython"
)

var replKeywords = []string{
	"False",
	"None",
	"True",
	"and",
	"class",
	"def",
	"else",
	"if",
	"not",
	"or",
	"print",
	"return",
	"str",
}

// inputBuffer collects the lines of one REPL entry. A line ending in ':'
// opens a block that an empty line closes.
type inputBuffer struct {
	lines []string
}

// add appends line and reports whether the entry is complete.
func (b *inputBuffer) add(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(b.lines) == 0 {
		if trimmed == "" {
			return false
		}
		b.lines = append(b.lines, trimmed)
		return !strings.HasSuffix(trimmed, ":")
	}
	if trimmed == "" {
		return true
	}
	b.lines = append(b.lines, strings.TrimRight(line, " \t"))
	return false
}

func (b *inputBuffer) pending() bool {
	return len(b.lines) > 0
}

func (b *inputBuffer) source() string {
	return strings.Join(b.lines, "\n") + "\n"
}

func (b *inputBuffer) reset() {
	b.lines = nil
}

// indent is the indentation offered for the next continuation line.
func (b *inputBuffer) indent() string {
	if len(b.lines) == 0 {
		return ""
	}
	last := b.lines[len(b.lines)-1]
	n := len(last) - len(strings.TrimLeft(last, " "))
	if strings.HasSuffix(last, ":") {
		n += 2
	}
	return strings.Repeat(" ", n)
}

// evalInput runs source in session and renders what the user should see:
// the program output when it printed anything, otherwise the value of the
// last statement.
func evalInput(session *mython.Session, source string) (string, bool) {
	ctx := context.Background()
	var out strings.Builder
	val, err := session.Eval(ctx, source, &out)
	printed := strings.TrimSuffix(out.String(), "\n")
	if err != nil {
		if printed != "" {
			return printed + "\n" + err.Error(), true
		}
		return err.Error(), true
	}
	if printed != "" {
		return printed, false
	}
	return formatResult(ctx, session.Engine(), val)
}

func formatResult(ctx context.Context, engine *mython.Engine, val mython.Value) (string, bool) {
	if val.Kind() == mython.KindClass {
		return val.String(), false
	}
	s, err := engine.Stringify(ctx, val)
	if err != nil {
		return err.Error(), true
	}
	return s, false
}

func loadFile(session *mython.Session, path string) (string, bool) {
	if path == "" {
		return "usage: :load <file>", true
	}
	input, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("read %s: %v", path, err), true
	}
	return evalInput(session, string(input))
}

// completions returns the keywords, classes and variables starting with word.
func completions(session *mython.Session, word string) []string {
	if word == "" {
		return nil
	}
	seen := make(map[string]bool)
	var out []string
	add := func(candidate string) {
		if strings.HasPrefix(candidate, word) && !seen[candidate] {
			seen[candidate] = true
			out = append(out, candidate)
		}
	}
	for _, kw := range replKeywords {
		add(kw)
	}
	for _, class := range session.Classes() {
		add(class)
	}
	for _, binding := range session.Vars() {
		add(binding.Name)
	}
	sort.Strings(out)
	return out
}

// lastWord splits input before its trailing identifier.
func lastWord(input string) (string, string) {
	i := len(input)
	for i > 0 {
		c := input[i-1]
		if c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			i--
			continue
		}
		break
	}
	return input[:i], input[i:]
}
