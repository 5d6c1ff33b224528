package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mythonlang/mython/mython"
)

func newTestModel() replModel {
	return newREPLModel(mython.NewSession(mython.MustNewEngine(mython.Config{})))
}

func enter(t *testing.T, m replModel, input string) (replModel, tea.Cmd) {
	t.Helper()
	m.textInput.SetValue(input)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	rm, ok := model.(replModel)
	if !ok {
		t.Fatalf("unexpected model type %T", model)
	}
	return rm, cmd
}

func lookupVar(session *mython.Session, name string) (mython.Value, bool) {
	for _, binding := range session.Vars() {
		if binding.Name == name {
			return binding.Value, true
		}
	}
	return mython.Value{}, false
}

func TestUpdateQuitCommandReturnsQuit(t *testing.T) {
	rm, cmd := enter(t, newTestModel(), ":quit")

	if !rm.quitting {
		t.Fatalf("quitting flag not set")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after quit command")
	}
	if cmd == nil {
		t.Fatalf("expected tea.Quit command")
	}
	if msg := cmd(); msg != nil {
		if _, ok := msg.(tea.QuitMsg); !ok {
			t.Fatalf("expected QuitMsg, got %T", msg)
		}
	}
}

func TestUpdateNonQuitCommandDoesNotReturnCmd(t *testing.T) {
	rm, cmd := enter(t, newTestModel(), ":help")

	if cmd != nil {
		t.Fatalf("expected no command for non-quit input")
	}
	if rm.quitting {
		t.Fatalf("quitting should remain false")
	}
	if !rm.showHelp {
		t.Fatalf("help toggle should be enabled")
	}
	if rm.textInput.Value() != "" {
		t.Fatalf("input not cleared after command")
	}
}

func TestUpdateUnknownCommandIsReported(t *testing.T) {
	rm, _ := enter(t, newTestModel(), ":frobnicate")
	last := rm.history[len(rm.history)-1]
	if !last.isErr || last.output != "Unknown command: :frobnicate" {
		t.Fatalf("unexpected history entry %#v", last)
	}
}

func TestUpdateEvaluatesStatement(t *testing.T) {
	rm, _ := enter(t, newTestModel(), "score = 40 + 2")

	if len(rm.history) != 1 {
		t.Fatalf("expected one history entry, got %d", len(rm.history))
	}
	if entry := rm.history[0]; entry.isErr || entry.output != "42" || entry.input != "score = 40 + 2" {
		t.Fatalf("unexpected history entry %#v", entry)
	}
	score, ok := lookupVar(rm.session, "score")
	if !ok || !score.Equal(mython.NewNumber(42)) {
		t.Fatalf("expected score to be stored in session, got %v", score)
	}
	if len(rm.cmdHistory) != 1 || rm.cmdHistory[0] != "score = 40 + 2" {
		t.Fatalf("unexpected command history %v", rm.cmdHistory)
	}
}

func TestUpdateCollectsBlockUntilEmptyLine(t *testing.T) {
	m := newTestModel()

	m, _ = enter(t, m, "class Box:")
	if m.textInput.Value() != "  " || m.textInput.Prompt != replContinuationPrompt {
		t.Fatalf("expected continuation with indent, got prompt %q value %q", m.textInput.Prompt, m.textInput.Value())
	}
	m, _ = enter(t, m, "  def get(self):")
	if m.textInput.Value() != "    " {
		t.Fatalf("expected deeper indent, got %q", m.textInput.Value())
	}
	m, _ = enter(t, m, "    return 7")
	if len(m.history) != 0 {
		t.Fatalf("block evaluated too early: %#v", m.history)
	}
	m, _ = enter(t, m, "    ")

	if len(m.history) != 1 {
		t.Fatalf("expected block to be evaluated, got %#v", m.history)
	}
	if entry := m.history[0]; entry.isErr || entry.output != "Class Box" {
		t.Fatalf("unexpected block result %#v", entry)
	}
	if m.textInput.Prompt != replPrompt {
		t.Fatalf("prompt not restored: %q", m.textInput.Prompt)
	}

	m, _ = enter(t, m, "print Box().get()")
	if entry := m.history[1]; entry.isErr || entry.output != "7" {
		t.Fatalf("unexpected call result %#v", entry)
	}
}

func TestUpdateShowsRuntimeErrors(t *testing.T) {
	rm, _ := enter(t, newTestModel(), "print missing")
	entry := rm.history[0]
	if !entry.isErr || !strings.Contains(entry.output, "undefined variable missing") {
		t.Fatalf("unexpected history entry %#v", entry)
	}
}

func TestResetCommandClearsSession(t *testing.T) {
	m := newTestModel()
	m, _ = enter(t, m, "x = 1")
	m, _ = enter(t, m, ":reset")
	if vars := m.session.Vars(); len(vars) != 0 {
		t.Fatalf("expected empty session, got %v", vars)
	}
}

func TestLoadCommandRunsFile(t *testing.T) {
	path := writeFile(t, "lib.my", "class P:\n  def __str__(self):\n    return 'p'\np = P()\n")
	m, _ := enter(t, newTestModel(), ":load "+path)
	if entry := m.history[0]; entry.isErr {
		t.Fatalf("load failed: %#v", entry)
	}
	m, _ = enter(t, m, "p")
	if entry := m.history[1]; entry.isErr || entry.output != "p" {
		t.Fatalf("unexpected result %#v", entry)
	}
}

func TestHandleAutocomplete(t *testing.T) {
	m := newTestModel()
	m, _ = enter(t, m, "counter = 1")
	m.textInput.SetValue("print cou")
	model, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	rm := model.(replModel)
	if rm.textInput.Value() != "print counter" {
		t.Fatalf("unexpected completion %q", rm.textInput.Value())
	}
}

func TestCompletionsListsKeywordsAndVars(t *testing.T) {
	session := mython.NewSession(mython.MustNewEngine(mython.Config{}))
	if _, err := session.Eval(context.Background(), "class Printer:\n  def go(self):\n    return 1\npages = 2\n", nil); err != nil {
		t.Fatalf("eval: %v", err)
	}
	got := completions(session, "p")
	want := []string{"pages", "print"}
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("completions = %v, want %v", got, want)
	}
	if got := completions(session, "Pr"); len(got) != 1 || got[0] != "Printer" {
		t.Fatalf("expected class completion, got %v", got)
	}
}

func TestLineREPLFeed(t *testing.T) {
	var out bytes.Buffer
	r := &lineREPL{session: mython.NewSession(mython.MustNewEngine(mython.Config{})), out: &out}

	steps := []struct {
		input string
		entry string
	}{
		{"if 1 < 2:", ""},
		{"  print 'yes'", ""},
		{"", "if 1 < 2:\n  print 'yes'"},
		{"x = 5", "x = 5"},
		{":vars", ":vars"},
	}
	for _, step := range steps {
		entry, quit := r.feed(step.input)
		if quit {
			t.Fatalf("unexpected quit on %q", step.input)
		}
		if entry != step.entry {
			t.Fatalf("feed(%q) entry = %q, want %q", step.input, entry, step.entry)
		}
	}
	if _, quit := r.feed(":quit"); !quit {
		t.Fatalf("expected :quit to end the session")
	}

	if got := out.String(); got != "yes\n5\n  x = 5\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestInputBufferIndent(t *testing.T) {
	var b inputBuffer
	if b.add("   ") || b.pending() {
		t.Fatalf("blank first line should be ignored")
	}
	if !b.add("  x = 1") {
		t.Fatalf("simple statement should complete immediately")
	}
	if b.source() != "x = 1\n" {
		t.Fatalf("first line should be trimmed, got %q", b.source())
	}
	b.reset()
	b.add("class A:")
	b.add("  def f(self):")
	if b.indent() != "    " {
		t.Fatalf("unexpected indent %q", b.indent())
	}
	b.add("    return 1")
	if b.indent() != "    " {
		t.Fatalf("unexpected indent %q", b.indent())
	}
}

func TestViewRendersHistoryAndPanels(t *testing.T) {
	m := newTestModel()
	model, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 4})
	m = model.(replModel)
	m, _ = enter(t, m, "answer = 42")
	m, _ = enter(t, m, ":vars")

	view := m.View()
	for _, want := range []string{"Mython REPL", "answer = 42", "Variables"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}
