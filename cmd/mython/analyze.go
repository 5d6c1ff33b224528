package main

import (
	"errors"
	"flag"
	"fmt"
	"sort"

	"github.com/mythonlang/mython/mython"
)

const programScope = "<program>"

type lintWarning struct {
	Scope   string
	Pos     mython.Position
	Message string
}

// dunderArity is the number of parameters, not counting self, that the
// interpreter passes to each special method.
var dunderArity = map[string]int{
	"__str__": 0,
	"__eq__":  1,
	"__lt__":  1,
	"__add__": 1,
}

func analyzeCommand(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(new(flagErrorSink))
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) == 0 {
		return errors.New("mython analyze: script path required")
	}

	scriptPath := remaining[0]
	source, err := readScript(scriptPath)
	if err != nil {
		return err
	}

	engine := mython.MustNewEngine(mython.Config{})
	program, err := engine.Compile(source)
	if err != nil {
		return fmt.Errorf("analysis compile failed: %w", err)
	}

	warnings := analyzeProgram(program)
	if len(warnings) == 0 {
		fmt.Println("No issues found")
		return nil
	}

	for _, warning := range warnings {
		line := max(warning.Pos.Line, 1)
		column := max(warning.Pos.Column, 1)
		fmt.Printf("%s:%d:%d: %s (%s)\n", scriptPath, line, column, warning.Message, warning.Scope)
	}

	return fmt.Errorf("analysis found %d issue(s)", len(warnings))
}

func analyzeProgram(program *mython.Program) []lintWarning {
	warnings := make([]lintWarning, 0)
	lintStatements(programScope, program.Root.Statements, &warnings)

	for _, class := range program.Classes {
		for _, method := range class.Methods {
			scope := class.Name + "." + method.Name
			lintStatements(scope, statementList(method.Body), &warnings)
			lintSignature(class, method, &warnings)
		}
	}

	sort.SliceStable(warnings, func(i, j int) bool {
		if warnings[i].Pos.Line != warnings[j].Pos.Line {
			return warnings[i].Pos.Line < warnings[j].Pos.Line
		}
		if warnings[i].Pos.Column != warnings[j].Pos.Column {
			return warnings[i].Pos.Column < warnings[j].Pos.Column
		}
		return warnings[i].Scope < warnings[j].Scope
	})

	return warnings
}

func lintSignature(class *mython.Class, method *mython.Method, warnings *[]lintWarning) {
	scope := class.Name + "." + method.Name
	pos := method.Body.Pos()

	if want, ok := dunderArity[method.Name]; ok && len(method.Params) != want {
		*warnings = append(*warnings, lintWarning{
			Scope:   scope,
			Pos:     pos,
			Message: fmt.Sprintf("%s takes %d parameter(s) besides self but is called with %d", method.Name, len(method.Params), want),
		})
	}

	if method.Name == "__init__" {
		return
	}
	owner, base := overriddenMethod(class.Parent, method.Name)
	if base != nil && len(base.Params) != len(method.Params) {
		*warnings = append(*warnings, lintWarning{
			Scope:   scope,
			Pos:     pos,
			Message: fmt.Sprintf("override of %s.%s changes arity from %d to %d", owner.Name, method.Name, len(base.Params), len(method.Params)),
		})
	}
}

// overriddenMethod finds the nearest ancestor definition of name.
func overriddenMethod(class *mython.Class, name string) (*mython.Class, *mython.Method) {
	for c := class; c != nil; c = c.Parent {
		for _, method := range c.Methods {
			if method.Name == name {
				return c, method
			}
		}
	}
	return nil, nil
}

func statementList(stmt mython.Statement) []mython.Statement {
	switch typed := stmt.(type) {
	case nil:
		return nil
	case *mython.CompoundStmt:
		return typed.Statements
	case *mython.MethodBodyStmt:
		return statementList(typed.Body)
	default:
		return []mython.Statement{stmt}
	}
}

func lintStatements(scope string, statements []mython.Statement, warnings *[]lintWarning) bool {
	terminated := false
	for _, stmt := range statements {
		if terminated {
			*warnings = append(*warnings, lintWarning{
				Scope:   scope,
				Pos:     stmt.Pos(),
				Message: "unreachable statement",
			})
			continue
		}
		if statementTerminates(scope, stmt, warnings) {
			terminated = true
		}
	}
	return terminated
}

func statementTerminates(scope string, stmt mython.Statement, warnings *[]lintWarning) bool {
	switch typed := stmt.(type) {
	case *mython.ReturnStmt:
		return true
	case *mython.IfElseStmt:
		thenTerminated := lintStatements(scope, statementList(typed.Then), warnings)
		if typed.Else == nil {
			return false
		}
		elseTerminated := lintStatements(scope, statementList(typed.Else), warnings)
		return thenTerminated && elseTerminated
	case *mython.CompoundStmt:
		return lintStatements(scope, typed.Statements, warnings)
	default:
		return false
	}
}
