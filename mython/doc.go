// Package mython implements Mython, a small class-based scripting language
// with Python-like syntax.
//
// Source text is compiled by an Engine into a Program: an indentation-aware
// lexer feeds a recursive-descent parser that resolves class names and
// builds a tree of Statement nodes. Executing a node evaluates it against
// an Env and an Execution, which carries the output sink and the limits
// configured on the Engine.
//
// Values are None, bool, number (int64), string, class and class instance.
// Classes have single inheritance; instances dispatch ==, <, + and printing
// to the __eq__, __lt__, __add__ and __str__ methods when they define them.
package mython
