package mython

import (
	"fmt"
	"strconv"
)

type ValueKind int

const (
	KindNone ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindClass
	KindInstance
)

// Value is a single runtime datum. The zero Value is None, so "no result"
// and an explicit None are indistinguishable.
type Value struct {
	kind ValueKind
	data any
}

func (k ValueKind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindClass:
		return "class"
	case KindInstance:
		return "instance"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// String renders the value without dispatching to user code. Instances use
// the opaque placeholder even when their class defines __str__; use
// StringifyExpr or the print statement for the language-level conversion.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.data.(string)
	case KindNone:
		return "None"
	case KindBool:
		if v.Bool() {
			return "True"
		}
		return "False"
	case KindNumber:
		return strconv.FormatInt(v.data.(int64), 10)
	case KindClass:
		return "Class " + v.data.(*Class).Name
	case KindInstance:
		return v.data.(*Instance).placeholder()
	default:
		return ""
	}
}

// Equal reports structural identity: same kind and same payload, with
// classes and instances compared by reference. It never calls __eq__.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNone:
		return true
	case KindBool:
		return v.Bool() == other.Bool()
	case KindNumber:
		return v.Number() == other.Number()
	case KindString:
		return v.data.(string) == other.data.(string)
	case KindClass:
		return v.Class() == other.Class()
	case KindInstance:
		return v.Instance() == other.Instance()
	default:
		return false
	}
}

// IsTrue implements the language truth test. Classes and instances have no
// truth value.
func IsTrue(v Value) (bool, error) {
	switch v.kind {
	case KindNone:
		return false, nil
	case KindBool:
		return v.Bool(), nil
	case KindNumber:
		return v.Number() != 0, nil
	case KindString:
		return v.data.(string) != "", nil
	default:
		return false, fmt.Errorf("%w: %s has no truth value", ErrTypeMismatch, describeValue(v))
	}
}

func describeValue(v Value) string {
	switch v.kind {
	case KindClass:
		return "class " + v.Class().Name
	case KindInstance:
		return v.Instance().Class.Name + " instance"
	default:
		return v.kind.String()
	}
}
