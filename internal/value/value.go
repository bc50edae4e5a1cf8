// Package value holds the runtime representation of Rez symbol-table
// entries: the scalar and array shapes a label can resolve to, independent
// of how the evaluator that owns the symbol table is organized.
package value

import (
	"fmt"
	"strings"
)

// Type identifies the runtime shape of a Value.
type Type byte

const (
	TypeInt Type = iota
	TypeStr
	TypeArray
)

// Value is anything a Rez symbol can resolve to: an integer, a Mac OS Roman
// byte string, or a (possibly nested) array of values reached via
// subscripting.
type Value interface {
	Type() Type
	String() string
	Equals(Value) bool
}

// Int is an integer-valued symbol, e.g. the value bound by a SymbolicConstant.
type Int int64

func (i Int) Type() Type     { return TypeInt }
func (i Int) String() string { return fmt.Sprintf("%d", int64(i)) }
func (i Int) Equals(v Value) bool {
	other, ok := v.(Int)

	return ok && i == other
}

// Str is a string-valued symbol, holding already-decoded Mac OS Roman bytes.
type Str []byte

func (s Str) Type() Type     { return TypeStr }
func (s Str) String() string { return fmt.Sprintf("%q", []byte(s)) }
func (s Str) Equals(v Value) bool {
	other, ok := v.(Str)

	return ok && string(s) == string(other)
}

// Array is a sequence-valued symbol: the bound value of a labeled array
// field, indexed 1-based via LabelSubscript. Elements may themselves be
// Arrays, matching a multi-dimensional ArrayField.
type Array []Value

func (a Array) Type() Type { return TypeArray }
func (a Array) String() string {
	parts := make([]string, len(a))
	for i, v := range a {
		parts[i] = v.String()
	}

	return "{" + strings.Join(parts, ", ") + "}"
}
func (a Array) Equals(v Value) bool {
	other, ok := v.(Array)
	if !ok || len(a) != len(other) {
		return false
	}
	for i, e := range a {
		if !e.Equals(other[i]) {
			return false
		}
	}

	return true
}

// At returns the 1-based subscript element of a, mirroring classic Rez's
// one-based array indexing.
func (a Array) At(i int) (Value, bool) {
	idx := i - 1
	if idx < 0 || idx >= len(a) {
		return nil, false
	}

	return a[idx], true
}
