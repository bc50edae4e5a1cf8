// Package eval implements the Rez constant-expression evaluator: it walks
// the ResourceValue AST produced by pkg/parser and computes Go-native
// int64/[]byte values, backed by a symbol table and a small amount of
// simulated "current resource" / clock state that the $ built-in functions
// read from.
package eval

import (
	"time"

	"github.com/rezfront/rezfront/internal/ast"
	"github.com/rezfront/rezfront/internal/value"
)

// REZVersion is reported by $$Version. It is not a real Rez/DeRez version
// string (those are produced by Apple's binary), matching how this module
// reports its own identity rather than impersonating one.
const REZVersion = "rezfront 0.1"

// ArrayState tracks the position of an in-progress ArrayField expansion, so
// $$ArrayIndex and $$CountOf can answer from inside a field initializer
// that is itself being evaluated as part of that array.
type ArrayState struct {
	Name       string
	ArrayIndex int
	CountOf    int
	Parent     *ArrayState
}

// ResourceState is the resource currently being assembled, exposing
// $$Type/$$ID/$$Name/$$Attributes/$$ResourceSize and the raw bytes that
// $$BitField/$$Byte/$$Word/$$Long read from.
type ResourceState struct {
	Type       string
	ID         int64
	Name       []byte
	Attributes int64
	Data       []byte
}

// Hooks are the host-injectable string functions the evaluator does not
// implement itself, since they read the filesystem, the environment, or
// need caller-supplied formatting. A nil Read, Resource or Shell field makes
// that function return an "unimplemented" EvalError; a nil Format makes
// $$Format use the built-in %d/%s/%x/%% formatter.
type Hooks struct {
	Read     func(path []byte) ([]byte, error)
	Resource func(path []byte, resType string, id int64, name []byte) ([]byte, error)
	Shell    func(name string) ([]byte, error)
	Format   func(format []byte, args []interface{}) ([]byte, error)
}

// Evaluator computes the value of ResourceValue expressions against a
// mutable environment: bound symbols, named array cursors, the resource
// currently being built, and a fixed evaluation clock.
type Evaluator struct {
	Symbols *value.SymbolTable
	Arrays  map[string]*ArrayState

	CurrentResource *ResourceState
	Clock           time.Time
	Hooks           Hooks
}

// New creates an Evaluator with an empty symbol table and the clock fixed
// at the given instant. A fixed, caller-supplied clock keeps $$Date/$$Time
// evaluation deterministic, unlike a live time.Now() would.
func New(clock time.Time) *Evaluator {
	return &Evaluator{
		Symbols: value.NewSymbolTable(),
		Arrays:  make(map[string]*ArrayState),
		Clock:   clock,
	}
}

// Eval computes the Go-native value of any ResourceValue: int64 for every
// IntExpression, []byte for every StringExpression.
func (e *Evaluator) Eval(expr ast.ResourceValue) (interface{}, error) {
	switch n := expr.(type) {
	case *ast.Symbol:
		return e.evalSymbol(n)
	case ast.IntExpression:
		return e.evalInt(n)
	case ast.StringExpression:
		return e.evalString(n)
	default:
		return nil, errf("don't know how to evaluate %T", expr)
	}
}

// EvalInt evaluates expr and requires the result to be an integer.
func (e *Evaluator) EvalInt(expr ast.ResourceValue) (int64, error) {
	v, err := e.Eval(expr)
	if err != nil {
		return 0, err
	}
	i, ok := v.(int64)
	if !ok {
		return 0, errf("expected an integer expression, got %T", v)
	}

	return i, nil
}

// EvalString evaluates expr and requires the result to be a byte string.
func (e *Evaluator) EvalString(expr ast.ResourceValue) ([]byte, error) {
	v, err := e.Eval(expr)
	if err != nil {
		return nil, err
	}
	s, ok := v.([]byte)
	if !ok {
		return nil, errf("expected a string expression, got %T", v)
	}

	return s, nil
}

func (e *Evaluator) evalSymbol(n *ast.Symbol) (interface{}, error) {
	v, ok := e.Symbols.Get(n.Name)
	if !ok {
		return nil, errf("cannot evaluate unknown symbol %q", n.Name)
	}
	switch val := v.(type) {
	case value.Int:
		return int64(val), nil
	case value.Str:
		return []byte(val), nil
	case value.Array:
		return nil, errf("missing subscript on label %q", n.Name)
	default:
		return nil, errf("symbol %q has an unrecognized value type", n.Name)
	}
}

func (e *Evaluator) evalLabelSubscript(name string, subscripts []ast.IntExpression) (int64, error) {
	v, ok := e.Symbols.Get(name)
	if !ok {
		return 0, errf("cannot evaluate subscript of unknown label %q", name)
	}

	var cur value.Value = v
	for _, sub := range subscripts {
		idx, err := e.EvalInt(sub)
		if err != nil {
			return 0, err
		}
		arr, ok := cur.(value.Array)
		if !ok {
			return 0, errf("too many subscripts for label %q", name)
		}
		elem, ok := arr.At(int(idx))
		if !ok {
			return 0, errf("subscript %d out of range for label %q", idx, name)
		}
		cur = elem
	}

	if _, ok := cur.(value.Array); ok {
		return 0, errf("too few subscripts for label %q", name)
	}
	i, ok := cur.(value.Int)
	if !ok {
		return 0, errf("label %q does not resolve to an integer", name)
	}

	return int64(i), nil
}
