package ast

import (
	"fmt"
	"strings"
)

// Statement is any top-level declaration in a .r file: a type declaration,
// a resource definition, or one of the smaller directive-adjacent forms
// (change/data/delete/enum/include/read).
type Statement interface {
	Node
	statementNode()
}

type stmtBase struct{ baseNode }

func (stmtBase) statementNode() {}

// File is the root of a parsed .r file: an ordered sequence of statements.
type File struct {
	baseNode
	Statements []Statement
}

func (f *File) String() string {
	parts := make([]string, len(f.Statements))
	for i, s := range f.Statements {
		parts[i] = s.String()
	}

	return strings.Join(parts, "\n")
}

// ---- resource spec (the type/id/name header shared by several statements) ----

// ResourceSpec is the "'TYPE' (id[, name][, attributes])" header used by
// resource/change/data/delete statements, or "'TYPE'" alone when referring
// to a whole resource type rather than one instance. Per spec invariant (c),
// Attributes is either a sequence of named attribute keywords (ORed at
// evaluation, see AttributeWeightOf) xor a single explicit int expression
// in AttributesExpr; at most one of the two is ever populated.
type ResourceSpec struct {
	Type           string // four-character resource type code
	ID             IntExpression
	IDRange        *IDRange // set instead of ID when the spec names a range
	Name           StringExpression
	Attributes     []string // named attribute keywords, OR'd together
	AttributesExpr IntExpression // set instead of Attributes for an explicit int expression
	TypeOnly       bool     // true when only Type is present (a "type" reference, not an instance)
}

func (s ResourceSpec) String() string {
	if s.TypeOnly {
		return fmt.Sprintf("%q", s.Type)
	}
	parts := []string{fmt.Sprintf("%q", s.Type)}
	switch {
	case s.IDRange != nil:
		parts = append(parts, s.IDRange.String())
	case s.ID != nil:
		parts = append(parts, s.ID.String())
	}
	if s.Name != nil {
		parts = append(parts, s.Name.String())
	}
	if s.AttributesExpr != nil {
		parts = append(parts, s.AttributesExpr.String())
	} else {
		parts = append(parts, s.Attributes...)
	}

	return strings.Join(parts, ", ")
}

// ---- statements ----

// Resource is a "resource 'TYPE' (...) { resource_values... }" definition,
// the statement that produces one resource's worth of packed data. Its body
// is a list of plain values (bare identifiers, expressions, nested arrays,
// or switch blocks) rather than the field-type grammar; that only appears
// inside a Type statement's body.
type Resource struct {
	stmtBase
	Spec   ResourceSpec
	Values []ResourceValue
}

func (s *Resource) String() string {
	return fmt.Sprintf("resource %s {...}", s.Spec.String())
}

// Type declares (or aliases) a resource type's field layout. Fields is set
// for "type 'TYPE' { ... }"; Alias is set instead for "type 'TYPE' as
// 'OTHER'" and "type 'TYPE' as 'OTHER'(id)", reusing another type's layout.
type Type struct {
	stmtBase
	Spec   ResourceSpec // the type (and optional id/range) being declared
	Fields []Field
	Alias  *ResourceSpec // non-nil for the "as" form
}

func (s *Type) String() string {
	if s.Alias != nil {
		return fmt.Sprintf("type %s as %s", s.Spec.String(), s.Alias.String())
	}

	return fmt.Sprintf("type %s {...}", s.Spec.String())
}

// Change renames/renumbers an existing resource: "change 'TYPE' (old) to 'TYPE' (new)".
type Change struct {
	stmtBase
	From ResourceSpec
	To   ResourceSpec
}

func (s *Change) String() string {
	return fmt.Sprintf("change %s to %s", s.From.String(), s.To.String())
}

// Data replaces a resource's raw bytes directly, bypassing the field grammar:
// "data 'TYPE' (id) { $$hex-or-string-literal-concat$$ };".
type Data struct {
	stmtBase
	Spec  ResourceSpec
	Value StringExpression
}

func (s *Data) String() string { return fmt.Sprintf("data %s {...}", s.Spec.String()) }

// Delete removes a resource from the output: "delete 'TYPE' (id)".
type Delete struct {
	stmtBase
	Spec ResourceSpec
}

func (s *Delete) String() string { return fmt.Sprintf("delete %s", s.Spec.String()) }

// Include is the "include" statement (distinct from the #include/#import
// directive, which the preprocessor consumes before the parser ever sees a
// token): it names a source file and, in four of its five syntactic forms,
// narrows which resource types from that file participate in compilation.
//
// The five forms normalize onto these fields as follows:
//
//	include "path";                                   -> bare Path
//	include "path" 'TYPE'(5);                         -> UseSpec
//	include "path" not 'TYPE';                         -> Inverted, NotType
//	include "path" 'TYPE' as 'OTHR';                   -> UseSpec.TypeOnly, As.TypeOnly
//	include "path" 'TYPE'(5) as 'OTHR'(6, "name");     -> UseSpec, As
type Include struct {
	stmtBase
	Path     StringExpression
	UseSpec  *ResourceSpec
	Inverted bool
	NotType  IntExpression
	As       *ResourceSpec
}

func (s *Include) String() string { return fmt.Sprintf("include %s", s.Path.String()) }

// Read loads a resource's data from an external file: "read 'TYPE' (id) "path"".
type Read struct {
	stmtBase
	Spec ResourceSpec
	Path StringExpression
}

func (s *Read) String() string { return fmt.Sprintf("read %s %s", s.Spec.String(), s.Path.String()) }

// Enum declares one or more named integer constants, with implicit
// increment-by-one when a constant omits an explicit value: "enum { a, b=5, c };".
type Enum struct {
	stmtBase
	Name      string // empty for an anonymous "enum { ... };"
	Constants []EnumConstant
}

func (s *Enum) String() string { return fmt.Sprintf("enum %s {...}", s.Name) }

// EnumConstant is one member of an Enum statement.
type EnumConstant struct {
	Name  string
	Value IntExpression // nil when implicitly one more than the previous constant
}
