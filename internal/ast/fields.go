package ast

import (
	"fmt"
	"strings"
)

// ============================================================================
// Field types (the declarations inside "type 'TYPE' { ... }")
// ============================================================================

// FieldType is any of the field-type declarations that can appear inside a
// "type" statement's body: a simple scalar type, or an array/switch
// structural wrapper around a nested list of field types.
type FieldType interface {
	Node
	fieldTypeNode()
}

type fieldTypeBase struct{ baseNode }

func (fieldTypeBase) fieldTypeNode() {}

// NumericBase selects the textual base a numeric field is declared with;
// it does not affect the packed bit layout, only how literal defaults in
// the type body are parsed.
type NumericBase int

const (
	BaseDecimal NumericBase = iota
	BaseHex
	BaseOctal
	BaseBinary
)

// NumericFieldType is BYTE/INTEGER/LONGINT/BITSTRING[n] or their unsigned
// variants, carrying an explicit bit size matching the classic Rez type
// keyword it was parsed from.
type NumericFieldType struct {
	fieldTypeBase
	Signed      bool
	Base        NumericBase
	Size        int // 8 (BYTE), 16 (INTEGER), 32 (LONGINT), or the bitstring width
	IsBitstring bool
}

func (t *NumericFieldType) String() string {
	if t.IsBitstring {
		return fmt.Sprintf("BITSTRING[%d]", t.Size)
	}
	switch t.Size {
	case 8:
		return "BYTE"
	case 16:
		return "INTEGER"
	default:
		return "LONGINT"
	}
}

// BooleanFieldType is the BOOLEAN keyword: a one-bit or one-byte flag field
// depending on context, always evaluated as 0/1.
type BooleanFieldType struct{ fieldTypeBase }

func (t *BooleanFieldType) String() string { return "BOOLEAN" }

// CharFieldType is the CHAR keyword: a single Mac OS Roman byte.
type CharFieldType struct{ fieldTypeBase }

func (t *CharFieldType) String() string { return "CHAR" }

// StringFieldFormat selects how a STRING field's length is encoded on disk.
type StringFieldFormat int

const (
	StringPascal StringFieldFormat = iota // length-prefixed, classic Pascal string
	StringCString                          // NUL-terminated
	StringFixed                            // fixed byte count, space-padded
)

// StringFieldType is STRING/PSTRING/CSTRING/WSTRING, optionally bounded by
// an explicit bracketed length ("cstring[16]"); Length is nil when the
// keyword carries no bracket.
type StringFieldType struct {
	fieldTypeBase
	Format StringFieldFormat
	Wide   bool // true for WSTRING (two-byte Rez-internal string, not Mac OS Roman)
	Length IntExpression
}

func (t *StringFieldType) String() string {
	name := "PSTRING"
	switch {
	case t.Wide:
		name = "WSTRING"
	case t.Format == StringCString:
		name = "CSTRING"
	case t.Format == StringFixed:
		name = "STRING"
	}
	if t.Length != nil {
		return fmt.Sprintf("%s[%s]", name, t.Length.String())
	}

	return name
}

// PointFieldType is the POINT keyword: a packed {v, h} pair of 16-bit words.
type PointFieldType struct{ fieldTypeBase }

func (t *PointFieldType) String() string { return "POINT" }

// RectFieldType is the RECT keyword: a packed {top, left, bottom, right}
// quad of 16-bit words.
type RectFieldType struct{ fieldTypeBase }

func (t *RectFieldType) String() string { return "RECT" }

// ============================================================================
// Fields (members of a resource's value body)
// ============================================================================

// Field is any member that can appear inside a resource body or inside an
// ArrayField/SwitchCase's nested body.
type Field interface {
	Node
	fieldNode()
}

type fieldBase struct{ baseNode }

func (fieldBase) fieldNode() {}

// Label marks a position in the field list so ArrayIndex/CountOf/subscripts
// can refer back to it: a bare "identifier:" line.
type Label struct {
	fieldBase
	Name string
}

func (f *Label) String() string { return f.Name + ":" }

// SymbolicConstant binds a name to an integer value for use as a field's
// symbolic default, e.g. "kRed = 1,".
type SymbolicConstant struct {
	fieldBase
	Name  string
	Value IntExpression
}

func (f *SymbolicConstant) String() string {
	return fmt.Sprintf("%s = %s", f.Name, f.Value.String())
}

// SimpleField is one scalar field declaration inside a type body: the type
// alone ("byte;"), the type with a default value ("integer = 5;"), or the
// type with symbolic constants ("byte red = 1, blue = 2;").
type SimpleField struct {
	fieldBase
	Type              FieldType
	Value             ResourceValue
	SymbolicConstants []SymbolicConstant
	IsKey             bool // true when this field selects a Switch's case
}

func (f *SimpleField) String() string {
	if f.Value == nil {
		return f.Type.String()
	}

	return fmt.Sprintf("%s = %s", f.Type.String(), f.Value.String())
}

// FillFieldUnit is the granularity a FillField pads by.
type FillFieldUnit int

const (
	FillBit FillFieldUnit = iota
	FillNibble
	FillByte
	FillWord
	FillLong
)

// FillField inserts Count units of zero padding: "fill long;" or "fill byte[4];".
type FillField struct {
	fieldBase
	Unit  FillFieldUnit
	Count IntExpression // nil means 1
}

func (f *FillField) String() string { return "fill" }

// AlignFieldUnit is the boundary an AlignField rounds the cursor up to.
type AlignFieldUnit int

const (
	AlignNibble AlignFieldUnit = iota
	AlignByte
	AlignWord
	AlignLong
)

// AlignField rounds the output cursor up to the next unit boundary: "align long;".
type AlignField struct {
	fieldBase
	Unit AlignFieldUnit
}

func (f *AlignField) String() string { return "align" }

// ArrayField repeats a nested field list: either until the resource's
// remaining value list is exhausted (the classic Rez idiom for a Label'd
// array, whose length is implied by however many values follow), or
// exactly Count times when an explicit bracketed count is given instead of
// a label. At most one of Label/Count is set (spec invariant (d)).
// Counted in 16-bit words instead of bytes when Wide is true.
type ArrayField struct {
	fieldBase
	Wide   bool
	Label  string        // optional; empty when the array itself is unlabeled
	Count  IntExpression // optional; set instead of Label for "array[N] {...}"
	Fields []Field
}

func (f *ArrayField) String() string {
	switch {
	case f.Count != nil:
		return fmt.Sprintf("array[%s] {...}", f.Count.String())
	default:
		return fmt.Sprintf("array %s {...}", f.Label)
	}
}

// SwitchCase is one labeled alternative inside a Switch field.
type SwitchCase struct {
	Label  string
	Fields []Field
}

// SwitchField selects one of several field-list alternatives at evaluation
// time, keyed by the most recently read SimpleField marked IsKey.
type SwitchField struct {
	fieldBase
	Cases []SwitchCase
}

func (f *SwitchField) String() string {
	labels := make([]string, len(f.Cases))
	for i, c := range f.Cases {
		labels[i] = c.Label
	}

	return "switch {" + strings.Join(labels, ", ") + "}"
}
