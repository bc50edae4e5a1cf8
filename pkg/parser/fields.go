package parser

import (
	"github.com/rezfront/rezfront/internal/ast"
	"github.com/rezfront/rezfront/pkg/lexer"
)

// simpleFieldModifiers is the simple_field_modifier keyword set: zero or
// more of these may precede a simple_type.
var simpleFieldModifiers = map[string]bool{
	"key": true, "unsigned": true, "binary": true, "octal": true,
	"decimal": true, "hex": true, "literal": true,
}

// simpleTypeStart is the keyword set that begins a simple_type.
var simpleTypeStart = map[string]bool{
	"boolean": true, "bitstring": true, "byte": true, "integer": true,
	"longint": true, "char": true, "string": true, "cstring": true,
	"pstring": true, "wstring": true, "point": true, "rect": true,
}

// parseFields parses a "fields" list: zero or more field declarations up to
// the closing brace.
func (p *Parser) parseFields() []ast.Field {
	return p.parseFieldsUntil(func() bool { return p.cur.Type == lexer.RBRACE })
}

func (p *Parser) parseFieldsUntil(stop func() bool) []ast.Field {
	var fields []ast.Field
	for !stop() && p.cur.Type != lexer.EOF {
		f := p.parseField()
		if f != nil {
			fields = append(fields, f)
		}
	}

	return fields
}

// parseField parses one "field" production, dispatching on the leading
// token: a bare "name:" is a Label, "fill"/"align"/"switch" and
// "[wide] array" are their own structural fields, and anything else is
// expected to be a simple_field_modifiers_opt simple_type.
func (p *Parser) parseField() ast.Field {
	switch {
	case p.cur.Type == lexer.IDENTIFIER && p.peek.Type == lexer.COLON:
		name := p.cur.Literal
		p.advance()
		p.advance()

		return &ast.Label{Name: name}

	case p.curIsKeyword("fill"):
		return p.parseFillField()

	case p.curIsKeyword("align"):
		return p.parseAlignField()

	case p.curIsKeyword("wide") || p.curIsKeyword("array"):
		return p.parseArrayField()

	case p.curIsKeyword("switch"):
		return p.parseSwitchField()

	case p.cur.Type == lexer.KEYWORD && (simpleFieldModifiers[p.cur.Literal] || simpleTypeStart[p.cur.Literal]):
		return p.parseSimpleField()

	default:
		p.errorf("unexpected %s %q in field list", p.cur.Type, p.cur.Literal)
		p.advance()

		return nil
	}
}

func (p *Parser) parseSimpleField() ast.Field {
	isKey := false
	base := ast.BaseDecimal
	unsigned := false

	for p.cur.Type == lexer.KEYWORD && simpleFieldModifiers[p.cur.Literal] {
		switch p.cur.Literal {
		case "key":
			isKey = true
		case "unsigned":
			unsigned = true
		case "binary":
			base = ast.BaseBinary
		case "octal":
			base = ast.BaseOctal
		case "decimal":
			base = ast.BaseDecimal
		case "hex":
			base = ast.BaseHex
		case "literal":
			// Accepted for grammar compatibility; no structural effect.
		}
		p.advance()
	}

	fieldType := p.parseSimpleType(base, unsigned)

	switch {
	case p.cur.Type == lexer.SEMICOLON:
		p.advance()

		return &ast.SimpleField{Type: fieldType, IsKey: isKey}

	case p.cur.Type == lexer.ASSIGN:
		p.advance()
		value := p.parseResourceValue()
		p.expect(lexer.SEMICOLON)

		return &ast.SimpleField{Type: fieldType, Value: value, IsKey: isKey}

	default:
		consts := p.parseSymbolicConstants()
		p.expect(lexer.SEMICOLON)

		return &ast.SimpleField{Type: fieldType, SymbolicConstants: consts, IsKey: isKey}
	}
}

func (p *Parser) parseSimpleType(base ast.NumericBase, unsigned bool) ast.FieldType {
	if p.cur.Type != lexer.KEYWORD {
		p.errorf("expected a field type, got %s %q", p.cur.Type, p.cur.Literal)
		p.advance()

		return &ast.BooleanFieldType{}
	}

	word := p.cur.Literal
	switch word {
	case "boolean":
		p.advance()

		return &ast.BooleanFieldType{}

	case "char":
		p.advance()

		return &ast.CharFieldType{}

	case "point":
		p.advance()

		return &ast.PointFieldType{}

	case "rect":
		p.advance()

		return &ast.RectFieldType{}

	case "byte":
		p.advance()

		return &ast.NumericFieldType{Signed: !unsigned, Base: base, Size: 8}

	case "integer":
		p.advance()

		return &ast.NumericFieldType{Signed: !unsigned, Base: base, Size: 16}

	case "longint":
		p.advance()

		return &ast.NumericFieldType{Signed: !unsigned, Base: base, Size: 32}

	case "bitstring":
		p.advance()
		p.expect(lexer.LBRACKET)
		size := p.parseIntExpression()
		p.expect(lexer.RBRACKET)
		n := 0
		if lit, ok := size.(*ast.IntLiteral); ok {
			n = int(lit.Value)
		} else {
			p.errorf("bitstring width must be a literal integer")
		}

		return &ast.NumericFieldType{Signed: !unsigned, Base: base, Size: n, IsBitstring: true}

	case "string", "cstring", "pstring", "wstring":
		p.advance()

		return p.parseStringFieldTypeTail(word)

	default:
		p.errorf("unexpected field type keyword %q", word)
		p.advance()

		return &ast.BooleanFieldType{}
	}
}

func (p *Parser) parseStringFieldTypeTail(keyword string) ast.FieldType {
	t := &ast.StringFieldType{}
	switch keyword {
	case "cstring":
		t.Format = ast.StringCString
	case "pstring":
		t.Format = ast.StringPascal
	case "wstring":
		t.Wide = true
		t.Format = ast.StringPascal
	case "string":
		t.Format = ast.StringFixed
	}
	if p.cur.Type == lexer.LBRACKET {
		p.advance()
		t.Length = p.parseIntExpression()
		p.expect(lexer.RBRACKET)
	}

	return t
}

// parseSymbolicConstants parses a comma-separated, optionally
// trailing-comma-terminated list of "name [= resource_value]" pairs.
func (p *Parser) parseSymbolicConstants() []ast.SymbolicConstant {
	var consts []ast.SymbolicConstant
	for {
		if p.cur.Type != lexer.IDENTIFIER {
			p.errorf("expected a symbolic constant name, got %s %q", p.cur.Type, p.cur.Literal)

			break
		}
		name := p.cur.Literal
		p.advance()

		var value ast.IntExpression
		if p.cur.Type == lexer.ASSIGN {
			p.advance()
			rv := p.parseResourceValue()
			if ie, ok := rv.(ast.IntExpression); ok {
				value = ie
			} else {
				p.errorf("a symbolic constant's value must be an integer expression")
			}
		}
		consts = append(consts, ast.SymbolicConstant{Name: name, Value: value})

		if p.cur.Type != lexer.COMMA {
			break
		}
		p.advance()
		if p.cur.Type == lexer.SEMICOLON {
			break
		}
	}

	return consts
}

func (p *Parser) parseFillField() ast.Field {
	p.advance() // "fill"
	unit := p.parseFillFieldSize()

	var count ast.IntExpression
	if p.cur.Type == lexer.LBRACKET {
		p.advance()
		count = p.parseIntExpression()
		p.expect(lexer.RBRACKET)
	}
	p.expect(lexer.SEMICOLON)

	return &ast.FillField{Unit: unit, Count: count}
}

func (p *Parser) parseFillFieldSize() ast.FillFieldUnit {
	if p.cur.Type != lexer.KEYWORD {
		p.errorf("expected a fill size (bit/nibble/byte/word/long), got %s %q", p.cur.Type, p.cur.Literal)

		return ast.FillByte
	}
	word := p.cur.Literal
	p.advance()

	switch word {
	case "bit":
		return ast.FillBit
	case "nibble":
		return ast.FillNibble
	case "byte":
		return ast.FillByte
	case "word":
		return ast.FillWord
	case "long":
		return ast.FillLong
	default:
		p.errorf("unexpected fill size %q", word)

		return ast.FillByte
	}
}

// parseAlignField parses "align align_field_size ;"; unlike fill, align
// takes no bracketed count and has no BIT granularity.
func (p *Parser) parseAlignField() ast.Field {
	p.advance() // "align"
	unit := p.parseAlignFieldSize()
	p.expect(lexer.SEMICOLON)

	return &ast.AlignField{Unit: unit}
}

func (p *Parser) parseAlignFieldSize() ast.AlignFieldUnit {
	if p.cur.Type != lexer.KEYWORD {
		p.errorf("expected an align size (nibble/byte/word/long), got %s %q", p.cur.Type, p.cur.Literal)

		return ast.AlignByte
	}
	word := p.cur.Literal
	p.advance()

	switch word {
	case "nibble":
		return ast.AlignNibble
	case "byte":
		return ast.AlignByte
	case "word":
		return ast.AlignWord
	case "long":
		return ast.AlignLong
	default:
		p.errorf("unexpected align size %q", word)

		return ast.AlignByte
	}
}

// parseArrayField parses "array_modifiers_opt array [name | [count]] { fields } ;".
// With a label or no suffix, an array's length at evaluation time comes from
// however many resource_values remain; "[count]" records an explicit count
// instead.
func (p *Parser) parseArrayField() ast.Field {
	wide := false
	for p.curIsKeyword("wide") {
		wide = true
		p.advance()
	}
	p.expectKeyword("array")

	label := ""
	var count ast.IntExpression
	switch {
	case p.cur.Type == lexer.LBRACKET:
		p.advance()
		count = p.parseIntExpression()
		p.expect(lexer.RBRACKET)
	case p.cur.Type == lexer.IDENTIFIER:
		label = p.cur.Literal
		p.advance()
	}
	p.expect(lexer.LBRACE)
	fields := p.parseFields()
	p.expect(lexer.RBRACE)
	p.expect(lexer.SEMICOLON)

	return &ast.ArrayField{Wide: wide, Label: label, Count: count, Fields: fields}
}

// parseSwitchField parses "switch { (case name : fields)* } ;".
func (p *Parser) parseSwitchField() ast.Field {
	p.advance() // "switch"
	p.expect(lexer.LBRACE)

	var cases []ast.SwitchCase
	for p.curIsKeyword("case") {
		p.advance()
		if p.cur.Type != lexer.IDENTIFIER {
			p.errorf("expected a case label, got %s %q", p.cur.Type, p.cur.Literal)

			break
		}
		label := p.cur.Literal
		p.advance()
		p.expect(lexer.COLON)
		fields := p.parseFieldsUntil(func() bool {
			return p.cur.Type == lexer.RBRACE || p.curIsKeyword("case")
		})
		if n := countKeyFields(fields); n != 1 {
			p.errorf("case %q must have exactly one key field, got %d", label, n)
		}
		cases = append(cases, ast.SwitchCase{Label: label, Fields: fields})
	}
	p.expect(lexer.RBRACE)
	p.expect(lexer.SEMICOLON)

	return &ast.SwitchField{Cases: cases}
}

// countKeyFields counts the top-level simple fields in fields marked
// IsKey. A switch case must have exactly one: it selects which case a
// SwitchField's evaluated key value picks.
func countKeyFields(fields []ast.Field) int {
	n := 0
	for _, f := range fields {
		if sf, ok := f.(*ast.SimpleField); ok && sf.IsKey {
			n++
		}
	}

	return n
}
