package parser

import (
	"github.com/rezfront/rezfront/internal/ast"
	"github.com/rezfront/rezfront/pkg/lexer"
)

// parseStatement parses one "statement": a top-level declaration dispatched
// on its leading keyword. The caller (ParseFile) has already skipped bare
// ";" statements and checked for EOF.
func (p *Parser) parseStatement() ast.Statement {
	switch {
	case p.curIsKeyword("change"):
		return p.parseChange()
	case p.curIsKeyword("data"):
		return p.parseData()
	case p.curIsKeyword("delete"):
		return p.parseDelete()
	case p.curIsKeyword("enum"):
		return p.parseEnum()
	case p.curIsKeyword("include"):
		return p.parseInclude()
	case p.curIsKeyword("read"):
		return p.parseRead()
	case p.curIsKeyword("resource"):
		return p.parseResource()
	case p.curIsKeyword("type"):
		return p.parseType()
	default:
		p.errorf("unexpected %s %q at top level", p.cur.Type, p.cur.Literal)
		p.advance()

		return nil
	}
}

func (p *Parser) parseChange() ast.Statement {
	p.advance() // "change"
	from := p.parseResourceSpecUse()
	p.expectKeyword("to")
	to := p.parseResourceSpecDef()
	p.expect(lexer.SEMICOLON)

	return &ast.Change{From: from, To: to}
}

func (p *Parser) parseData() ast.Statement {
	p.advance() // "data"
	spec := p.parseResourceSpecDef()
	p.expect(lexer.LBRACE)

	var value ast.StringExpression
	if p.startsStringExpression() {
		value = p.parseStringExpression()
	}
	if p.cur.Type == lexer.SEMICOLON {
		p.advance()
	}
	p.expect(lexer.RBRACE)
	p.expect(lexer.SEMICOLON)

	return &ast.Data{Spec: spec, Value: value}
}

func (p *Parser) parseDelete() ast.Statement {
	p.advance() // "delete"
	spec := p.parseResourceSpecUse()
	p.expect(lexer.SEMICOLON)

	return &ast.Delete{Spec: spec}
}

// parseEnum parses "enum [name] { constants } ;". Each constant's implicit
// value (when Value is omitted) is not computed here: the preprocessor
// already ran its own enum state machine over these same tokens to define
// the macro table entries, and this AST node exists only as the statement
// grammar's independent record of the same declaration.
func (p *Parser) parseEnum() ast.Statement {
	p.advance() // "enum"

	name := ""
	if p.cur.Type == lexer.IDENTIFIER {
		name = p.cur.Literal
		p.advance()
	}
	p.expect(lexer.LBRACE)

	var constants []ast.EnumConstant
	for p.cur.Type == lexer.IDENTIFIER {
		cname := p.cur.Literal
		p.advance()

		var value ast.IntExpression
		if p.cur.Type == lexer.ASSIGN {
			p.advance()
			value = p.parseIntExpression()
		}
		constants = append(constants, ast.EnumConstant{Name: cname, Value: value})

		if p.cur.Type != lexer.COMMA {
			break
		}
		p.advance()
	}
	p.expect(lexer.RBRACE)
	p.expect(lexer.SEMICOLON)

	return &ast.Enum{Name: name, Constants: constants}
}

// parseInclude parses all five syntactic forms of the "include" statement,
// normalizing them onto ast.Include's fields.
func (p *Parser) parseInclude() ast.Statement {
	p.advance() // "include"
	path := p.parseStringExpression()
	inc := &ast.Include{Path: path}

	switch {
	case p.cur.Type == lexer.SEMICOLON:
		p.advance()

		return inc

	case p.curIsKeyword("not"):
		p.advance()
		inc.Inverted = true
		inc.NotType = p.parseIntExpression()
		p.expect(lexer.SEMICOLON)

		return inc
	}

	spec := p.parseResourceSpecUse()
	if p.curIsKeyword("as") {
		p.advance()
		as := p.parseResourceSpecDefOrTypedef()
		inc.UseSpec = &spec
		inc.As = &as
		p.expect(lexer.SEMICOLON)

		return inc
	}
	inc.UseSpec = &spec
	p.expect(lexer.SEMICOLON)

	return inc
}

func (p *Parser) parseRead() ast.Statement {
	p.advance() // "read"
	spec := p.parseResourceSpecDef()
	path := p.parseStringExpression()
	p.expect(lexer.SEMICOLON)

	return &ast.Read{Spec: spec, Path: path}
}

func (p *Parser) parseResource() ast.Statement {
	p.advance() // "resource"
	spec := p.parseResourceSpecDef()
	p.expect(lexer.LBRACE)
	values := p.parseResourceValues()
	if p.cur.Type == lexer.SEMICOLON {
		p.advance()
	}
	p.expect(lexer.RBRACE)
	p.expect(lexer.SEMICOLON)

	return &ast.Resource{Spec: spec, Values: values}
}

func (p *Parser) parseType() ast.Statement {
	p.advance() // "type"
	spec := p.parseResourceSpecTypedef()

	if p.curIsKeyword("as") {
		p.advance()
		alias := ast.ResourceSpec{Type: p.parseTypeCode()}
		if p.cur.Type == lexer.LPAREN {
			p.advance()
			alias.ID = p.parseIntExpression()
			p.expect(lexer.RPAREN)
		} else {
			alias.TypeOnly = true
		}
		p.expect(lexer.SEMICOLON)

		return &ast.Type{Spec: spec, Alias: &alias}
	}

	p.expect(lexer.LBRACE)
	fields := p.parseFields()
	p.expect(lexer.RBRACE)
	p.expect(lexer.SEMICOLON)

	return &ast.Type{Spec: spec, Fields: fields}
}

// ---- resource spec variants ----

// parseTypeCode parses the int_expression that names a resource type. Rez
// allows any int_expression there, but by the time the preprocessor's macro
// expansion has run, a type code that isn't already a plain literal (a
// character, hex, or decimal constant) has no way to resolve to a four-byte
// type string at parse time; that case is reported as an error rather than
// silently producing an empty type.
func (p *Parser) parseTypeCode() string {
	expr := p.parseIntExpression()
	lit, ok := expr.(*ast.IntLiteral)
	if !ok {
		p.errorf("resource type code must be a literal, not a computed expression")

		return ""
	}

	return fourCharCodeString(lit.Value)
}

func fourCharCodeString(v int64) string {
	b := make([]byte, 4)
	for i := 3; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}

	return string(b)
}

// parseResourceSpecTypedef parses "int_expression [(id) | (begin:end)]": the
// header used by a "type" statement, which names neither a name nor
// attributes.
func (p *Parser) parseResourceSpecTypedef() ast.ResourceSpec {
	spec := ast.ResourceSpec{Type: p.parseTypeCode()}
	if p.cur.Type != lexer.LPAREN {
		spec.TypeOnly = true

		return spec
	}
	p.advance()
	p.parseOptionalIDOrRange(&spec)
	p.expect(lexer.RPAREN)

	return spec
}

// parseResourceSpecDef parses "int_expression (id [, name] [, attributes])":
// the header used by resource/change-to/data/read statements, which always
// requires an id.
func (p *Parser) parseResourceSpecDef() ast.ResourceSpec {
	spec := ast.ResourceSpec{Type: p.parseTypeCode()}
	p.expect(lexer.LPAREN)
	spec.ID = p.parseIntExpression()
	p.parseResourceNameAndAttributes(&spec)
	p.expect(lexer.RPAREN)

	return spec
}

// parseResourceSpecDefOrTypedef parses the "include ... as" target, which is
// either a bare type or a full resource_spec_def-shaped header.
func (p *Parser) parseResourceSpecDefOrTypedef() ast.ResourceSpec {
	spec := ast.ResourceSpec{Type: p.parseTypeCode()}
	if p.cur.Type != lexer.LPAREN {
		spec.TypeOnly = true

		return spec
	}
	p.advance()
	spec.ID = p.parseIntExpression()
	p.parseResourceNameAndAttributes(&spec)
	p.expect(lexer.RPAREN)

	return spec
}

// parseResourceSpecUse parses a "resource_spec_use" header: a bare type, a
// type+id, a type+id-range, or a type+name lookup.
func (p *Parser) parseResourceSpecUse() ast.ResourceSpec {
	spec := ast.ResourceSpec{Type: p.parseTypeCode()}
	if p.cur.Type != lexer.LPAREN {
		spec.TypeOnly = true

		return spec
	}
	p.advance()
	if p.startsStringExpression() {
		spec.Name = p.parseStringExpression()
		p.expect(lexer.RPAREN)

		return spec
	}
	p.parseOptionalIDOrRange(&spec)
	p.expect(lexer.RPAREN)

	return spec
}

func (p *Parser) parseOptionalIDOrRange(spec *ast.ResourceSpec) {
	begin := p.parseIntExpression()
	if p.cur.Type != lexer.COLON {
		spec.ID = begin

		return
	}
	p.advance()
	end := p.parseIntExpression()
	spec.IDRange = &ast.IDRange{Begin: begin, End: end}
}

// parseResourceNameAndAttributes parses the trailing ", name" and/or
// ", attributes" tail shared by resource_spec_def's two comma-introduced,
// both-optional parts; it disambiguates a name from an attribute list by
// looking one token past the comma (already available as p.peek once p.cur
// is the comma itself).
func (p *Parser) parseResourceNameAndAttributes(spec *ast.ResourceSpec) {
	if p.cur.Type == lexer.COMMA && p.peekStartsStringExpression() {
		p.advance()
		spec.Name = p.parseStringExpression()
	}
	if p.cur.Type != lexer.COMMA {
		return
	}
	p.advance()

	// resource_attributes : resource_attributes_named | int_expression
	if p.cur.Type == lexer.KEYWORD {
		if _, ok := ast.AttributeWeightOf(p.cur.Literal); ok {
			spec.Attributes = append(spec.Attributes, p.cur.Literal)
			p.advance()
			for p.cur.Type == lexer.COMMA {
				p.advance()
				if p.cur.Type != lexer.KEYWORD {
					p.errorf("expected a resource attribute keyword, got %s %q", p.cur.Type, p.cur.Literal)

					return
				}
				spec.Attributes = append(spec.Attributes, p.cur.Literal)
				p.advance()
			}

			return
		}
	}

	spec.AttributesExpr = p.parseIntExpression()
}

func (p *Parser) peekStartsStringExpression() bool {
	switch p.peek.Type {
	case lexer.STRINGLIT_TEXT, lexer.STRINGLIT_HEX:
		return true
	case lexer.FUNCTION:
		return stringFunctionNames[p.peek.Literal]
	default:
		return false
	}
}
