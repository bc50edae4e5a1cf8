package parser

import (
	"strconv"

	"github.com/rezfront/rezfront/internal/ast"
	"github.com/rezfront/rezfront/pkg/lexer"
)

// stringFunctionNames is the subset of rezFunctions that produce a string,
// used to decide whether a bare FUNCTION token starts a string_expression
// or an int_expression.
var stringFunctionNames = map[string]bool{
	"date": true, "format": true, "name": true, "read": true,
	"resource": true, "shell": true, "time": true, "version": true,
}

// parseExpression parses the "expression" grammar rule: an int_expression
// or a string_expression, chosen by the first token's kind.
func (p *Parser) parseExpression() ast.ResourceValue {
	if p.startsStringExpression() {
		return p.parseStringExpression()
	}

	return p.parseIntExpression()
}

func (p *Parser) startsStringExpression() bool {
	switch p.cur.Type {
	case lexer.STRINGLIT_TEXT, lexer.STRINGLIT_HEX:
		return true
	case lexer.FUNCTION:
		return stringFunctionNames[p.cur.Literal]
	default:
		return false
	}
}

// ---- integer expressions: 12-level precedence-climbing chain ----

func (p *Parser) parseIntExpression() ast.IntExpression {
	return p.parseIntBinary(precedenceLowest)
}

func (p *Parser) parseIntBinary(minPrec int) ast.IntExpression {
	left := p.parseIntUnary()
	for {
		op, known := tokenOp[p.cur.Type]
		prec, hasPrec := precedenceMap[p.cur.Type]
		if !known || !hasPrec || prec < minPrec {
			break
		}
		p.advance()
		right := p.parseIntBinary(prec + 1)
		left = &ast.IntBinaryOp{Op: op, Left: left, Right: right}
	}

	return left
}

func (p *Parser) parseIntUnary() ast.IntExpression {
	switch p.cur.Type {
	case lexer.MINUS:
		p.advance()

		return &ast.IntUnaryOp{Op: "-", Value: p.parseIntUnary()}
	case lexer.BOOLNOT:
		p.advance()

		return &ast.IntUnaryOp{Op: "!", Value: p.parseIntUnary()}
	case lexer.BITNOT:
		p.advance()

		return &ast.IntUnaryOp{Op: "~", Value: p.parseIntUnary()}
	default:
		return p.parseIntSimple()
	}
}

func isIntLitType(t lexer.TokenType) bool {
	switch t {
	case lexer.INTLIT_DEC, lexer.INTLIT_HEX, lexer.INTLIT_OCT, lexer.INTLIT_BIN, lexer.INTLIT_CHAR:
		return true
	default:
		return false
	}
}

func (p *Parser) parseIntSimple() ast.IntExpression {
	switch {
	case isIntLitType(p.cur.Type):
		return p.parseIntLit()

	case p.cur.Type == lexer.KEYWORD:
		if w, ok := ast.AttributeWeightOf(p.cur.Literal); ok {
			name := p.cur.Literal
			p.advance()

			return &ast.AttributeWeight{Name: name, Value: w}
		}
		p.errorf("unexpected keyword %q in integer expression", p.cur.Literal)
		p.advance()

		return &ast.IntLiteral{}

	case p.cur.Type == lexer.FUNCTION:
		return p.parseIntFunctionCall()

	case p.cur.Type == lexer.IDENTIFIER:
		name := p.cur.Literal
		p.advance()
		if p.cur.Type == lexer.LBRACKET {
			return p.parseLabelSubscript(name)
		}

		return &ast.Symbol{Name: name}

	case p.cur.Type == lexer.LPAREN:
		p.advance()
		e := p.parseIntExpression()
		p.expect(lexer.RPAREN)

		return e

	default:
		p.errorf("unexpected %s %q in integer expression", p.cur.Type, p.cur.Literal)
		p.advance()

		return &ast.IntLiteral{}
	}
}

func (p *Parser) parseIntLit() ast.IntExpression {
	tok := p.cur
	p.advance()

	var v int64
	var err error
	switch tok.Type {
	case lexer.INTLIT_DEC:
		v, err = strconv.ParseInt(tok.Literal, 10, 64)
	case lexer.INTLIT_HEX:
		v, err = strconv.ParseInt(tok.Literal, 16, 64)
	case lexer.INTLIT_OCT:
		v, err = strconv.ParseInt(tok.Literal, 8, 64)
	case lexer.INTLIT_BIN:
		v, err = strconv.ParseInt(tok.Literal, 2, 64)
	case lexer.INTLIT_CHAR:
		v, err = lexer.DecodeChar(tok.Literal)
	}
	if err != nil {
		p.errorf("malformed integer literal %q: %v", tok.Literal, err)
	}

	return &ast.IntLiteral{Value: v}
}

// parseLabelSubscript parses "name[i]" or "name[i, j]": every subscript
// lives inside one bracket pair, comma-separated, not one bracket per
// dimension.
func (p *Parser) parseLabelSubscript(name string) ast.IntExpression {
	p.expect(lexer.LBRACKET)
	subs := []ast.IntExpression{p.parseIntExpression()}
	for p.cur.Type == lexer.COMMA {
		p.advance()
		subs = append(subs, p.parseIntExpression())
	}
	p.expect(lexer.RBRACKET)

	return &ast.LabelSubscript{Name: name, Subscripts: subs}
}

func (p *Parser) consumeTrailingComma() {
	if p.cur.Type == lexer.COMMA {
		p.advance()
	}
}

// parseIntFunctionCall parses one of the closed set of "$"-prefixed
// integer-valued built-ins, each with its own fixed argument shape.
func (p *Parser) parseIntFunctionCall() ast.IntExpression {
	name := p.cur.Literal
	p.advance()

	switch name {
	case "arrayindex", "countof":
		p.expect(lexer.LPAREN)
		label := p.parseIdentifierArg()
		p.consumeTrailingComma()
		p.expect(lexer.RPAREN)

		return &ast.IntFunction{Kind: name, Args: []ast.ResourceValue{label}}

	case "attributes", "day", "hour", "id", "minute", "month", "second",
		"type", "weekday", "year", "resourcesize":
		return &ast.IntFunction{Kind: name}

	case "bitfield", "packedsize":
		p.expect(lexer.LPAREN)
		a := p.parseIntExpression()
		p.expect(lexer.COMMA)
		b := p.parseIntExpression()
		p.expect(lexer.COMMA)
		c := p.parseIntExpression()
		p.consumeTrailingComma()
		p.expect(lexer.RPAREN)

		return &ast.IntFunction{Kind: name, Args: []ast.ResourceValue{a, b, c}}

	case "byte", "long", "word":
		p.expect(lexer.LPAREN)
		a := p.parseIntExpression()
		p.consumeTrailingComma()
		p.expect(lexer.RPAREN)

		return &ast.IntFunction{Kind: name, Args: []ast.ResourceValue{a}}

	default:
		p.errorf("unknown integer function %q", name)

		return &ast.IntFunction{Kind: name}
	}
}

func (p *Parser) parseIdentifierArg() *ast.Symbol {
	if p.cur.Type != lexer.IDENTIFIER {
		p.errorf("expected an identifier, got %s %q", p.cur.Type, p.cur.Literal)

		return &ast.Symbol{}
	}
	name := p.cur.Literal
	p.advance()

	return &ast.Symbol{Name: name}
}

// ---- string expressions ----

// parseStringExpression parses one or more concatenated single_strings
// (string_expression is a one-or-more list: "a" "b" in the source is one
// StringConcat node).
func (p *Parser) parseStringExpression() ast.StringExpression {
	vals := []ast.StringExpression{p.parseSingleString()}
	for p.startsStringExpression() {
		vals = append(vals, p.parseSingleString())
	}
	if len(vals) == 1 {
		return vals[0]
	}

	return &ast.StringConcat{Values: vals}
}

func (p *Parser) parseSingleString() ast.StringExpression {
	switch p.cur.Type {
	case lexer.STRINGLIT_TEXT:
		b, err := lexer.DecodeString(p.cur.Literal)
		if err != nil {
			p.errorf("malformed string literal %s: %v", p.cur.Literal, err)
		}
		p.advance()

		return &ast.StringLiteral{Value: b}

	case lexer.STRINGLIT_HEX:
		b, err := lexer.DecodeHexString(p.cur.Literal)
		if err != nil {
			p.errorf("malformed hex string literal %s: %v", p.cur.Literal, err)
		}
		p.advance()

		return &ast.StringLiteral{Value: b}

	case lexer.FUNCTION:
		return p.parseStringFunctionCall()

	default:
		p.errorf("expected a string literal or string function, got %s %q", p.cur.Type, p.cur.Literal)
		p.advance()

		return &ast.StringLiteral{}
	}
}

// parseStringFunctionCall parses one of the closed set of "$"-prefixed
// string-valued built-ins.
func (p *Parser) parseStringFunctionCall() ast.StringExpression {
	name := p.cur.Literal
	p.advance()

	switch name {
	case "date", "name", "time", "version":
		return &ast.StringFunction{Kind: name}

	case "format":
		p.expect(lexer.LPAREN)
		args := []ast.ResourceValue{p.parseStringExpression()}
		for p.cur.Type == lexer.COMMA {
			p.advance()
			if p.cur.Type == lexer.RPAREN {
				break
			}
			args = append(args, p.parseExpression())
		}
		p.expect(lexer.RPAREN)

		return &ast.StringFunction{Kind: name, Args: args}

	case "read", "shell":
		p.expect(lexer.LPAREN)
		s := p.parseStringExpression()
		p.consumeTrailingComma()
		p.expect(lexer.RPAREN)

		return &ast.StringFunction{Kind: name, Args: []ast.ResourceValue{s}}

	case "resource":
		p.expect(lexer.LPAREN)
		path := p.parseStringExpression()
		p.expect(lexer.COMMA)
		typ := p.parseIntExpression()
		p.expect(lexer.COMMA)
		id := p.parseIntExpression()
		p.expect(lexer.COMMA)
		rname := p.parseStringExpression()
		p.consumeTrailingComma()
		p.expect(lexer.RPAREN)

		return &ast.StringFunction{Kind: name, Args: []ast.ResourceValue{path, typ, id, rname}}

	default:
		p.errorf("unknown string function %q", name)

		return &ast.StringFunction{Kind: name}
	}
}

// ---- resource values (field initializers, array literals, switch blocks) ----

// parseResourceValue parses one "resource_value": a bare identifier, a
// scalar expression, a brace-delimited array literal, or a labeled switch
// block.
func (p *Parser) parseResourceValue() ast.ResourceValue {
	switch {
	case p.cur.Type == lexer.LBRACE:
		return p.parseArrayValue()

	case p.cur.Type == lexer.IDENTIFIER && p.peek.Type == lexer.LBRACE:
		name := p.cur.Literal
		p.advance()
		p.advance()
		values := p.parseResourceValues()
		p.expect(lexer.RBRACE)

		return &ast.SwitchValue{Label: name, Values: values}

	case p.cur.Type == lexer.IDENTIFIER && p.peek.Type != lexer.LBRACKET:
		name := p.cur.Literal
		p.advance()

		return &ast.Symbol{Name: name}

	default:
		return p.parseExpression()
	}
}

func (p *Parser) isResourceValueTerminator() bool {
	switch p.cur.Type {
	case lexer.RBRACE, lexer.SEMICOLON, lexer.EOF:
		return true
	default:
		return false
	}
}

// parseResourceValues parses a comma-separated "resource_values" list,
// possibly empty, with an optional trailing comma.
func (p *Parser) parseResourceValues() []ast.ResourceValue {
	var vals []ast.ResourceValue
	if p.isResourceValueTerminator() {
		return vals
	}
	vals = append(vals, p.parseResourceValue())
	for p.cur.Type == lexer.COMMA {
		p.advance()
		if p.isResourceValueTerminator() {
			break
		}
		vals = append(vals, p.parseResourceValue())
	}

	return vals
}

// parseArrayValue parses "{ resource_values (; resource_values)* }": one or
// more comma-separated rows, separated by semicolons.
func (p *Parser) parseArrayValue() *ast.ArrayValue {
	p.expect(lexer.LBRACE)

	var rows [][]ast.ResourceValue
	if p.cur.Type != lexer.RBRACE {
		rows = append(rows, p.parseResourceValues())
		for p.cur.Type == lexer.SEMICOLON {
			p.advance()
			if p.cur.Type == lexer.RBRACE {
				break
			}
			rows = append(rows, p.parseResourceValues())
		}
	}
	p.expect(lexer.RBRACE)

	return &ast.ArrayValue{Rows: rows}
}
