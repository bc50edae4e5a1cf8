package parser

import (
	"testing"

	"github.com/rezfront/rezfront/internal/ast"
	"github.com/rezfront/rezfront/pkg/lexer"
)

func parseExpr(t *testing.T, src string) ast.ResourceValue {
	t.Helper()
	expr, err := ParseExprTokens(collect(t, src))
	if err != nil {
		t.Fatalf("ParseExprTokens(%q): %v", src, err)
	}

	return expr
}

func collect(t *testing.T, src string) []lexer.Token {
	t.Helper()
	l := lexer.New(src)
	var toks []lexer.Token
	for {
		tok := l.NextToken()
		if tok.Type == lexer.EOF {
			break
		}
		if tok.Type == lexer.NEWLINE {
			continue
		}
		toks = append(toks, tok)
	}

	return toks
}

func parseFile(t *testing.T, src string) *ast.File {
	t.Helper()
	p := New(FromLexer(lexer.New(src)), "test.r")
	file, err := p.ParseFile()
	if err != nil {
		t.Fatalf("ParseFile(%q): %v", src, err)
	}

	return file
}

func TestParseIntLiteral(t *testing.T) {
	lit, ok := parseExpr(t, "42").(*ast.IntLiteral)
	if !ok {
		t.Fatalf("got %T, want *ast.IntLiteral", parseExpr(t, "42"))
	}
	if lit.Value != 42 {
		t.Errorf("got %d, want 42", lit.Value)
	}
}

func TestParseIntExpressionPrecedence(t *testing.T) {
	// "+" binds looser than "*", so this should parse as 1 + (2 * 3).
	expr := parseExpr(t, "1 + 2 * 3")
	bin, ok := expr.(*ast.IntBinaryOp)
	if !ok || bin.Op != "+" {
		t.Fatalf("got %#v, want top-level '+'", expr)
	}
	right, ok := bin.Right.(*ast.IntBinaryOp)
	if !ok || right.Op != "*" {
		t.Fatalf("got %#v, want right operand '*'", bin.Right)
	}
}

func TestParseBooleanShortCircuitParsesBothSidesSyntactically(t *testing.T) {
	expr := parseExpr(t, "0 && 1 || 1")
	bin, ok := expr.(*ast.IntBinaryOp)
	if !ok || bin.Op != "||" {
		t.Fatalf("got %#v, want top-level '||'", expr)
	}
}

func TestParseUnaryOperators(t *testing.T) {
	cases := map[string]string{"-5": "-", "!0": "!", "~1": "~"}
	for src, op := range cases {
		un, ok := parseExpr(t, src).(*ast.IntUnaryOp)
		if !ok || un.Op != op {
			t.Errorf("%q: got %#v, want unary %q", src, parseExpr(t, src), op)
		}
	}
}

func TestParseCharAndHexLiterals(t *testing.T) {
	if lit := parseExpr(t, "'ABCD'").(*ast.IntLiteral); lit.Value != 0x41424344 {
		t.Errorf("'ABCD' = %#x, want 0x41424344", lit.Value)
	}
	if lit := parseExpr(t, "$FF").(*ast.IntLiteral); lit.Value != 0xFF {
		t.Errorf("$FF = %d, want 255", lit.Value)
	}
}

func TestParseStringConcat(t *testing.T) {
	expr := parseExpr(t, `"ab" "cd"`)
	concat, ok := expr.(*ast.StringConcat)
	if !ok {
		t.Fatalf("got %T, want *ast.StringConcat", expr)
	}
	if len(concat.Values) != 2 {
		t.Fatalf("got %d values, want 2", len(concat.Values))
	}
}

func TestParseSingleStringLiteralIsNotWrappedInConcat(t *testing.T) {
	expr := parseExpr(t, `"ab"`)
	if _, ok := expr.(*ast.StringLiteral); !ok {
		t.Fatalf("got %T, want *ast.StringLiteral (no concat wrapper for a single literal)", expr)
	}
}

func TestParseLabelSubscript(t *testing.T) {
	sub, ok := parseExpr(t, "foo[1, 2]").(*ast.LabelSubscript)
	if !ok {
		t.Fatalf("got %T, want *ast.LabelSubscript", parseExpr(t, "foo[1, 2]"))
	}
	if sub.Name != "foo" || len(sub.Subscripts) != 2 {
		t.Fatalf("got name=%q subscripts=%d, want foo/2", sub.Name, len(sub.Subscripts))
	}
}

func TestParseIntFunctionCall(t *testing.T) {
	fn, ok := parseExpr(t, "$$BitField(0, 8, 16)").(*ast.IntFunction)
	if !ok {
		t.Fatalf("got %T, want *ast.IntFunction", parseExpr(t, "$$BitField(0, 8, 16)"))
	}
	if fn.Kind != "bitfield" || len(fn.Args) != 3 {
		t.Fatalf("got kind=%q args=%d, want bitfield/3", fn.Kind, len(fn.Args))
	}
}

func TestParseResourceStatement(t *testing.T) {
	file := parseFile(t, `resource 'TEST' (128, "hi", purgeable, locked) { 1, 2, "x" };`)
	if len(file.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(file.Statements))
	}
	res, ok := file.Statements[0].(*ast.Resource)
	if !ok {
		t.Fatalf("got %T, want *ast.Resource", file.Statements[0])
	}
	if res.Spec.Type != "TEST" {
		t.Errorf("got type %q, want TEST", res.Spec.Type)
	}
	if id, ok := res.Spec.ID.(*ast.IntLiteral); !ok || id.Value != 128 {
		t.Errorf("got id %#v, want IntLiteral(128)", res.Spec.ID)
	}
	if len(res.Spec.Attributes) != 2 || res.Spec.Attributes[0] != "purgeable" || res.Spec.Attributes[1] != "locked" {
		t.Errorf("got attributes %v, want [purgeable locked]", res.Spec.Attributes)
	}
	if len(res.Values) != 3 {
		t.Fatalf("got %d values, want 3", len(res.Values))
	}
}

func TestParseResourceSpecExplicitAttributeExpression(t *testing.T) {
	file := parseFile(t, `resource 'TEST' (1, $10) { };`)
	res := file.Statements[0].(*ast.Resource)
	if res.Spec.AttributesExpr == nil {
		t.Fatal("got nil AttributesExpr, want the explicit expression to be recorded")
	}
	if len(res.Spec.Attributes) != 0 {
		t.Errorf("got named Attributes %v, want none set alongside AttributesExpr", res.Spec.Attributes)
	}
}

func TestParseTypeStatementWithSimpleFields(t *testing.T) {
	file := parseFile(t, `type 'TYPE' { unsigned hex integer = 0xFF; };`)
	typ, ok := file.Statements[0].(*ast.Type)
	if !ok {
		t.Fatalf("got %T, want *ast.Type", file.Statements[0])
	}
	if len(typ.Fields) != 1 {
		t.Fatalf("got %d fields, want 1", len(typ.Fields))
	}
	sf, ok := typ.Fields[0].(*ast.SimpleField)
	if !ok {
		t.Fatalf("got %T, want *ast.SimpleField", typ.Fields[0])
	}
	num, ok := sf.Type.(*ast.NumericFieldType)
	if !ok {
		t.Fatalf("got %T, want *ast.NumericFieldType", sf.Type)
	}
	if num.Signed || num.Base != ast.BaseHex || num.Size != 16 {
		t.Errorf("got %#v, want unsigned hex 16-bit", num)
	}
	lit, ok := sf.Value.(*ast.IntLiteral)
	if !ok || lit.Value != 255 {
		t.Errorf("got value %#v, want IntLiteral(255)", sf.Value)
	}
}

func TestParseTypeStatementCStringField(t *testing.T) {
	file := parseFile(t, `type 'STR ' { cstring[16]; };`)
	typ := file.Statements[0].(*ast.Type)
	sf := typ.Fields[0].(*ast.SimpleField)
	str, ok := sf.Type.(*ast.StringFieldType)
	if !ok {
		t.Fatalf("got %T, want *ast.StringFieldType", sf.Type)
	}
	if str.Format != ast.StringCString {
		t.Errorf("got format %v, want StringCString", str.Format)
	}
	length, ok := str.Length.(*ast.IntLiteral)
	if !ok || length.Value != 16 {
		t.Errorf("got length %#v, want IntLiteral(16)", str.Length)
	}
}

func TestParseTypeAlias(t *testing.T) {
	file := parseFile(t, `type 'AAAA' as 'BBBB';`)
	typ := file.Statements[0].(*ast.Type)
	if typ.Alias == nil || typ.Alias.Type != "BBBB" || !typ.Alias.TypeOnly {
		t.Fatalf("got %#v, want alias to bare type BBBB", typ.Alias)
	}
}

func TestParseArrayFieldWithLabel(t *testing.T) {
	file := parseFile(t, `type 'TEST' { array myArray { byte; }; };`)
	typ := file.Statements[0].(*ast.Type)
	arr, ok := typ.Fields[0].(*ast.ArrayField)
	if !ok {
		t.Fatalf("got %T, want *ast.ArrayField", typ.Fields[0])
	}
	if arr.Label != "myArray" || arr.Count != nil {
		t.Errorf("got label=%q count=%v, want label-only", arr.Label, arr.Count)
	}
}

func TestParseArrayFieldWithExplicitCount(t *testing.T) {
	file := parseFile(t, `type 'TEST' { array[4] { byte; }; };`)
	typ := file.Statements[0].(*ast.Type)
	arr, ok := typ.Fields[0].(*ast.ArrayField)
	if !ok {
		t.Fatalf("got %T, want *ast.ArrayField", typ.Fields[0])
	}
	if arr.Label != "" || arr.Count == nil {
		t.Fatalf("got label=%q count=%v, want count-only", arr.Label, arr.Count)
	}
	count, ok := arr.Count.(*ast.IntLiteral)
	if !ok || count.Value != 4 {
		t.Errorf("got count %#v, want IntLiteral(4)", arr.Count)
	}
}

func TestParseSwitchFieldCases(t *testing.T) {
	src := `type 'TEST' {
		switch {
			case red: key byte = 1;
			case blue: key byte = 2; integer;
		};
	};`
	file := parseFile(t, src)
	typ := file.Statements[0].(*ast.Type)
	sw, ok := typ.Fields[0].(*ast.SwitchField)
	if !ok {
		t.Fatalf("got %T, want *ast.SwitchField", typ.Fields[0])
	}
	if len(sw.Cases) != 2 {
		t.Fatalf("got %d cases, want 2", len(sw.Cases))
	}
	if sw.Cases[0].Label != "red" || sw.Cases[1].Label != "blue" {
		t.Errorf("got labels %q/%q, want red/blue", sw.Cases[0].Label, sw.Cases[1].Label)
	}
	if len(sw.Cases[1].Fields) != 2 {
		t.Errorf("got %d fields in blue case, want 2", len(sw.Cases[1].Fields))
	}
	key, ok := sw.Cases[0].Fields[0].(*ast.SimpleField)
	if !ok || !key.IsKey {
		t.Errorf("got %#v, want the case's first field marked IsKey", sw.Cases[0].Fields[0])
	}
}

func TestParseSwitchCaseRequiresExactlyOneKeyField(t *testing.T) {
	src := `type 'TEST' {
		switch {
			case red: byte = 1;
		};
	};`
	_, err := New(FromLexer(lexer.New(src)), "test.r").ParseFile()
	if err == nil {
		t.Fatal("expected a ParseError for a case with zero key fields, got nil")
	}

	src = `type 'TEST' {
		switch {
			case red: key byte = 1; key integer = 2;
		};
	};`
	_, err = New(FromLexer(lexer.New(src)), "test.r").ParseFile()
	if err == nil {
		t.Fatal("expected a ParseError for a case with two key fields, got nil")
	}
}

func TestParseIncludeFiveForms(t *testing.T) {
	cases := []string{
		`include "a.r";`,
		`include "a.r" 'TEST'(1);`,
		`include "a.r" not 'TEST';`,
		`include "a.r" 'TEST' as 'OTHR';`,
		`include "a.r" 'TEST'(1) as 'OTHR'(2, "m");`,
	}
	for _, src := range cases {
		file := parseFile(t, src)
		if _, ok := file.Statements[0].(*ast.Include); !ok {
			t.Errorf("%q: got %T, want *ast.Include", src, file.Statements[0])
		}
	}

	inverted := parseFile(t, `include "a.r" not 'TEST';`).Statements[0].(*ast.Include)
	if !inverted.Inverted || inverted.NotType == nil {
		t.Errorf("got %#v, want Inverted with a NotType expression", inverted)
	}
}

func TestParseEnumStatementRecordsImplicitAndExplicitValues(t *testing.T) {
	file := parseFile(t, `enum { A, B=5, C };`)
	en := file.Statements[0].(*ast.Enum)
	if len(en.Constants) != 3 {
		t.Fatalf("got %d constants, want 3", len(en.Constants))
	}
	if en.Constants[0].Value != nil {
		t.Errorf("got A.Value = %#v, want nil (implicit)", en.Constants[0].Value)
	}
	lit, ok := en.Constants[1].Value.(*ast.IntLiteral)
	if !ok || lit.Value != 5 {
		t.Errorf("got B.Value = %#v, want IntLiteral(5)", en.Constants[1].Value)
	}
}

func TestParseErrorReportsFileAndLine(t *testing.T) {
	p := New(FromLexer(lexer.New("resource 'TEST' (1) { )")), "bad.r")
	_, err := p.ParseFile()
	if err == nil {
		t.Fatal("expected a parse error")
	}
	perr, ok := err.(*ParseErrors)
	if !ok {
		t.Fatalf("got %T, want *ParseErrors", err)
	}
	if perr.First().(ParseError).File != "bad.r" {
		t.Errorf("got file %q, want bad.r", perr.First().(ParseError).File)
	}
}
