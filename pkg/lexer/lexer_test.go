package lexer

import "testing"

func collect(input string) []Token {
	l := New(input)
	var toks []Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == EOF {
			break
		}
	}

	return toks
}

func TestNextTokenOperatorsAndDelimiters(t *testing.T) {
	input := `{}[]();:,=+-*/%&|^~<><=>=&&||==!=!`
	want := []TokenType{
		LBRACE, RBRACE, LBRACKET, RBRACKET, LPAREN, RPAREN, SEMICOLON, COLON,
		COMMA, ASSIGN, PLUS, MINUS, MULTIPLY, DIVIDE, MODULO, BITAND, BITOR,
		BITXOR, BITNOT, LESS, GREATER, LESSEQUAL, GREATEREQUAL, BOOLAND,
		BOOLOR, EQUAL, NOTEQUAL, BOOLNOT, EOF,
	}

	toks := collect(input)
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, tt := range want {
		if toks[i].Type != tt {
			t.Errorf("token %d: got %s, want %s", i, toks[i].Type, tt)
		}
	}
}

func TestKeywordsAreCaseInsensitive(t *testing.T) {
	for _, text := range []string{"resource", "RESOURCE", "Resource", "ReSoUrCe"} {
		toks := collect(text)
		if toks[0].Type != KEYWORD || toks[0].Literal != "resource" {
			t.Errorf("%q: got type=%s literal=%q, want KEYWORD/resource", text, toks[0].Type, toks[0].Literal)
		}
	}
}

func TestIdentifierVsKeyword(t *testing.T) {
	toks := collect("myLabel")
	if toks[0].Type != IDENTIFIER || toks[0].Literal != "myLabel" {
		t.Errorf("got %v, want IDENTIFIER myLabel", toks[0])
	}
}

func TestIntegerLiteralForms(t *testing.T) {
	cases := map[string]TokenType{
		"0":          INTLIT_DEC,
		"123":        INTLIT_DEC,
		"0x1F":       INTLIT_HEX,
		"0777":       INTLIT_OCT,
		"0b101":      INTLIT_BIN,
		"'A'":        INTLIT_CHAR,
		"$FF":        INTLIT_HEX,
	}
	for text, want := range cases {
		toks := collect(text)
		if toks[0].Type != want {
			t.Errorf("%q: got %s, want %s", text, toks[0].Type, want)
		}
	}
}

func TestStringAndHexStringLiterals(t *testing.T) {
	toks := collect(`"hello\nworld"`)
	if toks[0].Type != STRINGLIT_TEXT {
		t.Fatalf("got %s, want STRINGLIT_TEXT", toks[0].Type)
	}

	toks = collect(`$"4142 43"`)
	if toks[0].Type != STRINGLIT_HEX {
		t.Fatalf("got %s, want STRINGLIT_HEX", toks[0].Type)
	}
}

func TestRezFunctionRecognition(t *testing.T) {
	toks := collect("$$CountOf")
	if toks[0].Type != FUNCTION || toks[0].Literal != "countof" {
		t.Errorf("got %v, want FUNCTION countof", toks[0])
	}
}

func TestUnknownDollarFunctionIsIllegal(t *testing.T) {
	toks := collect("$$bogus")
	if toks[0].Type != ILLEGAL {
		t.Errorf("got %s, want ILLEGAL", toks[0].Type)
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	toks := collect("1 // a comment\n2 /* block\ncomment */ 3")
	var lits []string
	for _, tok := range toks {
		if tok.Type == INTLIT_DEC {
			lits = append(lits, tok.Literal)
		}
	}
	if len(lits) != 3 || lits[0] != "1" || lits[1] != "2" || lits[2] != "3" {
		t.Errorf("got %v, want [1 2 3]", lits)
	}
}

func TestDirectiveLineRecognition(t *testing.T) {
	toks := collect("#define kFoo 5\n")
	if toks[0].Type != PPDefine {
		t.Fatalf("got %s, want PP_DEFINE", toks[0].Type)
	}
	if toks[0].DefineName != "kFoo" {
		t.Errorf("got define name %q, want kFoo", toks[0].DefineName)
	}
}

func TestIncludeAngleForm(t *testing.T) {
	toks := collect("#include <Types.r>\n")
	if toks[0].Type != PPInclude {
		t.Fatalf("got %s, want PP_INCLUDE", toks[0].Type)
	}
	if !toks[0].IncludeAngle || toks[0].IncludeFilename != "<Types.r>" {
		t.Errorf("got %+v", toks[0])
	}
}

func TestIncludeQuotedFormIsSubLexable(t *testing.T) {
	toks := collect(`#include "Foo.r"` + "\n")
	if toks[0].Type != PPInclude || toks[0].IncludeAngle {
		t.Fatalf("got %+v, want non-angle PP_INCLUDE", toks[0])
	}
	if toks[0].IncludeExprText == "" {
		t.Errorf("expected non-empty IncludeExprText to sub-lex")
	}
}

func TestUnterminatedStringLiteralIsIllegal(t *testing.T) {
	toks := collect(`"never closed`)
	if toks[0].Type != ILLEGAL {
		t.Fatalf("got %s, want ILLEGAL", toks[0].Type)
	}
	if err := toks[0].AsError("t.r"); err == nil {
		t.Fatal("expected AsError to produce a non-nil *LexError")
	}
}

func TestUnterminatedCharLiteralIsIllegal(t *testing.T) {
	toks := collect(`'ab`)
	if toks[0].Type != ILLEGAL {
		t.Fatalf("got %s, want ILLEGAL", toks[0].Type)
	}
}

func TestDirectiveOnlyStartsAtLineStart(t *testing.T) {
	// A '#' after non-whitespace content on the same line is not a directive
	// in this lexer's model; directives only ever occur at the start of a
	// physical line, matching the reference lexer's (?m:^) anchor.
	toks := collect("1; #endif\n")
	if toks[0].Type != INTLIT_DEC {
		t.Fatalf("got %s first", toks[0].Type)
	}
	for i, tok := range toks {
		if tok.Type == PPEndif {
			t.Errorf("token %d: a mid-line '#endif' was lexed as a directive", i)
		}
	}
}
