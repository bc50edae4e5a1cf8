package preprocessor

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rezfront/rezfront/pkg/eval"
	"github.com/rezfront/rezfront/pkg/lexer"
	"github.com/rezfront/rezfront/pkg/parser"
)

// memFileReader serves #include/#import content from an in-memory map, so
// tests never touch the filesystem.
type memFileReader map[string]string

func (m memFileReader) ReadFile(path string) ([]byte, error) {
	content, ok := m[path]
	if !ok {
		return nil, errors.New("file not found: " + path)
	}

	return []byte(content), nil
}

// collectTokens runs a Preprocessor to exhaustion via NextToken, returning
// every token type the parser would see (directives and skipped
// conditional bodies never surface here).
func collectTokens(t *testing.T, pp *Preprocessor) []lexer.Token {
	t.Helper()
	var toks []lexer.Token
	for {
		tok, err := pp.NextToken()
		if err != nil {
			t.Fatalf("NextToken: %v", err)
		}
		if tok.Type == lexer.EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

// newTestPreprocessor wires a Preprocessor to a real parser+evaluator pair,
// the same way the CLI driver does, so directive operand expressions
// (#if, enum values, computed include filenames) evaluate for real.
func newTestPreprocessor(filename, source string, extra Config) *Preprocessor {
	e := eval.New(time.Date(2026, time.July, 29, 12, 0, 0, 0, time.UTC))
	cfg := extra
	cfg.Parser = parser.ParseExprTokens
	cfg.Evaluator = e

	return New(filename, source, cfg)
}

func TestMacroExpansionIsCaseInsensitive(t *testing.T) {
	pp := newTestPreprocessor("t.r", "#define Foo 1\nFOO foo fOo", Config{})
	toks := collectTokens(t, pp)
	if len(toks) != 3 {
		t.Fatalf("got %d tokens, want 3", len(toks))
	}
	for i, tok := range toks {
		if tok.Type != lexer.INTLIT_DEC || tok.Literal != "1" {
			t.Errorf("token %d: got %s %q, want INTLIT_DEC \"1\"", i, tok.Type, tok.Literal)
		}
	}
}

func TestMacroRecursionBoundRaisesAfter100Expansions(t *testing.T) {
	pp := newTestPreprocessor("t.r", "#define A A\nA", Config{})
	_, err := pp.NextToken()
	if err == nil {
		t.Fatal("expected a PreprocessError for unbounded self-recursive expansion")
	}
	var perr *PreprocessError
	if !errors.As(err, &perr) {
		t.Fatalf("got %T, want *PreprocessError", err)
	}
}

func TestConditionalSkipNeverForwardsDeadBranchTokens(t *testing.T) {
	src := "#ifdef NOPE\n)) garbage ((( !!!\n#endif\ntype 'X' { byte; };"
	pp := newTestPreprocessor("t.r", src, Config{})
	toks := collectTokens(t, pp)

	var sawGarbage bool
	for _, tok := range toks {
		if tok.Literal == "garbage" {
			sawGarbage = true
		}
	}
	if sawGarbage {
		t.Fatal("tokens from a false #ifdef branch reached the parser")
	}
	if len(toks) == 0 || toks[0].Literal != "type" {
		t.Fatalf("got first token %#v, want the \"type\" keyword", toks[0])
	}
}

func TestNestedConditionalInsideWaitingBranchStaysSuppressed(t *testing.T) {
	src := "#if 0\n#if 1\njunk\n#endif\n#endif\ntype 'X' { byte; };"
	pp := newTestPreprocessor("t.r", src, Config{})
	toks := collectTokens(t, pp)

	for _, tok := range toks {
		if tok.Literal == "junk" {
			t.Fatal("tokens from a nested #if inside a false outer #if reached the parser")
		}
	}
	if len(toks) == 0 || toks[0].Literal != "type" {
		t.Fatalf("got first token %#v, want the \"type\" keyword", toks[0])
	}
}

func TestConditionalElseBranches(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"#if 1\nA\n#else\nB\n#endif", "A"},
		{"#if 0\nA\n#else\nB\n#endif", "B"},
		{"#if 0\nA\n#elif 1\nB\n#else\nC\n#endif", "B"},
	}
	for _, c := range cases {
		pp := newTestPreprocessor("t.r", c.src, Config{})
		toks := collectTokens(t, pp)
		if len(toks) != 1 || toks[0].Literal != c.want {
			t.Errorf("%q: got %v, want [%s]", c.src, toks, c.want)
		}
	}
}

func TestEnumValueLaw(t *testing.T) {
	pp := newTestPreprocessor("t.r", "enum { A, B=5, C, D };", Config{})
	collectTokens(t, pp) // drive the enum rewrite to completion

	want := map[string]int64{"a": 0, "b": 5, "c": 6, "d": 7}
	for name, expect := range want {
		repl, ok := pp.macros[name]
		if !ok {
			t.Fatalf("macro %q was never defined by the enum rewrite", name)

			continue
		}
		if len(repl) != 1 || repl[0].Literal != strconv.FormatInt(expect, 10) {
			t.Errorf("macro %q = %v, want %d", name, repl, expect)
		}
	}
}

func TestEnumCounterResetsPerStatement(t *testing.T) {
	pp := newTestPreprocessor("t.r", "enum { A, B };\nenum { C, D };", Config{})
	collectTokens(t, pp)

	if repl := pp.macros["c"]; len(repl) != 1 || repl[0].Literal != "0" {
		t.Errorf("macro C = %v, want 0 (counter resets for the second enum statement)", repl)
	}
}

func TestNestedEnumIsRejected(t *testing.T) {
	pp := newTestPreprocessor("t.r", "enum { A enum { B }; };", Config{})
	_, err := drainErr(pp)
	if err == nil {
		t.Fatal("expected a PreprocessError for a nested enum declaration")
	}
}

func TestUndefOfUnknownNameIsNotAnError(t *testing.T) {
	pp := newTestPreprocessor("t.r", "#undef NeverDefined\nresource", Config{})
	toks := collectTokens(t, pp)
	if len(toks) != 1 || toks[0].Literal != "resource" {
		t.Fatalf("got %v, want just the \"resource\" keyword", toks)
	}
}

func TestRedefinitionIsNotAnError(t *testing.T) {
	pp := newTestPreprocessor("t.r", "#define X 1\n#define X 2\nX", Config{})
	toks := collectTokens(t, pp)
	if len(toks) != 1 || toks[0].Literal != "2" {
		t.Fatalf("got %v, want the latest definition (2)", toks)
	}
}

func TestImportSkipsDuplicateFramesButIncludeReenters(t *testing.T) {
	files := memFileReader{"a.r": "X\n"}

	ppImport := newTestPreprocessor("t.r", `#import "a.r"`+"\n"+`#import "a.r"`+"\nY", Config{FileReader: files, SysIncludePath: []string{"."}})
	toks := collectTokens(t, ppImport)
	if len(toks) != 2 { // one "X" from the single accepted import, then "Y"
		t.Fatalf("got %d tokens %v, want 2 (duplicate #import skipped)", len(toks), toks)
	}

	ppInclude := newTestPreprocessor("t.r", `#include "a.r"`+"\n"+`#include "a.r"`+"\nY", Config{FileReader: files, SysIncludePath: []string{"."}})
	toks = collectTokens(t, ppInclude)
	if len(toks) != 3 { // "X" twice (re-entered both times) plus "Y"
		t.Fatalf("got %d tokens %v, want 3 (#include always re-enters)", len(toks), toks)
	}
}

func TestDerezSwapsBuiltinMacros(t *testing.T) {
	pp := newTestPreprocessor("t.r", "rez derez", Config{Derez: true})
	toks := collectTokens(t, pp)
	if len(toks) != 2 || toks[0].Literal != "0" || toks[1].Literal != "1" {
		t.Fatalf("got %v, want [0 1] under derez mode", toks)
	}
}

func drainErr(pp *Preprocessor) (lexer.Token, error) {
	for {
		tok, err := pp.NextToken()
		if err != nil || tok.Type == lexer.EOF {
			return tok, err
		}
	}
}
