package parser

import (
	"github.com/rezfront/rezfront/internal/ast"
	"github.com/rezfront/rezfront/pkg/lexer"
)

// TokenSource is anything the parser can pull tokens from: a plain
// *lexer.Lexer (wrapped via FromLexer, for a standalone parse with no
// preprocessing) or a *preprocessor.Preprocessor (the normal case, which
// macro-expands and runs directives before the parser ever sees a token).
// A Preprocessor already satisfies this signature directly.
//
// NextToken returns a *lexer.LexError for the adapted bare lexer, or
// whatever the preprocessor itself raises (*preprocessor.PreprocessError,
// or a *lexer.LexError it wraps from its own underlying lexer).
type TokenSource interface {
	NextToken() (lexer.Token, error)
}

// lexerSource adapts a *lexer.Lexer to TokenSource, turning an ILLEGAL
// token (the lexer's only way to signal a malformed literal) into a
// *lexer.LexError.
type lexerSource struct{ l *lexer.Lexer }

func (s lexerSource) NextToken() (lexer.Token, error) {
	tok := s.l.NextToken()
	if tok.Type == lexer.ILLEGAL {
		return lexer.Token{}, tok.AsError("")
	}

	return tok, nil
}

// FromLexer wraps a bare lexer as a TokenSource, for parsing source that has
// deliberately bypassed preprocessing, as this package's tests do.
func FromLexer(l *lexer.Lexer) TokenSource { return lexerSource{l: l} }

// Parser is a recursive-descent/precedence-climbing parser over a closed
// grammar: a sequence of top-level statements (the "start_file" entry
// point, via ParseFile) or a single expression parsed from an
// already-tokenized, ephemeral list (the "start_expr" entry point, via
// ParseExprTokens), the form the preprocessor drives for #if conditions,
// quoted include filenames, #printf arguments, and explicit enum constant
// values.
type Parser struct {
	src  TokenSource
	file string

	cur  lexer.Token
	peek lexer.Token

	err    error // first TokenSource error seen; halts further parsing
	errors ParseErrors
}

// New creates a Parser reading from src, attributing diagnostics to file.
func New(src TokenSource, file string) *Parser {
	p := &Parser{src: src, file: file}
	p.advance()
	p.advance()

	return p
}

// ParseFile parses a complete .r file: a sequence of statements. A bare ";"
// statement is dropped rather than producing an empty node.
func (p *Parser) ParseFile() (*ast.File, error) {
	file := &ast.File{}
	for p.cur.Type != lexer.EOF {
		if p.err != nil {
			break
		}
		if p.cur.Type == lexer.SEMICOLON {
			p.advance()

			continue
		}

		stmt := p.parseStatement()
		if stmt != nil {
			file.Statements = append(file.Statements, stmt)
		}
	}

	if p.err != nil {
		return file, p.err
	}
	if p.errors.HasErrors() {
		return file, &p.errors
	}

	return file, nil
}

// ParseExpr parses a single expression and requires the token stream to be
// fully consumed afterward.
func (p *Parser) ParseExpr() (ast.ResourceValue, error) {
	expr := p.parseExpression()
	if p.err != nil {
		return nil, p.err
	}
	if p.cur.Type != lexer.EOF {
		p.errorf("unexpected trailing %s after expression", p.cur.Type)
	}
	if p.errors.HasErrors() {
		return expr, &p.errors
	}

	return expr, nil
}

// ParseExprTokens parses a single expression out of an already-lexed,
// closed token list. Its signature matches preprocessor.ExprParser, so it
// can be wired directly into preprocessor.Config.Parser.
func ParseExprTokens(tokens []lexer.Token) (ast.ResourceValue, error) {
	toks := append(append([]lexer.Token{}, tokens...), lexer.Token{Type: lexer.EOF})
	p := New(&sliceSource{toks: toks}, "")

	return p.ParseExpr()
}

// sliceSource serves tokens from a fixed, already-lexed slice; used for the
// ephemeral token lists the preprocessor hands the parser.
type sliceSource struct {
	toks []lexer.Token
	pos  int
}

func (s *sliceSource) NextToken() (lexer.Token, error) {
	if s.pos >= len(s.toks) {
		return lexer.Token{Type: lexer.EOF}, nil
	}
	t := s.toks[s.pos]
	s.pos++

	return t, nil
}

// advance pulls the next non-NEWLINE token into p.cur, shifting the
// lookahead and refilling p.peek. The grammar has no production mentioning
// NEWLINE; it exists only so the lexer/preprocessor can track line numbers.
func (p *Parser) advance() {
	if p.err != nil {
		return
	}

	p.cur = p.peek
	for {
		t, err := p.src.NextToken()
		if err != nil {
			p.err = err

			return
		}
		if t.Type == lexer.NEWLINE {
			continue
		}
		p.peek = t

		break
	}
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.errors.addf(p.file, p.cur.Line, format, args...)
}

// expect requires the current token to have type t, consuming it and
// advancing; otherwise it records an error and does not advance, so repeated
// calls don't cascade past the same bad token.
func (p *Parser) expect(t lexer.TokenType) lexer.Token {
	tok := p.cur
	if p.cur.Type != t {
		p.errorf("expected %s, got %s %q", t, p.cur.Type, p.cur.Literal)

		return tok
	}
	p.advance()

	return tok
}

func (p *Parser) curIsKeyword(word string) bool {
	return p.cur.Type == lexer.KEYWORD && p.cur.Literal == word
}

func (p *Parser) peekIsKeyword(word string) bool {
	return p.peek.Type == lexer.KEYWORD && p.peek.Literal == word
}

// expectKeyword requires the current token to be the named keyword.
func (p *Parser) expectKeyword(word string) {
	if !p.curIsKeyword(word) {
		p.errorf("expected keyword %q, got %s %q", word, p.cur.Type, p.cur.Literal)

		return
	}
	p.advance()
}
