package preprocessor

import (
	"github.com/rezfront/rezfront/internal/macroman"
	"github.com/rezfront/rezfront/pkg/lexer"
)

// handleDefine sub-lexes a #define's value text (raw, unexpanded; macro
// bodies expand lazily at the point of use, not at definition time) and
// installs it under the macro's case-folded name.
func (pp *Preprocessor) handleDefine(tok lexer.Token) error {
	pp.macros[macroman.Casefold(tok.DefineName)] = sublex(tok.DefineValueText)
	pp.log("define", "name", tok.DefineName)

	return nil
}

// sublex re-lexes a directive's already-isolated tail text (the unlexed
// payload fields the main lexer leaves for the preprocessor) into tokens.
func sublex(text string) []lexer.Token {
	l := lexer.New(text)

	var toks []lexer.Token
	for {
		tok := l.NextToken()
		if tok.Type == lexer.EOF {
			return toks
		}
		if tok.Type == lexer.NEWLINE {
			continue
		}
		toks = append(toks, tok)
	}
}

// expandTokens macro-expands a closed token list (a condition, an include
// filename expression, a #printf argument, an enum constant value):
// recursively substituting macro identifiers and rewriting "defined" and
// "defined(name)" to 0/1 without expanding the name itself. Unlike the live
// body stream (tokenInternal), these lists were already isolated from the
// source by the lexer, so expansion here is a plain recursive pass rather
// than a push-back queue tied to an include frame.
func (pp *Preprocessor) expandTokens(toks []lexer.Token) ([]lexer.Token, error) {
	out := make([]lexer.Token, 0, len(toks))

	var expand func(tok lexer.Token, depth int) error
	expand = func(tok lexer.Token, depth int) error {
		if depth > 100 {
			return pp.errf("macro expansion nested too deeply expanding %q", tok.Literal)
		}
		if tok.Type == lexer.IDENTIFIER || tok.Type == lexer.KEYWORD {
			if repl, ok := pp.macros[macroman.Casefold(tok.Literal)]; ok {
				for _, r := range repl {
					if err := expand(r, depth+1); err != nil {
						return err
					}
				}

				return nil
			}
		}
		out = append(out, tok)

		return nil
	}

	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		if tok.Type == lexer.KEYWORD && tok.Literal == "defined" {
			name, next, err := pp.parseDefinedOperand(toks, i+1)
			if err != nil {
				return nil, err
			}
			i = next - 1

			lit := "0"
			if _, ok := pp.macros[macroman.Casefold(name)]; ok {
				lit = "1"
			}
			out = append(out, lexer.Token{Type: lexer.INTLIT_DEC, Literal: lit, Line: tok.Line, Column: tok.Column})

			continue
		}
		if err := expand(tok, 0); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// parseDefinedOperand reads the "name" or "(name)" operand following a
// "defined" keyword starting at toks[i], without macro-expanding it, and
// returns the name and the index just past the operand.
func (pp *Preprocessor) parseDefinedOperand(toks []lexer.Token, i int) (name string, next int, err error) {
	if i >= len(toks) {
		return "", i, pp.errf("expected '(' or an identifier after defined")
	}

	if toks[i].Type == lexer.LPAREN {
		i++
		if i >= len(toks) || (toks[i].Type != lexer.IDENTIFIER && toks[i].Type != lexer.KEYWORD) {
			return "", i, pp.errf("expected an identifier inside defined(...)")
		}
		name = toks[i].Literal
		i++
		if i >= len(toks) || toks[i].Type != lexer.RPAREN {
			return "", i, pp.errf("expected ')' after defined(%s", name)
		}

		return name, i + 1, nil
	}

	if toks[i].Type == lexer.IDENTIFIER || toks[i].Type == lexer.KEYWORD {
		return toks[i].Literal, i + 1, nil
	}

	return "", i, pp.errf("expected '(' or an identifier after defined")
}
