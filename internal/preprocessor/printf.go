package preprocessor

import (
	"github.com/rezfront/rezfront/internal/ast"
	"github.com/rezfront/rezfront/internal/macroman"
	"github.com/rezfront/rezfront/pkg/lexer"
)

// handlePrintf parses #printf's parenthesized argument list, evaluates
// each argument, and reuses the evaluator's own $$Format dispatch (rather
// than reimplementing printf-style substitution here) by building a
// StringFunction "format" call node whose first argument is the format
// string and whose remaining arguments are the substitution values, then
// decodes and forwards the formatted text to the configured print callback.
func (pp *Preprocessor) handlePrintf(tok lexer.Token) error {
	toks := sublex(tok.Literal)
	if len(toks) == 0 {
		return pp.errf("missing argument list after #printf")
	}
	if toks[0].Type != lexer.LPAREN {
		return pp.errf("expected '(' after #printf")
	}
	if toks[len(toks)-1].Type != lexer.RPAREN {
		return pp.errf("expected ')' to close #printf argument list")
	}

	args, err := splitPrintfArgs(pp, toks[1:len(toks)-1])
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return pp.errf("#printf requires at least one argument")
	}
	if len(args) > 20 {
		return pp.errf("#printf got %d arguments, at most 20 are allowed", len(args))
	}

	argNodes := make([]ast.ResourceValue, len(args))
	for i, a := range args {
		expanded, err := pp.expandTokens(a)
		if err != nil {
			return err
		}
		if len(expanded) == 0 {
			return pp.errf("#printf argument %d is empty", i+1)
		}

		node, err := pp.parser(expanded)
		if err != nil {
			return pp.errf("parsing #printf argument %d: %v", i+1, err)
		}
		argNodes[i] = node
	}

	formatted, err := pp.evaluator.EvalString(&ast.StringFunction{Kind: "format", Args: argNodes})
	if err != nil {
		return pp.errf("evaluating #printf: %v", err)
	}

	text, err := macroman.Decode(macroman.SwapLineEndings(append([]byte(nil), formatted...)))
	if err != nil {
		text = string(formatted)
	}
	pp.printFunc(text)

	return nil
}

// splitPrintfArgs splits a flat token list on top-level commas, so that a
// nested function call's own comma-separated arguments aren't mistaken for
// #printf argument boundaries.
func splitPrintfArgs(pp *Preprocessor, toks []lexer.Token) ([][]lexer.Token, error) {
	var args [][]lexer.Token
	var current []lexer.Token
	depth := 0

	for _, t := range toks {
		switch t.Type {
		case lexer.LPAREN, lexer.LBRACKET, lexer.LBRACE:
			depth++
			current = append(current, t)
		case lexer.RPAREN, lexer.RBRACKET, lexer.RBRACE:
			depth--
			if depth < 0 {
				return nil, pp.errf("unbalanced ')' in #printf argument list")
			}
			current = append(current, t)
		case lexer.COMMA:
			if depth == 0 {
				args = append(args, current)
				current = nil
			} else {
				current = append(current, t)
			}
		default:
			current = append(current, t)
		}
	}
	if depth != 0 {
		return nil, pp.errf("unbalanced '(' in #printf argument list")
	}
	if len(current) > 0 || len(args) > 0 {
		args = append(args, current)
	}

	return args, nil
}
