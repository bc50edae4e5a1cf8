package preprocessor

import (
	"strconv"

	"github.com/rezfront/rezfront/internal/macroman"
	"github.com/rezfront/rezfront/pkg/lexer"
)

// enumPhase is one step of the mini state machine that rewrites an
// "enum [name] { ... };" declaration into a sequence of macro definitions,
// one per constant, while still forwarding every token (including the enum
// body's braces and commas) to the parser unchanged. The parser sees a
// perfectly ordinary enum statement; only the preprocessor's macro table
// changes as a side effect of watching the tokens go by.
type enumPhase int

const (
	enumInactive enumPhase = iota
	enumKeyword        // just saw "enum", expect an optional type name then '{'
	enumTypeName       // saw the optional identifier, expect '{'
	enumNext           // expect a constant name or the closing '}'
	enumName           // saw a constant name, expect '=', ',' or '}'
	enumEquals         // collecting an explicit value's tokens
)

// enumState tracks progress through one enum declaration. The reference
// grammar never reaches a distinct "assigned value consumed" phase
// separate from enumNext/enumKeyword: once a constant's value (implicit or
// explicit) is known, the state returns straight to enumNext or back to
// enumInactive at the closing brace.
type enumState struct {
	state        enumPhase
	counter      int64
	constantName string
	valueTokens  []lexer.Token
	depth        int
}

func (es *enumState) step(pp *Preprocessor, tok lexer.Token) error {
	switch es.state {
	case enumKeyword:
		switch tok.Type {
		case lexer.IDENTIFIER:
			es.state = enumTypeName
		case lexer.LBRACE:
			es.state = enumNext
		default:
			return pp.errf("expected an identifier or '{' after enum, got %s", tok.Type)
		}

	case enumTypeName:
		if tok.Type != lexer.LBRACE {
			return pp.errf("expected '{' after enum type name, got %s", tok.Type)
		}
		es.state = enumNext

	case enumNext:
		switch tok.Type {
		case lexer.IDENTIFIER:
			es.constantName = tok.Literal
			es.state = enumName
		case lexer.RBRACE:
			*es = enumState{}
		default:
			return pp.errf("expected an identifier or '}' in enum body, got %s", tok.Type)
		}

	case enumName:
		switch tok.Type {
		case lexer.ASSIGN:
			es.valueTokens = nil
			es.depth = 0
			es.state = enumEquals
		case lexer.COMMA:
			pp.defineEnumConstant(es.constantName, es.counter)
			es.counter++
			es.state = enumNext
		case lexer.RBRACE:
			pp.defineEnumConstant(es.constantName, es.counter)
			*es = enumState{}
		default:
			return pp.errf("expected '=', ',' or '}' after enum constant %q, got %s", es.constantName, tok.Type)
		}

	case enumEquals:
		if es.depth == 0 && (tok.Type == lexer.COMMA || tok.Type == lexer.RBRACE) {
			value, err := pp.evalEnumValue(es.valueTokens)
			if err != nil {
				return err
			}
			es.counter = value
			pp.defineEnumConstant(es.constantName, es.counter)
			if tok.Type == lexer.COMMA {
				es.counter++
				es.state = enumNext
			} else {
				*es = enumState{}
			}

			return nil
		}

		switch tok.Type {
		case lexer.LPAREN, lexer.LBRACKET, lexer.LBRACE:
			es.depth++
		case lexer.RPAREN, lexer.RBRACKET, lexer.RBRACE:
			es.depth--
		}
		es.valueTokens = append(es.valueTokens, tok)
	}

	return nil
}

func (pp *Preprocessor) defineEnumConstant(name string, value int64) {
	pp.macros[macroman.Casefold(name)] = []lexer.Token{
		{Type: lexer.INTLIT_DEC, Literal: strconv.FormatInt(value, 10)},
	}
	pp.log("enum constant", "name", name, "value", value)
}

func (pp *Preprocessor) evalEnumValue(toks []lexer.Token) (int64, error) {
	expanded, err := pp.expandTokens(toks)
	if err != nil {
		return 0, err
	}
	if len(expanded) == 0 {
		return 0, pp.errf("empty enum constant value")
	}

	exprAST, err := pp.parser(expanded)
	if err != nil {
		return 0, pp.errf("parsing enum constant value: %v", err)
	}

	return pp.evaluator.EvalInt(exprAST)
}
