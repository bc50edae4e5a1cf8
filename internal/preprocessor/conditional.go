package preprocessor

import (
	"github.com/rezfront/rezfront/internal/macroman"
	"github.com/rezfront/rezfront/pkg/lexer"
)

// evalConditionText expands and parses an #if/#elif condition's already
// isolated tail text and evaluates it to a boolean (any nonzero integer is
// true, matching Rez's C-like truthiness).
func (pp *Preprocessor) evalConditionText(text string) (bool, error) {
	toks, err := pp.expandTokens(sublex(text))
	if err != nil {
		return false, err
	}
	if len(toks) == 0 {
		return false, pp.errf("empty #if/#elif condition")
	}

	exprAST, err := pp.parser(toks)
	if err != nil {
		return false, pp.errf("parsing #if/#elif condition: %v", err)
	}

	v, err := pp.evaluator.EvalInt(exprAST)
	if err != nil {
		return false, pp.errf("evaluating #if/#elif condition: %v", err)
	}

	return v != 0, nil
}

// handleIfElif drives the four-state conditional stack for a #if or #elif
// directive. An outer-inactive or already-resolved ("done") branch only
// needs its condition text consumed, never evaluated, so a macro reference
// inside a dead branch can't fail expansion.
func (pp *Preprocessor) handleIfElif(tok lexer.Token) error {
	if tok.Type == lexer.PPElif && len(pp.condStack) == 0 {
		return pp.errf("#elif without a matching #if")
	}

	if tok.Type == lexer.PPIf {
		outer := pp.condState
		pp.condStack = append(pp.condStack, outer)
		if outer != CondActive {
			pp.condState = CondOuterInactive

			return nil
		}

		cond, err := pp.evalConditionText(tok.Literal)
		if err != nil {
			return err
		}
		if cond {
			pp.condState = CondActive
		} else {
			pp.condState = CondWaiting
		}
		pp.log("if", "result", pp.condState.String())

		return nil
	}

	// PPElif.
	switch pp.condState {
	case CondDone, CondOuterInactive:
		return nil
	case CondActive:
		pp.condState = CondDone

		return nil
	default: // CondWaiting
		cond, err := pp.evalConditionText(tok.Literal)
		if err != nil {
			return err
		}
		if cond {
			pp.condState = CondActive
		}
		pp.log("elif", "result", pp.condState.String())

		return nil
	}
}

// handleIfdef drives #ifdef/#ifndef: a simple macro-table membership test,
// no expression parsing involved.
func (pp *Preprocessor) handleIfdef(tok lexer.Token) error {
	outer := pp.condState
	pp.condStack = append(pp.condStack, outer)
	if outer != CondActive {
		pp.condState = CondOuterInactive

		return nil
	}

	_, defined := pp.macros[macroman.Casefold(tok.IfdefName)]
	cond := defined != tok.IsIfndef
	if cond {
		pp.condState = CondActive
	} else {
		pp.condState = CondWaiting
	}
	pp.log("ifdef", "name", tok.IfdefName, "result", pp.condState.String())

	return nil
}

func (pp *Preprocessor) handleElse(tok lexer.Token) error {
	if len(pp.condStack) == 0 {
		return pp.errf("#else without a matching #if")
	}

	switch pp.condState {
	case CondOuterInactive:
		// stays outer_inactive
	case CondWaiting:
		pp.condState = CondActive
	default:
		pp.condState = CondDone
	}

	return nil
}

func (pp *Preprocessor) handleEndif(tok lexer.Token) error {
	if len(pp.condStack) == 0 {
		return pp.errf("#endif without a matching #if")
	}

	pp.condState = pp.condStack[len(pp.condStack)-1]
	pp.condStack = pp.condStack[:len(pp.condStack)-1]

	return nil
}
