package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/rezfront/rezfront/internal/config"
	"github.com/rezfront/rezfront/internal/preprocessor"
	"github.com/rezfront/rezfront/pkg/eval"
	"github.com/rezfront/rezfront/pkg/lexer"
	"github.com/rezfront/rezfront/pkg/parser"
)

// buildPreprocessorConfig merges the on-disk .rezfront.yaml (if present)
// with this invocation's flags: a -D macro replaces a config macro of the
// same name, flag include paths are searched after the config's own, and
// derez mode is on when either the flag or the config sets it. It also
// returns the *eval.Evaluator
// it wired in, so a caller (the eval subcommand) can reuse the same
// instance to evaluate its own top-level expression after the preprocessor
// has used it for #if/enum/include operands.
func buildPreprocessorConfig(opts *options) (preprocessor.Config, *eval.Evaluator, error) {
	fileCfg, err := config.Load(opts.configPath)
	if err != nil {
		return preprocessor.Config{}, nil, err
	}

	macros := fileCfg.MacroTokens()
	for _, d := range opts.defines {
		name, value, ok := strings.Cut(d, "=")
		if !ok {
			name, value = d, "1"
		}
		toks, err := lexMacroValue(value)
		if err != nil {
			return preprocessor.Config{}, nil, fmt.Errorf("-D %s: %w", d, err)
		}
		macros[name] = toks
	}

	derez := opts.derez || fileCfg.Derez
	includePath := append(append([]string(nil), fileCfg.IncludePath...), opts.includePath...)
	sysIncludePath := append(append([]string(nil), fileCfg.SysIncludePath...), opts.sysIncludePath...)

	evaluator := eval.New(time.Now())

	return preprocessor.Config{
		Macros:         macros,
		Derez:          derez,
		IncludePath:    includePath,
		SysIncludePath: sysIncludePath,
		Parser:         parser.ParseExprTokens,
		Evaluator:      evaluator,
		Trace:          opts.traceLogger(),
	}, evaluator, nil
}

// lexMacroValue sub-lexes a -D flag's replacement text the same way a
// .rezfront.yaml macro entry or a #define's value text is tokenized.
func lexMacroValue(text string) ([]lexer.Token, error) {
	l := lexer.New(text)
	var toks []lexer.Token
	for {
		tok := l.NextToken()
		if tok.Type == lexer.ILLEGAL {
			return nil, tok.AsError("")
		}
		if tok.Type == lexer.EOF {
			return toks, nil
		}
		if tok.Type == lexer.NEWLINE {
			continue
		}
		toks = append(toks, tok)
	}
}
