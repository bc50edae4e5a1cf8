package preprocessor

import (
	"log/slog"

	"github.com/rezfront/rezfront/internal/ast"
	"github.com/rezfront/rezfront/internal/macroman"
	"github.com/rezfront/rezfront/pkg/lexer"
)

// CondState is one frame of the conditional-compilation stack: whether the
// tokens under the current #if/#elif/#else branch are being forwarded to
// the parser, skipped because a sibling branch already fired, skipped
// because this branch's own condition was false, or skipped because an
// enclosing conditional is itself inactive.
type CondState int

const (
	CondActive CondState = iota
	CondWaiting
	CondDone
	CondOuterInactive
)

func (s CondState) String() string {
	switch s {
	case CondActive:
		return "active"
	case CondWaiting:
		return "waiting"
	case CondDone:
		return "done"
	default:
		return "outer_inactive"
	}
}

// ExprParser parses a closed list of tokens as a single expression: the
// secondary grammar entry point the preprocessor needs for #if/#elif
// conditions, computed #include filenames, #printf arguments, and explicit
// enum constant values. Implemented by pkg/parser.ParseExprTokens.
type ExprParser func(tokens []lexer.Token) (ast.ResourceValue, error)

// ExprEvaluator computes the value of a parsed expression; satisfied by the
// subset of *eval.Evaluator's method set the preprocessor calls into.
type ExprEvaluator interface {
	EvalInt(ast.ResourceValue) (int64, error)
	EvalString(ast.ResourceValue) ([]byte, error)
}

// includeFrame is one entry on the include stack: an owned lexer cursor
// over a buffered file, its name (for diagnostics), and the directory that
// satisfied a framework-style rewrite to reach it, if any (so a nested
// #include can search that framework's own Frameworks/ directory too).
type includeFrame struct {
	lexer     *lexer.Lexer
	filename  string
	framework string
}

// expansionItem is either a pending body token or a sentinel marking the
// end of one macro's replacement list, so the macro-name stack used for
// recursion detection can be popped at the right point.
type expansionItem struct {
	tok      lexer.Token
	sentinel bool
}

type includeKey struct {
	name  string
	angle bool
}

// Config bundles a Preprocessor's construction-time options.
type Config struct {
	// Macros seeds the macro table beyond the four built-ins (true, false,
	// rez, derez); values are pre-lexed token lists, as #define's would be.
	Macros map[string][]lexer.Token

	// Derez selects which of the rez/derez builtins reads as 1.
	Derez bool

	IncludePath    []string
	SysIncludePath []string

	Parser    ExprParser
	Evaluator ExprEvaluator

	// PrintFunc receives #printf's formatted, decoded text. Defaults to a
	// no-op when nil.
	PrintFunc func(string)

	// FileReader resolves #include/#import file contents. Defaults to
	// reading from the OS filesystem.
	FileReader FileReader

	// Trace receives structured diagnostics for directive processing
	// (macro definitions, conditional transitions, include resolution). A
	// nil Trace disables tracing.
	Trace *slog.Logger
}

// Preprocessor filters a Rez lexer's token stream: expanding macros,
// resolving #include/#import, driving conditional compilation, rewriting
// enum bodies into macro definitions, and dispatching #printf. It
// implements the same NextToken() shape pkg/lexer.Lexer does, so
// pkg/parser can consume either one interchangeably.
type Preprocessor struct {
	includeStack []*includeFrame

	macros map[string][]lexer.Token

	expansion  []expansionItem
	macroStack []string

	condStack []CondState
	condState CondState

	importedFiles map[includeKey]bool

	enum enumState

	includePath    []string
	sysIncludePath []string

	parser    ExprParser
	evaluator ExprEvaluator
	printFunc func(string)
	fileReader FileReader
	trace      *slog.Logger
}

// New constructs a Preprocessor reading from the given root source text
// (already decoded to Go string; Mac OS Roman decoding happens before this
// point, per internal/macroman).
func New(filename, source string, cfg Config) *Preprocessor {
	pp := &Preprocessor{
		macros:        map[string][]lexer.Token{},
		importedFiles: map[includeKey]bool{},
		includePath:    append([]string(nil), cfg.IncludePath...),
		sysIncludePath: append([]string(nil), cfg.SysIncludePath...),
		parser:         cfg.Parser,
		evaluator:      cfg.Evaluator,
		printFunc:      cfg.PrintFunc,
		fileReader:     cfg.FileReader,
		trace:          cfg.Trace,
	}
	if pp.printFunc == nil {
		pp.printFunc = func(string) {}
	}
	if pp.fileReader == nil {
		pp.fileReader = osFileReader{}
	}

	one := lexer.Token{Type: lexer.INTLIT_DEC, Literal: "1"}
	zero := lexer.Token{Type: lexer.INTLIT_DEC, Literal: "0"}
	pp.macros["true"] = []lexer.Token{one}
	pp.macros["false"] = []lexer.Token{zero}
	if cfg.Derez {
		pp.macros["rez"] = []lexer.Token{zero}
		pp.macros["derez"] = []lexer.Token{one}
	} else {
		pp.macros["rez"] = []lexer.Token{one}
		pp.macros["derez"] = []lexer.Token{zero}
	}
	for name, toks := range cfg.Macros {
		pp.macros[macroman.Casefold(name)] = toks
	}

	pp.includeStack = append(pp.includeStack, &includeFrame{
		lexer:    lexer.New(source),
		filename: filename,
	})

	return pp
}

func (pp *Preprocessor) currentFrame() *includeFrame {
	if len(pp.includeStack) == 0 {
		return nil
	}

	return pp.includeStack[len(pp.includeStack)-1]
}

// Filename returns the name of the file the preprocessor is currently
// reading from, for diagnostics.
func (pp *Preprocessor) Filename() string {
	if f := pp.currentFrame(); f != nil {
		return f.filename
	}

	return ""
}

// Line returns the current line number within Filename, for diagnostics.
func (pp *Preprocessor) Line() int {
	if f := pp.currentFrame(); f != nil {
		return f.lexer.Line()
	}

	return 0
}

func (pp *Preprocessor) log(msg string, args ...any) {
	if pp.trace == nil {
		return
	}
	pp.trace.Debug(msg, append([]any{"file", pp.Filename(), "line", pp.Line()}, args...)...)
}

// tokenInternal pulls the next raw body token, expanding macro identifiers
// as it goes and popping exhausted include frames, but without regard to
// conditional-compilation state (the caller, NextToken, applies that).
func (pp *Preprocessor) tokenInternal() (lexer.Token, error) {
	for {
		var tok lexer.Token

		if len(pp.expansion) > 0 {
			item := pp.expansion[0]
			pp.expansion = pp.expansion[1:]
			if item.sentinel {
				pp.macroStack = pp.macroStack[:len(pp.macroStack)-1]
				continue
			}
			tok = item.tok
		} else {
			frame := pp.currentFrame()
			if frame == nil {
				return lexer.Token{Type: lexer.EOF}, nil
			}
			tok = frame.lexer.NextToken()
			if tok.Type == lexer.ILLEGAL {
				return lexer.Token{}, tok.AsError(frame.filename)
			}
			if tok.Type == lexer.EOF {
				if len(pp.includeStack) > 1 {
					pp.includeStack = pp.includeStack[:len(pp.includeStack)-1]
					continue
				}

				return tok, nil
			}
		}

		if (tok.Type == lexer.IDENTIFIER || tok.Type == lexer.KEYWORD) &&
			(pp.condState == CondActive || pp.condState == CondWaiting) {
			if repl, ok := pp.macros[macroman.Casefold(tok.Literal)]; ok {
				if len(pp.macroStack) >= 100 {
					return lexer.Token{}, pp.errf("macro expansion nested too deeply expanding %q", tok.Literal)
				}
				items := make([]expansionItem, 0, len(repl)+1)
				for _, t := range repl {
					items = append(items, expansionItem{tok: t})
				}
				items = append(items, expansionItem{sentinel: true})
				pp.expansion = append(items, pp.expansion...)
				pp.macroStack = append(pp.macroStack, macroman.Casefold(tok.Literal))
				continue
			}
		}

		return tok, nil
	}
}

// NextToken returns the next token the parser should see: an ordinary body
// token (after macro expansion and conditional-compilation filtering), or
// the token starting an enum declaration. All other preprocessor
// directives are consumed internally and never surface here.
func (pp *Preprocessor) NextToken() (lexer.Token, error) {
	for {
		tok, err := pp.tokenInternal()
		if err != nil {
			return lexer.Token{}, err
		}

		switch tok.Type {
		case lexer.EOF:
			return tok, nil

		case lexer.PPIf, lexer.PPElif:
			if err := pp.handleIfElif(tok); err != nil {
				return lexer.Token{}, err
			}

			continue

		case lexer.PPIfdef, lexer.PPIfndef:
			if err := pp.handleIfdef(tok); err != nil {
				return lexer.Token{}, err
			}

			continue

		case lexer.PPElse:
			if err := pp.handleElse(tok); err != nil {
				return lexer.Token{}, err
			}

			continue

		case lexer.PPEndif:
			if err := pp.handleEndif(tok); err != nil {
				return lexer.Token{}, err
			}

			continue
		}

		if pp.condState != CondActive || tok.Type == lexer.NEWLINE || tok.Type == lexer.PPEmpty {
			continue
		}

		switch tok.Type {
		case lexer.PPDefine:
			if err := pp.handleDefine(tok); err != nil {
				return lexer.Token{}, err
			}

			continue

		case lexer.PPUndef:
			delete(pp.macros, macroman.Casefold(tok.UndefName))
			pp.log("undef", "name", tok.UndefName)

			continue

		case lexer.PPInclude:
			if err := pp.handleInclude(tok); err != nil {
				return lexer.Token{}, err
			}

			continue

		case lexer.PPPrintf:
			if err := pp.handlePrintf(tok); err != nil {
				return lexer.Token{}, err
			}

			continue
		}

		if tok.Type == lexer.KEYWORD && tok.Literal == "enum" {
			if pp.enum.state != enumInactive {
				return lexer.Token{}, pp.errf("nested enum declarations are not allowed")
			}
			pp.enum.state = enumKeyword
			pp.enum.counter = 0

			return tok, nil
		}

		if pp.enum.state != enumInactive {
			if err := pp.enum.step(pp, tok); err != nil {
				return lexer.Token{}, err
			}
		}

		return tok, nil
	}
}
