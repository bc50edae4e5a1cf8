package lexer

import "fmt"

// TokenType classifies a single lexical unit of Rez source text.
type TokenType int

const (
	EOF TokenType = iota
	ILLEGAL

	// Preprocessor directive lines. Each carries the directive's already
	// partially-decoded payload in the Token fields below (IncludeFilename,
	// IncludeExprText, DefineName, ...); the preprocessor further sub-lexes the payload text
	// where the grammar calls for expressions.
	PPInclude
	PPDefine
	PPUndef
	PPIf
	PPElif
	PPIfdef
	PPIfndef
	PPElse
	PPEndif
	PPPrintf
	PPEmpty // a line that is just "#" with nothing recognizable after it

	NEWLINE
	IDENTIFIER

	STRINGLIT_TEXT
	STRINGLIT_HEX
	INTLIT_DEC
	INTLIT_HEX
	INTLIT_OCT
	INTLIT_BIN
	INTLIT_CHAR

	SHIFTLEFT
	SHIFTRIGHT
	EQUAL
	NOTEQUAL
	LESSEQUAL
	GREATEREQUAL
	BOOLAND
	BOOLOR
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	LPAREN
	RPAREN
	SEMICOLON
	COLON
	COMMA
	ASSIGN
	PLUS
	MINUS
	MULTIPLY
	DIVIDE
	MODULO
	BITAND
	BITOR
	BITXOR
	BITNOT
	LESS
	GREATER
	BOOLNOT

	// FUNCTION is a "$$name" Rez built-in function token; Literal
	// holds the canonical (lower-cased, without the leading '$'s) name.
	FUNCTION

	// KEYWORD is any of the closed keyword set; Literal holds the
	// lower-cased keyword text (the original casing is not retained).
	KEYWORD
)

var tokenNames = map[TokenType]string{
	EOF: "EOF", ILLEGAL: "ILLEGAL",
	PPInclude: "PP_INCLUDE", PPDefine: "PP_DEFINE", PPUndef: "PP_UNDEF",
	PPIf: "PP_IF", PPElif: "PP_ELIF", PPIfdef: "PP_IFDEF", PPIfndef: "PP_IFNDEF",
	PPElse: "PP_ELSE", PPEndif: "PP_ENDIF", PPPrintf: "PP_PRINTF", PPEmpty: "PP_EMPTY",
	NEWLINE: "NEWLINE", IDENTIFIER: "IDENTIFIER",
	STRINGLIT_TEXT: "STRINGLIT_TEXT", STRINGLIT_HEX: "STRINGLIT_HEX",
	INTLIT_DEC: "INTLIT_DEC", INTLIT_HEX: "INTLIT_HEX", INTLIT_OCT: "INTLIT_OCT",
	INTLIT_BIN: "INTLIT_BIN", INTLIT_CHAR: "INTLIT_CHAR",
	SHIFTLEFT: "SHIFTLEFT", SHIFTRIGHT: "SHIFTRIGHT", EQUAL: "EQUAL", NOTEQUAL: "NOTEQUAL",
	LESSEQUAL: "LESSEQUAL", GREATEREQUAL: "GREATEREQUAL", BOOLAND: "BOOLAND", BOOLOR: "BOOLOR",
	LBRACE: "LBRACE", RBRACE: "RBRACE", LBRACKET: "LBRACKET", RBRACKET: "RBRACKET",
	LPAREN: "LPAREN", RPAREN: "RPAREN", SEMICOLON: "SEMICOLON", COLON: "COLON", COMMA: "COMMA",
	ASSIGN: "ASSIGN", PLUS: "PLUS", MINUS: "MINUS", MULTIPLY: "MULTIPLY", DIVIDE: "DIVIDE",
	MODULO: "MODULO", BITAND: "BITAND", BITOR: "BITOR", BITXOR: "BITXOR", BITNOT: "BITNOT",
	LESS: "LESS", GREATER: "GREATER", BOOLNOT: "BOOLNOT",
	FUNCTION: "FUNCTION", KEYWORD: "KEYWORD",
}

func (t TokenType) String() string {
	if name, ok := tokenNames[t]; ok {
		return name
	}

	return fmt.Sprintf("TokenType(%d)", int(t))
}

// Token is one lexical unit, plus whatever directive-specific payload its
// TokenType calls for.
type Token struct {
	Type    TokenType
	Literal string // source text; string/char literals keep their quotes and escapes
	Line    int
	Column  int

	// Directive payload fields, populated only for the matching PP* token type.
	IncludeAngle    bool   // true for <...>, false for a quoted/expression form
	IncludeFilename string // the literal filename text for the angle form
	IncludeExprText string // the unlexed tail for the non-angle form, for the preprocessor to sub-lex
	IsImport        bool   // true for #import, false for #include

	DefineName      string
	DefineValueText string // unlexed tail after the macro name

	UndefName string

	IfdefName string
	IsIfndef  bool
}

// keywords is the closed set recognized case-insensitively; identifiers
// outside this set remain IDENTIFIER tokens.
var keywords = map[string]bool{
	"as": true, "change": true, "data": true, "delete": true, "enum": true,
	"include": true, "not": true, "type": true, "read": true, "resource": true, "to": true,
	"bit": true, "bitstring": true, "boolean": true, "byte": true, "char": true,
	"cstring": true, "nibble": true, "integer": true, "long": true, "longint": true,
	"point": true, "pstring": true, "rect": true, "string": true, "word": true, "wstring": true,
	"binary": true, "decimal": true, "hex": true, "key": true, "literal": true,
	"octal": true, "unsigned": true,
	"align": true, "array": true, "case": true, "fill": true, "switch": true, "wide": true,
	"appheap": true, "changed": true, "compressed": true, "locked": true,
	"nonpreload": true, "nonpurgeable": true, "preload": true, "protected": true,
	"purgeable": true, "sysheap": true, "unchanged": true, "uncompressed": true,
	"unlocked": true, "unprotected": true,
	"defined": true,
}

// rezFunctions is the closed set of "$$name" built-ins, keyed by
// their lower-cased name without the leading dollar signs.
var rezFunctions = map[string]bool{
	"arrayindex": true, "attributes": true, "bitfield": true, "byte": true,
	"countof": true, "date": true, "day": true, "format": true, "hour": true,
	"id": true, "long": true, "minute": true, "month": true, "name": true,
	"packedsize": true, "read": true, "resource": true, "resourcesize": true,
	"second": true, "shell": true, "time": true, "type": true, "version": true,
	"weekday": true, "word": true, "year": true,
}

// IsKeyword reports whether ident, case-folded, is one of the closed
// keyword set.
func IsKeyword(ident string) bool { return keywords[lowerASCII(ident)] }

// IsRezFunction reports whether name (without leading '$' signs),
// case-folded, is one of the closed built-in function set.
func IsRezFunction(name string) bool { return rezFunctions[lowerASCII(name)] }

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}

	return string(b)
}
