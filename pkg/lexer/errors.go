package lexer

import "fmt"

// LexError reports one malformed lexical construct: an unterminated string,
// character, or hex-string literal; an unrecognized "$$name" function; or a
// byte with no token rule. The lexer itself never returns one directly (its
// NextToken has no error return, to keep the hot scanning loop allocation
// free); it instead returns an ILLEGAL token carrying the diagnostic text
// in Literal, and the first caller that must fail on it (the preprocessor,
// or the parser's bare-lexer adapter for unpreprocessed input) wraps it via
// AsError. Lexing never continues past the first failure, so unlike
// PreprocessError/ParseError there is no aggregate collection type: a file
// with a bad literal has exactly one LexError to report.
type LexError struct {
	Message string
	File    string
	Line    int
}

func (e LexError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}

	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
}

// AsError turns an ILLEGAL token into a *LexError attributed to file.
func (t Token) AsError(file string) error {
	return &LexError{Message: "invalid token " + t.Literal, File: file, Line: t.Line}
}
