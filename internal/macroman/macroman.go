// Package macroman decodes and encodes the Mac OS Roman byte encoding that
// classic Rez source files and all Rez string/char literals use, via
// golang.org/x/text's charmap table rather than a hand-rolled translation.
package macroman

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// caseFolder is the single canonical case-folding transformer used
// everywhere a Rez identifier becomes a table key: the macro table, enum
// constant names, and named arrays. Unicode case-folding (rather than plain
// ASCII lower-casing) matches spec's requirement that identifier comparison
// work for the full Unicode range a Rez source file might contain in a
// quoted name.
var caseFolder = cases.Fold()

// Casefold returns s folded to its canonical case-insensitive form. Used as
// the one place identifier-as-key comparisons are decided, so every
// lookup/definition site agrees on the same notion of "the same name".
func Casefold(s string) string {
	out, _, err := transform.String(caseFolder, s)
	if err != nil {
		return s
	}

	return out
}

// Decode converts Mac OS Roman bytes to a UTF-8 Go string.
func Decode(b []byte) (string, error) {
	out, err := charmap.Macintosh.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

// Encode converts a UTF-8 Go string to Mac OS Roman bytes. A character with
// no Mac OS Roman representation makes Encode return an error.
func Encode(s string) ([]byte, error) {
	return charmap.Macintosh.NewEncoder().Bytes([]byte(s))
}

// SwapLineEndings exchanges CR (0x0D) and LF (0x0A) bytes in place and
// returns b. Rez source and $$read/#printf text use "\r" for Mac line
// endings and "\n" for everything else; escape decoding in string/char
// literals applies this swap, following classic Rez's documented behavior.
func SwapLineEndings(b []byte) []byte {
	for i, c := range b {
		switch c {
		case '\r':
			b[i] = '\n'
		case '\n':
			b[i] = '\r'
		}
	}

	return b
}
