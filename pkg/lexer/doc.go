// Package lexer provides lexical analysis for Rez resource-definition
// source text.
//
// Tokens fall into three groups: preprocessor directive lines (recognized
// only at the start of a physical line, carrying a partially-decoded
// payload for the preprocessor to finish interpreting), the closed set of
// keywords and "$$name" built-in functions (matched case-insensitively),
// and the ordinary literal/operator/delimiter tokens of the expression and
// field grammar. Comments ("//" and "/* */") are skipped during scanning.
//
// String, character, and hex-string literals are returned with their raw
// source text still escaped; decoding (including the Mac OS Roman \r/\n
// swap) happens in the parser, which is also where any macro-expanded text
// re-enters this package via a fresh Lexer instance.
package lexer
