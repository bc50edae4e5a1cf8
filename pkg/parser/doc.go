// Package parser turns a stream of tokens into an AST describing a Rez
// source file: statements, resource specs, field-type declarations, and the
// int/string expression grammar shared by field initializers, #if
// conditions, and #printf arguments.
//
// Architecture:
//
// The parser is plain recursive descent for statements and fields, and
// precedence climbing for the twelve-level integer expression grammar. It
// reads from a TokenSource rather than a concrete lexer, so the same grammar
// serves two entry points with different token providers:
//
//   - ParseFile reads from a *preprocessor.Preprocessor (the normal case:
//     directives have already been executed and macros expanded by the time
//     a token reaches the parser) and produces a complete *ast.File.
//   - ParseExprTokens reads from an already-lexed, closed token slice and
//     produces a single expression; its signature matches
//     preprocessor.ExprParser, so the preprocessor can call back into the
//     parser for #if conditions, quoted include filenames, and explicit
//     enum constant values without a second grammar implementation.
//
// Language Support:
//
// Statements: change, data, delete, enum, include (all five syntactic
// forms), read, resource, type (field-type declaration and the "as" alias
// forms).
//
// Resource spec headers: the four related but distinct productions
// (resource_spec_typedef/_def/_use) that name a type plus some combination
// of id, id range, name, and attributes, depending on which statement is
// using them.
//
// Field grammar: simple fields (with modifier keywords key/unsigned/
// binary/octal/decimal/hex/literal and every simple_type), fill and align
// padding, arrays (either an unlabeled/labeled form whose length comes from
// how many resource_values follow at evaluation time, or an explicit
// bracketed count), and switch blocks.
//
// Expression grammar: the full twelve-level integer operator precedence
// chain, four-character type-code and character literals, label subscripts
// (name[i, j], one bracket pair, comma-separated), every closed-set
// integer and string built-in function, and string concatenation.
//
// Error Handling:
//
// Parse errors are collected rather than raised on the first mistake:
// ParseErrors holds every malformed construct seen during one parse, each
// with a file and line number, so a caller can report them all at once.
// expect/errorf never advance past a bad token twice, so one syntax error
// doesn't cascade into a wall of spurious follow-on errors.
package parser
