// Package preprocessor implements the Rez "preprocessor": a token-stream
// filter sitting between pkg/lexer and pkg/parser that expands macros,
// drives conditional compilation, stacks #include/#import files, rewrites
// enum declarations into macro definitions, and dispatches #printf. Unlike
// a textual C preprocessor, several of its directives need a parsed and
// evaluated expression to decide what to do next (#if's condition, an
// #include's computed filename, an enum constant's explicit value), so the
// preprocessor is constructed with a parser/evaluator pair it calls back
// into via the ExprParser/ExprEvaluator interfaces rather than importing
// pkg/parser or pkg/eval directly; that would make pkg/parser depend on
// this package (it consumes the preprocessor's token stream) while this
// package depended on pkg/parser, an import cycle the reference avoids by
// keeping the preprocessor, parser and evaluator as three collaborating
// objects rather than a layered stack.
package preprocessor
