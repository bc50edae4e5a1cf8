// Package eval computes constant-expression values for a parsed Rez AST:
// integer arithmetic with Rez's truncate-toward-zero division and
// sign-from-dividend modulo, the closed set of $$ built-in functions, and
// big-endian bit-field reads against a simulated "current resource".
//
// Host-sensitive string functions ($$Read, $$Resource, $$Shell) are not
// implemented here directly; Evaluator.Hooks lets a caller opt into
// filesystem/environment access, since a library must not reach outside its
// inputs on a caller's behalf uninvited. $$Format calls Hooks.Format when it
// is set and otherwise falls back to a minimal built-in %d/%s/%x/%%
// formatter.
package eval
