// Package value holds the runtime value system for Rez symbol bindings:
// Int, Str, and Array, plus the flat SymbolTable an evaluator resolves
// Symbol/LabelSubscript nodes against.
package value
