package eval

import "fmt"

// EvalError is returned for any failure while evaluating a ResourceValue:
// an unknown symbol, a wrong-arity subscript, division by zero, or an
// unimplemented host hook. Evaluation fails fast at the first bad node, so
// unlike the lexer/preprocessor/parser stages there is no aggregate
// collection type here.
type EvalError struct {
	Message string
	File    string
	Line    int
}

func (e *EvalError) Error() string {
	if e.File == "" {
		return "eval error: " + e.Message
	}
	if e.Line == 0 {
		return fmt.Sprintf("eval error in %s: %s", e.File, e.Message)
	}

	return fmt.Sprintf("eval error at %s:%d: %s", e.File, e.Line, e.Message)
}

func errf(format string, args ...interface{}) *EvalError {
	return &EvalError{Message: fmt.Sprintf(format, args...)}
}
