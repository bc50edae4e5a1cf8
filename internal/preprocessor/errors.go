package preprocessor

import "fmt"

// PreprocessError reports one malformed directive or state transition: an
// unbalanced #endif, a nested enum, a bad `defined` operand, an include
// file that could not be found on any search root, or a #printf arity
// outside 1-20.
type PreprocessError struct {
	Message string
	File    string
	Line    int
}

func (e *PreprocessError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}

	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
}

func (pp *Preprocessor) errf(format string, args ...interface{}) *PreprocessError {
	return &PreprocessError{
		Message: fmt.Sprintf(format, args...),
		File:    pp.Filename(),
		Line:    pp.Line(),
	}
}
