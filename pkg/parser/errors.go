package parser

import (
	"fmt"
	"strings"
)

// ParseError reports one malformed construct, with source location when the
// parser has one (File is empty for a standalone expression parsed via
// ParseExpr, which has no file of its own).
type ParseError struct {
	Message string
	File    string
	Line    int
}

func (e ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}

	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Message)
}

// ParseErrors collects every error seen during one parse, so a caller can
// report all of them instead of stopping at the first.
type ParseErrors struct {
	errors []ParseError
}

func (p *ParseErrors) add(file string, line int, msg string) {
	p.errors = append(p.errors, ParseError{Message: msg, File: file, Line: line})
}

func (p *ParseErrors) addf(file string, line int, format string, args ...interface{}) {
	p.add(file, line, fmt.Sprintf(format, args...))
}

// HasErrors reports whether any error was recorded.
func (p *ParseErrors) HasErrors() bool { return len(p.errors) > 0 }

// Count returns the number of recorded errors.
func (p *ParseErrors) Count() int { return len(p.errors) }

// Errors returns every recorded error in the order encountered.
func (p *ParseErrors) Errors() []ParseError { return p.errors }

// First returns the first recorded error, or nil if there were none.
func (p *ParseErrors) First() error {
	if len(p.errors) == 0 {
		return nil
	}

	return p.errors[0]
}

func (p *ParseErrors) Error() string {
	switch len(p.errors) {
	case 0:
		return "no errors"
	case 1:
		return p.errors[0].Error()
	}
	msgs := make([]string, len(p.errors))
	for i, err := range p.errors {
		msgs[i] = err.Error()
	}

	return fmt.Sprintf("%d parse errors:\n%s", len(p.errors), strings.Join(msgs, "\n"))
}
