package lexer

import "strings"

// lexDirective scans one preprocessor directive line, starting at '#'. It
// mirrors the reference lexer's per-directive regexes: the directive
// keyword selects the token type, and the remainder of the line becomes
// either a decoded payload (angle-form include, define/undef/ifdef name) or
// unlexed text that the preprocessor sub-lexes itself (define value,
// non-angle include filename, #if/#elif/#printf operands).
func (l *Lexer) lexDirective(line, col int) Token {
	lineStart := l.position
	for l.ch != '\n' && l.ch != 0 {
		l.readChar()
	}
	raw := l.input[lineStart:l.position]

	text := strings.TrimLeft(raw, " \t")
	text = text[1:] // leading '#'
	text = strings.TrimLeft(text, " \t")
	lowerText := lowerASCII(text)

	switch {
	case strings.HasPrefix(lowerText, "include") || strings.HasPrefix(lowerText, "import"):
		isImport := strings.HasPrefix(lowerText, "import")
		kw := "include"
		if isImport {
			kw = "import"
		}
		tail := strings.TrimLeft(text[len(kw):], " \t")

		tok := Token{Type: PPInclude, Literal: raw, Line: line, Column: col, IsImport: isImport}
		if strings.HasPrefix(tail, "<") {
			end := strings.Index(tail, ">")
			if end < 0 {
				end = len(tail) - 1
			}
			tok.IncludeAngle = true
			tok.IncludeFilename = tail[:end+1]
		} else {
			tok.IncludeAngle = false
			tok.IncludeExprText = tail
		}

		return tok

	case strings.HasPrefix(lowerText, "define"):
		tail := strings.TrimLeft(text[len("define"):], " \t")
		name, rest := splitIdent(tail)

		return Token{Type: PPDefine, Literal: raw, Line: line, Column: col, DefineName: name, DefineValueText: rest}

	case strings.HasPrefix(lowerText, "undef"):
		tail := strings.TrimLeft(text[len("undef"):], " \t")
		name, _ := splitIdent(tail)

		return Token{Type: PPUndef, Literal: raw, Line: line, Column: col, UndefName: name}

	case strings.HasPrefix(lowerText, "ifndef"):
		tail := strings.TrimLeft(text[len("ifndef"):], " \t")
		name, _ := splitIdent(tail)

		return Token{Type: PPIfndef, Literal: raw, Line: line, Column: col, IfdefName: name, IsIfndef: true}

	case strings.HasPrefix(lowerText, "ifdef"):
		tail := strings.TrimLeft(text[len("ifdef"):], " \t")
		name, _ := splitIdent(tail)

		return Token{Type: PPIfdef, Literal: raw, Line: line, Column: col, IfdefName: name}

	case strings.HasPrefix(lowerText, "elif"):
		return Token{Type: PPElif, Literal: strings.TrimSpace(text[len("elif"):]), Line: line, Column: col}

	case strings.HasPrefix(lowerText, "if"):
		return Token{Type: PPIf, Literal: strings.TrimSpace(text[len("if"):]), Line: line, Column: col}

	case strings.HasPrefix(lowerText, "else"):
		return Token{Type: PPElse, Literal: raw, Line: line, Column: col}

	case strings.HasPrefix(lowerText, "endif"):
		return Token{Type: PPEndif, Literal: raw, Line: line, Column: col}

	case strings.HasPrefix(lowerText, "printf"):
		return Token{Type: PPPrintf, Literal: strings.TrimSpace(text[len("printf"):]), Line: line, Column: col}

	default:
		return Token{Type: PPEmpty, Literal: raw, Line: line, Column: col}
	}
}

// splitIdent splits off a leading C identifier from s, returning it and
// whatever follows (with no further trimming), matching how the reference
// lexer's sub-lexer pulls the macro/identifier name off a directive tail.
func splitIdent(s string) (name, rest string) {
	i := 0
	for i < len(s) && isIdentStart(s[i]) {
		i++
	}
	for i < len(s) && isIdentCont(s[i]) {
		i++
	}

	return s[:i], s[i:]
}
