package preprocessor

import (
	"os"
	"strings"

	"github.com/rezfront/rezfront/internal/macroman"
	"github.com/rezfront/rezfront/pkg/lexer"
)

// FileReader resolves an #include/#import path to file contents, so tests
// and embedders can substitute an in-memory filesystem for the OS one.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

type osFileReader struct{}

func (osFileReader) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

// handleInclude resolves and pushes one #include/#import's target file
// onto the include stack. #import additionally checks (and records in)
// the imported-files set, so a framework header guarded only by repeated
// #import never gets pushed twice.
func (pp *Preprocessor) handleInclude(tok lexer.Token) error {
	var name string
	if tok.IncludeAngle {
		name = strings.Trim(tok.IncludeFilename, "<>")
	} else {
		toks, err := pp.expandTokens(sublex(tok.IncludeExprText))
		if err != nil {
			return err
		}
		if len(toks) == 0 {
			return pp.errf("missing filename after #%s", includeDirectiveWord(tok))
		}

		exprAST, err := pp.parser(toks)
		if err != nil {
			return pp.errf("parsing #%s filename: %v", includeDirectiveWord(tok), err)
		}

		b, err := pp.evaluator.EvalString(exprAST)
		if err != nil {
			return pp.errf("evaluating #%s filename: %v", includeDirectiveWord(tok), err)
		}

		if len(b) == 0 {
			// A syntactically valid but semantically empty filename
			// expression is a silent no-op, matching the reference's
			// documented (if surprising) behavior.
			pp.log("include expression evaluated to empty filename, skipping")

			return nil
		}

		decoded, err := macroman.Decode(b)
		if err != nil {
			return pp.errf("decoding #%s filename: %v", includeDirectiveWord(tok), err)
		}
		name = decoded
	}

	key := includeKey{name: name, angle: tok.IncludeAngle}
	if tok.IsImport {
		if pp.importedFiles[key] {
			pp.log("import skipped, already seen", "name", name)

			return nil
		}
	}

	frame, err := pp.resolveInclude(name, tok.IncludeAngle)
	if err != nil {
		return err
	}

	if tok.IsImport {
		pp.importedFiles[key] = true
	}
	pp.includeStack = append(pp.includeStack, frame)
	pp.log("include", "name", name, "import", tok.IsImport, "framework", frame.framework)

	return nil
}

func includeDirectiveWord(tok lexer.Token) string {
	if tok.IsImport {
		return "import"
	}

	return "include"
}
