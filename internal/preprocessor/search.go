package preprocessor

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rezfront/rezfront/internal/macroman"
	"github.com/rezfront/rezfront/pkg/lexer"
)

// macromanOrRaw decodes b as Mac OS Roman text with the classic CR/LF swap
// applied, falling back to the raw bytes as a string if decoding fails
// (e.g. a binary .rsrc fragment pulled in via a literal #include, which
// happens in practice for resource template files).
func macromanOrRaw(b []byte) (string, error) {
	s, err := macroman.Decode(macroman.SwapLineEndings(append([]byte(nil), b...)))
	if err != nil {
		return string(b), nil
	}

	return s, nil
}

// resolveInclude searches, in order: each active frame's framework
// directory's own "Frameworks" subdirectory (innermost first, so a
// header inside one framework can reach another framework it nests),
// then -I include paths (quoted/non-angle form only), then the system
// include path. Within a directory, the plain name is tried first, then
// (supplementing the system Rez's single-segment rewrite) every directory
// segment of name in turn as the one rewritten to "Seg.framework/Headers",
// so "CoreServices/OSUtils.r" resolves under a root containing
// "CoreServices.framework/Headers/OSUtils.r".
func (pp *Preprocessor) resolveInclude(name string, angle bool) (*includeFrame, error) {
	var roots []string

	for i := len(pp.includeStack) - 1; i >= 0; i-- {
		if fw := pp.includeStack[i].framework; fw != "" {
			roots = append(roots, filepath.Join(fw, "Frameworks"))
		}
	}
	if !angle {
		roots = append(roots, pp.includePath...)
	}
	roots = append(roots, pp.sysIncludePath...)

	dirs, err := pp.expandSearchRoots(roots)
	if err != nil {
		return nil, err
	}

	candidates := frameworkCandidates(name)
	for _, dir := range dirs {
		for _, c := range candidates {
			full := filepath.Join(dir, c.path)
			content, err := pp.fileReader.ReadFile(full)
			if err != nil {
				continue
			}

			decoded, err := macromanOrRaw(content)
			if err != nil {
				return nil, pp.errf("decoding %q: %v", full, err)
			}

			framework := ""
			if c.framework != "" {
				framework = filepath.Join(dir, c.framework)
			}

			return &includeFrame{
				lexer:     lexer.New(decoded),
				filename:  name,
				framework: framework,
			}, nil
		}
	}

	return nil, pp.errf("could not find %q on any include path", name)
}

type includeCandidate struct {
	path      string // the path to try, relative to a search root
	framework string // the framework directory this candidate resolves under, if any
}

// frameworkCandidates returns name itself, followed by one candidate per
// directory segment rewritten to "Seg.framework/Headers/<rest>".
func frameworkCandidates(name string) []includeCandidate {
	candidates := []includeCandidate{{path: name}}

	segments := strings.Split(name, "/")
	for i := 0; i < len(segments)-1; i++ {
		if segments[i] == "" {
			continue
		}
		rewritten := append(append([]string{}, segments[:i]...), segments[i]+".framework", "Headers")
		rewritten = append(rewritten, segments[i+1:]...)
		candidates = append(candidates, includeCandidate{
			path:      path.Join(rewritten...),
			framework: path.Join(append(append([]string{}, segments[:i]...), segments[i]+".framework")...),
		})
	}

	return candidates
}

func (pp *Preprocessor) expandSearchRoots(roots []string) ([]string, error) {
	var out []string
	for _, r := range roots {
		if !strings.ContainsAny(r, "*?[{") {
			out = append(out, r)

			continue
		}

		matches, err := doublestar.FilepathGlob(r)
		if err != nil {
			return nil, pp.errf("invalid include-path pattern %q: %v", r, err)
		}
		out = append(out, matches...)
	}

	return out, nil
}
