// Package config loads the on-disk .rezfront.yaml project configuration:
// seed macros, include-path roots, and the rez/derez mode a project wants
// checked in rather than re-specified as flags on every invocation.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rezfront/rezfront/pkg/lexer"
)

// RezConfig is the decoded shape of a .rezfront.yaml file: seed macros,
// derez mode, and the two include-path lists.
type RezConfig struct {
	Macros         map[string]string `yaml:"macros"`
	Derez          bool              `yaml:"derez"`
	IncludePath    []string          `yaml:"include_path"`
	SysIncludePath []string          `yaml:"sys_include_path"`
}

// Load reads and decodes a RezConfig from path. A missing file is not an
// error: callers get a zero-value RezConfig, matching every option's
// documented default.
func Load(path string) (*RezConfig, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &RezConfig{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var cfg RezConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return &cfg, nil
}

// MacroTokens re-lexes each configured macro's replacement text into the
// token list preprocessor.Config.Macros expects, the same way a #define's
// value text is sub-lexed at directive-processing time.
func (c *RezConfig) MacroTokens() map[string][]lexer.Token {
	out := make(map[string][]lexer.Token, len(c.Macros))
	for name, text := range c.Macros {
		l := lexer.New(text)
		var toks []lexer.Token
		for {
			tok := l.NextToken()
			if tok.Type == lexer.EOF {
				break
			}
			if tok.Type == lexer.NEWLINE {
				continue
			}
			toks = append(toks, tok)
		}
		out[name] = toks
	}

	return out
}
