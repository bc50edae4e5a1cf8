// Package main implements the rezfront command-line interface.
//
// rezfront drives the lexer, preprocessor, and parser over Rez
// resource-definition source, for inspecting or validating a .r file without
// a full resource compiler:
//
//	rezfront parse file.r      # run the full pipeline, print the AST
//	rezfront lex file.r        # print the raw (unpreprocessed) token stream
//	rezfront eval 'EXPR'       # evaluate a single constant expression
//
// Project-wide include paths and seed macros can be checked in via
// .rezfront.yaml instead of repeated on every invocation; see
// internal/config.
package main

import (
	"os"

	"github.com/rezfront/rezfront/cmd/rezfront/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		// cobra has already printed usage/error text for flag-parsing
		// failures; command RunE functions print their own diagnostics
		// before returning, so this is just the exit-code boundary.
		os.Exit(1)
	}
}
