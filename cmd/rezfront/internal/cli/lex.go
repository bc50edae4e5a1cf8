package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezfront/rezfront/pkg/lexer"
)

func newLexCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "lex <input.r>",
		Short: "Print the raw token stream, bypassing the preprocessor",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLex(args[0])
		},
	}
}

func runLex(path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	l := lexer.New(string(source))
	for {
		tok := l.NextToken()
		if tok.Type == lexer.ILLEGAL {
			err := tok.AsError(path)
			fmt.Fprintln(os.Stderr, err)

			return err
		}
		if tok.Type == lexer.EOF {
			return nil
		}

		fmt.Printf("%s:%d:%d\t%s\t%q\n", path, tok.Line, tok.Column, tok.Type, tok.Literal)
	}
}
