package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezfront/rezfront/internal/macroman"
	"github.com/rezfront/rezfront/internal/preprocessor"
	"github.com/rezfront/rezfront/pkg/lexer"
	"github.com/rezfront/rezfront/pkg/parser"
)

func newEvalCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "eval <expr>",
		Short: "Evaluate a single constant expression (the grammar #if/#printf operands use)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(opts, args[0])
		},
	}
}

func runEval(opts *options, exprText string) error {
	ppCfg, evaluator, err := buildPreprocessorConfig(opts)
	if err != nil {
		return err
	}

	pp := preprocessor.New("<expr>", exprText, ppCfg)
	var tokens []lexer.Token
	for {
		tok, err := pp.NextToken()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)

			return err
		}
		if tok.Type == lexer.EOF {
			break
		}
		tokens = append(tokens, tok)
	}

	expr, err := parser.ParseExprTokens(tokens)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return err
	}

	result, err := evaluator.Eval(expr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return err
	}

	switch v := result.(type) {
	case int64:
		fmt.Println(v)
	case []byte:
		text, err := macroman.Decode(v)
		if err != nil {
			return fmt.Errorf("decoding result as Mac OS Roman: %w", err)
		}
		fmt.Println(text)
	default:
		fmt.Printf("%v\n", v)
	}

	return nil
}
