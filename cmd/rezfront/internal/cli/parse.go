package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezfront/rezfront/internal/preprocessor"
	"github.com/rezfront/rezfront/pkg/parser"
)

func newParseCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <input.r>",
		Short: "Run the full lex/preprocess/parse pipeline and print the resulting AST",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(opts, args[0])
		},
	}
}

func runParse(opts *options, path string) error {
	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	ppCfg, _, err := buildPreprocessorConfig(opts)
	if err != nil {
		return err
	}

	pp := preprocessor.New(path, string(source), ppCfg)
	p := parser.New(pp, path)
	file, err := p.ParseFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)

		return err
	}

	fmt.Println(file.String())

	return nil
}
