// Package cli assembles the rezfront cobra command tree and the shared
// pipeline plumbing (config loading, preprocessor wiring) its subcommands
// use.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// options holds the flag values shared by every subcommand: the include
// search paths, seed macros, and rez/derez mode, plus the on-disk config
// file they default from.
type options struct {
	includePath    []string
	sysIncludePath []string
	defines        []string
	derez          bool
	configPath     string
	trace          bool
}

// NewRootCommand builds the rezfront command tree: a root command carrying
// the shared pipeline flags, with parse/lex/eval as subcommands.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "rezfront",
		Short:         "Lex, preprocess, and parse Rez resource-definition source",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringArrayVar(&opts.includePath, "include-path", nil, "directory searched for quoted #include/#import (repeatable)")
	flags.StringArrayVar(&opts.sysIncludePath, "sys-include-path", nil, "directory searched for every #include/#import (repeatable)")
	flags.StringArrayVarP(&opts.defines, "define", "D", nil, "seed macro as NAME=VALUE, or bare NAME for NAME=1 (repeatable)")
	flags.BoolVar(&opts.derez, "derez", false, "run in DeRez mode (swaps the rez/derez builtin macros)")
	flags.StringVar(&opts.configPath, "config", ".rezfront.yaml", "project config file (missing file is not an error)")
	flags.BoolVar(&opts.trace, "trace", false, "emit preprocessor trace diagnostics to stderr")

	root.AddCommand(newParseCommand(opts))
	root.AddCommand(newLexCommand(opts))
	root.AddCommand(newEvalCommand(opts))

	return root
}

// traceLogger returns the slog.Logger internal components should receive,
// or nil when tracing wasn't requested (a nil *slog.Logger disables
// preprocessor.Config.Trace entirely rather than logging at a filtered
// level, since trace output is opt-in noise, not a leveled concern).
func (o *options) traceLogger() *slog.Logger {
	if !o.trace {
		return nil
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
